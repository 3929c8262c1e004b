package service

import (
	"github.com/dafibh/finboard/finboard-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// Work calculator defaults and conversion factors
const (
	DefaultWorkHours     = 8
	DefaultWorkDays      = 5
	DefaultTaxPercentage = 30
	WeeksPerMonth        = 4
	MonthsPerYear        = 12

	// Inputs are limited in magnitude and precision so results stay printable
	maxWorkInput    = 1_000_000_000
	maxWorkExponent = 10
)

// WorkCalculatorInput describes a working schedule
type WorkCalculatorInput struct {
	HourlyRate    decimal.Decimal
	WorkHours     decimal.Decimal // per day
	WorkDays      decimal.Decimal // per week
	TaxPercentage decimal.Decimal
}

// DefaultWorkCalculatorInput returns a full-time schedule with a zero rate
func DefaultWorkCalculatorInput() WorkCalculatorInput {
	return WorkCalculatorInput{
		HourlyRate:    decimal.Zero,
		WorkHours:     decimal.NewFromInt(DefaultWorkHours),
		WorkDays:      decimal.NewFromInt(DefaultWorkDays),
		TaxPercentage: decimal.NewFromInt(DefaultTaxPercentage),
	}
}

// WorkEarnings are gross and after-tax earnings for a schedule
type WorkEarnings struct {
	MonthlyEarnings decimal.Decimal
	YearlyEarnings  decimal.Decimal
	AfterTaxMonthly decimal.Decimal
	AfterTaxYearly  decimal.Decimal
}

// WorkCalculatorService converts an hourly rate into monthly and yearly earnings
type WorkCalculatorService struct{}

// NewWorkCalculatorService creates a new WorkCalculatorService
func NewWorkCalculatorService() *WorkCalculatorService {
	return &WorkCalculatorService{}
}

// Calculate assumes four working weeks per month
func (s *WorkCalculatorService) Calculate(input WorkCalculatorInput) (*WorkEarnings, error) {
	for _, d := range []decimal.Decimal{input.HourlyRate, input.WorkHours, input.WorkDays, input.TaxPercentage} {
		if !withinWorkBounds(d) {
			return nil, domain.ErrInvalidWorkInputs
		}
	}

	hundred := decimal.NewFromInt(100)
	if input.HourlyRate.IsNegative() || input.WorkHours.IsNegative() || input.WorkDays.IsNegative() ||
		input.TaxPercentage.IsNegative() || input.TaxPercentage.GreaterThan(hundred) {
		return nil, domain.ErrInvalidWorkInputs
	}

	monthly := input.HourlyRate.Mul(input.WorkHours).Mul(input.WorkDays).Mul(decimal.NewFromInt(WeeksPerMonth))
	yearly := monthly.Mul(decimal.NewFromInt(MonthsPerYear))
	keep := decimal.NewFromInt(1).Sub(input.TaxPercentage.Div(hundred))

	return &WorkEarnings{
		MonthlyEarnings: monthly,
		YearlyEarnings:  yearly,
		AfterTaxMonthly: monthly.Mul(keep),
		AfterTaxYearly:  yearly.Mul(keep),
	}, nil
}

// withinWorkBounds checks the exponent before comparing, since comparing
// rescales both operands to a common exponent.
func withinWorkBounds(d decimal.Decimal) bool {
	if exp := d.Exponent(); exp < -maxWorkExponent || exp > maxWorkExponent {
		return false
	}
	return d.Abs().LessThanOrEqual(decimal.NewFromInt(maxWorkInput))
}
