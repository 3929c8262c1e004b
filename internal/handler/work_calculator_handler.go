package handler

import (
	"errors"
	"net/http"

	"github.com/dafibh/finboard/finboard-backend/internal/domain"
	"github.com/dafibh/finboard/finboard-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// WorkCalculatorHandler handles work calculator HTTP requests
type WorkCalculatorHandler struct {
	calculator *service.WorkCalculatorService
}

// NewWorkCalculatorHandler creates a new WorkCalculatorHandler
func NewWorkCalculatorHandler(calculator *service.WorkCalculatorService) *WorkCalculatorHandler {
	return &WorkCalculatorHandler{
		calculator: calculator,
	}
}

// WorkEarningsResponse represents the work calculator API response
type WorkEarningsResponse struct {
	MonthlyEarnings string `json:"monthlyEarnings"`
	YearlyEarnings  string `json:"yearlyEarnings"`
	AfterTaxMonthly string `json:"afterTaxMonthly"`
	AfterTaxYearly  string `json:"afterTaxYearly"`
}

// Calculate handles GET /api/v1/work-calculator
func (h *WorkCalculatorHandler) Calculate(c echo.Context) error {
	input := service.DefaultWorkCalculatorInput()

	var validationErrors []ValidationError
	for _, param := range []struct {
		field  string
		target *decimal.Decimal
	}{
		{"hourlyRate", &input.HourlyRate},
		{"workHours", &input.WorkHours},
		{"workDays", &input.WorkDays},
		{"taxPercentage", &input.TaxPercentage},
	} {
		raw := c.QueryParam(param.field)
		if raw == "" {
			continue
		}
		value, err := decimal.NewFromString(raw)
		if err != nil {
			validationErrors = append(validationErrors, ValidationError{Field: param.field, Message: "Must be a number"})
			continue
		}
		*param.target = value
	}
	if len(validationErrors) > 0 {
		return NewValidationError(c, "Invalid work calculator inputs", validationErrors)
	}

	earnings, err := h.calculator.Calculate(input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidWorkInputs) {
			return NewValidationError(c, "Inputs must not be negative and tax must be at most 100", nil)
		}
		log.Error().Err(err).Msg("Failed to calculate work earnings")
		return NewInternalError(c, "Failed to calculate work earnings")
	}

	return c.JSON(http.StatusOK, DataResponse[WorkEarningsResponse]{Data: WorkEarningsResponse{
		MonthlyEarnings: earnings.MonthlyEarnings.StringFixed(2),
		YearlyEarnings:  earnings.YearlyEarnings.StringFixed(2),
		AfterTaxMonthly: earnings.AfterTaxMonthly.StringFixed(2),
		AfterTaxYearly:  earnings.AfterTaxYearly.StringFixed(2),
	}})
}
