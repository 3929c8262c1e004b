package report

import (
	"testing"

	"github.com/dafibh/finboard/finboard-backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func row(amount domain.Milliunits, day int, category string) domain.TransactionRow {
	r := domain.TransactionRow{Amount: amount, Date: date(2024, 1, day)}
	if category != "" {
		r.CategoryName = &category
	}
	return r
}

func TestAggregatePeriod(t *testing.T) {
	t.Run("splits income and expenses", func(t *testing.T) {
		totals := AggregatePeriod([]domain.TransactionRow{
			row(50000, 1, ""),
			row(-20000, 2, ""),
		})

		assert.Equal(t, domain.Milliunits(50000), totals.Income)
		assert.Equal(t, domain.Milliunits(-20000), totals.Expenses)
		assert.Equal(t, domain.Milliunits(30000), totals.Remaining)
	})

	t.Run("zero amounts count as income", func(t *testing.T) {
		totals := AggregatePeriod([]domain.TransactionRow{row(0, 1, "")})
		assert.Equal(t, domain.PeriodTotals{}, totals)
	})

	t.Run("empty set is all zero", func(t *testing.T) {
		assert.Equal(t, domain.PeriodTotals{}, AggregatePeriod(nil))
	})

	t.Run("remaining equals income plus expenses", func(t *testing.T) {
		rows := []domain.TransactionRow{
			row(1234, 1, "Food"), row(-999, 1, "Food"), row(-1, 3, ""),
			row(700001, 5, "Salary"), row(-250500, 9, "Rent"), row(0, 9, ""),
		}
		totals := AggregatePeriod(rows)

		assert.Equal(t, totals.Income+totals.Expenses, totals.Remaining)
		assert.LessOrEqual(t, int64(totals.Expenses), int64(0))
	})
}

func TestSumExpensesByCategory(t *testing.T) {
	rows := []domain.TransactionRow{
		row(-100, 1, "Food"),
		row(-300, 2, "Rent"),
		row(500, 2, "Food"), // income is ignored
		row(-250, 3, ""),    // uncategorized is ignored
		row(-150, 4, "Food"),
		row(-250, 4, "Clothing"),
	}

	got := SumExpensesByCategory(rows)

	assert.Equal(t, []domain.CategorySlice{
		{Name: "Rent", Value: 300},
		{Name: "Food", Value: 250},
		{Name: "Clothing", Value: 250},
	}, got)
}

func TestSumExpensesByCategory_NoExpenses(t *testing.T) {
	got := SumExpensesByCategory([]domain.TransactionRow{row(100, 1, "Salary")})

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSumByDay(t *testing.T) {
	rows := []domain.TransactionRow{
		row(-20000, 2, ""),
		row(50000, 1, ""),
		row(-5000, 2, "Food"),
		row(1000, 2, ""),
	}

	got := SumByDay(rows)

	assert.Equal(t, []domain.DayPoint{
		{Date: date(2024, 1, 1), Income: 50000, Expenses: 0},
		{Date: date(2024, 1, 2), Income: 1000, Expenses: 25000},
	}, got)
}
