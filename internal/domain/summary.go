package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DateWindow is an inclusive range of calendar days. Start and End are
// midnight UTC values.
type DateWindow struct {
	Start time.Time
	End   time.Time
}

// Days returns the number of calendar days in the window, both ends included.
func (w DateWindow) Days() int {
	return int((w.End.Unix()-w.Start.Unix())/(24*60*60)) + 1
}

func (w DateWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// PeriodTotals are signed sums over a window. Expenses is <= 0 and
// Remaining == Income + Expenses.
type PeriodTotals struct {
	Income    Milliunits
	Expenses  Milliunits
	Remaining Milliunits
}

// CategorySlice is the absolute expense total of one category, or of the
// synthesized "Other" bucket.
type CategorySlice struct {
	Name  string
	Value Milliunits
}

// DayPoint holds one calendar day of activity. Both values are magnitudes.
type DayPoint struct {
	Date     time.Time
	Income   Milliunits
	Expenses Milliunits
}

// PeriodChanges are percentage changes of the current window versus the previous one.
type PeriodChanges struct {
	Income    float64
	Expenses  float64
	Remaining float64
}

type Summary struct {
	Window         DateWindow
	PreviousWindow DateWindow
	Current        PeriodTotals
	Previous       PeriodTotals
	Changes        PeriodChanges
	Categories     []CategorySlice
	Days           []DayPoint
}

// SummaryFilter scopes every summary query to one user's transactions.
type SummaryFilter struct {
	UserID    string
	Window    DateWindow
	AccountID *uuid.UUID
}

// SummaryRepository is the read side the summary engine aggregates from.
type SummaryRepository interface {
	// SumPeriod returns signed income, expense and net sums for the filter.
	SumPeriod(ctx context.Context, filter SummaryFilter) (PeriodTotals, error)
	// SumExpensesByCategory returns absolute expense totals grouped by
	// category name, largest first. Uncategorized expenses are not included.
	SumExpensesByCategory(ctx context.Context, filter SummaryFilter) ([]CategorySlice, error)
	// SumByDay returns one point per day that has transactions, oldest first.
	SumByDay(ctx context.Context, filter SummaryFilter) ([]DayPoint, error)
}
