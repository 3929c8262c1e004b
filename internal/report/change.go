package report

import "github.com/dafibh/finboard/finboard-backend/internal/domain"

// PercentChange returns the change from previous to current in percent.
//
// A zero previous value has no meaningful ratio: the result is 0 when current
// is also zero and 100 otherwise, marking the metric as newly appearing.
func PercentChange(current, previous domain.Milliunits) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return float64(current-previous) / float64(previous) * 100
}

// Changes computes each metric's change against its own previous value
func Changes(current, previous domain.PeriodTotals) domain.PeriodChanges {
	return domain.PeriodChanges{
		Income:    PercentChange(current.Income, previous.Income),
		Expenses:  PercentChange(current.Expenses, previous.Expenses),
		Remaining: PercentChange(current.Remaining, previous.Remaining),
	}
}
