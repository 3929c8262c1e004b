package report

import (
	"github.com/dafibh/finboard/finboard-backend/internal/domain"
	"github.com/dafibh/finboard/finboard-backend/internal/util"
)

// FillMissingDays expands sparse per-day totals into one point for every day
// of the window, oldest first, with zero points for days without activity.
//
// When there is no activity at all the result is empty rather than a window
// full of zeros. Points outside the window are dropped and points sharing a
// date are merged.
func FillMissingDays(active []domain.DayPoint, window domain.DateWindow) []domain.DayPoint {
	if len(active) == 0 {
		return []domain.DayPoint{}
	}

	byDay := make(map[string]domain.DayPoint, len(active))
	for _, point := range active {
		key := util.FormatDate(util.CalendarDay(point.Date))
		existing := byDay[key]
		existing.Income += point.Income
		existing.Expenses += point.Expenses
		byDay[key] = existing
	}

	days := make([]domain.DayPoint, 0, window.Days())
	for date := window.Start; !date.After(window.End); date = util.AddDays(date, 1) {
		point := byDay[util.FormatDate(date)]
		point.Date = date
		days = append(days, point)
	}
	return days
}
