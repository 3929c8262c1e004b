package report

import (
	"sort"

	"github.com/dafibh/finboard/finboard-backend/internal/domain"
	"github.com/dafibh/finboard/finboard-backend/internal/util"
)

// AggregatePeriod sums rows into signed income, expense and net totals.
// Rows must already be filtered to the window. It is the in-memory
// counterpart of the SumPeriod query.
func AggregatePeriod(rows []domain.TransactionRow) domain.PeriodTotals {
	var totals domain.PeriodTotals
	for _, row := range rows {
		if row.Amount >= 0 {
			totals.Income += row.Amount
		} else {
			totals.Expenses += row.Amount
		}
		totals.Remaining += row.Amount
	}
	return totals
}

// SumExpensesByCategory groups expense magnitudes by category name, largest
// first. Categories with equal totals keep the order they were first seen in.
// Income rows and rows without a category name are skipped. It is the
// in-memory counterpart of the SumExpensesByCategory query.
func SumExpensesByCategory(rows []domain.TransactionRow) []domain.CategorySlice {
	index := make(map[string]int)
	slices := make([]domain.CategorySlice, 0)

	for _, row := range rows {
		if row.Amount >= 0 || row.CategoryName == nil {
			continue
		}
		i, ok := index[*row.CategoryName]
		if !ok {
			i = len(slices)
			index[*row.CategoryName] = i
			slices = append(slices, domain.CategorySlice{Name: *row.CategoryName})
		}
		slices[i].Value += row.Amount.Abs()
	}

	sortSlicesDesc(slices)
	return slices
}

// SumByDay groups rows by calendar day, oldest first. Only days that have at
// least one row are returned. It is the in-memory counterpart of the
// SumByDay query.
func SumByDay(rows []domain.TransactionRow) []domain.DayPoint {
	byDay := make(map[string]*domain.DayPoint)
	for _, row := range rows {
		date := util.CalendarDay(row.Date)
		key := util.FormatDate(date)
		point, ok := byDay[key]
		if !ok {
			point = &domain.DayPoint{Date: date}
			byDay[key] = point
		}
		if row.Amount >= 0 {
			point.Income += row.Amount
		} else {
			point.Expenses += row.Amount.Abs()
		}
	}

	days := make([]domain.DayPoint, 0, len(byDay))
	for _, point := range byDay {
		days = append(days, *point)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})
	return days
}

func sortSlicesDesc(slices []domain.CategorySlice) {
	sort.SliceStable(slices, func(i, j int) bool {
		return slices[i].Value > slices[j].Value
	})
}
