package report

import (
	"testing"

	"github.com/dafibh/finboard/finboard-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFillMissingDays_FillsGaps(t *testing.T) {
	window := domain.DateWindow{Start: date(2024, 1, 1), End: date(2024, 1, 3)}
	active := []domain.DayPoint{
		{Date: date(2024, 1, 1), Income: 50000},
		{Date: date(2024, 1, 2), Expenses: 20000},
	}

	got := FillMissingDays(active, window)

	assert.Equal(t, []domain.DayPoint{
		{Date: date(2024, 1, 1), Income: 50000, Expenses: 0},
		{Date: date(2024, 1, 2), Income: 0, Expenses: 20000},
		{Date: date(2024, 1, 3), Income: 0, Expenses: 0},
	}, got)
}

func TestFillMissingDays_NoActivityIsEmpty(t *testing.T) {
	window := domain.DateWindow{Start: date(2024, 1, 1), End: date(2024, 1, 31)}

	got := FillMissingDays(nil, window)

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFillMissingDays_OneEntryPerDayAscending(t *testing.T) {
	window := domain.DateWindow{Start: date(2024, 2, 20), End: date(2024, 3, 5)}
	active := []domain.DayPoint{
		{Date: date(2024, 3, 5), Income: 1},
		{Date: date(2024, 2, 29), Expenses: 2},
		{Date: date(2024, 2, 20), Income: 3},
	}

	got := FillMissingDays(active, window)

	require.Len(t, got, window.Days())
	assert.Equal(t, 15, len(got))
	for i := 1; i < len(got); i++ {
		assert.Equal(t, got[i-1].Date.AddDate(0, 0, 1), got[i].Date)
	}
	assert.Equal(t, window.Start, got[0].Date)
	assert.Equal(t, window.End, got[len(got)-1].Date)
	assert.Equal(t, domain.Milliunits(2), got[9].Expenses)
}

func TestFillMissingDays_MergesDuplicatesAndDropsOutOfWindow(t *testing.T) {
	window := domain.DateWindow{Start: date(2024, 1, 1), End: date(2024, 1, 2)}
	active := []domain.DayPoint{
		{Date: date(2024, 1, 2), Income: 10},
		{Date: date(2024, 1, 2), Income: 5, Expenses: 7},
		{Date: date(2024, 1, 9), Income: 100},
	}

	got := FillMissingDays(active, window)

	assert.Equal(t, []domain.DayPoint{
		{Date: date(2024, 1, 1)},
		{Date: date(2024, 1, 2), Income: 15, Expenses: 7},
	}, got)
}

func TestFillMissingDays_SingleDayWindow(t *testing.T) {
	window := domain.DateWindow{Start: date(2024, 1, 1), End: date(2024, 1, 1)}

	got := FillMissingDays([]domain.DayPoint{{Date: date(2024, 1, 1), Income: 1}}, window)

	assert.Equal(t, []domain.DayPoint{{Date: date(2024, 1, 1), Income: 1}}, got)
}
