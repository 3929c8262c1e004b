package report

import (
	"testing"

	"github.com/dafibh/finboard/finboard-backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func sumValues(slices []domain.CategorySlice) domain.Milliunits {
	var total domain.Milliunits
	for _, s := range slices {
		total += s.Value
	}
	return total
}

func TestRankCategories_FoldsTailIntoOther(t *testing.T) {
	input := []domain.CategorySlice{
		{Name: "Rent", Value: 400},
		{Name: "Food", Value: 300},
		{Name: "Utilities", Value: 200},
		{Name: "Clothing", Value: 100},
		{Name: "Travel", Value: 50},
	}

	got := RankCategories(input, TopCategoryCount)

	assert.Equal(t, []domain.CategorySlice{
		{Name: "Rent", Value: 400},
		{Name: "Food", Value: 300},
		{Name: "Utilities", Value: 200},
		{Name: OtherCategoryName, Value: 150},
	}, got)
	assert.Equal(t, domain.Milliunits(1050), sumValues(got))
}

func TestRankCategories(t *testing.T) {
	tests := []struct {
		name  string
		input []domain.CategorySlice
		want  []domain.CategorySlice
	}{
		{
			name:  "no categories",
			input: nil,
			want:  []domain.CategorySlice{},
		},
		{
			name:  "single category",
			input: []domain.CategorySlice{{Name: "Food", Value: 10}},
			want:  []domain.CategorySlice{{Name: "Food", Value: 10}},
		},
		{
			name: "exactly three categories has no other bucket",
			input: []domain.CategorySlice{
				{Name: "A", Value: 1}, {Name: "B", Value: 3}, {Name: "C", Value: 2},
			},
			want: []domain.CategorySlice{
				{Name: "B", Value: 3}, {Name: "C", Value: 2}, {Name: "A", Value: 1},
			},
		},
		{
			name: "four categories puts the fourth in other",
			input: []domain.CategorySlice{
				{Name: "A", Value: 40}, {Name: "B", Value: 30}, {Name: "C", Value: 20}, {Name: "D", Value: 10},
			},
			want: []domain.CategorySlice{
				{Name: "A", Value: 40}, {Name: "B", Value: 30}, {Name: "C", Value: 20}, {Name: OtherCategoryName, Value: 10},
			},
		},
		{
			name: "ties keep input order",
			input: []domain.CategorySlice{
				{Name: "First", Value: 5}, {Name: "Second", Value: 5}, {Name: "Third", Value: 5}, {Name: "Fourth", Value: 5},
			},
			want: []domain.CategorySlice{
				{Name: "First", Value: 5}, {Name: "Second", Value: 5}, {Name: "Third", Value: 5}, {Name: OtherCategoryName, Value: 5},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RankCategories(tt.input, TopCategoryCount)

			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got), TopCategoryCount+1)
			assert.Equal(t, sumValues(tt.input), sumValues(got))
		})
	}
}

func TestRankCategories_DoesNotModifyInput(t *testing.T) {
	input := []domain.CategorySlice{
		{Name: "Small", Value: 1}, {Name: "Big", Value: 9},
	}

	RankCategories(input, TopCategoryCount)

	assert.Equal(t, "Small", input[0].Name)
}

func TestRankCategories_ConservesTotalForManyCategories(t *testing.T) {
	input := make([]domain.CategorySlice, 0, 20)
	for i := 1; i <= 20; i++ {
		input = append(input, domain.CategorySlice{Name: string(rune('A' + i)), Value: domain.Milliunits(i * 1001)})
	}

	got := RankCategories(input, TopCategoryCount)

	assert.Len(t, got, 4)
	assert.Equal(t, OtherCategoryName, got[3].Name)
	assert.Equal(t, sumValues(input), sumValues(got))
	assert.Equal(t, domain.Milliunits((1+2+3+4+5+6+7+8+9+10+11+12+13+14+15+16+17)*1001), got[3].Value)
}
