package report

import "github.com/dafibh/finboard/finboard-backend/internal/domain"

const (
	// TopCategoryCount is how many categories are reported individually
	TopCategoryCount = 3
	// OtherCategoryName labels the bucket holding every category past the top ones
	OtherCategoryName = "Other"
)

// RankCategories orders category totals by value, keeps the first topN and
// folds the rest into a single "Other" slice appended last. The "Other" slice
// is only added when at least one category falls outside the top. The sum of
// the returned values always equals the sum of the input values.
//
// The input is not modified.
func RankCategories(categories []domain.CategorySlice, topN int) []domain.CategorySlice {
	ranked := make([]domain.CategorySlice, len(categories))
	copy(ranked, categories)
	sortSlicesDesc(ranked)

	if topN < 0 {
		topN = 0
	}
	if len(ranked) <= topN {
		return ranked
	}

	var otherSum domain.Milliunits
	for _, slice := range ranked[topN:] {
		otherSum += slice.Value
	}

	result := make([]domain.CategorySlice, 0, topN+1)
	result = append(result, ranked[:topN]...)
	return append(result, domain.CategorySlice{Name: OtherCategoryName, Value: otherSum})
}
