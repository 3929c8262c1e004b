package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dafibh/finboard/finboard-backend/internal/domain"
	"github.com/dafibh/finboard/finboard-backend/internal/util"
)

// Arguments: user id, start date, end date, account id twice ("" for all accounts)
const summaryScope = `
FROM transactions t
INNER JOIN accounts a ON a.id = t.account_id`

const summaryWhere = `
WHERE a.user_id = ?
  AND t.date >= ?
  AND t.date <= ?
  AND (? = '' OR t.account_id = ?)`

const sumPeriodQuery = `
SELECT
    COALESCE(SUM(CASE WHEN t.amount >= 0 THEN t.amount ELSE 0 END), 0) AS income,
    COALESCE(SUM(CASE WHEN t.amount < 0 THEN t.amount ELSE 0 END), 0) AS expenses,
    COALESCE(SUM(t.amount), 0) AS remaining` + summaryScope + summaryWhere

const sumExpensesByCategoryQuery = `
SELECT
    c.name,
    SUM(ABS(t.amount)) AS value` + summaryScope + `
INNER JOIN categories c ON c.id = t.category_id` + summaryWhere + `
  AND t.amount < 0
GROUP BY c.name
ORDER BY value DESC`

const sumByDayQuery = `
SELECT
    t.date,
    SUM(CASE WHEN t.amount >= 0 THEN t.amount ELSE 0 END) AS income,
    SUM(CASE WHEN t.amount < 0 THEN ABS(t.amount) ELSE 0 END) AS expenses` + summaryScope + summaryWhere + `
GROUP BY t.date
ORDER BY t.date`

// SummaryRepository implements domain.SummaryRepository on SQLite
type SummaryRepository struct {
	db *sql.DB
}

// NewSummaryRepository creates a new SummaryRepository
func NewSummaryRepository(db *sql.DB) *SummaryRepository {
	return &SummaryRepository{db: db}
}

func (r *SummaryRepository) SumPeriod(ctx context.Context, filter domain.SummaryFilter) (domain.PeriodTotals, error) {
	var income, expenses, remaining int64
	err := r.db.QueryRowContext(ctx, sumPeriodQuery, summaryArgs(filter)...).Scan(&income, &expenses, &remaining)
	if err != nil {
		return domain.PeriodTotals{}, err
	}
	return domain.PeriodTotals{
		Income:    domain.Milliunits(income),
		Expenses:  domain.Milliunits(expenses),
		Remaining: domain.Milliunits(remaining),
	}, nil
}

func (r *SummaryRepository) SumExpensesByCategory(ctx context.Context, filter domain.SummaryFilter) ([]domain.CategorySlice, error) {
	rows, err := r.db.QueryContext(ctx, sumExpensesByCategoryQuery, summaryArgs(filter)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slices := make([]domain.CategorySlice, 0)
	for rows.Next() {
		var name string
		var value int64
		if err := rows.Scan(&name, &value); err != nil {
			return nil, err
		}
		slices = append(slices, domain.CategorySlice{Name: name, Value: domain.Milliunits(value)})
	}
	return slices, rows.Err()
}

func (r *SummaryRepository) SumByDay(ctx context.Context, filter domain.SummaryFilter) ([]domain.DayPoint, error) {
	rows, err := r.db.QueryContext(ctx, sumByDayQuery, summaryArgs(filter)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	days := make([]domain.DayPoint, 0)
	for rows.Next() {
		var rawDate string
		var income, expenses int64
		if err := rows.Scan(&rawDate, &income, &expenses); err != nil {
			return nil, err
		}
		date, err := util.ParseDate(rawDate)
		if err != nil {
			return nil, fmt.Errorf("stored transaction date %q: %w", rawDate, err)
		}
		days = append(days, domain.DayPoint{
			Date:     date,
			Income:   domain.Milliunits(income),
			Expenses: domain.Milliunits(expenses),
		})
	}
	return days, rows.Err()
}

func summaryArgs(filter domain.SummaryFilter) []any {
	accountID := ""
	if filter.AccountID != nil {
		accountID = filter.AccountID.String()
	}
	return []any{
		filter.UserID,
		util.FormatDate(filter.Window.Start),
		util.FormatDate(filter.Window.End),
		accountID,
		accountID,
	}
}
