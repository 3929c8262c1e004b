package postgres

import (
	"context"

	"github.com/dafibh/finboard/finboard-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// All summary queries share the same scope: transactions of accounts owned
// by $1, dated within [$2, $3], optionally restricted to account $4.
const summaryScope = `
FROM transactions t
INNER JOIN accounts a ON a.id = t.account_id`

const summaryWhere = `
WHERE a.user_id = $1
  AND t.date >= $2
  AND t.date <= $3
  AND ($4::UUID IS NULL OR t.account_id = $4::UUID)`

const sumPeriodQuery = `
SELECT
    COALESCE(SUM(CASE WHEN t.amount >= 0 THEN t.amount ELSE 0 END), 0)::BIGINT AS income,
    COALESCE(SUM(CASE WHEN t.amount < 0 THEN t.amount ELSE 0 END), 0)::BIGINT AS expenses,
    COALESCE(SUM(t.amount), 0)::BIGINT AS remaining` + summaryScope + summaryWhere

const sumExpensesByCategoryQuery = `
SELECT
    c.name,
    SUM(ABS(t.amount))::BIGINT AS value` + summaryScope + `
INNER JOIN categories c ON c.id = t.category_id` + summaryWhere + `
  AND t.amount < 0
GROUP BY c.name
ORDER BY value DESC`

const sumByDayQuery = `
SELECT
    t.date,
    SUM(CASE WHEN t.amount >= 0 THEN t.amount ELSE 0 END)::BIGINT AS income,
    SUM(CASE WHEN t.amount < 0 THEN ABS(t.amount) ELSE 0 END)::BIGINT AS expenses` + summaryScope + summaryWhere + `
GROUP BY t.date
ORDER BY t.date`

// SummaryRepository implements domain.SummaryRepository using PostgreSQL
type SummaryRepository struct {
	pool *pgxpool.Pool
}

// NewSummaryRepository creates a new SummaryRepository
func NewSummaryRepository(pool *pgxpool.Pool) *SummaryRepository {
	return &SummaryRepository{pool: pool}
}

// SumPeriod returns signed income, expense and net sums for the filter
func (r *SummaryRepository) SumPeriod(ctx context.Context, filter domain.SummaryFilter) (domain.PeriodTotals, error) {
	var income, expenses, remaining int64
	err := r.pool.QueryRow(ctx, sumPeriodQuery, summaryArgs(filter)...).Scan(&income, &expenses, &remaining)
	if err != nil {
		return domain.PeriodTotals{}, err
	}
	return domain.PeriodTotals{
		Income:    domain.Milliunits(income),
		Expenses:  domain.Milliunits(expenses),
		Remaining: domain.Milliunits(remaining),
	}, nil
}

// SumExpensesByCategory returns absolute expense totals per category name, largest first
func (r *SummaryRepository) SumExpensesByCategory(ctx context.Context, filter domain.SummaryFilter) ([]domain.CategorySlice, error) {
	rows, err := r.pool.Query(ctx, sumExpensesByCategoryQuery, summaryArgs(filter)...)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.CategorySlice, error) {
		var name string
		var value int64
		if err := row.Scan(&name, &value); err != nil {
			return domain.CategorySlice{}, err
		}
		return domain.CategorySlice{Name: name, Value: domain.Milliunits(value)}, nil
	})
}

// SumByDay returns income and expense magnitudes for each active day, oldest first
func (r *SummaryRepository) SumByDay(ctx context.Context, filter domain.SummaryFilter) ([]domain.DayPoint, error) {
	rows, err := r.pool.Query(ctx, sumByDayQuery, summaryArgs(filter)...)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.DayPoint, error) {
		var date pgtype.Date
		var income, expenses int64
		if err := row.Scan(&date, &income, &expenses); err != nil {
			return domain.DayPoint{}, err
		}
		return domain.DayPoint{
			Date:     pgDateToTime(date),
			Income:   domain.Milliunits(income),
			Expenses: domain.Milliunits(expenses),
		}, nil
	})
}

func summaryArgs(filter domain.SummaryFilter) []any {
	return []any{
		filter.UserID,
		timeToPgDate(filter.Window.Start),
		timeToPgDate(filter.Window.End),
		uuidToPgUUID(filter.AccountID),
	}
}
