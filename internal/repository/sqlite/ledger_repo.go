package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dafibh/finboard/finboard-backend/internal/domain"
	"github.com/dafibh/finboard/finboard-backend/internal/util"
)

// LedgerRepository implements domain.LedgerWriter on SQLite
type LedgerRepository struct {
	db *sql.DB
}

// NewLedgerRepository creates a new LedgerRepository
func NewLedgerRepository(db *sql.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) InsertAccounts(ctx context.Context, accounts []*domain.Account) error {
	return r.insertAll(ctx, `INSERT OR IGNORE INTO accounts (id, plaid_id, name, user_id) VALUES (?, ?, ?, ?)`, len(accounts), func(i int) []any {
		a := accounts[i]
		return []any{a.ID.String(), nullString(a.PlaidID), a.Name, a.UserID}
	})
}

func (r *LedgerRepository) InsertCategories(ctx context.Context, categories []*domain.Category) error {
	return r.insertAll(ctx, `INSERT OR IGNORE INTO categories (id, plaid_id, name, user_id) VALUES (?, ?, ?, ?)`, len(categories), func(i int) []any {
		c := categories[i]
		return []any{c.ID.String(), nullString(c.PlaidID), c.Name, c.UserID}
	})
}

func (r *LedgerRepository) InsertTransactions(ctx context.Context, transactions []*domain.Transaction) error {
	return r.insertAll(ctx, `INSERT INTO transactions (id, amount, payee, notes, date, account_id, category_id) VALUES (?, ?, ?, ?, ?, ?, ?)`, len(transactions), func(i int) []any {
		t := transactions[i]
		var categoryID sql.NullString
		if t.CategoryID != nil {
			categoryID = sql.NullString{String: t.CategoryID.String(), Valid: true}
		}
		return []any{t.ID.String(), int64(t.Amount), t.Payee, nullString(t.Notes), util.FormatDate(t.Date), t.AccountID.String(), categoryID}
	})
}

// insertAll runs one prepared statement n times inside a single transaction
func (r *LedgerRepository) insertAll(ctx context.Context, query string, n int, args func(i int) []any) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		if _, err := stmt.ExecContext(ctx, args(i)...); err != nil {
			return fmt.Errorf("insert row %d: %w", i, err)
		}
	}

	return tx.Commit()
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
