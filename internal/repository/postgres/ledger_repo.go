package postgres

import (
	"context"
	"fmt"

	"github.com/dafibh/finboard/finboard-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LedgerRepository implements domain.LedgerWriter using PostgreSQL
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

// InsertAccounts inserts accounts, skipping IDs that already exist
func (r *LedgerRepository) InsertAccounts(ctx context.Context, accounts []*domain.Account) error {
	batch := &pgx.Batch{}
	for _, a := range accounts {
		batch.Queue(
			`INSERT INTO accounts (id, plaid_id, name, user_id) VALUES ($1, $2, $3, $4) ON CONFLICT (id) DO NOTHING`,
			uuidToPgUUID(&a.ID), stringToPgText(a.PlaidID), a.Name, a.UserID,
		)
	}
	if err := r.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert accounts: %w", err)
	}
	return nil
}

// InsertCategories inserts categories, skipping IDs that already exist
func (r *LedgerRepository) InsertCategories(ctx context.Context, categories []*domain.Category) error {
	batch := &pgx.Batch{}
	for _, c := range categories {
		batch.Queue(
			`INSERT INTO categories (id, plaid_id, name, user_id) VALUES ($1, $2, $3, $4) ON CONFLICT (id) DO NOTHING`,
			uuidToPgUUID(&c.ID), stringToPgText(c.PlaidID), c.Name, c.UserID,
		)
	}
	if err := r.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert categories: %w", err)
	}
	return nil
}

// InsertTransactions bulk-loads transactions with COPY inside a single transaction
func (r *LedgerRepository) InsertTransactions(ctx context.Context, transactions []*domain.Transaction) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.CopyFrom(
		ctx,
		pgx.Identifier{"transactions"},
		[]string{"id", "amount", "payee", "notes", "date", "account_id", "category_id"},
		pgx.CopyFromSlice(len(transactions), func(i int) ([]any, error) {
			t := transactions[i]
			return []any{
				uuidToPgUUID(&t.ID),
				int64(t.Amount),
				t.Payee,
				stringToPgText(t.Notes),
				timeToPgDate(t.Date),
				uuidToPgUUID(&t.AccountID),
				uuidToPgUUID(t.CategoryID),
			}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("copy transactions: %w", err)
	}

	return tx.Commit(ctx)
}
