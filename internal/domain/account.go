package domain

import (
	"context"

	"github.com/google/uuid"
)

type Account struct {
	ID      uuid.UUID `json:"id"`
	PlaidID *string   `json:"plaidId,omitempty"`
	Name    string    `json:"name"`
	UserID  string    `json:"userId"`
}

type Category struct {
	ID      uuid.UUID `json:"id"`
	PlaidID *string   `json:"plaidId,omitempty"`
	Name    string    `json:"name"`
	UserID  string    `json:"userId"`
}

// LedgerWriter bulk-inserts ledger rows. Used by seeding and storage tests;
// the summary engine itself never writes.
type LedgerWriter interface {
	InsertAccounts(ctx context.Context, accounts []*Account) error
	InsertCategories(ctx context.Context, categories []*Category) error
	InsertTransactions(ctx context.Context, transactions []*Transaction) error
}
