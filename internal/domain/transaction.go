package domain

import (
	"time"

	"github.com/google/uuid"
)

// Transaction is a single ledger entry. Amount is signed: negative amounts
// are expenses, zero and positive amounts are income.
type Transaction struct {
	ID         uuid.UUID  `json:"id"`
	Amount     Milliunits `json:"amount"`
	Payee      string     `json:"payee"`
	Notes      *string    `json:"notes,omitempty"`
	Date       time.Time  `json:"date"`
	AccountID  uuid.UUID  `json:"accountId"`
	CategoryID *uuid.UUID `json:"categoryId,omitempty"`
}

// TransactionRow is the projection the storage layer hands to the summary
// engine: a transaction joined with its category name, if any.
type TransactionRow struct {
	Amount       Milliunits
	Date         time.Time
	CategoryID   *uuid.UUID
	CategoryName *string
}
