// Package seed generates a demo ledger: a few categories, two accounts and
// one to four random transactions per day.
package seed

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/dafibh/finboard/finboard-backend/internal/domain"
	"github.com/dafibh/finboard/finboard-backend/internal/util"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultUserID owns the generated ledger unless another user is given
const DefaultUserID = "user_2nR3WhLZ4vb3aQsBGGhkLSu1cpn"

// DefaultDays is how many days back from today transactions are generated
const DefaultDays = 90

// expenseProbability is the share of generated transactions that are expenses
const expenseProbability = 0.4

var (
	categoryNames = []string{"Food", "Rent", "Utilities", "Clothing"}
	accountNames  = []string{"Checking", "Savings"}

	// namespace for deterministic account and category IDs
	seedNamespace = uuid.MustParse("8f2b3c1e-6a4d-4f0b-9c57-2d1e8a7b6c90")
)

// amountRange is the [min, min+spread) display amount for a category
type amountRange struct {
	min, spread float64
}

var categoryAmounts = map[string]amountRange{
	"Rent":           {90, 400},
	"Utilities":      {50, 200},
	"Food":           {10, 30},
	"Transportation": {15, 50},
	"Health":         {15, 50},
	"Entertainment":  {20, 100},
	"Clothing":       {20, 100},
	"Miscellaneous":  {20, 100},
}

// Ledger is a generated data set ready to be written
type Ledger struct {
	Accounts     []*domain.Account
	Categories   []*domain.Category
	Transactions []*domain.Transaction
}

// Generate builds a ledger for userID covering today-days through today.
// Account and category IDs depend only on userID and name, so writing a
// second ledger for the same user reuses them.
func Generate(rng *rand.Rand, userID string, today time.Time, days int) *Ledger {
	ledger := &Ledger{}
	for _, name := range accountNames {
		ledger.Accounts = append(ledger.Accounts, &domain.Account{ID: stableID(userID, "account", name), Name: name, UserID: userID})
	}
	for _, name := range categoryNames {
		ledger.Categories = append(ledger.Categories, &domain.Category{ID: stableID(userID, "category", name), Name: name, UserID: userID})
	}

	end := util.CalendarDay(today)
	notes := "Random transaction"
	for date := util.AddDays(end, -days); !date.After(end); date = util.AddDays(date, 1) {
		count := rng.IntN(4) + 1
		for i := 0; i < count; i++ {
			category := ledger.Categories[rng.IntN(len(ledger.Categories))]
			amount := randomAmount(rng, category.Name)
			if rng.Float64() < expenseProbability {
				amount = amount.Neg()
			}

			ledger.Transactions = append(ledger.Transactions, &domain.Transaction{
				ID:         uuid.New(),
				Amount:     domain.MilliunitsFromDecimal(amount),
				Payee:      "Merchant",
				Notes:      &notes,
				Date:       date,
				AccountID:  ledger.Accounts[0].ID,
				CategoryID: &category.ID,
			})
		}
	}
	return ledger
}

// Write stores the ledger through w, parents first
func Write(ctx context.Context, w domain.LedgerWriter, ledger *Ledger) error {
	if err := w.InsertCategories(ctx, ledger.Categories); err != nil {
		return fmt.Errorf("insert categories: %w", err)
	}
	if err := w.InsertAccounts(ctx, ledger.Accounts); err != nil {
		return fmt.Errorf("insert accounts: %w", err)
	}
	if err := w.InsertTransactions(ctx, ledger.Transactions); err != nil {
		return fmt.Errorf("insert transactions: %w", err)
	}
	return nil
}

func randomAmount(rng *rand.Rand, category string) decimal.Decimal {
	r, ok := categoryAmounts[category]
	if !ok {
		r = amountRange{10, 50}
	}
	return decimal.NewFromFloat(rng.Float64()*r.spread + r.min).Round(2)
}

func stableID(userID, kind, name string) uuid.UUID {
	return uuid.NewSHA1(seedNamespace, []byte(userID+"/"+kind+"/"+name))
}
