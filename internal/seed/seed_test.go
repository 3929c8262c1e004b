package seed

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/dafibh/finboard/finboard-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	today := time.Date(2024, 3, 31, 18, 30, 0, 0, time.UTC)
	ledger := Generate(rand.New(rand.NewPCG(1, 2)), DefaultUserID, today, 10)

	require.Len(t, ledger.Accounts, 2)
	require.Len(t, ledger.Categories, 4)

	perDay := make(map[time.Time]int)
	for _, tx := range ledger.Transactions {
		perDay[tx.Date]++
		assert.Equal(t, ledger.Accounts[0].ID, tx.AccountID)
		require.NotNil(t, tx.CategoryID)
		assert.NotZero(t, tx.Amount)
		assert.False(t, tx.Date.Before(time.Date(2024, 3, 21, 0, 0, 0, 0, time.UTC)))
		assert.False(t, tx.Date.After(time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)))
	}

	assert.Len(t, perDay, 11)
	for date, count := range perDay {
		assert.GreaterOrEqual(t, count, 1, date)
		assert.LessOrEqual(t, count, 4, date)
	}
}

func TestGenerate_AmountsWithinCategoryRange(t *testing.T) {
	ledger := Generate(rand.New(rand.NewPCG(7, 7)), DefaultUserID, time.Now(), 60)

	names := make(map[uuid.UUID]string)
	for _, c := range ledger.Categories {
		names[c.ID] = c.Name
	}

	for _, tx := range ledger.Transactions {
		r := categoryAmounts[names[*tx.CategoryID]]
		value := tx.Amount.Abs()
		assert.GreaterOrEqual(t, int64(value), int64(r.min*1000))
		assert.LessOrEqual(t, int64(value), int64((r.min+r.spread)*1000))
	}
}

func TestGenerate_StableIDs(t *testing.T) {
	first := Generate(rand.New(rand.NewPCG(1, 1)), "user_a", time.Now(), 1)
	second := Generate(rand.New(rand.NewPCG(2, 2)), "user_a", time.Now(), 1)
	other := Generate(rand.New(rand.NewPCG(1, 1)), "user_b", time.Now(), 1)

	assert.Equal(t, first.Accounts[0].ID, second.Accounts[0].ID)
	assert.Equal(t, first.Categories[2].ID, second.Categories[2].ID)
	assert.NotEqual(t, first.Accounts[0].ID, other.Accounts[0].ID)
}

func TestWrite(t *testing.T) {
	repo := testutil.NewMockSummaryRepository()
	ledger := Generate(rand.New(rand.NewPCG(3, 4)), DefaultUserID, time.Now(), 5)

	require.NoError(t, Write(context.Background(), repo, ledger))

	assert.Len(t, repo.Accounts, 2)
	assert.Len(t, repo.Categories, 4)
	assert.Len(t, repo.Transactions, len(ledger.Transactions))

}
