package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/dafibh/finboard/finboard-backend/internal/domain"
	"github.com/dafibh/finboard/finboard-backend/internal/service"
	"github.com/dafibh/finboard/finboard-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUserID = "user_2nR3WhLZ4vb3aQsBGGhkLSu1cpn"

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "data", "finboard.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

type ledgerFixture struct {
	checking *domain.Account
	savings  *domain.Account
	food     *domain.Category
	rent     *domain.Category
}

// seedLedger writes the same fixture through every given writer
func seedLedger(t *testing.T, writers ...domain.LedgerWriter) ledgerFixture {
	t.Helper()
	f := ledgerFixture{
		checking: &domain.Account{ID: uuid.New(), Name: "Checking", UserID: testUserID},
		savings:  &domain.Account{ID: uuid.New(), Name: "Savings", UserID: testUserID},
		food:     &domain.Category{ID: uuid.New(), Name: "Food", UserID: testUserID},
		rent:     &domain.Category{ID: uuid.New(), Name: "Rent", UserID: testUserID},
	}
	stranger := &domain.Account{ID: uuid.New(), Name: "Theirs", UserID: "user_other"}
	notes := "split with roommate"

	transactions := []*domain.Transaction{
		{ID: uuid.New(), Amount: 100000, Payee: "Employer", Date: day(1), AccountID: f.checking.ID},
		{ID: uuid.New(), Amount: -25500, Payee: "Grocer", Date: day(1), AccountID: f.checking.ID, CategoryID: &f.food.ID},
		{ID: uuid.New(), Amount: -60000, Payee: "Landlord", Notes: &notes, Date: day(3), AccountID: f.checking.ID, CategoryID: &f.rent.ID},
		{ID: uuid.New(), Amount: -4500, Payee: "Cafe", Date: day(3), AccountID: f.savings.ID, CategoryID: &f.food.ID},
		{ID: uuid.New(), Amount: -1000, Payee: "Unknown", Date: day(4), AccountID: f.savings.ID},
		{ID: uuid.New(), Amount: 7000, Payee: "Interest", Date: day(10), AccountID: f.savings.ID},
		{ID: uuid.New(), Amount: 500000, Payee: "Elsewhere", Date: day(2), AccountID: stranger.ID},
	}

	ctx := context.Background()
	for _, w := range writers {
		require.NoError(t, w.InsertAccounts(ctx, []*domain.Account{f.checking, f.savings, stranger}))
		require.NoError(t, w.InsertCategories(ctx, []*domain.Category{f.food, f.rent}))
		require.NoError(t, w.InsertTransactions(ctx, transactions))
	}
	return f
}

func window(start, end int) domain.DateWindow {
	return domain.DateWindow{Start: day(start), End: day(end)}
}

func TestSummaryRepository_SumPeriod(t *testing.T) {
	db := openTestDB(t)
	seedLedger(t, NewLedgerRepository(db))
	repo := NewSummaryRepository(db)

	totals, err := repo.SumPeriod(context.Background(), domain.SummaryFilter{UserID: testUserID, Window: window(1, 4)})

	require.NoError(t, err)
	assert.Equal(t, domain.PeriodTotals{Income: 100000, Expenses: -91000, Remaining: 9000}, totals)
}

func TestSummaryRepository_SumPeriod_EmptyWindow(t *testing.T) {
	db := openTestDB(t)
	seedLedger(t, NewLedgerRepository(db))
	repo := NewSummaryRepository(db)

	totals, err := repo.SumPeriod(context.Background(), domain.SummaryFilter{UserID: testUserID, Window: window(20, 25)})

	require.NoError(t, err)
	assert.Equal(t, domain.PeriodTotals{}, totals)
}

func TestSummaryRepository_SumPeriod_AccountFilter(t *testing.T) {
	db := openTestDB(t)
	f := seedLedger(t, NewLedgerRepository(db))
	repo := NewSummaryRepository(db)

	totals, err := repo.SumPeriod(context.Background(), domain.SummaryFilter{
		UserID:    testUserID,
		Window:    window(1, 31),
		AccountID: &f.savings.ID,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.PeriodTotals{Income: 7000, Expenses: -5500, Remaining: 1500}, totals)
}

func TestSummaryRepository_SumPeriod_OtherUserSeesNothingOfOurs(t *testing.T) {
	db := openTestDB(t)
	f := seedLedger(t, NewLedgerRepository(db))
	repo := NewSummaryRepository(db)

	totals, err := repo.SumPeriod(context.Background(), domain.SummaryFilter{
		UserID:    "user_other",
		Window:    window(1, 31),
		AccountID: &f.checking.ID,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.PeriodTotals{}, totals)
}

func TestSummaryRepository_SumExpensesByCategory(t *testing.T) {
	db := openTestDB(t)
	seedLedger(t, NewLedgerRepository(db))
	repo := NewSummaryRepository(db)

	categories, err := repo.SumExpensesByCategory(context.Background(), domain.SummaryFilter{UserID: testUserID, Window: window(1, 31)})

	require.NoError(t, err)
	assert.Equal(t, []domain.CategorySlice{
		{Name: "Rent", Value: 60000},
		{Name: "Food", Value: 30000},
	}, categories)
}

func TestSummaryRepository_SumByDay(t *testing.T) {
	db := openTestDB(t)
	seedLedger(t, NewLedgerRepository(db))
	repo := NewSummaryRepository(db)

	days, err := repo.SumByDay(context.Background(), domain.SummaryFilter{UserID: testUserID, Window: window(1, 9)})

	require.NoError(t, err)
	assert.Equal(t, []domain.DayPoint{
		{Date: day(1), Income: 100000, Expenses: 25500},
		{Date: day(3), Income: 0, Expenses: 64500},
		{Date: day(4), Income: 0, Expenses: 1000},
	}, days)
}

func TestSummaryRepository_MatchesInMemoryRepository(t *testing.T) {
	db := openTestDB(t)
	mock := testutil.NewMockSummaryRepository()
	f := seedLedger(t, NewLedgerRepository(db), mock)
	now := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)

	requests := []service.SummaryRequest{
		{UserID: testUserID, From: "2024-01-01", To: "2024-01-31"},
		{UserID: testUserID, From: "2024-01-02", To: "2024-01-04"},
		{UserID: testUserID, From: "2024-01-01", To: "2024-01-31", AccountID: f.savings.ID.String()},
		{UserID: testUserID},
		{UserID: "user_other", From: "2024-01-01", To: "2024-01-31"},
	}

	stored := service.NewSummaryService(NewSummaryRepository(db), zerolog.Nop(), service.DefaultSummaryServiceConfig())
	inMemory := service.NewSummaryService(mock, zerolog.Nop(), service.DefaultSummaryServiceConfig())
	stored.SetClock(func() time.Time { return now })
	inMemory.SetClock(func() time.Time { return now })

	for _, req := range requests {
		want, err := inMemory.GetSummary(context.Background(), req)
		require.NoError(t, err)
		got, err := stored.GetSummary(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, want, got, "request %+v", req)
	}
}

func TestLedgerRepository_InsertAccountsIgnoresDuplicates(t *testing.T) {
	db := openTestDB(t)
	ledger := NewLedgerRepository(db)
	account := &domain.Account{ID: uuid.New(), Name: "Checking", UserID: testUserID}

	require.NoError(t, ledger.InsertAccounts(context.Background(), []*domain.Account{account}))
	require.NoError(t, ledger.InsertAccounts(context.Background(), []*domain.Account{account}))

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM accounts`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestLedgerRepository_InsertTransactionsRejectsUnknownAccount(t *testing.T) {
	db := openTestDB(t)
	ledger := NewLedgerRepository(db)

	err := ledger.InsertTransactions(context.Background(), []*domain.Transaction{
		{ID: uuid.New(), Amount: -1000, Payee: "Nobody", Date: day(1), AccountID: uuid.New()},
	})

	assert.Error(t, err)
}

func TestOpen_ReappliesMigrationsWithoutError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finboard.db")

	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	assert.NoError(t, db.Close())
}
