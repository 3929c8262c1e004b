package testutil

import (
	"context"
	"sync"

	"github.com/dafibh/finboard/finboard-backend/internal/domain"
	"github.com/dafibh/finboard/finboard-backend/internal/report"
	"github.com/dafibh/finboard/finboard-backend/internal/util"
	"github.com/google/uuid"
)

// MockSummaryRepository is an in-memory implementation of
// domain.SummaryRepository and domain.LedgerWriter
type MockSummaryRepository struct {
	mu           sync.Mutex
	Accounts     map[uuid.UUID]*domain.Account
	Categories   map[uuid.UUID]*domain.Category
	Transactions []*domain.Transaction

	// Injected failures, checked before any work is done
	SumPeriodErr    error
	CategoriesErr   error
	SumByDayErr     error
	PeriodFilters   []domain.SummaryFilter
	CategoryFilters []domain.SummaryFilter
	DayFilters      []domain.SummaryFilter
}

// NewMockSummaryRepository creates a new MockSummaryRepository
func NewMockSummaryRepository() *MockSummaryRepository {
	return &MockSummaryRepository{
		Accounts:   make(map[uuid.UUID]*domain.Account),
		Categories: make(map[uuid.UUID]*domain.Category),
	}
}

// AddAccount adds an account owned by userID and returns it
func (m *MockSummaryRepository) AddAccount(userID, name string) *domain.Account {
	account := &domain.Account{ID: uuid.New(), Name: name, UserID: userID}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Accounts[account.ID] = account
	return account
}

// AddCategory adds a category owned by userID and returns it
func (m *MockSummaryRepository) AddCategory(userID, name string) *domain.Category {
	category := &domain.Category{ID: uuid.New(), Name: name, UserID: userID}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Categories[category.ID] = category
	return category
}

// AddTransaction adds a transaction, assigning an ID when it has none
func (m *MockSummaryRepository) AddTransaction(transaction *domain.Transaction) {
	if transaction.ID == uuid.Nil {
		transaction.ID = uuid.New()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Transactions = append(m.Transactions, transaction)
}

// InsertAccounts implements domain.LedgerWriter
func (m *MockSummaryRepository) InsertAccounts(ctx context.Context, accounts []*domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range accounts {
		m.Accounts[a.ID] = a
	}
	return nil
}

// InsertCategories implements domain.LedgerWriter
func (m *MockSummaryRepository) InsertCategories(ctx context.Context, categories []*domain.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range categories {
		m.Categories[c.ID] = c
	}
	return nil
}

// InsertTransactions implements domain.LedgerWriter
func (m *MockSummaryRepository) InsertTransactions(ctx context.Context, transactions []*domain.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Transactions = append(m.Transactions, transactions...)
	return nil
}

// SumPeriod implements domain.SummaryRepository
func (m *MockSummaryRepository) SumPeriod(ctx context.Context, filter domain.SummaryFilter) (domain.PeriodTotals, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PeriodFilters = append(m.PeriodFilters, filter)
	if m.SumPeriodErr != nil {
		return domain.PeriodTotals{}, m.SumPeriodErr
	}
	return report.AggregatePeriod(m.rows(filter)), nil
}

// SumExpensesByCategory implements domain.SummaryRepository
func (m *MockSummaryRepository) SumExpensesByCategory(ctx context.Context, filter domain.SummaryFilter) ([]domain.CategorySlice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CategoryFilters = append(m.CategoryFilters, filter)
	if m.CategoriesErr != nil {
		return nil, m.CategoriesErr
	}
	return report.SumExpensesByCategory(m.rows(filter)), nil
}

// SumByDay implements domain.SummaryRepository
func (m *MockSummaryRepository) SumByDay(ctx context.Context, filter domain.SummaryFilter) ([]domain.DayPoint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DayFilters = append(m.DayFilters, filter)
	if m.SumByDayErr != nil {
		return nil, m.SumByDayErr
	}
	return report.SumByDay(m.rows(filter)), nil
}

// rows applies the ownership, window and account filters. Caller holds mu.
func (m *MockSummaryRepository) rows(filter domain.SummaryFilter) []domain.TransactionRow {
	rows := make([]domain.TransactionRow, 0)
	for _, t := range m.Transactions {
		account, ok := m.Accounts[t.AccountID]
		if !ok || account.UserID != filter.UserID {
			continue
		}
		if filter.AccountID != nil && t.AccountID != *filter.AccountID {
			continue
		}
		if !filter.Window.Contains(util.CalendarDay(t.Date)) {
			continue
		}

		row := domain.TransactionRow{Amount: t.Amount, Date: t.Date, CategoryID: t.CategoryID}
		if t.CategoryID != nil {
			if category, ok := m.Categories[*t.CategoryID]; ok {
				name := category.Name
				row.CategoryName = &name
			}
		}
		rows = append(rows, row)
	}
	return rows
}
