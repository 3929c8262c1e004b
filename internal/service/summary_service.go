package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dafibh/finboard/finboard-backend/internal/domain"
	"github.com/dafibh/finboard/finboard-backend/internal/report"
	"github.com/dafibh/finboard/finboard-backend/internal/util"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// SummaryService computes the financial summary shown on the dashboard
type SummaryService struct {
	repo         domain.SummaryRepository
	logger       zerolog.Logger
	location     *time.Location
	maxRangeDays int
	queryTimeout time.Duration
	now          func() time.Time
}

// SummaryServiceConfig holds configuration for the summary service
type SummaryServiceConfig struct {
	Location     *time.Location // Time zone that decides what "today" is
	MaxRangeDays int            // Longest accepted window, 0 for no limit
	QueryTimeout time.Duration  // Upper bound for all storage reads of one summary
}

// DefaultSummaryServiceConfig returns sensible defaults
func DefaultSummaryServiceConfig() SummaryServiceConfig {
	return SummaryServiceConfig{
		Location:     time.UTC,
		MaxRangeDays: 3660,
		QueryTimeout: 10 * time.Second,
	}
}

// SummaryRequest is a summary query as received from the caller. From and To
// are optional YYYY-MM-DD dates, AccountID an optional account UUID.
type SummaryRequest struct {
	UserID    string
	From      string
	To        string
	AccountID string
}

// NewSummaryService creates a new SummaryService
func NewSummaryService(repo domain.SummaryRepository, logger zerolog.Logger, config SummaryServiceConfig) *SummaryService {
	if config.Location == nil {
		config.Location = time.UTC
	}
	if config.QueryTimeout <= 0 {
		config.QueryTimeout = DefaultSummaryServiceConfig().QueryTimeout
	}

	return &SummaryService{
		repo:         repo,
		logger:       logger.With().Str("component", "summary_service").Logger(),
		location:     config.Location,
		maxRangeDays: config.MaxRangeDays,
		queryTimeout: config.QueryTimeout,
		now:          time.Now,
	}
}

// SetClock replaces the clock used to decide "today" for the default window
func (s *SummaryService) SetClock(now func() time.Time) {
	s.now = now
}

// GetSummary resolves the requested window and its comparison window, runs
// the four storage reads concurrently and combines them. Any failed read
// fails the whole summary.
func (s *SummaryService) GetSummary(ctx context.Context, req SummaryRequest) (*domain.Summary, error) {
	if req.UserID == "" {
		return nil, domain.ErrUnauthorized
	}

	accountID, err := parseAccountID(req.AccountID)
	if err != nil {
		return nil, err
	}

	today := util.Today(s.now(), s.location)
	current, previous, err := report.ResolveRange(req.From, req.To, today, s.maxRangeDays)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("user_id", req.UserID).
		Str("from", util.FormatDate(current.Start)).
		Str("to", util.FormatDate(current.End)).
		Str("previous_from", util.FormatDate(previous.Start)).
		Str("previous_to", util.FormatDate(previous.End)).
		Msg("Resolved summary windows")

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	summary := &domain.Summary{
		Window:         current,
		PreviousWindow: previous,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		totals, err := s.AggregatePeriod(gctx, req.UserID, current, accountID)
		if err != nil {
			return fmt.Errorf("current period: %w", err)
		}
		summary.Current = totals
		return nil
	})
	g.Go(func() error {
		totals, err := s.AggregatePeriod(gctx, req.UserID, previous, accountID)
		if err != nil {
			return fmt.Errorf("previous period: %w", err)
		}
		summary.Previous = totals
		return nil
	})
	g.Go(func() error {
		categories, err := s.RankCategories(gctx, req.UserID, current, accountID)
		if err != nil {
			return err
		}
		summary.Categories = categories
		return nil
	})
	g.Go(func() error {
		days, err := s.BuildSeries(gctx, req.UserID, current, accountID)
		if err != nil {
			return err
		}
		summary.Days = days
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary.Changes = report.Changes(summary.Current, summary.Previous)
	return summary, nil
}

// AggregatePeriod returns income, expense and net totals for one window
func (s *SummaryService) AggregatePeriod(ctx context.Context, userID string, window domain.DateWindow, accountID *uuid.UUID) (domain.PeriodTotals, error) {
	totals, err := s.repo.SumPeriod(ctx, domain.SummaryFilter{UserID: userID, Window: window, AccountID: accountID})
	if err != nil {
		return domain.PeriodTotals{}, fmt.Errorf("sum period: %w", err)
	}
	return totals, nil
}

// RankCategories returns the top expense categories of the window with the
// remainder folded into "Other"
func (s *SummaryService) RankCategories(ctx context.Context, userID string, window domain.DateWindow, accountID *uuid.UUID) ([]domain.CategorySlice, error) {
	totals, err := s.repo.SumExpensesByCategory(ctx, domain.SummaryFilter{UserID: userID, Window: window, AccountID: accountID})
	if err != nil {
		return nil, fmt.Errorf("sum expenses by category: %w", err)
	}
	return report.RankCategories(totals, report.TopCategoryCount), nil
}

// BuildSeries returns the gap-filled daily income/expense series of the window
func (s *SummaryService) BuildSeries(ctx context.Context, userID string, window domain.DateWindow, accountID *uuid.UUID) ([]domain.DayPoint, error) {
	active, err := s.repo.SumByDay(ctx, domain.SummaryFilter{UserID: userID, Window: window, AccountID: accountID})
	if err != nil {
		return nil, fmt.Errorf("sum by day: %w", err)
	}
	return report.FillMissingDays(active, window), nil
}

func parseAccountID(raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidAccountID, raw)
	}
	return &id, nil
}
