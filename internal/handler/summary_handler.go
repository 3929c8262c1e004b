package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/dafibh/finboard/finboard-backend/internal/domain"
	"github.com/dafibh/finboard/finboard-backend/internal/middleware"
	"github.com/dafibh/finboard/finboard-backend/internal/service"
	"github.com/dafibh/finboard/finboard-backend/internal/util"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// statusClientClosedRequest is the nginx convention for a request the client
// abandoned before a response was written
const statusClientClosedRequest = 499

// SummaryHandler handles summary HTTP requests
type SummaryHandler struct {
	summaryService *service.SummaryService
}

// NewSummaryHandler creates a new SummaryHandler
func NewSummaryHandler(summaryService *service.SummaryService) *SummaryHandler {
	return &SummaryHandler{
		summaryService: summaryService,
	}
}

// CategoryResponse is one slice of the expense breakdown
type CategoryResponse struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// DayResponse is one point of the daily series
type DayResponse struct {
	Date     string  `json:"date"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}

// SummaryResponse represents the summary API response
type SummaryResponse struct {
	From            string             `json:"from"`
	To              string             `json:"to"`
	RemainingAmount float64            `json:"remainingAmount"`
	RemainingChange float64            `json:"remainingChange"`
	IncomeAmount    float64            `json:"incomeAmount"`
	IncomeChange    float64            `json:"incomeChange"`
	ExpensesAmount  float64            `json:"expensesAmount"`
	ExpensesChange  float64            `json:"expensesChange"`
	Categories      []CategoryResponse `json:"categories"`
	Days            []DayResponse      `json:"days"`
}

// GetSummary handles GET /api/v1/summary
// Accepts optional from, to (YYYY-MM-DD) and accountId query params
func (h *SummaryHandler) GetSummary(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	summary, err := h.summaryService.GetSummary(c.Request().Context(), service.SummaryRequest{
		UserID:    userID,
		From:      c.QueryParam("from"),
		To:        c.QueryParam("to"),
		AccountID: c.QueryParam("accountId"),
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnauthorized):
			return NewUnauthorizedError(c, "Authentication required")
		case errors.Is(err, domain.ErrInvalidDate):
			return NewValidationError(c, "Invalid date format", invalidDateErrors(c))
		case errors.Is(err, domain.ErrInvalidDateRange):
			return NewValidationError(c, "Start date must not be after end date", []ValidationError{{Field: "from", Message: "Must be on or before 'to'"}})
		case errors.Is(err, domain.ErrDateRangeTooLong):
			return NewValidationError(c, "Date range is too long", []ValidationError{{Field: "from", Message: err.Error()}})
		case errors.Is(err, domain.ErrInvalidAccountID):
			return NewValidationError(c, "Invalid account ID", []ValidationError{{Field: "accountId", Message: "Must be a valid UUID"}})
		case errors.Is(err, context.DeadlineExceeded):
			log.Error().Err(err).Str("user_id", userID).Msg("Summary queries timed out")
			return NewUnavailableError(c, "Summary took too long to compute")
		case errors.Is(err, context.Canceled):
			log.Debug().Err(err).Str("user_id", userID).Msg("Summary request canceled by client")
			return c.NoContent(statusClientClosedRequest)
		}
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to get summary")
		return NewInternalError(c, "Failed to get summary")
	}

	return c.JSON(http.StatusOK, DataResponse[SummaryResponse]{Data: toSummaryResponse(summary)})
}

func invalidDateErrors(c echo.Context) []ValidationError {
	var errs []ValidationError
	for _, field := range []string{"from", "to"} {
		raw := c.QueryParam(field)
		if raw == "" {
			continue
		}
		if _, err := util.ParseDate(raw); err != nil {
			errs = append(errs, ValidationError{Field: field, Message: "Must be a date in YYYY-MM-DD format"})
		}
	}
	return errs
}

func toSummaryResponse(summary *domain.Summary) SummaryResponse {
	categories := make([]CategoryResponse, len(summary.Categories))
	for i, category := range summary.Categories {
		categories[i] = CategoryResponse{Name: category.Name, Value: category.Value.Float64()}
	}

	days := make([]DayResponse, len(summary.Days))
	for i, point := range summary.Days {
		days[i] = DayResponse{
			Date:     util.FormatDate(point.Date),
			Income:   point.Income.Float64(),
			Expenses: point.Expenses.Float64(),
		}
	}

	return SummaryResponse{
		From:            util.FormatDate(summary.Window.Start),
		To:              util.FormatDate(summary.Window.End),
		RemainingAmount: summary.Current.Remaining.Float64(),
		RemainingChange: summary.Changes.Remaining,
		IncomeAmount:    summary.Current.Income.Float64(),
		IncomeChange:    summary.Changes.Income,
		ExpensesAmount:  summary.Current.Expenses.Float64(),
		ExpensesChange:  summary.Changes.Expenses,
		Categories:      categories,
		Days:            days,
	}
}
