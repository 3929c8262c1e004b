package domain

import "errors"

// ErrUnauthorized is returned when a request carries no user identity
var ErrUnauthorized = errors.New("unauthorized")

// Summary input errors. These are raised before any storage access.
var (
	ErrInvalidDate       = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidDateRange  = errors.New("start date is after end date")
	ErrDateRangeTooLong  = errors.New("date range exceeds maximum length")
	ErrInvalidAccountID  = errors.New("invalid account id")
	ErrInvalidWorkInputs = errors.New("invalid work calculator inputs")
)
