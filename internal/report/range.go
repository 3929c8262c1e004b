package report

import (
	"fmt"
	"time"

	"github.com/dafibh/finboard/finboard-backend/internal/domain"
	"github.com/dafibh/finboard/finboard-backend/internal/util"
)

// DefaultRangeDays is how far back the window starts when no from date is given
const DefaultRangeDays = 30

// ResolveRange turns optional from/to strings into the current window and the
// comparison window of the same length. Empty strings count as absent.
// today must already be a calendar day in the caller's time zone.
// maxDays <= 0 disables the length check.
//
// The previous window is {start - n, end - n} where n is the current window's
// length in days.
func ResolveRange(fromRaw, toRaw string, today time.Time, maxDays int) (current, previous domain.DateWindow, err error) {
	end := util.CalendarDay(today)
	if toRaw != "" {
		end, err = util.ParseDate(toRaw)
		if err != nil {
			return current, previous, fmt.Errorf("%w: to=%q", domain.ErrInvalidDate, toRaw)
		}
	}

	start := util.AddDays(end, -DefaultRangeDays)
	if fromRaw != "" {
		start, err = util.ParseDate(fromRaw)
		if err != nil {
			return current, previous, fmt.Errorf("%w: from=%q", domain.ErrInvalidDate, fromRaw)
		}
	}

	if start.After(end) {
		return current, previous, fmt.Errorf("%w: %s > %s", domain.ErrInvalidDateRange, util.FormatDate(start), util.FormatDate(end))
	}

	periodLength := util.DaysBetween(start, end) + 1
	if maxDays > 0 && periodLength > maxDays {
		return current, previous, fmt.Errorf("%w: %d days, max %d", domain.ErrDateRangeTooLong, periodLength, maxDays)
	}

	current = domain.DateWindow{Start: start, End: end}
	previous = domain.DateWindow{
		Start: util.AddDays(start, -periodLength),
		End:   util.AddDays(end, -periodLength),
	}
	return current, previous, nil
}
