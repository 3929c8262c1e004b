package postgres

import (
	"testing"
	"time"

	"github.com/dafibh/finboard/finboard-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
)

func TestTimeToPgDate_DropsClock(t *testing.T) {
	got := timeToPgDate(time.Date(2024, 1, 2, 23, 59, 0, 0, time.UTC))

	assert.True(t, got.Valid)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), got.Time)
}

func TestPgDateToTime(t *testing.T) {
	assert.True(t, pgDateToTime(pgtype.Date{}).IsZero())
	assert.Equal(t,
		time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		pgDateToTime(pgtype.Date{Time: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Valid: true}),
	)
}

func TestUUIDToPgUUID(t *testing.T) {
	assert.False(t, uuidToPgUUID(nil).Valid)

	id := uuid.New()
	got := uuidToPgUUID(&id)
	assert.True(t, got.Valid)
	assert.Equal(t, [16]byte(id), got.Bytes)
}

func TestSummaryArgs(t *testing.T) {
	id := uuid.New()
	filter := domain.SummaryFilter{
		UserID:    "user_1",
		Window:    domain.DateWindow{Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), End: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)},
		AccountID: &id,
	}

	args := summaryArgs(filter)

	assert.Len(t, args, 4)
	assert.Equal(t, "user_1", args[0])
	assert.Equal(t, pgtype.Date{Time: filter.Window.Start, Valid: true}, args[1])
	assert.Equal(t, pgtype.Date{Time: filter.Window.End, Valid: true}, args[2])
	assert.Equal(t, pgtype.UUID{Bytes: id, Valid: true}, args[3])
}
