package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/solstice-events/bookings-api/internal/domain"
	"github.com/solstice-events/bookings-api/internal/service"
	"github.com/solstice-events/bookings-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendarCreateManualEvent(t *testing.T) {
	f := newFixture(t, testutil.SetupTestDB(t))

	dto, err := f.calendar.Create(context.Background(), &domain.CreateCalendarEventRequest{
		Title:         "Client meeting",
		StartDateTime: "2026-05-10T10:00:00Z",
		EndDateTime:   "2026-05-10T11:00:00Z",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.CalendarEventTypeMeeting, dto.EventType)
	assert.Equal(t, "Client meeting", dto.Title)
}

func TestCalendarCreateRejectsInvertedWindow(t *testing.T) {
	f := newFixture(t, testutil.SetupTestDB(t))

	_, err := f.calendar.Create(context.Background(), &domain.CreateCalendarEventRequest{
		Title:         "Backwards",
		StartDateTime: "2026-05-10T11:00:00Z",
		EndDateTime:   "2026-05-10T10:00:00Z",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	// A zero-length window is rejected too.
	_, err = f.calendar.Create(context.Background(), &domain.CreateCalendarEventRequest{
		Title:         "Instant",
		StartDateTime: "2026-05-10T10:00:00Z",
		EndDateTime:   "2026-05-10T10:00:00Z",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestCalendarDeleteDerivedEventRefused(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := newFixture(t, db)
	ctx := context.Background()

	booking, err := f.bookings.Create(ctx, &domain.CreateBookingRequest{
		Title:     "Protected gig",
		EventDate: "2026-07-18",
	})
	require.NoError(t, err)

	events := gigEvents(t, db, booking.ID)
	require.Len(t, events, 1)

	err = f.calendar.Delete(ctx, events[0].ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestCalendarDeleteManualEvent(t *testing.T) {
	f := newFixture(t, testutil.SetupTestDB(t))
	ctx := context.Background()

	created, err := f.calendar.Create(ctx, &domain.CreateCalendarEventRequest{
		Title:         "Deletable",
		EventType:     domain.CalendarEventTypeUnavailable,
		StartDateTime: "2026-05-12T00:00:00Z",
		EndDateTime:   "2026-05-13T00:00:00Z",
	})
	require.NoError(t, err)

	require.NoError(t, f.calendar.Delete(ctx, created.ID))

	_, err = f.calendar.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestCalendarFindOverlapping(t *testing.T) {
	f := newFixture(t, testutil.SetupTestDB(t))
	ctx := context.Background()

	_, err := f.calendar.Create(ctx, &domain.CreateCalendarEventRequest{
		Title:         "Morning setup",
		EventType:     domain.CalendarEventTypeSetup,
		StartDateTime: "2026-05-10T08:00:00Z",
		EndDateTime:   "2026-05-10T12:00:00Z",
	})
	require.NoError(t, err)
	_, err = f.calendar.Create(ctx, &domain.CreateCalendarEventRequest{
		Title:         "Evening show",
		EventType:     domain.CalendarEventTypeMeeting,
		StartDateTime: "2026-05-10T19:00:00Z",
		EndDateTime:   "2026-05-10T23:00:00Z",
	})
	require.NoError(t, err)

	start := time.Date(2026, 5, 10, 11, 0, 0, 0, time.UTC)
	end := time.Date(2026, 5, 10, 13, 0, 0, 0, time.UTC)
	overlapping, err := f.calendar.FindOverlapping(ctx, start, end)
	require.NoError(t, err)

	require.Len(t, overlapping, 1)
	assert.Equal(t, "Morning setup", overlapping[0].Title)
}
