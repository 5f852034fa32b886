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
	"gorm.io/gorm"
)

func gigEvents(t *testing.T, db *gorm.DB, bookingID interface{}) []domain.CalendarEvent {
	t.Helper()
	var events []domain.CalendarEvent
	require.NoError(t, db.
		Where("booking_id = ? AND event_type = ?", bookingID, domain.CalendarEventTypeGig).
		Find(&events).Error)
	return events
}

func TestBookingCreateDerivesCalendarEvent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := newFixture(t, db)

	dto, err := f.bookings.Create(context.Background(), &domain.CreateBookingRequest{
		Title:         "Corporate summer party",
		EventDate:     "2026-07-18",
		EventTime:     "19:00",
		EventDuration: 240,
		Location:      "Riverside Marquee",
	})
	require.NoError(t, err)

	assert.Equal(t, "BK-", dto.BookingNumber[:3])
	assert.Equal(t, domain.BookingStatusPending, dto.Status)

	events := gigEvents(t, db, dto.ID)
	require.Len(t, events, 1)
	assert.Equal(t, "Corporate summer party", events[0].Title)
	assert.Equal(t, "Riverside Marquee", events[0].Location)
	assert.Equal(t, 19, events[0].StartDateTime.Hour())
	assert.Equal(t, 4*time.Hour, events[0].EndDateTime.Sub(events[0].StartDateTime))
}

func TestBookingCreateConvertsAcceptedQuote(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := newFixture(t, db)
	ctx := context.Background()

	quote, err := f.quotes.Create(ctx, &domain.CreateQuoteRequest{Title: "Convertible"})
	require.NoError(t, err)
	_, err = f.quotes.Update(ctx, quote.ID, &domain.UpdateQuoteRequest{Status: ptr(domain.QuoteStatusSent)})
	require.NoError(t, err)
	_, err = f.quotes.Update(ctx, quote.ID, &domain.UpdateQuoteRequest{Status: ptr(domain.QuoteStatusAccepted)})
	require.NoError(t, err)

	_, err = f.bookings.Create(ctx, &domain.CreateBookingRequest{
		QuoteID:   &quote.ID,
		Title:     "From quote",
		EventDate: "2026-08-01",
	})
	require.NoError(t, err)

	converted, err := f.quotes.GetByID(ctx, quote.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteStatusConverted, converted.Status)
}

func TestBookingCreateLeavesUnacceptedQuoteAlone(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := newFixture(t, db)
	ctx := context.Background()

	quote, err := f.quotes.Create(ctx, &domain.CreateQuoteRequest{Title: "Still draft"})
	require.NoError(t, err)

	_, err = f.bookings.Create(ctx, &domain.CreateBookingRequest{
		QuoteID:   &quote.ID,
		Title:     "Early booking",
		EventDate: "2026-08-02",
	})
	require.NoError(t, err)

	refetched, err := f.quotes.GetByID(ctx, quote.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteStatusDraft, refetched.Status)
}

func TestBookingConfirmStampsTimestamp(t *testing.T) {
	f := newFixture(t, testutil.SetupTestDB(t))
	ctx := context.Background()

	created, err := f.bookings.Create(ctx, &domain.CreateBookingRequest{
		Title:     "To confirm",
		EventDate: "2026-09-05",
	})
	require.NoError(t, err)
	assert.Nil(t, created.ConfirmedAt)

	confirmed, err := f.bookings.Update(ctx, created.ID, &domain.UpdateBookingRequest{
		Status: ptr(domain.BookingStatusConfirmed),
	})
	require.NoError(t, err)
	assert.NotNil(t, confirmed.ConfirmedAt)
}

func TestBookingStatusTransitionEnforced(t *testing.T) {
	f := newFixture(t, testutil.SetupTestDB(t))
	ctx := context.Background()

	created, err := f.bookings.Create(ctx, &domain.CreateBookingRequest{
		Title:     "Strict lifecycle",
		EventDate: "2026-09-06",
	})
	require.NoError(t, err)

	_, err = f.bookings.Update(ctx, created.ID, &domain.UpdateBookingRequest{
		Status: ptr(domain.BookingStatusCompleted),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestBookingRescheduleRebuildsCalendarEvent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := newFixture(t, db)
	ctx := context.Background()

	created, err := f.bookings.Create(ctx, &domain.CreateBookingRequest{
		Title:         "Moving party",
		EventDate:     "2026-07-18",
		EventTime:     "19:00",
		EventDuration: 120,
	})
	require.NoError(t, err)

	_, err = f.bookings.Update(ctx, created.ID, &domain.UpdateBookingRequest{
		EventDate: ptr("2026-07-25"),
		EventTime: ptr("20:00"),
	})
	require.NoError(t, err)

	events := gigEvents(t, db, created.ID)
	require.Len(t, events, 1, "reschedule must replace, not duplicate")
	assert.Equal(t, 25, events[0].StartDateTime.Day())
	assert.Equal(t, 20, events[0].StartDateTime.Hour())
}

func TestBookingNonScheduleUpdateKeepsCalendarEvent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := newFixture(t, db)
	ctx := context.Background()

	created, err := f.bookings.Create(ctx, &domain.CreateBookingRequest{
		Title:     "Stable schedule",
		EventDate: "2026-07-18",
	})
	require.NoError(t, err)
	before := gigEvents(t, db, created.ID)
	require.Len(t, before, 1)

	_, err = f.bookings.Update(ctx, created.ID, &domain.UpdateBookingRequest{
		SpecialRequests: ptr("Vegetarian menu"),
	})
	require.NoError(t, err)

	after := gigEvents(t, db, created.ID)
	require.Len(t, after, 1)
	assert.Equal(t, before[0].ID, after[0].ID)
}

func TestBookingDeleteRemovesCalendarEvent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	f := newFixture(t, db)
	ctx := context.Background()

	created, err := f.bookings.Create(ctx, &domain.CreateBookingRequest{
		Title:     "Cancelled gig",
		EventDate: "2026-07-19",
	})
	require.NoError(t, err)

	require.NoError(t, f.bookings.Delete(ctx, created.ID))

	_, err = f.bookings.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
	assert.Empty(t, gigEvents(t, db, created.ID))
}

func TestBookingCreateRejectsBadDate(t *testing.T) {
	f := newFixture(t, testutil.SetupTestDB(t))

	_, err := f.bookings.Create(context.Background(), &domain.CreateBookingRequest{
		Title:     "Bad date",
		EventDate: "18/07/2026",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}
