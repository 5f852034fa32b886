package derive

import (
	"github.com/solstice-events/bookings-api/internal/domain"
)

// GigEventRule mirrors every booking onto the calendar as a GIG event
// spanning the booking's performance window.
type GigEventRule struct{}

func (GigEventRule) Name() string { return "gig-event" }

func (GigEventRule) Matches(in Input) bool {
	return in.Event == BookingCreated || in.Event == BookingUpdated
}

func (GigEventRule) Apply(in Input) ([]domain.CalendarEvent, error) {
	b := in.Booking
	start, end := b.EventWindow()
	return []domain.CalendarEvent{{
		BookingID:     &b.ID,
		Title:         b.Title,
		Description:   b.ServiceType,
		EventType:     domain.CalendarEventTypeGig,
		StartDateTime: start,
		EndDateTime:   end,
		Location:      b.Location,
	}}, nil
}
