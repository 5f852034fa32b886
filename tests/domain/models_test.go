package domain_test

import (
	"testing"
	"time"

	"github.com/solstice-events/bookings-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestBookingEventWindow(t *testing.T) {
	date := time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		eventTime string
		duration  int
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "time and duration",
			eventTime: "19:30",
			duration:  180,
			wantStart: time.Date(2026, 6, 20, 19, 30, 0, 0, time.UTC),
			wantEnd:   time.Date(2026, 6, 20, 22, 30, 0, 0, time.UTC),
		},
		{
			name:      "no time defaults to midnight",
			eventTime: "",
			duration:  60,
			wantStart: date,
			wantEnd:   date.Add(time.Hour),
		},
		{
			name:      "zero duration collapses the window",
			eventTime: "12:00",
			duration:  0,
			wantStart: time.Date(2026, 6, 20, 12, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2026, 6, 20, 12, 0, 0, 0, time.UTC),
		},
		{
			name:      "unparseable time falls back to date",
			eventTime: "25:99",
			duration:  30,
			wantStart: date,
			wantEnd:   date.Add(30 * time.Minute),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &domain.Booking{
				EventDate:     date,
				EventTime:     tt.eventTime,
				EventDuration: tt.duration,
			}
			start, end := b.EventWindow()
			assert.True(t, start.Equal(tt.wantStart), "start %v != %v", start, tt.wantStart)
			assert.True(t, end.Equal(tt.wantEnd), "end %v != %v", end, tt.wantEnd)
		})
	}
}

func TestContactFullName(t *testing.T) {
	c := &domain.Contact{FirstName: "Ada", LastName: "Nilsen"}
	assert.Equal(t, "Ada Nilsen", c.FullName())
}
