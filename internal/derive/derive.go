// Package derive produces secondary records from lifecycle events on
// primary entities. Rules are evaluated inside the same transaction as
// the triggering write, so a derived record never exists without its
// source.
package derive

import (
	"fmt"

	"github.com/solstice-events/bookings-api/internal/domain"
)

// Event names a lifecycle trigger.
type Event string

const (
	BookingCreated Event = "booking.created"
	BookingUpdated Event = "booking.updated"
)

// Input carries the source entity for rule evaluation.
type Input struct {
	Event   Event
	Booking *domain.Booking
}

// Rule derives zero or more calendar events from an input.
type Rule interface {
	Name() string
	Matches(in Input) bool
	Apply(in Input) ([]domain.CalendarEvent, error)
}

// Registry holds an ordered rule set.
type Registry struct {
	rules []Rule
}

func NewRegistry(rules ...Rule) *Registry {
	return &Registry{rules: rules}
}

// Evaluate runs every matching rule and collects the derived records.
func (r *Registry) Evaluate(in Input) ([]domain.CalendarEvent, error) {
	var out []domain.CalendarEvent
	for _, rule := range r.rules {
		if !rule.Matches(in) {
			continue
		}
		events, err := rule.Apply(in)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", rule.Name(), err)
		}
		out = append(out, events...)
	}
	return out, nil
}

// Default returns the standard rule set.
func Default() *Registry {
	return NewRegistry(
		GigEventRule{},
	)
}
