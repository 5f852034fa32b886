package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/solstice-events/bookings-api/internal/domain"
	"github.com/solstice-events/bookings-api/internal/mapper"
	"github.com/solstice-events/bookings-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CalendarService handles business logic for calendar events. GIG
// entries are derived from bookings; manual entries cover meetings,
// setup slots and blocked-out time.
type CalendarService struct {
	events *repository.CalendarEventRepository
	refs   *ReferenceResolver
	logger *zap.Logger
}

func NewCalendarService(
	events *repository.CalendarEventRepository,
	refs *ReferenceResolver,
	logger *zap.Logger,
) *CalendarService {
	return &CalendarService{
		events: events,
		refs:   refs,
		logger: logger,
	}
}

func (s *CalendarService) Create(ctx context.Context, req *domain.CreateCalendarEventRequest) (*domain.CalendarEventDTO, error) {
	if err := s.refs.Booking(ctx, req.BookingID); err != nil {
		return nil, err
	}

	eventType := req.EventType
	if eventType == "" {
		eventType = domain.CalendarEventTypeMeeting
	}
	if !eventType.IsValid() {
		return nil, fmt.Errorf("%w: unknown event type %q", ErrInvalidInput, eventType)
	}

	start, err := parseDateTime("startDateTime", req.StartDateTime)
	if err != nil {
		return nil, err
	}
	end, err := parseDateTime("endDateTime", req.EndDateTime)
	if err != nil {
		return nil, err
	}
	if !end.After(start) {
		return nil, fmt.Errorf("%w: endDateTime must be after startDateTime", ErrInvalidInput)
	}

	event := &domain.CalendarEvent{
		BookingID:     req.BookingID,
		Title:         req.Title,
		Description:   req.Description,
		EventType:     eventType,
		StartDateTime: start,
		EndDateTime:   end,
		Location:      req.Location,
	}

	if err := s.events.Create(ctx, event); err != nil {
		s.logger.Error("failed to create calendar event", zap.Error(err))
		return nil, err
	}

	return s.fetchDTO(ctx, event.ID)
}

func (s *CalendarService) GetByID(ctx context.Context, id uuid.UUID) (*domain.CalendarEventDTO, error) {
	return s.fetchDTO(ctx, id)
}

// List returns events overlapping the requested window, earliest first.
func (s *CalendarService) List(ctx context.Context, page, pageSize int, filters *repository.CalendarEventFilters) ([]domain.CalendarEventDTO, int64, error) {
	events, total, err := s.events.ListWithFilters(ctx, page, pageSize, filters)
	if err != nil {
		return nil, 0, err
	}
	dtos := make([]domain.CalendarEventDTO, len(events))
	for i := range events {
		dtos[i] = mapper.ToCalendarEventDTO(&events[i])
	}
	return dtos, total, nil
}

// FindOverlapping reports events whose window intersects [start, end).
// Used to surface double bookings before a new engagement is accepted.
func (s *CalendarService) FindOverlapping(ctx context.Context, start, end time.Time) ([]domain.CalendarEventDTO, error) {
	events, _, err := s.events.ListWithFilters(ctx, 1, 100, &repository.CalendarEventFilters{
		StartDate: &start,
		EndDate:   &end,
	})
	if err != nil {
		return nil, err
	}
	dtos := make([]domain.CalendarEventDTO, len(events))
	for i := range events {
		dtos[i] = mapper.ToCalendarEventDTO(&events[i])
	}
	return dtos, nil
}

func (s *CalendarService) Delete(ctx context.Context, id uuid.UUID) error {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	// Derived entries follow their booking; they are not deleted directly.
	if event.EventType == domain.CalendarEventTypeGig && event.BookingID != nil {
		return fmt.Errorf("%w: derived events are managed through their booking", ErrInvalidInput)
	}
	return s.events.Delete(ctx, id)
}

func (s *CalendarService) fetchDTO(ctx context.Context, id uuid.UUID) (*domain.CalendarEventDTO, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	dto := mapper.ToCalendarEventDTO(event)
	return &dto, nil
}
