package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/solstice-events/bookings-api/internal/domain"
	"gorm.io/gorm"
)

type CalendarEventRepository struct {
	db *gorm.DB
}

func NewCalendarEventRepository(db *gorm.DB) *CalendarEventRepository {
	return &CalendarEventRepository{db: db}
}

func (r *CalendarEventRepository) Create(ctx context.Context, event *domain.CalendarEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// CreateTx inserts an event inside an existing transaction. Used when
// events are derived alongside a booking insert.
func (r *CalendarEventRepository) CreateTx(ctx context.Context, tx *gorm.DB, event *domain.CalendarEvent) error {
	return tx.WithContext(ctx).Create(event).Error
}

func (r *CalendarEventRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CalendarEvent, error) {
	var event domain.CalendarEvent
	err := r.db.WithContext(ctx).
		Preload("Booking").
		Preload("Booking.Company").
		Preload("Booking.Contact").
		First(&event, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// CalendarEventFilters holds filters for listing calendar events
type CalendarEventFilters struct {
	EventType *domain.CalendarEventType
	BookingID *uuid.UUID
	// StartDate/EndDate select events whose window overlaps the range.
	StartDate      *time.Time
	EndDate        *time.Time
	IncludeDeleted bool
}

// ListWithFilters returns calendar events with filters and pagination,
// earliest start first. Range filtering is by overlap: an event matches
// when it ends after the range start and starts before the range end.
func (r *CalendarEventRepository) ListWithFilters(ctx context.Context, page, pageSize int, filters *CalendarEventFilters) ([]domain.CalendarEvent, int64, error) {
	var events []domain.CalendarEvent
	var total int64

	offset := (page - 1) * pageSize

	query := r.db.WithContext(ctx).Model(&domain.CalendarEvent{})

	if filters != nil {
		if filters.IncludeDeleted {
			query = query.Unscoped()
		}
		if filters.EventType != nil {
			query = query.Where("event_type = ?", *filters.EventType)
		}
		if filters.BookingID != nil {
			query = query.Where("booking_id = ?", *filters.BookingID)
		}
		if filters.StartDate != nil {
			query = query.Where("end_datetime >= ?", *filters.StartDate)
		}
		if filters.EndDate != nil {
			query = query.Where("start_datetime <= ?", *filters.EndDate)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Booking").
		Preload("Booking.Company").
		Preload("Booking.Contact").
		Order("start_datetime ASC").
		Offset(offset).
		Limit(pageSize).
		Find(&events).Error

	return events, total, err
}

func (r *CalendarEventRepository) Update(ctx context.Context, event *domain.CalendarEvent) error {
	return r.db.WithContext(ctx).Save(event).Error
}

func (r *CalendarEventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.CalendarEvent{}, "id = ?", id).Error
}

// DeleteByBookingTx removes derived events for a booking inside a transaction.
func (r *CalendarEventRepository) DeleteByBookingTx(ctx context.Context, tx *gorm.DB, bookingID uuid.UUID, eventType domain.CalendarEventType) error {
	return tx.WithContext(ctx).
		Where("booking_id = ? AND event_type = ?", bookingID, eventType).
		Delete(&domain.CalendarEvent{}).Error
}
