package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/solstice-events/bookings-api/internal/domain"
	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) DB() *gorm.DB {
	return r.db
}

func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

// CreateTx inserts a booking inside an existing transaction.
func (r *BookingRepository) CreateTx(ctx context.Context, tx *gorm.DB, booking *domain.Booking) error {
	return tx.WithContext(ctx).Create(booking).Error
}

func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	var booking domain.Booking
	err := r.db.WithContext(ctx).
		Preload("Company").
		Preload("Contact").
		Preload("AssignedTo").
		Preload("Contract").
		First(&booking, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// BookingFilters holds filters for listing bookings
type BookingFilters struct {
	Status         *domain.BookingStatus
	UserID         *uuid.UUID
	CompanyID      *uuid.UUID
	StartDate      *time.Time
	EndDate        *time.Time
	Search         string
	IncludeDeleted bool
}

// ListWithFilters returns bookings with filters and pagination,
// ordered by event date ascending.
func (r *BookingRepository) ListWithFilters(ctx context.Context, page, pageSize int, filters *BookingFilters) ([]domain.Booking, int64, error) {
	var bookings []domain.Booking
	var total int64

	offset := (page - 1) * pageSize

	query := r.db.WithContext(ctx).Model(&domain.Booking{})

	if filters != nil {
		if filters.IncludeDeleted {
			query = query.Unscoped()
		}
		if filters.Status != nil {
			query = query.Where("status = ?", *filters.Status)
		}
		if filters.UserID != nil {
			query = query.Where("user_id = ?", *filters.UserID)
		}
		if filters.CompanyID != nil {
			query = query.Where("company_id = ?", *filters.CompanyID)
		}
		if filters.StartDate != nil {
			query = query.Where("event_date >= ?", *filters.StartDate)
		}
		if filters.EndDate != nil {
			query = query.Where("event_date <= ?", *filters.EndDate)
		}
		if filters.Search != "" {
			pattern := "%" + filters.Search + "%"
			query = query.Where(
				"LOWER(title) LIKE LOWER(?) OR LOWER(booking_number) LIKE LOWER(?) OR LOWER(location) LIKE LOWER(?)",
				pattern, pattern, pattern,
			)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Company").
		Preload("Contact").
		Preload("AssignedTo").
		Preload("Contract").
		Order("event_date ASC").
		Offset(offset).
		Limit(pageSize).
		Find(&bookings).Error

	return bookings, total, err
}

func (r *BookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	return r.db.WithContext(ctx).Save(booking).Error
}

func (r *BookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Booking{}, "id = ?", id).Error
}

// Exists reports whether a live booking exists.
func (r *BookingRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

// InvoiceCount returns the number of live invoices raised for a booking.
func (r *BookingRepository) InvoiceCount(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Invoice{}).
		Where("booking_id = ?", id).
		Count(&count).Error
	return count, err
}
