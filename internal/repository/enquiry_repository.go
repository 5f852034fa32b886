package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/solstice-events/bookings-api/internal/domain"
	"gorm.io/gorm"
)

type EnquiryRepository struct {
	db *gorm.DB
}

func NewEnquiryRepository(db *gorm.DB) *EnquiryRepository {
	return &EnquiryRepository{db: db}
}

func (r *EnquiryRepository) Create(ctx context.Context, enquiry *domain.Enquiry) error {
	return r.db.WithContext(ctx).Create(enquiry).Error
}

func (r *EnquiryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Enquiry, error) {
	var enquiry domain.Enquiry
	err := r.db.WithContext(ctx).
		Preload("Company").
		Preload("Contact").
		Preload("AssignedTo").
		First(&enquiry, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &enquiry, nil
}

// GetDetail loads an enquiry with its quotes, bookings, notes and open
// tasks for the single-fetch view.
func (r *EnquiryRepository) GetDetail(ctx context.Context, id uuid.UUID) (*domain.Enquiry, error) {
	var enquiry domain.Enquiry
	err := r.db.WithContext(ctx).
		Preload("Company").
		Preload("Contact").
		Preload("AssignedTo").
		Preload("Quotes", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC").Preload("LineItems", func(db *gorm.DB) *gorm.DB {
				return db.Order("sort_order ASC")
			})
		}).
		Preload("Bookings", func(db *gorm.DB) *gorm.DB {
			return db.Order("event_date ASC")
		}).
		Preload("Notes", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC").Preload("CreatedBy")
		}).
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_completed = ?", false).Order("due_date ASC")
		}).
		First(&enquiry, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &enquiry, nil
}

// EnquiryFilters holds filters for listing enquiries
type EnquiryFilters struct {
	Status         *domain.EnquiryStatus
	Priority       *domain.Priority
	UserID         *uuid.UUID
	CompanyID      *uuid.UUID
	Search         string
	IncludeDeleted bool
}

// ListWithFilters returns enquiries with filters and pagination,
// newest first.
func (r *EnquiryRepository) ListWithFilters(ctx context.Context, page, pageSize int, filters *EnquiryFilters) ([]domain.Enquiry, int64, error) {
	var enquiries []domain.Enquiry
	var total int64

	offset := (page - 1) * pageSize

	query := r.db.WithContext(ctx).Model(&domain.Enquiry{})

	if filters != nil {
		if filters.IncludeDeleted {
			query = query.Unscoped()
		}
		if filters.Status != nil {
			query = query.Where("status = ?", *filters.Status)
		}
		if filters.Priority != nil {
			query = query.Where("priority = ?", *filters.Priority)
		}
		if filters.UserID != nil {
			query = query.Where("user_id = ?", *filters.UserID)
		}
		if filters.CompanyID != nil {
			query = query.Where("company_id = ?", *filters.CompanyID)
		}
		if filters.Search != "" {
			pattern := "%" + filters.Search + "%"
			query = query.Where(
				"LOWER(subject) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)",
				pattern, pattern,
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
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&enquiries).Error

	return enquiries, total, err
}

func (r *EnquiryRepository) Update(ctx context.Context, enquiry *domain.Enquiry) error {
	return r.db.WithContext(ctx).Save(enquiry).Error
}

func (r *EnquiryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Enquiry{}, "id = ?", id).Error
}

// Exists reports whether a live enquiry exists.
func (r *EnquiryRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Enquiry{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

// RelatedCounts returns live quote and booking counts for an enquiry.
func (r *EnquiryRepository) RelatedCounts(ctx context.Context, id uuid.UUID) (quotes, bookings int64, err error) {
	db := r.db.WithContext(ctx)
	if err = db.Model(&domain.Quote{}).Where("enquiry_id = ?", id).Count(&quotes).Error; err != nil {
		return
	}
	err = db.Model(&domain.Booking{}).Where("enquiry_id = ?", id).Count(&bookings).Error
	return
}
