package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/solstice-events/bookings-api/internal/domain"
	"gorm.io/gorm"
)

type QuoteRepository struct {
	db *gorm.DB
}

func NewQuoteRepository(db *gorm.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

func (r *QuoteRepository) DB() *gorm.DB {
	return r.db
}

// Create inserts a quote together with its line items.
func (r *QuoteRepository) Create(ctx context.Context, quote *domain.Quote) error {
	return r.db.WithContext(ctx).Create(quote).Error
}

func (r *QuoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Quote, error) {
	var quote domain.Quote
	err := r.db.WithContext(ctx).
		Preload("LineItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Company").
		Preload("Contact").
		Preload("Enquiry").
		First(&quote, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// QuoteFilters holds filters for listing quotes
type QuoteFilters struct {
	Status         *domain.QuoteStatus
	CompanyID      *uuid.UUID
	EnquiryID      *uuid.UUID
	Search         string
	IncludeDeleted bool
}

// ListWithFilters returns quotes with filters and pagination, newest first.
func (r *QuoteRepository) ListWithFilters(ctx context.Context, page, pageSize int, filters *QuoteFilters) ([]domain.Quote, int64, error) {
	var quotes []domain.Quote
	var total int64

	offset := (page - 1) * pageSize

	query := r.db.WithContext(ctx).Model(&domain.Quote{})

	if filters != nil {
		if filters.IncludeDeleted {
			query = query.Unscoped()
		}
		if filters.Status != nil {
			query = query.Where("status = ?", *filters.Status)
		}
		if filters.CompanyID != nil {
			query = query.Where("company_id = ?", *filters.CompanyID)
		}
		if filters.EnquiryID != nil {
			query = query.Where("enquiry_id = ?", *filters.EnquiryID)
		}
		if filters.Search != "" {
			pattern := "%" + filters.Search + "%"
			query = query.Where(
				"LOWER(title) LIKE LOWER(?) OR LOWER(quote_number) LIKE LOWER(?)",
				pattern, pattern,
			)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("LineItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Company").
		Preload("Contact").
		Preload("Enquiry").
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&quotes).Error

	return quotes, total, err
}

func (r *QuoteRepository) Update(ctx context.Context, quote *domain.Quote) error {
	return r.db.WithContext(ctx).Save(quote).Error
}

func (r *QuoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Quote{}, "id = ?", id).Error
}

// Exists reports whether a live quote exists.
func (r *QuoteRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Quote{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

// BookingCount returns the number of live bookings created from a quote.
func (r *QuoteRepository) BookingCount(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("quote_id = ?", id).
		Count(&count).Error
	return count, err
}

// ReplaceLineItems swaps a quote's line items inside the given transaction.
func (r *QuoteRepository) ReplaceLineItems(ctx context.Context, tx *gorm.DB, quoteID uuid.UUID, items []domain.QuoteLineItem) error {
	if err := tx.WithContext(ctx).
		Where("quote_id = ?", quoteID).
		Delete(&domain.QuoteLineItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return tx.WithContext(ctx).Create(&items).Error
}
