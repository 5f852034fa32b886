package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/solstice-events/bookings-api/internal/domain"
	"gorm.io/gorm"
)

type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(ctx context.Context, contact *domain.Contact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

func (r *ContactRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Contact, error) {
	var contact domain.Contact
	err := r.db.WithContext(ctx).
		Preload("Company").
		First(&contact, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

// ContactFilters holds filters for listing contacts
type ContactFilters struct {
	CompanyID      *uuid.UUID
	IsPrimary      *bool
	Search         string
	IncludeDeleted bool
}

// ListWithFilters returns contacts with filters and pagination,
// sorted by last name then first name.
func (r *ContactRepository) ListWithFilters(ctx context.Context, page, pageSize int, filters *ContactFilters) ([]domain.Contact, int64, error) {
	var contacts []domain.Contact
	var total int64

	offset := (page - 1) * pageSize

	query := r.db.WithContext(ctx).Model(&domain.Contact{})

	if filters != nil {
		if filters.IncludeDeleted {
			query = query.Unscoped()
		}
		if filters.CompanyID != nil {
			query = query.Where("company_id = ?", *filters.CompanyID)
		}
		if filters.IsPrimary != nil {
			query = query.Where("is_primary = ?", *filters.IsPrimary)
		}
		if filters.Search != "" {
			pattern := "%" + filters.Search + "%"
			query = query.Where(
				"LOWER(first_name) LIKE LOWER(?) OR LOWER(last_name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)",
				pattern, pattern, pattern,
			)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Company").
		Order("last_name ASC, first_name ASC").
		Offset(offset).
		Limit(pageSize).
		Find(&contacts).Error

	return contacts, total, err
}

func (r *ContactRepository) Update(ctx context.Context, contact *domain.Contact) error {
	return r.db.WithContext(ctx).Save(contact).Error
}

func (r *ContactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Contact{}, "id = ?", id).Error
}

// Exists reports whether a live contact exists.
func (r *ContactRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Contact{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

// BelongsToCompany reports whether a live contact belongs to the given company.
func (r *ContactRepository) BelongsToCompany(ctx context.Context, contactID, companyID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Contact{}).
		Where("id = ? AND company_id = ?", contactID, companyID).
		Count(&count).Error
	return count > 0, err
}

// DemotePrimaries clears the primary flag on every other contact of a
// company. Callers run this in the same transaction as the promotion.
func (r *ContactRepository) DemotePrimaries(ctx context.Context, tx *gorm.DB, companyID uuid.UUID, exceptID uuid.UUID) error {
	return tx.WithContext(ctx).Model(&domain.Contact{}).
		Where("company_id = ? AND id <> ? AND is_primary = ?", companyID, exceptID, true).
		Update("is_primary", false).Error
}
