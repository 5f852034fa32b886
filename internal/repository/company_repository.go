package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/solstice-events/bookings-api/internal/domain"
	"gorm.io/gorm"
)

type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// DB exposes the underlying handle so services can run multiple
// repository calls inside one transaction.
func (r *CompanyRepository) DB() *gorm.DB {
	return r.db
}

func (r *CompanyRepository) Create(ctx context.Context, company *domain.Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

func (r *CompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	var company domain.Company
	err := r.db.WithContext(ctx).
		Preload("PrimaryContact").
		Preload("Contacts").
		First(&company, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

// GetByIDUnscoped fetches a company including soft-deleted rows.
func (r *CompanyRepository) GetByIDUnscoped(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	var company domain.Company
	err := r.db.WithContext(ctx).Unscoped().
		First(&company, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

// CompanyFilters holds filters for listing companies
type CompanyFilters struct {
	Status         *domain.CompanyStatus
	Search         string
	Industry       string
	IncludeDeleted bool
}

// ListWithFilters returns companies with filters and pagination,
// sorted by name ascending.
func (r *CompanyRepository) ListWithFilters(ctx context.Context, page, pageSize int, filters *CompanyFilters) ([]domain.Company, int64, error) {
	var companies []domain.Company
	var total int64

	offset := (page - 1) * pageSize

	query := r.db.WithContext(ctx).Model(&domain.Company{})

	if filters != nil {
		if filters.IncludeDeleted {
			query = query.Unscoped()
		}
		if filters.Status != nil {
			query = query.Where("status = ?", *filters.Status)
		}
		if filters.Industry != "" {
			query = query.Where("industry = ?", filters.Industry)
		}
		if filters.Search != "" {
			pattern := "%" + filters.Search + "%"
			query = query.Where(
				"LOWER(name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?) OR LOWER(city) LIKE LOWER(?)",
				pattern, pattern, pattern,
			)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("PrimaryContact").
		Order("name ASC").
		Offset(offset).
		Limit(pageSize).
		Find(&companies).Error

	return companies, total, err
}

func (r *CompanyRepository) Update(ctx context.Context, company *domain.Company) error {
	return r.db.WithContext(ctx).Save(company).Error
}

func (r *CompanyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Company{}, "id = ?", id).Error
}

// Exists reports whether a live (non-deleted) company exists.
func (r *CompanyRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Company{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

// RelatedCounts returns live enquiry, booking and invoice counts for a company.
func (r *CompanyRepository) RelatedCounts(ctx context.Context, id uuid.UUID) (enquiries, bookings, invoices int64, err error) {
	db := r.db.WithContext(ctx)
	if err = db.Model(&domain.Enquiry{}).Where("company_id = ?", id).Count(&enquiries).Error; err != nil {
		return
	}
	if err = db.Model(&domain.Booking{}).Where("company_id = ?", id).Count(&bookings).Error; err != nil {
		return
	}
	err = db.Model(&domain.Invoice{}).Where("company_id = ?", id).Count(&invoices).Error
	return
}
