package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/solstice-events/bookings-api/internal/domain"
	"gorm.io/gorm"
)

type ContractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

func (r *ContractRepository) Create(ctx context.Context, contract *domain.Contract) error {
	return r.db.WithContext(ctx).Create(contract).Error
}

func (r *ContractRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Contract, error) {
	var contract domain.Contract
	err := r.db.WithContext(ctx).
		Preload("Booking").
		Preload("Company").
		Preload("Contact").
		First(&contract, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

// GetByBooking returns the live contract for a booking, if any.
func (r *ContractRepository) GetByBooking(ctx context.Context, bookingID uuid.UUID) (*domain.Contract, error) {
	var contract domain.Contract
	err := r.db.WithContext(ctx).
		First(&contract, "booking_id = ?", bookingID).Error
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

// ContractFilters holds filters for listing contracts
type ContractFilters struct {
	Status         *domain.ContractStatus
	BookingID      *uuid.UUID
	CompanyID      *uuid.UUID
	Search         string
	IncludeDeleted bool
}

// ListWithFilters returns contracts with filters and pagination, newest first.
func (r *ContractRepository) ListWithFilters(ctx context.Context, page, pageSize int, filters *ContractFilters) ([]domain.Contract, int64, error) {
	var contracts []domain.Contract
	var total int64

	offset := (page - 1) * pageSize

	query := r.db.WithContext(ctx).Model(&domain.Contract{})

	if filters != nil {
		if filters.IncludeDeleted {
			query = query.Unscoped()
		}
		if filters.Status != nil {
			query = query.Where("status = ?", *filters.Status)
		}
		if filters.BookingID != nil {
			query = query.Where("booking_id = ?", *filters.BookingID)
		}
		if filters.CompanyID != nil {
			query = query.Where("company_id = ?", *filters.CompanyID)
		}
		if filters.Search != "" {
			pattern := "%" + filters.Search + "%"
			query = query.Where(
				"LOWER(title) LIKE LOWER(?) OR LOWER(contract_number) LIKE LOWER(?)",
				pattern, pattern,
			)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Booking").
		Preload("Company").
		Preload("Contact").
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&contracts).Error

	return contracts, total, err
}

func (r *ContractRepository) Update(ctx context.Context, contract *domain.Contract) error {
	return r.db.WithContext(ctx).Save(contract).Error
}

func (r *ContractRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Contract{}, "id = ?", id).Error
}
