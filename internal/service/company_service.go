package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/solstice-events/bookings-api/internal/domain"
	"github.com/solstice-events/bookings-api/internal/mapper"
	"github.com/solstice-events/bookings-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CompanyService handles business logic for client companies.
type CompanyService struct {
	companies *repository.CompanyRepository
	contacts  *repository.ContactRepository
	logger    *zap.Logger
}

func NewCompanyService(
	companies *repository.CompanyRepository,
	contacts *repository.ContactRepository,
	logger *zap.Logger,
) *CompanyService {
	return &CompanyService{
		companies: companies,
		contacts:  contacts,
		logger:    logger,
	}
}

// Create creates a company. When the request carries an inline contact,
// the contact is created as primary and back-linked in one transaction.
func (s *CompanyService) Create(ctx context.Context, req *domain.CreateCompanyRequest) (*domain.CompanyDTO, error) {
	status := req.Status
	if status == "" {
		status = domain.CompanyStatusActive
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown company status %q", ErrInvalidInput, status)
	}

	country := req.Country
	if country == "" {
		country = "GB"
	}

	company := &domain.Company{
		Name:          req.Name,
		CompanyNumber: req.CompanyNumber,
		VATNumber:     req.VATNumber,
		Website:       req.Website,
		Industry:      req.Industry,
		Size:          req.Size,
		AddressLine1:  req.AddressLine1,
		AddressLine2:  req.AddressLine2,
		City:          req.City,
		County:        req.County,
		Postcode:      req.Postcode,
		Country:       country,
		Phone:         req.Phone,
		Email:         req.Email,
		Status:        status,
		Tags:          req.Tags,
		Notes:         req.Notes,
		Rating:        req.Rating,
	}

	err := s.companies.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(company).Error; err != nil {
			return err
		}
		if req.Contact == nil {
			return nil
		}
		contact := &domain.Contact{
			CompanyID: company.ID,
			FirstName: req.Contact.FirstName,
			LastName:  req.Contact.LastName,
			JobTitle:  req.Contact.JobTitle,
			Email:     req.Contact.Email,
			Phone:     req.Contact.Phone,
			Mobile:    req.Contact.Mobile,
			IsPrimary: true,
		}
		if err := tx.Create(contact).Error; err != nil {
			return err
		}
		return tx.Model(company).Update("primary_contact_id", contact.ID).Error
	})
	if err != nil {
		s.logger.Error("failed to create company", zap.Error(err))
		return nil, err
	}

	s.logger.Info("company created",
		zap.String("companyID", company.ID.String()),
		zap.String("name", company.Name))

	return s.fetchDTO(ctx, company.ID)
}

// GetByID returns a company; soft-deleted companies read as missing.
func (s *CompanyService) GetByID(ctx context.Context, id uuid.UUID) (*domain.CompanyDTO, error) {
	return s.fetchDTO(ctx, id)
}

// List returns companies matching filters, name ascending.
func (s *CompanyService) List(ctx context.Context, page, pageSize int, filters *repository.CompanyFilters) ([]domain.CompanyDTO, int64, error) {
	companies, total, err := s.companies.ListWithFilters(ctx, page, pageSize, filters)
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]domain.CompanyDTO, len(companies))
	for i := range companies {
		enquiries, bookings, invoices, err := s.companies.RelatedCounts(ctx, companies[i].ID)
		if err != nil {
			return nil, 0, err
		}
		dtos[i] = mapper.ToCompanyDTO(&companies[i], enquiries, bookings, invoices)
	}
	return dtos, total, nil
}

// Update applies the provided fields to a company.
func (s *CompanyService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateCompanyRequest) (*domain.CompanyDTO, error) {
	company, err := s.companies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.CompanyNumber != nil {
		company.CompanyNumber = *req.CompanyNumber
	}
	if req.VATNumber != nil {
		company.VATNumber = *req.VATNumber
	}
	if req.Website != nil {
		company.Website = *req.Website
	}
	if req.Industry != nil {
		company.Industry = *req.Industry
	}
	if req.Size != nil {
		company.Size = *req.Size
	}
	if req.AddressLine1 != nil {
		company.AddressLine1 = *req.AddressLine1
	}
	if req.AddressLine2 != nil {
		company.AddressLine2 = *req.AddressLine2
	}
	if req.City != nil {
		company.City = *req.City
	}
	if req.County != nil {
		company.County = *req.County
	}
	if req.Postcode != nil {
		company.Postcode = *req.Postcode
	}
	if req.Country != nil {
		company.Country = *req.Country
	}
	if req.Phone != nil {
		company.Phone = *req.Phone
	}
	if req.Email != nil {
		company.Email = *req.Email
	}
	if req.Status != nil {
		if !req.Status.IsValid() {
			return nil, fmt.Errorf("%w: unknown company status %q", ErrInvalidInput, *req.Status)
		}
		company.Status = *req.Status
	}
	if req.Tags != nil {
		company.Tags = *req.Tags
	}
	if req.Notes != nil {
		company.Notes = *req.Notes
	}
	if req.Rating != nil {
		company.Rating = req.Rating
	}

	if err := s.companies.Update(ctx, company); err != nil {
		s.logger.Error("failed to update company", zap.String("companyID", id.String()), zap.Error(err))
		return nil, err
	}

	return s.fetchDTO(ctx, id)
}

// Delete soft-deletes a company. Related records keep their references.
func (s *CompanyService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.companies.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if err := s.companies.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("company deleted", zap.String("companyID", id.String()))
	return nil
}

func (s *CompanyService) fetchDTO(ctx context.Context, id uuid.UUID) (*domain.CompanyDTO, error) {
	company, err := s.companies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	enquiries, bookings, invoices, err := s.companies.RelatedCounts(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := mapper.ToCompanyDTO(company, enquiries, bookings, invoices)
	return &dto, nil
}
