package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/solstice-events/bookings-api/internal/domain"
	"github.com/solstice-events/bookings-api/internal/mapper"
	"github.com/solstice-events/bookings-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ContactService handles business logic for contacts. A company has at
// most one primary contact; promoting a contact demotes the rest.
type ContactService struct {
	contacts  *repository.ContactRepository
	companies *repository.CompanyRepository
	logger    *zap.Logger
}

func NewContactService(
	contacts *repository.ContactRepository,
	companies *repository.CompanyRepository,
	logger *zap.Logger,
) *ContactService {
	return &ContactService{
		contacts:  contacts,
		companies: companies,
		logger:    logger,
	}
}

func (s *ContactService) Create(ctx context.Context, req *domain.CreateContactRequest) (*domain.ContactDTO, error) {
	ok, err := s.companies.Exists(ctx, req.CompanyID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &ReferenceError{Field: "companyId", Reason: "company not found"}
	}

	contact := &domain.Contact{
		CompanyID: req.CompanyID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		JobTitle:  req.JobTitle,
		Email:     req.Email,
		Phone:     req.Phone,
		Mobile:    req.Mobile,
		IsPrimary: req.IsPrimary,
	}

	err = s.companies.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(contact).Error; err != nil {
			return err
		}
		if !contact.IsPrimary {
			return nil
		}
		if err := s.contacts.DemotePrimaries(ctx, tx, contact.CompanyID, contact.ID); err != nil {
			return err
		}
		return tx.Model(&domain.Company{}).
			Where("id = ?", contact.CompanyID).
			Update("primary_contact_id", contact.ID).Error
	})
	if err != nil {
		s.logger.Error("failed to create contact", zap.Error(err))
		return nil, err
	}

	return s.fetchDTO(ctx, contact.ID)
}

func (s *ContactService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ContactDTO, error) {
	return s.fetchDTO(ctx, id)
}

func (s *ContactService) List(ctx context.Context, page, pageSize int, filters *repository.ContactFilters) ([]domain.ContactDTO, int64, error) {
	contacts, total, err := s.contacts.ListWithFilters(ctx, page, pageSize, filters)
	if err != nil {
		return nil, 0, err
	}
	dtos := make([]domain.ContactDTO, len(contacts))
	for i := range contacts {
		dtos[i] = mapper.ToContactDTO(&contacts[i])
	}
	return dtos, total, nil
}

func (s *ContactService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateContactRequest) (*domain.ContactDTO, error) {
	contact, err := s.contacts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.FirstName != nil {
		contact.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		contact.LastName = *req.LastName
	}
	if req.JobTitle != nil {
		contact.JobTitle = *req.JobTitle
	}
	if req.Email != nil {
		contact.Email = *req.Email
	}
	if req.Phone != nil {
		contact.Phone = *req.Phone
	}
	if req.Mobile != nil {
		contact.Mobile = *req.Mobile
	}
	promote := req.IsPrimary != nil && *req.IsPrimary && !contact.IsPrimary
	if req.IsPrimary != nil {
		contact.IsPrimary = *req.IsPrimary
	}

	contact.Company = nil
	err = s.companies.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(contact).Error; err != nil {
			return err
		}
		if !promote {
			return nil
		}
		if err := s.contacts.DemotePrimaries(ctx, tx, contact.CompanyID, contact.ID); err != nil {
			return err
		}
		return tx.Model(&domain.Company{}).
			Where("id = ?", contact.CompanyID).
			Update("primary_contact_id", contact.ID).Error
	})
	if err != nil {
		s.logger.Error("failed to update contact", zap.String("contactID", id.String()), zap.Error(err))
		return nil, err
	}

	return s.fetchDTO(ctx, id)
}

func (s *ContactService) Delete(ctx context.Context, id uuid.UUID) error {
	contact, err := s.contacts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	return s.companies.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.Contact{}, "id = ?", id).Error; err != nil {
			return err
		}
		if !contact.IsPrimary {
			return nil
		}
		// Clear the company's backlink when its primary contact goes.
		return tx.Model(&domain.Company{}).
			Where("id = ? AND primary_contact_id = ?", contact.CompanyID, id).
			Update("primary_contact_id", nil).Error
	})
}

func (s *ContactService) fetchDTO(ctx context.Context, id uuid.UUID) (*domain.ContactDTO, error) {
	contact, err := s.contacts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	dto := mapper.ToContactDTO(contact)
	return &dto, nil
}
