package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/solstice-events/bookings-api/internal/domain"
	"github.com/solstice-events/bookings-api/internal/mapper"
	"github.com/solstice-events/bookings-api/internal/repository"
	"github.com/solstice-events/bookings-api/internal/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ContractService handles business logic for contracts. A booking has
// at most one live contract; signed documents are kept in blob storage.
type ContractService struct {
	contracts *repository.ContractRepository
	refs      *ReferenceResolver
	numbers   *NumberSequenceService
	store     storage.Storage
	logger    *zap.Logger
}

func NewContractService(
	contracts *repository.ContractRepository,
	refs *ReferenceResolver,
	numbers *NumberSequenceService,
	store storage.Storage,
	logger *zap.Logger,
) *ContractService {
	return &ContractService{
		contracts: contracts,
		refs:      refs,
		numbers:   numbers,
		store:     store,
		logger:    logger,
	}
}

func (s *ContractService) Create(ctx context.Context, req *domain.CreateContractRequest) (*domain.ContractDTO, error) {
	bookingID := req.BookingID
	if err := s.refs.Booking(ctx, &bookingID); err != nil {
		return nil, err
	}
	if err := s.refs.Company(ctx, req.CompanyID); err != nil {
		return nil, err
	}
	if err := s.refs.Contact(ctx, req.ContactID, req.CompanyID); err != nil {
		return nil, err
	}

	if _, err := s.contracts.GetByBooking(ctx, bookingID); err == nil {
		return nil, fmt.Errorf("%w: booking already has a contract", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = domain.ContractStatusDraft
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown contract status %q", ErrInvalidInput, status)
	}

	var contract *domain.Contract
	for attempt := 0; attempt < numberAttempts; attempt++ {
		number, err := s.numbers.Generate(ctx, domain.DocumentKindContract)
		if err != nil {
			return nil, err
		}

		contract = &domain.Contract{
			BookingID:      bookingID,
			CompanyID:      req.CompanyID,
			ContactID:      req.ContactID,
			ContractNumber: number,
			Title:          req.Title,
			Content:        req.Content,
			TemplateID:     req.TemplateID,
			Status:         status,
		}
		if status == domain.ContractStatusSigned {
			now := time.Now()
			contract.SignedAt = &now
		}

		err = s.contracts.Create(ctx, contract)
		if err == nil {
			break
		}
		if isUniqueViolation(err) && attempt < numberAttempts-1 {
			s.logger.Warn("contract number collision, retrying", zap.String("number", number))
			continue
		}
		s.logger.Error("failed to create contract", zap.Error(err))
		return nil, err
	}

	s.logger.Info("contract created",
		zap.String("contractID", contract.ID.String()),
		zap.String("contractNumber", contract.ContractNumber))

	return s.fetchDTO(ctx, contract.ID)
}

func (s *ContractService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ContractDTO, error) {
	return s.fetchDTO(ctx, id)
}

func (s *ContractService) List(ctx context.Context, page, pageSize int, filters *repository.ContractFilters) ([]domain.ContractDTO, int64, error) {
	contracts, total, err := s.contracts.ListWithFilters(ctx, page, pageSize, filters)
	if err != nil {
		return nil, 0, err
	}
	dtos := make([]domain.ContractDTO, len(contracts))
	for i := range contracts {
		dtos[i] = mapper.ToContractDTO(&contracts[i])
	}
	return dtos, total, nil
}

// Update patches contract fields. A move to SIGNED stamps signedAt.
func (s *ContractService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateContractRequest) (*domain.ContractDTO, error) {
	contract, err := s.contracts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Status != nil && *req.Status != contract.Status {
		if !req.Status.IsValid() {
			return nil, fmt.Errorf("%w: unknown contract status %q", ErrInvalidInput, *req.Status)
		}
		if !contract.Status.CanTransitionTo(*req.Status) {
			return nil, &TransitionError{
				Entity: "contract",
				From:   string(contract.Status),
				To:     string(*req.Status),
			}
		}
		contract.Status = *req.Status
		if contract.Status == domain.ContractStatusSigned && contract.SignedAt == nil {
			now := time.Now()
			contract.SignedAt = &now
		}
	}

	if req.Title != nil {
		contract.Title = *req.Title
	}
	if req.Content != nil {
		contract.Content = *req.Content
	}

	contract.Booking = nil
	contract.Company = nil
	contract.Contact = nil
	if err := s.contracts.Update(ctx, contract); err != nil {
		s.logger.Error("failed to update contract", zap.String("contractID", id.String()), zap.Error(err))
		return nil, err
	}

	return s.fetchDTO(ctx, id)
}

func (s *ContractService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.contracts.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if err := s.contracts.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("contract deleted", zap.String("contractID", id.String()))
	return nil
}

// UploadDocument stores the signed document and records its path.
func (s *ContractService) UploadDocument(ctx context.Context, id uuid.UUID, filename, contentType string, data io.Reader) (*domain.ContractDTO, error) {
	contract, err := s.contracts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	path, size, err := s.store.Upload(ctx, filename, contentType, data)
	if err != nil {
		s.logger.Error("failed to upload contract document",
			zap.String("contractID", id.String()), zap.Error(err))
		return nil, err
	}

	old := contract.DocumentPath
	contract.DocumentPath = path
	contract.Booking = nil
	contract.Company = nil
	contract.Contact = nil
	if err := s.contracts.Update(ctx, contract); err != nil {
		return nil, err
	}
	if old != "" {
		if err := s.store.Delete(ctx, old); err != nil {
			s.logger.Warn("failed to remove replaced contract document",
				zap.String("path", old), zap.Error(err))
		}
	}

	s.logger.Info("contract document uploaded",
		zap.String("contractID", id.String()),
		zap.String("path", path),
		zap.Int64("size", size))

	return s.fetchDTO(ctx, id)
}

// DownloadDocument streams the stored document along with its stored name.
func (s *ContractService) DownloadDocument(ctx context.Context, id uuid.UUID) (io.ReadCloser, string, error) {
	contract, err := s.contracts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrNotFound
		}
		return nil, "", err
	}
	if contract.DocumentPath == "" {
		return nil, "", ErrNotFound
	}
	reader, err := s.store.Download(ctx, contract.DocumentPath)
	if err != nil {
		return nil, "", err
	}
	return reader, path.Base(contract.DocumentPath), nil
}

func (s *ContractService) fetchDTO(ctx context.Context, id uuid.UUID) (*domain.ContractDTO, error) {
	contract, err := s.contracts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	dto := mapper.ToContractDTO(contract)
	return &dto, nil
}
