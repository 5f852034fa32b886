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

// EnquiryService handles business logic for inbound enquiries.
type EnquiryService struct {
	enquiries *repository.EnquiryRepository
	notes     *repository.NoteRepository
	refs      *ReferenceResolver
	logger    *zap.Logger
}

func NewEnquiryService(
	enquiries *repository.EnquiryRepository,
	notes *repository.NoteRepository,
	refs *ReferenceResolver,
	logger *zap.Logger,
) *EnquiryService {
	return &EnquiryService{
		enquiries: enquiries,
		notes:     notes,
		refs:      refs,
		logger:    logger,
	}
}

func (s *EnquiryService) Create(ctx context.Context, req *domain.CreateEnquiryRequest) (*domain.EnquiryDTO, error) {
	if err := s.refs.Company(ctx, req.CompanyID); err != nil {
		return nil, err
	}
	if err := s.refs.Contact(ctx, req.ContactID, req.CompanyID); err != nil {
		return nil, err
	}
	if err := s.refs.User(ctx, req.UserID); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = domain.EnquiryStatusNew
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown enquiry status %q", ErrInvalidInput, status)
	}
	priority := req.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, priority)
	}
	enquiryType := req.EnquiryType
	if enquiryType == "" {
		enquiryType = "WEDDING"
	}

	eventDate, err := parseDateTimePtr("eventDate", req.EventDate)
	if err != nil {
		return nil, err
	}

	enquiry := &domain.Enquiry{
		CompanyID:       req.CompanyID,
		ContactID:       req.ContactID,
		UserID:          req.UserID,
		Subject:         req.Subject,
		Description:     req.Description,
		EnquiryType:     enquiryType,
		EventDate:       eventDate,
		EventLocation:   req.EventLocation,
		EstimatedGuests: req.EstimatedGuests,
		Budget:          req.Budget,
		Status:          status,
		Priority:        priority,
		Source:          req.Source,
		Tags:            req.Tags,
		CustomFields:    req.CustomFields,
	}

	if err := s.enquiries.Create(ctx, enquiry); err != nil {
		s.logger.Error("failed to create enquiry", zap.Error(err))
		return nil, err
	}

	s.logger.Info("enquiry created",
		zap.String("enquiryID", enquiry.ID.String()),
		zap.String("subject", enquiry.Subject))

	return s.fetchDTO(ctx, enquiry.ID)
}

func (s *EnquiryService) GetByID(ctx context.Context, id uuid.UUID) (*domain.EnquiryDTO, error) {
	return s.fetchDTO(ctx, id)
}

// GetDetail loads an enquiry with quotes, bookings, notes and open tasks.
func (s *EnquiryService) GetDetail(ctx context.Context, id uuid.UUID) (*domain.EnquiryDetailDTO, error) {
	enquiry, err := s.enquiries.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	detail := mapper.ToEnquiryDetailDTO(enquiry)
	return &detail, nil
}

func (s *EnquiryService) List(ctx context.Context, page, pageSize int, filters *repository.EnquiryFilters) ([]domain.EnquiryDTO, int64, error) {
	enquiries, total, err := s.enquiries.ListWithFilters(ctx, page, pageSize, filters)
	if err != nil {
		return nil, 0, err
	}
	dtos := make([]domain.EnquiryDTO, len(enquiries))
	for i := range enquiries {
		quotes, bookings, err := s.enquiries.RelatedCounts(ctx, enquiries[i].ID)
		if err != nil {
			return nil, 0, err
		}
		dtos[i] = mapper.ToEnquiryDTO(&enquiries[i], quotes, bookings)
	}
	return dtos, total, nil
}

// Update applies a partial patch. A status change is validated against
// the enquiry pipeline; everything else is copied when present.
func (s *EnquiryService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateEnquiryRequest) (*domain.EnquiryDTO, error) {
	enquiry, err := s.enquiries.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Status != nil && *req.Status != enquiry.Status {
		if !req.Status.IsValid() {
			return nil, fmt.Errorf("%w: unknown enquiry status %q", ErrInvalidInput, *req.Status)
		}
		if !enquiry.Status.CanTransitionTo(*req.Status) {
			return nil, &TransitionError{
				Entity: "enquiry",
				From:   string(enquiry.Status),
				To:     string(*req.Status),
			}
		}
		enquiry.Status = *req.Status
	}

	if req.CompanyID != nil {
		if err := s.refs.Company(ctx, req.CompanyID); err != nil {
			return nil, err
		}
		enquiry.CompanyID = req.CompanyID
	}
	if req.ContactID != nil {
		if err := s.refs.Contact(ctx, req.ContactID, enquiry.CompanyID); err != nil {
			return nil, err
		}
		enquiry.ContactID = req.ContactID
	}
	if req.UserID != nil {
		if err := s.refs.User(ctx, req.UserID); err != nil {
			return nil, err
		}
		enquiry.UserID = req.UserID
	}
	if req.Subject != nil {
		enquiry.Subject = *req.Subject
	}
	if req.Description != nil {
		enquiry.Description = *req.Description
	}
	if req.EnquiryType != nil {
		enquiry.EnquiryType = *req.EnquiryType
	}
	if req.EventDate != nil {
		eventDate, err := parseDateTimePtr("eventDate", req.EventDate)
		if err != nil {
			return nil, err
		}
		enquiry.EventDate = eventDate
	}
	if req.EventLocation != nil {
		enquiry.EventLocation = *req.EventLocation
	}
	if req.EstimatedGuests != nil {
		enquiry.EstimatedGuests = req.EstimatedGuests
	}
	if req.Budget != nil {
		enquiry.Budget = req.Budget
	}
	if req.Priority != nil {
		if !req.Priority.IsValid() {
			return nil, fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, *req.Priority)
		}
		enquiry.Priority = *req.Priority
	}
	if req.Source != nil {
		enquiry.Source = *req.Source
	}
	if req.Tags != nil {
		enquiry.Tags = *req.Tags
	}
	if req.CustomFields != nil {
		enquiry.CustomFields = *req.CustomFields
	}

	enquiry.Company = nil
	enquiry.Contact = nil
	enquiry.AssignedTo = nil
	if err := s.enquiries.Update(ctx, enquiry); err != nil {
		s.logger.Error("failed to update enquiry", zap.String("enquiryID", id.String()), zap.Error(err))
		return nil, err
	}

	return s.fetchDTO(ctx, id)
}

// Delete soft-deletes an enquiry; quotes and bookings survive.
func (s *EnquiryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.enquiries.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if err := s.enquiries.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("enquiry deleted", zap.String("enquiryID", id.String()))
	return nil
}

// AddNote attaches a note to an enquiry.
func (s *EnquiryService) AddNote(ctx context.Context, enquiryID uuid.UUID, userID *uuid.UUID, req *domain.CreateNoteRequest) (*domain.NoteDTO, error) {
	ok, err := s.enquiries.Exists(ctx, enquiryID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	if err := s.refs.User(ctx, userID); err != nil {
		return nil, err
	}

	note := &domain.Note{
		EnquiryID: enquiryID,
		UserID:    userID,
		Body:      req.Body,
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, err
	}
	// Reload so the author association is populated on the response.
	created, err := s.notes.GetByID(ctx, note.ID)
	if err != nil {
		return nil, err
	}
	dto := mapper.ToNoteDTO(created)
	return &dto, nil
}

// ListNotes returns an enquiry's notes, newest first.
func (s *EnquiryService) ListNotes(ctx context.Context, enquiryID uuid.UUID) ([]domain.NoteDTO, error) {
	ok, err := s.enquiries.Exists(ctx, enquiryID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	notes, err := s.notes.ListByEnquiry(ctx, enquiryID)
	if err != nil {
		return nil, err
	}
	dtos := make([]domain.NoteDTO, len(notes))
	for i := range notes {
		dtos[i] = mapper.ToNoteDTO(&notes[i])
	}
	return dtos, nil
}

func (s *EnquiryService) fetchDTO(ctx context.Context, id uuid.UUID) (*domain.EnquiryDTO, error) {
	enquiry, err := s.enquiries.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	quotes, bookings, err := s.enquiries.RelatedCounts(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := mapper.ToEnquiryDTO(enquiry, quotes, bookings)
	return &dto, nil
}
