package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/solstice-events/bookings-api/internal/derive"
	"github.com/solstice-events/bookings-api/internal/domain"
	"github.com/solstice-events/bookings-api/internal/mapper"
	"github.com/solstice-events/bookings-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BookingService handles business logic for bookings. Creating or
// rescheduling a booking keeps its derived calendar entry in step
// inside the same transaction.
type BookingService struct {
	bookings *repository.BookingRepository
	quotes   *repository.QuoteRepository
	calendar *repository.CalendarEventRepository
	refs     *ReferenceResolver
	numbers  *NumberSequenceService
	rules    *derive.Registry
	logger   *zap.Logger
}

func NewBookingService(
	bookings *repository.BookingRepository,
	quotes *repository.QuoteRepository,
	calendar *repository.CalendarEventRepository,
	refs *ReferenceResolver,
	numbers *NumberSequenceService,
	rules *derive.Registry,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings: bookings,
		quotes:   quotes,
		calendar: calendar,
		refs:     refs,
		numbers:  numbers,
		rules:    rules,
		logger:   logger,
	}
}

func (s *BookingService) Create(ctx context.Context, req *domain.CreateBookingRequest) (*domain.BookingDTO, error) {
	if err := s.refs.Enquiry(ctx, req.EnquiryID); err != nil {
		return nil, err
	}
	if err := s.refs.Quote(ctx, req.QuoteID); err != nil {
		return nil, err
	}
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
		status = domain.BookingStatusPending
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown booking status %q", ErrInvalidInput, status)
	}

	eventDate, err := parseDateTime("eventDate", req.EventDate)
	if err != nil {
		return nil, err
	}

	var booking *domain.Booking
	for attempt := 0; attempt < numberAttempts; attempt++ {
		number, err := s.numbers.Generate(ctx, domain.DocumentKindBooking)
		if err != nil {
			return nil, err
		}

		booking = &domain.Booking{
			EnquiryID:       req.EnquiryID,
			QuoteID:         req.QuoteID,
			CompanyID:       req.CompanyID,
			ContactID:       req.ContactID,
			UserID:          req.UserID,
			BookingNumber:   number,
			Title:           req.Title,
			EventDate:       eventDate,
			EventTime:       req.EventTime,
			EventDuration:   req.EventDuration,
			SetupTime:       req.SetupTime,
			Location:        req.Location,
			LocationDetails: req.LocationDetails,
			Postcode:        req.Postcode,
			ServiceType:     req.ServiceType,
			SpecialRequests: req.SpecialRequests,
			Requirements:    req.Requirements,
			Status:          status,
			AgreedPrice:     req.AgreedPrice,
			DepositAmount:   req.DepositAmount,
			DepositPaid:     req.DepositPaid,
			BalancePaid:     req.BalancePaid,
		}
		if status == domain.BookingStatusConfirmed {
			now := time.Now()
			booking.ConfirmedAt = &now
		}

		err = s.bookings.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := s.bookings.CreateTx(ctx, tx, booking); err != nil {
				return err
			}
			if err := s.deriveEvents(ctx, tx, derive.BookingCreated, booking); err != nil {
				return err
			}
			return s.convertQuoteTx(ctx, tx, req.QuoteID)
		})
		if err == nil {
			break
		}
		if isUniqueViolation(err) && attempt < numberAttempts-1 {
			s.logger.Warn("booking number collision, retrying", zap.String("number", number))
			continue
		}
		s.logger.Error("failed to create booking", zap.Error(err))
		return nil, err
	}

	s.logger.Info("booking created",
		zap.String("bookingID", booking.ID.String()),
		zap.String("bookingNumber", booking.BookingNumber))

	return s.fetchDTO(ctx, booking.ID)
}

// convertQuoteTx marks the source quote CONVERTED when a booking is
// created from it. Quotes already converted, or in a state that cannot
// convert, are left alone.
func (s *BookingService) convertQuoteTx(ctx context.Context, tx *gorm.DB, quoteID *uuid.UUID) error {
	if quoteID == nil {
		return nil
	}
	var quote domain.Quote
	if err := tx.WithContext(ctx).First(&quote, "id = ?", *quoteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if !quote.Status.CanTransitionTo(domain.QuoteStatusConverted) || quote.Status == domain.QuoteStatusConverted {
		return nil
	}
	return tx.Model(&quote).Update("status", domain.QuoteStatusConverted).Error
}

func (s *BookingService) deriveEvents(ctx context.Context, tx *gorm.DB, event derive.Event, booking *domain.Booking) error {
	derived, err := s.rules.Evaluate(derive.Input{Event: event, Booking: booking})
	if err != nil {
		return err
	}
	if event == derive.BookingUpdated {
		if err := s.calendar.DeleteByBookingTx(ctx, tx, booking.ID, domain.CalendarEventTypeGig); err != nil {
			return err
		}
	}
	for i := range derived {
		if err := s.calendar.CreateTx(ctx, tx, &derived[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *BookingService) GetByID(ctx context.Context, id uuid.UUID) (*domain.BookingDTO, error) {
	return s.fetchDTO(ctx, id)
}

func (s *BookingService) List(ctx context.Context, page, pageSize int, filters *repository.BookingFilters) ([]domain.BookingDTO, int64, error) {
	bookings, total, err := s.bookings.ListWithFilters(ctx, page, pageSize, filters)
	if err != nil {
		return nil, 0, err
	}
	dtos := make([]domain.BookingDTO, len(bookings))
	for i := range bookings {
		invoices, err := s.bookings.InvoiceCount(ctx, bookings[i].ID)
		if err != nil {
			return nil, 0, err
		}
		dtos[i] = mapper.ToBookingDTO(&bookings[i], invoices)
	}
	return dtos, total, nil
}

// Update patches booking fields. A move to CONFIRMED stamps
// confirmedAt; schedule changes rebuild the derived calendar entry.
func (s *BookingService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateBookingRequest) (*domain.BookingDTO, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Status != nil && *req.Status != booking.Status {
		if !req.Status.IsValid() {
			return nil, fmt.Errorf("%w: unknown booking status %q", ErrInvalidInput, *req.Status)
		}
		if !booking.Status.CanTransitionTo(*req.Status) {
			return nil, &TransitionError{
				Entity: "booking",
				From:   string(booking.Status),
				To:     string(*req.Status),
			}
		}
		booking.Status = *req.Status
		if booking.Status == domain.BookingStatusConfirmed && booking.ConfirmedAt == nil {
			now := time.Now()
			booking.ConfirmedAt = &now
		}
	}

	reschedule := false
	if req.Title != nil {
		booking.Title = *req.Title
		reschedule = true
	}
	if req.EventDate != nil {
		eventDate, err := parseDateTime("eventDate", *req.EventDate)
		if err != nil {
			return nil, err
		}
		booking.EventDate = eventDate
		reschedule = true
	}
	if req.EventTime != nil {
		booking.EventTime = *req.EventTime
		reschedule = true
	}
	if req.EventDuration != nil {
		booking.EventDuration = *req.EventDuration
		reschedule = true
	}
	if req.SetupTime != nil {
		booking.SetupTime = *req.SetupTime
	}
	if req.Location != nil {
		booking.Location = *req.Location
		reschedule = true
	}
	if req.LocationDetails != nil {
		booking.LocationDetails = *req.LocationDetails
	}
	if req.Postcode != nil {
		booking.Postcode = *req.Postcode
	}
	if req.ServiceType != nil {
		booking.ServiceType = *req.ServiceType
	}
	if req.SpecialRequests != nil {
		booking.SpecialRequests = *req.SpecialRequests
	}
	if req.Requirements != nil {
		booking.Requirements = *req.Requirements
	}
	if req.AgreedPrice != nil {
		booking.AgreedPrice = req.AgreedPrice
	}
	if req.DepositAmount != nil {
		booking.DepositAmount = req.DepositAmount
	}
	if req.DepositPaid != nil {
		booking.DepositPaid = *req.DepositPaid
	}
	if req.BalancePaid != nil {
		booking.BalancePaid = *req.BalancePaid
	}
	if req.UserID != nil {
		if err := s.refs.User(ctx, req.UserID); err != nil {
			return nil, err
		}
		booking.UserID = req.UserID
	}

	booking.Company = nil
	booking.Contact = nil
	booking.AssignedTo = nil
	booking.Contract = nil
	err = s.bookings.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(booking).Error; err != nil {
			return err
		}
		if !reschedule {
			return nil
		}
		return s.deriveEvents(ctx, tx, derive.BookingUpdated, booking)
	})
	if err != nil {
		s.logger.Error("failed to update booking", zap.String("bookingID", id.String()), zap.Error(err))
		return nil, err
	}

	return s.fetchDTO(ctx, id)
}

// Delete soft-deletes a booking and removes its derived calendar entry.
func (s *BookingService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.bookings.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	err := s.bookings.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.Booking{}, "id = ?", id).Error; err != nil {
			return err
		}
		return s.calendar.DeleteByBookingTx(ctx, tx, id, domain.CalendarEventTypeGig)
	})
	if err != nil {
		return err
	}
	s.logger.Info("booking deleted", zap.String("bookingID", id.String()))
	return nil
}

func (s *BookingService) fetchDTO(ctx context.Context, id uuid.UUID) (*domain.BookingDTO, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	invoices, err := s.bookings.InvoiceCount(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := mapper.ToBookingDTO(booking, invoices)
	return &dto, nil
}
