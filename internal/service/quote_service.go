package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/solstice-events/bookings-api/internal/domain"
	"github.com/solstice-events/bookings-api/internal/mapper"
	"github.com/solstice-events/bookings-api/internal/money"
	"github.com/solstice-events/bookings-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// QuoteService handles business logic for quotes. Totals are derived
// from line items on every write; stored totals are never trusted from
// the caller.
type QuoteService struct {
	quotes  *repository.QuoteRepository
	refs    *ReferenceResolver
	numbers *NumberSequenceService
	logger  *zap.Logger
}

func NewQuoteService(
	quotes *repository.QuoteRepository,
	refs *ReferenceResolver,
	numbers *NumberSequenceService,
	logger *zap.Logger,
) *QuoteService {
	return &QuoteService{
		quotes:  quotes,
		refs:    refs,
		numbers: numbers,
		logger:  logger,
	}
}

// buildLineItems converts inputs into rows, assigning sort order by
// input position and totalling each line.
func buildQuoteLineItems(inputs []domain.LineItemInput, docRate decimal.Decimal) []domain.QuoteLineItem {
	items := make([]domain.QuoteLineItem, len(inputs))
	for i, in := range inputs {
		qty := decimal.NewFromInt(1)
		if in.Quantity != nil {
			qty = *in.Quantity
		}
		rate := docRate
		if in.VATRate != nil {
			rate = *in.VATRate
		}
		items[i] = domain.QuoteLineItem{
			Description: in.Description,
			Quantity:    qty,
			UnitPrice:   in.UnitPrice,
			VATRate:     rate,
			Total:       money.LineTotal(money.Line{Quantity: qty, UnitPrice: in.UnitPrice, Override: in.Total}),
			SortOrder:   i,
		}
	}
	return items
}

func (s *QuoteService) Create(ctx context.Context, req *domain.CreateQuoteRequest) (*domain.QuoteDTO, error) {
	if err := s.refs.Enquiry(ctx, req.EnquiryID); err != nil {
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
		status = domain.QuoteStatusDraft
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown quote status %q", ErrInvalidInput, status)
	}

	currency := req.Currency
	if currency == "" {
		currency = "GBP"
	}

	quoteDate := time.Now()
	if req.QuoteDate != nil {
		parsed, err := parseDateTime("quoteDate", *req.QuoteDate)
		if err != nil {
			return nil, err
		}
		quoteDate = parsed
	}
	validUntil, err := parseDateTimePtr("validUntil", req.ValidUntil)
	if err != nil {
		return nil, err
	}
	eventDate, err := parseDateTimePtr("eventDate", req.EventDate)
	if err != nil {
		return nil, err
	}

	rate := money.DefaultVATRate
	if req.VATRate != nil {
		rate = *req.VATRate
	}
	items := buildQuoteLineItems(req.LineItems, rate)
	lineTotals := make([]decimal.Decimal, len(items))
	for i := range items {
		lineTotals[i] = items[i].Total
	}
	totals := money.Compute(lineTotals, &rate)

	var quote *domain.Quote
	for attempt := 0; attempt < numberAttempts; attempt++ {
		number, err := s.numbers.Generate(ctx, domain.DocumentKindQuote)
		if err != nil {
			return nil, err
		}

		quote = &domain.Quote{
			EnquiryID:         req.EnquiryID,
			CompanyID:         req.CompanyID,
			ContactID:         req.ContactID,
			UserID:            req.UserID,
			QuoteNumber:       number,
			Title:             req.Title,
			Description:       req.Description,
			Subtotal:          totals.Subtotal,
			VATRate:           totals.VATRate,
			VATAmount:         totals.VATAmount,
			Total:             totals.Total,
			Currency:          currency,
			QuoteDate:         quoteDate,
			ValidUntil:        validUntil,
			EventDate:         eventDate,
			EventDuration:     req.EventDuration,
			Location:          req.Location,
			Status:            status,
			PaymentTerms:      req.PaymentTerms,
			CancellationTerms: req.CancellationTerms,
			Notes:             req.Notes,
			LineItems:         items,
		}

		err = s.quotes.Create(ctx, quote)
		if err == nil {
			break
		}
		if isUniqueViolation(err) && attempt < numberAttempts-1 {
			s.logger.Warn("quote number collision, retrying", zap.String("number", number))
			continue
		}
		s.logger.Error("failed to create quote", zap.Error(err))
		return nil, err
	}

	s.logger.Info("quote created",
		zap.String("quoteID", quote.ID.String()),
		zap.String("quoteNumber", quote.QuoteNumber))

	return s.fetchDTO(ctx, quote.ID)
}

func (s *QuoteService) GetByID(ctx context.Context, id uuid.UUID) (*domain.QuoteDTO, error) {
	return s.fetchDTO(ctx, id)
}

func (s *QuoteService) List(ctx context.Context, page, pageSize int, filters *repository.QuoteFilters) ([]domain.QuoteDTO, int64, error) {
	quotes, total, err := s.quotes.ListWithFilters(ctx, page, pageSize, filters)
	if err != nil {
		return nil, 0, err
	}
	dtos := make([]domain.QuoteDTO, len(quotes))
	for i := range quotes {
		bookings, err := s.quotes.BookingCount(ctx, quotes[i].ID)
		if err != nil {
			return nil, 0, err
		}
		dtos[i] = mapper.ToQuoteDTO(&quotes[i], bookings)
	}
	return dtos, total, nil
}

// Update patches quote fields. Status changes follow the quote
// lifecycle; the quote number and stored totals are immutable here.
func (s *QuoteService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateQuoteRequest) (*domain.QuoteDTO, error) {
	quote, err := s.quotes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Status != nil && *req.Status != quote.Status {
		if !req.Status.IsValid() {
			return nil, fmt.Errorf("%w: unknown quote status %q", ErrInvalidInput, *req.Status)
		}
		if !quote.Status.CanTransitionTo(*req.Status) {
			return nil, &TransitionError{
				Entity: "quote",
				From:   string(quote.Status),
				To:     string(*req.Status),
			}
		}
		quote.Status = *req.Status
	}

	if req.Title != nil {
		quote.Title = *req.Title
	}
	if req.Description != nil {
		quote.Description = *req.Description
	}
	if req.ValidUntil != nil {
		validUntil, err := parseDateTimePtr("validUntil", req.ValidUntil)
		if err != nil {
			return nil, err
		}
		quote.ValidUntil = validUntil
	}
	if req.EventDate != nil {
		eventDate, err := parseDateTimePtr("eventDate", req.EventDate)
		if err != nil {
			return nil, err
		}
		quote.EventDate = eventDate
	}
	if req.EventDuration != nil {
		quote.EventDuration = req.EventDuration
	}
	if req.Location != nil {
		quote.Location = *req.Location
	}
	if req.PaymentTerms != nil {
		quote.PaymentTerms = *req.PaymentTerms
	}
	if req.CancellationTerms != nil {
		quote.CancellationTerms = *req.CancellationTerms
	}
	if req.Notes != nil {
		quote.Notes = *req.Notes
	}

	quote.Enquiry = nil
	quote.Company = nil
	quote.Contact = nil
	quote.LineItems = nil
	if err := s.quotes.Update(ctx, quote); err != nil {
		s.logger.Error("failed to update quote", zap.String("quoteID", id.String()), zap.Error(err))
		return nil, err
	}

	return s.fetchDTO(ctx, id)
}

// ReplaceLineItems swaps a quote's line items and recomputes totals in
// one transaction.
func (s *QuoteService) ReplaceLineItems(ctx context.Context, id uuid.UUID, inputs []domain.LineItemInput) (*domain.QuoteDTO, error) {
	quote, err := s.quotes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	items := buildQuoteLineItems(inputs, quote.VATRate)
	for i := range items {
		items[i].QuoteID = quote.ID
	}
	lineTotals := make([]decimal.Decimal, len(items))
	for i := range items {
		lineTotals[i] = items[i].Total
	}
	totals := money.Compute(lineTotals, &quote.VATRate)

	err = s.quotes.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.quotes.ReplaceLineItems(ctx, tx, quote.ID, items); err != nil {
			return err
		}
		return tx.Model(&domain.Quote{}).
			Where("id = ?", quote.ID).
			Updates(map[string]interface{}{
				"subtotal":   totals.Subtotal,
				"vat_amount": totals.VATAmount,
				"total":      totals.Total,
			}).Error
	})
	if err != nil {
		s.logger.Error("failed to replace quote line items", zap.String("quoteID", id.String()), zap.Error(err))
		return nil, err
	}

	return s.fetchDTO(ctx, id)
}

func (s *QuoteService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.quotes.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if err := s.quotes.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("quote deleted", zap.String("quoteID", id.String()))
	return nil
}

func (s *QuoteService) fetchDTO(ctx context.Context, id uuid.UUID) (*domain.QuoteDTO, error) {
	quote, err := s.quotes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	bookings, err := s.quotes.BookingCount(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := mapper.ToQuoteDTO(quote, bookings)
	return &dto, nil
}
