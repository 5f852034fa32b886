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

// InvoiceService handles business logic for invoices and payments.
// The outstanding balance is always recomputed from completed payments
// rather than adjusted incrementally.
type InvoiceService struct {
	invoices *repository.InvoiceRepository
	refs     *ReferenceResolver
	numbers  *NumberSequenceService
	logger   *zap.Logger
}

func NewInvoiceService(
	invoices *repository.InvoiceRepository,
	refs *ReferenceResolver,
	numbers *NumberSequenceService,
	logger *zap.Logger,
) *InvoiceService {
	return &InvoiceService{
		invoices: invoices,
		refs:     refs,
		numbers:  numbers,
		logger:   logger,
	}
}

func buildInvoiceLineItems(inputs []domain.LineItemInput, docRate decimal.Decimal) []domain.InvoiceLineItem {
	items := make([]domain.InvoiceLineItem, len(inputs))
	for i, in := range inputs {
		qty := decimal.NewFromInt(1)
		if in.Quantity != nil {
			qty = *in.Quantity
		}
		rate := docRate
		if in.VATRate != nil {
			rate = *in.VATRate
		}
		items[i] = domain.InvoiceLineItem{
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

func (s *InvoiceService) Create(ctx context.Context, req *domain.CreateInvoiceRequest) (*domain.InvoiceDTO, error) {
	if err := s.refs.Booking(ctx, req.BookingID); err != nil {
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
		status = domain.InvoiceStatusDraft
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown invoice status %q", ErrInvalidInput, status)
	}

	currency := req.Currency
	if currency == "" {
		currency = "GBP"
	}

	invoiceDate := time.Now()
	if req.InvoiceDate != nil {
		parsed, err := parseDateTime("invoiceDate", *req.InvoiceDate)
		if err != nil {
			return nil, err
		}
		invoiceDate = parsed
	}
	dueDate, err := parseDateTime("dueDate", req.DueDate)
	if err != nil {
		return nil, err
	}

	rate := money.DefaultVATRate
	if req.VATRate != nil {
		rate = *req.VATRate
	}
	items := buildInvoiceLineItems(req.LineItems, rate)
	lineTotals := make([]decimal.Decimal, len(items))
	for i := range items {
		lineTotals[i] = items[i].Total
	}
	totals := money.Compute(lineTotals, &rate)

	var invoice *domain.Invoice
	for attempt := 0; attempt < numberAttempts; attempt++ {
		number, err := s.numbers.Generate(ctx, domain.DocumentKindInvoice)
		if err != nil {
			return nil, err
		}

		invoice = &domain.Invoice{
			BookingID:     req.BookingID,
			QuoteID:       req.QuoteID,
			CompanyID:     req.CompanyID,
			ContactID:     req.ContactID,
			UserID:        req.UserID,
			InvoiceNumber: number,
			Title:         req.Title,
			Description:   req.Description,
			InvoiceDate:   invoiceDate,
			DueDate:       dueDate,
			Subtotal:      totals.Subtotal,
			VATRate:       totals.VATRate,
			VATAmount:     totals.VATAmount,
			Total:         totals.Total,
			AmountDue:     totals.Total,
			Currency:      currency,
			Status:        status,
			PaymentTerms:  req.PaymentTerms,
			PaymentMethod: req.PaymentMethod,
			BankDetails:   req.BankDetails,
			LineItems:     items,
		}

		err = s.invoices.Create(ctx, invoice)
		if err == nil {
			break
		}
		if isUniqueViolation(err) && attempt < numberAttempts-1 {
			s.logger.Warn("invoice number collision, retrying", zap.String("number", number))
			continue
		}
		s.logger.Error("failed to create invoice", zap.Error(err))
		return nil, err
	}

	s.logger.Info("invoice created",
		zap.String("invoiceID", invoice.ID.String()),
		zap.String("invoiceNumber", invoice.InvoiceNumber))

	return s.fetchDTO(ctx, invoice.ID)
}

func (s *InvoiceService) GetByID(ctx context.Context, id uuid.UUID) (*domain.InvoiceDTO, error) {
	return s.fetchDTO(ctx, id)
}

func (s *InvoiceService) List(ctx context.Context, page, pageSize int, filters *repository.InvoiceFilters) ([]domain.InvoiceDTO, int64, error) {
	invoices, total, err := s.invoices.ListWithFilters(ctx, page, pageSize, filters)
	if err != nil {
		return nil, 0, err
	}
	dtos := make([]domain.InvoiceDTO, len(invoices))
	for i := range invoices {
		dtos[i] = mapper.ToInvoiceDTO(&invoices[i])
	}
	return dtos, total, nil
}

// Update patches invoice fields. Totals and the invoice number are
// immutable; status moves follow the invoice lifecycle.
func (s *InvoiceService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateInvoiceRequest) (*domain.InvoiceDTO, error) {
	invoice, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Status != nil && *req.Status != invoice.Status {
		if !req.Status.IsValid() {
			return nil, fmt.Errorf("%w: unknown invoice status %q", ErrInvalidInput, *req.Status)
		}
		if !invoice.Status.CanTransitionTo(*req.Status) {
			return nil, &TransitionError{
				Entity: "invoice",
				From:   string(invoice.Status),
				To:     string(*req.Status),
			}
		}
		invoice.Status = *req.Status
	}

	if req.Title != nil {
		invoice.Title = *req.Title
	}
	if req.Description != nil {
		invoice.Description = *req.Description
	}
	if req.DueDate != nil {
		dueDate, err := parseDateTime("dueDate", *req.DueDate)
		if err != nil {
			return nil, err
		}
		invoice.DueDate = dueDate
	}
	if req.PaymentTerms != nil {
		invoice.PaymentTerms = *req.PaymentTerms
	}
	if req.PaymentMethod != nil {
		invoice.PaymentMethod = *req.PaymentMethod
	}
	if req.BankDetails != nil {
		invoice.BankDetails = *req.BankDetails
	}

	invoice.Booking = nil
	invoice.Quote = nil
	invoice.Company = nil
	invoice.Contact = nil
	invoice.LineItems = nil
	invoice.Payments = nil
	if err := s.invoices.Update(ctx, invoice); err != nil {
		s.logger.Error("failed to update invoice", zap.String("invoiceID", id.String()), zap.Error(err))
		return nil, err
	}

	return s.fetchDTO(ctx, id)
}

func (s *InvoiceService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.invoices.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if err := s.invoices.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("invoice deleted", zap.String("invoiceID", id.String()))
	return nil
}

// RecordPayment registers money against an invoice and settles the
// balance in the same transaction. When completed payments cover the
// total the invoice flips to PAID, a partial cover flips it to PARTIAL.
func (s *InvoiceService) RecordPayment(ctx context.Context, invoiceID uuid.UUID, req *domain.RecordPaymentRequest) (*domain.InvoiceDTO, error) {
	invoice, err := s.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}

	status := req.Status
	if status == "" {
		status = domain.PaymentStatusCompleted
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown payment status %q", ErrInvalidInput, status)
	}

	paymentDate := time.Now()
	if req.PaymentDate != nil {
		parsed, err := parseDateTime("paymentDate", *req.PaymentDate)
		if err != nil {
			return nil, err
		}
		paymentDate = parsed
	}

	payment := &domain.Payment{
		InvoiceID:   invoice.ID,
		Amount:      req.Amount,
		PaymentDate: paymentDate,
		Method:      req.Method,
		Reference:   req.Reference,
		Status:      status,
	}

	err = s.invoices.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.invoices.CreatePayment(ctx, tx, payment); err != nil {
			return err
		}
		return s.settleTx(ctx, tx, invoice.ID)
	})
	if err != nil {
		s.logger.Error("failed to record payment", zap.String("invoiceID", invoiceID.String()), zap.Error(err))
		return nil, err
	}

	s.logger.Info("payment recorded",
		zap.String("invoiceID", invoiceID.String()),
		zap.String("paymentID", payment.ID.String()),
		zap.String("amount", req.Amount.String()))

	return s.fetchDTO(ctx, invoiceID)
}

// UpdatePaymentStatus changes a payment's status and re-settles the
// invoice. A refund or failure can move a PAID invoice back only via
// the recompute, which never rewrites terminal statuses.
func (s *InvoiceService) UpdatePaymentStatus(ctx context.Context, invoiceID, paymentID uuid.UUID, req *domain.UpdatePaymentStatusRequest) (*domain.InvoiceDTO, error) {
	if !req.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown payment status %q", ErrInvalidInput, req.Status)
	}

	payment, err := s.invoices.GetPayment(ctx, invoiceID, paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	payment.Status = req.Status

	err = s.invoices.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.invoices.UpdatePayment(ctx, tx, payment); err != nil {
			return err
		}
		return s.settleTx(ctx, tx, invoiceID)
	})
	if err != nil {
		return nil, err
	}

	return s.fetchDTO(ctx, invoiceID)
}

// settleTx recomputes amountDue from completed payments and applies
// the PARTIAL/PAID auto-transitions when the lifecycle allows them.
func (s *InvoiceService) settleTx(ctx context.Context, tx *gorm.DB, invoiceID uuid.UUID) error {
	var invoice domain.Invoice
	if err := tx.WithContext(ctx).First(&invoice, "id = ?", invoiceID).Error; err != nil {
		return err
	}

	amounts, err := s.invoices.CompletedPaymentAmounts(ctx, tx, invoiceID)
	if err != nil {
		return err
	}
	due := money.AmountDue(invoice.Total, amounts)

	updates := map[string]interface{}{"amount_due": due}
	switch {
	case due.IsZero() && invoice.Total.IsPositive():
		if invoice.Status.CanTransitionTo(domain.InvoiceStatusPaid) {
			updates["status"] = domain.InvoiceStatusPaid
		}
	case due.LessThan(invoice.Total):
		if invoice.Status != domain.InvoiceStatusPartial &&
			invoice.Status.CanTransitionTo(domain.InvoiceStatusPartial) {
			updates["status"] = domain.InvoiceStatusPartial
		}
	}

	return tx.Model(&invoice).Updates(updates).Error
}

func (s *InvoiceService) fetchDTO(ctx context.Context, id uuid.UUID) (*domain.InvoiceDTO, error) {
	invoice, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	dto := mapper.ToInvoiceDTO(invoice)
	return &dto, nil
}
