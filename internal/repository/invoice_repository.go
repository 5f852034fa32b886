package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/solstice-events/bookings-api/internal/domain"
	"gorm.io/gorm"
)

type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

func (r *InvoiceRepository) DB() *gorm.DB {
	return r.db
}

// Create inserts an invoice together with its line items.
func (r *InvoiceRepository) Create(ctx context.Context, invoice *domain.Invoice) error {
	return r.db.WithContext(ctx).Create(invoice).Error
}

func (r *InvoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := r.db.WithContext(ctx).
		Preload("LineItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("payment_date ASC")
		}).
		Preload("Company").
		Preload("Contact").
		Preload("Booking").
		First(&invoice, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// InvoiceFilters holds filters for listing invoices
type InvoiceFilters struct {
	Status    *domain.InvoiceStatus
	CompanyID *uuid.UUID
	BookingID *uuid.UUID
	Overdue   bool
	// Now anchors the overdue comparison; zero means time.Now at call site.
	Now            time.Time
	Search         string
	IncludeDeleted bool
}

// ListWithFilters returns invoices with filters and pagination,
// newest invoice date first.
func (r *InvoiceRepository) ListWithFilters(ctx context.Context, page, pageSize int, filters *InvoiceFilters) ([]domain.Invoice, int64, error) {
	var invoices []domain.Invoice
	var total int64

	offset := (page - 1) * pageSize

	query := r.db.WithContext(ctx).Model(&domain.Invoice{})

	if filters != nil {
		if filters.IncludeDeleted {
			query = query.Unscoped()
		}
		if filters.Status != nil {
			query = query.Where("status = ?", *filters.Status)
		}
		if filters.CompanyID != nil {
			query = query.Where("company_id = ?", *filters.CompanyID)
		}
		if filters.BookingID != nil {
			query = query.Where("booking_id = ?", *filters.BookingID)
		}
		if filters.Overdue {
			now := filters.Now
			if now.IsZero() {
				now = time.Now()
			}
			// Overdue is computed at query time from SENT and PARTIAL
			// rows only; a stored OVERDUE status does not qualify.
			query = query.Where("status IN ? AND due_date < ?",
				[]domain.InvoiceStatus{
					domain.InvoiceStatusSent,
					domain.InvoiceStatusPartial,
				}, now)
		}
		if filters.Search != "" {
			pattern := "%" + filters.Search + "%"
			query = query.Where(
				"LOWER(title) LIKE LOWER(?) OR LOWER(invoice_number) LIKE LOWER(?)",
				pattern, pattern,
			)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("LineItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Payments").
		Preload("Company").
		Preload("Contact").
		Preload("Booking").
		Order("invoice_date DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&invoices).Error

	return invoices, total, err
}

func (r *InvoiceRepository) Update(ctx context.Context, invoice *domain.Invoice) error {
	return r.db.WithContext(ctx).Save(invoice).Error
}

func (r *InvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Invoice{}, "id = ?", id).Error
}

// ListOverdue returns sent and partly paid invoices past their due
// date, oldest due date first. Statuses are left untouched; the list
// feeds the nightly reminder job.
func (r *InvoiceRepository) ListOverdue(ctx context.Context, now time.Time) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	err := r.db.WithContext(ctx).
		Preload("Company").
		Where("status IN ? AND due_date < ?",
			[]domain.InvoiceStatus{domain.InvoiceStatusSent, domain.InvoiceStatusPartial}, now).
		Order("due_date ASC").
		Find(&invoices).Error
	return invoices, err
}

// ListPaidSince returns invoices fully settled at or after the cutoff.
func (r *InvoiceRepository) ListPaidSince(ctx context.Context, cutoff time.Time) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	err := r.db.WithContext(ctx).
		Preload("Company").
		Where("status = ? AND updated_at >= ?", domain.InvoiceStatusPaid, cutoff).
		Order("updated_at ASC").
		Find(&invoices).Error
	return invoices, err
}

// Payment methods

func (r *InvoiceRepository) CreatePayment(ctx context.Context, tx *gorm.DB, payment *domain.Payment) error {
	return tx.WithContext(ctx).Create(payment).Error
}

func (r *InvoiceRepository) GetPayment(ctx context.Context, invoiceID, paymentID uuid.UUID) (*domain.Payment, error) {
	var payment domain.Payment
	err := r.db.WithContext(ctx).
		First(&payment, "id = ? AND invoice_id = ?", paymentID, invoiceID).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *InvoiceRepository) UpdatePayment(ctx context.Context, tx *gorm.DB, payment *domain.Payment) error {
	return tx.WithContext(ctx).Save(payment).Error
}

// CompletedPaymentAmounts returns the amounts of all live COMPLETED
// payments against an invoice, inside the given transaction.
func (r *InvoiceRepository) CompletedPaymentAmounts(ctx context.Context, tx *gorm.DB, invoiceID uuid.UUID) ([]decimal.Decimal, error) {
	var payments []domain.Payment
	err := tx.WithContext(ctx).
		Where("invoice_id = ? AND status = ?", invoiceID, domain.PaymentStatusCompleted).
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	amounts := make([]decimal.Decimal, len(payments))
	for i, p := range payments {
		amounts[i] = p.Amount
	}
	return amounts, nil
}
