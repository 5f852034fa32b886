// Package testutil provides shared helpers for tests: an isolated
// in-memory database per test and factory functions for fixture rows.
package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/solstice-events/bookings-api/internal/domain"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// SetupTestDB opens a fresh in-memory database and migrates the full
// schema. Each call gets its own database, so tests stay independent.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err, "failed to open test database")

	// A single connection keeps every query on the same in-memory
	// database instance.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&domain.User{},
		&domain.Company{},
		&domain.Contact{},
		&domain.Enquiry{},
		&domain.Note{},
		&domain.Quote{},
		&domain.QuoteLineItem{},
		&domain.Booking{},
		&domain.Invoice{},
		&domain.InvoiceLineItem{},
		&domain.Payment{},
		&domain.Contract{},
		&domain.Task{},
		&domain.CalendarEvent{},
		&domain.NumberSequence{},
	)
	require.NoError(t, err, "failed to migrate test schema")

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}

// CreateTestUser inserts a staff user with a unique email.
func CreateTestUser(t *testing.T, db *gorm.DB, name string) *domain.User {
	t.Helper()
	user := &domain.User{
		Name:  name,
		Email: uuid.New().String() + "@example.com",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateTestCompany inserts an active company.
func CreateTestCompany(t *testing.T, db *gorm.DB, name string) *domain.Company {
	t.Helper()
	company := &domain.Company{
		Name:    name,
		Country: "GB",
		Status:  domain.CompanyStatusActive,
	}
	require.NoError(t, db.Create(company).Error)
	return company
}

// CreateTestContact inserts a contact for a company.
func CreateTestContact(t *testing.T, db *gorm.DB, companyID uuid.UUID, firstName, lastName string, isPrimary bool) *domain.Contact {
	t.Helper()
	contact := &domain.Contact{
		CompanyID: companyID,
		FirstName: firstName,
		LastName:  lastName,
		IsPrimary: isPrimary,
	}
	require.NoError(t, db.Create(contact).Error)
	return contact
}

// CreateTestEnquiry inserts an enquiry in the NEW stage.
func CreateTestEnquiry(t *testing.T, db *gorm.DB, companyID *uuid.UUID, subject string) *domain.Enquiry {
	t.Helper()
	enquiry := &domain.Enquiry{
		CompanyID:   companyID,
		Subject:     subject,
		EnquiryType: "WEDDING",
		Status:      domain.EnquiryStatusNew,
		Priority:    domain.PriorityMedium,
	}
	require.NoError(t, db.Create(enquiry).Error)
	return enquiry
}

// CreateTestBooking inserts a pending booking with a unique number.
func CreateTestBooking(t *testing.T, db *gorm.DB, companyID *uuid.UUID, title string, eventDate time.Time) *domain.Booking {
	t.Helper()
	booking := &domain.Booking{
		CompanyID:     companyID,
		BookingNumber: "BK-2026-" + uuid.New().String()[:5],
		Title:         title,
		EventDate:     eventDate,
		Status:        domain.BookingStatusPending,
	}
	require.NoError(t, db.Create(booking).Error)
	return booking
}

// CreateTestInvoice inserts an invoice with the given status, total and
// due date. AmountDue starts equal to the total.
func CreateTestInvoice(t *testing.T, db *gorm.DB, companyID *uuid.UUID, status domain.InvoiceStatus, total decimal.Decimal, dueDate time.Time) *domain.Invoice {
	t.Helper()
	invoice := &domain.Invoice{
		CompanyID:     companyID,
		InvoiceNumber: "INV-2026-" + uuid.New().String()[:5],
		Title:         "Test invoice",
		InvoiceDate:   time.Now(),
		DueDate:       dueDate,
		Subtotal:      total,
		VATRate:       decimal.Zero,
		VATAmount:     decimal.Zero,
		Total:         total,
		AmountDue:     total,
		Currency:      "GBP",
		Status:        status,
	}
	require.NoError(t, db.Create(invoice).Error)
	return invoice
}
