package service_test

import (
	"testing"

	"github.com/solstice-events/bookings-api/internal/derive"
	"github.com/solstice-events/bookings-api/internal/repository"
	"github.com/solstice-events/bookings-api/internal/service"
	"github.com/solstice-events/bookings-api/internal/storage"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// fixture wires the full service graph over one test database, the
// same way the application entrypoint does.
type fixture struct {
	db        *gorm.DB
	companies *service.CompanyService
	contacts  *service.ContactService
	enquiries *service.EnquiryService
	quotes    *service.QuoteService
	bookings  *service.BookingService
	invoices  *service.InvoiceService
	contracts *service.ContractService
	tasks     *service.TaskService
	calendar  *service.CalendarService
}

func newFixture(t *testing.T, db *gorm.DB) *fixture {
	t.Helper()
	log := zap.NewNop()

	companyRepo := repository.NewCompanyRepository(db)
	contactRepo := repository.NewContactRepository(db)
	userRepo := repository.NewUserRepository(db)
	enquiryRepo := repository.NewEnquiryRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	contractRepo := repository.NewContractRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	calendarRepo := repository.NewCalendarEventRepository(db)
	sequenceRepo := repository.NewNumberSequenceRepository(db)

	refs := service.NewReferenceResolver(companyRepo, contactRepo, userRepo, enquiryRepo, quoteRepo, bookingRepo)
	numbers := service.NewNumberSequenceService(sequenceRepo, log)

	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	return &fixture{
		db:        db,
		companies: service.NewCompanyService(companyRepo, contactRepo, log),
		contacts:  service.NewContactService(contactRepo, companyRepo, log),
		enquiries: service.NewEnquiryService(enquiryRepo, noteRepo, refs, log),
		quotes:    service.NewQuoteService(quoteRepo, refs, numbers, log),
		bookings:  service.NewBookingService(bookingRepo, quoteRepo, calendarRepo, refs, numbers, derive.Default(), log),
		invoices:  service.NewInvoiceService(invoiceRepo, refs, numbers, log),
		contracts: service.NewContractService(contractRepo, refs, numbers, store, log),
		tasks:     service.NewTaskService(taskRepo, refs, log),
		calendar:  service.NewCalendarService(calendarRepo, refs, log),
	}
}

func ptr[T any](v T) *T {
	return &v
}
