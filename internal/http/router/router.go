package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/solstice-events/bookings-api/internal/auth"
	"github.com/solstice-events/bookings-api/internal/config"
	"github.com/solstice-events/bookings-api/internal/database"
	"github.com/solstice-events/bookings-api/internal/http/handler"
	"github.com/solstice-events/bookings-api/internal/http/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Router struct {
	cfg             *config.Config
	logger          *zap.Logger
	db              *gorm.DB
	authMiddleware  *auth.Middleware
	rateLimiter     *middleware.RateLimiter
	companyHandler  *handler.CompanyHandler
	contactHandler  *handler.ContactHandler
	enquiryHandler  *handler.EnquiryHandler
	quoteHandler    *handler.QuoteHandler
	bookingHandler  *handler.BookingHandler
	invoiceHandler  *handler.InvoiceHandler
	contractHandler *handler.ContractHandler
	taskHandler     *handler.TaskHandler
	calendarHandler *handler.CalendarHandler
	userHandler     *handler.UserHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	companyHandler *handler.CompanyHandler,
	contactHandler *handler.ContactHandler,
	enquiryHandler *handler.EnquiryHandler,
	quoteHandler *handler.QuoteHandler,
	bookingHandler *handler.BookingHandler,
	invoiceHandler *handler.InvoiceHandler,
	contractHandler *handler.ContractHandler,
	taskHandler *handler.TaskHandler,
	calendarHandler *handler.CalendarHandler,
	userHandler *handler.UserHandler,
) *Router {
	return &Router{
		cfg:             cfg,
		logger:          logger,
		db:              db,
		authMiddleware:  authMiddleware,
		rateLimiter:     rateLimiter,
		companyHandler:  companyHandler,
		contactHandler:  contactHandler,
		enquiryHandler:  enquiryHandler,
		quoteHandler:    quoteHandler,
		bookingHandler:  bookingHandler,
		invoiceHandler:  invoiceHandler,
		contractHandler: contractHandler,
		taskHandler:     taskHandler,
		calendarHandler: calendarHandler,
		userHandler:     userHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP)

	// Liveness probe
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Readiness probe
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := database.HealthCheck(rt.db); err != nil {
			rt.logger.Error("database health check failed", zap.Error(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			})
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "healthy",
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(rt.authMiddleware.Authenticate)

		// Companies
		r.Route("/companies", func(r chi.Router) {
			r.Get("/", rt.companyHandler.List)
			r.Post("/", rt.companyHandler.Create)
			r.Get("/{id}", rt.companyHandler.Get)
			r.Patch("/{id}", rt.companyHandler.Update)
			r.Delete("/{id}", rt.companyHandler.Delete)
		})

		// Contacts
		r.Route("/contacts", func(r chi.Router) {
			r.Get("/", rt.contactHandler.List)
			r.Post("/", rt.contactHandler.Create)
			r.Get("/{id}", rt.contactHandler.Get)
			r.Patch("/{id}", rt.contactHandler.Update)
			r.Delete("/{id}", rt.contactHandler.Delete)
		})

		// Enquiries
		r.Route("/enquiries", func(r chi.Router) {
			r.Get("/", rt.enquiryHandler.List)
			r.Post("/", rt.enquiryHandler.Create)
			r.Get("/{id}", rt.enquiryHandler.Get)
			r.Patch("/{id}", rt.enquiryHandler.Update)
			r.Delete("/{id}", rt.enquiryHandler.Delete)
			r.Get("/{id}/notes", rt.enquiryHandler.ListNotes)
			r.Post("/{id}/notes", rt.enquiryHandler.AddNote)
		})

		// Quotes
		r.Route("/quotes", func(r chi.Router) {
			r.Get("/", rt.quoteHandler.List)
			r.Post("/", rt.quoteHandler.Create)
			r.Get("/{id}", rt.quoteHandler.Get)
			r.Patch("/{id}", rt.quoteHandler.Update)
			r.Delete("/{id}", rt.quoteHandler.Delete)
			r.Put("/{id}/line-items", rt.quoteHandler.ReplaceLineItems)
		})

		// Bookings
		r.Route("/bookings", func(r chi.Router) {
			r.Get("/", rt.bookingHandler.List)
			r.Post("/", rt.bookingHandler.Create)
			r.Get("/{id}", rt.bookingHandler.Get)
			r.Patch("/{id}", rt.bookingHandler.Update)
			r.Delete("/{id}", rt.bookingHandler.Delete)
		})

		// Invoices and payments
		r.Route("/invoices", func(r chi.Router) {
			r.Get("/", rt.invoiceHandler.List)
			r.Post("/", rt.invoiceHandler.Create)
			r.Get("/{id}", rt.invoiceHandler.Get)
			r.Patch("/{id}", rt.invoiceHandler.Update)
			r.Delete("/{id}", rt.invoiceHandler.Delete)
			r.Post("/{id}/payments", rt.invoiceHandler.RecordPayment)
			r.Patch("/{id}/payments/{paymentId}", rt.invoiceHandler.UpdatePaymentStatus)
		})

		// Contracts and signed documents
		r.Route("/contracts", func(r chi.Router) {
			r.Get("/", rt.contractHandler.List)
			r.Post("/", rt.contractHandler.Create)
			r.Get("/{id}", rt.contractHandler.Get)
			r.Patch("/{id}", rt.contractHandler.Update)
			r.Delete("/{id}", rt.contractHandler.Delete)
			r.Post("/{id}/document", rt.contractHandler.UploadDocument)
			r.Get("/{id}/document", rt.contractHandler.DownloadDocument)
		})

		// Tasks
		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", rt.taskHandler.List)
			r.Post("/", rt.taskHandler.Create)
			r.Get("/{id}", rt.taskHandler.Get)
			r.Patch("/{id}", rt.taskHandler.Update)
			r.Delete("/{id}", rt.taskHandler.Delete)
		})

		// Calendar
		r.Route("/calendar-events", func(r chi.Router) {
			r.Get("/", rt.calendarHandler.List)
			r.Post("/", rt.calendarHandler.Create)
			r.Get("/{id}", rt.calendarHandler.Get)
			r.Delete("/{id}", rt.calendarHandler.Delete)
		})

		// Staff directory
		r.Route("/users", func(r chi.Router) {
			r.Get("/", rt.userHandler.List)
			r.Get("/{id}", rt.userHandler.Get)
		})
	})

	return r
}
