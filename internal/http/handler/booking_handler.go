package handler

import (
	"net/http"
	"time"

	"github.com/solstice-events/bookings-api/internal/domain"
	"github.com/solstice-events/bookings-api/internal/repository"
	"github.com/solstice-events/bookings-api/internal/service"
)

// BookingHandler handles HTTP requests for bookings
type BookingHandler struct {
	service *service.BookingService
}

func NewBookingHandler(service *service.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

func queryDate(r *http.Request, name string) (*time.Time, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t, true
	}
	return nil, false
}

// List handles GET /api/bookings
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)

	filters := &repository.BookingFilters{
		Search:         r.URL.Query().Get("search"),
		IncludeDeleted: r.URL.Query().Get("includeDeleted") == "true",
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := domain.BookingStatus(raw)
		if !status.IsValid() {
			respondWithError(w, http.StatusBadRequest, "unknown status filter")
			return
		}
		filters.Status = &status
	}
	userID, err := queryUUID(r, "userId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	filters.UserID = userID
	companyID, err := queryUUID(r, "companyId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	filters.CompanyID = companyID
	startDate, ok := queryDate(r, "startDate")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "startDate must be an ISO 8601 date")
		return
	}
	filters.StartDate = startDate
	endDate, ok := queryDate(r, "endDate")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "endDate must be an ISO 8601 date")
		return
	}
	filters.EndDate = endDate

	bookings, total, err := h.service.List(r.Context(), page, limit, filters)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondList(w, bookings, page, limit, total)
}

// Get handles GET /api/bookings/{id}
func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid booking id")
		return
	}

	booking, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, http.StatusOK, booking)
}

// Create handles POST /api/bookings
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateBookingRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	booking, err := h.service.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, http.StatusCreated, booking)
}

// Update handles PATCH /api/bookings/{id}
func (h *BookingHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid booking id")
		return
	}

	var req domain.UpdateBookingRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	booking, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, http.StatusOK, booking)
}

// Delete handles DELETE /api/bookings/{id}
func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid booking id")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w)
}
