package handler

import (
	"net/http"

	"github.com/solstice-events/bookings-api/internal/domain"
	"github.com/solstice-events/bookings-api/internal/repository"
	"github.com/solstice-events/bookings-api/internal/service"
)

// CalendarHandler handles HTTP requests for calendar events
type CalendarHandler struct {
	service *service.CalendarService
}

func NewCalendarHandler(service *service.CalendarService) *CalendarHandler {
	return &CalendarHandler{service: service}
}

// List handles GET /api/calendar-events
func (h *CalendarHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)

	filters := &repository.CalendarEventFilters{
		IncludeDeleted: r.URL.Query().Get("includeDeleted") == "true",
	}
	if raw := r.URL.Query().Get("eventType"); raw != "" {
		eventType := domain.CalendarEventType(raw)
		if !eventType.IsValid() {
			respondWithError(w, http.StatusBadRequest, "unknown eventType filter")
			return
		}
		filters.EventType = &eventType
	}
	bookingID, err := queryUUID(r, "bookingId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	filters.BookingID = bookingID
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

	events, total, err := h.service.List(r.Context(), page, limit, filters)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondList(w, events, page, limit, total)
}

// Get handles GET /api/calendar-events/{id}
func (h *CalendarHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid calendar event id")
		return
	}

	event, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, http.StatusOK, event)
}

// Create handles POST /api/calendar-events
func (h *CalendarHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateCalendarEventRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	event, err := h.service.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, http.StatusCreated, event)
}

// Delete handles DELETE /api/calendar-events/{id}
func (h *CalendarHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid calendar event id")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w)
}
