package handler

import (
	"net/http"

	"github.com/solstice-events/bookings-api/internal/auth"
	"github.com/solstice-events/bookings-api/internal/domain"
	"github.com/solstice-events/bookings-api/internal/repository"
	"github.com/solstice-events/bookings-api/internal/service"
)

// EnquiryHandler handles HTTP requests for enquiries
type EnquiryHandler struct {
	service *service.EnquiryService
}

func NewEnquiryHandler(service *service.EnquiryService) *EnquiryHandler {
	return &EnquiryHandler{service: service}
}

// List handles GET /api/enquiries
func (h *EnquiryHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)

	filters := &repository.EnquiryFilters{
		Search:         r.URL.Query().Get("search"),
		IncludeDeleted: r.URL.Query().Get("includeDeleted") == "true",
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := domain.EnquiryStatus(raw)
		if !status.IsValid() {
			respondWithError(w, http.StatusBadRequest, "unknown status filter")
			return
		}
		filters.Status = &status
	}
	if raw := r.URL.Query().Get("priority"); raw != "" {
		priority := domain.Priority(raw)
		if !priority.IsValid() {
			respondWithError(w, http.StatusBadRequest, "unknown priority filter")
			return
		}
		filters.Priority = &priority
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

	enquiries, total, err := h.service.List(r.Context(), page, limit, filters)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondList(w, enquiries, page, limit, total)
}

// Get handles GET /api/enquiries/{id}. The single fetch inlines
// quotes, bookings, notes and open tasks.
func (h *EnquiryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid enquiry id")
		return
	}

	enquiry, err := h.service.GetDetail(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, http.StatusOK, enquiry)
}

// Create handles POST /api/enquiries
func (h *EnquiryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateEnquiryRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	enquiry, err := h.service.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, http.StatusCreated, enquiry)
}

// Update handles PATCH /api/enquiries/{id}
func (h *EnquiryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid enquiry id")
		return
	}

	var req domain.UpdateEnquiryRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	enquiry, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, http.StatusOK, enquiry)
}

// Delete handles DELETE /api/enquiries/{id}
func (h *EnquiryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid enquiry id")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w)
}

// ListNotes handles GET /api/enquiries/{id}/notes
func (h *EnquiryHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid enquiry id")
		return
	}

	notes, err := h.service.ListNotes(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, http.StatusOK, notes)
}

// AddNote handles POST /api/enquiries/{id}/notes
func (h *EnquiryHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid enquiry id")
		return
	}

	var req domain.CreateNoteRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	note, err := h.service.AddNote(r.Context(), id, auth.UserIDFromContext(r.Context()), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, http.StatusCreated, note)
}
