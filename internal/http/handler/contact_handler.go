package handler

import (
	"net/http"

	"github.com/solstice-events/bookings-api/internal/domain"
	"github.com/solstice-events/bookings-api/internal/repository"
	"github.com/solstice-events/bookings-api/internal/service"
)

// ContactHandler handles HTTP requests for contacts
type ContactHandler struct {
	service *service.ContactService
}

func NewContactHandler(service *service.ContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

// List handles GET /api/contacts
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)

	filters := &repository.ContactFilters{
		Search:         r.URL.Query().Get("search"),
		IncludeDeleted: r.URL.Query().Get("includeDeleted") == "true",
	}
	companyID, err := queryUUID(r, "companyId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	filters.CompanyID = companyID
	if raw := r.URL.Query().Get("isPrimary"); raw != "" {
		isPrimary := raw == "true"
		filters.IsPrimary = &isPrimary
	}

	contacts, total, err := h.service.List(r.Context(), page, limit, filters)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondList(w, contacts, page, limit, total)
}

// Get handles GET /api/contacts/{id}
func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid contact id")
		return
	}

	contact, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, http.StatusOK, contact)
}

// Create handles POST /api/contacts
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateContactRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	contact, err := h.service.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, http.StatusCreated, contact)
}

// Update handles PATCH /api/contacts/{id}
func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid contact id")
		return
	}

	var req domain.UpdateContactRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	contact, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, http.StatusOK, contact)
}

// Delete handles DELETE /api/contacts/{id}
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid contact id")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w)
}
