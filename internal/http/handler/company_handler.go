package handler

import (
	"net/http"

	"github.com/solstice-events/bookings-api/internal/domain"
	"github.com/solstice-events/bookings-api/internal/repository"
	"github.com/solstice-events/bookings-api/internal/service"
)

// CompanyHandler handles HTTP requests for companies
type CompanyHandler struct {
	service *service.CompanyService
}

func NewCompanyHandler(service *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{service: service}
}

// List handles GET /api/companies
func (h *CompanyHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)

	filters := &repository.CompanyFilters{
		Search:         r.URL.Query().Get("search"),
		Industry:       r.URL.Query().Get("industry"),
		IncludeDeleted: r.URL.Query().Get("includeDeleted") == "true",
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := domain.CompanyStatus(raw)
		if !status.IsValid() {
			respondWithError(w, http.StatusBadRequest, "unknown status filter")
			return
		}
		filters.Status = &status
	}

	companies, total, err := h.service.List(r.Context(), page, limit, filters)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondList(w, companies, page, limit, total)
}

// Get handles GET /api/companies/{id}
func (h *CompanyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid company id")
		return
	}

	company, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, http.StatusOK, company)
}

// Create handles POST /api/companies
func (h *CompanyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateCompanyRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	company, err := h.service.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, http.StatusCreated, company)
}

// Update handles PATCH /api/companies/{id}
func (h *CompanyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid company id")
		return
	}

	var req domain.UpdateCompanyRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	company, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, http.StatusOK, company)
}

// Delete handles DELETE /api/companies/{id}
func (h *CompanyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid company id")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w)
}
