package handler

import (
	"net/http"

	"github.com/solstice-events/bookings-api/internal/domain"
	"github.com/solstice-events/bookings-api/internal/repository"
	"github.com/solstice-events/bookings-api/internal/service"
)

// QuoteHandler handles HTTP requests for quotes
type QuoteHandler struct {
	service *service.QuoteService
}

func NewQuoteHandler(service *service.QuoteService) *QuoteHandler {
	return &QuoteHandler{service: service}
}

// List handles GET /api/quotes
func (h *QuoteHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)

	filters := &repository.QuoteFilters{
		Search:         r.URL.Query().Get("search"),
		IncludeDeleted: r.URL.Query().Get("includeDeleted") == "true",
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := domain.QuoteStatus(raw)
		if !status.IsValid() {
			respondWithError(w, http.StatusBadRequest, "unknown status filter")
			return
		}
		filters.Status = &status
	}
	companyID, err := queryUUID(r, "companyId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	filters.CompanyID = companyID
	enquiryID, err := queryUUID(r, "enquiryId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	filters.EnquiryID = enquiryID

	quotes, total, err := h.service.List(r.Context(), page, limit, filters)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondList(w, quotes, page, limit, total)
}

// Get handles GET /api/quotes/{id}
func (h *QuoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid quote id")
		return
	}

	quote, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, http.StatusOK, quote)
}

// Create handles POST /api/quotes
func (h *QuoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateQuoteRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	quote, err := h.service.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, http.StatusCreated, quote)
}

// Update handles PATCH /api/quotes/{id}
func (h *QuoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid quote id")
		return
	}

	var req domain.UpdateQuoteRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	quote, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, http.StatusOK, quote)
}

// ReplaceLineItems handles PUT /api/quotes/{id}/line-items
func (h *QuoteHandler) ReplaceLineItems(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid quote id")
		return
	}

	var req struct {
		LineItems []domain.LineItemInput `json:"lineItems" validate:"dive"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	quote, err := h.service.ReplaceLineItems(r.Context(), id, req.LineItems)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, http.StatusOK, quote)
}

// Delete handles DELETE /api/quotes/{id}
func (h *QuoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid quote id")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w)
}
