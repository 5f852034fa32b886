package handler

import (
	"io"
	"net/http"

	"github.com/solstice-events/bookings-api/internal/domain"
	"github.com/solstice-events/bookings-api/internal/repository"
	"github.com/solstice-events/bookings-api/internal/service"
)

// 25 MB cap for uploaded contract documents
const maxDocumentSize = 25 << 20

// ContractHandler handles HTTP requests for contracts
type ContractHandler struct {
	service *service.ContractService
}

func NewContractHandler(service *service.ContractService) *ContractHandler {
	return &ContractHandler{service: service}
}

// List handles GET /api/contracts
func (h *ContractHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)

	filters := &repository.ContractFilters{
		Search:         r.URL.Query().Get("search"),
		IncludeDeleted: r.URL.Query().Get("includeDeleted") == "true",
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := domain.ContractStatus(raw)
		if !status.IsValid() {
			respondWithError(w, http.StatusBadRequest, "unknown status filter")
			return
		}
		filters.Status = &status
	}
	bookingID, err := queryUUID(r, "bookingId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	filters.BookingID = bookingID
	companyID, err := queryUUID(r, "companyId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	filters.CompanyID = companyID

	contracts, total, err := h.service.List(r.Context(), page, limit, filters)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondList(w, contracts, page, limit, total)
}

// Get handles GET /api/contracts/{id}
func (h *ContractHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid contract id")
		return
	}

	contract, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, http.StatusOK, contract)
}

// Create handles POST /api/contracts
func (h *ContractHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateContractRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	contract, err := h.service.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, http.StatusCreated, contract)
}

// Update handles PATCH /api/contracts/{id}
func (h *ContractHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid contract id")
		return
	}

	var req domain.UpdateContractRequest
	if err := decodeBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	contract, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, http.StatusOK, contract)
}

// Delete handles DELETE /api/contracts/{id}
func (h *ContractHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid contract id")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w)
}

// UploadDocument handles POST /api/contracts/{id}/document. The document
// is sent as a multipart form under the "document" field.
func (h *ContractHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid contract id")
		return
	}

	if err := r.ParseMultipartForm(maxDocumentSize); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("document")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "missing document file")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	contract, err := h.service.UploadDocument(r.Context(), id, header.Filename, contentType, file)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondData(w, http.StatusOK, contract)
}

// DownloadDocument handles GET /api/contracts/{id}/document
func (h *ContractHandler) DownloadDocument(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid contract id")
		return
	}

	reader, name, err := h.service.DownloadDocument(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
	io.Copy(w, reader)
}
