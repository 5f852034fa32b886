package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/solstice-events/bookings-api/internal/http/handler"
	"github.com/solstice-events/bookings-api/internal/repository"
	"github.com/solstice-events/bookings-api/internal/service"
	"github.com/solstice-events/bookings-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func companyRouter(t *testing.T) (*chi.Mux, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	companyRepo := repository.NewCompanyRepository(db)
	contactRepo := repository.NewContactRepository(db)
	svc := service.NewCompanyService(companyRepo, contactRepo, zap.NewNop())
	h := handler.NewCompanyHandler(svc)

	r := chi.NewRouter()
	r.Route("/api/companies", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Patch("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
	return r, db
}

func doJSON(t *testing.T, router http.Handler, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCompanyCreateEndpoint(t *testing.T) {
	router, _ := companyRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/companies", map[string]interface{}{
		"name":    "Harbourlight Weddings",
		"email":   "events@harbourlight.example",
		"country": "GB",
	})

	require.Equal(t, http.StatusCreated, rec.Code)

	var envelope struct {
		Data struct {
			ID     uuid.UUID `json:"id"`
			Name   string    `json:"name"`
			Status string    `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.NotEqual(t, uuid.Nil, envelope.Data.ID)
	assert.Equal(t, "Harbourlight Weddings", envelope.Data.Name)
	assert.Equal(t, "ACTIVE", envelope.Data.Status)
}

func TestCompanyCreateValidationError(t *testing.T) {
	router, _ := companyRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/companies", map[string]interface{}{
		"email": "not-an-email",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var apiErr struct {
		Title  string            `json:"title"`
		Status int               `json:"status"`
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, "Validation Error", apiErr.Title)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Contains(t, apiErr.Errors, "name")
	assert.Contains(t, apiErr.Errors, "email")
}

func TestCompanyGetNotFound(t *testing.T) {
	router, _ := companyRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/companies/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/companies/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompanyListPaginationEnvelope(t *testing.T) {
	router, db := companyRouter(t)
	for _, name := range []string{"Alder Hall", "Birchwood Barn", "Cedar Pavilion"} {
		testutil.CreateTestCompany(t, db, name)
	}

	rec := doJSON(t, router, http.MethodGet, "/api/companies?page=1&limit=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data       []json.RawMessage `json:"data"`
		Pagination struct {
			Page       int   `json:"page"`
			Limit      int   `json:"limit"`
			Total      int64 `json:"total"`
			TotalPages int   `json:"totalPages"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Len(t, envelope.Data, 2)
	assert.Equal(t, int64(3), envelope.Pagination.Total)
	assert.Equal(t, 2, envelope.Pagination.TotalPages)
}

func TestCompanyListRejectsUnknownStatus(t *testing.T) {
	router, _ := companyRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/companies?status=SLEEPING", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompanyDeleteEndpoint(t *testing.T) {
	router, db := companyRouter(t)
	company := testutil.CreateTestCompany(t, db, "Dunmore House")

	rec := doJSON(t, router, http.MethodDelete, "/api/companies/"+company.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var ack struct {
		Success bool `json:"success"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ack))
	assert.True(t, ack.Success)

	rec = doJSON(t, router, http.MethodGet, "/api/companies/"+company.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
