package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/chris/tailorshop-ledger/pkg/models"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func maintenanceRouter(m models.Maintenance, err error) http.Handler {
	r := chi.NewRouter()
	r.Use(Maintenance(func(ctx context.Context) (*models.Settings, error) {
		if err != nil {
			return nil, err
		}
		st := models.DefaultSettings()
		st.Maintenance = m
		return &st, nil
	}, "/settings"))
	ok := func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
	r.Get("/orders/o1", ok)
	r.Post("/orders", ok)
	r.Put("/settings", ok)
	return r
}

func serve(h http.Handler, method, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(method, path, nil))
	return rr
}

func TestMaintenance(t *testing.T) {
	t.Run("Inactive", func(t *testing.T) {
		h := maintenanceRouter(models.Maintenance{}, nil)
		assert.Equal(t, http.StatusOK, serve(h, http.MethodPost, "/orders").Code)
	})

	t.Run("Active Blocks Writes", func(t *testing.T) {
		h := maintenanceRouter(models.Maintenance{IsActive: true, Message: "back at noon"}, nil)

		rr := serve(h, http.MethodPost, "/orders")
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		assert.Contains(t, rr.Body.String(), "back at noon")

		assert.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/orders/o1").Code)
		assert.Equal(t, http.StatusOK, serve(h, http.MethodPut, "/settings").Code)
	})

	t.Run("Live Time Passed", func(t *testing.T) {
		past := time.Now().Add(-time.Minute)
		h := maintenanceRouter(models.Maintenance{IsActive: true, LiveTime: &past}, nil)
		assert.Equal(t, http.StatusOK, serve(h, http.MethodPost, "/orders").Code)
	})

	t.Run("Live Time Ahead", func(t *testing.T) {
		future := time.Now().Add(time.Hour)
		h := maintenanceRouter(models.Maintenance{IsActive: true, LiveTime: &future}, nil)

		rr := serve(h, http.MethodPost, "/orders")
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		assert.NotEmpty(t, rr.Header().Get("Retry-After"))
	})

	t.Run("Settings Unavailable", func(t *testing.T) {
		h := maintenanceRouter(models.Maintenance{}, errors.New("db error"))
		assert.Equal(t, http.StatusOK, serve(h, http.MethodPost, "/orders").Code)
	})
}
