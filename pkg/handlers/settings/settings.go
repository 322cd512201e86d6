package settings

import (
	"net/http"

	"github.com/chris/tailorshop-ledger/pkg/api"
	"github.com/chris/tailorshop-ledger/pkg/handlers/httpio"
	"github.com/chris/tailorshop-ledger/pkg/mapping"
	"github.com/chris/tailorshop-ledger/pkg/models"
	"github.com/chris/tailorshop-ledger/pkg/rates"
	"github.com/chris/tailorshop-ledger/pkg/settings"
)

// SettingsHandler serves the configuration singleton and the rate table.
type SettingsHandler struct {
	Settings *settings.Service
	Rates    *rates.Resolver
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(s *settings.Service, r *rates.Resolver) *SettingsHandler {
	return &SettingsHandler{Settings: s, Rates: r}
}

// GetSettings returns the current settings, or the defaults if none were saved.
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	st, err := h.Settings.Get(r.Context())
	if err != nil {
		httpio.Error(w, r, "retrieve settings", err)
		return
	}
	httpio.JSON(w, http.StatusOK, st)
}

// UpdateSettings replaces the settings document.
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var body models.Settings
	if !httpio.Decode(w, r, &body) {
		return
	}

	st, err := h.Settings.Update(r.Context(), body)
	if err != nil {
		httpio.Error(w, r, "update settings", err)
		return
	}
	httpio.JSON(w, http.StatusOK, st)
}

// ListRates returns the stitching rate table.
func (h *SettingsHandler) ListRates(w http.ResponseWriter, r *http.Request) {
	all, err := h.Rates.List(r.Context())
	if err != nil {
		httpio.Error(w, r, "retrieve rates", err)
		return
	}

	out := make([]*api.Rate, len(all))
	for i := range all {
		out[i] = mapping.ToApiRate(&all[i])
	}
	httpio.JSON(w, http.StatusOK, out)
}

// PutRate creates or replaces one rate.
func (h *SettingsHandler) PutRate(w http.ResponseWriter, r *http.Request, rateId string) {
	var body api.Rate
	if !httpio.Decode(w, r, &body) {
		return
	}

	rate := mapping.ToDomainRate(rateId, &body)
	if err := h.Rates.Put(r.Context(), rate); err != nil {
		httpio.Error(w, r, "save rate", err)
		return
	}
	httpio.JSON(w, http.StatusOK, mapping.ToApiRate(rate))
}
