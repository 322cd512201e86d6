package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/chris/tailorshop-ledger/pkg/api"
	"github.com/chris/tailorshop-ledger/pkg/models"
)

// SettingsFunc returns the current settings.
type SettingsFunc func(ctx context.Context) (*models.Settings, error)

// Maintenance rejects writes with 503 while the maintenance window is
// active. Reads and paths under the exempt prefixes stay available so an
// administrator can close the window. A window whose live time has passed
// is over. If settings cannot be read the request goes through.
func Maintenance(settings SettingsFunc, exempt ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead || hasPrefix(r.URL.Path, exempt) {
				next.ServeHTTP(w, r)
				return
			}

			st, err := settings(r.Context())
			if err != nil {
				slog.Warn("maintenance check skipped", "path", r.URL.Path, "error", err)
				next.ServeHTTP(w, r)
				return
			}
			m := st.Maintenance
			if !m.IsActive || (m.LiveTime != nil && !time.Now().Before(*m.LiveTime)) {
				next.ServeHTTP(w, r)
				return
			}

			msg := m.Message
			if msg == "" {
				msg = "system under maintenance"
			}
			if m.LiveTime != nil {
				w.Header().Set("Retry-After", m.LiveTime.UTC().Format(http.TimeFormat))
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(api.Error{Message: msg})
		})
	}
}

func hasPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
