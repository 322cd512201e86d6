package storage

import (
	"context"

	"github.com/chris/tailorshop-ledger/pkg/models"
)

// SettingsStore persists the configuration singleton.
type SettingsStore interface {
	// GetSettings returns ErrNotFound until settings have been saved once.
	GetSettings(ctx context.Context) (*models.Settings, error)
	PutSettings(ctx context.Context, s *models.Settings) error
}

// RateStore persists stitching rates.
type RateStore interface {
	ListRates(ctx context.Context) ([]models.Rate, error)
	PutRate(ctx context.Context, r *models.Rate) error
}
