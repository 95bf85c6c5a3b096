package driving

import "github.com/custodia-labs/revisify/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetStoreBackend updates the draft store backend.
	SetStoreBackend(backend domain.StoreBackend) error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
