package services

import (
	"fmt"
	"time"

	"github.com/custodia-labs/revisify/internal/core/domain"
	"github.com/custodia-labs/revisify/internal/core/ports/driven"
	"github.com/custodia-labs/revisify/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyStoreBackend   = "store.backend"
	KeyStorePath      = "store.path"
	KeyServerAddr     = "server.addr"
	KeyServerRate     = "server.rate_limit"
	KeyViewerPoll     = "viewer.poll_interval"
	KeyHighlightStyle = "render.highlight_style"
	KeyTerminalStyle  = "render.terminal_style"
)

// SettingsKeys returns every key understood by the settings service.
func SettingsKeys() []string {
	return []string{
		KeyStoreBackend, KeyStorePath, KeyServerAddr, KeyServerRate,
		KeyViewerPoll, KeyHighlightStyle, KeyTerminalStyle,
	}
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings.
// Missing or invalid values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Store: domain.StoreSettings{
			Backend: s.getBackend(defaults.Store.Backend),
			Path:    s.configStore.GetString(KeyStorePath), // No default - empty means ~/.revisify/data
		},
		Server: domain.ServerSettings{
			Addr:      s.getString(KeyServerAddr, defaults.Server.Addr),
			RateLimit: s.getInt(KeyServerRate, defaults.Server.RateLimit),
		},
		Viewer: domain.ViewerSettings{
			PollInterval: s.getDuration(KeyViewerPoll, defaults.Viewer.PollInterval),
		},
		Render: domain.RenderSettings{
			HighlightStyle: s.getString(KeyHighlightStyle, defaults.Render.HighlightStyle),
			TerminalStyle:  s.getString(KeyTerminalStyle, defaults.Render.TerminalStyle),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if !settings.Store.Backend.IsValid() {
		return fmt.Errorf("invalid store backend: %s", settings.Store.Backend)
	}
	if settings.Server.RateLimit < 0 {
		return fmt.Errorf("invalid rate limit: %d", settings.Server.RateLimit)
	}

	if err := s.configStore.Set(KeyStoreBackend, settings.Store.Backend.String()); err != nil {
		return fmt.Errorf("save store backend: %w", err)
	}
	if settings.Store.Path != "" {
		if err := s.configStore.Set(KeyStorePath, settings.Store.Path); err != nil {
			return fmt.Errorf("save store path: %w", err)
		}
	}
	if err := s.configStore.Set(KeyServerAddr, settings.Server.Addr); err != nil {
		return fmt.Errorf("save server addr: %w", err)
	}
	if err := s.configStore.Set(KeyServerRate, settings.Server.RateLimit); err != nil {
		return fmt.Errorf("save server rate_limit: %w", err)
	}
	if err := s.configStore.Set(KeyViewerPoll, settings.Viewer.PollInterval.String()); err != nil {
		return fmt.Errorf("save viewer poll_interval: %w", err)
	}
	if err := s.configStore.Set(KeyHighlightStyle, settings.Render.HighlightStyle); err != nil {
		return fmt.Errorf("save render highlight_style: %w", err)
	}
	if err := s.configStore.Set(KeyTerminalStyle, settings.Render.TerminalStyle); err != nil {
		return fmt.Errorf("save render terminal_style: %w", err)
	}

	return nil
}

// SetStoreBackend updates the draft store backend.
func (s *SettingsService) SetStoreBackend(backend domain.StoreBackend) error {
	if !backend.IsValid() {
		return fmt.Errorf("invalid store backend: %s", backend)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Store.Backend = backend
	return s.Save(settings)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getInt returns defaultVal only when key is unset, so an explicit 0 sticks.
func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

// getDuration reads a duration string like "5s" or "1m".
func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}

func (s *SettingsService) getBackend(defaultVal domain.StoreBackend) domain.StoreBackend {
	val := s.configStore.GetString(KeyStoreBackend)
	if val == "" {
		return defaultVal
	}
	backend := domain.StoreBackend(val)
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}
