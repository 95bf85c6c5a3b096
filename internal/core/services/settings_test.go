package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/revisify/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/revisify/internal/core/domain"
)

func TestNewSettingsService(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())
	require.NotNil(t, service)
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()
	require.NoError(t, err)

	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults, *settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set(KeyStoreBackend, "file")
	_ = store.Set(KeyStorePath, "/tmp/notes")
	_ = store.Set(KeyServerAddr, ":9000")
	_ = store.Set(KeyServerRate, int64(50))
	_ = store.Set(KeyViewerPoll, "1m")
	_ = store.Set(KeyHighlightStyle, "monokai")
	_ = store.Set(KeyTerminalStyle, "dark")

	settings, err := NewSettingsService(store).Get()
	require.NoError(t, err)

	assert.Equal(t, domain.StoreBackendFile, settings.Store.Backend)
	assert.Equal(t, "/tmp/notes", settings.Store.Path)
	assert.Equal(t, ":9000", settings.Server.Addr)
	assert.Equal(t, 50, settings.Server.RateLimit)
	assert.Equal(t, time.Minute, settings.Viewer.PollInterval)
	assert.Equal(t, "monokai", settings.Render.HighlightStyle)
	assert.Equal(t, "dark", settings.Render.TerminalStyle)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set(KeyStoreBackend, "postgres")
	_ = store.Set(KeyViewerPoll, "soon")

	settings, err := NewSettingsService(store).Get()
	require.NoError(t, err)

	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Store.Backend, settings.Store.Backend)
	assert.Equal(t, defaults.Viewer.PollInterval, settings.Viewer.PollInterval)
}

func TestSettingsService_Get_RateLimit(t *testing.T) {
	tests := []struct {
		name   string
		stored any
		want   int
	}{
		{name: "unset uses default", want: 20},
		{name: "zero turns limiting off", stored: 0, want: 0},
		{name: "quoted number", stored: "8", want: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewConfigStore()
			if tt.stored != nil {
				_ = store.Set(KeyServerRate, tt.stored)
			}

			settings, err := NewSettingsService(store).Get()
			require.NoError(t, err)
			assert.Equal(t, tt.want, settings.Server.RateLimit)
		})
	}
}

func TestSettingsService_Get_NonPositivePollInterval(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set(KeyViewerPoll, "-5s")

	settings, err := NewSettingsService(store).Get()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, settings.Viewer.PollInterval)
}

func TestSettingsService_SaveRoundTrip(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	settings := domain.DefaultAppSettings()
	settings.Store.Backend = domain.StoreBackendMemory
	settings.Server.RateLimit = 3
	settings.Viewer.PollInterval = 2 * time.Second

	require.NoError(t, service.Save(&settings))

	assert.Equal(t, "memory", store.GetString(KeyStoreBackend))
	assert.Equal(t, "2s", store.GetString(KeyViewerPoll))
	_, hasPath := store.Get(KeyStorePath)
	assert.False(t, hasPath, "empty path is not written")

	got, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, settings, *got)
}

func TestSettingsService_Save_Invalid(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	tests := []struct {
		name   string
		mutate func(*domain.AppSettings)
	}{
		{"unknown backend", func(s *domain.AppSettings) { s.Store.Backend = "redis" }},
		{"negative rate", func(s *domain.AppSettings) { s.Server.RateLimit = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := domain.DefaultAppSettings()
			tt.mutate(&settings)
			assert.Error(t, service.Save(&settings))
		})
	}
}

func TestSettingsService_SetStoreBackend(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NoError(t, service.SetStoreBackend(domain.StoreBackendFile))
	assert.Equal(t, "file", store.GetString(KeyStoreBackend))

	assert.Error(t, service.SetStoreBackend("nope"))
	assert.Equal(t, "file", store.GetString(KeyStoreBackend))
}

func TestSettingsService_GetDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())
	assert.Equal(t, domain.DefaultAppSettings(), service.GetDefaults())
}
