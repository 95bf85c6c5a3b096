package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStoreBackend_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		backend  StoreBackend
		expected bool
	}{
		{name: "sqlite is valid", backend: StoreBackendSQLite, expected: true},
		{name: "file is valid", backend: StoreBackendFile, expected: true},
		{name: "memory is valid", backend: StoreBackendMemory, expected: true},
		{name: "empty string is invalid", backend: StoreBackend(""), expected: false},
		{name: "unknown is invalid", backend: StoreBackend("redis"), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.backend.IsValid())
		})
	}
}

func TestStoreBackend_Description(t *testing.T) {
	assert.Equal(t, "SQLite database (default)", StoreBackendSQLite.Description())
	assert.Equal(t, unknownDescription, StoreBackend("x").Description())
}

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, StoreBackendSQLite, s.Store.Backend)
	assert.Empty(t, s.Store.Path)
	assert.Equal(t, "127.0.0.1:7474", s.Server.Addr)
	assert.Equal(t, 20, s.Server.RateLimit)
	assert.Equal(t, 5*time.Second, s.Viewer.PollInterval)
	assert.Equal(t, "github", s.Render.HighlightStyle)
	assert.Equal(t, "auto", s.Render.TerminalStyle)
}
