package cli

import (
	"bufio"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/revisify/internal/core/domain"
)

func TestParseChoice(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		maxVal     int
		defaultVal int
		expected   int
	}{
		{
			name:       "Empty input returns default",
			input:      "",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Valid choice within range",
			input:      "3",
			maxVal:     5,
			defaultVal: 1,
			expected:   3,
		},
		{
			name:       "Choice below minimum returns default",
			input:      "0",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Choice above maximum returns default",
			input:      "6",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Invalid input returns default",
			input:      "abc",
			maxVal:     5,
			defaultVal: 2,
			expected:   2,
		},
		{
			name:       "Negative number returns default",
			input:      "-1",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Whitespace returns default",
			input:      "   ",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Maximum value is valid",
			input:      "5",
			maxVal:     5,
			defaultVal: 1,
			expected:   5,
		},
		{
			name:       "Minimum value is valid",
			input:      "1",
			maxVal:     5,
			defaultVal: 3,
			expected:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseChoice(tt.input, tt.maxVal, tt.defaultVal)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestReadLine(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader("  first  \nsecond"))

	assert.Equal(t, "first", readLine(reader))
	assert.Equal(t, "second", readLine(reader))
	assert.Equal(t, "", readLine(reader))
}

func TestSettingsShow_Defaults(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "", "settings")
	require.NoError(t, err)

	assert.Contains(t, out, "Backend: SQLite database (default)")
	assert.Contains(t, out, "Path: (default)")
	assert.Contains(t, out, "Address: 127.0.0.1:7474")
	assert.Contains(t, out, "Rate limit: 20 requests/s")
	assert.Contains(t, out, "Poll interval: 5s")
	assert.Contains(t, out, "Highlight style: github")
	assert.Contains(t, out, "Terminal style: auto")
}

func TestSettingsStore(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		want    domain.StoreBackend
		wantErr bool
	}{
		{name: "file", backend: "file", want: domain.StoreBackendFile},
		{name: "memory upper case", backend: "MEMORY", want: domain.StoreBackendMemory},
		{name: "sqlite", backend: "sqlite", want: domain.StoreBackendSQLite},
		{name: "unknown", backend: "redis", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestServices(t)

			out, err := execute(t, "", "settings", "store", tt.backend)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out, "Store backend set to: "+tt.want.Description())

			settings, err := env.settings.Get()
			require.NoError(t, err)
			assert.Equal(t, tt.want, settings.Store.Backend)
		})
	}
}

func TestSettingsWizard_SavesAnswers(t *testing.T) {
	env := setupTestServices(t)

	stdin := "2\n0.0.0.0:8000\n5\n10s\nmonokai\ndark\n"
	out, err := execute(t, stdin, "settings", "wizard")
	require.NoError(t, err)
	assert.Contains(t, out, "Settings saved.")

	settings, err := env.settings.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.StoreBackendFile, settings.Store.Backend)
	assert.Equal(t, "0.0.0.0:8000", settings.Server.Addr)
	assert.Equal(t, 5, settings.Server.RateLimit)
	assert.Equal(t, 10*time.Second, settings.Viewer.PollInterval)
	assert.Equal(t, "monokai", settings.Render.HighlightStyle)
	assert.Equal(t, "dark", settings.Render.TerminalStyle)
}

func TestSettingsWizard_EmptyAnswersKeepCurrent(t *testing.T) {
	env := setupTestServices(t)
	require.NoError(t, env.settings.SetStoreBackend(domain.StoreBackendMemory))

	_, err := execute(t, "\n\n\n\n\n\n", "settings", "wizard")
	require.NoError(t, err)

	settings, err := env.settings.Get()
	require.NoError(t, err)
	defaults := domain.DefaultAppSettings()
	assert.Equal(t, domain.StoreBackendMemory, settings.Store.Backend)
	assert.Equal(t, defaults.Server, settings.Server)
	assert.Equal(t, defaults.Viewer, settings.Viewer)
	assert.Equal(t, defaults.Render, settings.Render)
}

func TestSettingsWizard_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
	}{
		{name: "rate limit", stdin: "1\n\nfast\n"},
		{name: "negative rate limit", stdin: "1\n\n-1\n"},
		{name: "poll interval", stdin: "1\n\n\nsoon\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestServices(t)

			_, err := execute(t, tt.stdin, "settings", "wizard")
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}
