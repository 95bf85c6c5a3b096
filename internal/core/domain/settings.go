package domain

import "time"

const unknownDescription = "Unknown"

// StoreBackend selects the draft store implementation.
type StoreBackend string

// Available store backends.
const (
	// StoreBackendSQLite keeps records in a SQLite database.
	StoreBackendSQLite StoreBackend = "sqlite"

	// StoreBackendFile keeps records in a TOML file and supports push updates.
	StoreBackendFile StoreBackend = "file"

	// StoreBackendMemory keeps records for the lifetime of the process.
	StoreBackendMemory StoreBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b StoreBackend) IsValid() bool {
	switch b {
	case StoreBackendSQLite, StoreBackendFile, StoreBackendMemory:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b StoreBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StoreBackend) Description() string {
	switch b {
	case StoreBackendSQLite:
		return "SQLite database (default)"
	case StoreBackendFile:
		return "TOML file (live viewer updates)"
	case StoreBackendMemory:
		return "In-memory (nothing persisted)"
	default:
		return unknownDescription
	}
}

// StoreSettings configures the draft store.
type StoreSettings struct {
	// Backend selects the implementation.
	Backend StoreBackend

	// Path is the data directory. Empty means ~/.revisify/data.
	Path string
}

// ServerSettings configures the local web server.
type ServerSettings struct {
	// Addr is the listen address.
	Addr string

	// RateLimit is the sustained API request rate per second.
	RateLimit int
}

// ViewerSettings configures the view session.
type ViewerSettings struct {
	// PollInterval is how often a viewer reloads when the store cannot push.
	PollInterval time.Duration
}

// RenderSettings configures the renderers.
type RenderSettings struct {
	// HighlightStyle is the chroma style used for code blocks.
	HighlightStyle string

	// TerminalStyle is the glamour style used in the terminal preview.
	TerminalStyle string
}

// AppSettings holds all user-configurable settings.
type AppSettings struct {
	Store  StoreSettings
	Server ServerSettings
	Viewer ViewerSettings
	Render RenderSettings
}

// DefaultAppSettings returns settings used when nothing is configured.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Store: StoreSettings{
			Backend: StoreBackendSQLite,
		},
		Server: ServerSettings{
			Addr:      "127.0.0.1:7474",
			RateLimit: 20,
		},
		Viewer: ViewerSettings{
			PollInterval: 5 * time.Second,
		},
		Render: RenderSettings{
			HighlightStyle: "github",
			TerminalStyle:  "auto",
		},
	}
}
