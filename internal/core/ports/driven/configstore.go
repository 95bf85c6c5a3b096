package driven

// ConfigStore provides access to application configuration.
// Implementations handle persistence (e.g., TOML files) and type conversion.
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString returns the value formatted as a string.
	// Returns empty string if key doesn't exist or isn't a scalar.
	GetString(key string) string

	// GetInt returns the value as an integer, parsing numeric strings.
	// Returns 0 if key doesn't exist or can't be converted.
	GetInt(key string) int

	// GetBool returns the value as a boolean, parsing "true"/"false" strings.
	// Returns false if key doesn't exist or can't be converted.
	GetBool(key string) bool

	// Keys returns all configured keys in sorted order.
	Keys() []string

	// Set stores a configuration value.
	// The value is persisted immediately.
	Set(key string, value any) error

	// Unset removes a configuration value.
	Unset(key string) error

	// Save persists the current configuration to storage.
	Save() error

	// Load reads configuration from storage.
	Load() error

	// Path returns the configuration file path.
	Path() string
}
