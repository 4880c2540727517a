package driven

// ConfigStore provides read access to the project configuration file.
// Nested tables are addressed with dot-notation keys, e.g. "github.owner".
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string configuration value.
	// Returns empty string if key doesn't exist or isn't a string.
	GetString(key string) string

	// GetInt retrieves an integer configuration value.
	// Returns 0 if key doesn't exist or isn't an integer.
	GetInt(key string) int

	// GetBool retrieves a boolean configuration value.
	// Returns false if key doesn't exist or isn't a boolean.
	GetBool(key string) bool

	// GetStringMap collects the string values below a table key.
	// Returns nil if the table doesn't exist.
	GetStringMap(prefix string) map[string]string

	// Load reads configuration from storage.
	Load() error

	// Path returns the configuration file path.
	Path() string
}
