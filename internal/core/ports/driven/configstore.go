package driven

import "time"

// ConfigStore holds the user settings behind SettingsService.
// Keys use dot notation ("export.sheet_name"); the file store maps each
// segment onto a TOML table.
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

	// GetDuration retrieves a duration written as a Go duration string.
	// Returns 0 if the key doesn't exist or doesn't parse.
	GetDuration(key string) time.Duration

	// Set stores a configuration value in memory. Call Save to persist.
	Set(key string, value any) error

	// Save persists the current configuration to storage.
	Save() error

	// Load re-reads the saved configuration, discarding unsaved Sets.
	Load() error

	// Path returns where the configuration lives, or ":memory:".
	Path() string
}
