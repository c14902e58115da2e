package driving

import "github.com/simlab-siue/methodosync/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get returns the resolved settings with defaults applied.
	Get() domain.Settings

	// Set validates and persists a single key.
	Set(key, value string) error

	// Values returns every key with its resolved value as display text.
	Values() map[string]string

	// Path returns the configuration file path.
	Path() string
}
