package driving

import "github.com/custodia-labs/gconnect/internal/core/domain"

// SettingsService resolves application settings from the config file,
// the environment and built-in defaults.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// Set stores a configuration value in the config file.
	Set(key string, value any) error

	// Path returns the configuration file path.
	Path() string
}
