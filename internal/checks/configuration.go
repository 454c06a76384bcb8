package checks

import "strings"

const (
	// DefaultCIApplicationID identifies GitHub Actions as the CI engine owning replaceable checks.
	DefaultCIApplicationID int64 = 15368
)

// Configuration aggregates settings for the checks-sync command.
type Configuration struct {
	Sync SyncConfiguration `mapstructure:"sync"`
}

// SyncConfiguration stores options for required status check synchronization.
type SyncConfiguration struct {
	Repository        string `mapstructure:"repository"`
	PullRequestNumber int    `mapstructure:"pull_request"`
	CIApplicationID   int64  `mapstructure:"ci_app_id"`
	DryRun            bool   `mapstructure:"dry_run"`
}

// DefaultConfiguration supplies baseline values for checks configuration.
func DefaultConfiguration() Configuration {
	return Configuration{
		Sync: SyncConfiguration{
			CIApplicationID: DefaultCIApplicationID,
		},
	}
}

// DefaultConfigurationValues exposes configuration defaults keyed beneath the provided prefix.
func DefaultConfigurationValues(configurationKeyPrefix string) map[string]any {
	return map[string]any{
		configurationKeyPrefix + ".sync.ci_app_id": DefaultCIApplicationID,
		configurationKeyPrefix + ".sync.dry_run":   false,
	}
}

// Sanitize trims configured values and restores defaults for empty entries.
func (configuration Configuration) Sanitize() Configuration {
	sanitized := configuration
	sanitized.Sync = configuration.Sync.Sanitize()
	return sanitized
}

// Sanitize trims sync configuration values and restores defaults for empty entries.
func (configuration SyncConfiguration) Sanitize() SyncConfiguration {
	sanitized := configuration
	sanitized.Repository = strings.TrimSpace(configuration.Repository)
	if sanitized.CIApplicationID <= 0 {
		sanitized.CIApplicationID = DefaultCIApplicationID
	}
	return sanitized
}
