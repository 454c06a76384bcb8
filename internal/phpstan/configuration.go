package phpstan

import "strings"

const defaultConfigurationFileNameConstant = "phpstan.neon"

// Configuration aggregates settings for the phpstan-paths command.
type Configuration struct {
	Paths PathsConfiguration `mapstructure:"paths"`
}

// PathsConfiguration stores options for NEON path rewriting.
type PathsConfiguration struct {
	ConfigurationFile  string   `mapstructure:"config_file"`
	ScanDirectories    []string `mapstructure:"scan"`
	ExcludeDirectories []string `mapstructure:"exclude"`
	DryRun             bool     `mapstructure:"dry_run"`
}

// DefaultConfiguration supplies baseline values for phpstan configuration.
func DefaultConfiguration() Configuration {
	return Configuration{
		Paths: PathsConfiguration{
			ConfigurationFile: defaultConfigurationFileNameConstant,
		},
	}
}

// DefaultConfigurationValues exposes configuration defaults keyed beneath the provided prefix.
func DefaultConfigurationValues(configurationKeyPrefix string) map[string]any {
	return map[string]any{
		configurationKeyPrefix + ".paths.config_file": defaultConfigurationFileNameConstant,
	}
}

// Sanitize trims configured values and removes empty entries.
func (configuration Configuration) Sanitize() Configuration {
	sanitized := configuration
	sanitized.Paths = configuration.Paths.Sanitize()
	return sanitized
}

// Sanitize trims path configuration values and removes empty entries.
func (configuration PathsConfiguration) Sanitize() PathsConfiguration {
	sanitized := configuration
	sanitized.ConfigurationFile = strings.TrimSpace(configuration.ConfigurationFile)
	if len(sanitized.ConfigurationFile) == 0 {
		sanitized.ConfigurationFile = defaultConfigurationFileNameConstant
	}
	sanitized.ScanDirectories = sanitizeDirectoryList(configuration.ScanDirectories)
	sanitized.ExcludeDirectories = sanitizeDirectoryList(configuration.ExcludeDirectories)
	return sanitized
}

func sanitizeDirectoryList(candidateDirectories []string) []string {
	sanitizedDirectories := make([]string, 0, len(candidateDirectories))
	for _, candidateDirectory := range candidateDirectories {
		trimmedDirectory := strings.TrimSpace(candidateDirectory)
		if len(trimmedDirectory) == 0 {
			continue
		}
		sanitizedDirectories = append(sanitizedDirectories, trimmedDirectory)
	}
	if len(sanitizedDirectories) == 0 {
		return nil
	}
	return sanitizedDirectories
}
