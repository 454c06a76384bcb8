package distribute

import "strings"

// Configuration aggregates settings for the pr-distribute command.
type Configuration struct {
	Distribute DistributeConfiguration `mapstructure:"pull_requests"`
}

// DistributeConfiguration stores options for branch distribution.
type DistributeConfiguration struct {
	BranchName       string   `mapstructure:"branch"`
	Repositories     []string `mapstructure:"repositories"`
	PullRequestTitle string   `mapstructure:"title"`
	PullRequestBody  string   `mapstructure:"body"`
	BaseBranch       string   `mapstructure:"base"`
	WorkingDirectory string   `mapstructure:"working_directory"`
	DryRun           bool     `mapstructure:"dry_run"`
}

// DefaultConfiguration supplies baseline values for distribution configuration.
func DefaultConfiguration() Configuration {
	return Configuration{Distribute: DistributeConfiguration{}}
}

// Sanitize trims configured values and removes empty entries.
func (configuration Configuration) Sanitize() Configuration {
	sanitized := configuration
	sanitized.Distribute = configuration.Distribute.Sanitize()
	return sanitized
}

// Sanitize trims distribution configuration values and removes empty entries.
func (configuration DistributeConfiguration) Sanitize() DistributeConfiguration {
	sanitized := configuration
	sanitized.BranchName = strings.TrimSpace(configuration.BranchName)
	sanitized.PullRequestTitle = strings.TrimSpace(configuration.PullRequestTitle)
	sanitized.BaseBranch = strings.TrimSpace(configuration.BaseBranch)
	sanitized.WorkingDirectory = strings.TrimSpace(configuration.WorkingDirectory)
	sanitized.Repositories = sanitizeRepositoryList(configuration.Repositories)
	return sanitized
}

func sanitizeRepositoryList(candidateRepositories []string) []string {
	sanitizedRepositories := make([]string, 0, len(candidateRepositories))
	for _, candidateRepository := range candidateRepositories {
		trimmedRepository := strings.TrimSpace(candidateRepository)
		if len(trimmedRepository) == 0 {
			continue
		}
		sanitizedRepositories = append(sanitizedRepositories, trimmedRepository)
	}
	if len(sanitizedRepositories) == 0 {
		return nil
	}
	return sanitizedRepositories
}
