package docs_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const (
	readmeFileNameConstant           = "README.md"
	yamlFenceStartConstant           = "```yaml"
	yamlFenceEndConstant             = "```"
	configHeaderMarkerConstant       = "# config.yaml"
	parentDirectoryReferenceConstant = ".."
	missingHeaderMessageConstant     = "README example missing config header marker"
	missingStartFenceMessageConstant = "README example missing yaml fence start"
	missingEndFenceMessageConstant   = "README example missing yaml fence end"
	expectedRepositoryConstant       = "acme/widgets"
	expectedPullRequestConstant      = 42
	expectedApplicationIDConstant    = int64(15368)
	expectedConfigFileConstant       = "phpstan.neon"
	expectedBranchConstant           = "update-ci"
)

type readmeApplicationConfiguration struct {
	Common struct {
		LogLevel  string `yaml:"log_level"`
		LogFormat string `yaml:"log_format"`
	} `yaml:"common"`
	Tools struct {
		Checks struct {
			Sync struct {
				Repository      string `yaml:"repository"`
				PullRequest     int    `yaml:"pull_request"`
				CIApplicationID int64  `yaml:"ci_app_id"`
				DryRun          bool   `yaml:"dry_run"`
			} `yaml:"sync"`
		} `yaml:"checks"`
		Phpstan struct {
			Paths struct {
				ConfigFile string   `yaml:"config_file"`
				Scan       []string `yaml:"scan"`
				Exclude    []string `yaml:"exclude"`
				DryRun     bool     `yaml:"dry_run"`
			} `yaml:"paths"`
		} `yaml:"phpstan"`
		Distribute struct {
			PullRequests struct {
				Branch       string   `yaml:"branch"`
				Repositories []string `yaml:"repositories"`
				Title        string   `yaml:"title"`
				Body         string   `yaml:"body"`
				Base         string   `yaml:"base"`
				DryRun       bool     `yaml:"dry_run"`
			} `yaml:"pull_requests"`
		} `yaml:"distribute"`
	} `yaml:"tools"`
}

func TestReadmeConfigurationSnippetParses(testInstance *testing.T) {
	workingDirectory, workingDirectoryError := os.Getwd()
	require.NoError(testInstance, workingDirectoryError)

	readmePath := filepath.Join(workingDirectory, parentDirectoryReferenceConstant, readmeFileNameConstant)
	contentBytes, readError := os.ReadFile(readmePath)
	require.NoError(testInstance, readError)

	contentText := string(contentBytes)
	headerIndex := strings.Index(contentText, configHeaderMarkerConstant)
	require.NotEqual(testInstance, -1, headerIndex, missingHeaderMessageConstant)

	fenceStartIndex := strings.LastIndex(contentText[:headerIndex], yamlFenceStartConstant)
	require.NotEqual(testInstance, -1, fenceStartIndex, missingStartFenceMessageConstant)

	remainingText := contentText[headerIndex:]
	fenceEndRelativeIndex := strings.Index(remainingText, yamlFenceEndConstant)
	require.NotEqual(testInstance, -1, fenceEndRelativeIndex, missingEndFenceMessageConstant)
	fenceEndIndex := headerIndex + fenceEndRelativeIndex

	snippetContent := strings.TrimSpace(contentText[fenceStartIndex+len(yamlFenceStartConstant) : fenceEndIndex])

	var applicationConfiguration readmeApplicationConfiguration
	require.NoError(testInstance, yaml.Unmarshal([]byte(snippetContent), &applicationConfiguration))

	require.Equal(testInstance, "info", applicationConfiguration.Common.LogLevel)
	require.Equal(testInstance, "structured", applicationConfiguration.Common.LogFormat)
	require.Equal(testInstance, expectedRepositoryConstant, applicationConfiguration.Tools.Checks.Sync.Repository)
	require.Equal(testInstance, expectedPullRequestConstant, applicationConfiguration.Tools.Checks.Sync.PullRequest)
	require.Equal(testInstance, expectedApplicationIDConstant, applicationConfiguration.Tools.Checks.Sync.CIApplicationID)
	require.Equal(testInstance, expectedConfigFileConstant, applicationConfiguration.Tools.Phpstan.Paths.ConfigFile)
	require.NotEmpty(testInstance, applicationConfiguration.Tools.Phpstan.Paths.Scan)
	require.Equal(testInstance, expectedBranchConstant, applicationConfiguration.Tools.Distribute.PullRequests.Branch)
	require.Len(testInstance, applicationConfiguration.Tools.Distribute.PullRequests.Repositories, 2)
	require.NotEmpty(testInstance, applicationConfiguration.Tools.Distribute.PullRequests.Title)
}
