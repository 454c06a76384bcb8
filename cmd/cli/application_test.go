package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/temirov/gh_scripts/cmd/cli"
)

const (
	testConfigurationFileNameConstant = "config.yaml"
	testConfigurationContentConstant  = "common:\n" +
		"  log_level: debug\n" +
		"  log_format: console\n" +
		"tools:\n" +
		"  checks:\n" +
		"    sync:\n" +
		"      repository: acme/widgets\n" +
		"      pull_request: 42\n" +
		"      ci_app_id: 15368\n" +
		"  distribute:\n" +
		"    pull_requests:\n" +
		"      branch: update-ci\n" +
		"      repositories:\n" +
		"        - acme/widgets\n" +
		"        - acme/gadgets\n" +
		"      title: Update CI workflow\n"
)

func TestEmbeddedDefaultConfigurationParses(testInstance *testing.T) {
	embeddedContent, configurationType := cli.EmbeddedDefaultConfiguration()
	require.Equal(testInstance, "yaml", configurationType)
	require.NotEmpty(testInstance, embeddedContent)

	var parsedConfiguration map[string]any
	require.NoError(testInstance, yaml.Unmarshal(embeddedContent, &parsedConfiguration))

	commonSection, commonExists := parsedConfiguration["common"].(map[string]any)
	require.True(testInstance, commonExists)
	require.Equal(testInstance, "info", commonSection["log_level"])

	toolsSection, toolsExist := parsedConfiguration["tools"].(map[string]any)
	require.True(testInstance, toolsExist)
	checksSection, checksExist := toolsSection["checks"].(map[string]any)
	require.True(testInstance, checksExist)
	syncSection, syncExists := checksSection["sync"].(map[string]any)
	require.True(testInstance, syncExists)
	require.Equal(testInstance, 15368, syncSection["ci_app_id"])
}

func TestConfigurationFileParsesIntoToolSections(testInstance *testing.T) {
	temporaryDirectory := testInstance.TempDir()
	configurationFilePath := filepath.Join(temporaryDirectory, testConfigurationFileNameConstant)
	require.NoError(testInstance, os.WriteFile(configurationFilePath, []byte(testConfigurationContentConstant), 0o644))

	var parsedConfiguration struct {
		Common struct {
			LogLevel string `yaml:"log_level"`
		} `yaml:"common"`
		Tools struct {
			Checks struct {
				Sync struct {
					Repository      string `yaml:"repository"`
					PullRequest     int    `yaml:"pull_request"`
					CIApplicationID int64  `yaml:"ci_app_id"`
				} `yaml:"sync"`
			} `yaml:"checks"`
			Distribute struct {
				PullRequests struct {
					Branch       string   `yaml:"branch"`
					Repositories []string `yaml:"repositories"`
					Title        string   `yaml:"title"`
				} `yaml:"pull_requests"`
			} `yaml:"distribute"`
		} `yaml:"tools"`
	}

	configurationContent, readError := os.ReadFile(configurationFilePath)
	require.NoError(testInstance, readError)
	require.NoError(testInstance, yaml.Unmarshal(configurationContent, &parsedConfiguration))

	require.Equal(testInstance, "debug", parsedConfiguration.Common.LogLevel)
	require.Equal(testInstance, "acme/widgets", parsedConfiguration.Tools.Checks.Sync.Repository)
	require.Equal(testInstance, 42, parsedConfiguration.Tools.Checks.Sync.PullRequest)
	require.Equal(testInstance, int64(15368), parsedConfiguration.Tools.Checks.Sync.CIApplicationID)
	require.Equal(testInstance, []string{"acme/widgets", "acme/gadgets"}, parsedConfiguration.Tools.Distribute.PullRequests.Repositories)
}
