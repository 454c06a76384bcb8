package phpstan_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gh_scripts/internal/phpstan"
)

func TestCommandBuilderBuildsPhpstanPathsCommand(testInstance *testing.T) {
	builder := &phpstan.CommandBuilder{}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)
	require.Equal(testInstance, "phpstan-paths", command.Use)
	require.NotNil(testInstance, command.Flags().Lookup("config-file"))
	require.NotNil(testInstance, command.Flags().Lookup("scan"))
	require.NotNil(testInstance, command.Flags().Lookup("exclude"))
	require.NotNil(testInstance, command.Flags().Lookup("dry-run"))
}

func TestCommandRewritesThroughService(testInstance *testing.T) {
	fileSystem := newFakeFileSystem()
	fileSystem.files[testConfigurationPathConstant] = neonFixtureConstant
	fileSystem.directories["/project/src"] = struct{}{}

	output := &bytes.Buffer{}
	builder := &phpstan.CommandBuilder{FileSystem: fileSystem, Output: output}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	command.SetArgs([]string{"--config-file", testConfigurationPathConstant, "--scan", "src", "--scan", "legacy"})
	executionError := command.Execute()
	require.NoError(testInstance, executionError)
	require.Contains(testInstance, fileSystem.writes[testConfigurationPathConstant], "\t\t- src\n")
	require.Contains(testInstance, output.String(), "Rewrote path sections")
}

func TestCommandRejectsPositionalArgumentsForPaths(testInstance *testing.T) {
	builder := &phpstan.CommandBuilder{FileSystem: newFakeFileSystem()}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	command.SetArgs([]string{"unexpected"})
	executionError := command.Execute()
	require.Error(testInstance, executionError)
	require.Contains(testInstance, executionError.Error(), "positional arguments")
}
