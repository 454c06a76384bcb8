package distribute_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gh_scripts/internal/distribute"
)

func TestCommandBuilderBuildsPrDistributeCommand(testInstance *testing.T) {
	builder := &distribute.CommandBuilder{}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)
	require.Equal(testInstance, "pr-distribute", command.Use)
	require.NotNil(testInstance, command.Flags().Lookup("branch"))
	require.NotNil(testInstance, command.Flags().Lookup("repo"))
	require.NotNil(testInstance, command.Flags().Lookup("title"))
	require.NotNil(testInstance, command.Flags().Lookup("body"))
	require.NotNil(testInstance, command.Flags().Lookup("base"))
	require.NotNil(testInstance, command.Flags().Lookup("dry-run"))
}

func TestCommandDistributesThroughService(testInstance *testing.T) {
	gitExecutor := &recordingGitExecutor{}
	gitHub := &stubDistributionGitHub{}
	output := &bytes.Buffer{}
	builder := &distribute.CommandBuilder{Git: gitExecutor, GitHub: gitHub, Output: output}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	command.SetArgs([]string{
		"--branch", testBranchNameConstant,
		"--repo", testFirstRepositoryConstant,
		"--title", testPullRequestTitleConstant,
	})
	executionError := command.Execute()
	require.NoError(testInstance, executionError)
	require.Len(testInstance, gitExecutor.commands, 1)
	require.Len(testInstance, gitHub.createdPullRequests, 1)
}

func TestCommandUsesConfigurationDefaults(testInstance *testing.T) {
	gitExecutor := &recordingGitExecutor{}
	gitHub := &stubDistributionGitHub{}
	output := &bytes.Buffer{}
	builder := &distribute.CommandBuilder{
		Git:    gitExecutor,
		GitHub: gitHub,
		Output: output,
		ConfigurationProvider: func() distribute.Configuration {
			return distribute.Configuration{Distribute: distribute.DistributeConfiguration{
				BranchName:       testBranchNameConstant,
				Repositories:     []string{testFirstRepositoryConstant, testSecondRepositoryConstant},
				PullRequestTitle: testPullRequestTitleConstant,
				DryRun:           true,
			}}
		},
	}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	command.SetArgs([]string{})
	executionError := command.Execute()
	require.NoError(testInstance, executionError)
	require.Empty(testInstance, gitExecutor.commands)
	require.Contains(testInstance, output.String(), "Would push")
}
