package execshell

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildStartedMessageForFetchIncludesRemoteAndReferences(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"fetch", "--prune", "origin", "feature"},
			WorkingDirectory: "/workspace/repo",
		},
	}

	message := formatter.BuildStartedMessage(command)

	require.Equal(t, "Fetching feature from origin in /workspace/repo", message)
}

func TestBuildStartedMessageForFetchWithoutRemoteUsesAllRemotesLabel(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"fetch", "--prune"},
			WorkingDirectory: "/workspace/repo",
		},
	}

	message := formatter.BuildStartedMessage(command)

	require.Equal(t, "Fetching from all remotes in /workspace/repo", message)
}

func TestBuildStartedMessageForPushDescribesRefspec(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"push", "https://github.com/acme/widgets.git", "update-ci:update-ci"},
			WorkingDirectory: "/workspace/repo",
		},
	}

	message := formatter.BuildStartedMessage(command)

	require.Equal(t, "Pushing update-ci:update-ci to https://github.com/acme/widgets.git from /workspace/repo", message)
}

func TestBuildMessagesForProtectionEndpointDistinguishReadAndWrite(t *testing.T) {
	formatter := CommandMessageFormatter{}

	readCommand := ShellCommand{
		Name: CommandGitHub,
		Details: CommandDetails{
			Arguments: []string{"api", "repos/acme/widgets/branches/main/protection"},
		},
	}
	require.Equal(t, "Checking branch protection for main on acme/widgets", formatter.BuildStartedMessage(readCommand))

	writeCommand := ShellCommand{
		Name: CommandGitHub,
		Details: CommandDetails{
			Arguments: []string{"api", "repos/acme/widgets/branches/main/protection", "-X", "PUT", "--input", "-"},
		},
	}
	require.Equal(t, "Updating branch protection for main on acme/widgets", formatter.BuildStartedMessage(writeCommand))
	require.Equal(t, "Updated branch protection for main on acme/widgets", formatter.BuildSuccessMessage(writeCommand))
}

func TestBuildMessagesForWorkflowRunAndJobEndpoints(t *testing.T) {
	formatter := CommandMessageFormatter{}

	runsCommand := ShellCommand{
		Name: CommandGitHub,
		Details: CommandDetails{
			Arguments: []string{"api", "repos/acme/widgets/actions/runs?head_sha=abc123"},
		},
	}
	require.Equal(t, "Listing workflow runs for acme/widgets", formatter.BuildStartedMessage(runsCommand))

	jobsCommand := ShellCommand{
		Name: CommandGitHub,
		Details: CommandDetails{
			Arguments: []string{"api", "repos/acme/widgets/actions/runs/42/jobs"},
		},
	}
	require.Equal(t, "Listing workflow jobs for acme/widgets", formatter.BuildStartedMessage(jobsCommand))
}

func TestBuildFailureMessageIncludesExitCodeAndStandardError(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGitHub,
		Details: CommandDetails{
			Arguments: []string{"api", "repos/acme/widgets/branches/main/protection"},
		},
	}

	message := formatter.BuildFailureMessage(command, ExecutionResult{ExitCode: 1, StandardError: "HTTP 404: Not Found"})

	require.Equal(t, "Failed to check branch protection for main on acme/widgets (exit code 1: HTTP 404: Not Found)", message)
}
