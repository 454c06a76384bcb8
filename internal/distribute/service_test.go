package distribute_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/gh_scripts/internal/distribute"
	"github.com/temirov/gh_scripts/internal/execshell"
	"github.com/temirov/gh_scripts/internal/githubcli"
)

const (
	testBranchNameConstant       = "update-ci"
	testFirstRepositoryConstant  = "acme/widgets"
	testSecondRepositoryConstant = "acme/gadgets"
	testPullRequestTitleConstant = "Update CI workflow"
)

type recordingGitExecutor struct {
	commands   []execshell.CommandDetails
	pushErrors map[string]error
}

func (executor *recordingGitExecutor) ExecuteGit(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.commands = append(executor.commands, details)
	for failingTarget, pushError := range executor.pushErrors {
		for _, argument := range details.Arguments {
			if argument == failingTarget {
				return execshell.ExecutionResult{}, pushError
			}
		}
	}
	return execshell.ExecutionResult{}, nil
}

type stubDistributionGitHub struct {
	metadataByRepository map[string]githubcli.RepositoryMetadata
	createdPullRequests  []string
	recordedOptions      []githubcli.PullRequestCreateOptions
	creationError        error
}

func (operations *stubDistributionGitHub) ResolveRepoMetadata(_ context.Context, repository string) (githubcli.RepositoryMetadata, error) {
	metadata, exists := operations.metadataByRepository[repository]
	if !exists {
		return githubcli.RepositoryMetadata{NameWithOwner: repository, DefaultBranch: "main"}, nil
	}
	return metadata, nil
}

func (operations *stubDistributionGitHub) CreatePullRequest(_ context.Context, repository string, options githubcli.PullRequestCreateOptions) (string, error) {
	operations.recordedOptions = append(operations.recordedOptions, options)
	if operations.creationError != nil {
		return "", operations.creationError
	}
	pullRequestURL := "https://github.com/" + repository + "/pull/1"
	operations.createdPullRequests = append(operations.createdPullRequests, pullRequestURL)
	return pullRequestURL, nil
}

func newDistributionService(testInstance *testing.T, gitExecutor *recordingGitExecutor, gitHub *stubDistributionGitHub, output *bytes.Buffer) *distribute.Service {
	service, creationError := distribute.NewService(distribute.ServiceDependencies{
		Logger: zap.NewNop(),
		Git:    gitExecutor,
		GitHub: gitHub,
		Output: output,
	})
	require.NoError(testInstance, creationError)
	return service
}

func defaultDistributeOptions() distribute.DistributeOptions {
	return distribute.DistributeOptions{
		BranchName:       testBranchNameConstant,
		Repositories:     []string{testFirstRepositoryConstant, testSecondRepositoryConstant},
		PullRequestTitle: testPullRequestTitleConstant,
	}
}

func TestNewServiceValidation(testInstance *testing.T) {
	_, missingGitError := distribute.NewService(distribute.ServiceDependencies{GitHub: &stubDistributionGitHub{}})
	require.ErrorIs(testInstance, missingGitError, distribute.ErrGitExecutorNotConfigured)

	_, missingGitHubError := distribute.NewService(distribute.ServiceDependencies{Git: &recordingGitExecutor{}})
	require.ErrorIs(testInstance, missingGitHubError, distribute.ErrGitHubClientNotConfigured)
}

func TestDistributePushesAndOpensPullRequestPerTarget(testInstance *testing.T) {
	gitExecutor := &recordingGitExecutor{}
	gitHub := &stubDistributionGitHub{}
	output := &bytes.Buffer{}
	service := newDistributionService(testInstance, gitExecutor, gitHub, output)

	distributeResult, distributionError := service.Distribute(context.Background(), defaultDistributeOptions())
	require.NoError(testInstance, distributionError)
	require.Len(testInstance, distributeResult.Targets, 2)
	require.Zero(testInstance, distributeResult.FailedTargets())

	require.Len(testInstance, gitExecutor.commands, 2)
	require.Equal(testInstance, []string{
		"push",
		"https://github.com/acme/widgets.git",
		"update-ci:update-ci",
	}, gitExecutor.commands[0].Arguments)
	require.Len(testInstance, gitHub.createdPullRequests, 2)
	require.Contains(testInstance, output.String(), "https://github.com/acme/widgets/pull/1")
}

func TestDistributeIsolatesFailingTargets(testInstance *testing.T) {
	gitExecutor := &recordingGitExecutor{
		pushErrors: map[string]error{
			"https://github.com/acme/widgets.git": errors.New("push rejected"),
		},
	}
	gitHub := &stubDistributionGitHub{}
	output := &bytes.Buffer{}
	service := newDistributionService(testInstance, gitExecutor, gitHub, output)

	distributeResult, distributionError := service.Distribute(context.Background(), defaultDistributeOptions())
	require.Error(testInstance, distributionError)

	var incompleteError distribute.IncompleteDistributionError
	require.ErrorAs(testInstance, distributionError, &incompleteError)
	require.Equal(testInstance, 1, incompleteError.FailedTargets)
	require.Equal(testInstance, 2, incompleteError.TotalTargets)

	require.Len(testInstance, distributeResult.Targets, 2)
	require.Error(testInstance, distributeResult.Targets[0].Error)
	require.NoError(testInstance, distributeResult.Targets[1].Error)
	require.Len(testInstance, gitHub.createdPullRequests, 1)
	require.Contains(testInstance, output.String(), "Failed acme/widgets")
}

func TestDistributeDryRunSkipsGitAndGitHub(testInstance *testing.T) {
	gitExecutor := &recordingGitExecutor{}
	gitHub := &stubDistributionGitHub{}
	output := &bytes.Buffer{}
	service := newDistributionService(testInstance, gitExecutor, gitHub, output)

	options := defaultDistributeOptions()
	options.DryRun = true

	distributeResult, distributionError := service.Distribute(context.Background(), options)
	require.NoError(testInstance, distributionError)
	require.Len(testInstance, distributeResult.Targets, 2)
	require.Empty(testInstance, gitExecutor.commands)
	require.Empty(testInstance, gitHub.createdPullRequests)
	require.Contains(testInstance, output.String(), "Would push update-ci to acme/widgets")
}

func TestDistributeResolvesDefaultBaseBranchPerTarget(testInstance *testing.T) {
	gitExecutor := &recordingGitExecutor{}
	gitHub := &stubDistributionGitHub{
		metadataByRepository: map[string]githubcli.RepositoryMetadata{
			testFirstRepositoryConstant: {NameWithOwner: testFirstRepositoryConstant, DefaultBranch: "develop"},
		},
	}
	service := newDistributionService(testInstance, gitExecutor, gitHub, &bytes.Buffer{})

	options := defaultDistributeOptions()
	options.Repositories = []string{testFirstRepositoryConstant}

	_, distributionError := service.Distribute(context.Background(), options)
	require.NoError(testInstance, distributionError)
	require.Len(testInstance, gitHub.recordedOptions, 1)
	require.Equal(testInstance, "develop", gitHub.recordedOptions[0].BaseBranch)
	require.Equal(testInstance, testBranchNameConstant, gitHub.recordedOptions[0].HeadBranch)
}

func TestDistributeValidatesOptions(testInstance *testing.T) {
	service := newDistributionService(testInstance, &recordingGitExecutor{}, &stubDistributionGitHub{}, &bytes.Buffer{})

	_, missingBranchError := service.Distribute(context.Background(), distribute.DistributeOptions{Repositories: []string{testFirstRepositoryConstant}, PullRequestTitle: testPullRequestTitleConstant})
	require.Error(testInstance, missingBranchError)

	_, missingRepositoriesError := service.Distribute(context.Background(), distribute.DistributeOptions{BranchName: testBranchNameConstant, PullRequestTitle: testPullRequestTitleConstant})
	require.Error(testInstance, missingRepositoriesError)

	_, missingTitleError := service.Distribute(context.Background(), distribute.DistributeOptions{BranchName: testBranchNameConstant, Repositories: []string{testFirstRepositoryConstant}})
	require.Error(testInstance, missingTitleError)
}
