package distribute

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/gh_scripts/internal/execshell"
	"github.com/temirov/gh_scripts/internal/githubcli"
)

const (
	gitExecutorNotConfiguredMessageConstant     = "git executor not configured"
	gitHubClientNotConfiguredMessageConstant    = "github client not configured"
	branchNameRequiredMessageConstant           = "branch name is required"
	repositoriesRequiredMessageConstant         = "at least one target repository is required"
	titleRequiredMessageConstant                = "pull request title is required"
	incompleteDistributionTemplateConstant      = "distribution failed for %d of %d repositories"
	gitPushSubcommandConstant                   = "push"
	repositoryURLTemplateConstant               = "https://github.com/%s.git"
	refspecTemplateConstant                     = "%s:%s"
	dryRunPreviewTemplateConstant               = "Would push %s to %s and open a pull request.\n"
	createdPullRequestTemplateConstant          = "Opened %s\n"
	targetFailedTemplateConstant                = "Failed %s: %v\n"
	repositoryLogFieldConstant                  = "repository"
	branchLogFieldConstant                      = "branch"
	baseBranchLogFieldConstant                  = "base_branch"
	pullRequestURLLogFieldConstant              = "pull_request_url"
	pushedBranchDebugMessageConstant            = "pushed branch to target repository"
	openedPullRequestDebugMessageConstant       = "opened pull request"
	targetDistributionFailedWarnMessageConstant = "target distribution failed"
)

// ErrGitExecutorNotConfigured indicates the service was constructed without a git executor.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorNotConfiguredMessageConstant)

// ErrGitHubClientNotConfigured indicates the service was constructed without a GitHub client.
var ErrGitHubClientNotConfigured = errors.New(gitHubClientNotConfiguredMessageConstant)

// IncompleteDistributionError reports how many targets failed during a run.
type IncompleteDistributionError struct {
	FailedTargets int
	TotalTargets  int
}

// Error describes the partially failed distribution.
func (distributionError IncompleteDistributionError) Error() string {
	return fmt.Sprintf(incompleteDistributionTemplateConstant, distributionError.FailedTargets, distributionError.TotalTargets)
}

// GitExecutor defines the git interactions required for distribution.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// GitHubOperations defines the GitHub interactions required for distribution.
type GitHubOperations interface {
	ResolveRepoMetadata(executionContext context.Context, repository string) (githubcli.RepositoryMetadata, error)
	CreatePullRequest(executionContext context.Context, repository string, options githubcli.PullRequestCreateOptions) (string, error)
}

// ServiceDependencies carries collaborators for the distribution service.
type ServiceDependencies struct {
	Logger *zap.Logger
	Git    GitExecutor
	GitHub GitHubOperations
	Output io.Writer
}

// Service distributes a local branch to target repositories as pull requests.
type Service struct {
	logger *zap.Logger
	git    GitExecutor
	gitHub GitHubOperations
	output io.Writer
}

// NewService validates dependencies and constructs a Service.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.Git == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	if dependencies.GitHub == nil {
		return nil, ErrGitHubClientNotConfigured
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	output := dependencies.Output
	if output == nil {
		output = io.Discard
	}

	return &Service{logger: logger, git: dependencies.Git, gitHub: dependencies.GitHub, output: output}, nil
}

// DistributeOptions configures a single distribution run.
type DistributeOptions struct {
	BranchName       string
	Repositories     []string
	PullRequestTitle string
	PullRequestBody  string
	BaseBranch       string
	WorkingDirectory string
	DryRun           bool
}

// TargetResult records the outcome for one target repository.
type TargetResult struct {
	Repository     string
	PullRequestURL string
	Error          error
}

// DistributeResult summarizes a distribution run across all targets.
type DistributeResult struct {
	Targets []TargetResult
}

// FailedTargets counts the targets whose distribution failed.
func (result DistributeResult) FailedTargets() int {
	failedTargets := 0
	for _, target := range result.Targets {
		if target.Error != nil {
			failedTargets++
		}
	}
	return failedTargets
}

// Distribute pushes the branch to every target repository and opens a pull
// request in each. A failing target is recorded and reported without aborting
// the remaining targets; the run returns IncompleteDistributionError when any
// target failed. Dry run lists the intended pushes without invoking git or gh.
func (service *Service) Distribute(executionContext context.Context, options DistributeOptions) (DistributeResult, error) {
	branchName := strings.TrimSpace(options.BranchName)
	if len(branchName) == 0 {
		return DistributeResult{}, errors.New(branchNameRequiredMessageConstant)
	}
	if len(options.Repositories) == 0 {
		return DistributeResult{}, errors.New(repositoriesRequiredMessageConstant)
	}
	if !options.DryRun && len(strings.TrimSpace(options.PullRequestTitle)) == 0 {
		return DistributeResult{}, errors.New(titleRequiredMessageConstant)
	}

	distributeResult := DistributeResult{Targets: make([]TargetResult, 0, len(options.Repositories))}

	for _, targetRepository := range options.Repositories {
		repositoryIdentifier := strings.TrimSpace(targetRepository)
		if len(repositoryIdentifier) == 0 {
			continue
		}

		if options.DryRun {
			fmt.Fprintf(service.output, dryRunPreviewTemplateConstant, branchName, repositoryIdentifier)
			distributeResult.Targets = append(distributeResult.Targets, TargetResult{Repository: repositoryIdentifier})
			continue
		}

		pullRequestURL, targetError := service.distributeToTarget(executionContext, repositoryIdentifier, branchName, options)
		targetResult := TargetResult{Repository: repositoryIdentifier, PullRequestURL: pullRequestURL, Error: targetError}
		distributeResult.Targets = append(distributeResult.Targets, targetResult)

		if targetError != nil {
			service.logger.Warn(targetDistributionFailedWarnMessageConstant,
				zap.String(repositoryLogFieldConstant, repositoryIdentifier),
				zap.String(branchLogFieldConstant, branchName),
				zap.Error(targetError),
			)
			fmt.Fprintf(service.output, targetFailedTemplateConstant, repositoryIdentifier, targetError)
			continue
		}

		fmt.Fprintf(service.output, createdPullRequestTemplateConstant, pullRequestURL)
	}

	if failedTargets := distributeResult.FailedTargets(); failedTargets > 0 {
		return distributeResult, IncompleteDistributionError{FailedTargets: failedTargets, TotalTargets: len(distributeResult.Targets)}
	}

	return distributeResult, nil
}

func (service *Service) distributeToTarget(executionContext context.Context, repositoryIdentifier string, branchName string, options DistributeOptions) (string, error) {
	baseBranch := strings.TrimSpace(options.BaseBranch)
	if len(baseBranch) == 0 {
		metadata, metadataError := service.gitHub.ResolveRepoMetadata(executionContext, repositoryIdentifier)
		if metadataError != nil {
			return "", metadataError
		}
		baseBranch = metadata.DefaultBranch
	}

	pushDetails := execshell.CommandDetails{
		Arguments: []string{
			gitPushSubcommandConstant,
			fmt.Sprintf(repositoryURLTemplateConstant, repositoryIdentifier),
			fmt.Sprintf(refspecTemplateConstant, branchName, branchName),
		},
		WorkingDirectory: options.WorkingDirectory,
	}
	if _, pushError := service.git.ExecuteGit(executionContext, pushDetails); pushError != nil {
		return "", pushError
	}

	service.logger.Debug(pushedBranchDebugMessageConstant,
		zap.String(repositoryLogFieldConstant, repositoryIdentifier),
		zap.String(branchLogFieldConstant, branchName),
	)

	pullRequestURL, creationError := service.gitHub.CreatePullRequest(executionContext, repositoryIdentifier, githubcli.PullRequestCreateOptions{
		Title:      options.PullRequestTitle,
		Body:       options.PullRequestBody,
		BaseBranch: baseBranch,
		HeadBranch: branchName,
	})
	if creationError != nil {
		return "", creationError
	}

	service.logger.Debug(openedPullRequestDebugMessageConstant,
		zap.String(repositoryLogFieldConstant, repositoryIdentifier),
		zap.String(baseBranchLogFieldConstant, baseBranch),
		zap.String(pullRequestURLLogFieldConstant, pullRequestURL),
	)

	return pullRequestURL, nil
}
