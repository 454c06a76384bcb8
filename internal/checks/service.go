package checks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/gh_scripts/internal/githubcli"
)

const (
	githubClientNotConfiguredMessageConstant = "github client not configured"
	noWorkflowRunsMessageConstant            = "no workflow runs found for commit"
	noWorkflowRunsDetailTemplateConstant     = "no workflow runs found for commit %s in %s"
	missingCommitMessageConstant             = "pull request commit could not be resolved"
	requiredChecksMissingTemplateConstant    = "required status checks are not configured for %s: %w"
	repositoryRequiredMessageConstant        = "repository is required"
	pullRequestNumberRequiredMessageConstant = "pull request number must be positive"
	upToDateMessageTemplateConstant          = "Required status checks for %s on %s are up to date.\n"
	updatedMessageTemplateConstant           = "Updated required status checks for %s on %s.\n"
	unmergedWarningMessageConstant           = "pull request is not merged; reconciling against its head commit"
	diffCurrentLabelConstant                 = "current"
	diffDesiredLabelConstant                 = "desired"
	repositoryLogFieldConstant               = "repository"
	branchLogFieldConstant                   = "branch"
	pullRequestLogFieldConstant              = "pull_request"
	commitLogFieldConstant                   = "commit"
	workflowRunCountLogFieldConstant         = "workflow_runs"
	jobNameCountLogFieldConstant             = "job_names"
	resolvedCommitDebugMessageConstant       = "resolved pull request commit"
	collectedJobsDebugMessageConstant        = "collected workflow job names"
)

// ErrNoWorkflowRuns indicates the resolved commit triggered no CI workflow runs.
var ErrNoWorkflowRuns = errors.New(noWorkflowRunsMessageConstant)

// ErrGitHubClientNotConfigured indicates the service was constructed without a GitHub client.
var ErrGitHubClientNotConfigured = errors.New(githubClientNotConfiguredMessageConstant)

// NoWorkflowRunsError reports the commit and repository that lacked workflow runs.
type NoWorkflowRunsError struct {
	Repository string
	CommitSHA  string
}

// Error describes the missing workflow runs.
func (runsError NoWorkflowRunsError) Error() string {
	return fmt.Sprintf(noWorkflowRunsDetailTemplateConstant, runsError.CommitSHA, runsError.Repository)
}

// Is matches ErrNoWorkflowRuns so callers can branch with errors.Is.
func (runsError NoWorkflowRunsError) Is(target error) bool {
	return target == ErrNoWorkflowRuns
}

// GitHubOperations defines the GitHub interactions required for synchronization.
type GitHubOperations interface {
	GetPullRequest(executionContext context.Context, repository string, pullRequestNumber int) (githubcli.PullRequestDetails, error)
	ListWorkflowRuns(executionContext context.Context, repository string, commitSHA string) ([]githubcli.WorkflowRun, error)
	ListWorkflowRunJobs(executionContext context.Context, repository string, runIdentifier int64) ([]githubcli.WorkflowJob, error)
	GetBranchProtection(executionContext context.Context, repository string, branchName string) (githubcli.BranchProtection, error)
	UpdateBranchProtection(executionContext context.Context, repository string, branchName string, update githubcli.BranchProtectionUpdate) error
}

// ServiceDependencies carries collaborators for the synchronization service.
type ServiceDependencies struct {
	Logger *zap.Logger
	GitHub GitHubOperations
	Output io.Writer
}

// Service reconciles branch protection required checks against observed CI jobs.
type Service struct {
	logger *zap.Logger
	gitHub GitHubOperations
	output io.Writer
}

// NewService validates dependencies and constructs a Service.
func NewService(dependencies ServiceDependencies) (*Service, error) {
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

	return &Service{logger: logger, gitHub: dependencies.GitHub, output: output}, nil
}

// SyncOptions configures a single synchronization run.
type SyncOptions struct {
	Repository        string
	PullRequestNumber int
	CIApplicationID   int64
	DryRun            bool
}

// SyncResult summarizes the outcome of a synchronization run.
type SyncResult struct {
	Branch    string
	CommitSHA string
	JobNames  []string
	Diff      string
	Updated   bool
}

// Sync resolves the pull request's commit, derives the desired required checks
// from its workflow jobs, and reconciles the base branch's protection. In dry
// run mode the unified diff is written to the configured output instead of
// updating the branch.
func (service *Service) Sync(executionContext context.Context, options SyncOptions) (SyncResult, error) {
	repositoryIdentifier := strings.TrimSpace(options.Repository)
	if len(repositoryIdentifier) == 0 {
		return SyncResult{}, errors.New(repositoryRequiredMessageConstant)
	}
	if options.PullRequestNumber <= 0 {
		return SyncResult{}, errors.New(pullRequestNumberRequiredMessageConstant)
	}

	ciApplicationID := options.CIApplicationID
	if ciApplicationID <= 0 {
		ciApplicationID = DefaultCIApplicationID
	}

	pullRequest, pullRequestError := service.gitHub.GetPullRequest(executionContext, repositoryIdentifier, options.PullRequestNumber)
	if pullRequestError != nil {
		return SyncResult{}, pullRequestError
	}

	commitSHA, commitError := service.resolveCommit(repositoryIdentifier, pullRequest)
	if commitError != nil {
		return SyncResult{}, commitError
	}

	workflowRuns, runsError := service.gitHub.ListWorkflowRuns(executionContext, repositoryIdentifier, commitSHA)
	if runsError != nil {
		return SyncResult{}, runsError
	}
	if len(workflowRuns) == 0 {
		return SyncResult{}, NoWorkflowRunsError{Repository: repositoryIdentifier, CommitSHA: commitSHA}
	}

	jobsByRun := make([][]githubcli.WorkflowJob, 0, len(workflowRuns))
	for _, workflowRun := range workflowRuns {
		workflowJobs, jobsError := service.gitHub.ListWorkflowRunJobs(executionContext, repositoryIdentifier, workflowRun.Identifier)
		if jobsError != nil {
			return SyncResult{}, jobsError
		}
		jobsByRun = append(jobsByRun, workflowJobs)
	}

	jobNames := CollectJobNames(jobsByRun...)
	service.logger.Debug(collectedJobsDebugMessageConstant,
		zap.String(repositoryLogFieldConstant, repositoryIdentifier),
		zap.String(commitLogFieldConstant, commitSHA),
		zap.Int(workflowRunCountLogFieldConstant, len(workflowRuns)),
		zap.Int(jobNameCountLogFieldConstant, len(jobNames)),
	)

	baseBranch := pullRequest.BaseBranch
	protection, protectionError := service.gitHub.GetBranchProtection(executionContext, repositoryIdentifier, baseBranch)
	if protectionError != nil {
		return SyncResult{}, protectionError
	}
	if protection.RequiredStatusChecks == nil {
		return SyncResult{}, fmt.Errorf(requiredChecksMissingTemplateConstant, baseBranch, githubcli.ErrResourceNotFound)
	}

	desiredChecks := ReconcileRequiredChecks(protection.RequiredStatusChecks.Checks, jobNames, ciApplicationID)

	currentUpdate := githubcli.BuildProtectionUpdate(protection)
	desiredProtection := protection
	desiredStatusChecks := *protection.RequiredStatusChecks
	desiredStatusChecks.Checks = desiredChecks
	desiredProtection.RequiredStatusChecks = &desiredStatusChecks
	desiredUpdate := githubcli.BuildProtectionUpdate(desiredProtection)

	currentCanonical, currentEncodingError := CanonicalJSON(currentUpdate)
	if currentEncodingError != nil {
		return SyncResult{}, currentEncodingError
	}
	desiredCanonical, desiredEncodingError := CanonicalJSON(desiredUpdate)
	if desiredEncodingError != nil {
		return SyncResult{}, desiredEncodingError
	}

	syncResult := SyncResult{Branch: baseBranch, CommitSHA: commitSHA, JobNames: jobNames}

	if currentCanonical == desiredCanonical {
		fmt.Fprintf(service.output, upToDateMessageTemplateConstant, baseBranch, repositoryIdentifier)
		return syncResult, nil
	}

	protectionDiff, diffError := UnifiedDiff(currentCanonical, desiredCanonical, diffCurrentLabelConstant, diffDesiredLabelConstant)
	if diffError != nil {
		return SyncResult{}, diffError
	}
	syncResult.Diff = protectionDiff

	if options.DryRun {
		fmt.Fprint(service.output, protectionDiff)
		return syncResult, nil
	}

	updateError := service.gitHub.UpdateBranchProtection(executionContext, repositoryIdentifier, baseBranch, desiredUpdate)
	if updateError != nil {
		return SyncResult{}, updateError
	}

	syncResult.Updated = true
	fmt.Fprintf(service.output, updatedMessageTemplateConstant, baseBranch, repositoryIdentifier)
	return syncResult, nil
}

func (service *Service) resolveCommit(repositoryIdentifier string, pullRequest githubcli.PullRequestDetails) (string, error) {
	if pullRequest.Merged() && len(pullRequest.MergeCommitSHA) > 0 {
		service.logger.Debug(resolvedCommitDebugMessageConstant,
			zap.String(repositoryLogFieldConstant, repositoryIdentifier),
			zap.Int(pullRequestLogFieldConstant, pullRequest.Number),
			zap.String(commitLogFieldConstant, pullRequest.MergeCommitSHA),
		)
		return pullRequest.MergeCommitSHA, nil
	}

	if len(pullRequest.HeadCommitSHA) == 0 {
		return "", errors.New(missingCommitMessageConstant)
	}

	service.logger.Warn(unmergedWarningMessageConstant,
		zap.String(repositoryLogFieldConstant, repositoryIdentifier),
		zap.Int(pullRequestLogFieldConstant, pullRequest.Number),
		zap.String(commitLogFieldConstant, pullRequest.HeadCommitSHA),
	)
	return pullRequest.HeadCommitSHA, nil
}
