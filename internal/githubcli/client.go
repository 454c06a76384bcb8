package githubcli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/temirov/gh_scripts/internal/execshell"
)

const (
	repoSubcommandConstant                       = "repo"
	viewSubcommandConstant                       = "view"
	pullRequestSubcommandConstant                = "pr"
	createSubcommandConstant                     = "create"
	apiSubcommandConstant                        = "api"
	jsonFlagConstant                             = "--json"
	repoFlagConstant                             = "--repo"
	titleFlagConstant                            = "--title"
	bodyFlagConstant                             = "--body"
	baseFlagConstant                             = "--base"
	headFlagConstant                             = "--head"
	methodFlagConstant                           = "-X"
	inputFlagConstant                            = "--input"
	stdinReferenceConstant                       = "-"
	acceptHeaderFlagConstant                     = "-H"
	acceptHeaderValueConstant                    = "Accept: application/vnd.github+json"
	httpMethodPutConstant                        = "PUT"
	repositoryFieldNameConstant                  = "repository"
	pullRequestNumberFieldNameConstant           = "pull_request_number"
	commitFieldNameConstant                      = "commit"
	runIdentifierFieldNameConstant               = "run_id"
	branchFieldNameConstant                      = "branch"
	titleFieldNameConstant                       = "title"
	headBranchFieldNameConstant                  = "head_branch"
	requiredValueMessageConstant                 = "value required"
	positiveValueMessageConstant                 = "positive value required"
	repoViewJSONFieldsConstant                   = "defaultBranchRef,nameWithOwner,description"
	pullRequestViewJSONFieldsConstant            = "number,state,title,url,baseRefName,headRefName,headRefOid,mergeCommit"
	workflowRunsEndpointTemplateConstant         = "repos/%s/actions/runs?head_sha=%s&per_page=%d"
	workflowRunJobsEndpointTemplateConstant      = "repos/%s/actions/runs/%d/jobs?per_page=%d"
	branchProtectionEndpointTemplateConstant     = "repos/%s/branches/%s/protection"
	workflowResultPageSizeConstant               = 100
	pullRequestStateMergedConstant               = "MERGED"
	resolveRepoMetadataOperationNameConstant     = OperationName("ResolveRepoMetadata")
	getPullRequestOperationNameConstant          = OperationName("GetPullRequest")
	listWorkflowRunsOperationNameConstant        = OperationName("ListWorkflowRuns")
	listWorkflowRunJobsOperationNameConstant     = OperationName("ListWorkflowRunJobs")
	getBranchProtectionOperationNameConstant     = OperationName("GetBranchProtection")
	updateBranchProtectionOperationNameConstant  = OperationName("UpdateBranchProtection")
	createPullRequestOperationNameConstant       = OperationName("CreatePullRequest")
)

// RepositoryMetadata contains key details resolved from GitHub.
type RepositoryMetadata struct {
	NameWithOwner string
	Description   string
	DefaultBranch string
}

// PullRequestDetails captures the pull request fields needed for commit resolution.
type PullRequestDetails struct {
	Number         int
	State          string
	Title          string
	URL            string
	BaseBranch     string
	HeadBranch     string
	HeadCommitSHA  string
	MergeCommitSHA string
}

// Merged reports whether the pull request has been merged.
func (details PullRequestDetails) Merged() bool {
	return details.State == pullRequestStateMergedConstant
}

// WorkflowRun identifies a single workflow run associated with a commit.
type WorkflowRun struct {
	Identifier   int64
	WorkflowName string
	Status       string
}

// WorkflowJob identifies a single job within a workflow run.
type WorkflowJob struct {
	Identifier int64
	Name       string
	Status     string
	Conclusion string
}

// PullRequestCreateOptions configures CreatePullRequest invocations.
type PullRequestCreateOptions struct {
	Title      string
	Body       string
	BaseBranch string
	HeadBranch string
}

// GitHubCommandExecutor is the minimal interface required from execshell.ShellExecutor.
type GitHubCommandExecutor interface {
	ExecuteGitHubCLI(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Client coordinates GitHub CLI invocations through execshell.
type Client struct {
	executor GitHubCommandExecutor
}

// NewClient constructs a GitHub CLI client.
func NewClient(executor GitHubCommandExecutor) (*Client, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &Client{executor: executor}, nil
}

// ResolveRepoMetadata retrieves canonical metadata for a repository using gh repo view.
func (client *Client) ResolveRepoMetadata(executionContext context.Context, repository string) (RepositoryMetadata, error) {
	repositoryIdentifier := strings.TrimSpace(repository)
	if len(repositoryIdentifier) == 0 {
		return RepositoryMetadata{}, InvalidInputError{FieldName: repositoryFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			repoSubcommandConstant,
			viewSubcommandConstant,
			repositoryIdentifier,
			jsonFlagConstant,
			repoViewJSONFieldsConstant,
		},
	}

	executionResult, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return RepositoryMetadata{}, classifyExecutionError(resolveRepoMetadataOperationNameConstant, executionError)
	}

	var response struct {
		NameWithOwner    string `json:"nameWithOwner"`
		Description      string `json:"description"`
		DefaultBranchRef struct {
			Name string `json:"name"`
		} `json:"defaultBranchRef"`
	}

	decodingError := json.Unmarshal([]byte(executionResult.StandardOutput), &response)
	if decodingError != nil {
		return RepositoryMetadata{}, ResponseDecodingError{Operation: resolveRepoMetadataOperationNameConstant, Cause: decodingError}
	}

	return RepositoryMetadata{
		NameWithOwner: response.NameWithOwner,
		Description:   response.Description,
		DefaultBranch: response.DefaultBranchRef.Name,
	}, nil
}

// GetPullRequest retrieves pull request details using gh pr view.
func (client *Client) GetPullRequest(executionContext context.Context, repository string, pullRequestNumber int) (PullRequestDetails, error) {
	repositoryIdentifier := strings.TrimSpace(repository)
	if len(repositoryIdentifier) == 0 {
		return PullRequestDetails{}, InvalidInputError{FieldName: repositoryFieldNameConstant, Message: requiredValueMessageConstant}
	}
	if pullRequestNumber <= 0 {
		return PullRequestDetails{}, InvalidInputError{FieldName: pullRequestNumberFieldNameConstant, Message: positiveValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			pullRequestSubcommandConstant,
			viewSubcommandConstant,
			strconv.Itoa(pullRequestNumber),
			repoFlagConstant,
			repositoryIdentifier,
			jsonFlagConstant,
			pullRequestViewJSONFieldsConstant,
		},
	}

	executionResult, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return PullRequestDetails{}, classifyExecutionError(getPullRequestOperationNameConstant, executionError)
	}

	var response struct {
		Number      int    `json:"number"`
		State       string `json:"state"`
		Title       string `json:"title"`
		URL         string `json:"url"`
		BaseRefName string `json:"baseRefName"`
		HeadRefName string `json:"headRefName"`
		HeadRefOID  string `json:"headRefOid"`
		MergeCommit *struct {
			OID string `json:"oid"`
		} `json:"mergeCommit"`
	}

	decodingError := json.Unmarshal([]byte(executionResult.StandardOutput), &response)
	if decodingError != nil {
		return PullRequestDetails{}, ResponseDecodingError{Operation: getPullRequestOperationNameConstant, Cause: decodingError}
	}

	pullRequestDetails := PullRequestDetails{
		Number:        response.Number,
		State:         response.State,
		Title:         response.Title,
		URL:           response.URL,
		BaseBranch:    response.BaseRefName,
		HeadBranch:    response.HeadRefName,
		HeadCommitSHA: response.HeadRefOID,
	}
	if response.MergeCommit != nil {
		pullRequestDetails.MergeCommitSHA = response.MergeCommit.OID
	}

	return pullRequestDetails, nil
}

// ListWorkflowRuns enumerates workflow runs associated with a commit using gh api.
func (client *Client) ListWorkflowRuns(executionContext context.Context, repository string, commitSHA string) ([]WorkflowRun, error) {
	repositoryIdentifier := strings.TrimSpace(repository)
	if len(repositoryIdentifier) == 0 {
		return nil, InvalidInputError{FieldName: repositoryFieldNameConstant, Message: requiredValueMessageConstant}
	}
	trimmedCommitSHA := strings.TrimSpace(commitSHA)
	if len(trimmedCommitSHA) == 0 {
		return nil, InvalidInputError{FieldName: commitFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			apiSubcommandConstant,
			fmt.Sprintf(workflowRunsEndpointTemplateConstant, repositoryIdentifier, trimmedCommitSHA, workflowResultPageSizeConstant),
			acceptHeaderFlagConstant,
			acceptHeaderValueConstant,
		},
	}

	executionResult, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return nil, classifyExecutionError(listWorkflowRunsOperationNameConstant, executionError)
	}

	var response struct {
		TotalCount   int `json:"total_count"`
		WorkflowRuns []struct {
			Identifier int64  `json:"id"`
			Name       string `json:"name"`
			Status     string `json:"status"`
		} `json:"workflow_runs"`
	}

	decodingError := json.Unmarshal([]byte(executionResult.StandardOutput), &response)
	if decodingError != nil {
		return nil, ResponseDecodingError{Operation: listWorkflowRunsOperationNameConstant, Cause: decodingError}
	}

	workflowRuns := make([]WorkflowRun, 0, len(response.WorkflowRuns))
	for _, workflowRunEntry := range response.WorkflowRuns {
		workflowRuns = append(workflowRuns, WorkflowRun{
			Identifier:   workflowRunEntry.Identifier,
			WorkflowName: workflowRunEntry.Name,
			Status:       workflowRunEntry.Status,
		})
	}

	return workflowRuns, nil
}

// ListWorkflowRunJobs enumerates the jobs belonging to a workflow run using gh api.
func (client *Client) ListWorkflowRunJobs(executionContext context.Context, repository string, runIdentifier int64) ([]WorkflowJob, error) {
	repositoryIdentifier := strings.TrimSpace(repository)
	if len(repositoryIdentifier) == 0 {
		return nil, InvalidInputError{FieldName: repositoryFieldNameConstant, Message: requiredValueMessageConstant}
	}
	if runIdentifier <= 0 {
		return nil, InvalidInputError{FieldName: runIdentifierFieldNameConstant, Message: positiveValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			apiSubcommandConstant,
			fmt.Sprintf(workflowRunJobsEndpointTemplateConstant, repositoryIdentifier, runIdentifier, workflowResultPageSizeConstant),
			acceptHeaderFlagConstant,
			acceptHeaderValueConstant,
		},
	}

	executionResult, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return nil, classifyExecutionError(listWorkflowRunJobsOperationNameConstant, executionError)
	}

	var response struct {
		TotalCount int `json:"total_count"`
		Jobs       []struct {
			Identifier int64  `json:"id"`
			Name       string `json:"name"`
			Status     string `json:"status"`
			Conclusion string `json:"conclusion"`
		} `json:"jobs"`
	}

	decodingError := json.Unmarshal([]byte(executionResult.StandardOutput), &response)
	if decodingError != nil {
		return nil, ResponseDecodingError{Operation: listWorkflowRunJobsOperationNameConstant, Cause: decodingError}
	}

	workflowJobs := make([]WorkflowJob, 0, len(response.Jobs))
	for _, workflowJobEntry := range response.Jobs {
		workflowJobs = append(workflowJobs, WorkflowJob{
			Identifier: workflowJobEntry.Identifier,
			Name:       workflowJobEntry.Name,
			Status:     workflowJobEntry.Status,
			Conclusion: workflowJobEntry.Conclusion,
		})
	}

	return workflowJobs, nil
}

// GetBranchProtection reads the protection configuration for a branch using gh api.
func (client *Client) GetBranchProtection(executionContext context.Context, repository string, branchName string) (BranchProtection, error) {
	repositoryIdentifier := strings.TrimSpace(repository)
	if len(repositoryIdentifier) == 0 {
		return BranchProtection{}, InvalidInputError{FieldName: repositoryFieldNameConstant, Message: requiredValueMessageConstant}
	}
	trimmedBranchName := strings.TrimSpace(branchName)
	if len(trimmedBranchName) == 0 {
		return BranchProtection{}, InvalidInputError{FieldName: branchFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			apiSubcommandConstant,
			fmt.Sprintf(branchProtectionEndpointTemplateConstant, repositoryIdentifier, trimmedBranchName),
			acceptHeaderFlagConstant,
			acceptHeaderValueConstant,
		},
	}

	executionResult, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return BranchProtection{}, classifyExecutionError(getBranchProtectionOperationNameConstant, executionError)
	}

	var protection BranchProtection
	decodingError := json.Unmarshal([]byte(executionResult.StandardOutput), &protection)
	if decodingError != nil {
		return BranchProtection{}, ResponseDecodingError{Operation: getBranchProtectionOperationNameConstant, Cause: decodingError}
	}

	return protection, nil
}

// UpdateBranchProtection replaces the protection configuration for a branch using gh api.
func (client *Client) UpdateBranchProtection(executionContext context.Context, repository string, branchName string, update BranchProtectionUpdate) error {
	repositoryIdentifier := strings.TrimSpace(repository)
	if len(repositoryIdentifier) == 0 {
		return InvalidInputError{FieldName: repositoryFieldNameConstant, Message: requiredValueMessageConstant}
	}
	trimmedBranchName := strings.TrimSpace(branchName)
	if len(trimmedBranchName) == 0 {
		return InvalidInputError{FieldName: branchFieldNameConstant, Message: requiredValueMessageConstant}
	}

	payloadBytes, encodingError := json.Marshal(update)
	if encodingError != nil {
		return PayloadEncodingError{Operation: updateBranchProtectionOperationNameConstant, Cause: encodingError}
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			apiSubcommandConstant,
			fmt.Sprintf(branchProtectionEndpointTemplateConstant, repositoryIdentifier, trimmedBranchName),
			methodFlagConstant,
			httpMethodPutConstant,
			inputFlagConstant,
			stdinReferenceConstant,
			acceptHeaderFlagConstant,
			acceptHeaderValueConstant,
		},
		StandardInput: payloadBytes,
	}

	_, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return classifyExecutionError(updateBranchProtectionOperationNameConstant, executionError)
	}

	return nil
}

// CreatePullRequest opens a pull request using gh pr create and returns its URL.
func (client *Client) CreatePullRequest(executionContext context.Context, repository string, options PullRequestCreateOptions) (string, error) {
	repositoryIdentifier := strings.TrimSpace(repository)
	if len(repositoryIdentifier) == 0 {
		return "", InvalidInputError{FieldName: repositoryFieldNameConstant, Message: requiredValueMessageConstant}
	}
	if len(strings.TrimSpace(options.Title)) == 0 {
		return "", InvalidInputError{FieldName: titleFieldNameConstant, Message: requiredValueMessageConstant}
	}
	if len(strings.TrimSpace(options.HeadBranch)) == 0 {
		return "", InvalidInputError{FieldName: headBranchFieldNameConstant, Message: requiredValueMessageConstant}
	}

	arguments := []string{
		pullRequestSubcommandConstant,
		createSubcommandConstant,
		repoFlagConstant,
		repositoryIdentifier,
		titleFlagConstant,
		options.Title,
		bodyFlagConstant,
		options.Body,
		headFlagConstant,
		options.HeadBranch,
	}
	if len(strings.TrimSpace(options.BaseBranch)) > 0 {
		arguments = append(arguments, baseFlagConstant, options.BaseBranch)
	}

	executionResult, executionError := client.executor.ExecuteGitHubCLI(executionContext, execshell.CommandDetails{Arguments: arguments})
	if executionError != nil {
		return "", classifyExecutionError(createPullRequestOperationNameConstant, executionError)
	}

	return strings.TrimSpace(executionResult.StandardOutput), nil
}
