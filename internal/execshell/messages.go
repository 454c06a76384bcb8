package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	fallbackUnknownValueLabelConstant       = "unknown"
)

const (
	gitFetchSubcommandNameConstant = "fetch"
	gitPushSubcommandNameConstant  = "push"
)

const (
	gitFetchStartTemplateConstant                       = "Fetching %s from %s in %s"
	gitFetchWithoutRefsStartTemplateConstant            = "Fetching from %s in %s"
	gitFetchSuccessTemplateConstant                     = "Fetched %s from %s in %s"
	gitFetchWithoutRefsSuccessTemplateConstant          = "Fetched from %s in %s"
	gitFetchFailureTemplateConstant                     = "Failed to fetch %s from %s in %s (exit code %d%s)"
	gitFetchWithoutRefsFailureTemplateConstant          = "Failed to fetch from %s in %s (exit code %d%s)"
	gitFetchExecutionFailureTemplateConstant            = "Unable to fetch %s from %s in %s: %s"
	gitFetchWithoutRefsExecutionFailureTemplateConstant = "Unable to fetch from %s in %s: %s"
	gitFetchAllRemotesLabelConstant                     = "all remotes"
	gitPushStartTemplateConstant                        = "Pushing %s to %s from %s"
	gitPushSuccessTemplateConstant                      = "Pushed %s to %s from %s"
	gitPushFailureTemplateConstant                      = "Failed to push %s to %s from %s (exit code %d%s)"
	gitPushExecutionFailureTemplateConstant             = "Unable to push %s to %s from %s: %s"
)

const (
	githubRepoSubcommandNameConstant                  = "repo"
	githubRepoViewSubcommandNameConstant              = "view"
	githubPullRequestSubcommandNameConstant           = "pr"
	githubPullRequestViewSubcommandNameConstant       = "view"
	githubPullRequestCreateSubcommandNameConstant     = "create"
	githubAPICommandNameConstant                      = "api"
	githubRepoFlagConstant                            = "--repo"
	githubMethodFlagConstant                          = "-X"
	githubWorkflowRunsEndpointSubstringConstant       = "/actions/runs"
	githubWorkflowJobsEndpointSuffixConstant          = "/jobs"
	githubBranchesEndpointSubstringConstant           = "/branches/"
	githubProtectionEndpointSuffixConstant            = "/protection"
	githubProtectionUpdateMethodConstant              = "PUT"
	githubRepositoriesEndpointPrefixConstant          = "repos/"
	githubCurrentRepositoryLabelConstant              = "current repository"
	githubRepoViewIdentificationArgumentCountConstant = 2
)

const (
	githubRepoViewStartTemplateConstant                     = "Retrieving repository details for %s"
	githubRepoViewSuccessTemplateConstant                   = "Retrieved repository details for %s"
	githubRepoViewFailureTemplateConstant                   = "Failed to retrieve repository details for %s (exit code %d%s)"
	githubRepoViewExecutionFailureTemplateConstant          = "Unable to retrieve repository details for %s: %s"
	githubPullRequestViewStartTemplateConstant              = "Retrieving pull request #%s in %s"
	githubPullRequestViewSuccessTemplateConstant            = "Retrieved pull request #%s in %s"
	githubPullRequestViewFailureTemplateConstant            = "Failed to retrieve pull request #%s in %s (exit code %d%s)"
	githubPullRequestViewExecutionFailureTemplateConstant   = "Unable to retrieve pull request #%s in %s: %s"
	githubPullRequestCreateStartTemplateConstant            = "Opening pull request in %s"
	githubPullRequestCreateSuccessTemplateConstant          = "Opened pull request in %s"
	githubPullRequestCreateFailureTemplateConstant          = "Failed to open pull request in %s (exit code %d%s)"
	githubPullRequestCreateExecutionFailureTemplateConstant = "Unable to open pull request in %s: %s"
	githubWorkflowRunsStartTemplateConstant                 = "Listing workflow runs for %s"
	githubWorkflowRunsSuccessTemplateConstant               = "Listed workflow runs for %s"
	githubWorkflowRunsFailureTemplateConstant               = "Failed to list workflow runs for %s (exit code %d%s)"
	githubWorkflowRunsExecutionFailureTemplateConstant      = "Unable to list workflow runs for %s: %s"
	githubWorkflowJobsStartTemplateConstant                 = "Listing workflow jobs for %s"
	githubWorkflowJobsSuccessTemplateConstant               = "Listed workflow jobs for %s"
	githubWorkflowJobsFailureTemplateConstant               = "Failed to list workflow jobs for %s (exit code %d%s)"
	githubWorkflowJobsExecutionFailureTemplateConstant      = "Unable to list workflow jobs for %s: %s"
	githubProtectionReadStartTemplateConstant               = "Checking branch protection for %s on %s"
	githubProtectionReadSuccessTemplateConstant             = "Read branch protection for %s on %s"
	githubProtectionReadFailureTemplateConstant             = "Failed to check branch protection for %s on %s (exit code %d%s)"
	githubProtectionReadExecutionFailureTemplateConstant    = "Unable to check branch protection for %s on %s: %s"
	githubProtectionUpdateStartTemplateConstant             = "Updating branch protection for %s on %s"
	githubProtectionUpdateSuccessTemplateConstant           = "Updated branch protection for %s on %s"
	githubProtectionUpdateFailureTemplateConstant           = "Failed to update branch protection for %s on %s (exit code %d%s)"
	githubProtectionUpdateExecutionFailureTemplateConstant  = "Unable to update branch protection for %s on %s: %s"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) shouldLogStartMessage(command ShellCommand) bool {
	if command.Name != CommandGitHub {
		return true
	}
	if formatter.isGitHubRepoViewCommand(command.Details.Arguments) {
		return false
	}
	return true
}

func (formatter CommandMessageFormatter) isGitHubRepoViewCommand(arguments []string) bool {
	if len(arguments) < githubRepoViewIdentificationArgumentCountConstant {
		return false
	}
	primaryArgument := strings.TrimSpace(arguments[0])
	secondaryArgument := strings.TrimSpace(arguments[1])
	return primaryArgument == githubRepoSubcommandNameConstant && secondaryArgument == githubRepoViewSubcommandNameConstant
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	switch command.Name {
	case CommandGit:
		return formatter.describeGitMessage(command, result, failure, stage)
	case CommandGitHub:
		return formatter.describeGitHubMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	switch command.Details.Arguments[0] {
	case gitFetchSubcommandNameConstant:
		return formatter.describeGitFetchMessage(command, result, failure, stage)
	case gitPushSubcommandNameConstant:
		return formatter.describeGitPushMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitFetchMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	remoteName, references := formatter.extractRemoteAndReferences(command.Details.Arguments[1:])
	workingDirectory := formatter.describeWorkingDirectory(command)

	if len(remoteName) == 0 {
		remoteName = gitFetchAllRemotesLabelConstant
	}

	if len(references) == 0 {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitFetchWithoutRefsStartTemplateConstant, remoteName, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitFetchWithoutRefsSuccessTemplateConstant, remoteName, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(gitFetchWithoutRefsFailureTemplateConstant, remoteName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		default:
			return fmt.Sprintf(gitFetchWithoutRefsExecutionFailureTemplateConstant, remoteName, workingDirectory, formatter.describeFailure(failure))
		}
	}

	joinedReferences := strings.Join(references, commandArgumentsJoinSeparatorConstant)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitFetchStartTemplateConstant, joinedReferences, remoteName, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitFetchSuccessTemplateConstant, joinedReferences, remoteName, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitFetchFailureTemplateConstant, joinedReferences, remoteName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(gitFetchExecutionFailureTemplateConstant, joinedReferences, remoteName, workingDirectory, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) describeGitPushMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	remoteName, references := formatter.extractRemoteAndReferences(command.Details.Arguments[1:])
	workingDirectory := formatter.describeWorkingDirectory(command)
	pushTarget := formatter.ensureValue(remoteName)
	pushedReferences := formatter.ensureValue(strings.Join(references, commandArgumentsJoinSeparatorConstant))

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitPushStartTemplateConstant, pushedReferences, pushTarget, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitPushSuccessTemplateConstant, pushedReferences, pushTarget, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitPushFailureTemplateConstant, pushedReferences, pushTarget, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(gitPushExecutionFailureTemplateConstant, pushedReferences, pushTarget, workingDirectory, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) describeGitHubMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	switch arguments[0] {
	case githubRepoSubcommandNameConstant:
		if formatter.isGitHubRepoViewCommand(arguments) {
			return formatter.describeGitHubRepoViewMessage(command, result, failure, stage)
		}
	case githubPullRequestSubcommandNameConstant:
		return formatter.describeGitHubPullRequestMessage(command, result, failure, stage)
	case githubAPICommandNameConstant:
		return formatter.describeGitHubAPIMessage(command, result, failure, stage)
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitHubRepoViewMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	repositoryLabel := formatter.ensureValue(formatter.extractFirstNonFlagArgument(command.Details.Arguments[2:]))
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(githubRepoViewStartTemplateConstant, repositoryLabel)
	case messageStageSuccess:
		return fmt.Sprintf(githubRepoViewSuccessTemplateConstant, repositoryLabel)
	case messageStageFailure:
		return fmt.Sprintf(githubRepoViewFailureTemplateConstant, repositoryLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(githubRepoViewExecutionFailureTemplateConstant, repositoryLabel, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) describeGitHubPullRequestMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) < githubRepoViewIdentificationArgumentCountConstant {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	repositoryLabel := formatter.resolveRepositoryLabel(arguments)

	switch arguments[1] {
	case githubPullRequestViewSubcommandNameConstant:
		pullRequestNumber := formatter.ensureValue(formatter.extractFirstNonFlagArgument(arguments[2:]))
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(githubPullRequestViewStartTemplateConstant, pullRequestNumber, repositoryLabel)
		case messageStageSuccess:
			return fmt.Sprintf(githubPullRequestViewSuccessTemplateConstant, pullRequestNumber, repositoryLabel)
		case messageStageFailure:
			return fmt.Sprintf(githubPullRequestViewFailureTemplateConstant, pullRequestNumber, repositoryLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		default:
			return fmt.Sprintf(githubPullRequestViewExecutionFailureTemplateConstant, pullRequestNumber, repositoryLabel, formatter.describeFailure(failure))
		}
	case githubPullRequestCreateSubcommandNameConstant:
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(githubPullRequestCreateStartTemplateConstant, repositoryLabel)
		case messageStageSuccess:
			return fmt.Sprintf(githubPullRequestCreateSuccessTemplateConstant, repositoryLabel)
		case messageStageFailure:
			return fmt.Sprintf(githubPullRequestCreateFailureTemplateConstant, repositoryLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		default:
			return fmt.Sprintf(githubPullRequestCreateExecutionFailureTemplateConstant, repositoryLabel, formatter.describeFailure(failure))
		}
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitHubAPIMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	endpoint := formatter.extractFirstNonFlagArgument(arguments[1:])
	if len(endpoint) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	if strings.Contains(endpoint, githubBranchesEndpointSubstringConstant) && strings.HasSuffix(endpoint, githubProtectionEndpointSuffixConstant) {
		repositoryLabel, branchLabel := formatter.extractRepositoryAndBranchFromProtectionEndpoint(endpoint)
		if formatter.apiMethod(arguments) == githubProtectionUpdateMethodConstant {
			switch stage {
			case messageStageStart:
				return fmt.Sprintf(githubProtectionUpdateStartTemplateConstant, branchLabel, repositoryLabel)
			case messageStageSuccess:
				return fmt.Sprintf(githubProtectionUpdateSuccessTemplateConstant, branchLabel, repositoryLabel)
			case messageStageFailure:
				return fmt.Sprintf(githubProtectionUpdateFailureTemplateConstant, branchLabel, repositoryLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
			default:
				return fmt.Sprintf(githubProtectionUpdateExecutionFailureTemplateConstant, branchLabel, repositoryLabel, formatter.describeFailure(failure))
			}
		}
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(githubProtectionReadStartTemplateConstant, branchLabel, repositoryLabel)
		case messageStageSuccess:
			return fmt.Sprintf(githubProtectionReadSuccessTemplateConstant, branchLabel, repositoryLabel)
		case messageStageFailure:
			return fmt.Sprintf(githubProtectionReadFailureTemplateConstant, branchLabel, repositoryLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		default:
			return fmt.Sprintf(githubProtectionReadExecutionFailureTemplateConstant, branchLabel, repositoryLabel, formatter.describeFailure(failure))
		}
	}

	if strings.Contains(endpoint, githubWorkflowRunsEndpointSubstringConstant) {
		repositoryLabel := formatter.extractRepositoryFromEndpoint(endpoint)
		templates := [4]string{
			githubWorkflowRunsStartTemplateConstant,
			githubWorkflowRunsSuccessTemplateConstant,
			githubWorkflowRunsFailureTemplateConstant,
			githubWorkflowRunsExecutionFailureTemplateConstant,
		}
		if strings.HasSuffix(endpoint, githubWorkflowJobsEndpointSuffixConstant) {
			templates = [4]string{
				githubWorkflowJobsStartTemplateConstant,
				githubWorkflowJobsSuccessTemplateConstant,
				githubWorkflowJobsFailureTemplateConstant,
				githubWorkflowJobsExecutionFailureTemplateConstant,
			}
		}
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(templates[0], repositoryLabel)
		case messageStageSuccess:
			return fmt.Sprintf(templates[1], repositoryLabel)
		case messageStageFailure:
			return fmt.Sprintf(templates[2], repositoryLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		default:
			return fmt.Sprintf(templates[3], repositoryLabel, formatter.describeFailure(failure))
		}
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel = fmt.Sprintf("%s %s", commandLabel, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	workingDirectorySuffix := formatter.formatWorkingDirectorySuffix(command)
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, workingDirectorySuffix)
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return "current directory"
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmedValue := strings.TrimSpace(value)
	if len(trimmedValue) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmedValue
}

func (formatter CommandMessageFormatter) resolveRepositoryLabel(arguments []string) string {
	repositoryFlagValue := findFlagValue(arguments, githubRepoFlagConstant)
	if len(repositoryFlagValue) > 0 {
		return repositoryFlagValue
	}
	return githubCurrentRepositoryLabelConstant
}

func (formatter CommandMessageFormatter) apiMethod(arguments []string) string {
	return findFlagValue(arguments, githubMethodFlagConstant)
}

func (formatter CommandMessageFormatter) extractRemoteAndReferences(arguments []string) (string, []string) {
	remoteName := emptyStringConstant
	references := []string{}
	for _, argument := range arguments {
		trimmedArgument := strings.TrimSpace(argument)
		if len(trimmedArgument) == 0 || strings.HasPrefix(trimmedArgument, "-") {
			continue
		}
		if len(remoteName) == 0 {
			remoteName = trimmedArgument
			continue
		}
		references = append(references, trimmedArgument)
	}
	return remoteName, references
}

func (formatter CommandMessageFormatter) extractFirstNonFlagArgument(arguments []string) string {
	skipNext := false
	for _, argument := range arguments {
		trimmedArgument := strings.TrimSpace(argument)
		if skipNext {
			skipNext = false
			continue
		}
		if strings.HasPrefix(trimmedArgument, "-") {
			skipNext = true
			continue
		}
		if len(trimmedArgument) > 0 {
			return trimmedArgument
		}
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) extractRepositoryFromEndpoint(endpoint string) string {
	trimmedEndpoint := strings.TrimPrefix(strings.TrimSpace(endpoint), githubRepositoriesEndpointPrefixConstant)
	endpointSegments := strings.Split(trimmedEndpoint, "/")
	if len(endpointSegments) < 2 {
		return fallbackUnknownValueLabelConstant
	}
	return strings.Join(endpointSegments[:2], "/")
}

func (formatter CommandMessageFormatter) extractRepositoryAndBranchFromProtectionEndpoint(endpoint string) (string, string) {
	repositoryLabel := formatter.extractRepositoryFromEndpoint(endpoint)
	branchSectionIndex := strings.Index(endpoint, githubBranchesEndpointSubstringConstant)
	if branchSectionIndex < 0 {
		return repositoryLabel, fallbackUnknownValueLabelConstant
	}
	branchSection := endpoint[branchSectionIndex+len(githubBranchesEndpointSubstringConstant):]
	branchName := strings.TrimSuffix(branchSection, githubProtectionEndpointSuffixConstant)
	if len(branchName) == 0 {
		return repositoryLabel, fallbackUnknownValueLabelConstant
	}
	return repositoryLabel, branchName
}

func findFlagValue(arguments []string, flag string) string {
	for argumentIndex, argument := range arguments {
		if strings.TrimSpace(argument) != flag {
			continue
		}
		if argumentIndex+1 < len(arguments) {
			return strings.TrimSpace(arguments[argumentIndex+1])
		}
	}
	return emptyStringConstant
}
