package distribute

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/gh_scripts/internal/execshell"
	"github.com/temirov/gh_scripts/internal/githubcli"
	"github.com/temirov/gh_scripts/internal/ui"
	"github.com/temirov/gh_scripts/internal/utils/flags"
	pathutils "github.com/temirov/gh_scripts/internal/utils/path"
)

const (
	commandUseConstant                    = "pr-distribute"
	commandShortDescriptionConstant       = "Push a local branch to many repositories as pull requests"
	commandLongDescriptionConstant        = "pr-distribute pushes a local branch to each target repository and opens a pull request there, continuing past failing targets and reporting them at the end."
	commandExecutionErrorTemplateConstant = "pr-distribute failed: %w"
	unexpectedArgumentsMessageConstant    = "pr-distribute does not accept positional arguments"
	flagBranchNameConstant                = "branch"
	flagBranchDescriptionConstant         = "Local branch to push to every target repository"
	flagRepositoryNameConstant            = "repo"
	flagRepositoryDescriptionConstant     = "Target repository in owner/name form (repeatable)"
	flagTitleNameConstant                 = "title"
	flagTitleDescriptionConstant          = "Pull request title"
	flagBodyNameConstant                  = "body"
	flagBodyDescriptionConstant           = "Pull request body"
	flagBaseNameConstant                  = "base"
	flagBaseDescriptionConstant           = "Base branch override (defaults to each target's default branch)"
	flagDryRunDescriptionConstant         = "List the intended pushes and pull requests without running git or gh"
)

var errUnexpectedArguments = errors.New(unexpectedArgumentsMessageConstant)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider returns the current distribution configuration.
type ConfigurationProvider func() Configuration

// CommandBuilder assembles the Cobra command for branch distribution.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	Git                   GitExecutor
	GitHub                GitHubOperations
	Output                io.Writer
	WorkingDirectory      string
}

// Build constructs the pr-distribute command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}

	command.Flags().String(flagBranchNameConstant, "", flagBranchDescriptionConstant)
	command.Flags().StringSlice(flagRepositoryNameConstant, nil, flagRepositoryDescriptionConstant)
	command.Flags().String(flagTitleNameConstant, "", flagTitleDescriptionConstant)
	command.Flags().String(flagBodyNameConstant, "", flagBodyDescriptionConstant)
	command.Flags().String(flagBaseNameConstant, "", flagBaseDescriptionConstant)
	flags.AddToggleFlag(command.Flags(), nil, flags.DryRunFlagName, "", false, flagDryRunDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errUnexpectedArguments
	}

	options, optionsError := builder.parseOptions(command)
	if optionsError != nil {
		return optionsError
	}

	logger := builder.resolveLogger()
	gitExecutor, gitHubOperations, collaboratorsError := builder.resolveCollaborators(logger)
	if collaboratorsError != nil {
		return collaboratorsError
	}

	service, serviceError := NewService(ServiceDependencies{
		Logger: logger,
		Git:    gitExecutor,
		GitHub: gitHubOperations,
		Output: builder.resolveOutput(),
	})
	if serviceError != nil {
		return serviceError
	}

	_, distributionError := service.Distribute(command.Context(), options)
	if distributionError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, distributionError)
	}

	return nil
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command) (DistributeOptions, error) {
	configuration := builder.resolveConfiguration()

	branchValue, branchFlagError := command.Flags().GetString(flagBranchNameConstant)
	if branchFlagError != nil {
		return DistributeOptions{}, branchFlagError
	}
	branchName := strings.TrimSpace(branchValue)
	if len(branchName) == 0 {
		branchName = configuration.Distribute.BranchName
	}

	repositoryValues, repositoryFlagError := command.Flags().GetStringSlice(flagRepositoryNameConstant)
	if repositoryFlagError != nil {
		return DistributeOptions{}, repositoryFlagError
	}
	if len(repositoryValues) == 0 {
		repositoryValues = configuration.Distribute.Repositories
	}

	titleValue, titleFlagError := command.Flags().GetString(flagTitleNameConstant)
	if titleFlagError != nil {
		return DistributeOptions{}, titleFlagError
	}
	pullRequestTitle := strings.TrimSpace(titleValue)
	if len(pullRequestTitle) == 0 {
		pullRequestTitle = configuration.Distribute.PullRequestTitle
	}

	bodyValue, bodyFlagError := command.Flags().GetString(flagBodyNameConstant)
	if bodyFlagError != nil {
		return DistributeOptions{}, bodyFlagError
	}
	pullRequestBody := bodyValue
	if len(strings.TrimSpace(pullRequestBody)) == 0 {
		pullRequestBody = configuration.Distribute.PullRequestBody
	}

	baseValue, baseFlagError := command.Flags().GetString(flagBaseNameConstant)
	if baseFlagError != nil {
		return DistributeOptions{}, baseFlagError
	}
	baseBranch := strings.TrimSpace(baseValue)
	if len(baseBranch) == 0 {
		baseBranch = configuration.Distribute.BaseBranch
	}

	dryRunValue := configuration.Distribute.DryRun
	if command.Flags().Changed(flags.DryRunFlagName) {
		flagDryRunValue, dryRunFlagError := command.Flags().GetBool(flags.DryRunFlagName)
		if dryRunFlagError != nil {
			return DistributeOptions{}, dryRunFlagError
		}
		dryRunValue = flagDryRunValue
	}

	distributeOptions := DistributeOptions{
		BranchName:       branchName,
		Repositories:     repositoryValues,
		PullRequestTitle: pullRequestTitle,
		PullRequestBody:  pullRequestBody,
		BaseBranch:       baseBranch,
		WorkingDirectory: builder.resolveWorkingDirectory(configuration),
		DryRun:           dryRunValue,
	}

	return distributeOptions, nil
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}

	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

func (builder *CommandBuilder) resolveConfiguration() Configuration {
	if builder.ConfigurationProvider == nil {
		return DefaultConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolveCollaborators(logger *zap.Logger) (GitExecutor, GitHubOperations, error) {
	if builder.Git != nil && builder.GitHub != nil {
		return builder.Git, builder.GitHub, nil
	}

	commandRunner := execshell.NewOSCommandRunner()
	shellExecutor, executorError := execshell.NewShellExecutor(logger, commandRunner, ui.NewConsoleCommandEventLogger(logger))
	if executorError != nil {
		return nil, nil, executorError
	}

	gitExecutor := builder.Git
	if gitExecutor == nil {
		gitExecutor = shellExecutor
	}

	gitHubOperations := builder.GitHub
	if gitHubOperations == nil {
		gitHubClient, clientError := githubcli.NewClient(shellExecutor)
		if clientError != nil {
			return nil, nil, clientError
		}
		gitHubOperations = gitHubClient
	}

	return gitExecutor, gitHubOperations, nil
}

func (builder *CommandBuilder) resolveWorkingDirectory(configuration Configuration) string {
	workingDirectory := strings.TrimSpace(builder.WorkingDirectory)
	if len(workingDirectory) == 0 {
		workingDirectory = configuration.Distribute.WorkingDirectory
	}
	return pathutils.NewHomeExpander().Expand(workingDirectory)
}

func (builder *CommandBuilder) resolveOutput() io.Writer {
	if builder.Output != nil {
		return builder.Output
	}
	return os.Stdout
}
