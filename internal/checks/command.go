package checks

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
)

const (
	commandUseConstant                    = "checks-sync"
	commandShortDescriptionConstant       = "Synchronize required status checks with workflow jobs"
	commandLongDescriptionConstant        = "checks-sync updates a base branch's required status checks to match the jobs produced by a pull request's workflow runs, preserving checks owned by other integrations."
	commandExecutionErrorTemplateConstant = "checks-sync failed: %w"
	unexpectedArgumentsMessageConstant    = "checks-sync does not accept positional arguments"
	flagRepositoryNameConstant            = "repository"
	flagRepositoryDescriptionConstant     = "Target repository in owner/name form"
	flagPullRequestNameConstant           = "pr"
	flagPullRequestDescriptionConstant    = "Pull request number whose workflow jobs define the desired checks"
	flagCIApplicationNameConstant         = "ci-app-id"
	flagCIApplicationDescriptionConstant  = "Application id whose checks are replaced by observed job names"
	flagDryRunDescriptionConstant         = "Preview the protection diff without updating the branch"
)

var errUnexpectedArguments = errors.New(unexpectedArgumentsMessageConstant)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider returns the current checks configuration.
type ConfigurationProvider func() Configuration

// CommandBuilder assembles the Cobra command for required check synchronization.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	GitHub                GitHubOperations
	Output                io.Writer
}

// Build constructs the checks-sync command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}

	command.Flags().String(flagRepositoryNameConstant, "", flagRepositoryDescriptionConstant)
	command.Flags().Int(flagPullRequestNameConstant, 0, flagPullRequestDescriptionConstant)
	command.Flags().Int64(flagCIApplicationNameConstant, DefaultCIApplicationID, flagCIApplicationDescriptionConstant)
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
	gitHubOperations, operationsError := builder.resolveGitHubOperations(logger)
	if operationsError != nil {
		return operationsError
	}

	service, serviceError := NewService(ServiceDependencies{
		Logger: logger,
		GitHub: gitHubOperations,
		Output: builder.resolveOutput(),
	})
	if serviceError != nil {
		return serviceError
	}

	_, syncError := service.Sync(command.Context(), options)
	if syncError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, syncError)
	}

	return nil
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command) (SyncOptions, error) {
	configuration := builder.resolveConfiguration()

	repositoryFlagValue, repositoryFlagError := command.Flags().GetString(flagRepositoryNameConstant)
	if repositoryFlagError != nil {
		return SyncOptions{}, repositoryFlagError
	}
	repositoryValue := strings.TrimSpace(repositoryFlagValue)
	if len(repositoryValue) == 0 {
		repositoryValue = configuration.Sync.Repository
	}

	pullRequestValue, pullRequestFlagError := command.Flags().GetInt(flagPullRequestNameConstant)
	if pullRequestFlagError != nil {
		return SyncOptions{}, pullRequestFlagError
	}
	if pullRequestValue == 0 {
		pullRequestValue = configuration.Sync.PullRequestNumber
	}

	ciApplicationValue, ciApplicationFlagError := command.Flags().GetInt64(flagCIApplicationNameConstant)
	if ciApplicationFlagError != nil {
		return SyncOptions{}, ciApplicationFlagError
	}
	if !command.Flags().Changed(flagCIApplicationNameConstant) && configuration.Sync.CIApplicationID > 0 {
		ciApplicationValue = configuration.Sync.CIApplicationID
	}

	dryRunValue := configuration.Sync.DryRun
	if command.Flags().Changed(flags.DryRunFlagName) {
		flagDryRunValue, dryRunFlagError := command.Flags().GetBool(flags.DryRunFlagName)
		if dryRunFlagError != nil {
			return SyncOptions{}, dryRunFlagError
		}
		dryRunValue = flagDryRunValue
	}

	syncOptions := SyncOptions{
		Repository:        repositoryValue,
		PullRequestNumber: pullRequestValue,
		CIApplicationID:   ciApplicationValue,
		DryRun:            dryRunValue,
	}

	return syncOptions, nil
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

func (builder *CommandBuilder) resolveGitHubOperations(logger *zap.Logger) (GitHubOperations, error) {
	if builder.GitHub != nil {
		return builder.GitHub, nil
	}

	commandRunner := execshell.NewOSCommandRunner()
	shellExecutor, executorError := execshell.NewShellExecutor(logger, commandRunner, ui.NewConsoleCommandEventLogger(logger))
	if executorError != nil {
		return nil, executorError
	}

	return githubcli.NewClient(shellExecutor)
}

func (builder *CommandBuilder) resolveOutput() io.Writer {
	if builder.Output != nil {
		return builder.Output
	}
	return os.Stdout
}
