package phpstan

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/gh_scripts/internal/utils/flags"
	pathutils "github.com/temirov/gh_scripts/internal/utils/path"
)

const (
	commandUseConstant                    = "phpstan-paths"
	commandShortDescriptionConstant       = "Rewrite PHPStan path sections from existing directories"
	commandLongDescriptionConstant        = "phpstan-paths rewrites the parameters.paths and parameters.excludePaths blocks of a PHPStan NEON configuration so they list only directories present in the working tree."
	commandExecutionErrorTemplateConstant = "phpstan-paths failed: %w"
	unexpectedArgumentsMessageConstant    = "phpstan-paths does not accept positional arguments"
	flagConfigFileNameConstant            = "config-file"
	flagConfigFileDescriptionConstant     = "Path to the PHPStan NEON configuration file"
	flagScanNameConstant                  = "scan"
	flagScanDescriptionConstant           = "Candidate scan directory (repeatable)"
	flagExcludeNameConstant               = "exclude"
	flagExcludeDescriptionConstant        = "Candidate exclude directory (repeatable)"
	flagDryRunDescriptionConstant         = "Preview the configuration diff without rewriting the file"
)

var errUnexpectedArguments = errors.New(unexpectedArgumentsMessageConstant)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider returns the current phpstan configuration.
type ConfigurationProvider func() Configuration

// CommandBuilder assembles the Cobra command for NEON path rewriting.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	FileSystem            FileSystem
	Output                io.Writer
}

// Build constructs the phpstan-paths command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}

	command.Flags().String(flagConfigFileNameConstant, "", flagConfigFileDescriptionConstant)
	command.Flags().StringSlice(flagScanNameConstant, nil, flagScanDescriptionConstant)
	command.Flags().StringSlice(flagExcludeNameConstant, nil, flagExcludeDescriptionConstant)
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

	service, serviceError := NewService(ServiceDependencies{
		Logger:     builder.resolveLogger(),
		FileSystem: builder.resolveFileSystem(),
		Output:     builder.resolveOutput(),
	})
	if serviceError != nil {
		return serviceError
	}

	_, rewriteError := service.Rewrite(options)
	if rewriteError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, rewriteError)
	}

	return nil
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command) (RewriteOptions, error) {
	configuration := builder.resolveConfiguration()

	configFileValue, configFileError := command.Flags().GetString(flagConfigFileNameConstant)
	if configFileError != nil {
		return RewriteOptions{}, configFileError
	}
	configurationFile := strings.TrimSpace(configFileValue)
	if len(configurationFile) == 0 {
		configurationFile = configuration.Paths.ConfigurationFile
	}
	configurationFile = pathutils.NewHomeExpander().Expand(configurationFile)

	scanValues, scanFlagError := command.Flags().GetStringSlice(flagScanNameConstant)
	if scanFlagError != nil {
		return RewriteOptions{}, scanFlagError
	}
	if len(scanValues) == 0 {
		scanValues = configuration.Paths.ScanDirectories
	}

	excludeValues, excludeFlagError := command.Flags().GetStringSlice(flagExcludeNameConstant)
	if excludeFlagError != nil {
		return RewriteOptions{}, excludeFlagError
	}
	if len(excludeValues) == 0 {
		excludeValues = configuration.Paths.ExcludeDirectories
	}

	dryRunValue := configuration.Paths.DryRun
	if command.Flags().Changed(flags.DryRunFlagName) {
		flagDryRunValue, dryRunFlagError := command.Flags().GetBool(flags.DryRunFlagName)
		if dryRunFlagError != nil {
			return RewriteOptions{}, dryRunFlagError
		}
		dryRunValue = flagDryRunValue
	}

	rewriteOptions := RewriteOptions{
		ConfigurationFile:  configurationFile,
		ScanDirectories:    scanValues,
		ExcludeDirectories: excludeValues,
		DryRun:             dryRunValue,
	}

	return rewriteOptions, nil
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

func (builder *CommandBuilder) resolveFileSystem() FileSystem {
	if builder.FileSystem != nil {
		return builder.FileSystem
	}
	return OSFileSystem{}
}

func (builder *CommandBuilder) resolveOutput() io.Writer {
	if builder.Output != nil {
		return builder.Output
	}
	return os.Stdout
}
