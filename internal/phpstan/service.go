package phpstan

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"go.uber.org/zap"
)

const (
	fileSystemNotConfiguredMessageConstant   = "file system not configured"
	noScanDirectoriesMessageConstant         = "no configured scan directories exist on disk"
	configurationFileRequiredMessageConstant = "configuration file is required"
	configurationReadErrorTemplateConstant   = "reading %s: %w"
	configurationWriteErrorTemplateConstant  = "writing %s: %w"
	upToDateMessageTemplateConstant          = "%s already matches the existing directories.\n"
	rewrittenMessageTemplateConstant         = "Rewrote path sections in %s.\n"
	diffContextLinesConstant                 = 3
	fallbackFileModeConstant                 = fs.FileMode(0o644)
	configurationFileLogFieldConstant        = "configuration_file"
	scanDirectoryCountLogFieldConstant       = "scan_directories"
	excludeDirectoryCountLogFieldConstant    = "exclude_directories"
	skippedDirectoryLogFieldConstant         = "directory"
	validatedDirectoriesDebugMessageConstant = "validated candidate directories"
	skippedDirectoryDebugMessageConstant     = "skipping missing directory"
)

// ErrFileSystemNotConfigured indicates the service was constructed without a file system.
var ErrFileSystemNotConfigured = errors.New(fileSystemNotConfiguredMessageConstant)

// ErrNoScanDirectories indicates none of the candidate scan directories exist.
var ErrNoScanDirectories = errors.New(noScanDirectoriesMessageConstant)

// FileSystem abstracts the disk operations used during rewriting.
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, mode fs.FileMode) error
	Stat(name string) (fs.FileInfo, error)
}

// OSFileSystem implements FileSystem against the host disk.
type OSFileSystem struct{}

// ReadFile reads a file from the host disk.
func (OSFileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// WriteFile writes a file to the host disk.
func (OSFileSystem) WriteFile(name string, data []byte, mode fs.FileMode) error {
	return os.WriteFile(name, data, mode)
}

// Stat describes a host disk entry.
func (OSFileSystem) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

// ServiceDependencies carries collaborators for the rewriting service.
type ServiceDependencies struct {
	Logger     *zap.Logger
	FileSystem FileSystem
	Output     io.Writer
}

// Service rewrites NEON path sections from validated directory candidates.
type Service struct {
	logger     *zap.Logger
	fileSystem FileSystem
	output     io.Writer
}

// NewService validates dependencies and constructs a Service.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.FileSystem == nil {
		return nil, ErrFileSystemNotConfigured
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	output := dependencies.Output
	if output == nil {
		output = io.Discard
	}

	return &Service{logger: logger, fileSystem: dependencies.FileSystem, output: output}, nil
}

// RewriteOptions configures a single rewrite run.
type RewriteOptions struct {
	ConfigurationFile  string
	ScanDirectories    []string
	ExcludeDirectories []string
	DryRun             bool
}

// RewriteResult summarizes the outcome of a rewrite run.
type RewriteResult struct {
	ScanDirectories    []string
	ExcludeDirectories []string
	Diff               string
	Changed            bool
}

// Rewrite validates the candidate directories against the disk, splices the
// surviving entries into the configuration's path sections, and writes the
// result back atomically. In dry run mode the unified diff is written to the
// configured output instead of rewriting the file.
func (service *Service) Rewrite(options RewriteOptions) (RewriteResult, error) {
	configurationFile := strings.TrimSpace(options.ConfigurationFile)
	if len(configurationFile) == 0 {
		return RewriteResult{}, errors.New(configurationFileRequiredMessageConstant)
	}

	currentContent, readError := service.fileSystem.ReadFile(configurationFile)
	if readError != nil {
		return RewriteResult{}, fmt.Errorf(configurationReadErrorTemplateConstant, configurationFile, readError)
	}

	baseDirectory := filepath.Dir(configurationFile)
	scanDirectories := service.existingDirectories(baseDirectory, options.ScanDirectories)
	if len(scanDirectories) == 0 {
		return RewriteResult{}, ErrNoScanDirectories
	}
	excludeDirectories := service.existingDirectories(baseDirectory, options.ExcludeDirectories)

	service.logger.Debug(validatedDirectoriesDebugMessageConstant,
		zap.String(configurationFileLogFieldConstant, configurationFile),
		zap.Int(scanDirectoryCountLogFieldConstant, len(scanDirectories)),
		zap.Int(excludeDirectoryCountLogFieldConstant, len(excludeDirectories)),
	)

	rewrittenContent, rewriteError := RewritePathSections(string(currentContent), scanDirectories, excludeDirectories)
	if rewriteError != nil {
		return RewriteResult{}, rewriteError
	}

	rewriteResult := RewriteResult{ScanDirectories: scanDirectories, ExcludeDirectories: excludeDirectories}

	if rewrittenContent == string(currentContent) {
		fmt.Fprintf(service.output, upToDateMessageTemplateConstant, configurationFile)
		return rewriteResult, nil
	}

	contentDiff, diffError := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(currentContent)),
		B:        difflib.SplitLines(rewrittenContent),
		FromFile: configurationFile,
		ToFile:   configurationFile,
		Context:  diffContextLinesConstant,
	})
	if diffError != nil {
		return RewriteResult{}, diffError
	}
	rewriteResult.Diff = contentDiff

	if options.DryRun {
		fmt.Fprint(service.output, contentDiff)
		return rewriteResult, nil
	}

	writeError := service.fileSystem.WriteFile(configurationFile, []byte(rewrittenContent), service.configurationFileMode(configurationFile))
	if writeError != nil {
		return RewriteResult{}, fmt.Errorf(configurationWriteErrorTemplateConstant, configurationFile, writeError)
	}

	rewriteResult.Changed = true
	fmt.Fprintf(service.output, rewrittenMessageTemplateConstant, configurationFile)
	return rewriteResult, nil
}

func (service *Service) existingDirectories(baseDirectory string, candidateDirectories []string) []string {
	existing := make([]string, 0, len(candidateDirectories))
	seen := make(map[string]struct{})

	for _, candidateDirectory := range candidateDirectories {
		trimmedDirectory := strings.TrimSpace(candidateDirectory)
		if len(trimmedDirectory) == 0 {
			continue
		}
		if _, alreadySeen := seen[trimmedDirectory]; alreadySeen {
			continue
		}
		seen[trimmedDirectory] = struct{}{}

		resolvedDirectory := trimmedDirectory
		if !filepath.IsAbs(resolvedDirectory) {
			resolvedDirectory = filepath.Join(baseDirectory, resolvedDirectory)
		}

		directoryInfo, statError := service.fileSystem.Stat(resolvedDirectory)
		if statError != nil || !directoryInfo.IsDir() {
			service.logger.Debug(skippedDirectoryDebugMessageConstant,
				zap.String(skippedDirectoryLogFieldConstant, trimmedDirectory),
			)
			continue
		}

		existing = append(existing, trimmedDirectory)
	}

	sort.Strings(existing)
	return existing
}

func (service *Service) configurationFileMode(configurationFile string) fs.FileMode {
	fileInfo, statError := service.fileSystem.Stat(configurationFile)
	if statError != nil {
		return fallbackFileModeConstant
	}
	return fileInfo.Mode().Perm()
}
