package phpstan_test

import (
	"bytes"
	"io/fs"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/gh_scripts/internal/phpstan"
)

const testConfigurationPathConstant = "/project/phpstan.neon"

type fakeFileInfo struct {
	name      string
	directory bool
	mode      fs.FileMode
}

func (info fakeFileInfo) Name() string       { return info.name }
func (info fakeFileInfo) Size() int64        { return 0 }
func (info fakeFileInfo) Mode() fs.FileMode  { return info.mode }
func (info fakeFileInfo) ModTime() time.Time { return time.Time{} }
func (info fakeFileInfo) IsDir() bool        { return info.directory }
func (info fakeFileInfo) Sys() any           { return nil }

type fakeFileSystem struct {
	files       map[string]string
	directories map[string]struct{}
	writes      map[string]string
}

func newFakeFileSystem() *fakeFileSystem {
	return &fakeFileSystem{
		files:       map[string]string{},
		directories: map[string]struct{}{},
		writes:      map[string]string{},
	}
}

func (fileSystem *fakeFileSystem) ReadFile(name string) ([]byte, error) {
	content, exists := fileSystem.files[name]
	if !exists {
		return nil, fs.ErrNotExist
	}
	return []byte(content), nil
}

func (fileSystem *fakeFileSystem) WriteFile(name string, data []byte, _ fs.FileMode) error {
	fileSystem.writes[name] = string(data)
	fileSystem.files[name] = string(data)
	return nil
}

func (fileSystem *fakeFileSystem) Stat(name string) (fs.FileInfo, error) {
	if _, isDirectory := fileSystem.directories[name]; isDirectory {
		return fakeFileInfo{name: name, directory: true, mode: fs.ModeDir | 0o755}, nil
	}
	if _, isFile := fileSystem.files[name]; isFile {
		return fakeFileInfo{name: name, mode: 0o644}, nil
	}
	return nil, fs.ErrNotExist
}

func newRewriteService(testInstance *testing.T, fileSystem phpstan.FileSystem, output *bytes.Buffer) *phpstan.Service {
	service, creationError := phpstan.NewService(phpstan.ServiceDependencies{
		Logger:     zap.NewNop(),
		FileSystem: fileSystem,
		Output:     output,
	})
	require.NoError(testInstance, creationError)
	return service
}

func TestNewServiceValidation(testInstance *testing.T) {
	service, creationError := phpstan.NewService(phpstan.ServiceDependencies{})
	require.Error(testInstance, creationError)
	require.ErrorIs(testInstance, creationError, phpstan.ErrFileSystemNotConfigured)
	require.Nil(testInstance, service)
}

func TestRewriteKeepsOnlyExistingDirectories(testInstance *testing.T) {
	fileSystem := newFakeFileSystem()
	fileSystem.files[testConfigurationPathConstant] = neonFixtureConstant
	fileSystem.directories["/project/src"] = struct{}{}
	fileSystem.directories["/project/tests"] = struct{}{}

	output := &bytes.Buffer{}
	service := newRewriteService(testInstance, fileSystem, output)

	rewriteResult, rewriteError := service.Rewrite(phpstan.RewriteOptions{
		ConfigurationFile:  testConfigurationPathConstant,
		ScanDirectories:    []string{"src", "tests", "legacy"},
		ExcludeDirectories: []string{"legacy/vendor"},
	})
	require.NoError(testInstance, rewriteError)
	require.True(testInstance, rewriteResult.Changed)
	require.Equal(testInstance, []string{"src", "tests"}, rewriteResult.ScanDirectories)
	require.Empty(testInstance, rewriteResult.ExcludeDirectories)

	rewrittenContent := fileSystem.writes[testConfigurationPathConstant]
	require.Contains(testInstance, rewrittenContent, "\t\t- tests\n")
	require.NotContains(testInstance, rewrittenContent, "legacy")
	require.Contains(testInstance, output.String(), "Rewrote path sections")
}

func TestRewriteDryRunWritesDiffWithoutTouchingDisk(testInstance *testing.T) {
	fileSystem := newFakeFileSystem()
	fileSystem.files[testConfigurationPathConstant] = neonFixtureConstant
	fileSystem.directories["/project/src"] = struct{}{}
	fileSystem.directories["/project/tests"] = struct{}{}

	output := &bytes.Buffer{}
	service := newRewriteService(testInstance, fileSystem, output)

	rewriteResult, rewriteError := service.Rewrite(phpstan.RewriteOptions{
		ConfigurationFile: testConfigurationPathConstant,
		ScanDirectories:   []string{"src", "tests"},
		DryRun:            true,
	})
	require.NoError(testInstance, rewriteError)
	require.False(testInstance, rewriteResult.Changed)
	require.NotEmpty(testInstance, rewriteResult.Diff)
	require.Empty(testInstance, fileSystem.writes)
	require.Contains(testInstance, output.String(), "+\t\t- tests")
}

func TestRewriteReportsUpToDateWithoutWriting(testInstance *testing.T) {
	fileSystem := newFakeFileSystem()
	fileSystem.files[testConfigurationPathConstant] = "parameters:\n\tpaths:\n\t\t- src\n"
	fileSystem.directories["/project/src"] = struct{}{}

	output := &bytes.Buffer{}
	service := newRewriteService(testInstance, fileSystem, output)

	rewriteResult, rewriteError := service.Rewrite(phpstan.RewriteOptions{
		ConfigurationFile: testConfigurationPathConstant,
		ScanDirectories:   []string{"src"},
	})
	require.NoError(testInstance, rewriteError)
	require.False(testInstance, rewriteResult.Changed)
	require.Empty(testInstance, fileSystem.writes)
	require.Contains(testInstance, output.String(), "already matches")
}

func TestRewriteFailsWithoutSurvivingScanDirectories(testInstance *testing.T) {
	fileSystem := newFakeFileSystem()
	fileSystem.files[testConfigurationPathConstant] = neonFixtureConstant

	service := newRewriteService(testInstance, fileSystem, &bytes.Buffer{})

	_, rewriteError := service.Rewrite(phpstan.RewriteOptions{
		ConfigurationFile: testConfigurationPathConstant,
		ScanDirectories:   []string{"missing"},
	})
	require.Error(testInstance, rewriteError)
	require.ErrorIs(testInstance, rewriteError, phpstan.ErrNoScanDirectories)
}

func TestRewriteFailsForMissingConfigurationFile(testInstance *testing.T) {
	service := newRewriteService(testInstance, newFakeFileSystem(), &bytes.Buffer{})

	_, rewriteError := service.Rewrite(phpstan.RewriteOptions{
		ConfigurationFile: testConfigurationPathConstant,
		ScanDirectories:   []string{"src"},
	})
	require.Error(testInstance, rewriteError)
	require.ErrorIs(testInstance, rewriteError, os.ErrNotExist)
}
