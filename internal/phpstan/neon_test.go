package phpstan_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gh_scripts/internal/phpstan"
)

const neonFixtureConstant = "parameters:\n" +
	"\tlevel: 8\n" +
	"\tpaths:\n" +
	"\t\t- src\n" +
	"\t\t- legacy\n" +
	"\texcludePaths:\n" +
	"\t\t- legacy/vendor\n" +
	"\treportUnmatchedIgnoredErrors: false\n"

func TestRewritePathSectionsReplacesBothSections(testInstance *testing.T) {
	rewritten, rewriteError := phpstan.RewritePathSections(neonFixtureConstant, []string{"src", "tests"}, []string{"tests/fixtures"})
	require.NoError(testInstance, rewriteError)

	expected := "parameters:\n" +
		"\tlevel: 8\n" +
		"\tpaths:\n" +
		"\t\t- src\n" +
		"\t\t- tests\n" +
		"\texcludePaths:\n" +
		"\t\t- tests/fixtures\n" +
		"\treportUnmatchedIgnoredErrors: false\n"
	require.Equal(testInstance, expected, rewritten)
}

func TestRewritePathSectionsRemovesEmptyExcludeSection(testInstance *testing.T) {
	rewritten, rewriteError := phpstan.RewritePathSections(neonFixtureConstant, []string{"src"}, nil)
	require.NoError(testInstance, rewriteError)

	expected := "parameters:\n" +
		"\tlevel: 8\n" +
		"\tpaths:\n" +
		"\t\t- src\n" +
		"\treportUnmatchedIgnoredErrors: false\n"
	require.Equal(testInstance, expected, rewritten)
}

func TestRewritePathSectionsInsertsMissingExcludeSection(testInstance *testing.T) {
	fixtureWithoutExcludes := "parameters:\n" +
		"\tpaths:\n" +
		"\t\t- src\n" +
		"\tlevel: 8\n"

	rewritten, rewriteError := phpstan.RewritePathSections(fixtureWithoutExcludes, []string{"src"}, []string{"src/generated"})
	require.NoError(testInstance, rewriteError)

	expected := "parameters:\n" +
		"\tpaths:\n" +
		"\t\t- src\n" +
		"\texcludePaths:\n" +
		"\t\t- src/generated\n" +
		"\tlevel: 8\n"
	require.Equal(testInstance, expected, rewritten)
}

func TestRewritePathSectionsPreservesSpaceIndentation(testInstance *testing.T) {
	spaceIndentedFixture := "parameters:\n" +
		"    paths:\n" +
		"        - src\n"

	rewritten, rewriteError := phpstan.RewritePathSections(spaceIndentedFixture, []string{"app", "src"}, nil)
	require.NoError(testInstance, rewriteError)

	expected := "parameters:\n" +
		"    paths:\n" +
		"        - app\n" +
		"        - src\n"
	require.Equal(testInstance, expected, rewritten)
}

func TestRewritePathSectionsRequiresPathsSection(testInstance *testing.T) {
	_, rewriteError := phpstan.RewritePathSections("parameters:\n\tlevel: 8\n", []string{"src"}, nil)
	require.Error(testInstance, rewriteError)
	require.ErrorIs(testInstance, rewriteError, phpstan.ErrPathsSectionMissing)
}
