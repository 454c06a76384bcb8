package checks_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gh_scripts/internal/checks"
	"github.com/temirov/gh_scripts/internal/githubcli"
)

const (
	testCIApplicationIdentifierConstant int64 = 15368
	testForeignApplicationConstant      int64 = 5
	testStaleApplicationConstant        int64 = 999
	testLintJobNameConstant                   = "lint"
	testBuildJobNameConstant                  = "build"
	testCLABotCheckNameConstant               = "cla-bot"
)

func applicationIdentifier(value int64) *int64 {
	return &value
}

func TestReconcileRequiredChecksReplacesCIOwnedChecks(testInstance *testing.T) {
	currentChecks := []githubcli.RequiredCheck{
		{Context: testLintJobNameConstant, AppID: applicationIdentifier(testStaleApplicationConstant)},
		{Context: testCLABotCheckNameConstant, AppID: applicationIdentifier(testForeignApplicationConstant)},
	}
	jobNames := []string{testLintJobNameConstant, testBuildJobNameConstant}

	reconciledChecks := checks.ReconcileRequiredChecks(currentChecks, jobNames, testCIApplicationIdentifierConstant)

	require.Equal(testInstance, []githubcli.RequiredCheck{
		{Context: testBuildJobNameConstant, AppID: applicationIdentifier(testCIApplicationIdentifierConstant)},
		{Context: testCLABotCheckNameConstant, AppID: applicationIdentifier(testForeignApplicationConstant)},
		{Context: testLintJobNameConstant, AppID: applicationIdentifier(testCIApplicationIdentifierConstant)},
	}, reconciledChecks)
}

func TestReconcileRequiredChecksPreservesForeignChecks(testInstance *testing.T) {
	currentChecks := []githubcli.RequiredCheck{
		{Context: testCLABotCheckNameConstant, AppID: applicationIdentifier(testForeignApplicationConstant)},
		{Context: "security-scan", AppID: nil},
	}

	reconciledChecks := checks.ReconcileRequiredChecks(currentChecks, []string{testBuildJobNameConstant}, testCIApplicationIdentifierConstant)

	require.Equal(testInstance, []githubcli.RequiredCheck{
		{Context: testBuildJobNameConstant, AppID: applicationIdentifier(testCIApplicationIdentifierConstant)},
		{Context: testCLABotCheckNameConstant, AppID: applicationIdentifier(testForeignApplicationConstant)},
		{Context: "security-scan", AppID: nil},
	}, reconciledChecks)
}

func TestReconcileRequiredChecksDropsStaleCIChecks(testInstance *testing.T) {
	currentChecks := []githubcli.RequiredCheck{
		{Context: "removed-job", AppID: applicationIdentifier(testCIApplicationIdentifierConstant)},
		{Context: testLintJobNameConstant, AppID: applicationIdentifier(testCIApplicationIdentifierConstant)},
	}

	reconciledChecks := checks.ReconcileRequiredChecks(currentChecks, []string{testLintJobNameConstant}, testCIApplicationIdentifierConstant)

	require.Equal(testInstance, []githubcli.RequiredCheck{
		{Context: testLintJobNameConstant, AppID: applicationIdentifier(testCIApplicationIdentifierConstant)},
	}, reconciledChecks)
}

func TestReconcileRequiredChecksIsIdempotent(testInstance *testing.T) {
	jobNames := []string{testLintJobNameConstant, testBuildJobNameConstant}
	firstPass := checks.ReconcileRequiredChecks(nil, jobNames, testCIApplicationIdentifierConstant)
	secondPass := checks.ReconcileRequiredChecks(firstPass, jobNames, testCIApplicationIdentifierConstant)

	require.Equal(testInstance, firstPass, secondPass)
}

func TestCollectJobNamesDeduplicatesAcrossRuns(testInstance *testing.T) {
	firstRunJobs := []githubcli.WorkflowJob{
		{Identifier: 1, Name: testLintJobNameConstant},
		{Identifier: 2, Name: testBuildJobNameConstant},
	}
	secondRunJobs := []githubcli.WorkflowJob{
		{Identifier: 3, Name: testLintJobNameConstant},
		{Identifier: 4, Name: ""},
	}

	jobNames := checks.CollectJobNames(firstRunJobs, secondRunJobs)

	require.Equal(testInstance, []string{testBuildJobNameConstant, testLintJobNameConstant}, jobNames)
}
