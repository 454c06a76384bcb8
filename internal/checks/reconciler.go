package checks

import (
	"sort"

	"github.com/temirov/gh_scripts/internal/githubcli"
)

// CollectJobNames unions job names across workflow runs into a sorted,
// deduplicated slice. Same-named jobs from different runs collapse to a single
// entry because required checks are keyed by context.
func CollectJobNames(jobsByRun ...[]githubcli.WorkflowJob) []string {
	nameSet := make(map[string]struct{})
	for _, workflowJobs := range jobsByRun {
		for _, workflowJob := range workflowJobs {
			if len(workflowJob.Name) == 0 {
				continue
			}
			nameSet[workflowJob.Name] = struct{}{}
		}
	}

	jobNames := make([]string, 0, len(nameSet))
	for jobName := range nameSet {
		jobNames = append(jobNames, jobName)
	}
	sort.Strings(jobNames)

	return jobNames
}

// ReconcileRequiredChecks merges the current required checks with the checks
// derived from observed job names. Checks owned by the CI application are
// replaced wholesale by the job-derived set; checks owned by any other
// application, or reported without an owning application, are preserved unless
// a job-derived check claims the same context. The result is sorted by context
// so repeated reconciliations are deterministic.
func ReconcileRequiredChecks(currentChecks []githubcli.RequiredCheck, jobNames []string, ciApplicationID int64) []githubcli.RequiredCheck {
	mergedChecks := make(map[string]githubcli.RequiredCheck)

	for _, currentCheck := range currentChecks {
		if currentCheck.AppID != nil && *currentCheck.AppID == ciApplicationID {
			continue
		}
		mergedChecks[currentCheck.Context] = currentCheck
	}

	for _, jobName := range jobNames {
		applicationIdentifier := ciApplicationID
		mergedChecks[jobName] = githubcli.RequiredCheck{Context: jobName, AppID: &applicationIdentifier}
	}

	contexts := make([]string, 0, len(mergedChecks))
	for checkContext := range mergedChecks {
		contexts = append(contexts, checkContext)
	}
	sort.Strings(contexts)

	reconciledChecks := make([]githubcli.RequiredCheck, 0, len(contexts))
	for _, checkContext := range contexts {
		reconciledChecks = append(reconciledChecks, mergedChecks[checkContext])
	}

	return reconciledChecks
}
