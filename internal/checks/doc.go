// Package checks synchronizes branch protection required status checks with
// the jobs produced by a pull request's workflow runs.
//
// The reconciler replaces every required check owned by the configured CI
// application with the job names observed on the pull request's commit while
// preserving checks contributed by other integrations verbatim.
package checks
