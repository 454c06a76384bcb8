// Package distribute pushes a local branch to many repositories and opens a
// pull request in each, isolating failures so one broken target does not stop
// the rest.
package distribute
