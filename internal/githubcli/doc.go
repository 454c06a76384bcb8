// Package githubcli wraps the GitHub CLI for gh_scripts commands.
//
// It layers typed request and response structures for gh subcommands and the
// REST endpoints reached through gh api, classifies API failures into
// actionable error kinds, and integrates with execshell so interactions with
// GitHub can be mocked during testing.
package githubcli
