// Package claude provides commit message generation through the Claude Code CLI.
package claude

import "context"

// ProcessResult captures everything observed from a single child process.
type ProcessResult struct {
	// Stdout is the full standard output of the process.
	Stdout string `json:"stdout"`

	// Stderr is the full standard error of the process.
	Stderr string `json:"stderr"`

	// ExitCode is the process exit status. It is forced to 1 when the
	// process could not be started.
	ExitCode int `json:"exit_code"`

	// SpawnError describes why the process could not be started.
	// Empty when the process ran (regardless of its exit status).
	SpawnError string `json:"spawn_error,omitempty"`
}

// ProcessRunner is the interface for executing an external command.
// Implementations never return an error: spawn failures and non-zero exits
// are reported through ProcessResult so the caller decides how to fail.
type ProcessRunner interface {
	// Run executes name with args and waits for it to exit.
	Run(ctx context.Context, name string, args []string) ProcessResult
}

// Suggestion is a single generated commit message.
type Suggestion struct {
	// Message is the commit message in conventional commit format.
	Message string `json:"message"`

	// Explanation is an optional short reason why the message fits the diff.
	Explanation string `json:"explanation,omitempty"`
}
