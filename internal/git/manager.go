// Package git provides the git operations claude-lazygit relies on.
package git

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
)

// Sentinel errors for common Git failures.
var (
	// ErrNotAGitRepo indicates the directory is not a git repository.
	ErrNotAGitRepo = errors.New("not a git repository")

	// ErrNoStagedChanges indicates the index holds nothing to commit.
	ErrNoStagedChanges = errors.New("no staged changes")

	// ErrCommitFailed indicates the commit operation failed.
	ErrCommitFailed = errors.New("commit failed")

	// ErrNoEditor indicates no usable commit message editor was found.
	ErrNoEditor = errors.New("no editor found")
)

// GitError represents a Git command error with additional context.
type GitError struct {
	// Command is the git command that failed.
	Command string
	// Output is the stderr output from the command.
	Output string
	// Err is the underlying error (typically a sentinel error).
	Err error
}

// Error returns a formatted error message.
func (e *GitError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("git command %q failed: %s", e.Command, e.Output)
	}
	return fmt.Sprintf("git command %q failed", e.Command)
}

// Unwrap returns the underlying error for use with errors.Is and errors.As.
func (e *GitError) Unwrap() error {
	return e.Err
}

// Manager defines the git operations used by the generate flow.
type Manager interface {
	// IsRepo reports whether the working directory is inside a work tree.
	IsRepo(ctx context.Context) (bool, error)

	// StagedDiff returns the unified diff of the index against HEAD, verbatim.
	StagedDiff(ctx context.Context) (string, error)

	// Commit records the staged changes with message and returns the new HEAD.
	Commit(ctx context.Context, message string) (string, error)

	// CommitWithEditor opens editor prefilled with message before committing.
	// The editor inherits the terminal.
	CommitWithEditor(ctx context.Context, message, editor string) (string, error)

	// GetCommitMessage returns the full message recorded for hash.
	GetCommitMessage(ctx context.Context, hash string) (string, error)
}
