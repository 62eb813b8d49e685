package git

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/cockroachdb/errors"
)

// ShellManager implements the Manager interface by shelling out to git.
type ShellManager struct {
	workDir string

	// Terminal streams handed to an interactive editor.
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// NewShellManager creates a new ShellManager operating in workDir. An empty
// workDir means the process working directory.
func NewShellManager(workDir string) *ShellManager {
	return &ShellManager{
		workDir: workDir,
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}
}

// runGit executes a git command and returns its trimmed output.
func (m *ShellManager) runGit(ctx context.Context, args ...string) (string, error) {
	out, err := m.runGitRaw(ctx, args...)
	return strings.TrimSpace(out), err
}

// runGitRaw executes a git command and returns stdout verbatim.
func (m *ShellManager) runGitRaw(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = m.workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		output := stderr.String()
		if strings.TrimSpace(output) == "" {
			output = stdout.String()
		}
		return "", classify(args, output, err)
	}

	return stdout.String(), nil
}

// classify turns a failed git invocation into a GitError.
func classify(args []string, output string, err error) error {
	gitErr := &GitError{
		Command: "git " + strings.Join(args, " "),
		Output:  strings.TrimSpace(output),
		Err:     err,
	}

	if strings.Contains(strings.ToLower(output), "not a git repository") {
		gitErr.Err = ErrNotAGitRepo
	}

	return gitErr
}

// IsRepo reports whether the working directory is inside a git work tree.
func (m *ShellManager) IsRepo(ctx context.Context) (bool, error) {
	out, err := m.runGit(ctx, "rev-parse", "--is-inside-work-tree")
	if err != nil {
		if errors.Is(err, ErrNotAGitRepo) {
			return false, nil
		}
		return false, err
	}
	return out == "true", nil
}

// StagedDiff returns `git diff --cached` output without trimming.
func (m *ShellManager) StagedDiff(ctx context.Context) (string, error) {
	return m.runGitRaw(ctx, "diff", "--cached")
}

// GetCurrentCommit returns the current HEAD commit hash.
func (m *ShellManager) GetCurrentCommit(ctx context.Context) (string, error) {
	return m.runGit(ctx, "rev-parse", "HEAD")
}

// GetCommitMessage returns the commit message for the given commit hash.
// It uses the %B format to get the full commit message body.
func (m *ShellManager) GetCommitMessage(ctx context.Context, hash string) (string, error) {
	return m.runGit(ctx, "log", "-1", "--format=%B", hash)
}

// Commit records the staged changes with message and returns the commit hash.
func (m *ShellManager) Commit(ctx context.Context, message string) (string, error) {
	if _, err := m.runGit(ctx, "commit", "-m", message); err != nil {
		return "", commitFailed(err)
	}
	return m.GetCurrentCommit(ctx)
}

// CommitWithEditor runs `git commit -e -m message` attached to the terminal so
// editor can adjust the message. An empty editor leaves git's own choice.
func (m *ShellManager) CommitWithEditor(ctx context.Context, message, editor string) (string, error) {
	args := []string{"commit", "-e", "-m", message}

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = m.workDir
	cmd.Stdin = m.stdin
	cmd.Stdout = m.stdout
	cmd.Stderr = m.stderr
	if editor != "" {
		cmd.Env = append(os.Environ(), "GIT_EDITOR="+editor)
	}

	if err := cmd.Run(); err != nil {
		return "", &GitError{
			Command: "git commit -e",
			Output:  err.Error(),
			Err:     ErrCommitFailed,
		}
	}

	return m.GetCurrentCommit(ctx)
}

// commitFailed re-labels a failed commit while keeping git's output.
func commitFailed(err error) error {
	var gitErr *GitError
	if errors.As(err, &gitErr) {
		return &GitError{
			Command: gitErr.Command,
			Output:  gitErr.Output,
			Err:     ErrCommitFailed,
		}
	}
	return errors.Mark(err, ErrCommitFailed)
}
