package claude

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/exec"

	"github.com/cockroachdb/errors"
)

// SubprocessRunner executes a command as a child process and buffers its output.
type SubprocessRunner struct {
	// Dir is the working directory for the child. Empty means the current directory.
	Dir string

	// Env contains additional environment variables for the child, in KEY=VALUE form.
	Env []string
}

// NewSubprocessRunner creates a new SubprocessRunner running in dir.
func NewSubprocessRunner(dir string) *SubprocessRunner {
	return &SubprocessRunner{Dir: dir}
}

// Run executes name with args and returns the captured output.
// Arguments are handed to the child directly, without a shell, so large
// prompts and serialized schemas need no escaping.
func (r *SubprocessRunner) Run(ctx context.Context, name string, args []string) ProcessResult {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.Dir

	if len(r.Env) > 0 {
		cmd.Env = append(os.Environ(), r.Env...)
	}

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if err := cmd.Start(); err != nil {
		return ProcessResult{
			Stdout:     stdoutBuf.String(),
			Stderr:     stderrBuf.String(),
			ExitCode:   1,
			SpawnError: spawnErrorText(name, err),
		}
	}

	waitErr := cmd.Wait()

	result := ProcessResult{
		Stdout:   stdoutBuf.String(),
		Stderr:   stderrBuf.String(),
		ExitCode: cmd.ProcessState.ExitCode(),
	}

	// Killed by a signal or failed while copying output.
	if waitErr != nil && result.ExitCode <= 0 {
		result.ExitCode = 1
	}

	return result
}

// spawnErrorText turns a start failure into a message naming the command.
func spawnErrorText(name string, err error) string {
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return fmt.Sprintf("command '%s' not found. Is Claude CLI installed?", name)
	}
	return fmt.Sprintf("failed to spawn '%s': %v", name, err)
}
