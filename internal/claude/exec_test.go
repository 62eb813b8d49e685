package claude

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeScript creates an executable shell script in a temp directory.
func writeScript(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	err := os.WriteFile(path, []byte(content), 0755)
	require.NoError(t, err)
	return path
}

func TestSubprocessRunner_Implements_ProcessRunner(t *testing.T) {
	var _ ProcessRunner = (*SubprocessRunner)(nil)
}

func TestNewSubprocessRunner(t *testing.T) {
	dir := t.TempDir()
	runner := NewSubprocessRunner(dir)

	assert.NotNil(t, runner)
	assert.Equal(t, dir, runner.Dir)
}

func TestSubprocessRunner_Run_CommandNotFound(t *testing.T) {
	runner := NewSubprocessRunner("")

	result := runner.Run(context.Background(), "nonexistent-command-xyz", []string{"-p", "hello"})

	assert.Equal(t, 1, result.ExitCode)
	assert.Equal(t, "command 'nonexistent-command-xyz' not found. Is Claude CLI installed?", result.SpawnError)
}

func TestSubprocessRunner_Run_MissingPath(t *testing.T) {
	runner := NewSubprocessRunner("")
	missing := filepath.Join(t.TempDir(), "no-such-binary")

	result := runner.Run(context.Background(), missing, nil)

	assert.Equal(t, 1, result.ExitCode)
	assert.Equal(t, "command '"+missing+"' not found. Is Claude CLI installed?", result.SpawnError)
}

func TestSubprocessRunner_Run_CapturesStdoutAndStderr(t *testing.T) {
	script := writeScript(t, "mock-claude.sh", `#!/bin/sh
echo '{"type":"result"}'
echo 'warning: something' >&2
`)
	runner := NewSubprocessRunner("")

	result := runner.Run(context.Background(), script, nil)

	assert.Empty(t, result.SpawnError)
	assert.Equal(t, 0, result.ExitCode)
	assert.Equal(t, "{\"type\":\"result\"}\n", result.Stdout)
	assert.Equal(t, "warning: something\n", result.Stderr)
}

func TestSubprocessRunner_Run_NonZeroExit(t *testing.T) {
	script := writeScript(t, "mock-fail.sh", `#!/bin/sh
echo 'partial'
echo 'boom' >&2
exit 3
`)
	runner := NewSubprocessRunner("")

	result := runner.Run(context.Background(), script, nil)

	assert.Empty(t, result.SpawnError)
	assert.Equal(t, 3, result.ExitCode)
	assert.Equal(t, "partial\n", result.Stdout)
	assert.Equal(t, "boom\n", result.Stderr)
}

func TestSubprocessRunner_Run_PassesArgumentsVerbatim(t *testing.T) {
	script := writeScript(t, "mock-args.sh", `#!/bin/sh
for arg in "$@"; do
  printf '%s\n' "$arg"
done
`)
	runner := NewSubprocessRunner("")

	tricky := "it's a \"quoted\" $HOME `diff` ; rm -rf /"
	big := strings.Repeat("x", 64*1024)

	result := runner.Run(context.Background(), script, []string{tricky, big})

	require.Equal(t, 0, result.ExitCode)
	assert.Equal(t, tricky+"\n"+big+"\n", result.Stdout)
}

func TestSubprocessRunner_Run_SetsWorkingDirectory(t *testing.T) {
	workDir := t.TempDir()
	script := writeScript(t, "mock-pwd.sh", `#!/bin/sh
pwd
`)
	runner := NewSubprocessRunner(workDir)

	result := runner.Run(context.Background(), script, nil)

	require.Equal(t, 0, result.ExitCode)
	resolved, err := filepath.EvalSymlinks(workDir)
	require.NoError(t, err)
	assert.Contains(t, []string{workDir, resolved}, strings.TrimSpace(result.Stdout))
}

func TestSubprocessRunner_Run_SetsEnvironment(t *testing.T) {
	script := writeScript(t, "mock-env.sh", `#!/bin/sh
printf '%s' "$TEST_VAR"
`)
	runner := NewSubprocessRunner("")
	runner.Env = []string{"TEST_VAR=test_value_123"}

	result := runner.Run(context.Background(), script, nil)

	require.Equal(t, 0, result.ExitCode)
	assert.Equal(t, "test_value_123", result.Stdout)
}

func TestSubprocessRunner_Run_ContextCancellation(t *testing.T) {
	runner := NewSubprocessRunner("")

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	result := runner.Run(ctx, "sleep", []string{"10"})
	elapsed := time.Since(start)

	assert.NotEqual(t, 0, result.ExitCode)
	assert.Less(t, elapsed, 5*time.Second)
}
