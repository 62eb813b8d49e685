package git

import (
	"context"
	"os"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubEditorEnv isolates editor lookups from the developer machine.
func stubEditorEnv(t *testing.T, env map[string]string, installed ...string) {
	t.Helper()

	t.Setenv("GIT_CONFIG_GLOBAL", os.DevNull)
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")

	originalGetEnv, originalLookPath := getEnv, lookPath
	t.Cleanup(func() {
		getEnv, lookPath = originalGetEnv, originalLookPath
	})

	getEnv = func(key string) string { return env[key] }
	lookPath = func(file string) (string, error) {
		for _, name := range installed {
			if name == file {
				return "/usr/bin/" + file, nil
			}
		}
		return "", errors.Newf("%s: not found", file)
	}
}

func TestResolveEditor_GitEditorEnvWins(t *testing.T) {
	dir := setupTestRepo(t)
	stubEditorEnv(t, map[string]string{"GIT_EDITOR": "nano", "EDITOR": "vim"}, "nano", "vim", "vi")
	runTestGit(t, dir, "config", "core.editor", "emacs")

	editor, err := NewShellManager(dir).ResolveEditor(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Editor{Command: "nano", Source: SourceGitEditorEnv}, editor)
}

func TestResolveEditor_CoreEditor(t *testing.T) {
	dir := setupTestRepo(t)
	stubEditorEnv(t, map[string]string{"VISUAL": "vim"}, "code", "vim")
	runTestGit(t, dir, "config", "core.editor", "code --wait")

	editor, err := NewShellManager(dir).ResolveEditor(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Editor{Command: "code --wait", Source: SourceCoreEditor}, editor)
}

func TestResolveEditor_VisualBeforeEditor(t *testing.T) {
	dir := setupTestRepo(t)
	stubEditorEnv(t, map[string]string{"VISUAL": "hx", "EDITOR": "vim"}, "hx", "vim")

	editor, err := NewShellManager(dir).ResolveEditor(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Editor{Command: "hx", Source: SourceVisual}, editor)
}

func TestResolveEditor_SkipsMissingExecutables(t *testing.T) {
	dir := setupTestRepo(t)
	stubEditorEnv(t, map[string]string{"GIT_EDITOR": "subl -w", "EDITOR": "vim"}, "vim")

	editor, err := NewShellManager(dir).ResolveEditor(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Editor{Command: "vim", Source: SourceEditor}, editor)
}

func TestResolveEditor_FallsBackToVi(t *testing.T) {
	dir := setupTestRepo(t)
	stubEditorEnv(t, nil, "vi")

	editor, err := NewShellManager(dir).ResolveEditor(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Editor{Command: FallbackEditor, Source: SourceFallback}, editor)
}

func TestResolveEditor_NoneInstalled(t *testing.T) {
	dir := setupTestRepo(t)
	stubEditorEnv(t, map[string]string{"EDITOR": "vim"})

	_, err := NewShellManager(dir).ResolveEditor(context.Background())
	require.Error(t, err)

	assert.True(t, errors.Is(err, ErrNoEditor))
	assert.Contains(t, err.Error(), "vim")
	assert.NotEmpty(t, errors.GetAllHints(err))
}

func TestResolveEditor_OutsideRepo(t *testing.T) {
	stubEditorEnv(t, map[string]string{"EDITOR": "vim"}, "vim")

	editor, err := NewShellManager(t.TempDir()).ResolveEditor(context.Background())
	require.NoError(t, err)

	assert.Equal(t, SourceEditor, editor.Source)
}

func TestResolveEditor_ConfigReadFailure(t *testing.T) {
	stubEditorEnv(t, map[string]string{"EDITOR": "vim"}, "vim")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewShellManager(t.TempDir()).ResolveEditor(ctx)
	require.Error(t, err)

	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, errors.Is(err, ErrNoEditor))
	assert.Contains(t, err.Error(), "read core.editor")
}
