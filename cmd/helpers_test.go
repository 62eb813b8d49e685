package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"github.com/yarlson/claude-lazygit/internal/claude"
	"github.com/yarlson/claude-lazygit/internal/flow"
	"github.com/yarlson/claude-lazygit/internal/git"
	"github.com/yarlson/claude-lazygit/internal/ui"
)

// fakeRepo is an in-memory repository.
type fakeRepo struct {
	isRepo    bool
	diff      string
	editor    git.Editor
	editorErr error
	commits   []string
	editors   []string
	// edited is what the editor leaves behind, if set.
	edited string
}

func (r *fakeRepo) IsRepo(context.Context) (bool, error) { return r.isRepo, nil }

func (r *fakeRepo) StagedDiff(context.Context) (string, error) { return r.diff, nil }

func (r *fakeRepo) Commit(_ context.Context, message string) (string, error) {
	r.commits = append(r.commits, message)
	return "abc1234def", nil
}

func (r *fakeRepo) CommitWithEditor(_ context.Context, message, editor string) (string, error) {
	r.commits = append(r.commits, message)
	r.editors = append(r.editors, editor)
	return "abc1234def", nil
}

func (r *fakeRepo) GetCommitMessage(context.Context, string) (string, error) {
	if r.edited != "" {
		return r.edited, nil
	}
	return r.commits[len(r.commits)-1] + "\n", nil
}

func (r *fakeRepo) ResolveEditor(context.Context) (git.Editor, error) {
	return r.editor, r.editorErr
}

// fakeRunner answers every invocation with the same result.
type fakeRunner struct {
	result claude.ProcessResult
	calls  int
}

func (f *fakeRunner) Run(context.Context, string, []string) claude.ProcessResult {
	f.calls++
	return f.result
}

func envelope(t *testing.T, payload any) claude.ProcessResult {
	t.Helper()
	data, err := json.Marshal(map[string]any{
		"type":              "result",
		"subtype":           "success",
		"is_error":          false,
		"result":            "",
		"structured_output": payload,
	})
	require.NoError(t, err)
	return claude.ProcessResult{Stdout: string(data)}
}

func commitsPayload(messages ...string) map[string]any {
	commits := make([]map[string]string, len(messages))
	for i, m := range messages {
		commits[i] = map[string]string{"message": m}
	}
	return map[string]any{"commits": commits}
}

// scriptedPrompter is an interactive prompter with canned answers.
type scriptedPrompter struct {
	lines      []string
	selects    []int
	selectErr  error
	confirm    bool
	confirmErr error
	asked      []string
}

func (p *scriptedPrompter) Interactive() bool { return true }

func (p *scriptedPrompter) Intro(m string)   { p.lines = append(p.lines, m) }
func (p *scriptedPrompter) Outro(m string)   { p.lines = append(p.lines, m) }
func (p *scriptedPrompter) Info(m string)    { p.lines = append(p.lines, m) }
func (p *scriptedPrompter) Success(m string) { p.lines = append(p.lines, m) }
func (p *scriptedPrompter) Warn(m string)    { p.lines = append(p.lines, m) }
func (p *scriptedPrompter) Error(m string)   { p.lines = append(p.lines, m) }

func (p *scriptedPrompter) Spin(ctx context.Context, _ string, work func(context.Context) error) error {
	return work(ctx)
}

func (p *scriptedPrompter) Select(context.Context, string, []ui.Option) (int, error) {
	if p.selectErr != nil {
		return -1, p.selectErr
	}
	if len(p.selects) == 0 {
		return -1, errors.New("unexpected select")
	}
	idx := p.selects[0]
	p.selects = p.selects[1:]
	return idx, nil
}

func (p *scriptedPrompter) Confirm(_ context.Context, message string, _ bool) (bool, error) {
	p.asked = append(p.asked, message)
	return p.confirm, p.confirmErr
}

// isolate points every collaborator at test doubles and temp dirs.
func isolate(t *testing.T, repo *fakeRepo, runner *fakeRunner) {
	t.Helper()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	origGetwd, origRepo, origRunner := getwd, newRepository, newProcessRunner
	origPrompter, origCopier, origPath := newPrompter, newCopier, lazygitConfigPath
	t.Cleanup(func() {
		getwd, newRepository, newProcessRunner = origGetwd, origRepo, origRunner
		newPrompter, newCopier, lazygitConfigPath = origPrompter, origCopier, origPath
	})

	dir := t.TempDir()
	getwd = func() (string, error) { return dir, nil }
	newRepository = func(string) repository { return repo }
	newProcessRunner = func(string) claude.ProcessRunner { return runner }
	newCopier = func() flow.Copier { return nil }
	lazygitConfigPath = func() (string, error) {
		return filepath.Join(dir, "lazygit", "config.yml"), nil
	}
}

// usePrompter makes every command use p.
func usePrompter(p ui.Prompter) {
	newPrompter = func(io.Reader, io.Writer) ui.Prompter { return p }
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
