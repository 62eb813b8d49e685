package git

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/cockroachdb/errors"
)

var (
	getEnv   = os.Getenv
	lookPath = exec.LookPath
)

// FallbackEditor is tried when nothing else names an editor.
const FallbackEditor = "vi"

// EditorSource names where a resolved editor came from.
type EditorSource string

// Editor sources, in lookup order.
const (
	SourceGitEditorEnv EditorSource = "GIT_EDITOR"
	SourceCoreEditor   EditorSource = "core.editor"
	SourceVisual       EditorSource = "VISUAL"
	SourceEditor       EditorSource = "EDITOR"
	SourceFallback     EditorSource = "fallback"
)

// Editor is a resolved commit message editor.
type Editor struct {
	// Command is the editor command line, possibly with arguments.
	Command string
	// Source is where Command was found.
	Source EditorSource
}

// ResolveEditor finds the editor git would use for commit messages. Candidates
// are GIT_EDITOR, core.editor, VISUAL, EDITOR and finally vi; the first one
// whose executable is on PATH wins. ErrNoEditor is returned when none is.
func (m *ShellManager) ResolveEditor(ctx context.Context) (Editor, error) {
	coreEditor, err := m.runGit(ctx, "config", "--get", "core.editor")
	if err != nil {
		if !isUnsetKey(err) {
			return Editor{}, errors.Wrap(err, "read core.editor")
		}
		coreEditor = ""
	}

	candidates := []Editor{
		{Command: getEnv("GIT_EDITOR"), Source: SourceGitEditorEnv},
		{Command: coreEditor, Source: SourceCoreEditor},
		{Command: getEnv("VISUAL"), Source: SourceVisual},
		{Command: getEnv("EDITOR"), Source: SourceEditor},
		{Command: FallbackEditor, Source: SourceFallback},
	}

	var tried []string
	for _, c := range candidates {
		c.Command = strings.TrimSpace(c.Command)
		if c.Command == "" {
			continue
		}
		if editorExists(c.Command) {
			return c, nil
		}
		tried = append(tried, c.Command)
	}

	return Editor{}, errors.WithHint(
		errors.Wrapf(ErrNoEditor, "tried %s", strings.Join(tried, ", ")),
		"Set GIT_EDITOR or EDITOR to an installed editor.",
	)
}

// isUnsetKey reports whether git config exited with status 1, its code for a
// missing key.
func isUnsetKey(err error) bool {
	var exitErr *exec.ExitError
	return errors.As(err, &exitErr) && exitErr.ExitCode() == 1
}

// editorExists checks the executable of an editor command line.
func editorExists(command string) bool {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return false
	}
	_, err := lookPath(fields[0])
	return err == nil
}
