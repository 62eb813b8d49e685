// Package ui renders claude-lazygit's interactive prompts on stderr.
//
// On a terminal prompts are bubbletea programs; elsewhere a plain line-based
// fallback takes non-interactive defaults.
package ui

import (
	"context"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"golang.org/x/term"
)

var (
	// ErrCancelled indicates the user dismissed a prompt.
	ErrCancelled = errors.New("cancelled")

	// ErrInterrupted indicates the user pressed Ctrl+C while work was running.
	ErrInterrupted = errors.New("interrupted")
)

// Option is one selectable entry of a Select prompt.
type Option struct {
	Label string
	Hint  string
}

// Prompter is the prompt and log surface used by the commands.
type Prompter interface {
	// Intro opens a prompt session with a title.
	Intro(title string)
	// Outro closes the prompt session.
	Outro(message string)

	Info(message string)
	Success(message string)
	Warn(message string)
	Error(message string)

	// Spin shows title with a spinner while work runs and returns its error.
	Spin(ctx context.Context, title string, work func(context.Context) error) error
	// Select asks for one of options and returns its index.
	Select(ctx context.Context, message string, options []Option) (int, error)
	// Confirm asks a yes/no question.
	Confirm(ctx context.Context, message string, defaultYes bool) (bool, error)
}

// Interactive reports whether p waits for user input. Prompters opt in by
// implementing Interactive() bool.
func Interactive(p Prompter) bool {
	i, ok := p.(interface{ Interactive() bool })
	return ok && i.Interactive()
}

// IsTerminal reports whether v is an *os.File attached to a terminal.
func IsTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// New returns a TTY prompter when both in and out are terminals, otherwise a
// plain prompter writing to out.
func New(in io.Reader, out io.Writer) Prompter {
	if IsTerminal(in) && IsTerminal(out) {
		return NewTTY(in, out)
	}
	return NewPlain(out)
}
