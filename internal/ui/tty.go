package ui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cockroachdb/errors"
)

// TTY renders prompts as bubbletea programs.
type TTY struct {
	in     io.Reader
	out    io.Writer
	styles styles
}

// NewTTY creates a TTY prompter reading keys from in and drawing on out.
func NewTTY(in io.Reader, out io.Writer) *TTY {
	return &TTY{
		in:     in,
		out:    out,
		styles: newStyles(lipgloss.NewRenderer(out)),
	}
}

// run executes a bubbletea program and returns its final model.
func (p *TTY) run(ctx context.Context, m tea.Model) (tea.Model, error) {
	prog := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)

	final, err := prog.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, errors.Wrap(err, "run prompt")
	}
	return final, nil
}

// Interactive is always true for a TTY.
func (p *TTY) Interactive() bool { return true }

// Intro opens the session with a styled title.
func (p *TTY) Intro(title string) {
	writeLine(p.out, p.styles, p.styles.bar, symIntro, p.styles.title.Render(title))
}

// Outro closes the session with message.
func (p *TTY) Outro(message string) {
	writeLine(p.out, p.styles, p.styles.bar, symOutro, message)
}

// Info writes an informational line.
func (p *TTY) Info(message string) {
	writeLine(p.out, p.styles, p.styles.info, symInfo, message)
}

// Success writes a line marking a completed step.
func (p *TTY) Success(message string) {
	writeLine(p.out, p.styles, p.styles.success, symSuccess, message)
}

// Warn writes a warning line.
func (p *TTY) Warn(message string) {
	writeLine(p.out, p.styles, p.styles.warn, symWarn, message)
}

// Error writes an error line. It does not end the session.
func (p *TTY) Error(message string) {
	writeLine(p.out, p.styles, p.styles.err, symError, message)
}

// Spin runs work on its own goroutine while the spinner animates. Ctrl+C
// cancels the work and returns ErrInterrupted once it has stopped.
func (p *TTY) Spin(ctx context.Context, title string, work func(context.Context) error) error {
	workCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	finished := make(chan struct{})
	var workErr error
	go func() {
		defer close(finished)
		workErr = work(workCtx)
	}()

	wait := func() tea.Msg {
		<-finished
		return workDoneMsg{err: workErr}
	}

	final, err := p.run(ctx, newSpinModel(title, p.styles, wait))
	if err != nil {
		cancel()
		<-finished
		return err
	}

	if final.(spinModel).interrupted {
		cancel()
		<-finished
		return ErrInterrupted
	}

	<-finished
	return workErr
}

// Select shows options as an arrow-key menu and returns the chosen index.
// Esc returns ErrCancelled and Ctrl+C returns ErrInterrupted.
func (p *TTY) Select(ctx context.Context, message string, options []Option) (int, error) {
	if len(options) == 0 {
		return -1, errors.New("select: no options")
	}

	final, err := p.run(ctx, newSelectModel(message, options, p.styles))
	if err != nil {
		return -1, err
	}

	m := final.(selectModel)
	if m.aborted {
		return -1, ErrInterrupted
	}
	if m.cancelled {
		return -1, ErrCancelled
	}
	return m.chosen, nil
}

// Confirm asks a yes/no question, starting on defaultYes. Esc or Ctrl+C
// returns ErrCancelled.
func (p *TTY) Confirm(ctx context.Context, message string, defaultYes bool) (bool, error) {
	final, err := p.run(ctx, newConfirmModel(message, defaultYes, p.styles))
	if err != nil {
		return false, err
	}

	m := final.(confirmModel)
	if m.cancelled {
		return false, ErrCancelled
	}
	return m.value, nil
}
