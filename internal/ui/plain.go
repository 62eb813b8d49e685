package ui

import (
	"context"
	"io"

	"github.com/cockroachdb/errors"
)

// Plain writes unstyled lines and answers prompts with their defaults. It is
// used when no terminal is attached.
type Plain struct {
	out    io.Writer
	styles styles
}

// NewPlain creates a Plain prompter writing to out.
func NewPlain(out io.Writer) *Plain {
	return &Plain{out: out, styles: plainStyles()}
}

func (p *Plain) line(sym, message string) {
	writeLine(p.out, p.styles, p.styles.bar, sym, message)
}

// Intro, Outro, Info, Success, Warn and Error write one prefixed line each.
func (p *Plain) Intro(title string)     { p.line(symIntro, title) }
func (p *Plain) Outro(message string)   { p.line(symOutro, message) }
func (p *Plain) Info(message string)    { p.line(symInfo, message) }
func (p *Plain) Success(message string) { p.line(symSuccess, message) }
func (p *Plain) Warn(message string)    { p.line(symWarn, message) }
func (p *Plain) Error(message string)   { p.line(symError, message) }

// Spin runs work synchronously after printing title.
func (p *Plain) Spin(ctx context.Context, title string, work func(context.Context) error) error {
	p.line(symDone, title)
	return work(ctx)
}

// Select picks the first option.
func (p *Plain) Select(ctx context.Context, message string, options []Option) (int, error) {
	if len(options) == 0 {
		return -1, errors.New("select: no options")
	}
	if err := ctx.Err(); err != nil {
		return -1, err
	}
	p.line(symDone, message+" "+firstLine(options[0].Label))
	return 0, nil
}

// Confirm answers with defaultYes.
func (p *Plain) Confirm(ctx context.Context, message string, defaultYes bool) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	answer := "no"
	if defaultYes {
		answer = "yes"
	}
	p.line(symDone, message+" "+answer)
	return defaultYes, nil
}
