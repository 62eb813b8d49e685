package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type selectModel struct {
	message   string
	options   []Option
	styles    styles
	cursor    int
	chosen    int
	cancelled bool
	aborted   bool
}

func newSelectModel(message string, options []Option, st styles) selectModel {
	return selectModel{
		message: message,
		options: options,
		styles:  st,
		chosen:  -1,
	}
}

func (m selectModel) Init() tea.Cmd {
	return nil
}

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Up):
		m.cursor = (m.cursor - 1 + len(m.options)) % len(m.options)
	case key.Matches(keyMsg, keys.Down):
		m.cursor = (m.cursor + 1) % len(m.options)
	case key.Matches(keyMsg, keys.Submit):
		m.chosen = m.cursor
		return m, tea.Quit
	case key.Matches(keyMsg, keys.Cancel):
		m.cancelled = true
		return m, tea.Quit
	case key.Matches(keyMsg, keys.Abort):
		m.cancelled = true
		m.aborted = true
		return m, tea.Quit
	}

	return m, nil
}

func (m selectModel) View() string {
	var b strings.Builder
	bar := m.styles.bar.Render(symBar)

	switch {
	case m.chosen >= 0:
		b.WriteString(m.styles.success.Render(symDone) + "  " + m.message + "\n")
		b.WriteString(bar + "  " + m.styles.faint.Render(firstLine(m.options[m.chosen].Label)) + "\n")
		return b.String()
	case m.cancelled:
		b.WriteString(m.styles.err.Render(symError) + "  " + m.message + "\n")
		return b.String()
	}

	b.WriteString(m.styles.info.Render(symSuccess) + "  " + m.message + "\n")
	for i, opt := range m.options {
		label := firstLine(opt.Label)
		if i == m.cursor {
			b.WriteString(bar + "  " + m.styles.accent.Render(symActive) + " " + label)
			if opt.Hint != "" {
				b.WriteString(" " + m.styles.faint.Render("("+opt.Hint+")"))
			}
		} else {
			b.WriteString(bar + "  " + m.styles.faint.Render(symIdle+" "+label))
		}
		b.WriteString("\n")
	}
	b.WriteString(m.styles.bar.Render(symOutro) + "\n")
	return b.String()
}

// firstLine shortens multi-line labels to their subject line.
func firstLine(s string) string {
	line, _, found := strings.Cut(s, "\n")
	if found {
		return line + " …"
	}
	return line
}
