package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type confirmModel struct {
	message   string
	styles    styles
	value     bool
	submitted bool
	cancelled bool
}

func newConfirmModel(message string, defaultYes bool, st styles) confirmModel {
	return confirmModel{
		message: message,
		styles:  st,
		value:   defaultYes,
	}
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Left), key.Matches(keyMsg, keys.Right),
		key.Matches(keyMsg, keys.Up), key.Matches(keyMsg, keys.Down):
		m.value = !m.value
	case key.Matches(keyMsg, keys.Yes):
		m.value = true
		m.submitted = true
		return m, tea.Quit
	case key.Matches(keyMsg, keys.No):
		m.value = false
		m.submitted = true
		return m, tea.Quit
	case key.Matches(keyMsg, keys.Submit):
		m.submitted = true
		return m, tea.Quit
	case key.Matches(keyMsg, keys.Cancel), key.Matches(keyMsg, keys.Abort):
		m.cancelled = true
		return m, tea.Quit
	}

	return m, nil
}

func (m confirmModel) View() string {
	var b strings.Builder
	bar := m.styles.bar.Render(symBar)

	switch {
	case m.submitted:
		answer := "No"
		if m.value {
			answer = "Yes"
		}
		b.WriteString(m.styles.success.Render(symDone) + "  " + m.message + "\n")
		b.WriteString(bar + "  " + m.styles.faint.Render(answer) + "\n")
		return b.String()
	case m.cancelled:
		b.WriteString(m.styles.err.Render(symError) + "  " + m.message + "\n")
		return b.String()
	}

	yes, no := m.styles.faint.Render(symIdle+" Yes"), m.styles.faint.Render(symIdle+" No")
	if m.value {
		yes = m.styles.accent.Render(symActive) + " Yes"
	} else {
		no = m.styles.accent.Render(symActive) + " No"
	}

	b.WriteString(m.styles.info.Render(symSuccess) + "  " + m.message + "\n")
	b.WriteString(bar + "  " + yes + " / " + no + "\n")
	b.WriteString(m.styles.bar.Render(symOutro) + "\n")
	return b.String()
}
