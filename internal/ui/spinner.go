package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// workDoneMsg carries the result of the work behind a spinner.
type workDoneMsg struct{ err error }

type spinModel struct {
	spinner     spinner.Model
	title       string
	styles      styles
	wait        tea.Cmd
	done        bool
	interrupted bool
	err         error
}

func newSpinModel(title string, st styles, wait tea.Cmd) spinModel {
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	s.Style = st.spinner
	return spinModel{
		spinner: s,
		title:   title,
		styles:  st,
		wait:    wait,
	}
}

func (m spinModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.wait)
}

func (m spinModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, keys.Abort) {
			m.interrupted = true
			return m, tea.Quit
		}
		return m, nil

	case workDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m spinModel) View() string {
	switch {
	case m.interrupted:
		return fmt.Sprintf("%s  %s\n", m.styles.err.Render(symError), m.title)
	case m.done && m.err != nil:
		return fmt.Sprintf("%s  %s\n", m.styles.err.Render(symError), m.title)
	case m.done:
		return fmt.Sprintf("%s  %s\n", m.styles.success.Render(symDone), m.title)
	default:
		return fmt.Sprintf("%s %s\n", m.spinner.View(), m.title)
	}
}
