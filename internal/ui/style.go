package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Line symbols.
const (
	symIntro   = "┌"
	symBar     = "│"
	symOutro   = "└"
	symInfo    = "●"
	symSuccess = "◆"
	symWarn    = "▲"
	symError   = "■"
	symDone    = "◇"
	symActive  = "●"
	symIdle    = "○"
)

type styles struct {
	title   lipgloss.Style
	bar     lipgloss.Style
	info    lipgloss.Style
	success lipgloss.Style
	warn    lipgloss.Style
	err     lipgloss.Style
	faint   lipgloss.Style
	accent  lipgloss.Style
	spinner lipgloss.Style
}

// newStyles builds styles for the color profile of the renderer's output.
func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		bar:     r.NewStyle().Faint(true),
		info:    r.NewStyle().Foreground(lipgloss.Color("39")),
		success: r.NewStyle().Foreground(lipgloss.Color("78")),
		warn:    r.NewStyle().Foreground(lipgloss.Color("214")),
		err:     r.NewStyle().Foreground(lipgloss.Color("197")),
		faint:   r.NewStyle().Faint(true),
		accent:  r.NewStyle().Foreground(lipgloss.Color("78")).Bold(true),
		spinner: r.NewStyle().Foreground(lipgloss.Color("205")),
	}
}

// plainStyles renders everything unstyled.
func plainStyles() styles {
	s := lipgloss.NewStyle()
	return styles{s, s, s, s, s, s, s, s, s}
}

// writeLine prints a symbol-prefixed message; continuation lines keep the bar.
func writeLine(w io.Writer, st styles, symbol lipgloss.Style, sym, message string) {
	lines := strings.Split(message, "\n")
	fmt.Fprintf(w, "%s  %s\n", symbol.Render(sym), lines[0])
	for _, line := range lines[1:] {
		fmt.Fprintf(w, "%s  %s\n", st.bar.Render(symBar), line)
	}
}
