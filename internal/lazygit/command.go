package lazygit

import (
	"bytes"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Custom command defaults.
const (
	DefaultKey         = "<c-a>"
	DefaultDescription = "Generate AI commit message"
	DefaultContext     = "files"
	DefaultCommand     = "claude-lazygit -c"
)

// ErrMissingSentinel indicates a custom command that the editor could not
// find again because its command does not mention claude-lazygit.
var ErrMissingSentinel = errors.New("custom command does not reference " + Sentinel)

// CustomCommand is one entry of lazygit's customCommands list.
type CustomCommand struct {
	Key         string `yaml:"key"`
	Description string `yaml:"description"`
	Context     string `yaml:"context"`
	Command     string `yaml:"command"`
	Subprocess  bool   `yaml:"subprocess"`
}

// DefaultCustomCommand returns the command bound to Ctrl+A in the files panel.
func DefaultCustomCommand() CustomCommand {
	return CustomCommand{
		Key:         DefaultKey,
		Description: DefaultDescription,
		Context:     DefaultContext,
		Command:     DefaultCommand,
		Subprocess:  true,
	}
}

// Render encodes the command as a sequence entry with every line prefixed by
// indent spaces.
func (c CustomCommand) Render(indent int) (string, error) {
	if !strings.Contains(c.Command, Sentinel) {
		return "", errors.Wrapf(ErrMissingSentinel, "command %q", c.Command)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode([]CustomCommand{c}); err != nil {
		return "", errors.Wrap(err, "encode custom command")
	}
	if err := enc.Close(); err != nil {
		return "", errors.Wrap(err, "encode custom command")
	}

	pad := strings.Repeat(" ", indent)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	for i, line := range lines {
		lines[i] = pad + line
	}
	return strings.Join(lines, "\n"), nil
}
