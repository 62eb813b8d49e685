package ui

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsTerminal_NonFile(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
	assert.False(t, IsTerminal(nil))
}

func TestIsTerminal_RegularFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()

	assert.False(t, IsTerminal(f))
}

func TestNew_FallsBackToPlain(t *testing.T) {
	var out bytes.Buffer

	p := New(&bytes.Buffer{}, &out)

	_, ok := p.(*Plain)
	assert.True(t, ok)
	assert.False(t, Interactive(p))
}

func TestInteractive_TTY(t *testing.T) {
	assert.True(t, Interactive(NewTTY(&bytes.Buffer{}, &bytes.Buffer{})))
}

func TestPlain_LogLines(t *testing.T) {
	var out bytes.Buffer
	p := NewPlain(&out)

	p.Intro("claude-lazygit")
	p.Info("Lazygit config path: /tmp/config.yml")
	p.Warn("two\nlines")
	p.Outro("Done")

	assert.Equal(t, "┌  claude-lazygit\n●  Lazygit config path: /tmp/config.yml\n▲  two\n│  lines\n└  Done\n", out.String())
}

func TestPlain_SpinRunsWork(t *testing.T) {
	var out bytes.Buffer
	p := NewPlain(&out)

	ran := false
	err := p.Spin(context.Background(), "Generating commit messages...", func(ctx context.Context) error {
		ran = true
		return nil
	})
	require.NoError(t, err)

	assert.True(t, ran)
	assert.Contains(t, out.String(), "Generating commit messages...")
}

func TestPlain_SpinReturnsWorkError(t *testing.T) {
	p := NewPlain(&bytes.Buffer{})
	boom := errors.New("boom")

	err := p.Spin(context.Background(), "work", func(ctx context.Context) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestPlain_SelectPicksFirst(t *testing.T) {
	var out bytes.Buffer
	p := NewPlain(&out)

	idx, err := p.Select(context.Background(), "Select a commit message:", []Option{
		{Label: "feat: a\n\nbody"},
		{Label: "feat: b"},
	})
	require.NoError(t, err)

	assert.Equal(t, 0, idx)
	assert.Contains(t, out.String(), "feat: a …")
}

func TestPlain_SelectWithoutOptions(t *testing.T) {
	_, err := NewPlain(&bytes.Buffer{}).Select(context.Background(), "pick", nil)
	assert.Error(t, err)
}

func TestPlain_ConfirmUsesDefault(t *testing.T) {
	p := NewPlain(&bytes.Buffer{})

	yes, err := p.Confirm(context.Background(), "Create lazygit config?", true)
	require.NoError(t, err)
	assert.True(t, yes)

	no, err := p.Confirm(context.Background(), "Create lazygit config?", false)
	require.NoError(t, err)
	assert.False(t, no)
}

func TestPlain_CancelledContext(t *testing.T) {
	p := NewPlain(&bytes.Buffer{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Select(ctx, "pick", []Option{{Label: "a"}})
	assert.ErrorIs(t, err, context.Canceled)

	_, err = p.Confirm(ctx, "ok?", true)
	assert.ErrorIs(t, err, context.Canceled)
}
