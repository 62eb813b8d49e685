package flow

import (
	"github.com/atotto/clipboard"
	"github.com/cockroachdb/errors"
)

// Clipboard copies through the platform clipboard utility.
type Clipboard struct{}

// NewClipboard returns a Clipboard, or nil when no clipboard utility exists.
func NewClipboard() Copier {
	if clipboard.Unsupported {
		return nil
	}
	return Clipboard{}
}

// Copy writes text to the clipboard.
func (Clipboard) Copy(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return errors.Wrap(err, "clipboard")
	}
	return nil
}
