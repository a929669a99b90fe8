package cli

import (
	"github.com/atotto/clipboard"

	"github.com/eufat/snapshell/internal/ports"
)

// Clipboard implements ports.Clipboard on top of the atotto/clipboard
// cross-platform backend.
type Clipboard struct{}

// NewClipboard builds the clipboard helper.
func NewClipboard() *Clipboard {
	return &Clipboard{}
}

func (c *Clipboard) Enabled() bool {
	return !clipboard.Unsupported
}

// Copy copies text to the system clipboard.
func (c *Clipboard) Copy(text string) error {
	return clipboard.WriteAll(text)
}

var _ ports.Clipboard = (*Clipboard)(nil)
