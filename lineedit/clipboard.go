package lineedit

import "github.com/atotto/clipboard"

// Clipboard is the text clipboard the editor copies to and pastes from.
type Clipboard interface {
	// ReadText returns the clipboard text. An empty clipboard is "" with no error.
	ReadText() (string, error)

	// WriteText replaces the clipboard contents.
	WriteText(text string) error
}

// SystemClipboard uses the operating system clipboard.
type SystemClipboard struct{}

func (SystemClipboard) ReadText() (string, error) { return clipboard.ReadAll() }

func (SystemClipboard) WriteText(text string) error { return clipboard.WriteAll(text) }

// MemoryClipboard keeps text in process. It suits tests and hosts without
// clipboard access.
type MemoryClipboard struct {
	Text string
}

func (c *MemoryClipboard) ReadText() (string, error) { return c.Text, nil }

func (c *MemoryClipboard) WriteText(text string) error {
	c.Text = text
	return nil
}
