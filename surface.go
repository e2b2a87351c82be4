package purfectconsole

import "sync"

// Surface is the display capability the console edits. Offsets are in the
// surface's own character units; the console never mixes offsets from
// different surfaces.
//
// Implementations return *BoundsError for offsets outside [0, Len()].
type Surface interface {
	// Append adds text at the end of the surface
	Append(text string)

	// Text returns the characters in [start, end)
	Text(start, end int) (string, error)

	// Len returns the number of characters on the surface
	Len() int

	// Replace replaces [start, end) with text
	Replace(start, end int, text string) error

	// SetSelection selects [start, end). Equal bounds clear the selection
	// and leave the caret at start.
	SetSelection(start, end int) error

	// Selection returns the normalized selection bounds. Without a
	// selection both bounds equal the caret.
	Selection() (start, end int)

	// SetCaret moves the caret and clears any selection
	SetCaret(pos int) error

	// Caret returns the caret position
	Caret() int

	// CopySelection puts the selected text on the clipboard
	CopySelection()

	// PasteAtCaret inserts the clipboard text at the caret, replacing any
	// selection
	PasteAtCaret()
}

// DefaultEditor is implemented by surfaces that are not backed by a toolkit
// text widget. The console calls ApplyDefault for key events its dispatcher
// does not consume, standing in for a text area's built-in behaviour.
type DefaultEditor interface {
	ApplyDefault(ev KeyEvent)
}

// Clipboard is the text clipboard used by surfaces that manage their own
// copy and paste
type Clipboard interface {
	ReadText() (string, error)
	WriteText(text string) error
}

// MemoryClipboard is a process-local clipboard. It is the fallback when no
// system clipboard is reachable.
type MemoryClipboard struct {
	mu   sync.Mutex
	text string
}

// ReadText returns the last text written
func (c *MemoryClipboard) ReadText() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text, nil
}

// WriteText replaces the clipboard contents
func (c *MemoryClipboard) WriteText(text string) error {
	c.mu.Lock()
	c.text = text
	c.mu.Unlock()
	return nil
}
