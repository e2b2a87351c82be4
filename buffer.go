package purfectconsole

import (
	"log/slog"
	"sync"
)

// Buffer is an in-memory Surface: a growing sequence of characters with a
// caret, a selection anchor and a clipboard. Hosts without a toolkit text
// widget (the cli adapter, tests, headless embedding) render from it.
//
// Offsets are rune indexes.
type Buffer struct {
	mu sync.RWMutex

	text []rune

	// Selection is [min(anchor, caret), max(anchor, caret)); anchor == caret
	// means no selection
	caret  int
	anchor int

	clipboard Clipboard
	logger    *slog.Logger

	dirty   bool
	onDirty func()
}

// NewBuffer creates an empty buffer backed by an in-memory clipboard
func NewBuffer() *Buffer {
	return &Buffer{
		clipboard: &MemoryClipboard{},
		logger:    slog.Default(),
		dirty:     true,
	}
}

// SetDirtyCallback sets a function to be called when the buffer changes.
// It runs with the buffer lock held and must not call back into the buffer.
func (b *Buffer) SetDirtyCallback(fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onDirty = fn
}

// SetClipboard replaces the clipboard used by CopySelection and PasteAtCaret
func (b *Buffer) SetClipboard(c Clipboard) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if c == nil {
		c = &MemoryClipboard{}
	}
	b.clipboard = c
}

// SetLogger sets where clipboard failures are reported
func (b *Buffer) SetLogger(logger *slog.Logger) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if logger == nil {
		logger = slog.Default()
	}
	b.logger = logger
}

// Clipboard returns the clipboard in use
func (b *Buffer) Clipboard() Clipboard {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.clipboard
}

func (b *Buffer) markDirty() {
	b.dirty = true
	if b.onDirty != nil {
		b.onDirty()
	}
}

// IsDirty returns true if the buffer changed since the last ClearDirty
func (b *Buffer) IsDirty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.dirty
}

// ClearDirty resets the dirty flag, typically after a repaint
func (b *Buffer) ClearDirty() {
	b.mu.Lock()
	b.dirty = false
	b.mu.Unlock()
}

// Len returns the number of characters in the buffer
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.text)
}

// String returns the whole buffer contents
func (b *Buffer) String() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return string(b.text)
}

// Text returns the characters in [start, end)
func (b *Buffer) Text(start, end int) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := CheckRange("text", start, end, len(b.text)); err != nil {
		return "", err
	}
	return string(b.text[start:end]), nil
}

// Replace replaces [start, end) with text. A caret or anchor inside the
// replaced range moves to the end of the inserted text; positions after it
// shift by the length difference.
func (b *Buffer) Replace(start, end int, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := CheckRange("replace", start, end, len(b.text)); err != nil {
		return err
	}
	b.replaceInternal(start, end, []rune(text))
	return nil
}

// replaceInternal must be called with the lock held and a validated range
func (b *Buffer) replaceInternal(start, end int, ins []rune) {
	tail := append([]rune(nil), b.text[end:]...)
	b.text = append(append(b.text[:start], ins...), tail...)

	shift := func(pos int) int {
		switch {
		case pos >= end:
			return pos + len(ins) - (end - start)
		case pos > start:
			return start + len(ins)
		default:
			return pos
		}
	}
	b.caret = shift(b.caret)
	b.anchor = shift(b.anchor)
	b.markDirty()
}

// Snapshot returns a copy of the text together with caret and selection,
// taken atomically for rendering
func (b *Buffer) Snapshot() (text []rune, caret, selStart, selEnd int) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	text = append([]rune(nil), b.text...)
	selStart, selEnd = b.selectionInternal()
	return text, b.caret, selStart, selEnd
}
