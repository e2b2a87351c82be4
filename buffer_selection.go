package purfectconsole

// --- Text Selection Methods ---

// selectionInternal must be called with the lock held
func (b *Buffer) selectionInternal() (start, end int) {
	if b.anchor <= b.caret {
		return b.anchor, b.caret
	}
	return b.caret, b.anchor
}

// SetSelection selects [start, end). The caret is placed at end.
func (b *Buffer) SetSelection(start, end int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := CheckRange("select", start, end, len(b.text)); err != nil {
		return err
	}
	b.anchor = start
	b.caret = end
	b.markDirty()
	return nil
}

// Selection returns the normalized selection bounds; both equal the caret
// when nothing is selected
func (b *Buffer) Selection() (start, end int) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.selectionInternal()
}

// HasSelection returns true if a non-empty range is selected
func (b *Buffer) HasSelection() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.anchor != b.caret
}

// ClearSelection collapses the selection onto the caret
func (b *Buffer) ClearSelection() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.anchor != b.caret {
		b.anchor = b.caret
		b.markDirty()
	}
}

// SelectAll selects the whole buffer
func (b *Buffer) SelectAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.anchor = 0
	b.caret = len(b.text)
	b.markDirty()
}

// GetSelectedText returns the text in the current selection
func (b *Buffer) GetSelectedText() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	start, end := b.selectionInternal()
	return string(b.text[start:end])
}

// CopySelection puts the selected text on the clipboard. Without a selection
// the clipboard is left alone.
func (b *Buffer) CopySelection() {
	b.mu.RLock()
	start, end := b.selectionInternal()
	text := string(b.text[start:end])
	clip, logger := b.clipboard, b.logger
	b.mu.RUnlock()

	if start == end || clip == nil {
		return
	}
	if err := clip.WriteText(text); err != nil {
		logger.Warn("selection not copied",
			"error", &ResourceError{Kind: "clipboard", Err: err})
	}
}

// PasteAtCaret inserts the clipboard text at the caret, replacing any
// selection, and leaves the caret after the inserted text
func (b *Buffer) PasteAtCaret() {
	b.mu.RLock()
	clip, logger := b.clipboard, b.logger
	b.mu.RUnlock()
	if clip == nil {
		return
	}

	text, err := clip.ReadText()
	if err != nil {
		logger.Warn("clipboard not pasted",
			"error", &ResourceError{Kind: "clipboard", Err: err})
		return
	}
	if text == "" {
		return
	}
	b.InsertText(text)
}
