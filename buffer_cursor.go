package purfectconsole

// Caret returns the caret position
func (b *Buffer) Caret() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.caret
}

// SetCaret moves the caret to pos and clears the selection
func (b *Buffer) SetCaret(pos int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := CheckRange("caret", pos, pos, len(b.text)); err != nil {
		return err
	}
	b.setCaretInternal(pos, false)
	return nil
}

// setCaretInternal moves the caret, keeping the anchor when extending a
// selection. Must be called with the lock held.
func (b *Buffer) setCaretInternal(pos int, extend bool) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(b.text) {
		pos = len(b.text)
	}
	if b.caret == pos && (extend || b.anchor == pos) {
		return
	}
	b.caret = pos
	if !extend {
		b.anchor = pos
	}
	b.markDirty()
}

// MoveCaretBackward moves the caret back one grapheme cluster. With extend
// the selection grows from its anchor; without it an existing selection
// collapses to its start.
func (b *Buffer) MoveCaretBackward(extend bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !extend && b.anchor != b.caret {
		start, _ := b.selectionInternal()
		b.setCaretInternal(start, false)
		return
	}
	b.setCaretInternal(b.caret-b.graphemeBefore(b.caret), extend)
}

// MoveCaretForward moves the caret forward one grapheme cluster
func (b *Buffer) MoveCaretForward(extend bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !extend && b.anchor != b.caret {
		_, end := b.selectionInternal()
		b.setCaretInternal(end, false)
		return
	}
	b.setCaretInternal(b.caret+b.graphemeAfter(b.caret), extend)
}
