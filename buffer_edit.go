package purfectconsole

import (
	"github.com/rivo/uniseg"
)

// InsertText inserts text at the caret, replacing the selection if any
func (b *Buffer) InsertText(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	start, end := b.selectionInternal()
	b.replaceInternal(start, end, []rune(text))
	b.anchor = b.caret
}

// DeleteBackward deletes the selection, or the grapheme cluster before the
// caret
func (b *Buffer) DeleteBackward() {
	b.mu.Lock()
	defer b.mu.Unlock()
	start, end := b.selectionInternal()
	if start == end {
		start = end - b.graphemeBefore(end)
	}
	if start != end {
		b.replaceInternal(start, end, nil)
	}
}

// DeleteForward deletes the selection, or the grapheme cluster after the
// caret
func (b *Buffer) DeleteForward() {
	b.mu.Lock()
	defer b.mu.Unlock()
	start, end := b.selectionInternal()
	if start == end {
		end = start + b.graphemeAfter(start)
	}
	if start != end {
		b.replaceInternal(start, end, nil)
	}
}

// ApplyDefault performs the plain text-area behaviour for a key the console
// did not consume: character insertion, deletion, horizontal caret motion,
// paste and tab.
func (b *Buffer) ApplyDefault(ev KeyEvent) {
	extend := ev.Modifiers.Has(ModShift)

	switch ev.Key {
	case KeyRune:
		switch {
		case ev.IsShortcut('h'):
			b.DeleteBackward()
		case ev.IsShortcut('v'):
			b.PasteAtCaret()
		case ev.ControlOrMeta() || ev.Modifiers.Has(ModAlt):
			// Unbound shortcut
		case ev.Rune >= ' ' || ev.Rune == '\t':
			b.InsertText(string(ev.Rune))
		}
	case KeyTab:
		if ev.Modifiers == ModNone {
			b.InsertText("\t")
		}
	case KeyBackspace:
		b.DeleteBackward()
	case KeyDelete:
		if extend {
			// Shift+Delete cuts in most text areas; history must stay
			// intact so it only copies
			b.CopySelection()
			return
		}
		b.DeleteForward()
	case KeyLeft, KeyKPLeft:
		b.MoveCaretBackward(extend)
	case KeyRight, KeyKPRight:
		b.MoveCaretForward(extend)
	case KeyPaste:
		b.PasteAtCaret()
	case KeyInsert:
		if extend {
			b.PasteAtCaret()
		}
	}
}

// graphemeBefore returns the rune length of the grapheme cluster that ends
// at pos. Must be called with the lock held.
func (b *Buffer) graphemeBefore(pos int) int {
	if pos <= 0 || pos > len(b.text) {
		return 0
	}
	if b.text[pos-1] == '\n' {
		if pos >= 2 && b.text[pos-2] == '\r' {
			return 2
		}
		return 1
	}

	// Line feeds always end a cluster, so segmenting from the start of the
	// line is enough
	start := b.lineStartInternal(pos)
	last := 1
	g := uniseg.NewGraphemes(string(b.text[start:pos]))
	for g.Next() {
		last = len(g.Runes())
	}
	return last
}

// graphemeAfter returns the rune length of the grapheme cluster that starts
// at pos. Must be called with the lock held.
func (b *Buffer) graphemeAfter(pos int) int {
	if pos < 0 || pos >= len(b.text) {
		return 0
	}
	end := b.lineEndInternal(pos)
	if end < len(b.text) {
		end++ // include the line feed so CR LF stays one cluster
	}
	g := uniseg.NewGraphemes(string(b.text[pos:end]))
	if g.Next() {
		return len(g.Runes())
	}
	return 1
}
