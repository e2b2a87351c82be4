package purfectconsole

// Append adds text at the end of the buffer. The caret follows the end when
// it was already there, so a caret parked on the input line stays with it.
func (b *Buffer) Append(text string) {
	if text == "" {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.appendInternal([]rune(text))
}

// AppendRune adds a single character at the end of the buffer
func (b *Buffer) AppendRune(r rune) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.appendInternal([]rune{r})
}

func (b *Buffer) appendInternal(rs []rune) {
	end := len(b.text)
	followCaret := b.caret == end && b.anchor == end
	b.text = append(b.text, rs...)
	if followCaret {
		b.caret = len(b.text)
		b.anchor = b.caret
	}
	b.markDirty()
}
