package purfectconsole

// --- Line Methods ---

// lineStartInternal returns the offset of the first character of the line
// containing pos. Must be called with the lock held.
func (b *Buffer) lineStartInternal(pos int) int {
	for pos > 0 && b.text[pos-1] != '\n' {
		pos--
	}
	return pos
}

// lineEndInternal returns the offset of the line feed ending the line that
// contains pos, or the buffer length for the last line
func (b *Buffer) lineEndInternal(pos int) int {
	for pos < len(b.text) && b.text[pos] != '\n' {
		pos++
	}
	return pos
}

// LineCount returns the number of lines; an empty buffer has one
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	n := 1
	for _, r := range b.text {
		if r == '\n' {
			n++
		}
	}
	return n
}

// LineCol converts an offset to a zero-based line and column (in runes)
func (b *Buffer) LineCol(pos int) (line, col int, err error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := CheckRange("linecol", pos, pos, len(b.text)); err != nil {
		return 0, 0, err
	}
	start := 0
	for i := 0; i < pos; i++ {
		if b.text[i] == '\n' {
			line++
			start = i + 1
		}
	}
	return line, pos - start, nil
}
