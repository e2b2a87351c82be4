package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCellWidth(t *testing.T) {
	assert.Equal(t, 1, cellWidth('a', 0, 8))
	assert.Equal(t, 2, cellWidth('\u4e16', 0, 8))
	assert.Equal(t, 0, cellWidth('\x01', 0, 8))
	assert.Equal(t, 8, cellWidth('\t', 0, 8))
	assert.Equal(t, 5, cellWidth('\t', 3, 8))
	assert.Equal(t, 1, cellWidth('\t', 3, 4))
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name string
		text string
		cols int
		want []lineSpan
	}{
		{"empty", "", 4, []lineSpan{{0, 0}}},
		{"fits", "abc", 4, []lineSpan{{0, 3}}},
		{"exact", "abcd", 4, []lineSpan{{0, 4}}},
		{"wraps", "abcdef", 4, []lineSpan{{0, 4}, {4, 6}}},
		{"newlines", "ab\ncd\n", 4, []lineSpan{{0, 2}, {3, 5}, {6, 6}}},
		{"wide rune", "ab\u4e16", 3, []lineSpan{{0, 2}, {2, 3}}},
		{"tab", "a\tb", 4, []lineSpan{{0, 2}, {2, 3}}},
		{"zero cols", "ab", 0, []lineSpan{{0, 1}, {1, 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wrapText([]rune(tt.text), tt.cols, 4))
		})
	}
}

func TestCaretCell(t *testing.T) {
	text := []rune("ab\ncdefg")
	spans := wrapText(text, 3, 8)
	assert.Equal(t, []lineSpan{{0, 2}, {3, 6}, {6, 8}}, spans)

	tests := []struct {
		caret    int
		row, col int
	}{
		{0, 0, 0},
		{2, 0, 2},
		{3, 1, 0},
		{5, 1, 2},
		{6, 2, 0},
		{8, 2, 2},
	}
	for _, tt := range tests {
		row, col := caretCell(text, spans, tt.caret, 8)
		assert.Equal(t, [2]int{tt.row, tt.col}, [2]int{row, col}, "caret %d", tt.caret)
	}
}

func TestVisibleRows(t *testing.T) {
	assert.Equal(t, 0, visibleRows(3, 10, 2), "everything fits")
	assert.Equal(t, 5, visibleRows(15, 10, 14), "tail")
	assert.Equal(t, 2, visibleRows(15, 10, 2), "caret above the tail")
}

func TestRenderSpan(t *testing.T) {
	text := []rune("abcd")
	span := lineSpan{0, 4}

	assert.Equal(t, "abcd  ", renderSpan(text, span, 6, 8, 0, 0, ""))
	assert.Equal(t, "a\033[7mbc\033[27md", renderSpan(text, span, 4, 8, 1, 3, ""))
	assert.Equal(t, "X\033[7mabcd\033[27m", renderSpan(text, span, 4, 8, 0, 9, "X"))
	assert.Equal(t, "a   b", renderSpan([]rune("a\tb"), lineSpan{0, 3}, 5, 4, 0, 0, ""))
}
