package purfectconsole

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newPrompted returns a buffer holding prompt with the input region after it
func newPrompted(t *testing.T, prompt string) (*Buffer, *InputRegion) {
	t.Helper()
	buf := NewBuffer()
	buf.Append(prompt)
	return buf, NewInputRegion(buf)
}

func TestInputRegionAnchorsAtEnd(t *testing.T) {
	buf, r := newPrompted(t, "$ ")
	assert.Equal(t, 2, r.Start())
	assert.Equal(t, 2, r.End())
	assert.Equal(t, 2, r.RememberedCaret())

	buf.Append("ls")
	assert.Equal(t, 2, r.Start())
	assert.Equal(t, 4, r.End())

	r.Reset()
	assert.Equal(t, 4, r.Start())
	assert.Equal(t, 4, r.RememberedCaret())
}

func TestInputRegionContainsCaretBoundaries(t *testing.T) {
	buf, r := newPrompted(t, "$ ")
	buf.Append("abc")

	tests := []struct {
		caret int
		want  bool
	}{
		{0, false},
		{1, false},
		{2, true}, // at start
		{3, true},
		{5, true}, // at end
	}
	for _, tt := range tests {
		require.NoError(t, buf.SetCaret(tt.caret))
		assert.Equal(t, tt.want, r.Contains(), "caret %d", tt.caret)
	}
}

func TestInputRegionContainsSelection(t *testing.T) {
	buf, r := newPrompted(t, "$ ")
	buf.Append("abc")

	tests := []struct {
		name       string
		start, end int
		want       bool
	}{
		{"whole input", 2, 5, true},
		{"input tail", 3, 5, true},
		{"input head", 2, 4, false},
		{"inside input", 3, 4, false},
		{"from history", 1, 5, false},
		{"whole buffer", 0, 5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, buf.SetSelection(tt.start, tt.end))
			assert.Equal(t, tt.want, r.Contains())
		})
	}
}

func TestInputRegionReplace(t *testing.T) {
	buf, r := newPrompted(t, "$ ")
	buf.Append("old")

	require.NoError(t, r.Replace("new line"))
	assert.Equal(t, "$ new line", buf.String())
	text, err := r.Text()
	require.NoError(t, err)
	assert.Equal(t, "new line", text)

	require.NoError(t, r.Replace(""))
	assert.Equal(t, "$ ", buf.String())
}

func TestInputRegionSnapBack(t *testing.T) {
	buf, r := newPrompted(t, "$ ")
	buf.Append("abcd")

	require.NoError(t, buf.SetCaret(4))
	r.Remember()
	require.NoError(t, buf.SetCaret(0))
	assert.False(t, r.Contains())

	require.NoError(t, r.SnapBack())
	assert.Equal(t, 4, buf.Caret())
	assert.True(t, r.Contains())
}
