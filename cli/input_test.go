package cli

import (
	"testing"

	"github.com/phroun/purfectconsole"
	"github.com/stretchr/testify/assert"
)

func special(k purfectconsole.Key, mods purfectconsole.Modifier) purfectconsole.KeyEvent {
	return purfectconsole.SpecialEvent(k, mods)
}

func runeEv(r rune, mods purfectconsole.Modifier) purfectconsole.KeyEvent {
	return purfectconsole.RuneEvent(r, mods)
}

func TestKeyDecoderSequences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []purfectconsole.KeyEvent
	}{
		{"plain text", "ls", []purfectconsole.KeyEvent{runeEv('l', 0), runeEv('s', 0)}},
		{"utf8", "\u00e9\u20ac", []purfectconsole.KeyEvent{runeEv('\u00e9', 0), runeEv('\u20ac', 0)}},
		{"enter cr", "\r", []purfectconsole.KeyEvent{special(purfectconsole.KeyEnter, 0)}},
		{"enter lf", "\n", []purfectconsole.KeyEvent{special(purfectconsole.KeyEnter, 0)}},
		{"tab", "\t", []purfectconsole.KeyEvent{special(purfectconsole.KeyTab, 0)}},
		{"backspace", "\x7f", []purfectconsole.KeyEvent{special(purfectconsole.KeyBackspace, 0)}},
		{"ctrl a", "\x01", []purfectconsole.KeyEvent{runeEv('a', purfectconsole.ModCtrl)}},
		{"ctrl h", "\x08", []purfectconsole.KeyEvent{runeEv('h', purfectconsole.ModCtrl)}},
		{"ctrl space", "\x00", []purfectconsole.KeyEvent{runeEv(' ', purfectconsole.ModCtrl)}},
		{"up", "\x1b[A", []purfectconsole.KeyEvent{special(purfectconsole.KeyUp, 0)}},
		{"ss3 left", "\x1bOD", []purfectconsole.KeyEvent{special(purfectconsole.KeyLeft, 0)}},
		{"ss3 keypad enter", "\x1bOM", []purfectconsole.KeyEvent{special(purfectconsole.KeyEnter, 0)}},
		{"ctrl up", "\x1b[1;5A", []purfectconsole.KeyEvent{special(purfectconsole.KeyUp, purfectconsole.ModCtrl)}},
		{"shift alt end", "\x1b[1;4F", []purfectconsole.KeyEvent{
			special(purfectconsole.KeyEnd, purfectconsole.ModShift|purfectconsole.ModAlt)}},
		{"home tilde", "\x1b[1~", []purfectconsole.KeyEvent{special(purfectconsole.KeyHome, 0)}},
		{"page up", "\x1b[5~", []purfectconsole.KeyEvent{special(purfectconsole.KeyPageUp, 0)}},
		{"ctrl delete", "\x1b[3;5~", []purfectconsole.KeyEvent{special(purfectconsole.KeyDelete, purfectconsole.ModCtrl)}},
		{"f5", "\x1b[15~", []purfectconsole.KeyEvent{special(purfectconsole.KeyF5, 0)}},
		{"f1 ss3", "\x1bOP", []purfectconsole.KeyEvent{special(purfectconsole.KeyF1, 0)}},
		{"shift tab", "\x1b[Z", []purfectconsole.KeyEvent{special(purfectconsole.KeyTab, purfectconsole.ModShift)}},
		{"alt x", "\x1bx", []purfectconsole.KeyEvent{runeEv('x', purfectconsole.ModAlt)}},
		{"alt backspace", "\x1b\x7f", []purfectconsole.KeyEvent{special(purfectconsole.KeyBackspace, purfectconsole.ModAlt)}},
		{"lone escape", "\x1b", []purfectconsole.KeyEvent{special(purfectconsole.KeyEscape, 0)}},
		{"double escape", "\x1b\x1b[B", []purfectconsole.KeyEvent{
			special(purfectconsole.KeyEscape, 0), special(purfectconsole.KeyDown, 0)}},
		{"unknown csi dropped", "\x1b[99~a", []purfectconsole.KeyEvent{runeEv('a', 0)}},
		{"mixed", "a\x1b[Cb\r", []purfectconsole.KeyEvent{
			runeEv('a', 0), special(purfectconsole.KeyRight, 0), runeEv('b', 0), special(purfectconsole.KeyEnter, 0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d KeyDecoder
			assert.Equal(t, tt.want, d.Feed([]byte(tt.in)))
		})
	}
}

func TestKeyDecoderSplitSequences(t *testing.T) {
	var d KeyDecoder
	assert.Empty(t, d.Feed([]byte("\x1b[1;")))
	assert.Equal(t, []purfectconsole.KeyEvent{special(purfectconsole.KeyRight, purfectconsole.ModCtrl)},
		d.Feed([]byte("5C")))

	euro := []byte("\u20ac")
	assert.Empty(t, d.Feed(euro[:1]))
	assert.Empty(t, d.Feed(euro[1:2]))
	assert.Equal(t, []purfectconsole.KeyEvent{runeEv('\u20ac', 0)}, d.Feed(euro[2:]))
}
