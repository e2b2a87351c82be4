package cli

import (
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/phroun/purfectconsole"
)

// InputHandler reads raw bytes from the host terminal, decodes them into
// key events and feeds them to the console
type InputHandler struct {
	term    *Terminal
	decoder KeyDecoder
}

// NewInputHandler creates a new input handler
func NewInputHandler(term *Terminal) *InputHandler {
	return &InputHandler{term: term}
}

// InputLoop reads and processes input until the terminal stops
func (h *InputHandler) InputLoop(r io.Reader) {
	buf := make([]byte, 256)

	for {
		select {
		case <-h.term.stopRender:
			return
		default:
		}

		n, err := r.Read(buf)
		if n > 0 {
			for _, ev := range h.decoder.Feed(buf[:n]) {
				if !h.handleKey(ev) {
					return
				}
			}
		}
		if err != nil {
			h.term.requestQuit()
			return
		}
	}
}

// handleKey delivers one event. It returns false once the user quit.
func (h *InputHandler) handleKey(ev purfectconsole.KeyEvent) bool {
	if ev.IsShortcut('q') {
		h.term.requestQuit()
		return false
	}
	c := h.term.console
	c.HandleKey(ev)
	// Terminals report no key releases
	c.HandleKeyRelease(ev)
	h.term.renderer.RequestRender()
	return true
}

// KeyDecoder turns the byte stream of a terminal in raw mode into key
// events. Escape sequences split across reads are completed by the next
// Feed; a lone ESC at the end of a read is reported as Escape.
type KeyDecoder struct {
	pending []byte
}

// Feed decodes data and returns the complete events it contains
func (d *KeyDecoder) Feed(data []byte) []purfectconsole.KeyEvent {
	buf := append(d.pending, data...)
	d.pending = nil

	var events []purfectconsole.KeyEvent
	for len(buf) > 0 {
		ev, n, ok := decodeOne(buf)
		if n == 0 {
			// Incomplete sequence; wait for more input
			if buf[0] == 0x1b && len(buf) == 1 {
				events = append(events, purfectconsole.SpecialEvent(purfectconsole.KeyEscape, 0))
				buf = nil
				break
			}
			d.pending = append([]byte(nil), buf...)
			break
		}
		if ok {
			events = append(events, ev)
		}
		buf = buf[n:]
	}
	return events
}

// decodeOne decodes the event at the start of buf. n is the number of
// bytes used, 0 when more are needed; ok is false for sequences that are
// recognised but carry no key.
func decodeOne(buf []byte) (ev purfectconsole.KeyEvent, n int, ok bool) {
	b := buf[0]
	switch {
	case b == 0x1b:
		return decodeEscape(buf)
	case b == '\r' || b == '\n':
		return purfectconsole.SpecialEvent(purfectconsole.KeyEnter, 0), 1, true
	case b == '\t':
		return purfectconsole.SpecialEvent(purfectconsole.KeyTab, 0), 1, true
	case b == 0x7f:
		return purfectconsole.SpecialEvent(purfectconsole.KeyBackspace, 0), 1, true
	case b == 0:
		return purfectconsole.RuneEvent(' ', purfectconsole.ModCtrl), 1, true
	case b < 0x20:
		// Ctrl+A .. Ctrl+Z and friends
		return purfectconsole.RuneEvent(rune(b+'a'-1), purfectconsole.ModCtrl), 1, true
	case b < utf8.RuneSelf:
		return purfectconsole.RuneEvent(rune(b), 0), 1, true
	}

	if !utf8.FullRune(buf) {
		return ev, 0, false
	}
	r, size := utf8.DecodeRune(buf)
	return purfectconsole.RuneEvent(r, 0), size, true
}

func decodeEscape(buf []byte) (ev purfectconsole.KeyEvent, n int, ok bool) {
	if len(buf) < 2 {
		return ev, 0, false
	}
	switch c := buf[1]; {
	case c == '[':
		return decodeCSI(buf)
	case c == 'O':
		return decodeSS3(buf)
	case c == 0x1b:
		return purfectconsole.SpecialEvent(purfectconsole.KeyEscape, 0), 1, true
	case c == 0x7f:
		return purfectconsole.SpecialEvent(purfectconsole.KeyBackspace, purfectconsole.ModAlt), 2, true
	case c >= 0x20 && c < 0x7f:
		return purfectconsole.RuneEvent(rune(c), purfectconsole.ModAlt), 2, true
	}
	return purfectconsole.SpecialEvent(purfectconsole.KeyEscape, 0), 1, true
}

// csiTildeKeys maps the numeric parameter of "ESC [ n ~" sequences
var csiTildeKeys = map[int]purfectconsole.Key{
	1: purfectconsole.KeyHome, 2: purfectconsole.KeyInsert, 3: purfectconsole.KeyDelete,
	4: purfectconsole.KeyEnd, 5: purfectconsole.KeyPageUp, 6: purfectconsole.KeyPageDown,
	7: purfectconsole.KeyHome, 8: purfectconsole.KeyEnd,
	11: purfectconsole.KeyF1, 12: purfectconsole.KeyF2, 13: purfectconsole.KeyF3,
	14: purfectconsole.KeyF4, 15: purfectconsole.KeyF5, 17: purfectconsole.KeyF6,
	18: purfectconsole.KeyF7, 19: purfectconsole.KeyF8, 20: purfectconsole.KeyF9,
	21: purfectconsole.KeyF10, 23: purfectconsole.KeyF11, 24: purfectconsole.KeyF12,
}

// finalKeys maps the final byte shared by CSI and SS3 cursor sequences
var finalKeys = map[byte]purfectconsole.Key{
	'A': purfectconsole.KeyUp, 'B': purfectconsole.KeyDown,
	'C': purfectconsole.KeyRight, 'D': purfectconsole.KeyLeft,
	'H': purfectconsole.KeyHome, 'F': purfectconsole.KeyEnd,
	'P': purfectconsole.KeyF1, 'Q': purfectconsole.KeyF2,
	'R': purfectconsole.KeyF3, 'S': purfectconsole.KeyF4,
}

func decodeCSI(buf []byte) (ev purfectconsole.KeyEvent, n int, ok bool) {
	// Parameters and intermediates run until a final byte in 0x40-0x7e
	end := -1
	for i := 2; i < len(buf) && i < 32; i++ {
		if buf[i] >= 0x40 && buf[i] <= 0x7e {
			end = i
			break
		}
	}
	if end < 0 {
		if len(buf) >= 32 {
			return ev, len(buf), false
		}
		return ev, 0, false
	}
	n = end + 1
	final := buf[end]
	params := strings.Split(string(buf[2:end]), ";")
	mods := xtermModifiers(params)

	if final == '~' {
		code, err := strconv.Atoi(params[0])
		if err != nil {
			return ev, n, false
		}
		key, found := csiTildeKeys[code]
		if !found {
			return ev, n, false
		}
		return purfectconsole.SpecialEvent(key, mods), n, true
	}
	if final == 'Z' {
		return purfectconsole.SpecialEvent(purfectconsole.KeyTab, purfectconsole.ModShift), n, true
	}
	if key, found := finalKeys[final]; found {
		return purfectconsole.SpecialEvent(key, mods), n, true
	}
	return ev, n, false
}

func decodeSS3(buf []byte) (ev purfectconsole.KeyEvent, n int, ok bool) {
	if len(buf) < 3 {
		return ev, 0, false
	}
	if key, found := finalKeys[buf[2]]; found {
		return purfectconsole.SpecialEvent(key, 0), 3, true
	}
	if buf[2] == 'M' {
		return purfectconsole.SpecialEvent(purfectconsole.KeyEnter, 0), 3, true
	}
	return ev, 3, false
}

// xtermModifiers decodes the "1;<m>" modifier parameter: m-1 is a bit set of
// shift (1), alt (2), ctrl (4) and meta (8)
func xtermModifiers(params []string) purfectconsole.Modifier {
	if len(params) < 2 {
		return 0
	}
	m, err := strconv.Atoi(params[1])
	if err != nil || m < 2 {
		return 0
	}
	m--
	var mods purfectconsole.Modifier
	if m&1 != 0 {
		mods |= purfectconsole.ModShift
	}
	if m&2 != 0 {
		mods |= purfectconsole.ModAlt
	}
	if m&4 != 0 {
		mods |= purfectconsole.ModCtrl
	}
	if m&8 != 0 {
		mods |= purfectconsole.ModMeta
	}
	return mods
}
