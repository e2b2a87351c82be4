package purfectconsole

import (
	"fmt"
	"strings"
	"unicode"
)

// Key identifies a physical key. Character keys use KeyRune with the
// character stored in KeyEvent.Rune.
type Key uint16

const (
	KeyNone Key = iota
	KeyRune

	// Editing and navigation
	KeyEnter
	KeyBackspace
	KeyTab
	KeyEscape
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyKPUp
	KeyKPDown
	KeyKPLeft
	KeyKPRight
	KeyKPAdd
	KeyKPDecimal

	// Dedicated clipboard keys (Sun/Apple keyboards, some remotes)
	KeyCopy
	KeyCut
	KeyPaste

	// Function keys, contiguous for IsFunctionKey
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyF13
	KeyF14
	KeyF15
	KeyF16
	KeyF17
	KeyF18
	KeyF19
	KeyF20
	KeyF21
	KeyF22
	KeyF23
	KeyF24

	// Modifier keys pressed on their own
	KeyShift
	KeyControl
	KeyAlt
	KeyAltGraph
	KeyMeta
	KeyWindows

	// Locks
	KeyCapsLock
	KeyNumLock
	KeyScrollLock
	KeyKanaLock

	// Miscellaneous keys without text semantics
	KeyPause
	KeyPrintScreen
	KeyHelp
	KeyUndo
	KeyAgain
	KeyFind
	KeyStop
	KeyProps
	KeyCompose
	KeyContextMenu
	KeyCancel
	KeyAccept
	KeyBegin
	KeyFinal
	KeyCodeInput

	// Input method keys
	KeyAllCandidates
	KeyPreviousCandidate
	KeyAlphanumeric
	KeyConvert
	KeyNonConvert
	KeyModeChange
	KeyFullWidth
	KeyHalfWidth
	KeyHiragana
	KeyKatakana
	KeyKana
	KeyKanji
	KeyRomanCharacters
	KeyJapaneseHiragana
	KeyJapaneseKatakana
	KeyJapaneseRoman
	KeyInputMethodOnOff

	keyCount
)

var keyNames = [keyCount]string{
	KeyNone: "None", KeyRune: "Rune",
	KeyEnter: "Enter", KeyBackspace: "Backspace", KeyTab: "Tab", KeyEscape: "Escape",
	KeyDelete: "Delete", KeyInsert: "Insert", KeyHome: "Home", KeyEnd: "End",
	KeyPageUp: "PageUp", KeyPageDown: "PageDown",
	KeyUp: "Up", KeyDown: "Down", KeyLeft: "Left", KeyRight: "Right",
	KeyKPUp: "KPUp", KeyKPDown: "KPDown", KeyKPLeft: "KPLeft", KeyKPRight: "KPRight",
	KeyKPAdd: "KP+", KeyKPDecimal: "KP.",
	KeyCopy: "Copy", KeyCut: "Cut", KeyPaste: "Paste",
	KeyShift: "Shift", KeyControl: "Control", KeyAlt: "Alt", KeyAltGraph: "AltGraph",
	KeyMeta: "Meta", KeyWindows: "Windows",
	KeyCapsLock: "CapsLock", KeyNumLock: "NumLock", KeyScrollLock: "ScrollLock", KeyKanaLock: "KanaLock",
	KeyPause: "Pause", KeyPrintScreen: "PrintScreen", KeyHelp: "Help", KeyUndo: "Undo",
	KeyAgain: "Again", KeyFind: "Find", KeyStop: "Stop", KeyProps: "Props",
	KeyCompose: "Compose", KeyContextMenu: "ContextMenu", KeyCancel: "Cancel",
	KeyAccept: "Accept", KeyBegin: "Begin", KeyFinal: "Final", KeyCodeInput: "CodeInput",
	KeyAllCandidates: "AllCandidates", KeyPreviousCandidate: "PreviousCandidate",
	KeyAlphanumeric: "Alphanumeric", KeyConvert: "Convert", KeyNonConvert: "NonConvert",
	KeyModeChange: "ModeChange", KeyFullWidth: "FullWidth", KeyHalfWidth: "HalfWidth",
	KeyHiragana: "Hiragana", KeyKatakana: "Katakana", KeyKana: "Kana", KeyKanji: "Kanji",
	KeyRomanCharacters: "RomanCharacters", KeyJapaneseHiragana: "JapaneseHiragana",
	KeyJapaneseKatakana: "JapaneseKatakana", KeyJapaneseRoman: "JapaneseRoman",
	KeyInputMethodOnOff: "InputMethodOnOff",
}

// String returns a human-readable name for the key
func (k Key) String() string {
	if k.IsFunctionKey() {
		return fmt.Sprintf("F%d", int(k-KeyF1)+1)
	}
	if k < keyCount && keyNames[k] != "" {
		return keyNames[k]
	}
	return fmt.Sprintf("Key(%d)", k)
}

// IsFunctionKey returns true for F1 through F24
func (k Key) IsFunctionKey() bool {
	return k >= KeyF1 && k <= KeyF24
}

// FunctionKey returns the key for Fn, or KeyNone when n is out of range
func FunctionKey(n int) Key {
	if n < 1 || n > 24 {
		return KeyNone
	}
	return KeyF1 + Key(n-1)
}

// ignoredKeys have no meaning to the line editor. The dispatcher leaves them
// to the host untouched, without snapping the caret.
var ignoredKeys = map[Key]bool{
	KeyNone: true, KeyTab: true, KeyKPAdd: true, KeyKPDecimal: true,
	KeyShift: true, KeyControl: true, KeyAlt: true, KeyAltGraph: true, KeyMeta: true, KeyWindows: true,
	KeyCapsLock: true, KeyNumLock: true, KeyScrollLock: true, KeyKanaLock: true,
	KeyPause: true, KeyPrintScreen: true, KeyHelp: true, KeyUndo: true, KeyAgain: true,
	KeyFind: true, KeyStop: true, KeyProps: true, KeyCompose: true, KeyContextMenu: true,
	KeyCancel: true, KeyAccept: true, KeyBegin: true, KeyFinal: true, KeyCodeInput: true,
	KeyAllCandidates: true, KeyPreviousCandidate: true, KeyAlphanumeric: true,
	KeyConvert: true, KeyNonConvert: true, KeyModeChange: true,
	KeyFullWidth: true, KeyHalfWidth: true, KeyHiragana: true, KeyKatakana: true,
	KeyKana: true, KeyKanji: true, KeyRomanCharacters: true,
	KeyJapaneseHiragana: true, KeyJapaneseKatakana: true, KeyJapaneseRoman: true,
	KeyInputMethodOnOff: true,
}

// IsIgnored reports whether the line editor disregards this key entirely
func (k Key) IsIgnored() bool {
	return ignoredKeys[k] || k.IsFunctionKey()
}

// Modifier is a bit set of held modifier keys
type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
	ModMeta

	ModNone Modifier = 0
)

// Has returns true if all bits of m2 are set in m
func (m Modifier) Has(m2 Modifier) bool {
	return m&m2 == m2
}

// String returns e.g. "Ctrl+Shift"
func (m Modifier) String() string {
	var parts []string
	if m.Has(ModCtrl) {
		parts = append(parts, "Ctrl")
	}
	if m.Has(ModAlt) {
		parts = append(parts, "Alt")
	}
	if m.Has(ModMeta) {
		parts = append(parts, "Meta")
	}
	if m.Has(ModShift) {
		parts = append(parts, "Shift")
	}
	return strings.Join(parts, "+")
}

// KeyEvent is a single key press or release delivered by the host
type KeyEvent struct {
	Key       Key
	Rune      rune // Character for KeyRune events
	Modifiers Modifier
}

// RuneEvent builds a KeyRune event
func RuneEvent(r rune, mods Modifier) KeyEvent {
	return KeyEvent{Key: KeyRune, Rune: r, Modifiers: mods}
}

// SpecialEvent builds an event for a non-character key
func SpecialEvent(k Key, mods Modifier) KeyEvent {
	return KeyEvent{Key: k, Modifiers: mods}
}

// ControlOrMeta reports whether Ctrl or Meta (Command) is held
func (e KeyEvent) ControlOrMeta() bool {
	return e.Modifiers&(ModCtrl|ModMeta) != 0
}

// IsLetter reports whether the event is the given letter key regardless of
// case
func (e KeyEvent) IsLetter(letter rune) bool {
	return e.Key == KeyRune && unicode.ToLower(e.Rune) == unicode.ToLower(letter)
}

// IsShortcut reports whether the event is Ctrl/Meta + letter
func (e KeyEvent) IsShortcut(letter rune) bool {
	return e.ControlOrMeta() && e.IsLetter(letter)
}

// String returns a canonical representation such as "Ctrl+a" or "PageUp"
func (e KeyEvent) String() string {
	name := e.Key.String()
	if e.Key == KeyRune {
		name = string(e.Rune)
	}
	if mods := e.Modifiers.String(); mods != "" {
		return mods + "+" + name
	}
	return name
}

// MouseButton identifies a mouse button
type MouseButton uint8

const (
	MouseNone MouseButton = iota
	MousePrimary
	MouseMiddle
	MouseSecondary
)
