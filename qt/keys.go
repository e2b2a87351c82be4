package purfectconsoleqt

import (
	"runtime"
	"unicode"

	"github.com/mappu/miqt/qt"
	"github.com/phroun/purfectconsole"
)

var specialKeys = map[qt.Key]purfectconsole.Key{
	qt.Key_Return: purfectconsole.KeyEnter, qt.Key_Enter: purfectconsole.KeyEnter,
	qt.Key_Backspace: purfectconsole.KeyBackspace,
	qt.Key_Tab:       purfectconsole.KeyTab, qt.Key_Backtab: purfectconsole.KeyTab,
	qt.Key_Escape:    purfectconsole.KeyEscape,
	qt.Key_Delete:    purfectconsole.KeyDelete,
	qt.Key_Insert:    purfectconsole.KeyInsert,
	qt.Key_Home:      purfectconsole.KeyHome, qt.Key_End: purfectconsole.KeyEnd,
	qt.Key_PageUp:    purfectconsole.KeyPageUp, qt.Key_PageDown: purfectconsole.KeyPageDown,
	qt.Key_Up:        purfectconsole.KeyUp, qt.Key_Down: purfectconsole.KeyDown,
	qt.Key_Left:      purfectconsole.KeyLeft, qt.Key_Right: purfectconsole.KeyRight,
	qt.Key_Copy:      purfectconsole.KeyCopy, qt.Key_Cut: purfectconsole.KeyCut,
	qt.Key_Paste:     purfectconsole.KeyPaste,

	qt.Key_Shift: purfectconsole.KeyShift, qt.Key_Control: purfectconsole.KeyControl,
	qt.Key_Alt: purfectconsole.KeyAlt, qt.Key_AltGr: purfectconsole.KeyAltGraph,
	qt.Key_Meta: purfectconsole.KeyMeta,
	qt.Key_Super_L: purfectconsole.KeyWindows, qt.Key_Super_R: purfectconsole.KeyWindows,
	qt.Key_Hyper_L: purfectconsole.KeyWindows, qt.Key_Hyper_R: purfectconsole.KeyWindows,
	qt.Key_CapsLock: purfectconsole.KeyCapsLock, qt.Key_NumLock: purfectconsole.KeyNumLock,
	qt.Key_ScrollLock: purfectconsole.KeyScrollLock,

	qt.Key_Pause: purfectconsole.KeyPause, qt.Key_Print: purfectconsole.KeyPrintScreen,
	qt.Key_Help: purfectconsole.KeyHelp, qt.Key_Undo: purfectconsole.KeyUndo,
	qt.Key_Redo: purfectconsole.KeyAgain, qt.Key_Find: purfectconsole.KeyFind,
	qt.Key_Stop: purfectconsole.KeyStop, qt.Key_Cancel: purfectconsole.KeyCancel,
	qt.Key_Menu: purfectconsole.KeyContextMenu, qt.Key_Multi_key: purfectconsole.KeyCompose,

	qt.Key_Kanji: purfectconsole.KeyKanji, qt.Key_Muhenkan: purfectconsole.KeyNonConvert,
	qt.Key_Henkan: purfectconsole.KeyConvert, qt.Key_Romaji: purfectconsole.KeyRomanCharacters,
	qt.Key_Hiragana: purfectconsole.KeyHiragana, qt.Key_Katakana: purfectconsole.KeyKatakana,
	qt.Key_Hiragana_Katakana: purfectconsole.KeyKana,
	qt.Key_Zenkaku: purfectconsole.KeyFullWidth, qt.Key_Hankaku: purfectconsole.KeyHalfWidth,
	qt.Key_Zenkaku_Hankaku: purfectconsole.KeyFullWidth,
	qt.Key_Kana_Lock: purfectconsole.KeyKanaLock, qt.Key_Eisu_toggle: purfectconsole.KeyAlphanumeric,
	qt.Key_Codeinput: purfectconsole.KeyCodeInput,
	qt.Key_MultipleCandidate: purfectconsole.KeyAllCandidates,
	qt.Key_PreviousCandidate: purfectconsole.KeyPreviousCandidate,
	qt.Key_Mode_switch: purfectconsole.KeyModeChange,
}

// keypadKeys applies when the keypad modifier is set
var keypadKeys = map[qt.Key]purfectconsole.Key{
	qt.Key_Up: purfectconsole.KeyKPUp, qt.Key_Down: purfectconsole.KeyKPDown,
	qt.Key_Left: purfectconsole.KeyKPLeft, qt.Key_Right: purfectconsole.KeyKPRight,
	qt.Key_Plus: purfectconsole.KeyKPAdd, qt.Key_Period: purfectconsole.KeyKPDecimal,
	qt.Key_Comma: purfectconsole.KeyKPDecimal, qt.Key_Clear: purfectconsole.KeyBegin,
}

func translateModifiers(m qt.KeyboardModifier) purfectconsole.Modifier {
	hasCtrl := m&qt.ControlModifier != 0
	hasMeta := m&qt.MetaModifier != 0
	// Qt reports Command as Control on macOS
	if runtime.GOOS == "darwin" {
		hasCtrl, hasMeta = hasMeta, hasCtrl
	}

	var mods purfectconsole.Modifier
	if m&qt.ShiftModifier != 0 {
		mods |= purfectconsole.ModShift
	}
	if hasCtrl {
		mods |= purfectconsole.ModCtrl
	}
	if m&qt.AltModifier != 0 {
		mods |= purfectconsole.ModAlt
	}
	if hasMeta {
		mods |= purfectconsole.ModMeta
	}
	return mods
}

// translateKey converts a Qt key code, its modifiers and its text. ok is
// false for codes that are neither a known special key nor a character.
func translateKey(code int, m qt.KeyboardModifier, text string) (ev purfectconsole.KeyEvent, ok bool) {
	mods := translateModifiers(m)
	key := qt.Key(code)

	if key >= qt.Key_F1 && key <= qt.Key_F24 {
		return purfectconsole.SpecialEvent(purfectconsole.FunctionKey(int(key-qt.Key_F1)+1), mods), true
	}
	if m&qt.KeypadModifier != 0 {
		if k, found := keypadKeys[key]; found {
			return purfectconsole.SpecialEvent(k, mods), true
		}
	}
	if k, found := specialKeys[key]; found {
		return purfectconsole.SpecialEvent(k, mods), true
	}

	// The text carries the layout's character; with Control held it is a
	// control code, so fall back to the key code
	for _, r := range text {
		if unicode.IsPrint(r) {
			return purfectconsole.RuneEvent(r, mods), true
		}
		break
	}
	if code > 0 && code < 0x01000000 {
		r := rune(code)
		if mods&purfectconsole.ModShift == 0 {
			r = unicode.ToLower(r)
		}
		return purfectconsole.RuneEvent(r, mods), true
	}
	return ev, false
}

func translateButton(b qt.MouseButton) purfectconsole.MouseButton {
	switch b {
	case qt.LeftButton:
		return purfectconsole.MousePrimary
	case qt.MiddleButton:
		return purfectconsole.MouseMiddle
	case qt.RightButton:
		return purfectconsole.MouseSecondary
	}
	return purfectconsole.MouseNone
}
