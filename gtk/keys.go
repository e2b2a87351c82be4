package purfectconsolegtk

import (
	"github.com/gotk3/gotk3/gdk"
	"github.com/phroun/purfectconsole"
)

// specialKeys maps GDK keyvals of non-character keys
var specialKeys = map[uint]purfectconsole.Key{
	gdk.KEY_Return: purfectconsole.KeyEnter, gdk.KEY_KP_Enter: purfectconsole.KeyEnter,
	gdk.KEY_ISO_Enter: purfectconsole.KeyEnter,
	gdk.KEY_BackSpace: purfectconsole.KeyBackspace,
	gdk.KEY_Tab:       purfectconsole.KeyTab, gdk.KEY_ISO_Left_Tab: purfectconsole.KeyTab,
	gdk.KEY_KP_Tab:    purfectconsole.KeyTab,
	gdk.KEY_Escape:    purfectconsole.KeyEscape,
	gdk.KEY_Delete:    purfectconsole.KeyDelete, gdk.KEY_KP_Delete: purfectconsole.KeyDelete,
	gdk.KEY_Insert:    purfectconsole.KeyInsert, gdk.KEY_KP_Insert: purfectconsole.KeyInsert,
	gdk.KEY_Home:      purfectconsole.KeyHome, gdk.KEY_KP_Home: purfectconsole.KeyHome,
	gdk.KEY_End:       purfectconsole.KeyEnd, gdk.KEY_KP_End: purfectconsole.KeyEnd,
	gdk.KEY_Page_Up:   purfectconsole.KeyPageUp, gdk.KEY_KP_Page_Up: purfectconsole.KeyPageUp,
	gdk.KEY_Page_Down: purfectconsole.KeyPageDown, gdk.KEY_KP_Page_Down: purfectconsole.KeyPageDown,
	gdk.KEY_Up:        purfectconsole.KeyUp, gdk.KEY_Down: purfectconsole.KeyDown,
	gdk.KEY_Left:      purfectconsole.KeyLeft, gdk.KEY_Right: purfectconsole.KeyRight,
	gdk.KEY_KP_Up:     purfectconsole.KeyKPUp, gdk.KEY_KP_Down: purfectconsole.KeyKPDown,
	gdk.KEY_KP_Left:   purfectconsole.KeyKPLeft, gdk.KEY_KP_Right: purfectconsole.KeyKPRight,
	gdk.KEY_KP_Add:    purfectconsole.KeyKPAdd, gdk.KEY_KP_Decimal: purfectconsole.KeyKPDecimal,
	gdk.KEY_Copy:      purfectconsole.KeyCopy, gdk.KEY_Cut: purfectconsole.KeyCut,
	gdk.KEY_Paste:     purfectconsole.KeyPaste,

	gdk.KEY_Shift_L: purfectconsole.KeyShift, gdk.KEY_Shift_R: purfectconsole.KeyShift,
	gdk.KEY_Control_L: purfectconsole.KeyControl, gdk.KEY_Control_R: purfectconsole.KeyControl,
	gdk.KEY_Alt_L: purfectconsole.KeyAlt, gdk.KEY_Alt_R: purfectconsole.KeyAlt,
	gdk.KEY_ISO_Level3_Shift: purfectconsole.KeyAltGraph,
	gdk.KEY_Meta_L: purfectconsole.KeyMeta, gdk.KEY_Meta_R: purfectconsole.KeyMeta,
	gdk.KEY_Super_L: purfectconsole.KeyWindows, gdk.KEY_Super_R: purfectconsole.KeyWindows,
	gdk.KEY_Hyper_L: purfectconsole.KeyWindows, gdk.KEY_Hyper_R: purfectconsole.KeyWindows,
	gdk.KEY_Caps_Lock: purfectconsole.KeyCapsLock, gdk.KEY_Num_Lock: purfectconsole.KeyNumLock,
	gdk.KEY_Scroll_Lock: purfectconsole.KeyScrollLock,

	gdk.KEY_Pause: purfectconsole.KeyPause, gdk.KEY_Print: purfectconsole.KeyPrintScreen,
	gdk.KEY_Help: purfectconsole.KeyHelp, gdk.KEY_Undo: purfectconsole.KeyUndo,
	gdk.KEY_Redo: purfectconsole.KeyAgain, gdk.KEY_Find: purfectconsole.KeyFind,
	gdk.KEY_Cancel: purfectconsole.KeyCancel, gdk.KEY_Menu: purfectconsole.KeyContextMenu,
	gdk.KEY_Multi_key: purfectconsole.KeyCompose, gdk.KEY_Begin: purfectconsole.KeyBegin,
	gdk.KEY_KP_Begin: purfectconsole.KeyBegin,
}

// imeKeys maps X keysyms of input method keys
var imeKeys = map[uint]purfectconsole.Key{
	0xff21: purfectconsole.KeyKanji,
	0xff22: purfectconsole.KeyNonConvert,  // Muhenkan
	0xff23: purfectconsole.KeyConvert,     // Henkan
	0xff24: purfectconsole.KeyRomanCharacters,
	0xff25: purfectconsole.KeyHiragana,
	0xff26: purfectconsole.KeyKatakana,
	0xff27: purfectconsole.KeyKana,        // Hiragana_Katakana
	0xff28: purfectconsole.KeyFullWidth,   // Zenkaku
	0xff29: purfectconsole.KeyHalfWidth,   // Hankaku
	0xff2a: purfectconsole.KeyFullWidth,   // Zenkaku_Hankaku
	0xff2d: purfectconsole.KeyKanaLock,
	0xff2f: purfectconsole.KeyAlphanumeric, // Eisu_toggle
	0xff37: purfectconsole.KeyCodeInput,
	0xff3d: purfectconsole.KeyAllCandidates,
	0xff3e: purfectconsole.KeyPreviousCandidate,
	0xff7e: purfectconsole.KeyModeChange,
}

// translateKey converts a GDK key event. ok is false for keyvals that are
// neither a known special key nor a character.
func translateKey(keyval, state uint) (ev purfectconsole.KeyEvent, ok bool) {
	var mods purfectconsole.Modifier
	if state&uint(gdk.SHIFT_MASK) != 0 {
		mods |= purfectconsole.ModShift
	}
	if state&uint(gdk.CONTROL_MASK) != 0 {
		mods |= purfectconsole.ModCtrl
	}
	if state&uint(gdk.MOD1_MASK) != 0 {
		mods |= purfectconsole.ModAlt
	}
	if state&uint(gdk.META_MASK|gdk.SUPER_MASK) != 0 {
		mods |= purfectconsole.ModMeta
	}

	if keyval >= gdk.KEY_F1 && keyval <= gdk.KEY_F24 {
		return purfectconsole.SpecialEvent(purfectconsole.FunctionKey(int(keyval-gdk.KEY_F1)+1), mods), true
	}
	if key, found := specialKeys[keyval]; found {
		return purfectconsole.SpecialEvent(key, mods), true
	}
	if key, found := imeKeys[keyval]; found {
		return purfectconsole.SpecialEvent(key, mods), true
	}
	if r := gdk.KeyvalToUnicode(keyval); r != 0 {
		return purfectconsole.RuneEvent(r, mods), true
	}
	return ev, false
}

// translateButton converts a GDK button number
func translateButton(button uint) purfectconsole.MouseButton {
	switch button {
	case 1:
		return purfectconsole.MousePrimary
	case 2:
		return purfectconsole.MouseMiddle
	case 3:
		return purfectconsole.MouseSecondary
	}
	return purfectconsole.MouseNone
}
