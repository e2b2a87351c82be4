package purfectconsoleqt

import (
	"log/slog"
	"unicode/utf16"

	"github.com/mappu/miqt/qt"
	"github.com/phroun/purfectconsole"
)

// Surface edits a QPlainTextEdit's document. Offsets are Qt document
// positions, which count UTF-16 code units. All methods must run on the Qt
// main thread.
type Surface struct {
	edit   *qt.QPlainTextEdit
	logger *slog.Logger
}

// NewSurface wraps edit
func NewSurface(edit *qt.QPlainTextEdit, logger *slog.Logger) *Surface {
	if logger == nil {
		logger = slog.Default()
	}
	return &Surface{edit: edit, logger: logger}
}

// cursor returns a free cursor on the document that does not move the
// visible caret
func (s *Surface) cursor() *qt.QTextCursor {
	return qt.NewQTextCursor2(s.edit.Document())
}

// Append adds text at the end. A caret sitting at the end without a
// selection follows the output.
func (s *Surface) Append(text string) {
	start, end := s.Selection()
	follow := start == end && end == s.Len()

	c := s.cursor()
	c.MovePosition(qt.QTextCursor__End)
	c.InsertText(text)

	if follow {
		s.SetCaret(s.Len())
	}
}

// Text returns the characters in [start, end)
func (s *Surface) Text(start, end int) (string, error) {
	units := utf16.Encode([]rune(s.edit.ToPlainText()))
	if err := purfectconsole.CheckRange("text", start, end, len(units)); err != nil {
		return "", err
	}
	return string(utf16.Decode(units[start:end])), nil
}

// Len returns the document length in positions
func (s *Surface) Len() int {
	// The document always ends in a paragraph separator that is not text
	return s.edit.Document().CharacterCount() - 1
}

// Replace replaces [start, end) with text
func (s *Surface) Replace(start, end int, text string) error {
	if err := purfectconsole.CheckRange("replace", start, end, s.Len()); err != nil {
		return err
	}
	c := s.cursor()
	c.SetPosition(start)
	c.SetPosition2(end, qt.QTextCursor__KeepAnchor)
	c.InsertText(text)
	s.edit.EnsureCursorVisible()
	return nil
}

// SetSelection selects [start, end) with the caret at end
func (s *Surface) SetSelection(start, end int) error {
	if err := purfectconsole.CheckRange("select", start, end, s.Len()); err != nil {
		return err
	}
	c := s.edit.TextCursor()
	c.SetPosition(start)
	c.SetPosition2(end, qt.QTextCursor__KeepAnchor)
	s.edit.SetTextCursor(c)
	return nil
}

// Selection returns the selection bounds, both at the caret when empty
func (s *Surface) Selection() (start, end int) {
	c := s.edit.TextCursor()
	return c.SelectionStart(), c.SelectionEnd()
}

// SetCaret moves the caret and clears the selection
func (s *Surface) SetCaret(pos int) error {
	if err := purfectconsole.CheckRange("caret", pos, pos, s.Len()); err != nil {
		return err
	}
	c := s.edit.TextCursor()
	c.SetPosition(pos)
	s.edit.SetTextCursor(c)
	s.edit.EnsureCursorVisible()
	return nil
}

// Caret returns the caret position
func (s *Surface) Caret() int {
	return s.edit.TextCursor().Position()
}

// CopySelection copies the selection to the system clipboard
func (s *Surface) CopySelection() {
	s.edit.Copy()
}

// PasteAtCaret inserts the clipboard text at the caret, replacing the
// selection
func (s *Surface) PasteAtCaret() {
	if qt.QGuiApplication_Clipboard().Text() == "" {
		s.logger.Debug("clipboard has no text")
		return
	}
	s.edit.Paste()
	s.edit.EnsureCursorVisible()
}
