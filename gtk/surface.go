package purfectconsolegtk

import (
	"log/slog"

	"github.com/gotk3/gotk3/gtk"
	"github.com/phroun/purfectconsole"
)

// Surface edits a GTK TextView's buffer. Offsets are GTK character
// offsets. All methods must run on the GTK main thread.
type Surface struct {
	view      *gtk.TextView
	buf       *gtk.TextBuffer
	clipboard *gtk.Clipboard
	logger    *slog.Logger
}

// NewSurface wraps view. clipboard may be nil when no display clipboard is
// available; copy and paste then do nothing.
func NewSurface(view *gtk.TextView, clipboard *gtk.Clipboard, logger *slog.Logger) (*Surface, error) {
	buf, err := view.GetBuffer()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Surface{view: view, buf: buf, clipboard: clipboard, logger: logger}, nil
}

// Append adds text at the end and keeps the caret in view when it follows
// the output
func (s *Surface) Append(text string) {
	s.buf.Insert(s.buf.GetEndIter(), text)
	if s.Caret() == s.Len() {
		s.scrollToCaret()
	}
}

// Text returns the characters in [start, end)
func (s *Surface) Text(start, end int) (string, error) {
	if err := purfectconsole.CheckRange("text", start, end, s.Len()); err != nil {
		return "", err
	}
	return s.buf.GetText(s.buf.GetIterAtOffset(start), s.buf.GetIterAtOffset(end), true)
}

// Len returns the character count
func (s *Surface) Len() int {
	return s.buf.GetCharCount()
}

// Replace replaces [start, end) with text
func (s *Surface) Replace(start, end int, text string) error {
	if err := purfectconsole.CheckRange("replace", start, end, s.Len()); err != nil {
		return err
	}
	if start != end {
		s.buf.Delete(s.buf.GetIterAtOffset(start), s.buf.GetIterAtOffset(end))
	}
	if text != "" {
		s.buf.Insert(s.buf.GetIterAtOffset(start), text)
	}
	s.scrollToCaret()
	return nil
}

// SetSelection selects [start, end) with the caret at end
func (s *Surface) SetSelection(start, end int) error {
	if err := purfectconsole.CheckRange("select", start, end, s.Len()); err != nil {
		return err
	}
	s.buf.SelectRange(s.buf.GetIterAtOffset(end), s.buf.GetIterAtOffset(start))
	return nil
}

// Selection returns the selection bounds, both at the caret when empty
func (s *Surface) Selection() (start, end int) {
	from, to := s.buf.GetSelectionBounds()
	start, end = from.GetOffset(), to.GetOffset()
	if start > end {
		start, end = end, start
	}
	return start, end
}

// SetCaret moves the caret and clears the selection
func (s *Surface) SetCaret(pos int) error {
	if err := purfectconsole.CheckRange("caret", pos, pos, s.Len()); err != nil {
		return err
	}
	s.buf.PlaceCursor(s.buf.GetIterAtOffset(pos))
	s.scrollToCaret()
	return nil
}

// Caret returns the caret offset
func (s *Surface) Caret() int {
	return s.buf.GetIterAtMark(s.buf.GetInsert()).GetOffset()
}

// CopySelection copies the selection to the clipboard
func (s *Surface) CopySelection() {
	if s.clipboard != nil {
		s.buf.CopyClipboard(s.clipboard)
	}
}

// PasteAtCaret requests the clipboard text and inserts it at the caret,
// replacing the selection, once it arrives. It returns at once: waiting for
// the text would run a nested main loop while the console lock is held.
func (s *Surface) PasteAtCaret() {
	if s.clipboard == nil {
		s.logger.Debug("paste ignored without a clipboard")
		return
	}
	s.buf.PasteClipboard(s.clipboard, nil, true)
}

func (s *Surface) scrollToCaret() {
	s.view.ScrollToMark(s.buf.GetInsert(), 0, false, 0, 0)
}
