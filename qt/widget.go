package purfectconsoleqt

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mappu/miqt/qt"
	"github.com/phroun/purfectconsole"
)

// Qt interprets font sizes differently than GTK/Pango, so sizes are scaled
// to match the GTK host
const qtFontSizeScale = 1.333

// Widget is a QPlainTextEdit styled from console options
type Widget struct {
	edit *qt.QPlainTextEdit

	charWidth  int
	charHeight int
}

// NewWidget creates the text edit and applies font and colours
func NewWidget(opts purfectconsole.Options, logger *slog.Logger) *Widget {
	w := &Widget{edit: qt.NewQPlainTextEdit2()}
	w.edit.SetLineWrapMode(qt.QPlainTextEdit__WidgetWidth)
	w.edit.SetWordWrapMode(qt.QTextOption__WrapAnywhere)
	w.edit.SetTabChangesFocus(false)
	w.edit.SetUndoRedoEnabled(false)
	w.edit.SetFocusPolicy(qt.StrongFocus)
	w.edit.SetAttribute(qt.WA_InputMethodEnabled)

	if err := w.applyStyle(opts); err != nil {
		logger.Warn("console style partly applied", "error", err)
	}
	return w
}

// fontFamily resolves the family to use, registering the font file when
// one is configured
func fontFamily(opts purfectconsole.Options) (string, error) {
	if opts.FontFile == "" {
		return opts.FontName, nil
	}
	id := qt.QFontDatabase_AddApplicationFont(opts.FontFile)
	if id < 0 {
		return opts.FontName, &purfectconsole.ResourceError{Kind: "font", Name: opts.FontFile,
			Err: fmt.Errorf("not a loadable font, using %q", opts.FontName)}
	}
	families := qt.QFontDatabase_ApplicationFontFamilies(id)
	if len(families) == 0 {
		return opts.FontName, &purfectconsole.ResourceError{Kind: "font", Name: opts.FontFile,
			Err: errors.New("font file declares no family")}
	}
	return families[0], nil
}

// styleSheet renders the colours
func styleSheet(opts purfectconsole.Options) string {
	fg, bg := opts.FontColor.ToHex(), opts.BackgroundColor.ToHex()
	return fmt.Sprintf("QPlainTextEdit { color: %s; background-color: %s; "+
		"selection-color: %s; selection-background-color: %s; }", fg, bg, bg, fg)
}

// applyStyle sets font, tab width and colours. A font file that cannot be
// loaded is reported after the named family has been applied.
func (w *Widget) applyStyle(opts purfectconsole.Options) error {
	family, err := fontFamily(opts)

	font := qt.NewQFont6(family, int(float64(opts.FontSize)*qtFontSizeScale))
	font.SetFixedPitch(true)
	font.SetBold(opts.FontStyle == purfectconsole.FontBold || opts.FontStyle == purfectconsole.FontBoldItalic)
	font.SetItalic(opts.FontStyle == purfectconsole.FontItalic || opts.FontStyle == purfectconsole.FontBoldItalic)
	w.edit.SetFont(font)

	metrics := qt.NewQFontMetrics(font)
	w.charWidth = metrics.AverageCharWidth()
	w.charHeight = metrics.Height()
	if w.charWidth < 1 {
		w.charWidth = opts.FontSize * 6 / 10
	}
	if w.charHeight < 1 {
		w.charHeight = opts.FontSize * 12 / 10
	}
	w.edit.SetTabStopDistance(float64(w.charWidth * opts.TabSize))

	w.edit.SetStyleSheet(styleSheet(opts))
	return err
}

// cells returns the visible size in character cells
func (w *Widget) cells() (cols, rows int) {
	vp := w.edit.Viewport()
	if w.charWidth < 1 || w.charHeight < 1 {
		return 0, 0
	}
	return vp.Width() / w.charWidth, vp.Height() / w.charHeight
}

// QWidget returns the widget to place in a layout or window
func (w *Widget) QWidget() *qt.QWidget {
	return w.edit.QWidget
}

// TextEdit returns the text edit
func (w *Widget) TextEdit() *qt.QPlainTextEdit {
	return w.edit
}

// scheduler runs queued functions on the Qt main thread. A 16ms timer
// drains the queue, coalescing work from background goroutines.
type scheduler struct {
	mu    sync.Mutex
	queue []func()
	timer *qt.QTimer
}

func newScheduler(parent *qt.QObject) *scheduler {
	s := &scheduler{timer: qt.NewQTimer2(parent)}
	s.timer.OnTimeout(s.drain)
	s.timer.Start(16)
	return s
}

func (s *scheduler) schedule(fn func()) {
	s.mu.Lock()
	s.queue = append(s.queue, fn)
	s.mu.Unlock()
}

func (s *scheduler) drain() {
	s.mu.Lock()
	queue := s.queue
	s.queue = nil
	s.mu.Unlock()
	for _, fn := range queue {
		fn()
	}
}

// stop drains what is queued and stops the timer
func (s *scheduler) stop() {
	s.timer.Stop()
	s.drain()
}
