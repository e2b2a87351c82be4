// Package purfectconsoleqt hosts a purfectconsole Console on a Qt5
// QPlainTextEdit. Key and mouse events are routed through the console's key
// policy; whatever it does not consume is passed on to the text edit's own
// handlers. Output produced on other goroutines is queued and applied on
// the Qt main thread.
package purfectconsoleqt

import (
	"errors"
	"io"

	"github.com/mappu/miqt/qt"
	"github.com/phroun/purfectconsole"
)

// Terminal is a console widget
type Terminal struct {
	widget    *Widget
	surface   *Surface
	console   *purfectconsole.Console
	scheduler *scheduler
	options   purfectconsole.Options

	suppressMenu bool
}

// New creates the widget and its console. It must be called on the Qt main
// thread after the application object exists.
func New(opts purfectconsole.Options) (*Terminal, error) {
	styled := opts.WithDefaults()
	widget := NewWidget(styled, styled.Logger)

	sched := newScheduler(widget.edit.QObject)
	opts.Schedule = sched.schedule

	surface := NewSurface(widget.edit, styled.Logger)
	console, err := purfectconsole.New(surface, opts)
	if err != nil {
		sched.stop()
		return nil, err
	}
	surface.logger = console.Logger()

	t := &Terminal{
		widget:    widget,
		surface:   surface,
		console:   console,
		scheduler: sched,
		options:   console.Options(),
	}
	t.connectEvents()
	return t, nil
}

// connectEvents overrides the text edit's handlers. Events the console
// does not consume reach the default implementation through super.
func (t *Terminal) connectEvents() {
	edit := t.widget.edit

	edit.OnKeyPressEvent(func(super func(event *qt.QKeyEvent), event *qt.QKeyEvent) {
		ke, ok := translateKey(event.Key(), event.Modifiers(), event.Text())
		if ok && t.console.HandleKey(ke) {
			event.Accept()
			return
		}
		super(event)
	})
	edit.OnKeyReleaseEvent(func(super func(event *qt.QKeyEvent), event *qt.QKeyEvent) {
		if ke, ok := translateKey(event.Key(), event.Modifiers(), event.Text()); ok {
			t.console.HandleKeyRelease(ke)
		}
		super(event)
	})
	edit.OnMousePressEvent(func(super func(event *qt.QMouseEvent), event *qt.QMouseEvent) {
		button := translateButton(event.Button())
		if t.console.HandleMousePress(button) {
			t.suppressMenu = button == purfectconsole.MouseSecondary
			event.Accept()
			return
		}
		super(event)
	})
	edit.OnMouseReleaseEvent(func(super func(event *qt.QMouseEvent), event *qt.QMouseEvent) {
		t.console.HandleMouseRelease(translateButton(event.Button()))
		super(event)
	})
	edit.OnContextMenuEvent(func(super func(event *qt.QContextMenuEvent), event *qt.QContextMenuEvent) {
		if t.suppressMenu {
			t.suppressMenu = false
			event.Accept()
			return
		}
		super(event)
	})
	edit.OnResizeEvent(func(super func(event *qt.QResizeEvent), event *qt.QResizeEvent) {
		super(event)
		t.updateSize()
	})
}

func (t *Terminal) updateSize() {
	if cols, rows := t.widget.cells(); cols > 0 && rows > 0 {
		t.console.Resize(cols, rows)
	}
}

// Widget returns the widget to place in a window
func (t *Terminal) Widget() *qt.QWidget {
	return t.widget.QWidget()
}

// TextEdit returns the underlying text edit
func (t *Terminal) TextEdit() *qt.QPlainTextEdit {
	return t.widget.edit
}

// Console returns the hosted console
func (t *Terminal) Console() *purfectconsole.Console {
	return t.console
}

// Input returns the reader receiving entered lines
func (t *Terminal) Input() io.Reader {
	return t.console.Input()
}

// Output returns the writer whose text is appended to the edit
func (t *Terminal) Output() io.Writer {
	return t.console.Output()
}

// RunCommand runs a command wired to the console
func (t *Terminal) RunCommand(name string, args ...string) (*purfectconsole.Process, error) {
	return t.console.RunCommand(name, args...)
}

// SetStyle changes font and colours. A font file that cannot be loaded is
// reported; the named family is used instead.
func (t *Terminal) SetStyle(opts purfectconsole.Options) error {
	err := t.widget.applyStyle(opts.WithDefaults())
	t.updateSize()
	return err
}

// Close closes the console and applies output still queued. It must be
// called on the Qt main thread.
func (t *Terminal) Close() error {
	err := t.console.Close()
	t.scheduler.stop()
	return err
}

// ConfigureWindow applies title, size, resizability and icon from the
// console options to win. Icon failures are logged.
func (t *Terminal) ConfigureWindow(win *qt.QWidget) {
	opts := t.options
	win.SetWindowTitle(opts.Title)

	screenW, screenH := 1024, 768
	if screen := qt.QGuiApplication_PrimaryScreen(); screen != nil {
		geom := screen.AvailableGeometry()
		screenW, screenH = geom.Width(), geom.Height()
	}
	w, h := purfectconsole.RequestSize(opts.Width, opts.Height, screenW, screenH)
	if opts.Resizable {
		win.Resize(w, h)
	} else {
		win.SetFixedSize2(w, h)
	}

	if opts.IconFile != "" {
		icon := qt.NewQIcon4(opts.IconFile)
		if icon.IsNull() {
			t.console.Logger().Warn("window icon not loaded", "error",
				&purfectconsole.ResourceError{Kind: "icon", Name: opts.IconFile,
					Err: errors.New("not a loadable image")})
			return
		}
		win.SetWindowIcon(icon)
	}
}
