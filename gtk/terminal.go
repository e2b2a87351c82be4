// Package purfectconsolegtk hosts a purfectconsole Console on a GTK3
// TextView. Key and mouse events are routed through the console's key
// policy; whatever it does not consume falls through to the TextView's own
// editing. Output produced on other goroutines is applied on the GTK main
// thread.
package purfectconsolegtk

import (
	"io"

	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"
	"github.com/phroun/purfectconsole"
)

// Terminal is a console widget
type Terminal struct {
	widget  *Widget
	surface *Surface
	console *purfectconsole.Console
	options purfectconsole.Options
}

// New creates the widget and its console. It must be called on the GTK
// main thread.
func New(opts purfectconsole.Options) (*Terminal, error) {
	opts.Schedule = func(fn func()) {
		glib.IdleAdd(fn)
	}
	// The widget is styled before the console exists
	styled := opts.WithDefaults()

	widget, err := NewWidget(styled, styled.Logger)
	if err != nil {
		return nil, err
	}
	surface, err := NewSurface(widget.view, widget.clipboard, styled.Logger)
	if err != nil {
		return nil, err
	}
	console, err := purfectconsole.New(surface, opts)
	if err != nil {
		return nil, err
	}
	surface.logger = console.Logger()

	t := &Terminal{
		widget:  widget,
		surface: surface,
		console: console,
		options: console.Options(),
	}
	t.connectSignals()
	return t, nil
}

func (t *Terminal) connectSignals() {
	view := t.widget.view

	view.Connect("key-press-event", func(_ *gtk.TextView, ev *gdk.Event) bool {
		key := gdk.EventKeyNewFromEvent(ev)
		ke, ok := translateKey(key.KeyVal(), key.State())
		if !ok {
			return false
		}
		return t.console.HandleKey(ke)
	})
	view.Connect("key-release-event", func(_ *gtk.TextView, ev *gdk.Event) bool {
		key := gdk.EventKeyNewFromEvent(ev)
		if ke, ok := translateKey(key.KeyVal(), key.State()); ok {
			t.console.HandleKeyRelease(ke)
		}
		return false
	})
	view.Connect("button-press-event", func(_ *gtk.TextView, ev *gdk.Event) bool {
		btn := gdk.EventButtonNewFromEvent(ev)
		// Consuming the secondary click also suppresses the context menu
		return t.console.HandleMousePress(translateButton(uint(btn.Button())))
	})
	view.Connect("button-release-event", func(_ *gtk.TextView, ev *gdk.Event) bool {
		btn := gdk.EventButtonNewFromEvent(ev)
		t.console.HandleMouseRelease(translateButton(uint(btn.Button())))
		return false
	})
	view.Connect("size-allocate", func() {
		t.updateSize()
	})
	view.Connect("destroy", func() {
		t.Close()
	})
}

// updateSize reports the visible size in character cells to the console,
// estimating the cell from the font size at 96 dpi
func (t *Terminal) updateSize() {
	px := float64(t.options.FontSize) * 96 / 72
	cw, ch := int(px*0.6), int(px*1.2)
	if cw <= 0 || ch <= 0 {
		return
	}
	view := t.widget.view
	t.console.Resize(view.GetAllocatedWidth()/cw, view.GetAllocatedHeight()/ch)
}

// Widget returns the container to pack into a window
func (t *Terminal) Widget() *gtk.ScrolledWindow {
	return t.widget.Box()
}

// TextView returns the underlying text view
func (t *Terminal) TextView() *gtk.TextView {
	return t.widget.view
}

// Console returns the hosted console
func (t *Terminal) Console() *purfectconsole.Console {
	return t.console
}

// Input returns the reader receiving entered lines
func (t *Terminal) Input() io.Reader {
	return t.console.Input()
}

// Output returns the writer whose text is appended to the view
func (t *Terminal) Output() io.Writer {
	return t.console.Output()
}

// RunCommand runs a command wired to the console
func (t *Terminal) RunCommand(name string, args ...string) (*purfectconsole.Process, error) {
	return t.console.RunCommand(name, args...)
}

// SetStyle changes font and colours
func (t *Terminal) SetStyle(opts purfectconsole.Options) error {
	return t.widget.applyStyle(opts)
}

// Close closes the console; the widget stays usable as a plain text view
func (t *Terminal) Close() error {
	return t.console.Close()
}

// ConfigureWindow applies title, size, resizability and icon from the
// console options to win. Icon failures are logged.
func (t *Terminal) ConfigureWindow(win *gtk.Window) {
	opts := t.options
	win.SetTitle(opts.Title)
	win.SetResizable(opts.Resizable)

	screenW, screenH := 1024, 768
	if screen, err := gdk.ScreenGetDefault(); err == nil {
		screenW, screenH = screen.GetWidth(), screen.GetHeight()
	}
	w, h := purfectconsole.RequestSize(opts.Width, opts.Height, screenW, screenH)
	win.SetDefaultSize(w, h)

	if opts.IconFile != "" {
		if err := win.SetIconFromFile(opts.IconFile); err != nil {
			t.console.Logger().Warn("window icon not loaded", "error",
				&purfectconsole.ResourceError{Kind: "icon", Name: opts.IconFile, Err: err})
		}
	}
}
