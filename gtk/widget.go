package purfectconsolegtk

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/gtk"
	"github.com/phroun/purfectconsole"
)

// Widget is a scrolled TextView styled from console options
type Widget struct {
	scroller  *gtk.ScrolledWindow
	view      *gtk.TextView
	clipboard *gtk.Clipboard
	css       *gtk.CssProvider
}

// NewWidget creates the TextView and applies font and colours
func NewWidget(opts purfectconsole.Options, logger *slog.Logger) (*Widget, error) {
	w := &Widget{}
	var err error

	w.scroller, err = gtk.ScrolledWindowNew(nil, nil)
	if err != nil {
		return nil, err
	}
	w.scroller.SetPolicy(gtk.POLICY_AUTOMATIC, gtk.POLICY_ALWAYS)

	w.view, err = gtk.TextViewNew()
	if err != nil {
		return nil, err
	}
	w.view.SetName("purfectconsole-view")
	w.view.SetWrapMode(gtk.WRAP_CHAR)
	w.view.SetMonospace(true)
	w.view.SetAcceptsTab(true)
	w.view.SetCursorVisible(true)
	w.view.AddEvents(int(gdk.BUTTON_PRESS_MASK | gdk.BUTTON_RELEASE_MASK |
		gdk.KEY_PRESS_MASK | gdk.KEY_RELEASE_MASK))
	w.scroller.Add(w.view)

	w.clipboard, err = gtk.ClipboardGet(gdk.SELECTION_CLIPBOARD)
	if err != nil {
		logger.Warn("clipboard unavailable", "error",
			&purfectconsole.ResourceError{Kind: "clipboard", Err: err})
		w.clipboard = nil
	}

	if opts.FontFile != "" {
		// Pango resolves families through fontconfig; files cannot be
		// registered from here
		logger.Warn("using font family instead of file", "error", &purfectconsole.ResourceError{
			Kind: "font", Name: opts.FontFile,
			Err: fmt.Errorf("font files are not loadable by the GTK host, using %q", opts.FontName),
		})
	}
	if err := w.applyStyle(opts); err != nil {
		logger.Warn("console style not applied", "error", err)
	}
	return w, nil
}

// styleCSS renders the CSS for font and colours
func styleCSS(opts purfectconsole.Options) string {
	weight, style := "normal", "normal"
	switch opts.FontStyle {
	case purfectconsole.FontBold:
		weight = "bold"
	case purfectconsole.FontItalic:
		style = "italic"
	case purfectconsole.FontBoldItalic:
		weight, style = "bold", "italic"
	}
	family := strings.ReplaceAll(opts.FontName, `"`, `\"`)
	fg, bg := opts.FontColor, opts.BackgroundColor
	return fmt.Sprintf(`
		#purfectconsole-view, #purfectconsole-view text {
			font-family: "%s";
			font-size: %dpt;
			font-weight: %s;
			font-style: %s;
			color: rgb(%d, %d, %d);
			background-color: rgb(%d, %d, %d);
			caret-color: rgb(%d, %d, %d);
		}
		#purfectconsole-view text selection {
			color: rgb(%d, %d, %d);
			background-color: rgb(%d, %d, %d);
		}
	`, family, opts.FontSize, weight, style,
		fg.R, fg.G, fg.B, bg.R, bg.G, bg.B, fg.R, fg.G, fg.B,
		bg.R, bg.G, bg.B, fg.R, fg.G, fg.B)
}

func (w *Widget) applyStyle(opts purfectconsole.Options) error {
	if w.css == nil {
		provider, err := gtk.CssProviderNew()
		if err != nil {
			return err
		}
		w.css = provider
		ctx, err := w.view.GetStyleContext()
		if err != nil {
			return err
		}
		ctx.AddProvider(w.css, gtk.STYLE_PROVIDER_PRIORITY_APPLICATION)
	}
	return w.css.LoadFromData(styleCSS(opts))
}

// Box returns the container widget to pack into a window
func (w *Widget) Box() *gtk.ScrolledWindow {
	return w.scroller
}

// TextView returns the text view
func (w *Widget) TextView() *gtk.TextView {
	return w.view
}
