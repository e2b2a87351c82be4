package purfectconsole

import (
	"fmt"
	"log/slog"
	"strings"
)

// FontStyle selects the console font face
type FontStyle int

const (
	FontPlain FontStyle = iota
	FontBold
	FontItalic
	FontBoldItalic
)

// String returns the style name used in configuration files
func (s FontStyle) String() string {
	switch s {
	case FontBold:
		return "bold"
	case FontItalic:
		return "italic"
	case FontBoldItalic:
		return "bold-italic"
	default:
		return "plain"
	}
}

// ParseFontStyle parses "plain", "bold", "italic" or "bold-italic"
func ParseFontStyle(s string) (FontStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "plain", "normal", "regular":
		return FontPlain, nil
	case "bold":
		return FontBold, nil
	case "italic":
		return FontItalic, nil
	case "bold-italic", "bolditalic", "bold italic":
		return FontBoldItalic, nil
	}
	return FontPlain, fmt.Errorf("unknown font style %q", s)
}

// Options configures console creation. None of these affect editing; they
// are consumed by the host adapters once at construction.
type Options struct {
	Title     string // Window title (default: "Console")
	Width     int    // Requested width in pixels, <= 0 for 75% of the screen
	Height    int    // Requested height in pixels, <= 0 for 75% of the screen
	Resizable bool
	IconFile  string

	FontFile  string    // TrueType file registered before FontName is resolved
	FontName  string    // Font family (default: "Monospace")
	FontSize  int       // Font size in points (default: 14)
	FontStyle FontStyle // Font face style
	FontColor Color     // Text colour (default: white)

	BackgroundColor Color // Background colour (default: black)
	TabSize         int   // Tab width in columns (default: 8)

	History     []string // Initial history entries, oldest first
	HistoryFile string   // Loaded in New and saved on Close when set

	QueueSize  int    // Pending submitted lines (default: DefaultQueueSize)
	UsePTY     bool   // Run child processes on a pseudo-terminal when available
	WorkingDir string // Child process directory (default: current dir)

	// Schedule runs fn on the host's event thread. Hosts whose toolkit is
	// single-threaded set it so produced output is applied there; nil
	// applies output on the producing goroutine under the console lock.
	Schedule func(fn func())

	Logger *slog.Logger // Default: slog.Default()
}

// DefaultOptions returns options with every default filled in
func DefaultOptions() Options {
	var o Options
	o.applyDefaults()
	o.Resizable = true
	return o
}

// WithDefaults returns a copy of o with unset fields defaulted
func (o Options) WithDefaults() Options {
	o.applyDefaults()
	return o
}

func (o *Options) applyDefaults() {
	if o.Title == "" {
		o.Title = "Console"
	}
	if o.FontName == "" {
		o.FontName = "Monospace"
	}
	if o.FontSize <= 0 {
		o.FontSize = 14
	}
	if o.FontColor == (Color{}) {
		o.FontColor = TrueColor(255, 255, 255)
	}
	if o.BackgroundColor == (Color{}) {
		o.BackgroundColor = TrueColor(0, 0, 0)
	}
	if o.TabSize <= 0 {
		o.TabSize = 8
	}
	if o.QueueSize <= 0 {
		o.QueueSize = DefaultQueueSize
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}

// RequestSize clamps a requested window size against the screen size the
// way the console's hosts do: negative requests become 75% of the screen and
// nothing exceeds the screen minus a 10 pixel margin
func RequestSize(width, height, screenWidth, screenHeight int) (int, int) {
	clamp := func(v, screen int) int {
		switch {
		case v > screen-10:
			return screen - 10
		case v <= 0:
			return screen * 3 / 4
		}
		return v
	}
	return clamp(width, screenWidth), clamp(height, screenHeight)
}
