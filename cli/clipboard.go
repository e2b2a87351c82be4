package cli

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/phroun/purfectconsole"
)

// SystemClipboard uses the desktop clipboard through xclip/xsel/wl-copy,
// pbcopy or the Windows API. Text is mirrored in memory so copy and paste
// keep working when the system clipboard goes away.
type SystemClipboard struct {
	mu       sync.Mutex
	fallback purfectconsole.MemoryClipboard
	logger   *slog.Logger
	warned   bool
}

// NewClipboard returns the system clipboard, or an in-memory clipboard
// when none is available
func NewClipboard(logger *slog.Logger) purfectconsole.Clipboard {
	if logger == nil {
		logger = slog.Default()
	}
	if clipboard.Unsupported {
		logger.Warn("using in-memory clipboard", "error", &purfectconsole.ResourceError{
			Kind: "clipboard",
			Err:  errors.New("no clipboard utility found"),
		})
		return &purfectconsole.MemoryClipboard{}
	}
	return &SystemClipboard{logger: logger}
}

// ReadText reads the system clipboard, falling back to the last text
// written through this clipboard
func (c *SystemClipboard) ReadText() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		c.warnOnce(err)
		return c.fallback.ReadText()
	}
	return text, nil
}

// WriteText writes the system clipboard and the in-memory mirror
func (c *SystemClipboard) WriteText(text string) error {
	c.fallback.WriteText(text)
	if err := clipboard.WriteAll(text); err != nil {
		c.warnOnce(err)
	}
	return nil
}

func (c *SystemClipboard) warnOnce(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.warned {
		return
	}
	c.warned = true
	c.logger.Warn("system clipboard failed, using in-memory copy",
		"error", &purfectconsole.ResourceError{Kind: "clipboard", Err: err})
}
