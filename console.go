package purfectconsole

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Console binds a Surface to its input region, history, key dispatcher and
// stream bridge. Key and mouse handlers run synchronously on the host
// thread; output may be written from any goroutine.
//
// A single mutex guards the surface and the region together so that an
// appended character and the boundary reset that follows it are observed
// as one step.
type Console struct {
	mu         sync.Mutex
	surface    Surface
	region     *InputRegion
	history    *History
	dispatcher *Dispatcher
	bridge     *Bridge
	caps       *Capabilities

	opts   Options
	id     uuid.UUID
	logger *slog.Logger

	procMu sync.Mutex
	procs  map[uuid.UUID]*Process

	closeOnce sync.Once
	closeErr  error
}

// New creates a console editing surface. Options defaults are applied; when
// opts.HistoryFile names an existing file its entries replace opts.History.
func New(surface Surface, opts Options) (*Console, error) {
	if surface == nil {
		return nil, errors.New("purfectconsole: nil surface")
	}
	opts.applyDefaults()

	c := &Console{
		surface: surface,
		caps:    NewCapabilities(),
		opts:    opts,
		id:      uuid.New(),
		procs:   make(map[uuid.UUID]*Process),
	}
	c.logger = opts.Logger.With("console", c.id.String())
	if l, ok := surface.(interface{ SetLogger(*slog.Logger) }); ok {
		l.SetLogger(c.logger)
	}

	entries := opts.History
	if opts.HistoryFile != "" {
		loaded, err := LoadHistoryFile(opts.HistoryFile)
		switch {
		case err != nil:
			c.logger.Warn("history file not loaded", "path", opts.HistoryFile, "error", err)
		case loaded != nil:
			entries = loaded
		}
	}

	c.history = NewHistory(entries)
	c.region = NewInputRegion(surface)
	c.bridge = NewBridge(opts.QueueSize, c.produce)
	c.dispatcher = NewDispatcher(surface, c.region, c.history, c.bridge.Submit, c.logger)

	c.logger.Debug("console created", "history", c.history.Len(), "queue", opts.QueueSize)
	return c, nil
}

// produce appends decoded output and moves the input boundary past it
func (c *Console) produce(text string) {
	apply := func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.surface.Append(text)
		c.region.Reset()
	}
	if c.opts.Schedule != nil {
		c.opts.Schedule(apply)
		return
	}
	apply()
}

// ID returns the console's unique id, also attached to its log records
func (c *Console) ID() string {
	return c.id.String()
}

// Logger returns the console's logger
func (c *Console) Logger() *slog.Logger {
	return c.logger
}

// Options returns the options the console was created with, defaults
// applied
func (c *Console) Options() Options {
	return c.opts
}

// Capabilities returns the terminal capabilities advertised to children
func (c *Console) Capabilities() *Capabilities {
	return c.caps
}

// HandleKey applies the key policy to a key press and returns whether it
// was consumed. Unconsumed events are passed to the surface's DefaultEditor
// when it has one; otherwise the host should apply its own default.
func (c *Console) HandleKey(ev KeyEvent) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dispatcher.HandleKey(ev) {
		return true
	}
	if ed, ok := c.surface.(DefaultEditor); ok {
		ed.ApplyDefault(ev)
	}
	return false
}

// HandleKeyRelease updates the snap-back target after a key release
func (c *Console) HandleKeyRelease(ev KeyEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dispatcher.HandleKeyRelease(ev)
}

// HandleMousePress handles secondary-click copy and paste
func (c *Console) HandleMousePress(button MouseButton) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dispatcher.HandleMousePress(button)
}

// HandleMouseRelease updates the snap-back target after a click
func (c *Console) HandleMouseRelease(button MouseButton) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dispatcher.HandleMouseRelease(button)
}

// Input returns the reader receiving every entered line followed by a
// newline. It reports io.EOF after Close once drained.
func (c *Console) Input() io.Reader {
	return c.bridge
}

// Output returns the writer whose bytes are appended to the surface
func (c *Console) Output() io.Writer {
	return c.bridge
}

// Bridge returns the underlying stream bridge
func (c *Console) Bridge() *Bridge {
	return c.bridge
}

// Submit queues a line for the input reader as if it had been entered,
// without echoing it or recording it in history
func (c *Console) Submit(line string) error {
	return c.bridge.Submit(line)
}

// SubmitContext is Submit that waits for queue space
func (c *Console) SubmitContext(ctx context.Context, line string) error {
	return c.bridge.SubmitContext(ctx, line)
}

// InputLine returns the text of the current input line
func (c *Console) InputLine() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.region.Text()
}

// SetInputLine replaces the current input line
func (c *Console) SetInputLine(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.region.Replace(text)
}

// InputStart returns the offset where the input line begins
func (c *Console) InputStart() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.region.Start()
}

// History returns a copy of the history entries, oldest first
func (c *Console) History() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.history.Entries()
}

// SetHistory replaces the history entries
func (c *Console) SetHistory(entries []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history.SetEntries(entries)
}

// Resize records the visible size in character cells and forwards it to
// running pseudo-terminals
func (c *Console) Resize(cols, rows int) {
	c.caps.SetSize(cols, rows)
	c.procMu.Lock()
	defer c.procMu.Unlock()
	for _, p := range c.procs {
		p.resize(cols, rows)
	}
}

// Closed reports whether Close has been called
func (c *Console) Closed() bool {
	return c.bridge.Closed()
}

// Done returns a channel closed when the console closes
func (c *Console) Done() <-chan struct{} {
	return c.bridge.Done()
}

// Close kills running child processes, closes both stream directions and
// saves history when a history file is configured. It is idempotent.
func (c *Console) Close() error {
	c.closeOnce.Do(func() {
		c.logger.Debug("closing console")

		c.procMu.Lock()
		procs := make([]*Process, 0, len(c.procs))
		for _, p := range c.procs {
			procs = append(procs, p)
		}
		c.procMu.Unlock()
		for _, p := range procs {
			if err := p.Kill(); err != nil {
				c.logger.Warn("kill child process", "process", p.ID(), "error", err)
			}
		}

		c.bridge.Close()

		if c.opts.HistoryFile != "" {
			if err := SaveHistoryFile(c.opts.HistoryFile, c.History()); err != nil {
				c.logger.Error("save history file", "path", c.opts.HistoryFile, "error", err)
				c.closeErr = err
			}
		}
	})
	return c.closeErr
}
