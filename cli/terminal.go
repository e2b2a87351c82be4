// Package cli hosts a purfectconsole Console inside an actual CLI terminal.
// The console's buffer is rendered in a window within the real screen and
// raw keyboard input is decoded into key events for the console.
package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/phroun/purfectconsole"
	"golang.org/x/term"
)

// BorderStyle defines the visual style for the console window border
type BorderStyle int

const (
	BorderNone    BorderStyle = iota // No border
	BorderSingle                     // Single-line box drawing characters
	BorderDouble                     // Double-line box drawing characters
	BorderHeavy                      // Heavy/thick box drawing characters
	BorderRounded                    // Rounded corners (single line)
)

// Options configures terminal creation
type Options struct {
	Console purfectconsole.Options // Console options; Title is shown in the border

	Cols int // Window width in columns (default: auto-detect or 80)
	Rows int // Window height in rows (default: auto-detect or 24)

	// Display options
	BorderStyle BorderStyle // Border style around the console window
	OffsetX     int         // X offset from top-left of actual terminal (0 = left edge)
	OffsetY     int         // Y offset from top-left of actual terminal (0 = top edge)

	// If true, the window auto-sizes to fill available space
	AutoSize bool

	// If true, render a status bar at the bottom
	ShowStatusBar bool

	Shell string // Shell for RunShell (default: $SHELL or /bin/sh)

	In  io.Reader // Keyboard input (default: os.Stdin)
	Out io.Writer // Screen output (default: os.Stdout)

	// Clipboard overrides the system clipboard
	Clipboard purfectconsole.Clipboard
}

// Terminal runs a console within a CLI terminal
type Terminal struct {
	mu sync.Mutex

	buffer  *purfectconsole.Buffer
	console *purfectconsole.Console
	options Options

	renderer *Renderer
	input    *InputHandler

	stopRender chan struct{}
	stopOnce   sync.Once
	quit       chan struct{}
	quitOnce   sync.Once

	// Original terminal state for restoration
	oldState *term.State

	// Actual terminal size
	hostCols int
	hostRows int

	onResize func(cols, rows int)
}

// New creates a console hosted in the CLI terminal
func New(opts Options) (*Terminal, error) {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Shell == "" {
		opts.Shell = os.Getenv("SHELL")
		if opts.Shell == "" {
			opts.Shell = "/bin/sh"
		}
	}

	hostCols, hostRows := hostSize(opts.Out)
	if opts.AutoSize {
		opts.Cols, opts.Rows = contentSize(opts, hostCols, hostRows)
	}
	if opts.Cols <= 0 {
		opts.Cols = 80
	}
	if opts.Rows <= 0 {
		opts.Rows = 24
	}

	buffer := purfectconsole.NewBuffer()
	console, err := purfectconsole.New(buffer, opts.Console)
	if err != nil {
		return nil, err
	}
	opts.Console = console.Options()
	console.Resize(opts.Cols, opts.Rows)

	clip := opts.Clipboard
	if clip == nil {
		clip = NewClipboard(console.Logger())
	}
	buffer.SetClipboard(clip)

	t := &Terminal{
		buffer:     buffer,
		console:    console,
		options:    opts,
		stopRender: make(chan struct{}),
		quit:       make(chan struct{}),
		hostCols:   hostCols,
		hostRows:   hostRows,
	}
	t.renderer = NewRenderer(t)
	t.input = NewInputHandler(t)

	buffer.SetDirtyCallback(func() {
		t.renderer.RequestRender()
	})

	return t, nil
}

// hostSize returns the size of the terminal behind w
func hostSize(w io.Writer) (cols, rows int) {
	f, ok := w.(*os.File)
	if !ok {
		return 80, 24
	}
	cols, rows, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 80, 24
	}
	return cols, rows
}

// contentSize returns the window's inner size for a host terminal size
func contentSize(opts Options, hostCols, hostRows int) (cols, rows int) {
	borderOffset := 0
	if opts.BorderStyle != BorderNone {
		borderOffset = 2
	}
	statusOffset := 0
	if opts.ShowStatusBar {
		statusOffset = 1
	}
	cols = hostCols - opts.OffsetX*2 - borderOffset
	rows = hostRows - opts.OffsetY*2 - borderOffset - statusOffset
	if cols < 20 {
		cols = 20
	}
	if rows < 5 {
		rows = 5
	}
	return cols, rows
}

// Start enters raw mode and starts rendering and reading input
func (t *Terminal) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if f, ok := t.options.In.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		oldState, err := term.MakeRaw(int(f.Fd()))
		if err != nil {
			return fmt.Errorf("failed to enter raw mode: %w", err)
		}
		t.oldState = oldState
	}

	// Hide host cursor, enable the alternate screen and clear it
	io.WriteString(t.options.Out, "\033[?25l\033[?1049h\033[2J\033[H")

	go t.handleSIGWINCH()
	go t.renderer.RenderLoop()
	go t.input.InputLoop(t.options.In)

	t.console.Logger().Debug("cli host started", "cols", t.options.Cols, "rows", t.options.Rows)
	return nil
}

// handleSIGWINCH listens for terminal resize signals
func (t *Terminal) handleSIGWINCH() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGWINCH)
	defer signal.Stop(sigChan)

	for {
		select {
		case <-sigChan:
			t.handleResize()
		case <-t.stopRender:
			return
		}
	}
}

// handleResize updates the window size when the host terminal is resized
func (t *Terminal) handleResize() {
	t.mu.Lock()
	newCols, newRows := hostSize(t.options.Out)
	if newCols == t.hostCols && newRows == t.hostRows {
		t.mu.Unlock()
		return
	}
	t.hostCols = newCols
	t.hostRows = newRows

	if t.options.AutoSize {
		t.options.Cols, t.options.Rows = contentSize(t.options, newCols, newRows)
	}
	cols, rows := t.options.Cols, t.options.Rows
	onResize := t.onResize
	t.mu.Unlock()

	t.console.Resize(cols, rows)
	t.renderer.ForceFullRedraw()

	if onResize != nil {
		onResize(cols, rows)
	}
}

// Console returns the hosted console
func (t *Terminal) Console() *purfectconsole.Console {
	return t.console
}

// Buffer returns the console's text buffer
func (t *Terminal) Buffer() *purfectconsole.Buffer {
	return t.buffer
}

// Input returns the reader receiving entered lines
func (t *Terminal) Input() io.Reader {
	return t.console.Input()
}

// Output returns the writer whose text is appended to the console
func (t *Terminal) Output() io.Writer {
	return t.console.Output()
}

// RunShell starts the configured shell wired to the console
func (t *Terminal) RunShell() (*purfectconsole.Process, error) {
	return t.RunCommand(t.options.Shell)
}

// RunCommand runs a command wired to the console
func (t *Terminal) RunCommand(name string, args ...string) (*purfectconsole.Process, error) {
	return t.console.RunCommand(name, args...)
}

// GetSize returns the window size in columns and rows
func (t *Terminal) GetSize() (cols, rows int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.options.Cols, t.options.Rows
}

// GetHostSize returns the host terminal size
func (t *Terminal) GetHostSize() (cols, rows int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.hostCols, t.hostRows
}

// Resize resizes the console window
func (t *Terminal) Resize(cols, rows int) {
	t.mu.Lock()
	t.options.Cols = cols
	t.options.Rows = rows
	t.mu.Unlock()

	t.console.Resize(cols, rows)
	t.renderer.ForceFullRedraw()
}

// SetOnResize sets a callback for window resize events
func (t *Terminal) SetOnResize(fn func(cols, rows int)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onResize = fn
}

// SetTitle sets the window title shown in the border
func (t *Terminal) SetTitle(title string) {
	t.mu.Lock()
	t.options.Console.Title = title
	t.mu.Unlock()
	t.renderer.RequestRender()
}

// requestQuit ends Wait; Ctrl+Q and end of input trigger it
func (t *Terminal) requestQuit() {
	t.quitOnce.Do(func() {
		close(t.quit)
	})
}

// Wait blocks until the user quits (Ctrl+Q), input ends or the console
// closes
func (t *Terminal) Wait() {
	select {
	case <-t.quit:
	case <-t.console.Done():
	}
}

// Stop closes the console and restores the original terminal state
func (t *Terminal) Stop() error {
	var err error
	t.stopOnce.Do(func() {
		close(t.stopRender)
		err = t.console.Close()

		t.mu.Lock()
		oldState := t.oldState
		t.mu.Unlock()

		// Leave the alternate screen, show the cursor, reset attributes
		io.WriteString(t.options.Out, "\033[?1049l\033[?25h\033[0m")

		if oldState != nil {
			if f, ok := t.options.In.(*os.File); ok {
				term.Restore(int(f.Fd()), oldState)
			}
		}
	})
	return err
}

// Close is an alias for Stop
func (t *Terminal) Close() error {
	return t.Stop()
}
