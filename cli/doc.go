// Package cli hosts line-editing consoles in a terminal.
//
// This package implements a "console within a terminal": it runs a
// purfectconsole Console inside an actual CLI terminal, drawing the
// console's buffer in a window on the real screen and decoding raw keyboard
// input into key events.
//
// # Features
//
//   - Line editing with protected history, recall with Up/Down/PageUp/PageDown
//   - Multiple border styles (single, double, heavy, rounded)
//   - Optional status bar showing caret position, history size and backlog
//   - Window resizing that tracks the host terminal (SIGWINCH)
//   - Differential rendering (only rewrites rows that changed)
//   - Wide and combining characters measured with go-runewidth
//   - System clipboard with an in-memory fallback
//
// # Basic Usage
//
//	import "github.com/phroun/purfectconsole/cli"
//
//	opts := cli.Options{
//	    AutoSize:      true,              // Fill available space
//	    BorderStyle:   cli.BorderRounded, // Rounded border
//	    ShowStatusBar: true,
//	}
//	opts.Console.Title = "My Console"
//
//	t, err := cli.New(opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := t.Start(); err != nil {
//	    log.Fatal(err)
//	}
//	defer t.Stop()
//
//	// Echo every entered line back
//	go func() {
//	    scanner := bufio.NewScanner(t.Input())
//	    for scanner.Scan() {
//	        fmt.Fprintf(t.Output(), "you said: %s\n", scanner.Text())
//	    }
//	}()
//
//	t.Wait()
//
// # Keys
//
// Terminals deliver no key releases, so every key press is followed by a
// synthetic release. Ctrl+Q quits, Ctrl+C copies, Ctrl+V pastes, Ctrl+A
// toggles between selecting the input line and the whole buffer.
//
// # Architecture
//
//   - Terminal: owns the Console and its Buffer, raw mode and resize tracking
//   - Renderer: draws the buffer tail using ANSI codes at up to 60fps
//   - InputHandler / KeyDecoder: turns raw bytes and escape sequences into
//     key events
package cli
