package purfectconsole

import (
	"errors"
	"os/exec"
)

// ErrPTYUnsupported is returned by NewPTY on platforms without a
// pseudo-terminal implementation. Callers fall back to pipes.
var ErrPTYUnsupported = errors.New("purfectconsole: pseudo-terminal not supported on this platform")

// PTY is the interface for platform-specific pseudo-terminal implementations
type PTY interface {
	// Start starts cmd with the terminal as its stdin, stdout and stderr
	Start(cmd *exec.Cmd) error

	// Read reads output produced by the child
	Read(p []byte) (n int, err error)

	// Write delivers input to the child
	Write(p []byte) (n int, err error)

	// Resize sets the terminal size in character cells
	Resize(cols, rows int) error

	// Close closes the terminal
	Close() error
}
