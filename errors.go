package purfectconsole

import (
	"errors"
	"fmt"
)

// ErrClosed is returned by the stream bridge once the console has been destroyed
var ErrClosed = errors.New("purfectconsole: console closed")

// ErrInputBacklog is returned when the pending-line queue is full and the
// caller asked not to block
var ErrInputBacklog = errors.New("purfectconsole: input queue full")

// BoundsError reports an offset or range outside [0, length] of a surface
type BoundsError struct {
	Op    string // Operation that was attempted (e.g. "text", "replace")
	Start int
	End   int
	Len   int // Surface length at the time of the call
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("purfectconsole: %s [%d,%d) out of bounds (length %d)", e.Op, e.Start, e.End, e.Len)
}

// CheckRange returns a *BoundsError if [start, end) is not a valid range of a
// surface with the given length
func CheckRange(op string, start, end, length int) error {
	if start < 0 || end < start || end > length {
		return &BoundsError{Op: op, Start: start, End: end, Len: length}
	}
	return nil
}

// ResourceError reports a host resource (font, icon, clipboard, pty) that
// could not be loaded. Callers log it and continue with a fallback.
type ResourceError struct {
	Kind string // "font", "icon", "clipboard", "pty", ...
	Name string
	Err  error
}

func (e *ResourceError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("purfectconsole: %s unavailable: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("purfectconsole: %s %q unavailable: %v", e.Kind, e.Name, e.Err)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}
