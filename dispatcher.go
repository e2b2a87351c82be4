package purfectconsole

import (
	"errors"
	"log/slog"
)

// Dispatcher turns key and mouse events into line-editing actions on a
// surface. Every handler returns whether the event was consumed; an
// unconsumed event should get the host's default text-area behaviour.
//
// Dispatcher is not safe for concurrent use; the Console serializes access.
type Dispatcher struct {
	surface Surface
	region  *InputRegion
	history *History
	submit  func(line string) error
	logger  *slog.Logger
}

// NewDispatcher wires a dispatcher. submit receives every entered line.
func NewDispatcher(surface Surface, region *InputRegion, history *History, submit func(string) error, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		surface: surface,
		region:  region,
		history: history,
		submit:  submit,
		logger:  logger,
	}
}

// HandleKey applies the key policy to a key press
func (d *Dispatcher) HandleKey(ev KeyEvent) bool {
	consumed, err := d.dispatch(ev)
	if err != nil {
		d.logFailure("key", ev.String(), err)
	}
	return consumed
}

func (d *Dispatcher) dispatch(ev KeyEvent) (bool, error) {
	if ev.Key.IsIgnored() {
		return false, nil
	}

	switch {
	case ev.IsShortcut('a'):
		return true, d.selectAll()

	case ev.Key == KeyHome:
		return true, d.surface.SetCaret(d.region.Start())

	case ev.Key == KeyEnd:
		return true, d.surface.SetCaret(d.region.End())

	case ev.Key == KeyCopy, ev.Key == KeyCut, ev.IsShortcut('c'), ev.IsShortcut('x'):
		// Cut only copies: nothing may be removed from history
		if d.hasSelection() {
			d.surface.CopySelection()
		}
		return true, d.region.SnapBack()

	case ev.Key == KeyPageUp:
		return true, d.region.Replace(d.history.First())

	case ev.Key == KeyPageDown:
		return true, d.region.Replace(d.history.Last())

	case ev.Key == KeyUp, ev.Key == KeyKPUp:
		return true, d.region.Replace(d.history.Previous())

	case ev.Key == KeyDown, ev.Key == KeyKPDown:
		return true, d.region.Replace(d.history.Next())

	case ev.Key == KeyEnter:
		return true, d.enter()

	case ev.Key == KeyLeft, ev.Key == KeyKPLeft, ev.Key == KeyBackspace, ev.IsShortcut('h'):
		if !d.region.Contains() {
			if err := d.region.SnapBack(); err != nil {
				return false, err
			}
		}
		// Never move or delete past the start of the input line
		return d.surface.Caret() == d.region.Start(), nil

	case !d.region.Contains():
		return false, d.region.SnapBack()
	}

	return false, nil
}

// selectAll toggles between selecting the input line and the whole buffer
func (d *Dispatcher) selectAll() error {
	start, end := d.region.Start(), d.region.End()
	selStart, selEnd := d.surface.Selection()
	if selStart == start && selEnd == end {
		start = 0
	}
	return d.surface.SetSelection(start, end)
}

// enter submits the input line and turns it into history
func (d *Dispatcher) enter() error {
	end := d.region.End()
	if err := d.surface.SetCaret(end); err != nil {
		return err
	}
	line, err := d.surface.Text(d.region.Start(), end)
	if err != nil {
		return err
	}

	d.history.Record(line)
	if d.submit != nil {
		if err := d.submit(line); err != nil {
			d.logger.Error("submit input line", "error", err, "bytes", len(line))
		}
	}
	d.region.Reset()
	return nil
}

// HandleKeyRelease keeps the snap-back target current while the user edits
// inside the input line
func (d *Dispatcher) HandleKeyRelease(ev KeyEvent) {
	if d.region.Contains() && !ev.IsShortcut('a') {
		d.region.Remember()
	}
}

// HandleMousePress implements secondary-click copy/paste. It returns true
// when the click was acted on.
func (d *Dispatcher) HandleMousePress(button MouseButton) bool {
	if button != MouseSecondary {
		return false
	}
	if d.hasSelection() {
		d.surface.CopySelection()
		if err := d.region.SnapBack(); err != nil {
			d.logFailure("mouse", "secondary", err)
		}
		return true
	}
	if d.region.Contains() {
		d.surface.PasteAtCaret()
		return true
	}
	return false
}

// HandleMouseRelease remembers the caret when a click lands in the input
// line
func (d *Dispatcher) HandleMouseRelease(button MouseButton) {
	if d.region.Contains() {
		d.region.Remember()
	}
}

func (d *Dispatcher) hasSelection() bool {
	start, end := d.surface.Selection()
	return start < end
}

func (d *Dispatcher) logFailure(kind, what string, err error) {
	var be *BoundsError
	if errors.As(err, &be) {
		d.logger.Warn("edit action ignored", kind, what, "op", be.Op,
			"start", be.Start, "end", be.End, "len", be.Len)
		return
	}
	d.logger.Error("edit action failed", kind, what, "error", err)
}
