package purfectconsole

// InputRegion tracks the boundary between committed history and the live
// input line of a surface. The input region is [Start(), End()); its end is
// always the surface length.
//
// InputRegion is not safe for concurrent use; the Console serializes access.
type InputRegion struct {
	surface Surface
	start   int
	caret   int // last caret seen inside the input region
}

// NewInputRegion creates a tracker anchored at the current end of surface
func NewInputRegion(surface Surface) *InputRegion {
	r := &InputRegion{surface: surface}
	r.Reset()
	return r
}

// Start returns the first offset of the input region
func (r *InputRegion) Start() int {
	return r.start
}

// End returns the end of the input region, which is the surface length
func (r *InputRegion) End() int {
	return r.surface.Len()
}

// RememberedCaret returns the snap-back target
func (r *InputRegion) RememberedCaret() int {
	return r.caret
}

// Contains reports whether the caret or selection is inside the input
// region. Without a selection the caret must lie in [Start, End]. A
// selection counts only if it starts at or after Start and reaches at least
// End.
func (r *InputRegion) Contains() bool {
	selStart, selEnd := r.surface.Selection()
	if selStart < selEnd {
		return selStart >= r.start && selEnd >= r.End()
	}
	caret := r.surface.Caret()
	return caret >= r.start && caret <= r.End()
}

// Reset moves the boundary and the remembered caret to the surface end.
// Everything before it becomes history.
func (r *InputRegion) Reset() {
	r.start = r.surface.Len()
	r.caret = r.start
}

// Text returns the current input line
func (r *InputRegion) Text() (string, error) {
	return r.surface.Text(r.start, r.End())
}

// Replace replaces the whole input line with text
func (r *InputRegion) Replace(text string) error {
	return r.surface.Replace(r.start, r.End(), text)
}

// Remember records the current caret as the snap-back target
func (r *InputRegion) Remember() {
	r.caret = r.surface.Caret()
}

// SnapBack moves the caret to the last remembered in-input position
func (r *InputRegion) SnapBack() error {
	return r.surface.SetCaret(r.caret)
}
