package purfectconsole

import (
	"strconv"
	"sync"
)

// Capabilities describes what a child process attached to the console can
// expect from its terminal. The console does not interpret escape
// sequences, so children are told they run on a dumb terminal.
type Capabilities struct {
	mu sync.RWMutex

	TermType string // Value exported as TERM
	Width    int    // Columns
	Height   int    // Rows

	EchoEnabled bool // Console echoes typed input itself
	LineMode    bool // Input is delivered a line at a time
}

// NewCapabilities creates capabilities with an 80x24 dumb terminal
func NewCapabilities() *Capabilities {
	return &Capabilities{
		TermType:    "dumb",
		Width:       80,
		Height:      24,
		EchoEnabled: true,
		LineMode:    true,
	}
}

// SetSize records the visible size in character cells
func (c *Capabilities) SetSize(cols, rows int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cols > 0 {
		c.Width = cols
	}
	if rows > 0 {
		c.Height = rows
	}
}

// Size returns the visible size in character cells
func (c *Capabilities) Size() (cols, rows int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Width, c.Height
}

// Environ returns the environment entries a child process needs
func (c *Capabilities) Environ() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return []string{
		"TERM=" + c.TermType,
		"COLUMNS=" + strconv.Itoa(c.Width),
		"LINES=" + strconv.Itoa(c.Height),
	}
}
