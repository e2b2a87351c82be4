//go:build !linux

package purfectconsole

// NewPTY reports ErrPTYUnsupported; children run on pipes instead
func NewPTY() (PTY, error) {
	return nil, ErrPTYUnsupported
}
