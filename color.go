// Package purfectconsole provides an embeddable line-editing console: a text
// surface whose tail is an editable input line, a recall history, a key
// policy that protects committed output, and a stream bridge that turns
// entered lines into an io.Reader and produced bytes into appended text.
//
// This package contains:
//   - The Surface capability and an in-memory Buffer implementing it
//   - Input region tracking, history ring and key dispatcher
//   - The input/output stream bridge and child process wiring
//   - Colours, options and history persistence
//
// Toolkit packages (cli, gtk, qt) host a Console on a real text widget.
package purfectconsole

import (
	"fmt"
	"strconv"
	"strings"
)

// ColorType indicates how a color was specified
type ColorType uint8

const (
	ColorTypeDefault   ColorType = iota // Host default colour
	ColorTypeStandard                   // One of the 16 ANSI colours
	ColorTypeTrueColor                  // 24-bit RGB
)

// Color is a console colour. R, G and B are always resolved so hosts can
// render any type directly.
type Color struct {
	Type    ColorType
	Index   uint8 // For Standard (0-15)
	R, G, B uint8
}

// Predefined colors
var (
	DefaultForeground = Color{Type: ColorTypeDefault, R: 255, G: 255, B: 255}
	DefaultBackground = Color{Type: ColorTypeDefault, R: 0, G: 0, B: 0}
)

// RGB holds just the red, green, blue components
type RGB struct {
	R, G, B uint8
}

// ANSIColorsRGB is the 16-colour palette in ANSI order
var ANSIColorsRGB = []RGB{
	{0, 0, 0}, {170, 0, 0}, {0, 170, 0}, {170, 85, 0},
	{0, 0, 170}, {170, 0, 170}, {0, 170, 170}, {170, 170, 170},
	{85, 85, 85}, {255, 85, 85}, {85, 255, 85}, {255, 255, 85},
	{85, 85, 255}, {255, 85, 255}, {85, 255, 255}, {255, 255, 255},
}

// colorNames maps the names accepted by ParseColor to ANSI indices
var colorNames = map[string]int{
	"black": 0, "red": 1, "green": 2, "yellow": 3, "brown": 3,
	"blue": 4, "magenta": 5, "purple": 5, "cyan": 6, "silver": 7,
	"gray": 8, "grey": 8, "bright-red": 9, "bright-green": 10,
	"bright-yellow": 11, "bright-blue": 12, "pink": 13,
	"bright-cyan": 14, "white": 15,
}

// StandardColor creates one of the 16 ANSI colours (index 0-15)
func StandardColor(index int) Color {
	if index < 0 || index > 15 {
		index = 7
	}
	rgb := ANSIColorsRGB[index]
	return Color{Type: ColorTypeStandard, Index: uint8(index), R: rgb.R, G: rgb.G, B: rgb.B}
}

// TrueColor creates a 24-bit true color
func TrueColor(r, g, b uint8) Color {
	return Color{Type: ColorTypeTrueColor, R: r, G: g, B: b}
}

// IsDefault returns true if this is the host default colour
func (c Color) IsDefault() bool {
	return c.Type == ColorTypeDefault
}

// ToSGRCode returns the SGR parameter selecting this colour as foreground
// (isFg) or background
func (c Color) ToSGRCode(isFg bool) string {
	switch c.Type {
	case ColorTypeStandard:
		base := 40
		if isFg {
			base = 30
		}
		idx := int(c.Index)
		if idx >= 8 {
			base += 60
			idx -= 8
		}
		return strconv.Itoa(base + idx)
	case ColorTypeTrueColor:
		prefix := "48;2;"
		if isFg {
			prefix = "38;2;"
		}
		return prefix + strconv.Itoa(int(c.R)) + ";" + strconv.Itoa(int(c.G)) + ";" + strconv.Itoa(int(c.B))
	}
	if isFg {
		return "39"
	}
	return "49"
}

// ToHex returns the color as "#RRGGBB"
func (c Color) ToHex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// String returns the hex form
func (c Color) String() string {
	return c.ToHex()
}

// ParseHexColor parses "#RRGGBB" or "#RGB" into a TrueColor
func ParseHexColor(s string) (Color, bool) {
	if len(s) == 0 || s[0] != '#' {
		return Color{}, false
	}
	s = s[1:]
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return Color{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, false
	}
	return TrueColor(uint8(v>>16), uint8(v>>8), uint8(v)), true
}

// ParseColor accepts a hex colour or one of the ANSI colour names
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if c, ok := ParseHexColor(s); ok {
		return c, nil
	}
	if idx, ok := colorNames[strings.ToLower(s)]; ok {
		return StandardColor(idx), nil
	}
	return Color{}, fmt.Errorf("invalid colour %q", s)
}

// MarshalText implements encoding.TextMarshaler so colours round-trip
// through configuration files as hex strings
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.ToHex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
