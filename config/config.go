// Package config loads console Options from TOML or YAML files.
//
// A file looks like:
//
//	title = "My Console"
//	width = 800
//	height = 600
//	tab_size = 4
//	history_file = "~/.myconsole_history"
//
//	[font]
//	name = "DejaVu Sans Mono"
//	size = 12
//	style = "bold"
//	color = "#c0c0c0"
//
// or the same keys in YAML. Colours are "#rrggbb", "#rgb" or an ANSI
// colour name.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/phroun/purfectconsole"
	"gopkg.in/yaml.v3"
)

// Font is the [font] table
type Font struct {
	File  string `toml:"file" yaml:"file"`
	Name  string `toml:"name" yaml:"name"`
	Size  int    `toml:"size" yaml:"size"`
	Style string `toml:"style" yaml:"style"`
	Color string `toml:"color" yaml:"color"`
}

// File mirrors the on-disk layout
type File struct {
	Title      string `toml:"title" yaml:"title"`
	Width      int    `toml:"width" yaml:"width"`
	Height     int    `toml:"height" yaml:"height"`
	Resizable  *bool  `toml:"resizable" yaml:"resizable"`
	Icon       string `toml:"icon" yaml:"icon"`
	Font       Font   `toml:"font" yaml:"font"`
	Background string `toml:"background" yaml:"background"`
	TabSize    int    `toml:"tab_size" yaml:"tab_size"`

	History     []string `toml:"history" yaml:"history"`
	HistoryFile string   `toml:"history_file" yaml:"history_file"`

	QueueSize  int    `toml:"queue_size" yaml:"queue_size"`
	UsePTY     bool   `toml:"use_pty" yaml:"use_pty"`
	WorkingDir string `toml:"working_dir" yaml:"working_dir"`
}

// ParseError reports a configuration file that could not be decoded or
// holds an invalid value
type ParseError struct {
	Path  string
	Field string // Empty for syntax errors
	Err   error
}

func (e *ParseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config %s: %s: %v", e.Path, e.Field, e.Err)
	}
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Format is a configuration syntax
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

// FormatFor picks the format from a file extension
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return 0, fmt.Errorf("config %s: unsupported extension", path)
}

// Load reads the file at path. A missing file yields the default options.
func Load(path string) (purfectconsole.Options, error) {
	format, err := FormatFor(path)
	if err != nil {
		return purfectconsole.Options{}, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return purfectconsole.DefaultOptions(), nil
	}
	if err != nil {
		return purfectconsole.Options{}, fmt.Errorf("read config: %w", err)
	}
	return parse(path, data, format)
}

// Parse decodes data in the given format
func Parse(data []byte, format Format) (purfectconsole.Options, error) {
	return parse("<input>", data, format)
}

func parse(path string, data []byte, format Format) (purfectconsole.Options, error) {
	var f File
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &f)
	default:
		err = toml.Unmarshal(data, &f)
	}
	if err != nil {
		return purfectconsole.Options{}, &ParseError{Path: path, Err: err}
	}
	opts, err := f.Options()
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return purfectconsole.Options{}, err
	}
	return opts, nil
}

// Options converts the file into console options with defaults applied
func (f File) Options() (purfectconsole.Options, error) {
	opts := purfectconsole.DefaultOptions()

	if f.Title != "" {
		opts.Title = f.Title
	}
	opts.Width = f.Width
	opts.Height = f.Height
	if f.Resizable != nil {
		opts.Resizable = *f.Resizable
	}
	opts.IconFile = expandHome(f.Icon)

	opts.FontFile = expandHome(f.Font.File)
	if f.Font.Name != "" {
		opts.FontName = f.Font.Name
	}
	if f.Font.Size > 0 {
		opts.FontSize = f.Font.Size
	}
	style, err := purfectconsole.ParseFontStyle(f.Font.Style)
	if err != nil {
		return opts, &ParseError{Field: "font.style", Err: err}
	}
	opts.FontStyle = style
	if f.Font.Color != "" {
		c, err := purfectconsole.ParseColor(f.Font.Color)
		if err != nil {
			return opts, &ParseError{Field: "font.color", Err: err}
		}
		opts.FontColor = c
	}
	if f.Background != "" {
		c, err := purfectconsole.ParseColor(f.Background)
		if err != nil {
			return opts, &ParseError{Field: "background", Err: err}
		}
		opts.BackgroundColor = c
	}
	if f.TabSize > 0 {
		opts.TabSize = f.TabSize
	}

	opts.History = append([]string(nil), f.History...)
	opts.HistoryFile = expandHome(f.HistoryFile)
	if f.QueueSize > 0 {
		opts.QueueSize = f.QueueSize
	}
	opts.UsePTY = f.UsePTY
	opts.WorkingDir = expandHome(f.WorkingDir)
	return opts, nil
}

// expandHome replaces a leading "~/" with the user's home directory
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
