package format

import (
	"fmt"
	"strings"
)

// Defaults for Options.
const (
	DefaultWidth  = 70
	DefaultIndent = 2
)

// Options control tree building and layout.
//
// Width          – a compound renders on one line only when its flattened text is shorter than Width.
// Indent         – spaces added per nesting level in block form.
// ReverseArrays  – emit array elements last-to-first, as the legacy printer did.
// DepthBudget    – shrink Width by Indent for every nesting level.
// Workers        – maximum roots rendered concurrently by Printer.PrintAll.
// Backend        – sink used by the CLI: text, html or ansi.
// Palette        – category name to color name overrides for the ansi backend.
type Options struct {
	Width         int               `json:"width,omitempty" yaml:"width,omitempty" toml:"width,omitempty" mapstructure:"width,omitempty"`
	Indent        int               `json:"indent,omitempty" yaml:"indent,omitempty" toml:"indent,omitempty" mapstructure:"indent,omitempty"`
	ReverseArrays bool              `json:"reverse_arrays,omitempty" yaml:"reverse_arrays,omitempty" toml:"reverse_arrays,omitempty" mapstructure:"reverse_arrays,omitempty"`
	DepthBudget   bool              `json:"depth_budget,omitempty" yaml:"depth_budget,omitempty" toml:"depth_budget,omitempty" mapstructure:"depth_budget,omitempty"`
	Workers       int               `json:"workers,omitempty" yaml:"workers,omitempty" toml:"workers,omitempty" mapstructure:"workers,omitempty"`
	Backend       string            `json:"backend,omitempty" yaml:"backend,omitempty" toml:"backend,omitempty" mapstructure:"backend,omitempty"`
	Palette       map[string]string `json:"palette,omitempty" yaml:"palette,omitempty" toml:"palette,omitempty" mapstructure:"palette,omitempty"`
}

func NewOptions() *Options {
	return &Options{
		Width:   DefaultWidth,
		Indent:  DefaultIndent,
		Workers: 4,
		Backend: BackendText,
	}
}

// Normalize fills zero values with defaults and rejects unusable settings.
func (o *Options) Normalize() error {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Width < 0 {
		return fmt.Errorf("width must be positive, got %d", o.Width)
	}
	if o.Indent == 0 {
		o.Indent = DefaultIndent
	}
	if o.Indent < 0 {
		return fmt.Errorf("indent must be positive, got %d", o.Indent)
	}
	if o.Workers <= 0 {
		o.Workers = 1
	}
	o.Backend = strings.ToLower(strings.TrimSpace(o.Backend))
	if o.Backend == "" {
		o.Backend = BackendText
	}
	switch o.Backend {
	case BackendText, BackendHTML, BackendANSI:
	default:
		return fmt.Errorf("unknown backend %q", o.Backend)
	}
	return nil
}

// budget returns the width available to a compound at depth.
func (o *Options) budget(depth int) int {
	if !o.DepthBudget {
		return o.Width
	}
	return o.Width - depth*o.Indent
}

// functional option pattern ---------------------------------------------------

type Option func(*Options)

func WithWidth(w int) Option      { return func(o *Options) { o.Width = w } }
func WithIndent(n int) Option     { return func(o *Options) { o.Indent = n } }
func WithWorkers(n int) Option    { return func(o *Options) { o.Workers = n } }
func WithBackend(b string) Option { return func(o *Options) { o.Backend = b } }
func WithReversedArrays() Option  { return func(o *Options) { o.ReverseArrays = true } }
func WithDepthBudget() Option     { return func(o *Options) { o.DepthBudget = true } }

func newOptions(opts []Option) *Options {
	o := NewOptions()
	for _, fn := range opts {
		fn(o)
	}
	return o
}
