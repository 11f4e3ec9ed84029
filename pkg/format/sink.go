package format

import (
	"fmt"
	"html"
	"strings"

	"github.com/gdamore/tcell/v2"
)

const (
	BackendText = "text"
	BackendHTML = "html"
	BackendANSI = "ansi"
)

// Sink receives rendered lines.
type Sink interface {
	Write(line string)
}

// LineBuffer accumulates written lines.
type LineBuffer struct {
	lines []string
}

func (l *LineBuffer) Write(line string) { l.lines = append(l.lines, line) }

func (l *LineBuffer) Lines() []string { return append([]string(nil), l.lines...) }

// String joins the lines, each terminated by a newline.
func (l *LineBuffer) String() string {
	if len(l.lines) == 0 {
		return ""
	}
	return strings.Join(l.lines, "\n") + "\n"
}

// TextSink stores lines unchanged.
type TextSink struct {
	LineBuffer
}

// HTMLSink escapes lines and wraps every non-space span in a classed span.
type HTMLSink struct {
	LineBuffer
	// Prefix is prepended to category names to form CSS classes.
	Prefix string
}

func (s *HTMLSink) Write(line string) {
	var sb strings.Builder
	for _, sp := range Tokenize(line) {
		text := html.EscapeString(sp.Text)
		if sp.Category == CategorySpace {
			sb.WriteString(text)
			continue
		}
		fmt.Fprintf(&sb, `<span class="%s%s">%s</span>`, s.Prefix, sp.Category, text)
	}
	s.LineBuffer.Write(sb.String())
}

// Palette maps categories to terminal colors. Missing categories and
// tcell.ColorDefault are written uncolored.
type Palette map[Category]tcell.Color

func DefaultPalette() Palette {
	return Palette{
		CategoryStructural: tcell.ColorTeal,
		CategoryLiteral:    tcell.ColorGreen,
		CategoryPattern:    tcell.ColorOrange,
		CategoryDegraded:   tcell.ColorRed,
	}
}

// ParsePalette resolves color names ("teal", "#ff8800") per category name.
func ParsePalette(names map[string]string) (Palette, error) {
	p := DefaultPalette()
	for cat, name := range names {
		c, ok := categoryByName(cat)
		if !ok {
			return nil, fmt.Errorf("unknown palette category %q", cat)
		}
		color := tcell.GetColor(name)
		if color == tcell.ColorDefault && !strings.EqualFold(name, "default") {
			return nil, fmt.Errorf("unknown color %q for %s", name, cat)
		}
		p[c] = color
	}
	return p, nil
}

func categoryByName(name string) (Category, bool) {
	for c := CategorySpace; c <= CategoryDegraded; c++ {
		if strings.EqualFold(c.String(), name) {
			return c, true
		}
	}
	return 0, false
}

// ANSISink colors spans with 24-bit SGR foreground sequences.
type ANSISink struct {
	LineBuffer
	Palette Palette
}

func (s *ANSISink) Write(line string) {
	palette := s.Palette
	if palette == nil {
		palette = DefaultPalette()
	}
	var sb strings.Builder
	for _, sp := range Tokenize(line) {
		color, ok := palette[sp.Category]
		if !ok || color == tcell.ColorDefault {
			sb.WriteString(sp.Text)
			continue
		}
		r, g, b := color.RGB()
		fmt.Fprintf(&sb, "\x1b[38;2;%d;%d;%dm%s\x1b[0m", r, g, b, sp.Text)
	}
	s.LineBuffer.Write(sb.String())
}

// BufferedSink is a Sink that keeps what it was given.
type BufferedSink interface {
	Sink
	Lines() []string
	String() string
}

// NewSink returns an empty sink for backend.
func NewSink(backend string) (BufferedSink, error) {
	switch strings.ToLower(backend) {
	case "", BackendText:
		return &TextSink{}, nil
	case BackendHTML:
		return &HTMLSink{Prefix: "tf-"}, nil
	case BackendANSI:
		return &ANSISink{Palette: DefaultPalette()}, nil
	}
	return nil, fmt.Errorf("unknown backend %q", backend)
}
