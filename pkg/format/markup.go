package format

import (
	"strings"

	"github.com/cmmoran/treefmt/internal/glob"
)

// Category is the semantic class of a span of emitted text.
type Category int

const (
	CategorySpace      Category = iota
	CategoryStructural          // parens and node heads
	CategoryLiteral             // raw tokens: numbers, strings, enum names
	CategoryPattern             // literals that look like shell globs
	CategoryDegraded            // "<field>=?" placeholders
)

func (c Category) String() string {
	switch c {
	case CategoryStructural:
		return "structural"
	case CategoryLiteral:
		return "literal"
	case CategoryPattern:
		return "pattern"
	case CategoryDegraded:
		return "degraded"
	}
	return "space"
}

// Span is a categorized run of a line. Concatenating the spans of a line
// reproduces it exactly.
type Span struct {
	Category Category
	Text     string
}

// Tokenize splits an emitted line into categorized spans. The first word
// after an opening paren is the node head.
func Tokenize(line string) []Span {
	var (
		spans    []Span
		wantHead bool
	)
	for i := 0; i < len(line); {
		switch c := line[i]; {
		case c == ' ':
			j := i
			for j < len(line) && line[j] == ' ' {
				j++
			}
			spans = append(spans, Span{CategorySpace, line[i:j]})
			i = j
		case c == '(' || c == ')':
			spans = append(spans, Span{CategoryStructural, line[i : i+1]})
			wantHead = c == '('
			i++
		default:
			j := i
			for j < len(line) && line[j] != ' ' && line[j] != '(' && line[j] != ')' {
				j++
			}
			word := line[i:j]
			spans = append(spans, Span{classify(word, wantHead), word})
			wantHead = false
			i = j
		}
	}
	return spans
}

func classify(word string, head bool) Category {
	switch {
	case head:
		return CategoryStructural
	case strings.HasSuffix(word, "=?"):
		return CategoryDegraded
	case glob.LooksLikeGlob(word):
		return CategoryPattern
	}
	return CategoryLiteral
}
