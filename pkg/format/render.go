package format

import "strings"

// Emit renders d as lines starting at indent spaces, nesting block children
// by DefaultIndent.
func Emit(d Decided, indent int) []string {
	return appendLines(nil, d, indent, DefaultIndent)
}

// EmitTo writes the lines of d to sink.
func EmitTo(sink Sink, d Decided, indent int) {
	for _, line := range Emit(d, indent) {
		sink.Write(line)
	}
}

// EmitSingleLine returns the flattened text of an Inline. Calling it on a
// Block is a programming error and panics.
func EmitSingleLine(d Decided) string {
	switch d := d.(type) {
	case *Inline:
		return d.Text
	case *Block:
		panic("format: EmitSingleLine called on Block " + d.Head)
	}
	panic(invalidDecided(d))
}

func appendLines(lines []string, d Decided, indent, step int) []string {
	pad := strings.Repeat(" ", indent)
	switch d := d.(type) {
	case *Inline:
		return append(lines, pad+d.Text)
	case *Block:
		lines = append(lines, pad+"("+d.Head)
		for _, c := range d.Children {
			lines = appendLines(lines, c, indent+step, step)
		}
		return append(lines, pad+")")
	}
	panic(invalidDecided(d))
}
