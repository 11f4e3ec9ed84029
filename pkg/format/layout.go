package format

import "strings"

// Decide chooses compact or block form for every compound in d against a
// fixed width budget. depth is the nesting level of d; it does not shrink
// maxWidth.
func Decide(d Doc, maxWidth, depth int) Decided {
	return decide(d, func(int) int { return maxWidth }, depth)
}

func decide(d Doc, budget func(depth int) int, depth int) Decided {
	switch d := d.(type) {
	case *Leaf:
		return &Inline{Text: d.Text}

	case *Compound:
		children := make([]Decided, len(d.Children))
		multiline := false
		for i, c := range d.Children {
			children[i] = decide(c, budget, depth+1)
			switch c := children[i].(type) {
			case *Block:
				multiline = true
			case *Inline:
				// Raw text spanning lines never fits on one.
				if strings.Contains(c.Text, "\n") {
					multiline = true
				}
			}
		}
		// A block child keeps the whole ancestry in block form.
		if multiline {
			return &Block{Head: d.Head, Children: children}
		}

		// head, one separator per child, and the two parens
		total := len(d.Head) + len(children) + 2
		for _, c := range children {
			total += len(c.(*Inline).Text)
		}
		if total < budget(depth) {
			return &Inline{Text: flatten(d.Head, children)}
		}
		return &Block{Head: d.Head, Children: children}
	}
	panic(invalidDoc(d))
}

func flatten(head string, children []Decided) string {
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(head)
	for _, c := range children {
		sb.WriteByte(' ')
		sb.WriteString(EmitSingleLine(c))
	}
	sb.WriteByte(')')
	return sb.String()
}
