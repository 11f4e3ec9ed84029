// Package format renders typed node trees as parenthesized text, choosing per
// subtree between a compact single-line form and an indented block form.
//
// Rendering is split into three independent stages:
//
//	doc := format.Build(n)                  // typed node -> Doc
//	dec := format.Decide(doc, 70, 0)        // Doc -> Inline | Block
//	lines := format.Emit(dec, 0)            // Inline | Block -> text
//
// A compound renders inline only when every child rendered inline and its
// flattened text is strictly shorter than the width budget. A single block
// child forces every ancestor into block form.
package format

import "fmt"

// Doc is the pre-layout document: *Leaf or *Compound.
type Doc interface {
	doc()
}

// Leaf is a finalized atomic token.
type Leaf struct {
	Text string
}

// Compound is a labelled node with ordered children.
type Compound struct {
	Head     string
	Children []Doc
}

func (*Leaf) doc()     {}
func (*Compound) doc() {}

// Decided is the post-layout document: *Inline or *Block.
type Decided interface {
	decided()
}

// Inline holds the flattened single-line text of a subtree.
type Inline struct {
	Text string
}

// Block is a subtree that spans multiple lines.
type Block struct {
	Head     string
	Children []Decided
}

func (*Inline) decided() {}
func (*Block) decided()  {}

func invalidDoc(d Doc) string {
	return fmt.Sprintf("format: unexpected Doc %T", d)
}

func invalidDecided(d Decided) string {
	return fmt.Sprintf("format: unexpected Decided %T", d)
}
