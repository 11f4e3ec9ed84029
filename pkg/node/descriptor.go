package node

type Kind int

const (
	KindInvalid  Kind = iota
	KindInt           // integer scalar
	KindEnum          // simple sum: closed set of named constants
	KindString        // raw string
	KindArray         // T*
	KindOptional      // T?
	KindRecord        // nested record or compound sum
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindEnum:
		return "enum"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindOptional:
		return "optional"
	case KindRecord:
		return "record"
	}
	return "invalid"
}

// Descriptor describes the declared type of a single field.
//
// Name is set for enums and records (the enum, record or sum name). Elem is
// set for arrays and optionals.
type Descriptor struct {
	Kind Kind
	Name string
	Elem *Descriptor
}

func Int() Descriptor                 { return Descriptor{Kind: KindInt} }
func String() Descriptor              { return Descriptor{Kind: KindString} }
func Enum(name string) Descriptor     { return Descriptor{Kind: KindEnum, Name: name} }
func RecordOf(name string) Descriptor { return Descriptor{Kind: KindRecord, Name: name} }
func Array(elem Descriptor) Descriptor {
	return Descriptor{Kind: KindArray, Elem: &elem}
}
func Optional(elem Descriptor) Descriptor {
	return Descriptor{Kind: KindOptional, Elem: &elem}
}

// Element returns the element descriptor of an array or optional. Anything
// else, including an array with no element, yields a Record descriptor so
// callers fall back to generic recursion.
func (d Descriptor) Element() Descriptor {
	if d.Elem == nil {
		return Descriptor{Kind: KindRecord}
	}
	return *d.Elem
}

// String renders d as a schema type expression: int, string, word*, redirect?.
func (d Descriptor) String() string {
	switch d.Kind {
	case KindInt:
		return "int"
	case KindString:
		return "string"
	case KindEnum, KindRecord:
		if d.Name == "" {
			return d.Kind.String()
		}
		return d.Name
	case KindArray:
		return d.Element().String() + "*"
	case KindOptional:
		return d.Element().String() + "?"
	}
	return "invalid"
}
