package format

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/cmmoran/treefmt/pkg/node"
)

// Builder converts typed nodes into Docs.
type Builder struct {
	opts *Options
}

// NewBuilder initializes a Builder with opts.
func NewBuilder(opts ...Option) *Builder {
	return &Builder{opts: newOptions(opts)}
}

// Build converts n into a Doc using a Builder configured with opts.
func Build(n node.Node, opts ...Option) Doc {
	return NewBuilder(opts...).Build(n)
}

// Build walks the fields of n in declared order. It never fails: fields
// whose value cannot be retrieved, or whose required value is nil, render as
// "<field>=?" and unresolvable descriptors fall back to generic recursion.
// Strings are emitted raw; a string containing a newline keeps its enclosing
// compounds in block form, and escaping it is up to the caller.
func (b *Builder) Build(n node.Node) Doc {
	names := n.FieldNames()
	parts := make([]Doc, 0, len(names))
	for _, name := range names {
		v, ok := n.Field(name)
		if !ok {
			parts = append(parts, degraded(name))
			continue
		}
		desc, ok := n.Descriptor(name)
		if !ok {
			desc = node.Descriptor{Kind: node.KindRecord}
		}
		parts = b.appendValue(parts, name, desc, v)
	}
	return &Compound{Head: n.Label(), Children: parts}
}

func (b *Builder) appendValue(parts []Doc, name string, desc node.Descriptor, v any) []Doc {
	switch desc.Kind {
	case node.KindInt, node.KindEnum, node.KindString:
		if isNil(v) {
			return append(parts, degraded(name))
		}
		switch desc.Kind {
		case node.KindInt:
			return append(parts, &Leaf{Text: integerText(v)})
		case node.KindEnum:
			return append(parts, &Leaf{Text: enumText(v)})
		}
		return append(parts, &Leaf{Text: stringText(v)})

	case node.KindArray:
		elems := elements(v)
		elem := desc.Element()
		if b.opts.ReverseArrays {
			for i := len(elems) - 1; i >= 0; i-- {
				parts = b.appendValue(parts, name, elem, elems[i])
			}
			return parts
		}
		for _, e := range elems {
			parts = b.appendValue(parts, name, elem, e)
		}
		return parts

	case node.KindOptional:
		if isNil(v) {
			return parts
		}
		return b.appendValue(parts, name, desc.Element(), v)
	}

	// Records, compound sums and anything unrecognized.
	if isNil(v) {
		return append(parts, degraded(name))
	}
	if child, ok := v.(node.Node); ok {
		return append(parts, b.Build(child))
	}
	return append(parts, &Leaf{Text: fmt.Sprint(v)})
}

func degraded(name string) *Leaf {
	return &Leaf{Text: name + "=?"}
}

func integerText(v any) string {
	rv := indirect(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Invalid:
		return fmt.Sprint(v)
	}
	return fmt.Sprint(rv.Interface())
}

// enumText prefers a resolved constant name and degrades to the decimal
// value for raw integers.
func enumText(v any) string {
	switch c := v.(type) {
	case node.Named:
		return c.Name()
	case fmt.Stringer:
		return c.String()
	}
	rv := indirect(v)
	if rv.Kind() == reflect.String {
		return rv.String()
	}
	return integerText(v)
}

func stringText(v any) string {
	rv := indirect(v)
	if rv.Kind() == reflect.String {
		return rv.String()
	}
	return fmt.Sprint(v)
}

func elements(v any) []any {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Invalid:
		return nil
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out
	}
	return []any{v}
}

func indirect(v any) reflect.Value {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return reflect.Value{}
		}
		rv = rv.Elem()
	}
	return rv
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
