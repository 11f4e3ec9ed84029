// Package node defines the typed-node contract consumed by the printer: a
// labelled record with ordered, typed fields whose values may be missing.
package node

// Node is a typed tree node.
//
// Field reports ok == false when the value cannot currently be retrieved
// (a partially constructed node). An absent optional field is reported as a
// nil value with ok == true.
type Node interface {
	Label() string
	FieldNames() []string
	Field(name string) (any, bool)
	Descriptor(name string) (Descriptor, bool)
}

// Named is implemented by resolved enum constants.
type Named interface {
	Name() string
}

// Constant is a resolved simple-sum constant.
type Constant struct {
	Ident string
	Value int
}

func (c Constant) Name() string   { return c.Ident }
func (c Constant) String() string { return c.Ident }

// Record is a dynamic Node backed by maps. The zero value is not usable; use
// NewRecord.
type Record struct {
	label       string
	names       []string
	values      map[string]any
	descriptors map[string]Descriptor
}

// Field declares a field of a Record in order.
type Field struct {
	Name string
	Type Descriptor
}

func NewRecord(label string, fields ...Field) *Record {
	r := &Record{
		label:       label,
		names:       make([]string, 0, len(fields)),
		values:      make(map[string]any, len(fields)),
		descriptors: make(map[string]Descriptor, len(fields)),
	}
	for _, f := range fields {
		r.names = append(r.names, f.Name)
		r.descriptors[f.Name] = f.Type
	}
	return r
}

func (r *Record) Label() string { return r.label }

func (r *Record) FieldNames() []string {
	return append([]string(nil), r.names...)
}

func (r *Record) Field(name string) (any, bool) {
	if v, ok := r.values[name]; ok {
		return v, true
	}
	if d, ok := r.descriptors[name]; ok && d.Kind == KindOptional {
		return nil, true
	}
	return nil, false
}

func (r *Record) Descriptor(name string) (Descriptor, bool) {
	d, ok := r.descriptors[name]
	return d, ok
}

// Set assigns a field value. Undeclared names are appended to the field list
// without a descriptor.
func (r *Record) Set(name string, v any) *Record {
	if !r.declared(name) {
		r.names = append(r.names, name)
	}
	r.values[name] = v
	return r
}

// Unset forgets a field value, leaving the node degraded for that field.
func (r *Record) Unset(name string) *Record {
	delete(r.values, name)
	return r
}

func (r *Record) declared(name string) bool {
	for _, n := range r.names {
		if n == name {
			return true
		}
	}
	return false
}
