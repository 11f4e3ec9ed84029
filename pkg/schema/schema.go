// Package schema describes node types in an ASDL-like YAML form and decodes
// node documents against it.
package schema

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cmmoran/treefmt/pkg/node"
)

var (
	ErrUnknownType = errors.New("unknown type")
	ErrInvalid     = errors.New("invalid schema")
)

// Field is a named, typed record field. Type is a type expression: int,
// string, identifier, an enum, record or sum name, optionally followed by
// * (array) or ? (optional).
type Field struct {
	Name string `yaml:"name" json:"name"`
	Type string `yaml:"type" json:"type"`
}

// Record is a product type (or a constructor of a sum).
type Record struct {
	Name    string  `yaml:"name" json:"name"`
	Comment string  `yaml:"comment,omitempty" json:"comment,omitempty"`
	Fields  []Field `yaml:"fields" json:"fields"`
}

// Schema is the set of types nodes may have.
//
// Enums are simple sums: a closed set of named constants, numbered in
// declaration order. Sums are compound sums whose constructors are records.
type Schema struct {
	Package string              `yaml:"package,omitempty" json:"package,omitempty"`
	Enums   map[string][]string `yaml:"enums,omitempty" json:"enums,omitempty"`
	Sums    map[string][]string `yaml:"sums,omitempty" json:"sums,omitempty"`
	Records []*Record           `yaml:"records" json:"records"`
}

// Load reads a schema from path.
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML schema.
func Parse(data []byte) (*Schema, error) {
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal schema: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Marshal encodes s as YAML.
func (s *Schema) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return data, nil
}

// Validate checks that names are unique, sum constructors are records and
// every field type resolves.
func (s *Schema) Validate() error {
	seen := map[string]string{}
	claim := func(name, what string) error {
		if name == "" {
			return fmt.Errorf("%w: empty %s name", ErrInvalid, what)
		}
		if isBuiltin(name) {
			return fmt.Errorf("%w: %s %q shadows a builtin type", ErrInvalid, what, name)
		}
		if prev, ok := seen[name]; ok {
			return fmt.Errorf("%w: %s %q already declared as %s", ErrInvalid, what, name, prev)
		}
		seen[name] = what
		return nil
	}

	for _, name := range sortedKeys(s.Enums) {
		if err := claim(name, "enum"); err != nil {
			return err
		}
		if len(s.Enums[name]) == 0 {
			return fmt.Errorf("%w: enum %q has no constants", ErrInvalid, name)
		}
	}
	for _, name := range sortedKeys(s.Sums) {
		if err := claim(name, "sum"); err != nil {
			return err
		}
	}
	for _, r := range s.Records {
		if r == nil {
			return fmt.Errorf("%w: null record", ErrInvalid)
		}
		if err := claim(r.Name, "record"); err != nil {
			return err
		}
	}

	for _, name := range sortedKeys(s.Sums) {
		for _, ctor := range s.Sums[name] {
			if s.Record(ctor) == nil {
				return fmt.Errorf("%w: sum %q constructor %q is not a record", ErrInvalid, name, ctor)
			}
		}
	}
	for _, r := range s.Records {
		fields := map[string]bool{}
		for _, f := range r.Fields {
			if fields[f.Name] {
				return fmt.Errorf("%w: record %q repeats field %q", ErrInvalid, r.Name, f.Name)
			}
			fields[f.Name] = true
			if _, err := s.Resolve(f.Type); err != nil {
				return fmt.Errorf("%w: %s.%s: %w", ErrInvalid, r.Name, f.Name, err)
			}
		}
	}
	return nil
}

// Resolve converts a type expression into a node.Descriptor.
func (s *Schema) Resolve(expr string) (node.Descriptor, error) {
	expr = strings.TrimSpace(expr)
	switch {
	case strings.HasSuffix(expr, "*"):
		elem, err := s.Resolve(strings.TrimSuffix(expr, "*"))
		if err != nil {
			return node.Descriptor{}, err
		}
		return node.Array(elem), nil
	case strings.HasSuffix(expr, "?"):
		elem, err := s.Resolve(strings.TrimSuffix(expr, "?"))
		if err != nil {
			return node.Descriptor{}, err
		}
		return node.Optional(elem), nil
	case expr == "int":
		return node.Int(), nil
	case expr == "string" || expr == "identifier":
		return node.String(), nil
	}
	if _, ok := s.Enums[expr]; ok {
		return node.Enum(expr), nil
	}
	if _, ok := s.Sums[expr]; ok {
		return node.RecordOf(expr), nil
	}
	if s.Record(expr) != nil {
		return node.RecordOf(expr), nil
	}
	return node.Descriptor{}, fmt.Errorf("%w %q", ErrUnknownType, expr)
}

// Record returns the record named name, or nil.
func (s *Schema) Record(name string) *Record {
	for _, r := range s.Records {
		if r != nil && r.Name == name {
			return r
		}
	}
	return nil
}

// IsSum reports whether name is a compound sum.
func (s *Schema) IsSum(name string) bool {
	_, ok := s.Sums[name]
	return ok
}

// Constant resolves a constant of enum by name.
func (s *Schema) Constant(enum, name string) (node.Constant, bool) {
	for i, c := range s.Enums[enum] {
		if c == name {
			return node.Constant{Ident: c, Value: i}, true
		}
	}
	return node.Constant{}, false
}

// Accepts reports whether a record named ctor may appear where typeName is
// expected.
func (s *Schema) Accepts(typeName, ctor string) bool {
	if typeName == "" || typeName == ctor {
		return s.Record(ctor) != nil
	}
	for _, c := range s.Sums[typeName] {
		if c == ctor {
			return true
		}
	}
	return false
}

// SortedEnums returns enum names in lexical order.
func (s *Schema) SortedEnums() []string { return sortedKeys(s.Enums) }

// SortedSums returns sum names in lexical order.
func (s *Schema) SortedSums() []string { return sortedKeys(s.Sums) }

// SumsOf returns the sums ctor is a constructor of, in lexical order.
func (s *Schema) SumsOf(ctor string) []string {
	var out []string
	for _, name := range sortedKeys(s.Sums) {
		for _, c := range s.Sums[name] {
			if c == ctor {
				out = append(out, name)
				break
			}
		}
	}
	return out
}

func isBuiltin(name string) bool {
	return name == "int" || name == "string" || name == "identifier"
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
