package schema

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/cmmoran/treefmt/pkg/node"
)

// TypeKey names the object key that selects an object's record type.
const TypeKey = "_type"

const (
	FormatYAML    = "yaml"
	FormatMsgpack = "msgpack"
)

var ErrDocument = errors.New("invalid document")

// FormatOf picks a document format from a file extension. JSON is read as
// YAML.
func FormatOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return FormatYAML, nil
	case ".msgpack", ".mp":
		return FormatMsgpack, nil
	}
	return "", fmt.Errorf("%w: unrecognized extension for %s", ErrDocument, path)
}

// LoadDocument reads the root nodes stored at path.
func LoadDocument(s *Schema, path string) ([]node.Node, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	roots, err := DecodeDocument(s, data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return roots, nil
}

// DecodeDocument decodes a list of root objects (or a single root object)
// and converts them to nodes. Required fields missing from an object are
// left unset so the node renders them as degraded.
func DecodeDocument(s *Schema, data []byte, format string) ([]node.Node, error) {
	var raw any
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("unmarshal yaml document: %w", err)
		}
	case FormatMsgpack:
		if err := msgpack.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("unmarshal msgpack document: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: unknown format %q", ErrDocument, format)
	}

	var objs []any
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []any:
		objs = v
	default:
		objs = []any{v}
	}

	roots := make([]node.Node, 0, len(objs))
	for i, obj := range objs {
		n, err := s.decodeRecord("", obj, fmt.Sprintf("[%d]", i))
		if err != nil {
			return nil, err
		}
		roots = append(roots, n)
	}
	return roots, nil
}

// NewNode creates an empty node for the record named name.
func (s *Schema) NewNode(name string) (*node.Record, error) {
	r := s.Record(name)
	if r == nil {
		return nil, fmt.Errorf("%w %q", ErrUnknownType, name)
	}
	fields := make([]node.Field, 0, len(r.Fields))
	for _, f := range r.Fields {
		d, err := s.Resolve(f.Type)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", r.Name, f.Name, err)
		}
		fields = append(fields, node.Field{Name: f.Name, Type: d})
	}
	return node.NewRecord(r.Name, fields...), nil
}

func (s *Schema) decodeRecord(typeName string, raw any, path string) (*node.Record, error) {
	obj, err := toMap(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDocument, path, err)
	}

	ctor, _ := obj[TypeKey].(string)
	if ctor == "" {
		if typeName == "" || s.IsSum(typeName) {
			return nil, fmt.Errorf("%w: %s: missing %s", ErrDocument, path, TypeKey)
		}
		ctor = typeName
	}
	if !s.Accepts(typeName, ctor) {
		return nil, fmt.Errorf("%w: %s: %q is not a %s", ErrDocument, path, ctor, typeName)
	}

	n, err := s.NewNode(ctor)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDocument, path, err)
	}

	for _, key := range sortedObjectKeys(obj) {
		if key == TypeKey {
			continue
		}
		desc, ok := n.Descriptor(key)
		if !ok {
			return nil, fmt.Errorf("%w: %s: %s has no field %q", ErrDocument, path, ctor, key)
		}
		v, err := s.decodeValue(desc, obj[key], path+"."+key)
		if err != nil {
			return nil, err
		}
		n.Set(key, v)
	}
	// An array left out of the document is empty, not missing.
	for _, name := range n.FieldNames() {
		if d, _ := n.Descriptor(name); d.Kind == node.KindArray {
			if _, ok := obj[name]; !ok {
				n.Set(name, []any{})
			}
		}
	}
	return n, nil
}

func (s *Schema) decodeValue(desc node.Descriptor, raw any, path string) (any, error) {
	switch desc.Kind {
	case node.KindInt:
		i, ok := toInt(raw)
		if !ok {
			return nil, fmt.Errorf("%w: %s: want int, got %T", ErrDocument, path, raw)
		}
		return i, nil

	case node.KindString:
		if raw == nil {
			return nil, fmt.Errorf("%w: %s: want string, got null", ErrDocument, path)
		}
		if str, ok := raw.(string); ok {
			return str, nil
		}
		return fmt.Sprint(raw), nil

	case node.KindEnum:
		if i, ok := toInt(raw); ok {
			return i, nil
		}
		name, _ := raw.(string)
		c, ok := s.Constant(desc.Name, name)
		if !ok {
			return nil, fmt.Errorf("%w: %s: %v is not a constant of %s", ErrDocument, path, raw, desc.Name)
		}
		return c, nil

	case node.KindArray:
		if raw == nil {
			return []any{}, nil
		}
		items, ok := raw.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s: want list, got %T", ErrDocument, path, raw)
		}
		out := make([]any, len(items))
		for i, item := range items {
			v, err := s.decodeValue(desc.Element(), item, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil

	case node.KindOptional:
		if raw == nil {
			return nil, nil
		}
		return s.decodeValue(desc.Element(), raw, path)
	}

	if raw == nil {
		return nil, nil
	}
	return s.decodeRecord(desc.Name, raw, path)
}

func toMap(raw any) (map[string]any, error) {
	switch m := raw.(type) {
	case map[string]any:
		return m, nil
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, v := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("non-string key %v", k)
			}
			out[ks] = v
		}
		return out, nil
	}
	return nil, fmt.Errorf("want object, got %T", raw)
}

func toInt(raw any) (int, bool) {
	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int(rv.Uint()), true
	}
	return 0, false
}

func sortedObjectKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
