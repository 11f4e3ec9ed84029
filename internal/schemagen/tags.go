package schemagen

import (
	"reflect"
	"strings"
)

const tagKey = "treefmt"

// fieldTag is the parsed form of a `treefmt:"name,optional"` struct tag.
type fieldTag struct {
	Name     string
	Optional bool
	Omit     bool
}

func parseFieldTag(tag string) fieldTag {
	v, ok := reflect.StructTag(strings.Trim(tag, "`")).Lookup(tagKey)
	if !ok {
		return fieldTag{}
	}
	if v == "-" {
		return fieldTag{Omit: true}
	}
	name, opts, _ := strings.Cut(v, ",")
	return fieldTag{
		Name:     strings.TrimSpace(name),
		Optional: containsTagPart(opts, "optional"),
	}
}

// containsTagPart splits a tag value on common delimiters and reports whether
// any fragment matches the expected value.
func containsTagPart(tagVal, expected string) bool {
	if tagVal == "" {
		return false
	}

	for _, part := range strings.FieldsFunc(tagVal, func(r rune) bool {
		return r == ';' || r == ','
	}) {
		if strings.TrimSpace(part) == expected {
			return true
		}
	}

	return false
}
