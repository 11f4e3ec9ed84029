package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriptorString(t *testing.T) {
	tests := []struct {
		name string
		d    Descriptor
		want string
	}{
		{"int", Int(), "int"},
		{"string", String(), "string"},
		{"enum", Enum("op_id"), "op_id"},
		{"record", RecordOf("word"), "word"},
		{"array", Array(RecordOf("word")), "word*"},
		{"optional", Optional(RecordOf("redirect")), "redirect?"},
		{"nested", Optional(Array(Int())), "int*?"},
		{"bare array", Descriptor{Kind: KindArray}, "record*"},
		{"zero", Descriptor{}, "invalid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.d.String())
		})
	}
}

func TestRecordFields(t *testing.T) {
	r := NewRecord("SimpleCommand",
		Field{Name: "words", Type: RecordOf("word")},
		Field{Name: "redirects", Type: Optional(RecordOf("redirect"))},
		Field{Name: "args", Type: Array(String())},
	)

	_, ok := r.Field("words")
	assert.False(t, ok, "unset required field is degraded")

	_, ok = r.Field("args")
	assert.False(t, ok, "unset array is degraded too")

	v, ok := r.Field("redirects")
	assert.True(t, ok, "unset optional field is absent, not degraded")
	assert.Nil(t, v)

	r.Set("words", "ls")
	v, ok = r.Field("words")
	require.True(t, ok)
	assert.Equal(t, "ls", v)

	r.Unset("words")
	_, ok = r.Field("words")
	assert.False(t, ok)

	r.Set("extra", 1)
	assert.Equal(t, []string{"words", "redirects", "args", "extra"}, r.FieldNames())
	_, ok = r.Descriptor("extra")
	assert.False(t, ok)
}

func TestConstant(t *testing.T) {
	var n Named = Constant{Ident: "Plus", Value: 1}
	assert.Equal(t, "Plus", n.Name())
	assert.Equal(t, "Plus", Constant{Ident: "Plus"}.String())
}
