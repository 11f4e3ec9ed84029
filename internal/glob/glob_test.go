package glob

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeUnescape(t *testing.T) {
	pairs := []struct {
		escaped, raw string
	}{
		{`\*.py`, `*.py`},
		{`\?.py`, `?.py`},
		{`\[a\-z\]\[\[\:punct\:\]\]`, `[a-z][[:punct:]]`},
		{`\\n`, `\n`},
		{`\!x`, `!x`},
		{`plain`, `plain`},
	}
	for _, p := range pairs {
		assert.Equal(t, p.escaped, Escape(p.raw))
		assert.Equal(t, p.raw, Unescape(p.escaped))
	}
}

func TestUnescapeTrailingBackslash(t *testing.T) {
	assert.Equal(t, `a\`, Unescape(`a\`))
}

func TestLooksLikeGlob(t *testing.T) {
	cases := []struct {
		pat  string
		want bool
	}{
		{`[]`, true},
		{`[][`, true},
		{`][`, false},
		{`\[]`, false},
		{`[`, false},
		{`]`, false},
		{`echo`, false},
		{`status=0`, false},

		{`*`, true},
		{`\*`, false},
		{`\*.sh`, false},

		{`\`, false},
		{`*\`, true},

		{`?`, true},
	}
	for _, c := range cases {
		assert.Equalf(t, c.want, LooksLikeGlob(c.pat), "%s: expected %v", c.pat, c.want)
	}
}
