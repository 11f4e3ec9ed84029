// Package glob has helpers for recognizing and quoting shell glob patterns.
package glob

import "strings"

const metaChars = `\*?[]-:!`

// Escape backslash-escapes every glob metacharacter in s.
func Escape(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(metaChars, s[i]) >= 0 {
			sb.WriteByte('\\')
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

// Unescape removes one level of backslash escaping. A trailing lone
// backslash is kept.
func Unescape(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

// LooksLikeGlob reports whether s has an unescaped * or ?, or an unescaped
// [ followed somewhere by an unescaped ].
func LooksLikeGlob(s string) bool {
	leftBracket := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '*', '?':
			return true
		case '[':
			leftBracket = true
		case ']':
			if leftBracket {
				return true
			}
		}
	}
	return false
}
