// Package quote implements the quoting and escaping rules shared by
// the encoder and decoder: deciding when a scalar or key needs
// quoting, and escaping/unescaping quoted strings.
package quote

import (
	"strings"

	"github.com/tooncodec/toon-go/internal/toonerr"
)

// NeedsQuoting reports whether s must be quoted given the active
// delimiter for its scope. delim is 0 when no delimiter applies (e.g.
// a key, which is never checked against a delimiter).
func NeedsQuoting(s string, delim rune) bool {
	if len(s) == 0 {
		return true
	}
	if s[0] == ' ' || s[0] == '\t' || s[len(s)-1] == ' ' || s[len(s)-1] == '\t' {
		return true
	}
	switch s {
	case "true", "false", "null":
		return true
	}
	if looksNumericLike(s) {
		return true
	}
	if strings.ContainsAny(s, ":\"\\[]{}") {
		return true
	}
	if strings.ContainsAny(s, "\n\r\t") {
		return true
	}
	if strings.HasPrefix(s, "-") {
		return true
	}
	if delim != 0 && strings.ContainsRune(s, delim) {
		return true
	}
	return false
}

// looksNumericLike implements the lexical pattern -?D(D|.|e|E|+|-)*
// from the quoting rules: a leading optional '-', a digit, then any
// run of digits/./e/E/+/-. This is deliberately broader than "is a
// valid float" — malformed numeric-shaped strings like "1.2.3" or
// "1-2-3" still need quoting so a decoder can't mistake them for
// numbers.
func looksNumericLike(s string) bool {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	if i >= len(s) || !isDigit(s[i]) {
		return false
	}
	for ; i < len(s); i++ {
		c := s[i]
		if !(isDigit(c) || c == '.' || c == 'e' || c == 'E' || c == '+' || c == '-') {
			return false
		}
	}
	return true
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// NeedsKeyQuoting reports whether key does not match the unquoted-key
// pattern [A-Za-z_][A-Za-z0-9_.]*.
func NeedsKeyQuoting(key string) bool {
	return !IsValidUnquotedKey(key)
}

// IsValidUnquotedKey reports whether key matches [A-Za-z_][A-Za-z0-9_.]*.
func IsValidUnquotedKey(key string) bool {
	if key == "" {
		return false
	}
	for i := 0; i < len(key); i++ {
		c := key[i]
		if i == 0 {
			if !isAlpha(c) && c != '_' {
				return false
			}
			continue
		}
		if !isAlpha(c) && !isDigit(c) && c != '_' && c != '.' {
			return false
		}
	}
	return true
}

func isAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') }

// Quote wraps s in double quotes, escaping \, ", \n, \r and \t.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// EncodeKey renders key per the key-quoting rules.
func EncodeKey(key string) string {
	if IsValidUnquotedKey(key) {
		return key
	}
	return Quote(key)
}

// Unquote removes the surrounding quotes from token (which must start
// and end with an unescaped '"') and unescapes its contents. token is
// expected to be exactly one quoted string with nothing trailing.
func Unquote(token string) (string, error) {
	if len(token) == 0 || token[0] != '"' {
		return "", toonerr.ParseErr(0, 0, "not a quoted string")
	}
	var b strings.Builder
	b.Grow(len(token) - 2)
	i := 1
	closed := false
	for i < len(token) {
		c := token[i]
		if c == '\\' {
			if i+1 >= len(token) {
				return "", toonerr.UnterminatedString(i)
			}
			esc := token[i+1]
			switch esc {
			case '\\':
				b.WriteByte('\\')
			case '"':
				b.WriteByte('"')
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			default:
				return "", toonerr.InvalidEscape(string(esc), i)
			}
			i += 2
			continue
		}
		if c == '"' {
			closed = true
			i++
			break
		}
		b.WriteByte(c)
		i++
	}
	if !closed {
		return "", toonerr.UnterminatedString(len(token))
	}
	if i != len(token) {
		return "", toonerr.ParseErr(0, 0, "trailing characters after quoted string")
	}
	return b.String(), nil
}
