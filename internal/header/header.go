// Package header renders array headers: [N], [#N], [N<delim>] and
// [N]{fields}. Parsing headers on decode is the token parser's job
// (internal/token), since it must interleave with key/colon parsing.
package header

import (
	"strconv"
	"strings"
)

// Delimiter identifies the character that separates values within an
// array's scope.
type Delimiter rune

const (
	Comma Delimiter = ','
	Tab   Delimiter = '\t'
	Pipe  Delimiter = '|'
)

// Rune returns the delimiter's separator character.
func (d Delimiter) Rune() rune {
	switch d {
	case Tab:
		return '\t'
	case Pipe:
		return '|'
	default:
		return ','
	}
}

// Symbol returns the character echoed inside the header brackets, or
// the empty string for comma (which carries no symbol).
func (d Delimiter) Symbol() string {
	switch d {
	case Tab:
		return "\t"
	case Pipe:
		return "|"
	default:
		return ""
	}
}

func (d Delimiter) String() string {
	switch d {
	case Tab:
		return "tab"
	case Pipe:
		return "pipe"
	default:
		return "comma"
	}
}

// LengthMarker controls whether the optional '#' length marker is
// emitted inside the brackets.
type LengthMarker int

const (
	NoMarker LengthMarker = iota
	HashMarker
)

// Render produces "key[#N<delim>]{f1,f2}:" from its parts. keyLiteral
// and fieldLiterals must already be quote-encoded by the caller; this
// package only assembles the grammar around them.
func Render(keyLiteral string, length int, delim Delimiter, marker LengthMarker, fieldLiterals []string) string {
	var b strings.Builder
	b.WriteString(keyLiteral)
	b.WriteByte('[')
	if marker == HashMarker {
		b.WriteByte('#')
	}
	b.WriteString(strconv.Itoa(length))
	b.WriteString(delim.Symbol())
	b.WriteByte(']')
	if len(fieldLiterals) > 0 {
		b.WriteByte('{')
		sep := string(delim.Rune())
		b.WriteString(strings.Join(fieldLiterals, sep))
		b.WriteByte('}')
	}
	b.WriteByte(':')
	return b.String()
}
