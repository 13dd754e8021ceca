// Package token implements the token parser: primitives, delimited
// value lists, keys, and array headers.
package token

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/tooncodec/toon-go/internal/header"
	"github.com/tooncodec/toon-go/internal/quote"
	"github.com/tooncodec/toon-go/internal/toonerr"
	"github.com/tooncodec/toon-go/internal/tvalue"
)

// ParsePrimitive parses one scalar token. Per the decode asymmetry
// invariant, every unquoted token other than true/false/null decodes
// to String — including numeric-looking tokens. A quoted token always
// decodes to String, with escapes resolved. An empty (post-trim) token
// is an error: a genuinely empty string value is always written
// quoted ("") by the encoder, so an unquoted empty token means a value
// was omitted where one was required.
func ParsePrimitive(raw string) (tvalue.Value, error) {
	t := strings.TrimSpace(raw)
	if t == "" {
		return nil, toonerr.ParseErr(0, 0, "empty primitive value")
	}
	if t[0] == '"' {
		s, err := quote.Unquote(t)
		if err != nil {
			return nil, err
		}
		return tvalue.String(s), nil
	}
	switch t {
	case "null":
		return tvalue.Null{}, nil
	case "true":
		return tvalue.Bool(true), nil
	case "false":
		return tvalue.Bool(false), nil
	}
	return tvalue.String(t), nil
}

// SplitDelimited tokenizes segment on delim, treating quoted runs
// (including escaped characters within them) as opaque. An unterminated
// quote spanning the whole segment is an error.
func SplitDelimited(segment string, delim rune) ([]string, error) {
	if strings.TrimSpace(segment) == "" {
		return nil, nil
	}
	runes := []rune(segment)
	var tokens []string
	var cur strings.Builder
	inQuotes := false
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case inQuotes && r == '\\' && i+1 < len(runes):
			cur.WriteRune(r)
			cur.WriteRune(runes[i+1])
			i++
		case r == '"':
			cur.WriteRune(r)
			inQuotes = !inQuotes
		case r == delim && !inQuotes:
			tokens = append(tokens, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	if inQuotes {
		return nil, toonerr.UnterminatedString(len(segment))
	}
	tokens = append(tokens, strings.TrimSpace(cur.String()))
	return tokens, nil
}

// IndexOutsideQuotes returns the byte index of the first occurrence of
// target outside of a quoted run, or -1.
func IndexOutsideQuotes(s string, target byte) int {
	inQuotes := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inQuotes:
			escaped = true
		case c == '"':
			inQuotes = !inQuotes
		case !inQuotes && c == target:
			return i
		}
	}
	return -1
}

// ParseKey reads a key from the start of content: a quoted key
// followed by ':', or everything up to the first unquoted ':'.
func ParseKey(content string) (key string, rest string, err error) {
	colon := IndexOutsideQuotes(content, ':')
	if colon == -1 {
		return "", "", toonerr.MissingColon(0)
	}
	keyToken := strings.TrimSpace(content[:colon])
	rest = strings.TrimSpace(content[colon+1:])
	key, err = decodeKeyToken(keyToken)
	if err != nil {
		return "", "", err
	}
	return key, rest, nil
}

func decodeKeyToken(t string) (string, error) {
	if t == "" {
		return "", toonerr.ParseErr(0, 0, "empty key")
	}
	if t[0] == '"' {
		return quote.Unquote(t)
	}
	if !quote.IsValidUnquotedKey(t) {
		return "", toonerr.ParseErr(0, 0, "invalid unquoted key "+strconv.Quote(t))
	}
	return t, nil
}

// Header is the parsed form of an array header line.
type Header struct {
	Key          string
	HasKey       bool
	Length       int
	Delimiter    header.Delimiter
	Marker       header.LengthMarker
	Fields       []string
	HasFields    bool
	InlineValues string
}

// ParseHeader attempts to parse content as "key?[marker?Ndelim?]fields?:
// inline?". It returns ok=false (with a nil error) when content is not
// shaped like a header at all, so callers can fall back to key:value
// or bare-value parsing.
func ParseHeader(content string) (Header, bool, error) {
	colon := IndexOutsideQuotes(content, ':')
	if colon == -1 {
		return Header{}, false, nil
	}
	left := strings.TrimSpace(content[:colon])
	right := strings.TrimSpace(content[colon+1:])
	if left == "" {
		return Header{}, false, nil
	}
	bracketStart := IndexOutsideQuotes(left, '[')
	if bracketStart == -1 {
		return Header{}, false, nil
	}
	afterBracket := left[bracketStart+1:]
	bracketEnd := IndexOutsideQuotes(afterBracket, ']')
	if bracketEnd == -1 {
		return Header{}, false, toonerr.InvalidHeader("missing closing bracket", 0)
	}
	keyPart := strings.TrimSpace(left[:bracketStart])
	bracketSegment := afterBracket[:bracketEnd]
	fieldSegment := strings.TrimSpace(afterBracket[bracketEnd+1:])

	h := Header{Delimiter: header.Comma}
	if keyPart != "" {
		key, err := decodeKeyToken(keyPart)
		if err != nil {
			return Header{}, false, err
		}
		h.Key = key
		h.HasKey = true
	}

	length, marker, delim, err := parseBracketSegment(bracketSegment)
	if err != nil {
		return Header{}, false, err
	}
	h.Length = length
	h.Marker = marker
	h.Delimiter = delim

	if fieldSegment != "" {
		if !strings.HasPrefix(fieldSegment, "{") || !strings.HasSuffix(fieldSegment, "}") {
			return Header{}, false, toonerr.InvalidHeader("invalid field list", 0)
		}
		inner := fieldSegment[1 : len(fieldSegment)-1]
		h.HasFields = true
		if inner != "" {
			raw, err := SplitDelimited(inner, delim.Rune())
			if err != nil {
				return Header{}, false, err
			}
			fields := make([]string, 0, len(raw))
			for _, tok := range raw {
				f, err := decodeKeyToken(tok)
				if err != nil {
					return Header{}, false, err
				}
				fields = append(fields, f)
			}
			h.Fields = fields
		}
	}

	h.InlineValues = right
	return h, true, nil
}

// parseBracketSegment parses "marker?Ndelim?" (the content between
// '[' and ']'). Two distinct delimiter symbols inside the same
// segment is an unambiguous DelimiterMismatch; any other stray
// character is a malformed header.
func parseBracketSegment(segment string) (length int, marker header.LengthMarker, delim header.Delimiter, err error) {
	marker = header.NoMarker
	delim = header.Comma
	if strings.HasPrefix(segment, "#") {
		marker = header.HashMarker
		segment = segment[1:]
	}
	if segment == "" {
		return 0, marker, delim, toonerr.InvalidHeader("missing array length", 0)
	}
	var digits strings.Builder
	sawDelim := false
	for _, r := range segment {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
			continue
		}
		var candidate header.Delimiter
		switch r {
		case '\t':
			candidate = header.Tab
		case '|':
			candidate = header.Pipe
		default:
			return 0, marker, delim, toonerr.InvalidHeader("invalid character in array length", 0)
		}
		if sawDelim && candidate != delim {
			return 0, marker, delim, toonerr.DelimiterMismatch(delim.Rune(), 0)
		}
		delim = candidate
		sawDelim = true
	}
	if digits.Len() == 0 {
		return 0, marker, delim, toonerr.InvalidHeader("missing digits in array length", 0)
	}
	n, convErr := strconv.Atoi(digits.String())
	if convErr != nil {
		return 0, marker, delim, toonerr.InvalidHeader("array length is not a valid integer", 0)
	}
	return n, marker, delim, nil
}
