// Package encode implements the encoder driver: it walks a Value tree,
// decides each array's shape, and assembles indented, quoted output
// through the line writer.
package encode

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tooncodec/toon-go/internal/header"
	"github.com/tooncodec/toon-go/internal/quote"
	"github.com/tooncodec/toon-go/internal/shape"
	"github.com/tooncodec/toon-go/internal/tvalue"
	"github.com/tooncodec/toon-go/internal/writer"
)

// Options configures the encoder. The zero value is not meaningful on
// its own — use Defaults() to get the spec's documented defaults.
type Options struct {
	IndentSize   int
	Delimiter    header.Delimiter
	LengthMarker header.LengthMarker
}

// Defaults returns indent_size=2, delimiter=Comma, length_marker=None.
func Defaults() Options {
	return Options{IndentSize: 2, Delimiter: header.Comma, LengthMarker: header.NoMarker}
}

// Encode renders v as a TOON document under opts.
func Encode(v tvalue.Value, opts Options) (s string, err error) {
	if opts.IndentSize <= 0 {
		opts.IndentSize = 2
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("toon: %v", r)
		}
	}()
	st := &state{w: writer.New(opts.IndentSize), opts: opts}
	st.root(tvalue.OrNull(v))
	return st.w.Finish(), nil
}

type state struct {
	w    *writer.Writer
	opts Options
}

func (s *state) delim() rune { return s.opts.Delimiter.Rune() }

func (s *state) root(v tvalue.Value) {
	switch val := v.(type) {
	case tvalue.Object:
		s.object(val, 0)
	case tvalue.Array:
		s.array("", val, 0)
	default:
		s.w.Push(0, s.primitive(val))
	}
}

func (s *state) object(obj tvalue.Object, depth int) {
	if depth == 0 && obj.IsEmpty() {
		return
	}
	for _, f := range obj.Fields {
		switch val := f.Value.(type) {
		case tvalue.Object:
			s.w.Push(depth, quote.EncodeKey(f.Key)+":")
			s.object(val, depth+1)
		case tvalue.Array:
			s.array(f.Key, val, depth)
		default:
			s.w.Push(depth, quote.EncodeKey(f.Key)+": "+s.primitive(val))
		}
	}
}

// array encodes a (possibly keyed) array with its header at depth and
// its body, if any, at depth+1. This is used for the document root
// and for an object's array-valued fields; list items that themselves
// hold an array use the separate bare-hyphen and keyed-hyphen paths
// below, since their header line carries a "- " prefix.
func (s *state) array(key string, xs tvalue.Array, depth int) {
	keyLiteral := ""
	if key != "" {
		keyLiteral = quote.EncodeKey(key)
	}
	s.arrayBody("", keyLiteral, xs, depth)
}

// arrayBody renders an array's header (prefixed with linePrefix, e.g.
// "" or "- ") at headerDepth and its body at headerDepth+1, dispatching
// on the array's detected shape.
func (s *state) arrayBody(linePrefix, keyLiteral string, xs tvalue.Array, headerDepth int) {
	decision := shape.Detect(xs)
	switch decision.Kind {
	case shape.Empty, shape.InlinePrimitive:
		s.pushInline(headerDepth, linePrefix, keyLiteral, xs, nil)
	case shape.NestedPrimitiveArrays:
		s.w.Push(headerDepth, linePrefix+header.Render(keyLiteral, len(xs), s.opts.Delimiter, s.opts.LengthMarker, nil))
		for _, item := range xs {
			inner := tvalue.OrNull(item).(tvalue.Array)
			s.pushInline(headerDepth+1, "- ", "", inner, nil)
		}
	case shape.Tabular:
		fieldLiterals := make([]string, len(decision.Fields))
		for i, f := range decision.Fields {
			fieldLiterals[i] = quote.EncodeKey(f)
		}
		s.w.Push(headerDepth, linePrefix+header.Render(keyLiteral, len(xs), s.opts.Delimiter, s.opts.LengthMarker, fieldLiterals))
		for _, item := range xs {
			obj := tvalue.OrNull(item).(tvalue.Object)
			parts := make([]string, len(decision.Fields))
			for i, f := range decision.Fields {
				val, _ := obj.Get(f)
				parts[i] = s.primitive(tvalue.OrNull(val))
			}
			s.w.Push(headerDepth+1, strings.Join(parts, string(s.delim())))
		}
	default: // ExpandedList
		s.w.Push(headerDepth, linePrefix+header.Render(keyLiteral, len(xs), s.opts.Delimiter, s.opts.LengthMarker, nil))
		for _, item := range xs {
			s.listItem(tvalue.OrNull(item), headerDepth+1)
		}
	}
}

// pushInline writes "prefix?key?[N<delim>]: v1<delim>v2..." on a
// single line.
func (s *state) pushInline(depth int, linePrefix, keyLiteral string, xs tvalue.Array, _ []string) {
	line := linePrefix + header.Render(keyLiteral, len(xs), s.opts.Delimiter, s.opts.LengthMarker, nil)
	if len(xs) > 0 {
		parts := make([]string, len(xs))
		for i, v := range xs {
			parts[i] = s.primitive(tvalue.OrNull(v))
		}
		line += " " + strings.Join(parts, string(s.delim()))
	}
	s.w.Push(depth, line)
}

// listItem encodes one element of an expanded-list array at depth
// (the item's own depth, i.e. the hyphen line's depth).
func (s *state) listItem(v tvalue.Value, depth int) {
	switch val := v.(type) {
	case tvalue.Object:
		s.objectListItem(val, depth)
	case tvalue.Array:
		s.bareArrayListItem(val, depth)
	default:
		s.w.Push(depth, "- "+s.primitive(val))
	}
}

// bareArrayListItem encodes an array that is itself a direct list
// element (not wrapped in an object field) — rule 5c. A primitive
// (or empty) array is written inline on the hyphen line; anything
// else leaves the hyphen bare and writes the nested header/body two
// indent levels below the item.
func (s *state) bareArrayListItem(xs tvalue.Array, depth int) {
	if shape.IsPrimitiveArray(xs) {
		s.pushInline(depth, "- ", "", xs, nil)
		return
	}
	s.w.Push(depth, "-")
	s.arrayBody("", "", xs, depth+2)
}

func (s *state) objectListItem(obj tvalue.Object, depth int) {
	if obj.IsEmpty() {
		s.w.Push(depth, "- {}")
		return
	}
	first := obj.Fields[0]
	rest := tvalue.Object{Fields: obj.Fields[1:]}
	switch val := first.Value.(type) {
	case tvalue.Array:
		// The first field's header is inlined on the hyphen line
		// regardless of the array's own shape; its body (if any)
		// follows at depth+1, like any keyed array field.
		s.arrayBody("- ", quote.EncodeKey(first.Key), val, depth)
		if !rest.IsEmpty() {
			s.object(rest, depth+1)
		}
	case tvalue.Object:
		// A nested object as the first field: key on the hyphen
		// line, its own body two levels deeper, sibling fields one
		// level deeper.
		s.w.Push(depth, "- "+quote.EncodeKey(first.Key)+":")
		s.object(val, depth+2)
		if !rest.IsEmpty() {
			s.object(rest, depth+1)
		}
	default:
		s.w.Push(depth, "- "+quote.EncodeKey(first.Key)+": "+s.primitive(val))
		if !rest.IsEmpty() {
			s.object(rest, depth+1)
		}
	}
}

// primitive renders a scalar Value as its TOON token: null/true/false,
// a number literal, or a (possibly quoted) string.
func (s *state) primitive(v tvalue.Value) string {
	switch val := v.(type) {
	case tvalue.Null, nil:
		return "null"
	case tvalue.Bool:
		if val {
			return "true"
		}
		return "false"
	case tvalue.Number:
		return formatNumber(val)
	case tvalue.String:
		str := string(val)
		if quote.NeedsQuoting(str, s.delim()) {
			return quote.Quote(str)
		}
		return str
	default:
		panic(fmt.Sprintf("toon: %T is not a primitive value", v))
	}
}

// formatNumber renders n per §4.5: -0 becomes "0"; integral values
// render without a decimal point; non-integral values use Go's
// shortest round-trip representation (which may use exponential
// notation for extreme magnitudes).
func formatNumber(n tvalue.Number) string {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		panic("toon: Number must be finite")
	}
	if f == 0 {
		return "0"
	}
	if f == math.Trunc(f) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
