// Package decode implements the decoder driver: root-form detection
// and the recursive-descent object/array/list grammar, built on top of
// the line scanner and token parser.
package decode

import (
	"strings"

	"github.com/tooncodec/toon-go/internal/scan"
	"github.com/tooncodec/toon-go/internal/strictcheck"
	"github.com/tooncodec/toon-go/internal/token"
	"github.com/tooncodec/toon-go/internal/toonerr"
	"github.com/tooncodec/toon-go/internal/tvalue"
)

// Options configures the decoder.
type Options struct {
	IndentSize int
	Strict     bool
}

// Defaults returns indent_size=2, strict=true.
func Defaults() Options {
	return Options{IndentSize: 2, Strict: true}
}

// Decode parses a TOON document into a Value tree.
func Decode(input string, opts Options) (tvalue.Value, error) {
	if opts.IndentSize <= 0 {
		opts.IndentSize = 2
	}
	cur, err := scan.New(input, opts.IndentSize, opts.Strict)
	if err != nil {
		return nil, err
	}
	cur.SkipBlank()
	if cur.Done() {
		return nil, toonerr.EmptyInput()
	}
	d := &state{cur: cur, strict: opts.Strict}
	return d.root()
}

type state struct {
	cur    *scan.Cursor
	strict bool
}

// root decides whether the document is a bare array, a bare primitive,
// or an object, per §4.2's root-form detection.
func (d *state) root() (tvalue.Value, error) {
	line, _ := d.cur.Peek()
	h, isHeader, err := token.ParseHeader(line.Content)
	if err != nil {
		return nil, toonerr.WithLine(err, line.Number)
	}
	if isHeader && !h.HasKey && line.Depth == 0 {
		d.cur.Advance()
		return d.array(h, 0)
	}
	if d.cur.CountRemainingNonBlank() == 1 && !isHeader && !hasUnquotedColon(line.Content) {
		tok := strings.TrimSpace(line.Content)
		v, err := token.ParsePrimitive(tok)
		if err != nil {
			return nil, toonerr.WithLine(err, line.Number)
		}
		d.cur.Advance()
		return v, nil
	}
	return d.object(0)
}

func hasUnquotedColon(content string) bool {
	return token.IndexOutsideQuotes(content, ':') > 0
}

// object parses key/value lines at exactly depth until a shallower
// line, a blank run at the document's end, or input exhaustion.
func (d *state) object(depth int) (tvalue.Object, error) {
	obj := tvalue.Object{}
	for !d.cur.Done() {
		line, _ := d.cur.Peek()
		if line.Blank {
			d.cur.Advance()
			continue
		}
		if line.Depth < depth {
			break
		}
		if line.Depth > depth {
			return obj, toonerr.WithLine(toonerr.StructureErr("unexpected indentation"), line.Number)
		}

		h, isHeader, err := token.ParseHeader(line.Content)
		if err != nil {
			return obj, toonerr.WithLine(err, line.Number)
		}
		if isHeader {
			if !h.HasKey {
				return obj, toonerr.WithLine(toonerr.StructureErr("arrays within objects must have a key"), line.Number)
			}
			d.cur.Advance()
			val, err := d.array(h, depth)
			if err != nil {
				return obj, err
			}
			obj.Set(h.Key, val)
			continue
		}

		key, rest, err := token.ParseKey(line.Content)
		if err != nil {
			return obj, toonerr.WithLine(err, line.Number)
		}
		d.cur.Advance()
		if rest == "" {
			nested, err := d.object(depth + 1)
			if err != nil {
				return obj, err
			}
			obj.Set(key, nested)
			continue
		}
		val, err := token.ParsePrimitive(rest)
		if err != nil {
			return obj, toonerr.WithLine(err, line.Number)
		}
		obj.Set(key, val)
	}
	return obj, nil
}

// array parses the body belonging to header h, whose own line sits at
// depth. Inline values live on that same line; tabular rows and list
// items live at depth+1.
func (d *state) array(h token.Header, depth int) (tvalue.Array, error) {
	switch {
	case h.InlineValues != "":
		return d.inlineArray(h, depth)
	case h.HasFields:
		return d.tabularArray(h, depth)
	default:
		return d.listArray(h, depth)
	}
}

func (d *state) inlineArray(h token.Header, depth int) (tvalue.Array, error) {
	raw, err := token.SplitDelimited(h.InlineValues, h.Delimiter.Rune())
	if err != nil {
		return nil, toonerr.WithLine(err, d.cur.LastNumber())
	}
	values := make(tvalue.Array, 0, len(raw))
	for _, t := range raw {
		v, err := token.ParsePrimitive(t)
		if err != nil {
			return nil, toonerr.WithLine(err, d.cur.LastNumber())
		}
		values = append(values, v)
	}
	if err := strictcheck.Count(d.strict, h.Length, len(values), "inline array"); err != nil {
		return nil, toonerr.WithLine(err, d.cur.LastNumber())
	}
	return values, nil
}

func (d *state) tabularArray(h token.Header, depth int) (tvalue.Array, error) {
	rows := make(tvalue.Array, 0, h.Length)
	for !d.cur.Done() {
		line, _ := d.cur.Peek()
		if line.Blank {
			d.cur.Advance()
			continue
		}
		if line.Depth <= depth {
			break
		}
		if line.Depth != depth+1 {
			return nil, toonerr.WithLine(toonerr.StructureErr("invalid indentation for tabular row"), line.Number)
		}
		trimmed := strings.TrimSpace(line.Content)
		if token.IndexOutsideQuotes(trimmed, ':') != -1 {
			break
		}
		d.cur.Advance()
		raw, err := token.SplitDelimited(trimmed, h.Delimiter.Rune())
		if err != nil {
			return nil, toonerr.WithLine(err, line.Number)
		}
		if err := strictcheck.RowWidth(d.strict, len(h.Fields), len(raw), line.Number); err != nil {
			return nil, err
		}
		row := tvalue.Object{}
		for i, field := range h.Fields {
			if i >= len(raw) {
				break
			}
			val, err := token.ParsePrimitive(raw[i])
			if err != nil {
				return nil, toonerr.WithLine(err, line.Number)
			}
			row.Set(field, val)
		}
		rows = append(rows, row)
	}
	if err := strictcheck.Count(d.strict, h.Length, len(rows), "tabular array"); err != nil {
		return nil, toonerr.WithLine(err, d.cur.LastNumber())
	}
	return rows, nil
}

func (d *state) listArray(h token.Header, depth int) (tvalue.Array, error) {
	values := make(tvalue.Array, 0, h.Length)
	for !d.cur.Done() {
		line, _ := d.cur.Peek()
		if line.Blank {
			d.cur.Advance()
			continue
		}
		if line.Depth <= depth {
			break
		}
		if line.Depth != depth+1 {
			return nil, toonerr.WithLine(toonerr.StructureErr("invalid indentation for list item"), line.Number)
		}
		if !strings.HasPrefix(line.Content, "-") {
			break
		}
		d.cur.Advance()
		v, err := d.listItem(line, depth+1)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	if err := strictcheck.Count(d.strict, h.Length, len(values), "list array"); err != nil {
		return nil, toonerr.WithLine(err, d.cur.LastNumber())
	}
	return values, nil
}

// listItem parses one expanded-list element, whose hyphen line is
// line, at itemDepth (line.Depth).
func (d *state) listItem(line scan.Line, itemDepth int) (tvalue.Value, error) {
	content := strings.TrimSpace(line.Content[1:])

	if content == "" {
		return d.bareArrayListItem(line, itemDepth)
	}
	if content == "{}" {
		return tvalue.Object{}, nil
	}
	if strings.HasPrefix(content, "[") {
		h, isHeader, err := token.ParseHeader(content)
		if err != nil {
			return nil, toonerr.WithLine(err, line.Number)
		}
		if !isHeader {
			return nil, toonerr.WithLine(toonerr.InvalidHeader("invalid array header in list item", line.Number), line.Number)
		}
		return d.array(h, itemDepth)
	}

	if h, isHeader, err := token.ParseHeader(content); err != nil {
		return nil, toonerr.WithLine(err, line.Number)
	} else if isHeader && h.HasKey {
		arr, err := d.array(h, itemDepth)
		if err != nil {
			return nil, err
		}
		obj := tvalue.Object{}
		obj.Set(h.Key, arr)
		return d.mergeSiblings(obj, itemDepth)
	}

	if hasUnquotedColon(content) {
		key, rest, err := token.ParseKey(content)
		if err != nil {
			return nil, toonerr.WithLine(err, line.Number)
		}
		obj := tvalue.Object{}
		if rest == "" {
			nested, err := d.object(itemDepth + 2)
			if err != nil {
				return nil, err
			}
			obj.Set(key, nested)
		} else {
			val, err := token.ParsePrimitive(rest)
			if err != nil {
				return nil, toonerr.WithLine(err, line.Number)
			}
			obj.Set(key, val)
		}
		return d.mergeSiblings(obj, itemDepth)
	}

	return token.ParsePrimitive(content)
}

// bareArrayListItem handles a list item that is a lone "-": its
// value is an unkeyed array header/body two indent levels below the
// hyphen line.
func (d *state) bareArrayListItem(line scan.Line, itemDepth int) (tvalue.Value, error) {
	nxt, ok := d.cur.Peek()
	if !ok || nxt.Blank || nxt.Depth != itemDepth+2 {
		return nil, toonerr.WithLine(toonerr.StructureErr("expected nested array after bare list item"), line.Number)
	}
	h, isHeader, err := token.ParseHeader(nxt.Content)
	if err != nil {
		return nil, toonerr.WithLine(err, nxt.Number)
	}
	if !isHeader || h.HasKey {
		return nil, toonerr.WithLine(toonerr.StructureErr("expected an unkeyed array header"), nxt.Number)
	}
	d.cur.Advance()
	return d.array(h, itemDepth+2)
}

// mergeSiblings folds any fields found at itemDepth+1 into obj, used
// after an object list item's first field has already been consumed
// from the hyphen line itself.
func (d *state) mergeSiblings(obj tvalue.Object, itemDepth int) (tvalue.Value, error) {
	siblings, err := d.object(itemDepth + 1)
	if err != nil {
		return nil, err
	}
	for _, f := range siblings.Fields {
		obj.Set(f.Key, f.Value)
	}
	return obj, nil
}
