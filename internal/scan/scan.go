// Package scan implements the line scanner and cursor: split input
// into lines, compute each line's depth from its indentation, and
// provide a forward iterator with one-line lookahead.
package scan

import (
	"strings"

	"github.com/tooncodec/toon-go/internal/toonerr"
)

// Line is one non-structural line of input: its 1-indexed line
// number, its depth (indent / indentSize), and its content with
// leading spaces stripped. Blank is true for lines that are entirely
// whitespace (or genuinely empty).
type Line struct {
	Number  int
	Indent  int
	Depth   int
	Content string
	Blank   bool
}

// Cursor is a forward iterator over a document's lines.
type Cursor struct {
	lines []Line
	pos   int
}

// New splits input into lines and computes each one's depth. Tabs are
// never valid indentation characters (they're a delimiter); in strict
// mode a leading tab, or an indent that isn't a multiple of
// indentSize, is an IndentationError. In non-strict mode indents use
// floor division and fractional indents are accepted silently, and a
// leading tab is counted as one column of indentation.
func New(input string, indentSize int, strict bool) (*Cursor, error) {
	raw := splitLines(input)
	lines := make([]Line, 0, len(raw))
	for i, text := range raw {
		number := i + 1
		if text == "" {
			lines = append(lines, Line{Number: number, Blank: true})
			continue
		}
		indent, content, err := computeIndent(text, indentSize, strict)
		if err != nil {
			return nil, toonerr.WithLine(err, number)
		}
		lines = append(lines, Line{
			Number:  number,
			Indent:  indent,
			Depth:   indent / indentSize,
			Content: content,
			Blank:   strings.TrimSpace(content) == "",
		})
	}
	return &Cursor{lines: lines}, nil
}

func splitLines(input string) []string {
	input = strings.ReplaceAll(input, "\r\n", "\n")
	lines := strings.Split(input, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func computeIndent(line string, indentSize int, strict bool) (int, string, error) {
	indent := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case ' ':
			indent++
		case '\t':
			if strict {
				return 0, "", toonerr.IndentationErr("tabs are not valid indentation characters", 0)
			}
			indent++
		default:
			content := line[i:]
			if strict && indentSize > 0 && indent%indentSize != 0 {
				return 0, "", toonerr.IndentationErr("indentation is not a multiple of the configured indent size", 0)
			}
			return indent, content, nil
		}
	}
	return 0, "", nil
}

// Len reports the total number of scanned lines (including blanks).
func (c *Cursor) Len() int { return len(c.lines) }

// Pos reports the cursor's current index into the line slice.
func (c *Cursor) Pos() int { return c.pos }

// Done reports whether the cursor has consumed every line.
func (c *Cursor) Done() bool { return c.pos >= len(c.lines) }

// Peek returns the current line without advancing.
func (c *Cursor) Peek() (Line, bool) {
	if c.Done() {
		return Line{}, false
	}
	return c.lines[c.pos], true
}

// PeekAhead returns the line k positions ahead of the current one
// (k=0 is Peek) without advancing.
func (c *Cursor) PeekAhead(k int) (Line, bool) {
	idx := c.pos + k
	if idx < 0 || idx >= len(c.lines) {
		return Line{}, false
	}
	return c.lines[idx], true
}

// Advance moves the cursor forward by one line.
func (c *Cursor) Advance() { c.pos++ }

// SkipBlank advances past any run of blank lines at the cursor.
func (c *Cursor) SkipBlank() {
	for !c.Done() && c.lines[c.pos].Blank {
		c.pos++
	}
}

// CountRemainingNonBlank counts non-blank lines from the cursor to the
// end of input, used for root-form detection.
func (c *Cursor) CountRemainingNonBlank() int {
	n := 0
	for _, l := range c.lines[c.pos:] {
		if !l.Blank {
			n++
		}
	}
	return n
}

// LastNumber returns the line number of the line just before the
// cursor's current position, for attaching errors once a body's
// lines have all been consumed.
func (c *Cursor) LastNumber() int {
	if c.pos == 0 {
		return 0
	}
	if c.pos-1 < len(c.lines) {
		return c.lines[c.pos-1].Number
	}
	return c.lines[len(c.lines)-1].Number
}
