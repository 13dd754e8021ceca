package scan_test

import (
	"strings"
	"testing"

	"github.com/tooncodec/toon-go/internal/scan"
)

func TestNewComputesDepth(t *testing.T) {
	input := strings.Join([]string{
		"root:",
		"  child: 1",
		"    grandchild: 2",
	}, "\n")
	cur, err := scan.New(input, 2, true)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	want := []int{0, 1, 2}
	for i, depth := range want {
		line, ok := cur.Peek()
		if !ok {
			t.Fatalf("line %d: expected a line", i)
		}
		if line.Depth != depth {
			t.Errorf("line %d depth = %d, want %d", i, line.Depth, depth)
		}
		cur.Advance()
	}
}

func TestNewStrictRejectsTabs(t *testing.T) {
	if _, err := scan.New("a:\n\tb: 1", 2, true); err == nil {
		t.Fatalf("expected error for tab indentation in strict mode")
	}
}

func TestNewStrictRejectsFractionalIndent(t *testing.T) {
	if _, err := scan.New("a:\n   b: 1", 2, true); err == nil {
		t.Fatalf("expected error for indentation not a multiple of indent size")
	}
}

func TestNewNonStrictToleratesFractionalIndent(t *testing.T) {
	cur, err := scan.New("a:\n   b: 1", 2, false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	cur.Advance()
	line, ok := cur.Peek()
	if !ok || line.Depth != 1 {
		t.Fatalf("line depth = %v, ok=%v, want 1", line.Depth, ok)
	}
}

func TestCursorPeekAheadAndBlank(t *testing.T) {
	cur, err := scan.New("a: 1\n\nb: 2", 2, true)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	second, ok := cur.PeekAhead(1)
	if !ok || !second.Blank {
		t.Fatalf("PeekAhead(1) should be the blank line")
	}
	cur.Advance()
	cur.SkipBlank()
	line, ok := cur.Peek()
	if !ok || line.Content != "b: 2" {
		t.Fatalf("SkipBlank left cursor at %+v", line)
	}
}

func TestCountRemainingNonBlank(t *testing.T) {
	cur, err := scan.New("a: 1\n\nb: 2\n", 2, true)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if n := cur.CountRemainingNonBlank(); n != 2 {
		t.Fatalf("CountRemainingNonBlank() = %d, want 2", n)
	}
}
