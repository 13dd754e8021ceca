package token_test

import (
	"testing"

	"github.com/tooncodec/toon-go/internal/header"
	"github.com/tooncodec/toon-go/internal/token"
	"github.com/tooncodec/toon-go/internal/tvalue"
)

func TestParsePrimitiveDecodeAsymmetry(t *testing.T) {
	cases := []struct {
		raw  string
		want tvalue.Value
	}{
		{"true", tvalue.Bool(true)},
		{"false", tvalue.Bool(false)},
		{"null", tvalue.Null{}},
		{"42", tvalue.String("42")},
		{"-3.14", tvalue.String("-3.14")},
		{"plain", tvalue.String("plain")},
		{`"quoted"`, tvalue.String("quoted")},
		{`"42"`, tvalue.String("42")},
	}
	for _, c := range cases {
		got, err := token.ParsePrimitive(c.raw)
		if err != nil {
			t.Fatalf("ParsePrimitive(%q): %v", c.raw, err)
		}
		if got != c.want {
			t.Errorf("ParsePrimitive(%q) = %#v, want %#v", c.raw, got, c.want)
		}
	}
}

func TestParsePrimitiveEmptyIsError(t *testing.T) {
	if _, err := token.ParsePrimitive("   "); err == nil {
		t.Fatalf("expected error for an empty primitive token")
	}
}

func TestSplitDelimitedRespectsQuotes(t *testing.T) {
	got, err := token.SplitDelimited(`a,"b,c",d`, ',')
	if err != nil {
		t.Fatalf("SplitDelimited: %v", err)
	}
	want := []string{"a", `"b,c"`, "d"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSplitDelimitedUnterminatedQuote(t *testing.T) {
	if _, err := token.SplitDelimited(`a,"unterminated`, ','); err == nil {
		t.Fatalf("expected error for unterminated quote")
	}
}

func TestParseKey(t *testing.T) {
	key, rest, err := token.ParseKey("name: Alice")
	if err != nil {
		t.Fatalf("ParseKey: %v", err)
	}
	if key != "name" || rest != "Alice" {
		t.Errorf("ParseKey = (%q, %q)", key, rest)
	}
}

func TestParseKeyMissingColon(t *testing.T) {
	if _, _, err := token.ParseKey("no colon here"); err == nil {
		t.Fatalf("expected error for missing colon")
	}
}

func TestParseHeaderKeyedTabular(t *testing.T) {
	h, ok, err := token.ParseHeader("users[2]{id,name}:")
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if !ok {
		t.Fatalf("expected a header match")
	}
	if h.Key != "users" || h.Length != 2 || len(h.Fields) != 2 {
		t.Fatalf("unexpected header: %+v", h)
	}
	if h.Fields[0] != "id" || h.Fields[1] != "name" {
		t.Errorf("unexpected fields: %v", h.Fields)
	}
}

func TestParseHeaderUnkeyedInline(t *testing.T) {
	h, ok, err := token.ParseHeader("[3]: 1,2,3")
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if !ok || h.HasKey {
		t.Fatalf("unexpected header: %+v, ok=%v", h, ok)
	}
	if h.InlineValues != "1,2,3" {
		t.Errorf("InlineValues = %q", h.InlineValues)
	}
}

func TestParseHeaderNotAHeader(t *testing.T) {
	_, ok, err := token.ParseHeader("name: Alice")
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if ok {
		t.Fatalf("plain key:value should not parse as a header")
	}
}

func TestParseHeaderWithDelimiterAndMarker(t *testing.T) {
	h, ok, err := token.ParseHeader("users[#2|]{id|name}:")
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if !ok {
		t.Fatalf("expected header match")
	}
	if h.Delimiter != header.Pipe || h.Marker != header.HashMarker {
		t.Errorf("unexpected header: %+v", h)
	}
}

func TestParseHeaderDelimiterMismatch(t *testing.T) {
	_, _, err := token.ParseHeader("vals[3\t|]: a\tb")
	if err == nil {
		t.Fatalf("expected DelimiterMismatch error")
	}
}
