// Package toon implements the Token-Oriented Object Notation (TOON)
// encoder and decoder described in SPEC_FULL.md. TOON is a compact,
// indentation-sensitive serialization format targeting LLM workflows
// where predictable structure and low token counts matter. The
// package exposes a small public surface while keeping the shape
// detector, quoting rules, line scanner and grammar driver in
// internal packages.
package toon

import (
	"github.com/tooncodec/toon-go/internal/decode"
	"github.com/tooncodec/toon-go/internal/encode"
	"github.com/tooncodec/toon-go/internal/header"
	"github.com/tooncodec/toon-go/internal/tvalue"
)

// Value is the tagged union the codec encodes from and decodes to.
type Value = tvalue.Value

// Concrete Value variants.
type (
	Null   = tvalue.Null
	Bool   = tvalue.Bool
	Number = tvalue.Number
	String = tvalue.String
	Array  = tvalue.Array
	Object = tvalue.Object
	Field  = tvalue.Field
)

// NewObject builds an ordered Object from the given fields.
func NewObject(fields ...Field) Object {
	return tvalue.New(fields...)
}

// Delimiter identifies the character that separates values within an
// array's scope.
type Delimiter = header.Delimiter

const (
	DelimiterComma = header.Comma
	DelimiterTab   = header.Tab
	DelimiterPipe  = header.Pipe
)

// LengthMarker controls whether array headers carry the optional '#'
// marker before their declared length.
type LengthMarker = header.LengthMarker

const (
	LengthMarkerNone = header.NoMarker
	LengthMarkerHash = header.HashMarker
)

// EncodeOptions configures Encode. The zero value is not meaningful;
// construct one from DefaultEncodeOptions and override fields as
// needed.
type EncodeOptions struct {
	IndentSize   int
	Delimiter    Delimiter
	LengthMarker LengthMarker
}

// DefaultEncodeOptions returns indent_size=2, delimiter=Comma,
// length_marker=None.
func DefaultEncodeOptions() EncodeOptions {
	d := encode.Defaults()
	return EncodeOptions{IndentSize: d.IndentSize, Delimiter: d.Delimiter, LengthMarker: d.LengthMarker}
}

// DecodeOptions configures Decode.
type DecodeOptions struct {
	IndentSize int
	Strict     bool
}

// DefaultDecodeOptions returns indent_size=2, strict=true.
func DefaultDecodeOptions() DecodeOptions {
	d := decode.Defaults()
	return DecodeOptions{IndentSize: d.IndentSize, Strict: d.Strict}
}

// Encode renders v as a TOON document using DefaultEncodeOptions.
func Encode(v Value) (string, error) {
	return EncodeWithOptions(v, DefaultEncodeOptions())
}

// EncodeWithOptions renders v as a TOON document under opts.
func EncodeWithOptions(v Value, opts EncodeOptions) (string, error) {
	return encode.Encode(v, encode.Options{
		IndentSize:   opts.IndentSize,
		Delimiter:    opts.Delimiter,
		LengthMarker: opts.LengthMarker,
	})
}

// Decode parses a TOON document using DefaultDecodeOptions.
func Decode(input string) (Value, error) {
	return DecodeWithOptions(input, DefaultDecodeOptions())
}

// DecodeWithOptions parses a TOON document under opts.
func DecodeWithOptions(input string, opts DecodeOptions) (Value, error) {
	return decode.Decode(input, decode.Options{
		IndentSize: opts.IndentSize,
		Strict:     opts.Strict,
	})
}
