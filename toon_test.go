package toon_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	toon "github.com/tooncodec/toon-go"
)

func TestEncodeFlatObject(t *testing.T) {
	v := toon.NewObject(
		toon.Field{Key: "name", Value: toon.String("Alice")},
		toon.Field{Key: "age", Value: toon.Number(30)},
	)
	doc, err := toon.Encode(v)
	require.NoError(t, err)
	require.Equal(t, "name: Alice\nage: 30", doc)
}

func TestEncodeTabularArray(t *testing.T) {
	v := toon.Array{
		toon.NewObject(toon.Field{Key: "name", Value: toon.String("Alice")}, toon.Field{Key: "age", Value: toon.Number(30)}),
		toon.NewObject(toon.Field{Key: "name", Value: toon.String("Bob")}, toon.Field{Key: "age", Value: toon.Number(25)}),
	}
	doc, err := toon.Encode(v)
	require.NoError(t, err)
	require.Equal(t, "[2]{name,age}:\n  Alice,30\n  Bob,25", doc)
}

func TestEncodeWithTabDelimiter(t *testing.T) {
	v := toon.Array{toon.Number(1), toon.Number(2), toon.Number(3)}
	opts := toon.DefaultEncodeOptions()
	opts.Delimiter = toon.DelimiterTab
	doc, err := toon.EncodeWithOptions(v, opts)
	require.NoError(t, err)
	require.Equal(t, "[3\t]: 1\t2\t3", doc)

	decoded, err := toon.Decode(doc)
	require.NoError(t, err)
	require.Equal(t, toon.Array{toon.String("1"), toon.String("2"), toon.String("3")}, decoded)
}

func TestDecodeTabularRoundTrip(t *testing.T) {
	doc := strings.Join([]string{
		"users[2]{id,name,active}:",
		"  1,Ada,true",
		"  2,Bob,false",
		"count: 2",
	}, "\n")
	v, err := toon.Decode(doc)
	require.NoError(t, err)

	root, ok := v.(toon.Object)
	require.True(t, ok)
	count, _ := root.Get("count")
	require.Equal(t, toon.String("2"), count, "decode asymmetry: unquoted numerics decode to String")

	users, _ := root.Get("users")
	arr := users.(toon.Array)
	first := arr[0].(toon.Object)
	active, _ := first.Get("active")
	require.Equal(t, toon.Bool(true), active)
}

func TestDecodeStrictCountMismatch(t *testing.T) {
	_, err := toon.Decode("[5]: 1,2,3")
	require.Error(t, err)
}

func TestDecodeNonStrictToleratesCountMismatch(t *testing.T) {
	opts := toon.DefaultDecodeOptions()
	opts.Strict = false
	v, err := toon.DecodeWithOptions("[5]: 1,2,3", opts)
	require.NoError(t, err)
	require.Len(t, v.(toon.Array), 3)
}

func TestDecodeEmptyInputIsError(t *testing.T) {
	_, err := toon.Decode("")
	require.Error(t, err)
}

func TestEncodeStringRequiringQuotes(t *testing.T) {
	doc, err := toon.Encode(toon.String("10001"))
	require.NoError(t, err)
	require.Equal(t, `"10001"`, doc)

	decoded, err := toon.Decode(doc)
	require.NoError(t, err)
	require.Equal(t, toon.String("10001"), decoded)
}

func TestEncodeDecodeEmptyObjectAndArray(t *testing.T) {
	doc, err := toon.Encode(toon.Object{})
	require.NoError(t, err)
	require.Equal(t, "", doc)

	doc, err = toon.Encode(toon.Array{})
	require.NoError(t, err)
	require.Equal(t, "[0]:", doc)

	v, err := toon.Decode(doc)
	require.NoError(t, err)
	require.Equal(t, toon.Array{}, v)
}

// Round trip: encode v, decode the result, and expect the normalized
// form (every Number replaced by String(render(n))) to come back,
// per the decode-asymmetry round-trip invariant.
func TestRoundTripNormalizesNumbers(t *testing.T) {
	v := toon.NewObject(
		toon.Field{Key: "count", Value: toon.Number(2)},
		toon.Field{Key: "ratio", Value: toon.Number(0.5)},
	)
	doc, err := toon.Encode(v)
	require.NoError(t, err)

	decoded, err := toon.Decode(doc)
	require.NoError(t, err)

	want := toon.NewObject(
		toon.Field{Key: "count", Value: toon.String("2")},
		toon.Field{Key: "ratio", Value: toon.String("0.5")},
	)
	require.Equal(t, want, decoded)
}
