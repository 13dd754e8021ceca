// Package strictcheck implements the strict validator: the count and
// row-width checks that only apply in strict decode mode. Every check
// is a no-op unless strict is true. The strict indentation check is
// made by the line scanner (internal/scan), not here.
package strictcheck

import "github.com/tooncodec/toon-go/internal/toonerr"

// Count checks a declared-vs-observed count (inline array length,
// tabular row count, or list item count). context names what was
// being counted, for the resulting CountMismatch error.
func Count(strict bool, expected, actual int, context string) error {
	if !strict {
		return nil
	}
	if expected != actual {
		return toonerr.CountMismatch(expected, actual, context)
	}
	return nil
}

// RowWidth checks that a tabular row produced exactly the declared
// number of fields.
func RowWidth(strict bool, expected, actual int, line int) error {
	if !strict {
		return nil
	}
	if expected != actual {
		return toonerr.WithLine(toonerr.ValidationErr("tabular row width mismatch"), line)
	}
	return nil
}
