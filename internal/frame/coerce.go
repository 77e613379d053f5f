package frame

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind is the target type of a coerced column.
type Kind int

const (
	// String trims surrounding whitespace and keeps the cell as text.
	String Kind = iota
	// Float parses the cell as a float64.
	Float
	// Int parses the cell as an int64, accepting integral float spellings
	// such as "3.0".
	Int
	// Date parses the cell as a naive timestamp.
	Date
)

// dateLayouts are tried in order when coercing a Date column.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"01/02/2006",
	"2006/01/02",
}

// Coerce returns a new frame with the mapped columns converted to their
// target kinds. Coercion is total: a cell that cannot be converted becomes
// nil rather than failing the load. Columns absent from the mapping, and
// mapped columns absent from the frame, pass through untouched.
func (f *Frame) Coerce(mapping map[string]Kind) *Frame {
	kinds := make([]Kind, len(f.Columns))
	mapped := make([]bool, len(f.Columns))
	for i, c := range f.Columns {
		if k, ok := mapping[c]; ok {
			kinds[i] = k
			mapped[i] = true
		}
	}

	out := &Frame{Columns: append([]string(nil), f.Columns...)}
	for _, row := range f.Rows {
		coerced := make([]any, len(row))
		for i, cell := range row {
			if !mapped[i] || cell == nil {
				coerced[i] = cell
				continue
			}
			s, ok := cell.(string)
			if !ok {
				coerced[i] = cell
				continue
			}
			coerced[i] = coerceCell(s, kinds[i])
		}
		out.Rows = append(out.Rows, coerced)
	}
	return out
}

// coerceCell converts a raw cell to the target kind, or nil when the value
// does not parse.
func coerceCell(s string, kind Kind) any {
	s = strings.TrimSpace(s)

	switch kind {
	case String:
		return s

	case Float:
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
		return v

	case Int:
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			return v
		}
		// Integral float spellings like "3.0" still count as ints. Values
		// outside int64 range would overflow the conversion, so they become
		// nil like any other unparseable cell. float64(MaxInt64) rounds up to
		// 2^63, hence >= on the upper bound.
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) ||
			v < math.MinInt64 || v >= math.MaxInt64 {
			return nil
		}
		return int64(v)

	case Date:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t
			}
		}
		return nil

	default:
		return s
	}
}
