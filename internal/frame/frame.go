// Package frame implements the in-memory table the load pipeline works on:
// CSV parsing with BOM and single-column repair, schema validation, and
// explicit type coercion prior to the staging load.
package frame

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/vvka-141/claimload/pkg/claimload"
)

// utf8BOM is stripped from the first header cell if present.
const utf8BOM = "\uFEFF"

// nullTokens are the cell values treated as SQL NULL during parsing,
// matching the conventional CSV missing-value spellings.
var nullTokens = map[string]struct{}{
	"":     {},
	"NA":   {},
	"N/A":  {},
	"#N/A": {},
	"NaN":  {},
	"nan":  {},
	"null": {},
	"NULL": {},
	"None": {},
}

// Frame is a small in-memory table. Columns holds trimmed header names;
// Rows holds one []any per record where every cell is either a string or nil
// after parsing, and a typed value (string, float64, int64, time.Time) or nil
// after Coerce.
type Frame struct {
	Columns []string
	Rows    [][]any
}

// FromCSV parses raw CSV bytes into a Frame. The first record is the header;
// header cells are whitespace-trimmed and the first cell loses its UTF-8 BOM.
// Data cells matching a null token become nil. Malformed CSV returns an error
// wrapping claimload.ErrParse.
func FromCSV(data []byte) (*Frame, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty file: %w", claimload.ErrParse)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w (%w)", err, claimload.ErrParse)
	}

	header[0] = strings.TrimPrefix(header[0], utf8BOM)
	columns := make([]string, len(header))
	for i, c := range header {
		columns[i] = strings.TrimSpace(c)
	}

	f := &Frame{Columns: columns}
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w (%w)", err, claimload.ErrParse)
		}

		row := make([]any, len(columns))
		for i := range columns {
			if i >= len(record) {
				continue
			}
			if _, isNull := nullTokens[strings.TrimSpace(record[i])]; isNull {
				continue
			}
			row[i] = record[i]
		}
		f.Rows = append(f.Rows, row)
	}

	return f, nil
}

// RowCount returns the number of data rows.
func (f *Frame) RowCount() int {
	return len(f.Rows)
}

// RepairSingleColumn fixes a frame whose entire content was parsed into one
// column. This happens with Excel exports where the real delimiter survives
// inside a single header cell. The delimiter is detected from the header,
// preferring ';' then '|' then ','. Semicolon and pipe win over comma even
// when several delimiters appear: European exports use ';' as the field
// separator while commas live inside values, so comma is only the fallback.
// Frames with more than one column are returned unchanged.
func (f *Frame) RepairSingleColumn() *Frame {
	if len(f.Columns) != 1 || !strings.ContainsAny(f.Columns[0], ",;|") {
		return f
	}

	sep := ","
	if strings.Contains(f.Columns[0], ";") {
		sep = ";"
	} else if strings.Contains(f.Columns[0], "|") {
		sep = "|"
	}

	headerParts := strings.Split(f.Columns[0], sep)
	columns := make([]string, len(headerParts))
	for i, p := range headerParts {
		columns[i] = strings.TrimSpace(p)
	}

	repaired := &Frame{Columns: columns}
	for _, row := range f.Rows {
		out := make([]any, len(columns))
		cell, ok := row[0].(string)
		if ok {
			for i, part := range strings.Split(cell, sep) {
				if i >= len(columns) {
					break
				}
				if _, isNull := nullTokens[strings.TrimSpace(part)]; isNull {
					continue
				}
				out[i] = part
			}
		}
		repaired.Rows = append(repaired.Rows, out)
	}
	return repaired
}

// Validate checks that every expected column is present. On failure it
// returns an error wrapping claimload.ErrSchemaMismatch that names both the
// missing and the found columns.
func (f *Frame) Validate(expected []string) error {
	have := make(map[string]struct{}, len(f.Columns))
	for _, c := range f.Columns {
		have[c] = struct{}{}
	}

	var missing []string
	for _, c := range expected {
		if _, ok := have[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing expected columns %v, found %v: %w",
			missing, f.Columns, claimload.ErrSchemaMismatch)
	}
	return nil
}

// Select returns a new frame containing only the named columns, in the given
// order. Selecting a column the frame does not have is a schema mismatch.
func (f *Frame) Select(columns []string) (*Frame, error) {
	if err := f.Validate(columns); err != nil {
		return nil, err
	}

	index := make(map[string]int, len(f.Columns))
	for i, c := range f.Columns {
		index[c] = i
	}

	out := &Frame{Columns: append([]string(nil), columns...)}
	for _, row := range f.Rows {
		selected := make([]any, len(columns))
		for i, c := range columns {
			selected[i] = row[index[c]]
		}
		out.Rows = append(out.Rows, selected)
	}
	return out, nil
}

// Rename selects the named columns and renames them position-aligned to
// names, for feeds whose headers differ from the staging column names.
func (f *Frame) Rename(columns, names []string) (*Frame, error) {
	if len(names) != len(columns) {
		return nil, fmt.Errorf("rename needs %d names, got %d: %w",
			len(columns), len(names), claimload.ErrSchemaMismatch)
	}

	out, err := f.Select(columns)
	if err != nil {
		return nil, err
	}
	out.Columns = append([]string(nil), names...)
	return out, nil
}
