package dataset

import (
	"fmt"
	"slices"
	"strings"
)

// The datasets are not RFC-4180 CSV: fields are semicolon separated,
// records are CRLF separated, and quote characters are decoration to
// be stripped wholesale rather than field delimiters. Hence the raw
// string surgery instead of encoding/csv.

// RawTable is the untyped result of tokenizing a delimited blob.
type RawTable struct {
	Header []string
	Rows   [][]string
}

// ParseSemicolonCSV tokenizes a semicolon-delimited blob. All double
// quotes are removed, empty lines dropped, and the first surviving
// line is consumed as the header with each cell whitespace-trimmed.
func ParseSemicolonCSV(data string) (*RawTable, error) {
	data = strings.ReplaceAll(data, `"`, "")

	var records [][]string
	for line := range strings.SplitSeq(data, "\r\n") {
		// Tolerate blobs that were rewritten with bare LF endings.
		for sub := range strings.SplitSeq(line, "\n") {
			if strings.TrimSpace(sub) == "" {
				continue
			}
			records = append(records, strings.Split(sub, ";"))
		}
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("no records in input")
	}

	header := records[0]
	for i, name := range header {
		header[i] = strings.TrimSpace(name)
	}

	rows := records[1:]
	for i, row := range rows {
		if len(row) != len(header) {
			return nil, fmt.Errorf("row %d has %d fields, header has %d", i+1, len(row), len(header))
		}
	}

	return &RawTable{Header: header, Rows: rows}, nil
}

// Append concatenates another table's rows onto t. The headers must
// match exactly, cell for cell.
func (t *RawTable) Append(other *RawTable) error {
	if !slices.Equal(t.Header, other.Header) {
		return fmt.Errorf("header mismatch: %v vs %v", t.Header, other.Header)
	}
	t.Rows = append(t.Rows, other.Rows...)
	return nil
}

// NormalizeName trims surrounding whitespace and replaces internal
// spaces with underscores, turning "fixed acidity" into
// "fixed_acidity".
func NormalizeName(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
}

// FrameFromRaw builds an all-string frame from a raw table, with
// normalized column names. Name collisions after normalization fail
// the build.
func FrameFromRaw(raw *RawTable) (*Frame, error) {
	cols := make([]Column, len(raw.Header))
	for j, name := range raw.Header {
		values := make([]string, len(raw.Rows))
		for i, row := range raw.Rows {
			values[i] = row[j]
		}
		cols[j] = StringColumn(NormalizeName(name), values)
	}
	return NewFrame(cols)
}
