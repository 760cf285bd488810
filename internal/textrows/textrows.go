// Package textrows turns free text and CSV input into the row-record
// shape the inference engine consumes.
package textrows

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"

	"tabimport/internal/infer"
)

// minColumns is the table-likeness bar: lines with fewer parts are
// treated as prose and dropped.
const minColumns = 3

var multiSpace = regexp.MustCompile(`\s{2,}`)

// SplitColumns splits one line into column-like tokens: on tabs when the
// line contains any, otherwise on runs of two or more whitespace
// characters. OCR output rarely preserves tabs, so wide gaps count as
// separators while single spaces do not.
func SplitColumns(line string) []string {
	line = strings.TrimSpace(line)
	var parts []string
	if strings.Contains(line, "\t") {
		parts = strings.Split(line, "\t")
	} else {
		parts = multiSpace.Split(line, -1)
	}
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// FromText extracts table-like lines from free text as positional
// row-records keyed col1..colN. Lines that do not split into at least
// minColumns parts are skipped.
func FromText(text string) []infer.Row {
	var rows []infer.Row
	for _, line := range strings.Split(text, "\n") {
		parts := SplitColumns(line)
		if len(parts) < minColumns {
			continue
		}
		r := make(infer.Row, len(parts))
		for i, p := range parts {
			r[fmt.Sprintf("col%d", i+1)] = infer.StringCell(p)
		}
		rows = append(rows, r)
	}
	return rows
}

// FromCSV reads a header record then one row-record per data record.
// Records shorter than the header yield ragged rows, which the inference
// engine tolerates; an empty input yields no rows and no error.
func FromCSV(r io.Reader) ([]infer.Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	var rows []infer.Row
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv record: %w", err)
		}
		row := make(infer.Row, len(header))
		for i, name := range header {
			if i < len(rec) {
				row[strings.TrimSpace(name)] = infer.StringCell(rec[i])
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
