// Package sheet turns an uploaded tabular export into the loosely-typed
// rows the transformer consumes. Parsing stays behind this one function
// so the pipeline never sees spreadsheet mechanics.
package sheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// ReadRows reads a CSV export with a header row and returns one
// header-keyed map per data row. Headers are trimmed but otherwise kept
// verbatim; the transformer's alias registry absorbs naming drift.
func ReadRows(r io.Reader) ([]map[string]any, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []map[string]any
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(rows)+2, err)
		}
		row := make(map[string]any, len(header))
		for i, h := range header {
			if h == "" || i >= len(rec) {
				continue
			}
			row[h] = rec[i]
		}
		rows = append(rows, row)
	}
	return rows, nil
}
