package local

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/simdem/archive-plugins/pkg/pipeline/record"
)

// ReadRecordsCSV reads a CSV file into records keyed by header name. The header
// must include a "content" column; its name is normalised to lower case.
func ReadRecordsCSV(r io.Reader) ([]record.Record, []string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	contentIdx := -1
	for i, col := range header {
		header[i] = strings.TrimSpace(col)
		if strings.EqualFold(header[i], record.ContentField) {
			header[i] = record.ContentField
			contentIdx = i
		}
	}
	if contentIdx < 0 {
		return nil, nil, fmt.Errorf("missing required column %q", record.ContentField)
	}

	var recs []record.Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read row: %w", err)
		}
		if contentIdx >= len(row) {
			return nil, nil, fmt.Errorf("row has %d columns, want at least %d", len(row), contentIdx+1)
		}
		rec := make(record.Record, len(header))
		for i, col := range header {
			if i < len(row) {
				rec[col] = row[i]
			}
		}
		recs = append(recs, rec)
	}
	return recs, header, nil
}

// WriteRecordsCSV writes recs using header as the column order. Missing fields
// are written as empty cells.
func WriteRecordsCSV(w io.Writer, header []string, recs []record.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	row := make([]string, len(header))
	for _, rec := range recs {
		for i, col := range header {
			row[i] = cell(rec[col])
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func cell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}
