package local

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/simdem/archive-plugins/pkg/pipeline/record"
)

const maxLineBytes = 16 << 20

// ReadRecordsJSONL reads one JSON object per line. Blank lines are skipped.
func ReadRecordsJSONL(r io.Reader) ([]record.Record, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var recs []record.Record
	line := 0
	for sc.Scan() {
		line++
		raw := bytes.TrimSpace(sc.Bytes())
		if len(raw) == 0 {
			continue
		}
		rec, err := record.Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		recs = append(recs, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	return recs, nil
}

// WriteRecordsJSONL writes one JSON object per line.
func WriteRecordsJSONL(w io.Writer, recs []record.Record) error {
	bw := bufio.NewWriter(w)
	for i, rec := range recs {
		b, err := rec.Encode()
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		if _, err := bw.Write(b); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
