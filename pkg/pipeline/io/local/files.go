package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/simdem/archive-plugins/pkg/pipeline/record"
)

// Format is an on-disk record encoding.
type Format string

const (
	FormatJSONL Format = "jsonl"
	FormatCSV   Format = "csv"
)

// FormatForPath picks the record format from a file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonl", ".ndjson":
		return FormatJSONL, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported record file %q (want .jsonl, .ndjson or .csv)", path)
	}
}

// FileInput loads records from a local file.
type FileInput struct {
	Path string

	header []string
}

// Load reads all records from the file. For CSV input the header is kept so a
// FileOutput can reproduce the column order.
func (in *FileInput) Load(_ context.Context) ([]record.Record, error) {
	format, err := FormatForPath(in.Path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(in.Path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	switch format {
	case FormatCSV:
		recs, header, err := ReadRecordsCSV(f)
		if err != nil {
			return nil, err
		}
		in.header = header
		return recs, nil
	default:
		return ReadRecordsJSONL(f)
	}
}

// Header returns the CSV header seen by Load, if any.
func (in *FileInput) Header() []string {
	return in.header
}

// FileOutput stores records to a local file, replacing it.
type FileOutput struct {
	Path string
	// Header fixes the CSV column order. When empty, columns are "content"
	// followed by the remaining keys in sorted order.
	Header []string
}

func (out *FileOutput) Store(_ context.Context, rows []record.Record) error {
	format, err := FormatForPath(out.Path)
	if err != nil {
		return err
	}
	f, err := os.Create(out.Path)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	switch format {
	case FormatCSV:
		header := out.Header
		if len(header) == 0 {
			header = inferHeader(rows)
		}
		err = WriteRecordsCSV(f, header, rows)
	default:
		err = WriteRecordsJSONL(f, rows)
	}
	if err != nil {
		return err
	}
	return f.Close()
}

func inferHeader(rows []record.Record) []string {
	seen := map[string]struct{}{record.ContentField: {}}
	var rest []string
	for _, rec := range rows {
		for k := range rec {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			rest = append(rest, k)
		}
	}
	slices.Sort(rest)
	return append([]string{record.ContentField}, rest...)
}
