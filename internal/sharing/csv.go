package sharing

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// WriteCSV decodes the parquet data files of one table and writes their rows
// as a single CSV document with a header row. All files of a table share a
// schema; the header comes from the first file.
func WriteCSV(w io.Writer, files [][]byte) error {
	out := csv.NewWriter(w)
	wroteHeader := false

	for _, data := range files {
		if err := appendFile(out, data, &wroteHeader); err != nil {
			return err
		}
	}

	out.Flush()
	return out.Error()
}

func appendFile(out *csv.Writer, data []byte, wroteHeader *bool) error {
	reader := parquet.NewReader(bytes.NewReader(data))
	defer reader.Close()

	columns := reader.Schema().Columns()
	if !*wroteHeader {
		header := make([]string, len(columns))
		for i, path := range columns {
			header[i] = strings.Join(path, ".")
		}
		if err := out.Write(header); err != nil {
			return fmt.Errorf("failed to write csv header: %w", err)
		}
		*wroteHeader = true
	}

	rows := make([]parquet.Row, 64)
	for {
		n, err := reader.ReadRows(rows)
		for _, row := range rows[:n] {
			record := make([]string, len(columns))
			for _, value := range row {
				if value.IsNull() {
					continue
				}
				record[value.Column()] = value.String()
			}
			if err := out.Write(record); err != nil {
				return fmt.Errorf("failed to write csv row: %w", err)
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read parquet rows: %w", err)
		}
	}
}
