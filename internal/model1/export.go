package model1

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// ExportName returns the default export file name for a resource.
func ExportName(resource string) string {
	return resource + "-list.csv"
}

// ExportCSV writes rows as CSV, labels first, fields in schema order.
// Presentation-only columns are skipped.
func ExportCSV(w io.Writer, h Header, rows Rows) error {
	cols := make([]int, 0, len(h))
	for i, c := range h {
		if c.IsVirtual() {
			continue
		}
		cols = append(cols, i)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(h.Labels()); err != nil {
		return err
	}
	rec := make([]string, len(cols))
	for _, r := range rows {
		for i, c := range cols {
			rec[i] = r.Value(c)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}

// ExportBytes serializes rows to CSV in memory.
func ExportBytes(h Header, rows Rows) ([]byte, error) {
	var buff bytes.Buffer
	if err := ExportCSV(&buff, h, rows); err != nil {
		return nil, err
	}
	return buff.Bytes(), nil
}

// ExportFile writes rows as CSV to path.
func ExportFile(path string, h Header, rows Rows) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export to %s: %w", path, err)
	}
	if err := ExportCSV(f, h, rows); err != nil {
		_ = f.Close()
		return fmt.Errorf("export to %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("export to %s: %w", path, err)
	}
	return nil
}
