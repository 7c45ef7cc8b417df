package model1

import "slices"

// Fields holds the rendered cells of a row, in header order.
type Fields []string

// Row is one rendered record.
type Row struct {
	ID     string
	Fields Fields
}

// Value returns the cell at col or an empty string when out of range.
func (r Row) Value(col int) string {
	if col < 0 || col >= len(r.Fields) {
		return ""
	}
	return r.Fields[col]
}

// Diff returns true if the rows differ in id or any cell.
func (r Row) Diff(ro Row) bool {
	return r.ID != ro.ID || !slices.Equal(r.Fields, ro.Fields)
}

// Rows represents a collection of rows
type Rows []Row

// IDs returns row ids in order.
func (r Rows) IDs() []string {
	ids := make([]string, 0, len(r))
	for _, row := range r {
		ids = append(ids, row.ID)
	}
	return ids
}
