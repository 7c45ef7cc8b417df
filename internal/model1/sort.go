package model1

import (
	"fmt"
	"slices"
)

// SortState names the single active sort column. An empty column means
// store order.
type SortState struct {
	Column string
	Asc    bool
}

// SortBy returns an ascending sort on col.
func SortBy(col string) SortState {
	return SortState{Column: col, Asc: true}
}

// IsSet returns true if a sort column is active.
func (s SortState) IsSet() bool {
	return s.Column != ""
}

// Cycle advances the sort for a column request: a new column sorts
// ascending, the active column flips to descending, and a descending
// column drops back to store order.
func (s SortState) Cycle(col string) SortState {
	switch {
	case s.Column != col:
		return SortBy(col)
	case s.Asc:
		return SortState{Column: col}
	default:
		return SortState{}
	}
}

func (s SortState) String() string {
	if !s.IsSet() {
		return ""
	}
	dir := "desc"
	if s.Asc {
		dir = "asc"
	}
	return fmt.Sprintf("%s:%s", s.Column, dir)
}

// Apply returns a sorted copy of rows. Rows comparing equal keep their
// relative order. Unknown or unsortable columns leave the order as is.
func (s SortState) Apply(h Header, rows Rows) Rows {
	out := make(Rows, len(rows))
	copy(out, rows)
	if !s.IsSet() {
		return out
	}
	idx, ok := h.IndexOf(s.Column, true)
	if !ok || !h[idx].Sortable {
		return out
	}
	kind := h[idx].Kind
	slices.SortStableFunc(out, func(a, b Row) int {
		if s.Asc {
			return Compare(kind, a.Value(idx), b.Value(idx))
		}
		return Compare(kind, b.Value(idx), a.Value(idx))
	})
	return out
}
