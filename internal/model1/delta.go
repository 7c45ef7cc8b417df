package model1

// DeltaRow holds the previous value of every cell that changed between
// two loads. Unchanged cells are blank.
type DeltaRow []string

// NewDeltaRow compares the cells of o and n.
func NewDeltaRow(o, n Row) DeltaRow {
	deltas := make(DeltaRow, len(n.Fields))
	for i, cur := range n.Fields {
		if prev := o.Value(i); prev != cur {
			deltas[i] = prev
		}
	}
	return deltas
}

// Changed returns true if cell col changed.
func (d DeltaRow) Changed(col int) bool {
	return col >= 0 && col < len(d) && d[col] != ""
}
