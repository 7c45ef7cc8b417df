package model1

import (
	"fmt"
	"reflect"
)

// Kind drives value comparison for a column.
type Kind int

const (
	KindText Kind = iota
	KindNumber
	KindDate
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	default:
		return "text"
	}
}

// Renderer tags for columns that carry no record data.
const (
	RenderSelection = "selection"
	RenderActions   = "actions"
)

// Attrs represents column attributes
type Attrs struct {
	Align      int    // tview alignment
	Renderer   string // Cell renderer tag
	Kind       Kind   // Comparison kind
	Filterable bool   // Accepts per-field predicates
	Sortable   bool   // Accepts sort requests
	Searchable bool   // Matched by the global search
	Hide       bool   // Hidden from the table, still data
	Decorator  DecoratorFunc
}

func (a Attrs) Merge(b Attrs) Attrs {
	if a.Align == 0 {
		a.Align = b.Align
	}
	if a.Renderer == "" {
		a.Renderer = b.Renderer
	}
	if a.Kind == KindText {
		a.Kind = b.Kind
	}
	if !a.Filterable {
		a.Filterable = b.Filterable
	}
	if !a.Sortable {
		a.Sortable = b.Sortable
	}
	if !a.Searchable {
		a.Searchable = b.Searchable
	}
	if !a.Hide {
		a.Hide = b.Hide
	}
	if a.Decorator == nil {
		a.Decorator = b.Decorator
	}
	return a
}

// HeaderColumn represents a table header column. Name is the record
// field the column reads, Label what users see.
type HeaderColumn struct {
	Name  string
	Label string
	Attrs
}

func (h HeaderColumn) String() string {
	return fmt.Sprintf("%s [%s::%t::%t]", h.Name, h.Kind, h.Filterable, h.Sortable)
}

// Title returns the display label, falling back to the field name.
func (h HeaderColumn) Title() string {
	if h.Label != "" {
		return h.Label
	}
	return h.Name
}

// IsVirtual returns true for columns that exist only for presentation.
func (h HeaderColumn) IsVirtual() bool {
	return h.Renderer == RenderSelection || h.Renderer == RenderActions
}

// IsSearchable returns true if the global search looks at this column.
func (h HeaderColumn) IsSearchable() bool {
	return !h.IsVirtual() && (h.Searchable || h.Filterable)
}

func (h HeaderColumn) Clone() HeaderColumn {
	return h
}

// Header represents a table header (slice of columns)
type Header []HeaderColumn

func (h Header) Clone() Header {
	he := make(Header, 0, len(h))
	for _, c := range h {
		he = append(he, c.Clone())
	}
	return he
}

func (h Header) Diff(header Header) bool {
	if len(h) != len(header) {
		return true
	}
	for i := range h {
		a, b := h[i], header[i]
		a.Decorator, b.Decorator = nil, nil
		if !reflect.DeepEqual(a, b) {
			return true
		}
	}
	return false
}

// IndexOf returns the position of the named column.
func (h Header) IndexOf(colName string, includeHidden bool) (int, bool) {
	for i, c := range h {
		if c.Hide && !includeHidden {
			continue
		}
		if c.Name == colName {
			return i, true
		}
	}
	return -1, false
}

// Column returns the named column.
func (h Header) Column(colName string) (HeaderColumn, bool) {
	idx, ok := h.IndexOf(colName, true)
	if !ok {
		return HeaderColumn{}, false
	}
	return h[idx], true
}

// KindOf returns the comparison kind of column col.
func (h Header) KindOf(col int) Kind {
	if col < 0 || col >= len(h) {
		return KindText
	}
	return h[col].Kind
}

// ColumnNames returns field names in schema order.
func (h Header) ColumnNames(hidden bool) []string {
	if len(h) == 0 {
		return nil
	}
	cc := make([]string, 0, len(h))
	for _, c := range h {
		if !hidden && c.Hide {
			continue
		}
		cc = append(cc, c.Name)
	}
	return cc
}

// Labels returns display labels in schema order, skipping virtual columns.
func (h Header) Labels() []string {
	ll := make([]string, 0, len(h))
	for _, c := range h {
		if c.IsVirtual() {
			continue
		}
		ll = append(ll, c.Title())
	}
	return ll
}

// WithHidden returns a copy of the header with the named columns hidden
// and every other data column shown.
func (h Header) WithHidden(names ...string) Header {
	hide := make(map[string]struct{}, len(names))
	for _, n := range names {
		hide[n] = struct{}{}
	}
	out := h.Clone()
	for i := range out {
		_, ok := hide[out[i].Name]
		out[i].Hide = ok
	}
	return out
}
