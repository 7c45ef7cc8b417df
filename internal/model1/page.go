package model1

// DefaultPageSize is used when no page size was configured.
const DefaultPageSize = 10

// PageSizes lists the page sizes offered to users.
var PageSizes = []int{5, 10, 25, 50, 100}

// PageState locates one page of the visible rows.
type PageState struct {
	Index int
	Size  int
}

// NewPageState returns the first page of the given size.
func NewPageState(size int) PageState {
	return PageState{Size: size}.normalize()
}

func (p PageState) normalize() PageState {
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	if p.Index < 0 {
		p.Index = 0
	}
	return p
}

// PageCount returns the number of pages needed for count rows.
func (p PageState) PageCount(count int) int {
	p = p.normalize()
	return (count + p.Size - 1) / p.Size
}

// Clamp moves the index onto the last valid page when it points past the
// end of count rows.
func (p PageState) Clamp(count int) PageState {
	p = p.normalize()
	last := max(0, p.PageCount(count)-1)
	if p.Index > last {
		p.Index = last
	}
	return p
}

// Bounds returns the half open slice range of the page within count rows.
func (p PageState) Bounds(count int) (int, int) {
	p = p.Clamp(count)
	start := min(p.Index*p.Size, count)
	return start, min(start+p.Size, count)
}

// Apply returns the page slice of rows.
func (p PageState) Apply(rows Rows) Rows {
	start, end := p.Bounds(len(rows))
	return rows[start:end]
}

// Next returns the following page.
func (p PageState) Next() PageState {
	p.Index++
	return p
}

// Prev returns the preceding page.
func (p PageState) Prev() PageState {
	if p.Index > 0 {
		p.Index--
	}
	return p
}

// WithSize changes the page size and returns to the first page.
func (p PageState) WithSize(size int) PageState {
	return NewPageState(size)
}
