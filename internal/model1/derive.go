package model1

import "fmt"

// Query bundles the view state the engine derives from.
type Query struct {
	Filter FilterState
	Sort   SortState
	Page   PageState
}

// Key returns a canonical representation of the query.
func (q Query) Key() string {
	return fmt.Sprintf("%s|%s|%d/%d", q.Filter.Key(), q.Sort, q.Page.Index, q.Page.Size)
}

// Result holds the rows visible under a query.
type Result struct {
	// Rows is the full filtered and sorted sequence.
	Rows Rows
	// Page is the page slice of Rows.
	Page Rows
	// PageState is the page actually shown, after clamping.
	PageState PageState
	// PageCount is the number of pages for Rows.
	PageCount int
	// Total is the size of the unfiltered store.
	Total int
}

// Derive filters, sorts and paginates rows. It never fails; empty inputs
// yield an empty page.
func Derive(h Header, rows Rows, q Query) Result {
	visible := q.Sort.Apply(h, q.Filter.Apply(h, rows))
	page := q.Page.Clamp(len(visible))

	return Result{
		Rows:      visible,
		Page:      page.Apply(visible),
		PageState: page,
		PageCount: page.PageCount(len(visible)),
		Total:     len(rows),
	}
}

// Deriver memoizes Derive over a table's data.
type Deriver struct {
	key     string
	version uint64
	data    *TableData
	res     Result
	valid   bool
}

// Derive returns the cached result when neither the table nor the query
// changed since the last call.
func (d *Deriver) Derive(data *TableData, q Query) Result {
	key, version := q.Key(), data.Version()
	if d.valid && d.data == data && d.version == version && d.key == key {
		return d.res
	}
	d.res = Derive(data.Header(), data.Rows(), q)
	d.key, d.version, d.data, d.valid = key, version, data, true

	return d.res
}

// Invalidate drops the cached result.
func (d *Deriver) Invalidate() {
	d.valid = false
}
