package model1

import "sync"

// TableData tracks the row store of one resource for tabular display.
type TableData struct {
	header    Header
	rowEvents *RowEvents
	resource  string
	errMsg    string
	version   uint64
	loaded    bool
	mx        sync.RWMutex
}

// NewTableData returns a new table.
func NewTableData(resource string) *TableData {
	return &TableData{
		resource:  resource,
		rowEvents: NewRowEvents(10),
	}
}

// Header returns the table header.
func (t *TableData) Header() Header {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.header
}

// SetHeader sets the table header.
func (t *TableData) SetHeader(h Header) {
	t.mx.Lock()
	defer t.mx.Unlock()
	if !t.header.Diff(h) {
		return
	}
	t.header = h
	t.version++
}

// RowEvents returns the row events.
func (t *TableData) RowEvents() *RowEvents {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.rowEvents
}

// Rows returns a snapshot of the rows in store order.
func (t *TableData) Rows() Rows {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.rowEvents.Rows()
}

// IDs returns the ids of all rows in store order.
func (t *TableData) IDs() []string {
	t.mx.RLock()
	defer t.mx.RUnlock()
	ids := make([]string, 0, t.rowEvents.Count())
	t.rowEvents.Range(func(_ int, re RowEvent) bool {
		ids = append(ids, re.Row.ID)
		return true
	})
	return ids
}

// Update replaces the row store. Rows are tagged as added, updated or
// unchanged relative to the previous store; rows that disappeared are
// dropped.
func (t *TableData) Update(rows Rows) {
	t.mx.Lock()
	defer t.mx.Unlock()

	prev, first := t.rowEvents, !t.loaded
	next := NewRowEvents(len(rows))
	for _, row := range rows {
		old, ok := prev.Get(row.ID)
		switch {
		case first:
			next.Add(NewRowEvent(EventUnchanged, row))
		case !ok:
			next.Add(NewRowEvent(EventAdd, row))
		case old.Row.Diff(row):
			next.Add(NewUpdateEvent(old.Row, row))
		default:
			next.Add(NewRowEvent(EventUnchanged, row))
		}
	}
	t.rowEvents, t.loaded = next, true
	t.errMsg = ""
	t.version++
}

// Version changes every time the header or row store changes.
func (t *TableData) Version() uint64 {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.version
}

// Resource returns the resource name backing the table.
func (t *TableData) Resource() string {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.resource
}

// Empty returns true if no data is available.
func (t *TableData) Empty() bool {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.rowEvents.Empty()
}

// RowCount returns the number of rows.
func (t *TableData) RowCount() int {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.rowEvents.Count()
}

// Clone returns a shallow copy of the table data.
func (t *TableData) Clone() *TableData {
	t.mx.RLock()
	defer t.mx.RUnlock()

	return &TableData{
		header:    t.header,
		rowEvents: t.rowEvents,
		resource:  t.resource,
		errMsg:    t.errMsg,
		version:   t.version,
		loaded:    t.loaded,
	}
}

// SetError sets an error message to display instead of data.
func (t *TableData) SetError(msg string) {
	t.mx.Lock()
	defer t.mx.Unlock()
	t.errMsg = msg
}

// Error returns the error message, if any.
func (t *TableData) Error() string {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.errMsg
}

// HasError returns true if there's an error message.
func (t *TableData) HasError() bool {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.errMsg != ""
}
