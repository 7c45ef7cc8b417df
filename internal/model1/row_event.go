package model1

// RowEvent tags a row with what the last reload did to it.
type RowEvent struct {
	Kind   ResEvent
	Row    Row
	Deltas DeltaRow
}

// NewRowEvent returns an event without deltas.
func NewRowEvent(kind ResEvent, row Row) RowEvent {
	return RowEvent{Kind: kind, Row: row}
}

// NewUpdateEvent returns an update event carrying the previous cells.
func NewUpdateEvent(prev, row Row) RowEvent {
	return RowEvent{Kind: EventUpdate, Row: row, Deltas: NewDeltaRow(prev, row)}
}

// Changed returns true if the row was added or updated.
func (r RowEvent) Changed() bool {
	return r.Kind == EventAdd || r.Kind == EventUpdate
}

// RowEvents keeps row events in store order, indexed by row id.
type RowEvents struct {
	events []RowEvent
	index  map[string]int
}

// NewRowEvents returns an empty collection sized for n rows.
func NewRowEvents(n int) *RowEvents {
	return &RowEvents{
		events: make([]RowEvent, 0, n),
		index:  make(map[string]int, n),
	}
}

// Add appends re. A row id seen before replaces the earlier event.
func (r *RowEvents) Add(re RowEvent) {
	if i, ok := r.index[re.Row.ID]; ok {
		r.events[i] = re
		return
	}
	r.index[re.Row.ID] = len(r.events)
	r.events = append(r.events, re)
}

// Get returns the event of row id. It is safe on a nil collection.
func (r *RowEvents) Get(id string) (RowEvent, bool) {
	if r == nil {
		return RowEvent{}, false
	}
	i, ok := r.index[id]
	if !ok {
		return RowEvent{}, false
	}
	return r.events[i], true
}

// Range calls f on every event until it returns false.
func (r *RowEvents) Range(f func(int, RowEvent) bool) {
	for i, e := range r.events {
		if !f(i, e) {
			return
		}
	}
}

// Empty returns true when there are no rows.
func (r *RowEvents) Empty() bool {
	return len(r.events) == 0
}

// Count returns the number of events.
func (r *RowEvents) Count() int {
	return len(r.events)
}

// Rows returns the rows in store order.
func (r *RowEvents) Rows() Rows {
	rows := make(Rows, 0, len(r.events))
	for _, e := range r.events {
		rows = append(rows, e.Row)
	}
	return rows
}
