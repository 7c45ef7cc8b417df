package model1

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"
)

// MatchOp identifies a per-field predicate flavor.
type MatchOp int

const (
	// MatchExact passes values equal to the predicate value.
	MatchExact MatchOp = iota
	// MatchContains passes values containing the predicate value, ignoring case.
	MatchContains
	// MatchRange passes values within [Min, Max]; an empty bound is open.
	MatchRange
	// MatchIncludes passes values equal to any of the predicate values.
	MatchIncludes
)

func (m MatchOp) String() string {
	switch m {
	case MatchContains:
		return "contains"
	case MatchRange:
		return "range"
	case MatchIncludes:
		return "includes"
	default:
		return "exact"
	}
}

// Predicate represents a per-field filter.
type Predicate struct {
	Op     MatchOp
	Value  string
	Values []string
	Min    string
	Max    string
}

// Exact returns an equality predicate.
func Exact(v string) Predicate { return Predicate{Op: MatchExact, Value: v} }

// Contains returns a case-insensitive substring predicate.
func Contains(v string) Predicate { return Predicate{Op: MatchContains, Value: v} }

// Range returns an inclusive range predicate.
func Range(lo, hi string) Predicate { return Predicate{Op: MatchRange, Min: lo, Max: hi} }

// Includes returns a set membership predicate.
func Includes(vv ...string) Predicate { return Predicate{Op: MatchIncludes, Values: vv} }

// IsEmpty returns true when the predicate would not constrain anything.
func (p Predicate) IsEmpty() bool {
	switch p.Op {
	case MatchRange:
		return p.Min == "" && p.Max == ""
	case MatchIncludes:
		return len(p.Values) == 0
	default:
		return p.Value == ""
	}
}

// Match checks a cell value against the predicate.
func (p Predicate) Match(kind Kind, v string) bool {
	switch p.Op {
	case MatchContains:
		return strings.Contains(strings.ToLower(v), strings.ToLower(p.Value))
	case MatchRange:
		if p.Min != "" && Compare(kind, v, p.Min) < 0 {
			return false
		}
		if p.Max != "" && Compare(kind, v, p.Max) > 0 {
			return false
		}
		return true
	case MatchIncludes:
		return slices.Contains(p.Values, v)
	default:
		return v == p.Value
	}
}

func (p Predicate) String() string {
	switch p.Op {
	case MatchRange:
		return fmt.Sprintf("%s[%q..%q]", p.Op, p.Min, p.Max)
	case MatchIncludes:
		return fmt.Sprintf("%s%q", p.Op, p.Values)
	default:
		return fmt.Sprintf("%s(%q)", p.Op, p.Value)
	}
}

// FilterState tracks the active per-field predicates and the global
// search text. The zero value has no active filter.
type FilterState struct {
	fields map[string]Predicate
	global string
}

// NewFilterState returns an empty filter.
func NewFilterState() FilterState {
	return FilterState{fields: make(map[string]Predicate)}
}

// Set installs the predicate for field. An empty predicate clears it.
func (f *FilterState) Set(field string, p Predicate) {
	if p.IsEmpty() {
		f.Clear(field)
		return
	}
	if f.fields == nil {
		f.fields = make(map[string]Predicate)
	}
	f.fields[field] = p
}

// Clear drops the predicate for field.
func (f *FilterState) Clear(field string) {
	delete(f.fields, field)
}

// Get returns the predicate for field.
func (f FilterState) Get(field string) (Predicate, bool) {
	p, ok := f.fields[field]
	return p, ok
}

// SetGlobal sets the global search text.
func (f *FilterState) SetGlobal(s string) {
	f.global = strings.TrimSpace(s)
}

// Global returns the global search text.
func (f FilterState) Global() string {
	return f.global
}

// Reset clears every predicate and the global text.
func (f *FilterState) Reset() {
	f.fields, f.global = nil, ""
}

// Active returns true if anything constrains rows.
func (f FilterState) Active() bool {
	return f.global != "" || len(f.fields) > 0
}

// Fields returns the filtered field names sorted.
func (f FilterState) Fields() []string {
	kk := make([]string, 0, len(f.fields))
	for k := range f.fields {
		kk = append(kk, k)
	}
	sort.Strings(kk)
	return kk
}

// Clone returns an independent copy.
func (f FilterState) Clone() FilterState {
	out := FilterState{global: f.global}
	if len(f.fields) > 0 {
		out.fields = make(map[string]Predicate, len(f.fields))
		for k, v := range f.fields {
			out.fields[k] = v
		}
	}
	return out
}

// Key returns a canonical representation used to memoize derivations.
func (f FilterState) Key() string {
	var b strings.Builder
	b.WriteString("q=")
	b.WriteString(strconv.Quote(strings.ToLower(f.global)))
	for _, k := range f.Fields() {
		b.WriteString(";")
		b.WriteString(strconv.Quote(k))
		b.WriteString("=")
		b.WriteString(f.fields[k].String())
	}
	return b.String()
}

// Match returns true if the row passes every predicate and the global
// text, if any.
func (f FilterState) Match(h Header, r Row) bool {
	for field, p := range f.fields {
		idx, ok := h.IndexOf(field, true)
		var v string
		if ok {
			v = r.Value(idx)
		}
		if !p.Match(h.KindOf(idx), v) {
			return false
		}
	}
	if f.global == "" {
		return true
	}
	q := strings.ToLower(f.global)
	for i, c := range h {
		if !c.IsSearchable() {
			continue
		}
		if strings.Contains(strings.ToLower(r.Value(i)), q) {
			return true
		}
	}
	return false
}

// Apply returns the rows passing the filter, preserving order.
func (f FilterState) Apply(h Header, rows Rows) Rows {
	if !f.Active() {
		return rows
	}
	out := make(Rows, 0, len(rows))
	for _, r := range rows {
		if f.Match(h, r) {
			out = append(out, r)
		}
	}
	return out
}
