package model1

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// IDField names the record identity field.
const IDField = "id"

// DateLayout is the canonical rendering of date values.
const DateLayout = "2006-01-02"

// Record is one row of domain data keyed by field name. Nested values are
// reached with dotted paths.
type Record map[string]any

// ID returns the record identity as a string.
func (r Record) ID() string {
	return r.String(IDField)
}

// Lookup resolves a dotted path.
func (r Record) Lookup(path string) (any, bool) {
	var cur any = map[string]any(r)
	for _, seg := range strings.Split(path, ".") {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		if cur, ok = m[seg]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// String returns the stringified value at path, empty when missing.
func (r Record) String(path string) string {
	v, ok := r.Lookup(path)
	if !ok {
		return ""
	}
	return Stringify(v)
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	return Record(cloneMap(r))
}

// Keys returns the top level field names sorted.
func (r Record) Keys() []string {
	kk := make([]string, 0, len(r))
	for k := range r {
		kk = append(kk, k)
	}
	sort.Strings(kk)
	return kk
}

// Records represents an ordered row store.
type Records []Record

// IDs returns record ids in order.
func (rr Records) IDs() []string {
	ids := make([]string, 0, len(rr))
	for _, r := range rr {
		ids = append(ids, r.ID())
	}
	return ids
}

// Find returns the record with the given id.
func (rr Records) Find(id string) (Record, bool) {
	for _, r := range rr {
		if r.ID() == id {
			return r, true
		}
	}
	return nil, false
}

// Stringify renders a scalar or nested value for display and matching.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		return t.Format(DateLayout)
	case fmt.Stringer:
		return t.String()
	case []any:
		ss := make([]string, 0, len(t))
		for _, e := range t {
			ss = append(ss, Stringify(e))
		}
		return strings.Join(ss, ", ")
	case []string:
		return strings.Join(t, ", ")
	default:
		if m, ok := asMap(v); ok {
			kk := make([]string, 0, len(m))
			for k := range m {
				kk = append(kk, k)
			}
			sort.Strings(kk)
			ss := make([]string, 0, len(kk))
			for _, k := range kk {
				ss = append(ss, k+"="+Stringify(m[k]))
			}
			return strings.Join(ss, " ")
		}
		return fmt.Sprintf("%v", v)
	}
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Record:
		return m, true
	default:
		return nil, false
	}
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case Record:
		return Record(cloneMap(t))
	case []any:
		cp := make([]any, len(t))
		for i, e := range t {
			cp[i] = cloneValue(e)
		}
		return cp
	case []string:
		cp := make([]string, len(t))
		copy(cp, t)
		return cp
	default:
		return v
	}
}
