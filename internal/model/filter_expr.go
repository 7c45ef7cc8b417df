package model

import (
	"fmt"
	"strings"

	"github.com/vdash/vdash/internal/model1"
)

// ParseFilter parses a field filter expression:
//
//	status=Paid          exact
//	name~acme            contains
//	amount=100..500      range, either bound may be empty
//	status=Paid|Unpaid   any of
//
// An empty value yields an empty predicate, which clears the field.
func ParseFilter(expr string) (string, model1.Predicate, error) {
	expr = strings.TrimSpace(expr)
	i := strings.IndexAny(expr, "=~")
	if i <= 0 {
		return "", model1.Predicate{}, fmt.Errorf("invalid filter %q, expected field=value or field~value", expr)
	}
	field, op, value := strings.TrimSpace(expr[:i]), expr[i], strings.TrimSpace(expr[i+1:])
	if field == "" {
		return "", model1.Predicate{}, fmt.Errorf("invalid filter %q, missing field", expr)
	}

	switch {
	case value == "":
		return field, model1.Predicate{}, nil
	case op == '~':
		return field, model1.Contains(value), nil
	case strings.Contains(value, ".."):
		lo, hi, _ := strings.Cut(value, "..")
		return field, model1.Range(strings.TrimSpace(lo), strings.TrimSpace(hi)), nil
	case strings.Contains(value, "|"):
		vv := strings.Split(value, "|")
		for i := range vv {
			vv[i] = strings.TrimSpace(vv[i])
		}
		return field, model1.Includes(vv...), nil
	default:
		return field, model1.Exact(value), nil
	}
}

// ApplyFilter validates a parsed filter against the header and installs
// it on the filter state. Only filterable columns accept predicates.
func ApplyFilter(f *model1.FilterState, h model1.Header, expr string) error {
	field, p, err := ParseFilter(expr)
	if err != nil {
		return err
	}
	col, ok := h.Column(field)
	if !ok {
		return fmt.Errorf("unknown column %q", field)
	}
	if !col.Filterable {
		return fmt.Errorf("column %q is not filterable", field)
	}
	if p.IsEmpty() {
		f.Clear(field)
		return nil
	}
	f.Set(field, p)

	return nil
}
