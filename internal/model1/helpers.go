package model1

import (
	"cmp"
	"strconv"
	"strings"
	"time"

	"github.com/fvbommel/sortorder"
)

var dateLayouts = []string{
	DateLayout,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"01/02/2006",
	"02 Jan 2006",
	"Jan 2, 2006",
}

// Compare orders two cell values according to the column kind. Values
// that do not parse as the kind sort after those that do and fall back
// to natural ordering among themselves.
func Compare(kind Kind, v1, v2 string) int {
	switch kind {
	case KindNumber:
		n1, ok1 := ParseNumber(v1)
		n2, ok2 := ParseNumber(v2)
		if c, done := compareParsed(ok1, ok2); done {
			if ok1 {
				return cmp.Compare(n1, n2)
			}
			return c
		}
	case KindDate:
		d1, ok1 := ParseDate(v1)
		d2, ok2 := ParseDate(v2)
		if c, done := compareParsed(ok1, ok2); done {
			if ok1 {
				return d1.Compare(d2)
			}
			return c
		}
	}
	return naturalCompare(v1, v2)
}

// compareParsed settles ordering when at most one side parsed. done is
// false when neither parsed and the caller should fall back.
func compareParsed(ok1, ok2 bool) (int, bool) {
	switch {
	case ok1 && ok2:
		return 0, true
	case ok1:
		return -1, true
	case ok2:
		return 1, true
	default:
		return 0, false
	}
}

func naturalCompare(v1, v2 string) int {
	switch {
	case v1 == v2:
		return 0
	case sortorder.NaturalLess(v1, v2):
		return -1
	default:
		return 1
	}
}

// ParseNumber reads a numeric cell, tolerating grouping commas, spaces
// and a leading currency sign.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "₹$€£ ")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" || s == NAValue {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// ParseDate reads a date cell in any of the supported layouts.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == NAValue {
		return time.Time{}, false
	}
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
