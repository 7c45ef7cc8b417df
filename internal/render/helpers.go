package render

import (
	"strconv"
	"strings"

	"github.com/vdash/vdash/internal/model1"
)

// FormatDate normalizes any recognized date to the canonical layout and
// leaves everything else untouched.
func FormatDate(s string) string {
	t, ok := model1.ParseDate(s)
	if !ok {
		return s
	}
	return t.Format(model1.DateLayout)
}

// FormatAmount renders a number with the currency prefix and thousands
// separators, e.g. ₹14,400 or ₹1,250.5.
func FormatAmount(s string) string {
	f, ok := model1.ParseNumber(s)
	if !ok {
		return s
	}
	neg := f < 0
	if neg {
		f = -f
	}
	raw := strconv.FormatFloat(f, 'f', -1, 64)
	whole, frac, _ := strings.Cut(raw, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(Currency)
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}

	return b.String()
}

// NA shows blank cells as n/a.
func NA(s string) string {
	if s == "" {
		return model1.NAValue
	}
	return s
}

// Truncate cuts s to max runes, ending with an ellipsis when there is
// room for one.
func Truncate(s string, max int) string {
	rr := []rune(s)
	if len(rr) <= max {
		return s
	}
	if max <= 3 {
		return string(rr[:max])
	}
	return string(rr[:max-3]) + "..."
}

// Clip returns a decorator truncating cells to max runes. Only the
// displayed text is cut; search and export see the full value.
func Clip(max int) model1.DecoratorFunc {
	return func(s string) string { return Truncate(s, max) }
}
