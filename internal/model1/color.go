package model1

import "github.com/gdamore/tcell/v2"

var (
	// ModColor row modified color
	ModColor tcell.Color = tcell.ColorYellow

	// AddColor row added color
	AddColor tcell.Color = tcell.ColorBlue

	// ErrColor row error color
	ErrColor tcell.Color = tcell.ColorRed

	// StdColor row default color
	StdColor tcell.Color = tcell.ColorWhite

	// HighlightColor row highlight color
	HighlightColor tcell.Color = tcell.ColorAqua

	// SelectColor selected row color
	SelectColor tcell.Color = tcell.ColorFuchsia
)

// Status palette, keyed by severity.
var (
	PrimaryColor tcell.Color = tcell.ColorDodgerBlue
	SuccessColor tcell.Color = tcell.ColorGreen
	WarningColor tcell.Color = tcell.ColorOrange
	InfoColor    tcell.Color = tcell.ColorDarkCyan
	ErrorColor   tcell.Color = tcell.ColorRed
)

// StatusColor maps a record status to its palette color.
func StatusColor(status string) tcell.Color {
	switch status {
	case AllTab:
		return PrimaryColor
	case "Paid", "Verified":
		return SuccessColor
	case "Unpaid", "Pending":
		return WarningColor
	case "":
		return StdColor
	default:
		return ErrorColor
	}
}

// DefaultColorer set the default table row colors
func DefaultColorer(_ Header, re *RowEvent) tcell.Color {
	switch re.Kind {
	case EventAdd:
		return AddColor
	case EventUpdate:
		return ModColor
	default:
		return StdColor
	}
}

// StatusColorer colors rows by the value of their status column.
func StatusColorer(field string) ColorerFunc {
	return func(h Header, re *RowEvent) tcell.Color {
		if re.Kind == EventAdd || re.Kind == EventUpdate {
			return DefaultColorer(h, re)
		}
		idx, ok := h.IndexOf(field, true)
		if !ok {
			return StdColor
		}
		return StatusColor(re.Row.Value(idx))
	}
}
