package model1

import "github.com/gdamore/tcell/v2"

// NAValue is shown for fields a record does not carry.
const NAValue = "n/a"

// ResEvent represents a row event type.
type ResEvent int

const (
	EventUnchanged ResEvent = 1 << iota
	EventAdd
	EventUpdate
	EventDelete
	EventClear
)

// DecoratorFunc decorates a string
type DecoratorFunc func(string) string

// ColorerFunc represents a row colorer.
type ColorerFunc func(h Header, re *RowEvent) tcell.Color

// Renderer turns a record into a table row.
type Renderer interface {
	// Header returns the column schema.
	Header() Header

	// Render fills in the row for the given record.
	Render(o any, row *Row) error

	// ColorerFunc returns the row colorer.
	ColorerFunc() ColorerFunc
}
