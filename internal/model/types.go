package model

import (
	"context"

	"github.com/vdash/vdash/internal/model1"
)

// Component represents a UI component
type Component interface {
	Name() string
	Stop()
}

// TableListener represents a table model listener.
type TableListener interface {
	// TableNoData notifies listener no data was found.
	TableNoData(*model1.TableData)

	// TableDataChanged notifies the model data changed.
	TableDataChanged(*model1.TableData)

	// TableLoadFailed notifies the load failed.
	TableLoadFailed(error)
}

// TableModel defines the interface for a table data model that fetches data.
type TableModel interface {
	// Header returns the table header.
	Header() model1.Header

	// RowCount returns the number of rows.
	RowCount() int

	// Peek returns the current table data.
	Peek() *model1.TableData

	// Watch loads the data and keeps refreshing it.
	Watch(context.Context) error

	// Refresh fetches data from the source immediately.
	Refresh(context.Context) error

	// AddListener registers a table listener.
	AddListener(TableListener)

	// RemoveListener unregisters a table listener.
	RemoveListener(TableListener)
}

// Severity ranks a notification.
type Severity int

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeveritySuccess:
		return "success"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

// Notifier surfaces a message to the user. Calls are fire and forget.
type Notifier interface {
	Notify(msg string, sev Severity)
}

// Navigator moves the app to a menu url or record route.
type Navigator interface {
	Navigate(target string) error
}

// NotifierFunc adapts a function to a Notifier.
type NotifierFunc func(msg string, sev Severity)

// Notify calls f.
func (f NotifierFunc) Notify(msg string, sev Severity) {
	f(msg, sev)
}
