package config

import (
	"github.com/vdash/vdash/internal/config/data"
)

// DefaultRefreshRate disables periodic reloads; lists load once per mount.
const DefaultRefreshRate = 0.0

// DefaultLogLevel is the default logging level.
const DefaultLogLevel = "info"

// NewFlags creates a new Flags instance with default values set.
func NewFlags() *data.Flags {
	f := data.NewFlags()
	*f.RefreshRate = DefaultRefreshRate
	*f.LogLevel = DefaultLogLevel

	return f
}

// IsBoolSet returns true if a bool pointer is non-nil and true.
func IsBoolSet(b *bool) bool {
	return b != nil && *b
}

// IsStringSet returns true if a string pointer is non-nil and non-empty.
func IsStringSet(s *string) bool {
	return s != nil && *s != ""
}

// IsIntSet returns true if an int pointer is non-nil and positive.
func IsIntSet(n *int) bool {
	return n != nil && *n > 0
}
