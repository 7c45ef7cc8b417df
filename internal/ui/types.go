package ui

import (
	"cmp"
	"context"
	"strconv"
	"strings"

	"github.com/derailed/tview"

	"github.com/vdash/vdash/internal/model"
)

// MenuHint is a key shown in the header menu.
type MenuHint struct {
	Mnemonic    string
	Description string
	Visible     bool
}

// MenuHints is a list of hints.
type MenuHints []MenuHint

// compareHints puts numeric mnemonics first, in numeric order, then the
// rest by description.
func compareHints(a, b MenuHint) int {
	n, errA := strconv.Atoi(a.Mnemonic)
	m, errB := strconv.Atoi(b.Mnemonic)
	switch {
	case errA == nil && errB == nil:
		return cmp.Compare(n, m)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}

	return strings.Compare(a.Description, b.Description)
}

// Hinter represent a menu mnemonic provider.
type Hinter interface {
	// Hints returns a collection of menu hints.
	Hints() MenuHints
}

// Primitive represents a UI primitive.
type Primitive interface {
	tview.Primitive

	// Name returns the view name.
	Name() string
}

// Igniter represents a runnable view.
type Igniter interface {
	// Init initializes a component.
	Init(ctx context.Context) error

	// Start starts a component.
	Start()

	// Stop terminates a component.
	Stop()
}

// Component represents a ui component.
type Component interface {
	Primitive
	Igniter
	Hinter
}

var _ model.Component = Component(nil)
