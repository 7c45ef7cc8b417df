// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of vdash

package ui

import (
	"fmt"
	"slices"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"

	"github.com/vdash/vdash/internal/model"
)

// menuRows is the height of the hint grid in the header.
const menuRows = 6

// Menu lists the key hints of the view on top of the stack.
type Menu struct {
	*tview.Table
}

// NewMenu returns an empty menu.
func NewMenu() *Menu {
	m := Menu{Table: tview.NewTable()}
	m.SetBackgroundColor(tcell.ColorDefault)
	m.SetBorderPadding(0, 0, 1, 1)
	m.SetSelectable(false, false)

	return &m
}

// HydrateMenu lays out the visible hints column by column.
func (m *Menu) HydrateMenu(hh MenuHints) {
	m.Clear()
	for i, h := range visibleHints(hh) {
		cell := tview.NewTableCell(formatHint(h)).
			SetBackgroundColor(tcell.ColorDefault).
			SetSelectable(false)
		m.SetCell(i%menuRows, i/menuRows, cell)
	}
}

// visibleHints drops hidden hints and orders the rest for display.
func visibleHints(hh MenuHints) MenuHints {
	out := slices.DeleteFunc(slices.Clone(hh), func(h MenuHint) bool {
		return !h.Visible || h.Mnemonic == "" || h.Description == ""
	})
	slices.SortStableFunc(out, compareHints)

	return out
}

func formatHint(h MenuHint) string {
	return fmt.Sprintf(" [yellow::b]<%s>[white::-] %s ", h.Mnemonic, h.Description)
}

func (m *Menu) hydrateFrom(c model.Component) {
	if h, ok := c.(Hinter); ok {
		m.HydrateMenu(h.Hints())
		return
	}
	m.Clear()
}

// StackPushed shows the hints of the new view.
func (m *Menu) StackPushed(c model.Component) {
	m.hydrateFrom(c)
}

// StackPopped shows the hints of the view underneath.
func (m *Menu) StackPopped(_, top model.Component) {
	m.hydrateFrom(top)
}

// StackTop shows the hints of the current view.
func (m *Menu) StackTop(c model.Component) {
	m.hydrateFrom(c)
}
