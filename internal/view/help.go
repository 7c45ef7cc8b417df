// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of vdash

package view

import (
	"context"
	"sort"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"

	"github.com/vdash/vdash/internal/config"
	"github.com/vdash/vdash/internal/ui"
)

// HelpBind represents a single keybinding.
type HelpBind struct {
	Key  string
	Desc string
}

// HelpSection is a titled column of bindings.
type HelpSection struct {
	Title string
	Binds []HelpBind
}

// Help lists the commands and key bindings.
type Help struct {
	*tview.Table

	sections []HelpSection
}

// NewHelp returns a help screen over the configured aliases and hotkeys.
func NewHelp(aliases *config.Aliases, hotkeys *config.HotKeys) *Help {
	h := Help{
		Table:    tview.NewTable(),
		sections: HelpSections(aliases, hotkeys),
	}
	h.SetBorder(true)
	h.SetTitle(" Help ")
	h.SetTitleAlign(tview.AlignCenter)
	h.SetBorderColor(tcell.ColorYellow)
	h.SetBackgroundColor(tcell.ColorDefault)
	h.SetBorderPadding(1, 0, 1, 1)
	h.SetSelectable(false, false)

	return &h
}

// Init lays out the bindings.
func (h *Help) Init(context.Context) error {
	h.build()
	return nil
}

// Start is a no-op.
func (*Help) Start() {}

// Stop is a no-op.
func (*Help) Stop() {}

// Name returns the view name.
func (*Help) Name() string {
	return "help"
}

// Hints returns menu hints.
func (*Help) Hints() ui.MenuHints {
	return ui.MenuHints{
		{Mnemonic: "esc", Description: "Back", Visible: true},
	}
}

// HelpSections returns the help columns. Commands list the aliases of
// every navigation target, shortest alias first.
func HelpSections(aliases *config.Aliases, hotkeys *config.HotKeys) []HelpSection {
	ss := []HelpSection{
		{Title: "COMMANDS", Binds: commandBinds(aliases)},
		{Title: "GENERAL", Binds: []HelpBind{
			{"<:>", "Command"},
			{"</>", "Search"},
			{"<?>", "Help"},
			{"<tab>", "Menu"},
			{"<esc>", "Back"},
			{"<q>", "Quit"},
		}},
		{Title: "LIST", Binds: []HelpBind{
			{"<space>", "Select"},
			{"<ctrl-space>", "Select Page"},
			{"<ctrl-\\>", "Clear Selection"},
			{"<[> <]>", "Page"},
			{"<p>", "Page Size"},
			{"<f>", "Filter"},
			{"<x>", "Clear Filters"},
			{"<shift-col>", "Sort"},
			{"<0-9>", "Status Tab"},
			{"<r>", "Refresh"},
			{"<ctrl-e>", "Export"},
		}},
		{Title: "RECORD", Binds: []HelpBind{
			{"<enter>", "View"},
			{"<v>", "View"},
			{"<e>", "Edit"},
			{"<a>", "Add"},
			{"<ctrl-d>", "Delete"},
			{"<y> <o>", "YAML/JSON"},
			{"<ctrl-s>", "Save"},
		}},
	}
	if hotkeys == nil {
		return ss
	}
	var hh []HelpBind
	for _, n := range hotkeys.Names() {
		hk := hotkeys.Get(n)
		if hk == nil {
			continue
		}
		hh = append(hh, HelpBind{Key: "<" + hk.ShortCut + ">", Desc: hk.Description})
	}
	if len(hh) > 0 {
		ss = append(ss, HelpSection{Title: "HOTKEYS", Binds: hh})
	}

	return ss
}

func commandBinds(aliases *config.Aliases) []HelpBind {
	if aliases == nil {
		return nil
	}
	byTarget := make(map[string]string)
	for alias, target := range aliases.All() {
		cur, ok := byTarget[target]
		if !ok || len(alias) < len(cur) || (len(alias) == len(cur) && alias < cur) {
			byTarget[target] = alias
		}
	}
	bb := make([]HelpBind, 0, len(byTarget))
	for target, alias := range byTarget {
		bb = append(bb, HelpBind{Key: ":" + alias, Desc: target})
	}
	sort.Slice(bb, func(i, j int) bool { return bb[i].Key < bb[j].Key })

	return bb
}

func (h *Help) build() {
	h.Clear()
	var rows int
	for i, s := range h.sections {
		col := i * 3
		h.SetCell(0, col, tview.NewTableCell(s.Title).
			SetTextColor(tcell.ColorAqua).
			SetAttributes(tcell.AttrBold).
			SetSelectable(false))
		for r, b := range s.Binds {
			h.SetCell(r+1, col, tview.NewTableCell(b.Key).
				SetTextColor(tcell.ColorYellow).
				SetSelectable(false))
			h.SetCell(r+1, col+1, tview.NewTableCell(b.Desc).
				SetTextColor(tcell.ColorWhite).
				SetSelectable(false).
				SetExpansion(1))
		}
		rows = max(rows, len(s.Binds))
		if i < len(h.sections)-1 {
			h.SetCell(0, col+2, tview.NewTableCell("   ").SetSelectable(false))
		}
	}
	h.SetCell(rows+2, 0, tview.NewTableCell("<esc> to close").
		SetTextColor(tcell.ColorGray).
		SetSelectable(false))
}
