// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of vdash

package ui

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"

	"github.com/vdash/vdash/internal/model1"
)

const (
	// TableTitleFmt formats the title with resource, visible and total
	// row counts.
	TableTitleFmt = " <%s>[%d/%d] "

	checkOn  = "[x]"
	checkOff = "[ ]"
	sortAsc  = " ▲"
	sortDesc = " ▼"
)

// TableView is what a table shows: one derived page and its context.
type TableView struct {
	Header    model1.Header
	Result    model1.Result
	Sort      model1.SortState
	Selection *model1.Selection
	Search    string
	// Events tags rows added or changed by the last reload.
	Events *model1.RowEvents
}

// Table represents a paged table of records.
type Table struct {
	*tview.Table

	resource string
	actions  *KeyActions
	colorer  model1.ColorerFunc
	cols     []int
	view     TableView
	mx       sync.RWMutex
}

// NewTable returns a new table instance.
func NewTable(resource string) *Table {
	return &Table{
		Table:    tview.NewTable(),
		resource: resource,
		actions:  NewKeyActions(),
		colorer:  model1.DefaultColorer,
	}
}

// Init initializes the table component.
func (t *Table) Init(context.Context) error {
	t.SetFixed(1, 0)
	t.SetBorder(true)
	t.SetBorderAttributes(tcell.AttrBold)
	t.SetBorderPadding(0, 0, 1, 1)
	t.SetSelectable(true, false)
	t.SetBackgroundColor(tcell.ColorDefault)
	t.SetBorderColor(tcell.ColorWhite)
	t.SetTitle(fmt.Sprintf(TableTitleFmt, t.resource, 0, 0))
	t.ShowMessage("Loading...", tcell.ColorGray)
	t.SetInputCapture(t.keyboard)

	return nil
}

// Actions returns the key actions.
func (t *Table) Actions() *KeyActions {
	return t.actions
}

// Hints returns menu hints for key bindings.
func (t *Table) Hints() MenuHints {
	return t.actions.Hints()
}

// SetColorerFn sets the row colorer.
func (t *Table) SetColorerFn(f model1.ColorerFunc) {
	t.mx.Lock()
	defer t.mx.Unlock()

	if f != nil {
		t.colorer = f
	}
}

// keyboard handles table keyboard input.
func (t *Table) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	row, col := t.GetSelection()
	rowCount := t.GetRowCount()

	if evt.Key() == tcell.KeyRune {
		switch evt.Rune() {
		case 'j':
			if row < rowCount-1 {
				t.Select(row+1, col)
			}
			return nil
		case 'k':
			if row > 1 {
				t.Select(row-1, col)
			}
			return nil
		case 'g':
			if rowCount > 1 {
				t.Select(1, col)
			}
			return nil
		case 'G':
			if rowCount > 1 {
				t.Select(rowCount-1, col)
			}
			return nil
		}
	}

	if e, ok := t.actions.Dispatch(evt); ok {
		return e
	}

	return evt
}

// ShowMessage replaces the rows with a centered message.
func (t *Table) ShowMessage(msg string, color tcell.Color) {
	t.Clear()
	cell := tview.NewTableCell(msg)
	cell.SetTextColor(color)
	cell.SetAlign(tview.AlignCenter)
	cell.SetSelectable(false)
	cell.SetExpansion(1)
	t.SetCell(0, 0, cell)
}

// ShowError shows a load failure.
func (t *Table) ShowError(err error) {
	t.ShowMessage(err.Error(), tcell.ColorRed)
	t.SetTitle(fmt.Sprintf(" <%s>[error] ", t.resource))
}

// Update redraws the table for a new view. The cursor stays on the same
// row index when possible.
func (t *Table) Update(v TableView) {
	t.mx.Lock()
	t.view = v
	t.cols = visibleColumns(v.Header)
	colorer := t.colorer
	t.mx.Unlock()

	row, _ := t.GetSelection()
	t.Clear()
	t.updateTitle(v)

	if len(v.Result.Page) == 0 {
		msg := "No records found"
		if v.Result.Total > 0 {
			msg = "No matching records"
		}
		t.buildHeader(v)
		noData := tview.NewTableCell(msg)
		noData.SetTextColor(tcell.ColorGray)
		noData.SetSelectable(false)
		t.SetCell(1, 0, noData)
		return
	}

	t.buildHeader(v)
	for i, r := range v.Result.Page {
		t.buildRow(v, colorer, r, i+1)
	}

	row = max(1, min(row, len(v.Result.Page)))
	t.Select(row, 0)
}

func visibleColumns(h model1.Header) []int {
	cols := make([]int, 0, len(h))
	for i, c := range h {
		if c.Hide {
			continue
		}
		cols = append(cols, i)
	}
	return cols
}

func (t *Table) updateTitle(v TableView) {
	title := fmt.Sprintf(TableTitleFmt, t.resource, len(v.Result.Rows), v.Result.Total)
	if pc := v.Result.PageCount; pc > 1 {
		title += fmt.Sprintf("[page %d/%d] ", v.Result.PageState.Index+1, pc)
	}
	if v.Search != "" {
		title += fmt.Sprintf("</%s> ", v.Search)
	}
	if v.Selection != nil && v.Selection.Count() > 0 {
		title += fmt.Sprintf("[%d selected] ", v.Selection.Count())
	}
	t.SetTitle(title)
}

// buildHeader builds the table header row.
func (t *Table) buildHeader(v TableView) {
	pageIDs := v.Result.Page.IDs()
	for col, idx := range t.cols {
		h := v.Header[idx]
		label := strings.ToUpper(h.Title())
		switch h.Renderer {
		case model1.RenderSelection:
			label = checkOff
			if v.Selection != nil && v.Selection.AllSelected(pageIDs) {
				label = checkOn
			}
		case model1.RenderActions:
			label = "ACTIONS"
		}
		if v.Sort.Column == h.Name {
			if v.Sort.Asc {
				label += sortAsc
			} else {
				label += sortDesc
			}
		}

		cell := tview.NewTableCell(label)
		cell.SetTextColor(tcell.ColorYellow)
		cell.SetBackgroundColor(tcell.ColorDefault)
		cell.SetAlign(h.Align)
		cell.SetExpansion(1)
		cell.SetSelectable(false)
		if v.Sort.Column == h.Name {
			cell.SetAttributes(tcell.AttrBold)
		}
		t.SetCell(0, col, cell)
	}
}

// buildRow builds a single data row.
func (t *Table) buildRow(v TableView, colorer model1.ColorerFunc, r model1.Row, rowIdx int) {
	re, ok := v.Events.Get(r.ID)
	if !ok {
		re = model1.NewRowEvent(model1.EventUnchanged, r)
	}
	fg := tcell.Color(colorer(v.Header, &re))
	selected := v.Selection != nil && v.Selection.IsSelected(r.ID)

	for col, idx := range t.cols {
		h := v.Header[idx]
		text := r.Value(idx)
		switch h.Renderer {
		case model1.RenderSelection:
			text = checkOff
			if selected {
				text = checkOn
			}
		case model1.RenderActions:
			text = "v e ^d"
		default:
			if h.Decorator != nil {
				text = h.Decorator(text)
			}
		}

		cell := tview.NewTableCell(text)
		cell.SetTextColor(fg)
		if selected {
			cell.SetTextColor(tcell.Color(model1.SelectColor))
		}
		if re.Deltas.Changed(idx) {
			cell.SetAttributes(tcell.AttrBold)
		}
		cell.SetBackgroundColor(tcell.ColorDefault)
		cell.SetAlign(h.Align)
		cell.SetExpansion(1)
		if col == 0 {
			cell.SetReference(r.ID)
		}
		t.SetCell(rowIdx, col, cell)
	}
}

// SelectedID returns the id of the row under the cursor.
func (t *Table) SelectedID() string {
	row, _ := t.GetSelection()
	if row <= 0 {
		return ""
	}
	cell := t.GetCell(row, 0)
	if cell == nil {
		return ""
	}
	id, _ := cell.GetReference().(string)
	return id
}

// PageIDs returns the ids of the rows on screen.
func (t *Table) PageIDs() []string {
	t.mx.RLock()
	defer t.mx.RUnlock()

	return t.view.Result.Page.IDs()
}

// View returns the view last drawn.
func (t *Table) View() TableView {
	t.mx.RLock()
	defer t.mx.RUnlock()

	return t.view
}
