// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of vdash

package view

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
	"github.com/rs/zerolog/log"

	"github.com/vdash/vdash/internal/config/data"
	"github.com/vdash/vdash/internal/dao"
	"github.com/vdash/vdash/internal/model"
	"github.com/vdash/vdash/internal/model1"
	"github.com/vdash/vdash/internal/ui"
)

const loadTimeout = 30 * time.Second

// RedrawFunc is called on the event loop after the list was redrawn.
type RedrawFunc func(data *model1.TableData, res model1.Result)

// Searcher is a view that honors the global search bar.
type Searcher interface {
	SetSearch(string)
}

// Browser lists the records of one resource over a view state.
type Browser struct {
	*tview.Flex

	app        *App
	rid        *dao.ResourceID
	table      *ui.Table
	model      *model.TableData
	state      *model.ViewState
	settings   data.View
	tabField   string
	tabBar     *ui.TabBar
	header     tview.Primitive
	headerSize int
	sortKeys   map[tcell.Key]string
	deletedMsg string
	redrawFns  []RedrawFunc
	cancelFn   context.CancelFunc
}

// NewBrowser returns a list of rid. A non-empty tabField shows status
// tabs over that column.
func NewBrowser(app *App, rid *dao.ResourceID, tabField string) *Browser {
	b := Browser{
		Flex:       tview.NewFlex().SetDirection(tview.FlexRow),
		app:        app,
		rid:        rid,
		table:      ui.NewTable(rid.Resource),
		model:      model.NewTableData(rid, app.RefreshRate()),
		tabField:   tabField,
		sortKeys:   make(map[tcell.Key]string),
		deletedMsg: "Deleted successfully",
	}
	if tabField != "" {
		b.tabBar = ui.NewTabBar()
	}

	return &b
}

// Init wires the model and lays out the view.
func (b *Browser) Init(ctx context.Context) error {
	if err := b.table.Init(ctx); err != nil {
		return err
	}
	b.settings = b.app.ViewSettings(b.rid.Resource)
	b.model.SetHidden(b.settings.Hidden)
	if err := b.model.Init(b.app.factory); err != nil {
		return err
	}
	b.table.SetColorerFn(b.model.Renderer().ColorerFunc())

	sort, err := b.settings.SortState()
	if err != nil {
		log.Warn().Err(err).Str("resource", b.rid.String()).Msg("Ignoring sort setting")
	}
	b.state = model.NewViewState(b.settings.PageSize, sort, b.tabField)

	if b.header != nil {
		b.AddItem(b.header, b.headerSize, 0, false)
	}
	if b.tabBar != nil {
		b.AddItem(b.tabBar, 1, 0, false)
	}
	b.AddItem(b.table, 0, 1, true)
	b.bindKeys()

	return nil
}

// Start watches the resource.
func (b *Browser) Start() {
	b.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	b.cancelFn = cancel
	b.model.AddListener(b)
	if err := b.model.Watch(ctx); err != nil {
		b.app.Notify(err.Error(), model.SeverityError)
	}
}

// Stop stops watching.
func (b *Browser) Stop() {
	if b.cancelFn == nil {
		return
	}
	b.cancelFn()
	b.cancelFn = nil
	b.model.RemoveListener(b)
	b.model.Stop()
}

// Name returns the resource name.
func (b *Browser) Name() string {
	return b.rid.Resource
}

// Hints returns the key hints.
func (b *Browser) Hints() ui.MenuHints {
	return b.table.Hints()
}

// Actions returns the list key bindings.
func (b *Browser) Actions() *ui.KeyActions {
	return b.table.Actions()
}

// Table returns the list table.
func (b *Browser) Table() *ui.Table {
	return b.table
}

// State returns the view state.
func (b *Browser) State() *model.ViewState {
	return b.state
}

// Model returns the loading model.
func (b *Browser) Model() *model.TableData {
	return b.model
}

// SetHeader shows p above the list. Call before Init.
func (b *Browser) SetHeader(p tview.Primitive, size int) {
	b.header, b.headerSize = p, size
}

// AddRedrawFn registers a hook run after each redraw.
func (b *Browser) AddRedrawFn(fn RedrawFunc) {
	b.redrawFns = append(b.redrawFns, fn)
}

// SetDeletedMsg sets the notification shown after a delete.
func (b *Browser) SetDeletedMsg(msg string) {
	b.deletedMsg = msg
}

// SetSearch changes the global search text.
func (b *Browser) SetSearch(s string) {
	if b.state == nil || b.state.Global() == s {
		return
	}
	b.state.SetGlobal(s)
	b.redraw()
}

// TableNoData notifies the load returned no records.
func (b *Browser) TableNoData(data *model1.TableData) {
	b.app.QueueUpdateDraw(func() { b.reload(data) })
}

// TableDataChanged notifies a load completed.
func (b *Browser) TableDataChanged(data *model1.TableData) {
	b.app.QueueUpdateDraw(func() { b.reload(data) })
}

// TableLoadFailed notifies the load failed.
func (b *Browser) TableLoadFailed(err error) {
	b.app.Notify(err.Error(), model.SeverityError)
	b.app.QueueUpdateDraw(func() { b.table.ShowError(err) })
}

func (b *Browser) reload(data *model1.TableData) {
	b.state.Reload(data)
	b.redraw()
}

func (b *Browser) redraw() {
	data := b.model.Peek()
	res := b.state.Derive(data)
	b.table.Update(ui.TableView{
		Header:    data.Header(),
		Result:    res,
		Sort:      b.state.Sort(),
		Selection: b.state.Selection(),
		Search:    b.state.Global(),
		Events:    data.RowEvents(),
	})
	if b.tabBar != nil {
		b.tabBar.Update(b.state.Tabs(data), b.state.ActiveTab())
	}
	for _, fn := range b.redrawFns {
		fn(data, res)
	}
}

func (b *Browser) bindKeys() {
	aa := b.table.Actions()
	aa.Bulk(ui.KeyMap{
		ui.KeySpace:            ui.NewKeyAction("Select", b.toggleCmd, true),
		tcell.KeyCtrlSpace:     ui.NewKeyAction("Select Page", b.togglePageCmd, true),
		tcell.KeyCtrlBackslash: ui.NewKeyAction("Clear Selection", b.clearSelectionCmd, false),
		ui.KeyLeftSquare:       ui.NewKeyAction("Prev Page", b.prevPageCmd, true),
		ui.KeyRightSquare:      ui.NewKeyAction("Next Page", b.nextPageCmd, true),
		ui.KeyP:                ui.NewKeyAction("Page Size", b.pageSizeCmd, false),
		ui.KeyF:                ui.NewKeyAction("Filter", b.filterCmd, true),
		ui.KeyX:                ui.NewKeyAction("Clear Filters", b.clearFiltersCmd, false),
		ui.KeyR:                ui.NewKeyAction("Refresh", b.refreshCmd, true),
		tcell.KeyCtrlE:         ui.NewKeyAction("Export", b.exportCmd, true),
		tcell.KeyEnter:         ui.NewKeyAction("View", b.viewCmd, false),
	})
	b.bindRecordActions(aa)
	b.bindSortKeys(aa)
	if b.tabBar != nil {
		for n := range ui.MaxTabKeys {
			aa.Add(ui.Key0+tcell.Key(n), ui.NewKeyAction(fmt.Sprintf("Tab %d", n), b.tabCmd(n), false))
		}
	}
}

// bindRecordActions binds the registered record actions.
func (b *Browser) bindRecordActions(aa *ui.KeyActions) {
	for _, act := range ui.GetActions(b.rid, b.app.ReadOnly()) {
		handler := b.routeCmd(act.Route)
		if act.Dangerous {
			handler = b.deleteCmd
		}
		aa.Add(act.Key, ui.NewKeyAction(act.Name, handler, true))
	}
}

// bindSortKeys binds shift-letters to the sortable columns.
func (b *Browser) bindSortKeys(aa *ui.KeyActions) {
	h := b.model.Renderer().Header()
	if b.settings.Hidden != nil {
		h = h.WithHidden(b.settings.Hidden...)
	}
	for k, col := range SortKeys(h) {
		b.sortKeys[k] = col
		aa.Add(k, ui.NewKeyAction("Sort "+col, b.sortCmd(col), false))
	}
}

// SortKeys assigns an uppercase letter to every visible sortable column,
// preferring the letters of its title. G stays bound to the bottom row.
func SortKeys(h model1.Header) map[tcell.Key]string {
	kk := make(map[tcell.Key]string)
	used := map[rune]bool{'G': true}
	for _, c := range h {
		if !c.Sortable || c.Hide || c.IsVirtual() {
			continue
		}
		for _, r := range strings.ToUpper(c.Title()) {
			if !unicode.IsUpper(r) || r > 'Z' || used[r] {
				continue
			}
			used[r] = true
			kk[tcell.Key(r)] = c.Name
			break
		}
	}

	return kk
}

func (b *Browser) toggleCmd(*tcell.EventKey) *tcell.EventKey {
	if id := b.table.SelectedID(); id != "" {
		b.state.Selection().Toggle(id)
		b.redraw()
	}
	return nil
}

func (b *Browser) togglePageCmd(*tcell.EventKey) *tcell.EventKey {
	b.state.Selection().ToggleAll(b.table.PageIDs())
	b.redraw()
	return nil
}

func (b *Browser) clearSelectionCmd(*tcell.EventKey) *tcell.EventKey {
	b.state.Selection().Clear()
	b.redraw()
	return nil
}

func (b *Browser) prevPageCmd(*tcell.EventKey) *tcell.EventKey {
	b.state.PrevPage()
	b.redraw()
	return nil
}

func (b *Browser) nextPageCmd(*tcell.EventKey) *tcell.EventKey {
	b.state.NextPage()
	b.redraw()
	return nil
}

// pageSizeCmd cycles through the offered page sizes.
func (b *Browser) pageSizeCmd(*tcell.EventKey) *tcell.EventKey {
	size := b.state.Page().Size
	next := model1.PageSizes[0]
	for i, s := range model1.PageSizes {
		if s == size && i+1 < len(model1.PageSizes) {
			next = model1.PageSizes[i+1]
		}
	}
	b.state.SetPageSize(next)
	b.redraw()
	b.app.Notify(fmt.Sprintf("Showing %d rows per page", next), model.SeverityInfo)
	return nil
}

func (b *Browser) sortCmd(col string) ui.ActionHandler {
	return func(*tcell.EventKey) *tcell.EventKey {
		b.state.CycleSort(col)
		b.redraw()
		return nil
	}
}

func (b *Browser) tabCmd(n int) ui.ActionHandler {
	return func(evt *tcell.EventKey) *tcell.EventKey {
		tab, ok := b.tabBar.TabAt(n)
		if !ok {
			return evt
		}
		b.state.SelectTab(tab)
		b.redraw()
		return nil
	}
}

func (b *Browser) filterCmd(*tcell.EventKey) *tcell.EventKey {
	b.app.prompt("Filter>", "status=Paid  date=2024-01-01..2024-03-31  name~shar", func(expr string) {
		if err := b.ApplyFilter(expr); err != nil {
			b.app.Notify(err.Error(), model.SeverityError)
		}
	})
	return nil
}

// ApplyFilter installs a field filter expression. A blank expression
// clears every filter.
func (b *Browser) ApplyFilter(expr string) error {
	if strings.TrimSpace(expr) == "" {
		b.state.ClearFilters()
		b.redraw()
		return nil
	}
	if err := b.state.ApplyFilter(b.model.Header(), expr); err != nil {
		return err
	}
	b.redraw()

	return nil
}

func (b *Browser) clearFiltersCmd(*tcell.EventKey) *tcell.EventKey {
	b.state.ClearFilters()
	b.app.ClearSearch()
	b.redraw()
	return nil
}

func (b *Browser) refreshCmd(*tcell.EventKey) *tcell.EventKey {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		if err := b.model.Refresh(ctx); err != nil {
			log.Warn().Err(err).Str("resource", b.rid.String()).Msg("Refresh failed")
		}
	}()
	return nil
}

// exportCmd exports every filtered row, not only the current page.
func (b *Browser) exportCmd(*tcell.EventKey) *tcell.EventKey {
	data := b.model.Peek()
	res := b.state.Derive(data)
	bb, err := model1.ExportBytes(data.Header(), res.Rows)
	if err != nil {
		b.app.Notify(fmt.Sprintf("Export failed: %s", err), model.SeverityError)
		return nil
	}
	go func() {
		where, err := b.app.Export(model1.ExportName(b.rid.Resource), bb)
		if err != nil {
			b.app.Notify(fmt.Sprintf("Export failed: %s", err), model.SeverityError)
			return
		}
		log.Info().Str("resource", b.rid.String()).Int("count", len(res.Rows)).Str("to", where).Msg("Exported")
		b.app.Notify(fmt.Sprintf("Exported %d rows to %s", len(res.Rows), where), model.SeveritySuccess)
	}()

	return nil
}

func (b *Browser) viewCmd(evt *tcell.EventKey) *tcell.EventKey {
	return b.routeCmd(model.ActionDetails)(evt)
}

func (b *Browser) routeCmd(action string) ui.ActionHandler {
	return func(*tcell.EventKey) *tcell.EventKey {
		id := b.table.SelectedID()
		if id == "" {
			return nil
		}
		if err := b.app.Navigate(model.RecordRoute(b.rid.Resource, action, id)); err != nil {
			log.Warn().Err(err).Str("id", id).Msg("Navigation failed")
		}
		return nil
	}
}

// deleteTargets returns the selected ids, or the row under the cursor.
func (b *Browser) deleteTargets() []string {
	if ids := b.state.Selection().IDs(); len(ids) > 0 {
		return ids
	}
	if id := b.table.SelectedID(); id != "" {
		return []string{id}
	}
	return nil
}

// DeletePrompt returns the confirmation message for deleting ids.
func DeletePrompt(resource string, ids []string) string {
	if len(ids) == 1 {
		return fmt.Sprintf("Delete %s %s?", resource, ids[0])
	}
	return fmt.Sprintf("Delete %d %ss?", len(ids), resource)
}

// RetryTargets returns the records a failed delete left behind.
func RetryTargets(err error) []string {
	var de *model.DeleteError
	if !errors.As(err, &de) {
		return nil
	}
	return de.IDs
}

// RetryDeletePrompt asks again after a failed delete of ids.
func RetryDeletePrompt(resource string, ids []string) string {
	return "Delete failed. Retry? " + DeletePrompt(resource, ids)
}

func (b *Browser) deleteCmd(*tcell.EventKey) *tcell.EventKey {
	ids := b.deleteTargets()
	if len(ids) == 0 {
		return nil
	}
	b.app.confirm(DeletePrompt(b.rid.Resource, ids), func() {
		go b.delete(ids)
	})

	return nil
}

func (b *Browser) delete(ids []string) {
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()

	if err := b.model.Delete(ctx, ids...); err != nil {
		b.app.Notify(fmt.Sprintf("Delete failed: %s", err), model.SeverityError)
		if retry := RetryTargets(err); len(retry) > 0 {
			b.app.QueueUpdateDraw(func() {
				b.app.confirm(RetryDeletePrompt(b.rid.Resource, retry), func() {
					go b.delete(retry)
				})
			})
		}
		return
	}
	log.Info().Str("resource", b.rid.String()).Strs("id", ids).Msg("Deleted")
	b.app.Notify(b.deletedMsg, model.SeveritySuccess)
}
