package model

import (
	"github.com/vdash/vdash/internal/model1"
)

// ViewState owns the filter, sort, page and selection state of one list
// view. It is reset to its defaults on remount and is only mutated by
// user actions; reloads merely prune the selection and clamp the page.
// ViewState is not safe for concurrent use.
type ViewState struct {
	filter    model1.FilterState
	sort      model1.SortState
	page      model1.PageState
	selection *model1.Selection
	tabField  string
	defSort   model1.SortState
	defSize   int
	deriver   model1.Deriver
}

// NewViewState returns a view state with the given defaults. tabField
// names the status column driving the tabs, if any.
func NewViewState(pageSize int, sort model1.SortState, tabField string) *ViewState {
	v := ViewState{tabField: tabField, defSort: sort, defSize: pageSize}
	v.Reset()

	return &v
}

// Reset restores the defaults.
func (v *ViewState) Reset() {
	v.filter = model1.NewFilterState()
	v.sort = v.defSort
	v.page = model1.NewPageState(v.defSize)
	v.selection = model1.NewSelection()
	v.deriver.Invalidate()
}

// Query returns the engine inputs.
func (v *ViewState) Query() model1.Query {
	return model1.Query{Filter: v.filter, Sort: v.sort, Page: v.page}
}

// Derive returns the visible rows of data, memoized on the data version
// and the query. The page index follows any clamping.
func (v *ViewState) Derive(data *model1.TableData) model1.Result {
	res := v.deriver.Derive(data, v.Query())
	v.page = res.PageState

	return res
}

// Reload prunes the selection down to the ids of the new row store.
func (v *ViewState) Reload(data *model1.TableData) {
	v.selection.Prune(data.IDs())
}

// Filter returns a copy of the current filter.
func (v *ViewState) Filter() model1.FilterState {
	return v.filter.Clone()
}

// SetGlobal changes the global search text and returns to the first page.
func (v *ViewState) SetGlobal(s string) {
	v.filter.SetGlobal(s)
	v.firstPage()
}

// Global returns the global search text.
func (v *ViewState) Global() string {
	return v.filter.Global()
}

// SetFilter installs a field predicate and returns to the first page.
func (v *ViewState) SetFilter(field string, p model1.Predicate) {
	v.filter.Set(field, p)
	v.firstPage()
}

// ApplyFilter installs a field filter expression, see ParseFilter, and
// returns to the first page.
func (v *ViewState) ApplyFilter(h model1.Header, expr string) error {
	if err := ApplyFilter(&v.filter, h, expr); err != nil {
		return err
	}
	v.firstPage()

	return nil
}

// ClearFilters drops every predicate, including the global text and the
// active tab.
func (v *ViewState) ClearFilters() {
	v.filter.Reset()
	v.firstPage()
}

// SelectTab activates a status tab.
func (v *ViewState) SelectTab(tab string) {
	if v.tabField == "" {
		return
	}
	v.filter.SelectTab(v.tabField, tab)
	v.firstPage()
}

// ActiveTab returns the active status tab.
func (v *ViewState) ActiveTab() string {
	if v.tabField == "" {
		return model1.AllTab
	}
	return v.filter.ActiveTab(v.tabField)
}

// TabField returns the status column driving the tabs.
func (v *ViewState) TabField() string {
	return v.tabField
}

// Tabs derives the tabs over the unfiltered row store.
func (v *ViewState) Tabs(data *model1.TableData) model1.Tabs {
	if v.tabField == "" {
		return nil
	}
	return model1.DeriveTabs(data.Header(), data.Rows(), v.tabField)
}

// Sort returns the sort state.
func (v *ViewState) Sort() model1.SortState {
	return v.sort
}

// CycleSort advances the sort on col: ascending, descending, none.
func (v *ViewState) CycleSort(col string) {
	v.sort = v.sort.Cycle(col)
	v.firstPage()
}

// Page returns the page state.
func (v *ViewState) Page() model1.PageState {
	return v.page
}

// NextPage moves forward. Derive clamps past the last page.
func (v *ViewState) NextPage() {
	v.page = v.page.Next()
}

// PrevPage moves back.
func (v *ViewState) PrevPage() {
	v.page = v.page.Prev()
}

// GotoPage jumps to page index i.
func (v *ViewState) GotoPage(i int) {
	v.page.Index = max(0, i)
}

// SetPageSize changes the page size and returns to the first page.
func (v *ViewState) SetPageSize(n int) {
	v.page = v.page.WithSize(n)
}

// Selection returns the selection tracker.
func (v *ViewState) Selection() *model1.Selection {
	return v.selection
}

func (v *ViewState) firstPage() {
	v.page.Index = 0
}
