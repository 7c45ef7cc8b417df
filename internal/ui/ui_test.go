package ui

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vdash/vdash/internal/dao"
	"github.com/vdash/vdash/internal/model"
	"github.com/vdash/vdash/internal/model1"
)

func testHeader() model1.Header {
	return model1.Header{
		{Name: "selection", Attrs: model1.Attrs{Renderer: model1.RenderSelection}},
		{Name: "id", Label: "Invoice Id", Attrs: model1.Attrs{Kind: model1.KindNumber, Sortable: true}},
		{Name: "email", Attrs: model1.Attrs{Hide: true}},
		{Name: "amount", Attrs: model1.Attrs{Kind: model1.KindNumber, Decorator: func(s string) string { return "₹" + s }}},
		{Name: "status", Attrs: model1.Attrs{Filterable: true}},
	}
}

func testRows() model1.Rows {
	return model1.Rows{
		{ID: "1", Fields: model1.Fields{"", "1", "a@x.io", "100", "Paid"}},
		{ID: "2", Fields: model1.Fields{"", "2", "b@x.io", "250", "Unpaid"}},
		{ID: "3", Fields: model1.Fields{"", "3", "c@x.io", "75", "Paid"}},
	}
}

func TestKeyActions(t *testing.T) {
	var hits int
	aa := NewKeyActions()
	aa.Bulk(KeyMap{
		KeyR:           NewKeyAction("Refresh", func(*tcell.EventKey) *tcell.EventKey { hits++; return nil }, true),
		tcell.KeyCtrlD: NewKeyAction("Delete", nil, true),
		KeyQ:           NewKeyAction("Quit", nil, false),
	})

	evt, ok := aa.Dispatch(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone))
	assert.True(t, ok)
	assert.Nil(t, evt)
	assert.Equal(t, 1, hits)

	in := tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone)
	evt, ok = aa.Dispatch(in)
	assert.False(t, ok)
	assert.Equal(t, in, evt)

	aa.Delete(KeyQ)
	assert.Equal(t, 2, aa.Len())
	hh := aa.Hints()
	require.Len(t, hh, 2)
	assert.Equal(t, "Ctrl-D", hh[0].Mnemonic)
	assert.Equal(t, MenuHint{Mnemonic: "r", Description: "Refresh", Visible: true}, hh[1])
}

func TestParseKey(t *testing.T) {
	uu := map[string]struct {
		s   string
		key tcell.Key
		err bool
	}{
		"rune":    {s: "x", key: KeyX},
		"shift":   {s: "Shift-a", key: tcell.Key('A')},
		"ctrl":    {s: "ctrl-e", key: tcell.KeyCtrlE},
		"space":   {s: "space", key: KeySpace},
		"unknown": {s: "Hyper-1", err: true},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			key, err := ParseKey(u.s)
			if u.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, u.key, key)
		})
	}
}

func TestTableUpdate(t *testing.T) {
	tv := NewTable("invoice")
	require.NoError(t, tv.Init(context.Background()))

	h := testHeader()
	sel := model1.NewSelection("1", "2", "3")
	sel.Toggle("2")
	q := model1.Query{Sort: model1.SortState{Column: "id"}, Page: model1.NewPageState(2)}
	res := model1.Derive(h, testRows(), q)

	tv.Update(TableView{Header: h, Result: res, Sort: q.Sort, Selection: sel, Search: "x"})

	// selection, id, amount, status; email is hidden.
	assert.Equal(t, 4, tv.GetColumnCount())
	assert.Equal(t, 3, tv.GetRowCount())
	assert.Equal(t, "INVOICE ID ▼", tv.GetCell(0, 1).Text)
	assert.Equal(t, "3", tv.GetCell(1, 1).Text)
	assert.Equal(t, "₹75", tv.GetCell(1, 2).Text)
	assert.Equal(t, checkOn, tv.GetCell(2, 0).Text)
	assert.Equal(t, checkOff, tv.GetCell(1, 0).Text)
	assert.Equal(t, []string{"3", "2"}, tv.PageIDs())
	assert.Equal(t, "3", tv.SelectedID())
	assert.Equal(t, " <invoice>[3/3] [page 1/2] </x> [1 selected] ", tv.GetTitle())
}

func TestTableUpdateEmpty(t *testing.T) {
	tv := NewTable("invoice")
	require.NoError(t, tv.Init(context.Background()))

	h := testHeader()
	f := model1.NewFilterState()
	f.SetGlobal("nothing matches")
	res := model1.Derive(h, testRows(), model1.Query{Filter: f, Page: model1.NewPageState(5)})
	tv.Update(TableView{Header: h, Result: res})

	assert.Equal(t, "No matching records", tv.GetCell(1, 0).Text)
	assert.Empty(t, tv.SelectedID())
}

func TestTabs(t *testing.T) {
	tabs := model1.DeriveTabs(testHeader(), testRows(), "status")

	uu := map[string]struct {
		n   int
		tab string
		ok  bool
	}{
		"all":      {n: 0, tab: model1.AllTab, ok: true},
		"first":    {n: 1, tab: "Paid", ok: true},
		"second":   {n: 2, tab: "Unpaid", ok: true},
		"missing":  {n: 3},
		"negative": {n: -1},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			tab, ok := TabForKey(tabs, u.n)
			assert.Equal(t, u.ok, ok)
			assert.Equal(t, u.tab, tab)
		})
	}

	bar := NewTabBar()
	bar.Update(tabs, "Paid")
	line := Tabline(tabs, "Paid")
	assert.Contains(t, line, "<1> Paid 2")
	assert.Contains(t, line, "<2> Unpaid")
	tab, ok := bar.TabAt(2)
	assert.True(t, ok)
	assert.Equal(t, "Unpaid", tab)
}

func TestActionRegistry(t *testing.T) {
	rid := dao.InvoiceRID

	assert.Len(t, GetActions(&rid, false), 3)
	ro := GetActions(&rid, true)
	require.Len(t, ro, 1)
	assert.Equal(t, model.ActionDetails, ro[0].Route)

	a := GetAction(&rid, tcell.KeyCtrlD, false)
	require.NotNil(t, a)
	assert.True(t, a.Dangerous)
	assert.Nil(t, GetAction(&rid, tcell.KeyCtrlD, true))
	assert.Nil(t, GetActions(nil, false))
}

type testComponent struct {
	*tview.Box
	name    string
	stopped int
}

func newTestComponent(name string) *testComponent {
	return &testComponent{Box: tview.NewBox(), name: name}
}

func (c *testComponent) Name() string {
	return c.name
}

func (c *testComponent) Init(context.Context) error {
	return nil
}

func (c *testComponent) Start() {}

func (c *testComponent) Stop() {
	c.stopped++
}

func (c *testComponent) Hints() MenuHints {
	return MenuHints{{Mnemonic: "x", Description: c.name, Visible: true}}
}

func TestPages(t *testing.T) {
	p := NewPages()
	crumbs := NewCrumbs(p.Stack)
	p.AddListener(crumbs)

	c1, c2 := newTestComponent("invoice"), newTestComponent("details")
	p.Push(c1)
	p.Push(c2)

	assert.Equal(t, c2, p.Current())
	assert.Equal(t, 1, c1.stopped)
	name, _ := p.GetFrontPage()
	assert.Equal(t, componentID(c2), name)
	assert.Contains(t, crumbs.GetText(true), "<details>")

	p.Pop()
	assert.Equal(t, c1, p.Current())
	assert.False(t, p.HasPage(componentID(c2)))
	assert.NotContains(t, crumbs.GetText(true), "<details>")
}

func TestHistory(t *testing.T) {
	h := NewHistory(2)
	h.Push("inv")
	h.Push(" ")
	h.Push("cust")
	h.Push("inv")
	h.Push("dash")

	assert.Equal(t, 2, h.Len())
	e, ok := h.At(0)
	assert.True(t, ok)
	assert.Equal(t, "dash", e)
	e, _ = h.At(1)
	assert.Equal(t, "inv", e)
	_, ok = h.At(2)
	assert.False(t, ok)
}

func TestCmdBarCommand(t *testing.T) {
	var got string
	c := NewCmdBar()
	c.SetCommands([]string{"invoice", "inv", "cust", "invoices", "inv"})
	c.SetCommandFn(func(s string) { got = s })

	assert.Equal(t, []string{"inv", "invoice", "invoices"}, c.Suggestions("in"))
	assert.Empty(t, c.Suggestions(""))

	c.Activate(ModeCommand)
	assert.True(t, c.IsActive())
	for _, r := range "invo" {
		c.keyboard(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
	assert.Equal(t, "invoice", c.Suggestion())
	c.keyboard(tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone))
	assert.Equal(t, "invoice", c.GetText())
	c.keyboard(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))

	assert.Equal(t, ":invoice", got)
	assert.False(t, c.IsActive())
	assert.Equal(t, ModeNormal, c.Mode())

	c.Activate(ModeCommand)
	c.keyboard(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone))
	assert.Equal(t, "invoice", c.GetText())
}

func TestCmdBarSearch(t *testing.T) {
	var (
		search    []string
		cancelled bool
	)
	c := NewCmdBar()
	c.SetFilterFn(func(s string) { search = append(search, s) })
	c.SetCancelFn(func() { cancelled = true })

	c.Activate(ModeSearch)
	c.keyboard(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone))
	c.keyboard(tcell.NewEventKey(tcell.KeyRune, 'c', tcell.ModNone))
	c.keyboard(tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone))
	assert.Equal(t, []string{"a", "ac", "a"}, search)

	c.keyboard(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	assert.Equal(t, "a", c.GetFilterText())
	assert.Equal(t, 1, c.History(ModeSearch).Len())

	c.Activate(ModeSearch)
	c.keyboard(tcell.NewEventKey(tcell.KeyEsc, 0, tcell.ModNone))
	assert.True(t, cancelled)

	c.ClearFilter()
	assert.Empty(t, c.GetFilterText())
	assert.Equal(t, "", search[len(search)-1])
}

func TestConfirm(t *testing.T) {
	uu := map[string]struct {
		button      int
		ack, cancel int
		confirmed   bool
	}{
		"yes":    {button: 0, ack: 1, confirmed: true},
		"no":     {button: 1, cancel: 1},
		"escape": {button: -1, cancel: 1},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			var ack, cancel int
			p := NewPages()
			c := ShowConfirm(p, "Delete invoice 3?", func() { ack++ }, func() { cancel++ })
			assert.True(t, p.HasOverlay())

			c.done(u.button, "")
			assert.Equal(t, u.ack, ack)
			assert.Equal(t, u.cancel, cancel)
			assert.Equal(t, u.confirmed, c.IsConfirmed())
			assert.False(t, p.HasPage(confirmPageID))
		})
	}
}

func TestMenuHydrate(t *testing.T) {
	m := NewMenu()
	hh := MenuHints{
		{Mnemonic: "r", Description: "Refresh", Visible: true},
		{Mnemonic: "2", Description: "Paid", Visible: true},
		{Mnemonic: "q", Description: "Quit", Visible: false},
		{Mnemonic: "0", Description: "All", Visible: true},
		{Mnemonic: "e", Description: "Edit", Visible: true},
	}
	for i := range 6 {
		hh = append(hh, MenuHint{Mnemonic: KeyName(KeyA), Description: fmt.Sprintf("Z%d", i), Visible: true})
	}
	m.HydrateMenu(hh)

	assert.Equal(t, menuRows, m.GetRowCount())
	assert.Equal(t, 2, m.GetColumnCount())
	assert.Contains(t, m.GetCell(0, 0).Text, "<0>")
	assert.Contains(t, m.GetCell(1, 0).Text, "<2>")
	assert.Contains(t, m.GetCell(2, 0).Text, "Edit")
	assert.Contains(t, m.GetCell(3, 0).Text, "Refresh")
	assert.Contains(t, m.GetCell(0, 1).Text, "Z2")

	m.StackPopped(nil, nil)
	assert.Equal(t, 0, m.GetRowCount())
}

func TestCrumbsRefresh(t *testing.T) {
	c := NewCrumbs(model.NewStack())
	c.Refresh([]string{"Dash Board", "invoice", "b", "c", "d", "details"})

	txt := strings.TrimSpace(c.GetText(true))
	assert.True(t, strings.HasPrefix(txt, "…"))
	assert.NotContains(t, txt, "<dashboard>")
	assert.Contains(t, txt, "<invoice>")
	assert.True(t, strings.HasSuffix(txt, "<details>"))

	c.Refresh([]string{"Dash Board"})
	assert.Equal(t, "<dashboard>", strings.TrimSpace(c.GetText(true)))
}
