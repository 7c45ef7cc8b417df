package view

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/derailed/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vdash/vdash/internal/config"
	"github.com/vdash/vdash/internal/dao"
	"github.com/vdash/vdash/internal/model"
	"github.com/vdash/vdash/internal/model1"
	"github.com/vdash/vdash/internal/nav"
	"github.com/vdash/vdash/internal/render"
)

type fakeSuspender struct {
	calls int
}

func (f *fakeSuspender) Suspend(fn func()) bool {
	f.calls++
	fn()
	return true
}

func editorScript(t *testing.T, body string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "editor.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	t.Setenv("EDITOR", path)
}

func invoiceSaver(t *testing.T) (dao.Saver, dao.Getter) {
	t.Helper()
	f := dao.NewFactory(dao.NewMemoryStore(dao.Fixtures()), false)
	acc, err := dao.AccessorFor(f, &dao.InvoiceRID)
	require.NoError(t, err)
	s, ok := acc.(dao.Saver)
	require.True(t, ok)

	return s, acc
}

func TestSortKeys(t *testing.T) {
	kk := SortKeys(new(render.Invoice).Header())

	assert.Equal(t, map[tcell.Key]string{
		'I': "id",
		'U': "customer_name",
		'C': "date",
		'D': "due_date",
		'Q': "quantity",
		'A': "amount",
		'S': "status",
	}, kk)
	_, ok := kk['G']
	assert.False(t, ok)
}

func TestDeletePrompt(t *testing.T) {
	uu := map[string]struct {
		ids []string
		e   string
	}{
		"one":  {ids: []string{"3"}, e: "Delete invoice 3?"},
		"many": {ids: []string{"3", "4"}, e: "Delete 2 invoices?"},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			assert.Equal(t, u.e, DeletePrompt("invoice", u.ids))
		})
	}
}

func TestRetryTargets(t *testing.T) {
	f := dao.NewFactory(dao.NewMemoryStore(dao.Fixtures()), true)
	td := model.NewTableData(&dao.InvoiceRID, 0)
	require.NoError(t, td.Init(f))

	ids := RetryTargets(td.Delete(context.Background(), "3", "4"))
	assert.Equal(t, []string{"3", "4"}, ids)
	assert.Equal(t, "Delete failed. Retry? Delete 2 invoices?", RetryDeletePrompt("invoice", ids))
	assert.Nil(t, RetryTargets(errors.New("boom")))
	assert.Nil(t, RetryTargets(nil))
}

func TestWidgetLine(t *testing.T) {
	line := WidgetLine([]dao.Widget{
		{Title: dao.InvoicePaid, Count: 2, Amount: 2400},
		{Title: dao.InvoiceUnpaid, Count: 1, Amount: 100},
	})

	assert.Contains(t, line, "Paid")
	assert.Contains(t, line, "(2)")
	assert.Contains(t, line, "Unpaid")
	assert.Contains(t, line, "(1)")
}

func TestRenderRecord(t *testing.T) {
	rec := model1.Record{"id": "7", "status": "Paid", "active": true}

	uu := map[string]struct {
		rec    model1.Record
		format string
		ee     []string
	}{
		"yaml": {rec: rec, format: formatYAML, ee: []string{"[aqua::]status:[-::]", "Paid", "[green::]true[-::]"}},
		"json": {rec: rec, format: formatJSON, ee: []string{`"status": "Paid"`, `"active": true`}},
		"none": {format: formatYAML, ee: []string{"No data available"}},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			out := renderRecord(u.rec, u.format)
			for _, e := range u.ee {
				assert.Contains(t, out, e)
			}
		})
	}
}

func TestColorizeValue(t *testing.T) {
	uu := map[string]struct {
		v, e string
	}{
		"number": {v: "12", e: "[fuchsia::]12[-::]"},
		"null":   {v: "null", e: "[gray::]null[-::]"},
		"plain":  {v: "Acme", e: "Acme"},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			assert.Equal(t, u.e, colorizeValue(u.v))
		})
	}
}

func TestParseRecord(t *testing.T) {
	uu := map[string]struct {
		doc string
		rec model1.Record
		err error
	}{
		"plain": {
			doc: "id: \"3\"\nquantity: 2\ndate: 2024-01-01\n",
			rec: model1.Record{"id": "3", "quantity": float64(2), "date": "2024-01-01"},
		},
		"timestamp": {
			doc: "paid_on: 2024-03-05T10:30:00Z\n",
			rec: model1.Record{"paid_on": "2024-03-05T10:30:00Z"},
		},
		"nested-dates": {
			doc: "reminders:\n  - 2024-03-05\n  - sent: 2024-04-01\n",
			rec: model1.Record{"reminders": []any{"2024-03-05", map[string]any{"sent": "2024-04-01"}}},
		},
		"comments": {
			doc: "# ERROR: boom\nname: x\n",
			rec: model1.Record{"name": "x"},
		},
		"empty": {doc: "# nothing\n", err: ErrEditorCancelled},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			rec, err := ParseRecord([]byte(u.doc))
			if u.err != nil {
				assert.ErrorIs(t, err, u.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, u.rec, rec)
		})
	}

	_, err := ParseRecord([]byte("a: [b"))
	assert.Error(t, err)
}

func TestGeneratePatch(t *testing.T) {
	orig := model1.Record{"id": "1", "status": "Unpaid"}

	_, err := GeneratePatch(orig, orig.Clone())
	assert.ErrorIs(t, err, ErrNoChanges)

	patch, err := GeneratePatch(orig, model1.Record{"id": "1", "status": "Paid"})
	require.NoError(t, err)
	assert.Contains(t, patch, `"op":"replace"`)
	assert.Contains(t, patch, `"/status"`)
}

func TestInvoiceTemplate(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	tpl := InvoiceTemplate(now)

	assert.Equal(t, "2024-03-01", tpl["date"])
	assert.Equal(t, "2024-03-31", tpl["due_date"])
	assert.Equal(t, dao.InvoiceUnpaid, tpl["status"])
	_, ok := tpl["id"]
	assert.False(t, ok)
}

func TestEditSessionDocument(t *testing.T) {
	s := NewEditSession(&dao.InvoiceRID, model1.Record{"id": "1"})
	s.SetError("id is read only\nsecond line")

	bb, err := s.document()
	require.NoError(t, err)
	doc := string(bb)
	assert.True(t, strings.HasPrefix(doc, "# ERROR: id is read only\n# ERROR: second line\n"))
	assert.Contains(t, doc, "id: \"1\"")
}

func TestEditRecordSaves(t *testing.T) {
	editorScript(t, `echo "note: checked" >> "$1"`)
	saver, getter := invoiceSaver(t)
	ctx := context.Background()
	rec, err := getter.Get(ctx, "1")
	require.NoError(t, err)

	s := new(fakeSuspender)
	saved, err := EditRecord(ctx, s, saver, &dao.InvoiceRID, rec, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, s.calls)
	assert.Equal(t, "checked", saved.String("note"))

	got, err := getter.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "checked", got.String("note"))
}

func TestEditRecordCreates(t *testing.T) {
	editorScript(t, `sed -i 's/^customer_name: .*/customer_name: Zed/' "$1"`)
	saver, getter := invoiceSaver(t)
	ctx := context.Background()

	saved, err := EditRecord(ctx, new(fakeSuspender), saver, &dao.InvoiceRID, nil, InvoiceTemplate(time.Now()))
	require.NoError(t, err)
	assert.Equal(t, "Zed", saved.String("customer_name"))
	assert.NotEmpty(t, saved.ID())

	got, err := getter.Get(ctx, saved.ID())
	require.NoError(t, err)
	assert.Equal(t, "Zed", got.String("customer_name"))
}

func TestEditRecordNoSave(t *testing.T) {
	uu := map[string]struct {
		script string
		err    error
	}{
		"unchanged": {script: "exit 0", err: ErrNoChanges},
		"aborted":   {script: "exit 1", err: ErrEditorCancelled},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			editorScript(t, u.script)
			saver, getter := invoiceSaver(t)
			rec, err := getter.Get(context.Background(), "2")
			require.NoError(t, err)

			_, err = EditRecord(context.Background(), new(fakeSuspender), saver, &dao.InvoiceRID, rec, nil)
			assert.ErrorIs(t, err, u.err)
		})
	}
}

func TestComputeStats(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	invoices := model1.Records{
		{"id": "1", "status": "Paid", "amount": 100.0},
		{"id": "2", "status": "Unpaid", "amount": 50.0, "due_date": "2024-01-01"},
		{"id": "3", "status": "Paid", "amount": 25.0},
	}
	customers := model1.Records{
		{"id": "a", "status": "Pending"},
		{"id": "b"},
	}

	s := ComputeStats(invoices, customers, now)

	assert.Equal(t, model1.Tabs{{Name: model1.AllTab, Count: 3}, {Name: "Paid", Count: 2}, {Name: "Unpaid", Count: 1}}, s.Invoices)
	assert.Equal(t, model1.Tabs{{Name: model1.AllTab, Count: 2}, {Name: "Pending", Count: 1}}, s.Customers)
	require.Len(t, s.Widgets, 3)
	assert.Equal(t, 1, s.Widgets[2].Count)

	out := RenderStats(s, true)
	assert.Contains(t, out, "Invoices")
	assert.Contains(t, out, "█")
}

func TestLoadStats(t *testing.T) {
	f := dao.NewFactory(dao.NewMemoryStore(dao.Fixtures()), true)

	s, err := LoadStats(context.Background(), f, time.Now())
	require.NoError(t, err)
	assert.Equal(t, len(dao.Fixtures()["invoice"]), s.Invoices.Count(model1.AllTab))
	assert.Equal(t, len(dao.Fixtures()["customer"]), s.Customers.Count(model1.AllTab))
}

func TestBar(t *testing.T) {
	uu := map[string]struct {
		n, total, width int
		e               string
	}{
		"empty": {n: 0, total: 4, width: 8},
		"none":  {n: 1, total: 0, width: 8},
		"half":  {n: 2, total: 4, width: 8, e: "████"},
		"tiny":  {n: 1, total: 100, width: 8, e: "█"},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			assert.Equal(t, u.e, Bar(u.n, u.total, u.width))
		})
	}
}

func TestHelpSections(t *testing.T) {
	hk := config.NewHotKeys()
	hk.Set("pay", config.HotKey{ShortCut: "Shift-P", Description: "Payments", Command: "pay"})

	ss := HelpSections(config.NewAliases(), hk)
	require.Len(t, ss, 5)
	assert.Equal(t, "COMMANDS", ss[0].Title)
	assert.Contains(t, ss[0].Binds, HelpBind{Key: ":inv", Desc: nav.RouteInvoiceList})
	assert.Contains(t, ss[0].Binds, HelpBind{Key: ":cust", Desc: nav.RouteCustomerList})
	assert.Equal(t, "HOTKEYS", ss[4].Title)
	assert.Equal(t, []HelpBind{{Key: "<Shift-P>", Desc: "Payments"}}, ss[4].Binds)

	h := NewHelp(config.NewAliases(), nil)
	require.NoError(t, h.Init(context.Background()))
	assert.Equal(t, "COMMANDS", h.GetCell(0, 0).Text)
}

func TestParseCommand(t *testing.T) {
	uu := map[string]struct {
		cmd  string
		name string
		args []string
	}{
		"blank":   {},
		"bare":    {cmd: "inv", name: "inv", args: []string{}},
		"profile": {cmd: "profile  dev ", name: "profile", args: []string{"dev"}},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			name, args := parseCommand(u.cmd)
			assert.Equal(t, u.name, name)
			assert.Equal(t, u.args, args)
		})
	}
}

func TestSidebar(t *testing.T) {
	var visited string
	s := NewSidebar(nav.VendorMenu(), func(url string) { visited = url })

	s.Highlight(nav.RouteInvoiceList)
	it, ok := s.GetCurrentNode().GetReference().(nav.Item)
	require.True(t, ok)
	assert.Equal(t, "quoteSucc", it.ID)

	s.selected(s.GetCurrentNode())
	assert.Equal(t, nav.RouteInvoiceList, visited)

	collapse := s.nodes["productRegistration"]
	expanded := collapse.IsExpanded()
	s.selected(collapse)
	assert.Equal(t, !expanded, collapse.IsExpanded())
}

func TestStoreInfo(t *testing.T) {
	s := NewStoreInfo("0.1.0")
	s.SetInfo(dao.StoreSpec{Kind: dao.StoreSQLite, Path: "/tmp/vdash.db"}, true)

	assert.Equal(t, "sqlite", s.GetCell(0, 1).Text)
	assert.Equal(t, "/tmp/vdash.db", s.GetCell(1, 1).Text)
	assert.Contains(t, s.GetCell(2, 1).Text, "read only")
	assert.Equal(t, "0.1.0", s.GetCell(3, 1).Text)
}
