package model1

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invoiceHeader() Header {
	return Header{
		{Name: "id", Label: "Invoice Id", Attrs: Attrs{Kind: KindNumber, Filterable: true, Sortable: true}},
		{Name: "customer_name", Label: "User Name", Attrs: Attrs{Filterable: true, Sortable: true}},
		{Name: "date", Label: "Create Date", Attrs: Attrs{Kind: KindDate, Filterable: true, Sortable: true}},
		{Name: "quantity", Label: "Quantity", Attrs: Attrs{Kind: KindNumber, Filterable: true, Sortable: true}},
		{Name: "status", Label: "Status", Attrs: Attrs{Filterable: true, Sortable: true}},
	}
}

func invoiceRows() Rows {
	return Rows{
		{ID: "1", Fields: Fields{"1", "John Doe", "2024-03-01", "10", "Paid"}},
		{ID: "2", Fields: Fields{"2", "Ann Lee", "2024-01-15", "2", "Unpaid"}},
		{ID: "3", Fields: Fields{"3", "Bob Stone", "2024-02-20", "10", "Paid"}},
		{ID: "4", Fields: Fields{"4", "Cara Johnson", "2023-12-31", "7", "Cancelled"}},
		{ID: "5", Fields: Fields{"5", "Dan West", "2024-03-01", "100", "Unpaid"}},
	}
}

func TestDeriveEmpty(t *testing.T) {
	res := Derive(invoiceHeader(), nil, Query{Page: NewPageState(5)})

	assert.Empty(t, res.Rows)
	assert.Empty(t, res.Page)
	assert.Equal(t, 0, res.PageState.Index)
	assert.Equal(t, 0, res.PageCount)
}

func TestDeriveGlobalSearch(t *testing.T) {
	q := Query{Filter: NewFilterState(), Page: NewPageState(10)}
	q.Filter.SetGlobal("john")

	res := Derive(invoiceHeader(), invoiceRows(), q)
	assert.Equal(t, []string{"1", "4"}, res.Rows.IDs())
	assert.Equal(t, 5, res.Total)
}

func TestDeriveGlobalSearchSkipsUnsearchable(t *testing.T) {
	h := invoiceHeader()
	h[1].Filterable = false
	q := Query{Filter: NewFilterState(), Page: NewPageState(10)}
	q.Filter.SetGlobal("john")

	assert.Empty(t, Derive(h, invoiceRows(), q).Rows)
}

func TestDerivePredicates(t *testing.T) {
	uu := map[string]struct {
		field string
		pred  Predicate
		e     []string
	}{
		"exact": {
			field: "status",
			pred:  Exact("Paid"),
			e:     []string{"1", "3"},
		},
		"exact-case": {
			field: "status",
			pred:  Exact("paid"),
			e:     []string{},
		},
		"contains": {
			field: "customer_name",
			pred:  Contains("LEE"),
			e:     []string{"2"},
		},
		"number-range": {
			field: "quantity",
			pred:  Range("5", "10"),
			e:     []string{"1", "3", "4"},
		},
		"open-range": {
			field: "quantity",
			pred:  Range("11", ""),
			e:     []string{"5"},
		},
		"date-range": {
			field: "date",
			pred:  Range("2024-01-01", "2024-02-28"),
			e:     []string{"2", "3"},
		},
		"includes": {
			field: "status",
			pred:  Includes("Cancelled", "Unpaid"),
			e:     []string{"2", "4", "5"},
		},
		"unknown-field": {
			field: "nope",
			pred:  Exact("x"),
			e:     []string{},
		},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			q := Query{Filter: NewFilterState(), Page: NewPageState(10)}
			q.Filter.Set(u.field, u.pred)
			assert.Equal(t, u.e, Derive(invoiceHeader(), invoiceRows(), q).Rows.IDs())
		})
	}
}

func TestDeriveFilterMonotonic(t *testing.T) {
	preds := []struct {
		field string
		pred  Predicate
	}{
		{"quantity", Range("2", "")},
		{"status", Includes("Paid", "Unpaid")},
		{"date", Range("2024-01-01", "")},
		{"customer_name", Contains("o")},
	}

	q := Query{Filter: NewFilterState(), Page: NewPageState(10)}
	prev := len(Derive(invoiceHeader(), invoiceRows(), q).Rows)
	for _, p := range preds {
		q.Filter.Set(p.field, p.pred)
		n := len(Derive(invoiceHeader(), invoiceRows(), q).Rows)
		assert.LessOrEqual(t, n, prev, "adding %s on %s", p.pred, p.field)
		prev = n
	}
	q.Filter.SetGlobal("stone")
	assert.LessOrEqual(t, len(Derive(invoiceHeader(), invoiceRows(), q).Rows), prev)
}

func TestDeriveSort(t *testing.T) {
	uu := map[string]struct {
		sort SortState
		e    []string
	}{
		"none": {
			e: []string{"1", "2", "3", "4", "5"},
		},
		"number-asc": {
			sort: SortBy("quantity"),
			e:    []string{"2", "4", "1", "3", "5"},
		},
		"number-desc": {
			sort: SortState{Column: "quantity"},
			e:    []string{"5", "1", "3", "4", "2"},
		},
		"date-asc": {
			sort: SortBy("date"),
			e:    []string{"4", "2", "3", "1", "5"},
		},
		"text-asc": {
			sort: SortBy("customer_name"),
			e:    []string{"2", "3", "4", "5", "1"},
		},
		"unknown": {
			sort: SortBy("nope"),
			e:    []string{"1", "2", "3", "4", "5"},
		},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			q := Query{Sort: u.sort, Page: NewPageState(10)}
			assert.Equal(t, u.e, Derive(invoiceHeader(), invoiceRows(), q).Rows.IDs())
		})
	}
}

func TestDeriveSortUnsortable(t *testing.T) {
	h := invoiceHeader()
	h[3].Sortable = false
	q := Query{Sort: SortBy("quantity"), Page: NewPageState(10)}

	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, Derive(h, invoiceRows(), q).Rows.IDs())
}

func TestDeriveSortStable(t *testing.T) {
	h := Header{
		{Name: "id"},
		{Name: "group", Attrs: Attrs{Kind: KindNumber, Sortable: true}},
	}
	var rows Rows
	for i := range 40 {
		id := fmt.Sprintf("r%02d", i)
		rows = append(rows, Row{ID: id, Fields: Fields{id, fmt.Sprintf("%d", i%3)}})
	}

	for _, s := range []SortState{SortBy("group"), {Column: "group"}} {
		res := Derive(h, rows, Query{Sort: s, Page: NewPageState(100)})
		last := map[string]int{}
		for _, r := range res.Rows {
			g := r.Fields[1]
			orig := indexOf(rows, r.ID)
			if prev, ok := last[g]; ok {
				assert.Greater(t, orig, prev, "row %s moved ahead of an equal row", r.ID)
			}
			last[g] = orig
		}
	}
}

func TestDerivePagination(t *testing.T) {
	rows := invoiceRows()

	uu := map[string]struct {
		index int
		e     []string
		ei    int
	}{
		"first": {index: 0, e: []string{"1", "2"}, ei: 0},
		"middle": {index: 1, e: []string{"3", "4"}, ei: 1},
		"last": {index: 2, e: []string{"5"}, ei: 2},
		"clamped": {index: 3, e: []string{"5"}, ei: 2},
		"way-out": {index: 42, e: []string{"5"}, ei: 2},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			res := Derive(invoiceHeader(), rows, Query{Page: PageState{Index: u.index, Size: 2}})
			assert.Equal(t, u.e, res.Page.IDs())
			assert.Equal(t, u.ei, res.PageState.Index)
			assert.Equal(t, 3, res.PageCount)
		})
	}
}

func TestDerivePagesReconstructRows(t *testing.T) {
	var rows Rows
	for i := range 23 {
		id := fmt.Sprintf("%d", i)
		rows = append(rows, Row{ID: id, Fields: Fields{id, "n", "2024-01-01", fmt.Sprintf("%d", 23-i), "Paid"}})
	}
	q := Query{Sort: SortBy("quantity"), Page: PageState{Size: 4}}
	full := Derive(invoiceHeader(), rows, q)

	var all Rows
	for i := range full.PageCount {
		q.Page.Index = i
		all = append(all, Derive(invoiceHeader(), rows, q).Page...)
	}
	assert.Equal(t, full.Rows.IDs(), all.IDs())
}

func TestDeriveFilterShrinkClampsPage(t *testing.T) {
	q := Query{Filter: NewFilterState(), Page: PageState{Index: 2, Size: 2}}
	q.Filter.Set("status", Exact("Paid"))

	res := Derive(invoiceHeader(), invoiceRows(), q)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, 0, res.PageState.Index)
	assert.Equal(t, []string{"1", "3"}, res.Page.IDs())
}

func TestDeriverMemoizes(t *testing.T) {
	data := NewTableData("invoice")
	data.SetHeader(invoiceHeader())
	data.Update(invoiceRows())

	var d Deriver
	q := Query{Filter: NewFilterState(), Page: NewPageState(2)}
	r1 := d.Derive(data, q)
	r2 := d.Derive(data, q)
	assert.Same(t, &r1.Rows[0], &r2.Rows[0])

	q.Filter.SetGlobal("ann")
	r3 := d.Derive(data, q)
	assert.Equal(t, []string{"2"}, r3.Rows.IDs())

	data.Update(invoiceRows()[:1])
	assert.Empty(t, d.Derive(data, q).Rows)
}

func TestDeriverKeysDistinguishValueSets(t *testing.T) {
	h := Header{{Name: "name", Attrs: Attrs{Filterable: true}}}
	data := NewTableData("customer")
	data.SetHeader(h)
	data.Update(Rows{
		{ID: "1", Fields: Fields{"a b"}},
		{ID: "2", Fields: Fields{"c"}},
		{ID: "3", Fields: Fields{"a"}},
		{ID: "4", Fields: Fields{"b c"}},
	})

	uu := map[string]struct {
		first, second Predicate
		e             []string
	}{
		"includes": {
			first:  Includes("a b", "c"),
			second: Includes("a", "b c"),
			e:      []string{"3", "4"},
		},
		"range": {
			first:  Range("a..", "b"),
			second: Range("a", "..b"),
		},
		"exact": {
			first:  Exact("a b"),
			second: Exact("a"),
			e:      []string{"3"},
		},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			var d Deriver
			q1 := Query{Filter: NewFilterState(), Page: NewPageState(10)}
			q1.Filter.Set("name", u.first)
			q2 := Query{Filter: NewFilterState(), Page: NewPageState(10)}
			q2.Filter.Set("name", u.second)

			assert.NotEqual(t, q1.Key(), q2.Key())
			if u.e == nil {
				return
			}
			d.Derive(data, q1)
			assert.Equal(t, u.e, d.Derive(data, q2).Rows.IDs())
		})
	}
}

func indexOf(rows Rows, id string) int {
	for i, r := range rows {
		if r.ID == id {
			return i
		}
	}
	return -1
}
