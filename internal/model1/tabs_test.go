package model1

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveTabs(t *testing.T) {
	h := Header{{Name: "id"}, {Name: "status", Attrs: Attrs{Filterable: true}}}
	rows := Rows{
		{ID: "1", Fields: Fields{"1", "Paid"}},
		{ID: "2", Fields: Fields{"2", "Unpaid"}},
		{ID: "3", Fields: Fields{"3", "Paid"}},
	}

	tt := DeriveTabs(h, rows, "status")
	assert.Equal(t, []string{"All", "Paid", "Unpaid"}, tt.Names())
	assert.Equal(t, map[string]int{"All": 3, "Paid": 2, "Unpaid": 1}, tt.Counts())

	f := NewFilterState()
	f.SelectTab("status", "Paid")
	assert.Equal(t, "Paid", f.ActiveTab("status"))
	res := Derive(h, rows, Query{Filter: f, Page: NewPageState(10)})
	assert.Equal(t, []string{"1", "3"}, res.Rows.IDs())

	f.SelectTab("status", AllTab)
	assert.Equal(t, AllTab, f.ActiveTab("status"))
	assert.False(t, f.Active())
}

func TestDeriveTabsMissingField(t *testing.T) {
	tt := DeriveTabs(Header{{Name: "id"}}, Rows{{ID: "1", Fields: Fields{"1"}}}, "status")

	assert.Equal(t, Tabs{{Name: AllTab, Count: 1}}, tt)
	assert.Equal(t, 0, tt.Count("Paid"))
}
