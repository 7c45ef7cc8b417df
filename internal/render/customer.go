package render

import (
	"github.com/vdash/vdash/internal/model1"
)

// Customer renders vendor customers
type Customer struct {
	Base
}

// Header returns the customer header.
func (*Customer) Header() model1.Header {
	return model1.Header{
		selectionColumn(),
		{Name: "name", Label: "Business Name", Attrs: model1.Attrs{Sortable: true, Searchable: true, Decorator: Clip(wideCell)}},
		{Name: "email", Label: "Email", Attrs: model1.Attrs{Sortable: true, Searchable: true, Decorator: Clip(wideCell)}},
		{Name: "phone", Label: "Phone", Attrs: model1.Attrs{Searchable: true, Decorator: NA}},
		{Name: "city", Label: "City", Attrs: model1.Attrs{Filterable: true, Sortable: true}},
		{Name: "orderStatus", Label: "District", Attrs: model1.Attrs{Filterable: true, Sortable: true}},
		{Name: "bank", Label: "Bank", Attrs: model1.Attrs{Sortable: true, Hide: true}},
		{Name: "accounter", Label: "Accounter", Attrs: model1.Attrs{Searchable: true, Hide: true, Decorator: NA}},
		{Name: "status", Label: "Status", Attrs: model1.Attrs{Filterable: true, Sortable: true}},
		actionsColumn(),
	}
}

// Render renders a customer to a row.
func (c *Customer) Render(o any, row *model1.Row) error {
	return renderRecord(c.Header(), o, row)
}

// ColorerFunc colors rows by verification status.
func (*Customer) ColorerFunc() model1.ColorerFunc {
	return model1.StatusColorer("status")
}
