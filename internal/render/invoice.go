package render

import (
	"github.com/vdash/vdash/internal/model1"
)

// Invoice renders invoices
type Invoice struct {
	Base
}

// Header returns the invoice header.
func (*Invoice) Header() model1.Header {
	return model1.Header{
		selectionColumn(),
		{Name: "id", Label: "Invoice Id", Attrs: model1.Attrs{Kind: model1.KindNumber, Sortable: true, Searchable: true}},
		{Name: "customer_name", Label: "User Name", Attrs: model1.Attrs{Sortable: true, Searchable: true, Decorator: Clip(wideCell)}},
		{Name: "avatar", Label: "Avatar", Attrs: model1.Attrs{Hide: true}},
		{Name: "email", Label: "Email", Attrs: model1.Attrs{Sortable: true, Searchable: true, Hide: true}},
		{Name: "date", Label: "Create Date", Attrs: model1.Attrs{Kind: model1.KindDate, Filterable: true, Sortable: true}},
		{Name: "due_date", Label: "Due Date", Attrs: model1.Attrs{Kind: model1.KindDate, Filterable: true, Sortable: true}},
		{Name: "quantity", Label: "Quantity", Attrs: model1.Attrs{Kind: model1.KindNumber, Sortable: true, Searchable: true}},
		{Name: "amount", Label: "Amount", Attrs: model1.Attrs{Kind: model1.KindNumber, Sortable: true, Decorator: FormatAmount}},
		{Name: "status", Label: "Status", Attrs: model1.Attrs{Filterable: true, Sortable: true}},
		actionsColumn(),
	}
}

// Render renders an invoice to a row.
func (i *Invoice) Render(o any, row *model1.Row) error {
	return renderRecord(i.Header(), o, row)
}

// ColorerFunc colors rows by invoice status.
func (*Invoice) ColorerFunc() model1.ColorerFunc {
	return model1.StatusColorer("status")
}
