package render

import (
	"fmt"

	"github.com/vdash/vdash/internal/model1"
)

// Base provides a base renderer implementation
type Base struct{}

// ColorerFunc returns the default colorer
func (*Base) ColorerFunc() model1.ColorerFunc {
	return model1.DefaultColorer
}

// Generic renders any record against a fixed header.
type Generic struct {
	Base
	header model1.Header
}

// NewGeneric returns a renderer for header.
func NewGeneric(h model1.Header) *Generic {
	return &Generic{header: h}
}

// Header returns the column schema.
func (g *Generic) Header() model1.Header {
	return g.header.Clone()
}

// Render renders a record to a row.
func (g *Generic) Render(o any, row *model1.Row) error {
	return renderRecord(g.header, o, row)
}

// renderRecord fills one field per header column. Presentation columns
// stay blank so field indexes always line up with the header.
func renderRecord(h model1.Header, o any, row *model1.Row) error {
	rec, ok := o.(model1.Record)
	if !ok {
		return fmt.Errorf("expected Record, got %T", o)
	}
	if rec.ID() == "" {
		return fmt.Errorf("record has no %s", model1.IDField)
	}

	row.ID = rec.ID()
	row.Fields = make(model1.Fields, len(h))
	for i, c := range h {
		if c.IsVirtual() {
			continue
		}
		v := rec.String(c.Name)
		if c.Kind == model1.KindDate {
			v = FormatDate(v)
		}
		row.Fields[i] = v
	}

	return nil
}

// Rows renders every record, skipping the ones that fail.
func Rows(r model1.Renderer, rr model1.Records) (model1.Rows, error) {
	rows := make(model1.Rows, 0, len(rr))
	var errs []error
	for _, rec := range rr {
		var row model1.Row
		if err := r.Render(rec, &row); err != nil {
			errs = append(errs, err)
			continue
		}
		rows = append(rows, row)
	}
	if len(errs) > 0 {
		return rows, fmt.Errorf("%d records failed to render: %w", len(errs), errs[0])
	}

	return rows, nil
}

// selectionColumn and actionsColumn carry no data.
func selectionColumn() model1.HeaderColumn {
	return model1.HeaderColumn{Name: model1.RenderSelection, Label: " ", Attrs: model1.Attrs{Renderer: model1.RenderSelection}}
}

func actionsColumn() model1.HeaderColumn {
	return model1.HeaderColumn{Name: model1.RenderActions, Label: "Actions", Attrs: model1.Attrs{Renderer: model1.RenderActions}}
}
