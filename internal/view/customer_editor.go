package view

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
	"github.com/rs/zerolog/log"

	"github.com/vdash/vdash/internal/dao"
	"github.com/vdash/vdash/internal/form"
	"github.com/vdash/vdash/internal/model"
	"github.com/vdash/vdash/internal/model1"
	"github.com/vdash/vdash/internal/ui"
)

const (
	customerAddedMsg   = "Customer added successfully."
	customerUpdatedMsg = "Customer update successfully."
	customerDeletedMsg = "Customer deleted successfully."
	customerPending    = "Pending"
	fieldWidth         = 48
)

// CustomerEditor adds or edits one customer through a form. Errors show
// next to the fields once they were left or the form was submitted.
type CustomerEditor struct {
	*tview.Flex

	app      *App
	id       string
	schema   *form.Schema
	form     *form.Form
	fields   *tview.Form
	errors   *tview.TextView
	orig     model1.Record
	cancelFn context.CancelFunc
}

// NewCustomerEditor returns an editor of customer id. An empty id adds a
// new customer.
func NewCustomerEditor(app *App, id string) *CustomerEditor {
	e := CustomerEditor{
		Flex:   tview.NewFlex().SetDirection(tview.FlexRow),
		app:    app,
		id:     id,
		schema: form.CustomerSchema(),
		fields: tview.NewForm(),
		errors: tview.NewTextView(),
	}

	return &e
}

// Init lays out the editor.
func (e *CustomerEditor) Init(context.Context) error {
	e.fields.SetBorder(true)
	e.fields.SetBorderPadding(0, 0, 1, 1)
	e.fields.SetBackgroundColor(tcell.ColorDefault)
	e.fields.SetFieldBackgroundColor(tcell.ColorDarkSlateGray)
	e.fields.SetButtonsAlign(tview.AlignLeft)
	e.fields.SetCancelFunc(e.cancel)
	e.fields.SetInputCapture(e.keyboard)
	if e.IsNew() {
		e.fields.SetTitle(" Add Customer ")
	} else {
		e.fields.SetTitle(fmt.Sprintf(" Edit Customer %s ", e.id))
	}

	e.errors.SetDynamicColors(true)
	e.errors.SetBackgroundColor(tcell.ColorDefault)
	e.errors.SetBorderPadding(0, 0, 1, 1)

	e.AddItem(e.fields, 0, 1, true)
	e.AddItem(e.errors, 3, 0, false)

	if e.IsNew() {
		e.build(nil)
	}

	return nil
}

// Start loads the customer being edited.
func (e *CustomerEditor) Start() {
	if e.IsNew() || e.orig != nil {
		return
	}
	e.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	e.cancelFn = cancel
	go func() {
		rec, err := fetchRecord(ctx, e.app.factory, &dao.CustomerRID, e.id)
		if ctx.Err() != nil {
			return
		}
		e.app.QueueUpdateDraw(func() {
			if err != nil {
				e.app.Notify(err.Error(), model.SeverityError)
				e.app.Back()
				return
			}
			e.build(rec)
		})
	}()
}

// Stop cancels a pending load.
func (e *CustomerEditor) Stop() {
	if e.cancelFn != nil {
		e.cancelFn()
		e.cancelFn = nil
	}
}

// Name returns the view name.
func (e *CustomerEditor) Name() string {
	if e.IsNew() {
		return "add"
	}
	return "edit"
}

// IsNew returns true when adding a customer.
func (e *CustomerEditor) IsNew() bool {
	return e.id == ""
}

// CapturesInput keeps global rune keys away from the input fields.
func (*CustomerEditor) CapturesInput() bool {
	return true
}

// Hints returns the editor key hints.
func (e *CustomerEditor) Hints() ui.MenuHints {
	hh := ui.MenuHints{
		{Mnemonic: "tab", Description: "Next Field", Visible: true},
		{Mnemonic: "ctrl-s", Description: "Save", Visible: true},
		{Mnemonic: "esc", Description: "Cancel", Visible: true},
	}
	if !e.IsNew() {
		hh = append(hh, ui.MenuHint{Mnemonic: "ctrl-d", Description: "Delete", Visible: true})
	}
	return hh
}

// Form returns the form state.
func (e *CustomerEditor) Form() *form.Form {
	return e.form
}

func (e *CustomerEditor) build(rec model1.Record) {
	e.orig = rec
	e.form = form.New(e.schema, form.CustomerValues(e.schema, rec))
	e.fields.Clear(true)

	for _, f := range e.schema.Fields() {
		name := f.Name
		if len(f.Options) > 0 {
			e.fields.AddDropDown(fieldLabel(f, ""), f.Options, slices.Index(f.Options, e.form.Value(name)), func(opt string, _ int) {
				if e.form.Value(name) == opt {
					return
				}
				e.form.Set(name, opt)
				e.form.Blur(name)
				e.refreshErrors()
			})
			continue
		}
		e.fields.AddInputField(fieldLabel(f, ""), e.form.Value(name), fieldWidth, nil, func(text string) {
			e.form.Set(name, text)
			e.refreshErrors()
		})
		if in, ok := e.fields.GetFormItem(e.fields.GetFormItemCount() - 1).(*tview.InputField); ok {
			in.SetPlaceholder(f.Placeholder)
		}
	}

	e.fields.AddButton("Save", e.save)
	e.fields.AddButton("Cancel", e.cancel)
	if !e.IsNew() && !e.app.ReadOnly() {
		e.fields.AddButton("Delete", e.delete)
	}
	e.refreshErrors()
}

// keyboard validates the field being left.
func (e *CustomerEditor) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	switch evt.Key() {
	case tcell.KeyTab, tcell.KeyBacktab, tcell.KeyEnter, tcell.KeyUp, tcell.KeyDown:
		if e.form == nil {
			return evt
		}
		if i, _ := e.fields.GetFocusedItemIndex(); i >= 0 && i < len(e.schema.Fields()) {
			e.form.Blur(e.schema.Fields()[i].Name)
			e.refreshErrors()
		}
	case tcell.KeyCtrlS:
		e.save()
		return nil
	case tcell.KeyCtrlD:
		if !e.IsNew() {
			e.delete()
		}
		return nil
	}

	return evt
}

// refreshErrors flags the fields in error and lists their messages.
func (e *CustomerEditor) refreshErrors() {
	if e.form == nil {
		return
	}
	var msgs []string
	for i, f := range e.schema.Fields() {
		msg := e.form.Error(f.Name)
		switch item := e.fields.GetFormItem(i).(type) {
		case *tview.InputField:
			item.SetLabel(fieldLabel(f, msg))
		case *tview.DropDown:
			item.SetLabel(fieldLabel(f, msg))
		}
		if msg != "" {
			msgs = append(msgs, fmt.Sprintf("[red::]%s[-::]", tview.Escape(msg)))
		}
	}
	e.errors.Clear()
	_, _ = fmt.Fprint(e.errors, strings.Join(msgs, " · "))
}

func fieldLabel(f form.Field, errMsg string) string {
	label := f.Label
	if f.IsRequired() {
		label += " *"
	}
	if errMsg != "" {
		return "[red::b]" + label + "[-::-]"
	}
	return label
}

func (e *CustomerEditor) cancel() {
	e.app.Back()
}

// save submits the form. Nothing is stored while a field is invalid.
func (e *CustomerEditor) save() {
	if e.form == nil {
		return
	}
	vals, err := e.form.Submit()
	e.refreshErrors()
	if err != nil {
		e.app.Notify(fmt.Sprintf("Please fix %d field(s)", len(form.Messages(err))), model.SeverityError)
		return
	}

	rec := form.ApplyValues(e.schema, e.orig, vals)
	if e.IsNew() && rec.String("status") == "" {
		rec["status"] = customerPending
	}
	orig := e.orig
	if orig == nil {
		orig = make(model1.Record)
	}
	msg := customerUpdatedMsg
	if e.IsNew() {
		msg = customerAddedMsg
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		saved, err := saveRecord(ctx, e.app.factory, &dao.CustomerRID, rec)
		if err != nil {
			e.app.Notify(fmt.Sprintf("Save failed: %s", err), model.SeverityError)
			return
		}
		if patch, err := GeneratePatch(orig, saved); err == nil {
			log.Info().Str("resource", dao.CustomerRID.String()).Str("id", saved.ID()).Str("patch", patch).Msg("Customer saved")
		}
		e.app.Notify(msg, model.SeveritySuccess)
		e.app.QueueUpdateDraw(e.app.Back)
	}()
}

func (e *CustomerEditor) delete() {
	e.app.confirm(DeletePrompt(dao.CustomerRID.Resource, []string{e.id}), func() {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
			defer cancel()

			if err := deleteRecord(ctx, e.app.factory, &dao.CustomerRID, e.id); err != nil {
				e.app.Notify(fmt.Sprintf("Delete failed: %s", err), model.SeverityError)
				return
			}
			log.Info().Str("resource", dao.CustomerRID.String()).Str("id", e.id).Msg("Deleted")
			e.app.Notify(customerDeletedMsg, model.SeveritySuccess)
			e.app.QueueUpdateDraw(e.app.Back)
		}()
	})
}

func saveRecord(ctx context.Context, f dao.Factory, rid *dao.ResourceID, rec model1.Record) (model1.Record, error) {
	a, err := dao.AccessorFor(f, rid)
	if err != nil {
		return nil, err
	}
	s, ok := a.(dao.Saver)
	if !ok {
		return nil, fmt.Errorf("%s records cannot be saved", rid.Resource)
	}

	return s.Save(ctx, rec)
}

func deleteRecord(ctx context.Context, f dao.Factory, rid *dao.ResourceID, id string) error {
	a, err := dao.AccessorFor(f, rid)
	if err != nil {
		return err
	}
	n, ok := a.(dao.Nuker)
	if !ok {
		return fmt.Errorf("%s records cannot be deleted", rid.Resource)
	}

	return n.DeleteByID(ctx, id)
}
