// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of vdash

package view

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/vdash/vdash/internal/dao"
	"github.com/vdash/vdash/internal/model"
	"github.com/vdash/vdash/internal/model1"
	"github.com/vdash/vdash/internal/ui"
)

const (
	formatYAML = "yaml"
	formatJSON = "json"
)

// Details displays one record.
type Details struct {
	*tview.TextView

	app      *App
	rid      *dao.ResourceID
	id       string
	format   string
	rec      model1.Record
	actions  *ui.KeyActions
	wrapOn   bool
	cancelFn context.CancelFunc
}

// NewDetails returns a details view of record id.
func NewDetails(app *App, rid *dao.ResourceID, id string) *Details {
	d := Details{
		TextView: tview.NewTextView(),
		app:      app,
		rid:      rid,
		id:       id,
		format:   formatYAML,
		actions:  ui.NewKeyActions(),
	}

	d.SetDynamicColors(true)
	d.SetWrap(false)
	d.SetScrollable(true)
	d.SetBorder(true)
	d.SetBorderPadding(0, 0, 1, 1)
	d.SetBorderColor(tcell.ColorAqua)

	return &d
}

// Init initializes the view.
func (d *Details) Init(context.Context) error {
	d.bindKeys()
	d.SetInputCapture(d.keyboard)
	d.updateTitle()

	return nil
}

// Start loads the record.
func (d *Details) Start() {
	d.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	d.cancelFn = cancel
	d.SetText("[gray::]Loading...[-::]")
	go d.load(ctx)
}

// Stop cancels a pending load.
func (d *Details) Stop() {
	if d.cancelFn != nil {
		d.cancelFn()
		d.cancelFn = nil
	}
}

// Name returns the view name.
func (*Details) Name() string {
	return "details"
}

// Hints returns the menu hints for this view.
func (d *Details) Hints() ui.MenuHints {
	return d.actions.Hints()
}

func (d *Details) bindKeys() {
	d.actions.Bulk(ui.KeyMap{
		ui.KeyY: ui.NewKeyAction("YAML", d.formatCmd(formatYAML), true),
		ui.KeyO: ui.NewKeyAction("JSON", d.formatCmd(formatJSON), true),
		ui.KeyW: ui.NewKeyAction("Wrap", d.toggleWrap, true),
	})
	if d.app != nil && !d.app.ReadOnly() {
		d.actions.Add(ui.KeyE, ui.NewKeyAction("Edit", d.editCmd, true))
	}
}

func (d *Details) load(ctx context.Context) {
	rec, err := fetchRecord(ctx, d.app.factory, d.rid, d.id)
	if ctx.Err() != nil {
		return
	}
	d.app.QueueUpdateDraw(func() {
		if err != nil {
			d.SetText(fmt.Sprintf("[red::]%s[-::]", tview.Escape(err.Error())))
			d.app.Notify(err.Error(), model.SeverityError)
			return
		}
		d.rec = rec
		d.render()
	})
}

func (d *Details) render() {
	d.Clear()
	d.SetText(renderRecord(d.rec, d.format))
	d.updateTitle()
	d.ScrollToBeginning()
}

func (d *Details) formatCmd(format string) ui.ActionHandler {
	return func(*tcell.EventKey) *tcell.EventKey {
		d.format = format
		if d.rec != nil {
			d.render()
		}
		return nil
	}
}

func (d *Details) toggleWrap(*tcell.EventKey) *tcell.EventKey {
	d.wrapOn = !d.wrapOn
	d.SetWrap(d.wrapOn)
	d.SetWordWrap(d.wrapOn)

	return nil
}

func (d *Details) editCmd(*tcell.EventKey) *tcell.EventKey {
	if err := d.app.Navigate(model.RecordRoute(d.rid.Resource, model.ActionEdit, d.id)); err != nil {
		log.Warn().Err(err).Str("id", d.id).Msg("Edit failed")
	}

	return nil
}

func (d *Details) updateTitle() {
	d.SetTitle(fmt.Sprintf(" %s/%s [%s] ", d.rid.Resource, d.id, strings.ToUpper(d.format)))
}

func (d *Details) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	row, _ := d.GetScrollOffset()
	switch evt.Key() {
	case tcell.KeyDown:
		d.ScrollTo(row+1, 0)
		return nil
	case tcell.KeyUp:
		d.ScrollTo(max(row-1, 0), 0)
		return nil
	case tcell.KeyPgDn:
		d.ScrollTo(row+20, 0)
		return nil
	case tcell.KeyPgUp:
		d.ScrollTo(max(row-20, 0), 0)
		return nil
	case tcell.KeyHome:
		d.ScrollToBeginning()
		return nil
	case tcell.KeyEnd:
		d.ScrollToEnd()
		return nil
	case tcell.KeyRune:
		switch evt.Rune() {
		case 'j':
			d.ScrollTo(row+1, 0)
			return nil
		case 'k':
			d.ScrollTo(max(row-1, 0), 0)
			return nil
		case 'g':
			d.ScrollToBeginning()
			return nil
		case 'G':
			d.ScrollToEnd()
			return nil
		}
	}
	if e, ok := d.actions.Dispatch(evt); ok {
		return e
	}

	return evt
}

// fetchRecord loads one record through the resource accessor.
func fetchRecord(ctx context.Context, f dao.Factory, rid *dao.ResourceID, id string) (model1.Record, error) {
	a, err := dao.AccessorFor(f, rid)
	if err != nil {
		return nil, err
	}
	g, ok := a.(dao.Getter)
	if !ok {
		return nil, fmt.Errorf("%s records cannot be fetched", rid.Resource)
	}
	ctx, cancel := context.WithTimeout(ctx, loadTimeout)
	defer cancel()

	return g.Get(ctx, id)
}

// renderRecord formats a record as highlighted YAML or plain JSON.
func renderRecord(rec model1.Record, format string) string {
	if rec == nil {
		return "[red::]No data available[-::]"
	}
	if format == formatJSON {
		bb, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return fmt.Sprintf("// Error generating JSON: %v", err)
		}
		return tview.Escape(string(bb))
	}

	bb, err := yaml.Marshal(map[string]any(rec))
	if err != nil {
		return fmt.Sprintf("[red::]# Error generating YAML: %v[-::]", err)
	}

	return highlightYAML(string(bb))
}

// highlightYAML colors keys and scalar values.
func highlightYAML(content string) string {
	var b strings.Builder
	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		idx := strings.Index(line, ":")
		if idx <= 0 {
			b.WriteString(tview.Escape(line) + "\n")
			continue
		}
		key, value := line[:idx+1], strings.TrimSpace(line[idx+1:])
		trimmed := strings.TrimLeft(key, " -")
		indent := key[:len(key)-len(trimmed)]
		if value == "" {
			fmt.Fprintf(&b, "%s[aqua::]%s[-::]\n", indent, tview.Escape(trimmed))
			continue
		}
		fmt.Fprintf(&b, "%s[aqua::]%s[-::] %s\n", indent, tview.Escape(trimmed), colorizeValue(value))
	}

	return b.String()
}

func colorizeValue(value string) string {
	trimmed := strings.Trim(value, `"'`)
	escaped := tview.Escape(value)
	switch {
	case trimmed == "true":
		return "[green::]" + escaped + "[-::]"
	case trimmed == "false":
		return "[red::]" + escaped + "[-::]"
	case trimmed == "null" || trimmed == "~":
		return "[gray::]" + escaped + "[-::]"
	}
	if _, ok := model1.ParseNumber(trimmed); ok {
		return "[fuchsia::]" + escaped + "[-::]"
	}
	switch trimmed {
	case dao.InvoicePaid, dao.InvoiceUnpaid, dao.InvoiceOverdue, dao.InvoiceCancelled, "Verified", "Pending", "Rejected":
		return fmt.Sprintf("[#%06x::]%s[-::]", tcell.Color(model1.StatusColor(trimmed)).Hex(), escaped)
	}

	return escaped
}
