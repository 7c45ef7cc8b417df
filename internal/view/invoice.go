package view

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
	"github.com/rs/zerolog/log"

	"github.com/vdash/vdash/internal/dao"
	"github.com/vdash/vdash/internal/model1"
	"github.com/vdash/vdash/internal/render"
)

const invoiceStatusField = "status"

// InvoiceList lists invoices with status tabs and a summary of the
// paid, unpaid and overdue totals.
type InvoiceList struct {
	*Browser

	widgets *tview.TextView
	version uint64
}

// NewInvoiceList returns the invoice list.
func NewInvoiceList(app *App) *InvoiceList {
	l := InvoiceList{
		Browser: NewBrowser(app, &dao.InvoiceRID, invoiceStatusField),
		widgets: tview.NewTextView(),
	}
	l.widgets.SetDynamicColors(true)
	l.widgets.SetBorder(true)
	l.widgets.SetTitle(" Summary ")
	l.widgets.SetBorderColor(tcell.ColorDarkCyan)
	l.widgets.SetBackgroundColor(tcell.ColorDefault)
	l.widgets.SetBorderPadding(0, 0, 1, 1)

	l.SetHeader(l.widgets, 3)
	l.SetDeletedMsg("Column deleted successfully")
	l.AddRedrawFn(l.refreshWidgets)

	return &l
}

// refreshWidgets reloads the summary when a new load landed.
func (l *InvoiceList) refreshWidgets(data *model1.TableData, _ model1.Result) {
	v := data.Version()
	if v == l.version {
		return
	}
	l.version = v
	inv, ok := l.Model().Accessor().(*dao.Invoice)
	if !ok {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		ww, err := inv.Summary(ctx, time.Now())
		if err != nil {
			log.Warn().Err(err).Str("resource", dao.InvoiceRID.String()).Msg("Summary failed")
			return
		}
		l.app.QueueUpdateDraw(func() {
			l.widgets.Clear()
			_, _ = fmt.Fprint(l.widgets, WidgetLine(ww))
		})
	}()
}

// WidgetLine renders summary cards on one line.
func WidgetLine(ww []dao.Widget) string {
	cards := make([]string, 0, len(ww))
	for _, w := range ww {
		color := tcell.Color(model1.StatusColor(w.Title))
		amount := render.FormatAmount(strconv.FormatFloat(w.Amount, 'f', -1, 64))
		cards = append(cards, fmt.Sprintf("[#%06x::b]%s[-::-] %s [gray::](%d)[-::]", color.Hex(), w.Title, amount, w.Count))
	}

	return strings.Join(cards, "   ")
}
