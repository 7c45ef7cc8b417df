package view

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/vdash/vdash/internal/dao"
	"github.com/vdash/vdash/internal/model"
	"github.com/vdash/vdash/internal/model1"
	"github.com/vdash/vdash/internal/ui"
)

const barWidth = 40

// Stats summarizes the stored records.
type Stats struct {
	Invoices  model1.Tabs
	Customers model1.Tabs
	Widgets   []dao.Widget
}

// ComputeStats counts records per status, All first.
func ComputeStats(invoices, customers model1.Records, now time.Time) Stats {
	return Stats{
		Invoices:  statusTabs(invoices),
		Customers: statusTabs(customers),
		Widgets:   dao.Summarize(invoices, now),
	}
}

func statusTabs(rr model1.Records) model1.Tabs {
	tt := model1.Tabs{{Name: model1.AllTab, Count: len(rr)}}
	pos := make(map[string]int)
	for _, r := range rr {
		s := r.String("status")
		if s == "" {
			continue
		}
		if i, ok := pos[s]; ok {
			tt[i].Count++
			continue
		}
		pos[s] = len(tt)
		tt = append(tt, model1.Tab{Name: s, Count: 1})
	}

	return tt
}

// Dashboard shows record counts per resource and per status. The chart
// flavor draws the counts as bars.
type Dashboard struct {
	*tview.TextView

	app      *App
	chart    bool
	actions  *ui.KeyActions
	cancelFn context.CancelFunc
}

// NewDashboard returns a dashboard.
func NewDashboard(app *App, chart bool) *Dashboard {
	d := Dashboard{
		TextView: tview.NewTextView(),
		app:      app,
		chart:    chart,
		actions:  ui.NewKeyActions(),
	}
	d.SetDynamicColors(true)
	d.SetBorder(true)
	d.SetBorderPadding(1, 1, 2, 2)
	d.SetBackgroundColor(tcell.ColorDefault)
	d.SetBorderColor(tcell.ColorDarkCyan)
	if chart {
		d.SetTitle(" Payment Response ")
	} else {
		d.SetTitle(" Dashboard ")
	}

	return &d
}

// Init binds the keys.
func (d *Dashboard) Init(context.Context) error {
	d.actions.Add(ui.KeyR, ui.NewKeyAction("Refresh", d.refreshCmd, true))
	d.SetInputCapture(func(evt *tcell.EventKey) *tcell.EventKey {
		evt, _ = d.actions.Dispatch(evt)
		return evt
	})

	return nil
}

// Start loads the counts.
func (d *Dashboard) Start() {
	d.Stop()
	ctx, cancel := context.WithCancel(context.Background())
	d.cancelFn = cancel
	d.SetText("[gray::]Loading...")
	go d.load(ctx)
}

// Stop cancels a pending load.
func (d *Dashboard) Stop() {
	if d.cancelFn != nil {
		d.cancelFn()
		d.cancelFn = nil
	}
}

// Name returns the view name.
func (d *Dashboard) Name() string {
	if d.chart {
		return "chart"
	}
	return "dashboard"
}

// Hints returns menu hints.
func (d *Dashboard) Hints() ui.MenuHints {
	return d.actions.Hints()
}

func (d *Dashboard) refreshCmd(*tcell.EventKey) *tcell.EventKey {
	d.Start()
	return nil
}

func (d *Dashboard) load(ctx context.Context) {
	stats, err := LoadStats(ctx, d.app.factory, time.Now())
	if ctx.Err() != nil {
		return
	}
	d.app.QueueUpdateDraw(func() {
		if err != nil {
			d.SetText("[red::]" + tview.Escape(err.Error()))
			d.app.Notify(err.Error(), model.SeverityError)
			return
		}
		d.SetText(RenderStats(stats, d.chart))
	})
}

// LoadStats loads invoices and customers concurrently.
func LoadStats(ctx context.Context, f dao.Factory, now time.Time) (Stats, error) {
	ctx, cancel := context.WithTimeout(ctx, loadTimeout)
	defer cancel()

	var invoices, customers model1.Records
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rr, err := listRecords(ctx, f, &dao.InvoiceRID)
		invoices = rr
		return err
	})
	g.Go(func() error {
		rr, err := listRecords(ctx, f, &dao.CustomerRID)
		customers = rr
		return err
	})
	if err := g.Wait(); err != nil {
		return Stats{}, err
	}
	log.Debug().Int("invoices", len(invoices)).Int("customers", len(customers)).Msg("Dashboard loaded")

	return ComputeStats(invoices, customers, now), nil
}

func listRecords(ctx context.Context, f dao.Factory, rid *dao.ResourceID) (model1.Records, error) {
	a, err := dao.AccessorFor(f, rid)
	if err != nil {
		return nil, err
	}
	rr, err := a.LoadList(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", rid.Resource, err)
	}

	return rr, nil
}

// RenderStats renders the dashboard body.
func RenderStats(s Stats, chart bool) string {
	var b strings.Builder
	b.WriteString(WidgetLine(s.Widgets))
	b.WriteString("\n\n")
	section(&b, "Invoices", s.Invoices, chart)
	b.WriteString("\n")
	section(&b, "Customers", s.Customers, chart)

	return b.String()
}

func section(b *strings.Builder, title string, tt model1.Tabs, chart bool) {
	fmt.Fprintf(b, "[aqua::b]%s[-::-] [gray::](%d)[-::]\n", title, tt.Count(model1.AllTab))
	total := tt.Count(model1.AllTab)
	for _, t := range tt[1:] {
		color := tcell.Color(model1.StatusColor(t.Name))
		fmt.Fprintf(b, "  [#%06x::]%-10s[-::] %4d", color.Hex(), t.Name, t.Count)
		if chart {
			fmt.Fprintf(b, "  [#%06x::]%s[-::]", color.Hex(), Bar(t.Count, total, barWidth))
		} else if total > 0 {
			fmt.Fprintf(b, "  [gray::]%.1f%%[-::]", float64(t.Count)*100/float64(total))
		}
		b.WriteString("\n")
	}
}

// Bar draws n out of total as a bar of at most width cells.
func Bar(n, total, width int) string {
	if total <= 0 || n <= 0 {
		return ""
	}
	w := n * width / total
	if w == 0 {
		w = 1
	}

	return strings.Repeat("█", w)
}
