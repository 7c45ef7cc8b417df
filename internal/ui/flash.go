package ui

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
	"github.com/rs/zerolog/log"

	"github.com/vdash/vdash/internal/model"
)

// FlashDelay sets the flash auto-clear delay.
const FlashDelay = 5 * time.Second

// Drawer queues ui updates on the event loop.
type Drawer interface {
	QueueUpdateDraw(func())
}

// Flash shows transient notifications.
type Flash struct {
	*tview.TextView

	app    Drawer
	delay  time.Duration
	cancel context.CancelFunc
	mx     sync.Mutex
}

// NewFlash returns a flash bar drawing through app. A nil app draws
// synchronously.
func NewFlash(app Drawer) *Flash {
	f := Flash{
		TextView: tview.NewTextView(),
		app:      app,
		delay:    FlashDelay,
	}
	f.SetDynamicColors(true)
	f.SetTextAlign(tview.AlignLeft)
	f.SetBorderPadding(0, 0, 1, 1)
	f.SetBackgroundColor(tcell.ColorDefault)

	return &f
}

// Notify implements model.Notifier. Every notification is logged too.
func (f *Flash) Notify(msg string, sev model.Severity) {
	ev := log.Info()
	if sev == model.SeverityError {
		ev = log.Error()
	}
	ev.Str("severity", sev.String()).Msg(msg)

	f.setMessage(sev, msg)
}

// Info displays an informational message.
func (f *Flash) Info(msg string) {
	f.Notify(msg, model.SeverityInfo)
}

// Infof displays a formatted informational message.
func (f *Flash) Infof(format string, args ...any) {
	f.Info(fmt.Sprintf(format, args...))
}

// Err displays an error message.
func (f *Flash) Err(err error) {
	if err != nil {
		f.Notify(err.Error(), model.SeverityError)
	}
}

// Errf displays a formatted error message.
func (f *Flash) Errf(format string, args ...any) {
	f.Notify(fmt.Sprintf(format, args...), model.SeverityError)
}

// Clear clears the flash message.
func (f *Flash) Clear() {
	f.mx.Lock()
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.mx.Unlock()

	f.draw(func() { f.TextView.Clear() })
}

func (f *Flash) draw(fn func()) {
	if f.app == nil {
		fn()
		return
	}
	f.app.QueueUpdateDraw(fn)
}

func (f *Flash) setMessage(sev model.Severity, msg string) {
	if msg == "" {
		f.Clear()
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	f.mx.Lock()
	if f.cancel != nil {
		f.cancel()
	}
	f.cancel = cancel
	f.mx.Unlock()

	f.draw(func() {
		f.TextView.Clear()
		f.SetTextColor(flashColor(sev))
		_, _ = fmt.Fprintf(f.TextView, "%s %s", flashEmoji(sev), tview.Escape(msg))
	})

	go f.autoClear(ctx)
}

func (f *Flash) autoClear(ctx context.Context) {
	select {
	case <-ctx.Done():
		return
	case <-time.After(f.delay):
		f.Clear()
	}
}

func flashColor(sev model.Severity) tcell.Color {
	switch sev {
	case model.SeverityError:
		return tcell.ColorRed
	case model.SeveritySuccess:
		return tcell.ColorGreen
	default:
		return tcell.ColorNavajoWhite
	}
}

func flashEmoji(sev model.Severity) string {
	switch sev {
	case model.SeverityError:
		return "😡"
	case model.SeveritySuccess:
		return "👍"
	default:
		return "😎"
	}
}

var _ model.Notifier = (*Flash)(nil)
