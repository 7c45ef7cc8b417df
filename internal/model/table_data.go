package model

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vdash/vdash/internal/dao"
	"github.com/vdash/vdash/internal/model1"
	"github.com/vdash/vdash/internal/render"
)

// TableData loads a resource through its accessor and keeps the rendered
// row store. Loads may overlap; a result is only applied when no newer
// load has been applied already.
type TableData struct {
	rid         *dao.ResourceID
	accessor    dao.Accessor
	renderer    model1.Renderer
	hidden      []string
	data        *model1.TableData
	refreshRate time.Duration
	listeners   []TableListener
	cancelFn    context.CancelFunc
	wg          sync.WaitGroup
	issued      uint64
	applied     uint64
	applyMx     sync.Mutex
	mx          sync.RWMutex
}

// NewTableData creates a new table data model. A zero refresh rate
// disables periodic reloads.
func NewTableData(rid *dao.ResourceID, refreshRate time.Duration) *TableData {
	return &TableData{
		rid:         rid,
		data:        model1.NewTableData(rid.Resource),
		refreshRate: refreshRate,
		listeners:   make([]TableListener, 0, 2),
	}
}

// Init wires the accessor and renderer registered for the resource.
func (t *TableData) Init(f dao.Factory) error {
	acc, err := dao.AccessorFor(f, t.rid)
	if err != nil {
		return err
	}
	r, err := RendererFor(t.rid)
	if err != nil {
		return err
	}
	t.SetAccessor(acc)
	t.SetRenderer(r)

	return nil
}

// SetAccessor sets the DAO accessor.
func (t *TableData) SetAccessor(a dao.Accessor) {
	t.mx.Lock()
	defer t.mx.Unlock()
	t.accessor = a
}

// Accessor returns the DAO accessor.
func (t *TableData) Accessor() dao.Accessor {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.accessor
}

// SetRenderer sets the renderer for converting records to rows.
func (t *TableData) SetRenderer(r model1.Renderer) {
	t.mx.Lock()
	defer t.mx.Unlock()
	t.renderer = r
}

// SetHidden overrides the renderer's hidden columns. A nil slice keeps
// the renderer defaults.
func (t *TableData) SetHidden(cols []string) {
	t.mx.Lock()
	defer t.mx.Unlock()
	t.hidden = cols
}

// Renderer returns the row renderer.
func (t *TableData) Renderer() model1.Renderer {
	t.mx.RLock()
	defer t.mx.RUnlock()
	return t.renderer
}

// ResourceID returns the resource being loaded.
func (t *TableData) ResourceID() *dao.ResourceID {
	return t.rid
}

// Header returns the table header.
func (t *TableData) Header() model1.Header {
	return t.data.Header()
}

// RowCount returns the number of rows.
func (t *TableData) RowCount() int {
	return t.data.RowCount()
}

// Empty returns true if no data is available.
func (t *TableData) Empty() bool {
	return t.data.Empty()
}

// Peek returns the live table data.
func (t *TableData) Peek() *model1.TableData {
	return t.data
}

// AddListener registers a table listener.
func (t *TableData) AddListener(l TableListener) {
	t.mx.Lock()
	defer t.mx.Unlock()
	t.listeners = append(t.listeners, l)
}

// RemoveListener unregisters a table listener.
func (t *TableData) RemoveListener(l TableListener) {
	t.mx.Lock()
	defer t.mx.Unlock()

	for i, listener := range t.listeners {
		if listener == l {
			t.listeners = append(t.listeners[:i], t.listeners[i+1:]...)
			return
		}
	}
}

// Watch starts one asynchronous load, then keeps reloading at the
// refresh rate until Stop is called or ctx is done.
func (t *TableData) Watch(ctx context.Context) error {
	t.mx.Lock()
	if t.accessor == nil || t.renderer == nil {
		t.mx.Unlock()
		return fmt.Errorf("table %s is not initialized", t.rid)
	}
	if t.cancelFn != nil {
		t.cancelFn()
	}
	ctx, t.cancelFn = context.WithCancel(ctx)
	rate := t.refreshRate
	t.mx.Unlock()

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		t.watchLoop(ctx, rate)
	}()

	return nil
}

func (t *TableData) watchLoop(ctx context.Context, rate time.Duration) {
	if err := t.Refresh(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Warn().Err(err).Str("resource", t.rid.String()).Msg("Initial load failed")
	}
	if rate <= 0 {
		return
	}

	ticker := time.NewTicker(rate)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := t.Refresh(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Warn().Err(err).Str("resource", t.rid.String()).Msg("Refresh failed")
			}
		}
	}
}

// Stop cancels the watch loop and waits for it to exit.
func (t *TableData) Stop() {
	t.mx.Lock()
	if t.cancelFn != nil {
		t.cancelFn()
		t.cancelFn = nil
	}
	t.mx.Unlock()

	t.wg.Wait()
}

// Refresh loads the resource and replaces the row store. Listeners hear
// about the outcome unless a newer load already landed.
func (t *TableData) Refresh(ctx context.Context) error {
	t.mx.Lock()
	accessor, renderer, hidden := t.accessor, t.renderer, t.hidden
	t.issued++
	gen := t.issued
	t.mx.Unlock()

	if accessor == nil {
		return fmt.Errorf("no accessor configured")
	}
	if renderer == nil {
		return fmt.Errorf("no renderer configured")
	}

	rr, err := accessor.LoadList(ctx)
	if err != nil {
		err = fmt.Errorf("failed to load %s: %w", t.rid.Resource, err)
		t.applyMx.Lock()
		defer t.applyMx.Unlock()
		if t.commit(gen) {
			t.data.SetError(err.Error())
			t.notifyLoadFailed(err)
		}
		return err
	}
	rows, err := render.Rows(renderer, rr)
	if err != nil {
		log.Warn().Err(err).Str("resource", t.rid.String()).Msg("Skipped records")
	}

	t.applyMx.Lock()
	defer t.applyMx.Unlock()
	if !t.commit(gen) {
		log.Debug().Str("resource", t.rid.String()).Uint64("gen", gen).Msg("Dropped stale load")
		return nil
	}
	h := renderer.Header()
	if hidden != nil {
		h = h.WithHidden(hidden...)
	}
	t.data.SetHeader(h)
	t.data.Update(rows)
	log.Debug().Str("resource", t.rid.String()).Int("count", len(rows)).Msg("Loaded")

	if len(rows) == 0 {
		t.notifyNoData(t.data)
	} else {
		t.notifyDataChanged(t.data)
	}

	return nil
}

// commit claims the right to publish the result of load gen. Callers
// hold applyMx until the result is published.
func (t *TableData) commit(gen uint64) bool {
	if gen <= t.applied {
		return false
	}
	t.applied = gen
	return true
}

// Delete removes the given records and reloads.
func (t *TableData) Delete(ctx context.Context, ids ...string) error {
	nuker, ok := t.Accessor().(dao.Nuker)
	if !ok {
		return fmt.Errorf("%s does not support deletion", t.rid)
	}
	var (
		errs   []error
		failed []string
	)
	for _, id := range ids {
		if err := nuker.DeleteByID(ctx, id); err != nil {
			errs = append(errs, err)
			if !errors.Is(err, dao.ErrNotFound) {
				failed = append(failed, id)
			}
		}
	}
	if len(errs) > 0 {
		errs = []error{&DeleteError{IDs: failed, Err: errors.Join(errs...)}}
	}
	if err := t.Refresh(ctx); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// DeleteError reports the records a delete could not remove. Records
// already gone are not listed.
type DeleteError struct {
	IDs []string
	Err error
}

func (e *DeleteError) Error() string {
	return e.Err.Error()
}

func (e *DeleteError) Unwrap() error {
	return e.Err
}

func (t *TableData) snapshot() []TableListener {
	t.mx.RLock()
	defer t.mx.RUnlock()

	ll := make([]TableListener, len(t.listeners))
	copy(ll, t.listeners)
	return ll
}

func (t *TableData) notifyNoData(data *model1.TableData) {
	for _, l := range t.snapshot() {
		l.TableNoData(data)
	}
}

func (t *TableData) notifyDataChanged(data *model1.TableData) {
	for _, l := range t.snapshot() {
		l.TableDataChanged(data)
	}
}

func (t *TableData) notifyLoadFailed(err error) {
	for _, l := range t.snapshot() {
		l.TableLoadFailed(err)
	}
}

// RendererFor returns the appropriate renderer for the given resource ID.
func RendererFor(rid *dao.ResourceID) (model1.Renderer, error) {
	switch *rid {
	case dao.InvoiceRID:
		return &render.Invoice{}, nil
	case dao.CustomerRID:
		return &render.Customer{}, nil
	default:
		return nil, fmt.Errorf("no renderer for resource: %s", rid)
	}
}
