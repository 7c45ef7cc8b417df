package dao

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/vdash/vdash/internal/model1"
)

// Resource is the base struct that all specific DAOs embed.
// It provides factory access, resource identification, and caching.
type Resource struct {
	Factory
	rid *ResourceID
	mx  sync.RWMutex
}

// Init initializes the Resource with factory and resource ID.
func (r *Resource) Init(f Factory, rid *ResourceID) {
	r.mx.Lock()
	defer r.mx.Unlock()
	r.Factory = f
	r.rid = rid
}

// ResourceID returns the resource identifier.
func (r *Resource) ResourceID() *ResourceID {
	r.mx.RLock()
	defer r.mx.RUnlock()
	return r.rid
}

// Kind returns the store kind backing the resource.
func (r *Resource) Kind() string {
	r.mx.RLock()
	defer r.mx.RUnlock()
	if r.rid == nil {
		return ""
	}
	return r.rid.Resource
}

func (r *Resource) cacheKey() string {
	r.mx.RLock()
	defer r.mx.RUnlock()
	if r.rid == nil {
		return ""
	}
	return r.rid.String()
}

// LoadList returns every record, served from cache while fresh.
func (r *Resource) LoadList(ctx context.Context) (model1.Records, error) {
	if c := r.Cache(); c != nil {
		if rr, ok := c.Get(r.cacheKey()); ok {
			return cloneRecords(rr), nil
		}
	}
	rr, err := r.Store().List(ctx, r.Kind())
	if err != nil {
		return nil, err
	}
	if c := r.Cache(); c != nil {
		c.Set(r.cacheKey(), rr)
	}

	return cloneRecords(rr), nil
}

// Get returns one record.
func (r *Resource) Get(ctx context.Context, id string) (model1.Record, error) {
	return r.Store().Get(ctx, r.Kind(), id)
}

// DeleteByID removes a record.
func (r *Resource) DeleteByID(ctx context.Context, id string) error {
	if r.ReadOnly() {
		return fmt.Errorf("delete %s %q: %w", r.Kind(), id, ErrReadOnly)
	}
	defer r.invalidate()

	return r.Store().Delete(ctx, r.Kind(), id)
}

// Save stores a record, assigning a fresh id to new ones.
func (r *Resource) Save(ctx context.Context, rec model1.Record) (model1.Record, error) {
	return r.save(ctx, rec, func() string { return uuid.NewString() })
}

func (r *Resource) save(ctx context.Context, rec model1.Record, newID func() string) (model1.Record, error) {
	if r.ReadOnly() {
		return nil, fmt.Errorf("save %s: %w", r.Kind(), ErrReadOnly)
	}
	out := rec.Clone()
	if out == nil {
		out = make(model1.Record)
	}
	if out.ID() == "" {
		out[model1.IDField] = newID()
	}
	defer r.invalidate()
	if err := r.Store().Put(ctx, r.Kind(), out); err != nil {
		return nil, err
	}

	return out, nil
}

func (r *Resource) invalidate() {
	if c := r.Cache(); c != nil {
		c.Invalidate(r.cacheKey())
	}
}

func cloneRecords(rr model1.Records) model1.Records {
	out := make(model1.Records, 0, len(rr))
	for _, r := range rr {
		out = append(out, r.Clone())
	}
	return out
}
