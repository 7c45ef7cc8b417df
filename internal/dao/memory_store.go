package dao

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/vdash/vdash/internal/model1"
)

// MemoryStore keeps records in process. Used for demo mode and tests.
type MemoryStore struct {
	kinds map[string]model1.Records
	mx    sync.RWMutex
}

// NewMemoryStore returns a store seeded with deep copies of seed.
func NewMemoryStore(seed map[string]model1.Records) *MemoryStore {
	s := MemoryStore{kinds: make(map[string]model1.Records, len(seed))}
	for kind, rr := range seed {
		for _, r := range rr {
			s.kinds[kind] = append(s.kinds[kind], r.Clone())
		}
	}
	return &s
}

// List returns copies of all records of kind.
func (s *MemoryStore) List(_ context.Context, kind string) (model1.Records, error) {
	s.mx.RLock()
	defer s.mx.RUnlock()

	rr := s.kinds[kind]
	out := make(model1.Records, 0, len(rr))
	for _, r := range rr {
		out = append(out, r.Clone())
	}
	return out, nil
}

// Get returns a copy of one record.
func (s *MemoryStore) Get(_ context.Context, kind, id string) (model1.Record, error) {
	s.mx.RLock()
	defer s.mx.RUnlock()

	r, ok := s.kinds[kind].Find(id)
	if !ok {
		return nil, fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
	}
	return r.Clone(), nil
}

// Put inserts or replaces a record.
func (s *MemoryStore) Put(_ context.Context, kind string, rec model1.Record) error {
	if err := validateRecord(kind, rec); err != nil {
		return err
	}
	s.mx.Lock()
	defer s.mx.Unlock()

	s.kinds[kind] = upsert(s.kinds[kind], rec.Clone())
	return nil
}

// Delete removes a record.
func (s *MemoryStore) Delete(_ context.Context, kind, id string) error {
	s.mx.Lock()
	defer s.mx.Unlock()

	rr, ok := remove(s.kinds[kind], id)
	if !ok {
		return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
	}
	s.kinds[kind] = rr
	return nil
}

// Close is a no-op.
func (*MemoryStore) Close() error { return nil }

func upsert(rr model1.Records, rec model1.Record) model1.Records {
	id := rec.ID()
	for i, r := range rr {
		if r.ID() == id {
			rr[i] = rec
			return rr
		}
	}
	return append(rr, rec)
}

func remove(rr model1.Records, id string) (model1.Records, bool) {
	for i, r := range rr {
		if r.ID() == id {
			return append(rr[:i:i], rr[i+1:]...), true
		}
	}
	return rr, false
}

func sortedKinds(m map[string]model1.Records) []string {
	kk := make([]string, 0, len(m))
	for k := range m {
		kk = append(kk, k)
	}
	sort.Strings(kk)
	return kk
}
