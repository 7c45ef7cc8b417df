package dao

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/vdash/vdash/internal/model1"
)

// docBackend reads and writes one JSON document per record kind.
type docBackend interface {
	read(ctx context.Context, kind string) ([]byte, error)
	write(ctx context.Context, kind string, body []byte) error
}

// docStore implements Store over a docBackend. Every write rewrites the
// whole document of the kind.
type docStore struct {
	backend docBackend
	mx      sync.Mutex
}

func (s *docStore) load(ctx context.Context, kind string) (model1.Records, error) {
	bb, err := s.backend.read(ctx, kind)
	if errors.Is(err, ErrNotFound) {
		return model1.Records{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", kind, err)
	}
	var rr model1.Records
	if len(bb) == 0 {
		return model1.Records{}, nil
	}
	if err := json.Unmarshal(bb, &rr); err != nil {
		return nil, fmt.Errorf("decode %s: %w", kind, err)
	}
	return rr, nil
}

func (s *docStore) save(ctx context.Context, kind string, rr model1.Records) error {
	bb, err := json.MarshalIndent(rr, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", kind, err)
	}
	if err := s.backend.write(ctx, kind, bb); err != nil {
		return fmt.Errorf("write %s: %w", kind, err)
	}
	return nil
}

// List returns all records of kind.
func (s *docStore) List(ctx context.Context, kind string) (model1.Records, error) {
	s.mx.Lock()
	defer s.mx.Unlock()

	return s.load(ctx, kind)
}

// Get returns one record.
func (s *docStore) Get(ctx context.Context, kind, id string) (model1.Record, error) {
	s.mx.Lock()
	defer s.mx.Unlock()

	rr, err := s.load(ctx, kind)
	if err != nil {
		return nil, err
	}
	r, ok := rr.Find(id)
	if !ok {
		return nil, fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
	}
	return r, nil
}

// Put inserts or replaces a record.
func (s *docStore) Put(ctx context.Context, kind string, rec model1.Record) error {
	if err := validateRecord(kind, rec); err != nil {
		return err
	}
	s.mx.Lock()
	defer s.mx.Unlock()

	rr, err := s.load(ctx, kind)
	if err != nil {
		return err
	}
	return s.save(ctx, kind, upsert(rr, rec.Clone()))
}

// Delete removes a record.
func (s *docStore) Delete(ctx context.Context, kind, id string) error {
	s.mx.Lock()
	defer s.mx.Unlock()

	rr, err := s.load(ctx, kind)
	if err != nil {
		return err
	}
	rr, ok := remove(rr, id)
	if !ok {
		return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
	}
	return s.save(ctx, kind, rr)
}

// Close is a no-op.
func (*docStore) Close() error { return nil }
