package dao

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// DataFactory implements the Factory interface over a single store.
type DataFactory struct {
	store    Store
	cache    *ListCache
	readOnly bool
}

// NewFactory creates a new DataFactory with the given store.
func NewFactory(store Store, readOnly bool) *DataFactory {
	return &DataFactory{
		store:    store,
		cache:    NewListCache(DefaultCacheTTL),
		readOnly: readOnly,
	}
}

// Store returns the record store.
func (f *DataFactory) Store() Store {
	return f.store
}

// Cache returns the list cache.
func (f *DataFactory) Cache() *ListCache {
	return f.cache
}

// ReadOnly returns true if writes are refused.
func (f *DataFactory) ReadOnly() bool {
	return f.readOnly
}

// Close releases the store.
func (f *DataFactory) Close() error {
	st := f.cache.Stats()
	log.Debug().Int("hits", st.Hits).Int("misses", st.Misses).Msg("List cache")
	f.cache.Purge()

	return f.store.Close()
}

// SwitchFactory hands out the factory currently installed. The app swaps
// it when the store is reopened, e.g. after an AWS profile change, so
// accessors keep working against the live store.
type SwitchFactory struct {
	current *DataFactory
	mx      sync.RWMutex
}

// NewSwitchFactory returns a switch over f.
func NewSwitchFactory(f *DataFactory) *SwitchFactory {
	return &SwitchFactory{current: f}
}

// Swap installs f and returns the previous factory.
func (s *SwitchFactory) Swap(f *DataFactory) *DataFactory {
	s.mx.Lock()
	defer s.mx.Unlock()

	old := s.current
	s.current = f
	return old
}

// Current returns the installed factory.
func (s *SwitchFactory) Current() *DataFactory {
	s.mx.RLock()
	defer s.mx.RUnlock()

	return s.current
}

// Store returns the live store.
func (s *SwitchFactory) Store() Store {
	return s.Current().Store()
}

// Cache returns the live cache.
func (s *SwitchFactory) Cache() *ListCache {
	return s.Current().Cache()
}

// ReadOnly returns true if writes are refused.
func (s *SwitchFactory) ReadOnly() bool {
	return s.Current().ReadOnly()
}

// Close releases the live store.
func (s *SwitchFactory) Close() error {
	return s.Current().Close()
}
