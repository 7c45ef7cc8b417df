package dao

import (
	"fmt"
	"slices"
	"sync"
)

type accessorRegistry struct {
	ctors map[string]func() Accessor
	rids  map[string]*ResourceID
	mx    sync.RWMutex
}

var registry = accessorRegistry{
	ctors: make(map[string]func() Accessor),
	rids:  make(map[string]*ResourceID),
}

// RegisterAccessor makes rid available, each lookup getting a fresh
// accessor from ctor.
func RegisterAccessor(rid *ResourceID, ctor func() Accessor) {
	registry.mx.Lock()
	defer registry.mx.Unlock()

	registry.ctors[rid.String()] = ctor
	registry.rids[rid.String()] = rid
}

// AccessorFor returns an accessor for rid bound to f.
func AccessorFor(f Factory, rid *ResourceID) (Accessor, error) {
	registry.mx.RLock()
	ctor, ok := registry.ctors[rid.String()]
	registry.mx.RUnlock()
	if !ok {
		return nil, fmt.Errorf("no accessor for: %s", rid)
	}
	acc := ctor()
	acc.Init(f, rid)

	return acc, nil
}

// ListAccessors returns the registered resources ordered by id.
func ListAccessors() []*ResourceID {
	registry.mx.RLock()
	defer registry.mx.RUnlock()

	keys := make([]string, 0, len(registry.rids))
	for k := range registry.rids {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	out := make([]*ResourceID, 0, len(keys))
	for _, k := range keys {
		out = append(out, registry.rids[k])
	}

	return out
}

// LookupResource resolves a resource by bare name, e.g. "invoice", or by
// full id.
func LookupResource(name string) (*ResourceID, bool) {
	for _, rid := range ListAccessors() {
		if rid.Resource == name || rid.String() == name {
			return rid, true
		}
	}

	return nil, false
}
