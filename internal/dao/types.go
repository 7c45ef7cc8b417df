package dao

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vdash/vdash/internal/model1"
)

var (
	// ErrNotFound is returned when a record id is unknown to a store.
	ErrNotFound = errors.New("record not found")

	// ErrReadOnly is returned for writes while running read only.
	ErrReadOnly = errors.New("read only mode")
)

// ResourceID identifies a record collection, e.g. apps/invoice.
type ResourceID struct {
	Group    string
	Resource string
}

// String returns a string representation in the form "group/resource".
func (r ResourceID) String() string {
	return fmt.Sprintf("%s/%s", r.Group, r.Resource)
}

// Parse parses a string in the form "group/resource" into a ResourceID.
func (r *ResourceID) Parse(s string) error {
	group, resource, ok := strings.Cut(s, "/")
	if !ok || group == "" || resource == "" || strings.Contains(resource, "/") {
		return fmt.Errorf("invalid resource ID format: %s (expected group/resource)", s)
	}
	r.Group, r.Resource = group, resource
	return nil
}

// Predefined resource ids.
var (
	InvoiceRID  = ResourceID{Group: "apps", Resource: "invoice"}
	CustomerRID = ResourceID{Group: "apps", Resource: "customer"}
)

// Factory hands out the shared store and cache.
type Factory interface {
	Store() Store
	Cache() *ListCache
	ReadOnly() bool
}

// Lister loads the full row store of a resource.
type Lister interface {
	LoadList(ctx context.Context) (model1.Records, error)
}

// Getter retrieves a single record by id.
type Getter interface {
	Get(ctx context.Context, id string) (model1.Record, error)
}

// Nuker deletes a record by id.
type Nuker interface {
	DeleteByID(ctx context.Context, id string) error
}

// Saver creates or updates a record and returns the stored version.
type Saver interface {
	Save(ctx context.Context, rec model1.Record) (model1.Record, error)
}

// Accessor combines getting and listing capabilities with initialization.
type Accessor interface {
	Getter
	Lister
	Init(Factory, *ResourceID)
	ResourceID() *ResourceID
}
