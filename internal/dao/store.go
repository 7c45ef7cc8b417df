package dao

import (
	"context"
	"fmt"

	"github.com/vdash/vdash/internal/aws"
	"github.com/vdash/vdash/internal/model1"
)

// Store persists records grouped by resource kind. List preserves
// insertion order; Put replaces a record with the same id in place.
type Store interface {
	List(ctx context.Context, kind string) (model1.Records, error)
	Get(ctx context.Context, kind, id string) (model1.Record, error)
	Put(ctx context.Context, kind string, rec model1.Record) error
	Delete(ctx context.Context, kind, id string) error
	Close() error
}

// BlobWriter is implemented by stores able to hold exported files.
type BlobWriter interface {
	PutBlob(ctx context.Context, name, contentType string, body []byte) (string, error)
}

// StoreKind names a store backend.
type StoreKind string

const (
	StoreMemory StoreKind = "memory"
	StoreFile   StoreKind = "file"
	StoreSQLite StoreKind = "sqlite"
	StoreS3     StoreKind = "s3"
)

// StoreKinds lists the supported backends.
var StoreKinds = []StoreKind{StoreMemory, StoreFile, StoreSQLite, StoreS3}

// StoreSpec selects and configures a backend.
type StoreSpec struct {
	Kind   StoreKind
	Path   string
	Bucket string
	Prefix string
	Conn   aws.Connection
}

// OpenStore returns the backend described by spec.
func OpenStore(ctx context.Context, spec StoreSpec) (Store, error) {
	switch spec.Kind {
	case StoreMemory, "":
		return NewMemoryStore(Fixtures()), nil
	case StoreFile:
		return NewFileStore(spec.Path)
	case StoreSQLite:
		return NewSQLiteStore(ctx, spec.Path)
	case StoreS3:
		if spec.Conn == nil {
			return nil, aws.ErrNoConnection
		}
		client, err := spec.Conn.S3()
		if err != nil {
			return nil, err
		}
		return NewS3Store(client, spec.Bucket, spec.Prefix)
	default:
		return nil, fmt.Errorf("unknown store kind %q", spec.Kind)
	}
}

// Seed writes every fixture record into store.
func Seed(ctx context.Context, s Store, fixtures map[string]model1.Records) (int, error) {
	var n int
	for _, kind := range sortedKinds(fixtures) {
		for _, rec := range fixtures[kind] {
			if err := s.Put(ctx, kind, rec); err != nil {
				return n, fmt.Errorf("seed %s %s: %w", kind, rec.ID(), err)
			}
			n++
		}
	}
	return n, nil
}

func validateRecord(kind string, rec model1.Record) error {
	if kind == "" {
		return fmt.Errorf("record kind is required")
	}
	if rec.ID() == "" {
		return fmt.Errorf("%s record has no id", kind)
	}
	return nil
}
