package dao

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vdash/vdash/internal/model1"
)

func TestStores(t *testing.T) {
	uu := map[string]func(t *testing.T) Store{
		"memory": func(*testing.T) Store {
			return NewMemoryStore(nil)
		},
		"file": func(t *testing.T) Store {
			s, err := NewFileStore(t.TempDir())
			require.NoError(t, err)
			return s
		},
		"sqlite": func(t *testing.T) Store {
			s, err := NewSQLiteStore(context.Background(), t.TempDir())
			require.NoError(t, err)
			return s
		},
		"s3": func(t *testing.T) Store {
			s, err := NewS3Store(newFakeS3(), "vdash-data", "dev")
			require.NoError(t, err)
			return s
		},
	}

	for k := range uu {
		open := uu[k]
		t.Run(k, func(t *testing.T) {
			ctx := context.Background()
			s := open(t)
			defer func() { _ = s.Close() }()

			rr, err := s.List(ctx, "invoice")
			require.NoError(t, err)
			assert.Empty(t, rr)

			require.NoError(t, s.Put(ctx, "invoice", model1.Record{"id": "a", "status": "Paid"}))
			require.NoError(t, s.Put(ctx, "invoice", model1.Record{"id": "b", "status": "Unpaid"}))
			require.NoError(t, s.Put(ctx, "invoice", model1.Record{"id": "a", "status": "Cancelled"}))

			rr, err = s.List(ctx, "invoice")
			require.NoError(t, err)
			assert.Equal(t, []string{"a", "b"}, rr.IDs())
			assert.Equal(t, "Cancelled", rr[0].String("status"))

			r, err := s.Get(ctx, "invoice", "b")
			require.NoError(t, err)
			assert.Equal(t, "Unpaid", r.String("status"))

			_, err = s.Get(ctx, "invoice", "zz")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Delete(ctx, "invoice", "a"))
			assert.ErrorIs(t, s.Delete(ctx, "invoice", "a"), ErrNotFound)

			rr, err = s.List(ctx, "invoice")
			require.NoError(t, err)
			assert.Equal(t, []string{"b"}, rr.IDs())

			rr, err = s.List(ctx, "customer")
			require.NoError(t, err)
			assert.Empty(t, rr)
		})
	}
}

func TestStorePutRequiresID(t *testing.T) {
	s := NewMemoryStore(nil)

	assert.Error(t, s.Put(context.Background(), "invoice", model1.Record{"status": "Paid"}))
	assert.Error(t, s.Put(context.Background(), "", model1.Record{"id": "a"}))
}

func TestMemoryStoreIsolation(t *testing.T) {
	ctx := context.Background()
	seed := map[string]model1.Records{"invoice": {{"id": "1", "status": "Paid"}}}
	s := NewMemoryStore(seed)
	seed["invoice"][0]["status"] = "Unpaid"

	r, err := s.Get(ctx, "invoice", "1")
	require.NoError(t, err)
	assert.Equal(t, "Paid", r.String("status"))

	r["status"] = "Cancelled"
	r, err = s.Get(ctx, "invoice", "1")
	require.NoError(t, err)
	assert.Equal(t, "Paid", r.String("status"))
}

func TestSeed(t *testing.T) {
	s := NewMemoryStore(nil)

	n, err := Seed(context.Background(), s, Fixtures())
	require.NoError(t, err)
	assert.Equal(t, 18, n)

	rr, err := s.List(context.Background(), "invoice")
	require.NoError(t, err)
	assert.Len(t, rr, 12)
	assert.Equal(t, "1", rr[0].ID())
}

func TestFixtures(t *testing.T) {
	ff := Fixtures()

	require.Len(t, ff["invoice"], 12)
	require.Len(t, ff["customer"], 6)
	for _, r := range ff["invoice"] {
		assert.NotEmpty(t, r.ID())
		assert.Contains(t, []string{InvoicePaid, InvoiceUnpaid, InvoiceCancelled}, r.String("status"))
	}
}

func TestBlobWriters(t *testing.T) {
	ctx := context.Background()

	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	path, err := fs.PutBlob(ctx, "../invoice-list.csv", "text/csv", []byte("a,b\n"))
	require.NoError(t, err)
	assert.Contains(t, path, "exports")
	assert.FileExists(t, path)

	fake := newFakeS3()
	ss, err := NewS3Store(fake, "vdash-data", "dev")
	require.NoError(t, err)
	uri, err := ss.PutBlob(ctx, "invoice-list.csv", "text/csv", []byte("a,b\n"))
	require.NoError(t, err)
	assert.Equal(t, "s3://vdash-data/dev/exports/invoice-list.csv", uri)
	assert.Equal(t, []byte("a,b\n"), fake.objects["dev/exports/invoice-list.csv"])
}

func TestOpenStore(t *testing.T) {
	uu := map[string]struct {
		spec StoreSpec
		err  bool
	}{
		"default": {},
		"memory":  {spec: StoreSpec{Kind: StoreMemory}},
		"file":    {spec: StoreSpec{Kind: StoreFile, Path: t.TempDir()}},
		"sqlite":  {spec: StoreSpec{Kind: StoreSQLite, Path: t.TempDir()}},
		"s3-no-conn": {
			spec: StoreSpec{Kind: StoreS3, Bucket: "b"},
			err:  true,
		},
		"file-no-path": {spec: StoreSpec{Kind: StoreFile}, err: true},
		"bogus":        {spec: StoreSpec{Kind: "tape"}, err: true},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			s, err := OpenStore(context.Background(), u.spec)
			if u.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NoError(t, s.Close())
		})
	}
}

type fakeS3 struct {
	objects map[string][]byte
	mx      sync.Mutex
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: make(map[string][]byte)}
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mx.Lock()
	defer f.mx.Unlock()

	bb, ok := f.objects[*in.Key]
	if !ok {
		return nil, &smithy.GenericAPIError{Code: "NoSuchKey", Message: "missing"}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(bb))}, nil
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	bb, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mx.Lock()
	defer f.mx.Unlock()
	f.objects[*in.Key] = bb

	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.mx.Lock()
	defer f.mx.Unlock()
	delete(f.objects, *in.Key)

	return &s3.DeleteObjectOutput{}, nil
}
