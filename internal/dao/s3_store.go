package dao

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vdash/vdash/internal/aws"
)

const jsonContentType = "application/json"

// S3Store keeps one <prefix>/<kind>.json object per resource in a bucket.
type S3Store struct {
	docStore
	client aws.S3API
	bucket string
	prefix string
}

// NewS3Store returns a store over bucket, keying objects under prefix.
func NewS3Store(client aws.S3API, bucket, prefix string) (*S3Store, error) {
	if client == nil {
		return nil, aws.ErrNoConnection
	}
	if bucket == "" {
		return nil, fmt.Errorf("s3 store requires a bucket")
	}
	s := S3Store{client: client, bucket: bucket, prefix: prefix}
	s.backend = s3Backend{store: &s}

	return &s, nil
}

// Key returns the object key for name.
func (s *S3Store) Key(name string) string {
	return path.Join(s.prefix, name)
}

// PutBlob uploads an exported file under <prefix>/exports.
func (s *S3Store) PutBlob(ctx context.Context, name, contentType string, body []byte) (string, error) {
	key := s.Key(path.Join("exports", path.Base(name)))
	if err := s.put(ctx, key, contentType, body); err != nil {
		return "", err
	}
	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}

func (s *S3Store) put(ctx context.Context, key, contentType string, body []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      awsv2.String(s.bucket),
		Key:         awsv2.String(key),
		Body:        bytes.NewReader(body),
		ContentType: awsv2.String(contentType),
	})
	return aws.WrapAWSError(err, "put object "+key)
}

type s3Backend struct {
	store *S3Store
}

func (b s3Backend) read(ctx context.Context, kind string) ([]byte, error) {
	key := b.store.Key(kind + ".json")
	out, err := b.store.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: awsv2.String(b.store.bucket),
		Key:    awsv2.String(key),
	})
	if err != nil {
		err = aws.WrapAWSError(err, "get object "+key)
		if errors.Is(err, aws.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	defer func() { _ = out.Body.Close() }()

	return io.ReadAll(out.Body)
}

func (b s3Backend) write(ctx context.Context, kind string, body []byte) error {
	return b.store.put(ctx, b.store.Key(kind+".json"), jsonContentType, body)
}
