package expense

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
)

// gcsTimeout bounds a single object operation
const gcsTimeout = 2 * time.Minute

// GCSStorage implements the Storage interface on a Google Cloud Storage bucket.
// It uses Application Default Credentials.
type GCSStorage struct {
	client *storage.Client
	bucket string
	prefix string
}

// NewGCSStorage creates a GCSStorage that keeps objects under prefix in bucket
func NewGCSStorage(ctx context.Context, bucket, prefix string) (*GCSStorage, error) {
	if bucket == "" {
		return nil, fmt.Errorf("gcs bucket is required")
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return NewGCSStorageWithClient(client, bucket, prefix), nil
}

// NewGCSStorageWithClient creates a GCSStorage on an existing client
func NewGCSStorageWithClient(client *storage.Client, bucket, prefix string) *GCSStorage {
	return &GCSStorage{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}
}

// Save uploads a file and returns its name relative to the prefix
func (g *GCSStorage) Save(filename string, data []byte) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), gcsTimeout)
	defer cancel()

	name := path.Base(filename)
	w := g.client.Bucket(g.bucket).Object(g.objectName(name)).NewWriter(ctx)
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write GCS object: %w", err)
	}
	// Close finalizes the upload
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize upload: %w", err)
	}
	return name, nil
}

// Get downloads a file
func (g *GCSStorage) Get(name string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), gcsTimeout)
	defer cancel()

	r, err := g.client.Bucket(g.bucket).Object(g.objectName(name)).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("open GCS object reader: %w", err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read GCS object: %w", err)
	}
	return data, nil
}

// Delete removes a file
func (g *GCSStorage) Delete(name string) error {
	ctx, cancel := context.WithTimeout(context.Background(), gcsTimeout)
	defer cancel()

	if err := g.client.Bucket(g.bucket).Object(g.objectName(name)).Delete(ctx); err != nil {
		return fmt.Errorf("delete GCS object: %w", err)
	}
	return nil
}

// Close closes the storage client
func (g *GCSStorage) Close() error {
	return g.client.Close()
}

func (g *GCSStorage) objectName(name string) string {
	name = path.Base(name)
	if g.prefix == "" {
		return name
	}
	return g.prefix + "/" + name
}
