package handlers

import (
	"context"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/storage"
)

// GCSStore stores uploads in a Google Cloud Storage bucket. Objects are
// publicly readable; access control for site photos lives at the
// application layer, not the bucket.
type GCSStore struct {
	client *storage.Client
	bucket string
}

func NewGCSStore(bucket string) (*GCSStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &GCSStore{client: client, bucket: bucket}, nil
}

func (s *GCSStore) Upload(filename string, r io.Reader) (string, string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	key := objectKey(filename)
	obj := s.client.Bucket(s.bucket).Object(key)
	w := obj.NewWriter(ctx)
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", "", fmt.Errorf("write object %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return "", "", fmt.Errorf("finalize object %s: %w", key, err)
	}

	url := fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, key)
	return url, key, nil
}

func (s *GCSStore) Delete(publicID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.client.Bucket(s.bucket).Object(publicID).Delete(ctx); err != nil {
		if err == storage.ErrObjectNotExist {
			return nil
		}
		return fmt.Errorf("delete object %s: %w", publicID, err)
	}
	return nil
}
