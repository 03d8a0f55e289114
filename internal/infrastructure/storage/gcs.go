package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"

	"zeeknet-ats/internal/config"
)

// GCSDocumentStore keeps task documents and submissions in a Cloud Storage
// bucket. Only object keys are persisted on task rows; retrieval links are
// V4-signed on demand so a signing change never invalidates stored data.
type GCSDocumentStore struct {
	client    *storage.Client
	bucket    string
	keyPrefix string
	urlTTL    time.Duration
}

func NewGCSDocumentStore(ctx context.Context, cfg config.StorageConfig) (*GCSDocumentStore, error) {
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, fmt.Errorf("empty storage bucket")
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, err
	}

	ttl := cfg.SignedURLTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}

	return &GCSDocumentStore{
		client:    client,
		bucket:    bucket,
		keyPrefix: strings.Trim(strings.TrimSpace(cfg.KeyPrefix), "/"),
		urlTTL:    ttl,
	}, nil
}

func (s *GCSDocumentStore) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}

func (s *GCSDocumentStore) UploadDocument(ctx context.Context, content []byte, filename, contentType string) (string, error) {
	if s == nil || s.client == nil {
		return "", fmt.Errorf("nil storage client")
	}
	if len(content) == 0 {
		return "", fmt.Errorf("empty document")
	}

	key := s.objectKey(filename)
	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	if contentType != "" {
		w.ContentType = contentType
	}

	if _, err := io.Copy(w, bytes.NewReader(content)); err != nil {
		_ = w.Close()
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	return key, nil
}

func (s *GCSDocumentStore) SignedURL(ctx context.Context, key string) (string, error) {
	if s == nil || s.client == nil {
		return "", fmt.Errorf("nil storage client")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", fmt.Errorf("empty object key")
	}

	return s.client.Bucket(s.bucket).SignedURL(key, &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  "GET",
		Expires: time.Now().Add(s.urlTTL),
	})
}

func (s *GCSDocumentStore) objectKey(filename string) string {
	name := path.Base(strings.TrimSpace(filename))
	if name == "" || name == "." || name == "/" {
		name = "document"
	}
	key := uuid.NewString() + "/" + name
	if s.keyPrefix != "" {
		key = s.keyPrefix + "/" + key
	}
	return key
}
