package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// LocalDocumentStore keeps receipt documents on the local filesystem and
// serves them through the backend's own document endpoints.
type LocalDocumentStore struct {
	baseURL      string
	documentsDir string
}

func NewLocalDocumentStore(baseURL, dir string) (*LocalDocumentStore, error) {
	documentsDir := filepath.Join(dir, "documents")
	if err := os.MkdirAll(documentsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create documents directory: %w", err)
	}
	return &LocalDocumentStore{
		baseURL:      baseURL,
		documentsDir: documentsDir,
	}, nil
}

// GenerateUploadURL returns a one-shot URL on this server. The key travels
// in the query string so the upload handler knows where to store the body.
func (s *LocalDocumentStore) GenerateUploadURL(ctx context.Context, key string, contentType string, expiresIn time.Duration) (string, error) {
	token := uuid.New().String()
	return fmt.Sprintf("%s/api/v1/documents/upload/%s?key=%s", s.baseURL, token, url.QueryEscape(key)), nil
}

func (s *LocalDocumentStore) GenerateDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error) {
	return fmt.Sprintf("%s/api/v1/documents/download/%s?key=%s", s.baseURL, encodeKey(key), url.QueryEscape(key)), nil
}

func (s *LocalDocumentStore) DocumentExists(ctx context.Context, key string) (bool, int64, error) {
	info, err := os.Stat(filepath.Join(s.documentsDir, key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, 0, nil
		}
		return false, 0, err
	}
	return true, info.Size(), nil
}

func (s *LocalDocumentStore) DeleteDocument(ctx context.Context, key string) error {
	err := os.Remove(filepath.Join(s.documentsDir, key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

func (s *LocalDocumentStore) SaveDocument(key string, reader io.Reader) error {
	fullPath := filepath.Join(s.documentsDir, key)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}

func (s *LocalDocumentStore) OpenDocument(key string) (io.ReadCloser, error) {
	file, err := os.Open(filepath.Join(s.documentsDir, key))
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	return file, nil
}

// encodeKey creates a URL-safe hash of the key
func encodeKey(key string) string {
	hash := sha256.Sum256([]byte(key))
	return hex.EncodeToString(hash[:16])
}
