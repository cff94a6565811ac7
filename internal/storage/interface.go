package storage

import (
	"context"
	"io"
	"time"
)

// DocumentStore is the backend for receipt justification files (payment
// proofs, insurance correspondence) attached to ledger entities. The local
// implementation below serves development and small deployments; a cloud
// backend can replace it behind the same interface.
type DocumentStore interface {
	// GenerateUploadURL returns a URL the frontend PUTs the document to.
	GenerateUploadURL(ctx context.Context, key string, contentType string, expiresIn time.Duration) (string, error)

	// GenerateDownloadURL returns a URL the document can be fetched from.
	GenerateDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error)

	// DocumentExists reports whether a document is stored, and its size.
	DocumentExists(ctx context.Context, key string) (exists bool, size int64, err error)

	// DeleteDocument removes a stored document.
	DeleteDocument(ctx context.Context, key string) error

	// SaveDocument persists a document (used by the local upload handler).
	SaveDocument(key string, reader io.Reader) error

	// OpenDocument opens a stored document for reading.
	OpenDocument(key string) (io.ReadCloser, error)
}
