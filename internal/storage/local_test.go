package storage

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalDocumentStoreURLs(t *testing.T) {
	store, err := NewLocalDocumentStore("http://localhost:8080", t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	uploadURL, err := store.GenerateUploadURL(ctx, "claims/7/recu.pdf", "application/pdf", time.Minute)
	require.NoError(t, err)
	assert.Contains(t, uploadURL, "http://localhost:8080/api/v1/documents/upload/")
	assert.Contains(t, uploadURL, "key=claims%2F7%2Frecu.pdf")

	downloadURL, err := store.GenerateDownloadURL(ctx, "claims/7/recu.pdf", time.Minute)
	require.NoError(t, err)
	assert.Contains(t, downloadURL, "http://localhost:8080/api/v1/documents/download/")
	assert.Contains(t, downloadURL, "key=claims%2F7%2Frecu.pdf")

	// The download path segment is a stable hash of the key.
	again, err := store.GenerateDownloadURL(ctx, "claims/7/recu.pdf", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, downloadURL, again)
}

func TestLocalDocumentStoreLifecycle(t *testing.T) {
	store, err := NewLocalDocumentStore("", t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()
	key := "expenses/3/facture.pdf"

	exists, size, err := store.DocumentExists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Zero(t, size)

	require.NoError(t, store.SaveDocument(key, strings.NewReader("contenu")))

	exists, size, err = store.DocumentExists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, int64(7), size)

	file, err := store.OpenDocument(key)
	require.NoError(t, err)
	content, err := io.ReadAll(file)
	require.NoError(t, file.Close())
	require.NoError(t, err)
	assert.Equal(t, "contenu", string(content))

	require.NoError(t, store.DeleteDocument(ctx, key))
	exists, _, err = store.DocumentExists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)

	// Deleting an absent document is not an error.
	require.NoError(t, store.DeleteDocument(ctx, key))
}
