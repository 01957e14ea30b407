// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blob

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	body := []byte("hello")
	require.NoError(t, store.Put(ctx, "files/1", Object{Body: body, ContentType: "text/plain"}))

	// Mutating the caller's slice must not leak into the store.
	body[0] = 'j'

	object, err := store.Get(ctx, "files/1")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(object.Body))
	assert.Equal(t, "text/plain", object.ContentType)

	require.NoError(t, store.Delete(ctx, "files/1"))
	_, err = store.Get(ctx, "files/1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewS3Store_RequiresBucket(t *testing.T) {
	_, err := NewS3Store(context.Background(), S3Options{Region: "auto"})
	assert.Error(t, err)
}

func TestNewS3Store_CustomEndpoint(t *testing.T) {
	store, err := NewS3Store(context.Background(), S3Options{
		Bucket:          "files",
		Region:          "auto",
		Endpoint:        "http://localhost:9000",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "files", store.bucket)
}
