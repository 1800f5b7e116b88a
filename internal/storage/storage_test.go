package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("save returns a served path", func(t *testing.T) {
		path, err := store.Save(ctx, []byte("jpeg-bytes"), "house.jpg", "image/jpeg")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(path, "/uploads/"))
		assert.True(t, strings.HasSuffix(path, ".jpg"))

		paths, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, paths, path)
	})

	t.Run("non-image content type rejected", func(t *testing.T) {
		_, err := store.Save(ctx, []byte("#!/bin/sh"), "script.sh", "text/x-shellscript")
		assert.Error(t, err)
	})

	t.Run("oversized file rejected", func(t *testing.T) {
		_, err := store.Save(ctx, make([]byte, MaxImageBytes+1), "huge.png", "image/png")
		assert.Error(t, err)
	})

	t.Run("remove deletes and tolerates repeats", func(t *testing.T) {
		path, err := store.Save(ctx, []byte("png-bytes"), "gone.png", "image/png")
		require.NoError(t, err)

		require.NoError(t, store.Remove(ctx, path))
		require.NoError(t, store.Remove(ctx, path))

		paths, err := store.List(ctx)
		require.NoError(t, err)
		assert.NotContains(t, paths, path)
	})
}

func TestRegistry(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	Register(store)
	assert.Equal(t, ImageStore(store), Get())
}
