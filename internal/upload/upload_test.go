package upload

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeImage(t *testing.T) {
	t.Run("DataURL", func(t *testing.T) {
		data, contentType, err := DecodeImage("data:image/png;base64,aGVsbG8=")
		require.NoError(t, err)
		assert.Equal(t, []byte("hello"), data)
		assert.Equal(t, "image/png", contentType)
	})

	t.Run("PlainBase64", func(t *testing.T) {
		data, contentType, err := DecodeImage("aGVsbG8=")
		require.NoError(t, err)
		assert.Equal(t, []byte("hello"), data)
		assert.Equal(t, "application/octet-stream", contentType)
	})

	t.Run("Malformed", func(t *testing.T) {
		_, _, err := DecodeImage("%%%nope%%%")
		assert.Error(t, err)
	})

	t.Run("Empty", func(t *testing.T) {
		_, _, err := DecodeImage("")
		assert.Error(t, err)
	})
}

func TestDiskStoreSave(t *testing.T) {
	dir := t.TempDir()
	store := NewDiskStore(dir)

	url, err := store.Save(context.Background(), []byte("hello"), "image/png")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "/uploads/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	blob, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), blob)
}
