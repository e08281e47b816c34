package ioutils

import (
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"normal-file", "normal-file"},
		{"file:with:colons", "file_with_colons"},
		{"file<with>brackets", "file_with_brackets"},
		{"file/with\\slashes", "file_with_slashes"},
		{"file|with|pipes", "file_with_pipes"},
		{"file?with*wildcards", "file_with_wildcards"},
		{"file\"with\"quotes", "file_with_quotes"},
		{"trailing dots...", "trailing dots"},
		{"multiple   spaces", "multiple spaces"},
		{"trailing spaces   ", "trailing spaces"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFileName(tt.input))
		})
	}
}

func TestWriteFileAtomic(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "dir", "file.txt")

	require.NoError(t, WriteFileAtomic(ctx, path, []byte("first")))
	require.NoError(t, WriteFileAtomic(ctx, path, []byte("second")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestWriteFileAtomic_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := filepath.Join(t.TempDir(), "file.txt")
	err := WriteFileAtomic(ctx, path, []byte("x"))

	assert.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, path)
}

func TestImageService_Probe(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "icon.png")

	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 48, 24))))
	require.NoError(t, f.Close())

	svc := NewImageService(nil)
	info, err := svc.Probe(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, ImageInfo{Width: 48, Height: 24, Format: "png"}, info)

	bad := filepath.Join(dir, "broken.png")
	require.NoError(t, os.WriteFile(bad, []byte("not an image"), 0644))
	_, err = svc.Probe(context.Background(), bad)
	assert.Error(t, err)
}

func TestImageService_IsImage(t *testing.T) {
	svc := NewImageService(nil)
	assert.True(t, svc.IsImage("a.PNG"))
	assert.True(t, svc.IsImage("b.webp"))
	assert.False(t, svc.IsImage("notes.txt"))
	assert.False(t, svc.IsImage("noext"))

	custom := NewImageService([]string{"png", ".TGA"})
	assert.True(t, custom.IsImage("x.tga"))
	assert.False(t, custom.IsImage("x.jpg"))
}
