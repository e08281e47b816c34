package host

import (
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/handiism/layer-renamer/internal/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func writePNG(t *testing.T, dir, name string, w, h int) {
	t.Helper()
	f, err := os.Create(filepath.Join(dir, name))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))))
	require.NoError(t, f.Close())
}

func newTestDir(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "icons")
	require.NoError(t, os.Mkdir(dir, 0755))
	writePNG(t, dir, "b-close.png", 24, 24)
	writePNG(t, dir, "a-open.png", 32, 16)
	writePNG(t, dir, ".c-hidden.png", 64, 8)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.png"), []byte("x"), 0644))
	return dir
}

func TestImageDir_Layers(t *testing.T) {
	ctx := context.Background()
	d, err := OpenImageDir(newTestDir(t), ImageDirOptions{MaxConcurrentProbes: 2})
	require.NoError(t, err)

	layers, err := d.Layers(ctx)
	require.NoError(t, err)

	var names []string
	for _, l := range layers {
		names = append(names, l.Name)
	}
	assert.Equal(t, []string{"a-open", "b-close", "broken", "c-hidden"}, names)

	assert.Equal(t, 32, layers[0].Bounds.Width())
	assert.Equal(t, 16, layers[0].Bounds.Height())
	assert.Zero(t, layers[2].Bounds.Width(), "unreadable images have empty bounds")
	assert.False(t, layers[3].Visible)

	doc, err := d.Document(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.Document{Name: "icons", Width: 64, Height: 24, RulerUnit: "pixels"}, doc)
}

func TestImageDir_SetNameKeepsExtensionAndHiddenPrefix(t *testing.T) {
	ctx := context.Background()
	dir := newTestDir(t)
	d, err := OpenImageDir(dir, ImageDirOptions{Sanitize: true})
	require.NoError(t, err)

	require.NoError(t, d.SetName(ctx, "a-open.png", "icon: open"))
	require.NoError(t, d.SetName(ctx, ".c-hidden.png", "hidden_1"))

	assert.FileExists(t, filepath.Join(dir, "icon_ open.png"))
	assert.FileExists(t, filepath.Join(dir, ".hidden_1.png"))
	assert.NoFileExists(t, filepath.Join(dir, "a-open.png"))

	visible, err := d.Visibility(ctx, ".c-hidden.png")
	require.NoError(t, err)
	assert.False(t, visible)
}

func TestImageDir_SetNameRejects(t *testing.T) {
	ctx := context.Background()
	d, err := OpenImageDir(newTestDir(t), ImageDirOptions{})
	require.NoError(t, err)

	assert.ErrorIs(t, d.SetName(ctx, "a-open.png", "b-close"), ErrNameTaken)
	assert.ErrorIs(t, d.SetName(ctx, "a-open.png", "sub/dir"), ErrInvalidName)
	assert.ErrorIs(t, d.SetName(ctx, "a-open.png", ""), ErrInvalidName)
	assert.ErrorIs(t, d.SetName(ctx, "missing.png", "x"), ErrLayerNotFound)
	assert.ErrorIs(t, d.SetName(ctx, "a-open.png", ".cfg"), ErrInvalidName)
	assert.FileExists(t, filepath.Join(d.dir, "a-open.png"))
}

func TestImageDir_SetNameCaseOnlyCollision(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writePNG(t, dir, "Icon.png", 10, 10)
	writePNG(t, dir, "icon.png", 99, 99)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	if len(entries) != 2 {
		t.Skip("filesystem is case-insensitive")
	}

	d, err := OpenImageDir(dir, ImageDirOptions{})
	require.NoError(t, err)

	assert.ErrorIs(t, d.SetName(ctx, "Icon.png", "icon"), ErrNameTaken)

	layers, err := d.Layers(ctx)
	require.NoError(t, err)
	require.Len(t, layers, 2)
	var sizes []int
	for _, l := range layers {
		sizes = append(sizes, l.Bounds.Width())
	}
	assert.ElementsMatch(t, []int{10, 99}, sizes)
}

func TestImageDir_SetNameCaseOnlyRename(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writePNG(t, dir, "Icon.png", 10, 10)

	d, err := OpenImageDir(dir, ImageDirOptions{})
	require.NoError(t, err)

	require.NoError(t, d.SetName(ctx, "Icon.png", "icon"))

	layers, err := d.Layers(ctx)
	require.NoError(t, err)
	require.Len(t, layers, 1)
	assert.Equal(t, "icon", layers[0].Name)
	assert.Equal(t, 10, layers[0].Bounds.Width())
}

func TestImageDir_SetVisibility(t *testing.T) {
	ctx := context.Background()
	dir := newTestDir(t)
	d, err := OpenImageDir(dir, ImageDirOptions{})
	require.NoError(t, err)

	require.NoError(t, d.SetVisibility(ctx, "a-open.png", false))
	assert.FileExists(t, filepath.Join(dir, ".a-open.png"))

	require.NoError(t, d.SetVisibility(ctx, "a-open.png", false))
	require.NoError(t, d.SetVisibility(ctx, "a-open.png", true))
	assert.FileExists(t, filepath.Join(dir, "a-open.png"))
}

func TestImageDir_Selection(t *testing.T) {
	ctx := context.Background()
	d, err := OpenImageDir(newTestDir(t), ImageDirOptions{})
	require.NoError(t, err)

	sel, err := d.SelectedLayers(ctx)
	require.NoError(t, err)
	assert.Empty(t, sel)

	require.NoError(t, SelectIDs(ctx, d, []model.LayerID{"b-close.png", "a-open.png"}))
	sel, err = d.SelectedLayers(ctx)
	require.NoError(t, err)
	require.Len(t, sel, 2)
	assert.Equal(t, "a-open", sel[0].Name, "selection is reported in display order")
}

func TestImageDir_CancelledProbe(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	d, err := OpenImageDir(newTestDir(t), ImageDirOptions{})
	require.NoError(t, err)

	cancel()
	_, err = d.Layers(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOpen_ImageDirSelectsAll(t *testing.T) {
	ctx := context.Background()
	h, err := Open(ctx, OpenOptions{Dir: newTestDir(t)})
	require.NoError(t, err)

	sel, err := h.SelectedLayers(ctx)
	require.NoError(t, err)
	assert.Len(t, sel, 4)
}
