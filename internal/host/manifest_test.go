package host

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/layer-renamer/internal/model"
)

const testManifest = `name: mockup.psd
width: 1920
height: 1080
ruler_units: Units.PIXELS
layers:
  - id: top
    name: Button1
    bounds: {left: 0, top: 0, right: 120, bottom: 120}
    selected: true
  - name: Background
    bounds: {left: 0, top: 0, right: 1920, bottom: 1080}
    visible: false
    selected: true
  - id: bottom
    name: Unselected
`

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestOpenManifest(t *testing.T) {
	ctx := context.Background()
	m, err := OpenManifest(writeManifest(t, testManifest), nil)
	require.NoError(t, err)

	doc, err := m.Document(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.Document{Name: "mockup.psd", Width: 1920, Height: 1080, RulerUnit: "Units.PIXELS"}, doc)

	sel, err := m.SelectedLayers(ctx)
	require.NoError(t, err)
	require.Len(t, sel, 2)

	assert.Equal(t, model.LayerID("top"), sel[0].ID)
	assert.Equal(t, 120, sel[0].Bounds.Width())
	assert.True(t, sel[0].Visible)

	assert.NotEmpty(t, sel[1].ID, "missing ids are generated")
	assert.False(t, sel[1].Visible)
}

func TestManifest_CommitRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := writeManifest(t, testManifest)

	m, err := OpenManifest(path, nil)
	require.NoError(t, err)

	sel, _ := m.SelectedLayers(ctx)
	generated := sel[1].ID

	require.NoError(t, m.SetName(ctx, "top", "button1-120x120px.png"))
	require.NoError(t, m.Select(ctx, "bottom", model.SelectReplace))
	require.NoError(t, m.Commit(ctx))

	reopened, err := OpenManifest(path, nil)
	require.NoError(t, err)

	layers, _ := reopened.Layers(ctx)
	require.Len(t, layers, 3)
	assert.Equal(t, "button1-120x120px.png", layers[0].Name)
	assert.Equal(t, generated, layers[1].ID, "generated ids are persisted")
	assert.False(t, layers[1].Visible)

	sel, _ = reopened.SelectedLayers(ctx)
	require.Len(t, sel, 1)
	assert.Equal(t, model.LayerID("bottom"), sel[0].ID)
}

func TestOpenManifest_Errors(t *testing.T) {
	_, err := OpenManifest(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)

	_, err = OpenManifest(writeManifest(t, "layers: [\n"), nil)
	assert.Error(t, err)

	_, err = OpenManifest(writeManifest(t, "layers:\n  - id: x\n  - id: x\n"), nil)
	assert.Error(t, err)
}

func TestOpen_Manifest(t *testing.T) {
	ctx := context.Background()
	h, err := Open(ctx, OpenOptions{Manifest: writeManifest(t, testManifest), Select: []string{"Unselected"}})
	require.NoError(t, err)

	sel, _ := h.SelectedLayers(ctx)
	require.Len(t, sel, 1)
	assert.Equal(t, "Unselected", sel[0].Name)

	_, ok := h.(Committer)
	assert.True(t, ok)
}

func TestOpen_InvalidOptions(t *testing.T) {
	ctx := context.Background()

	_, err := Open(ctx, OpenOptions{})
	assert.Error(t, err)

	_, err = Open(ctx, OpenOptions{Manifest: "a.yaml", Dir: "b"})
	assert.Error(t, err)
}
