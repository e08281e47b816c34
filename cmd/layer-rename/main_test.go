package main

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/layer-renamer/internal/config"
	"github.com/handiism/layer-renamer/internal/host"
)

const manifest = `name: Mockup
width: 1920
height: 1080
ruler_units: pixels
layers:
  - id: a
    name: Button
    bounds: {left: 0, top: 0, right: 120, bottom: 40}
    selected: true
  - id: b
    name: Icon
    bounds: {left: 0, top: 0, right: 24, bottom: 24}
    visible: false
    selected: true
  - id: c
    name: Background
`

// testEnv writes a config whose history lives in a temp dir.
func testEnv(t *testing.T) (configPath, historyPath string) {
	t.Helper()
	dir := t.TempDir()

	s := config.DefaultSettings()
	s.HistoryPath = filepath.Join(dir, "recent.txt")
	configPath = filepath.Join(dir, "settings.json")
	require.NoError(t, s.Save(configPath))

	return configPath, s.HistoryPath
}

func writeManifest(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mockup.yaml")
	require.NoError(t, os.WriteFile(path, []byte(manifest), 0644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRename_Manifest(t *testing.T) {
	configPath, historyPath := testEnv(t)
	manifestPath := writeManifest(t)

	_, err := execute(t, "rename", "--config", configPath, "--manifest", manifestPath, "-t", "{layer:name}_{nn:1}")
	require.NoError(t, err)

	m, err := host.OpenManifest(manifestPath, nil)
	require.NoError(t, err)
	states := m.States()
	assert.Equal(t, "Button_1", states[0].Name)
	assert.Equal(t, "Icon_2", states[1].Name)
	assert.False(t, states[1].Visible)
	assert.Equal(t, "Background", states[2].Name)

	data, err := os.ReadFile(historyPath)
	require.NoError(t, err)
	assert.Equal(t, "{layer:name}_{nn:1}\n", string(data))
}

func TestRename_SelectPatterns(t *testing.T) {
	configPath, _ := testEnv(t)
	manifestPath := writeManifest(t)

	_, err := execute(t, "rename", "--config", configPath, "--manifest", manifestPath,
		"--select", "Back*", "-t", "bg")
	require.NoError(t, err)

	m, err := host.OpenManifest(manifestPath, nil)
	require.NoError(t, err)
	states := m.States()
	assert.Equal(t, "Button", states[0].Name)
	assert.Equal(t, "bg", states[2].Name)
}

func TestRename_FailureExitsWithError(t *testing.T) {
	configPath, _ := testEnv(t)
	dir := t.TempDir()
	for _, name := range []string{"a.png", "b.png"} {
		f, err := os.Create(filepath.Join(dir, name))
		require.NoError(t, err)
		require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 4, 4))))
		require.NoError(t, f.Close())
	}

	out, err := execute(t, "rename", "--config", configPath, "--dir", dir, "-t", "same")
	require.Error(t, err)
	assert.Contains(t, out, "✗")

	_, statErr := os.Stat(filepath.Join(dir, "same.png"))
	assert.NoError(t, statErr)
	_, statErr = os.Stat(filepath.Join(dir, "b.png"))
	assert.NoError(t, statErr)
}

func TestPreview(t *testing.T) {
	configPath, historyPath := testEnv(t)
	manifestPath := writeManifest(t)

	out, err := execute(t, "preview", "--config", configPath, "--manifest", manifestPath,
		"-t", "{layer:name:lowercase}-{n}")
	require.NoError(t, err)

	assert.Contains(t, out, "Preview: button-$↑")
	assert.Contains(t, out, "$↑ counts down to the last layer")
	assert.Contains(t, out, "Button → button-2")
	assert.Contains(t, out, "Icon → icon-1")

	_, statErr := os.Stat(historyPath)
	assert.True(t, os.IsNotExist(statErr), "preview must not touch history")
}

func TestHistory(t *testing.T) {
	configPath, historyPath := testEnv(t)

	out, err := execute(t, "history", "--config", configPath)
	require.NoError(t, err)
	assert.Contains(t, out, "No recent renames")

	require.NoError(t, os.WriteFile(historyPath, []byte("first,second\n"), 0644))
	out, err = execute(t, "history", "--config", configPath)
	require.NoError(t, err)
	assert.Equal(t, "1. second\n2. first\n", out)
}

func TestKeywords(t *testing.T) {
	configPath, _ := testEnv(t)

	out, err := execute(t, "keywords", "--config", configPath)
	require.NoError(t, err)

	for _, want := range []string{"Layer keywords", "{layer:name}", "{doc:rulerunits}", "{month:0}", "{nn:1}"} {
		assert.Contains(t, out, want)
	}
}

func TestPreview_NoCountersNoLegend(t *testing.T) {
	configPath, _ := testEnv(t)
	manifestPath := writeManifest(t)

	out, err := execute(t, "preview", "--config", configPath, "--manifest", manifestPath,
		"-t", "{layer:name}")
	require.NoError(t, err)
	assert.NotContains(t, out, "counts down")
}

func TestKeywords_Describe(t *testing.T) {
	configPath, _ := testEnv(t)

	out, err := execute(t, "keywords", "--config", configPath, "{layer:width}", "{nn:1}")
	require.NoError(t, err)
	assert.Contains(t, out, "{layer:width}")
	assert.Contains(t, out, "(Layer keywords)")
	assert.Contains(t, out, "(Number keywords)")
	assert.NotContains(t, out, "{doc:rulerunits}")

	_, err = execute(t, "keywords", "--config", configPath, "{layer:nope}")
	assert.ErrorContains(t, err, "unknown keyword")
}

func TestRename_NoDocument(t *testing.T) {
	configPath, _ := testEnv(t)

	_, err := execute(t, "rename", "--config", configPath, "-t", "x")
	assert.Error(t, err)
}
