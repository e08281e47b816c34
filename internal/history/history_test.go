package history

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_AddDeduplicates(t *testing.T) {
	h := New(5)
	h.Add("a")
	h.Add("b")
	h.Add("c")
	h.Add("a")

	assert.Equal(t, []string{"b", "c", "a"}, h.Entries())
	assert.Equal(t, []string{"a", "c", "b"}, h.Recent())
}

func TestHistory_TrimsToLimit(t *testing.T) {
	h := New(5)
	for _, tmpl := range []string{"1", "2", "3", "4", "5", "6", "7"} {
		h.Add(tmpl)
	}

	assert.Equal(t, []string{"3", "4", "5", "6", "7"}, h.Entries())
	assert.Equal(t, 5, h.Len())
}

func TestHistory_ReAddAtLimitKeepsAll(t *testing.T) {
	h := New(3)
	h.Add("a")
	h.Add("b")
	h.Add("c")
	h.Add("a")

	assert.Equal(t, []string{"b", "c", "a"}, h.Entries())
}

func TestHistory_IgnoresBlank(t *testing.T) {
	h := New(0)
	h.Add("")
	h.Add("   ")

	assert.Zero(t, h.Len())
	assert.Equal(t, DefaultLimit, h.Limit())
}

func TestHistory_EntriesAreCopies(t *testing.T) {
	h := New(5)
	h.Add("a")

	e := h.Entries()
	e[0] = "changed"

	assert.Equal(t, []string{"a"}, h.Entries())
}

func TestLoad_MissingFile(t *testing.T) {
	h := Load(filepath.Join(t.TempDir(), "missing.txt"), 5)

	assert.Zero(t, h.Len())
}

func TestLoad_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recent.txt")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	assert.Zero(t, Load(path, 5).Len())
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg", "recent.txt")

	h := New(5)
	h.Add("{layer:name}")
	h.Add("{layer:name}_{nn:1}")
	require.NoError(t, h.Save(context.Background(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{layer:name},{layer:name}_{nn:1}\n", string(data))

	loaded := Load(path, 5)
	assert.Equal(t, h.Entries(), loaded.Entries())
}

func TestLoad_TrimsOversizedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recent.txt")
	require.NoError(t, os.WriteFile(path, []byte("a,b,c,a,d,e,f\n"), 0644))

	assert.Equal(t, []string{"b", "c", "d", "e", "f"}, Load(path, 5).Entries())
	assert.Equal(t, []string{"e", "f"}, Load(path, 2).Entries())
}

func TestLoad_CommaInTemplateSplits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recent.txt")

	h := New(5)
	h.Add("{layer:name}, copy")
	require.NoError(t, h.Save(context.Background(), path))

	assert.Equal(t, []string{"{layer:name}", " copy"}, Load(path, 5).Entries())
}
