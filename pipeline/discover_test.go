package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulefmt/rulefmt/errors"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestDiscoverWalksDirectories(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.list"), "")
	writeFile(t, filepath.Join(dir, "a.list"), "")
	writeFile(t, filepath.Join(dir, "nested", "c.list"), "")
	writeFile(t, filepath.Join(dir, "readme.md"), "")
	writeFile(t, filepath.Join(dir, ".git", "d.list"), "")

	got, err := Discover([]string{dir})
	require.NoError(t, err)

	want := []string{
		filepath.Join(dir, "a.list"),
		filepath.Join(dir, "b.list"),
		filepath.Join(dir, "nested", "c.list"),
	}
	assert.Equal(t, want, got)
}

func TestDiscoverAcceptsFilesVerbatim(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "emby.list")
	writeFile(t, path, "")

	got, err := Discover([]string{path, path})
	require.NoError(t, err)
	assert.Equal(t, []string{path}, got, "duplicates collapse")
}

func TestDiscoverNoInput(t *testing.T) {
	dir := t.TempDir()

	_, err := Discover([]string{dir})
	assert.True(t, errors.IsNoInput(err))
}

func TestDiscoverMissingPath(t *testing.T) {
	_, err := Discover([]string{filepath.Join(t.TempDir(), "nope")})
	assert.Error(t, err)
	assert.False(t, errors.IsNoInput(err))
}

func TestJSONPath(t *testing.T) {
	assert.Equal(t, filepath.Join("x", "emby.json"), jsonPath(filepath.Join("x", "emby.list"), ""))
	assert.Equal(t, filepath.Join("out", "emby.json"), jsonPath(filepath.Join("x", "emby.list"), "out"))
}
