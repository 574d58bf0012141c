package pipeline

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterWritesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "emby.list")
	w := &Writer{}

	require.NoError(t, w.Write(path, []byte("first\n")))
	require.NoError(t, w.Write(path, []byte("second\n")))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second\n", string(content))

	// No temp file debris.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriterRotatesBackups(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "emby.list")
	w := &Writer{Backups: 3}

	for _, content := range []string{"one\n", "two\n", "three\n", "four\n", "five\n"} {
		require.NoError(t, w.Write(path, []byte(content)))
	}

	read := func(p string) string {
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		return string(data)
	}
	assert.Equal(t, "five\n", read(path))
	assert.Equal(t, "four\n", read(path+".back1"))
	assert.Equal(t, "three\n", read(path+".back2"))
	assert.Equal(t, "two\n", read(path+".back3"))

	_, err := os.Stat(path + ".back4")
	assert.True(t, os.IsNotExist(err), "at most Backups generations are kept")
}

func TestWriterNoBackupsWhenDisabled(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "emby.list")
	w := &Writer{Backups: 0}

	require.NoError(t, w.Write(path, []byte("one\n")))
	require.NoError(t, w.Write(path, []byte("two\n")))

	_, err := os.Stat(path + ".back1")
	assert.True(t, os.IsNotExist(err))
}

func TestWriteMarks(t *testing.T) {
	marks := NewWriteMarks(time.Minute)

	assert.False(t, marks.Consume("/tmp/a.list"))
	marks.Mark("/tmp/a.list")
	assert.True(t, marks.Consume("/tmp/a.list"))
	assert.False(t, marks.Consume("/tmp/a.list"), "marks are one-shot")
}

func TestIsBackupFile(t *testing.T) {
	assert.True(t, isBackupFile("emby.list.back1"))
	assert.True(t, isBackupFile("/x/emby.list.back3"))
	assert.False(t, isBackupFile("emby.list"))
	assert.False(t, isBackupFile("backlog.list"))
}
