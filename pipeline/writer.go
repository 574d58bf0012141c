package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"github.com/rulefmt/rulefmt/errors"
)

const artifactFileMode = 0644

// WriteMarks tracks recent writes made by the pipeline itself so the watch
// loop can tell its own artifact writes apart from user edits and skip
// them instead of re-formatting in a loop.
type WriteMarks struct {
	mu    sync.Mutex
	ttl   time.Duration
	paths map[string]time.Time
}

// NewWriteMarks creates a tracker; marks expire after ttl.
func NewWriteMarks(ttl time.Duration) *WriteMarks {
	return &WriteMarks{ttl: ttl, paths: make(map[string]time.Time)}
}

// Mark records an imminent own write to path.
func (m *WriteMarks) Mark(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paths[path] = time.Now()
}

// Consume reports whether path was marked recently and clears the mark.
func (m *WriteMarks) Consume(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	at, ok := m.paths[path]
	if !ok {
		return false
	}
	delete(m.paths, path)
	return time.Since(at) <= m.ttl
}

// Writer persists artifacts atomically: content lands in a temp file in
// the target directory and is renamed over the destination, so a crash
// never leaves a partial artifact. Backups > 0 keeps that many rotating
// .backN generations of the previous content.
type Writer struct {
	Backups int
	Marks   *WriteMarks // optional, for watch mode
}

// Write replaces path with data.
func (w *Writer) Write(path string, data []byte) error {
	if err := w.rotateBackups(path); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return errors.Wrapf(err, "creating temp file in %s", dir)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "writing temp file for %s", path)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "closing temp file for %s", path)
	}
	if err := os.Chmod(tmpName, artifactFileMode); err != nil {
		return errors.Wrapf(err, "setting mode on temp file for %s", path)
	}

	if w.Marks != nil {
		w.Marks.Mark(path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errors.Wrapf(err, "replacing %s", path)
	}
	return nil
}

// rotateBackups shifts existing backups one generation down and copies the
// current file to .back1. With Backups == 3: .back3 is dropped,
// .back2 -> .back3, .back1 -> .back2, current -> .back1.
func (w *Writer) rotateBackups(path string) error {
	if w.Backups <= 0 {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil // nothing to back up
	}

	oldest := backupName(path, w.Backups)
	if err := os.Remove(oldest); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "removing oldest backup of %s", path)
	}
	for n := w.Backups - 1; n >= 1; n-- {
		from := backupName(path, n)
		if _, err := os.Stat(from); err != nil {
			continue
		}
		if err := os.Rename(from, backupName(path, n+1)); err != nil {
			return errors.Wrapf(err, "rotating backup %s", from)
		}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading %s for backup", path)
	}
	if err := os.WriteFile(backupName(path, 1), content, artifactFileMode); err != nil {
		return errors.Wrapf(err, "creating backup of %s", path)
	}
	return nil
}

func backupName(path string, n int) string {
	return fmt.Sprintf("%s.back%d", path, n)
}

var backupSuffix = regexp.MustCompile(`\.back[0-9]+$`)

// isBackupFile reports whether path looks like a rotated backup.
func isBackupFile(path string) bool {
	return backupSuffix.MatchString(path)
}
