package pipeline

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/rulefmt/rulefmt/errors"
	"github.com/rulefmt/rulefmt/logger"
)

// ListWatcher watches list directories and invokes a callback for changed
// .list files. Rapid change bursts are debounced per path, and writes made
// by the pipeline itself (tracked through WriteMarks) are suppressed so a
// re-format never triggers another re-format.
type ListWatcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
	marks    *WriteMarks
	onChange func(path string)
	log      *zap.SugaredLogger

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// NewListWatcher creates a watcher over the given directories.
func NewListWatcher(dirs []string, debounce time.Duration, marks *WriteMarks, onChange func(path string)) (*ListWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "creating fsnotify watcher")
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, errors.Wrapf(err, "watching %s", dir)
		}
	}
	return &ListWatcher{
		watcher:  watcher,
		debounce: debounce,
		marks:    marks,
		onChange: onChange,
		log:      logger.Named("watch"),
		timers:   make(map[string]*time.Timer),
	}, nil
}

// Start begins watching in a background goroutine.
func (w *ListWatcher) Start() {
	go w.watchLoop()
}

// Stop closes the watcher; pending debounce timers are dropped.
func (w *ListWatcher) Stop() error {
	w.mu.Lock()
	for _, t := range w.timers {
		t.Stop()
	}
	w.mu.Unlock()
	return w.watcher.Close()
}

func (w *ListWatcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if filepath.Ext(event.Name) != ListExt || isBackupFile(event.Name) {
				continue
			}
			if w.marks != nil && w.marks.Consume(event.Name) {
				w.log.Debugw("ignoring own write", "file", event.Name)
				continue
			}
			w.log.Infow("list changed", "file", event.Name, "op", event.Op.String())
			w.scheduleChange(event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warnw("watch error", "error", err)
		}
	}
}

// scheduleChange (re)arms the path's debounce timer.
func (w *ListWatcher) scheduleChange(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.timers[path]; ok {
		t.Stop()
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()
		w.onChange(path)
	})
}
