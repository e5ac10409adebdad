package workspace

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/hexlight/internal/log"
)

// ErrWatcherClosed is returned when using a closed watcher.
var ErrWatcherClosed = errors.New("watcher is closed")

// Watcher reloads documents opened from disk when their file changes,
// which publishes ContentChanged for them.
type Watcher struct {
	ws      *Workspace
	watcher *fsnotify.Watcher

	mu     sync.Mutex
	files  map[string]string // absolute path -> document id
	dirs   map[string]int    // watched directory -> number of files
	closed bool

	errs     chan error
	closeCh  chan struct{}
	closedWg sync.WaitGroup
}

// NewWatcher creates a watcher for ws and starts its event loop.
func NewWatcher(ws *Workspace) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		ws:      ws,
		watcher: fsw,
		files:   make(map[string]string),
		dirs:    make(map[string]int),
		errs:    make(chan error, 16),
		closeCh: make(chan struct{}),
	}
	w.closedWg.Add(1)
	go w.processLoop()
	return w, nil
}

// Track starts watching the file behind document id. The parent directory
// is watched so editors that replace files on save are still seen.
func (w *Watcher) Track(id string) error {
	path, ok := w.ws.Path(id)
	if !ok {
		return fmt.Errorf("%w: %s has no file", ErrNotOpen, id)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrWatcherClosed
	}
	if _, ok := w.files[abs]; ok {
		return nil
	}

	dir := filepath.Dir(abs)
	if w.dirs[dir] == 0 {
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	w.dirs[dir]++
	w.files[abs] = id
	return nil
}

// Untrack stops watching the file behind id.
func (w *Watcher) Untrack(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for abs, doc := range w.files {
		if doc != id {
			continue
		}
		delete(w.files, abs)
		dir := filepath.Dir(abs)
		w.dirs[dir]--
		if w.dirs[dir] <= 0 {
			delete(w.dirs, dir)
			_ = w.watcher.Remove(dir)
		}
	}
}

// Errors returns reload and watch errors.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	close(w.closeCh)
	err := w.watcher.Close()
	w.closedWg.Wait()
	return err
}

func (w *Watcher) processLoop() {
	defer w.closedWg.Done()

	for {
		select {
		case <-w.closeCh:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.report(err)
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return
	}
	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return
	}

	w.mu.Lock()
	id, ok := w.files[abs]
	w.mu.Unlock()
	if !ok {
		return
	}

	log.Debug(log.CatHost, "file changed", "doc", id, "op", ev.Op.String())
	if err := w.ws.Reload(context.Background(), id); err != nil {
		w.report(err)
	}
}

func (w *Watcher) report(err error) {
	log.ErrorErr(log.CatHost, "watcher", err)
	select {
	case w.errs <- err:
	default:
	}
}
