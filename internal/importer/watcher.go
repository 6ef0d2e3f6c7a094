package importer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/llehouerou/folio/internal/store"
)

// settleDelay lets copies finish before a new file is read.
const settleDelay = 500 * time.Millisecond

// WatchEvent reports what a watcher did after a burst of file system events.
type WatchEvent struct {
	Result  Result
	Removed int
	Err     error
}

// Watcher imports image files created under the library directories and
// drops rows of files that disappear.
type Watcher struct {
	im     *Importer
	fw     *fsnotify.Watcher
	events chan WatchEvent
	settle time.Duration

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Watch starts watching dirs and their subdirectories.
func (im *Importer) Watch(ctx context.Context, dirs []string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := addTree(fw, dir); err != nil {
			fw.Close()
			return nil, err
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	w := &Watcher{
		im:     im,
		fw:     fw,
		events: make(chan WatchEvent, 8),
		settle: im.settle,
		cancel: cancel,
	}
	w.wg.Go(func() { w.loop(ctx) })
	return w, nil
}

// Events delivers one event per settled burst. Events are dropped when the
// buffer is full.
func (w *Watcher) Events() <-chan WatchEvent {
	return w.events
}

// Close stops watching.
func (w *Watcher) Close() error {
	w.cancel()
	err := w.fw.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) loop(ctx context.Context) {
	pending := make(map[string]bool)
	removed := make(map[string]bool)
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			switch {
			case ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write):
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					w.watchDir(ev.Name)
					continue
				}
				if !IsImageFile(ev.Name) {
					continue
				}
				pending[ev.Name] = true
				delete(removed, ev.Name)
			case ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename):
				if !IsImageFile(ev.Name) {
					continue
				}
				removed[ev.Name] = true
				delete(pending, ev.Name)
			default:
				continue
			}
			timer.Reset(w.settle)

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.emit(WatchEvent{Err: err})

		case <-timer.C:
			w.flush(ctx, pending, removed)
			clear(pending)
			clear(removed)
		}
	}
}

func (w *Watcher) flush(ctx context.Context, pending, removed map[string]bool) {
	var ev WatchEvent
	for path := range removed {
		err := w.im.repo.DeleteByPath(ctx, path)
		switch {
		case err == nil:
			ev.Removed++
		case !errors.Is(err, store.ErrNotFound):
			ev.Err = err
		}
	}

	if len(pending) > 0 {
		paths := make([]string, 0, len(pending))
		for p := range pending {
			paths = append(paths, p)
		}
		res, err := w.im.ImportFiles(ctx, paths)
		ev.Result = res
		if err != nil {
			ev.Err = err
		}
	}

	if ev.Removed == 0 && len(ev.Result.Added) == 0 && len(ev.Result.Failed) == 0 && ev.Err == nil {
		return
	}
	w.emit(ev)
}

// watchDir starts watching a directory created under a library root.
// Hidden directories are skipped.
func (w *Watcher) watchDir(dir string) {
	if strings.HasPrefix(filepath.Base(dir), ".") {
		return
	}
	if err := addTree(w.fw, dir); err != nil {
		w.emit(WatchEvent{Err: fmt.Errorf("watch %s: %w", dir, err)})
	}
}

func (w *Watcher) emit(ev WatchEvent) {
	select {
	case w.events <- ev:
	default:
	}
}

// addTree watches dir and every non-hidden directory below it.
func addTree(fw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return fw.Add(path)
	})
}
