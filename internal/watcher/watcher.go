// Package watcher monitors a crate's source tree for Rust file changes so
// watch mode can re-extract the crate surface without being re-invoked.
package watcher

import (
	"context"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"
)

// CrateWatcher watches a crate source directory for .rs changes with
// debouncing.
type CrateWatcher interface {
	// Start begins watching, calling callback with debounced batches of
	// changed file paths.
	Start(ctx context.Context, callback func(files []string)) error

	// Stop stops the watcher and cleans up resources.
	Stop() error
}

type crateWatcher struct {
	watcher      *fsnotify.Watcher
	srcDir       string
	ignores      []glob.Glob
	debounceTime time.Duration
	callback     func(files []string)
	ctx          context.Context
	cancel       context.CancelFunc
	accumulated  map[string]bool
	accumMu      sync.Mutex
	timer        *time.Timer
	timerMu      sync.Mutex
	stopOnce     sync.Once
	doneCh       chan struct{}
}

// New creates a watcher over the crate source directory. Ignore globs are
// matched against the path relative to srcDir, slash-separated.
func New(srcDir string, debounce time.Duration, ignores []glob.Glob) (CrateWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	cw := &crateWatcher{
		watcher:      fsw,
		srcDir:       srcDir,
		ignores:      ignores,
		debounceTime: debounce,
		accumulated:  make(map[string]bool),
		doneCh:       make(chan struct{}),
	}

	if err := cw.addDirectoriesRecursively(srcDir); err != nil {
		fsw.Close()
		return nil, err
	}

	return cw, nil
}

// Start begins watching for file changes.
func (cw *crateWatcher) Start(ctx context.Context, callback func(files []string)) error {
	if callback == nil {
		return nil
	}

	cw.callback = callback
	cw.ctx, cw.cancel = context.WithCancel(ctx)

	go cw.watch()
	return nil
}

// Stop stops the watcher.
func (cw *crateWatcher) Stop() error {
	var err error
	cw.stopOnce.Do(func() {
		if cw.cancel != nil {
			cw.cancel()
			<-cw.doneCh
		} else {
			close(cw.doneCh)
		}
		err = cw.watcher.Close()
	})
	return err
}

// watch is the main event loop.
func (cw *crateWatcher) watch() {
	defer close(cw.doneCh)

	fireCh := make(chan struct{}, 1)

	for {
		select {
		case <-cw.ctx.Done():
			cw.stopTimer()
			return

		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}

			// New subdirectories (e.g. a fresh module dir) need watching too.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := cw.addDirectoriesRecursively(event.Name); err != nil {
						log.Printf("Warning: failed to watch new directory %s: %v", event.Name, err)
					}
				}
			}

			if !cw.shouldProcess(event) {
				continue
			}

			cw.accumMu.Lock()
			cw.accumulated[event.Name] = true
			cw.accumMu.Unlock()

			cw.resetTimer(fireCh)

		case <-fireCh:
			cw.fire()

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Crate watcher error: %v", err)
		}
	}
}

// fire invokes the callback with the accumulated batch, if any.
func (cw *crateWatcher) fire() {
	cw.accumMu.Lock()
	if len(cw.accumulated) == 0 {
		cw.accumMu.Unlock()
		return
	}
	files := make([]string, 0, len(cw.accumulated))
	for file := range cw.accumulated {
		files = append(files, file)
	}
	cw.accumulated = make(map[string]bool)
	cw.accumMu.Unlock()

	cw.callback(files)
}

// shouldProcess filters events down to non-ignored Rust source changes.
func (cw *crateWatcher) shouldProcess(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	if filepath.Ext(event.Name) != ".rs" {
		return false
	}
	return !cw.ignored(event.Name)
}

// ignored matches a path against the configured ignore globs.
func (cw *crateWatcher) ignored(path string) bool {
	rel, err := filepath.Rel(cw.srcDir, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, g := range cw.ignores {
		if g.Match(rel) {
			return true
		}
	}
	return false
}

// addDirectoriesRecursively adds dir and every subdirectory to the watcher,
// skipping ignored subtrees.
func (cw *crateWatcher) addDirectoriesRecursively(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if cw.ignored(path) {
			return filepath.SkipDir
		}
		return cw.watcher.Add(path)
	})
}

// resetTimer restarts the debounce timer, draining any fired-but-unread one.
func (cw *crateWatcher) resetTimer(fireCh chan struct{}) {
	cw.timerMu.Lock()
	defer cw.timerMu.Unlock()

	if cw.timer != nil {
		if !cw.timer.Stop() {
			select {
			case <-cw.timer.C:
			default:
			}
		}
	}

	cw.timer = time.AfterFunc(cw.debounceTime, func() {
		select {
		case fireCh <- struct{}{}:
		default:
		}
	})
}

func (cw *crateWatcher) stopTimer() {
	cw.timerMu.Lock()
	defer cw.timerMu.Unlock()

	if cw.timer != nil {
		cw.timer.Stop()
		cw.timer = nil
	}
}
