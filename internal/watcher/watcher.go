// Package watcher provides debounced file system watching for the engines
// directory, so installs and removals done outside Seed show up without a
// manual refresh.
package watcher

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nothingTVatYT/Seed/internal/log"
)

// Watcher monitors the engines directory and signals when its contents
// change. Bursts of events (an install unpacking many files) coalesce into
// one signal per debounce window.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	root      string
	debounce  time.Duration
	changes   chan struct{}
	done      chan struct{}
}

// Config holds watcher configuration options.
type Config struct {
	Root     string
	Debounce time.Duration
}

// DefaultConfig returns sensible defaults for watching root.
func DefaultConfig(root string) Config {
	return Config{
		Root:     root,
		Debounce: time.Second,
	}
}

// New creates a watcher over the engines directory. The directory must
// exist before Start is called.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = time.Second
	}

	return &Watcher{
		fsWatcher: fsw,
		root:      cfg.Root,
		debounce:  debounce,
		changes:   make(chan struct{}, 1),
		done:      make(chan struct{}),
	}, nil
}

// Start begins watching. It returns a channel that receives one signal per
// settled burst of changes.
func (w *Watcher) Start() (<-chan struct{}, error) {
	if err := w.fsWatcher.Add(w.root); err != nil {
		return nil, fmt.Errorf("watching %s: %w", w.root, err)
	}

	go w.loop()

	return w.changes, nil
}

// Stop terminates the watcher and releases resources.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.fsWatcher.Close()
}

func (w *Watcher) loop() {
	// Closing changes lets consumers blocked on a receive observe shutdown.
	defer close(w.changes)

	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
				continue
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.debounce)

		case <-timerC:
			timer = nil
			timerC = nil
			// Non-blocking send; a pending signal already covers this burst.
			select {
			case w.changes <- struct{}{}:
			default:
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatWatch, "engines watcher error", err)

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// relevant filters to events that can change the installed set. Chmods and
// dotfile noise (editor swap files, .DS_Store) never do.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	return !strings.HasPrefix(filepath.Base(event.Name), ".")
}
