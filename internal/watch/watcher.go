// Package watch re-runs a merge when any of its input files changes.
package watch

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"config-splitter/internal/common"
	"config-splitter/internal/logging"
)

// DefaultDebounce is the quiet period before a batch of changes fires.
const DefaultDebounce = 500 * time.Millisecond

// ErrNoPaths is returned when there is nothing to watch.
var ErrNoPaths = errors.New("no files to watch")

// Trigger is called with the changed files, sorted, after each debounced
// batch of events.
type Trigger func(ctx context.Context, changed []string)

// Watcher watches a fixed set of files. Directories are watched rather than
// the files themselves so that editors replacing a file by rename are seen.
type Watcher struct {
	files    map[string]bool
	watcher  *fsnotify.Watcher
	debounce time.Duration
	trigger  Trigger
	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
	started  bool
}

// New creates a Watcher for paths. A zero debounce uses DefaultDebounce.
func New(paths []string, debounce time.Duration, trigger Trigger) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, ErrNoPaths
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		files:    make(map[string]bool, len(paths)),
		watcher:  fw,
		debounce: debounce,
		trigger:  trigger,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}

	var dirs []string

	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, err
		}

		w.files[abs] = true

		dirs = common.AppendUnique(dirs, filepath.Dir(abs))
	}

	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, err
		}
	}

	return w, nil
}

// Start begins watching in a new goroutine.
func (w *Watcher) Start(ctx context.Context) {
	w.started = true

	go w.watch(ctx)
}

// Stop ends watching and waits for the event loop to exit. It is safe to
// call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)

		if w.started {
			<-w.doneCh
		}

		w.watcher.Close()
	})
}

func (w *Watcher) watch(ctx context.Context) {
	defer close(w.doneCh)

	logger := logging.FromContext(ctx)

	var timer *time.Timer

	fire := make(chan struct{}, 1)
	changed := make(map[string]bool)

	stopTimer := func() {
		if timer != nil {
			timer.Stop()
		}
	}

	for {
		select {
		case <-ctx.Done():
			stopTimer()
			return

		case <-w.stopCh:
			stopTimer()
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				stopTimer()
				return
			}

			if !w.relevant(event) {
				continue
			}

			logger.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("input changed")

			changed[event.Name] = true

			stopTimer()

			timer = time.AfterFunc(w.debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case <-fire:
			if len(changed) == 0 {
				continue
			}

			files := make([]string, 0, len(changed))
			for f := range changed {
				files = append(files, f)
			}

			slices.Sort(files)

			changed = make(map[string]bool)

			w.trigger(ctx, files)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				stopTimer()
				return
			}

			logger.Warn().Err(err).Msg("file watcher error")
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}

	return w.files[filepath.Clean(event.Name)]
}
