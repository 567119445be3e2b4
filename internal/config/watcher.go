package config

import (
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/modalcore/internal/logging"
	"github.com/dshills/modalcore/internal/vfs"
)

// Reload is the outcome of re-reading the config file after a change.
// Exactly one of Config and Err is set.
type Reload struct {
	Generation uint64
	Config     *Config
	Err        error
}

// Watcher reloads a config file when it changes on disk. It watches the
// parent directory so editors that save by rename are seen. Bursts of
// events are coalesced by a debounce timer. Each reload carries a
// generation number; a consumer discards any reload older than one it
// has already applied.
type Watcher struct {
	path     string
	fs       vfs.Reader
	fsw      *fsnotify.Watcher
	debounce time.Duration
	logger   *logging.Logger

	gen     atomic.Uint64
	reloads chan Reload

	mu      sync.Mutex
	closed  bool
	closeCh chan struct{}
	wg      sync.WaitGroup
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets how long the file must be quiet before reloading.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithWatcherLogger sets the watcher's logger.
func WithWatcherLogger(l *logging.Logger) WatcherOption {
	return func(w *Watcher) {
		w.logger = l
	}
}

// NewWatcher starts watching path. The file itself need not exist yet,
// but its directory must.
func NewWatcher(path string, opts ...WatcherOption) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		path:     absPath,
		fs:       vfs.NewOSFS(),
		debounce: 100 * time.Millisecond,
		reloads:  make(chan Reload, 1),
		closeCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = logging.OrNull(w.logger).WithComponent("config")

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		fsw.Close()
		return nil, err
	}
	w.fsw = fsw

	w.wg.Add(1)
	go w.processLoop()
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Reloads delivers reload results. Only the newest undelivered result is
// kept, so a slow consumer never sees a stale one ahead of a fresh one.
func (w *Watcher) Reloads() <-chan Reload {
	return w.reloads
}

// Generation returns the number of the latest reload.
func (w *Watcher) Generation() uint64 {
	return w.gen.Load()
}

// Stale reports whether r has been superseded by a later reload.
func (w *Watcher) Stale(r Reload) bool {
	return r.Generation < w.gen.Load()
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	w.wg.Wait()
	return w.fsw.Close()
}

func (w *Watcher) processLoop() {
	defer w.wg.Done()

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			w.logger.Debug("config event %s %s", ev.Op, ev.Name)
			timer.Reset(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error: %v", err)

		case <-timer.C:
			w.reload()
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create)
}

func (w *Watcher) reload() {
	r := Reload{Generation: w.gen.Add(1)}
	r.Config, r.Err = Load(w.fs, w.path)
	if r.Err != nil {
		w.logger.Warn("reload %d: %v", r.Generation, r.Err)
	} else {
		w.logger.Info("reload %d", r.Generation)
	}

	select {
	case w.reloads <- r:
		return
	default:
	}
	// Replace the undelivered older result.
	select {
	case <-w.reloads:
	default:
	}
	select {
	case w.reloads <- r:
	case <-w.closeCh:
	}
}
