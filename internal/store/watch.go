package store

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reports shelf keys whose JSON files changed on disk, so the
// TUI can pick up edits made outside the running program. Rapid saves
// are debounced. JSON backend only.
type Watcher struct {
	fsw *fsnotify.Watcher
	log *zap.Logger

	// Events delivers the storage key ("pp.books") of each changed file.
	Events chan string

	lastSeen    map[string]time.Time
	debounceDur time.Duration
	stopCh      chan struct{}
}

func NewWatcher(dir string, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}
	w := &Watcher{
		fsw:         fsw,
		log:         log,
		Events:      make(chan string, 8),
		lastSeen:    make(map[string]time.Time),
		debounceDur: 500 * time.Millisecond, // debounce rapid saves
		stopCh:      make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.stopCh:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			base := filepath.Base(ev.Name)
			if !strings.HasSuffix(base, ".json") {
				continue
			}
			key := strings.TrimSuffix(base, ".json")
			now := time.Now()
			if last, seen := w.lastSeen[key]; seen && now.Sub(last) < w.debounceDur {
				continue
			}
			w.lastSeen[key] = now
			select {
			case w.Events <- key:
			default:
				// Slow consumer; drop rather than block the loop.
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) Close() error {
	close(w.stopCh)
	return w.fsw.Close()
}
