package config

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Reload is the result of re-reading a changed config file.
type Reload struct {
	Config Config
	Err    error
}

// Watcher re-reads a config file when it changes on disk.
type Watcher struct {
	Path    string
	Changes <-chan Reload // Read-only external channel

	changes chan Reload
	done    chan struct{}
	watcher *fsnotify.Watcher
	started bool
}

// NewWatcher creates a watcher for the config file at path.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ch := make(chan Reload, 4)
	return &Watcher{
		Path:    abs,
		Changes: ch,
		changes: ch,
		done:    make(chan struct{}),
		watcher: fw,
	}, nil
}

// Start begins watching. The parent directory is watched so that editors
// which replace the file on save are still seen.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.Path)); err != nil {
		return err
	}

	w.started = true
	go w.loop()
	return nil
}

// Stop closes the watcher and the Changes channel.
func (w *Watcher) Stop() {
	w.watcher.Close()
	if w.started {
		<-w.done
	}
	close(w.changes)
}

func (w *Watcher) loop() {
	defer close(w.done)

	const debounce = 100 * time.Millisecond
	var pending time.Time
	ticker := time.NewTicker(debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.Path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				pending = time.Now()
			}

		case now := <-ticker.C:
			if pending.IsZero() || now.Sub(pending) < debounce {
				continue
			}
			pending = time.Time{}
			cfg, err := LoadFile(w.Path)
			w.emit(Reload{Config: cfg, Err: err})

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are non-fatal.
		}
	}
}

// emit drops the reload when the consumer is behind; a newer one follows.
func (w *Watcher) emit(r Reload) {
	select {
	case w.changes <- r:
	default:
	}
}
