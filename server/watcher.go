package server

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// GraphWatcher calls reload whenever the symbol graph file is written or
// replaced. Bursts of events within the settle interval cause one reload.
type GraphWatcher struct {
	path    string
	reload  func() error
	watcher *fsnotify.Watcher
	stopCh  chan struct{}
	doneCh  chan struct{}
	settle  time.Duration
}

// NewGraphWatcher watches the directory holding path, so editors that save
// by renaming a temporary file are noticed too.
func NewGraphWatcher(path string, reload func() error) (*GraphWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	return &GraphWatcher{
		path:    abs,
		reload:  reload,
		watcher: fw,
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
		settle:  200 * time.Millisecond,
	}, nil
}

func (w *GraphWatcher) Start() {
	go w.run()
}

// Stop ends the watch and waits for a pending reload to finish.
func (w *GraphWatcher) Stop() {
	close(w.stopCh)
	<-w.doneCh
	w.watcher.Close()
}

func (w *GraphWatcher) run() {
	defer close(w.doneCh)

	timer := time.NewTimer(w.settle)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			timer.Reset(w.settle)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warning("watch error", "path", w.path, "error", err)
		case <-timer.C:
			w.load()
		}
	}
}

func (w *GraphWatcher) load() {
	if err := w.reload(); err != nil {
		// The previous index stays in place until the graph loads again.
		log.Warning("reload failed", "path", w.path, "error", err)
		return
	}
	log.Info("graph reloaded", "path", w.path)
}
