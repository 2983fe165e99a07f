package engine

import (
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// configWatcher triggers a reload callback when the persisted configuration
// changes on disk (e.g. another frontend or a sync tool rewrote it). The
// callback runs on the watcher goroutine; callers hand the actual reload to
// the event loop.
type configWatcher struct {
	watcher *fsnotify.Watcher
	done    chan struct{}
}

func newConfigWatcher(dir string, onChange func()) (*configWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, err
	}
	cw := &configWatcher{watcher: w, done: make(chan struct{})}
	go cw.run(onChange)
	return cw, nil
}

func (cw *configWatcher) run(onChange func()) {
	defer close(cw.done)
	for {
		select {
		case ev, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				Logger().Debug("config change detected", zap.String("file", ev.Name))
				onChange()
			}
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			Logger().Warn("config watcher error", zap.Error(err))
		}
	}
}

func (cw *configWatcher) Close() {
	cw.watcher.Close()
	<-cw.done
}
