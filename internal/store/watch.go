package store

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"healthassist/internal/logger"
)

// Watcher signals when the backing file is rewritten, typically by the web
// app sharing the same store file. Events are coalesced; a slow consumer
// sees at least one signal per burst of writes.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	events  chan struct{}

	stop chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

// Watch starts watching the store's containing directory. The directory
// must exist, so call Ensure first.
func (s *Store) Watch() (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(s.path)
	if err != nil {
		_ = fw.Close()
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher: fw,
		path:    abs,
		events:  make(chan struct{}, 1),
		stop:    make(chan struct{}),
	}
	w.wg.Add(1)
	go w.loop()
	go func() {
		w.wg.Wait()
		close(w.events)
	}()
	return w, nil
}

// Events yields one signal per observed rewrite of the store file. The
// channel closes after Close.
func (w *Watcher) Events() <-chan struct{} { return w.events }

func (w *Watcher) Close() {
	w.once.Do(func() {
		close(w.stop)
		_ = w.watcher.Close()
	})
	w.wg.Wait()
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.stop:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			select {
			case w.events <- struct{}{}:
			default: // already pending
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warnf("Store watcher error: %v", err)
		}
	}
}
