// Package configwatch reloads a camera config file whenever it changes on disk.
package configwatch

import (
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/leterax/flycam/pkg/camera"
)

// Watcher delivers the reloaded config on Configs after every change.
// Editors often replace files instead of writing them, so the parent
// directory is watched and events are filtered by name.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	Configs chan camera.Config
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// ReloadDebounce is how long the file has to stay unchanged before it is reloaded
const ReloadDebounce = 100 * time.Millisecond

// New starts watching path
func New(path string) (*Watcher, error) {
	path = filepath.Clean(path)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return nil, err
	}

	watcher := &Watcher{
		watcher: w,
		path:    path,
		Configs: make(chan camera.Config, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops watching. Configs is never closed.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)

	timer := time.NewTimer(ReloadDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			timer.Reset(ReloadDebounce)
		case <-timer.C:
			cfg, err := camera.LoadConfig(w.path)
			if err != nil {
				log.Printf("ignoring camera config change: %v", err)
				continue
			}
			w.publish(cfg)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("camera config watcher: %v", err)
		case <-w.closeCh:
			return
		}
	}
}

// publish replaces any config the render loop has not picked up yet
func (w *Watcher) publish(cfg camera.Config) {
	select {
	case <-w.Configs:
	default:
	}
	select {
	case w.Configs <- cfg:
	case <-w.closeCh:
	}
}
