package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce groups the burst of events editors emit for a single save.
const reloadDebounce = 100 * time.Millisecond

// Watcher reloads a runner config file whenever it changes on disk.
// Parsed configs arrive on Updates, read or parse failures on Errors.
// Both channels are closed after Close.
type Watcher struct {
	fs      *fsnotify.Watcher
	path    string
	Updates chan RunnerConfig
	Errors  chan error
	done    chan struct{}
	once    sync.Once
}

// WatchFile starts watching path. The parent directory is watched so that
// atomic saves (write to temp, rename over) are picked up.
func WatchFile(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &Watcher{
		fs:      fw,
		path:    abs,
		Updates: make(chan RunnerConfig, 1),
		Errors:  make(chan error, 1),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops watching. Safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fs.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.Updates)
	defer close(w.Errors)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(reloadDebounce)
			} else {
				timer.Reset(reloadDebounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			cfg, err := LoadFile(w.path)
			if err != nil {
				w.sendErr(err)
				continue
			}
			select {
			case w.Updates <- cfg:
			case <-w.done:
				return
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.sendErr(err)

		case <-w.done:
			return
		}
	}
}

// sendErr drops the error if the previous one was never read.
func (w *Watcher) sendErr(err error) {
	select {
	case w.Errors <- err:
	default:
	}
}
