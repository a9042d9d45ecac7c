package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDelay coalesces the burst of events an editor produces on save.
const reloadDelay = 100 * time.Millisecond

// Watcher reloads a config file when it changes on disk. Reloaded configs
// and errors are delivered on channels, so the consumer decides on which
// goroutine to apply them.
type Watcher struct {
	path    string
	fs      *fsnotify.Watcher
	updates chan *Config
	errs    chan error
	done    chan struct{}
	stopped chan struct{}
}

// Watch starts watching path. The directory is watched rather than the file
// so that editors replacing the file are noticed.
func Watch(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	if err := fs.Add(filepath.Dir(abs)); err != nil {
		fs.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:    abs,
		fs:      fs,
		updates: make(chan *Config, 1),
		errs:    make(chan error, 1),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Updates delivers each successfully reloaded config. Only the latest
// unread config is kept.
func (w *Watcher) Updates() <-chan *Config {
	return w.updates
}

// Errors delivers reload and watch errors. Only the latest unread error is kept.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	select {
	case <-w.done:
		return nil
	default:
	}
	close(w.done)
	err := w.fs.Close()
	<-w.stopped
	return err
}

func (w *Watcher) loop() {
	defer close(w.stopped)

	timer := time.NewTimer(reloadDelay)
	timer.Stop()

	for {
		select {
		case <-w.done:
			timer.Stop()
			return

		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				timer.Reset(reloadDelay)
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			offer(w.errs, err)

		case <-timer.C:
			cfg, err := LoadFile(w.path)
			if err != nil {
				offer(w.errs, err)
				continue
			}
			offer(w.updates, cfg)
		}
	}
}

// offer sends v, replacing an unread value instead of blocking.
func offer[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
