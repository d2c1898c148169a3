package config

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the settings file when it changes on disk and hands the
// fresh config to onChange. The parent directory is watched rather than
// the file itself so editors that replace the file atomically are still
// seen.
type Watch struct {
	watcher *fsnotify.Watcher
	done    chan struct{}
}

func WatchSettings(path string, onChange func(Config)) (*Watch, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating settings watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching config dir: %w", err)
	}

	w := &Watch{watcher: watcher, done: make(chan struct{})}
	go w.loop(path, onChange)
	return w, nil
}

func (w *Watch) loop(path string, onChange func(Config)) {
	target := filepath.Clean(path)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			cfg, err := LoadFrom(path)
			if err != nil {
				log.Printf("settings reload failed: %v", err)
				continue
			}
			onChange(cfg)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("settings watcher error: %v", err)
		case <-w.done:
			return
		}
	}
}

func (w *Watch) Close() error {
	close(w.done)
	return w.watcher.Close()
}
