package config

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce coalesces the burst of events a single save produces.
const reloadDebounce = 200 * time.Millisecond

// Watch reloads path whenever it changes on disk and delivers each
// successfully parsed config on the returned channel until ctx is done.
// The parent directory is watched so editors that replace the file are
// seen too. The channel holds only the latest config.
func Watch(ctx context.Context, path string) (<-chan *Config, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, err
	}

	out := make(chan *Config, 1)
	go func() {
		defer close(out)
		defer w.Close()

		target := filepath.Clean(path)
		var pending <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				pending = time.After(reloadDebounce)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Printf("config watch: %v", err)
			case <-pending:
				pending = nil
				cfg, err := LoadConfig(path)
				if err != nil {
					log.Printf("config reload %s: %v", path, err)
					continue
				}
				deliver(out, cfg)
			}
		}
	}()
	return out, nil
}

func deliver(ch chan *Config, cfg *Config) {
	select {
	case <-ch:
	default:
	}
	ch <- cfg
}
