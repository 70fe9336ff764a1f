package config

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Watch reloads the config file on change and hands the parsed result to
// onChange. Events are debounced because editors write files in several
// steps; a reload that fails to parse or validate is logged and skipped,
// keeping the last good config in effect.
//
// The watch runs until ctx is cancelled. Watching the directory rather than
// the file survives rename-based saves.
func Watch(ctx context.Context, path string, log zerolog.Logger, onChange func(*Config)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	go func() {
		defer w.Close()

		var timerMu sync.Mutex
		var timer *time.Timer
		reload := func() {
			timerMu.Lock()
			defer timerMu.Unlock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(250*time.Millisecond, func() {
				cfg, err := Load(path)
				if err != nil {
					log.Warn().Err(err).Str("path", path).Msg("config reload failed; keeping previous config")
					return
				}
				log.Info().Str("path", path).Msg("config reloaded")
				onChange(cfg)
			})
		}

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				evAbs, err := filepath.Abs(ev.Name)
				if err != nil || evAbs != abs {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					reload()
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Warn().Err(err).Msg("config watch error")
			}
		}
	}()

	return nil
}
