// Package watch reloads a file when it changes on disk.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dmitrymomot/formrules/pkg/logger"
)

// DefaultDebounce is the quiet period after the last event before reloading.
const DefaultDebounce = 100 * time.Millisecond

// File watches path and calls reload once changes settle. The parent directory
// is watched so that editors replacing the file by rename are noticed. File
// blocks until ctx is cancelled. Reload errors are logged and do not stop
// watching.
func File(ctx context.Context, path string, debounce time.Duration, log *slog.Logger, reload func() error) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if log == nil {
		log = logger.Discard()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	log.Info("watching file", slog.String("path", abs))

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			log.Debug("file event", slog.String("path", event.Name), slog.String("op", event.Op.String()))
			timer.Reset(debounce)

		case err, ok := <-w.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			log.Warn("watcher error", logger.Error(err))

		case <-timer.C:
			if err := reload(); err != nil {
				log.Error("reload failed", slog.String("path", abs), logger.Error(err))
				continue
			}
			log.Info("file reloaded", slog.String("path", abs))
		}
	}
}
