package assets

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch reloads path whenever it is written or replaced and calls fn with
// the new asset, or with the error when the reload failed. It blocks until
// ctx is cancelled.
//
// The parent directory is watched rather than the file itself so editors
// that save by renaming a temp file over the original keep triggering
// reloads.
func (l *Library) Watch(ctx context.Context, path string, fn func(*Asset, error)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	l.log.Debug("watching", zap.String("path", abs))

	for {
		select {
		case <-ctx.Done():
			return nil

		case e, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(e.Name) != abs {
				continue
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}

			asset, err := l.Reload(abs)
			if err == nil {
				l.log.Info("reloaded", zap.String("path", abs))
			}
			fn(asset, err)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			l.log.Error("watch error", zap.String("path", abs), zap.Error(err))
			fn(nil, err)
		}
	}
}
