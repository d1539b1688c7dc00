package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch keeps holder in sync with the session file until ctx is done. A new
// login rewrites the file and long-running commands pick the token up without
// restarting; removing the file (logout) clears the holder.
//
// The directory is watched rather than the file so atomic replaces are seen.
func Watch(ctx context.Context, storage *Storage, holder *Holder, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(storage.dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(storage.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", storage.dir, err)
	}

	target := filepath.Clean(storage.Path())
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			reload(storage, holder, event, logger)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("session watcher error", zap.Error(err))
		}
	}
}

func reload(storage *Storage, holder *Holder, event fsnotify.Event, logger *zap.Logger) {
	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		holder.Set(nil)
		logger.Info("session removed", zap.String("path", event.Name))
	case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
		sess, err := storage.Load()
		if errors.Is(err, ErrNoSession) {
			holder.Set(nil)
			return
		}
		if err != nil {
			// Writers may be mid-write; the next event carries the full file.
			logger.Debug("session reload skipped", zap.Error(err))
			return
		}
		holder.Set(sess)
		logger.Info("session reloaded", zap.String("user", sess.UserName))
	}
}
