package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch reloads path whenever it changes and sends each valid result on the
// returned channel. The directory is watched rather than the file so that
// editors replacing the file are seen. The channel closes when ctx is done.
// Reload failures are logged and skipped.
func Watch(ctx context.Context, path string, log *zap.Logger) (<-chan *Config, error) {
	if log == nil {
		log = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watching %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watching %s: %w", path, err)
	}

	out := make(chan *Config)
	go func() {
		defer close(out)
		defer w.Close()
		for {
			select {
			case e, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(e.Name) != abs || e.Op&(fsnotify.Create|fsnotify.Write) == 0 {
					continue
				}
				cfg, err := LoadFile(abs)
				if err != nil {
					log.Warn("config reload failed", zap.String("path", abs), zap.Error(err))
					continue
				}
				log.Info("config reloaded", zap.String("path", abs))
				select {
				case out <- cfg:
				case <-ctx.Done():
					return
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Error("config watcher", zap.Error(err))
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
