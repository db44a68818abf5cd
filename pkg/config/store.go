package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"

	"github.com/cbodonnell/sceneflow/pkg/log"
	"github.com/fsnotify/fsnotify"
)

// Store holds the current configuration. Readers always see a complete Config.
type Store struct {
	current atomic.Pointer[Config]
}

func NewStore(cfg *Config) *Store {
	if cfg == nil {
		cfg = Default()
	}
	s := &Store{}
	s.current.Store(cfg)
	return s
}

func (s *Store) Current() *Config {
	return s.current.Load()
}

func (s *Store) Set(cfg *Config) {
	s.current.Store(cfg)
}

// Watch reloads the config file at path into the store whenever it is written.
// Invalid files are logged and ignored, keeping the last good config. Watch
// blocks until ctx is done or the watcher fails.
func (s *Store) Watch(ctx context.Context, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create config watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace the file, so watch the directory and filter by name.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	target := filepath.Clean(path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case e, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(e.Name) != target {
				continue
			}
			if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
				continue
			}
			cfg, err := Load(path)
			if err != nil {
				log.Warn("Ignoring config change: %v", err)
				continue
			}
			s.Set(cfg)
			log.Info("Reloaded config from %s", path)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("config watcher error: %w", err)
		}
	}
}
