package server

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch monitors the given paths for changes and calls rebuild after
// activity has settled for the debounce window. Directories are watched
// recursively; plain files (like the config) are watched directly. It
// blocks until ctx is cancelled.
func Watch(ctx context.Context, paths []string, debounce time.Duration, rebuild func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	for _, path := range paths {
		if err := addPath(watcher, path); err != nil {
			return err
		}
	}

	var timer *time.Timer
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			// New directories need their own watch.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addRecursive(watcher, event.Name); err != nil {
						log.Printf("server: watching %s: %v", event.Name, err)
					}
				}
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, rebuild)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("server: watcher: %v", err)
		}
	}
}

// addPath watches a directory tree or a single file.
func addPath(watcher *fsnotify.Watcher, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}
	if !info.IsDir() {
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	}
	return addRecursive(watcher, path)
}

// addRecursive watches dir and every subdirectory beneath it, skipping
// hidden directories.
func addRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}
