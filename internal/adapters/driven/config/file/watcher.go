package file

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the store whenever the templates file changes on disk
// and emits an event for each successful reload. The watcher stops when
// ctx is cancelled, closing the returned channel.
//
// The parent directory is watched rather than the file itself: editors
// commonly replace files by rename, which would silently detach a
// file-level watch. A malformed edit is skipped — the store keeps
// serving the last good configuration and no event is emitted.
func (s *TemplateStore) Watch(ctx context.Context) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(filepath.Dir(s.filePath)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch config directory: %w", err)
	}

	events := make(chan struct{}, 1)
	go func() {
		defer close(events)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return

			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(ev.Name) != TemplatesFilename {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				if err := s.Load(); err != nil {
					continue
				}
				// Coalesce: one pending event is enough.
				select {
				case events <- struct{}{}:
				default:
				}

			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return events, nil
}
