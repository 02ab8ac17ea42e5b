package application

import (
	"context"
	"path/filepath"
)

// Watch monitors the directory containing the coverage report and
// re-normalizes the report whenever it changes. The callback receives each
// result; the loop runs until the context is cancelled.
func (s *Service) Watch(ctx context.Context, opts WatchOptions, watcher FileWatcher, callback WatchCallback) error {
	// A relative report path would make the watch root relative too
	// ("." for a bare file name), so resolve it first.
	path, err := filepath.Abs(opts.Path)
	if err != nil {
		return err
	}

	if err := watcher.WatchDir(filepath.Dir(path)); err != nil {
		return err
	}
	defer watcher.Close()

	// Initial pass so the caller sees the current state immediately.
	callback(s.Normalize(ctx, NormalizeOptions{Path: path}))

	events := watcher.Events(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-events:
			if !ok {
				return nil
			}
			callback(s.Normalize(ctx, NormalizeOptions{Path: path}))
		}
	}
}
