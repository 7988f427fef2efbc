package config

import (
	"context"

	"canopy/internal/logger"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the config file whenever it changes on disk and invokes
// onChange with the new configuration. It blocks until ctx is cancelled, so
// callers run it in a goroutine.
func Watch(ctx context.Context, onChange func(AppConfig)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors typically replace the file
	// by rename, which drops a watch placed on the file itself.
	if err := watcher.Add(Dir()); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != FilePath() {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			conf, err := Load()
			if err != nil {
				logger.Warn(ctx, "config reload skipped: %v", err)
				continue
			}
			logger.Info(ctx, "config reloaded from %s", FilePath())
			onChange(conf)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn(ctx, "config watcher: %v", err)
		}
	}
}
