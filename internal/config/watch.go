package config

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce is how long the file must stay quiet before it is re-read.
const reloadDebounce = 100 * time.Millisecond

// WatchTuning re-reads the tuning file whenever it changes and hands every
// valid result to apply. Invalid files are logged and ignored, so the last
// good tuning stays in effect. It blocks until ctx is done.
//
// The parent directory is watched rather than the file itself because many
// editors save by renaming a temporary file over the original.
func WatchTuning(ctx context.Context, path string, apply func(Tuning)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	// Reload only once the file has been quiet for reloadDebounce, so a
	// truncate followed by a write is read after the write.
	debounce := time.NewTimer(reloadDebounce)
	debounce.Stop()
	defer debounce.Stop()
	var reload <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if name, _ := filepath.Abs(event.Name); name != abs {
				continue
			}
			if !debounce.Stop() && reload != nil {
				select {
				case <-debounce.C:
				default:
				}
			}
			debounce.Reset(reloadDebounce)
			reload = debounce.C
		case <-reload:
			reload = nil
			t, err := LoadTuningFile(abs)
			if err != nil {
				log.Printf("⚠️ Tuning reload rejected: %v", err)
				continue
			}
			log.Printf("🔧 Tuning reloaded from %s", path)
			apply(t)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("⚠️ Tuning watcher error: %v", err)
		}
	}
}
