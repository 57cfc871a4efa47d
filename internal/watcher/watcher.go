// Package watcher observes the tutorial library on disk so the portal can
// react to files edited outside the API (a shared drive, a git pull, vim).
package watcher

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/starford/sowilo/internal/checksum"
	"github.com/starford/sowilo/internal/storage"
)

// EventCallback is called for each detected change. kind is one of
// "created", "changed", "deleted" for content files, or "library" when the
// metadata document itself changed; slug is empty for library events.
type EventCallback func(kind, slug string)

// Watch starts an fsnotify watcher over the content directory and the
// metadata document's directory, and processes change events until ctx is
// cancelled. Content writes are deduplicated by SHA-256 checksum so that
// atomic rewrite sequences and no-op saves don't fan out as events.
func Watch(ctx context.Context, content *storage.FS, metadataPath string, logger *slog.Logger, cb EventCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(content.Root()); err != nil {
		return err
	}
	dataDir := filepath.Dir(metadataPath)
	if dataDir != content.Root() {
		// Best effort; the data dir may not exist until the first save.
		if addErr := w.Add(dataDir); addErr != nil {
			logger.Warn("watcher: data dir not watched", slog.String("dir", dataDir), slog.String("error", addErr.Error()))
		}
	}

	// Prime checksums so startup state doesn't replay as events.
	sums := primeChecksums(content, logger)

	logger.Info("watcher: started",
		slog.String("content_dir", content.Root()),
		slog.String("metadata", metadataPath))

	for {
		select {
		case <-ctx.Done():
			logger.Info("watcher: stopped")
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			handleEvent(ev, content, metadataPath, sums, logger, cb)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher: error", slog.String("error", err.Error()))
		}
	}
}

func handleEvent(ev fsnotify.Event, content *storage.FS, metadataPath string, sums map[string]string, logger *slog.Logger, cb EventCallback) {
	if ev.Name == metadataPath {
		if ev.Op&(fsnotify.Create|fsnotify.Write) != 0 {
			logger.Debug("watcher: metadata changed")
			if cb != nil {
				cb("library", "")
			}
		}
		return
	}

	name := filepath.Base(ev.Name)
	if !strings.HasSuffix(name, ".md") || filepath.Dir(ev.Name) != content.Root() {
		return
	}
	slug := strings.TrimSuffix(name, ".md")

	switch {
	case ev.Op&(fsnotify.Create|fsnotify.Write) != 0:
		data, err := content.Read(name)
		if err != nil {
			logger.Warn("watcher: read failed", slog.String("file", name), slog.String("error", err.Error()))
			return
		}
		sum := checksum.Sum(data)
		prev, known := sums[name]
		if known && prev == sum {
			// Touch without content change; suppress.
			return
		}
		sums[name] = sum
		kind := "changed"
		if !known {
			kind = "created"
		}
		logger.Debug("watcher: content changed", slog.String("slug", slug), slog.String("op", kind))
		if cb != nil {
			cb(kind, slug)
		}

	case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		if _, known := sums[name]; !known {
			return
		}
		delete(sums, name)
		logger.Debug("watcher: content removed", slog.String("slug", slug))
		if cb != nil {
			cb("deleted", slug)
		}
	}
}

func primeChecksums(content *storage.FS, logger *slog.Logger) map[string]string {
	sums := make(map[string]string)
	files, err := content.List()
	if err != nil {
		logger.Warn("watcher: initial listing failed", slog.String("error", err.Error()))
		return sums
	}
	for _, f := range files {
		data, err := content.Read(f.Name)
		if err != nil {
			continue
		}
		sums[f.Name] = checksum.Sum(data)
	}
	return sums
}
