package watcher

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/starford/sowilo/internal/storage"
)

type eventLog struct {
	mu     sync.Mutex
	events []string
}

func (l *eventLog) add(kind, slug string) {
	l.mu.Lock()
	l.events = append(l.events, kind+":"+slug)
	l.mu.Unlock()
}

func (l *eventLog) has(want string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.events {
		if e == want {
			return true
		}
	}
	return false
}

func (l *eventLog) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.events)
}

// eventually polls fn every tick until it returns true or timeout elapses.
func eventually(t *testing.T, timeout, tick time.Duration, fn func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if fn() {
			return
		}
		time.Sleep(tick)
	}
	t.Error(msg)
}

func watcherTestEnv(t *testing.T) (*storage.FS, string, *eventLog) {
	t.Helper()
	dir := t.TempDir()
	content, err := storage.NewFS(filepath.Join(dir, "tutorials"))
	if err != nil {
		t.Fatal(err)
	}
	dataDir := filepath.Join(dir, "data")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		t.Fatal(err)
	}
	metadataPath := filepath.Join(dataDir, "tutorials.json")

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	log := &eventLog{}
	go func() { _ = Watch(ctx, content, metadataPath, logger, log.add) }()
	time.Sleep(100 * time.Millisecond)
	return content, metadataPath, log
}

func TestWatcher_NewContentFile(t *testing.T) {
	content, _, log := watcherTestEnv(t)

	if err := os.WriteFile(filepath.Join(content.Root(), "new-guide.md"), []byte("# New"), 0o644); err != nil {
		t.Fatal(err)
	}

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return log.has("created:new-guide")
	}, "creation not observed")
}

func TestWatcher_EditedContentFile(t *testing.T) {
	content, _, log := watcherTestEnv(t)

	path := filepath.Join(content.Root(), "vpn-setup.md")
	if err := os.WriteFile(path, []byte("v1"), 0o644); err != nil {
		t.Fatal(err)
	}
	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return log.has("created:vpn-setup")
	}, "creation not observed")

	// An out-of-band edit to a known file reports as changed, not created.
	if err := os.WriteFile(path, []byte("v2"), 0o644); err != nil {
		t.Fatal(err)
	}
	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return log.has("changed:vpn-setup")
	}, "edit not observed as changed")
}

func TestWatcher_UnchangedWriteSuppressed(t *testing.T) {
	content, _, log := watcherTestEnv(t)

	path := filepath.Join(content.Root(), "same.md")
	if err := os.WriteFile(path, []byte("stable"), 0o644); err != nil {
		t.Fatal(err)
	}
	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return log.has("created:same")
	}, "creation not observed")

	before := log.count()
	// Rewrite identical bytes; checksum dedupe should swallow it.
	if err := os.WriteFile(path, []byte("stable"), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(300 * time.Millisecond)
	if n := log.count(); n != before {
		t.Errorf("unchanged rewrite produced %d extra events", n-before)
	}
}

func TestWatcher_MetadataChange(t *testing.T) {
	_, metadataPath, log := watcherTestEnv(t)

	if err := os.WriteFile(metadataPath, []byte(`{"tutorials":[]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return log.has("library:")
	}, "metadata change not observed")
}

func TestWatcher_IgnoresNonMarkdown(t *testing.T) {
	content, _, log := watcherTestEnv(t)

	if err := os.WriteFile(filepath.Join(content.Root(), "scratch.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(300 * time.Millisecond)
	if n := log.count(); n != 0 {
		t.Errorf("non-markdown file produced %d events", n)
	}
}
