package engine

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfigWatcherFiresOnWrite(t *testing.T) {
	dir := t.TempDir()
	changed := make(chan struct{}, 8)
	w, err := newConfigWatcher(dir, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "config"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}
}

func TestConfigWatcherClose(t *testing.T) {
	w, err := newConfigWatcher(t.TempDir(), func() {})
	if err != nil {
		t.Fatal(err)
	}
	// Close must terminate the goroutine and be safe to call once.
	w.Close()
}

func TestConfigWatcherMissingDir(t *testing.T) {
	if _, err := newConfigWatcher("/nonexistent/watch/dir", func() {}); err == nil {
		t.Fatal("watching a missing directory succeeded")
	}
}
