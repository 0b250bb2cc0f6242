package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestWatch_ReportsExternalWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.json")
	backend := NewFileBackend(path, 0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 16)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func() {
			select {
			case changed <- struct{}{}:
			default:
			}
		})
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	if err := backend.Save(KeyTheme, "dark"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for change notification")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Watch() did not return after cancel")
	}
}
