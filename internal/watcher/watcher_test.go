package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestWatcher_ReloadOnWrite(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "dict.db")
	if err := os.WriteFile(dbPath, []byte("v1"), 0600); err != nil {
		t.Fatal(err)
	}

	var reloads atomic.Int32
	w := NewWatcher(dbPath, func() { reloads.Add(1) }, WithDebounce(50*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := os.WriteFile(dbPath, []byte("v2"), 0600); err != nil {
		t.Fatal(err)
	}
	time.Sleep(300 * time.Millisecond)
	if reloads.Load() < 1 {
		t.Error("expected a reload after writing the database file")
	}
}

func TestWatcher_DebouncesBurstWrites(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "dict.db")

	var reloads atomic.Int32
	w := NewWatcher(dbPath, func() { reloads.Add(1) }, WithDebounce(100*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	// Many writes in quick succession should settle into one reload.
	for i := 0; i < 10; i++ {
		if err := os.WriteFile(dbPath, []byte{byte(i)}, 0600); err != nil {
			t.Fatal(err)
		}
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(400 * time.Millisecond)
	if got := reloads.Load(); got != 1 {
		t.Errorf("reloads = %d, want 1", got)
	}
}

func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "dict.db")

	var reloads atomic.Int32
	w := NewWatcher(dbPath, func() { reloads.Add(1) }, WithDebounce(50*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}
	time.Sleep(200 * time.Millisecond)
	if got := reloads.Load(); got != 0 {
		t.Errorf("reloads = %d, want 0 for unrelated file", got)
	}
}

func TestWatcher_ReloadOnRename(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "dict.db")
	tmpPath := filepath.Join(dir, "dict.db.tmp")
	if err := os.WriteFile(tmpPath, []byte("new"), 0600); err != nil {
		t.Fatal(err)
	}

	var reloads atomic.Int32
	w := NewWatcher(dbPath, func() { reloads.Add(1) }, WithDebounce(50*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	// Atomic replace: write to a temp file, rename over the target.
	if err := os.Rename(tmpPath, dbPath); err != nil {
		t.Fatal(err)
	}
	time.Sleep(300 * time.Millisecond)
	if reloads.Load() < 1 {
		t.Error("expected a reload after rename-over-replace")
	}
}

func TestWatcher_StartCreatesMissingDirectory(t *testing.T) {
	base := t.TempDir()
	dbPath := filepath.Join(base, "data", "dict.db")

	w := NewWatcher(dbPath, nil)
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if _, err := os.Stat(filepath.Dir(dbPath)); err != nil {
		t.Errorf("data directory should exist after Start: %v", err)
	}
}

func TestWatcher_StartTwiceIsNoop(t *testing.T) {
	dir := t.TempDir()
	w := NewWatcher(filepath.Join(dir, "dict.db"), nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()
	if err := w.Start(ctx); err != nil {
		t.Errorf("second Start returned error: %v", err)
	}
}
