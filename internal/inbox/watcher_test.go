package inbox

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testDirs(t *testing.T) (dir, done, failed string) {
	t.Helper()
	root := t.TempDir()
	dir = filepath.Join(root, "inbox")
	done = filepath.Join(dir, "done")
	failed = filepath.Join(dir, "failed")
	for _, d := range []string{dir, done, failed} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	return dir, done, failed
}

func drop(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("%PDF-1.4 test"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestWatcher_PickupExisting(t *testing.T) {
	dir, done, failed := testDirs(t)
	drop(t, dir, "cookbook.pdf")
	drop(t, dir, "notes.txt") // ignored

	var ran []string
	w, err := New(Config{
		Dir:       dir,
		DoneDir:   done,
		FailedDir: failed,
		Settle:    10 * time.Millisecond,
		Logger:    slog.Default(),
		Run: func(ctx context.Context, path string) error {
			ran = append(ran, filepath.Base(path))
			return nil
		},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { w.watcher.Close() })

	w.pickupExisting(context.Background())

	if len(ran) != 1 || ran[0] != "cookbook.pdf" {
		t.Errorf("ran = %v, want only cookbook.pdf", ran)
	}
	if _, err := os.Stat(filepath.Join(done, "cookbook.pdf")); err != nil {
		t.Errorf("processed pdf not moved to done: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "notes.txt")); err != nil {
		t.Errorf("non-pdf should stay in place: %v", err)
	}
}

func TestWatcher_FailureMovesToFailed(t *testing.T) {
	dir, done, failed := testDirs(t)
	drop(t, dir, "broken.pdf")

	w, err := New(Config{
		Dir:       dir,
		DoneDir:   done,
		FailedDir: failed,
		Settle:    10 * time.Millisecond,
		Run: func(ctx context.Context, path string) error {
			return fmt.Errorf("extraction exploded")
		},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { w.watcher.Close() })

	w.pickupExisting(context.Background())

	if _, err := os.Stat(filepath.Join(failed, "broken.pdf")); err != nil {
		t.Errorf("failed pdf not moved to failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(done, "broken.pdf")); err == nil {
		t.Error("failed pdf must not land in done")
	}
}

func TestWatcher_EventPickup(t *testing.T) {
	dir, done, failed := testDirs(t)

	ranCh := make(chan string, 1)
	w, err := New(Config{
		Dir:       dir,
		DoneDir:   done,
		FailedDir: failed,
		Settle:    10 * time.Millisecond,
		Run: func(ctx context.Context, path string) error {
			ranCh <- filepath.Base(path)
			return nil
		},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	// Give fsnotify time to set up the watcher
	time.Sleep(100 * time.Millisecond)
	drop(t, dir, "dropped.pdf")

	select {
	case name := <-ranCh:
		if name != "dropped.pdf" {
			t.Errorf("ran %q, want dropped.pdf", name)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watcher never picked up the dropped pdf")
	}
}

func TestNew_RequiresRunner(t *testing.T) {
	dir, _, _ := testDirs(t)
	if _, err := New(Config{Dir: dir}); err == nil {
		t.Error("expected error for missing runner")
	}
}
