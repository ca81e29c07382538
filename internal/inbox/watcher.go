// Package inbox watches a drop directory for cookbook PDFs and feeds
// them through extraction. Processed files are moved to done/ or failed/
// so a restart never re-processes a book.
package inbox

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/fsnotify/fsnotify"
)

// Runner processes one dropped PDF. It is injected so the watcher does
// not depend on the extraction pipeline directly.
type Runner func(ctx context.Context, pdfPath string) error

// Config configures the inbox watcher.
type Config struct {
	Dir       string        // Directory to watch
	DoneDir   string        // Destination for processed PDFs
	FailedDir string        // Destination for PDFs whose run failed
	Settle    time.Duration // How long a file must stop growing before pickup
	Logger    *slog.Logger
	Run       Runner
}

// Watcher picks up PDFs dropped into the inbox directory.
type Watcher struct {
	cfg     Config
	watcher *fsnotify.Watcher
}

// New creates a Watcher. The inbox directories must already exist.
func New(cfg Config) (*Watcher, error) {
	if cfg.Run == nil {
		return nil, fmt.Errorf("inbox runner is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Settle <= 0 {
		cfg.Settle = 2 * time.Second
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fw.Add(cfg.Dir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", cfg.Dir, err)
	}

	return &Watcher{cfg: cfg, watcher: fw}, nil
}

// Start processes existing inbox files, then blocks handling filesystem
// events until the context is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	defer w.watcher.Close()

	w.pickupExisting(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !isPDF(event.Name) {
				continue
			}
			w.handle(ctx, event.Name)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.cfg.Logger.Error("inbox watcher error", "error", err)
		}
	}
}

// pickupExisting processes PDFs that were dropped while the server was
// not running.
func (w *Watcher) pickupExisting(ctx context.Context) {
	entries, err := os.ReadDir(w.cfg.Dir)
	if err != nil {
		w.cfg.Logger.Error("failed to read inbox", "dir", w.cfg.Dir, "error", err)
		return
	}
	for _, e := range entries {
		if e.IsDir() || !isPDF(e.Name()) {
			continue
		}
		w.handle(ctx, filepath.Join(w.cfg.Dir, e.Name()))
	}
}

// handle waits for the file to settle, runs extraction, and moves the
// file to done/ or failed/.
func (w *Watcher) handle(ctx context.Context, path string) {
	log := w.cfg.Logger.With("pdf", filepath.Base(path))

	if err := w.waitForSettle(ctx, path); err != nil {
		log.Warn("inbox file never settled", "error", err)
		return
	}

	log.Info("picking up inbox pdf")
	if err := w.cfg.Run(ctx, path); err != nil {
		log.Error("inbox extraction failed", "error", err)
		w.move(path, w.cfg.FailedDir, log)
		return
	}
	w.move(path, w.cfg.DoneDir, log)
}

// waitForSettle polls until the file size stops changing between polls.
// A write event can fire while the file is still being copied in.
func (w *Watcher) waitForSettle(ctx context.Context, path string) error {
	var lastSize int64 = -1
	return retry.Do(
		func() error {
			info, err := os.Stat(path)
			if err != nil {
				return err
			}
			if info.Size() != lastSize {
				lastSize = info.Size()
				return fmt.Errorf("file still growing (%d bytes)", lastSize)
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(30),
		retry.Delay(w.cfg.Settle),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)
}

// move relocates a processed file, falling back to leaving it in place.
func (w *Watcher) move(path, destDir string, log *slog.Logger) {
	dest := filepath.Join(destDir, filepath.Base(path))
	if err := os.Rename(path, dest); err != nil {
		log.Error("failed to move inbox file", "dest", dest, "error", err)
		return
	}
	log.Info("inbox file moved", "dest", dest)
}

func isPDF(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".pdf")
}
