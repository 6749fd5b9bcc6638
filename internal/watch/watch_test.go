package watch

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bml-lang/bml/internal/check"
	"github.com/bml-lang/bml/internal/config"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func startWatcher(t *testing.T, paths []string) (<-chan *check.Report, context.CancelFunc, <-chan error) {
	t.Helper()
	cfg := config.Default()
	cfg.Jobs = 2
	reports := make(chan *check.Report, 16)
	w := New(check.New(cfg, quietLogger()), paths, func(r *check.Report) { reports <- r }, quietLogger())
	w.Debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(cancel)
	return reports, cancel, done
}

func nextReport(t *testing.T, reports <-chan *check.Report) *check.Report {
	t.Helper()
	select {
	case r := <-reports:
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a check report")
		return nil
	}
}

func TestWatchRechecksOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.bml")
	if err := os.WriteFile(path, []byte("x = 1;"), 0644); err != nil {
		t.Fatal(err)
	}

	reports, cancel, done := startWatcher(t, []string{dir})

	if r := nextReport(t, reports); !r.OK() || len(r.Results) != 1 {
		t.Fatalf("initial report: failed=%d results=%d", r.Failed(), len(r.Results))
	}

	if err := os.WriteFile(path, []byte("x = (1;"), 0644); err != nil {
		t.Fatal(err)
	}
	for {
		r := nextReport(t, reports)
		if r.Failed() == 1 {
			break
		}
	}

	// A new file in a new subdirectory is picked up too.
	sub := filepath.Join(dir, "lib")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}
	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(sub, "util.bml"), []byte("return;"), 0644); err != nil {
		t.Fatal(err)
	}
	for {
		r := nextReport(t, reports)
		if len(r.Results) == 2 {
			break
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v after cancel", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestWatchIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.bml"), []byte("a;"), 0644); err != nil {
		t.Fatal(err)
	}
	reports, _, _ := startWatcher(t, []string{dir})
	nextReport(t, reports)

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-reports:
		t.Error("unrelated file triggered a check")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatchMissingPath(t *testing.T) {
	w := New(check.New(nil, quietLogger()), []string{filepath.Join(t.TempDir(), "nope")}, nil, quietLogger())
	if err := w.Run(context.Background()); err == nil {
		t.Error("expected error for missing path")
	}
}
