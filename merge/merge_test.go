package merge

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMergeRejectsEmptyInput(t *testing.T) {
	if _, err := NewMerger(quietLogger()).Merge(nil, Options{}); !errors.Is(err, ErrNoUsableInputs) {
		t.Errorf("expected ErrNoUsableInputs, got %v", err)
	}
}

func TestMergeSkipsUnreadableInputs(t *testing.T) {
	dir := t.TempDir()
	bogus := filepath.Join(dir, "not-a-pdf.pdf")
	if err := os.WriteFile(bogus, []byte("plain text"), 0o644); err != nil {
		t.Fatal(err)
	}
	missing := filepath.Join(dir, "missing.pdf")

	res, err := NewMerger(quietLogger()).Merge([]string{bogus, missing}, Options{})
	if !errors.Is(err, ErrNoUsableInputs) {
		t.Errorf("all-skipped run should report ErrNoUsableInputs, got %v", err)
	}
	if res == nil || len(res.Skipped) != 2 {
		t.Fatalf("expected both inputs skipped, got %+v", res)
	}
	if res.Skipped[0].Path != bogus || res.Skipped[0].Err == nil {
		t.Errorf("skip record = %+v", res.Skipped[0])
	}
}

func TestNewMergerDefaultsLogger(t *testing.T) {
	if m := NewMerger(nil); m.log == nil {
		t.Error("nil logger must fall back to the default")
	}
}
