package batch

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pagestamp/pagestamp/model"
	"github.com/pagestamp/pagestamp/overlay"
)

func quietProcessor() *Processor {
	return NewProcessor(slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
}

func TestRunCollectsPerFileResults(t *testing.T) {
	p := quietProcessor()

	var stamped []string
	p.stamp = func(inPath, outPath string, opts overlay.Options, structured bool) error {
		stamped = append(stamped, inPath)
		if strings.Contains(inPath, "bad") {
			return errors.New("boom")
		}
		return nil
	}

	items := []model.FileItem{
		{Path: "/in/a.pdf", Name: "a.pdf", HeaderText: "a.pdf"},
		{Path: "/in/bad.pdf", Name: "bad.pdf", HeaderText: "bad.pdf"},
		{Path: "/in/c.pdf", Name: "c.pdf", FooterText: "{page}"},
	}

	results := p.Run(items, Options{OutputDir: t.TempDir()})

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if !results[0].Ok() || results[1].Ok() || !results[2].Ok() {
		t.Errorf("result pattern wrong: %+v", results)
	}
	if results[1].Output != "" {
		t.Error("failed item must not advertise an output path")
	}
	if len(stamped) != 3 {
		t.Errorf("a failure must not stop the run, stamped %v", stamped)
	}
	if filepath.Base(results[0].Output) != "a_header.pdf" {
		t.Errorf("output name = %q", results[0].Output)
	}
}

func TestRunSkipsLockedAndEmptyItems(t *testing.T) {
	p := quietProcessor()
	p.stamp = func(string, string, overlay.Options, bool) error {
		t.Error("locked or empty items must not reach the stamp step")
		return nil
	}

	items := []model.FileItem{
		{Path: "/in/locked.pdf", Name: "locked.pdf", HeaderText: "x", Encryption: model.EncryptionLocked},
		{Path: "/in/empty.pdf", Name: "empty.pdf"},
	}

	results := p.Run(items, Options{OutputDir: t.TempDir()})
	if results[0].Ok() || !errors.Is(results[0].Err, errUnlockFirst) {
		t.Errorf("locked item error = %v", results[0].Err)
	}
	if results[1].Ok() || !errors.Is(results[1].Err, overlay.ErrNothingToStamp) {
		t.Errorf("empty item error = %v", results[1].Err)
	}
}

func TestRunDowngradesLossyEncoding(t *testing.T) {
	p := quietProcessor()
	p.stamp = func(string, string, overlay.Options, bool) error {
		return overlay.ErrLossyEncoding
	}

	results := p.Run([]model.FileItem{{Path: "/in/a.pdf", Name: "a.pdf", HeaderText: "café"}},
		Options{OutputDir: t.TempDir()})
	if !results[0].Ok() {
		t.Errorf("lossy encoding should not fail the file: %v", results[0].Err)
	}
}

func TestRunReportsProgress(t *testing.T) {
	p := quietProcessor()
	p.stamp = func(string, string, overlay.Options, bool) error { return nil }

	type tick struct {
		index, total int
		name         string
	}
	var ticks []tick

	items := []model.FileItem{
		{Path: "/in/a.pdf", Name: "a.pdf", HeaderText: "h"},
		{Path: "/in/b.pdf", Name: "b.pdf", HeaderText: "h"},
	}
	p.Run(items, Options{
		OutputDir:  t.TempDir(),
		OnProgress: func(i, n int, name string) { ticks = append(ticks, tick{i, n, name}) },
	})

	want := []tick{{1, 2, "a.pdf"}, {2, 2, "b.pdf"}}
	if len(ticks) != 2 || ticks[0] != want[0] || ticks[1] != want[1] {
		t.Errorf("progress ticks = %v, want %v", ticks, want)
	}
}

func TestStartRunsInBackground(t *testing.T) {
	p := quietProcessor()
	p.stamp = func(string, string, overlay.Options, bool) error { return nil }

	var got []model.ProcessResult
	done := p.Start([]model.FileItem{{Path: "/in/a.pdf", Name: "a.pdf", HeaderText: "h"}},
		Options{
			OutputDir:  t.TempDir(),
			OnFinished: func(r []model.ProcessResult) { got = r },
		})

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not finish")
	}
	if len(got) != 1 || !got[0].Ok() {
		t.Errorf("finished callback results = %+v", got)
	}
}

func TestRunHonorsOutputNameOverride(t *testing.T) {
	p := quietProcessor()
	p.stamp = func(string, string, overlay.Options, bool) error { return nil }

	items := []model.FileItem{
		{Path: "/in/a.pdf", Name: "a.pdf", HeaderText: "h", OutputName: "exhibit-1"},
	}
	results := p.Run(items, Options{OutputDir: t.TempDir()})
	if filepath.Base(results[0].Output) != "exhibit-1.pdf" {
		t.Errorf("override output = %q", results[0].Output)
	}
}

func TestApplyHeaderMode(t *testing.T) {
	items := []model.FileItem{
		{Name: "a.pdf", HeaderText: "keep-a"},
		{Name: "b.pdf", HeaderText: "keep-b"},
	}

	ApplyHeaderMode(items, HeaderModeAutoNumber, Numbering{})
	if items[0].HeaderText != "Doc-001" || items[1].HeaderText != "Doc-002" {
		t.Errorf("auto number = %q, %q", items[0].HeaderText, items[1].HeaderText)
	}

	ApplyHeaderMode(items, HeaderModeFilename, Numbering{})
	if items[0].HeaderText != "a.pdf" {
		t.Errorf("filename mode = %q", items[0].HeaderText)
	}

	before := items[0].HeaderText
	ApplyHeaderMode(items, HeaderModeCustom, Numbering{})
	if items[0].HeaderText != before {
		t.Error("custom mode must not rewrite header text")
	}
	ApplyHeaderMode(items, HeaderMode("bogus"), Numbering{})
	if items[0].HeaderText != before {
		t.Error("unknown mode must not rewrite header text")
	}
}

func TestNumberingLabel(t *testing.T) {
	cases := []struct {
		n    Numbering
		i    int
		want string
	}{
		{Numbering{}, 0, "Doc-001"},
		{Numbering{Start: 10, Step: 5, Digits: 2, Prefix: "EX-"}, 1, "EX-15"},
		{Numbering{Suffix: "-A", Digits: 1}, 2, "3-A"},
	}
	for _, tc := range cases {
		if got := tc.n.Label(tc.i); got != tc.want {
			t.Errorf("Label(%d) = %q, want %q", tc.i, got, tc.want)
		}
	}
}

func TestCollectPDFs(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"b.pdf", "a.PDF", "notes.txt", ".hidden.pdf"} {
		if err := os.WriteFile(filepath.Join(sub, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	single := filepath.Join(dir, "solo.pdf")
	if err := os.WriteFile(single, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	got := CollectPDFs([]string{single, sub, filepath.Join(dir, "missing.pdf")})
	want := []string{single, filepath.Join(sub, "a.PDF"), filepath.Join(sub, "b.pdf")}
	if len(got) != len(want) {
		t.Fatalf("collected %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("collected[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
