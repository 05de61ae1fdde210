// Package batch runs header/footer stamping over a list of files on a
// single background worker. A started run always goes to completion;
// per-file failures are collected into the result list and never abort
// the remaining files.
package batch

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/pagestamp/pagestamp/fontcache"
	"github.com/pagestamp/pagestamp/model"
	"github.com/pagestamp/pagestamp/namer"
	"github.com/pagestamp/pagestamp/overlay"
)

// Progress is called after each file with its 1-based index, the total
// file count and the file name.
type Progress func(index, total int, name string)

// Finished is called once with the per-file results when the run ends.
type Finished func(results []model.ProcessResult)

// Options configures one batch run.
type Options struct {
	// OutputDir receives the stamped files.
	OutputDir string

	// Suffix is inserted into generated output names; empty means
	// namer.DefaultSuffix.
	Suffix string

	// Overlay styles the stamped bands. Its HeaderText/FooterText fields
	// are ignored; each item carries its own text.
	Overlay overlay.Options

	// Structured first tries Artifact-tagged stamping, falling back to
	// the drawn overlay for non-ASCII text.
	Structured bool

	OnProgress Progress
	OnFinished Finished
}

// stampFunc stamps one prepared item. Swapped out in tests.
type stampFunc func(inPath, outPath string, opts overlay.Options, structured bool) error

// Processor owns the compositor and the worker that drives it.
type Processor struct {
	log   *slog.Logger
	comp  *overlay.Compositor
	stamp stampFunc
}

// NewProcessor creates a processor. A nil logger uses the process
// default; a nil font cache gets a default-sized one.
func NewProcessor(log *slog.Logger, fonts *fontcache.Cache) *Processor {
	if log == nil {
		log = slog.Default()
	}
	p := &Processor{
		log:  log,
		comp: overlay.NewCompositor(fonts),
	}
	p.stamp = p.stampFile
	return p
}

// Start launches the run on a background goroutine and returns a channel
// that closes when it finishes. There is no cancellation; a started run
// processes every file.
func (p *Processor) Start(items []model.FileItem, opts Options) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		results := p.Run(items, opts)
		if opts.OnFinished != nil {
			opts.OnFinished(results)
		}
	}()
	return done
}

// Run processes the items synchronously and returns one result per item.
func (p *Processor) Run(items []model.FileItem, opts Options) []model.ProcessResult {
	suffix := opts.Suffix
	if suffix == "" {
		suffix = namer.DefaultSuffix
	}

	p.log.Info("starting batch", slog.Int("files", len(items)), slog.String("output_dir", opts.OutputDir))

	overrides := make(map[string]string)
	inputs := make([]string, 0, len(items))
	for _, item := range items {
		inputs = append(inputs, item.Path)
		if item.OutputName != "" {
			overrides[item.Path] = item.OutputName
		}
	}
	names := namer.BatchResolve(inputs, opts.OutputDir, suffix, overrides)

	results := make([]model.ProcessResult, 0, len(items))
	for i, item := range items {
		res := model.ProcessResult{Input: item.Path}

		switch {
		case item.Encryption == model.EncryptionLocked:
			res.Err = fmt.Errorf("%s: %w", item.Name, errUnlockFirst)
		case item.HeaderText == "" && item.FooterText == "":
			res.Err = fmt.Errorf("%s: %w", item.Name, overlay.ErrNothingToStamp)
		default:
			out := filepath.Join(opts.OutputDir, names[item.Path])
			res.Output = out
			res.Err = p.stampItem(item, out, opts)
		}

		if res.Err != nil {
			res.Output = ""
			p.log.Error("failed to process file",
				slog.String("input", item.Path), slog.String("error", res.Err.Error()))
		}
		results = append(results, res)

		if opts.OnProgress != nil {
			opts.OnProgress(i+1, len(items), item.Name)
		}
	}

	p.log.Info("batch finished",
		slog.Int("files", len(items)), slog.Int("failed", countFailed(results)))
	return results
}

var errUnlockFirst = errors.New("file is password protected, unlock it first")

// stampItem prepares the overlay options for one item and stamps it.
// A lossy-encoding outcome is downgraded to a warning since the output
// file exists and is readable.
func (p *Processor) stampItem(item model.FileItem, outPath string, opts Options) error {
	o := opts.Overlay
	o.HeaderText = item.HeaderText
	o.FooterText = item.FooterText

	err := p.stamp(item.Path, outPath, o, opts.Structured)
	if errors.Is(err, overlay.ErrLossyEncoding) {
		p.log.Warn("stamped with lossy text encoding",
			slog.String("input", item.Path), slog.String("error", err.Error()))
		return nil
	}
	return err
}

// stampFile is the production stamp path: structured first when asked,
// falling back to the drawn overlay for non-ASCII text.
func (p *Processor) stampFile(inPath, outPath string, opts overlay.Options, structured bool) error {
	if structured {
		err := overlay.StampStructured(inPath, outPath, opts)
		if !errors.Is(err, overlay.ErrNonASCII) {
			return err
		}
	}
	return p.comp.Stamp(inPath, outPath, opts)
}

func countFailed(results []model.ProcessResult) int {
	n := 0
	for _, r := range results {
		if !r.Ok() {
			n++
		}
	}
	return n
}
