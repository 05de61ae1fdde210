// Package merge combines multiple PDF files into one document.
// Unreadable inputs are skipped with a warning instead of failing the
// whole run, and the merged output can optionally receive running page
// numbers.
package merge

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/pagestamp/pagestamp/namer"
	"github.com/pagestamp/pagestamp/overlay"
)

// ErrNoUsableInputs is returned when every input was skipped.
var ErrNoUsableInputs = errors.New("merge: no usable input files")

// Options controls one merge run.
type Options struct {
	// Output is the merged file path. Empty derives a timestamped name
	// next to the first input.
	Output string

	// AddPageNumbers stamps running numbers onto the merged output.
	AddPageNumbers bool
	Numbering      overlay.NumberOptions
}

// Skipped records one input left out of the merge.
type Skipped struct {
	Path string
	Err  error
}

// Result reports what a merge run produced.
type Result struct {
	Output  string
	Merged  []string
	Skipped []Skipped
}

// Merger merges documents. The logger records skipped inputs; nil uses
// the process default.
type Merger struct {
	log *slog.Logger
}

func NewMerger(log *slog.Logger) *Merger {
	if log == nil {
		log = slog.Default()
	}
	return &Merger{log: log}
}

// Merge validates each input, merges the readable ones in order, and
// optionally numbers the pages of the result.
func (m *Merger) Merge(inputs []string, opts Options) (*Result, error) {
	if len(inputs) == 0 {
		return nil, ErrNoUsableInputs
	}

	conf := pdfmodel.NewDefaultConfiguration()
	res := &Result{}

	for _, in := range inputs {
		if err := api.ValidateFile(in, conf); err != nil {
			m.log.Warn("skipping unreadable file during merge",
				slog.String("path", in), slog.String("error", err.Error()))
			res.Skipped = append(res.Skipped, Skipped{Path: in, Err: err})
			continue
		}
		res.Merged = append(res.Merged, in)
	}
	if len(res.Merged) == 0 {
		return res, ErrNoUsableInputs
	}

	res.Output = opts.Output
	if res.Output == "" {
		res.Output = filepath.Join(filepath.Dir(res.Merged[0]), namer.MergedName())
	}

	if err := api.MergeCreateFile(res.Merged, res.Output, false, conf); err != nil {
		return res, fmt.Errorf("merge: %w", err)
	}

	if opts.AddPageNumbers {
		if err := m.numberInPlace(res.Output, opts.Numbering); err != nil {
			return res, err
		}
	}
	return res, nil
}

// numberInPlace stamps page numbers through a sibling temp file so a
// failed pass never clobbers the merged output.
func (m *Merger) numberInPlace(path string, opts overlay.NumberOptions) error {
	tmp := path + ".numbering"
	if err := overlay.AddPageNumbers(path, tmp, opts); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("merge: numbering: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("merge: numbering: %w", err)
	}
	return nil
}
