// Package pagestamp provides a fluent API for detecting and stamping
// headers and footers on PDF files.
//
// Detecting what a document already carries:
//
//	report := pagestamp.Open("document.pdf").
//	    MaxPages(5).
//	    Mode(analyze.Heuristic).
//	    Report()
//	fmt.Println(report.Summary())
//
// Stamping new text:
//
//	err := pagestamp.Open("document.pdf").
//	    Header("Exhibit A").
//	    Footer("{page} / {total}").
//	    NormalizeA4().
//	    StampTo("document_header.pdf")
//
// For batch runs, servers and finer control, the analyze, overlay, batch
// and api packages are available directly.
package pagestamp

import (
	"github.com/pagestamp/pagestamp/analyze"
	"github.com/pagestamp/pagestamp/overlay"
)

// Job is a fluent handle on one PDF file. Chainable methods return a
// copy, so a configured Job can be reused and forked safely.
type Job struct {
	path string

	mode analyze.Mode
	cfg  analyze.Config

	overlay    overlay.Options
	structured bool
}

// Open starts a job for the PDF at path. No file access happens until a
// terminal operation runs.
func Open(path string) *Job {
	return &Job{
		path: path,
		mode: analyze.Combined,
		cfg:  analyze.DefaultConfig(),
	}
}

func (j *Job) clone() *Job {
	c := *j
	return &c
}

// MaxPages caps how many pages the analysis scans.
func (j *Job) MaxPages(n int) *Job {
	c := j.clone()
	if n > 0 {
		c.cfg.MaxPages = n
	}
	return c
}

// Mode selects the detection strategy for Report.
func (j *Job) Mode(m analyze.Mode) *Job {
	c := j.clone()
	c.mode = m
	return c
}

// Config replaces the whole detection configuration.
func (j *Job) Config(cfg analyze.Config) *Job {
	c := j.clone()
	c.cfg = cfg
	return c
}

// Header sets the header text to stamp. {page} and {total} expand per
// page.
func (j *Job) Header(text string) *Job {
	c := j.clone()
	c.overlay.HeaderText = text
	return c
}

// Footer sets the footer text to stamp.
func (j *Job) Footer(text string) *Job {
	c := j.clone()
	c.overlay.FooterText = text
	return c
}

// NormalizeA4 rescales every page onto an A4 sheet before stamping.
func (j *Job) NormalizeA4() *Job {
	c := j.clone()
	c.overlay.NormalizeA4 = true
	return c
}

// FontFile embeds a TTF for the stamped text, enabling non-Latin
// headers and footers.
func (j *Job) FontFile(path string) *Job {
	c := j.clone()
	c.overlay.FontFile = path
	return c
}

// StructuredTags prefers Artifact-tagged stamping for ASCII text,
// falling back to the drawn overlay otherwise.
func (j *Job) StructuredTags() *Job {
	c := j.clone()
	c.structured = true
	return c
}

// Report runs the header/footer detection. The report is empty but
// non-nil when the file cannot be opened.
func (j *Job) Report() *analyze.Report {
	return analyze.NewAnalyzerWithConfig(j.cfg).Analyze(j.path, j.mode)
}

// StampTo writes a stamped copy of the document to outPath.
func (j *Job) StampTo(outPath string) error {
	if j.structured {
		err := overlay.StampStructured(j.path, outPath, j.overlay)
		if err != overlay.ErrNonASCII {
			return err
		}
	}
	return overlay.NewCompositor(nil).Stamp(j.path, outPath, j.overlay)
}

// Must wraps a call returning (T, error) and panics on error. Intended
// for scripts and tests.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
