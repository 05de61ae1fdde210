// Package analyze detects existing headers and footers in PDF documents.
//
// Two independent strategies feed the classifier:
//
//   - Structured: pagination Artifact tags some producers write into page
//     content streams, extracted verbatim.
//   - Heuristic: positioned text spans in the top/bottom page zones,
//     filtered by repetition across pages and ranked into [Candidate]
//     lists.
//
// One [Analyzer] exposes both plus their fusion through a [Mode] value.
// The analysis is advisory preview functionality: per-page parse failures
// contribute empty page results, and a file that cannot be opened at all
// yields an empty [Report] rather than an error.
package analyze

import (
	"sort"
	"strings"

	"github.com/pagestamp/pagestamp/reader"
	"github.com/pagestamp/pagestamp/text"
)

// Mode selects the detection strategy.
type Mode int

const (
	// Combined unions the structured and heuristic findings.
	Combined Mode = iota
	// Structured uses only Artifact-tagged content.
	Structured
	// Heuristic uses only the positional span classifier.
	Heuristic
)

func (m Mode) String() string {
	switch m {
	case Structured:
		return "structured"
	case Heuristic:
		return "heuristic"
	case Combined:
		return "combined"
	}
	return "unknown"
}

// Analyzer classifies headers and footers. It is stateless between calls;
// each analysis opens its own document and discards it on return.
type Analyzer struct {
	cfg Config
}

// NewAnalyzer creates an analyzer with the default configuration.
func NewAnalyzer() *Analyzer {
	return &Analyzer{cfg: DefaultConfig()}
}

// NewAnalyzerWithConfig creates an analyzer with a custom configuration.
func NewAnalyzerWithConfig(cfg Config) *Analyzer {
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = DefaultConfig().MaxPages
	}
	return &Analyzer{cfg: cfg}
}

// Analyze builds a full report for the document at path using the given
// mode: per-page findings, ranked candidates, page-1 fonts, and
// suggestions. The report is empty but non-nil when the file cannot be
// opened.
func (a *Analyzer) Analyze(path string, mode Mode) *Report {
	rep := &Report{Path: path, Mode: mode}

	doc, err := reader.Open(path)
	if err != nil {
		return rep
	}

	rep.PageCount = doc.PageCount()
	scan := rep.PageCount
	if scan > a.cfg.MaxPages {
		scan = a.cfg.MaxPages
	}
	rep.ScannedPages = scan

	var structured []PageResult
	if mode == Structured || mode == Combined {
		structured = a.structuredPages(doc, scan)
		for _, p := range structured {
			if len(p.Headers) > 0 {
				rep.HasStructuredHeader = true
			}
			if len(p.Footers) > 0 {
				rep.HasStructuredFooter = true
			}
		}
	}

	var heuristic *HeuristicResult
	if mode == Heuristic || mode == Combined {
		heuristic = DetectSpans(a.pageSpans(doc, scan), a.cfg)
		rep.HeaderCandidates = heuristic.HeaderCandidates
		rep.FooterCandidates = heuristic.FooterCandidates
	}

	switch mode {
	case Structured:
		rep.Pages = structured
	case Heuristic:
		rep.Pages = heuristic.Pages
	default:
		rep.Pages = a.fuse(structured, heuristic.Pages)
	}

	if fonts, err := doc.Fonts(1); err == nil {
		names := make([]string, 0, len(fonts))
		seen := make(map[string]bool)
		for _, base := range fonts {
			if !seen[base] {
				seen[base] = true
				names = append(names, base)
			}
		}
		sort.Strings(names)
		rep.Fonts = names
	}

	rep.Suggestions = a.suggestions(rep)
	return rep
}

// structuredPages runs the Artifact scan over the first scan pages. A page
// whose content cannot be read contributes an empty result.
func (a *Analyzer) structuredPages(doc *reader.Document, scan int) []PageResult {
	out := make([]PageResult, 0, scan)
	for p := 1; p <= scan; p++ {
		pr := PageResult{Page: p}
		if content, err := doc.ContentText(p); err == nil && content != "" {
			pr.Headers, pr.Footers = extractArtifacts(content)
		}
		out = append(out, pr)
	}
	return out
}

// pageSpans extracts spans for the first scan pages, pairing them with
// page dimensions. Failed pages contribute an empty span list.
func (a *Analyzer) pageSpans(doc *reader.Document, scan int) []text.PageSpans {
	out := make([]text.PageSpans, 0, scan)
	for p := 1; p <= scan; p++ {
		ps := text.PageSpans{Page: p}
		if info, err := doc.Page(p); err == nil && info.MediaBox != nil {
			box := info.MediaBox
			if info.CropBox != nil {
				box = info.CropBox
			}
			ps.Width = box.Width
			ps.Height = box.Height
		}
		if spans, err := doc.Spans(p); err == nil {
			ps.Spans = spans
		}
		out = append(out, ps)
	}
	return out
}

// fuse unions the two strategies per page, dropping cross-strategy noise
// with the same filter the heuristic applies.
func (a *Analyzer) fuse(structured, heuristic []PageResult) []PageResult {
	byPage := make(map[int]*PageResult)
	var pageNums []int

	add := func(results []PageResult) {
		for _, p := range results {
			target, ok := byPage[p.Page]
			if !ok {
				target = &PageResult{Page: p.Page}
				byPage[p.Page] = target
				pageNums = append(pageNums, p.Page)
			}
			target.Headers = append(target.Headers, p.Headers...)
			target.Footers = append(target.Footers, p.Footers...)
		}
	}
	add(structured)
	add(heuristic)

	sort.Ints(pageNums)
	out := make([]PageResult, 0, len(pageNums))
	for _, n := range pageNums {
		p := byPage[n]
		out = append(out, PageResult{
			Page:    n,
			Headers: a.cleanTexts(p.Headers),
			Footers: a.cleanTexts(p.Footers),
		})
	}
	return out
}

// cleanTexts deduplicates a merged text list and re-applies the candidate
// filters, catching noise one strategy let through.
func (a *Analyzer) cleanTexts(items []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, raw := range items {
		t := strings.TrimSpace(raw)
		runes := []rune(t)
		if len(runes) < a.cfg.MinTextLen || len(runes) > a.cfg.MaxTextLen {
			continue
		}
		if isBarePageNumber(t, a.cfg.MaxPageNumberLen) {
			continue
		}
		if containsBodyPunctuation(t, a.cfg.BodyPunctuation) {
			continue
		}
		if !seen[raw] {
			seen[raw] = true
			out = append(out, raw)
		}
	}
	return out
}

func (a *Analyzer) suggestions(rep *Report) []string {
	var out []string
	if rep.HasStructuredHeader || rep.HasStructuredFooter {
		out = append(out, "Structured pagination artifacts found: existing headers/footers can be replaced in place.")
	}
	if rep.ScannedPages > 0 && len(rep.Fonts) == 0 {
		out = append(out, "No embedded fonts found on page 1: embed a CID-keyed font before stamping non-Latin text.")
	}
	return out
}
