package analyze

import (
	"fmt"
	"strings"

	"github.com/pagestamp/pagestamp/model"
)

// PageResult lists the header and footer texts found on one page.
type PageResult struct {
	Page    int      `json:"page"`
	Headers []string `json:"headers"`
	Footers []string `json:"footers"`
}

// Candidate is a text string proposed as a likely running header or
// footer, with the evidence backing the proposal.
type Candidate struct {
	Text string `json:"text"`

	// Count is the total number of occurrences across the scanned range;
	// Pages lists the distinct pages seen. Count >= len(Pages) >= 1.
	Count int   `json:"count"`
	Pages []int `json:"pages"`

	// Repeating is true when the text was seen on at least two distinct
	// pages.
	Repeating bool `json:"repeating"`

	// BBox is the bounding box of the first occurrence.
	BBox model.BBox `json:"bbox"`

	// Labels carries coarse classifications such as "pageno" and "date".
	Labels []string `json:"labels,omitempty"`

	score float64
}

// Report is the full analysis output for one document.
type Report struct {
	Path         string `json:"path"`
	PageCount    int    `json:"page_count"`
	ScannedPages int    `json:"scanned_pages"`
	Mode         Mode   `json:"mode"`

	Pages []PageResult `json:"pages"`

	HeaderCandidates []Candidate `json:"header_candidates"`
	FooterCandidates []Candidate `json:"footer_candidates"`

	// Fonts lists the base fonts declared on page 1.
	Fonts []string `json:"fonts"`

	HasStructuredHeader bool `json:"has_structured_header"`
	HasStructuredFooter bool `json:"has_structured_footer"`

	Suggestions []string `json:"suggestions,omitempty"`
}

// HasFindings reports whether anything at all was detected.
func (r *Report) HasFindings() bool {
	if r == nil {
		return false
	}
	for _, p := range r.Pages {
		if len(p.Headers) > 0 || len(p.Footers) > 0 {
			return true
		}
	}
	return len(r.HeaderCandidates) > 0 || len(r.FooterCandidates) > 0
}

// Summary returns a short human-readable digest of the report.
func (r *Report) Summary() string {
	if !r.HasFindings() {
		return "No headers or footers detected"
	}

	var parts []string
	if n := len(r.HeaderCandidates); n > 0 {
		texts := make([]string, 0, n)
		for _, c := range r.HeaderCandidates {
			texts = append(texts, c.Text)
		}
		parts = append(parts, "Headers: "+strings.Join(texts, ", "))
	}
	if n := len(r.FooterCandidates); n > 0 {
		texts := make([]string, 0, n)
		for _, c := range r.FooterCandidates {
			texts = append(texts, c.Text)
		}
		parts = append(parts, "Footers: "+strings.Join(texts, ", "))
	}
	if len(parts) == 0 {
		return fmt.Sprintf("Per-page findings on %d page(s), no repeated candidates", len(r.Pages))
	}
	return strings.Join(parts, "; ")
}
