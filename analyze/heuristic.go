package analyze

import (
	"sort"
	"strings"

	"github.com/pagestamp/pagestamp/model"
	"github.com/pagestamp/pagestamp/text"
)

// HeuristicResult is the output of the positional detector.
type HeuristicResult struct {
	Pages            []PageResult
	HeaderCandidates []Candidate
	FooterCandidates []Candidate
}

// occurrence aggregates the sightings of one candidate text in one zone.
type occurrence struct {
	count    int
	pages    map[int]bool
	bbox     model.BBox
	fontSize float64
	fontName string
	order    int // first-seen rank, keeps ranking ties deterministic
}

// DetectSpans runs the positional heuristic over already-extracted page
// spans. It is a pure function: feeding it the same spans twice yields the
// same result.
//
// A span lands in the header zone when its top edge is within the top
// HeaderZoneRatio of the page height, and in the footer zone within the
// bottom FooterZoneRatio (PDF coordinates, Y up). Zone membership alone is
// not enough: the text must also pass the hard filters (length bounds, not
// a bare page number, no body punctuation, repeated at least MinRepeat
// times across the scanned range).
func DetectSpans(pages []text.PageSpans, cfg Config) *HeuristicResult {
	res := &HeuristicResult{}
	if len(pages) == 0 {
		return res
	}

	// Repetition is judged against every span in the scanned range, not
	// just the zone members, mirroring how running heads repeat verbatim.
	counts := make(map[string]int)
	for _, p := range pages {
		for _, s := range p.Spans {
			if t := strings.TrimSpace(s.Text); t != "" {
				counts[t]++
			}
		}
	}

	headerOcc := make(map[string]*occurrence)
	footerOcc := make(map[string]*occurrence)
	order := 0

	for _, p := range pages {
		if p.Height <= 0 {
			res.Pages = append(res.Pages, PageResult{Page: p.Page})
			continue
		}

		headerEdge := p.Height * (1 - cfg.HeaderZoneRatio)
		footerEdge := p.Height * cfg.FooterZoneRatio

		pr := PageResult{Page: p.Page}
		seenHeader := make(map[string]bool)
		seenFooter := make(map[string]bool)

		for _, s := range p.Spans {
			t := strings.TrimSpace(s.Text)
			if !passesHardFilters(t, counts[t], cfg) {
				continue
			}

			top := s.BBox.Top()
			switch {
			case top >= headerEdge:
				if !seenHeader[t] {
					seenHeader[t] = true
					pr.Headers = append(pr.Headers, t)
				}
				order = record(headerOcc, t, s, p.Page, order)
			case top <= footerEdge:
				if !seenFooter[t] {
					seenFooter[t] = true
					pr.Footers = append(pr.Footers, t)
				}
				order = record(footerOcc, t, s, p.Page, order)
			}
		}
		res.Pages = append(res.Pages, pr)
	}

	res.HeaderCandidates = rankCandidates(headerOcc, cfg)
	res.FooterCandidates = rankCandidates(footerOcc, cfg)
	return res
}

func record(occ map[string]*occurrence, t string, s text.Span, page, order int) int {
	o, ok := occ[t]
	if !ok {
		o = &occurrence{
			pages:    make(map[int]bool),
			bbox:     s.BBox,
			fontSize: s.FontSize,
			fontName: s.FontName,
			order:    order,
		}
		occ[t] = o
		order++
	}
	o.count++
	o.pages[page] = true
	return order
}

// passesHardFilters applies the exclusion rules every candidate must
// clear. Soft signals (keywords, font size, font family) never appear
// here; they only influence ranking.
func passesHardFilters(t string, totalCount int, cfg Config) bool {
	runes := []rune(t)
	if len(runes) < cfg.MinTextLen || len(runes) > cfg.MaxTextLen {
		return false
	}
	if isBarePageNumber(t, cfg.MaxPageNumberLen) {
		return false
	}
	if containsBodyPunctuation(t, cfg.BodyPunctuation) {
		return false
	}
	return totalCount >= cfg.MinRepeat
}

func isBarePageNumber(t string, maxLen int) bool {
	return pureDigits(t) && len(t) <= maxLen
}

func pureDigits(t string) bool {
	if t == "" {
		return false
	}
	for _, r := range t {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func containsBodyPunctuation(t string, indicators []rune) bool {
	return strings.ContainsFunc(t, func(r rune) bool {
		for _, p := range indicators {
			if r == p {
				return true
			}
		}
		return false
	})
}

func rankCandidates(occ map[string]*occurrence, cfg Config) []Candidate {
	out := make([]Candidate, 0, len(occ))
	for t, o := range occ {
		pages := make([]int, 0, len(o.pages))
		for p := range o.pages {
			pages = append(pages, p)
		}
		sort.Ints(pages)

		out = append(out, Candidate{
			Text:      t,
			Count:     o.count,
			Pages:     pages,
			Repeating: len(pages) >= 2,
			BBox:      o.bbox,
			Labels:    labelText(t, cfg),
			score:     float64(o.count) + softBonus(t, o, cfg),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].score != out[j].score {
			return out[i].score > out[j].score
		}
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Text < out[j].Text
	})
	return out
}

// softBonus scores the advisory signals: domain keywords, a small font,
// and a conventional header/footer font family.
func softBonus(t string, o *occurrence, cfg Config) float64 {
	bonus := 0.0
	lower := strings.ToLower(t)
	for _, k := range cfg.Keywords {
		if strings.Contains(lower, k) {
			bonus += 2
			break
		}
	}
	if o.fontSize > 0 && o.fontSize < cfg.SmallFontMax {
		bonus++
	}
	lowerFont := strings.ToLower(o.fontName)
	for _, f := range cfg.CommonFonts {
		if strings.Contains(lowerFont, f) {
			bonus++
			break
		}
	}
	return bonus
}

func labelText(t string, cfg Config) []string {
	var labels []string
	if pureDigits(t) {
		labels = append(labels, "pageno")
	}
	if strings.Contains(t, ":") {
		labels = append(labels, "date")
	} else {
		lower := strings.ToLower(t)
		for _, k := range cfg.DateKeywords {
			if strings.Contains(lower, k) {
				labels = append(labels, "date")
				break
			}
		}
	}
	return labels
}
