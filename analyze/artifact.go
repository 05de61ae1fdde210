package analyze

import (
	"regexp"

	"github.com/pagestamp/pagestamp/text"
)

// Some producers tag generated headers and footers as pagination
// artifacts: a marked-content region whose property dictionary carries
// /Subtype /Header or /Footer. Both operand orders occur in the wild,
// with the /Artifact name before or inside the BDC operands.
var (
	artifactHeaderRe = regexp.MustCompile(`/Artifact\s*<<[^>]*?/Subtype\s*/Header[^>]*?>>\s*BDC([\s\S]*?)EMC`)
	artifactFooterRe = regexp.MustCompile(`/Artifact\s*<<[^>]*?/Subtype\s*/Footer[^>]*?>>\s*BDC([\s\S]*?)EMC`)
	simpleHeaderRe   = regexp.MustCompile(`BDC\s*<<[^>]*?/Subtype\s*/Header[^>]*?>>([\s\S]*?)EMC`)
	simpleFooterRe   = regexp.MustCompile(`BDC\s*<<[^>]*?/Subtype\s*/Footer[^>]*?>>([\s\S]*?)EMC`)
)

// extractArtifacts scans one page's content stream text for tagged
// header/footer regions and returns the literal strings inside them,
// deduplicated in first-seen order. Absence of matches is a normal,
// empty result.
func extractArtifacts(content string) (headers, footers []string) {
	headers = artifactStrings(content, artifactHeaderRe, simpleHeaderRe)
	footers = artifactStrings(content, artifactFooterRe, simpleFooterRe)
	return headers, footers
}

func artifactStrings(content string, patterns ...*regexp.Regexp) []string {
	var out []string
	seen := make(map[string]bool)
	for _, re := range patterns {
		for _, m := range re.FindAllStringSubmatch(content, -1) {
			for _, lit := range text.Literals(m[1]) {
				if !seen[lit] {
					seen[lit] = true
					out = append(out, lit)
				}
			}
		}
	}
	return out
}
