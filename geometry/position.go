package geometry

import (
	"errors"
	"fmt"

	"github.com/pagestamp/pagestamp/model"
)

// ErrInvalidAlignment is returned for an alignment value outside
// left/center/right. This is a programmer error, never retried.
var ErrInvalidAlignment = errors.New("geometry: invalid alignment")

// DefaultMargin is the conventional 1-inch page margin in points.
const DefaultMargin = 72.0

// printEdgeBand is the band next to a physical page edge where stamped
// text risks being clipped by printer hardware margins.
const printEdgeBand = 12.0

// EstimateTextWidth approximates the rendered width of text as
// len(text) × fontSize × 0.5. This is a crude monospace-like heuristic
// used only for alignment, never for final rendering metrics.
func EstimateTextWidth(text string, fontSize float64) float64 {
	return float64(len([]rune(text))) * fontSize * 0.5
}

// AlignedX resolves an alignment intent into an absolute X coordinate for
// text of the given estimated width on a page of the given width.
func AlignedX(alignment model.Alignment, pageWidth, textWidth, margin float64) (float64, error) {
	switch alignment {
	case model.AlignLeft:
		return margin, nil
	case model.AlignCenter:
		return (pageWidth - textWidth) / 2, nil
	case model.AlignRight:
		return pageWidth - margin - textWidth, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidAlignment, alignment)
}

// IsSafePrintRegion reports whether a Y coordinate keeps clear of the
// physical page edge. top selects the top band check. The result is a
// warning signal only; out-of-range placements are never rejected.
func IsSafePrintRegion(y, pageHeight float64, top bool) bool {
	if top {
		return y <= pageHeight-printEdgeBand
	}
	return y >= printEdgeBand
}

// SuggestedHeaderY returns the conventional header baseline, 40pt below
// the top edge.
func SuggestedHeaderY(pageHeight float64) float64 {
	return pageHeight - 40
}

// SuggestedFooterY returns the conventional footer baseline, 40pt above
// the bottom edge.
func SuggestedFooterY() float64 {
	return 40
}

// PlacementX computes the draw X for a placement on a page of the given
// width. An explicit alignment wins over the stored X coordinate.
func PlacementX(p model.Placement, text string, pageWidth float64) (float64, error) {
	if p.Alignment == "" {
		return p.X, nil
	}
	w := EstimateTextWidth(text, p.FontSize)
	return AlignedX(p.Alignment, pageWidth, w, DefaultMargin)
}
