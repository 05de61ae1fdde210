// Package text extracts positioned text spans from decoded PDF page
// content streams.
//
// The scanner is a deliberately small interpreter of the text-object subset
// of the content stream language (BT/ET, Tf, Tm, Td, TD, T*, Tj, ', TJ).
// It tracks the text matrix well enough to attribute each shown string to a
// page position, which is all the header/footer heuristics need; it is not
// a full renderer and ignores the graphics state stack, clipping, and
// glyph-accurate metrics.
package text

import "github.com/pagestamp/pagestamp/model"

// Span is one shown string with its approximate page position. Width is
// estimated from the character count and font size, Height from the font
// size; BBox.Y is the text baseline.
type Span struct {
	Text      string
	PageIndex int
	BBox      model.BBox
	FontSize  float64
	FontName  string
}

// PageSpans holds the spans of one page together with its dimensions.
type PageSpans struct {
	Page   int // 1-based
	Width  float64
	Height float64
	Spans  []Span
}
