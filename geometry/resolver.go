// Package geometry computes the coordinate frame that header and footer
// text must be drawn in for a given PDF page.
//
// [Resolve] turns a page's raw media/crop box and rotation into a
// [PageGeometry]: the effective page dimensions, plus the scale and offset
// of the optional A4 normalization transform. [AlignedX] and the safe-zone
// helpers translate placement intent (alignment, Y position) into concrete
// coordinates and warnings.
//
// Everything in this package is a pure function of its inputs; no PDF
// library objects are consumed.
package geometry

import (
	"errors"
	"fmt"

	"github.com/pagestamp/pagestamp/model"
)

// A4 dimensions in PDF points.
const (
	A4PortraitWidth   = 595.0
	A4PortraitHeight  = 842.0
	A4LandscapeWidth  = 842.0
	A4LandscapeHeight = 595.0
)

// ErrMissingMediaBox is returned when a page carries no usable media box.
// The error is fatal for that page only, not for the whole document.
var ErrMissingMediaBox = errors.New("geometry: page has no media box")

// PageGeometry describes a single page's coordinate frame. All dimensions
// are PDF points. It is immutable after construction.
type PageGeometry struct {
	// Original page state as read from the document.
	MediaBox model.BBox
	CropBox  model.BBox
	Rotation int

	// Effective dimensions the overlay must target. Equal to the active
	// box extents when normalization is off, or the A4 target otherwise.
	EffectiveWidth  float64
	EffectiveHeight float64

	// Transform from original coordinates into the effective frame:
	// uniform scale followed by a centering offset. Scale is 1 and the
	// offsets 0 when normalization is off.
	Scale   float64
	OffsetX float64
	OffsetY float64
}

// Matrix returns the normalization transform as an affine matrix.
func (g PageGeometry) Matrix() model.Matrix {
	return model.Scale(g.Scale, g.Scale).Multiply(model.Translate(g.OffsetX, g.OffsetY))
}

// Resolve computes the PageGeometry for a page.
//
// mediaBox is required; a nil or degenerate media box yields
// ErrMissingMediaBox. cropBox is optional and falls back to the media box
// when absent or malformed. rotation is normalized into {0, 90, 180, 270}.
//
// With normalizeToA4 false the effective dimensions are the active box
// extents unchanged. With it true, the page is uniformly scaled to fit the
// A4 sheet matching its display orientation (rotation 90/270 swaps the
// portrait/landscape judgment) and centered within it.
func Resolve(mediaBox, cropBox *model.BBox, rotation int, normalizeToA4 bool) (PageGeometry, error) {
	if mediaBox == nil || !mediaBox.IsValid() {
		return PageGeometry{}, fmt.Errorf("resolve page frame: %w", ErrMissingMediaBox)
	}

	active := *mediaBox
	if cropBox != nil && cropBox.IsValid() {
		active = *cropBox
	}

	rotation = ((rotation % 360) + 360) % 360
	switch rotation {
	case 0, 90, 180, 270:
	default:
		// Non-right-angle values are rare and treated as unrotated.
		rotation = 0
	}

	g := PageGeometry{
		MediaBox: *mediaBox,
		CropBox:  active,
		Rotation: rotation,
		Scale:    1.0,
	}

	width := active.Width
	height := active.Height

	if !normalizeToA4 {
		g.EffectiveWidth = width
		g.EffectiveHeight = height
		return g, nil
	}

	// Judge orientation as displayed, not as stored.
	displayWidth, displayHeight := width, height
	if rotation == 90 || rotation == 270 {
		displayWidth, displayHeight = height, width
	}

	targetWidth, targetHeight := A4LandscapeWidth, A4LandscapeHeight
	if displayHeight > displayWidth {
		targetWidth, targetHeight = A4PortraitWidth, A4PortraitHeight
	}

	scale := targetWidth / displayWidth
	if s := targetHeight / displayHeight; s < scale {
		scale = s
	}

	g.EffectiveWidth = targetWidth
	g.EffectiveHeight = targetHeight
	g.Scale = scale
	g.OffsetX = (targetWidth - displayWidth*scale) / 2
	g.OffsetY = (targetHeight - displayHeight*scale) / 2
	return g, nil
}
