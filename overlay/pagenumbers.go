package overlay

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// DefaultNumberTemplate renders "3 / 12" style page numbers.
const DefaultNumberTemplate = "{page} / {total}"

// NumberOptions controls page-number stamping.
type NumberOptions struct {
	// Start is the number printed on the first page. Zero means 1.
	Start int

	// Template is the per-page text with {page} and {total} placeholders.
	// Empty means DefaultNumberTemplate.
	Template string

	// FontName and FontSize style the stamp. Defaults: Helvetica, 10.
	FontName string
	FontSize int

	// Position is a pdfcpu anchor such as "bc" (bottom center), "bl",
	// "br", "tc". Empty means "bc".
	Position string

	// Offset shifts the stamp from its anchor, in points. Positive Y
	// moves up. Zero means 20pt off the page edge.
	OffsetX float64
	OffsetY float64
}

func (o NumberOptions) withDefaults() NumberOptions {
	if o.Start <= 0 {
		o.Start = 1
	}
	if o.Template == "" {
		o.Template = DefaultNumberTemplate
	}
	if o.FontName == "" {
		o.FontName = "Helvetica"
	}
	if o.FontSize <= 0 {
		o.FontSize = 10
	}
	if o.Position == "" {
		o.Position = "bc"
	}
	if o.OffsetX == 0 && o.OffsetY == 0 {
		o.OffsetY = 20
	}
	return o
}

// AddPageNumbers stamps running page numbers onto every page of the
// document at inPath and writes the result to outPath. Every page gets
// its own watermark since the text differs per page.
func AddPageNumbers(inPath, outPath string, opts NumberOptions) error {
	opts = opts.withDefaults()

	n, err := api.PageCountFile(inPath)
	if err != nil {
		return fmt.Errorf("overlay: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("overlay: %s has no pages", inPath)
	}

	total := opts.Start + n - 1
	desc := fmt.Sprintf("font:%s, points:%d, pos:%s, off:%g %g, scale:1 abs, rot:0, fillcol:#000000",
		opts.FontName, opts.FontSize, opts.Position, opts.OffsetX, opts.OffsetY)

	stamps := make(map[int]*pdfmodel.Watermark, n)
	for p := 1; p <= n; p++ {
		text := ExpandTemplate(opts.Template, opts.Start+p-1, total)
		wm, err := pdfcpu.ParseTextWatermarkDetails(text, desc, true, types.POINTS)
		if err != nil {
			return fmt.Errorf("overlay: page number stamp: %w", err)
		}
		stamps[p] = wm
	}

	conf := pdfmodel.NewDefaultConfiguration()
	if err := api.AddWatermarksMapFile(inPath, outPath, stamps, conf); err != nil {
		return fmt.Errorf("overlay: numbering %s: %w", inPath, err)
	}
	return nil
}
