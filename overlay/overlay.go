// Package overlay stamps header and footer text onto existing PDF pages.
//
// The drawn variant ([Compositor.Stamp]) rebuilds the document by
// importing each page as a template and drawing text over it, which works
// for any input but re-emits the file. The structured variant
// ([StampStructured]) appends Artifact-tagged content streams in place,
// which keeps the original page objects but is limited to ASCII text.
// Page numbering ([AddPageNumbers]) rides on text watermarks instead,
// since every page gets a different string.
package overlay

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"codeberg.org/go-pdf/fpdf"
	"codeberg.org/go-pdf/fpdf/contrib/gofpdi"
	"golang.org/x/text/encoding/charmap"

	"github.com/pagestamp/pagestamp/fontcache"
	"github.com/pagestamp/pagestamp/geometry"
	"github.com/pagestamp/pagestamp/model"
	"github.com/pagestamp/pagestamp/reader"
)

// ErrNothingToStamp is returned when neither header nor footer text is set.
var ErrNothingToStamp = errors.New("overlay: no header or footer text given")

// ErrLossyEncoding reports that some characters could not be represented
// in the built-in Latin-1 font encoding. The output file is still written;
// callers wanting exact non-Latin text should supply a FontFile.
var ErrLossyEncoding = errors.New("overlay: text lost characters in Latin-1 encoding")

// stampFontFamily names the embedded font inside the generated document
// when a FontFile is supplied.
const stampFontFamily = "stampfont"

// Options controls one stamping run over a single document.
type Options struct {
	// HeaderText and FooterText are the strings to draw. Either may be
	// empty; both empty is an error. The placeholders {page} and {total}
	// expand per page.
	HeaderText string
	FooterText string

	// Header and Footer style the two bands. Zero-value fields fall back
	// to the conventional defaults (9pt Helvetica, left aligned, 40pt
	// from the page edge).
	Header model.Placement
	Footer model.Placement

	// NormalizeA4 rescales every page onto an A4 sheet matching its
	// display orientation before stamping.
	NormalizeA4 bool

	// FontFile optionally names a TTF to embed for the stamped text.
	// Without it the built-in Helvetica is used and text is reduced to
	// Latin-1.
	FontFile string
}

// Compositor draws header/footer overlays. The font cache is shared
// across documents so a batch run reads each TTF once.
type Compositor struct {
	fonts *fontcache.Cache
}

// NewCompositor creates a compositor. A nil cache is replaced with a
// default-sized one.
func NewCompositor(fonts *fontcache.Cache) *Compositor {
	if fonts == nil {
		fonts = fontcache.New(0)
	}
	return &Compositor{fonts: fonts}
}

// Stamp rebuilds the document at inPath with header/footer text drawn on
// every page and writes it to outPath.
//
// When the built-in font drops characters the file is still written and
// the error wraps [ErrLossyEncoding], so callers can choose between
// treating it as a failure and surfacing a warning.
func (c *Compositor) Stamp(inPath, outPath string, opts Options) error {
	if opts.HeaderText == "" && opts.FooterText == "" {
		return ErrNothingToStamp
	}

	doc, err := reader.Open(inPath)
	if err != nil {
		return fmt.Errorf("overlay: %w", err)
	}
	data, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("overlay: %w", err)
	}

	pdf := fpdf.New("P", "pt", "", "")

	customFont := false
	if opts.FontFile != "" {
		b, err := c.fonts.Load(opts.FontFile)
		if err != nil {
			return fmt.Errorf("overlay: %w", err)
		}
		pdf.AddUTF8FontFromBytes(stampFontFamily, "", b)
		customFont = true
	}

	importer := gofpdi.NewImporter()
	rs := io.ReadSeeker(bytes.NewReader(data))

	total := doc.PageCount()
	lossy := 0

	for p := 1; p <= total; p++ {
		info, err := doc.Page(p)
		if err != nil {
			return fmt.Errorf("overlay: page %d: %w", p, err)
		}
		geo, err := geometry.Resolve(info.MediaBox, info.CropBox, info.Rotation, opts.NormalizeA4)
		if err != nil {
			return fmt.Errorf("overlay: page %d: %w", p, err)
		}

		pdf.AddPageFormat("P", fpdf.SizeType{Wd: geo.EffectiveWidth, Ht: geo.EffectiveHeight})

		tpl := importer.ImportPageFromStream(pdf, &rs, p, "/MediaBox")
		importer.UseImportedTemplate(pdf, tpl,
			geo.OffsetX, geo.OffsetY,
			geo.EffectiveWidth-2*geo.OffsetX, geo.EffectiveHeight-2*geo.OffsetY)

		if opts.HeaderText != "" {
			pl := normalizePlacement(opts.Header, geo.EffectiveHeight, true)
			if err := drawBand(pdf, opts.HeaderText, pl, geo, p, total, customFont, &lossy); err != nil {
				return fmt.Errorf("overlay: page %d header: %w", p, err)
			}
		}
		if opts.FooterText != "" {
			pl := normalizePlacement(opts.Footer, geo.EffectiveHeight, false)
			if err := drawBand(pdf, opts.FooterText, pl, geo, p, total, customFont, &lossy); err != nil {
				return fmt.Errorf("overlay: page %d footer: %w", p, err)
			}
		}
	}

	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("overlay: writing %s: %w", outPath, err)
	}

	if lossy > 0 && !customFont {
		return fmt.Errorf("%w on %d draw(s)", ErrLossyEncoding, lossy)
	}
	return nil
}

// drawBand draws one expanded text band at its resolved position.
func drawBand(pdf *fpdf.Fpdf, raw string, pl model.Placement, geo geometry.PageGeometry, page, total int, customFont bool, lossy *int) error {
	text := ExpandTemplate(raw, page, total)

	x, err := geometry.PlacementX(pl, text, geo.EffectiveWidth)
	if err != nil {
		return err
	}

	if customFont {
		pdf.SetFont(stampFontFamily, "", pl.FontSize)
		pdf.Text(x, geo.EffectiveHeight-pl.Y, text)
		return nil
	}

	pdf.SetFont(pl.FontName, "", pl.FontSize)
	latin1, err := charmap.ISO8859_1.NewEncoder().String(text)
	if err != nil {
		*lossy++
		latin1 = text
	}
	pdf.Text(x, geo.EffectiveHeight-pl.Y, latin1)
	return nil
}

// normalizePlacement fills zero-value placement fields with the
// conventional defaults for the band.
func normalizePlacement(pl model.Placement, pageHeight float64, header bool) model.Placement {
	if pl.FontName == "" {
		pl.FontName = "Helvetica"
	}
	if pl.FontSize == 0 {
		pl.FontSize = 9
	}
	if pl.Y == 0 {
		if header {
			pl.Y = geometry.SuggestedHeaderY(pageHeight)
		} else {
			pl.Y = geometry.SuggestedFooterY()
		}
	}
	if pl.Alignment == "" && pl.X == 0 {
		pl.Alignment = model.AlignLeft
	}
	return pl
}

// ExpandTemplate substitutes the {page} and {total} placeholders.
func ExpandTemplate(tpl string, page, total int) string {
	out := strings.ReplaceAll(tpl, "{page}", strconv.Itoa(page))
	return strings.ReplaceAll(out, "{total}", strconv.Itoa(total))
}
