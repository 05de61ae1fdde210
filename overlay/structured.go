package overlay

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/pagestamp/pagestamp/geometry"
	"github.com/pagestamp/pagestamp/model"
)

// ErrNonASCII is returned by StampStructured for text outside ASCII.
// The tagged stream uses the built-in Helvetica with its standard
// encoding only; callers should fall back to the drawn overlay.
var ErrNonASCII = errors.New("overlay: structured stamping requires ASCII text")

// headerResourceName is the font resource the tagged streams reference.
const headerResourceName = "PgStampF1"

// StampStructured appends pagination Artifact content to every page of
// the document at inPath and writes the result to outPath. The page
// objects themselves are kept; each page gains one content stream of the
// form
//
//	/Artifact <</Type /Pagination /Subtype /Header>> BDC ... EMC
//
// so later analysis (or other consumers) can find the stamped text
// without positional guessing. The placeholders {page} and {total}
// expand as in Stamp. NormalizeA4 is not supported here since the page
// boxes are left untouched.
func StampStructured(inPath, outPath string, opts Options) error {
	if opts.HeaderText == "" && opts.FooterText == "" {
		return ErrNothingToStamp
	}
	if !isASCII(opts.HeaderText) || !isASCII(opts.FooterText) {
		return ErrNonASCII
	}

	ctx, err := api.ReadContextFile(inPath)
	if err != nil {
		return fmt.Errorf("overlay: %w", err)
	}

	total := ctx.PageCount
	for p := 1; p <= total; p++ {
		if err := appendArtifacts(ctx, p, total, opts); err != nil {
			return fmt.Errorf("overlay: page %d: %w", p, err)
		}
	}

	if err := markTagged(ctx); err != nil {
		return fmt.Errorf("overlay: %w", err)
	}

	if err := api.WriteContextFile(ctx, outPath); err != nil {
		return fmt.Errorf("overlay: writing %s: %w", outPath, err)
	}
	return nil
}

// appendArtifacts builds the tagged stream for one page and chains it
// onto the page's Contents.
func appendArtifacts(ctx *pdfmodel.Context, pageNr, total int, opts Options) error {
	pageDict, _, _, err := ctx.PageDict(pageNr, false)
	if err != nil {
		return err
	}
	if pageDict == nil {
		return fmt.Errorf("no page dictionary")
	}

	width, height := pageExtent(ctx, pageDict, pageNr)

	var b strings.Builder
	if opts.HeaderText != "" {
		pl := normalizePlacement(opts.Header, height, true)
		if err := writeArtifact(&b, "Header", opts.HeaderText, pl, width, pageNr, total); err != nil {
			return err
		}
	}
	if opts.FooterText != "" {
		pl := normalizePlacement(opts.Footer, height, false)
		if err := writeArtifact(&b, "Footer", opts.FooterText, pl, width, pageNr, total); err != nil {
			return err
		}
	}

	if err := ensureFontResource(ctx, pageDict); err != nil {
		return err
	}

	sd, err := ctx.XRefTable.NewStreamDictForBuf([]byte(b.String()))
	if err != nil {
		return err
	}
	if err := sd.Encode(); err != nil {
		return err
	}
	ir, err := ctx.IndRefForNewObject(*sd)
	if err != nil {
		return err
	}
	return chainContents(ctx, pageDict, ir)
}

// writeArtifact emits one tagged text block. Text is wrapped in a
// graphics-state save so the band cannot leak state into the next block.
func writeArtifact(b *strings.Builder, subtype, raw string, pl model.Placement, width float64, pageNr, total int) error {
	text := ExpandTemplate(raw, pageNr, total)
	x, err := geometry.PlacementX(pl, text, width)
	if err != nil {
		return err
	}

	fmt.Fprintf(b, "q\n/Artifact <</Type /Pagination /Subtype /%s>> BDC\n", subtype)
	fmt.Fprintf(b, "BT\n/%s %g Tf\n%g %g Td\n(%s) Tj\nET\n", headerResourceName, pl.FontSize, x, pl.Y, EscapeText(text))
	b.WriteString("EMC\nQ\n")
	return nil
}

// pageExtent reads the page's displayed width and height, preferring the
// crop box and falling back to A4 portrait when neither box parses.
func pageExtent(ctx *pdfmodel.Context, pageDict types.Dict, pageNr int) (float64, float64) {
	for _, key := range []string{"CropBox", "MediaBox"} {
		obj, found := pageDict.Find(key)
		if !found {
			continue
		}
		resolved, err := ctx.Dereference(obj)
		if err != nil {
			continue
		}
		arr, ok := resolved.(types.Array)
		if !ok || len(arr) != 4 {
			continue
		}
		vals := make([]float64, 4)
		good := true
		for i, el := range arr {
			switch v := el.(type) {
			case types.Integer:
				vals[i] = float64(v.Value())
			case types.Float:
				vals[i] = v.Value()
			default:
				good = false
			}
		}
		if !good {
			continue
		}
		box := model.BBoxFromCorners(vals[0], vals[1], vals[2], vals[3])
		if box.IsValid() {
			return box.Width, box.Height
		}
	}

	if dims, err := ctx.PageDims(); err == nil && pageNr-1 < len(dims) {
		if dims[pageNr-1].Width > 0 && dims[pageNr-1].Height > 0 {
			return dims[pageNr-1].Width, dims[pageNr-1].Height
		}
	}
	return geometry.A4PortraitWidth, geometry.A4PortraitHeight
}

// ensureFontResource registers the Helvetica font resource the tagged
// streams reference, creating the Resources/Font dictionaries as needed.
func ensureFontResource(ctx *pdfmodel.Context, pageDict types.Dict) error {
	fontDict := types.Dict(map[string]types.Object{
		"Type":     types.Name("Font"),
		"Subtype":  types.Name("Type1"),
		"BaseFont": types.Name("Helvetica"),
	})

	resources, err := derefDictEntry(ctx, pageDict, "Resources")
	if err != nil {
		return err
	}
	if resources == nil {
		resources = types.Dict(map[string]types.Object{})
		pageDict["Resources"] = resources
	}

	fonts, err := derefDictEntry(ctx, resources, "Font")
	if err != nil {
		return err
	}
	if fonts == nil {
		fonts = types.Dict(map[string]types.Object{})
		resources["Font"] = fonts
	}

	fonts[headerResourceName] = fontDict
	return nil
}

func derefDictEntry(ctx *pdfmodel.Context, dict types.Dict, key string) (types.Dict, error) {
	obj, found := dict.Find(key)
	if !found {
		return nil, nil
	}
	resolved, err := ctx.Dereference(obj)
	if err != nil {
		return nil, err
	}
	d, ok := resolved.(types.Dict)
	if !ok {
		return nil, nil
	}
	return d, nil
}

// chainContents appends the new stream reference to the page's Contents,
// turning a single stream into a two-element array when needed.
func chainContents(ctx *pdfmodel.Context, pageDict types.Dict, ir *types.IndirectRef) error {
	obj, found := pageDict.Find("Contents")
	if !found {
		pageDict["Contents"] = *ir
		return nil
	}

	if arr, ok := obj.(types.Array); ok {
		pageDict["Contents"] = append(arr, *ir)
		return nil
	}

	resolved, err := ctx.Dereference(obj)
	if err != nil {
		return err
	}
	if arr, ok := resolved.(types.Array); ok {
		pageDict["Contents"] = append(arr, *ir)
		return nil
	}
	pageDict["Contents"] = types.Array{obj, *ir}
	return nil
}

// markTagged sets MarkInfo.Marked on the catalog so consumers know the
// document carries marked content.
func markTagged(ctx *pdfmodel.Context) error {
	root, err := ctx.Catalog()
	if err != nil {
		return err
	}
	root["MarkInfo"] = types.Dict(map[string]types.Object{
		"Marked": types.Boolean(true),
	})
	return nil
}

// EscapeText escapes the characters with syntactic meaning inside a PDF
// literal string.
func EscapeText(s string) string {
	r := strings.NewReplacer(`\`, `\\`, "(", `\(`, ")", `\)`)
	return r.Replace(s)
}

func isASCII(s string) bool {
	for _, r := range s {
		if r > 127 {
			return false
		}
	}
	return true
}
