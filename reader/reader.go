// Package reader provides read-only access to the page data the detection
// and overlay code needs: page count, page boxes and rotation, declared
// font names, decoded content streams, and positioned text spans.
//
// It is a thin adapter over pdfcpu. Each Open call builds its own context
// and holds no OS resources afterwards, so a Document needs no Close; one
// analysis pass opens one Document and lets it go.
package reader

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"golang.org/x/text/encoding/charmap"

	"github.com/pagestamp/pagestamp/model"
	"github.com/pagestamp/pagestamp/text"
)

// ErrPasswordProtected is returned when a document cannot be opened
// without the correct user password.
var ErrPasswordProtected = errors.New("reader: document is password protected")

// Document is an opened PDF.
type Document struct {
	path string
	ctx  *pdfmodel.Context
}

// PageInfo carries the raw geometry inputs of one page.
type PageInfo struct {
	MediaBox *model.BBox
	CropBox  *model.BBox
	Rotation int
}

// Open reads and parses the document at path.
func Open(path string) (*Document, error) {
	return OpenWithPassword(path, "")
}

// OpenWithPassword reads a document, supplying a user password for
// encrypted files. A wrong or missing password yields
// ErrPasswordProtected.
func OpenWithPassword(path, password string) (*Document, error) {
	conf := pdfmodel.NewDefaultConfiguration()
	conf.UserPW = password

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	ctx, err := api.ReadContext(f, conf)
	if err == nil {
		err = api.ValidateContext(ctx)
	}
	if err != nil {
		if isPasswordErr(err) {
			return nil, fmt.Errorf("open %s: %w", path, ErrPasswordProtected)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &Document{path: path, ctx: ctx}, nil
}

func isPasswordErr(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "password") || strings.Contains(msg, "encrypt")
}

// Path returns the file path the document was opened from.
func (d *Document) Path() string {
	return d.path
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	return d.ctx.PageCount
}

// Page returns the geometry inputs of the 1-based page pageNr. A missing
// MediaBox entry on the page dictionary falls back to the inherited page
// dimensions; CropBox stays nil when absent.
func (d *Document) Page(pageNr int) (PageInfo, error) {
	dict, err := d.pageDict(pageNr)
	if err != nil {
		return PageInfo{}, err
	}

	info := PageInfo{
		MediaBox: d.rectEntry(dict, "MediaBox"),
		CropBox:  d.rectEntry(dict, "CropBox"),
	}

	if rot := dict.IntEntry("Rotate"); rot != nil {
		info.Rotation = *rot
	}

	if info.MediaBox == nil {
		// Inherited from an ancestor Pages node; pdfcpu resolves that
		// for its dimension table.
		if dims, err := d.ctx.PageDims(); err == nil && pageNr-1 < len(dims) {
			b := model.NewBBox(0, 0, dims[pageNr-1].Width, dims[pageNr-1].Height)
			if b.IsValid() {
				info.MediaBox = &b
			}
		}
	}
	return info, nil
}

// Content returns the page's decoded content stream bytes, concatenating
// a Contents array in order.
func (d *Document) Content(pageNr int) ([]byte, error) {
	dict, err := d.pageDict(pageNr)
	if err != nil {
		return nil, err
	}

	obj, found := dict.Find("Contents")
	if !found {
		return nil, nil
	}

	resolved, err := d.ctx.Dereference(obj)
	if err != nil {
		return nil, fmt.Errorf("page %d contents: %w", pageNr, err)
	}

	var out []byte
	switch v := resolved.(type) {
	case types.StreamDict:
		b, err := decodeStream(&v)
		if err != nil {
			return nil, fmt.Errorf("page %d contents: %w", pageNr, err)
		}
		out = b
	case types.Array:
		for _, el := range v {
			sd, _, err := d.ctx.DereferenceStreamDict(el)
			if err != nil || sd == nil {
				continue
			}
			b, err := decodeStream(sd)
			if err != nil {
				continue
			}
			out = append(out, b...)
			out = append(out, '\n')
		}
	}
	return out, nil
}

func decodeStream(sd *types.StreamDict) ([]byte, error) {
	if err := sd.Decode(); err != nil {
		return nil, err
	}
	return sd.Content, nil
}

// ContentText returns the page's content stream as a string, decoding the
// raw bytes as Latin-1 so every byte maps to a rune unchanged.
func (d *Document) ContentText(pageNr int) (string, error) {
	b, err := d.Content(pageNr)
	if err != nil {
		return "", err
	}
	return DecodeLatin1(b), nil
}

// DecodeLatin1 maps raw stream bytes to a string one byte per rune.
func DecodeLatin1(b []byte) string {
	s, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		// The Latin-1 decoder accepts every byte; this is unreachable in
		// practice but the raw bytes are a usable fallback.
		return string(b)
	}
	return string(s)
}

// Fonts returns the base font names declared in the page's resource
// dictionary, keyed by resource name (the Tf operand).
func (d *Document) Fonts(pageNr int) (map[string]string, error) {
	dict, err := d.pageDict(pageNr)
	if err != nil {
		return nil, err
	}

	fonts := make(map[string]string)
	resObj, found := dict.Find("Resources")
	if !found {
		return fonts, nil
	}
	resources, err := d.derefDict(resObj)
	if err != nil || resources == nil {
		return fonts, nil
	}

	fontObj, found := resources.Find("Font")
	if !found {
		return fonts, nil
	}
	fontDict, err := d.derefDict(fontObj)
	if err != nil || fontDict == nil {
		return fonts, nil
	}

	for name, obj := range fontDict {
		entry, err := d.derefDict(obj)
		if err != nil || entry == nil {
			fonts[name] = name
			continue
		}
		if base := entry.NameEntry("BaseFont"); base != nil {
			fonts[name] = stripSubsetTag(*base)
		} else {
			fonts[name] = name
		}
	}
	return fonts, nil
}

// stripSubsetTag removes the "ABCDEF+" prefix embedded subset fonts carry.
func stripSubsetTag(name string) string {
	if len(name) > 7 && name[6] == '+' {
		prefix := name[:6]
		if strings.ToUpper(prefix) == prefix && !strings.ContainsAny(prefix, "0123456789") {
			return name[7:]
		}
	}
	return name
}

// Spans extracts the positioned text spans of a page.
func (d *Document) Spans(pageNr int) ([]text.Span, error) {
	content, err := d.ContentText(pageNr)
	if err != nil {
		return nil, err
	}
	if content == "" {
		return nil, nil
	}
	fonts, err := d.Fonts(pageNr)
	if err != nil {
		fonts = nil
	}
	return text.Scan(content, fonts, pageNr), nil
}

func (d *Document) pageDict(pageNr int) (types.Dict, error) {
	if pageNr < 1 || pageNr > d.ctx.PageCount {
		return nil, fmt.Errorf("page %d out of range (1..%d)", pageNr, d.ctx.PageCount)
	}
	dict, _, _, err := d.ctx.PageDict(pageNr, false)
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", pageNr, err)
	}
	if dict == nil {
		return nil, fmt.Errorf("page %d: no page dictionary", pageNr)
	}
	return dict, nil
}

func (d *Document) derefDict(obj types.Object) (types.Dict, error) {
	resolved, err := d.ctx.Dereference(obj)
	if err != nil {
		return nil, err
	}
	dict, ok := resolved.(types.Dict)
	if !ok {
		return nil, nil
	}
	return dict, nil
}

// rectEntry reads a 4-number rectangle entry from a page dictionary,
// returning nil when absent or malformed.
func (d *Document) rectEntry(dict types.Dict, key string) *model.BBox {
	obj, found := dict.Find(key)
	if !found {
		return nil
	}
	resolved, err := d.ctx.Dereference(obj)
	if err != nil {
		return nil
	}
	arr, ok := resolved.(types.Array)
	if !ok || len(arr) != 4 {
		return nil
	}

	vals := make([]float64, 4)
	for i, el := range arr {
		resolvedEl, err := d.ctx.Dereference(el)
		if err != nil {
			return nil
		}
		f, ok := toFloat(resolvedEl)
		if !ok {
			return nil
		}
		vals[i] = f
	}

	b := model.BBoxFromCorners(vals[0], vals[1], vals[2], vals[3])
	if !b.IsValid() {
		return nil
	}
	return &b
}

func toFloat(obj types.Object) (float64, bool) {
	switch v := obj.(type) {
	case types.Integer:
		return float64(v.Value()), true
	case types.Float:
		return v.Value(), true
	}
	return 0, false
}
