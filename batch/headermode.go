package batch

import (
	"fmt"

	"github.com/pagestamp/pagestamp/model"
)

// HeaderMode selects how the per-file header text is filled in before a
// batch run.
type HeaderMode string

const (
	// HeaderModeFilename sets every header to the file's base name.
	HeaderModeFilename HeaderMode = "filename"
	// HeaderModeAutoNumber generates sequential labels like "Doc-001".
	HeaderModeAutoNumber HeaderMode = "auto_number"
	// HeaderModeCustom leaves the existing header text untouched.
	HeaderModeCustom HeaderMode = "custom"
)

// Numbering configures HeaderModeAutoNumber.
type Numbering struct {
	Prefix string
	Start  int
	Step   int
	Digits int
	Suffix string
}

func (n Numbering) withDefaults() Numbering {
	if n.Prefix == "" && n.Suffix == "" {
		n.Prefix = "Doc-"
	}
	if n.Start == 0 {
		n.Start = 1
	}
	if n.Step == 0 {
		n.Step = 1
	}
	if n.Digits == 0 {
		n.Digits = 3
	}
	return n
}

// Label renders the auto-number label for the item at index i.
func (n Numbering) Label(i int) string {
	n = n.withDefaults()
	return fmt.Sprintf("%s%0*d%s", n.Prefix, n.Digits, n.Start+i*n.Step, n.Suffix)
}

// ApplyHeaderMode rewrites the header text of every item in place
// according to the mode. Unknown modes are ignored, keeping whatever text
// the items already carry.
func ApplyHeaderMode(items []model.FileItem, mode HeaderMode, n Numbering) {
	switch mode {
	case HeaderModeFilename:
		for i := range items {
			items[i].HeaderText = items[i].Name
		}
	case HeaderModeAutoNumber:
		for i := range items {
			items[i].HeaderText = n.Label(i)
		}
	case HeaderModeCustom:
	}
}
