package model

// Alignment controls how header/footer text is positioned horizontally.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// Valid reports whether the alignment is one of the known values.
func (a Alignment) Valid() bool {
	switch a {
	case AlignLeft, AlignCenter, AlignRight:
		return true
	}
	return false
}

// Placement holds the styling and position for one band of stamped text
// (a header or a footer). X is only consulted when Alignment is empty;
// otherwise the X coordinate is derived from the alignment and page width.
type Placement struct {
	FontName  string
	FontSize  float64
	X         float64
	Y         float64
	Alignment Alignment
}

// DefaultHeaderPlacement returns the conventional header placement for a
// page of the given height: 40pt below the top edge, left aligned, 9pt
// Helvetica.
func DefaultHeaderPlacement(pageHeight float64) Placement {
	return Placement{
		FontName:  "Helvetica",
		FontSize:  9,
		Y:         pageHeight - 40,
		Alignment: AlignLeft,
	}
}

// DefaultFooterPlacement returns the conventional footer placement:
// 40pt above the bottom edge, left aligned, 9pt Helvetica.
func DefaultFooterPlacement() Placement {
	return Placement{
		FontName:  "Helvetica",
		FontSize:  9,
		Y:         40,
		Alignment: AlignLeft,
	}
}
