package geometry

import (
	"errors"
	"testing"

	"github.com/pagestamp/pagestamp/model"
)

func TestAlignedX(t *testing.T) {
	tests := []struct {
		name      string
		alignment model.Alignment
		pageWidth float64
		textWidth float64
		want      float64
	}{
		{"left", model.AlignLeft, 595, 100, 72},
		{"center", model.AlignCenter, 595, 100, 247.5},
		{"right", model.AlignRight, 595, 100, 423},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AlignedX(tt.alignment, tt.pageWidth, tt.textWidth, DefaultMargin)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("AlignedX(%s) = %v, want %v", tt.alignment, got, tt.want)
			}
		})
	}
}

func TestAlignedX_Invalid(t *testing.T) {
	_, err := AlignedX(model.Alignment("bogus"), 595, 100, DefaultMargin)
	if !errors.Is(err, ErrInvalidAlignment) {
		t.Fatalf("expected ErrInvalidAlignment, got %v", err)
	}
}

func TestEstimateTextWidth(t *testing.T) {
	if w := EstimateTextWidth("hello", 10); w != 25 {
		t.Errorf("expected 25, got %v", w)
	}
	if w := EstimateTextWidth("", 10); w != 0 {
		t.Errorf("expected 0 for empty text, got %v", w)
	}
	// Multi-byte runes count as single characters.
	if w := EstimateTextWidth("日期", 10); w != 10 {
		t.Errorf("expected 10 for two runes, got %v", w)
	}
}

func TestIsSafePrintRegion(t *testing.T) {
	const pageHeight = 792.0

	if IsSafePrintRegion(785, pageHeight, true) {
		t.Error("y=785 on a 792pt page is inside the top edge band")
	}
	if !IsSafePrintRegion(752, pageHeight, true) {
		t.Error("y=752 should be safe at the top")
	}
	if IsSafePrintRegion(5, pageHeight, false) {
		t.Error("y=5 is inside the bottom edge band")
	}
	if !IsSafePrintRegion(40, pageHeight, false) {
		t.Error("y=40 should be safe at the bottom")
	}
}

func TestSuggestedPositions(t *testing.T) {
	if y := SuggestedHeaderY(792); y != 752 {
		t.Errorf("expected header Y 752, got %v", y)
	}
	if y := SuggestedFooterY(); y != 40 {
		t.Errorf("expected footer Y 40, got %v", y)
	}
}

func TestPlacementX(t *testing.T) {
	p := model.Placement{FontSize: 10, Alignment: model.AlignLeft}
	x, err := PlacementX(p, "Title", 595)
	if err != nil || x != DefaultMargin {
		t.Errorf("expected left margin, got %v (err %v)", x, err)
	}

	// No alignment: stored X wins.
	p = model.Placement{FontSize: 10, X: 123}
	x, err = PlacementX(p, "Title", 595)
	if err != nil || x != 123 {
		t.Errorf("expected explicit X 123, got %v (err %v)", x, err)
	}
}
