package model

import (
	"math"
	"testing"
)

func TestBBoxFromCorners(t *testing.T) {
	b := BBoxFromCorners(10, 20, 110, 70)

	if b.X != 10 || b.Y != 20 {
		t.Errorf("Expected origin (10,20), got (%v,%v)", b.X, b.Y)
	}
	if b.Width != 100 || b.Height != 50 {
		t.Errorf("Expected 100x50, got %vx%v", b.Width, b.Height)
	}
}

func TestBBoxFromCorners_SwappedCorners(t *testing.T) {
	b := BBoxFromCorners(110, 70, 10, 20)

	if b.X != 10 || b.Y != 20 || b.Width != 100 || b.Height != 50 {
		t.Errorf("Swapped corners not normalized: %+v", b)
	}
}

func TestBBoxEdges(t *testing.T) {
	b := NewBBox(5, 10, 20, 30)

	if b.Left() != 5 || b.Right() != 25 {
		t.Errorf("Wrong horizontal edges: %v..%v", b.Left(), b.Right())
	}
	if b.Bottom() != 10 || b.Top() != 40 {
		t.Errorf("Wrong vertical edges: %v..%v", b.Bottom(), b.Top())
	}

	c := b.Center()
	if c.X != 15 || c.Y != 25 {
		t.Errorf("Wrong center: %+v", c)
	}
}

func TestBBoxContains(t *testing.T) {
	b := NewBBox(0, 0, 10, 10)

	if !b.Contains(Point{5, 5}) {
		t.Error("Expected point inside box")
	}
	if b.Contains(Point{15, 5}) {
		t.Error("Expected point outside box")
	}
}

func TestBBoxUnion(t *testing.T) {
	a := NewBBox(0, 0, 10, 10)
	b := NewBBox(20, 20, 10, 10)

	u := a.Union(b)
	if u.X != 0 || u.Y != 0 || u.Width != 30 || u.Height != 30 {
		t.Errorf("Wrong union: %+v", u)
	}
}

func TestBBoxIsValid(t *testing.T) {
	if !NewBBox(0, 0, 1, 1).IsValid() {
		t.Error("Expected valid box")
	}
	if NewBBox(0, 0, 0, 5).IsValid() {
		t.Error("Zero width should be invalid")
	}
}

func TestMatrixIdentity(t *testing.T) {
	m := Identity()
	if !m.IsIdentity() {
		t.Error("Identity() should be an identity matrix")
	}

	p := m.Transform(Point{3, 4})
	if p.X != 3 || p.Y != 4 {
		t.Errorf("Identity transform moved the point: %+v", p)
	}
}

func TestMatrixScaleThenTranslate(t *testing.T) {
	// The A4 normalization transform shape: uniform scale followed by
	// a centering translation.
	m := Scale(0.5, 0.5).Multiply(Translate(10, 20))

	p := m.Transform(Point{100, 100})
	if math.Abs(p.X-60) > 1e-9 || math.Abs(p.Y-70) > 1e-9 {
		t.Errorf("Expected (60,70), got %+v", p)
	}
}

func TestAlignmentValid(t *testing.T) {
	for _, a := range []Alignment{AlignLeft, AlignCenter, AlignRight} {
		if !a.Valid() {
			t.Errorf("%q should be valid", a)
		}
	}
	if Alignment("bogus").Valid() {
		t.Error("bogus alignment should be invalid")
	}
}

func TestDefaultPlacements(t *testing.T) {
	h := DefaultHeaderPlacement(792)
	if h.Y != 752 {
		t.Errorf("Expected header Y 752, got %v", h.Y)
	}

	f := DefaultFooterPlacement()
	if f.Y != 40 {
		t.Errorf("Expected footer Y 40, got %v", f.Y)
	}
}
