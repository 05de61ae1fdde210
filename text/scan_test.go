package text

import (
	"reflect"
	"testing"
)

func TestScan_SimpleTj(t *testing.T) {
	content := "BT /F1 12 Tf 1 0 0 1 72 720 Tm (Hello World) Tj ET"
	spans := Scan(content, map[string]string{"F1": "Helvetica"}, 1)

	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	s := spans[0]
	if s.Text != "Hello World" {
		t.Errorf("wrong text: %q", s.Text)
	}
	if s.BBox.X != 72 || s.BBox.Y != 720 {
		t.Errorf("wrong position: (%v,%v)", s.BBox.X, s.BBox.Y)
	}
	if s.FontName != "Helvetica" || s.FontSize != 12 {
		t.Errorf("wrong font: %s %v", s.FontName, s.FontSize)
	}
	if s.BBox.Height != 12 {
		t.Errorf("height should track font size, got %v", s.BBox.Height)
	}
}

func TestScan_UnknownFontKeepsResourceName(t *testing.T) {
	content := "BT /F9 10 Tf (x y) Tj ET"
	spans := Scan(content, nil, 1)

	if len(spans) != 1 || spans[0].FontName != "F9" {
		t.Fatalf("expected resource name fallback, got %+v", spans)
	}
}

func TestScan_TdAdvancesLine(t *testing.T) {
	content := "BT /F1 10 Tf 72 700 Td (first) Tj 0 -14 Td (second) Tj ET"
	spans := Scan(content, nil, 1)

	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[0].BBox.Y != 700 {
		t.Errorf("first line at %v, want 700", spans[0].BBox.Y)
	}
	if spans[1].BBox.Y != 686 {
		t.Errorf("second line at %v, want 686", spans[1].BBox.Y)
	}
	if spans[1].BBox.X != 72 {
		t.Errorf("second line should return to line start X, got %v", spans[1].BBox.X)
	}
}

func TestScan_TStarUsesLeading(t *testing.T) {
	content := "BT /F1 10 Tf 14 TL 72 700 Td (a line) Tj T* (b line) Tj ET"
	spans := Scan(content, nil, 1)

	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[1].BBox.Y != 686 {
		t.Errorf("T* should move down by the leading, got %v", spans[1].BBox.Y)
	}
}

func TestScan_TJArray(t *testing.T) {
	content := "BT /F1 10 Tf 1 0 0 1 100 50 Tm [(Page ) -250 (7)] TJ ET"
	spans := Scan(content, nil, 3)

	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Text != "Page 7" {
		t.Errorf("TJ pieces not joined: %q", spans[0].Text)
	}
	if spans[0].PageIndex != 3 {
		t.Errorf("page index not carried: %d", spans[0].PageIndex)
	}
}

func TestScan_EscapedParens(t *testing.T) {
	content := `BT /F1 10 Tf (a \(quoted\) part \\ done) Tj ET`
	spans := Scan(content, nil, 1)

	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Text != `a (quoted) part \ done` {
		t.Errorf("escapes not resolved: %q", spans[0].Text)
	}
}

func TestScan_IgnoresTextOutsideBT(t *testing.T) {
	content := "(orphan) Tj BT /F1 10 Tf (real) Tj ET"
	spans := Scan(content, nil, 1)

	if len(spans) != 1 || spans[0].Text != "real" {
		t.Fatalf("expected only text inside BT/ET, got %+v", spans)
	}
}

func TestScan_SkipsBlankStrings(t *testing.T) {
	content := "BT /F1 10 Tf (   ) Tj (text) Tj ET"
	spans := Scan(content, nil, 1)

	if len(spans) != 1 || spans[0].Text != "text" {
		t.Fatalf("blank strings should be skipped, got %+v", spans)
	}
}

func TestScan_InlineDictIgnored(t *testing.T) {
	content := "/Artifact << /Type /Pagination /Subtype /Header >> BDC BT /F1 9 Tf (Hdr) Tj ET EMC"
	spans := Scan(content, nil, 1)

	if len(spans) != 1 || spans[0].Text != "Hdr" {
		t.Fatalf("dictionary operands should be skipped, got %+v", spans)
	}
}

func TestScan_DeterministicAcrossRuns(t *testing.T) {
	content := "BT /F1 10 Tf 10 700 Td (one) Tj 0 -12 Td (two) Tj 0 -12 Td (three) Tj ET"
	first := Scan(content, nil, 1)
	second := Scan(content, nil, 1)

	if !reflect.DeepEqual(first, second) {
		t.Error("scanning the same content twice produced different spans")
	}
}

func TestParseLiteral_Escapes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`(plain)`, "plain"},
		{`(with \(escaped\))`, "with (escaped)"},
		{`(back\\slash)`, `back\slash`},
		{`(nested (ok) here)`, "nested (ok) here"},
		{`(tab\there)`, "tab\there"},
		{`(octal \101)`, "octal A"},
	}

	for _, tt := range tests {
		got, _ := ParseLiteral(tt.in)
		if got != tt.want {
			t.Errorf("ParseLiteral(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseHex(t *testing.T) {
	got, n := parseHex("<48656C6C6F>")
	if got != "Hello" {
		t.Errorf("hex decode = %q, want Hello", got)
	}
	if n != 12 {
		t.Errorf("consumed %d bytes, want 12", n)
	}

	// Odd digit padded with zero.
	got, _ = parseHex("<48656C6C6F2>")
	if got != "Hello " {
		t.Errorf("odd-length hex decode = %q", got)
	}
}

func TestLiterals(t *testing.T) {
	segment := `BT /F1 9 Tf (Report Title) Tj ( ) Tj (Part \(2\)) Tj ET`
	got := Literals(segment)

	want := []string{"Report Title", "Part (2)"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Literals = %v, want %v", got, want)
	}
}
