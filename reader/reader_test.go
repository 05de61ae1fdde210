package reader

import (
	"errors"
	"testing"
)

func TestStripSubsetTag(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ABCDEF+Helvetica", "Helvetica"},
		{"BAAAAA+SimSun", "SimSun"},
		{"Helvetica", "Helvetica"},
		{"Times-Roman", "Times-Roman"},
		// Lowercase prefix is not a subset tag.
		{"abcdef+Weird", "abcdef+Weird"},
	}

	for _, tt := range tests {
		if got := stripSubsetTag(tt.in); got != tt.want {
			t.Errorf("stripSubsetTag(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDecodeLatin1(t *testing.T) {
	// 0xE9 is é in Latin-1; a naive string() conversion would treat it as
	// an invalid UTF-8 byte.
	got := DecodeLatin1([]byte{'c', 'a', 'f', 0xE9})
	if got != "café" {
		t.Errorf("DecodeLatin1 = %q, want café", got)
	}

	if got := DecodeLatin1(nil); got != "" {
		t.Errorf("expected empty string for nil input, got %q", got)
	}
}

func TestIsPasswordErr(t *testing.T) {
	if !isPasswordErr(errors.New("pdfcpu: please provide the correct password")) {
		t.Error("password message not recognized")
	}
	if isPasswordErr(errors.New("no such file or directory")) {
		t.Error("unrelated error misclassified as password failure")
	}
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open("testdata/does-not-exist.pdf")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if errors.Is(err, ErrPasswordProtected) {
		t.Error("missing file must not read as password protected")
	}
}
