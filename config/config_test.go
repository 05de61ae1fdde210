package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestApplyDefaultsFillsMissingKeys(t *testing.T) {
	s := ApplyDefaults(nil)
	if s.String("font_name") != "Helvetica" {
		t.Errorf("font_name default = %q", s.String("font_name"))
	}
	if s.Int("header_y") != 802 || s.Int("footer_y") != 40 {
		t.Errorf("placement defaults = %d, %d", s.Int("header_y"), s.Int("footer_y"))
	}
	if !s.Bool("number_after_merge") {
		t.Error("number_after_merge should default to true")
	}
	for _, f := range Schema {
		if _, ok := s[f.Key]; !ok {
			t.Errorf("schema key %q missing after ApplyDefaults", f.Key)
		}
	}
}

func TestApplyDefaultsCoercesAndRepairs(t *testing.T) {
	s := ApplyDefaults(Settings{
		"font_size":   12.0,             // yaml may hand numbers over as float
		"header_y":    "not-a-number",   // damaged value falls back
		"custom_note": "kept untouched", // unknown key survives
	})

	if s.Int("font_size") != 12 {
		t.Errorf("font_size = %d, want 12", s.Int("font_size"))
	}
	if s.Int("header_y") != 802 {
		t.Errorf("damaged header_y = %d, want default 802", s.Int("header_y"))
	}
	if s["custom_note"] != "kept untouched" {
		t.Error("unknown key dropped")
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	s, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if s.String("font_name") != "Helvetica" {
		t.Error("missing file should yield defaults")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")

	s := ApplyDefaults(nil)
	s["font_size"] = 14
	s["output_dir"] = "/tmp/out"
	s["legacy_key"] = "still here"

	if err := s.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if got.Int("font_size") != 14 {
		t.Errorf("font_size after round trip = %d", got.Int("font_size"))
	}
	if got.String("output_dir") != "/tmp/out" {
		t.Errorf("output_dir after round trip = %q", got.String("output_dir"))
	}
	if got["legacy_key"] != "still here" {
		t.Error("unknown key lost in round trip")
	}
}

func TestLoadFromDamagedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte(":\tnot yaml ["), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadFrom(path)
	if err == nil {
		t.Error("damaged file should surface an error")
	}
	if s.String("font_name") != "Helvetica" {
		t.Error("damaged file must still yield usable defaults")
	}
}

func TestTypedGettersFallBack(t *testing.T) {
	s := Settings{}
	if s.Int("font_size") != 9 {
		t.Errorf("Int fallback = %d", s.Int("font_size"))
	}
	if s.String("header_mode") != "filename" {
		t.Errorf("String fallback = %q", s.String("header_mode"))
	}
	if s.Bool("normalize_a4") {
		t.Error("Bool fallback should be false")
	}
	if s.Int("no_such_key") != 0 || s.String("no_such_key") != "" {
		t.Error("unknown keys fall back to zero values")
	}
}
