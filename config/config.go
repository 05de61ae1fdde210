// Package config persists user settings as a YAML file under the home
// directory. A declarative schema drives the defaults, so loading an old
// or hand-edited file always yields a complete, well-typed settings map;
// unknown keys are carried through untouched.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Kind is the value type a schema field expects.
type Kind int

const (
	String Kind = iota
	Int
	Float
	Bool
)

// Field describes one known setting.
type Field struct {
	Key     string
	Kind    Kind
	Default any
}

// Schema lists every known setting with its type and default. The keys
// stay snake_case for compatibility with settings files written by
// earlier releases.
var Schema = []Field{
	{"font_name", String, "Helvetica"},
	{"font_size", Int, 9},
	{"header_y", Int, 802},
	{"footer_y", Int, 40},
	{"header_mode", String, "filename"},
	{"output_dir", String, "with header"},
	{"number_start", Int, 1},
	{"number_step", Int, 1},
	{"number_prefix", String, ""},
	{"number_suffix", String, ""},
	{"number_after_merge", Bool, true},
	{"normalize_a4", Bool, false},
	{"max_preview_pages", Int, 10},
	{"language", String, "zh_CN"},
}

// Settings is a loaded settings map. Keys outside the schema are legal
// and survive a load/save round trip.
type Settings map[string]any

const (
	dirName  = ".pagestamp"
	fileName = "settings.yaml"
)

// Path returns the settings file location under the user home directory.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: %w", err)
	}
	return filepath.Join(home, dirName, fileName), nil
}

// Load reads the settings file and fills in defaults. A missing file is
// not an error; it yields the pure defaults.
func Load() (Settings, error) {
	path, err := Path()
	if err != nil {
		return ApplyDefaults(nil), err
	}
	return LoadFrom(path)
}

// LoadFrom reads settings from an explicit path.
func LoadFrom(path string) (Settings, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ApplyDefaults(nil), nil
		}
		return ApplyDefaults(nil), fmt.Errorf("config: reading %s: %w", path, err)
	}

	s := Settings{}
	if err := yaml.Unmarshal(b, &s); err != nil {
		return ApplyDefaults(nil), fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return ApplyDefaults(s), nil
}

// Save writes the settings to the default location, creating the config
// directory when needed.
func (s Settings) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return s.SaveTo(path)
}

// SaveTo writes the settings to an explicit path.
func (s Settings) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	b, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("config: writing %s: %w", path, err)
	}
	return nil
}

// ApplyDefaults returns a copy of s with every schema key present and
// coerced to its declared type. Values of the wrong type fall back to the
// default rather than failing, so a damaged settings file never blocks
// startup.
func ApplyDefaults(s Settings) Settings {
	out := make(Settings, len(Schema)+len(s))
	for k, v := range s {
		out[k] = v
	}
	for _, f := range Schema {
		v, ok := out[f.Key]
		if !ok {
			out[f.Key] = f.Default
			continue
		}
		if coerced, ok := coerce(v, f.Kind); ok {
			out[f.Key] = coerced
		} else {
			out[f.Key] = f.Default
		}
	}
	return out
}

func coerce(v any, kind Kind) (any, bool) {
	switch kind {
	case String:
		s, ok := v.(string)
		return s, ok
	case Int:
		switch n := v.(type) {
		case int:
			return n, true
		case float64:
			return int(n), true
		}
		return nil, false
	case Float:
		switch n := v.(type) {
		case float64:
			return n, true
		case int:
			return float64(n), true
		}
		return nil, false
	case Bool:
		b, ok := v.(bool)
		return b, ok
	}
	return nil, false
}

// String reads a string setting, falling back to the schema default.
func (s Settings) String(key string) string {
	if v, ok := s[key].(string); ok {
		return v
	}
	if d, ok := schemaDefault(key).(string); ok {
		return d
	}
	return ""
}

// Int reads an integer setting, falling back to the schema default.
func (s Settings) Int(key string) int {
	if v, ok := coerce(s[key], Int); ok {
		return v.(int)
	}
	if d, ok := schemaDefault(key).(int); ok {
		return d
	}
	return 0
}

// Bool reads a boolean setting, falling back to the schema default.
func (s Settings) Bool(key string) bool {
	if v, ok := s[key].(bool); ok {
		return v
	}
	if d, ok := schemaDefault(key).(bool); ok {
		return d
	}
	return false
}

func schemaDefault(key string) any {
	for _, f := range Schema {
		if f.Key == key {
			return f.Default
		}
	}
	return nil
}
