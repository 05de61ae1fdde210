package fontcache

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCachePutGet(t *testing.T) {
	c := New(4)

	if _, ok := c.Get("missing"); ok {
		t.Error("empty cache should miss")
	}

	c.Put("a", []byte{1})
	got, ok := c.Get("a")
	if !ok || len(got) != 1 || got[0] != 1 {
		t.Errorf("Get after Put = %v, %v", got, ok)
	}
}

func TestCacheIgnoresEmptyPayload(t *testing.T) {
	c := New(4)
	c.Put("a", nil)
	if c.Len() != 0 {
		t.Error("nil payload must not be stored")
	}
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := New(2)
	c.Put("a", []byte{1})
	c.Put("b", []byte{2})

	// Touch "a" so "b" becomes the eviction victim.
	c.Get("a")
	c.Put("c", []byte{3})

	if _, ok := c.Get("b"); ok {
		t.Error("least recently used entry should be evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("recently used entry must survive")
	}
	if c.Len() != 2 {
		t.Errorf("cache size = %d, want 2", c.Len())
	}
}

func TestCacheOverwriteKeepsSize(t *testing.T) {
	c := New(2)
	c.Put("a", []byte{1})
	c.Put("a", []byte{9})

	got, _ := c.Get("a")
	if got[0] != 9 {
		t.Error("overwrite should replace the payload")
	}
	if c.Len() != 1 {
		t.Errorf("cache size = %d, want 1", c.Len())
	}
}

func TestCacheLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "font.ttf")
	if err := os.WriteFile(path, []byte("glyphs"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(2)
	b, err := c.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(b) != "glyphs" {
		t.Errorf("loaded %q", b)
	}

	// Second load is served from memory even after the file disappears.
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Load(path); err != nil {
		t.Errorf("cached load should not touch disk: %v", err)
	}

	if _, err := c.Load(filepath.Join(dir, "nope.ttf")); err == nil {
		t.Error("missing file must error")
	}
}
