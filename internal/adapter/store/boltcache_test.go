package store

import (
	"path/filepath"
	"testing"

	"codectx/internal/domain"
)

func openTestCache(t *testing.T) *BoltCache {
	t.Helper()
	c, err := NewBoltCache(filepath.Join(t.TempDir(), "analysis.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestBoltCacheRoundTrip(t *testing.T) {
	c := openTestCache(t)

	structure := domain.FileStructure{
		Functions: []domain.Construct{{Name: "Parse", Line: 10, IsExported: true}},
		Imports:   []string{"fmt"},
		Exports:   []string{"Parse"},
	}
	if err := c.Put("src/parser.go", 240, 1700000000, structure); err != nil {
		t.Fatal(err)
	}

	got, ok := c.Get("src/parser.go", 240, 1700000000)
	if !ok {
		t.Fatal("expected a hit")
	}
	if len(got.Functions) != 1 || got.Functions[0].Name != "Parse" {
		t.Errorf("wrong structure: %+v", got)
	}
	if len(got.Imports) != 1 || got.Imports[0] != "fmt" {
		t.Errorf("imports lost: %+v", got.Imports)
	}
}

func TestBoltCacheMissOnChangedIdentity(t *testing.T) {
	c := openTestCache(t)

	if err := c.Put("src/parser.go", 240, 1700000000, domain.FileStructure{}); err != nil {
		t.Fatal(err)
	}

	if _, ok := c.Get("src/parser.go", 240, 1700000099); ok {
		t.Error("changed mtime must miss")
	}
	if _, ok := c.Get("src/parser.go", 999, 1700000000); ok {
		t.Error("changed size must miss")
	}
}

func TestBoltCacheCountAndClear(t *testing.T) {
	c := openTestCache(t)

	for i, path := range []string{"a.go", "b.go", "c.go"} {
		if err := c.Put(path, int64(i), 1700000000, domain.FileStructure{}); err != nil {
			t.Fatal(err)
		}
	}

	count, err := c.Count()
	if err != nil {
		t.Fatal(err)
	}
	if count != 3 {
		t.Errorf("Count = %d, want 3", count)
	}

	if err := c.Clear(); err != nil {
		t.Fatal(err)
	}
	count, err = c.Count()
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("Count after Clear = %d, want 0", count)
	}
	if _, ok := c.Get("a.go", 0, 1700000000); ok {
		t.Error("cleared entry must miss")
	}
}
