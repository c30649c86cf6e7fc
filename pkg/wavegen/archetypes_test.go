package wavegen_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/tdsim/pkg/wavegen"
)

func TestArchetypeLoader_LoadAndCache(t *testing.T) {
	dir := t.TempDir()
	yamlData := `
name: forest-bugs
archetypes:
  - id: crawler
    name: Crawler
    tint: 0xff2a6fdb
  - id: scurrier
    name: Scurrier
    tint: 0xffc0392b
`
	if err := os.WriteFile(filepath.Join(dir, "forest.yml"), []byte(yamlData), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	loader := wavegen.NewArchetypeLoader(dir)
	pack, err := loader.Load("forest")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(pack.Archetypes) != 2 {
		t.Fatalf("expected 2 archetypes, got %d", len(pack.Archetypes))
	}
	if pack.TintFor(0) != pack.Archetypes[0].Tint {
		t.Fatalf("TintFor(0) mismatch")
	}
	if pack.TintFor(2) != pack.Archetypes[0].Tint {
		t.Fatalf("expected TintFor to cycle through the pack, got %#x", pack.TintFor(2))
	}

	again, err := loader.Load("forest")
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if again != pack {
		t.Fatalf("expected cached pack to be returned by pointer")
	}
}

func TestArchetypeLoader_RejectsPathTraversal(t *testing.T) {
	loader := wavegen.NewArchetypeLoader(t.TempDir())
	if _, err := loader.Load("../escape"); err == nil {
		t.Fatalf("expected path traversal name to be rejected")
	}
}

func TestArchetypePack_TintForEmptyPack(t *testing.T) {
	var pack *wavegen.ArchetypePack
	if pack.TintFor(0) != 0 {
		t.Fatalf("expected nil pack to default to tint 0")
	}
}
