package wavegen

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// SpeciesArchetype names a display identity for one rolled species slot: a
// tint to render bugs of that species with, and a short label for tooling.
// The wave generator itself never reads these; they exist purely so a driver
// can turn an anonymous SpeciesStat.Index into something a player can tell
// apart on screen.
type SpeciesArchetype struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Tint uint32 `yaml:"tint"`
}

// ArchetypePack is an ordered table of named species archetypes, loaded from
// a YAML file.
type ArchetypePack struct {
	Name       string             `yaml:"name"`
	Archetypes []SpeciesArchetype `yaml:"archetypes"`
}

// TintFor returns the tint assigned to a rolled species slot, cycling
// through the pack if a wave rolls more species than the pack names.
// Returns 0 (renderer default) for an empty pack.
func (p *ArchetypePack) TintFor(speciesIndex int) uint32 {
	if p == nil || len(p.Archetypes) == 0 {
		return 0
	}
	return p.Archetypes[speciesIndex%len(p.Archetypes)].Tint
}

// ArchetypeLoader provides cached loading of archetype packs from a base
// directory, one YAML file per pack: a mutex-guarded name->pack cache
// reading baseDir/<name>.yml, guarding the requested name against path
// traversal.
type ArchetypeLoader struct {
	baseDir string
	cache   map[string]*ArchetypePack
	mu      sync.RWMutex
}

// NewArchetypeLoader creates a loader rooted at baseDir.
func NewArchetypeLoader(baseDir string) *ArchetypeLoader {
	return &ArchetypeLoader{
		baseDir: baseDir,
		cache:   make(map[string]*ArchetypePack),
	}
}

// Load loads an archetype pack by name from baseDir/<name>.yml. Results are
// cached for subsequent loads.
func (l *ArchetypeLoader) Load(name string) (*ArchetypePack, error) {
	if strings.Contains(name, "..") || strings.Contains(name, "/") || strings.Contains(name, "\\") {
		return nil, fmt.Errorf("wavegen: invalid archetype pack name: %s", name)
	}

	l.mu.RLock()
	if pack, ok := l.cache[name]; ok {
		l.mu.RUnlock()
		return pack, nil
	}
	l.mu.RUnlock()

	path := filepath.Join(l.baseDir, name+".yml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("wavegen: reading archetype pack %q: %w", name, err)
	}

	var pack ArchetypePack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("wavegen: parsing archetype pack %q: %w", name, err)
	}

	l.mu.Lock()
	l.cache[name] = &pack
	l.mu.Unlock()

	return &pack, nil
}
