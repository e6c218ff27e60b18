package encounter

import (
	"github.com/milk9111/arena/prefabs"
)

// Loader supplies prefab specs and scripts. The default reads the embedded
// prefabs with the on-disk override.
type Loader interface {
	Player() (*prefabs.PlayerSpec, error)
	Archetype(name string) (*prefabs.ArchetypeSpec, error)
	Trap(name string) (*prefabs.TrapSpec, error)
	Encounter(name string) (*prefabs.EncounterSpec, error)
	Script(path string) ([]byte, error)
}

type prefabLoader struct{}

func (prefabLoader) Player() (*prefabs.PlayerSpec, error) { return prefabs.LoadPlayerSpec() }

func (prefabLoader) Archetype(name string) (*prefabs.ArchetypeSpec, error) {
	return prefabs.LoadArchetype(name)
}

func (prefabLoader) Trap(name string) (*prefabs.TrapSpec, error) { return prefabs.LoadTrapSpec(name) }

func (prefabLoader) Encounter(name string) (*prefabs.EncounterSpec, error) {
	return prefabs.LoadEncounterSpec(name)
}

func (prefabLoader) Script(path string) ([]byte, error) { return prefabs.LoadScript(path) }

// cachingLoader keeps parsed archetypes until they are invalidated by a
// reload.
type cachingLoader struct {
	Loader
	archetypes map[string]*prefabs.ArchetypeSpec
	traps      map[string]*prefabs.TrapSpec
}

func newCachingLoader(l Loader) *cachingLoader {
	if l == nil {
		l = prefabLoader{}
	}
	return &cachingLoader{
		Loader:     l,
		archetypes: make(map[string]*prefabs.ArchetypeSpec),
		traps:      make(map[string]*prefabs.TrapSpec),
	}
}

func (c *cachingLoader) Archetype(name string) (*prefabs.ArchetypeSpec, error) {
	if spec, ok := c.archetypes[name]; ok {
		return spec, nil
	}
	spec, err := c.Loader.Archetype(name)
	if err != nil {
		return nil, err
	}
	c.archetypes[name] = spec
	return spec, nil
}

func (c *cachingLoader) Trap(name string) (*prefabs.TrapSpec, error) {
	if spec, ok := c.traps[name]; ok {
		return spec, nil
	}
	spec, err := c.Loader.Trap(name)
	if err != nil {
		return nil, err
	}
	c.traps[name] = spec
	return spec, nil
}

func (c *cachingLoader) invalidate(name string) {
	delete(c.archetypes, name)
	delete(c.traps, name)
}
