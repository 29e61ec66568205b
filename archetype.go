package particles

import (
	"github.com/TheBitDrifter/mask"
	"github.com/TheBitDrifter/table"
	"github.com/rotisserie/eris"
)

var _ Archetype = archetype{}

type archetypeID uint32

type archetype struct {
	id         archetypeID
	table      table.Table
	mask       mask.Mask
	components []Component
}

type archetypes struct {
	nextID           archetypeID
	asSlice          []archetype
	idsGroupedByMask map[mask.Mask]archetypeID
}

func newArchetypes() *archetypes {
	return &archetypes{
		nextID:           1,
		idsGroupedByMask: make(map[mask.Mask]archetypeID),
	}
}

func newArchetype(
	schema table.Schema, entryIndex table.EntryIndex, id archetypeID, archMask mask.Mask, components ...Component,
) (archetype, error) {
	elementTypes := make([]table.ElementType, len(components))
	for i, comp := range components {
		elementTypes[i] = comp
	}
	tbl, err := table.NewTableBuilder().
		WithSchema(schema).
		WithEntryIndex(entryIndex).
		WithElementTypes(elementTypes...).
		WithEvents(Config.tableEvents).
		Build()
	if err != nil {
		return archetype{}, eris.Wrapf(err, "failed to build table for archetype %d", id)
	}
	owned := make([]Component, len(components))
	copy(owned, components)
	return archetype{
		id:         id,
		table:      tbl,
		mask:       archMask,
		components: owned,
	}, nil
}

// lookup returns the group stored under m, if any.
func (a *archetypes) lookup(m mask.Mask) (archetype, bool) {
	id, ok := a.idsGroupedByMask[m]
	if !ok {
		return archetype{}, false
	}
	return a.asSlice[id-1], true
}

func (a *archetypes) add(arch archetype) {
	a.asSlice = append(a.asSlice, arch)
	a.idsGroupedByMask[arch.mask] = arch.id
	a.nextID++
}

func (a archetype) ID() uint32 {
	return uint32(a.id)
}

func (a archetype) Table() table.Table {
	return a.table
}

func (a archetype) Mask() mask.Mask {
	return a.mask
}

func (a archetype) Components() []Component {
	return a.components
}

func (a archetype) Len() int {
	return a.table.Length()
}
