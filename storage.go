package particles

import (
	"reflect"

	"github.com/TheBitDrifter/mask"
	"github.com/TheBitDrifter/table"
	"github.com/rotisserie/eris"
)

var _ Storage = &storage{}

type storage struct {
	schema     table.Schema
	entryIndex table.EntryIndex
	registered map[reflect.Type]struct{}
	archetypes *archetypes
	opQueue    opQueue
	borrows    borrows
	entities   []entity
}

func newStorage(schema table.Schema) *storage {
	return &storage{
		schema:     schema,
		entryIndex: table.Factory.NewEntryIndex(),
		registered: make(map[reflect.Type]struct{}),
		archetypes: newArchetypes(),
		opQueue:    newOpQueue(),
	}
}

func (sto *storage) Entity(id int) (Entity, error) {
	if id < 1 || id > len(sto.entities) {
		return nil, EntityNotFoundError{ID: id}
	}
	en := &sto.entities[id-1]
	if int(en.ID()) != id {
		return nil, EntityNotFoundError{ID: id}
	}
	return en, nil
}

// Register adds component kinds to the schema so queries and stages can refer to them
// before any entity holds them.
func (sto *storage) Register(components ...Component) {
	for _, c := range components {
		sto.schema.Register(c)
		sto.registered[kindOf(c)] = struct{}{}
	}
}

func (sto *storage) Registered(c Component) bool {
	_, ok := sto.registered[kindOf(c)]
	return ok
}

func (sto *storage) RowIndexFor(c Component) uint32 {
	return sto.schema.RowIndexFor(c)
}

func (sto *storage) Locked() bool {
	return sto.borrows.open()
}

func (sto *storage) Archetypes() []Archetype {
	out := make([]Archetype, len(sto.archetypes.asSlice))
	for i, arch := range sto.archetypes.asSlice {
		out[i] = arch
	}
	return out
}

func (sto *storage) NewOrExistingArchetype(components ...Component) (Archetype, error) {
	arch, err := sto.archetypeFor(components)
	if err != nil {
		return nil, err
	}
	return arch, nil
}

// kindSet registers components and returns their mask, rejecting empty or repeated kinds.
func (sto *storage) kindSet(components []Component) (mask.Mask, error) {
	var m mask.Mask
	if len(components) == 0 {
		return m, EmptyBundleError{}
	}
	sto.Register(components...)
	for _, c := range components {
		bit := sto.schema.RowIndexFor(c)
		if m.Contains(bit) {
			return m, SchemaConflictError{Component: c, Reason: "kind listed more than once"}
		}
		m.Mark(bit)
	}
	return m, nil
}

// archetypeFor resolves the group for an exact component-kind set, creating it if needed.
func (sto *storage) archetypeFor(components []Component) (archetype, error) {
	archMask, err := sto.kindSet(components)
	if err != nil {
		return archetype{}, err
	}

	if existing, found := sto.archetypes.lookup(archMask); found {
		if len(existing.components) != len(components) {
			return archetype{}, SchemaConflictError{Reason: "group exists with a different kind set"}
		}
		return existing, nil
	}

	created, err := newArchetype(sto.schema, sto.entryIndex, sto.archetypes.nextID, archMask, components...)
	if err != nil {
		return archetype{}, err
	}
	sto.archetypes.add(created)
	return created, nil
}

// checkBatch verifies every bundle holds exactly the kinds in components.
func (sto *storage) checkBatch(components []Component, values []Bundle) error {
	want, err := sto.kindSet(components)
	if err != nil {
		return err
	}
	for _, bundle := range values {
		if len(bundle) != len(components) {
			return SchemaConflictError{Reason: "bundle does not match the group's kind set"}
		}
		var got mask.Mask
		for _, v := range bundle {
			kind := v.Kind()
			if !sto.Registered(kind) {
				return SchemaConflictError{Component: kind, Reason: "kind is not part of the group"}
			}
			bit := sto.schema.RowIndexFor(kind)
			if !want.Contains(bit) {
				return SchemaConflictError{Component: kind, Reason: "kind is not part of the group"}
			}
			if got.Contains(bit) {
				return SchemaConflictError{Component: kind, Reason: "kind listed more than once"}
			}
			got.Mark(bit)
		}
	}
	return nil
}

func (sto *storage) NewEntities(n int, components ...Component) ([]Entity, error) {
	return sto.insert(n, components, nil)
}

// InsertBatch appends one entity per bundle to the group for components.
// Every bundle must hold exactly those kinds.
func (sto *storage) InsertBatch(components []Component, values []Bundle) ([]Entity, error) {
	if err := sto.checkBatch(components, values); err != nil {
		return nil, err
	}
	return sto.insert(len(values), components, values)
}

func (sto *storage) insert(n int, components []Component, values []Bundle) ([]Entity, error) {
	if sto.Locked() {
		return nil, LockedStorageError{}
	}
	arch, err := sto.archetypeFor(components)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return []Entity{}, nil
	}
	entries, err := arch.table.NewEntries(n)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to create %d entries in archetype %d", n, arch.id)
	}

	currentLen := len(sto.entities)
	neededCap := currentLen + n
	if cap(sto.entities) < neededCap {
		// Grow by doubling or adding n, whichever is larger
		newCap := max(neededCap, 2*cap(sto.entities))
		newEntities := make([]entity, currentLen, newCap)
		copy(newEntities, sto.entities)
		sto.entities = newEntities
	}
	sto.entities = sto.entities[:neededCap]

	entities := make([]Entity, n)
	for i, entry := range entries {
		index := entry.Index()
		if values == nil {
			for _, c := range components {
				if d, ok := c.(defaulted); ok {
					d.writeDefault(index, arch.table)
				}
			}
		} else {
			for _, v := range values[i] {
				v.writeTo(index, arch.table)
			}
		}
		sto.entities[currentLen+i] = entity{Entry: entry}
		entities[i] = &sto.entities[currentLen+i]
	}
	return entities, nil
}

func (sto *storage) EnqueueNewEntities(n int, components ...Component) error {
	if !sto.Locked() {
		_, err := sto.NewEntities(n, components...)
		return err
	}
	if _, err := sto.kindSet(components); err != nil {
		return err
	}
	sto.opQueue.enqueueOp(operation{
		typ:    opCreate,
		amount: n,
		comps:  components,
	})
	return nil
}

func (sto *storage) EnqueueInsertBatch(components []Component, values []Bundle) error {
	if !sto.Locked() {
		_, err := sto.InsertBatch(components, values)
		return err
	}
	if err := sto.checkBatch(components, values); err != nil {
		return err
	}
	sto.opQueue.enqueueOp(operation{
		typ:    opInsert,
		comps:  components,
		values: values,
	})
	return nil
}

func (sto *storage) acquire(acc access) (borrowID, error) {
	var m mask.Mask
	for _, c := range acc.components {
		if sto.Registered(c) {
			m.Mark(sto.schema.RowIndexFor(c))
		}
	}
	return sto.borrows.acquire(m, acc.exclusive)
}

// release drops a borrow and flushes queued inserts once nothing is borrowed.
func (sto *storage) release(id borrowID) {
	sto.borrows.release(id)
	if sto.borrows.open() {
		return
	}
	if err := sto.processOperationQueue(); err != nil {
		panic(err)
	}
}

func (sto *storage) len() int {
	total := 0
	for _, arch := range sto.archetypes.asSlice {
		total += arch.table.Length()
	}
	return total
}
