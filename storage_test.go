package particles

import (
	"errors"
	"testing"

	"github.com/TheBitDrifter/table"
)

// TestArchetypeCreation tests the creation and reuse of archetypes
func TestArchetypeCreation(t *testing.T) {
	k := newTestKinds()

	tests := []struct {
		name                string
		firstComponents     []Component
		secondComponents    []Component
		expectSameArchetype bool
	}{
		{
			name:                "Identical components",
			firstComponents:     []Component{k.position, k.velocity},
			secondComponents:    []Component{k.position, k.velocity},
			expectSameArchetype: true,
		},
		{
			name:                "Different order",
			firstComponents:     []Component{k.position, k.velocity},
			secondComponents:    []Component{k.velocity, k.position},
			expectSameArchetype: true,
		},
		{
			name:                "Different components",
			firstComponents:     []Component{k.position},
			secondComponents:    []Component{k.velocity},
			expectSameArchetype: false,
		},
		{
			name:                "Subset components",
			firstComponents:     []Component{k.position, k.velocity},
			secondComponents:    []Component{k.position},
			expectSameArchetype: false,
		},
		{
			name:                "Superset components",
			firstComponents:     []Component{k.position},
			secondComponents:    []Component{k.position, k.velocity, k.health},
			expectSameArchetype: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := Factory.NewStorage(table.Factory.NewSchema())

			archetype1, err := storage.NewOrExistingArchetype(tt.firstComponents...)
			if err != nil {
				t.Fatalf("Failed to create first archetype: %v", err)
			}
			archetype2, err := storage.NewOrExistingArchetype(tt.secondComponents...)
			if err != nil {
				t.Fatalf("Failed to create second archetype: %v", err)
			}

			sameArchetype := archetype1.ID() == archetype2.ID()
			if sameArchetype != tt.expectSameArchetype {
				t.Errorf("Archetypes same: %v, expected: %v", sameArchetype, tt.expectSameArchetype)
			}

			wantGroups := 2
			if tt.expectSameArchetype {
				wantGroups = 1
			}
			if got := len(storage.Archetypes()); got != wantGroups {
				t.Errorf("Archetype count: %d, want %d", got, wantGroups)
			}
		})
	}
}

func TestArchetypeErrors(t *testing.T) {
	k := newTestKinds()
	storage := Factory.NewStorage(table.Factory.NewSchema())

	_, err := storage.NewOrExistingArchetype()
	if !errors.As(err, &EmptyBundleError{}) {
		t.Errorf("empty descriptor: got %v, want EmptyBundleError", err)
	}

	_, err = storage.NewOrExistingArchetype(k.position, k.position)
	var conflict SchemaConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("duplicate kind: got %v, want SchemaConflictError", err)
	}
	if conflict.Component == nil {
		t.Error("SchemaConflictError should name the duplicated component")
	}

	_, err = storage.InsertBatch(
		[]Component{k.position, k.velocity},
		[]Bundle{{k.position.Bind(Position{})}},
	)
	if !errors.As(err, &SchemaConflictError{}) {
		t.Errorf("short bundle: got %v, want SchemaConflictError", err)
	}
	if len(storage.Archetypes()) != 0 {
		t.Errorf("failed inserts created %d archetypes", len(storage.Archetypes()))
	}
}

func TestNewEntitiesDefaults(t *testing.T) {
	k := newTestKinds()
	storage := Factory.NewStorage(table.Factory.NewSchema())

	entities, err := storage.NewEntities(3, k.position, k.health)
	if err != nil {
		t.Fatalf("Failed to create entities: %v", err)
	}
	for i, en := range entities {
		if got := k.health.GetFromEntity(en).Value; got != 100 {
			t.Errorf("entity %d health: %d, want default 100", i, got)
		}
		if got := *k.position.GetFromEntity(en); got != (Position{}) {
			t.Errorf("entity %d position: %v, want zero", i, got)
		}
	}

	if v, ok := k.health.DefaultValue(); !ok || v.Value != 100 {
		t.Errorf("health default: %v %v", v, ok)
	}
	if _, ok := k.position.DefaultValue(); ok {
		t.Error("position should have no default")
	}
}

func TestInsertBatchValues(t *testing.T) {
	k := newTestKinds()
	storage := Factory.NewStorage(table.Factory.NewSchema())
	kinds := []Component{k.position, k.health}

	entities, err := storage.InsertBatch(kinds, []Bundle{
		{k.position.Bind(Position{X: 1}), k.health.Bind(Health{Value: 5})},
		{k.health.Bind(Health{Value: 6}), k.position.Bind(Position{X: 2})},
	})
	if err != nil {
		t.Fatalf("InsertBatch failed: %v", err)
	}
	if len(entities) != 2 {
		t.Fatalf("got %d entities, want 2", len(entities))
	}
	for i, want := range []struct {
		x      float64
		health int
	}{{1, 5}, {2, 6}} {
		if got := k.position.GetFromEntity(entities[i]).X; got != want.x {
			t.Errorf("entity %d X: %v, want %v", i, got, want.x)
		}
		if got := k.health.GetFromEntity(entities[i]).Value; got != want.health {
			t.Errorf("entity %d health: %v, want %v", i, got, want.health)
		}
	}
	if got := len(entities[0].Components()); got != 2 {
		t.Errorf("entity component count: %d, want 2", got)
	}
}

func TestEntityLookup(t *testing.T) {
	k := newTestKinds()
	storage := Factory.NewStorage(table.Factory.NewSchema())

	first, _ := storage.NewEntities(2, k.position)
	second, _ := storage.NewEntities(2, k.velocity)
	created := append(first, second...)

	for _, want := range created {
		got, err := storage.Entity(int(want.ID()))
		if err != nil {
			t.Fatalf("Entity(%d): %v", want.ID(), err)
		}
		if got.ID() != want.ID() || got.Index() != want.Index() {
			t.Errorf("Entity(%d) returned a different entity", want.ID())
		}
	}

	for _, id := range []int{0, -1, len(created) + 1} {
		_, err := storage.Entity(id)
		var notFound EntityNotFoundError
		if !errors.As(err, &notFound) || notFound.ID != id {
			t.Errorf("Entity(%d): got %v, want EntityNotFoundError", id, err)
		}
	}
}

// TestStorageLocking tests that inserts are refused or queued while a cursor is open
func TestStorageLocking(t *testing.T) {
	tests := []struct {
		name    string
		cursors int
	}{
		{name: "Single cursor", cursors: 1},
		{name: "Nested cursors", cursors: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := newTestKinds()
			storage := Factory.NewStorage(table.Factory.NewSchema())
			if _, err := storage.NewEntities(2, k.position); err != nil {
				t.Fatal(err)
			}

			cursors := make([]*Cursor, tt.cursors)
			for i := range cursors {
				cursors[i] = Factory.NewCursor(Factory.NewQuery().And(k.position), storage)
				if !cursors[i].Next() {
					t.Fatal("cursor should yield an entity")
				}
			}
			if !storage.Locked() {
				t.Fatal("storage should be locked while cursors are open")
			}

			if _, err := storage.NewEntities(1, k.position); !errors.As(err, &LockedStorageError{}) {
				t.Errorf("NewEntities while locked: got %v, want LockedStorageError", err)
			}
			if err := storage.EnqueueNewEntities(5, k.position); err != nil {
				t.Fatalf("EnqueueNewEntities failed: %v", err)
			}
			err := storage.EnqueueInsertBatch([]Component{k.velocity}, []Bundle{{k.velocity.Bind(Velocity{X: 3})}})
			if err != nil {
				t.Fatalf("EnqueueInsertBatch failed: %v", err)
			}

			for i, c := range cursors {
				c.Reset()
				wantLocked := i < len(cursors)-1
				if storage.Locked() != wantLocked {
					t.Errorf("after releasing cursor %d locked=%v, want %v", i, storage.Locked(), wantLocked)
				}
			}

			count := Factory.NewCursor(Factory.NewQuery().And(k.position), storage).TotalMatched()
			if count != 7 {
				t.Errorf("Entity count after unlocking: %d, want 7", count)
			}
			if got := len(storage.Archetypes()); got != 2 {
				t.Errorf("archetypes after flush: %d, want 2", got)
			}
		})
	}
}

func TestEnqueueWhenUnlockedInsertsImmediately(t *testing.T) {
	k := newTestKinds()
	storage := Factory.NewStorage(table.Factory.NewSchema())

	if err := storage.EnqueueNewEntities(4, k.position); err != nil {
		t.Fatal(err)
	}
	if got := Factory.NewCursor(Factory.NewQuery().And(k.position), storage).TotalMatched(); got != 4 {
		t.Errorf("entities: %d, want 4", got)
	}
}

func TestSeparateStoragesHaveSeparateIDs(t *testing.T) {
	k := newTestKinds()
	a := Factory.NewStorage(table.Factory.NewSchema())
	b := Factory.NewStorage(table.Factory.NewSchema())

	ea, _ := a.NewEntities(3, k.position)
	eb, _ := b.NewEntities(1, k.position)
	if ea[0].ID() != eb[0].ID() {
		t.Errorf("first ids differ: %d vs %d", ea[0].ID(), eb[0].ID())
	}
	if _, err := b.Entity(int(ea[2].ID())); err == nil {
		t.Error("storage b should not resolve an id only storage a issued")
	}
}

func TestInsertBatchRejectsForeignKinds(t *testing.T) {
	k := newTestKinds()
	storage := Factory.NewStorage(table.Factory.NewSchema())

	tests := []struct {
		name   string
		bundle Bundle
		want   Component
	}{
		{name: "wrong kind", bundle: Bundle{k.velocity.Bind(Velocity{X: 7})}, want: k.velocity},
		{name: "repeated kind", bundle: Bundle{k.position.Bind(Position{}), k.position.Bind(Position{X: 1})}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kinds := []Component{k.position}
			if len(tt.bundle) == 2 {
				kinds = []Component{k.position, k.velocity}
			}
			_, err := storage.InsertBatch(kinds, []Bundle{tt.bundle})
			var conflict SchemaConflictError
			if !errors.As(err, &conflict) {
				t.Fatalf("got %v, want SchemaConflictError", err)
			}
			if tt.want != nil && kindOf(conflict.Component) != kindOf(tt.want) {
				t.Errorf("conflict names %v, want the velocity kind", conflict.Component)
			}
			if n := storageLen(storage); n != 0 {
				t.Errorf("rejected batch left %d rows behind", n)
			}
		})
	}
}

func TestEnqueueRejectsBadBatchesEagerly(t *testing.T) {
	k := newTestKinds()
	storage := Factory.NewStorage(table.Factory.NewSchema())
	if _, err := storage.NewEntities(1, k.position); err != nil {
		t.Fatal(err)
	}

	cursor := Factory.NewCursor(Factory.NewQuery().And(k.position), storage)
	if !cursor.Next() {
		t.Fatal("cursor should yield an entity")
	}
	err := storage.EnqueueInsertBatch([]Component{k.position}, []Bundle{{k.velocity.Bind(Velocity{})}})
	if !errors.As(err, &SchemaConflictError{}) {
		t.Errorf("EnqueueInsertBatch: got %v, want SchemaConflictError", err)
	}
	if err := storage.EnqueueNewEntities(1, k.position, k.position); !errors.As(err, &SchemaConflictError{}) {
		t.Errorf("EnqueueNewEntities: got %v, want SchemaConflictError", err)
	}
	cursor.Reset()

	if n := storageLen(storage); n != 1 {
		t.Errorf("storage holds %d rows after flush, want 1", n)
	}
}
