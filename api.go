package particles

import (
	"iter"

	"github.com/TheBitDrifter/mask"
	"github.com/TheBitDrifter/table"
)

type Storage interface {
	Entity(id int) (Entity, error)
	NewEntities(int, ...Component) ([]Entity, error)
	EnqueueNewEntities(int, ...Component) error
	InsertBatch([]Component, []Bundle) ([]Entity, error)
	EnqueueInsertBatch([]Component, []Bundle) error
	NewOrExistingArchetype(...Component) (Archetype, error)
	Archetypes() []Archetype
	Register(...Component)
	Registered(Component) bool
	RowIndexFor(Component) uint32
	Locked() bool
}

type Entity interface {
	table.Entry
	Components() []Component
}

type Archetype interface {
	ID() uint32
	Table() table.Table
	Mask() mask.Mask
	Components() []Component
}

type Query interface {
	QueryNode
	And(items ...interface{}) QueryNode
	Or(items ...interface{}) QueryNode
	Not(items ...interface{}) QueryNode
}

type QueryNode interface {
	Evaluate(archetype Archetype, storage Storage) bool
}

type iCursor interface {
	Entities() iter.Seq2[int, table.Table]
	Next() bool
}

type Cache[T any] interface {
	GetIndex(string) (int, bool)
	GetItem(int) *T
	GetItem32(uint32) *T
	Register(string, T) (int, error)
	Len() int
}
