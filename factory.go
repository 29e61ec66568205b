package particles

import "github.com/TheBitDrifter/table"

type factory struct{}

// Factory is the entry point for building worlds, storages, queries and pipelines.
var Factory factory

func (f factory) NewStorage(schema table.Schema) Storage {
	return newStorage(schema)
}

func (f factory) NewQuery() Query {
	return newQuery()
}

// NewCursor opens a shared cursor; it does not lock any kind exclusively.
func (f factory) NewCursor(query QueryNode, storage Storage) *Cursor {
	return newCursor(query, storage, access{})
}

// NewWorld creates an empty world with its own schema and registers components.
func (f factory) NewWorld(components ...Component) *World {
	return newWorld(newStorage(table.Factory.NewSchema()), components...)
}

func (f factory) NewResources() *Resources {
	return newResources()
}

func (f factory) NewPipelineBuilder() *PipelineBuilder {
	return newPipelineBuilder()
}

func FactoryNewComponent[T any]() AccessibleComponent[T] {
	iden := table.FactoryNewElementType[T]()
	return AccessibleComponent[T]{
		Component: iden,
		Accessor:  table.FactoryNewAccessor[T](iden),
	}
}

// FactoryNewComponentWithDefault is FactoryNewComponent for kinds whose rows
// start at v instead of the zero value when created without explicit values.
func FactoryNewComponentWithDefault[T any](v T) AccessibleComponent[T] {
	c := FactoryNewComponent[T]()
	c.defaultValue = &v
	return c
}

func FactoryNewCache[T any](cap int) Cache[T] {
	return &SimpleCache[T]{
		itemIndices: make(map[string]int),
		maxCapacity: cap,
	}
}
