package particles

import (
	"reflect"

	"github.com/TheBitDrifter/table"
)

// Component represents a kind of data that can be attached to entities
// Components can be used to create queries for entities
type Component interface {
	table.ElementType
}

// AccessibleComponent extends a base Component with table-based accessibility
// It provides methods to retrieve components using different access patterns
type AccessibleComponent[T any] struct {
	Component
	table.Accessor[T] // concrete.

	defaultValue *T
}

// ComponentValue is a component kind bound to the value one entity will hold
type ComponentValue interface {
	Kind() Component
	writeTo(index int, tbl table.Table)
}

// Bundle is the tuple of component values for a single entity
type Bundle []ComponentValue

type componentValue[T any] struct {
	kind  AccessibleComponent[T]
	value T
}

func (v componentValue[T]) Kind() Component {
	return v.kind
}

func (v componentValue[T]) writeTo(index int, tbl table.Table) {
	*v.kind.Get(index, tbl) = v.value
}

// Bind pairs the component kind with a value for use in a Bundle
func (c AccessibleComponent[T]) Bind(value T) ComponentValue {
	return componentValue[T]{kind: c, value: value}
}

// GetFromCursor retrieves a component value for the entity at the cursor position
func (c AccessibleComponent[T]) GetFromCursor(cursor *Cursor) *T {
	return c.Get(
		cursor.entityIndex-1,
		cursor.currentArchetype.table,
	)
}

// GetFromCursorSafe safely retrieves a component value, checking if the component exists
// Returns a boolean indicating success and the component pointer if found
func (c AccessibleComponent[T]) GetFromCursorSafe(cursor *Cursor) (bool, *T) {
	ok := c.Accessor.Check(cursor.currentArchetype.table)
	if ok {
		return true, c.GetFromCursor(cursor)
	}
	return false, nil
}

// CheckCursor determines if the component exists in the archetype at the cursor position
func (c AccessibleComponent[T]) CheckCursor(cursor *Cursor) bool {
	return c.Accessor.Check(cursor.currentArchetype.table)
}

// GetFromEntity retrieves a component value for the specified entity
func (c AccessibleComponent[T]) GetFromEntity(entity Entity) *T {
	return c.Get(entity.Index(), entity.Table())
}

// DefaultValue reports the value written into rows created without explicit values
func (c AccessibleComponent[T]) DefaultValue() (T, bool) {
	if c.defaultValue == nil {
		var zero T
		return zero, false
	}
	return *c.defaultValue, true
}

func (c AccessibleComponent[T]) writeDefault(index int, tbl table.Table) {
	if c.defaultValue != nil {
		*c.Get(index, tbl) = *c.defaultValue
	}
}

func (c AccessibleComponent[T]) componentType() reflect.Type {
	return reflect.TypeFor[T]()
}

type defaulted interface {
	writeDefault(index int, tbl table.Table)
}

type typed interface {
	componentType() reflect.Type
}

// kindOf is the identity the world uses to track registered kinds.
// One AccessibleComponent per Go type is expected.
func kindOf(c Component) reflect.Type {
	if t, ok := c.(typed); ok {
		return t.componentType()
	}
	return reflect.TypeOf(c)
}

func kindName(c Component) string {
	return kindOf(c).String()
}
