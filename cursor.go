package particles

import (
	"iter"

	"github.com/TheBitDrifter/table"
)

var _ iCursor = &Cursor{}

// Cursor walks every entity in the groups a query matches, group by group in
// creation order. Opening a cursor borrows the components it declares; the
// borrow is returned when iteration finishes or Reset is called.
type Cursor struct {
	// The query to filter entities
	query QueryNode

	// The storage to iterate over
	storage *storage

	access   access
	borrow   borrowID
	borrowed bool

	// Current iteration state
	currentArchetype archetype
	storageIndex     int
	entityIndex      int
	remaining        int

	// Initialization state
	initialized     bool
	matchedStorages []archetype
}

func newCursor(query QueryNode, sto Storage, acc access) *Cursor {
	return &Cursor{
		query:   query,
		storage: sto.(*storage),
		access:  acc,
	}
}

func (c *Cursor) Next() bool {
	if c.entityIndex < c.remaining {
		c.entityIndex++
		return true
	}
	return c.advance()
}

func (c *Cursor) advance() bool {
	if !c.initialized {
		c.initialize()
	}
	for c.storageIndex < len(c.matchedStorages) {
		c.currentArchetype = c.matchedStorages[c.storageIndex]
		c.remaining = c.currentArchetype.table.Length()

		if c.entityIndex < c.remaining {
			c.entityIndex++
			return true
		}
		c.storageIndex++
		c.entityIndex = 0
	}
	c.Reset()
	return false
}

// Entities yields the row index and table of every matched entity.
func (c *Cursor) Entities() iter.Seq2[int, table.Table] {
	return func(yield func(int, table.Table) bool) {
		c.initialize()
		defer c.Reset()

		for c.storageIndex < len(c.matchedStorages) {
			c.currentArchetype = c.matchedStorages[c.storageIndex]
			c.remaining = c.currentArchetype.table.Length()

			for c.entityIndex < c.remaining {
				if !yield(c.entityIndex, c.currentArchetype.table) {
					return
				}
				c.entityIndex++
			}
			c.entityIndex = 0
			c.storageIndex++
		}
	}
}

func (c *Cursor) initialize() {
	if c.initialized {
		return
	}
	id, err := c.storage.acquire(c.access)
	if err != nil {
		panic(err)
	}
	c.borrow = id
	c.borrowed = true

	c.matchedStorages = c.match()
	if len(c.matchedStorages) > 0 {
		c.storageIndex = 0
		c.currentArchetype = c.matchedStorages[0]
		c.remaining = c.currentArchetype.table.Length()
	}
	c.initialized = true
}

func (c *Cursor) match() []archetype {
	matched := make([]archetype, 0)
	for _, arch := range c.storage.archetypes.asSlice {
		if c.query.Evaluate(arch, c.storage) {
			matched = append(matched, arch)
		}
	}
	return matched
}

func (c *Cursor) Reset() {
	c.storageIndex = 0
	c.entityIndex = 0
	c.remaining = 0
	c.matchedStorages = nil
	c.initialized = false
	if c.borrowed {
		c.borrowed = false
		c.storage.release(c.borrow)
	}
}

func (c *Cursor) CurrentEntity() (int, table.Table) {
	return c.entityIndex - 1, c.currentArchetype.table
}

func (c *Cursor) RemainingInArchetype() int {
	return c.remaining - c.entityIndex
}

// TotalMatched counts matched entities without opening the cursor.
func (c *Cursor) TotalMatched() int {
	total := 0
	for _, arch := range c.match() {
		total += arch.table.Length()
	}
	return total
}
