package granary

import (
	"iter"
	"reflect"
)

// Cursor is a positional alternative to the QueryN iterators: it walks
// every entity of every archetype containing all of the requested
// component types, and components are pulled at the current position
// with Get. Matching is resolved lazily on the first advance; create a
// fresh cursor, or Reset, after mutating the storage.
type Cursor struct {
	storage *Storage
	types   []reflect.Type

	// Current iteration state
	current        *archetype
	archetypeIndex int
	row            int
	remaining      int

	// Initialization state
	initialized bool
	matched     []*archetype
}

func newCursor(storage *Storage, types ...reflect.Type) *Cursor {
	return &Cursor{
		storage: storage,
		types:   types,
	}
}

// Next advances the cursor to the next matching entity, returning
// false when iteration is complete.
func (c *Cursor) Next() bool {
	if c.row < c.remaining {
		c.row++
		return true
	}
	return c.advance()
}

func (c *Cursor) advance() bool {
	if !c.initialized {
		c.initialize()
	}
	for c.archetypeIndex < len(c.matched) {
		c.current = c.matched[c.archetypeIndex]
		c.remaining = c.current.rows

		if c.row < c.remaining {
			c.row++
			return true
		}
		c.archetypeIndex++
		c.row = 0
	}
	c.Reset()
	return false
}

// Positions yields (archetype ordinal, row) pairs for every matching
// entity without advancing shared state past the end.
func (c *Cursor) Positions() iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		c.initialize()

		for c.archetypeIndex < len(c.matched) {
			c.current = c.matched[c.archetypeIndex]
			c.remaining = c.current.rows

			for c.row < c.remaining {
				c.row++
				if !yield(c.archetypeIndex, c.row-1) {
					c.Reset()
					return
				}
			}
			c.row = 0
			c.archetypeIndex++
		}
		c.Reset()
	}
}

func (c *Cursor) initialize() {
	if c.initialized {
		return
	}
	c.matched = c.storage.matchingArchetypes(c.types)
	if len(c.matched) > 0 {
		c.archetypeIndex = 0
		c.current = c.matched[0]
		c.remaining = c.current.rows
	}
	c.initialized = true
}

// Reset rewinds the cursor and drops the matched-archetype snapshot so
// the next advance re-resolves against current storage state.
func (c *Cursor) Reset() {
	c.current = nil
	c.archetypeIndex = 0
	c.row = 0
	c.remaining = 0
	c.matched = nil
	c.initialized = false
}

// RemainingInArchetype returns how many entities are left in the
// cursor's current archetype.
func (c *Cursor) RemainingInArchetype() int {
	return c.remaining - c.row
}

// TotalMatched returns the number of entities the cursor will visit.
func (c *Cursor) TotalMatched() int {
	if !c.initialized {
		c.initialize()
	}
	total := 0
	for _, arch := range c.matched {
		total += arch.rows
	}
	return total
}

// Get retrieves the component of type T for the entity at the cursor
// position. T must be one of the types the cursor was created with.
func Get[T any](c *Cursor) *T {
	values := columnSlice[T](c.current.columnFor(reflect.TypeFor[T]()))
	return &values[c.row-1]
}
