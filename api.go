package granary

import "reflect"

// EntityID identifies a logical game object. IDs are allocated
// sequentially starting at 0 and are never reused, even after the
// entity is removed.
type EntityID int

// Column is the type-erased view over one component type's values
// across all entities of one archetype. Every mutating operation
// changes the column's length; callers keep all columns of an
// archetype in lock-step.
type Column interface {
	// Len returns the current element count.
	Len() int

	// IsEmpty reports whether the column holds no elements.
	IsEmpty() bool

	// ElementType returns the erased element type identity, used to
	// match the column against requested component types.
	ElementType() reflect.Type

	// NewEmpty produces a fresh, empty column of the same concrete
	// element type.
	NewEmpty() Column

	// SwapRemove removes the element at index by moving the last
	// element into its place, shrinking the column by one.
	SwapRemove(index int)

	// MigrateElement removes the element at index with swap-remove
	// semantics and appends it to target, which must have the same
	// concrete element type. A mismatched target panics.
	MigrateElement(index int, target Column)
}

// System operates on entities sharing a set of components. Systems are
// registered on a World and updated once per tick with the world's
// storage.
type System interface {
	Update(storage *Storage)
}
