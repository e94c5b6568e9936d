package granary

import (
	"fmt"
	"reflect"
)

var _ Column = &typedColumn[int]{}

// typedColumn is the one concrete Column implementation, instantiated
// per component type.
type typedColumn[T any] struct {
	values []T
}

func newColumn[T any]() *typedColumn[T] {
	return &typedColumn[T]{}
}

func (c *typedColumn[T]) Len() int {
	return len(c.values)
}

func (c *typedColumn[T]) IsEmpty() bool {
	return len(c.values) == 0
}

func (c *typedColumn[T]) ElementType() reflect.Type {
	return reflect.TypeFor[T]()
}

func (c *typedColumn[T]) NewEmpty() Column {
	return &typedColumn[T]{}
}

func (c *typedColumn[T]) SwapRemove(index int) {
	last := len(c.values) - 1
	c.values[index] = c.values[last]
	var zero T
	c.values[last] = zero
	c.values = c.values[:last]
}

func (c *typedColumn[T]) MigrateElement(index int, target Column) {
	element := c.values[index]
	c.SwapRemove(index)
	dest, ok := target.(*typedColumn[T])
	if !ok {
		panic(fmt.Sprintf("granary: column type mismatch during migration: expected %v, got %v",
			c.ElementType(), target.ElementType()))
	}
	dest.values = append(dest.values, element)
}

// columnSlice recovers the typed backing slice of a column. A concrete
// type mismatch is an internal-consistency violation.
func columnSlice[T any](c Column) []T {
	tc, ok := c.(*typedColumn[T])
	if !ok {
		panic(fmt.Sprintf("granary: column holds %v, not %v", c.ElementType(), reflect.TypeFor[T]()))
	}
	return tc.values
}
