package granary

import (
	"fmt"
	"iter"
	"reflect"
	"slices"

	"github.com/TheBitDrifter/mask"
	iter_util "github.com/TheBitDrifter/util/iter"
)

type archetypeID uint32

// archetype is the columnar table for one exact component-type set.
// bits, types and columns are parallel slices sorted by schema bit.
// rows equals every column's length outside of a migration; it also
// counts entities in a zero-column archetype, which detaching an
// entity's last component produces.
type archetype struct {
	id      archetypeID
	mask    mask.Mask
	bits    []uint32
	types   []reflect.Type
	columns []Column
	rows    int
}

func newArchetype(id archetypeID, bits []uint32, types []reflect.Type, columns []Column) *archetype {
	a := &archetype{
		id:      id,
		bits:    bits,
		types:   types,
		columns: columns,
	}
	for _, bit := range bits {
		a.mask.Mark(bit)
	}
	return a
}

// newSingleArchetype builds a one-column archetype already holding
// value as its first row.
func newSingleArchetype[T any](id archetypeID, bit uint32, value T) *archetype {
	a := newArchetype(
		id,
		[]uint32{bit},
		[]reflect.Type{reflect.TypeFor[T]()},
		[]Column{&typedColumn[T]{values: []T{value}}},
	)
	a.rows = 1
	return a
}

// deriveByAdding builds an empty archetype with src's column set plus
// a fresh column for the added type, keeping bit order.
func deriveByAdding(src *archetype, id archetypeID, bit uint32, t reflect.Type, column Column) *archetype {
	if src.mask.ContainsAll(oneBit(bit)) {
		panic(fmt.Sprintf("granary: archetype %d already has a column for %v", src.id, t))
	}
	pos := len(src.bits)
	for i, existing := range src.bits {
		if existing > bit {
			pos = i
			break
		}
	}
	bits := slices.Insert(slices.Clone(src.bits), pos, bit)
	types := slices.Insert(iter_util.Collect(src.componentTypes()), pos, t)
	columns := make([]Column, 0, len(src.columns)+1)
	for _, c := range src.columns {
		columns = append(columns, c.NewEmpty())
	}
	columns = slices.Insert(columns, pos, column)
	return newArchetype(id, bits, types, columns)
}

// deriveByRemoving builds an empty archetype with src's column set
// minus the column for the removed bit.
func deriveByRemoving(src *archetype, id archetypeID, bit uint32) *archetype {
	pos := slices.Index(src.bits, bit)
	if pos < 0 {
		panic(fmt.Sprintf("granary: archetype %d has no column for bit %d", src.id, bit))
	}
	bits := slices.Delete(slices.Clone(src.bits), pos, pos+1)
	types := slices.Delete(iter_util.Collect(src.componentTypes()), pos, pos+1)
	columns := make([]Column, 0, len(src.columns)-1)
	for i, c := range src.columns {
		if i == pos {
			continue
		}
		columns = append(columns, c.NewEmpty())
	}
	return newArchetype(id, bits, types, columns)
}

// pushColumn appends value to the column whose element type is T.
func pushColumn[T any](a *archetype, value T) {
	t := reflect.TypeFor[T]()
	for _, c := range a.columns {
		if c.ElementType() == t {
			tc := c.(*typedColumn[T])
			tc.values = append(tc.values, value)
			return
		}
	}
	panic(fmt.Sprintf("granary: archetype %d has no column for %v", a.id, t))
}

func (a *archetype) columnFor(t reflect.Type) Column {
	for i, existing := range a.types {
		if existing == t {
			return a.columns[i]
		}
	}
	panic(fmt.Sprintf("granary: archetype %d has no column for %v", a.id, t))
}

func (a *archetype) componentTypes() iter.Seq[reflect.Type] {
	return func(yield func(reflect.Type) bool) {
		for _, t := range a.types {
			if !yield(t) {
				return
			}
		}
	}
}

// alignAndMigrate merge-joins the sorted bit lists of source and
// target, moving the value at sourceRow for every component type the
// two archetypes share. Columns unique to target are left untouched;
// the caller closes that gap by pushing the new value afterwards. The
// length guard skips source columns already evacuated by an earlier
// tie in the same call.
func alignAndMigrate(source, target *archetype, sourceRow int) {
	i, j := 0, 0
	for i < len(source.bits) && j < len(target.bits) {
		switch {
		case source.bits[i] < target.bits[j]:
			i++
		case source.bits[i] > target.bits[j]:
			j++
		default:
			if source.columns[i].Len() > sourceRow {
				source.columns[i].MigrateElement(sourceRow, target.columns[j])
			}
			i++
			j++
		}
	}
}
