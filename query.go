package granary

import (
	"fmt"
	"iter"
	"reflect"
	"slices"
)

// Row3 is one result of a three-type query. Fields follow the
// requested type order.
type Row3[A, B, C any] struct {
	A *A
	B *B
	C *C
}

// Row4 is one result of a four-type query. Fields follow the requested
// type order.
type Row4[A, B, C, D any] struct {
	A *A
	B *B
	C *C
	D *D
}

// Query1 iterates every component value of type A across all
// archetypes containing that type. The yielded pointers stay valid
// until the next structural mutation of the storage; writing through
// them is how systems update components.
func Query1[A any](s *Storage) iter.Seq[*A] {
	t := reflect.TypeFor[A]()
	ids := slices.Clone(s.typeIndex[t])
	return func(yield func(*A) bool) {
		for _, id := range ids {
			values := columnSlice[A](s.mustArchetype(id).columnFor(t))
			for i := range values {
				if !yield(&values[i]) {
					return
				}
			}
		}
	}
}

// Query2 iterates (A, B) pairs for every entity that has both
// component types, in the requested type order regardless of how the
// archetype stores its columns. Duplicate type parameters panic.
func Query2[A, B any](s *Storage) iter.Seq2[*A, *B] {
	ta, tb := reflect.TypeFor[A](), reflect.TypeFor[B]()
	matched := s.matchingArchetypes([]reflect.Type{ta, tb})
	return func(yield func(*A, *B) bool) {
		for _, arch := range matched {
			as := columnSlice[A](arch.columnFor(ta))
			bs := columnSlice[B](arch.columnFor(tb))
			for i := range as {
				if !yield(&as[i], &bs[i]) {
					return
				}
			}
		}
	}
}

// Query3 iterates rows over every entity that has all three component
// types. Duplicate type parameters panic.
func Query3[A, B, C any](s *Storage) iter.Seq[Row3[A, B, C]] {
	ta, tb, tc := reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C]()
	matched := s.matchingArchetypes([]reflect.Type{ta, tb, tc})
	return func(yield func(Row3[A, B, C]) bool) {
		for _, arch := range matched {
			as := columnSlice[A](arch.columnFor(ta))
			bs := columnSlice[B](arch.columnFor(tb))
			cs := columnSlice[C](arch.columnFor(tc))
			for i := range as {
				if !yield(Row3[A, B, C]{A: &as[i], B: &bs[i], C: &cs[i]}) {
					return
				}
			}
		}
	}
}

// Query4 iterates rows over every entity that has all four component
// types. Duplicate type parameters panic.
func Query4[A, B, C, D any](s *Storage) iter.Seq[Row4[A, B, C, D]] {
	ta, tb := reflect.TypeFor[A](), reflect.TypeFor[B]()
	tc, td := reflect.TypeFor[C](), reflect.TypeFor[D]()
	matched := s.matchingArchetypes([]reflect.Type{ta, tb, tc, td})
	return func(yield func(Row4[A, B, C, D]) bool) {
		for _, arch := range matched {
			as := columnSlice[A](arch.columnFor(ta))
			bs := columnSlice[B](arch.columnFor(tb))
			cs := columnSlice[C](arch.columnFor(tc))
			ds := columnSlice[D](arch.columnFor(td))
			for i := range as {
				if !yield(Row4[A, B, C, D]{A: &as[i], B: &bs[i], C: &cs[i], D: &ds[i]}) {
					return
				}
			}
		}
	}
}

// matchingArchetypes intersects the per-type archetype-id sets from
// the type index, starting from the smallest set so the work is
// bounded by the rarest component's footprint, and returns the matched
// archetypes in ascending id order.
func (s *Storage) matchingArchetypes(types []reflect.Type) []*archetype {
	for i := range types {
		for j := i + 1; j < len(types); j++ {
			if types[i] == types[j] {
				panic(fmt.Sprintf("granary: duplicate component type %v in query", types[i]))
			}
		}
	}

	sets := make([][]archetypeID, len(types))
	smallest := 0
	for i, t := range types {
		sets[i] = s.typeIndex[t]
		if len(sets[i]) < len(sets[smallest]) {
			smallest = i
		}
	}

	ids := slices.Clone(sets[smallest])
	for i, set := range sets {
		if i == smallest {
			continue
		}
		members := make(map[archetypeID]struct{}, len(set))
		for _, id := range set {
			members[id] = struct{}{}
		}
		ids = slices.DeleteFunc(ids, func(id archetypeID) bool {
			_, ok := members[id]
			return !ok
		})
	}
	slices.Sort(ids)

	matched := make([]*archetype, len(ids))
	for i, id := range ids {
		matched[i] = s.mustArchetype(id)
	}
	return matched
}
