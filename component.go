package granary

import (
	"reflect"

	"github.com/TheBitDrifter/mask"
)

// maxComponentTypes bounds the schema's bit space; each distinct
// component type claims one mask bit for the lifetime of the storage.
const maxComponentTypes = 64

// ComponentType returns the erased type identity of a component type,
// for use with the cursor API.
func ComponentType[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

// schema assigns each component type a stable bit in first-seen order.
// Registration is schema-on-write: a type is added the first time a
// value of that type is attached to any entity.
type schema struct {
	bits map[reflect.Type]uint32
}

func newSchema() *schema {
	return &schema{bits: make(map[reflect.Type]uint32)}
}

func (s *schema) register(t reflect.Type) uint32 {
	if bit, ok := s.bits[t]; ok {
		return bit
	}
	if len(s.bits) >= maxComponentTypes {
		panic(ComponentCapacityError{Type: t})
	}
	bit := uint32(len(s.bits))
	s.bits[t] = bit
	return bit
}

func (s *schema) lookup(t reflect.Type) (uint32, bool) {
	bit, ok := s.bits[t]
	return bit, ok
}

func oneBit(bit uint32) mask.Mask {
	var m mask.Mask
	m.Mark(bit)
	return m
}
