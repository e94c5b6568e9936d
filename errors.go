package granary

import (
	"fmt"
	"reflect"
)

type EmptyEntityError struct {
	ID EntityID
}

func (e EmptyEntityError) Error() string {
	return fmt.Sprintf("entity %d was built without components", e.ID)
}

type ComponentCapacityError struct {
	Type reflect.Type
}

func (e ComponentCapacityError) Error() string {
	return fmt.Sprintf("cannot register component type %v: schema at maximum capacity (%d)", e.Type, maxComponentTypes)
}
