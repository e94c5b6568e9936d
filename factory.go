package granary

import "reflect"

type factory struct{}

var Factory factory

func (f factory) NewStorage() *Storage {
	return newStorage()
}

func (f factory) NewWorld() *World {
	return newWorld()
}

func (f factory) NewCursor(storage *Storage, types ...reflect.Type) *Cursor {
	return newCursor(storage, types...)
}
