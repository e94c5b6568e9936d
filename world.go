package granary

import "fmt"

// World owns one Storage and the registered systems, and allocates
// entity ids sequentially starting at 0.
type World struct {
	Storage *Storage

	systems    []System
	nextEntity EntityID
	log        Logger
}

func newWorld() *World {
	return &World{
		Storage: newStorage(),
		log:     Config.logger(),
	}
}

// BuildEntity allocates a fresh entity id and returns a builder for
// attaching its components.
func (w *World) BuildEntity() *EntityBuilder {
	return &EntityBuilder{
		world: w,
		id:    w.newEntity(),
	}
}

// AddSystem registers a system. The world starts with no default
// systems.
func (w *World) AddSystem(system System) {
	w.systems = append(w.systems, system)
	w.log.LogSystemRegistered(fmt.Sprintf("%T", system))
}

// Update runs every registered system once, in registration order,
// passing each the world's storage.
func (w *World) Update() {
	for _, system := range w.systems {
		system.Update(w.Storage)
	}
}

func (w *World) newEntity() EntityID {
	id := w.nextEntity
	w.nextEntity++
	return id
}
