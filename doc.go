/*
Package granary provides archetype-based columnar storage for Entity-Component-System
(ECS) runtimes.

Entities are grouped by their exact set of attached component types. Each such group
(an archetype) stores one dense column per component type, with every column index
aligned to the same entity, so iterating entities that share a component signature
walks contiguous memory.

Core Concepts:

  - Entity: A unique identifier that represents a game object.
  - Component: An arbitrarily-typed value attached to an entity.
  - Archetype: The set of entities sharing an identical component-type signature,
    stored as a columnar table.
  - Query: A lazy, zipped iterator over the columns of every archetype containing
    all requested component types.

Basic Usage:

	// Create a world (storage plus systems plus entity allocation)
	world := granary.Factory.NewWorld()

	// Build an entity with two components
	builder := world.BuildEntity()
	granary.WithComponent(builder, Position{X: 1, Y: 2})
	granary.WithComponent(builder, Velocity{X: 3, Y: 4})
	player, _ := builder.Build()

	// Query entities and process them
	for pos, vel := range granary.Query2[Position, Velocity](world.Storage) {
		pos.X += vel.X
		pos.Y += vel.Y
	}

	// Change an entity's shape at runtime
	granary.RemoveComponent[Velocity](world.Storage, player)

Storage is single-threaded: mutating operations require exclusive access
for their duration, and queries must not be interleaved with mutations of the same
storage. Enforcing that discipline is the caller's responsibility.
*/
package granary
