package granary

// entityRecord locates one entity's data: the archetype it lives in
// and its row there. Records are created on first component attach,
// updated on every migration and deleted with the entity.
type entityRecord struct {
	archetypeID archetypeID
	row         int
}

// EntityBuilder accumulates components for a freshly allocated entity.
// An entity without components is unreachable by type-indexed queries,
// so Build reports an error when nothing was attached.
type EntityBuilder struct {
	world          *World
	id             EntityID
	componentCount int
}

// WithComponent attaches value to the entity under construction and
// returns the builder.
func WithComponent[T any](b *EntityBuilder, value T) *EntityBuilder {
	AddComponent(b.world.Storage, b.id, value)
	b.componentCount++
	return b
}

// Build finalizes the entity and returns its id.
func (b *EntityBuilder) Build() (EntityID, error) {
	if b.componentCount == 0 {
		return 0, EmptyEntityError{ID: b.id}
	}
	return b.id, nil
}
