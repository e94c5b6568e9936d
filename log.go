package granary

import (
	"reflect"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog with helpers for storage lifecycle events.
// Archetype churn is logged at debug, per-entity movement at trace.
type Logger struct {
	*zerolog.Logger
}

func (_ Logger) loadTypesIntoArrayLogger(types []reflect.Type, arrayLogger *zerolog.Array) *zerolog.Array {
	for _, t := range types {
		arrayLogger = arrayLogger.Str(t.String())
	}
	return arrayLogger
}

// LogArchetypeCreated logs a freshly registered archetype and its
// component-type set.
func (l Logger) LogArchetypeCreated(id uint32, types []reflect.Type) {
	event := l.Debug()
	event.Uint32("archetype_id", id)
	event.Array("component_types", l.loadTypesIntoArrayLogger(types, zerolog.Arr()))
	event.Msg("archetype created")
}

// LogArchetypeRemoved logs the deletion of an archetype.
func (l Logger) LogArchetypeRemoved(id uint32) {
	l.Debug().Uint32("archetype_id", id).Msg("archetype removed")
}

// LogEntityMigrated logs an entity's move between archetypes.
func (l Logger) LogEntityMigrated(entity EntityID, from, to uint32) {
	l.Trace().
		Int("entity_id", int(entity)).
		Uint32("from_archetype", from).
		Uint32("to_archetype", to).
		Msg("entity migrated")
}

// LogEntityRemoved logs an entity's deletion.
func (l Logger) LogEntityRemoved(entity EntityID, archetype uint32) {
	l.Trace().
		Int("entity_id", int(entity)).
		Uint32("archetype_id", archetype).
		Msg("entity removed")
}

// LogSystemRegistered logs a system registration on a world.
func (l Logger) LogSystemRegistered(name string) {
	l.Debug().Str("system", name).Msg("system registered")
}
