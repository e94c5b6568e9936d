package granary

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/TheBitDrifter/mask"
)

// Storage owns every archetype, the reverse index from component type
// to the archetypes containing it, and the index locating each
// entity's row. All entity and component mutation flows through it.
//
// Storage is not safe for concurrent use. Mutating operations may
// restructure several archetypes and need exclusive access for their
// duration; queries may share access with each other but must not be
// interleaved with mutations.
type Storage struct {
	schema      *schema
	archetypes  map[archetypeID]*archetype
	typeIndex   map[reflect.Type][]archetypeID
	entityIndex map[EntityID]entityRecord
	nextID      archetypeID
	log         Logger
}

func newStorage() *Storage {
	return &Storage{
		schema:      newSchema(),
		archetypes:  make(map[archetypeID]*archetype),
		typeIndex:   make(map[reflect.Type][]archetypeID),
		entityIndex: make(map[EntityID]entityRecord),
		log:         Config.logger(),
	}
}

// AddComponent attaches value to the entity, migrating it to the
// archetype matching its widened type set and creating that archetype
// if it does not exist yet. Attaching a component type the entity
// already has is a silent no-op: the first write wins.
func AddComponent[T any](s *Storage, entity EntityID, value T) {
	t := reflect.TypeFor[T]()
	bit := s.schema.register(t)

	record, known := s.entityIndex[entity]
	if !known {
		if existing := s.findArchetype(oneBit(bit), t); existing != nil {
			pushColumn(existing, value)
			existing.rows++
			s.entityIndex[entity] = entityRecord{archetypeID: existing.id, row: existing.rows - 1}
			return
		}
		created := newSingleArchetype(s.nextID, bit, value)
		s.registerArchetype(created)
		s.entityIndex[entity] = entityRecord{archetypeID: created.id, row: 0}
		return
	}

	current := s.archetypeOf(record)
	if current.mask.ContainsAll(oneBit(bit)) {
		return
	}

	wanted := current.mask
	wanted.Mark(bit)

	target := s.findArchetype(wanted, t)
	if target == nil {
		target = deriveByAdding(current, s.nextID, bit, t, newColumn[T]())
		s.registerArchetype(target)
	}

	s.moveEntity(entity, record, current, target)
	pushColumn(target, value)
	target.rows++
	s.entityIndex[entity] = entityRecord{archetypeID: target.id, row: target.rows - 1}
}

// RemoveComponent detaches the component type T from the entity,
// migrating it to the archetype matching its narrowed type set.
// Detaching a component the entity does not have is a silent no-op.
//
// Detaching never deletes an archetype that becomes empty; only
// whole-entity removal cleans archetypes up. Archetype count is
// therefore non-decreasing under detach-heavy workloads. Detaching an
// entity's last component leaves it in a zero-column archetype that no
// type-indexed query can reach.
func RemoveComponent[T any](s *Storage, entity EntityID) {
	t := reflect.TypeFor[T]()
	record, known := s.entityIndex[entity]
	if !known {
		return
	}
	bit, registered := s.schema.lookup(t)
	if !registered {
		return
	}
	current := s.archetypeOf(record)
	if !current.mask.ContainsAll(oneBit(bit)) {
		return
	}

	wanted := current.mask
	wanted.Unmark(bit)

	var anchor reflect.Type
	for _, remaining := range current.types {
		if remaining != t {
			anchor = remaining
			break
		}
	}

	var target *archetype
	if anchor != nil {
		target = s.findArchetype(wanted, anchor)
	}
	if target == nil {
		target = deriveByRemoving(current, s.nextID, bit)
		s.registerArchetype(target)
	}

	s.moveEntity(entity, record, current, target)

	// The merge-join only transfers columns present in both archetypes,
	// so the detached value is still sitting in the source column; drop
	// it to keep the source's columns in lock-step.
	current.columnFor(t).SwapRemove(record.row)

	target.rows++
	s.entityIndex[entity] = entityRecord{archetypeID: target.id, row: target.rows - 1}
}

// RemoveEntity deletes the entity and all of its component values.
// Unknown entities are ignored. The entity's archetype is deleted when
// it held no other entity, and removing the last live entity resets
// the storage, dropping archetypes left empty by earlier migrations.
func (s *Storage) RemoveEntity(entity EntityID) {
	record, known := s.entityIndex[entity]
	if !known {
		return
	}
	delete(s.entityIndex, entity)
	arch := s.archetypeOf(record)

	s.log.LogEntityRemoved(entity, uint32(arch.id))

	if arch.rows == 1 {
		s.removeArchetype(arch)
		if len(s.entityIndex) == 0 {
			s.clear()
		}
		return
	}

	for _, column := range arch.columns {
		column.SwapRemove(record.row)
	}
	arch.rows--
	if record.row < arch.rows {
		s.fixMovedRow(arch.id, arch.rows, record.row)
	}
}

// HasComponent reports whether the entity currently has a component of
// type T.
func HasComponent[T any](s *Storage, entity EntityID) bool {
	record, known := s.entityIndex[entity]
	if !known {
		return false
	}
	bit, registered := s.schema.lookup(reflect.TypeFor[T]())
	if !registered {
		return false
	}
	return s.archetypeOf(record).mask.ContainsAll(oneBit(bit))
}

// ArchetypeCount returns the number of live archetypes.
func (s *Storage) ArchetypeCount() int {
	return len(s.archetypes)
}

// EntityCount returns the number of live entities.
func (s *Storage) EntityCount() int {
	return len(s.entityIndex)
}

// findArchetype looks for an archetype whose component-type set
// matches wanted exactly, scanning only the candidates indexed under
// the anchor type. Mask equality is exact-set equality because every
// type owns one schema bit.
func (s *Storage) findArchetype(wanted mask.Mask, anchor reflect.Type) *archetype {
	for _, id := range s.typeIndex[anchor] {
		candidate := s.mustArchetype(id)
		if candidate.mask == wanted {
			return candidate
		}
	}
	return nil
}

func (s *Storage) registerArchetype(a *archetype) {
	for _, t := range a.types {
		s.typeIndex[t] = append(s.typeIndex[t], a.id)
	}
	s.archetypes[a.id] = a
	s.nextID++
	s.log.LogArchetypeCreated(uint32(a.id), a.types)
}

func (s *Storage) removeArchetype(a *archetype) {
	delete(s.archetypes, a.id)
	for _, t := range a.types {
		ids := slices.DeleteFunc(s.typeIndex[t], func(id archetypeID) bool {
			return id == a.id
		})
		if len(ids) == 0 {
			delete(s.typeIndex, t)
		} else {
			s.typeIndex[t] = ids
		}
	}
	s.log.LogArchetypeRemoved(uint32(a.id))
}

func (s *Storage) clear() {
	for id := range s.archetypes {
		s.log.LogArchetypeRemoved(uint32(id))
	}
	s.archetypes = make(map[archetypeID]*archetype)
	s.typeIndex = make(map[reflect.Type][]archetypeID)
}

// moveEntity migrates the entity's row out of source into target and
// repairs the index entry of whichever entity the swap-remove moved
// into the vacated row.
func (s *Storage) moveEntity(entity EntityID, record entityRecord, source, target *archetype) {
	alignAndMigrate(source, target, record.row)
	source.rows--
	if record.row < source.rows {
		s.fixMovedRow(source.id, source.rows, record.row)
	}
	s.log.LogEntityMigrated(entity, uint32(source.id), uint32(target.id))
}

func (s *Storage) fixMovedRow(id archetypeID, from, to int) {
	for entity, record := range s.entityIndex {
		if record.archetypeID == id && record.row == from {
			record.row = to
			s.entityIndex[entity] = record
			return
		}
	}
	panic(fmt.Sprintf("granary: no index entry found for relocated row %d of archetype %d", from, id))
}

func (s *Storage) archetypeOf(record entityRecord) *archetype {
	arch, ok := s.archetypes[record.archetypeID]
	if !ok {
		panic(fmt.Sprintf("granary: entity index points at missing archetype %d", record.archetypeID))
	}
	return arch
}

func (s *Storage) mustArchetype(id archetypeID) *archetype {
	arch, ok := s.archetypes[id]
	if !ok {
		panic(fmt.Sprintf("granary: type index references missing archetype %d", id))
	}
	return arch
}
