package world

import (
	"fmt"
	"sort"
)

// World is the aggregate root: the complete record set compiled for one
// request. All entities are constructed once per compilation; nothing
// mutates after validation except the bounded auto-repair pass, which
// operates on the serialized form.
type World struct {
	// Name is the requested world name.
	Name string
	// Theme is the classified theme tag.
	Theme ThemeTag
	// Rooms, Objects, Characters, and Transformations are the four
	// identifier-keyed record collections.
	Rooms           map[string]*Room
	Objects         map[string]*GameObject
	Characters      map[string]*Character
	Transformations map[string]*Transformation
	// Combat and ImageGen are the two singleton configuration records.
	Combat   CombatConfig
	ImageGen ImageGenConfig
	// Applied is the ordered list of subsystem tags merged into this world.
	Applied []SubsystemTag
}

// New returns an empty World for the given name and theme.
func New(name string, theme ThemeTag) *World {
	return &World{
		Name:            name,
		Theme:           theme,
		Rooms:           make(map[string]*Room),
		Objects:         make(map[string]*GameObject),
		Characters:      make(map[string]*Character),
		Transformations: make(map[string]*Transformation),
		Combat:          DefaultCombatConfig(),
		ImageGen:        DefaultImageGenConfig(),
	}
}

// RoomIDs returns the derived read-only room id set view.
func (w *World) RoomIDs() map[string]struct{} {
	ids := make(map[string]struct{}, len(w.Rooms))
	for id := range w.Rooms {
		ids[id] = struct{}{}
	}
	return ids
}

// ObjectIDs returns the derived read-only object id set view.
func (w *World) ObjectIDs() map[string]struct{} {
	ids := make(map[string]struct{}, len(w.Objects))
	for id := range w.Objects {
		ids[id] = struct{}{}
	}
	return ids
}

// CharacterIDs returns the derived read-only character id set view.
func (w *World) CharacterIDs() map[string]struct{} {
	ids := make(map[string]struct{}, len(w.Characters))
	for id := range w.Characters {
		ids[id] = struct{}{}
	}
	return ids
}

// StartRoom returns the id of the room flagged as start.
//
// Postcondition: Returns (id, true) if exactly one start room candidate is
// found by iteration order of flagged rooms, or ("", false) if none is
// flagged. Multiplicity is the validator's concern, not this accessor's.
func (w *World) StartRoom() (string, bool) {
	var found []string
	for id, r := range w.Rooms {
		if r.Start {
			found = append(found, id)
		}
	}
	if len(found) == 0 {
		return "", false
	}
	sort.Strings(found)
	return found[0], true
}

// SortedRoomIDs returns all room ids in lexicographic order. Serialization
// and repair both need a deterministic traversal.
func (w *World) SortedRoomIDs() []string {
	ids := make([]string, 0, len(w.Rooms))
	for id := range w.Rooms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SortedObjectIDs returns all object ids in lexicographic order.
func (w *World) SortedObjectIDs() []string {
	ids := make([]string, 0, len(w.Objects))
	for id := range w.Objects {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SortedCharacterIDs returns all character ids in lexicographic order.
func (w *World) SortedCharacterIDs() []string {
	ids := make([]string, 0, len(w.Characters))
	for id := range w.Characters {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SortedTransformationIDs returns all transformation ids in lexicographic order.
func (w *World) SortedTransformationIDs() []string {
	ids := make([]string, 0, len(w.Transformations))
	for id := range w.Transformations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Merge folds a subsystem package's records into the world and appends its
// tag to the applied list.
//
// Precondition: The records must be internally cross-referenced (closed)
// with respect to this world; the validator re-checks regardless.
// Postcondition: Returns an error if tag was already applied or any record
// id collides with an existing one; on error the world is unchanged.
func (w *World) Merge(tag SubsystemTag, objects map[string]*GameObject, transformations map[string]*Transformation) error {
	for _, applied := range w.Applied {
		if applied == tag {
			return fmt.Errorf("subsystem %q already applied", tag)
		}
	}
	for id := range objects {
		if _, exists := w.Objects[id]; exists {
			return fmt.Errorf("subsystem %q: object id %q already present", tag, id)
		}
	}
	for id := range transformations {
		if _, exists := w.Transformations[id]; exists {
			return fmt.Errorf("subsystem %q: transformation id %q already present", tag, id)
		}
	}
	for id, o := range objects {
		w.Objects[id] = o
	}
	for id, t := range transformations {
		w.Transformations[id] = t
	}
	w.Applied = append(w.Applied, tag)
	return nil
}

// Summary returns a one-line census of the world's record collections.
func (w *World) Summary() string {
	return fmt.Sprintf("rooms:%d objects:%d characters:%d transformations:%d",
		len(w.Rooms), len(w.Objects), len(w.Characters), len(w.Transformations))
}
