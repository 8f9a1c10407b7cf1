// Package validate audits a world for cross-reference integrity before
// anything is written to disk. The contract is zero invalid output: a
// world that passes here can be loaded by the game engine without a
// single dangling reference.
package validate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cory-johannsen/worldgen/internal/world"
)

// Result collects the findings of one audit pass. Errors block the
// write; warnings are reported and tolerated.
type Result struct {
	Errors   []string
	Warnings []string
}

// Valid reports whether the audit found no errors.
func (r *Result) Valid() bool {
	return len(r.Errors) == 0
}

func (r *Result) addError(format string, args ...any) {
	r.Errors = append(r.Errors, "FAIL: "+fmt.Sprintf(format, args...))
}

func (r *Result) addWarning(format string, args ...any) {
	r.Warnings = append(r.Warnings, "WARN: "+fmt.Sprintf(format, args...))
}

// Summary renders a one-line verdict.
func (r *Result) Summary() string {
	if r.Valid() {
		return fmt.Sprintf("ALL CLEAN (%d warnings)", len(r.Warnings))
	}
	return fmt.Sprintf("%d ERRORS  %d warnings", len(r.Errors), len(r.Warnings))
}

// Engine runs the full audit. It holds no state between runs.
type Engine struct{}

// NewEngine returns a validation Engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Validate runs every check against w and returns the combined result.
//
// Postcondition: A returned Result with Valid() true guarantees that all
// room exits resolve, exactly one start room exists and reaches every
// other room, every object location and character reference resolves,
// every transformation reference resolves, the combat respawn room
// exists, the image config keeps host and port separate under an
// SD-prefixed section, no serialized value carries a lone reserved
// character, and no id is reused across collections.
func (e *Engine) Validate(w *world.World) *Result {
	result := &Result{}
	roomIDs := w.RoomIDs()
	objectIDs := w.ObjectIDs()

	e.checkRoomExits(w, roomIDs, result)
	starts := e.checkStartRoom(w, result)
	e.checkReachability(w, starts, result)
	e.checkRoomText(w, result)
	e.checkObjectLocations(w, roomIDs, objectIDs, result)
	e.checkObjectText(w, result)
	e.checkCharacterSpawns(w, roomIDs, result)
	e.checkCharacterLoot(w, objectIDs, result)
	e.checkCharacterNames(w, result)
	e.checkTransformations(w, roomIDs, objectIDs, result)
	e.checkCombat(w, roomIDs, result)
	e.checkImageSections(w, result)
	e.checkReservedCharacters(w, result)
	e.checkDuplicateIDs(w, result)

	return result
}

func (e *Engine) checkRoomExits(w *world.World, roomIDs map[string]struct{}, result *Result) {
	for _, rid := range w.SortedRoomIDs() {
		room := w.Rooms[rid]
		for _, dir := range world.EngineDirections {
			target, ok := room.Exits[dir]
			if !ok {
				continue
			}
			if _, exists := roomIDs[target]; !exists {
				result.addError("[rooms][%s] exit %q->%q MISSING", rid, dir, target)
			}
		}
	}
}

func (e *Engine) checkStartRoom(w *world.World, result *Result) []string {
	var starts []string
	for _, rid := range w.SortedRoomIDs() {
		if w.Rooms[rid].Start {
			starts = append(starts, rid)
		}
	}
	switch {
	case len(starts) == 0:
		result.addError("No start room defined")
	case len(starts) > 1:
		result.addError("Multiple start rooms: %s", strings.Join(starts, ", "))
	}
	return starts
}

func (e *Engine) checkReachability(w *world.World, starts []string, result *Result) {
	if len(starts) == 0 || len(w.Rooms) <= 1 {
		return
	}
	reachable := make(map[string]bool, len(w.Rooms))
	queue := []string{starts[0]}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if reachable[current] {
			continue
		}
		reachable[current] = true
		room, ok := w.Rooms[current]
		if !ok {
			continue
		}
		for _, target := range room.Exits {
			if _, exists := w.Rooms[target]; exists && !reachable[target] {
				queue = append(queue, target)
			}
		}
	}
	for _, rid := range w.SortedRoomIDs() {
		if !reachable[rid] {
			result.addError("[rooms][%s] UNREACHABLE from start", rid)
		}
	}
}

func (e *Engine) checkRoomText(w *world.World, result *Result) {
	for _, rid := range w.SortedRoomIDs() {
		room := w.Rooms[rid]
		if strings.TrimSpace(room.Name) == "" {
			result.addError("[rooms][%s] missing name", rid)
		}
		if strings.TrimSpace(room.Description) == "" {
			result.addError("[rooms][%s] missing description", rid)
		}
	}
}

func (e *Engine) checkObjectLocations(w *world.World, roomIDs, objectIDs map[string]struct{}, result *Result) {
	for _, oid := range w.SortedObjectIDs() {
		obj := w.Objects[oid]
		loc := obj.Location
		if loc == "" || loc == world.LocationNone {
			continue
		}
		_, inRooms := roomIDs[loc]
		_, inObjects := objectIDs[loc]
		switch {
		case !inRooms && !inObjects:
			result.addError("[objects][%s] location=%q MISSING", oid, loc)
		case inObjects && !w.Objects[loc].Container:
			result.addError("[objects][%s] location %q not a container", oid, loc)
		}
	}
}

func (e *Engine) checkObjectText(w *world.World, result *Result) {
	for _, oid := range w.SortedObjectIDs() {
		obj := w.Objects[oid]
		if strings.TrimSpace(obj.Name) == "" {
			result.addError("[objects][%s] missing name", oid)
		}
		if strings.TrimSpace(obj.Description) == "" {
			result.addError("[objects][%s] missing description", oid)
		}
	}
}

func (e *Engine) checkCharacterSpawns(w *world.World, roomIDs map[string]struct{}, result *Result) {
	for _, cid := range w.SortedCharacterIDs() {
		c := w.Characters[cid]
		for _, r := range c.SpawnRooms {
			if _, ok := roomIDs[r]; !ok {
				result.addError("[sprites][%s] spawn_room %q MISSING", cid, r)
			}
		}
		if len(c.SpawnRooms) == 0 {
			result.addWarning("[sprites][%s] has no spawn_rooms", cid)
		}
	}
}

func (e *Engine) checkCharacterLoot(w *world.World, objectIDs map[string]struct{}, result *Result) {
	for _, cid := range w.SortedCharacterIDs() {
		c := w.Characters[cid]
		if c.LootOnDeath == "" {
			continue
		}
		if _, ok := objectIDs[c.LootOnDeath]; !ok {
			result.addError("[sprites][%s] loot_on_death=%q MISSING", cid, c.LootOnDeath)
		}
	}
}

func (e *Engine) checkCharacterNames(w *world.World, result *Result) {
	for _, cid := range w.SortedCharacterIDs() {
		if strings.TrimSpace(w.Characters[cid].Name) == "" {
			result.addError("[sprites][%s] missing name", cid)
		}
	}
}

func (e *Engine) checkTransformations(w *world.World, roomIDs, objectIDs map[string]struct{}, result *Result) {
	for _, tid := range w.SortedTransformationIDs() {
		t := w.Transformations[tid]
		if _, ok := objectIDs[t.ObjectID]; !ok {
			result.addError("[transforms][%s] object_id=%q MISSING", tid, t.ObjectID)
		}
		if t.NewObjectID != "" {
			if _, ok := objectIDs[t.NewObjectID]; !ok {
				result.addError("[transforms][%s] new_object_id=%q MISSING", tid, t.NewObjectID)
			}
		}
		if t.RequiresObject != "" {
			if _, ok := objectIDs[t.RequiresObject]; !ok {
				result.addError("[transforms][%s] requires_object=%q MISSING", tid, t.RequiresObject)
			}
		}
		if t.RequiresObject2 != "" {
			if _, ok := objectIDs[t.RequiresObject2]; !ok {
				result.addError("[transforms][%s] requires_object_2=%q MISSING", tid, t.RequiresObject2)
			}
		}
		if t.NewLocation != "" {
			if _, ok := roomIDs[t.NewLocation]; !ok {
				result.addError("[transforms][%s] new_location=%q MISSING", tid, t.NewLocation)
			}
		}
	}
}

func (e *Engine) checkCombat(w *world.World, roomIDs map[string]struct{}, result *Result) {
	respawn := w.Combat.RespawnRoom
	if respawn == "" {
		return
	}
	if _, ok := roomIDs[respawn]; !ok {
		result.addError("[combat] respawn_location=%q MISSING", respawn)
	}
}

func (e *Engine) checkImageSections(w *world.World, result *Result) {
	for _, ns := range w.ImageGen.Sections() {
		if ns.Name == "settings" || ns.Name == "prompt_style" {
			continue
		}
		if !strings.HasPrefix(strings.ToUpper(ns.Name), "SD") {
			result.addError("[sd] section [%s] must start with 'SD'", ns.Name)
		}
		if ns.Section.Has("url") {
			result.addError("[sd][%s] must NOT use combined 'url=' key", ns.Name)
		}
		if !ns.Section.Has("host") {
			result.addError("[sd][%s] missing 'host' key", ns.Name)
		}
		if !ns.Section.Has("port") {
			result.addError("[sd][%s] missing 'port' key", ns.Name)
		}
	}
}

// HasLoneReserved reports whether s contains a '%' that is not part of
// an escaped '%%' pair, scanning left to right the way an INI
// interpolating reader consumes escapes.
func HasLoneReserved(s string) bool {
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '%' {
			continue
		}
		if i+1 < len(runes) && runes[i+1] == '%' {
			i++
			continue
		}
		return true
	}
	return false
}

func (e *Engine) checkReservedCharacters(w *world.World, result *Result) {
	check := func(source, section string, s *world.Section) {
		for _, key := range s.Keys() {
			if HasLoneReserved(s.Get(key)) {
				result.addError("[%s][%s].%s has bare '%%'", source, section, key)
			}
		}
	}
	for _, rid := range w.SortedRoomIDs() {
		check("rooms", rid, w.Rooms[rid].Section())
	}
	for _, oid := range w.SortedObjectIDs() {
		check("objects", oid, w.Objects[oid].Section())
	}
	for _, cid := range w.SortedCharacterIDs() {
		check("sprites", cid, w.Characters[cid].Section())
	}
	for _, tid := range w.SortedTransformationIDs() {
		check("transforms", tid, w.Transformations[tid].Section())
	}
}

func (e *Engine) checkDuplicateIDs(w *world.World, result *Result) {
	all := make([]string, 0, len(w.Rooms)+len(w.Objects)+len(w.Characters)+len(w.Transformations))
	all = append(all, w.SortedRoomIDs()...)
	all = append(all, w.SortedObjectIDs()...)
	all = append(all, w.SortedCharacterIDs()...)
	all = append(all, w.SortedTransformationIDs()...)

	sort.Strings(all)
	for i := 1; i < len(all); i++ {
		if all[i] == all[i-1] && (i == 1 || all[i] != all[i-2]) {
			result.addError("Duplicate section ID %q across files", all[i])
		}
	}
}
