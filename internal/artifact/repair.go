package artifact

import (
	"fmt"
	"sort"

	"github.com/cory-johannsen/worldgen/internal/world"
)

// Repair applies one bounded pass of deterministic fixes to w after a
// failed round-trip. It only ever removes or relocates existing data;
// it never invents a new id. The caller rewrites and re-verifies
// exactly once afterward; if the world is still broken it stays broken
// and the run fails.
//
// Postcondition: The returned list describes every change made, in a
// stable order. An empty list means nothing was repairable.
func Repair(w *world.World) []string {
	var actions []string
	fallback := fallbackRoom(w)

	// Dangling exits are deleted rather than redirected. An exit to a
	// room that does not exist has no correct destination to guess.
	for _, rid := range w.SortedRoomIDs() {
		room := w.Rooms[rid]
		for _, dir := range world.EngineDirections {
			target, ok := room.Exits[dir]
			if !ok {
				continue
			}
			if _, exists := w.Rooms[target]; !exists {
				delete(room.Exits, dir)
				actions = append(actions,
					fmt.Sprintf("removed exit %s->%s from room %s", dir, target, rid))
			}
		}
	}

	// Orphaned objects move to the fallback room. Losing an object's
	// intended placement beats losing the object.
	for _, oid := range w.SortedObjectIDs() {
		obj := w.Objects[oid]
		loc := obj.Location
		if loc == "" || loc == world.LocationNone {
			continue
		}
		_, inRooms := w.Rooms[loc]
		container, inObjects := w.Objects[loc]
		if inRooms || (inObjects && container.Container) {
			continue
		}
		if fallback == "" {
			continue
		}
		obj.Location = fallback
		actions = append(actions,
			fmt.Sprintf("relocated object %s from %s to %s", oid, loc, fallback))
	}

	// Spawn lists drop unresolved rooms; a character left with no spawn
	// rooms gets the fallback so it still exists somewhere.
	for _, cid := range w.SortedCharacterIDs() {
		c := w.Characters[cid]
		kept := c.SpawnRooms[:0]
		removed := 0
		for _, r := range c.SpawnRooms {
			if _, ok := w.Rooms[r]; ok {
				kept = append(kept, r)
			} else {
				removed++
			}
		}
		c.SpawnRooms = kept
		if removed > 0 {
			actions = append(actions,
				fmt.Sprintf("trimmed %d unresolved spawn rooms from %s", removed, cid))
		}
		if len(c.SpawnRooms) == 0 && fallback != "" {
			c.SpawnRooms = []string{fallback}
			actions = append(actions,
				fmt.Sprintf("assigned fallback spawn room %s to %s", fallback, cid))
		}
	}

	// Loot references to deleted objects are cleared, not re-pointed.
	for _, cid := range w.SortedCharacterIDs() {
		c := w.Characters[cid]
		if c.LootOnDeath == "" {
			continue
		}
		if _, ok := w.Objects[c.LootOnDeath]; !ok {
			actions = append(actions,
				fmt.Sprintf("cleared unresolved loot %s from %s", c.LootOnDeath, cid))
			c.LootOnDeath = ""
		}
	}

	return actions
}

// fallbackRoom picks the relocation target: the room literally named
// "entrance" when one exists, otherwise the lexicographically smallest
// room id so the choice never depends on map order.
func fallbackRoom(w *world.World) string {
	if _, ok := w.Rooms["entrance"]; ok {
		return "entrance"
	}
	ids := make([]string, 0, len(w.Rooms))
	for id := range w.Rooms {
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return ""
	}
	sort.Strings(ids)
	return ids[0]
}
