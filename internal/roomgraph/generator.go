// Package roomgraph builds guaranteed-connected room graphs.
//
// Direction contract: the generator only ever emits the six labels the
// game engine reads (north/south, east/west, up/down). Diagonal or named
// labels would be silently discarded by the engine, stranding players in
// rooms with no way back, so they are unrepresentable here by construction.
package roomgraph

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/worldgen/internal/rng"
	"github.com/cory-johannsen/worldgen/internal/theme"
	"github.com/cory-johannsen/worldgen/internal/world"
)

const (
	// MinRooms and MaxRooms bound the requested room count; requests
	// outside the range are clamped, never rejected.
	MinRooms = 3
	MaxRooms = 100

	// bonusEdgeRatio controls how many extra non-tree edges are attempted,
	// as a fraction of the room count. Extra edges create the loops and
	// shortcuts that make exploration interesting.
	bonusEdgeRatio = 0.3
)

// genericNames pads the theme prefix list when the requested room count
// exceeds the theme's vocabulary.
var genericNames = []string{
	"Chamber", "Passage", "Hall", "Area", "Zone",
	"Room", "Space", "Level", "Section", "Sector",
}

// edge records one undirected connection in index space: the neighbor and
// the direction label leaving each endpoint.
type edge struct {
	to       int
	dir      world.Direction // label from this node toward to
	back     world.Direction // label from to back toward this node
}

// Generator builds connected room graphs from theme defaults and a target
// size. Every random choice is drawn from the provided Source.
type Generator struct {
	src rng.Source
}

// New returns a Generator drawing randomness from src.
//
// Precondition: src must be non-nil.
func New(src rng.Source) *Generator {
	return &Generator{src: src}
}

// Generate builds roomCount rooms wired into a fully connected graph.
//
// Precondition: defaults must be a complete bundle.
// Postcondition: The returned map has exactly clamp(roomCount) rooms,
// every exit targets an existing room, exactly one room (the "Entrance")
// is flagged as start, and every room is reachable from it, for every
// possible randomness outcome.
func (g *Generator) Generate(roomCount int, defaults theme.Defaults, worldName string, customNames []string) map[string]*world.Room {
	if roomCount < MinRooms {
		roomCount = MinRooms
	}
	if roomCount > MaxRooms {
		roomCount = MaxRooms
	}

	names := g.generateNames(roomCount, defaults, customNames)
	ids := dedupeIDs(names)

	adjacency := g.buildSpanningTree(roomCount)
	g.addBonusEdges(adjacency, roomCount)
	g.forceConnect(adjacency, roomCount)

	rooms := make(map[string]*world.Room, roomCount)
	for i := 0; i < roomCount; i++ {
		exits := make(map[world.Direction]string)
		for _, e := range adjacency[i] {
			exits[e.dir] = ids[e.to]
		}
		rooms[ids[i]] = &world.Room{
			ID:          ids[i],
			Name:        names[i],
			Description: EscapeReserved(g.describe(names[i], defaults, worldName, exits)),
			Exits:       exits,
			Properties:  make(map[string]string),
			Start:       i == 0,
		}
	}
	return rooms
}

// generateNames produces roomCount display names: shuffled theme prefixes
// padded with generic words, caller names overlaid positionally, room 0
// forced to "Entrance", and duplicates suffixed with a counter.
func (g *Generator) generateNames(count int, defaults theme.Defaults, customNames []string) []string {
	pool := make([]string, len(defaults.RoomPrefixes))
	copy(pool, defaults.RoomPrefixes)
	for len(pool) < count {
		pool = append(pool, genericNames...)
	}
	rng.Shuffle(g.src, pool)
	names := pool[:count]

	for i, name := range customNames {
		if i >= count {
			break
		}
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			names[i] = trimmed
		}
	}
	names[0] = "Entrance"

	seen := make(map[string]int)
	unique := make([]string, 0, count)
	for _, name := range names {
		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			unique = append(unique, fmt.Sprintf("%s %d", name, n+2))
		} else {
			seen[name] = 0
			unique = append(unique, name)
		}
	}
	return unique
}

// buildSpanningTree attaches each new node to a random already-connected
// node with a free direction slot. When every connected node's slots are
// full, an existing edge is rerouted through the new node, which frees a
// slot and strictly grows the connected set, so the loop always
// terminates.
func (g *Generator) buildSpanningTree(roomCount int) map[int][]edge {
	adjacency := make(map[int][]edge, roomCount)
	for i := 0; i < roomCount; i++ {
		adjacency[i] = nil
	}

	for i := 1; i < roomCount; i++ {
		candidates := make([]int, 0, i)
		for c := 0; c < i; c++ {
			candidates = append(candidates, c)
		}
		rng.Shuffle(g.src, candidates)

		attached := false
		for _, target := range candidates {
			if dir, back, ok := g.freeDirection(adjacency, i, target); ok {
				adjacency[i] = append(adjacency[i], edge{to: target, dir: dir, back: back})
				adjacency[target] = append(adjacency[target], edge{to: i, dir: back, back: dir})
				attached = true
				break
			}
		}
		if !attached {
			g.rerouteThrough(adjacency, i, candidates)
		}
	}
	return adjacency
}

// rerouteThrough detaches one edge of the most lightly connected node and
// threads it through node i, turning i into a waypoint between the two
// former endpoints.
func (g *Generator) rerouteThrough(adjacency map[int][]edge, i int, candidates []int) {
	lightest := candidates[0]
	for _, c := range candidates[1:] {
		if len(adjacency[c]) < len(adjacency[lightest]) {
			lightest = c
		}
	}
	if len(adjacency[lightest]) == 0 {
		return
	}

	old := adjacency[lightest][0]
	adjacency[lightest] = adjacency[lightest][1:]
	kept := adjacency[old.to][:0]
	for _, e := range adjacency[old.to] {
		if e.to != lightest {
			kept = append(kept, e)
		}
	}
	adjacency[old.to] = kept

	if dir, back, ok := g.freeDirection(adjacency, lightest, i); ok {
		adjacency[lightest] = append(adjacency[lightest], edge{to: i, dir: dir, back: back})
		adjacency[i] = append(adjacency[i], edge{to: lightest, dir: back, back: dir})
	}
	if dir, back, ok := g.freeDirection(adjacency, i, old.to); ok {
		adjacency[i] = append(adjacency[i], edge{to: old.to, dir: dir, back: back})
		adjacency[old.to] = append(adjacency[old.to], edge{to: i, dir: back, back: dir})
	}
}

// addBonusEdges adds up to ~bonusEdgeRatio*roomCount extra edges between
// random non-adjacent pairs with free slots, under a bounded attempt
// budget so the pass always finishes.
func (g *Generator) addBonusEdges(adjacency map[int][]edge, roomCount int) {
	want := int(float64(roomCount) * bonusEdgeRatio)
	if want < 2 {
		want = 2
	}
	added := 0
	for attempts := 0; added < want && attempts < want*20; attempts++ {
		i := g.src.Intn(roomCount)
		j := g.src.Intn(roomCount)
		if i == j || g.connected(adjacency, i, j) {
			continue
		}
		if dir, back, ok := g.freeDirection(adjacency, i, j); ok {
			adjacency[i] = append(adjacency[i], edge{to: j, dir: dir, back: back})
			adjacency[j] = append(adjacency[j], edge{to: i, dir: back, back: dir})
			added++
		}
	}
}

// forceConnect breadth-first-searches from node 0 and wires any node the
// search missed to a random reachable node with a free slot. The spanning
// tree should leave nothing unreachable; this is the belt to its braces.
func (g *Generator) forceConnect(adjacency map[int][]edge, roomCount int) {
	reachable := bfs(adjacency, roomCount)
	for idx := 0; idx < roomCount; idx++ {
		if reachable[idx] {
			continue
		}
		targets := make([]int, 0, roomCount)
		for t := 0; t < roomCount; t++ {
			if reachable[t] {
				targets = append(targets, t)
			}
		}
		rng.Shuffle(g.src, targets)
		for _, target := range targets {
			if dir, back, ok := g.freeDirection(adjacency, idx, target); ok {
				adjacency[idx] = append(adjacency[idx], edge{to: target, dir: dir, back: back})
				adjacency[target] = append(adjacency[target], edge{to: idx, dir: back, back: dir})
				reachable[idx] = true
				break
			}
		}
	}
}

// bfs returns the reachability set from node 0.
func bfs(adjacency map[int][]edge, roomCount int) []bool {
	reachable := make([]bool, roomCount)
	queue := []int{0}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if reachable[current] {
			continue
		}
		reachable[current] = true
		for _, e := range adjacency[current] {
			if !reachable[e.to] {
				queue = append(queue, e.to)
			}
		}
	}
	return reachable
}

// connected reports whether j already appears among i's edges.
func (g *Generator) connected(adjacency map[int][]edge, i, j int) bool {
	for _, e := range adjacency[i] {
		if e.to == j {
			return true
		}
	}
	return false
}

// freeDirection finds an unused direction pair between two nodes.
//
// Postcondition: On success, dir is unused at a and back is unused at b.
func (g *Generator) freeDirection(adjacency map[int][]edge, a, b int) (dir, back world.Direction, ok bool) {
	usedA := make(map[world.Direction]bool, len(adjacency[a]))
	for _, e := range adjacency[a] {
		usedA[e.dir] = true
	}
	usedB := make(map[world.Direction]bool, len(adjacency[b]))
	for _, e := range adjacency[b] {
		usedB[e.dir] = true
	}

	pairs := make([][2]world.Direction, len(world.DirectionPairs))
	copy(pairs, world.DirectionPairs)
	rng.Shuffle(g.src, pairs)
	for _, p := range pairs {
		if !usedA[p[0]] && !usedB[p[1]] {
			return p[0], p[1], true
		}
		// The mirror orientation can be open when the forward one is
		// not; skipping it would leave a reachable pairing unused.
		if !usedA[p[1]] && !usedB[p[0]] {
			return p[1], p[0], true
		}
	}
	return "", "", false
}

// describe renders a templated room description from the name, theme
// flavor words, and exit list.
func (g *Generator) describe(roomName string, defaults theme.Defaults, worldName string, exits map[world.Direction]string) string {
	exitList := "none"
	if len(exits) > 0 {
		var dirs []string
		for _, d := range world.EngineDirections {
			if _, ok := exits[d]; ok {
				dirs = append(dirs, string(d))
			}
		}
		exitList = strings.Join(dirs, ", ")
	}
	templates := []string{
		fmt.Sprintf("The %s of %s. A %s %s with an atmosphere that feels entirely in keeping with this place. Exits lead %s.",
			roomName, worldName, defaults.FlavorAdjective, defaults.FlavorNoun, exitList),
		fmt.Sprintf("You stand in the %s. Everything here speaks to the %s nature of %s. The air carries traces of what this %s has witnessed. Exits: %s.",
			roomName, defaults.FlavorAdjective, worldName, defaults.FlavorNoun, exitList),
		fmt.Sprintf("The %s. In the broader context of %s, this space has its own particular character, %s in ways that are immediately apparent. Passages lead %s.",
			roomName, worldName, defaults.FlavorAdjective, exitList),
	}
	return rng.Pick(g.src, templates)
}

// SlugID converts a display name into a stable identifier.
func SlugID(name string) string {
	s := strings.ToLower(name)
	replacer := strings.NewReplacer(
		" ", "_", "'", "", "-", "_", "/", "_",
		"(", "", ")", "", ",", "", ".", "",
	)
	return replacer.Replace(s)
}

// dedupeIDs slugs each name and disambiguates collisions with a counter
// suffix so identifiers stay unique even when names collide post-slug.
func dedupeIDs(names []string) []string {
	seen := make(map[string]int)
	ids := make([]string, 0, len(names))
	for _, name := range names {
		id := SlugID(name)
		if n, dup := seen[id]; dup {
			seen[id] = n + 1
			ids = append(ids, fmt.Sprintf("%s_%d", id, n+1))
		} else {
			seen[id] = 0
			ids = append(ids, id)
		}
	}
	return ids
}

// EscapeReserved doubles every lone '%' so the serialization format never
// sees a bare reserved character. Already-doubled runs are left alone.
func EscapeReserved(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		if runes[i] == '%' {
			if i+1 < len(runes) && runes[i+1] == '%' {
				b.WriteString("%%")
				i++
				continue
			}
			b.WriteString("%%")
			continue
		}
		b.WriteRune(runes[i])
	}
	return b.String()
}
