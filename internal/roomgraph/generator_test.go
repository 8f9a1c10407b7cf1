package roomgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/worldgen/internal/rng"
	"github.com/cory-johannsen/worldgen/internal/theme"
	"github.com/cory-johannsen/worldgen/internal/world"
)

func reachableRooms(rooms map[string]*world.Room, start string) map[string]bool {
	visited := make(map[string]bool)
	queue := []string{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if visited[current] {
			continue
		}
		visited[current] = true
		for _, target := range rooms[current].Exits {
			if !visited[target] {
				queue = append(queue, target)
			}
		}
	}
	return visited
}

func TestGenerate_BasicShape(t *testing.T) {
	g := New(rng.NewSeededSource(7))
	defaults := theme.GetDefaults(world.ThemeFantasy)
	rooms := g.Generate(10, defaults, "Test Realm", nil)

	require.Len(t, rooms, 10, "generator must produce exactly the requested room count")

	starts := 0
	var startID string
	for id, room := range rooms {
		assert.Equal(t, id, room.ID, "map key must mirror the room id")
		assert.NotEmpty(t, room.Name)
		assert.NotEmpty(t, room.Description)
		if room.Start {
			starts++
			startID = id
		}
		for dir, target := range room.Exits {
			assert.True(t, dir.IsEngine(), "exit direction %q is not an engine direction", dir)
			_, ok := rooms[target]
			assert.True(t, ok, "exit %s from %s targets missing room %s", dir, id, target)
		}
	}
	require.Equal(t, 1, starts, "exactly one room must be flagged as start")
	assert.Equal(t, "Entrance", rooms[startID].Name, "the start room is always the Entrance")

	visited := reachableRooms(rooms, startID)
	assert.Len(t, visited, len(rooms), "every room must be reachable from the entrance")
}

func TestGenerate_ClampsRoomCount(t *testing.T) {
	g := New(rng.NewSeededSource(1))
	defaults := theme.GetDefaults(world.ThemeOriginal)

	assert.Len(t, g.Generate(1, defaults, "Tiny", nil), MinRooms, "below-minimum requests clamp up")

	g = New(rng.NewSeededSource(1))
	assert.Len(t, g.Generate(500, defaults, "Huge", nil), MaxRooms, "above-maximum requests clamp down")
}

func TestGenerate_ExitsAreBidirectional(t *testing.T) {
	g := New(rng.NewSeededSource(99))
	defaults := theme.GetDefaults(world.ThemeSciFi)
	rooms := g.Generate(20, defaults, "Orbital", nil)

	for id, room := range rooms {
		for dir, target := range room.Exits {
			back, ok := rooms[target].Exits[dir.Opposite()]
			require.True(t, ok, "room %s has no return exit for %s -> %s", target, id, dir)
			assert.Equal(t, id, back, "return exit from %s must point back to %s", target, id)
		}
	}
}

func TestGenerate_CustomNamesOverlay(t *testing.T) {
	g := New(rng.NewSeededSource(5))
	defaults := theme.GetDefaults(world.ThemeHorror)
	rooms := g.Generate(5, defaults, "Manor", []string{"Lobby", "Throne Room", "Crypt"})

	names := make(map[string]bool, len(rooms))
	for _, room := range rooms {
		names[room.Name] = true
	}
	assert.True(t, names["Throne Room"], "second custom name must survive the overlay")
	assert.True(t, names["Crypt"], "third custom name must survive the overlay")
	assert.False(t, names["Lobby"], "the first room is always renamed Entrance")
	assert.True(t, names["Entrance"])
}

func TestGenerate_DuplicateNamesGetSuffixes(t *testing.T) {
	g := New(rng.NewSeededSource(3))
	defaults := theme.GetDefaults(world.ThemeDomestic)
	custom := []string{"", "Closet", "Closet", "Closet"}
	rooms := g.Generate(4, defaults, "House", custom)

	names := make(map[string]bool, len(rooms))
	for _, room := range rooms {
		require.False(t, names[room.Name], "room names must be unique, got duplicate %q", room.Name)
		names[room.Name] = true
	}
	assert.True(t, names["Closet"])
	assert.True(t, names["Closet 2"])
	assert.True(t, names["Closet 3"])
}

func TestSlugID(t *testing.T) {
	assert.Equal(t, "entrance", SlugID("Entrance"))
	assert.Equal(t, "captains_quarters", SlugID("Captain's Quarters"))
	assert.Equal(t, "closet_2", SlugID("Closet 2"))
	assert.Equal(t, "sub_level_b", SlugID("Sub-Level B"))
}

func TestEscapeReserved(t *testing.T) {
	assert.Equal(t, "50%% off", EscapeReserved("50% off"))
	assert.Equal(t, "already %% doubled", EscapeReserved("already %% doubled"))
	assert.Equal(t, "%%%%", EscapeReserved("%%%"), "odd runs escape the trailing lone character")
	assert.Equal(t, "no reserved here", EscapeReserved("no reserved here"))
}

func TestGenerate_AlwaysConnected(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.Int64().Draw(t, "seed")
		count := rapid.IntRange(MinRooms, MaxRooms).Draw(t, "count")
		tag := rapid.SampledFrom(theme.Tags()).Draw(t, "theme")

		g := New(rng.NewSeededSource(seed))
		rooms := g.Generate(count, theme.GetDefaults(tag), "Property World", nil)

		require.Len(t, rooms, count)
		start, ok := "", false
		for id, room := range rooms {
			if room.Start {
				start, ok = id, true
			}
			for dir, target := range room.Exits {
				if !dir.IsEngine() {
					t.Fatalf("non-engine direction %q emitted", dir)
				}
				if _, exists := rooms[target]; !exists {
					t.Fatalf("dangling exit %s -> %s", id, target)
				}
			}
		}
		require.True(t, ok, "a start room must exist")
		if got := len(reachableRooms(rooms, start)); got != count {
			t.Fatalf("only %d of %d rooms reachable from %s", got, count, start)
		}
	})
}

func TestGenerate_DeterministicForSeed(t *testing.T) {
	defaults := theme.GetDefaults(world.ThemeAdventure)

	a := New(rng.NewSeededSource(42)).Generate(15, defaults, "Jungle", nil)
	b := New(rng.NewSeededSource(42)).Generate(15, defaults, "Jungle", nil)

	require.Equal(t, len(a), len(b))
	for id, room := range a {
		other, ok := b[id]
		require.True(t, ok, "room %s missing from second run", id)
		assert.Equal(t, room.Name, other.Name)
		assert.Equal(t, room.Description, other.Description)
		assert.Equal(t, room.Exits, other.Exits)
		assert.Equal(t, room.Start, other.Start)
	}
}

func TestFreeDirection_UsesMirrorOrientation(t *testing.T) {
	g := New(rng.NewSeededSource(5))

	// Node 0 has every outgoing slot of the forward orientations taken,
	// node 1 every reverse slot: only mirrored pairings remain open.
	adjacency := map[int][]edge{
		0: {
			{to: 2, dir: world.North, back: world.South},
			{to: 3, dir: world.East, back: world.West},
			{to: 4, dir: world.Up, back: world.Down},
		},
		1: {
			{to: 5, dir: world.South, back: world.North},
			{to: 6, dir: world.West, back: world.East},
			{to: 7, dir: world.Down, back: world.Up},
		},
	}

	dir, back, ok := g.freeDirection(adjacency, 0, 1)
	require.True(t, ok, "a mirrored pairing is open and must be found")
	assert.Equal(t, dir.Opposite(), back)
	assert.Contains(t, []world.Direction{world.South, world.West, world.Down}, dir)
}
