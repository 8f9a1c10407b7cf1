package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/worldgen/internal/world"
)

// cleanWorld builds a minimal world that passes every check.
func cleanWorld() *world.World {
	w := world.New("Clean World", world.ThemeOriginal)
	w.Rooms["entrance"] = &world.Room{
		ID: "entrance", Name: "Entrance", Description: "The way in.",
		Exits:      map[world.Direction]string{world.North: "hall"},
		Properties: map[string]string{},
		Start:      true,
	}
	w.Rooms["hall"] = &world.Room{
		ID: "hall", Name: "Hall", Description: "A long hall.",
		Exits:      map[world.Direction]string{world.South: "entrance"},
		Properties: map[string]string{},
	}
	w.Objects["lantern"] = &world.GameObject{
		ID: "lantern", Name: "lantern", Description: "A sturdy lantern.",
		Location: "entrance", Takeable: true,
	}
	w.Characters["keeper_template"] = &world.Character{
		ID: "keeper_template", Name: "Keeper (template)", Description: "The keeper.",
		Health: 50, Damage: 5, Aggression: 0.2, Behavior: "neutral_npc",
		SpawnRooms: []string{"hall"}, SpawnChance: 0.04,
		LootOnDeath: "lantern", CanPickup: true, RoleTag: world.RoleNeutral,
		Properties: map[string]string{},
	}
	w.Transformations["lantern_lit"] = &world.Transformation{
		ID: "lantern_lit", ObjectID: "lantern", State: "normal",
		TurnsRequired: 1, NewState: "lit", Message: "The lantern flares to life.",
		Properties: map[string]string{},
	}
	w.Combat.RespawnRoom = "entrance"
	return w
}

func TestValidate_CleanWorldPasses(t *testing.T) {
	result := NewEngine().Validate(cleanWorld())
	assert.True(t, result.Valid(), "clean world failed: %v", result.Errors)
	assert.Empty(t, result.Errors)
	assert.Contains(t, result.Summary(), "ALL CLEAN")
}

func TestValidate_DanglingExit(t *testing.T) {
	w := cleanWorld()
	w.Rooms["entrance"].Exits[world.East] = "nowhere"
	result := NewEngine().Validate(w)
	require.False(t, result.Valid())
	assert.Contains(t, strings.Join(result.Errors, "\n"), "nowhere")
}

func TestValidate_StartRoomCardinality(t *testing.T) {
	w := cleanWorld()
	w.Rooms["entrance"].Start = false
	result := NewEngine().Validate(w)
	require.False(t, result.Valid())
	assert.Contains(t, strings.Join(result.Errors, "\n"), "No start room")

	w = cleanWorld()
	w.Rooms["hall"].Start = true
	result = NewEngine().Validate(w)
	require.False(t, result.Valid())
	assert.Contains(t, strings.Join(result.Errors, "\n"), "Multiple start rooms")
}

func TestValidate_UnreachableRoom(t *testing.T) {
	w := cleanWorld()
	w.Rooms["cellar"] = &world.Room{
		ID: "cellar", Name: "Cellar", Description: "Sealed off.",
		Exits: map[world.Direction]string{}, Properties: map[string]string{},
	}
	result := NewEngine().Validate(w)
	require.False(t, result.Valid())
	assert.Contains(t, strings.Join(result.Errors, "\n"), "UNREACHABLE")
}

func TestValidate_ObjectInNonContainer(t *testing.T) {
	w := cleanWorld()
	w.Objects["coin"] = &world.GameObject{
		ID: "coin", Name: "coin", Description: "A coin.",
		Location: "lantern", Takeable: true,
	}
	result := NewEngine().Validate(w)
	require.False(t, result.Valid())
	assert.Contains(t, strings.Join(result.Errors, "\n"), "not a container")

	w.Objects["lantern"].Container = true
	result = NewEngine().Validate(w)
	assert.True(t, result.Valid(), "object inside a container must pass: %v", result.Errors)
}

func TestValidate_EmptySpawnListIsWarningOnly(t *testing.T) {
	w := cleanWorld()
	w.Characters["keeper_template"].SpawnRooms = nil
	result := NewEngine().Validate(w)
	assert.True(t, result.Valid(), "empty spawn list must not be fatal")
	assert.NotEmpty(t, result.Warnings)
}

func TestValidate_TransformationReferences(t *testing.T) {
	w := cleanWorld()
	w.Transformations["broken"] = &world.Transformation{
		ID: "broken", ObjectID: "ghost", State: "normal",
		TurnsRequired: 1, NewState: "done", Message: "Never.",
	}
	result := NewEngine().Validate(w)
	require.False(t, result.Valid())
	assert.Contains(t, strings.Join(result.Errors, "\n"), "ghost")
}

func TestValidate_CombatRespawnMustResolve(t *testing.T) {
	w := cleanWorld()
	w.Combat.RespawnRoom = "void"
	result := NewEngine().Validate(w)
	require.False(t, result.Valid())
	assert.Contains(t, strings.Join(result.Errors, "\n"), "respawn_location")
}

func TestValidate_BareReservedCharacter(t *testing.T) {
	w := cleanWorld()
	w.Rooms["hall"].Description = "Humidity at 90% today."
	result := NewEngine().Validate(w)
	require.False(t, result.Valid())
	assert.Contains(t, strings.Join(result.Errors, "\n"), "bare '%'")

	w.Rooms["hall"].Description = "Humidity at 90%% today."
	result = NewEngine().Validate(w)
	assert.True(t, result.Valid(), "escaped reserved characters must pass: %v", result.Errors)
}

func TestValidate_DuplicateIDAcrossCollections(t *testing.T) {
	w := cleanWorld()
	w.Objects["hall"] = &world.GameObject{
		ID: "hall", Name: "model hall", Description: "A miniature.",
		Location: "entrance", Takeable: true,
	}
	result := NewEngine().Validate(w)
	require.False(t, result.Valid())
	assert.Contains(t, strings.Join(result.Errors, "\n"), "Duplicate section ID")
}

func TestHasLoneReserved(t *testing.T) {
	assert.True(t, HasLoneReserved("90% done"))
	assert.False(t, HasLoneReserved("90%% done"))
	assert.True(t, HasLoneReserved("%%%"), "odd-length runs leave a trailing lone character")
	assert.False(t, HasLoneReserved("nothing here"))
	assert.True(t, HasLoneReserved("%"))
}

func TestHasLoneReserved_EscapedTextAlwaysPasses(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.String().Draw(t, "s")
		escaped := strings.ReplaceAll(s, "%", "%%")
		if HasLoneReserved(escaped) {
			t.Fatalf("escaping %q produced %q which still has a lone reserved character", s, escaped)
		}
	})
}
