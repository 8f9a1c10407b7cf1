package compiler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/worldgen/internal/artifact"
	"github.com/cory-johannsen/worldgen/internal/world"
)

func seed(v int64) *int64 { return &v }

func TestCompile_MinimalWorld(t *testing.T) {
	c := New(zaptest.NewLogger(t))
	result := c.Compile(Request{
		WorldName:  "Plain Place",
		RoomCount:  5,
		Subsystems: []world.SubsystemTag{},
		OutputDir:  t.TempDir(),
		Seed:       seed(1),
	})

	require.True(t, result.Success, "compile failed: %v", result.ValidationErrors)
	require.NotNil(t, result.World)
	w := result.World

	assert.Len(t, w.Rooms, 5)
	assert.Len(t, w.Objects, 4, "a bare world carries exactly the four starter objects")
	assert.Empty(t, w.Characters)
	assert.Empty(t, w.Applied)

	start, ok := w.StartRoom()
	require.True(t, ok)
	assert.Equal(t, "Entrance", w.Rooms[start].Name)

	for oid, obj := range w.Objects {
		_, exists := w.Rooms[obj.Location]
		assert.True(t, exists, "starter object %s placed in unknown room %s", oid, obj.Location)
	}
}

func TestCompile_WritesSixArtifacts(t *testing.T) {
	dir := t.TempDir()
	c := New(zaptest.NewLogger(t))
	result := c.Compile(Request{
		WorldName:      "Fort Bravo Barracks",
		RoomCount:      8,
		CharacterNames: []string{"Sgt Grunt", "The General"},
		OutputDir:      dir,
		Seed:           seed(2),
	})

	require.True(t, result.Success, "compile failed: %v", result.ValidationErrors)
	assert.Equal(t, world.ThemeMilitary, result.Theme)
	require.Len(t, result.WrittenFiles, len(artifact.Files))
	for _, name := range artifact.Files {
		path := result.WrittenFiles[name]
		_, err := os.Stat(path)
		assert.NoError(t, err, "artifact %s not on disk", name)
	}
	assert.NotEmpty(t, result.RunID)
	assert.Empty(t, result.RoundTripErrors)
}

func TestCompile_NilSubsystemsUseThemeDefaults(t *testing.T) {
	c := New(zaptest.NewLogger(t))
	result := c.Compile(Request{
		WorldName: "Starship Omega Space Station",
		RoomCount: 10,
		OutputDir: t.TempDir(),
		Seed:      seed(3),
	})

	require.True(t, result.Success, "compile failed: %v", result.ValidationErrors)
	assert.Equal(t, world.ThemeSciFi, result.Theme)
	assert.NotEmpty(t, result.World.Applied, "nil subsystem list falls back to theme defaults")
	assert.Greater(t, len(result.World.Objects), 4, "subsystem packages add objects beyond the starters")
}

func TestCompile_RejectsEmptyWorldName(t *testing.T) {
	c := New(zaptest.NewLogger(t))
	result := c.Compile(Request{WorldName: "   ", OutputDir: t.TempDir()})
	require.False(t, result.Success)
	require.NotEmpty(t, result.ValidationErrors)
	assert.Contains(t, result.ValidationErrors[0], "world name")
}

func TestCompile_ClampsRoomCount(t *testing.T) {
	c := New(zaptest.NewLogger(t))
	result := c.Compile(Request{
		WorldName:  "Tiny Spot",
		RoomCount:  1,
		Subsystems: []world.SubsystemTag{},
		OutputDir:  t.TempDir(),
		Seed:       seed(4),
	})
	require.True(t, result.Success, "compile failed: %v", result.ValidationErrors)
	assert.Len(t, result.World.Rooms, 3)
}

func TestCompile_DeterministicForSeed(t *testing.T) {
	c := New(zaptest.NewLogger(t))
	req := Request{
		WorldName:      "Hogwarts Castle Grounds",
		RoomCount:      12,
		CharacterNames: []string{"Castle Guard", "Court Wizard"},
		OutputDir:      t.TempDir(),
		Seed:           seed(99),
	}
	a := c.Compile(req)
	req.OutputDir = t.TempDir()
	b := c.Compile(req)

	require.True(t, a.Success, "first compile failed: %v", a.ValidationErrors)
	require.True(t, b.Success, "second compile failed: %v", b.ValidationErrors)

	require.Equal(t, len(a.World.Rooms), len(b.World.Rooms))
	for id, room := range a.World.Rooms {
		other, ok := b.World.Rooms[id]
		require.True(t, ok, "room %s missing on replay", id)
		assert.Equal(t, room.Exits, other.Exits)
		assert.Equal(t, room.Description, other.Description)
	}
	for id, obj := range a.World.Objects {
		other, ok := b.World.Objects[id]
		require.True(t, ok, "object %s missing on replay", id)
		assert.Equal(t, obj.Location, other.Location)
	}
}

func TestCompile_ScriptedSubsystem(t *testing.T) {
	script := filepath.Join(t.TempDir(), "chrono.lua")
	require.NoError(t, os.WriteFile(script, []byte(`
package_def = {
  tag = "chrono",
  name = "Chrono Physics",
  description = "Time moves strangely here",
  objects = {
    { id = "hourglass", name = "hourglass", description = "Sand falls upward.",
      location = "none", takeable = true, verbs = {"take", "examine"} },
  },
  transformations = {
    { id = "hourglass_flip", object_id = "hourglass", state = "normal",
      turns_required = 1, new_state = "flipped", message = "The sand reverses." },
  },
}
`), 0o644))

	c := New(zaptest.NewLogger(t))
	result := c.Compile(Request{
		WorldName:        "Quiet House",
		RoomCount:        4,
		Subsystems:       []world.SubsystemTag{world.SubsystemLockKey},
		ScriptedPackages: []string{script},
		OutputDir:        t.TempDir(),
		Seed:             seed(5),
	})

	require.True(t, result.Success, "compile failed: %v", result.ValidationErrors)
	assert.Contains(t, result.World.Applied, world.SubsystemTag("chrono"))
	assert.Contains(t, result.World.Objects, "hourglass")
	assert.Contains(t, result.World.Objects, "master_key")
}

func TestCompile_BaseDamageOverride(t *testing.T) {
	c := New(zaptest.NewLogger(t))
	result := c.Compile(Request{
		WorldName:          "Override Outpost",
		RoomCount:          4,
		Subsystems:         []world.SubsystemTag{},
		BaseDamageOverride: 42,
		OutputDir:          t.TempDir(),
		Seed:               seed(6),
	})
	require.True(t, result.Success, "compile failed: %v", result.ValidationErrors)
	assert.Equal(t, 42, result.World.Combat.BaseDamage)
}

func TestPreviewRequest_DoesNotTouchDisk(t *testing.T) {
	dir := t.TempDir()
	c := New(zaptest.NewLogger(t))
	preview := c.PreviewRequest(Request{
		WorldName: "Haunted Mansion on the Hill",
		OutputDir: filepath.Join(dir, "never_created"),
	})

	assert.Equal(t, world.ThemeHorror, preview.Theme)
	assert.NotEmpty(t, preview.SceneSuffix)
	assert.NotEmpty(t, preview.NegativePrompt)
	assert.Positive(t, preview.BaseDamage)

	_, err := os.Stat(filepath.Join(dir, "never_created"))
	assert.True(t, os.IsNotExist(err), "preview must not create output directories")
}

func TestPreviewRequest_SettingAdjustsPrompt(t *testing.T) {
	c := New(zaptest.NewLogger(t))
	plain := c.PreviewRequest(Request{WorldName: "Fort Bravo Barracks"})
	tropical := c.PreviewRequest(Request{WorldName: "Fort Bravo Barracks", Setting: "TROPICAL ISLAND"})
	assert.NotEqual(t, plain.SceneSuffix, tropical.SceneSuffix,
		"a recognized setting must restyle the scene suffix")
}

func TestCompile_StarterObjectsCarryThemeVerbs(t *testing.T) {
	c := New(zaptest.NewLogger(t))
	result := c.Compile(Request{
		WorldName:  "Fort Bravo Barracks",
		RoomCount:  5,
		Subsystems: []world.SubsystemTag{},
		OutputDir:  t.TempDir(),
		Seed:       seed(11),
	})

	require.True(t, result.Success, "compile failed: %v", result.ValidationErrors)
	weapon := result.World.Objects["starter_weapon"]
	require.NotNil(t, weapon)
	assert.Contains(t, weapon.Verbs, "radio", "theme extra verbs must reach the starter objects")

	attacks := 0
	for _, v := range weapon.Verbs {
		if v == "attack" {
			attacks++
		}
	}
	assert.Equal(t, 1, attacks, "verbs shared between the base list and the theme merge once")
}
