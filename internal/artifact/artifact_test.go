package artifact

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/ini.v1"

	"github.com/cory-johannsen/worldgen/internal/world"
)

func sampleWorld() *world.World {
	w := world.New("Sample Station", world.ThemeSciFi)
	w.Rooms["entrance"] = &world.Room{
		ID: "entrance", Name: "Entrance", Description: "The airlock cycles behind you.",
		Exits:      map[world.Direction]string{world.North: "lab"},
		Properties: map[string]string{},
		Start:      true,
	}
	w.Rooms["lab"] = &world.Room{
		ID: "lab", Name: "Lab", Description: "Consoles hum at 100%% capacity.",
		Exits:      map[world.Direction]string{world.South: "entrance"},
		Properties: map[string]string{"power_zone": "true"},
	}
	w.Objects["starter_weapon"] = &world.GameObject{
		ID: "starter_weapon", Name: "plasma rifle", Description: "Standard issue.",
		Location: "entrance", Takeable: true, Weapon: true, Damage: 15,
		Verbs: []string{"take", "drop", "examine", "use", "attack"},
	}
	w.Objects["supply_crate"] = &world.GameObject{
		ID: "supply_crate", Name: "supply crate", Description: "Sealed but not locked.",
		Location: "lab", Takeable: false, Container: true,
	}
	w.Objects["ration_pack"] = &world.GameObject{
		ID: "ration_pack", Name: "ration pack", Description: "Nutrition, technically.",
		Location: "supply_crate", Takeable: true, Consumable: true, HealthRestore: 20,
	}
	w.Characters["overseer_template"] = &world.Character{
		ID: "overseer_template", Name: "Overseer (template)", Description: "Watches everything.",
		Health: 120, Damage: 22, Aggression: 0.85, Behavior: "aggressive_patrol",
		SpawnRooms: []string{"lab"}, SpawnChance: 0.06,
		LootOnDeath: "starter_weapon", RoleTag: world.RoleBoss,
	}
	w.Transformations["rifle_overcharge"] = &world.Transformation{
		ID: "rifle_overcharge", ObjectID: "starter_weapon", State: "normal",
		TurnsRequired: 2, NewState: "overcharged",
		LocationProperty: "power_zone",
		Message:          "The rifle drinks from the grid and whines at a higher pitch.",
	}
	w.Combat.RespawnRoom = "entrance"
	return w
}

func TestWriteAll_ProducesSixParseableArtifacts(t *testing.T) {
	dir := t.TempDir()
	written, err := NewWriter().WriteAll(sampleWorld(), dir)
	require.NoError(t, err)
	require.Len(t, written, len(Files))

	for _, name := range Files {
		path, ok := written[name]
		require.True(t, ok, "missing artifact %s", name)
		_, err := ini.LoadSources(ini.LoadOptions{IgnoreInlineComment: true}, path)
		require.NoError(t, err, "artifact %s must parse", name)
	}
}

func TestWriteAll_RoomSectionContents(t *testing.T) {
	dir := t.TempDir()
	_, err := NewWriter().WriteAll(sampleWorld(), dir)
	require.NoError(t, err)

	f, err := ini.LoadSources(ini.LoadOptions{IgnoreInlineComment: true}, filepath.Join(dir, RoomsFile))
	require.NoError(t, err)

	entrance := f.Section("entrance")
	assert.Equal(t, "Entrance", entrance.Key("name").String())
	assert.Equal(t, "lab", entrance.Key("north").String())
	assert.Equal(t, "true", entrance.Key("start").String())

	lab := f.Section("lab")
	assert.Equal(t, "entrance", lab.Key("south").String())
	assert.Equal(t, "true", lab.Key("power_zone").String())
	assert.False(t, lab.HasKey("start"), "only the start room carries the start flag")
}

func TestWriteAll_ImageConfigKeepsHostAndPortSeparate(t *testing.T) {
	dir := t.TempDir()
	_, err := NewWriter().WriteAll(sampleWorld(), dir)
	require.NoError(t, err)

	f, err := ini.LoadSources(ini.LoadOptions{IgnoreInlineComment: true}, filepath.Join(dir, ImageConfigFile))
	require.NoError(t, err)

	backend := f.Section("SD1")
	assert.Equal(t, "127.0.0.1", backend.Key("host").String())
	assert.Equal(t, "7860", backend.Key("port").String())
	assert.False(t, backend.HasKey("url"), "host and port must never be combined")
}

func TestWriteAll_CombatSections(t *testing.T) {
	dir := t.TempDir()
	_, err := NewWriter().WriteAll(sampleWorld(), dir)
	require.NoError(t, err)

	f, err := ini.LoadSources(ini.LoadOptions{IgnoreInlineComment: true}, filepath.Join(dir, CombatFile))
	require.NoError(t, err)

	for _, name := range []string{"player_vs_player", "player_vs_sprite", "sprite_vs_player", "player_vs_boss", "pvp_rules", "damage_types"} {
		assert.True(t, f.HasSection(name), "combat artifact missing section %s", name)
	}
	assert.Equal(t, "entrance", f.Section("pvp_rules").Key("respawn_location").String())
	assert.Equal(t, "2", f.Section("damage_types").Key("explosive").String())
}

func TestVerify_CleanWorldRoundTrips(t *testing.T) {
	dir := t.TempDir()
	_, err := NewWriter().WriteAll(sampleWorld(), dir)
	require.NoError(t, err)

	result := NewVerifier().Verify(dir)
	assert.True(t, result.Valid(), "round trip failed: %v", result.Errors)
}

func TestVerify_MissingFileIsFatal(t *testing.T) {
	dir := t.TempDir()
	_, err := NewWriter().WriteAll(sampleWorld(), dir)
	require.NoError(t, err)
	require.NoError(t, os.Remove(filepath.Join(dir, SpritesFile)))

	result := NewVerifier().Verify(dir)
	require.False(t, result.Valid())
	assert.Contains(t, strings.Join(result.Errors, "\n"), "File missing")
}

func TestVerify_RejectsNonEngineDirections(t *testing.T) {
	dir := t.TempDir()
	_, err := NewWriter().WriteAll(sampleWorld(), dir)
	require.NoError(t, err)

	// Corrupt the written rooms artifact the way a hand edit would.
	path := filepath.Join(dir, RoomsFile)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	corrupted := strings.Replace(string(data), "north", "northeast", 1)
	require.NoError(t, os.WriteFile(path, []byte(corrupted), 0o644))

	result := NewVerifier().Verify(dir)
	require.False(t, result.Valid())
	assert.Contains(t, strings.Join(result.Errors, "\n"), "NOT read by engine")
}

func TestVerify_DetectsBareReservedCharacter(t *testing.T) {
	dir := t.TempDir()
	w := sampleWorld()
	w.Rooms["lab"].Description = "Consoles hum at 100% capacity."
	_, err := NewWriter().WriteAll(w, dir)
	require.NoError(t, err)

	result := NewVerifier().Verify(dir)
	require.False(t, result.Valid())
	assert.Contains(t, strings.Join(result.Errors, "\n"), "bare '%'")
}

func TestRepair_RemovesDanglingExit(t *testing.T) {
	w := sampleWorld()
	w.Rooms["lab"].Exits[world.East] = "vanished"

	actions := Repair(w)
	require.NotEmpty(t, actions)
	assert.NotContains(t, w.Rooms["lab"].Exits, world.East)

	// The repaired world must survive a fresh write and round trip.
	dir := t.TempDir()
	_, err := NewWriter().WriteAll(w, dir)
	require.NoError(t, err)
	result := NewVerifier().Verify(dir)
	assert.True(t, result.Valid(), "repaired world failed round trip: %v", result.Errors)
}

func TestRepair_RelocatesOrphanedObject(t *testing.T) {
	w := sampleWorld()
	w.Objects["ration_pack"].Location = "deleted_room"

	Repair(w)
	assert.Equal(t, "entrance", w.Objects["ration_pack"].Location,
		"orphaned objects relocate to the entrance when it exists")
}

func TestRepair_FallsBackToSmallestRoomID(t *testing.T) {
	w := world.New("No Entrance", world.ThemeOriginal)
	w.Rooms["zeta"] = &world.Room{ID: "zeta", Name: "Zeta", Description: "Z.",
		Exits: map[world.Direction]string{}, Properties: map[string]string{}, Start: true}
	w.Rooms["alpha"] = &world.Room{ID: "alpha", Name: "Alpha", Description: "A.",
		Exits: map[world.Direction]string{}, Properties: map[string]string{}}
	w.Objects["lost"] = &world.GameObject{ID: "lost", Name: "lost thing",
		Description: "Misplaced.", Location: "ghost_room", Takeable: true}

	Repair(w)
	assert.Equal(t, "alpha", w.Objects["lost"].Location)
}

func TestRepair_TrimsSpawnListsWithFallback(t *testing.T) {
	w := sampleWorld()
	w.Characters["overseer_template"].SpawnRooms = []string{"gone_1", "gone_2"}

	Repair(w)
	assert.Equal(t, []string{"entrance"}, w.Characters["overseer_template"].SpawnRooms,
		"a fully trimmed spawn list falls back to the entrance")
}

func TestRepair_IntroducesNoNewIDs(t *testing.T) {
	w := sampleWorld()
	w.Rooms["lab"].Exits[world.Up] = "phantom"
	w.Objects["ration_pack"].Location = "phantom"
	w.Characters["overseer_template"].SpawnRooms = []string{"phantom"}
	w.Characters["overseer_template"].LootOnDeath = "phantom_object"

	before := len(w.Rooms) + len(w.Objects) + len(w.Characters) + len(w.Transformations)
	Repair(w)
	after := len(w.Rooms) + len(w.Objects) + len(w.Characters) + len(w.Transformations)

	assert.Equal(t, before, after, "repair must never invent entities")
	assert.Empty(t, w.Characters["overseer_template"].LootOnDeath)
}

func TestVerify_TransformationDestinationMustResolve(t *testing.T) {
	dir := t.TempDir()
	w := sampleWorld()
	w.Transformations["rifle_overcharge"].NewLocation = "lab"
	_, err := NewWriter().WriteAll(w, dir)
	require.NoError(t, err)

	path := filepath.Join(dir, TransformationsFile)
	f, err := ini.LoadSources(ini.LoadOptions{IgnoreInlineComment: true}, path)
	require.NoError(t, err)
	require.True(t, f.Section("rifle_overcharge").HasKey("new_location"))
	f.Section("rifle_overcharge").Key("new_location").SetValue("vault")
	require.NoError(t, f.SaveTo(path))

	result := NewVerifier().Verify(dir)
	require.False(t, result.Valid())
	assert.Contains(t, strings.Join(result.Errors, "\n"), "new_location='vault' MISSING")
}

func TestVerify_CombatRespawnMustResolve(t *testing.T) {
	dir := t.TempDir()
	_, err := NewWriter().WriteAll(sampleWorld(), dir)
	require.NoError(t, err)

	path := filepath.Join(dir, CombatFile)
	f, err := ini.LoadSources(ini.LoadOptions{IgnoreInlineComment: true}, path)
	require.NoError(t, err)
	require.True(t, f.Section("pvp_rules").HasKey("respawn_location"))
	f.Section("pvp_rules").Key("respawn_location").SetValue("brig")
	require.NoError(t, f.SaveTo(path))

	result := NewVerifier().Verify(dir)
	require.False(t, result.Valid())
	assert.Contains(t, strings.Join(result.Errors, "\n"), "respawn_location='brig' MISSING")
}
