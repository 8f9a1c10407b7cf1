package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/worldgen/internal/rng"
	"github.com/cory-johannsen/worldgen/internal/theme"
	"github.com/cory-johannsen/worldgen/internal/world"
)

func testWorld(t *testing.T, roomIDs ...string) *world.World {
	t.Helper()
	w := world.New("Test World", world.ThemeOriginal)
	for i, id := range roomIDs {
		w.Rooms[id] = &world.Room{
			ID:          id,
			Name:        id,
			Description: "a room",
			Exits:       make(map[world.Direction]string),
			Properties:  make(map[string]string),
			Start:       i == 0,
		}
	}
	return w
}

func TestBuild_EveryPackageIsClosed(t *testing.T) {
	defaults := theme.GetDefaults(world.ThemeOriginal)
	for _, tag := range world.AllSubsystems {
		t.Run(string(tag), func(t *testing.T) {
			lib := NewLibrary(rng.NewSeededSource(11))
			w := testWorld(t, "entrance", "hall", "vault", "attic")
			pkg := lib.Build(tag, w, defaults)

			require.NotNil(t, pkg)
			assert.Equal(t, tag, pkg.Tag)
			require.NotEmpty(t, pkg.Objects, "a package without objects has nothing to transform")
			require.NotEmpty(t, pkg.Transformations)

			roomIDs := w.RoomIDs()
			for id, tr := range pkg.Transformations {
				for _, ref := range []string{tr.ObjectID, tr.NewObjectID, tr.RequiresObject, tr.RequiresObject2} {
					if ref == "" {
						continue
					}
					_, ok := pkg.Objects[ref]
					assert.True(t, ok, "transformation %s references %s outside the package", id, ref)
				}
				if tr.NewLocation != "" {
					_, ok := roomIDs[tr.NewLocation]
					assert.True(t, ok, "transformation %s teleports to unknown room %s", id, tr.NewLocation)
				}
				assert.GreaterOrEqual(t, tr.TurnsRequired, 1)
			}
			for id, obj := range pkg.Objects {
				assert.Equal(t, id, obj.ID)
				if obj.Location != world.LocationNone {
					_, ok := roomIDs[obj.Location]
					assert.True(t, ok, "object %s placed in unknown room %s", id, obj.Location)
				}
			}
		})
	}
}

func TestBuild_EnergyTagsAPowerZone(t *testing.T) {
	lib := NewLibrary(rng.NewSeededSource(3))
	w := testWorld(t, "entrance", "reactor", "corridor")
	lib.Build(world.SubsystemEnergy, w, theme.GetDefaults(world.ThemeSciFi))

	tagged := 0
	for _, room := range w.Rooms {
		if room.Properties["power_zone"] == "true" {
			tagged++
		}
	}
	assert.Equal(t, 1, tagged, "exactly one room becomes the power zone")
}

func TestBuild_LockKeyLocksThirdRoom(t *testing.T) {
	lib := NewLibrary(rng.NewSeededSource(4))
	w := testWorld(t, "entrance", "hall", "vault", "attic")
	lib.Build(world.SubsystemLockKey, w, theme.GetDefaults(world.ThemeOriginal))

	locked := make([]string, 0, 1)
	for id, room := range w.Rooms {
		if room.Properties["locked"] == "true" {
			locked = append(locked, id)
		}
	}
	require.Len(t, locked, 1)
	// sorted order: attic, entrance, hall, vault -> index 2 is "hall"
	assert.Equal(t, "hall", locked[0])
}

func TestInject_MergesAndRecordsTag(t *testing.T) {
	lib := NewLibrary(rng.NewSeededSource(5))
	w := testWorld(t, "entrance", "hall", "vault")
	pkg := lib.Build(world.SubsystemMedical, w, theme.GetDefaults(world.ThemeOriginal))

	require.NoError(t, pkg.Inject(w))
	assert.Contains(t, w.Applied, world.SubsystemMedical)
	assert.Contains(t, w.Objects, "medical_kit")
	assert.Contains(t, w.Transformations, "apply_treatment")

	err := pkg.Inject(w)
	require.Error(t, err, "double injection of the same subsystem must be refused")
}

func TestBuild_TwoWorldsStayIsolated(t *testing.T) {
	lib := NewLibrary(rng.NewSeededSource(6))
	defaults := theme.GetDefaults(world.ThemeOriginal)

	a := testWorld(t, "entrance", "hall", "vault")
	b := testWorld(t, "entrance", "hall", "vault")

	require.NoError(t, lib.Build(world.SubsystemCrafting, a, defaults).Inject(a))

	assert.Empty(t, b.Objects, "building for one world must never touch another")
	assert.Empty(t, b.Applied)
	assert.Contains(t, a.Objects, "crafted_result")
}

func TestBuild_UnknownTagFallsBackToLockKey(t *testing.T) {
	lib := NewLibrary(rng.NewSeededSource(7))
	w := testWorld(t, "entrance", "hall", "vault")
	pkg := lib.Build(world.SubsystemTag("gravity_inversion"), w, theme.GetDefaults(world.ThemeOriginal))
	assert.Equal(t, world.SubsystemLockKey, pkg.Tag)
	assert.Contains(t, pkg.Objects, "master_key")
}

func TestCatalog_CoversAllSubsystems(t *testing.T) {
	infos := Catalog()
	require.Len(t, infos, len(world.AllSubsystems))
	seen := make(map[world.SubsystemTag]bool, len(infos))
	for _, info := range infos {
		assert.NotEmpty(t, info.Name)
		assert.NotEmpty(t, info.Description)
		seen[info.Tag] = true
	}
	for _, tag := range world.AllSubsystems {
		assert.True(t, seen[tag], "catalog is missing %s", tag)
	}
}
