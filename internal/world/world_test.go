package world_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/worldgen/internal/world"
)

func TestDirection_Opposite(t *testing.T) {
	for _, pair := range world.DirectionPairs {
		assert.Equal(t, pair[1], pair[0].Opposite(), "pair must be opposed")
		assert.Equal(t, pair[0], pair[1].Opposite(), "pair must be opposed both ways")
	}
	assert.Equal(t, world.Direction(""), world.Direction("northeast").Opposite(),
		"non-engine labels have no opposite")
}

func TestDirection_IsEngine(t *testing.T) {
	for _, d := range world.EngineDirections {
		assert.True(t, d.IsEngine(), "engine direction %q", d)
	}
	for _, d := range world.NonEngineDirections {
		assert.False(t, d.IsEngine(), "non-engine direction %q", d)
	}
}

func TestParseSubsystemTag(t *testing.T) {
	tag, ok := world.ParseSubsystemTag("lock_key")
	require.True(t, ok)
	assert.Equal(t, world.SubsystemLockKey, tag)

	_, ok = world.ParseSubsystemTag("gravity")
	assert.False(t, ok, "unknown tags must not parse")
}

func TestRoom_Validate(t *testing.T) {
	ids := map[string]struct{}{"entrance": {}, "hall": {}}
	r := &world.Room{
		ID:          "entrance",
		Name:        "Entrance",
		Description: "The way in.",
		Exits:       map[world.Direction]string{world.North: "hall"},
	}
	assert.Empty(t, r.Validate(ids), "well-formed room must validate")

	r.Exits[world.South] = "vault"
	errs := r.Validate(ids)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "vault")

	blank := &world.Room{ID: "x", Name: "  ", Description: ""}
	assert.Len(t, blank.Validate(ids), 2, "blank name and description both flagged")
}

func TestGameObject_Validate_ContainerLocation(t *testing.T) {
	roomIDs := map[string]struct{}{"entrance": {}}
	objIDs := map[string]struct{}{"chest": {}, "coin": {}}
	containers := map[string]bool{"chest": true}

	coin := &world.GameObject{ID: "coin", Name: "coin", Description: "a coin", Location: "chest"}
	assert.Empty(t, coin.Validate(roomIDs, objIDs, containers))

	coin.Location = "coin"
	errs := coin.Validate(roomIDs, objIDs, map[string]bool{})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "not container-capable")

	coin.Location = world.LocationNone
	assert.Empty(t, coin.Validate(roomIDs, objIDs, containers), "sentinel location is always valid")
}

func TestCharacter_Validate_EmptySpawnIsWarning(t *testing.T) {
	c := &world.Character{ID: "c", Name: "C", Description: "desc", Aggression: 0.5}
	errs, warns := c.Validate(map[string]struct{}{}, map[string]struct{}{})
	assert.Empty(t, errs)
	require.Len(t, warns, 1)
	assert.Contains(t, warns[0], "no spawn rooms")
}

func TestTransformation_Validate(t *testing.T) {
	roomIDs := map[string]struct{}{"entrance": {}}
	objIDs := map[string]struct{}{"key": {}}

	tr := &world.Transformation{
		ID: "unlock", ObjectID: "key", State: "normal",
		TurnsRequired: 1, NewState: "used", Message: "It opens.",
	}
	assert.Empty(t, tr.Validate(roomIDs, objIDs))

	tr.NewObjectID = "door_open"
	tr.NewLocation = "vault"
	tr.TurnsRequired = 0
	errs := tr.Validate(roomIDs, objIDs)
	assert.Len(t, errs, 3, "dangling result, dangling destination, zero turn cost")
}

func TestWorld_Merge_RejectsDuplicateTag(t *testing.T) {
	w := world.New("Test", world.ThemeOriginal)
	objs := map[string]*world.GameObject{
		"master_key": {ID: "master_key", Name: "key", Description: "a key", Location: world.LocationNone},
	}
	require.NoError(t, w.Merge(world.SubsystemLockKey, objs, nil))
	assert.Equal(t, []world.SubsystemTag{world.SubsystemLockKey}, w.Applied)

	err := w.Merge(world.SubsystemLockKey, nil, nil)
	require.Error(t, err, "re-applying a tag must fail")
	assert.Len(t, w.Applied, 1)
}

func TestWorld_Merge_RejectsIDCollision(t *testing.T) {
	w := world.New("Test", world.ThemeOriginal)
	objs := map[string]*world.GameObject{"k": {ID: "k", Name: "k", Description: "d"}}
	require.NoError(t, w.Merge(world.SubsystemLockKey, objs, nil))

	err := w.Merge(world.SubsystemMagic, map[string]*world.GameObject{"k": {ID: "k"}}, nil)
	require.Error(t, err)
	assert.Len(t, w.Applied, 1, "failed merge must not append its tag")
}

func TestWorld_StartRoom(t *testing.T) {
	w := world.New("Test", world.ThemeOriginal)
	_, ok := w.StartRoom()
	assert.False(t, ok)

	w.Rooms["hall"] = &world.Room{ID: "hall", Name: "Hall", Description: "d"}
	w.Rooms["entrance"] = &world.Room{ID: "entrance", Name: "Entrance", Description: "d", Start: true}
	id, ok := w.StartRoom()
	require.True(t, ok)
	assert.Equal(t, "entrance", id)
}
