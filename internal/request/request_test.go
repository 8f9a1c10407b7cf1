package request

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/worldgen/internal/world"
)

func writeBatch(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "batch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_FullBatch(t *testing.T) {
	path := writeBatch(t, `
output_root: /tmp/worlds
worlds:
  - name: Fort Bravo Barracks
    room_count: 12
    characters: [Sgt Grunt, The Colonel]
    subsystems: [explosives, medical]
    seed: 7
  - name: Quiet House
    room_count: 4
    subsystems: []
    output_dir: /tmp/custom/quiet
`)
	requests, err := Load(path)
	require.NoError(t, err)
	require.Len(t, requests, 2)

	first := requests[0]
	assert.Equal(t, "Fort Bravo Barracks", first.WorldName)
	assert.Equal(t, 12, first.RoomCount)
	assert.Equal(t, []world.SubsystemTag{world.SubsystemExplosives, world.SubsystemMedical}, first.Subsystems)
	require.NotNil(t, first.Seed)
	assert.Equal(t, int64(7), *first.Seed)
	assert.Equal(t, filepath.Join("/tmp/worlds", "fort_bravo_barracks"), first.OutputDir)

	second := requests[1]
	require.NotNil(t, second.Subsystems, "an explicit empty list must survive as non-nil")
	assert.Empty(t, second.Subsystems)
	assert.Equal(t, "/tmp/custom/quiet", second.OutputDir)
	assert.Nil(t, second.Seed)
}

func TestLoad_AbsentSubsystemsStayNil(t *testing.T) {
	path := writeBatch(t, `
worlds:
  - name: Starship Omega
    room_count: 6
`)
	requests, err := Load(path)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Nil(t, requests[0].Subsystems, "absent key means theme defaults")
}

func TestLoad_RejectsUnknownSubsystem(t *testing.T) {
	path := writeBatch(t, `
worlds:
  - name: Broken World
    subsystems: [antigravity]
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "antigravity")
}

func TestLoad_RejectsEmptyBatch(t *testing.T) {
	path := writeBatch(t, `output_root: /tmp/worlds`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no worlds")
}

func TestLoad_RejectsNamelessWorld(t *testing.T) {
	path := writeBatch(t, `
worlds:
  - room_count: 5
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "world name")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
