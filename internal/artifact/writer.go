// Package artifact turns a validated world into its on-disk INI files
// and verifies that what was written can be read back intact. The six
// artifacts together are the complete world definition the game engine
// consumes.
package artifact

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"

	"github.com/cory-johannsen/worldgen/internal/world"
)

// Artifact file names, fixed by the consuming engine.
const (
	RoomsFile           = "rooms.ini"
	ObjectsFile         = "objects.ini"
	SpritesFile         = "sprites.ini"
	TransformationsFile = "transformations.ini"
	CombatFile          = "combat.ini"
	ImageConfigFile     = "stablediffusion.ini"
)

// Files lists every artifact name in write order.
var Files = []string{
	RoomsFile, ObjectsFile, SpritesFile,
	TransformationsFile, CombatFile, ImageConfigFile,
}

// Writer serializes worlds to INI artifacts. Values are written exactly
// as they appear in the model; escaping reserved characters is the
// producer's job and is enforced by validation before any write.
type Writer struct{}

// NewWriter returns an artifact Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// WriteAll writes the six artifacts into dir, creating it if needed.
//
// Postcondition: On success the returned map has one entry per artifact
// name mapping to the absolute path written.
func (w *Writer) WriteAll(wld *world.World, dir string) (map[string]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("artifact: create output dir: %w", err)
	}

	written := make(map[string]string, len(Files))
	writers := []struct {
		name  string
		build func() (*ini.File, error)
	}{
		{RoomsFile, func() (*ini.File, error) { return w.roomsFile(wld) }},
		{ObjectsFile, func() (*ini.File, error) { return w.objectsFile(wld) }},
		{SpritesFile, func() (*ini.File, error) { return w.spritesFile(wld) }},
		{TransformationsFile, func() (*ini.File, error) { return w.transformationsFile(wld) }},
		{CombatFile, func() (*ini.File, error) { return w.combatFile(wld) }},
		{ImageConfigFile, func() (*ini.File, error) { return w.imageConfigFile(wld) }},
	}

	for _, item := range writers {
		file, err := item.build()
		if err != nil {
			return nil, err
		}
		path := filepath.Join(dir, item.name)
		if err := file.SaveTo(path); err != nil {
			return nil, fmt.Errorf("artifact: write %s: %w", item.name, err)
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		written[item.name] = abs
	}
	return written, nil
}

func emptyFile() *ini.File {
	return ini.Empty(ini.LoadOptions{IgnoreInlineComment: true})
}

func addSection(file *ini.File, name string, section *world.Section) error {
	sec, err := file.NewSection(name)
	if err != nil {
		return fmt.Errorf("artifact: section %s: %w", name, err)
	}
	for _, key := range section.Keys() {
		if _, err := sec.NewKey(key, section.Get(key)); err != nil {
			return fmt.Errorf("artifact: section %s key %s: %w", name, key, err)
		}
	}
	return nil
}

func (w *Writer) roomsFile(wld *world.World) (*ini.File, error) {
	file := emptyFile()
	for _, rid := range wld.SortedRoomIDs() {
		if err := addSection(file, rid, wld.Rooms[rid].Section()); err != nil {
			return nil, err
		}
	}
	return file, nil
}

func (w *Writer) objectsFile(wld *world.World) (*ini.File, error) {
	file := emptyFile()
	for _, oid := range wld.SortedObjectIDs() {
		if err := addSection(file, oid, wld.Objects[oid].Section()); err != nil {
			return nil, err
		}
	}
	return file, nil
}

func (w *Writer) spritesFile(wld *world.World) (*ini.File, error) {
	file := emptyFile()
	for _, cid := range wld.SortedCharacterIDs() {
		if err := addSection(file, cid, wld.Characters[cid].Section()); err != nil {
			return nil, err
		}
	}
	return file, nil
}

func (w *Writer) transformationsFile(wld *world.World) (*ini.File, error) {
	file := emptyFile()
	for _, tid := range wld.SortedTransformationIDs() {
		if err := addSection(file, tid, wld.Transformations[tid].Section()); err != nil {
			return nil, err
		}
	}
	return file, nil
}

func (w *Writer) combatFile(wld *world.World) (*ini.File, error) {
	file := emptyFile()
	respawn := wld.Combat.RespawnRoom
	for _, ns := range wld.Combat.Sections(respawn) {
		if err := addSection(file, ns.Name, ns.Section); err != nil {
			return nil, err
		}
	}
	return file, nil
}

func (w *Writer) imageConfigFile(wld *world.World) (*ini.File, error) {
	file := emptyFile()
	for _, ns := range wld.ImageGen.Sections() {
		if err := addSection(file, ns.Name, ns.Section); err != nil {
			return nil, err
		}
	}
	return file, nil
}
