package compiler

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/worldgen/internal/roomgraph"
	"github.com/cory-johannsen/worldgen/internal/world"
)

// Request is everything one compilation needs. It is the public API
// surface of the compiler; all other knobs live in the theme bundles.
type Request struct {
	// WorldName drives theme classification and appears in room
	// descriptions. Required.
	WorldName string

	// CharacterNames become sprites. Blank entries are skipped.
	CharacterNames []string

	// RoomCount is clamped to the supported range rather than rejected.
	RoomCount int

	// Subsystems selects the physics packages to inject. nil means the
	// theme's defaults; an explicitly empty list means none at all.
	Subsystems []world.SubsystemTag

	// ScriptedPackages are paths to Lua package definitions injected
	// after the built-in subsystems.
	ScriptedPackages []string

	// OutputDir receives the six artifacts.
	OutputDir string

	// Theme overrides classification when set.
	Theme world.ThemeTag

	// Setting adjusts the image prompt style (e.g. "tropical island").
	Setting string

	// Image service endpoint. Host and port stay separate through the
	// whole pipeline.
	ImageHost string
	ImagePort int

	// SceneSuffix and NegativePrompt override the theme's image style
	// text when non-empty.
	SceneSuffix    string
	NegativePrompt string

	// CustomRoomNames overlay generated names positionally.
	CustomRoomNames []string

	// BaseDamageOverride replaces the theme's base damage when > 0.
	BaseDamageOverride int

	// Seed makes the run reproducible. nil draws from the OS entropy
	// source.
	Seed *int64
}

// Normalize fills defaults and clamps out-of-range values in place.
func (r *Request) Normalize() {
	r.WorldName = strings.TrimSpace(r.WorldName)
	if r.RoomCount == 0 {
		r.RoomCount = 20
	}
	if r.RoomCount < roomgraph.MinRooms {
		r.RoomCount = roomgraph.MinRooms
	}
	if r.RoomCount > roomgraph.MaxRooms {
		r.RoomCount = roomgraph.MaxRooms
	}
	if r.OutputDir == "" {
		r.OutputDir = "./generated_world"
	}
	if r.ImageHost == "" {
		r.ImageHost = "127.0.0.1"
	}
	if r.ImagePort == 0 {
		r.ImagePort = 7860
	}
}

// Validate reports the first problem that normalization cannot fix.
//
// Precondition: Normalize has been called.
func (r *Request) Validate() error {
	var violations []string
	if r.WorldName == "" {
		violations = append(violations, "world name must not be empty")
	}
	if r.ImagePort < 1 || r.ImagePort > 65535 {
		violations = append(violations, fmt.Sprintf("image port %d outside 1-65535", r.ImagePort))
	}
	for _, tag := range r.Subsystems {
		if _, ok := world.ParseSubsystemTag(string(tag)); !ok {
			violations = append(violations, fmt.Sprintf("unknown subsystem tag %q", tag))
		}
	}
	if len(violations) > 0 {
		return fmt.Errorf("invalid request: %s", strings.Join(violations, "; "))
	}
	return nil
}
