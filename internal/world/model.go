// Package world provides the compiled world data model: rooms, objects,
// characters, transformation rules, combat and image-generation parameters,
// and the World aggregate every pipeline stage appends to.
package world

import (
	"fmt"
	"sort"
)

// Direction represents a directional exit label.
type Direction string

// The six engine direction labels. These are the only labels the game
// engine reads from rooms artifacts; anything else is silently dropped by
// the engine and must therefore never be emitted.
const (
	North Direction = "north"
	South Direction = "south"
	East  Direction = "east"
	West  Direction = "west"
	Up    Direction = "up"
	Down  Direction = "down"
)

// EngineDirections contains the six labels the engine reads, in pair order.
var EngineDirections = []Direction{North, South, East, West, Up, Down}

// DirectionPairs lists the three opposed label pairs used by the graph
// generator. 3 pairs = 6 directional slots per room, which is sufficient
// for any world up to the 100-room ceiling.
var DirectionPairs = [][2]Direction{
	{North, South},
	{East, West},
	{Up, Down},
}

// NonEngineDirections are labels that look plausible but are not read by
// the engine. The round-trip verifier rejects them in written artifacts.
var NonEngineDirections = []Direction{
	"northeast", "northwest", "southeast", "southwest", "enter", "exit",
}

// IsEngine reports whether d is one of the six engine direction labels.
func (d Direction) IsEngine() bool {
	for _, ed := range EngineDirections {
		if d == ed {
			return true
		}
	}
	return false
}

// Opposite returns the opposite of an engine direction.
// For any other label it returns an empty string.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	case Up:
		return Down
	case Down:
		return Up
	default:
		return ""
	}
}

// ThemeTag identifies a world theme classification.
type ThemeTag string

// The known theme tags. Original is the fallback when no keyword matches.
const (
	ThemeSciFi     ThemeTag = "scifi"
	ThemeMilitary  ThemeTag = "military"
	ThemeFantasy   ThemeTag = "fantasy"
	ThemeDomestic  ThemeTag = "domestic"
	ThemeHorror    ThemeTag = "horror"
	ThemeAdventure ThemeTag = "adventure"
	ThemeSitcom    ThemeTag = "sitcom"
	ThemeDisco     ThemeTag = "disco"
	ThemeNightclub ThemeTag = "nightclub"
	ThemeCrimeSpy  ThemeTag = "crime_spy"
	ThemeOriginal  ThemeTag = "original"
)

// SubsystemTag identifies an optional gameplay subsystem package.
type SubsystemTag string

// The twelve built-in subsystem packages.
const (
	SubsystemTemperature   SubsystemTag = "temperature"
	SubsystemEnergy        SubsystemTag = "energy"
	SubsystemLockKey       SubsystemTag = "lock_key"
	SubsystemCrafting      SubsystemTag = "crafting"
	SubsystemTeleportation SubsystemTag = "teleportation"
	SubsystemDisguise      SubsystemTag = "disguise"
	SubsystemExplosives    SubsystemTag = "explosives"
	SubsystemBribery       SubsystemTag = "bribery"
	SubsystemMagic         SubsystemTag = "magic"
	SubsystemMedical       SubsystemTag = "medical"
	SubsystemGrowth        SubsystemTag = "growth"
	SubsystemAlienTech     SubsystemTag = "alien_tech"
)

// AllSubsystems lists every built-in subsystem tag in declaration order.
var AllSubsystems = []SubsystemTag{
	SubsystemTemperature, SubsystemEnergy, SubsystemLockKey,
	SubsystemCrafting, SubsystemTeleportation, SubsystemDisguise,
	SubsystemExplosives, SubsystemBribery, SubsystemMagic,
	SubsystemMedical, SubsystemGrowth, SubsystemAlienTech,
}

// ParseSubsystemTag converts a string into a known SubsystemTag.
//
// Postcondition: Returns the tag and true if s names a built-in subsystem,
// or ("", false) otherwise.
func ParseSubsystemTag(s string) (SubsystemTag, bool) {
	for _, tag := range AllSubsystems {
		if string(tag) == s {
			return tag, true
		}
	}
	return "", false
}

// Room represents a node in the world graph. Exits are directed edges to
// other rooms; properties are transformation triggers (e.g. power_zone).
type Room struct {
	// ID uniquely identifies this room within the world.
	ID string
	// Name is the short display name of the room.
	Name string
	// Description is the room description shown to players.
	Description string
	// Exits maps engine direction labels to target room IDs.
	Exits map[Direction]string
	// Properties holds environment tags read by transformation gates.
	Properties map[string]string
	// Start marks the unique entry room of the world.
	Start bool
}

// Validate checks room invariants against the full room id set.
//
// Postcondition: Returns one message per violation; empty means valid.
func (r *Room) Validate(roomIDs map[string]struct{}) []string {
	var errs []string
	if isBlank(r.Name) {
		errs = append(errs, fmt.Sprintf("[rooms][%s] missing name", r.ID))
	}
	if isBlank(r.Description) {
		errs = append(errs, fmt.Sprintf("[rooms][%s] missing description", r.ID))
	}
	for _, dir := range sortedDirections(r.Exits) {
		target := r.Exits[dir]
		if _, ok := roomIDs[target]; !ok {
			errs = append(errs, fmt.Sprintf("[rooms][%s] exit %q -> %q targets unknown room", r.ID, dir, target))
		}
	}
	return errs
}

// sortedDirections returns the exit keys in engine declaration order so
// validation output and serialization are deterministic.
func sortedDirections(exits map[Direction]string) []Direction {
	var dirs []Direction
	for _, d := range EngineDirections {
		if _, ok := exits[d]; ok {
			dirs = append(dirs, d)
		}
	}
	// Non-engine keys should not exist, but if one sneaks in it must still
	// surface in validation rather than vanish.
	var extra []string
	for d := range exits {
		if !d.IsEngine() {
			extra = append(extra, string(d))
		}
	}
	sort.Strings(extra)
	for _, d := range extra {
		dirs = append(dirs, Direction(d))
	}
	return dirs
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}
