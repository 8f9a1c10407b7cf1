package world

import "fmt"

// Role classifies a character's part in the world.
type Role string

// The recognized character roles.
const (
	RoleHero    Role = "hero"
	RoleVillain Role = "villain"
	RoleNeutral Role = "neutral"
	RoleBoss    Role = "boss"
	RoleAlly    Role = "ally"
	RoleGuard   Role = "guard"
)

// Character represents an autonomous agent with behavior parameters.
// Behavior is an enumerated AI strategy tag plus numeric scalars.
type Character struct {
	// ID uniquely identifies this character within the world.
	ID string
	// Name is the display name.
	Name string
	// Description is the examine text.
	Description string
	// Health is the starting hit point total.
	Health int
	// Damage is the per-hit damage contribution.
	Damage int
	// Aggression is the hostility scalar in [0.0, 1.0].
	Aggression float64
	// Behavior is the AI strategy tag consumed by the runtime.
	Behavior string
	// SpawnRooms lists the rooms this character may appear in. Must be
	// non-empty whenever the world has rooms.
	SpawnRooms []string
	// SpawnChance is the per-turn spawn probability.
	SpawnChance float64
	// LootOnDeath is an optional object ID dropped on death.
	LootOnDeath string
	// CanPickup reports whether the character picks up objects.
	CanPickup bool
	// RoleTag records the classified role.
	RoleTag Role
	// Properties holds free-form key/value extensions.
	Properties map[string]string
}

// Validate checks character invariants against the room and object id sets.
//
// Postcondition: Returns (errors, warnings); an empty spawn list is a
// warning, not an error.
func (c *Character) Validate(roomIDs, objectIDs map[string]struct{}) (errs, warns []string) {
	if isBlank(c.Name) {
		errs = append(errs, fmt.Sprintf("[characters][%s] missing name", c.ID))
	}
	if isBlank(c.Description) {
		errs = append(errs, fmt.Sprintf("[characters][%s] missing description", c.ID))
	}
	for _, r := range c.SpawnRooms {
		if _, ok := roomIDs[r]; !ok {
			errs = append(errs, fmt.Sprintf("[characters][%s] spawn room %q does not exist", c.ID, r))
		}
	}
	if len(c.SpawnRooms) == 0 {
		warns = append(warns, fmt.Sprintf("[characters][%s] has no spawn rooms", c.ID))
	}
	if c.LootOnDeath != "" {
		if _, ok := objectIDs[c.LootOnDeath]; !ok {
			errs = append(errs, fmt.Sprintf("[characters][%s] loot %q does not exist", c.ID, c.LootOnDeath))
		}
	}
	if c.Aggression < 0 || c.Aggression > 1 {
		errs = append(errs, fmt.Sprintf("[characters][%s] aggression %.2f outside [0,1]", c.ID, c.Aggression))
	}
	return errs, warns
}
