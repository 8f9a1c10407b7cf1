package world

import "fmt"

// LocationNone is the sentinel location for objects that exist only as
// transformation results and are not placed anywhere at compile time.
const LocationNone = "none"

// GameObject represents a named entity with a location and a verb
// permission set. Objects are the operands of transformation rules.
type GameObject struct {
	// ID uniquely identifies this object within the world.
	ID string
	// Name is the short display name.
	Name string
	// Description is the examine text.
	Description string
	// Location is a room ID, a container object ID, or LocationNone.
	Location string
	// Takeable reports whether the player can pick the object up.
	Takeable bool
	// Weapon marks the object as usable in combat; Damage applies then.
	Weapon bool
	// Damage is the weapon damage contribution.
	Damage int
	// Consumable marks the object as single-use; HealthRestore applies then.
	Consumable bool
	// HealthRestore is the health recovered when consumed.
	HealthRestore int
	// Container marks the object as able to hold other objects.
	Container bool
	// Wearable marks the object as wearable (disguises, outfits).
	Wearable bool
	// BribeValue is a non-empty grade ("high", "low") for bribe items.
	BribeValue string
	// Verbs lists the permitted interaction verbs.
	Verbs []string
	// Properties holds free-form key/value extensions.
	Properties map[string]string
}

// Validate checks object invariants against the room and object id sets.
//
// Postcondition: Returns one message per violation; empty means valid.
// A location naming another object is only valid if that object is
// container-capable.
func (o *GameObject) Validate(roomIDs, objectIDs map[string]struct{}, containers map[string]bool) []string {
	var errs []string
	if isBlank(o.Name) {
		errs = append(errs, fmt.Sprintf("[objects][%s] missing name", o.ID))
	}
	if isBlank(o.Description) {
		errs = append(errs, fmt.Sprintf("[objects][%s] missing description", o.ID))
	}
	if o.Location == "" || o.Location == LocationNone {
		return errs
	}
	if _, inRoom := roomIDs[o.Location]; inRoom {
		return errs
	}
	if _, inObj := objectIDs[o.Location]; inObj {
		if !containers[o.Location] {
			errs = append(errs, fmt.Sprintf("[objects][%s] location %q is not container-capable", o.ID, o.Location))
		}
		return errs
	}
	errs = append(errs, fmt.Sprintf("[objects][%s] location %q resolves to nothing", o.ID, o.Location))
	return errs
}
