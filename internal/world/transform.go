package world

import "fmt"

// Transformation is a state transition rule:
//
//	object + prior state + trigger conditions -> new state + side effects
//
// Everything that "happens" in a compiled world is a transformation; the
// runtime engine only executes these rules.
type Transformation struct {
	// ID uniquely identifies this rule within the world.
	ID string
	// ObjectID is the subject object. Must exist.
	ObjectID string
	// State is the required prior state of the subject.
	State string
	// TurnsRequired is the turn cost of the transition. Must be positive.
	TurnsRequired int
	// NewState is the resulting state of the subject.
	NewState string
	// Message is the narration shown when the transition fires.
	Message string
	// NewObjectID optionally names an object produced by the transition.
	NewObjectID string
	// RequiresObject and RequiresObject2 optionally name prerequisite
	// objects the player must hold.
	RequiresObject  string
	RequiresObject2 string
	// LocationProperty optionally gates the transition on a room property.
	LocationProperty string
	// NewLocation optionally relocates the player to a room.
	NewLocation string
	// Properties holds free-form key/value extensions.
	Properties map[string]string
}

// Validate checks that every referenced id resolves.
//
// Postcondition: Returns one message per violation; empty means valid.
func (t *Transformation) Validate(roomIDs, objectIDs map[string]struct{}) []string {
	var errs []string
	check := func(field, id string) {
		if id == "" {
			return
		}
		if _, ok := objectIDs[id]; !ok {
			errs = append(errs, fmt.Sprintf("[transformations][%s] %s %q does not exist", t.ID, field, id))
		}
	}
	if t.ObjectID == "" {
		errs = append(errs, fmt.Sprintf("[transformations][%s] missing object id", t.ID))
	} else {
		check("object", t.ObjectID)
	}
	check("result object", t.NewObjectID)
	check("prerequisite", t.RequiresObject)
	check("second prerequisite", t.RequiresObject2)
	if t.NewLocation != "" {
		if _, ok := roomIDs[t.NewLocation]; !ok {
			errs = append(errs, fmt.Sprintf("[transformations][%s] destination room %q does not exist", t.ID, t.NewLocation))
		}
	}
	if t.TurnsRequired < 1 {
		errs = append(errs, fmt.Sprintf("[transformations][%s] turn cost must be positive, got %d", t.ID, t.TurnsRequired))
	}
	return errs
}
