// Package physics provides self-contained gameplay rule bundles. Each
// package carries the objects and transformation rules it needs, fully
// cross-referenced within itself, so injecting one into a world can
// never introduce a dangling reference.
package physics

import (
	"fmt"

	"github.com/cory-johannsen/worldgen/internal/rng"
	"github.com/cory-johannsen/worldgen/internal/theme"
	"github.com/cory-johannsen/worldgen/internal/world"
)

// Package is one injectable rule bundle. Every object id referenced by a
// transformation in the bundle is defined by the bundle itself.
type Package struct {
	Tag             world.SubsystemTag
	DisplayName     string
	Description     string
	Objects         map[string]*world.GameObject
	Transformations map[string]*world.Transformation
}

// Inject merges the package into w under its subsystem tag.
//
// Postcondition: On success, all package objects and transformations are
// present in w and the tag is recorded. On failure w is unchanged.
func (p *Package) Inject(w *world.World) error {
	return w.Merge(p.Tag, p.Objects, p.Transformations)
}

// Info describes a package for listings and interactive pickers.
type Info struct {
	Tag         world.SubsystemTag
	Name        string
	Description string
}

// Catalog returns display info for every built-in package, in a stable
// order.
func Catalog() []Info {
	return []Info{
		{world.SubsystemTemperature, "Temperature Physics", "Water freezes, ice melts, temperature zones affect objects"},
		{world.SubsystemEnergy, "Energy Charging", "Objects charge in power zones over time"},
		{world.SubsystemLockKey, "Lock & Key", "Doors and containers require keys or combinations"},
		{world.SubsystemCrafting, "Crafting / Combining", "Combine two objects to create a third"},
		{world.SubsystemTeleportation, "Teleportation", "Portal devices transport players between locations"},
		{world.SubsystemDisguise, "Disguise System", "Wearing disguises changes how enemies react to you"},
		{world.SubsystemExplosives, "Timed Explosives", "Place charges, arm timer, detonate from safe distance"},
		{world.SubsystemBribery, "Bribery / Persuasion", "Items that neutralize hostile characters when offered"},
		{world.SubsystemMagic, "Magic Casting", "Spell words transform rooms and objects"},
		{world.SubsystemMedical, "Medical System", "Heal wounded characters, perform procedures, use supplies"},
		{world.SubsystemGrowth, "Growth / Decay", "Plants grow, food spoils, wounds heal over time"},
		{world.SubsystemAlienTech, "Alien Technology", "Scan and activate alien artifacts through multi-step sequences"},
	}
}

// Library builds packages adapted to a world's theme and room layout.
// Object placement is the only random decision.
type Library struct {
	src rng.Source
}

// NewLibrary returns a Library drawing randomness from src.
func NewLibrary(src rng.Source) *Library {
	return &Library{src: src}
}

// Build constructs the package for tag against w's current room layout.
// Unknown tags fall back to the lock and key package. Some builders tag
// rooms with zone properties as a side effect; build only what you will
// inject.
func (l *Library) Build(tag world.SubsystemTag, w *world.World, defaults theme.Defaults) *Package {
	switch tag {
	case world.SubsystemTemperature:
		return l.buildTemperature(w)
	case world.SubsystemEnergy:
		return l.buildEnergy(w)
	case world.SubsystemCrafting:
		return l.buildCrafting(w)
	case world.SubsystemTeleportation:
		return l.buildTeleportation(w)
	case world.SubsystemDisguise:
		return l.buildDisguise(w)
	case world.SubsystemExplosives:
		return l.buildExplosives(w)
	case world.SubsystemBribery:
		return l.buildBribery(w)
	case world.SubsystemMagic:
		return l.buildMagic(w)
	case world.SubsystemMedical:
		return l.buildMedical(w)
	case world.SubsystemGrowth:
		return l.buildGrowth(w)
	case world.SubsystemAlienTech:
		return l.buildAlienTech(w)
	default:
		return l.buildLockKey(w)
	}
}

func (l *Library) randomRoom(w *world.World) string {
	ids := w.SortedRoomIDs()
	if len(ids) == 0 {
		return ""
	}
	return rng.Pick(l.src, ids)
}

func newPackage(tag world.SubsystemTag, name, desc string) *Package {
	return &Package{
		Tag:             tag,
		DisplayName:     name,
		Description:     desc,
		Objects:         make(map[string]*world.GameObject),
		Transformations: make(map[string]*world.Transformation),
	}
}

func (l *Library) buildEnergy(w *world.World) *Package {
	pkg := newPackage(world.SubsystemEnergy, "Energy Charging", "Objects charge in power zones over time")
	pkg.Objects["power_cell_inert"] = &world.GameObject{
		ID:   "power_cell_inert",
		Name: "inert power cell",
		Description: "A power cell in its inert state. It requires a power zone " +
			"to become energized. Handle with care.",
		Location: l.randomRoom(w),
		Takeable: true,
		Verbs:    []string{"take", "drop", "examine", "use", "insert"},
	}
	pkg.Objects["power_cell_charged"] = &world.GameObject{
		ID:   "power_cell_charged",
		Name: "charged power cell",
		Description: "A fully energized power cell, humming with contained power. " +
			"It glows faintly and is warm to the touch.",
		Location: world.LocationNone,
		Takeable: true,
		Verbs:    []string{"take", "drop", "examine", "use", "insert"},
	}
	pkg.Transformations["energy_charge"] = &world.Transformation{
		ID:               "energy_charge",
		ObjectID:         "power_cell_inert",
		State:            "normal",
		TurnsRequired:    5,
		NewState:         "charged",
		NewObjectID:      "power_cell_charged",
		LocationProperty: "power_zone",
		Message: "The power cell begins to absorb energy from the zone. " +
			"After several moments the humming intensifies and the " +
			"cell glows with stored power. It is fully charged.",
	}
	if room, ok := w.Rooms[l.randomRoom(w)]; ok {
		room.Properties["power_zone"] = "true"
	}
	return pkg
}

func (l *Library) buildLockKey(w *world.World) *Package {
	pkg := newPackage(world.SubsystemLockKey, "Lock & Key", "Doors and containers require keys")
	pkg.Objects["master_key"] = &world.GameObject{
		ID:   "master_key",
		Name: "master key",
		Description: "A heavy key that opens the locked door. " +
			"Someone left it here, either careless or confident " +
			"that you would never find it.",
		Location: l.randomRoom(w),
		Takeable: true,
		Verbs:    []string{"take", "drop", "examine", "use"},
	}
	pkg.Transformations["door_unlocked"] = &world.Transformation{
		ID:            "door_unlocked",
		ObjectID:      "master_key",
		State:         "normal",
		TurnsRequired: 1,
		NewState:      "used",
		Message: "The key fits. The lock disengages with a heavy clunk. " +
			"The door swings open. Whatever was locked away is now accessible.",
	}
	// The third room gets locked, or the last one in small worlds.
	ids := w.SortedRoomIDs()
	if len(ids) > 0 {
		idx := 2
		if idx > len(ids)-1 {
			idx = len(ids) - 1
		}
		if room, ok := w.Rooms[ids[idx]]; ok {
			room.Properties["locked"] = "true"
		}
	}
	return pkg
}

func (l *Library) buildCrafting(w *world.World) *Package {
	pkg := newPackage(world.SubsystemCrafting, "Crafting / Combining", "Combine objects to create new ones")
	pkg.Objects["ingredient_a"] = &world.GameObject{
		ID:   "ingredient_a",
		Name: "component A",
		Description: "One half of a combination. Alone it does little. " +
			"Combined with the right partner, it becomes something more.",
		Location: l.randomRoom(w),
		Takeable: true,
		Verbs:    []string{"take", "drop", "examine", "use"},
	}
	pkg.Objects["ingredient_b"] = &world.GameObject{
		ID:   "ingredient_b",
		Name: "component B",
		Description: "The complementary component. There is a satisfaction " +
			"in finding the thing that completes another thing.",
		Location: l.randomRoom(w),
		Takeable: true,
		Verbs:    []string{"take", "drop", "examine", "use"},
	}
	pkg.Objects["crafted_result"] = &world.GameObject{
		ID:   "crafted_result",
		Name: "combined item",
		Description: "The result of combining components A and B. " +
			"Something new exists that did not exist before. " +
			"This is the point of crafting.",
		Location:      world.LocationNone,
		Takeable:      true,
		Consumable:    true,
		HealthRestore: 30,
		Verbs:         []string{"take", "drop", "examine", "use"},
	}
	pkg.Transformations["craft_combine"] = &world.Transformation{
		ID:             "craft_combine",
		ObjectID:       "ingredient_a",
		State:          "normal",
		TurnsRequired:  1,
		NewState:       "combined",
		NewObjectID:    "crafted_result",
		RequiresObject: "ingredient_b",
		Message: "You combine the two components. There is a moment of " +
			"uncertainty and then, yes. The combined item exists. " +
			"It is more than the sum of its parts.",
	}
	return pkg
}

func (l *Library) buildExplosives(w *world.World) *Package {
	pkg := newPackage(world.SubsystemExplosives, "Timed Explosives", "Place charges, arm, detonate")
	pkg.Objects["explosive_charge"] = &world.GameObject{
		ID:   "explosive_charge",
		Name: "explosive charge",
		Description: "A shaped explosive charge. Treat with appropriate respect. " +
			"Requires a detonator to activate. Place at the target, " +
			"arm with the detonator, move to safe distance.",
		Location: l.randomRoom(w),
		Takeable: true,
		Weapon:   true,
		Damage:   80,
		Verbs:    []string{"take", "drop", "examine", "use", "place"},
	}
	pkg.Objects["detonator"] = &world.GameObject{
		ID:   "detonator",
		Name: "detonator",
		Description: "A remote detonation device. Works at range. " +
			"Press when clear of the blast radius.",
		Location: l.randomRoom(w),
		Takeable: true,
		Verbs:    []string{"take", "drop", "examine", "use"},
	}
	pkg.Transformations["arm_explosive"] = &world.Transformation{
		ID:             "arm_explosive",
		ObjectID:       "explosive_charge",
		State:          "placed",
		TurnsRequired:  1,
		NewState:       "armed",
		RequiresObject: "detonator",
		Message: "You connect the detonator. A small LED blinks red. " +
			"The charge is armed. Time to move.",
	}
	pkg.Transformations["detonate"] = &world.Transformation{
		ID:            "detonate",
		ObjectID:      "explosive_charge",
		State:         "armed",
		TurnsRequired: 3,
		NewState:      "detonated",
		Message: "The explosion is larger than expected. The structural " +
			"damage is extensive. The objective is achieved. " +
			"Mission success.",
	}
	return pkg
}

func (l *Library) buildDisguise(w *world.World) *Package {
	pkg := newPackage(world.SubsystemDisguise, "Disguise System", "Wear disguises to change NPC reactions")
	pkg.Objects["disguise_item"] = &world.GameObject{
		ID:   "disguise_item",
		Name: "disguise",
		Description: "A convincing disguise. Put it on and the world sees " +
			"someone different. Being someone else, even briefly, " +
			"changes what is possible.",
		Location: l.randomRoom(w),
		Takeable: true,
		Wearable: true,
		Verbs:    []string{"take", "drop", "examine", "wear", "use"},
	}
	pkg.Transformations["wear_disguise"] = &world.Transformation{
		ID:            "wear_disguise",
		ObjectID:      "disguise_item",
		State:         "normal",
		TurnsRequired: 1,
		NewState:      "wearing",
		Message: "You put on the disguise. You look in the nearest " +
			"reflective surface and see someone else entirely. " +
			"The transformation is complete. Act the part.",
	}
	return pkg
}

func (l *Library) buildBribery(w *world.World) *Package {
	pkg := newPackage(world.SubsystemBribery, "Bribery / Persuasion", "Items that neutralize hostile characters")
	pkg.Objects["bribe_item"] = &world.GameObject{
		ID:   "bribe_item",
		Name: "bribe",
		Description: "Something that everyone wants. Currency is fungible " +
			"but desire is specific. This is the right currency " +
			"for this particular situation.",
		Location:   l.randomRoom(w),
		Takeable:   true,
		Consumable: true,
		BribeValue: "high",
		Verbs:      []string{"take", "drop", "examine", "use", "give"},
	}
	pkg.Transformations["bribe_used"] = &world.Transformation{
		ID:            "bribe_used",
		ObjectID:      "bribe_item",
		State:         "normal",
		TurnsRequired: 1,
		NewState:      "consumed",
		Message: "You offer the bribe. There is a moment, calculation " +
			"behind their eyes, and then acceptance. They look away. " +
			"You have purchased temporary blindness. Use it well.",
	}
	return pkg
}

func (l *Library) buildMedical(w *world.World) *Package {
	pkg := newPackage(world.SubsystemMedical, "Medical System", "Heal wounded, perform procedures")
	pkg.Objects["medical_kit"] = &world.GameObject{
		ID:   "medical_kit",
		Name: "medical kit",
		Description: "A field medical kit containing the essentials. " +
			"Not everything, but enough. In the right hands " +
			"it is more powerful than any weapon here.",
		Location:      l.randomRoom(w),
		Takeable:      true,
		Consumable:    true,
		HealthRestore: 40,
		Verbs:         []string{"take", "drop", "examine", "use"},
	}
	pkg.Objects["advanced_medicine"] = &world.GameObject{
		ID:   "advanced_medicine",
		Name: "advanced medicine",
		Description: "High-grade medical supplies. Requires skill to use " +
			"correctly. In the right hands, recovers what seemed lost.",
		Location:      l.randomRoom(w),
		Takeable:      true,
		Consumable:    true,
		HealthRestore: 70,
		Verbs:         []string{"take", "drop", "examine", "use"},
	}
	pkg.Transformations["apply_treatment"] = &world.Transformation{
		ID:            "apply_treatment",
		ObjectID:      "medical_kit",
		State:         "normal",
		TurnsRequired: 2,
		NewState:      "used",
		Message: "You apply the treatment with care and precision. " +
			"The improvement is immediate. There is no more " +
			"reliable satisfaction than healing working as intended.",
	}
	return pkg
}

func (l *Library) buildMagic(w *world.World) *Package {
	pkg := newPackage(world.SubsystemMagic, "Magic Casting", "Spell words transform rooms and objects")
	pkg.Objects["spell_scroll"] = &world.GameObject{
		ID:   "spell_scroll",
		Name: "spell scroll",
		Description: "A scroll containing an incantation. The words are " +
			"precise. Power without precision is just noise. " +
			"Read the words correctly and something changes.",
		Location: l.randomRoom(w),
		Takeable: true,
		Verbs:    []string{"take", "drop", "examine", "read", "cast", "use"},
	}
	pkg.Objects["enchanted_item"] = &world.GameObject{
		ID:   "enchanted_item",
		Name: "enchanted item",
		Description: "An object altered by magical means. It is the same " +
			"object it was and also entirely different. " +
			"Magic specializes in this kind of paradox.",
		Location: world.LocationNone,
		Takeable: true,
		Verbs:    []string{"take", "drop", "examine", "use"},
	}
	pkg.Transformations["cast_spell"] = &world.Transformation{
		ID:            "cast_spell",
		ObjectID:      "spell_scroll",
		State:         "normal",
		TurnsRequired: 1,
		NewState:      "cast",
		NewObjectID:   "enchanted_item",
		Message: "The words of the incantation form and release. " +
			"There is a moment where the laws of the world " +
			"negotiate with the instruction you have just given them. " +
			"The spell takes effect.",
	}
	return pkg
}

func (l *Library) buildTeleportation(w *world.World) *Package {
	ids := w.SortedRoomIDs()
	dest := ""
	destName := ""
	if len(ids) > 0 {
		dest = ids[len(ids)-1]
		destName = w.Rooms[dest].Name
	}
	pkg := newPackage(world.SubsystemTeleportation, "Teleportation", "Portal devices transport players between locations")
	pkg.Objects["portal_device"] = &world.GameObject{
		ID:   "portal_device",
		Name: "portal device",
		Description: "A device that folds space. The destination is encoded " +
			"in its configuration. Activate it and you are somewhere " +
			"else. The transition is instantaneous and profoundly disorienting.",
		Location: l.randomRoom(w),
		Takeable: true,
		Verbs:    []string{"take", "drop", "examine", "activate", "use"},
	}
	pkg.Transformations["teleport_activate"] = &world.Transformation{
		ID:            "teleport_activate",
		ObjectID:      "portal_device",
		State:         "normal",
		TurnsRequired: 1,
		NewState:      "activated",
		NewLocation:   dest,
		Message: fmt.Sprintf("You activate the device. Space folds. You are "+
			"somewhere else entirely. You are in the %s.", destName),
	}
	return pkg
}

func (l *Library) buildTemperature(w *world.World) *Package {
	pkg := newPackage(world.SubsystemTemperature, "Temperature Physics", "Water freezes, ice melts, temperature zones affect objects")
	pkg.Objects["water_container"] = &world.GameObject{
		ID:          "water_container",
		Name:        "container of water",
		Description: "Water in a container. Its state depends entirely on temperature.",
		Location:    l.randomRoom(w),
		Takeable:    true,
		Verbs:       []string{"take", "drop", "examine", "use"},
	}
	pkg.Objects["ice_block"] = &world.GameObject{
		ID:   "ice_block",
		Name: "block of ice",
		Description: "Frozen water. In a cold zone it stays frozen. " +
			"Elsewhere it will return to what it was.",
		Location: world.LocationNone,
		Takeable: true,
		Verbs:    []string{"take", "drop", "examine", "use"},
	}
	pkg.Transformations["water_freezes"] = &world.Transformation{
		ID:               "water_freezes",
		ObjectID:         "water_container",
		State:            "normal",
		TurnsRequired:    3,
		NewState:         "frozen",
		NewObjectID:      "ice_block",
		LocationProperty: "cold_zone",
		Message: "The water in the container begins to crystallize. " +
			"The temperature here is doing exactly what temperature does. " +
			"The container now holds a solid block of ice.",
	}
	pkg.Transformations["ice_melts"] = &world.Transformation{
		ID:               "ice_melts",
		ObjectID:         "ice_block",
		State:            "frozen",
		TurnsRequired:    4,
		NewState:         "normal",
		NewObjectID:      "water_container",
		LocationProperty: "warm_zone",
		Message: "The ice block softens. Drops form. The solid becomes " +
			"liquid again with the unhurried patience of physics " +
			"doing what physics does.",
	}
	// Give the zones somewhere to exist so both rules can actually fire.
	if room, ok := w.Rooms[l.randomRoom(w)]; ok {
		room.Properties["cold_zone"] = "true"
	}
	if room, ok := w.Rooms[l.randomRoom(w)]; ok {
		room.Properties["warm_zone"] = "true"
	}
	return pkg
}

func (l *Library) buildGrowth(w *world.World) *Package {
	pkg := newPackage(world.SubsystemGrowth, "Growth / Decay", "Plants grow, food spoils over time")
	pkg.Objects["seed"] = &world.GameObject{
		ID:   "seed",
		Name: "seed",
		Description: "A seed. Contains the complete instructions for becoming " +
			"something much larger. Currently not using any of them.",
		Location: l.randomRoom(w),
		Takeable: true,
		Verbs:    []string{"take", "drop", "examine", "plant", "use"},
	}
	pkg.Objects["grown_plant"] = &world.GameObject{
		ID:   "grown_plant",
		Name: "grown plant",
		Description: "The seed followed its instructions. It is now a plant. " +
			"This is what seeds do when given time and a suitable location.",
		Location:      world.LocationNone,
		Takeable:      true,
		Consumable:    true,
		HealthRestore: 20,
		Verbs:         []string{"take", "drop", "examine", "eat", "use"},
	}
	pkg.Transformations["seed_grows"] = &world.Transformation{
		ID:            "seed_grows",
		ObjectID:      "seed",
		State:         "planted",
		TurnsRequired: 8,
		NewState:      "grown",
		NewObjectID:   "grown_plant",
		Message: "The seed has grown. It took time, eight turns to be " +
			"precise, but the instructions encoded in the seed have " +
			"been executed faithfully. A plant exists where there was none.",
	}
	return pkg
}

func (l *Library) buildAlienTech(w *world.World) *Package {
	pkg := newPackage(world.SubsystemAlienTech, "Alien Technology", "Scan and activate alien artifacts")
	pkg.Objects["alien_artifact"] = &world.GameObject{
		ID:   "alien_artifact",
		Name: "alien artifact",
		Description: "An object not made by human hands. The materials are " +
			"unidentifiable. The purpose is unclear. The craftsmanship " +
			"is either primitive or so advanced it looks primitive.",
		Location: l.randomRoom(w),
		Takeable: true,
		Verbs:    []string{"take", "drop", "examine", "scan", "activate", "use"},
	}
	pkg.Objects["scanner_device"] = &world.GameObject{
		ID:   "scanner_device",
		Name: "scanner device",
		Description: "A scanning device that analyzes non-terrestrial objects. " +
			"Point at artifact. Read output. Repeat until understanding " +
			"approaches something resembling certainty.",
		Location: l.randomRoom(w),
		Takeable: true,
		Verbs:    []string{"take", "drop", "examine", "scan", "use"},
	}
	pkg.Objects["activated_artifact"] = &world.GameObject{
		ID:   "activated_artifact",
		Name: "activated alien artifact",
		Description: "The artifact is doing something now. What it is doing " +
			"is difficult to describe precisely. The effect is " +
			"measurable even if the mechanism is not understood.",
		Location: world.LocationNone,
		Takeable: true,
		Verbs:    []string{"take", "drop", "examine", "use"},
	}
	pkg.Transformations["alien_scan"] = &world.Transformation{
		ID:             "alien_scan",
		ObjectID:       "alien_artifact",
		State:          "dormant",
		TurnsRequired:  2,
		NewState:       "analyzed",
		RequiresObject: "scanner_device",
		Message: "The scanner reads the artifact. The output is a cascade " +
			"of data that means something to someone who understands it. " +
			"You understand enough to proceed to activation.",
	}
	pkg.Transformations["alien_activate"] = &world.Transformation{
		ID:            "alien_activate",
		ObjectID:      "alien_artifact",
		State:         "analyzed",
		TurnsRequired: 1,
		NewState:      "active",
		NewObjectID:   "activated_artifact",
		Message: "The artifact activates. The change is immediate and " +
			"unmistakable. You have caused something non-human to " +
			"do what it was built to do. This feels significant.",
	}
	return pkg
}
