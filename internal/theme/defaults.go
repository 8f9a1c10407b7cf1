package theme

import "github.com/cory-johannsen/worldgen/internal/world"

// Defaults is the complete bundle derived from a theme classification.
// Every field of every bundle has a value; the compiler always has a full
// configuration to work with and never needs to null-check a theme.
type Defaults struct {
	Tag world.ThemeTag

	// Image style text.
	SceneSuffix    string
	NegativePrompt string

	// Combat scalars.
	BaseDamage     int
	AggressionLow  float64
	AggressionHigh float64
	BossHealth     int
	MinionHealth   int

	// World structure defaults.
	RoomPrefixes      []string
	ObjectArchetypes  []string
	DefaultSubsystems []world.SubsystemTag
	ExtraVerbs        []string

	// Tone words used in templated descriptions.
	FlavorAdjective string
	FlavorNoun      string
}

// commonNegative is the negative-prompt boilerplate shared by every theme.
const commonNegative = "cartoon, anime, text, watermark, stock photo, logo, " +
	"signature, fake text, alamy, shutterstock, getty, letters"

var defaultsTable = map[world.ThemeTag]Defaults{
	world.ThemeSciFi: {
		Tag: world.ThemeSciFi,
		SceneSuffix: "classified military installation, alien technology, " +
			"science fiction, cinematic lighting, photorealistic, " +
			"highly detailed, atmospheric, dramatic shadows, 8k quality",
		NegativePrompt: "blurry, low quality, distorted, fantasy, medieval, magic, " +
			"dragons, swords, " + commonNegative + ", cobblestone, torch, forest, dungeon",
		BaseDamage:     22,
		AggressionLow:  0.15,
		AggressionHigh: 0.75,
		BossHealth:     150,
		MinionHealth:   55,
		RoomPrefixes: []string{
			"Laboratory", "Control Room", "Hangar", "Corridor",
			"Reactor Chamber", "Observation Deck", "Launch Bay",
			"Quarantine Zone", "Archive Vault", "Engineering Bay",
		},
		ObjectArchetypes: []string{
			"energy_cell", "scanner", "access_card", "data_pad",
			"plasma_rifle", "alien_artifact", "radiation_suit",
		},
		DefaultSubsystems: []world.SubsystemTag{
			world.SubsystemEnergy, world.SubsystemTeleportation, world.SubsystemAlienTech,
		},
		ExtraVerbs:      []string{"scan", "activate", "insert", "launch", "program"},
		FlavorAdjective: "classified",
		FlavorNoun:      "installation",
	},
	world.ThemeMilitary: {
		Tag: world.ThemeMilitary,
		SceneSuffix: "military camp, wartime, soldiers, olive drab, " +
			"cinematic, dramatic lighting, photorealistic, " +
			"historical, war drama, gritty realistic",
		NegativePrompt: "blurry, low quality, fantasy, aliens, futuristic, " +
			"modern technology, " + commonNegative + ", clean, pristine, comfortable, colorful",
		BaseDamage:     20,
		AggressionLow:  0.2,
		AggressionHigh: 0.8,
		BossHealth:     120,
		MinionHealth:   50,
		RoomPrefixes: []string{
			"Barracks", "Command Post", "Motor Pool", "Mess Hall",
			"Infirmary", "Armory", "Briefing Room", "Guard Post",
			"Supply Depot", "Communications Center",
		},
		ObjectArchetypes: []string{
			"rifle", "ration", "dog_tags", "map", "radio",
			"explosive", "medkit", "binoculars", "uniform",
		},
		DefaultSubsystems: []world.SubsystemTag{
			world.SubsystemExplosives, world.SubsystemMedical, world.SubsystemDisguise,
		},
		ExtraVerbs:      []string{"attack", "radio", "report", "defuse", "treat"},
		FlavorAdjective: "battle-worn",
		FlavorNoun:      "outpost",
	},
	world.ThemeFantasy: {
		Tag: world.ThemeFantasy,
		SceneSuffix: "fantasy RPG environment, medieval, atmospheric lighting, " +
			"cinematic, detailed, stone walls, torchlight, " +
			"mystical, high quality, dramatic",
		NegativePrompt: "blurry, low quality, distorted, modern, futuristic, " +
			commonNegative + ", alien, sci-fi",
		BaseDamage:     18,
		AggressionLow:  0.2,
		AggressionHigh: 0.7,
		BossHealth:     130,
		MinionHealth:   45,
		RoomPrefixes: []string{
			"Great Hall", "Dungeon", "Tower", "Library", "Chapel",
			"Armory", "Throne Room", "Garden", "Crypt", "Tavern",
		},
		ObjectArchetypes: []string{
			"sword", "scroll", "potion", "key", "torch",
			"spell_book", "amulet", "gold_coins", "lockpick",
		},
		DefaultSubsystems: []world.SubsystemTag{
			world.SubsystemMagic, world.SubsystemLockKey, world.SubsystemCrafting,
		},
		ExtraVerbs:      []string{"cast", "read", "pray", "enchant", "forge"},
		FlavorAdjective: "ancient",
		FlavorNoun:      "realm",
	},
	world.ThemeDomestic: {
		Tag: world.ThemeDomestic,
		SceneSuffix: "bright cheerful interior, pastel colors, cozy home, " +
			"soft lighting, photorealistic, detailed, warm atmosphere, " +
			"inviting, lifestyle photography quality",
		NegativePrompt: "blurry, low quality, dark, scary, violent, weapons, " +
			"military, aliens, medieval, " + commonNegative + ", gritty, dangerous",
		BaseDamage:     5,
		AggressionLow:  0.05,
		AggressionHigh: 0.2,
		BossHealth:     60,
		MinionHealth:   30,
		RoomPrefixes: []string{
			"Living Room", "Kitchen", "Bedroom", "Backyard",
			"Garage", "Basement", "Attic", "Dining Room",
			"Fashion Studio", "Dream Closet",
		},
		ObjectArchetypes: []string{
			"fashion_item", "food", "gift", "toy", "phone",
			"outfit", "accessory", "recipe", "photo",
		},
		DefaultSubsystems: []world.SubsystemTag{
			world.SubsystemCrafting, world.SubsystemGrowth,
		},
		ExtraVerbs:      []string{"wear", "cook", "give", "call", "decorate"},
		FlavorAdjective: "cheerful",
		FlavorNoun:      "home",
	},
	world.ThemeHorror: {
		Tag: world.ThemeHorror,
		SceneSuffix: "horror, dark atmosphere, shadows, eerie lighting, " +
			"photorealistic, detailed, fog, abandoned, decaying, " +
			"cinematic horror, dramatic chiaroscuro",
		NegativePrompt: "blurry, low quality, bright, cheerful, colorful, " +
			commonNegative + ", modern, clean, comfortable, futuristic",
		BaseDamage:     25,
		AggressionLow:  0.3,
		AggressionHigh: 0.9,
		BossHealth:     160,
		MinionHealth:   60,
		RoomPrefixes: []string{
			"Foyer", "Library", "Cellar", "Attic", "Crypt",
			"Laboratory", "Chapel", "Ballroom", "Servants Quarters",
			"Hidden Room",
		},
		ObjectArchetypes: []string{
			"candle", "journal", "crucifix", "key", "photograph",
			"ritual_item", "weapon", "potion", "map",
		},
		DefaultSubsystems: []world.SubsystemTag{
			world.SubsystemLockKey, world.SubsystemMagic, world.SubsystemTemperature,
		},
		ExtraVerbs:      []string{"hide", "flee", "investigate", "banish", "pray"},
		FlavorAdjective: "cursed",
		FlavorNoun:      "darkness",
	},
	world.ThemeAdventure: {
		Tag: world.ThemeAdventure,
		SceneSuffix: "adventure, exploration, jungle, ancient ruins, " +
			"cinematic, dramatic lighting, photorealistic, " +
			"detailed, atmospheric, discovery",
		NegativePrompt: "blurry, low quality, modern, urban, sci-fi, " +
			commonNegative + ", alien, fantasy magic",
		BaseDamage:     20,
		AggressionLow:  0.25,
		AggressionHigh: 0.75,
		BossHealth:     140,
		MinionHealth:   55,
		RoomPrefixes: []string{
			"Jungle Path", "Ancient Temple", "Treasure Chamber",
			"River Crossing", "Village", "Bazaar", "Cave",
			"Cliff Face", "Lost City", "Hidden Passage",
		},
		ObjectArchetypes: []string{
			"torch", "map", "rope", "artifact", "compass",
			"journal", "key", "gem", "whip", "explosives",
		},
		DefaultSubsystems: []world.SubsystemTag{
			world.SubsystemLockKey, world.SubsystemExplosives, world.SubsystemCrafting,
		},
		ExtraVerbs:      []string{"climb", "dig", "photograph", "decipher", "swing"},
		FlavorAdjective: "ancient",
		FlavorNoun:      "ruins",
	},
	world.ThemeSitcom: {
		Tag: world.ThemeSitcom,
		SceneSuffix: "sitcom set, warm interior lighting, 1960s 1970s style, " +
			"photorealistic, detailed, cozy American home, " +
			"television production quality, nostalgic",
		NegativePrompt: "blurry, low quality, dark, scary, violent, military, " +
			"alien, medieval, " + commonNegative + ", gritty",
		BaseDamage:     8,
		AggressionLow:  0.05,
		AggressionHigh: 0.25,
		BossHealth:     70,
		MinionHealth:   35,
		RoomPrefixes: []string{
			"Living Room", "Kitchen", "Front Stoop", "Diner",
			"Office", "Apartment", "Backyard", "Garage",
			"Neighbor's House", "Town Square",
		},
		ObjectArchetypes: []string{
			"prop", "disguise", "bribe_item", "letter",
			"phone", "food", "costume", "newspaper",
		},
		DefaultSubsystems: []world.SubsystemTag{
			world.SubsystemDisguise, world.SubsystemBribery,
		},
		ExtraVerbs:      []string{"joke", "disguise", "scheme", "confess", "bribe"},
		FlavorAdjective: "zany",
		FlavorNoun:      "neighborhood",
	},
	world.ThemeDisco: {
		Tag: world.ThemeDisco,
		SceneSuffix: "1970s disco club, dance floor, mirror ball, strobe lights, " +
			"neon glow, polyester fashion, fog machine, cinematic, " +
			"photorealistic, atmospheric, high energy, dramatic",
		NegativePrompt: "blurry, low quality, daylight, outdoor, fantasy, military, " +
			commonNegative + ", medieval, futuristic",
		BaseDamage:     10,
		AggressionLow:  0.05,
		AggressionHigh: 0.40,
		BossHealth:     90,
		MinionHealth:   40,
		RoomPrefixes: []string{
			"Dance Floor", "VIP Lounge", "DJ Booth", "Bar",
			"Backstage", "Coat Check", "Balcony", "Hidden Room",
			"Entrance", "Bathroom",
		},
		ObjectArchetypes: []string{
			"disco_ball", "vinyl_record", "velvet_rope", "champagne",
			"strobe_light", "fog_machine", "sequined_outfit", "pass",
		},
		DefaultSubsystems: nil,
		ExtraVerbs:        []string{"dance", "spin", "schmooze", "bribe", "sneak"},
		FlavorAdjective:   "electric",
		FlavorNoun:        "dance floor",
	},
	world.ThemeNightclub: {
		Tag: world.ThemeNightclub,
		SceneSuffix: "upscale nightclub, ambient lighting, moody atmosphere, " +
			"cocktail lounge, neon signs, photorealistic, dramatic, " +
			"high-end interior, cinematic quality",
		NegativePrompt: "blurry, low quality, daylight, outdoor, fantasy, military, " +
			commonNegative + ", medieval",
		BaseDamage:     12,
		AggressionLow:  0.1,
		AggressionHigh: 0.5,
		BossHealth:     85,
		MinionHealth:   40,
		RoomPrefixes: []string{
			"Main Bar", "VIP Section", "Dance Floor", "Backstage",
			"Rooftop", "Private Booth", "Coat Check", "Green Room",
			"Entrance", "Back Office",
		},
		ObjectArchetypes: []string{
			"cocktail", "velvet_rope", "id_scanner", "guest_list",
			"cash_envelope", "key_card", "phone",
		},
		DefaultSubsystems: nil,
		ExtraVerbs:        []string{"order", "schmooze", "bribe", "sneak", "photograph"},
		FlavorAdjective:   "exclusive",
		FlavorNoun:        "venue",
	},
	world.ThemeCrimeSpy: {
		Tag: world.ThemeCrimeSpy,
		SceneSuffix: "spy thriller, noir, cinematic, dramatic shadows, " +
			"photorealistic, detailed, atmospheric, 1960s aesthetic, " +
			"tension, suspense, professional quality",
		NegativePrompt: "blurry, low quality, fantasy, alien, medieval, " +
			commonNegative + ", cheerful, colorful",
		BaseDamage:     22,
		AggressionLow:  0.3,
		AggressionHigh: 0.8,
		BossHealth:     130,
		MinionHealth:   60,
		RoomPrefixes: []string{
			"Safehouse", "Embassy Ballroom", "Control Room",
			"Vault", "Interrogation Room", "Rooftop",
			"Casino Floor", "Underground Lab", "Helipad",
		},
		ObjectArchetypes: []string{
			"pistol", "identity_papers", "gadget", "microfilm",
			"cipher", "key", "disguise", "explosive", "radio",
		},
		DefaultSubsystems: []world.SubsystemTag{
			world.SubsystemDisguise, world.SubsystemLockKey, world.SubsystemExplosives,
		},
		ExtraVerbs:      []string{"hack", "decode", "photograph", "tail", "interrogate"},
		FlavorAdjective: "clandestine",
		FlavorNoun:      "operation",
	},
	world.ThemeOriginal: {
		Tag: world.ThemeOriginal,
		SceneSuffix: "detailed environment, cinematic lighting, photorealistic, " +
			"atmospheric, high quality, dramatic",
		NegativePrompt: "blurry, low quality, distorted, ugly, " + commonNegative,
		BaseDamage:     15,
		AggressionLow:  0.2,
		AggressionHigh: 0.6,
		BossHealth:     100,
		MinionHealth:   45,
		RoomPrefixes: []string{
			"Entrance", "Main Hall", "Side Room", "Upper Level",
			"Lower Level", "Outer Area", "Inner Chamber",
			"Hidden Area", "Final Room",
		},
		ObjectArchetypes: []string{"key", "weapon", "consumable", "document", "tool"},
		DefaultSubsystems: []world.SubsystemTag{
			world.SubsystemLockKey,
		},
		ExtraVerbs:      nil,
		FlavorAdjective: "mysterious",
		FlavorNoun:      "place",
	},
}

// GetDefaults returns the complete defaults bundle for a tag.
//
// Postcondition: Always returns a complete bundle; unknown tags fall back
// to the ThemeOriginal bundle.
func GetDefaults(tag world.ThemeTag) Defaults {
	if d, ok := defaultsTable[tag]; ok {
		return d
	}
	return defaultsTable[world.ThemeOriginal]
}

// DefaultsFor classifies worldName and returns the matching bundle in one
// step.
func DefaultsFor(worldName string) Defaults {
	return GetDefaults(Classify(worldName))
}
