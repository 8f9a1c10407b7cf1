// Package theme classifies a world name into a theme tag and supplies the
// complete defaults bundle for that tag. Classification is a pure function
// over a static ordered keyword table: adding a theme is adding rows, not
// code.
package theme

import (
	"regexp"
	"strings"

	"github.com/cory-johannsen/worldgen/internal/world"
)

// keywordRow pairs a theme tag with its trigger keywords. The table is a
// slice, not a map: declaration order is the documented tie-break rule for
// equally-scored tags.
type keywordRow struct {
	Tag      world.ThemeTag
	Keywords []string
}

// keywordTable is the classification table. First-declared wins ties.
var keywordTable = []keywordRow{
	{world.ThemeSciFi, []string{
		"area 51", "alien", "space", "star trek", "galaxy",
		"mars", "ufo", "nasa", "robot", "android", "scifi",
		"sci-fi", "stargate", "battlestar", "moon", "orbit",
		"cosmic", "nebula", "federation", "empire",
	}},
	{world.ThemeMilitary, []string{
		"mash", "hogan", "stalag", "army", "combat", "war",
		"military", "soldier", "battalion", "platoon", "fort",
		"barracks", "mission impossible", "a-team", "seal",
		"ranger", "special ops", "frontline", "vietnam",
		"korean", "wwii", "ww2", "normandy", "patrol",
	}},
	{world.ThemeFantasy, []string{
		"hogwarts", "wizard", "dragon", "medieval", "castle",
		"zork", "dungeon", "magic", "elf", "dwarf", "sword",
		"quest", "realm", "kingdom", "sorcerer", "witch",
		"enchanted", "fantasy", "rpg", "adventure", "hero",
	}},
	{world.ThemeDomestic, []string{
		"barbie", "full house", "brady", "family", "home",
		"house", "suburb", "kitchen", "cozy", "domestic",
		"sitcom", "neighborhood", "school", "mall", "shop",
		"bakery", "cafe", "dollhouse", "dream house",
	}},
	{world.ThemeHorror, []string{
		"haunted", "halloween", "dracula", "vampire", "zombie",
		"horror", "ghost", "dark", "mansion", "cemetery",
		"asylum", "cursed", "forbidden", "cthulhu", "evil",
		"nightmare", "terror", "shadow", "silent hill",
	}},
	{world.ThemeAdventure, []string{
		"indiana jones", "pirate", "jungle", "explorer",
		"treasure", "expedition", "safari", "island", "temple",
		"ruins", "artifact", "archaeology", "map", "tomb",
		"raiders", "national treasure", "uncharted",
	}},
	{world.ThemeSitcom, []string{
		"bewitched", "i love lucy", "gilligan", "cheers",
		"seinfeld", "friends", "office", "parks", "frasier",
		"taxi", "mork", "three company", "laverne", "happy days",
		"fonzie", "sam malone", "norm", "cliff",
	}},
	{world.ThemeDisco, []string{
		"studio 54", "disco", "dance club", "nightclub", "dance floor",
		"saturday night fever", "dance hall", "roller rink", "boogie",
		"dj", "turntable", "rave", "club night", "discotheque",
	}},
	{world.ThemeNightclub, []string{
		"bar", "nightclub", "lounge", "speakeasy", "jazz club",
		"cocktail", "vip lounge", "rooftop bar", "cabaret",
		"burlesque", "velvet rope", "bouncer", "bartender",
	}},
	{world.ThemeCrimeSpy, []string{
		"james bond", "spy", "agent", "cia", "mi6", "fbi",
		"detective", "noir", "mystery", "crime", "heist",
		"get smart", "man from uncle", "magnum", "columbo",
		"sherlock", "poirot", "morse", "hitman",
	}},
}

// longKeywordScore is awarded to keywords longer than 6 characters; shorter
// keywords score 1. Longer keywords are more specific and deserve more pull.
const longKeywordScore = 2

// Classify maps a world name to a theme tag.
//
// The function is pure and total: it never fails, falling back to
// ThemeOriginal when no keyword matches. Matching is whole-word against
// the ordered keyword table; ties resolve to the first-declared tag.
func Classify(worldName string) world.ThemeTag {
	name := strings.ToLower(strings.TrimSpace(worldName))

	bestTag := world.ThemeOriginal
	bestScore := 0
	for _, row := range keywordTable {
		score := 0
		for _, kw := range row.Keywords {
			if MatchWord(name, kw) {
				if len(kw) > 6 {
					score += longKeywordScore
				} else {
					score++
				}
			}
		}
		// Strictly-greater keeps the first-declared tag on ties.
		if score > bestScore {
			bestScore = score
			bestTag = row.Tag
		}
	}
	return bestTag
}

// MatchWord reports whether kw occurs in name at word boundaries.
// "bar" must not fire inside "barracks" or "barney". Role inference
// shares this matcher so names and keywords resolve identically.
func MatchWord(name, kw string) bool {
	pattern := `(?:^|[^a-z0-9])` + regexp.QuoteMeta(kw) + `(?:$|[^a-z0-9])`
	matched, err := regexp.MatchString(pattern, name)
	if err != nil {
		return false
	}
	return matched
}

// Tags returns every known theme tag in declaration order, ending with the
// fallback tag.
func Tags() []world.ThemeTag {
	tags := make([]world.ThemeTag, 0, len(keywordTable)+1)
	for _, row := range keywordTable {
		tags = append(tags, row.Tag)
	}
	return append(tags, world.ThemeOriginal)
}
