package theme

import "strings"

// settingOverride maps a discovered physical setting keyword to a scene
// suffix override. A sitcom set on a tropical island should not render as
// "warm interior lighting, cozy American home"; the setting wins over the
// genre whenever the naming collaborator discovers one.
type settingOverride struct {
	// Keyword is an uppercase substring matched against the setting.
	Keyword string
	// SceneSuffix replaces the theme's positive style text.
	SceneSuffix string
	// NegativeAdditions is appended to the cleaned theme negative prompt.
	NegativeAdditions string
}

// settingOverrides is ordered: first match wins.
var settingOverrides = []settingOverride{
	{"TROPICAL",
		"tropical island setting, lush jungle, palm trees, sandy beach, " +
			"ocean backdrop, warm sunlight, photorealistic, cinematic, " +
			"vivid colors, castaway adventure, 1960s style",
		"urban, city, indoor studio, cozy home, office"},
	{"ISLAND",
		"tropical island setting, lush jungle, palm trees, sandy beach, " +
			"ocean backdrop, warm sunlight, photorealistic, cinematic, " +
			"vivid colors, castaway adventure, 1960s style",
		"urban, city, indoor studio, cozy home, office"},
	{"JUNKYARD",
		"urban junkyard, piled salvage and scrap metal, rusty cars and " +
			"appliances, gritty 1970s Los Angeles, photorealistic, cinematic, " +
			"warm afternoon light, cluttered outdoor yard, nostalgic",
		"clean, sterile, suburban, forest, ocean"},
	{"SALVAGE",
		"urban junkyard, piled salvage and scrap metal, rusty cars and " +
			"appliances, gritty 1970s Los Angeles, photorealistic, cinematic, " +
			"warm afternoon light",
		"clean, sterile, suburban, forest, ocean"},
	{"POLICE",
		"police precinct interior, 1970s detective squad room, metal desks, " +
			"fluorescent lighting, wanted posters, photorealistic, cinematic, " +
			"gritty urban atmosphere, television production quality, nostalgic",
		"outdoor, tropical, fantasy, suburban home"},
	{"PRECINCT",
		"police precinct interior, 1970s detective squad room, metal desks, " +
			"fluorescent lighting, wanted posters, photorealistic, cinematic, " +
			"gritty urban atmosphere",
		"outdoor, tropical, fantasy, suburban home"},
	{"FARM",
		"rural farm setting, green fields, wooden barn, 1960s American " +
			"countryside, photorealistic, warm natural light, pastoral " +
			"atmosphere, nostalgic",
		"urban, city, tropical, ocean"},
	{"MILITARY",
		"military field hospital, olive drab tents, Korean war era, " +
			"photorealistic, cinematic, dramatic shadows, wartime atmosphere",
		"clean, suburban, tropical, cheerful"},
	{"HOSPITAL",
		"military field hospital, olive drab tents, surgical equipment, " +
			"Korean war era, photorealistic, cinematic, dramatic shadows, " +
			"wartime atmosphere",
		"clean, suburban, tropical, cheerful"},
	{"CRUISE",
		"luxury cruise ship interior, 1970s ocean liner, wood paneling, " +
			"porthole windows, nautical decor, photorealistic, cinematic, " +
			"warm lighting",
		"outdoor jungle, urban, military"},
	{"SHIP",
		"ship deck and interior, nautical setting, ocean horizon, ropes and " +
			"rigging, photorealistic, cinematic, warm lighting",
		"urban, city, suburban"},
	{"SPACE",
		"space station interior, zero gravity, stars through portholes, " +
			"futuristic technology, photorealistic, cinematic, dramatic " +
			"lighting, sci-fi atmosphere",
		"outdoor, tropical, medieval, suburban"},
	{"HAUNTED",
		"haunted Victorian mansion, dark corridors, cobwebs, candlelight, " +
			"gothic atmosphere, photorealistic, cinematic, dramatic shadows",
		"cheerful, bright, tropical, outdoor"},
	{"PRISON",
		"prisoner of war camp, World War II barracks, barbed wire, guard " +
			"towers, wooden bunks, photorealistic, cinematic, atmospheric, " +
			"dramatic shadows, wartime",
		"tropical, cheerful, suburban"},
	{"WESTERN",
		"American Old West frontier town, dusty main street, wooden saloon, " +
			"hitching posts, desert landscape, 1870s frontier atmosphere, " +
			"photorealistic, cinematic, warm golden sunlight, nostalgic western",
		"urban, modern, tropical, sci-fi, indoor studio"},
	{"FRONTIER",
		"American Old West frontier town, dusty main street, wooden saloon, " +
			"hitching posts, desert landscape, 1870s frontier atmosphere, " +
			"photorealistic, cinematic, warm golden sunlight, nostalgic western",
		"urban, modern, tropical, sci-fi, indoor studio"},
	{"SALOON",
		"frontier saloon interior, wooden bar, oil lamps, card tables, " +
			"wanted posters on wall, 1870s American West, photorealistic, " +
			"cinematic, warm amber lighting, dusty floorboards",
		"modern, urban, tropical, sci-fi"},
}

// ApplySetting returns the scene suffix and negative prompt to use given
// the physical setting discovered by the naming collaborator.
//
// Postcondition: With an empty or unmatched setting, returns the theme
// defaults unchanged. On a match, terms of the theme negative that now
// appear in the positive suffix are stripped before the override's
// negative additions are appended.
func ApplySetting(setting, themeSuffix, themeNegative string) (suffix, negative string) {
	if setting == "" {
		return themeSuffix, themeNegative
	}
	upper := strings.ToUpper(setting)
	for _, ov := range settingOverrides {
		if !strings.Contains(upper, ov.Keyword) {
			continue
		}
		suffixWords := make(map[string]struct{})
		for _, w := range strings.Fields(strings.ReplaceAll(strings.ToLower(ov.SceneSuffix), ",", " ")) {
			if len(w) > 3 {
				suffixWords[w] = struct{}{}
			}
		}
		var kept []string
		for _, term := range strings.Split(themeNegative, ",") {
			term = strings.TrimSpace(term)
			if term == "" {
				continue
			}
			conflict := false
			for w := range suffixWords {
				if strings.Contains(strings.ToLower(term), w) {
					conflict = true
					break
				}
			}
			if !conflict {
				kept = append(kept, term)
			}
		}
		negative = strings.Join(kept, ", ")
		if ov.NegativeAdditions != "" {
			if negative != "" {
				negative += ", "
			}
			negative += ov.NegativeAdditions
		}
		return ov.SceneSuffix, negative
	}
	return themeSuffix, themeNegative
}
