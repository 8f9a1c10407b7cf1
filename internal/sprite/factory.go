// Package sprite turns plain character names into fully statted world
// characters. Role inference is a keyword table, stats are linear
// functions of the theme scalars, and spawn assignment is a round-robin
// partition of the room list, so the same inputs always produce the
// same sprites.
package sprite

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cory-johannsen/worldgen/internal/rng"
	"github.com/cory-johannsen/worldgen/internal/theme"
	"github.com/cory-johannsen/worldgen/internal/world"
)

// roleRow pairs a role with the name keywords that vote for it. Rows are
// scored in declared order and ties keep the earlier row, so overlapping
// keywords (boss, guard, commander) resolve the same way every run.
type roleRow struct {
	role     world.Role
	keywords []string
}

var roleKeywords = []roleRow{
	{world.RoleVillain, []string{
		"villain", "enemy", "guard", "soldier", "officer", "agent",
		"monster", "demon", "dragon", "dark", "evil", "bad", "boss",
		"commander", "general", "overlord", "antagonist", "gestapo",
		"mib", "alien", "troll", "orc", "zombie", "vampire",
	}},
	{world.RoleBoss, []string{
		"boss", "chief", "leader", "king", "queen", "emperor",
		"overlord", "master", "commander", "colonel", "general",
		"admiral", "director", "president",
	}},
	{world.RoleAlly, []string{
		"ally", "friend", "partner", "companion", "hero", "helper",
		"medic", "doctor", "nurse", "priest", "father", "chaplain",
		"hawkeye", "bj", "radar", "mulcahy", "hogan", "newkirk",
		"carter", "lebeau", "kinchloe",
	}},
	{world.RoleNeutral, []string{
		"clerk", "shopkeeper", "merchant", "civilian", "villager",
		"butler", "maid", "servant", "cook", "farmer", "child",
		"schultz", "klink", "igor", "klinger", "winchester",
		"margaret", "potter", "frank",
	}},
	{world.RoleGuard, []string{
		"guard", "sentry", "patrol", "watchman", "security",
		"trooper", "private", "grunt",
	}},
}

var roleBehavior = map[world.Role]string{
	world.RoleHero:    "ally_support",
	world.RoleVillain: "aggressive_patrol",
	world.RoleNeutral: "neutral_npc",
	world.RoleBoss:    "aggressive_patrol",
	world.RoleAlly:    "ally_support",
	world.RoleGuard:   "patrol_basic",
}

// knownOverride hand-tunes characters whose personality is too specific
// for keyword inference.
type knownOverride struct {
	name       string
	aggression float64
	behavior   string
	role       world.Role
}

var knownOverrides = []knownOverride{
	{"schultz", 0.05, "willful_blindness", world.RoleNeutral},
	{"klink", 0.10, "pompous_bluster", world.RoleNeutral},
	{"burkhalter", 0.30, "pompous_authority", world.RoleNeutral},
	{"radar", 0.05, "logistics_genius", world.RoleAlly},
	{"klinger", 0.10, "escape_artist", world.RoleNeutral},
	{"hawkeye", 0.10, "ally_wit", world.RoleAlly},
	{"potter", 0.15, "commanding_fair", world.RoleAlly},
	{"margaret", 0.40, "regulation_authority", world.RoleNeutral},
	{"frank", 0.65, "regulation_enforcer", world.RoleVillain},
	{"winchester", 0.20, "pompous_bluster", world.RoleNeutral},
	{"mulcahy", 0.05, "moral_compass", world.RoleAlly},
	{"barbie", 0.02, "neutral_npc", world.RoleNeutral},
	{"ken", 0.02, "neutral_npc", world.RoleNeutral},
	{"skipper", 0.01, "neutral_npc", world.RoleNeutral},
	{"tabitha", 0.05, "magic_user", world.RoleAlly},
	{"samantha", 0.05, "magic_user", world.RoleAlly},
	{"darrin", 0.10, "neutral_npc", world.RoleNeutral},
}

// Factory builds characters from names plus theme context. Loot choice is
// the only random decision; everything else is pure arithmetic.
type Factory struct {
	src rng.Source
}

// New returns a Factory drawing randomness from src.
func New(src rng.Source) *Factory {
	return &Factory{src: src}
}

// Generate creates one character per non-blank name, spawn-partitioned
// across roomIDs.
//
// Precondition: roomIDs must be the target world's room ids in a stable
// order.
// Postcondition: Every returned character has at least one spawn room
// when roomIDs is non-empty, and every spawn room is drawn from roomIDs.
func (f *Factory) Generate(names []string, defaults theme.Defaults, roomIDs []string, objects map[string]*world.GameObject) map[string]*world.Character {
	characters := make(map[string]*world.Character)
	if len(names) == 0 || len(roomIDs) == 0 {
		return characters
	}

	for i, name := range names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		id := templateID(trimmed)
		if _, taken := characters[id]; taken {
			id = fmt.Sprintf("%s_%d", id, i)
		}

		role, behavior, aggression := classify(trimmed, defaults)
		health, damage := statsFor(role, defaults)

		spawnChance := 0.06
		if role == world.RoleAlly || role == world.RoleNeutral {
			spawnChance = 0.04
		}

		characters[id] = &world.Character{
			ID:          id,
			Name:        trimmed + " (template)",
			Description: describe(trimmed, role, defaults),
			Health:      health,
			Damage:      damage,
			Aggression:  aggression,
			Behavior:    behavior,
			SpawnRooms:  spawnRooms(i, len(names), roomIDs),
			SpawnChance: spawnChance,
			LootOnDeath: f.pickLoot(objects, role),
			CanPickup:   role != world.RoleBoss,
			RoleTag:     role,
			Properties:  make(map[string]string),
		}
	}
	return characters
}

// templateID slugs a character name into its template identifier.
func templateID(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.NewReplacer(" ", "_", "'", "", "-", "_").Replace(s)
	return s + "_template"
}

// classify infers role, behavior, and aggression from the name. Known
// characters short-circuit the keyword table entirely. Matching is
// whole-word only; "boss" inside "Embossed" says nothing about a role.
func classify(name string, defaults theme.Defaults) (world.Role, string, float64) {
	lower := strings.ToLower(strings.TrimSpace(name))
	for _, o := range knownOverrides {
		if theme.MatchWord(lower, o.name) {
			return o.role, o.behavior, o.aggression
		}
	}

	best := world.RoleNeutral
	bestScore := 0
	for _, row := range roleKeywords {
		score := 0
		for _, kw := range row.keywords {
			if theme.MatchWord(lower, kw) {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = row.role, score
		}
	}

	behavior, ok := roleBehavior[best]
	if !ok {
		behavior = "neutral_npc"
	}
	return best, behavior, roleAggression(best, defaults)
}

// roleAggression maps a role onto the theme's aggression band. Bosses run
// hotter than the band's ceiling but are capped below certainty.
func roleAggression(role world.Role, defaults theme.Defaults) float64 {
	lo, hi := defaults.AggressionLow, defaults.AggressionHigh
	var a float64
	switch role {
	case world.RoleHero, world.RoleAlly:
		a = lo
	case world.RoleNeutral:
		a = lo * 1.5
	case world.RoleGuard:
		a = (lo + hi) / 2
	case world.RoleVillain:
		a = hi
	case world.RoleBoss:
		a = hi * 1.1
		if a > 0.95 {
			a = 0.95
		}
	default:
		a = lo
	}
	return round2(a)
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

// statsFor derives health and damage from the theme scalars.
func statsFor(role world.Role, defaults theme.Defaults) (int, int) {
	switch role {
	case world.RoleBoss:
		return defaults.BossHealth, int(float64(defaults.BaseDamage) * 1.5)
	case world.RoleAlly, world.RoleHero:
		return int(float64(defaults.MinionHealth) * 1.3), int(float64(defaults.BaseDamage) * 0.8)
	case world.RoleNeutral:
		return int(float64(defaults.MinionHealth) * 0.9), int(float64(defaults.BaseDamage) * 0.4)
	case world.RoleGuard:
		return defaults.MinionHealth, int(float64(defaults.BaseDamage) * 1.1)
	default:
		return int(float64(defaults.MinionHealth) * 1.1), defaults.BaseDamage
	}
}

// spawnRooms partitions the room list round-robin so characters spread
// out instead of piling into the entrance. Each character gets one or
// two adjacent rooms from its slice of the partition.
func spawnRooms(idx, total int, roomIDs []string) []string {
	if len(roomIDs) == 0 {
		return nil
	}
	if total < 1 {
		total = 1
	}
	perCharacter := len(roomIDs) / total
	if perCharacter < 1 {
		perCharacter = 1
	}
	start := (idx * perCharacter) % len(roomIDs)

	count := perCharacter
	if count > 2 {
		count = 2
	}
	seen := make(map[string]struct{}, count)
	spawn := make([]string, 0, count)
	for j := 0; j < count; j++ {
		id := roomIDs[(start+j)%len(roomIDs)]
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		spawn = append(spawn, id)
	}
	return spawn
}

// pickLoot selects a takeable, placed object as the death drop. Bosses
// prefer weapons and consumables when any exist.
func (f *Factory) pickLoot(objects map[string]*world.GameObject, role world.Role) string {
	if len(objects) == 0 {
		return ""
	}
	candidates := make([]string, 0, len(objects))
	for id, obj := range objects {
		if obj.Takeable && obj.Location != world.LocationNone {
			candidates = append(candidates, id)
		}
	}
	if len(candidates) == 0 {
		return ""
	}
	sort.Strings(candidates)

	if role == world.RoleBoss {
		best := make([]string, 0, len(candidates))
		for _, id := range candidates {
			if objects[id].Weapon || objects[id].Consumable {
				best = append(best, id)
			}
		}
		if len(best) > 0 {
			return rng.Pick(f.src, best)
		}
	}
	return rng.Pick(f.src, candidates)
}

// describe renders a short role-flavored description.
func describe(name string, role world.Role, defaults theme.Defaults) string {
	var tail string
	switch role {
	case world.RoleHero:
		tail = fmt.Sprintf("A central figure in this %s world.", defaults.FlavorAdjective)
	case world.RoleVillain:
		tail = fmt.Sprintf("A hostile presence in this %s.", defaults.FlavorNoun)
	case world.RoleNeutral:
		tail = fmt.Sprintf("A resident of this %s %s.", defaults.FlavorAdjective, defaults.FlavorNoun)
	case world.RoleBoss:
		tail = fmt.Sprintf("The most dangerous entity in this %s.", defaults.FlavorNoun)
	case world.RoleAlly:
		tail = fmt.Sprintf("A trustworthy ally in this %s world.", defaults.FlavorAdjective)
	case world.RoleGuard:
		tail = fmt.Sprintf("A patrol element in this %s %s.", defaults.FlavorAdjective, defaults.FlavorNoun)
	default:
		tail = "A character in this world."
	}
	return fmt.Sprintf("%s. %s", name, tail)
}
