package world

import (
	"sort"
	"strconv"
	"strings"
)

// Section is an ordered set of INI key-value pairs. Key order is
// preserved so written artifacts are byte-stable for a given world.
type Section struct {
	keys   []string
	values map[string]string
}

// NewSection returns an empty Section.
func NewSection() *Section {
	return &Section{values: make(map[string]string)}
}

// Set adds or replaces a key. First insertion fixes the key's position.
func (s *Section) Set(key, value string) {
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

// Keys returns the keys in insertion order.
func (s *Section) Keys() []string {
	return s.keys
}

// Get returns the value for key, or the empty string.
func (s *Section) Get(key string) string {
	return s.values[key]
}

// Has reports whether key is present.
func (s *Section) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

func formatBool(b bool) string {
	return strconv.FormatBool(b)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Section serializes the room for the rooms artifact. Exits are written
// in the fixed engine direction order, then properties alphabetically.
func (r *Room) Section() *Section {
	s := NewSection()
	s.Set("name", r.Name)
	s.Set("description", r.Description)
	for _, d := range EngineDirections {
		if target, ok := r.Exits[d]; ok {
			s.Set(string(d), target)
		}
	}
	for _, k := range sortedKeys(r.Properties) {
		s.Set(k, r.Properties[k])
	}
	if r.Start {
		s.Set("start", "true")
	}
	return s
}

// Section serializes the object for the objects artifact. Capability
// keys are only written when the capability is present.
func (o *GameObject) Section() *Section {
	s := NewSection()
	s.Set("name", o.Name)
	s.Set("description", o.Description)
	s.Set("location", o.Location)
	s.Set("takeable", formatBool(o.Takeable))
	if o.Weapon {
		s.Set("weapon", "true")
		s.Set("damage", strconv.Itoa(o.Damage))
	}
	if o.Consumable {
		s.Set("consumable", "true")
		s.Set("health_restore", strconv.Itoa(o.HealthRestore))
	}
	if o.Container {
		s.Set("container", "true")
	}
	if o.Wearable {
		s.Set("wearable", "true")
		s.Set("worn", "false")
	}
	if o.BribeValue != "" {
		s.Set("bribe_value", o.BribeValue)
	}
	if len(o.Verbs) > 0 {
		s.Set("valid_verbs", strings.Join(o.Verbs, ", "))
	}
	for _, k := range sortedKeys(o.Properties) {
		s.Set(k, o.Properties[k])
	}
	return s
}

// Section serializes the character for the sprites artifact.
func (c *Character) Section() *Section {
	s := NewSection()
	s.Set("type", "sprite")
	s.Set("name", c.Name)
	s.Set("description", c.Description)
	s.Set("health", strconv.Itoa(c.Health))
	s.Set("damage", strconv.Itoa(c.Damage))
	s.Set("aggression", formatFloat(c.Aggression))
	s.Set("ai_behavior", c.Behavior)
	s.Set("spawn_rooms", strings.Join(c.SpawnRooms, ", "))
	s.Set("spawn_chance", formatFloat(c.SpawnChance))
	s.Set("can_pickup", formatBool(c.CanPickup))
	s.Set("takeable", "false")
	if c.LootOnDeath != "" {
		s.Set("loot_on_death", c.LootOnDeath)
	}
	for _, k := range sortedKeys(c.Properties) {
		s.Set(k, c.Properties[k])
	}
	return s
}

// Section serializes the transformation for the transformations
// artifact. Optional trigger keys are omitted when unset.
func (t *Transformation) Section() *Section {
	s := NewSection()
	s.Set("object_id", t.ObjectID)
	s.Set("state", t.State)
	s.Set("turns_required", strconv.Itoa(t.TurnsRequired))
	s.Set("new_state", t.NewState)
	s.Set("message", t.Message)
	if t.NewObjectID != "" {
		s.Set("new_object_id", t.NewObjectID)
	}
	if t.RequiresObject != "" {
		s.Set("requires_object", t.RequiresObject)
	}
	if t.RequiresObject2 != "" {
		s.Set("requires_object_2", t.RequiresObject2)
	}
	if t.LocationProperty != "" {
		s.Set("location_has_property", t.LocationProperty)
	}
	if t.NewLocation != "" {
		s.Set("new_location", t.NewLocation)
	}
	for _, k := range sortedKeys(t.Properties) {
		s.Set(k, t.Properties[k])
	}
	return s
}

// NamedSection pairs a section name with its contents, preserving the
// order sections should appear in an artifact.
type NamedSection struct {
	Name    string
	Section *Section
}

// Sections serializes the combat rules. respawnRoom is resolved by the
// caller because the combat config itself stores no room references
// until compile time.
func (c *CombatConfig) Sections(respawnRoom string) []NamedSection {
	pvp := NewSection()
	pvp.Set("base_damage", strconv.Itoa(c.BaseDamage))
	pvp.Set("weapon_multiplier", formatFloat(c.WeaponMultiplier))
	pvp.Set("can_attack", "true")
	pvp.Set("requires_pvp_mode", "true")
	pvp.Set("effect", "none")
	pvp.Set("message_hit", "You strike {target} for {damage} damage!")
	pvp.Set("message_kill", "You have taken down {target}!")

	pvs := NewSection()
	pvs.Set("base_damage", strconv.Itoa(c.BaseDamage))
	pvs.Set("weapon_multiplier", formatFloat(c.WeaponMultiplier))
	pvs.Set("can_attack", "true")
	pvs.Set("requires_pvp_mode", "false")
	pvs.Set("effect", "loot_drop")
	pvs.Set("bonus_damage", "0")

	svp := NewSection()
	svp.Set("base_damage", "0")
	svp.Set("weapon_multiplier", formatFloat(c.WeaponMultiplier))
	svp.Set("can_attack", "true")
	svp.Set("requires_pvp_mode", "false")
	svp.Set("effect", "none")

	pvb := NewSection()
	pvb.Set("base_damage", strconv.Itoa(c.BaseDamage))
	pvb.Set("weapon_multiplier", "1.2")
	pvb.Set("can_attack", "true")
	pvb.Set("requires_pvp_mode", "false")
	pvb.Set("effect", "epic_loot")
	pvb.Set("bonus_damage", "5")

	rules := NewSection()
	rules.Set("friendly_fire", formatBool(c.FriendlyFire))
	rules.Set("auto_retaliate", "false")
	rules.Set("death_drops_items", "true")
	rules.Set("respawn_location", respawnRoom)
	rules.Set("death_penalty_turns", strconv.Itoa(c.DeathPenaltyTurns))
	rules.Set("combat_cooldown", "0")

	types := NewSection()
	for _, k := range sortedKeys(c.DamageTypes) {
		types.Set(k, formatFloat(c.DamageTypes[k]))
	}

	return []NamedSection{
		{"player_vs_player", pvp},
		{"player_vs_sprite", pvs},
		{"sprite_vs_player", svp},
		{"player_vs_boss", pvb},
		{"pvp_rules", rules},
		{"damage_types", types},
	}
}

// Sections serializes the image generation config. The backend section
// name must start with "SD" and host and port stay separate keys; the
// consuming engine reads them independently and matches sections by
// that prefix.
func (g *ImageGenConfig) Sections() []NamedSection {
	settings := NewSection()
	settings.Set("default_steps", strconv.Itoa(g.Steps))
	settings.Set("default_width", strconv.Itoa(g.Width))
	settings.Set("default_height", strconv.Itoa(g.Height))
	settings.Set("default_cfg", formatFloat(g.GuidanceScale))
	settings.Set("default_sampler", g.Sampler)
	settings.Set("cache_images", formatBool(g.CacheImages))
	settings.Set("image_format", "jpg")
	settings.Set("image_quality", "88")

	style := NewSection()
	style.Set("scene_suffix", g.SceneSuffix)
	style.Set("negative_prompt", g.NegativePrompt)

	backend := NewSection()
	backend.Set("host", g.Host)
	backend.Set("port", strconv.Itoa(g.Port))
	backend.Set("weight", "1")
	backend.Set("timeout", "60")
	backend.Set("enabled", "true")

	return []NamedSection{
		{"settings", settings},
		{"prompt_style", style},
		{"SD1", backend},
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
