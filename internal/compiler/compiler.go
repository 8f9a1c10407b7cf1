// Package compiler orchestrates the full pipeline: request in, six
// verified artifacts out. Every stage is an independent component; the
// compiler only sequences them and fails closed when any stage reports
// a problem it cannot repair.
package compiler

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/worldgen/internal/artifact"
	"github.com/cory-johannsen/worldgen/internal/physics"
	"github.com/cory-johannsen/worldgen/internal/rng"
	"github.com/cory-johannsen/worldgen/internal/roomgraph"
	"github.com/cory-johannsen/worldgen/internal/sprite"
	"github.com/cory-johannsen/worldgen/internal/theme"
	"github.com/cory-johannsen/worldgen/internal/validate"
	"github.com/cory-johannsen/worldgen/internal/world"
)

// Result is the complete record of one compilation run, success or
// failure.
type Result struct {
	RunID              string
	Success            bool
	World              *world.World
	WrittenFiles       map[string]string
	ValidationErrors   []string
	ValidationWarnings []string
	RoundTripErrors    []string
	RepairActions      []string
	Summary            string
	Theme              world.ThemeTag
}

// Preview is the fast path for interactive callers: theme
// classification and derived defaults without generating anything.
type Preview struct {
	Theme             world.ThemeTag
	SceneSuffix       string
	NegativePrompt    string
	BaseDamage        int
	DefaultSubsystems []world.SubsystemTag
	RoomPrefixes      []string
	Flavor            string
}

// Compiler runs compilation pipelines. Safe for sequential reuse; each
// Compile call builds its own randomness source and stage components.
type Compiler struct {
	logger    *zap.Logger
	validator *validate.Engine
	writer    *artifact.Writer
	verifier  *artifact.Verifier
}

// New returns a Compiler logging through logger.
//
// Precondition: logger must be non-nil.
func New(logger *zap.Logger) *Compiler {
	return &Compiler{
		logger:    logger,
		validator: validate.NewEngine(),
		writer:    artifact.NewWriter(),
		verifier:  artifact.NewVerifier(),
	}
}

// Compile executes the full pipeline for req. It never panics; an
// unexpected failure in any stage becomes a failed Result.
func (c *Compiler) Compile(req Request) (result *Result) {
	runID := uuid.NewString()
	result = &Result{RunID: runID}

	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("pipeline panic", zap.String("run_id", runID), zap.Any("panic", r))
			result.Success = false
			result.ValidationErrors = append(result.ValidationErrors,
				fmt.Sprintf("Pipeline error: %v", r))
			result.Summary = "Compilation failed with unexpected error."
		}
	}()

	req.Normalize()
	if err := req.Validate(); err != nil {
		result.ValidationErrors = append(result.ValidationErrors, err.Error())
		result.Summary = "Request rejected."
		return result
	}

	src := c.sourceFor(req)
	log := c.logger.With(zap.String("run_id", runID), zap.String("world", req.WorldName))

	// Stage 1: theme classification.
	defaults := c.defaultsFor(req)
	result.Theme = defaults.Tag
	log.Info("theme classified", zap.String("theme", string(defaults.Tag)))

	// Stage 2: world shell.
	w := world.New(req.WorldName, defaults.Tag)
	result.World = w

	// Stage 3: room graph.
	w.Rooms = roomgraph.New(src).Generate(req.RoomCount, defaults, req.WorldName, req.CustomRoomNames)
	log.Info("room graph generated", zap.Int("rooms", len(w.Rooms)))

	// Stage 4: starter objects.
	c.addStarterObjects(w, defaults)

	// Stage 5: physics package injection.
	if err := c.injectSubsystems(req, w, defaults, src, log); err != nil {
		result.ValidationErrors = append(result.ValidationErrors, err.Error())
		result.Summary = "Subsystem injection failed."
		return result
	}

	// Stage 6: characters.
	if len(req.CharacterNames) > 0 {
		w.Characters = sprite.New(src).Generate(req.CharacterNames, defaults, w.SortedRoomIDs(), w.Objects)
		log.Info("characters generated", zap.Int("characters", len(w.Characters)))
	}

	// Stage 7: combat configuration.
	w.Combat = world.DefaultCombatConfig()
	w.Combat.BaseDamage = defaults.BaseDamage
	if req.BaseDamageOverride > 0 {
		w.Combat.BaseDamage = req.BaseDamageOverride
	}
	if start, ok := w.StartRoom(); ok {
		w.Combat.RespawnRoom = start
	}

	// Stage 8: image generation configuration.
	c.configureImageGen(req, w, defaults)

	// Stage 9: pre-write validation. Fail closed.
	validation := c.validator.Validate(w)
	result.ValidationErrors = append(result.ValidationErrors, validation.Errors...)
	result.ValidationWarnings = append(result.ValidationWarnings, validation.Warnings...)
	if !validation.Valid() {
		log.Warn("validation failed", zap.Int("errors", len(validation.Errors)))
		result.Summary = w.Summary()
		return result
	}

	// Stage 10: write artifacts.
	written, err := c.writer.WriteAll(w, req.OutputDir)
	if err != nil {
		result.ValidationErrors = append(result.ValidationErrors, err.Error())
		result.Summary = "Artifact write failed."
		return result
	}
	result.WrittenFiles = written

	// Stage 11: round-trip verification, with one bounded repair pass.
	rt := c.verifier.Verify(req.OutputDir)
	if !rt.Valid() {
		log.Warn("round trip failed, attempting repair", zap.Int("errors", len(rt.Errors)))
		result.RepairActions = artifact.Repair(w)
		if written, err = c.writer.WriteAll(w, req.OutputDir); err != nil {
			result.ValidationErrors = append(result.ValidationErrors, err.Error())
			result.Summary = "Artifact rewrite failed."
			return result
		}
		result.WrittenFiles = written
		rt = c.verifier.Verify(req.OutputDir)
	}
	result.RoundTripErrors = rt.Errors
	result.ValidationErrors = append(result.ValidationErrors, rt.Errors...)
	result.ValidationWarnings = append(result.ValidationWarnings, rt.Warnings...)

	result.Success = rt.Valid()
	result.Summary = fmt.Sprintf("%s  |  Subsystems: %s", w.Summary(), formatTags(w.Applied))
	if result.Success {
		log.Info("world compiled",
			zap.Int("rooms", len(w.Rooms)),
			zap.Int("objects", len(w.Objects)),
			zap.Int("characters", len(w.Characters)),
			zap.Strings("repairs", result.RepairActions))
	} else {
		log.Error("round trip failed after repair", zap.Strings("errors", rt.Errors))
	}
	return result
}

// PreviewRequest classifies the request and returns the derived
// defaults without touching the filesystem.
func (c *Compiler) PreviewRequest(req Request) Preview {
	req.Normalize()
	defaults := c.defaultsFor(req)
	suffix, negative := theme.ApplySetting(req.Setting, defaults.SceneSuffix, defaults.NegativePrompt)
	prefixes := defaults.RoomPrefixes
	if len(prefixes) > 5 {
		prefixes = prefixes[:5]
	}
	return Preview{
		Theme:             defaults.Tag,
		SceneSuffix:       suffix,
		NegativePrompt:    negative,
		BaseDamage:        defaults.BaseDamage,
		DefaultSubsystems: defaults.DefaultSubsystems,
		RoomPrefixes:      prefixes,
		Flavor:            defaults.FlavorAdjective + " " + defaults.FlavorNoun,
	}
}

func (c *Compiler) sourceFor(req Request) rng.Source {
	if req.Seed != nil {
		return rng.NewSeededSource(*req.Seed)
	}
	return rng.NewCryptoSource()
}

func (c *Compiler) defaultsFor(req Request) theme.Defaults {
	if req.Theme != "" {
		return theme.GetDefaults(req.Theme)
	}
	return theme.DefaultsFor(req.WorldName)
}

// addStarterObjects seeds the world with the four objects every world
// gets before any subsystem runs: a weapon, a consumable, a key item,
// and a document, spread across the room list.
func (c *Compiler) addStarterObjects(w *world.World, defaults theme.Defaults) {
	roomIDs := w.SortedRoomIDs()
	if len(roomIDs) == 0 {
		return
	}

	weaponName := "weapon"
	if len(defaults.ObjectArchetypes) > 0 {
		weaponName = defaults.ObjectArchetypes[0]
	}

	starters := []struct {
		id            string
		name          string
		weapon        bool
		damage        int
		consumable    bool
		healthRestore int
		verbs         []string
	}{
		{"starter_weapon", weaponName, true, defaults.BaseDamage, false, 0,
			[]string{"take", "drop", "examine", "use", "attack"}},
		{"starter_health", "health item", false, 0, true, 35,
			[]string{"take", "drop", "examine", "use"}},
		{"starter_key", "access key", false, 0, false, 0,
			[]string{"take", "drop", "examine", "use"}},
		{"starter_document", "important document", false, 0, false, 0,
			[]string{"take", "drop", "examine", "read"}},
	}

	for i, s := range starters {
		w.Objects[s.id] = &world.GameObject{
			ID:   s.id,
			Name: s.name,
			Description: fmt.Sprintf("A %s found in this %s world. "+
				"It has a purpose here. Examine it carefully.", s.name, defaults.FlavorAdjective),
			Location:      roomIDs[i%len(roomIDs)],
			Takeable:      true,
			Weapon:        s.weapon,
			Damage:        s.damage,
			Consumable:    s.consumable,
			HealthRestore: s.healthRestore,
			Verbs:         mergeVerbs(s.verbs, defaults.ExtraVerbs),
			Properties:    make(map[string]string),
		}
	}
}

// mergeVerbs appends the theme's extra verbs to base, keeping first
// occurrence order and dropping duplicates.
func mergeVerbs(base, extra []string) []string {
	seen := make(map[string]bool, len(base)+len(extra))
	out := make([]string, 0, len(base)+len(extra))
	for _, v := range append(append([]string{}, base...), extra...) {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// injectSubsystems applies the requested packages, then any scripted
// ones. A nil request list means the theme's defaults; an explicitly
// empty list means none.
func (c *Compiler) injectSubsystems(req Request, w *world.World, defaults theme.Defaults, src rng.Source, log *zap.Logger) error {
	tags := req.Subsystems
	if tags == nil {
		tags = defaults.DefaultSubsystems
	}

	lib := physics.NewLibrary(src)
	for _, tag := range tags {
		pkg := lib.Build(tag, w, defaults)
		if err := pkg.Inject(w); err != nil {
			return fmt.Errorf("inject %s: %w", tag, err)
		}
		log.Info("subsystem injected", zap.String("subsystem", string(pkg.Tag)))
	}

	for _, path := range req.ScriptedPackages {
		pkg, err := physics.LoadScripted(path)
		if err != nil {
			return err
		}
		if err := pkg.Inject(w); err != nil {
			return fmt.Errorf("inject scripted %s: %w", pkg.Tag, err)
		}
		log.Info("scripted subsystem injected", zap.String("subsystem", string(pkg.Tag)), zap.String("path", path))
	}
	return nil
}

func (c *Compiler) configureImageGen(req Request, w *world.World, defaults theme.Defaults) {
	suffix, negative := theme.ApplySetting(req.Setting, defaults.SceneSuffix, defaults.NegativePrompt)
	if req.SceneSuffix != "" {
		suffix = req.SceneSuffix
	}
	if req.NegativePrompt != "" {
		negative = req.NegativePrompt
	}
	w.ImageGen = world.DefaultImageGenConfig()
	w.ImageGen.Host = req.ImageHost
	w.ImageGen.Port = req.ImagePort
	w.ImageGen.SceneSuffix = suffix
	w.ImageGen.NegativePrompt = negative
}

func formatTags(tags []world.SubsystemTag) string {
	if len(tags) == 0 {
		return "none"
	}
	out := ""
	for i, t := range tags {
		if i > 0 {
			out += ", "
		}
		out += string(t)
	}
	return out
}
