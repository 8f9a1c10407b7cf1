// Package main provides the world compiler binary: a request goes in,
// six validated INI artifacts come out.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/worldgen/internal/artifact"
	"github.com/cory-johannsen/worldgen/internal/compiler"
	"github.com/cory-johannsen/worldgen/internal/config"
	"github.com/cory-johannsen/worldgen/internal/enrich"
	"github.com/cory-johannsen/worldgen/internal/observability"
	"github.com/cory-johannsen/worldgen/internal/request"
	"github.com/cory-johannsen/worldgen/internal/world"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file; empty = built-in defaults")
	batchPath := flag.String("batch", "", "path to a YAML batch request file; overrides single-world flags")
	worldName := flag.String("name", "", "world name, e.g. \"Fort Bravo Barracks\"")
	rooms := flag.Int("rooms", 0, "room count; 0 = configured default")
	characters := flag.String("characters", "", "comma-separated character names")
	subsystems := flag.String("subsystems", "", "comma-separated physics subsystem tags; \"none\" = no subsystems; empty = theme defaults")
	scripts := flag.String("scripts", "", "comma-separated Lua package definition paths")
	themeTag := flag.String("theme", "", "theme override; empty = classify from the world name")
	setting := flag.String("setting", "", "setting adjustment for image prompts, e.g. \"tropical island\"")
	outputDir := flag.String("output", "", "artifact directory; empty = configured default")
	seed := flag.Int64("seed", 0, "seed for a reproducible run; unset = OS entropy")
	preview := flag.Bool("preview", false, "print theme classification and derived defaults, generate nothing")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	comp := compiler.New(logger)
	ctx := context.Background()

	var requests []compiler.Request
	switch {
	case *batchPath != "":
		requests, err = request.Load(*batchPath)
		if err != nil {
			logger.Fatal("loading batch file", zap.String("path", *batchPath), zap.Error(err))
		}
	case *worldName != "":
		req, err := singleRequest(cfg, *worldName, *rooms, *characters, *subsystems, *scripts, *themeTag, *setting, *outputDir)
		if err != nil {
			logger.Fatal("building request", zap.Error(err))
		}
		seedSet := false
		flag.Visit(func(f *flag.Flag) {
			if f.Name == "seed" {
				seedSet = true
			}
		})
		if seedSet {
			req.Seed = seed
		}
		requests = []compiler.Request{req}
	default:
		fmt.Fprintln(os.Stderr, "usage: worldgen -name <world name> [flags] | worldgen -batch <file>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if *preview {
		for _, req := range requests {
			printPreview(comp.PreviewRequest(req))
		}
		return
	}

	collab := buildCollaborators(ctx, cfg, logger)

	failed := 0
	for _, req := range requests {
		suggestNames(ctx, collab.namer, logger, &req)
		result := comp.Compile(req)
		if result.Success && collab.describer != nil {
			if err := enrichAndRewrite(ctx, collab.describer, logger, result, req.OutputDir); err != nil {
				logger.Warn("enrichment failed, keeping generated descriptions",
					zap.String("world", req.WorldName), zap.Error(err))
			}
		}
		if result.Success && collab.images != nil {
			rendered, err := enrich.RenderScenes(ctx, collab.images, result.World, req.OutputDir, logger)
			if err != nil {
				logger.Warn("scene rendering failed", zap.String("world", req.WorldName), zap.Error(err))
			} else if rendered > 0 {
				logger.Info("scenes rendered", zap.String("world", req.WorldName), zap.Int("images", rendered))
			}
		}
		printResult(req, result)
		if !result.Success {
			failed++
		}
	}

	logger.Info("done",
		zap.Int("worlds", len(requests)),
		zap.Int("failed", failed),
		zap.Duration("elapsed", time.Since(start).Round(time.Millisecond)),
	)
	if failed > 0 {
		os.Exit(1)
	}
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// singleRequest assembles a Request from the command line, falling back
// to configured defaults for anything left unset.
func singleRequest(cfg config.Config, name string, rooms int, characters, subsystems, scripts, themeTag, setting, outputDir string) (compiler.Request, error) {
	req := compiler.Request{
		WorldName:      name,
		CharacterNames: splitList(characters),
		RoomCount:      rooms,
		Theme:          world.ThemeTag(themeTag),
		Setting:        setting,
		OutputDir:      outputDir,
		ImageHost:      cfg.ImageService.Host,
		ImagePort:      cfg.ImageService.Port,
	}
	if req.RoomCount == 0 {
		req.RoomCount = cfg.Generator.RoomCount
	}
	if req.OutputDir == "" {
		req.OutputDir = cfg.Generator.OutputDir
	}
	req.ScriptedPackages = splitList(scripts)

	switch subsystems {
	case "":
		// nil selects the theme's defaults
	case "none":
		req.Subsystems = []world.SubsystemTag{}
	default:
		for _, raw := range splitList(subsystems) {
			tag, ok := world.ParseSubsystemTag(raw)
			if !ok {
				return compiler.Request{}, fmt.Errorf("unknown subsystem %q", raw)
			}
			req.Subsystems = append(req.Subsystems, tag)
		}
	}
	return req, nil
}

// collaborators are the optional external services a run may use. Any
// of them may be nil; the pipeline output is valid without them.
type collaborators struct {
	describer enrich.Describer
	namer     enrich.Namer
	images    *enrich.ImageService
}

func buildCollaborators(ctx context.Context, cfg config.Config, logger *zap.Logger) collaborators {
	if !cfg.Enrichment.Enabled {
		return collaborators{}
	}
	c := collaborators{
		describer: enrich.NewChain(
			enrich.NewClaudeDescriber(cfg.Enrichment.APIKey, cfg.Enrichment.Model),
		),
		namer: enrich.NewClaudeNamer(cfg.Enrichment.APIKey, cfg.Enrichment.Model),
	}
	svc := enrich.NewImageService(cfg.ImageService.Host, cfg.ImageService.Port)
	if err := svc.Ping(ctx); err != nil {
		logger.Warn("image service unreachable, artifacts will still reference it",
			zap.String("host", cfg.ImageService.Host),
			zap.Int("port", cfg.ImageService.Port),
			zap.Error(err))
	} else {
		c.images = svc
	}
	return c
}

// suggestNames asks the namer for room names and a setting before
// generation. Requests that already carry custom names keep them.
func suggestNames(ctx context.Context, namer enrich.Namer, logger *zap.Logger, req *compiler.Request) {
	if namer == nil || len(req.CustomRoomNames) > 0 {
		return
	}
	suggestion, err := namer.SuggestRooms(ctx, req.WorldName, req.RoomCount)
	if err != nil {
		logger.Debug("namer unavailable, using generated names",
			zap.String("world", req.WorldName), zap.Error(err))
		return
	}
	req.CustomRoomNames = suggestion.RoomNames
	if req.Setting == "" {
		req.Setting = suggestion.Setting
	}
}

// enrichAndRewrite improves the room descriptions in place, then
// rewrites and re-verifies the artifacts so the files on disk match
// the enriched world.
func enrichAndRewrite(ctx context.Context, describer enrich.Describer, logger *zap.Logger, result *compiler.Result, outputDir string) error {
	orch := enrich.NewOrchestrator(describer, logger)
	if err := orch.EnrichDescriptions(ctx, result.World); err != nil {
		return err
	}
	files, err := artifact.NewWriter().WriteAll(result.World, outputDir)
	if err != nil {
		return fmt.Errorf("rewriting artifacts: %w", err)
	}
	result.WrittenFiles = files
	if rt := artifact.NewVerifier().Verify(outputDir); !rt.Valid() {
		return fmt.Errorf("round-trip after enrichment: %s", strings.Join(rt.Errors, "; "))
	}
	return nil
}

func printPreview(p compiler.Preview) {
	fmt.Printf("theme:           %s\n", p.Theme)
	fmt.Printf("base damage:     %d\n", p.BaseDamage)
	fmt.Printf("scene suffix:    %s\n", p.SceneSuffix)
	fmt.Printf("negative prompt: %s\n", p.NegativePrompt)
	subs := make([]string, len(p.DefaultSubsystems))
	for i, s := range p.DefaultSubsystems {
		subs[i] = string(s)
	}
	fmt.Printf("subsystems:      %s\n", strings.Join(subs, ", "))
	fmt.Printf("room prefixes:   %s\n", strings.Join(p.RoomPrefixes, ", "))
	fmt.Println()
}

func printResult(req compiler.Request, result *compiler.Result) {
	if result.Success {
		fmt.Printf("%s: %s\n", req.WorldName, result.Summary)
		for _, path := range sortedValues(result.WrittenFiles) {
			fmt.Printf("  wrote %s\n", path)
		}
		for _, w := range result.ValidationWarnings {
			fmt.Printf("  %s\n", w)
		}
		for _, action := range result.RepairActions {
			fmt.Printf("  repaired: %s\n", action)
		}
		return
	}
	fmt.Printf("%s: FAILED\n", req.WorldName)
	for _, e := range result.ValidationErrors {
		fmt.Printf("  %s\n", e)
	}
	for _, e := range result.RoundTripErrors {
		fmt.Printf("  %s\n", e)
	}
}

func sortedValues(m map[string]string) []string {
	values := make([]string, 0, len(m))
	for _, name := range artifact.Files {
		if path, ok := m[name]; ok {
			values = append(values, path)
		}
	}
	return values
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
