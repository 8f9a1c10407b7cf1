// Package request loads batch compilation requests from YAML files. A
// batch file describes one or more worlds to compile in a single run,
// which is how large content drops are produced.
package request

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/worldgen/internal/compiler"
	"github.com/cory-johannsen/worldgen/internal/world"
)

// Batch is the top-level document of a batch file.
type Batch struct {
	// OutputRoot is the parent directory; each world writes into a
	// subdirectory named after its slug unless the world entry sets its
	// own output.
	OutputRoot string      `yaml:"output_root"`
	Worlds     []WorldSpec `yaml:"worlds"`
}

// WorldSpec holds a single world's request data. Its YAML tags are the
// batch file schema.
type WorldSpec struct {
	Name            string   `yaml:"name"`
	RoomCount       int      `yaml:"room_count,omitempty"`
	Theme           string   `yaml:"theme,omitempty"`
	Setting         string   `yaml:"setting,omitempty"`
	Characters      []string `yaml:"characters,omitempty"`
	Subsystems      []string `yaml:"subsystems,omitempty"`
	ScriptedPackage []string `yaml:"scripted_packages,omitempty"`
	RoomNames       []string `yaml:"room_names,omitempty"`
	OutputDir       string   `yaml:"output_dir,omitempty"`
	ImageHost       string   `yaml:"image_host,omitempty"`
	ImagePort       int      `yaml:"image_port,omitempty"`
	SceneSuffix     string   `yaml:"scene_suffix,omitempty"`
	NegativePrompt  string   `yaml:"negative_prompt,omitempty"`
	BaseDamage      int      `yaml:"base_damage,omitempty"`
	Seed            *int64   `yaml:"seed,omitempty"`
}

// Load reads and validates a batch file.
//
// Postcondition: Every returned request passes compiler request
// validation, or a non-nil error names the first offending entry.
func Load(path string) ([]compiler.Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("request: read %s: %w", path, err)
	}

	var batch Batch
	if err := yaml.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("request: parse %s: %w", path, err)
	}
	if len(batch.Worlds) == 0 {
		return nil, fmt.Errorf("request: %s declares no worlds", path)
	}

	requests := make([]compiler.Request, 0, len(batch.Worlds))
	for i, spec := range batch.Worlds {
		req, err := spec.toRequest(batch.OutputRoot)
		if err != nil {
			return nil, fmt.Errorf("request: %s world %d (%q): %w", path, i+1, spec.Name, err)
		}
		requests = append(requests, req)
	}
	return requests, nil
}

func (s WorldSpec) toRequest(outputRoot string) (compiler.Request, error) {
	req := compiler.Request{
		WorldName:          s.Name,
		RoomCount:          s.RoomCount,
		CharacterNames:     s.Characters,
		ScriptedPackages:   s.ScriptedPackage,
		CustomRoomNames:    s.RoomNames,
		Setting:            s.Setting,
		OutputDir:          s.OutputDir,
		ImageHost:          s.ImageHost,
		ImagePort:          s.ImagePort,
		SceneSuffix:        s.SceneSuffix,
		NegativePrompt:     s.NegativePrompt,
		BaseDamageOverride: s.BaseDamage,
		Seed:               s.Seed,
	}

	if s.Theme != "" {
		req.Theme = world.ThemeTag(strings.ToLower(strings.TrimSpace(s.Theme)))
	}

	// An explicitly empty subsystem list in YAML ("subsystems: []")
	// still arrives as a non-nil slice, preserving the "none at all"
	// request; an absent key stays nil and uses theme defaults.
	if s.Subsystems != nil {
		req.Subsystems = make([]world.SubsystemTag, 0, len(s.Subsystems))
		for _, raw := range s.Subsystems {
			tag, ok := world.ParseSubsystemTag(strings.TrimSpace(raw))
			if !ok {
				return compiler.Request{}, fmt.Errorf("unknown subsystem %q", raw)
			}
			req.Subsystems = append(req.Subsystems, tag)
		}
	}

	if req.OutputDir == "" && outputRoot != "" {
		req.OutputDir = filepath.Join(outputRoot, slugify(s.Name))
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		return compiler.Request{}, err
	}
	return req, nil
}

func slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "world"
	}
	return b.String()
}
