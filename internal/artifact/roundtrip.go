package artifact

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/cory-johannsen/worldgen/internal/validate"
	"github.com/cory-johannsen/worldgen/internal/world"
)

// Verifier re-reads written artifacts and audits them independently of
// the in-memory world. The write path and the read path disagreeing is
// exactly the class of bug this exists to catch.
type Verifier struct{}

// NewVerifier returns a round-trip Verifier.
func NewVerifier() *Verifier {
	return &Verifier{}
}

// engine reads only these direction keys from the rooms artifact.
var engineDirectionKeys = func() map[string]bool {
	m := make(map[string]bool, len(world.EngineDirections))
	for _, d := range world.EngineDirections {
		m[string(d)] = true
	}
	return m
}()

// Direction keys that look plausible but the engine never reads.
// Writing one strands players in rooms with no return path.
var nonEngineDirectionKeys = func() map[string]bool {
	m := make(map[string]bool, len(world.NonEngineDirections))
	for _, d := range world.NonEngineDirections {
		m[string(d)] = true
	}
	return m
}()

// Verify parses every artifact in dir and cross-checks them against
// each other. All findings are errors; a world that needs leniency at
// read time was written wrong.
func (v *Verifier) Verify(dir string) *validate.Result {
	result := &validate.Result{}

	files := make(map[string]*ini.File, len(Files))
	for _, name := range Files {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			result.Errors = append(result.Errors, "FAIL: File missing: "+path)
			continue
		}
		f, err := ini.LoadSources(ini.LoadOptions{IgnoreInlineComment: true}, path)
		if err != nil {
			result.Errors = append(result.Errors, "FAIL: File unreadable: "+path+": "+err.Error())
			continue
		}
		files[name] = f
	}
	if len(result.Errors) > 0 {
		return result
	}

	rooms := sectionSet(files[RoomsFile])
	objects := sectionSet(files[ObjectsFile])

	v.checkRooms(files[RoomsFile], rooms, result)
	v.checkObjects(files[ObjectsFile], rooms, objects, result)
	v.checkSprites(files[SpritesFile], rooms, result)
	v.checkTransformations(files[TransformationsFile], rooms, objects, result)
	v.checkCombat(files[CombatFile], rooms, result)
	v.checkImageConfig(files[ImageConfigFile], result)
	v.checkReservedLines(dir, result)

	return result
}

func sectionSet(f *ini.File) map[string]bool {
	set := make(map[string]bool)
	for _, name := range f.SectionStrings() {
		if name == ini.DefaultSection {
			continue
		}
		set[name] = true
	}
	return set
}

func realSections(f *ini.File) []*ini.Section {
	sections := make([]*ini.Section, 0, len(f.Sections()))
	for _, sec := range f.Sections() {
		if sec.Name() == ini.DefaultSection {
			continue
		}
		sections = append(sections, sec)
	}
	return sections
}

func (v *Verifier) checkRooms(f *ini.File, rooms map[string]bool, result *validate.Result) {
	for _, sec := range realSections(f) {
		for _, key := range sec.Keys() {
			name := key.Name()
			if engineDirectionKeys[name] {
				if !rooms[key.Value()] {
					result.Errors = append(result.Errors,
						"FAIL: [rooms]["+sec.Name()+"] exit '"+name+"'->'"+key.Value()+"' MISSING after write")
				}
				continue
			}
			if nonEngineDirectionKeys[name] {
				result.Errors = append(result.Errors,
					"FAIL: [rooms]["+sec.Name()+"] exit '"+name+"' NOT read by engine")
			}
		}
	}
}

func (v *Verifier) checkObjects(f *ini.File, rooms, objects map[string]bool, result *validate.Result) {
	for _, sec := range realSections(f) {
		loc := sec.Key("location").String()
		if loc == "" || loc == world.LocationNone {
			continue
		}
		if !rooms[loc] && !objects[loc] {
			result.Errors = append(result.Errors,
				"FAIL: [objects]["+sec.Name()+"] location='"+loc+"' MISSING after write")
		}
	}
}

func (v *Verifier) checkSprites(f *ini.File, rooms map[string]bool, result *validate.Result) {
	for _, sec := range realSections(f) {
		for _, room := range splitList(sec.Key("spawn_rooms").String()) {
			if !rooms[room] {
				result.Errors = append(result.Errors,
					"FAIL: [sprites]["+sec.Name()+"] spawn_room '"+room+"' MISSING after write")
			}
		}
	}
}

func (v *Verifier) checkTransformations(f *ini.File, rooms, objects map[string]bool, result *validate.Result) {
	refKeys := []string{"object_id", "new_object_id", "requires_object", "requires_object_2"}
	for _, sec := range realSections(f) {
		for _, key := range refKeys {
			val := sec.Key(key).String()
			if val != "" && !objects[val] {
				result.Errors = append(result.Errors,
					"FAIL: [transforms]["+sec.Name()+"] "+key+"='"+val+"' MISSING after write")
			}
		}
		if loc := sec.Key("new_location").String(); loc != "" && !rooms[loc] {
			result.Errors = append(result.Errors,
				"FAIL: [transforms]["+sec.Name()+"] new_location='"+loc+"' MISSING after write")
		}
	}
}

func (v *Verifier) checkCombat(f *ini.File, rooms map[string]bool, result *validate.Result) {
	respawn := f.Section("pvp_rules").Key("respawn_location").String()
	if respawn != "" && !rooms[respawn] {
		result.Errors = append(result.Errors,
			"FAIL: [combat][pvp_rules] respawn_location='"+respawn+"' MISSING after write")
	}
}

func (v *Verifier) checkImageConfig(f *ini.File, result *validate.Result) {
	for _, sec := range realSections(f) {
		name := sec.Name()
		if name == "settings" || name == "prompt_style" {
			continue
		}
		if !strings.HasPrefix(strings.ToUpper(name), "SD") {
			result.Errors = append(result.Errors,
				"FAIL: [sd]["+name+"] not starting with 'SD' after write")
		}
	}
}

// checkReservedLines scans each artifact line by line for a '%' that is
// not part of an escaped pair.
func (v *Verifier) checkReservedLines(dir string, result *validate.Result) {
	for _, name := range Files {
		path := filepath.Join(dir, name)
		file, err := os.Open(path)
		if err != nil {
			result.Errors = append(result.Errors, "FAIL: reopen "+path+": "+err.Error())
			continue
		}
		scanner := bufio.NewScanner(file)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		lineNo := 0
		for scanner.Scan() {
			lineNo++
			if validate.HasLoneReserved(scanner.Text()) {
				result.Errors = append(result.Errors,
					fmt.Sprintf("FAIL: [%s] line %d bare '%%' after write", name, lineNo))
			}
		}
		if err := scanner.Err(); err != nil {
			result.Errors = append(result.Errors, "FAIL: scan "+path+": "+err.Error())
		}
		file.Close()
	}
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

