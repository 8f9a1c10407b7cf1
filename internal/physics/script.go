package physics

import (
	"context"
	"fmt"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"

	"github.com/cory-johannsen/worldgen/internal/world"
)

// scriptInstructionLimit caps the Lua opcodes a package script may
// execute. Scripts are pure data constructors; anything that needs more
// than this is doing something a package script should not do.
const scriptInstructionLimit = 100_000

// countingContext cancels itself after Done() has been called limit
// times. GopherLua's main loop calls Done() once per opcode, which makes
// this an exact instruction budget.
type countingContext struct {
	context.Context
	cancel    context.CancelFunc
	remaining *atomic.Int64
}

func (c *countingContext) Done() <-chan struct{} {
	if c.remaining.Add(-1) <= 0 {
		c.cancel()
	}
	return c.Context.Done()
}

func newCountingContext(limit int) context.Context {
	base, cancel := context.WithCancel(context.Background())
	rem := &atomic.Int64{}
	rem.Store(int64(limit))
	return &countingContext{Context: base, cancel: cancel, remaining: rem}
}

// newSandboxedState creates a Lua state with only the safe standard
// libraries, no file or load access, and a hard instruction budget.
func newSandboxedState() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
	for _, name := range []string{"dofile", "loadfile", "load", "collectgarbage", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
	L.SetContext(newCountingContext(scriptInstructionLimit))
	return L
}

// LoadScripted runs a Lua package script and converts its declared
// bundle into a Package. The script must leave a global table named
// "package_def" shaped like:
//
//	package_def = {
//	  tag = "my_custom_physics",
//	  name = "My Custom Physics",
//	  description = "What it does",
//	  objects = { { id = "widget", name = "widget", description = "...",
//	                location = "none", takeable = true,
//	                verbs = {"take", "use"} }, ... },
//	  transformations = { { id = "widget_used", object_id = "widget",
//	                        state = "normal", turns_required = 1,
//	                        new_state = "used", message = "..." }, ... },
//	}
//
// Postcondition: On success the returned package is closed in the same
// sense as the built-in ones: every object a transformation references
// is checked against the package's own object set.
func LoadScripted(path string) (*Package, error) {
	L := newSandboxedState()
	defer L.Close()

	if err := L.DoFile(path); err != nil {
		return nil, fmt.Errorf("physics script %s: %w", path, err)
	}

	def, ok := L.GetGlobal("package_def").(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("physics script %s: global package_def table not defined", path)
	}

	tag := tableString(def, "tag")
	if tag == "" {
		return nil, fmt.Errorf("physics script %s: package_def.tag is required", path)
	}
	pkg := newPackage(world.SubsystemTag(tag), tableString(def, "name"), tableString(def, "description"))

	if objects, ok := L.GetField(def, "objects").(*lua.LTable); ok {
		var convErr error
		objects.ForEach(func(_, v lua.LValue) {
			row, ok := v.(*lua.LTable)
			if !ok || convErr != nil {
				return
			}
			obj, err := objectFromTable(row)
			if err != nil {
				convErr = fmt.Errorf("physics script %s: %w", path, err)
				return
			}
			pkg.Objects[obj.ID] = obj
		})
		if convErr != nil {
			return nil, convErr
		}
	}

	if transforms, ok := L.GetField(def, "transformations").(*lua.LTable); ok {
		var convErr error
		transforms.ForEach(func(_, v lua.LValue) {
			row, ok := v.(*lua.LTable)
			if !ok || convErr != nil {
				return
			}
			tr, err := transformationFromTable(row)
			if err != nil {
				convErr = fmt.Errorf("physics script %s: %w", path, err)
				return
			}
			pkg.Transformations[tr.ID] = tr
		})
		if convErr != nil {
			return nil, convErr
		}
	}

	if err := checkClosure(pkg); err != nil {
		return nil, fmt.Errorf("physics script %s: %w", path, err)
	}
	return pkg, nil
}

// checkClosure verifies the package references only its own objects.
// Scripted packages cannot see the world, so unlike the built-in
// builders they may not lean on objects injected elsewhere.
func checkClosure(pkg *Package) error {
	for id, tr := range pkg.Transformations {
		refs := []string{tr.ObjectID, tr.NewObjectID, tr.RequiresObject, tr.RequiresObject2}
		for _, ref := range refs {
			if ref == "" {
				continue
			}
			if _, ok := pkg.Objects[ref]; !ok {
				return fmt.Errorf("transformation %s references object %s not defined by the package", id, ref)
			}
		}
	}
	return nil
}

func tableString(t *lua.LTable, key string) string {
	if s, ok := t.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return ""
}

func tableBool(t *lua.LTable, key string) bool {
	if b, ok := t.RawGetString(key).(lua.LBool); ok {
		return bool(b)
	}
	return false
}

func tableInt(t *lua.LTable, key string) int {
	if n, ok := t.RawGetString(key).(lua.LNumber); ok {
		return int(n)
	}
	return 0
}

func objectFromTable(row *lua.LTable) (*world.GameObject, error) {
	id := tableString(row, "id")
	if id == "" {
		return nil, fmt.Errorf("object entry missing id")
	}
	obj := &world.GameObject{
		ID:            id,
		Name:          tableString(row, "name"),
		Description:   tableString(row, "description"),
		Location:      tableString(row, "location"),
		Takeable:      tableBool(row, "takeable"),
		Weapon:        tableBool(row, "weapon"),
		Damage:        tableInt(row, "damage"),
		Consumable:    tableBool(row, "consumable"),
		HealthRestore: tableInt(row, "health_restore"),
		Container:     tableBool(row, "container"),
		Wearable:      tableBool(row, "wearable"),
		BribeValue:    tableString(row, "bribe_value"),
		Properties:    make(map[string]string),
	}
	if obj.Location == "" {
		obj.Location = world.LocationNone
	}
	if verbs, ok := row.RawGetString("verbs").(*lua.LTable); ok {
		verbs.ForEach(func(_, v lua.LValue) {
			if s, ok := v.(lua.LString); ok {
				obj.Verbs = append(obj.Verbs, string(s))
			}
		})
	}
	return obj, nil
}

func transformationFromTable(row *lua.LTable) (*world.Transformation, error) {
	id := tableString(row, "id")
	if id == "" {
		return nil, fmt.Errorf("transformation entry missing id")
	}
	return &world.Transformation{
		ID:               id,
		ObjectID:         tableString(row, "object_id"),
		State:            tableString(row, "state"),
		TurnsRequired:    tableInt(row, "turns_required"),
		NewState:         tableString(row, "new_state"),
		Message:          tableString(row, "message"),
		NewObjectID:      tableString(row, "new_object_id"),
		NewLocation:      tableString(row, "new_location"),
		RequiresObject:   tableString(row, "requires_object"),
		RequiresObject2:  tableString(row, "requires_object_2"),
		LocationProperty: tableString(row, "location_property"),
		Properties:       make(map[string]string),
	}, nil
}
