// Package loader reads extra catalog content: sandboxed Lua content packs
// and CSV exercise tables. The Lua VM is discarded after loading.
package loader

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/lifequest/engine/catalog"
)

// collector accumulates Lua definitions during file execution.
type collector struct {
	punishments []rawDef
	exercises   []rawDef
	sideQuests  []rawDef
	activities  []rawActivities
}

// Load runs every .lua file in dir, in name order, and returns the
// compiled and validated content. A directory without packs yields empty
// content.
func Load(dir string, log *slog.Logger) (*catalog.Content, error) {
	if log == nil {
		log = slog.Default()
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading content directory %s: %w", dir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			luaFiles = append(luaFiles, e.Name())
		}
	}
	if len(luaFiles) == 0 {
		log.Debug("no content packs", "dir", dir)
		return &catalog.Content{}, nil
	}
	sort.Strings(luaFiles)

	L := newVM()
	defer L.Close()
	coll := &collector{}
	registerAPI(L, coll)

	for _, f := range luaFiles {
		if err := L.DoFile(filepath.Join(dir, f)); err != nil {
			return nil, fmt.Errorf("executing %s: %w", f, err)
		}
	}

	content := compile(coll)
	if err := validate(content, log); err != nil {
		return nil, err
	}
	log.Info("content packs loaded",
		"files", len(luaFiles),
		"punishments", len(content.Punishments),
		"exercises", len(content.Exercises),
		"side_quests", len(content.SideQuests),
		"activity_categories", len(content.Activities))
	return content, nil
}

// newVM creates a Lua state with only the safe libraries open.
func newVM() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibs(L)
	sandbox(L)
	return L
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes globals that reach outside the pack.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage", "require", "module",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}

	// Packs must not reseed or draw from the shared generator.
	if tbl, ok := L.GetGlobal("math").(*lua.LTable); ok {
		tbl.RawSetString("randomseed", lua.LNil)
		tbl.RawSetString("random", lua.LNil)
	}
}
