package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers the content constructors as globals.
//
//	Punishment "Doomscrolling" { severity = "Moderate", points = 3, xp = 5, coins = 2 }
//	Exercise "Burpees" { skill = "Durability", difficulty = "Mediocre", xp = 2, type = "Full" }
//	SideQuest "Water Plants" { description = "...", xp = 3, coins = 1 }
//	Activities("iq", { "Solve a logic puzzle", "Learn a card trick" })
func registerAPI(L *lua.LState, coll *collector) {
	L.SetGlobal("Punishment", curried(L, &coll.punishments))
	L.SetGlobal("Exercise", curried(L, &coll.exercises))
	L.SetGlobal("SideQuest", curried(L, &coll.sideQuests))

	L.SetGlobal("Activities", L.NewFunction(func(L *lua.LState) int {
		category := L.CheckString(1)
		tbl := L.CheckTable(2)
		var names []string
		for i := 1; i <= tbl.MaxN(); i++ {
			if s, ok := tbl.RawGetInt(i).(lua.LString); ok {
				names = append(names, string(s))
			}
		}
		coll.activities = append(coll.activities, rawActivities{category: category, names: names})
		return 0
	}))
}

// curried builds a Name "x" { ... } constructor: the first call takes the
// name and returns a function that takes the table.
func curried(L *lua.LState, dst *[]rawDef) *lua.LFunction {
	return L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			*dst = append(*dst, rawDef{name: name, table: tbl})
			return 0
		}))
		return 1
	})
}
