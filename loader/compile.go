package loader

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/lifequest/engine/catalog"
	"github.com/nathoo/lifequest/types"
)

// rawDef holds a named constructor table before compilation.
type rawDef struct {
	name  string
	table *lua.LTable
}

// rawActivities holds one Activities(category, list) call.
type rawActivities struct {
	category string
	names    []string
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	if s, ok := tbl.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getNumber returns a numeric field and whether it was present.
func getNumber(tbl *lua.LTable, key string) (float64, bool) {
	if n, ok := tbl.RawGetString(key).(lua.LNumber); ok {
		return float64(n), true
	}
	return 0, false
}

// getInt returns an int field from a Lua table, or 0 if missing.
func getInt(tbl *lua.LTable, key string) int {
	n, _ := getNumber(tbl, key)
	return int(n)
}

// compile converts collected Lua tables into catalog content.
func compile(coll *collector) *catalog.Content {
	content := &catalog.Content{}
	for _, raw := range coll.punishments {
		content.Punishments = append(content.Punishments, compilePunishment(raw))
	}
	for _, raw := range coll.exercises {
		content.Exercises = append(content.Exercises, compileExercise(raw))
	}
	for _, raw := range coll.sideQuests {
		content.SideQuests = append(content.SideQuests, compileSideQuest(raw))
	}
	for _, raw := range coll.activities {
		if content.Activities == nil {
			content.Activities = map[string][]string{}
		}
		content.Activities[raw.category] = append(content.Activities[raw.category], raw.names...)
	}
	return content
}

func compilePunishment(raw rawDef) types.PunishmentDef {
	tbl := raw.table
	def := types.PunishmentDef{
		Name:          raw.name,
		Severity:      getString(tbl, "severity"),
		Punishment:    getInt(tbl, "points"),
		XPPenalty:     getInt(tbl, "xp"),
		CoinPenalty:   getInt(tbl, "coins"),
		SpecialEffect: types.SpecialEffect(getString(tbl, "special")),
	}
	if def.Severity == "" {
		def.Severity = "OK"
	}
	if def.SpecialEffect != types.SpecialNone {
		if chance, ok := getNumber(tbl, "chance"); ok {
			def.SpecialChance = chance
		} else {
			def.SpecialChance = catalog.SeverityChances[def.Severity]
		}
	}
	return def
}

func compileExercise(raw rawDef) types.ExerciseDef {
	tbl := raw.table
	return types.ExerciseDef{
		Name:           raw.name,
		Skill:          getString(tbl, "skill"),
		Difficulty:     getString(tbl, "difficulty"),
		BaseXP:         getInt(tbl, "xp"),
		BaseCoin:       getInt(tbl, "coins"),
		WorkoutType:    getString(tbl, "type"),
		DurationTarget: getInt(tbl, "duration"),
	}
}

func compileSideQuest(raw rawDef) types.SideQuestDef {
	tbl := raw.table
	return types.SideQuestDef{
		Name:        raw.name,
		Description: getString(tbl, "description"),
		XPReward:    getInt(tbl, "xp"),
		CoinReward:  getInt(tbl, "coins"),
	}
}
