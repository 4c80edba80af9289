package engine

import (
	"fmt"

	"github.com/nathoo/lifequest/engine/catalog"
	"github.com/nathoo/lifequest/engine/state"
	"github.com/nathoo/lifequest/types"
)

// achievementRule pairs a predicate with the one-time reward it grants.
type achievementRule struct {
	key    string
	met    func(e *Engine) bool
	reward func(e *Engine) []string
}

// achievementRules are evaluated in this order.
var achievementRules = []achievementRule{
	{
		key: catalog.AchQuestGrandmaster,
		met: func(e *Engine) bool { return e.Player.MainQuestsCompleted >= 20 },
		reward: func(e *Engine) []string {
			return e.grantTitle(catalog.TitleLegendaryQuester)
		},
	},
	{
		key: catalog.AchTranscendentOne,
		met: func(e *Engine) bool { return e.Player.TranscendenceCount >= 3 },
		reward: func(e *Engine) []string {
			e.Player.CoinGainMultiplier += 0.1
			return e.grantTitle(catalog.TitleAscended)
		},
	},
	{
		key: catalog.AchFirstSteps,
		met: func(e *Engine) bool { return e.Player.MainQuestsCompleted >= 1 },
		reward: func(e *Engine) []string {
			e.awardCoins(50)
			return nil
		},
	},
	{
		key: catalog.AchPetLover,
		met: func(e *Engine) bool { return len(e.Player.Pets) >= 3 },
		reward: func(e *Engine) []string {
			e.Player.PetFood += 5
			return nil
		},
	},
	{
		key: catalog.AchWealthyAdventurer,
		met: func(e *Engine) bool { return e.Player.Coins >= 500 },
		reward: func(e *Engine) []string {
			e.awardCoins(100)
			return nil
		},
	},
	{
		key: catalog.AchSkillMaster,
		met: func(e *Engine) bool {
			for _, sk := range e.Player.Skills {
				if sk.XP >= 100 {
					return true
				}
			}
			return false
		},
		reward: func(e *Engine) []string {
			tomes := e.Catalog.SkillTomes()
			if len(tomes) == 0 {
				return nil
			}
			tome := Pick(e.RNG, tomes)
			e.addNewSkill(tome.Skill)
			e.gainSkillPoints(tome.Skill, tome.Amount)
			return []string{fmt.Sprintf("You received a %s!", tome.Name)}
		},
	},
	{
		key: catalog.AchGearCollector,
		met: func(e *Engine) bool { return uniqueGear(e.Player) >= 5 },
		reward: func(e *Engine) []string {
			item := state.NewGearItem(catalog.LegendaryHelmet)
			e.Player.Inventory = append(e.Player.Inventory, item)
			return []string{fmt.Sprintf("You received %s!", item.Name)}
		},
	},
	{
		key: catalog.AchDailyMaster,
		met: func(e *Engine) bool { return e.Player.DailyTasksCompleted >= 7 },
		reward: func(e *Engine) []string {
			_, lines, _ := e.awardXP(100, false)
			return append(lines, e.grantTitle(catalog.TitleDiligent)...)
		},
	},
	{
		key: catalog.AchCorruptionCleanse,
		met: func(e *Engine) bool { return e.Player.Corruption <= 0 && e.Player.CorruptionPeak >= 20 },
		reward: func(e *Engine) []string {
			_, lines, _ := e.awardXP(200, false)
			return lines
		},
	},
	{
		key: catalog.AchForgeApprentice,
		met: func(e *Engine) bool { return maxEnchant(e.Player) >= 3 },
		reward: func(e *Engine) []string {
			e.awardCoins(50)
			return nil
		},
	},
	{
		key: catalog.AchMasterCrafter,
		met: func(e *Engine) bool { return maxEnchant(e.Player) >= 5 },
		reward: func(e *Engine) []string {
			e.awardCoins(200)
			return e.grantTitle(catalog.TitleArtisan)
		},
	},
	{
		key: catalog.AchTranscendedGearMaster,
		met: func(e *Engine) bool {
			for _, it := range state.AllGear(e.Player) {
				if it.Transcended && it.ExtraEffect != nil {
					return true
				}
			}
			return false
		},
		reward: func(e *Engine) []string {
			e.awardCoins(300)
			return e.grantTitle(catalog.TitleEmpowered)
		},
	},
}

// checkAchievements unlocks every newly met achievement and applies its
// reward once.
func (e *Engine) checkAchievements() []string {
	var lines []string
	for _, rule := range achievementRules {
		if state.HasAchievement(e.Player, rule.key) || !rule.met(e) {
			continue
		}
		e.Player.Achievements = append(e.Player.Achievements, rule.key)
		name := rule.key
		if def, ok := e.Catalog.Achievement(rule.key); ok {
			name = def.Name
		}
		lines = append(lines, fmt.Sprintf("Achievement Unlocked: %s!", name))
		lines = append(lines, rule.reward(e)...)
		e.emit("achievement", map[string]any{"key": rule.key})
		e.Log.Info("achievement unlocked", "key", rule.key)
	}
	return lines
}

func (e *Engine) grantTitle(name string) []string {
	if !state.UnlockTitle(e.Player, name) {
		return nil
	}
	e.emit("title_unlocked", map[string]any{"title": name})
	return []string{fmt.Sprintf("Title Unlocked: %s!", name)}
}

func uniqueGear(p *types.Player) int {
	seen := map[string]bool{}
	for _, it := range state.AllGear(p) {
		seen[state.BaseName(it)] = true
	}
	return len(seen)
}

func maxEnchant(p *types.Player) int {
	best := 0
	for _, it := range state.AllGear(p) {
		best = max(best, it.EnchantLevel)
	}
	return best
}

// AchievementStatus is an achievement with its unlock state.
type AchievementStatus struct {
	types.AchievementDef
	Unlocked bool
}

// Achievements lists every achievement in catalog order.
func (e *Engine) Achievements() []AchievementStatus {
	out := make([]AchievementStatus, 0, len(e.Catalog.Achievements))
	for _, a := range e.Catalog.Achievements {
		out = append(out, AchievementStatus{AchievementDef: a, Unlocked: state.HasAchievement(e.Player, a.Key)})
	}
	return out
}
