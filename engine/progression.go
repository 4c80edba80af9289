package engine

import (
	"fmt"
	"math"

	"github.com/nathoo/lifequest/engine/catalog"
	"github.com/nathoo/lifequest/engine/modifier"
	"github.com/nathoo/lifequest/engine/state"
	"github.com/nathoo/lifequest/types"
)

const (
	msgCorruptXP    = "Your laziness gets the better of you... No XP gained due to corruption."
	msgCorruptCoins = "Your laziness gets the better of you... No coins gained due to corruption."

	levelUpCoins = 5
)

// EffectiveCorruption is the corruption value the failure gate rolls against.
func (e *Engine) EffectiveCorruption() float64 {
	p := e.Player
	eff := float64(max(0, p.Corruption-p.DailyStreak))
	if p.ActiveTitle == catalog.TitleIndomitable {
		eff *= 0.85
	}
	eff *= 1 - modifier.Resolve(p.Gear, types.EffectCorruptionReduction)
	return max(0, eff)
}

// corrupted rolls the corruption gate. True means the action fails.
func (e *Engine) corrupted() bool {
	chance := min(100, e.EffectiveCorruption()*10)
	roll := e.RNG.Roll(100)
	failed := float64(roll) <= chance
	if failed {
		e.emit("corruption_failure", map[string]any{"roll": roll, "chance": chance})
	}
	return failed
}

// awardXP runs the corruption gate, applies title and gear bonuses, adds
// the XP and any pending boost, then processes level-ups. It returns the
// XP actually added and the lines to show.
func (e *Engine) awardXP(amount int, isQuest bool) (int, []string, bool) {
	if e.corrupted() {
		return 0, []string{msgCorruptXP}, false
	}
	p := e.Player
	a := amount
	if p.ActiveTitle == catalog.TitleProdigy {
		a = int(float64(a) * 1.1)
	}
	if isQuest && p.ActiveTitle == catalog.TitleLegendaryQuester {
		a = int(float64(a) * 1.05)
	}
	a = int(float64(a) * (1 + modifier.Resolve(p.Gear, types.EffectXPGain)))
	if state.BuffActive(p, e.Now()) {
		a *= 2
	}

	old := p.XP
	p.XP += a
	gained := a
	if p.XPBoostPending > 0 {
		p.XP += p.XPBoostPending
		gained += p.XPBoostPending
		p.XPBoostPending = 0
	}
	e.emit("xp_awarded", map[string]any{"amount": gained, "total": p.XP})
	return gained, e.levelUps(old, p.XP), true
}

// levelUps handles every level threshold crossed between old and cur.
func (e *Engine) levelUps(old, cur int) []string {
	var lines []string
	p := e.Player
	for _, lvl := range e.Catalog.Levels {
		if old < lvl.XPRequired && cur >= lvl.XPRequired {
			p.Title = lvl.Title
			p.CurrentLevel = lvl.XPRequired
			p.Coins += levelUpCoins
			lines = append(lines, fmt.Sprintf("Congratulations! You've reached %s!", lvl.Label))
			e.emit("level_up", map[string]any{"level": lvl.Label, "xp": lvl.XPRequired})
			if e.RNG.Chance(0.2) {
				if name, ok := e.unlockRandomTitle(); ok {
					lines = append(lines, fmt.Sprintf("Title Unlocked: %s!", name))
				}
			}
		}
	}
	return lines
}

// awardCoins runs the corruption gate and applies coin bonuses.
func (e *Engine) awardCoins(amount int) (int, bool) {
	if e.corrupted() {
		return 0, false
	}
	p := e.Player
	a := amount
	if p.ActiveTitle == catalog.TitleWorkhorse {
		a = int(float64(a) * 1.1)
	}
	a = int(float64(a) * (1 + modifier.Resolve(p.Gear, types.EffectCoinGain)))
	if state.BuffActive(p, e.Now()) {
		a *= 2
	}
	a = int(float64(a) * p.CoinGainMultiplier)
	p.Coins += a
	e.emit("coins_awarded", map[string]any{"amount": a, "total": p.Coins})
	return a, true
}

// gainSkillPoints adds XP to a registered skill. Unregistered skills are
// ignored and report false.
func (e *Engine) gainSkillPoints(skill string, amount int) (int, bool) {
	p := e.Player
	sk, ok := p.Skills[skill]
	if !ok {
		return 0, false
	}
	a := amount
	switch {
	case skill == catalog.SkillIntellect && p.ActiveTitle == catalog.TitleSage,
		skill == catalog.SkillFaith && p.ActiveTitle == catalog.TitleZealot:
		a = int(float64(a) * 1.1)
	}
	a = int(float64(a) * (1 + modifier.ResolveSkill(p.Gear, skill)))
	sk.XP += a
	sk.LastUpdated = e.today()
	p.Skills[skill] = sk
	e.emit("skill_gain", map[string]any{"skill": skill, "amount": a})
	return a, true
}

// addNewSkill registers a skill if it is not already known.
func (e *Engine) addNewSkill(skill string) bool {
	if _, ok := e.Player.Skills[skill]; ok || skill == "" {
		return false
	}
	e.Player.Skills[skill] = types.Skill{LastUpdated: e.today()}
	return true
}

// unlockRandomTitle unlocks one title the player does not have yet.
func (e *Engine) unlockRandomTitle() (string, bool) {
	var available []string
	for _, t := range e.Catalog.Titles {
		if !state.HasTitle(e.Player, t.Name) {
			available = append(available, t.Name)
		}
	}
	if len(available) == 0 {
		return "", false
	}
	name := Pick(e.RNG, available)
	state.UnlockTitle(e.Player, name)
	e.emit("title_unlocked", map[string]any{"title": name})
	return name, true
}

// CurrentLevel returns the highest level reached, or false before the first.
func (e *Engine) CurrentLevel() (types.LevelDef, bool) {
	var cur types.LevelDef
	found := false
	for _, lvl := range e.Catalog.Levels {
		if e.Player.XP >= lvl.XPRequired {
			cur, found = lvl, true
		}
	}
	return cur, found
}

// CurrentLevelName returns the label of the level reached, or
// "Max Level Reached" once the last threshold is passed.
func (e *Engine) CurrentLevelName() string {
	levels := e.Catalog.Levels
	if len(levels) > 0 && e.Player.XP >= levels[len(levels)-1].XPRequired {
		return "Max Level Reached"
	}
	if lvl, ok := e.CurrentLevel(); ok {
		return lvl.Label
	}
	return catalog.BaseTitle
}

// XPForNextLevel returns the XP still needed for the next threshold.
func (e *Engine) XPForNextLevel() (int, bool) {
	for _, lvl := range e.Catalog.Levels {
		if e.Player.XP < lvl.XPRequired {
			return lvl.XPRequired - e.Player.XP, true
		}
	}
	return 0, false
}

// skillDecay is the XP lost by a skill untouched for days.
func (e *Engine) skillDecay(days int) int {
	switch {
	case days <= 0:
		return 0
	case days < 7:
		return days * e.RNG.Between(1, 2)
	default:
		return int(math.Ceil(2 * math.Pow(1.5, float64(min(days-7, 10)))))
	}
}

// loseSkillXP removes up to n XP from a skill, floored at 0.
func (e *Engine) loseSkillXP(skill string, n int) {
	sk := e.Player.Skills[skill]
	sk.XP = max(0, sk.XP-n)
	e.Player.Skills[skill] = sk
}
