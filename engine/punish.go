package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/nathoo/lifequest/engine/catalog"
	"github.com/nathoo/lifequest/engine/modifier"
	"github.com/nathoo/lifequest/engine/state"
	"github.com/nathoo/lifequest/types"
)

// ResetThreshold is the punishment sum that wipes all progress.
const ResetThreshold = 10

const msgReset = "Your punishment sum reached 10! All game progress has been reset."

// Punishments lists every known punishment, built-in first.
func (e *Engine) Punishments() []types.PunishmentDef {
	return e.Catalog.Punishments
}

// applyPunishmentValue reduces v by title and gear and adds it to the sum.
func (e *Engine) applyPunishmentValue(v int) int {
	p := e.Player
	if p.ActiveTitle == catalog.TitleResilient {
		v = int(float64(v) * 0.9)
	}
	v = int(float64(v) * (1 - modifier.Resolve(p.Gear, types.EffectPunishmentReduction)))
	p.PunishmentSum += v
	e.emit("punishment_value", map[string]any{"value": v, "sum": p.PunishmentSum})
	return v
}

// resetIfPunished resets the player when the punishment sum is at the
// threshold. It returns the line to show, or "".
func (e *Engine) resetIfPunished() string {
	if e.Player.PunishmentSum < ResetThreshold {
		return ""
	}
	e.resetGame()
	return msgReset
}

// ApplyPunishment records a bad habit. A pending mitigation potion absorbs
// it entirely.
func (e *Engine) ApplyPunishment(ctx context.Context, name string) (types.Result, error) {
	pun, ok := e.Catalog.Punishment(name)
	if !ok {
		return e.result(false, fmt.Sprintf("Punishment '%s' not found.", name)), nil
	}
	p := e.Player
	if p.PunishmentMitigationPending {
		p.PunishmentMitigationPending = false
		e.emit("punishment_mitigated", map[string]any{"name": name})
		return e.commit(ctx, "punish: mitigated "+name, true,
			fmt.Sprintf("Punishment for '%s' was mitigated by your potion!", name))
	}

	applied := e.applyPunishmentValue(pun.Punishment)
	p.XP = max(0, p.XP-pun.XPPenalty)
	p.Coins = max(0, p.Coins-pun.CoinPenalty)
	lines := []string{fmt.Sprintf("Applied punishment for: %s. Sum +%d, XP -%d, Coins -%d.",
		name, applied, pun.XPPenalty, pun.CoinPenalty)}

	if pun.SpecialEffect != types.SpecialNone && e.RNG.Chance(pun.SpecialChance) {
		if line := e.specialEffect(pun.SpecialEffect); line != "" {
			lines = append(lines, "TERRIBLE LUCK! "+line)
		}
	}

	e.incrementDailyTasks()
	lines = append(lines, e.resetIfPunished())
	return e.commit(ctx, "punish: "+name, true, lines...)
}

func (e *Engine) specialEffect(fx types.SpecialEffect) string {
	p := e.Player
	switch fx {
	case types.SpecialPetLoss:
		if pet, ok := e.loseRandomPet(); ok {
			return fmt.Sprintf("Your pet %s got scared and ran away forever!", pet)
		}
	case types.SpecialTitleLoss:
		var losable []string
		for _, t := range p.UnlockedTitles {
			if t != catalog.BaseTitle {
				losable = append(losable, t)
			}
		}
		if len(losable) > 0 {
			lost := Pick(e.RNG, losable)
			state.RemoveTitle(p, lost)
			e.emit("title_lost", map[string]any{"title": lost})
			return fmt.Sprintf("You lost the memory of what it meant to be a '%s'!", lost)
		}
	case types.SpecialSkillDecay:
		return e.penalizeRandomSkill(25)
	case types.SpecialCorruptionGain:
		n := e.RNG.Between(5, 15)
		e.addCorruption(n)
		return fmt.Sprintf("Your corruption increased by %d!", n)
	case types.SpecialResetStreak:
		p.DailyStreak = 0
		return "Your daily streak has been reset to 0!"
	case types.SpecialXPBoostLoss:
		if p.XPBoostPending > 0 {
			p.XPBoostPending = 0
			return "Your pending XP boost was lost!"
		}
	}
	return ""
}

// CustomPunishment is the player input for a new punishment.
type CustomPunishment struct {
	Name        string
	Severity    string
	Punishment  int
	XPPenalty   int
	CoinPenalty int
	Special     bool // draw a random special effect at the severity's chance
}

// AddCustomPunishment adds a player-authored punishment. It is stored in
// the save record and survives resets.
func (e *Engine) AddCustomPunishment(ctx context.Context, in CustomPunishment) (types.Result, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return e.result(false, "Punishment name is required."), nil
	}
	if _, ok := catalog.SeverityChances[in.Severity]; !ok {
		return e.result(false, fmt.Sprintf("Unknown severity %q. Choose OK, Moderate, High or Terrible.", in.Severity)), nil
	}
	if in.Punishment < 0 || in.XPPenalty < 0 || in.CoinPenalty < 0 {
		return e.result(false, "Punishment values cannot be negative."), nil
	}
	def := types.PunishmentDef{
		Name:        name,
		Severity:    in.Severity,
		Punishment:  in.Punishment,
		XPPenalty:   in.XPPenalty,
		CoinPenalty: in.CoinPenalty,
		Custom:      true,
	}
	if in.Special {
		def.SpecialChance = catalog.SeverityChances[in.Severity]
		def.SpecialEffect = Pick(e.RNG, catalog.SpecialEffects)
	}
	if err := e.Catalog.AddPunishment(def); err != nil {
		return e.result(false, fmt.Sprintf("A punishment named '%s' already exists.", name)), nil
	}
	e.emit("punishment_added", map[string]any{"name": name})
	return e.commit(ctx, "punish: added "+name, true, fmt.Sprintf("Custom punishment '%s' added.", name))
}
