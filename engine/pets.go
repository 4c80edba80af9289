package engine

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/nathoo/lifequest/engine/state"
	"github.com/nathoo/lifequest/types"
)

const (
	petCooldown  = time.Hour
	playCooldown = 10 * time.Minute
	feedXP       = 10
	playXP       = 15
)

// PetStatus is an owned pet with its current progress and benefit.
type PetStatus struct {
	Def      types.PetDef
	Progress types.PetProgress
	Benefit  int
	Desc     string
}

// PetProgress returns the player's progress for a pet, defaulting to
// level 1 with the template's evolve threshold.
func (e *Engine) PetProgress(name string) types.PetProgress {
	if pr, ok := e.Player.PetStats[name]; ok {
		return pr
	}
	def, _ := e.Catalog.Pet(name)
	return types.PetProgress{Level: 1, XPToEvolve: def.XPToEvolve}
}

// PetBenefit returns the benefit kind, its level-scaled value and the
// filled-in description.
func (e *Engine) PetBenefit(name string) (types.PetBenefitKind, int, string, bool) {
	def, ok := e.Catalog.Pet(name)
	if !ok {
		return "", 0, "Unknown Benefit", false
	}
	lvl := e.PetProgress(name).Level
	base := def.Benefit.BaseValue
	milestones := (lvl - 1) / 5
	value := base + int(math.Ceil(float64(milestones)*0.5*float64(base)))
	desc := strings.ReplaceAll(def.BenefitDesc, "{value}", strconv.Itoa(value))
	return def.Benefit.Kind, value, desc, true
}

// Pets lists owned pets in ownership order.
func (e *Engine) Pets() []PetStatus {
	var out []PetStatus
	for _, name := range e.Player.Pets {
		def, ok := e.Catalog.Pet(name)
		if !ok {
			continue
		}
		_, value, desc, _ := e.PetBenefit(name)
		out = append(out, PetStatus{Def: def, Progress: e.PetProgress(name), Benefit: value, Desc: desc})
	}
	return out
}

// formatRemaining renders a duration as H:MM:SS.
func formatRemaining(d time.Duration) string {
	d = d.Truncate(time.Second)
	h := int(d / time.Hour)
	m := int(d%time.Hour) / int(time.Minute)
	s := int(d%time.Minute) / int(time.Second)
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

// PetAPet pets an owned pet. Half the time the pet's benefit applies.
func (e *Engine) PetAPet(ctx context.Context, name string) (types.Result, error) {
	p := e.Player
	if !state.HasPet(p, name) {
		return e.result(false, "You don't have this pet!"), nil
	}
	now := e.Now()
	if end, ok := p.PetCooldowns[name]; ok && now.Before(end) {
		return e.result(false, fmt.Sprintf("You can't pet %s yet. Cooldown remaining: %s", name, formatRemaining(end.Sub(now)))), nil
	}
	p.PetCooldowns[name] = now.Add(petCooldown)

	var lines []string
	if e.RNG.Chance(0.5) {
		lines = append(lines, fmt.Sprintf("You petted %s and feel a surge of its power!", name))
		lines = append(lines, e.applyPetBenefit(name)...)
	} else {
		lines = append(lines, fmt.Sprintf("You petted %s. Nothing special happened this time, but it seemed happy.", name))
	}
	e.incrementDailyTasks()
	e.emit("pet", map[string]any{"pet": name})
	return e.commit(ctx, "pet: petted "+name, true, lines...)
}

func (e *Engine) applyPetBenefit(name string) []string {
	p := e.Player
	kind, value, _, ok := e.PetBenefit(name)
	if !ok {
		return nil
	}
	switch kind {
	case types.BenefitXP:
		_, lines, ok := e.awardXP(value, false)
		if !ok {
			return lines
		}
		return append([]string{fmt.Sprintf("Your pet's benefit granted you %d additional XP!", value)}, lines...)
	case types.BenefitCoin:
		if _, ok := e.awardCoins(value); !ok {
			return []string{msgCorruptCoins}
		}
		return []string{fmt.Sprintf("Your pet's benefit granted you %d additional coin!", value)}
	case types.BenefitPunishment:
		if p.PunishmentSum > 0 {
			p.PunishmentSum = max(0, p.PunishmentSum-value)
			return []string{fmt.Sprintf("Your pet mitigated %d punishment point(s)!", value)}
		}
	case types.BenefitCorruption:
		p.Corruption = max(0, p.Corruption-value)
		return []string{fmt.Sprintf("Your pet helped reduce your corruption by %d!", value)}
	default:
		if skill, found := strings.CutPrefix(string(kind), "skill_"); found {
			skill = titleCase.String(skill)
			e.addNewSkill(skill)
			e.gainSkillPoints(skill, value)
			return []string{fmt.Sprintf("Your pet enhanced your %s skill by %d XP!", skill, value)}
		}
	}
	return nil
}

// addPetXP adds XP to a pet and levels it when the threshold is reached.
func (e *Engine) addPetXP(name string, xp int) (types.PetProgress, bool) {
	pr := e.PetProgress(name)
	pr.XP += xp
	leveled := false
	if pr.XP >= pr.XPToEvolve {
		pr.Level++
		pr.XP = 0
		pr.XPToEvolve = int(float64(pr.XPToEvolve) * 1.5)
		leveled = true
		e.emit("pet_level_up", map[string]any{"pet": name, "level": pr.Level})
	}
	e.Player.PetStats[name] = pr
	return pr, leveled
}

// FeedPet spends one pet food for 10 pet XP.
func (e *Engine) FeedPet(ctx context.Context, name string) (types.Result, error) {
	p := e.Player
	if p.PetFood <= 0 {
		return e.result(false, "You don't have any pet food! Buy some from the shop."), nil
	}
	if !state.HasPet(p, name) {
		return e.result(false, "You don't have this pet."), nil
	}
	if _, ok := e.Catalog.Pet(name); !ok {
		return e.result(false, fmt.Sprintf("%s is not a known pet and cannot gain XP.", name)), nil
	}
	p.PetFood--
	pr, leveled := e.addPetXP(name, feedXP)
	lines := []string{fmt.Sprintf("You fed %s. It gained %d XP. You have %d pet food left.", name, feedXP, p.PetFood)}
	if leveled {
		lines = append(lines, fmt.Sprintf("%s leveled up to Level %d!", name, pr.Level))
	}
	return e.commit(ctx, "pet: fed "+name, true, lines...)
}

// PlayWithPet gives 15 pet XP, at most once per cooldown.
func (e *Engine) PlayWithPet(ctx context.Context, name string) (types.Result, error) {
	p := e.Player
	if !state.HasPet(p, name) {
		return e.result(false, "You don't have this pet."), nil
	}
	if _, ok := e.Catalog.Pet(name); !ok {
		return e.result(false, fmt.Sprintf("%s is not a known pet and cannot gain XP.", name)), nil
	}
	now := e.Now()
	if end, ok := p.PlayCooldowns[name]; ok && now.Before(end) {
		return e.result(false, fmt.Sprintf("You can't play with %s yet. Cooldown remaining: %s", name, formatRemaining(end.Sub(now)))), nil
	}
	p.PlayCooldowns[name] = now.Add(playCooldown)
	pr, leveled := e.addPetXP(name, playXP)
	msg := fmt.Sprintf("You played with %s. It gained %d XP.", name, playXP)
	if leveled {
		msg += fmt.Sprintf(" It leveled up to Level %d!", pr.Level)
	}
	return e.commit(ctx, "pet: played with "+name, true, msg)
}
