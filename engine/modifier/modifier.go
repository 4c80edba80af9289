// Package modifier sums the fractional bonuses carried by equipped gear.
// Title bonuses are layered on by the caller.
package modifier

import (
	"maps"
	"slices"
	"strings"

	"github.com/nathoo/lifequest/types"
)

var kinds = map[types.EffectKind]bool{
	types.EffectXPGain:              true,
	types.EffectCoinGain:            true,
	types.EffectPunishmentReduction: true,
	types.EffectCorruptionReduction: true,
	types.EffectDailyStreakChance:   true,
	types.EffectQuestSpeed:          true,
	types.EffectSkillXPBonus:        true,
	types.EffectStrengthXPGain:      true,
	types.EffectEnduranceXPGain:     true,
	types.EffectDurabilityXPGain:    true,
	types.EffectIntellectXPGain:     true,
	types.EffectFaithXPGain:         true,
}

// IsValid reports whether k is a known effect kind.
func IsValid(k types.EffectKind) bool {
	return kinds[k]
}

// SkillGainKind returns the gear kind that boosts a skill, e.g.
// "Strength" -> strength_xp_gain.
func SkillGainKind(skill string) types.EffectKind {
	return types.EffectKind(strings.ToLower(skill) + "_xp_gain")
}

// IsSkillGain reports whether k boosts a single skill.
func IsSkillGain(k types.EffectKind) bool {
	return k != types.EffectXPGain && strings.HasSuffix(string(k), "_xp_gain")
}

// Resolve returns the sum of every equipped buff and extra effect of kind k.
// Slots are summed in name order so the float result is stable.
func Resolve(gear map[string]*types.GearItem, k types.EffectKind) float64 {
	total := 0.0
	for _, slot := range slices.Sorted(maps.Keys(gear)) {
		item := gear[slot]
		if item == nil {
			continue
		}
		if item.Buff.Type == k {
			total += item.Buff.Value
		}
		if item.ExtraEffect != nil && item.ExtraEffect.Type == k {
			total += item.ExtraEffect.Value
		}
	}
	return total
}

// ResolveSkill returns the skill-specific bonus: the skill's gain kind plus
// any skill_xp_bonus extra effect naming that skill.
func ResolveSkill(gear map[string]*types.GearItem, skill string) float64 {
	total := Resolve(gear, SkillGainKind(skill))
	for _, slot := range slices.Sorted(maps.Keys(gear)) {
		item := gear[slot]
		if item == nil || item.ExtraEffect == nil {
			continue
		}
		x := item.ExtraEffect
		if x.Type == types.EffectSkillXPBonus && strings.EqualFold(x.Skill, skill) {
			total += x.Value
		}
	}
	return total
}
