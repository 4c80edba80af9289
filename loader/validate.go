package loader

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/nathoo/lifequest/engine/catalog"
	"github.com/nathoo/lifequest/types"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

var knownSkills = []string{
	catalog.SkillStrength, catalog.SkillEndurance, catalog.SkillDurability,
	catalog.SkillIntellect, catalog.SkillFaith,
}

// validate checks compiled content for unknown enum values, negative
// rewards and duplicate names. Warnings are logged; any error fails.
func validate(c *catalog.Content, log *slog.Logger) error {
	ve := &ValidationError{}
	errorf := func(format string, args ...any) {
		ve.Errors = append(ve.Errors, fmt.Sprintf(format, args...))
	}
	warnf := func(format string, args ...any) {
		ve.Warnings = append(ve.Warnings, fmt.Sprintf(format, args...))
	}

	seen := map[string]bool{}
	for _, p := range c.Punishments {
		switch {
		case strings.TrimSpace(p.Name) == "":
			errorf("punishment with empty name")
		case seen[p.Name]:
			errorf("punishment %q defined twice", p.Name)
		}
		seen[p.Name] = true
		if _, ok := catalog.SeverityChances[p.Severity]; !ok {
			errorf("punishment %q has unknown severity %q", p.Name, p.Severity)
		}
		if p.Punishment < 0 || p.XPPenalty < 0 || p.CoinPenalty < 0 {
			errorf("punishment %q has negative penalties", p.Name)
		}
		if p.SpecialEffect != types.SpecialNone && !slices.Contains(catalog.SpecialEffects, p.SpecialEffect) {
			errorf("punishment %q has unknown special effect %q", p.Name, p.SpecialEffect)
		}
		if p.SpecialChance < 0 || p.SpecialChance > 1 {
			errorf("punishment %q special chance %v is outside 0..1", p.Name, p.SpecialChance)
		}
		if p.Punishment == 0 && p.XPPenalty == 0 && p.CoinPenalty == 0 {
			warnf("punishment %q has no penalties", p.Name)
		}
	}

	for _, ex := range c.Exercises {
		if strings.TrimSpace(ex.Name) == "" {
			errorf("exercise with empty name")
		}
		if !slices.Contains(knownSkills, ex.Skill) {
			errorf("exercise %q has unknown skill %q", ex.Name, ex.Skill)
		}
		if !slices.Contains(catalog.Difficulties, ex.Difficulty) {
			errorf("exercise %q has unknown difficulty %q", ex.Name, ex.Difficulty)
		}
		if ex.WorkoutType != "" && !slices.Contains(catalog.WorkoutTypes, ex.WorkoutType) {
			errorf("exercise %q has unknown workout type %q", ex.Name, ex.WorkoutType)
		}
		if ex.BaseXP < 0 || ex.BaseCoin < 0 || ex.DurationTarget < 0 {
			errorf("exercise %q has negative values", ex.Name)
		}
		if ex.Skill == catalog.SkillEndurance && ex.DurationTarget == 0 {
			warnf("endurance exercise %q has no duration and will never be drawn", ex.Name)
		}
	}

	seen = map[string]bool{}
	for _, sq := range c.SideQuests {
		switch {
		case strings.TrimSpace(sq.Name) == "":
			errorf("side quest with empty name")
		case seen[sq.Name]:
			errorf("side quest %q defined twice", sq.Name)
		}
		seen[sq.Name] = true
		if sq.XPReward < 0 || sq.CoinReward < 0 {
			errorf("side quest %q has negative rewards", sq.Name)
		}
	}

	for cat, names := range c.Activities {
		if !slices.Contains(catalog.ActivityCategories, cat) {
			warnf("activity category %q is not drawn at random; use category=%s", cat, cat)
		}
		if len(names) == 0 {
			warnf("activity category %q is empty", cat)
		}
	}

	for _, w := range ve.Warnings {
		log.Warn("content", "warning", w)
	}
	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}
