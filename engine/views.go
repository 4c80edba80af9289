package engine

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/nathoo/lifequest/engine/state"
	"github.com/nathoo/lifequest/types"
)

var numbers = message.NewPrinter(language.English)

// StatusLines renders the player sheet.
func (e *Engine) StatusLines() []string {
	p := e.Player
	lines := []string{
		"Title: " + e.FullTitle(),
		"Level: " + e.CurrentLevelName(),
	}
	if next, ok := e.XPForNextLevel(); ok {
		lines = append(lines, numbers.Sprintf("XP: %d (%d to next level)", p.XP, next))
	} else {
		lines = append(lines, numbers.Sprintf("XP: %d", p.XP))
	}
	lines = append(lines,
		numbers.Sprintf("Coins: %d", p.Coins),
		fmt.Sprintf("Corruption: %d (effective %.1f)", p.Corruption, e.EffectiveCorruption()),
		fmt.Sprintf("Daily Streak: %d", p.DailyStreak),
		fmt.Sprintf("Punishment Sum: %d/%d", p.PunishmentSum, ResetThreshold),
		fmt.Sprintf("Coin Multiplier: %.1fx", p.CoinGainMultiplier),
		numbers.Sprintf("Transcendences: %d (next at %d XP)", p.TranscendenceCount, e.TranscendRequirement()),
		fmt.Sprintf("Pet Food: %d", p.PetFood),
	)
	if p.XPBoostPending > 0 {
		lines = append(lines, fmt.Sprintf("Pending XP Boost: +%d", p.XPBoostPending))
	}
	if p.PunishmentMitigationPending {
		lines = append(lines, "Mitigation potion ready.")
	}
	arc := e.CurrentArc()
	lines = append(lines, fmt.Sprintf("Arc: %s (ends %s)", arc.Name, arc.EndDate), "  "+arc.Quote)
	lines = append(lines, "Skills:")
	for _, name := range state.SkillNames(p) {
		lines = append(lines, numbers.Sprintf("  %s: %d XP", name, p.Skills[name].XP))
	}
	return lines
}

// QuestLines lists active quests.
func (e *Engine) QuestLines() []string {
	if len(e.Player.Quests) == 0 {
		return []string{"No active quests. Try: quest training, quest faith, or side."}
	}
	var lines []string
	for _, q := range e.Player.Quests {
		due := ""
		if q.DueDate != nil {
			due = ", due " + q.DueDate.Format("Jan 02 15:04")
		}
		line := fmt.Sprintf("[%s] %s: %d XP, %d coins", q.QuestType, q.Name, q.XPReward, q.CoinReward)
		if q.SkillReward != nil {
			line += fmt.Sprintf(", %s +%d", q.SkillReward.Skill, q.SkillReward.Amount)
		}
		lines = append(lines, line+due)
	}
	return lines
}

// ShopLines lists shop items with prices.
func (e *Engine) ShopLines() []string {
	lines := []string{numbers.Sprintf("You have %d coins.", e.Player.Coins)}
	for _, it := range e.ShopItems() {
		lines = append(lines, fmt.Sprintf("%s %s (%d): %s", it.Emoji, it.Name, it.Cost, it.Description))
	}
	return lines
}

// InventoryLines lists equipped gear, then the inventory.
func (e *Engine) InventoryLines() []string {
	p := e.Player
	lines := []string{"Equipped:"}
	for _, slot := range state.EquippedSlots(p) {
		if it := p.Gear[slot]; it != nil {
			lines = append(lines, fmt.Sprintf("  %s: %s", slot, itemLine(it)))
		} else {
			lines = append(lines, fmt.Sprintf("  %s: (empty)", slot))
		}
	}
	lines = append(lines, "Inventory:")
	if len(p.Inventory) == 0 {
		lines = append(lines, "  (empty)")
	}
	for i := range p.Inventory {
		it := &p.Inventory[i]
		line := fmt.Sprintf("  %s [%s, sells for %d]", itemLine(it), it.Slot, SellPrice(it))
		if len(it.Requirements) > 0 {
			var reqs []string
			for _, s := range slices.Sorted(maps.Keys(it.Requirements)) {
				reqs = append(reqs, fmt.Sprintf("%s %d", s, it.Requirements[s]))
			}
			line += " needs " + strings.Join(reqs, ", ")
		}
		lines = append(lines, line)
	}
	return lines
}

func itemLine(it *types.GearItem) string {
	line := fmt.Sprintf("%s: %s", it.Name, DescribeEffect(types.ExtraEffect{Type: it.Buff.Type, Value: it.Buff.Value}))
	if it.ExtraEffect != nil {
		line += ", " + DescribeEffect(*it.ExtraEffect)
	}
	return line
}

// PunishmentLines lists punishments with their penalties.
func (e *Engine) PunishmentLines() []string {
	var lines []string
	for _, pd := range e.Punishments() {
		line := fmt.Sprintf("%s (%s): +%d punishment, -%d XP, -%d coins", pd.Name, pd.Severity, pd.Punishment, pd.XPPenalty, pd.CoinPenalty)
		if pd.SpecialEffect != types.SpecialNone {
			line += fmt.Sprintf(", %.0f%% %s", pd.SpecialChance*100, strings.ReplaceAll(string(pd.SpecialEffect), "_", " "))
		}
		if pd.Custom {
			line += " [custom]"
		}
		lines = append(lines, line)
	}
	return lines
}

// PetLines lists owned pets with level, benefit and cooldowns.
func (e *Engine) PetLines() []string {
	pets := e.Pets()
	if len(pets) == 0 {
		return []string{numbers.Sprintf("You have no pets. Pet food: %d.", e.Player.PetFood)}
	}
	lines := []string{numbers.Sprintf("Pet food: %d", e.Player.PetFood)}
	for _, ps := range pets {
		line := fmt.Sprintf("%s (%s) Lv %d, %d/%d XP: %s",
			ps.Def.Name, ps.Def.Type, ps.Progress.Level, ps.Progress.XP, ps.Progress.XPToEvolve, ps.Desc)
		if until, ok := e.Player.PetCooldowns[ps.Def.Name]; ok && e.Now().Before(until) {
			line += ", pet again in " + formatRemaining(until.Sub(e.Now()))
		}
		lines = append(lines, line)
	}
	return lines
}

// TitleLines lists unlocked titles, marking the active one.
func (e *Engine) TitleLines() []string {
	var lines []string
	for _, name := range e.Player.UnlockedTitles {
		mark := "  "
		if name == e.Player.ActiveTitle {
			mark = "* "
		}
		line := mark + name
		if def, ok := e.Catalog.Title(name); ok && def.Effect != "" {
			line += ": " + def.Effect
		}
		lines = append(lines, line)
	}
	return lines
}

// AchievementLines lists every achievement with its state.
func (e *Engine) AchievementLines() []string {
	var lines []string
	for _, a := range e.Achievements() {
		mark := "[ ]"
		if a.Unlocked {
			mark = "[x]"
		}
		lines = append(lines, fmt.Sprintf("%s %s: %s (%s)", mark, a.Name, a.Description, a.RewardText))
	}
	return lines
}

// DailyLines lists the daily checklist.
func (e *Engine) DailyLines() []string {
	lines := []string{fmt.Sprintf("Daily tasks (streak %d):", e.Player.DailyStreak)}
	for _, task := range e.DailyTasks() {
		mark := "[ ]"
		if e.Player.DailyTasks[task] {
			mark = "[x]"
		}
		lines = append(lines, mark+" "+task)
	}
	return lines
}

// HelpLines is the command reference.
func HelpLines() []string {
	return []string{
		"status                      show your character",
		"quests                      list active quests",
		"quest training|intellect|faith|project [key=value...]",
		"                            e.g. quest training skill=Strength difficulty=Easy sets=3 reps=10",
		"side                        draw today's side quest",
		"complete <quest> [minutes=N]",
		"sweep                       apply overdue penalties",
		"shop, buy <item[:qty]>, ...",
		"inventory, equip, unequip <slot>, enchant, transcend item, roll, sell",
		"punishments, punish <habit>, add punishment name=... severity=... points=N",
		"pets, pet, feed, play <pet>",
		"titles, title <name|None>, achievements",
		"daily, task <task> [done=false]",
		"actions, act <action> [difficulty=N], add action <name>",
		"transcend, arc, help",
	}
}
