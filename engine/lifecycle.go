package engine

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/nathoo/lifequest/engine/catalog"
	"github.com/nathoo/lifequest/engine/modifier"
	"github.com/nathoo/lifequest/engine/save"
	"github.com/nathoo/lifequest/engine/state"
	"github.com/nathoo/lifequest/types"
)

// Base actions offered alongside the player's custom actions.
const (
	ActionCompleteTask  = "Complete a task"
	ActionProcrastinate = "Procrastinate"
	ActionRest          = "Rest"
)

const (
	streakThreshold   = 5
	restBoost         = 5
	transcendBuff     = 30 * time.Minute
	transcendMultStep = 0.1
)

// DailyCheck runs once per calendar day: skill decay, the streak check and
// the daily counter reset. It does nothing when today was already checked.
func (e *Engine) DailyCheck(ctx context.Context) (types.Result, error) {
	p := e.Player
	now := e.Now()
	last, err := state.ParseDate(p.LastDailyResetDate, now.Location())
	if err != nil {
		e.Log.Warn("bad last reset date, treating as today", "value", p.LastDailyResetDate, "err", err)
		p.LastDailyResetDate = e.today()
		return e.commit(ctx, "daily: repaired date", true)
	}
	days := state.DaysBetween(last, now)
	if days <= 0 {
		return e.result(true), nil
	}

	var lines []string
	for _, skill := range state.SkillNames(p) {
		sk := p.Skills[skill]
		updated, err := state.ParseDate(sk.LastUpdated, now.Location())
		if err != nil {
			updated = last
		}
		loss := e.skillDecay(state.DaysBetween(updated, now))
		if loss <= 0 {
			continue
		}
		before := sk.XP
		e.loseSkillXP(skill, loss)
		if lost := before - p.Skills[skill].XP; lost > 0 {
			lines = append(lines, fmt.Sprintf("'%s' decayed by %d XP.", skill, lost))
		}
	}

	if p.DailyTasksCompleted >= streakThreshold {
		p.DailyStreak++
		lines = append(lines, "Daily streak maintained!")
	} else {
		keep := modifier.Resolve(p.Gear, types.EffectDailyStreakChance)
		if p.ActiveTitle == catalog.TitleDiligent {
			keep += 0.2
		}
		if e.RNG.Chance(keep) {
			lines = append(lines, "Your diligence saved your streak this time!")
		} else {
			p.DailyStreak = 0
			e.addCorruption(5 * days)
			lines = append(lines, fmt.Sprintf("Daily streak reset! You gained %d corruption.", 5*days))
		}
	}

	p.DailyTasksCompleted = 0
	p.DailyTasks = map[string]bool{}
	p.LastDailyResetDate = e.today()
	e.emit("daily_reset", map[string]any{"days": days, "streak": p.DailyStreak})
	return e.commit(ctx, fmt.Sprintf("daily: %d day(s) passed", days), true, lines...)
}

// StartSession runs the daily check and then sweeps overdue quests.
func (e *Engine) StartSession(ctx context.Context) (types.Result, error) {
	daily, err := e.DailyCheck(ctx)
	if err != nil {
		return daily, err
	}
	sweep, err := e.SweepOverdue(ctx)
	return types.Result{
		OK:     daily.OK && sweep.OK,
		Output: append(daily.Output, sweep.Output...),
		Events: append(daily.Events, sweep.Events...),
	}, err
}

// TranscendRequirement is the XP needed for the next transcend.
func (e *Engine) TranscendRequirement() int {
	return e.Catalog.TranscendRequirement(e.Player.TranscendenceCount)
}

// Transcend resets progress in exchange for a permanent coin multiplier.
// Transcended gear is kept.
func (e *Engine) Transcend(ctx context.Context) (types.Result, error) {
	p := e.Player
	if p.XP < e.TranscendRequirement() {
		return e.result(false, "You do not meet the requirements to Transcend yet."), nil
	}
	p.TranscendenceCount++
	p.CoinGainMultiplier += transcendMultStep
	end := e.Now().Add(transcendBuff)
	p.TranscendenceBuffEndTime = &end

	p.XP = 0
	p.Coins = 0
	p.Title = catalog.BaseTitle
	p.CurrentLevel = 0
	p.PunishmentSum = 0
	p.Corruption = 0
	p.DailyStreak = 0

	kept := []types.GearItem{}
	for _, it := range p.Inventory {
		if it.Transcended {
			kept = append(kept, it)
		}
	}
	p.Inventory = kept
	for slot, it := range p.Gear {
		if it != nil && !it.Transcended {
			p.Gear[slot] = nil
		}
	}
	item := e.addRandomGear()
	e.emit("transcend", map[string]any{"count": p.TranscendenceCount, "multiplier": p.CoinGainMultiplier})

	lines := []string{
		fmt.Sprintf("You have transcended! This is your %d time. Your Coin Gain Multiplier is now %.1fx. "+
			"Progress and non-transcended gear reset, but you feel permanently stronger.",
			p.TranscendenceCount, p.CoinGainMultiplier),
		fmt.Sprintf("Found gear: %s!", item.Name),
	}
	lines = append(lines, e.checkAchievements()...)
	return e.commit(ctx, fmt.Sprintf("transcend: #%d", p.TranscendenceCount), true, lines...)
}

// ExpireBuffs clears a finished transcendence buff. It reports whether
// anything changed. The record is written by the next mutation.
func (e *Engine) ExpireBuffs() bool {
	p := e.Player
	if p.TranscendenceBuffEndTime == nil || e.Now().Before(*p.TranscendenceBuffEndTime) {
		return false
	}
	p.TranscendenceBuffEndTime = nil
	e.emit("buff_expired", nil)
	return true
}

// SetActiveTitle activates an unlocked title. "" or "None" clears it.
func (e *Engine) SetActiveTitle(ctx context.Context, name string) (types.Result, error) {
	p := e.Player
	if name == "" || strings.EqualFold(name, "None") {
		p.ActiveTitle = ""
		return e.commit(ctx, "title: cleared", true, "Active title set to: None")
	}
	if !state.HasTitle(p, name) {
		return e.result(false, "You haven't unlocked that title."), nil
	}
	p.ActiveTitle = name
	return e.commit(ctx, "title: "+name, true, "Active title set to: "+name)
}

// FullTitle is the level title with the active title in parentheses.
func (e *Engine) FullTitle() string {
	if e.Player.ActiveTitle != "" {
		return fmt.Sprintf("%s (%s)", e.Player.Title, e.Player.ActiveTitle)
	}
	return e.Player.Title
}

// DailyTasks returns the fixed daily checklist.
func (e *Engine) DailyTasks() []string {
	return e.Catalog.DailyTasks
}

// CompleteDailyTask checks or unchecks a daily task. Repeating the current
// state does nothing.
func (e *Engine) CompleteDailyTask(ctx context.Context, task string, done bool) (types.Result, error) {
	if !slices.Contains(e.Catalog.DailyTasks, task) {
		return e.result(false, fmt.Sprintf("Unknown daily task '%s'.", task)), nil
	}
	p := e.Player
	if p.DailyTasks[task] == done {
		return e.result(true), nil
	}
	p.DailyTasks[task] = done
	if !done {
		return e.commit(ctx, "daily: unchecked "+task, true, fmt.Sprintf("Unchecked '%s'!", task))
	}
	_, lines, _ := e.awardXP(1, false)
	e.awardCoins(1)
	e.incrementDailyTasks()
	lines = append([]string{fmt.Sprintf("Completed '%s'!", task)}, lines...)
	lines = append(lines, e.checkAchievements()...)
	return e.commit(ctx, "daily: completed "+task, true, lines...)
}

// Actions lists custom actions, newest first, then the base actions.
func (e *Engine) Actions() []string {
	out := make([]string, 0, len(e.CustomActions)+3)
	for i := len(e.CustomActions) - 1; i >= 0; i-- {
		out = append(out, e.CustomActions[i])
	}
	return append(out, ActionCompleteTask, ActionProcrastinate, ActionRest)
}

// AddCustomAction registers a new action and rewrites the actions file.
func (e *Engine) AddCustomAction(ctx context.Context, name string) (types.Result, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return e.result(false, "Action name is required."), nil
	}
	if slices.Contains(e.Actions(), name) {
		return e.result(false, fmt.Sprintf("Action '%s' already exists.", name)), nil
	}
	e.CustomActions = append(e.CustomActions, name)
	if e.ActionsPath != "" {
		if err := save.WriteActions(e.ActionsPath, e.CustomActions); err != nil {
			return e.result(false, "Could not save custom actions."), fmt.Errorf("save actions: %w", err)
		}
	}
	return e.result(true, fmt.Sprintf("Custom action '%s' added.", name)), nil
}

// PerformAction runs a base or custom action. difficulty (1-10) scales
// custom action rewards; 0 draws a small random reward.
func (e *Engine) PerformAction(ctx context.Context, name string, difficulty int) (types.Result, error) {
	p := e.Player
	var (
		xp, coins int
		lines     []string
	)
	switch {
	case name == ActionCompleteTask:
		xp, coins = e.RNG.Between(3, 8), e.RNG.Between(1, 4)
	case name == ActionProcrastinate:
		v := e.applyPunishmentValue(e.RNG.Between(3, 8))
		e.incrementDailyTasks()
		lines = append(lines, fmt.Sprintf("You procrastinated. Your punishment sum increased by %d.", v))
	case name == ActionRest:
		if p.XPBoostPending == 0 {
			p.XPBoostPending = restBoost
			lines = append(lines, fmt.Sprintf("You rested and gained a pending XP boost of %d!", restBoost))
		} else {
			lines = append(lines, "You already have an XP boost pending.")
		}
		e.incrementDailyTasks()
	case slices.Contains(e.CustomActions, name):
		if difficulty > 0 {
			d := float64(min(difficulty, 10)) / 10
			xp, coins = int(d*25), int(d*15)
		} else {
			xp, coins = e.RNG.Between(1, 3), e.RNG.Between(1, 2)
		}
	default:
		return e.result(false, "Unknown action."), nil
	}

	if xp > 0 || coins > 0 {
		_, levelLines, xpOK := e.awardXP(xp, false)
		_, coinOK := e.awardCoins(coins)
		switch {
		case !xpOK:
			lines = append(lines, msgCorruptXP)
		case !coinOK:
			lines = append(lines, msgCorruptCoins)
		default:
			lines = append(lines, fmt.Sprintf("Performed '%s'. Gained %d XP and %d coins.", name, xp, coins))
		}
		lines = append(lines, levelLines...)
		e.incrementDailyTasks()
	}
	lines = append(lines, e.checkAchievements()...)
	lines = append(lines, e.resetIfPunished())
	e.emit("action", map[string]any{"action": name})
	return e.commit(ctx, "action: "+name, true, lines...)
}
