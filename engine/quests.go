package engine

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/nathoo/lifequest/engine/catalog"
	"github.com/nathoo/lifequest/engine/state"
	"github.com/nathoo/lifequest/types"
)

// NoDuration marks a completion without a reported duration.
const NoDuration = -1

const (
	defaultSets     = 1
	defaultReps     = 10
	defaultDuration = 30

	overdueTask = "Do 100 pushups with no reward"
)

// QuestRequest describes a main quest to generate.
type QuestRequest struct {
	Category types.QuestCategory

	// Training.
	Skill       string
	Difficulty  string
	WorkoutType string // "" for any
	Sets        int
	Reps        int
	Duration    int // minutes, endurance only

	// Intellect conditioning. An empty activity is drawn from ActivityCategory.
	Activity         string
	ActivityCategory string

	// Long-term project.
	ProjectName string

	DueDate *time.Time
	Steps   string
}

// GenerateQuest creates a main quest from the request and adds it to the
// active list.
func (e *Engine) GenerateQuest(ctx context.Context, req QuestRequest) (types.Result, error) {
	var (
		q   types.Quest
		msg string
	)
	switch req.Category {
	case types.CategoryTraining:
		q, msg = e.trainingQuest(req)
	case types.CategoryIntellect:
		q, msg = e.intellectQuest(req)
	case types.CategoryFaith:
		q = types.Quest{
			Name:        "Spiritual Duty",
			Description: "Engage in a spiritual or mindful activity for the day.",
			XPReward:    10,
			CoinReward:  10,
			SkillReward: &types.SkillReward{Skill: catalog.SkillFaith, Amount: 2},
		}
	case types.CategoryLongTerm:
		name := strings.TrimSpace(req.ProjectName)
		switch {
		case name == "":
			msg = "Project name is required."
		case req.DueDate == nil:
			msg = "A due date is required for long-term projects."
		default:
			q = types.Quest{
				Name:        name,
				Description: fmt.Sprintf("Work on your long-term project: %s.", name),
				XPReward:    75,
				CoinReward:  40,
			}
		}
	default:
		msg = fmt.Sprintf("Unknown quest category %q.", req.Category)
	}
	if msg != "" {
		return e.result(false, msg), nil
	}

	if state.FindQuest(e.Player, q.Name) >= 0 {
		return e.result(false, fmt.Sprintf("A quest named '%s' is already active.", q.Name)), nil
	}

	q.QuestType = types.QuestMain
	due := state.EndOfDay(e.Now())
	if req.DueDate != nil {
		due = *req.DueDate
	}
	q.DueDate = &due
	if req.Steps != "" {
		q.Steps = req.Steps
	}
	e.Player.Quests = append(e.Player.Quests, q)
	if q.SkillReward != nil {
		e.addNewSkill(q.SkillReward.Skill)
	}
	e.emit("quest_generated", map[string]any{"name": q.Name, "xp": q.XPReward, "coins": q.CoinReward})
	e.Log.Debug("quest generated", "name", q.Name, "category", req.Category)
	return e.commit(ctx, "quest: generated "+q.Name, true, "New main quest generated: "+q.Name)
}

func (e *Engine) trainingQuest(req QuestRequest) (types.Quest, string) {
	switch req.Skill {
	case catalog.SkillStrength, catalog.SkillDurability:
		return e.repQuest(req)
	case catalog.SkillEndurance:
		return e.enduranceQuest(req)
	default:
		return types.Quest{}, fmt.Sprintf("Unknown training skill %q. Choose Strength, Endurance or Durability.", req.Skill)
	}
}

func workoutName(sets, reps int, exercise string) string {
	return fmt.Sprintf("Workout: %dx%d %s", sets, reps, exercise)
}

func (e *Engine) repQuest(req QuestRequest) (types.Quest, string) {
	sets, reps := req.Sets, req.Reps
	if sets <= 0 {
		sets = defaultSets
	}
	if reps <= 0 {
		reps = defaultReps
	}

	var byType []types.ExerciseDef
	for _, ex := range e.Catalog.ExercisesFor(req.Skill, req.Difficulty) {
		if req.WorkoutType == "" || ex.WorkoutType == req.WorkoutType || ex.WorkoutType == "Full" {
			byType = append(byType, ex)
		}
	}
	if last := e.Player.LastWorkoutType; last != "" {
		var balanced []types.ExerciseDef
		for _, ex := range byType {
			if ex.WorkoutType != last {
				balanced = append(balanced, ex)
			}
		}
		if len(balanced) > 0 {
			byType = balanced
		}
	}
	active := state.QuestNames(e.Player)
	var available []types.ExerciseDef
	for _, ex := range byType {
		if !active[workoutName(sets, reps, ex.Name)] {
			available = append(available, ex)
		}
	}
	if len(available) == 0 {
		return types.Quest{}, "There are no more variations of workouts with those options that are not already active quests. " +
			"Please complete an existing workout quest or change the training options."
	}

	ex := Pick(e.RNG, available)
	scale := min(1.0, float64(sets*reps)/100.0)
	baseXP := float64(ex.BaseXP * 10)
	baseCoin := float64(ex.BaseCoin * 5)
	return types.Quest{
		Name:        workoutName(sets, reps, ex.Name),
		Description: fmt.Sprintf("Complete your custom %s workout. Difficulty: %s.", req.Skill, req.Difficulty),
		XPReward:    int(math.Ceil(baseXP * scale)),
		CoinReward:  int(math.Ceil(baseCoin * scale)),
		SkillReward: &types.SkillReward{Skill: req.Skill, Amount: int(math.Ceil(baseXP * 2 * scale))},
		WorkoutType: ex.WorkoutType,
		Steps:       fmt.Sprintf("1. Perform %d sets of %d reps of %s.\n2. Mark quest as complete.", sets, reps, ex.Name),
	}, ""
}

func enduranceName(exercise string, minutes int) string {
	return fmt.Sprintf("Endurance: %s (%d mins)", exercise, minutes)
}

func (e *Engine) enduranceQuest(req QuestRequest) (types.Quest, string) {
	d := req.Duration
	if d <= 0 {
		d = defaultDuration
	}
	active := state.QuestNames(e.Player)
	var suitable []types.ExerciseDef
	for _, ex := range e.Catalog.ExercisesFor(catalog.SkillEndurance, req.Difficulty) {
		if ex.DurationTarget > 0 && !active[enduranceName(ex.Name, d)] {
			suitable = append(suitable, ex)
		}
	}
	if len(suitable) == 0 {
		return types.Quest{}, "No endurance exercises found for the selected difficulty and duration."
	}

	ex := Pick(e.RNG, suitable)
	mult, ok := catalog.DifficultyMultipliers[req.Difficulty]
	if !ok {
		mult = 1.0
	}
	xpPerMin := float64(ex.BaseXP) * 0.5 * mult
	coinPerMin := float64(ex.BaseCoin) * 0.25 * mult
	xp := int(math.Ceil(xpPerMin * float64(d) * 10))
	coins := int(math.Ceil(coinPerMin * float64(d) * 5))
	return types.Quest{
		Name:           enduranceName(ex.Name, d),
		Description:    fmt.Sprintf("Complete %d minutes of %s. Difficulty: %s.", d, ex.Name, req.Difficulty),
		XPReward:       xp,
		CoinReward:     coins,
		SkillReward:    &types.SkillReward{Skill: catalog.SkillEndurance, Amount: int(math.Ceil(float64(xp) * 0.5))},
		DurationTarget: d,
		Steps:          fmt.Sprintf("1. Perform %s for %d minutes.\n2. Mark quest as complete and enter duration completed.", ex.Name, d),
	}, ""
}

func (e *Engine) intellectQuest(req QuestRequest) (types.Quest, string) {
	activity := strings.TrimSpace(req.Activity)
	if activity == "" {
		cat := strings.ToLower(req.ActivityCategory)
		if cat == "" {
			cat = Pick(e.RNG, catalog.ActivityCategories)
		}
		pool := e.Catalog.Activities[cat]
		if len(pool) == 0 {
			return types.Quest{}, fmt.Sprintf("Unknown activity category %q. Choose one of %s.",
				req.ActivityCategory, strings.Join(catalog.ActivityCategories, ", "))
		}
		activity = Pick(e.RNG, pool)
	}
	return types.Quest{
		Name:        "Intellect: " + activity,
		Description: fmt.Sprintf("Complete the intellect activity: %s.", activity),
		XPReward:    15,
		CoinReward:  5,
		SkillReward: &types.SkillReward{Skill: catalog.SkillIntellect, Amount: 2},
	}, ""
}

// GenerateSideQuest draws a side quest that is not already active. Side
// quests expire at the end of the day.
func (e *Engine) GenerateSideQuest(ctx context.Context) (types.Result, error) {
	active := state.QuestNames(e.Player)
	var available []types.SideQuestDef
	for _, sq := range e.Catalog.SideQuests {
		if !active[sq.Name] {
			available = append(available, sq)
		}
	}
	if len(available) == 0 {
		return e.result(false, "No new side quests available at the moment."), nil
	}
	sq := Pick(e.RNG, available)
	due := state.EndOfDay(e.Now())
	e.Player.Quests = append(e.Player.Quests, types.Quest{
		Name:        sq.Name,
		Description: sq.Description,
		XPReward:    sq.XPReward,
		CoinReward:  sq.CoinReward,
		DueDate:     &due,
		Steps:       "1. Identify the task.\n2. Complete the task.\n3. Mark as complete.",
		QuestType:   types.QuestSide,
	})
	e.emit("quest_generated", map[string]any{"name": sq.Name, "type": "side"})
	return e.commit(ctx, "quest: side "+sq.Name, true, "New side quest generated: "+sq.Name)
}

// CompleteQuest removes an active quest and grants its rewards. minutes is
// the duration actually done for timed quests, or NoDuration.
func (e *Engine) CompleteQuest(ctx context.Context, name string, minutes int) (types.Result, error) {
	p := e.Player
	idx := state.FindQuest(p, name)
	if idx < 0 {
		return e.result(false, fmt.Sprintf("Quest '%s' not found or already completed.", name)), nil
	}
	q := p.Quests[idx]

	if e.corrupted() {
		p.Quests = append(p.Quests[:idx], p.Quests[idx+1:]...)
		return e.commit(ctx, "quest: failed "+name, false,
			"Your laziness gets the better of you... No rewards gained due to corruption.")
	}

	xp, coins := q.XPReward, q.CoinReward
	var skill *types.SkillReward
	if q.SkillReward != nil {
		sr := *q.SkillReward
		skill = &sr
	}
	durationNote := ""
	if q.DurationTarget > 0 && minutes >= 0 {
		pct := min(1.0, float64(minutes)/float64(q.DurationTarget))
		xp = int(float64(xp) * pct)
		coins = int(float64(coins) * pct)
		if skill != nil {
			skill.Amount = int(float64(skill.Amount) * pct)
		}
		durationNote = fmt.Sprintf(" (%d/%d mins completed)", minutes, q.DurationTarget)
	}

	_, levelLines, xpOK := e.awardXP(xp, true)
	_, coinOK := e.awardCoins(coins)

	if q.WorkoutType != "" {
		p.LastWorkoutType = q.WorkoutType
	}
	if skill != nil {
		e.gainSkillPoints(skill.Skill, skill.Amount)
	}

	p.Quests = append(p.Quests[:idx], p.Quests[idx+1:]...)
	isMain := q.QuestType == types.QuestMain
	if isMain {
		p.MainQuestsCompleted++
	}
	e.incrementDailyTasks()

	var extra []string
	if e.RNG.Chance(0.1) {
		item := e.addRandomGear()
		extra = append(extra, fmt.Sprintf("You found a piece of gear: %s!", item.Name))
	}
	extra = append(extra, e.checkAchievements()...)

	msg := fmt.Sprintf("Quest '%s' completed!%s", name, durationNote)
	switch {
	case !xpOK:
		msg += "\nHowever, " + msgCorruptXP
	case !coinOK:
		msg += "\nHowever, " + msgCorruptCoins
	default:
		msg += fmt.Sprintf(" You earned %d XP and %d coins.", xp, coins)
	}
	if isMain && e.RNG.Chance(0.1) {
		if title, ok := e.unlockRandomTitle(); ok {
			extra = append(extra, fmt.Sprintf("Title Unlocked: %s!", title))
		}
	}
	e.emit("quest_completed", map[string]any{"name": name, "main": isMain})

	lines := append([]string{msg}, levelLines...)
	return e.commit(ctx, "quest: completed "+name, true, append(lines, extra...)...)
}

// SweepOverdue removes every quest past its due date. Each overdue main
// quest draws one penalty.
func (e *Engine) SweepOverdue(ctx context.Context) (types.Result, error) {
	p := e.Player
	now := e.Now()
	var (
		kept      []types.Quest
		removed   []string
		penalties []string
	)
	for _, q := range p.Quests {
		if q.DueDate == nil || !now.After(*q.DueDate) {
			kept = append(kept, q)
			continue
		}
		removed = append(removed, "- "+q.Name)
		if q.QuestType == types.QuestMain {
			penalties = append(penalties, e.overduePenalty(Pick(e.RNG, catalog.OverduePenalties)))
		}
	}
	if len(removed) == 0 {
		return e.result(true), nil
	}
	if kept == nil {
		kept = []types.Quest{}
	}
	p.Quests = kept
	e.emit("quests_overdue", map[string]any{"count": len(removed)})

	lines := append([]string{"The following quests were overdue and have been removed:"}, removed...)
	if len(penalties) > 0 {
		lines = append(lines, "You have suffered for your failure:")
		lines = append(lines, penalties...)
	}
	return e.commit(ctx, fmt.Sprintf("quest: %d overdue", len(removed)), true, lines...)
}

func (e *Engine) overduePenalty(kind types.PenaltyKind) string {
	p := e.Player
	switch kind {
	case types.PenaltySkillLoss:
		return e.penalizeRandomSkill(25)
	case types.PenaltyPetLoss:
		if pet, ok := e.loseRandomPet(); ok {
			return fmt.Sprintf("In a moment of despair, your pet %s has run away!", pet)
		}
		return "You had no pets to lose, a small mercy."
	case types.PenaltyTask:
		return "You are burdened with a new penalty: " + overdueTask
	case types.PenaltyCoinLoss:
		lost := min(p.Coins, 50)
		p.Coins -= lost
		return fmt.Sprintf("Your purse feels lighter... You lost %d coins.", lost)
	case types.PenaltyXPLoss:
		lost := min(p.XP, 100)
		p.XP -= lost
		return fmt.Sprintf("Your spirit wanes... You lost %d XP.", lost)
	}
	return ""
}

// penalizeRandomSkill takes n XP from a random registered skill.
func (e *Engine) penalizeRandomSkill(n int) string {
	names := state.SkillNames(e.Player)
	if len(names) == 0 {
		return "Your skills were too low to be penalized."
	}
	skill := Pick(e.RNG, names)
	e.loseSkillXP(skill, n)
	return fmt.Sprintf("Your %s skill has atrophied, losing %d XP.", skill, n)
}

// loseRandomPet removes a random owned pet.
func (e *Engine) loseRandomPet() (string, bool) {
	if len(e.Player.Pets) == 0 {
		return "", false
	}
	pet := Pick(e.RNG, e.Player.Pets)
	state.RemovePet(e.Player, pet)
	e.emit("pet_lost", map[string]any{"pet": pet})
	return pet, true
}
