package engine

import (
	"context"
	"strings"
	"testing"

	"github.com/nathoo/lifequest/engine/catalog"
)

func TestStep_EmptyInput(t *testing.T) {
	e, _ := newTestEngine(t)
	res, err := e.Step(context.Background(), "   ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.OK || !outputContains(res, "What do you want to do?") {
		t.Errorf("got %+v", res)
	}
}

func TestStep_UnknownVerb(t *testing.T) {
	e, _ := newTestEngine(t)
	res, _ := e.Step(context.Background(), "dance")
	if res.OK || !outputContains(res, `I don't know how to "dance"`) {
		t.Errorf("got %+v", res)
	}
}

func TestStep_Status(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Player.Coins = 1234
	res, _ := e.Step(context.Background(), "stats")
	if !res.OK {
		t.Fatalf("status failed: %v", res.Output)
	}
	if !outputContains(res, "Coins: 1,234") {
		t.Errorf("expected grouped coins, got %v", res.Output)
	}
	if !outputContains(res, "Arc: Solar Forge") {
		t.Errorf("expected arc line, got %v", res.Output)
	}
}

func TestStep_TrainingQuest(t *testing.T) {
	e, _ := newTestEngine(t)
	res, err := e.Step(context.Background(), "quest training skill=strength difficulty=difficult sets=10 reps=10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.OK || len(e.Player.Quests) != 1 {
		t.Fatalf("got %+v", res)
	}
	if q := e.Player.Quests[0]; q.XPReward != 10 || q.SkillReward.Skill != catalog.SkillStrength {
		t.Errorf("quest = %+v", q)
	}
}

func TestStep_QuestNeedsCategory(t *testing.T) {
	e, _ := newTestEngine(t)
	res, err := e.Step(context.Background(), "quest")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.OK || !outputContains(res, "training, intellect, faith or project") {
		t.Errorf("got %+v", res)
	}
}

func TestStep_BadOption(t *testing.T) {
	e, _ := newTestEngine(t)
	res, _ := e.Step(context.Background(), "quest training skill=Strength sets=lots")
	if res.OK || !outputContains(res, `Invalid sets "lots"`) {
		t.Errorf("got %+v", res)
	}
}

func TestStep_ProjectWithDueDate(t *testing.T) {
	e, _ := newTestEngine(t)
	res, _ := e.Step(context.Background(), `quest project name="Build a shed" due=2025-08-01`)
	if !res.OK {
		t.Fatalf("got %v", res.Output)
	}
	q := e.Player.Quests[0]
	if q.Name != "Build a shed" || q.DueDate == nil || q.DueDate.Format("2006-01-02 15:04") != "2025-08-01 23:59" {
		t.Errorf("quest = %+v", q)
	}
}

func TestStep_CompleteByWord(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	e.Step(ctx, "quest faith")
	res, _ := e.Step(ctx, "done spiritual")
	if !res.OK || !outputContains(res, "Quest 'Spiritual Duty' completed!") {
		t.Errorf("got %+v", res)
	}
}

func TestStep_CompleteNotFound(t *testing.T) {
	e, _ := newTestEngine(t)
	res, err := e.Step(context.Background(), "complete nothing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.OK || !outputContains(res, `No quest called "nothing".`) {
		t.Errorf("got %+v", res)
	}
}

func TestStep_BuyWithQuantity(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Player.Coins = 30
	res, _ := e.Step(context.Background(), "buy pet food:2")
	if !res.OK {
		t.Fatalf("got %v", res.Output)
	}
	if e.Player.PetFood != 2 || e.Player.Coins != 0 {
		t.Errorf("food=%d coins=%d", e.Player.PetFood, e.Player.Coins)
	}
}

func TestStep_BuyAmbiguous(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Player.Coins = 1000
	res, _ := e.Step(context.Background(), "buy skill tome")
	if res.OK || !outputContains(res, "Which do you mean:") {
		t.Errorf("got %+v", res)
	}
	if e.Player.Coins != 1000 {
		t.Errorf("coins = %d", e.Player.Coins)
	}
}

func TestStep_BuyCommaList(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Player.Coins = 30
	res, _ := e.Step(context.Background(), "buy Pet Food, Coin Pouch")
	if !res.OK || e.Player.PetFood != 1 || e.Player.Coins != 10 {
		t.Errorf("food=%d coins=%d out=%v", e.Player.PetFood, e.Player.Coins, res.Output)
	}
}

func TestStep_PunishPartialName(t *testing.T) {
	e, _ := newTestEngine(t)
	res, _ := e.Step(context.Background(), "punish wasted")
	if !res.OK || e.Player.PunishmentSum != 3 {
		t.Errorf("sum=%d out=%v", e.Player.PunishmentSum, res.Output)
	}
}

func TestStep_AddPunishment(t *testing.T) {
	e, _ := newTestEngine(t)
	res, _ := e.Step(context.Background(), `add punishment name="Doomscrolling" severity=moderate points=2 xp=4`)
	if !res.OK {
		t.Fatalf("got %v", res.Output)
	}
	def, ok := e.Catalog.Punishment("Doomscrolling")
	if !ok || def.Severity != "Moderate" || def.Punishment != 2 || def.XPPenalty != 4 {
		t.Errorf("def = %+v", def)
	}
}

func TestStep_PetCommands(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	e.Player.Pets = []string{"Stone Golem"}
	e.Player.PetFood = 1

	res, _ := e.Step(ctx, "feed golem")
	if !res.OK || e.Player.PetFood != 0 {
		t.Errorf("feed: %v", res.Output)
	}
	res, _ = e.Step(ctx, "play with golem")
	if !res.OK {
		t.Errorf("play: %v", res.Output)
	}
	res, _ = e.Step(ctx, "pets")
	if !outputContains(res, "Stone Golem (Construct) Lv 1, 25/120 XP") {
		t.Errorf("pets: %v", res.Output)
	}
}

func TestStep_DailyTask(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	e.Step(ctx, "task workout")
	if !e.Player.DailyTasks["Workout"] {
		t.Fatal("task should be checked")
	}
	e.Step(ctx, "task workout done=no")
	if e.Player.DailyTasks["Workout"] {
		t.Error("task should be unchecked")
	}
	res, _ := e.Step(ctx, "daily")
	if !outputContains(res, "[ ] Workout") {
		t.Errorf("daily: %v", res.Output)
	}
}

func TestStep_ActionsAndAddAction(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	res, _ := e.Step(ctx, `add action "Meal prep"`)
	if !res.OK {
		t.Fatalf("add: %v", res.Output)
	}
	res, _ = e.Step(ctx, "act meal difficulty=10")
	if !outputContains(res, "Performed 'Meal prep'. Gained 25 XP and 15 coins.") {
		t.Errorf("act: %v", res.Output)
	}
}

func TestStep_TitleNone(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Player.ActiveTitle = catalog.BaseTitle
	res, _ := e.Step(context.Background(), "title none")
	if !res.OK || e.Player.ActiveTitle != "" {
		t.Errorf("active=%q out=%v", e.Player.ActiveTitle, res.Output)
	}
}

func TestStep_Help(t *testing.T) {
	e, _ := newTestEngine(t)
	res, _ := e.Step(context.Background(), "?")
	if !res.OK || len(res.Output) != len(HelpLines()) {
		t.Errorf("help: %v", res.Output)
	}
	if !strings.HasPrefix(res.Output[0], "status") {
		t.Errorf("first help line = %q", res.Output[0])
	}
}
