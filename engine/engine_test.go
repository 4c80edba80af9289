package engine

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nathoo/lifequest/engine/catalog"
	"github.com/nathoo/lifequest/engine/save"
	"github.com/nathoo/lifequest/engine/state"
	"github.com/nathoo/lifequest/types"
)

var testNow = time.Date(2025, time.July, 15, 12, 0, 0, 0, time.UTC)

// newTestEngine builds an engine with a fixed seed, a pinned clock and an
// in-memory store.
func newTestEngine(t *testing.T) (*Engine, *save.MemoryStore) {
	t.Helper()
	store := &save.MemoryStore{}
	e := New(catalog.Default(), Options{
		Store: store,
		Seed:  42,
		Now:   func() time.Time { return testNow },
	})
	return e, store
}

func outputContains(res types.Result, substr string) bool {
	for _, line := range res.Output {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

func gearItem(t *testing.T, e *Engine, slot, name string) types.GearItem {
	t.Helper()
	for _, def := range e.Catalog.Gear[slot] {
		if def.Name == name {
			return state.NewGearItem(def)
		}
	}
	t.Fatalf("no gear template %q in %s", name, slot)
	return types.GearItem{}
}

// --- Progression ---

func TestAwardXP_FirstMilestone(t *testing.T) {
	e, _ := newTestEngine(t)

	gained, lines, ok := e.awardXP(25, false)
	if !ok {
		t.Fatal("award should pass the corruption gate at 0 corruption")
	}
	if gained != 25 || e.Player.XP != 25 {
		t.Errorf("gained=%d xp=%d, want 25/25", gained, e.Player.XP)
	}
	if e.Player.Title != "Beginner" {
		t.Errorf("title = %q, want Beginner", e.Player.Title)
	}
	if e.Player.Coins != levelUpCoins {
		t.Errorf("coins = %d, want %d", e.Player.Coins, levelUpCoins)
	}
	if len(lines) == 0 || !strings.Contains(lines[0], "Milestone 1: 25 XP - Beginner") {
		t.Errorf("lines = %v", lines)
	}
}

func TestAwardXP_ZeroKeepsLevel(t *testing.T) {
	e, _ := newTestEngine(t)
	p := e.Player
	p.XP = 100
	p.Title = "Beginner"
	p.CurrentLevel = 25
	p.Coins = 7

	gained, lines, ok := e.awardXP(0, false)
	if !ok || gained != 0 || len(lines) != 0 {
		t.Errorf("gained=%d lines=%v ok=%v", gained, lines, ok)
	}
	if p.Title != "Beginner" || p.CurrentLevel != 25 || p.Coins != 7 {
		t.Errorf("title=%q level=%d coins=%d, want unchanged", p.Title, p.CurrentLevel, p.Coins)
	}
}

func TestAwardXP_PendingBoostConsumed(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Player.XPBoostPending = 5

	gained, _, _ := e.awardXP(3, false)
	if gained != 8 || e.Player.XP != 8 {
		t.Errorf("gained=%d xp=%d, want 8/8", gained, e.Player.XP)
	}
	if e.Player.XPBoostPending != 0 {
		t.Errorf("boost should be consumed, got %d", e.Player.XPBoostPending)
	}
}

func TestAwardXP_BuffDoubles(t *testing.T) {
	e, _ := newTestEngine(t)
	end := testNow.Add(time.Hour)
	e.Player.TranscendenceBuffEndTime = &end

	e.awardXP(10, false)
	if e.Player.XP != 20 {
		t.Errorf("xp = %d, want 20", e.Player.XP)
	}
}

func TestCorruptionGate(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Player.Corruption = 10

	if got := e.EffectiveCorruption(); got != 10 {
		t.Fatalf("effective corruption = %v, want 10", got)
	}
	for range 5 {
		if _, _, ok := e.awardXP(10, false); ok {
			t.Fatal("award should always fail at 100% chance")
		}
	}
	if e.Player.XP != 0 {
		t.Errorf("xp = %d, want 0", e.Player.XP)
	}

	// The streak offsets corruption.
	e.Player.DailyStreak = 10
	if got := e.EffectiveCorruption(); got != 0 {
		t.Errorf("effective corruption = %v, want 0", got)
	}
	if _, _, ok := e.awardXP(10, false); !ok {
		t.Error("award should pass with effective corruption 0")
	}
}

func TestCurrentLevelName(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Player.XP = 60
	if got := e.CurrentLevelName(); got != "Milestone 2: 50 XP - Apprentice" {
		t.Errorf("level = %q", got)
	}
	if next, ok := e.XPForNextLevel(); !ok || next != 40 {
		t.Errorf("next = %d, %v; want 40", next, ok)
	}
	e.Player.XP = 25000
	if got := e.CurrentLevelName(); got != "Max Level Reached" {
		t.Errorf("level = %q", got)
	}
}

// --- Quests ---

func TestGenerateQuest_StrengthDifficult(t *testing.T) {
	e, store := newTestEngine(t)
	ctx := context.Background()

	res, err := e.GenerateQuest(ctx, QuestRequest{
		Category:   types.CategoryTraining,
		Skill:      catalog.SkillStrength,
		Difficulty: "Difficult",
		Sets:       10,
		Reps:       10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.OK {
		t.Fatalf("expected success, got %v", res.Output)
	}
	if len(e.Player.Quests) != 1 {
		t.Fatalf("quests = %d, want 1", len(e.Player.Quests))
	}
	q := e.Player.Quests[0]
	if !strings.HasPrefix(q.Name, "Workout: 10x10 ") {
		t.Errorf("name = %q", q.Name)
	}
	if q.XPReward != 10 || q.CoinReward != 0 {
		t.Errorf("rewards = %d XP, %d coins; want 10, 0", q.XPReward, q.CoinReward)
	}
	if q.SkillReward == nil || q.SkillReward.Skill != catalog.SkillStrength || q.SkillReward.Amount != 20 {
		t.Errorf("skill reward = %+v", q.SkillReward)
	}
	if q.DueDate == nil || !q.DueDate.Equal(state.EndOfDay(testNow)) {
		t.Errorf("due = %v, want end of day", q.DueDate)
	}
	if len(store.Notes) != 1 || !strings.HasPrefix(store.Notes[0], "quest: ") {
		t.Errorf("notes = %v", store.Notes)
	}
}

func TestGenerateQuest_BalancesWorkoutType(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	e.Catalog.Exercises[catalog.SkillStrength] = []types.ExerciseDef{
		{Skill: catalog.SkillStrength, Name: "Bench Press", Difficulty: "Easy", BaseXP: 1, BaseCoin: 1, WorkoutType: "Upper"},
		{Skill: catalog.SkillStrength, Name: "Squats", Difficulty: "Easy", BaseXP: 1, BaseCoin: 1, WorkoutType: "Lower"},
	}
	e.Player.LastWorkoutType = "Upper"
	req := QuestRequest{
		Category:   types.CategoryTraining,
		Skill:      catalog.SkillStrength,
		Difficulty: "Easy",
		Sets:       3,
		Reps:       10,
	}

	res, _ := e.GenerateQuest(ctx, req)
	if !res.OK {
		t.Fatalf("expected success, got %v", res.Output)
	}
	if q := e.Player.Quests[0]; q.Name != "Workout: 3x10 Squats" || q.WorkoutType != "Lower" {
		t.Errorf("quest = %q (%s), want the Lower exercise", q.Name, q.WorkoutType)
	}

	res, _ = e.GenerateQuest(ctx, req)
	if res.OK || !outputContains(res, "no more variations") {
		t.Errorf("expected no candidate left, got %+v", res)
	}
	if len(e.Player.Quests) != 1 {
		t.Errorf("quests = %d, want 1", len(e.Player.Quests))
	}

	e.Player.LastWorkoutType = ""
	res, _ = e.GenerateQuest(ctx, req)
	if !res.OK || e.Player.Quests[1].Name != "Workout: 3x10 Bench Press" {
		t.Errorf("expected the remaining exercise, got %v", res.Output)
	}
	res, _ = e.GenerateQuest(ctx, req)
	if res.OK || !outputContains(res, "no more variations") {
		t.Errorf("expected no candidate left, got %+v", res)
	}
}

func TestGenerateQuest_IntellectDrawsActivity(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	e.Catalog.Activities["eq"] = []string{"Write a gratitude list"}

	res, _ := e.GenerateQuest(ctx, QuestRequest{Category: types.CategoryIntellect, ActivityCategory: "EQ"})
	if !res.OK {
		t.Fatalf("expected success, got %v", res.Output)
	}
	q := e.Player.Quests[0]
	if q.Name != "Intellect: Write a gratitude list" {
		t.Errorf("name = %q", q.Name)
	}
	if q.SkillReward == nil || q.SkillReward.Skill != catalog.SkillIntellect {
		t.Errorf("skill reward = %+v", q.SkillReward)
	}

	res, _ = e.GenerateQuest(ctx, QuestRequest{Category: types.CategoryIntellect, ActivityCategory: "zq"})
	if res.OK || !outputContains(res, "Unknown activity category") {
		t.Errorf("expected category error, got %+v", res)
	}
}

func TestGenerateSideQuest_SkipsActive(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	e.Catalog.SideQuests = []types.SideQuestDef{
		{Name: "Call a friend", XPReward: 10, CoinReward: 5},
		{Name: "Tidy the desk", XPReward: 8, CoinReward: 4},
	}
	e.Player.Quests = []types.Quest{{Name: "Call a friend", QuestType: types.QuestSide}}

	res, _ := e.GenerateSideQuest(ctx)
	if !res.OK {
		t.Fatalf("expected success, got %v", res.Output)
	}
	q := e.Player.Quests[1]
	if q.Name != "Tidy the desk" || q.QuestType != types.QuestSide {
		t.Errorf("quest = %+v", q)
	}
	if q.DueDate == nil || !q.DueDate.Equal(state.EndOfDay(testNow)) {
		t.Errorf("due = %v, want end of day", q.DueDate)
	}

	res, _ = e.GenerateSideQuest(ctx)
	if res.OK || !outputContains(res, "No new side quests available") {
		t.Errorf("expected exhausted pool, got %+v", res)
	}
	if len(e.Player.Quests) != 2 {
		t.Errorf("quests = %d, want 2", len(e.Player.Quests))
	}
}

func TestGenerateQuest_LongTermNeedsName(t *testing.T) {
	e, _ := newTestEngine(t)
	due := testNow.Add(48 * time.Hour)

	res, _ := e.GenerateQuest(context.Background(), QuestRequest{Category: types.CategoryLongTerm, DueDate: &due})
	if res.OK || !outputContains(res, "Project name is required.") {
		t.Errorf("expected name error, got %+v", res)
	}

	res, _ = e.GenerateQuest(context.Background(), QuestRequest{Category: types.CategoryLongTerm, ProjectName: "Shed", DueDate: &due})
	if !res.OK {
		t.Fatalf("expected success, got %v", res.Output)
	}
	res, _ = e.GenerateQuest(context.Background(), QuestRequest{Category: types.CategoryLongTerm, ProjectName: "Shed", DueDate: &due})
	if res.OK || !outputContains(res, "already active") {
		t.Errorf("expected duplicate error, got %+v", res)
	}
}

func TestCompleteQuest_ProratesDuration(t *testing.T) {
	e, _ := newTestEngine(t)
	due := testNow.Add(time.Hour)
	e.Player.Quests = append(e.Player.Quests, types.Quest{
		Name:           "Endurance: Running (30 mins)",
		XPReward:       100,
		CoinReward:     50,
		SkillReward:    &types.SkillReward{Skill: catalog.SkillEndurance, Amount: 50},
		DueDate:        &due,
		QuestType:      types.QuestMain,
		DurationTarget: 30,
	})

	res, err := e.CompleteQuest(context.Background(), "Endurance: Running (30 mins)", 15)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !outputContains(res, "(15/30 mins completed) You earned 50 XP and 25 coins.") {
		t.Errorf("output = %v", res.Output)
	}
	if e.Player.XP != 50 {
		t.Errorf("xp = %d, want 50", e.Player.XP)
	}
	if got := state.SkillXP(e.Player, catalog.SkillEndurance); got != 25 {
		t.Errorf("endurance = %d, want 25", got)
	}
	if len(e.Player.Quests) != 0 || e.Player.MainQuestsCompleted != 1 {
		t.Errorf("quests=%d main=%d", len(e.Player.Quests), e.Player.MainQuestsCompleted)
	}
	if !state.HasAchievement(e.Player, catalog.AchFirstSteps) {
		t.Error("first main quest should unlock First Steps")
	}
}

func TestCompleteQuest_CorruptedLosesQuest(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Player.Corruption = 20
	e.Player.Quests = append(e.Player.Quests, types.Quest{Name: "Tidy Up", XPReward: 5, CoinReward: 2, QuestType: types.QuestSide})

	res, _ := e.CompleteQuest(context.Background(), "Tidy Up", NoDuration)
	if res.OK {
		t.Error("expected failure under full corruption")
	}
	if len(e.Player.Quests) != 0 || e.Player.XP != 0 {
		t.Errorf("quest should be removed without rewards: quests=%d xp=%d", len(e.Player.Quests), e.Player.XP)
	}
}

func TestSweepOverdue(t *testing.T) {
	e, store := newTestEngine(t)
	past := testNow.Add(-time.Hour)
	future := testNow.Add(time.Hour)
	e.Player.Quests = []types.Quest{
		{Name: "Old Side", DueDate: &past, QuestType: types.QuestSide},
		{Name: "Fresh", DueDate: &future, QuestType: types.QuestMain},
	}

	res, err := e.SweepOverdue(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(e.Player.Quests) != 1 || e.Player.Quests[0].Name != "Fresh" {
		t.Errorf("quests = %+v", e.Player.Quests)
	}
	if !outputContains(res, "- Old Side") || outputContains(res, "suffered") {
		t.Errorf("output = %v", res.Output)
	}

	// Nothing overdue: no write.
	notes := len(store.Notes)
	e.SweepOverdue(context.Background())
	if len(store.Notes) != notes {
		t.Error("sweep with nothing overdue should not persist")
	}
}

// --- Punishments ---

func TestApplyPunishment_ResetAtThreshold(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	if _, err := e.AddCustomPunishment(ctx, CustomPunishment{Name: "Doomscrolling", Severity: "OK", Punishment: 1}); err != nil {
		t.Fatal(err)
	}
	e.Player.XP = 100
	e.Player.PunishmentSum = 8

	res, err := e.ApplyPunishment(ctx, "Missed Workout")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !outputContains(res, msgReset) {
		t.Errorf("output = %v", res.Output)
	}
	if e.Player.XP != 0 || e.Player.PunishmentSum != 0 {
		t.Errorf("player not reset: xp=%d sum=%d", e.Player.XP, e.Player.PunishmentSum)
	}
	if _, ok := e.Catalog.Punishment("Doomscrolling"); !ok {
		t.Error("custom punishments should survive a reset")
	}
}

func TestApplyPunishment_Mitigated(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Player.PunishmentMitigationPending = true

	res, _ := e.ApplyPunishment(context.Background(), "Missed Workout")
	if !outputContains(res, "mitigated") {
		t.Errorf("output = %v", res.Output)
	}
	if e.Player.PunishmentSum != 0 || e.Player.PunishmentMitigationPending {
		t.Errorf("sum=%d pending=%v", e.Player.PunishmentSum, e.Player.PunishmentMitigationPending)
	}
}

func TestAddCustomPunishment_Validation(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	res, _ := e.AddCustomPunishment(ctx, CustomPunishment{Name: "Nail biting", Severity: "Awful"})
	if res.OK {
		t.Error("unknown severity should fail")
	}
	res, _ = e.AddCustomPunishment(ctx, CustomPunishment{Name: "Nail biting", Severity: "OK", Punishment: -1})
	if res.OK {
		t.Error("negative values should fail")
	}
	res, _ = e.AddCustomPunishment(ctx, CustomPunishment{Name: "Missed Workout", Severity: "OK"})
	if res.OK {
		t.Error("duplicate name should fail")
	}
	res, _ = e.AddCustomPunishment(ctx, CustomPunishment{Name: "Nail biting", Severity: "High", Punishment: 2, Special: true})
	if !res.OK {
		t.Fatalf("expected success, got %v", res.Output)
	}
	def, ok := e.Catalog.Punishment("Nail biting")
	if !ok || !def.Custom || def.SpecialChance != catalog.SeverityChances["High"] || def.SpecialEffect == types.SpecialNone {
		t.Errorf("def = %+v", def)
	}
}

// --- Shop ---

func TestPurchaseCart_AllOrNothing(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	e.Player.Coins = 40
	cart := map[string]int{"Small XP Boost": 1, "Coin Pouch": 1}

	res, _ := e.PurchaseCart(ctx, cart)
	if res.OK {
		t.Fatal("expected failure with 40 coins for a 45 coin cart")
	}
	if e.Player.Coins != 40 || e.Player.XP != 0 {
		t.Errorf("nothing should change: coins=%d xp=%d", e.Player.Coins, e.Player.XP)
	}

	res, _ = e.PurchaseCart(ctx, map[string]int{"Small XP Boost": 1, "Unicorn": 1})
	if res.OK || e.Player.Coins != 40 {
		t.Errorf("unknown item should reject the cart: %+v", res)
	}

	e.Player.Coins = 45
	res, _ = e.PurchaseCart(ctx, cart)
	if !res.OK {
		t.Fatalf("expected success, got %v", res.Output)
	}
	if e.Player.XP != 15 || e.Player.Coins != 10 {
		t.Errorf("xp=%d coins=%d, want 15/10", e.Player.XP, e.Player.Coins)
	}
}

func TestPurchaseCart_RejectsHugeQuantity(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	huge := 1229782938247303441

	res, _ := e.PurchaseCart(ctx, map[string]int{"Pet Food": huge})
	if res.OK || !outputContains(res, "Invalid quantity") {
		t.Errorf("expected quantity error, got %+v", res)
	}
	if e.Player.Coins != 0 || e.Player.PetFood != 0 {
		t.Errorf("nothing should change: coins=%d food=%d", e.Player.Coins, e.Player.PetFood)
	}

	res, err := e.Step(ctx, "buy Pet Food:1229782938247303441")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.OK || !outputContains(res, "Invalid quantity") {
		t.Errorf("expected quantity error, got %+v", res)
	}
	if e.Player.Coins != 0 || e.Player.PetFood != 0 {
		t.Errorf("nothing should change: coins=%d food=%d", e.Player.Coins, e.Player.PetFood)
	}

	if _, msg := e.CartCost(map[string]int{"Pet Food": MaxCartQuantity + 1}); msg == "" {
		t.Error("quantity above the cap should be rejected")
	}
	if total, msg := e.CartCost(map[string]int{"Pet Food": MaxCartQuantity}); msg != "" || total != 15*MaxCartQuantity {
		t.Errorf("total=%d msg=%q", total, msg)
	}
}

func TestPurchaseCart_CoinMagnetStacks(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Player.Coins = 600

	e.PurchaseCart(context.Background(), map[string]int{"Coin Magnet (1hr)": 2})
	if e.Player.CoinGainMultiplier != 4 {
		t.Errorf("multiplier = %v, want 4", e.Player.CoinGainMultiplier)
	}
}

func TestPurchaseCart_EggRefundWhenAllOwned(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Player.Pets = e.Catalog.PetNames()
	e.Player.Coins = 150

	res, _ := e.PurchaseCart(context.Background(), map[string]int{"Mystery Pet Egg": 1})
	if !res.OK || e.Player.Coins != 150 {
		t.Errorf("egg should be refunded: coins=%d out=%v", e.Player.Coins, res.Output)
	}
}

// --- Forge ---

func TestEquip_Requirements(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	e.Player.Inventory = append(e.Player.Inventory, gearItem(t, e, catalog.SlotHelmet, "Helmet of Wisdom"))
	e.Player.Skills[catalog.SkillIntellect] = types.Skill{XP: 200}

	res, _ := e.Equip(ctx, "Helmet of Wisdom")
	if res.OK || !outputContains(res, "Intellect: 200/300") {
		t.Errorf("expected missing requirement, got %+v", res)
	}

	e.Player.Skills[catalog.SkillIntellect] = types.Skill{XP: 300}
	res, _ = e.Equip(ctx, "Helmet of Wisdom")
	if !res.OK {
		t.Fatalf("expected success, got %v", res.Output)
	}
	if it := e.Player.Gear[catalog.SlotHelmet]; it == nil || it.Name != "Helmet of Wisdom" {
		t.Errorf("helmet slot = %+v", it)
	}
	if len(e.Player.Inventory) != 0 {
		t.Errorf("inventory = %v", e.Player.Inventory)
	}
}

func TestEquip_SwapsIncumbent(t *testing.T) {
	e, _ := newTestEngine(t)
	worn := gearItem(t, e, catalog.SlotHelmet, "Helmet of Wisdom")
	e.Player.Gear[catalog.SlotHelmet] = &worn
	e.Player.Inventory = []types.GearItem{gearItem(t, e, catalog.SlotHelmet, "Hood of Shadows")}
	e.Player.Skills[catalog.SkillFaith] = types.Skill{XP: 200}

	res, _ := e.Equip(context.Background(), "Hood of Shadows")
	if !res.OK {
		t.Fatalf("expected success, got %v", res.Output)
	}
	if it := e.Player.Gear[catalog.SlotHelmet]; it == nil || it.Name != "Hood of Shadows" {
		t.Errorf("helmet slot = %+v", it)
	}
	if len(e.Player.Inventory) != 1 || e.Player.Inventory[0].Name != "Helmet of Wisdom" {
		t.Errorf("inventory = %+v", e.Player.Inventory)
	}
}

func TestSell_EquippedEmptiesSlot(t *testing.T) {
	e, _ := newTestEngine(t)
	worn := gearItem(t, e, catalog.SlotBoots, "Boots of Speed")
	e.Player.Gear[catalog.SlotBoots] = &worn

	res, _ := e.Sell(context.Background(), "Boots of Speed")
	if !res.OK {
		t.Fatalf("expected success, got %v", res.Output)
	}
	if e.Player.Gear[catalog.SlotBoots] != nil {
		t.Errorf("boots slot = %+v, want empty", e.Player.Gear[catalog.SlotBoots])
	}
	if e.Player.Coins != 50 {
		t.Errorf("coins = %d, want 50", e.Player.Coins)
	}
}

func TestRollExtraEffect_Gates(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	plain := gearItem(t, e, catalog.SlotWeapon, "Sacred Relic")
	shiny := gearItem(t, e, catalog.SlotBoots, "Boots of Speed")
	shiny.Transcended = true
	shiny.Name = state.DisplayName(shiny.BaseName, 0, true)
	e.Player.Inventory = []types.GearItem{plain, shiny}
	e.Player.Coins = 5000

	res, _ := e.RollExtraEffect(ctx, "Sacred Relic")
	if res.OK || !outputContains(res, "not Transcended") || e.Player.Coins != 5000 {
		t.Errorf("expected transcend gate, got %+v coins=%d", res, e.Player.Coins)
	}

	e.Player.Coins = 1499
	res, _ = e.RollExtraEffect(ctx, "Transcended Boots of Speed")
	if res.OK || !outputContains(res, "costs 1500 coins") || e.Player.Coins != 1499 {
		t.Errorf("expected cost gate, got %+v coins=%d", res, e.Player.Coins)
	}

	e.Player.Coins = 1500
	res, _ = e.RollExtraEffect(ctx, "Transcended Boots of Speed")
	if !res.OK {
		t.Fatalf("expected success, got %v", res.Output)
	}
	if e.Player.Coins != 0 || e.Player.Inventory[1].ExtraEffect == nil {
		t.Errorf("coins=%d item=%+v", e.Player.Coins, e.Player.Inventory[1])
	}

	e.Player.Coins = 1500
	res, _ = e.RollExtraEffect(ctx, "Transcended Boots of Speed")
	if res.OK || !outputContains(res, "already has an extra effect") || e.Player.Coins != 1500 {
		t.Errorf("expected single-effect gate, got %+v coins=%d", res, e.Player.Coins)
	}
}

func TestEnchant(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Player.Inventory = append(e.Player.Inventory, gearItem(t, e, catalog.SlotHelmet, "Helmet of Wisdom"))
	e.Player.Coins = 100

	res, _ := e.Enchant(context.Background(), "Helmet of Wisdom")
	if !res.OK {
		t.Fatalf("expected success, got %v", res.Output)
	}
	it := e.Player.Inventory[0]
	if it.Name != "Helmet of Wisdom +1" || it.EnchantLevel != 1 || e.Player.Coins != 0 {
		t.Errorf("item=%q level=%d coins=%d", it.Name, it.EnchantLevel, e.Player.Coins)
	}
	if want := 0.05 * 1.1; it.Buff.Value < want-1e-9 || it.Buff.Value > want+1e-9 {
		t.Errorf("buff = %v, want %v", it.Buff.Value, want)
	}

	res, _ = e.Enchant(context.Background(), "Helmet of Wisdom +1")
	if res.OK {
		t.Error("second enchant should need 200 coins")
	}
}

func TestSellPrice(t *testing.T) {
	tests := []struct {
		item types.GearItem
		want int
	}{
		{types.GearItem{}, 50},
		{types.GearItem{EnchantLevel: 2}, 150},
		{types.GearItem{Transcended: true}, 125},
		{types.GearItem{Transcended: true, ExtraEffect: &types.ExtraEffect{}}, 325},
	}
	for _, tt := range tests {
		if got := SellPrice(&tt.item); got != tt.want {
			t.Errorf("SellPrice(%+v) = %d, want %d", tt.item, got, tt.want)
		}
	}
}

func TestTranscend_KeepsTranscendedGear(t *testing.T) {
	e, _ := newTestEngine(t)
	p := e.Player
	kept := gearItem(t, e, catalog.SlotBoots, "Boots of Speed")
	kept.Transcended = true
	kept.Name = state.DisplayName(kept.BaseName, 0, true)
	lost := gearItem(t, e, catalog.SlotChest, "Aegis of Resilience")
	worn := gearItem(t, e, catalog.SlotHelmet, "Hood of Shadows")
	p.Inventory = []types.GearItem{kept, lost}
	p.Gear[catalog.SlotHelmet] = &worn
	p.XP = 1500
	p.Coins = 300

	res, err := e.Transcend(context.Background())
	if err != nil || !res.OK {
		t.Fatalf("transcend failed: %v %v", err, res.Output)
	}
	p = e.Player
	if p.XP != 0 || p.Coins != 0 || p.TranscendenceCount != 1 {
		t.Errorf("xp=%d coins=%d count=%d", p.XP, p.Coins, p.TranscendenceCount)
	}
	if p.CoinGainMultiplier < 1.0999 || p.CoinGainMultiplier > 1.1001 {
		t.Errorf("multiplier = %v, want 1.1", p.CoinGainMultiplier)
	}
	if p.Gear[catalog.SlotHelmet] != nil {
		t.Error("non-transcended equipped gear should be removed")
	}
	if len(p.Inventory) != 2 || p.Inventory[0].Name != "Transcended Boots of Speed" {
		t.Errorf("inventory = %+v", p.Inventory)
	}
	if arc := e.CurrentArc(); !arc.Surge {
		t.Errorf("arc = %+v, want surge", arc)
	}
	if e.TranscendRequirement() != 2000 {
		t.Errorf("next requirement = %d", e.TranscendRequirement())
	}
}

func TestTranscend_KeepsEquippedTranscendedGear(t *testing.T) {
	e, _ := newTestEngine(t)
	p := e.Player
	worn := gearItem(t, e, catalog.SlotBoots, "Boots of Speed")
	worn.Transcended = true
	worn.Name = state.DisplayName(worn.BaseName, 0, true)
	p.Gear[catalog.SlotBoots] = &worn
	plain := gearItem(t, e, catalog.SlotWeapon, "Sacred Relic")
	p.Gear[catalog.SlotWeapon] = &plain
	p.XP = 1500

	res, err := e.Transcend(context.Background())
	if err != nil || !res.OK {
		t.Fatalf("transcend failed: %v %v", err, res.Output)
	}
	if it := e.Player.Gear[catalog.SlotBoots]; it == nil || it.Name != "Transcended Boots of Speed" {
		t.Errorf("boots slot = %+v, want the transcended boots", it)
	}
	if e.Player.Gear[catalog.SlotWeapon] != nil {
		t.Error("non-transcended weapon should be removed")
	}
}

func TestTranscend_NotEnoughXP(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Player.XP = 1499
	res, _ := e.Transcend(context.Background())
	if res.OK || e.Player.TranscendenceCount != 0 {
		t.Errorf("expected refusal, got %+v", res)
	}
}

// --- Pets ---

func TestFeedAndPlay(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	e.Player.Pets = []string{"Dragonling"}
	e.Player.PetFood = 1

	res, _ := e.FeedPet(ctx, "Dragonling")
	if !res.OK || e.Player.PetFood != 0 || e.Player.PetStats["Dragonling"].XP != feedXP {
		t.Errorf("feed: ok=%v food=%d stats=%+v", res.OK, e.Player.PetFood, e.Player.PetStats["Dragonling"])
	}
	res, _ = e.FeedPet(ctx, "Dragonling")
	if res.OK {
		t.Error("feeding without food should fail")
	}

	res, _ = e.PlayWithPet(ctx, "Dragonling")
	if !res.OK || e.Player.PetStats["Dragonling"].XP != feedXP+playXP {
		t.Errorf("play: %+v", e.Player.PetStats["Dragonling"])
	}
	res, _ = e.PlayWithPet(ctx, "Dragonling")
	if res.OK || !outputContains(res, "Cooldown remaining: 0:10:00") {
		t.Errorf("expected cooldown, got %v", res.Output)
	}
}

func TestFeedPet_RequiresOwnership(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Player.PetFood = 3
	res, _ := e.FeedPet(context.Background(), "Stone Golem")
	if res.OK || e.Player.PetFood != 3 {
		t.Errorf("unowned pet should not be fed: %+v", res)
	}
}

func TestFeedAndPlay_UnknownPet(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	e.Player.Pets = []string{"Retired Phoenix"}
	e.Player.PetFood = 2

	res, _ := e.FeedPet(ctx, "Retired Phoenix")
	if res.OK || !outputContains(res, "not a known pet") || e.Player.PetFood != 2 {
		t.Errorf("feed: ok=%v food=%d out=%v", res.OK, e.Player.PetFood, res.Output)
	}
	res, _ = e.PlayWithPet(ctx, "Retired Phoenix")
	if res.OK || !outputContains(res, "not a known pet") {
		t.Errorf("play: %v", res.Output)
	}
	if _, ok := e.Player.PetStats["Retired Phoenix"]; ok {
		t.Errorf("stats = %+v, want none", e.Player.PetStats["Retired Phoenix"])
	}
	if _, ok := e.Player.PlayCooldowns["Retired Phoenix"]; ok {
		t.Error("play cooldown should not start for an unknown pet")
	}
}

func TestPetLevelUp(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Player.Pets = []string{"Dragonling"}
	e.Player.PetFood = 1
	e.Player.PetStats["Dragonling"] = types.PetProgress{Level: 1, XP: 95, XPToEvolve: 100}

	res, _ := e.FeedPet(context.Background(), "Dragonling")
	pr := e.Player.PetStats["Dragonling"]
	if pr.Level != 2 || pr.XP != 0 || pr.XPToEvolve != 150 {
		t.Errorf("progress = %+v", pr)
	}
	if !outputContains(res, "leveled up to Level 2") {
		t.Errorf("output = %v", res.Output)
	}
}

func TestPetBenefitScales(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Player.PetStats["Dragonling"] = types.PetProgress{Level: 6, XPToEvolve: 500}

	kind, value, desc, ok := e.PetBenefit("Dragonling")
	if !ok || kind != types.BenefitXP || value != 8 || desc != "+8 XP per task" {
		t.Errorf("benefit = %v %d %q %v", kind, value, desc, ok)
	}
}

// --- Daily lifecycle ---

func TestDailyCheck_StreakKept(t *testing.T) {
	e, _ := newTestEngine(t)
	p := e.Player
	p.LastDailyResetDate = state.DateString(testNow.AddDate(0, 0, -1))
	p.DailyTasksCompleted = streakThreshold
	p.DailyTasks["Workout"] = true

	res, err := e.DailyCheck(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.DailyStreak != 1 || !outputContains(res, "Daily streak maintained!") {
		t.Errorf("streak=%d out=%v", p.DailyStreak, res.Output)
	}
	if p.DailyTasksCompleted != 0 || len(p.DailyTasks) != 0 || p.LastDailyResetDate != "2025-07-15" {
		t.Errorf("counters not reset: %d %v %s", p.DailyTasksCompleted, p.DailyTasks, p.LastDailyResetDate)
	}

	// Second check on the same day does nothing.
	res, _ = e.DailyCheck(context.Background())
	if len(res.Output) != 0 || p.DailyStreak != 1 {
		t.Errorf("repeat check changed state: %v", res.Output)
	}
}

func TestDailyCheck_StreakLostAddsCorruption(t *testing.T) {
	e, _ := newTestEngine(t)
	p := e.Player
	p.DailyStreak = 4
	p.LastDailyResetDate = state.DateString(testNow.AddDate(0, 0, -2))

	e.DailyCheck(context.Background())
	if p.DailyStreak != 0 || p.Corruption != 10 || p.CorruptionPeak != 10 {
		t.Errorf("streak=%d corruption=%d peak=%d", p.DailyStreak, p.Corruption, p.CorruptionPeak)
	}
}

func TestDailyCheck_SkillDecay(t *testing.T) {
	e, _ := newTestEngine(t)
	p := e.Player
	p.LastDailyResetDate = state.DateString(testNow.AddDate(0, 0, -1))
	p.DailyTasksCompleted = streakThreshold
	p.Skills[catalog.SkillStrength] = types.Skill{XP: 50, LastUpdated: state.DateString(testNow.AddDate(0, 0, -10))}

	res, _ := e.DailyCheck(context.Background())
	// 10 idle days: ceil(2 * 1.5^3) = 7.
	if got := state.SkillXP(p, catalog.SkillStrength); got != 43 {
		t.Errorf("strength = %d, want 43", got)
	}
	if !outputContains(res, "'Strength' decayed by 7 XP.") {
		t.Errorf("output = %v", res.Output)
	}
}

func TestDailyCheck_RepairsBadDate(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Player.LastDailyResetDate = "yesterday-ish"
	res, err := e.DailyCheck(context.Background())
	if err != nil || !res.OK || e.Player.LastDailyResetDate != "2025-07-15" {
		t.Errorf("date = %q, err=%v", e.Player.LastDailyResetDate, err)
	}
}

func TestCompleteDailyTask(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	res, _ := e.CompleteDailyTask(ctx, "Juggle", true)
	if res.OK {
		t.Error("unknown task should fail")
	}
	res, _ = e.CompleteDailyTask(ctx, "Workout", true)
	if !res.OK || e.Player.XP != 1 || e.Player.Coins != 1 || e.Player.DailyTasksCompleted != 1 {
		t.Errorf("xp=%d coins=%d done=%d", e.Player.XP, e.Player.Coins, e.Player.DailyTasksCompleted)
	}
	e.CompleteDailyTask(ctx, "Workout", true)
	if e.Player.DailyTasksCompleted != 1 {
		t.Error("repeating a checked task should do nothing")
	}
	e.CompleteDailyTask(ctx, "Workout", false)
	if e.Player.DailyTasks["Workout"] {
		t.Error("task should be unchecked")
	}
}

func TestPerformAction_CustomDifficulty(t *testing.T) {
	e, _ := newTestEngine(t)
	e.CustomActions = []string{"Meal prep"}

	res, _ := e.PerformAction(context.Background(), "Meal prep", 15)
	if !outputContains(res, "Gained 25 XP and 15 coins.") {
		t.Errorf("output = %v", res.Output)
	}
	res, _ = e.PerformAction(context.Background(), "Juggle", 1)
	if res.OK {
		t.Error("unknown action should fail")
	}
}

func TestPerformAction_Rest(t *testing.T) {
	e, _ := newTestEngine(t)
	e.PerformAction(context.Background(), ActionRest, 0)
	if e.Player.XPBoostPending != restBoost {
		t.Errorf("boost = %d, want %d", e.Player.XPBoostPending, restBoost)
	}
	res, _ := e.PerformAction(context.Background(), ActionRest, 0)
	if !outputContains(res, "already have an XP boost pending") {
		t.Errorf("output = %v", res.Output)
	}
}

func TestSetActiveTitle(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	res, _ := e.SetActiveTitle(ctx, catalog.TitleSage)
	if res.OK {
		t.Error("locked title should be refused")
	}
	state.UnlockTitle(e.Player, catalog.TitleSage)
	e.SetActiveTitle(ctx, catalog.TitleSage)
	if e.FullTitle() != "Novice ("+catalog.TitleSage+")" {
		t.Errorf("full title = %q", e.FullTitle())
	}
	e.SetActiveTitle(ctx, "None")
	if e.Player.ActiveTitle != "" {
		t.Errorf("active = %q", e.Player.ActiveTitle)
	}
}

// --- Achievements ---

func TestAchievement_DailyMaster(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Player.DailyTasksCompleted = 7

	lines := e.checkAchievements()
	if !state.HasAchievement(e.Player, catalog.AchDailyMaster) {
		t.Fatal("daily master should unlock")
	}
	if !state.HasTitle(e.Player, catalog.TitleDiligent) || e.Player.XP != 100 {
		t.Errorf("reward missing: titles=%v xp=%d", e.Player.UnlockedTitles, e.Player.XP)
	}
	if len(lines) == 0 || lines[0] != "Achievement Unlocked: Daily Master!" {
		t.Errorf("lines = %v", lines)
	}
	if again := e.checkAchievements(); len(again) != 0 {
		t.Errorf("achievement granted twice: %v", again)
	}
}

// --- Arc ---

func TestCurrentArc(t *testing.T) {
	tests := []struct {
		now  time.Time
		name string
		end  string
	}{
		{time.Date(2025, time.July, 15, 0, 0, 0, 0, time.UTC), "Solar Forge", "Aug 31, 2025"},
		{time.Date(2025, time.December, 10, 0, 0, 0, 0, time.UTC), "Zero Flux", "Feb 28, 2026"},
		{time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC), "Zero Flux", "Feb 28, 2026"},
		{time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), "Genesis Pact", "May 31, 2024"},
	}
	for _, tt := range tests {
		e, _ := newTestEngine(t)
		now := tt.now
		e.Now = func() time.Time { return now }
		arc := e.CurrentArc()
		if arc.Name != tt.name || arc.EndDate != tt.end || arc.Surge {
			t.Errorf("%s: arc = %+v, want %s ending %s", tt.now.Format("2006-01-02"), arc, tt.name, tt.end)
		}
	}
}

// --- Persistence ---

func TestLoad_RoundTrip(t *testing.T) {
	e, store := newTestEngine(t)
	ctx := context.Background()
	e.Player.Coins = 77
	e.AddCustomPunishment(ctx, CustomPunishment{Name: "Doomscrolling", Severity: "OK", Punishment: 1})

	fresh := New(catalog.Default(), Options{Store: store, Seed: 1, Now: func() time.Time { return testNow }})
	if err := fresh.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if fresh.Player.Coins != 77 {
		t.Errorf("coins = %d, want 77", fresh.Player.Coins)
	}
	if def, ok := fresh.Catalog.Punishment("Doomscrolling"); !ok || !def.Custom {
		t.Errorf("custom punishment not restored: %+v", def)
	}
}

func TestLoad_NoSave(t *testing.T) {
	e, _ := newTestEngine(t)
	if err := e.Load(context.Background()); err != nil {
		t.Errorf("missing save should not error: %v", err)
	}
	if e.Player.Title != catalog.BaseTitle {
		t.Errorf("title = %q", e.Player.Title)
	}
}

func TestSaveError_Wrapped(t *testing.T) {
	e, store := newTestEngine(t)
	boom := errors.New("disk full")
	store.Err = boom

	_, err := e.GenerateSideQuest(context.Background())
	if !errors.Is(err, boom) || !strings.HasPrefix(err.Error(), "save: ") {
		t.Errorf("err = %v", err)
	}
}
