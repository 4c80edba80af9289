package engine

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/nathoo/lifequest/engine/catalog"
	"github.com/nathoo/lifequest/engine/parser"
	"github.com/nathoo/lifequest/engine/resolve"
	"github.com/nathoo/lifequest/engine/state"
	"github.com/nathoo/lifequest/types"
)

// Step runs one command line against the engine.
func (e *Engine) Step(ctx context.Context, input string) (types.Result, error) {
	// 1. Parse input into an intent.
	intent := parser.Parse(input)
	e.Log.Debug("step", "verb", intent.Verb, "args", intent.Args, "options", intent.Options)

	// 2. Empty input.
	if intent.Verb == "" {
		return e.result(false, "What do you want to do?"), nil
	}

	// 3. Close an expired buff window before acting.
	e.ExpireBuffs()

	// 4. Dispatch.
	res, err := e.dispatch(ctx, intent)

	// 5. Name lookups fail softly.
	var (
		amb *resolve.AmbiguityError
		nf  *resolve.NotFoundError
		bad *optionError
	)
	switch {
	case errors.As(err, &amb):
		return e.result(false, fmt.Sprintf("Which do you mean: %s?", strings.Join(amb.Candidates, ", "))), nil
	case errors.As(err, &nf):
		return e.result(false, capitalize(nf.Error())+"."), nil
	case errors.As(err, &bad):
		return e.result(false, bad.Error()), nil
	}
	return res, err
}

func (e *Engine) dispatch(ctx context.Context, in types.Intent) (types.Result, error) {
	text := parser.Text(in)
	p := e.Player

	switch in.Verb {
	case "help":
		return e.result(true, HelpLines()...), nil
	case "status":
		return e.result(true, e.StatusLines()...), nil
	case "quests":
		return e.result(true, e.QuestLines()...), nil
	case "quest":
		req, err := e.questRequest(in)
		if err != nil {
			return types.Result{}, err
		}
		return e.GenerateQuest(ctx, req)
	case "side":
		return e.GenerateSideQuest(ctx)
	case "complete":
		name, err := resolve.Name("quest", text, questNames(p))
		if err != nil {
			return types.Result{}, err
		}
		minutes, err := intOption(in, "minutes", NoDuration)
		if err != nil {
			return types.Result{}, err
		}
		return e.CompleteQuest(ctx, name, minutes)
	case "sweep":
		return e.SweepOverdue(ctx)

	case "shop":
		return e.result(true, e.ShopLines()...), nil
	case "buy":
		cart, err := e.parseCart(text)
		if err != nil {
			return types.Result{}, err
		}
		return e.PurchaseCart(ctx, cart)

	case "inventory":
		return e.result(true, e.InventoryLines()...), nil
	case "equip":
		name, err := resolve.Name("item", text, inventoryNames(p))
		if err != nil {
			return types.Result{}, err
		}
		return e.Equip(ctx, name)
	case "unequip":
		slot, err := resolve.Name("slot", text, state.EquippedSlots(p))
		if err != nil {
			return types.Result{}, err
		}
		return e.Unequip(ctx, slot)
	case "enchant", "transcenditem", "roll", "sell":
		name, err := resolve.Name("item", text, gearNames(p))
		if err != nil {
			return types.Result{}, err
		}
		switch in.Verb {
		case "enchant":
			return e.Enchant(ctx, name)
		case "transcenditem":
			return e.TranscendItem(ctx, name)
		case "roll":
			return e.RollExtraEffect(ctx, name)
		default:
			return e.Sell(ctx, name)
		}
	case "transcend":
		if text == "" {
			return e.Transcend(ctx)
		}
		name, err := resolve.Name("item", text, gearNames(p))
		if err != nil {
			return types.Result{}, err
		}
		return e.TranscendItem(ctx, name)

	case "punishments":
		return e.result(true, e.PunishmentLines()...), nil
	case "punish":
		name, err := resolve.Name("punishment", text, punishmentNames(e.Punishments()))
		if err != nil {
			return types.Result{}, err
		}
		return e.ApplyPunishment(ctx, name)
	case "addpunish":
		cp, err := customPunishment(in)
		if err != nil {
			return types.Result{}, err
		}
		return e.AddCustomPunishment(ctx, cp)

	case "pets":
		return e.result(true, e.PetLines()...), nil
	case "pet", "feed", "play":
		name, err := resolve.Name("pet", text, p.Pets)
		if err != nil {
			return types.Result{}, err
		}
		switch in.Verb {
		case "pet":
			return e.PetAPet(ctx, name)
		case "feed":
			return e.FeedPet(ctx, name)
		default:
			return e.PlayWithPet(ctx, name)
		}

	case "titles":
		return e.result(true, e.TitleLines()...), nil
	case "title":
		if text == "" || strings.EqualFold(text, "none") {
			return e.SetActiveTitle(ctx, "")
		}
		name, err := resolve.Name("title", text, p.UnlockedTitles)
		if err != nil {
			return types.Result{}, err
		}
		return e.SetActiveTitle(ctx, name)
	case "achievements":
		return e.result(true, e.AchievementLines()...), nil

	case "daily":
		return e.result(true, e.DailyLines()...), nil
	case "task":
		task, err := resolve.Name("task", text, e.DailyTasks())
		if err != nil {
			return types.Result{}, err
		}
		done, err := boolOption(in, "done", true)
		if err != nil {
			return types.Result{}, err
		}
		return e.CompleteDailyTask(ctx, task, done)

	case "actions":
		return e.result(true, e.Actions()...), nil
	case "act":
		name, err := resolve.Name("action", text, e.Actions())
		if err != nil {
			return types.Result{}, err
		}
		difficulty, err := intOption(in, "difficulty", 0)
		if err != nil {
			return types.Result{}, err
		}
		return e.PerformAction(ctx, name, difficulty)
	case "addaction":
		return e.AddCustomAction(ctx, text)

	case "arc":
		arc := e.CurrentArc()
		return e.result(true, fmt.Sprintf("%s (ends %s)", arc.Name, arc.EndDate), arc.Quote), nil
	}

	return e.result(false, fmt.Sprintf("I don't know how to %q. Type help for commands.", in.Verb)), nil
}

// optionError reports a malformed key=value option.
type optionError struct {
	Key   string
	Value string
	Want  string
}

func (e *optionError) Error() string {
	return fmt.Sprintf("Invalid %s %q: expected %s.", e.Key, e.Value, e.Want)
}

func intOption(in types.Intent, key string, def int) (int, error) {
	v, ok := in.Options[key]
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, &optionError{Key: key, Value: v, Want: "a whole number"}
	}
	return n, nil
}

func boolOption(in types.Intent, key string, def bool) (bool, error) {
	v, ok := in.Options[key]
	if !ok {
		return def, nil
	}
	switch strings.ToLower(v) {
	case "yes", "y", "true", "1":
		return true, nil
	case "no", "n", "false", "0":
		return false, nil
	}
	return false, &optionError{Key: key, Value: v, Want: "yes or no"}
}

var questCategories = map[string]types.QuestCategory{
	"training":  types.CategoryTraining,
	"intellect": types.CategoryIntellect,
	"faith":     types.CategoryFaith,
	"project":   types.CategoryLongTerm,
	"long-term": types.CategoryLongTerm,
}

// questRequest builds a QuestRequest from "quest <category> key=value...".
func (e *Engine) questRequest(in types.Intent) (QuestRequest, error) {
	var req QuestRequest
	if len(in.Args) == 0 {
		return req, &optionError{Key: "quest category", Want: "training, intellect, faith or project"}
	}
	kind, err := resolve.Name("quest category", parser.Text(in), slices.Sorted(maps.Keys(questCategories)))
	if err != nil {
		return req, err
	}
	req.Category = questCategories[kind]
	opts := in.Options

	if v, ok := opts["skill"]; ok {
		if req.Skill, err = resolve.Name("skill", v, e.Catalog.Skills); err != nil {
			return req, err
		}
	}
	req.Difficulty = "Easy"
	if v, ok := opts["difficulty"]; ok {
		if req.Difficulty, err = resolve.Name("difficulty", v, catalog.Difficulties); err != nil {
			return req, err
		}
	}
	if v, ok := opts["type"]; ok {
		if req.WorkoutType, err = resolve.Name("workout type", v, catalog.WorkoutTypes); err != nil {
			return req, err
		}
	}
	if req.Sets, err = intOption(in, "sets", defaultSets); err != nil {
		return req, err
	}
	if req.Reps, err = intOption(in, "reps", defaultReps); err != nil {
		return req, err
	}
	if req.Duration, err = intOption(in, "duration", defaultDuration); err != nil {
		return req, err
	}
	req.Activity = opts["activity"]
	req.ActivityCategory = strings.ToLower(opts["category"])
	req.ProjectName = opts["name"]
	req.Steps = opts["steps"]
	if v, ok := opts["due"]; ok {
		day, err := state.ParseDate(v, e.Now().Location())
		if err != nil {
			return req, &optionError{Key: "due", Value: v, Want: "a date like 2025-07-01"}
		}
		due := state.EndOfDay(day)
		req.DueDate = &due
	}
	return req, nil
}

// parseCart reads "Name[:qty], Name[:qty]" into a cart keyed by shop item.
func (e *Engine) parseCart(text string) (map[string]int, error) {
	var names []string
	for _, it := range e.ShopItems() {
		names = append(names, it.Name)
	}
	cart := map[string]int{}
	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		qty := 1
		if i := strings.LastIndex(part, ":"); i >= 0 {
			n, err := strconv.Atoi(strings.TrimSpace(part[i+1:]))
			if err != nil || n <= 0 || n > MaxCartQuantity {
				return nil, &optionError{Key: "quantity", Value: part[i+1:], Want: fmt.Sprintf("a whole number from 1 to %d", MaxCartQuantity)}
			}
			part, qty = strings.TrimSpace(part[:i]), n
		}
		name, err := resolve.Name("shop item", part, names)
		if err != nil {
			return nil, err
		}
		cart[name] += qty
	}
	return cart, nil
}

func customPunishment(in types.Intent) (CustomPunishment, error) {
	opts := in.Options
	cp := CustomPunishment{Name: opts["name"]}
	if cp.Name == "" {
		cp.Name = parser.Text(in)
	}
	cp.Severity = "OK"
	if v, ok := opts["severity"]; ok {
		sev, err := resolve.Name("severity", v, slices.Sorted(maps.Keys(catalog.SeverityChances)))
		if err != nil {
			return cp, err
		}
		cp.Severity = sev
	}
	var err error
	if cp.Punishment, err = intOption(in, "points", 1); err != nil {
		return cp, err
	}
	if cp.XPPenalty, err = intOption(in, "xp", 0); err != nil {
		return cp, err
	}
	if cp.CoinPenalty, err = intOption(in, "coins", 0); err != nil {
		return cp, err
	}
	if cp.Special, err = boolOption(in, "special", false); err != nil {
		return cp, err
	}
	return cp, nil
}

func questNames(p *types.Player) []string {
	names := make([]string, 0, len(p.Quests))
	for _, q := range p.Quests {
		names = append(names, q.Name)
	}
	return names
}

func inventoryNames(p *types.Player) []string {
	names := make([]string, 0, len(p.Inventory))
	for _, it := range p.Inventory {
		names = append(names, it.Name)
	}
	return names
}

func gearNames(p *types.Player) []string {
	var names []string
	for _, it := range state.AllGear(p) {
		if !slices.Contains(names, it.Name) {
			names = append(names, it.Name)
		}
	}
	return names
}

func punishmentNames(defs []types.PunishmentDef) []string {
	names := make([]string, 0, len(defs))
	for _, d := range defs {
		names = append(names, d.Name)
	}
	return names
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
