package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nathoo/lifequest/engine/modifier"
	"github.com/nathoo/lifequest/engine/state"
	"github.com/nathoo/lifequest/types"
)

const (
	enchantCostStep = 100
	transcendCost   = 1000
	rollCost        = 1500
)

var titleCase = cases.Title(language.English)

// Equip moves an inventory item into its slot. The slot's incumbent goes
// back to the inventory.
func (e *Engine) Equip(ctx context.Context, name string) (types.Result, error) {
	p := e.Player
	_, loc, ok := state.FindItem(p, name)
	if !ok || loc.Equipped() {
		return e.result(false, "Item not in inventory."), nil
	}
	item := p.Inventory[loc.Index]

	if missing := e.missingRequirements(&item); len(missing) > 0 {
		return e.result(false, fmt.Sprintf("Cannot equip %s. Missing requirements:\n%s", name, strings.Join(missing, "\n"))), nil
	}

	state.RemoveInventoryAt(p, loc.Index)
	if cur := p.Gear[item.Slot]; cur != nil {
		p.Inventory = append(p.Inventory, *cur)
	}
	p.Gear[item.Slot] = &item
	e.emit("equip", map[string]any{"item": item.Name, "slot": item.Slot})
	return e.commit(ctx, "gear: equipped "+item.Name, true, fmt.Sprintf("Equipped %s.", item.Name))
}

// missingRequirements lists unmet "Skill: have/need" lines in skill order.
func (e *Engine) missingRequirements(item *types.GearItem) []string {
	skills := make([]string, 0, len(item.Requirements))
	for s := range item.Requirements {
		skills = append(skills, s)
	}
	sort.Strings(skills)
	var missing []string
	for _, s := range skills {
		need := item.Requirements[s]
		if have := state.SkillXP(e.Player, s); have < need {
			missing = append(missing, fmt.Sprintf("%s: %d/%d", s, have, need))
		}
	}
	return missing
}

// Unequip returns the item in slot to the inventory.
func (e *Engine) Unequip(ctx context.Context, slot string) (types.Result, error) {
	p := e.Player
	item := p.Gear[slot]
	if item == nil {
		return e.result(false, "No item in that slot."), nil
	}
	p.Inventory = append(p.Inventory, *item)
	p.Gear[slot] = nil
	e.emit("unequip", map[string]any{"item": item.Name, "slot": slot})
	return e.commit(ctx, "gear: unequipped "+item.Name, true, fmt.Sprintf("Unequipped %s.", item.Name))
}

// EnchantCost is the price of the next enchant level.
func EnchantCost(item *types.GearItem) int {
	return enchantCostStep * (item.EnchantLevel + 1)
}

// Enchant raises an item's enchant level and strengthens its buff.
func (e *Engine) Enchant(ctx context.Context, name string) (types.Result, error) {
	p := e.Player
	item, _, ok := state.FindItem(p, name)
	if !ok {
		return e.result(false, "Item not found."), nil
	}
	cost := EnchantCost(item)
	if p.Coins < cost {
		return e.result(false, fmt.Sprintf("Not enough coins. Enchanting to +%d costs %d coins.", item.EnchantLevel+1, cost)), nil
	}
	p.Coins -= cost
	item.EnchantLevel++
	item.Buff.Value *= 1.1
	if modifier.IsSkillGain(item.Buff.Type) {
		item.Buff.Value += 0.01
	}
	base := state.BaseName(item)
	item.BaseName = base
	item.Name = state.DisplayName(base, item.EnchantLevel, item.Transcended)
	level := item.EnchantLevel
	e.emit("enchant", map[string]any{"item": base, "level": level, "cost": cost})

	lines := []string{fmt.Sprintf("Successfully enchanted %s to +%d for %d coins!", base, level, cost)}
	lines = append(lines, e.checkAchievements()...)
	return e.commit(ctx, fmt.Sprintf("forge: enchanted %s to +%d", base, level), true, lines...)
}

// TranscendItem marks an item transcended so it survives player transcends.
func (e *Engine) TranscendItem(ctx context.Context, name string) (types.Result, error) {
	p := e.Player
	item, _, ok := state.FindItem(p, name)
	if !ok {
		return e.result(false, "Item not found."), nil
	}
	if item.Transcended {
		return e.result(false, "This item is already Transcended. You can roll an extra effect on it."), nil
	}
	if p.Coins < transcendCost {
		return e.result(false, fmt.Sprintf("Not enough coins. Transcending an item costs %d coins.", transcendCost)), nil
	}
	p.Coins -= transcendCost
	base := state.BaseName(item)
	item.BaseName = base
	item.Transcended = true
	item.Name = state.DisplayName(base, item.EnchantLevel, true)
	e.emit("item_transcended", map[string]any{"item": base})

	lines := []string{fmt.Sprintf("Successfully paid %d coins to Transcend %s. It is now safe from resets.", transcendCost, base)}
	lines = append(lines, e.checkAchievements()...)
	return e.commit(ctx, "forge: transcended "+base, true, lines...)
}

// RollExtraEffect gives a transcended item one random extra effect.
func (e *Engine) RollExtraEffect(ctx context.Context, name string) (types.Result, error) {
	p := e.Player
	item, _, ok := state.FindItem(p, name)
	switch {
	case !ok:
		return e.result(false, "Item not found."), nil
	case !item.Transcended:
		return e.result(false, "This item is not Transcended. Only Transcended items can have extra effects."), nil
	case item.ExtraEffect != nil:
		return e.result(false, "This Transcended item already has an extra effect. You cannot roll another."), nil
	case p.Coins < rollCost:
		return e.result(false, fmt.Sprintf("Not enough coins. Rolling an extra effect costs %d coins.", rollCost)), nil
	}
	p.Coins -= rollCost
	fx := Pick(e.RNG, e.Catalog.ExtraEffects)
	item.ExtraEffect = &fx
	e.emit("extra_effect", map[string]any{"item": item.Name, "type": string(fx.Type), "value": fx.Value})

	lines := []string{fmt.Sprintf("Successfully paid %d coins to roll an extra effect on %s! It gained: +%s.",
		rollCost, item.Name, DescribeEffect(fx))}
	lines = append(lines, e.checkAchievements()...)
	return e.commit(ctx, "forge: rolled "+item.Name, true, lines...)
}

// DescribeEffect renders an effect as e.g. "3.0% Xp Gain" or
// "5.0% (Faith Skill) Skill Xp Bonus".
func DescribeEffect(fx types.ExtraEffect) string {
	kind := titleCase.String(strings.ReplaceAll(string(fx.Type), "_", " "))
	value := fmt.Sprintf("%.1f%%", fx.Value*100)
	if fx.Skill != "" {
		value += fmt.Sprintf(" (%s Skill)", fx.Skill)
	}
	return value + " " + kind
}

// SellPrice is what the shop pays for an item.
func SellPrice(item *types.GearItem) int {
	price := max(50, 100*0.2) + 50*float64(item.EnchantLevel)
	if item.Transcended {
		price *= 2.5
		if item.ExtraEffect != nil {
			price += 200
		}
	}
	return int(price)
}

// Sell removes an item from the inventory or its slot and credits its price.
func (e *Engine) Sell(ctx context.Context, name string) (types.Result, error) {
	p := e.Player
	item, loc, ok := state.FindItem(p, name)
	if !ok {
		return e.result(false, "Item not found."), nil
	}
	price := SellPrice(item)
	sold := item.Name
	if loc.Equipped() {
		p.Gear[loc.Slot] = nil
	} else {
		state.RemoveInventoryAt(p, loc.Index)
	}
	p.Coins += price
	e.emit("sell", map[string]any{"item": sold, "price": price})
	return e.commit(ctx, "forge: sold "+sold, true, fmt.Sprintf("Successfully sold %s for %d coins!", sold, price))
}

// addRandomGear copies a random template from a random slot into the
// inventory.
func (e *Engine) addRandomGear() types.GearItem {
	slot := Pick(e.RNG, e.Catalog.Slots)
	item := state.NewGearItem(Pick(e.RNG, e.Catalog.Gear[slot]))
	item.Slot = slot
	e.Player.Inventory = append(e.Player.Inventory, item)
	e.emit("gear_found", map[string]any{"item": item.Name, "slot": slot})
	e.Log.Debug("gear found", "item", item.Name, "slot", slot)
	return item
}
