package engine

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/nathoo/lifequest/engine/state"
	"github.com/nathoo/lifequest/types"
)

// MaxCartQuantity caps a single cart line.
const MaxCartQuantity = 999

// ShopItems returns the purchasable items in display order.
func (e *Engine) ShopItems() []types.ShopItemDef {
	return e.Catalog.Shop
}

// CartCost validates a cart and returns its total. A non-empty message
// means the cart is rejected.
func (e *Engine) CartCost(cart map[string]int) (int, string) {
	if len(cart) == 0 {
		return 0, "Your cart is empty."
	}
	total := 0
	for name, qty := range cart {
		item, ok := e.Catalog.ShopItem(name)
		if !ok {
			return 0, fmt.Sprintf("Unknown item: %q.", name)
		}
		if qty < 1 || qty > MaxCartQuantity {
			return 0, fmt.Sprintf("Invalid quantity for %s: expected 1 to %d.", name, MaxCartQuantity)
		}
		if item.Cost > 0 && qty > (math.MaxInt-total)/item.Cost {
			return 0, "Your cart is too expensive."
		}
		total += item.Cost * qty
	}
	return total, ""
}

// PurchaseCart buys every line of the cart or nothing. Effects apply in
// catalog order, scaled by quantity.
func (e *Engine) PurchaseCart(ctx context.Context, cart map[string]int) (types.Result, error) {
	total, msg := e.CartCost(cart)
	if msg != "" {
		return e.result(false, msg), nil
	}
	p := e.Player
	if total > p.Coins {
		return e.result(false, fmt.Sprintf("Not enough coins. Cart costs %d, but you only have %d.", total, p.Coins)), nil
	}
	p.Coins -= total

	var (
		bought []string
		notes  []string
	)
	for _, item := range e.Catalog.Shop {
		qty, ok := cart[item.Name]
		if !ok {
			continue
		}
		notes = append(notes, e.applyShopItem(item, qty)...)
		bought = append(bought, fmt.Sprintf("%dx %s", qty, item.Name))
	}

	e.incrementDailyTasks()
	notes = append(notes, e.checkAchievements()...)
	e.emit("purchase", map[string]any{"cost": total, "items": bought})

	lines := []string{fmt.Sprintf("Purchase successful for %d coins! You bought: %s.", total, strings.Join(bought, ", "))}
	return e.commit(ctx, "shop: "+strings.Join(bought, ", "), true, append(lines, notes...)...)
}

func (e *Engine) applyShopItem(item types.ShopItemDef, qty int) []string {
	p := e.Player
	var notes []string
	switch item.Effect {
	case types.ShopXPBoost:
		_, lines, ok := e.awardXP(item.Amount*qty, false)
		if !ok {
			notes = append(notes, msgCorruptXP)
		}
		notes = append(notes, lines...)
	case types.ShopAddCoins:
		if _, ok := e.awardCoins(item.Amount * qty); !ok {
			notes = append(notes, msgCorruptCoins)
		}
	case types.ShopAddPetFood:
		p.PetFood += item.Amount * qty
	case types.ShopGainSkill:
		e.addNewSkill(item.Skill)
		e.gainSkillPoints(item.Skill, item.Amount*qty)
	case types.ShopXPMultiplier:
		end := e.Now().Add(time.Duration(item.DurationMinutes*qty) * time.Minute)
		if p.TranscendenceBuffEndTime != nil && p.TranscendenceBuffEndTime.After(end) {
			end = *p.TranscendenceBuffEndTime
		}
		p.TranscendenceBuffEndTime = &end
		notes = append(notes, fmt.Sprintf("Buff applied: XP gain will be %dx until %s.", item.Amount, end.Format("03:04 PM")))
	case types.ShopCoinMultiplier:
		for range qty {
			p.CoinGainMultiplier *= float64(item.Amount)
		}
		notes = append(notes, fmt.Sprintf("Buff applied: Coin gain multiplier is now %.1fx.", p.CoinGainMultiplier))
	case types.ShopUnlockTitle:
		for range qty {
			if title, ok := e.unlockRandomTitle(); ok {
				notes = append(notes, fmt.Sprintf("Title Unlocked: %s!", title))
			}
		}
	case types.ShopAddGear:
		for range qty {
			gear := e.addRandomGear()
			notes = append(notes, fmt.Sprintf("You received %s!", gear.Name))
		}
	case types.ShopPunishmentMitigation:
		p.PunishmentMitigationPending = true
	case types.ShopAddPetEgg:
		for range qty {
			notes = append(notes, e.hatchEgg(item.Cost))
		}
	}
	return notes
}

// hatchEgg grants a random unowned pet, or refunds the egg.
func (e *Engine) hatchEgg(cost int) string {
	var available []string
	for _, name := range e.Catalog.PetNames() {
		if !state.HasPet(e.Player, name) {
			available = append(available, name)
		}
	}
	if len(available) == 0 {
		e.Player.Coins += cost
		return fmt.Sprintf("The egg was empty. You already own every pet; %d coins refunded.", cost)
	}
	pet := Pick(e.RNG, available)
	e.Player.Pets = append(e.Player.Pets, pet)
	e.emit("pet_hatched", map[string]any{"pet": pet})
	return fmt.Sprintf("Your egg hatched into %s!", pet)
}
