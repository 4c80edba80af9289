// Package state provides constructors and lookups over the player record.
// All mutation policy lives in the engine; these helpers only read or do
// single-field bookkeeping.
package state

import (
	"fmt"
	"regexp"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/nathoo/lifequest/types"
)

// DateLayout is the calendar-day format stored in save records.
const DateLayout = "2006-01-02"

// TranscendedPrefix is prepended to the display name of transcended gear.
const TranscendedPrefix = "Transcended "

// DefaultSlots lists the equipment slots a fresh player has.
var DefaultSlots = []string{"Helmet", "Chest", "Weapon", "Boots"}

// NewPlayer creates a fresh player with the given skills registered as of today.
func NewPlayer(today time.Time, skills []string) *types.Player {
	day := DateString(today)
	p := &types.Player{
		Title:              "Novice",
		CoinGainMultiplier: 1.0,
		Pets:               []string{},
		PetStats:           map[string]types.PetProgress{},
		Quests:             []types.Quest{},
		LastDailyResetDate: day,
		Skills:             map[string]types.Skill{},
		PetCooldowns:       map[string]time.Time{},
		PlayCooldowns:      map[string]time.Time{},
		DailyTasks:         map[string]bool{},
		UnlockedTitles:     []string{"Novice"},
		Gear:               map[string]*types.GearItem{},
		Inventory:          []types.GearItem{},
		Achievements:       []string{},
		CustomPunishments:  []types.PunishmentDef{},
	}
	for _, s := range skills {
		p.Skills[s] = types.Skill{LastUpdated: day}
	}
	for _, slot := range DefaultSlots {
		p.Gear[slot] = nil
	}
	return p
}

// DateString formats t as a calendar day.
func DateString(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a calendar day in the given location.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, loc)
}

// EndOfDay returns 23:59:59 on the same calendar day as t.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, t.Location())
}

// DaysBetween returns the number of whole calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}

// SkillXP returns the XP of a skill. Unregistered skills have 0.
func SkillXP(p *types.Player, skill string) int {
	return p.Skills[skill].XP
}

// SkillNames returns registered skill names in sorted order.
func SkillNames(p *types.Player) []string {
	names := make([]string, 0, len(p.Skills))
	for name := range p.Skills {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasPet returns true if the player owns the pet.
func HasPet(p *types.Player, name string) bool {
	return contains(p.Pets, name)
}

// RemovePet removes a pet from the owned list. Progress is kept so a
// re-hatched pet resumes its level.
func RemovePet(p *types.Player, name string) {
	p.Pets = remove(p.Pets, name)
}

// HasTitle returns true if the title is unlocked.
func HasTitle(p *types.Player, name string) bool {
	return contains(p.UnlockedTitles, name)
}

// UnlockTitle adds a title. Returns false if it was already unlocked.
func UnlockTitle(p *types.Player, name string) bool {
	if HasTitle(p, name) {
		return false
	}
	p.UnlockedTitles = append(p.UnlockedTitles, name)
	return true
}

// RemoveTitle drops an unlocked title, clearing it if active.
func RemoveTitle(p *types.Player, name string) {
	p.UnlockedTitles = remove(p.UnlockedTitles, name)
	if p.ActiveTitle == name {
		p.ActiveTitle = ""
	}
}

// HasAchievement returns true if the achievement key is unlocked.
func HasAchievement(p *types.Player, key string) bool {
	return contains(p.Achievements, key)
}

// FindQuest returns the index of an active quest, or -1.
func FindQuest(p *types.Player, name string) int {
	for i, q := range p.Quests {
		if q.Name == name {
			return i
		}
	}
	return -1
}

// QuestNames returns the set of active quest names.
func QuestNames(p *types.Player) map[string]bool {
	names := make(map[string]bool, len(p.Quests))
	for _, q := range p.Quests {
		names[q.Name] = true
	}
	return names
}

// BuffActive reports whether the transcendence buff window is open at now.
func BuffActive(p *types.Player, now time.Time) bool {
	return p.TranscendenceBuffEndTime != nil && now.Before(*p.TranscendenceBuffEndTime)
}

var decorationRE = regexp.MustCompile(`^(?:Transcended )?(.*?)(?: \+\d+)?$`)

// DisplayName derives an item's display name from its base name.
func DisplayName(base string, enchant int, transcended bool) string {
	name := base
	if transcended {
		name = TranscendedPrefix + name
	}
	if enchant > 0 {
		name = fmt.Sprintf("%s +%d", name, enchant)
	}
	return name
}

// StripDecorations removes the transcended prefix and enchant suffix.
func StripDecorations(name string) string {
	m := decorationRE.FindStringSubmatch(name)
	if m == nil {
		return name
	}
	return m[1]
}

// BaseName returns the item's stable base name.
func BaseName(item *types.GearItem) string {
	if item.BaseName != "" {
		return item.BaseName
	}
	return StripDecorations(item.Name)
}

// NewGearItem copies a template into a fresh owned instance.
func NewGearItem(def types.GearDef) types.GearItem {
	item := types.GearItem{
		ID:       uuid.NewString(),
		Name:     def.Name,
		BaseName: def.Name,
		Slot:     def.Slot,
		Buff:     def.Buff,
	}
	if len(def.Requirements) > 0 {
		item.Requirements = make(map[string]int, len(def.Requirements))
		for k, v := range def.Requirements {
			item.Requirements[k] = v
		}
	}
	return item
}

// ItemLocation records where FindItem found an item.
type ItemLocation struct {
	Index int    // inventory index, or -1 when equipped
	Slot  string // equipped slot, or "" when in inventory
}

// Equipped reports whether the item sits in a gear slot.
func (l ItemLocation) Equipped() bool { return l.Slot != "" }

// FindItem looks an item up by display name, inventory first, then the
// equipped slots in slot order.
func FindItem(p *types.Player, name string) (*types.GearItem, ItemLocation, bool) {
	for i := range p.Inventory {
		if p.Inventory[i].Name == name {
			return &p.Inventory[i], ItemLocation{Index: i}, true
		}
	}
	for _, slot := range EquippedSlots(p) {
		if it := p.Gear[slot]; it != nil && it.Name == name {
			return it, ItemLocation{Index: -1, Slot: slot}, true
		}
	}
	return nil, ItemLocation{Index: -1}, false
}

// EquippedSlots returns slot names in a stable order: the default slots
// first, then any extra slots sorted.
func EquippedSlots(p *types.Player) []string {
	slots := make([]string, 0, len(p.Gear))
	seen := map[string]bool{}
	for _, s := range DefaultSlots {
		if _, ok := p.Gear[s]; ok {
			slots = append(slots, s)
			seen[s] = true
		}
	}
	var extra []string
	for s := range p.Gear {
		if !seen[s] {
			extra = append(extra, s)
		}
	}
	sort.Strings(extra)
	return append(slots, extra...)
}

// AllGear returns pointers to every owned item: inventory, then equipped.
func AllGear(p *types.Player) []*types.GearItem {
	out := make([]*types.GearItem, 0, len(p.Inventory)+len(p.Gear))
	for i := range p.Inventory {
		out = append(out, &p.Inventory[i])
	}
	for _, slot := range EquippedSlots(p) {
		if it := p.Gear[slot]; it != nil {
			out = append(out, it)
		}
	}
	return out
}

// RemoveInventoryAt deletes the inventory item at index i.
func RemoveInventoryAt(p *types.Player, i int) types.GearItem {
	item := p.Inventory[i]
	p.Inventory = append(p.Inventory[:i], p.Inventory[i+1:]...)
	return item
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func remove(list []string, s string) []string {
	out := list[:0]
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}
