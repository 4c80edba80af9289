// Package catalog holds the static game tables: levels, shop, punishments,
// pets, gear, titles, achievements, exercises, side quests and arcs.
// A Catalog is read-only after load, apart from merging custom content.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nathoo/lifequest/types"
)

// Catalog is the immutable rule data consulted by the engine.
type Catalog struct {
	Levels       []types.LevelDef // ascending by XPRequired
	TranscendReq map[int]int
	Shop         []types.ShopItemDef
	Punishments  []types.PunishmentDef
	Pets         []types.PetDef
	Gear         map[string][]types.GearDef
	Slots        []string
	Titles       []types.TitleDef
	Achievements []types.AchievementDef
	ExtraEffects []types.ExtraEffect
	Arcs         []types.ArcDef
	Exercises    map[string][]types.ExerciseDef // keyed by skill
	Activities   map[string][]string            // keyed by intellect category
	SideQuests   []types.SideQuestDef
	DailyTasks   []string
	Skills       []string
}

// Content is extra catalog data loaded from content packs or CSV files.
type Content struct {
	Punishments []types.PunishmentDef
	Exercises   []types.ExerciseDef
	SideQuests  []types.SideQuestDef
	Activities  map[string][]string
}

// Default returns a fresh catalog populated with the built-in tables.
// Each call returns an independent copy.
func Default() *Catalog {
	c := &Catalog{
		Levels:       defaultLevels(),
		TranscendReq: defaultTranscendRequirements(),
		Shop:         defaultShop(),
		Punishments:  defaultPunishments(),
		Pets:         defaultPets(),
		Gear:         defaultGear(),
		Slots:        []string{SlotHelmet, SlotChest, SlotWeapon, SlotBoots},
		Titles:       defaultTitles(),
		Achievements: defaultAchievements(),
		ExtraEffects: defaultExtraEffects(),
		Arcs:         defaultArcs(),
		Exercises:    defaultExercises(),
		Activities:   defaultActivities(),
		SideQuests:   defaultSideQuests(),
		DailyTasks:   defaultDailyTasks(),
		Skills:       []string{SkillStrength, SkillEndurance, SkillDurability, SkillIntellect, SkillFaith},
	}
	sort.SliceStable(c.Levels, func(i, j int) bool {
		return c.Levels[i].XPRequired < c.Levels[j].XPRequired
	})
	return c
}

// ShopItem looks up a shop item by exact name.
func (c *Catalog) ShopItem(name string) (types.ShopItemDef, bool) {
	for _, it := range c.Shop {
		if it.Name == name {
			return it, true
		}
	}
	return types.ShopItemDef{}, false
}

// SkillTomes returns the shop items that grant skill XP.
func (c *Catalog) SkillTomes() []types.ShopItemDef {
	var out []types.ShopItemDef
	for _, it := range c.Shop {
		if it.Effect == types.ShopGainSkill {
			out = append(out, it)
		}
	}
	return out
}

// Punishment looks up a punishment by exact name.
func (c *Catalog) Punishment(name string) (types.PunishmentDef, bool) {
	for _, p := range c.Punishments {
		if p.Name == name {
			return p, true
		}
	}
	return types.PunishmentDef{}, false
}

// CustomPunishments returns the punishments flagged as player-authored.
func (c *Catalog) CustomPunishments() []types.PunishmentDef {
	out := []types.PunishmentDef{}
	for _, p := range c.Punishments {
		if p.Custom {
			out = append(out, p)
		}
	}
	return out
}

// AddPunishment appends a punishment. Names must be unique.
func (c *Catalog) AddPunishment(p types.PunishmentDef) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("punishment name is required")
	}
	if _, ok := c.Punishment(p.Name); ok {
		return fmt.Errorf("punishment %q already exists", p.Name)
	}
	c.Punishments = append(c.Punishments, p)
	return nil
}

// Pet looks up a pet template by name.
func (c *Catalog) Pet(name string) (types.PetDef, bool) {
	for _, p := range c.Pets {
		if p.Name == name {
			return p, true
		}
	}
	return types.PetDef{}, false
}

// PetNames lists pet names in catalog order.
func (c *Catalog) PetNames() []string {
	names := make([]string, len(c.Pets))
	for i, p := range c.Pets {
		names[i] = p.Name
	}
	return names
}

// GearTemplate looks up a gear template by base name across all slots.
func (c *Catalog) GearTemplate(base string) (types.GearDef, bool) {
	for _, slot := range c.Slots {
		for _, g := range c.Gear[slot] {
			if g.Name == base {
				return g, true
			}
		}
	}
	if base == LegendaryHelmet.Name {
		return LegendaryHelmet, true
	}
	return types.GearDef{}, false
}

// Title looks up a title by name.
func (c *Catalog) Title(name string) (types.TitleDef, bool) {
	for _, t := range c.Titles {
		if t.Name == name {
			return t, true
		}
	}
	return types.TitleDef{}, false
}

// Achievement looks up an achievement description by key.
func (c *Catalog) Achievement(key string) (types.AchievementDef, bool) {
	for _, a := range c.Achievements {
		if a.Key == key {
			return a, true
		}
	}
	return types.AchievementDef{}, false
}

// TranscendRequirement returns the XP needed for the next transcend.
// Counts beyond the table use the highest entry.
func (c *Catalog) TranscendRequirement(count int) int {
	if req, ok := c.TranscendReq[count]; ok {
		return req
	}
	maxKey := -1
	for k := range c.TranscendReq {
		if k > maxKey {
			maxKey = k
		}
	}
	return c.TranscendReq[maxKey]
}

// ExercisesFor returns the templates for a skill at a difficulty.
func (c *Catalog) ExercisesFor(skill, difficulty string) []types.ExerciseDef {
	var out []types.ExerciseDef
	for _, ex := range c.Exercises[skill] {
		if ex.Difficulty == difficulty {
			out = append(out, ex)
		}
	}
	return out
}

// AddExercise appends an exercise template for its skill.
func (c *Catalog) AddExercise(ex types.ExerciseDef) {
	if c.Exercises == nil {
		c.Exercises = map[string][]types.ExerciseDef{}
	}
	c.Exercises[ex.Skill] = append(c.Exercises[ex.Skill], ex)
}

// SideQuest looks up a side quest template by name.
func (c *Catalog) SideQuest(name string) (types.SideQuestDef, bool) {
	for _, sq := range c.SideQuests {
		if sq.Name == name {
			return sq, true
		}
	}
	return types.SideQuestDef{}, false
}

// Merge folds loaded content into the catalog. Duplicate punishment and
// side quest names are skipped and reported.
func (c *Catalog) Merge(content *Content) []string {
	if content == nil {
		return nil
	}
	var skipped []string
	for _, p := range content.Punishments {
		if err := c.AddPunishment(p); err != nil {
			skipped = append(skipped, err.Error())
		}
	}
	for _, ex := range content.Exercises {
		c.AddExercise(ex)
	}
	for _, sq := range content.SideQuests {
		if _, ok := c.SideQuest(sq.Name); ok {
			skipped = append(skipped, fmt.Sprintf("side quest %q already exists", sq.Name))
			continue
		}
		c.SideQuests = append(c.SideQuests, sq)
	}
	if c.Activities == nil && len(content.Activities) > 0 {
		c.Activities = map[string][]string{}
	}
	for cat, acts := range content.Activities {
		c.Activities[cat] = append(c.Activities[cat], acts...)
	}
	return skipped
}
