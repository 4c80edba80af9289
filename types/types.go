// Package types defines the shared data structures for the lifequest engine.
// This package contains only type definitions and enum constants, no logic.
package types

import "time"

// EffectKind names a fractional modifier carried by gear buffs and extra effects.
// The string values are the keys stored in save records.
type EffectKind string

const (
	EffectXPGain              EffectKind = "xp_gain"
	EffectCoinGain            EffectKind = "coin_gain"
	EffectPunishmentReduction EffectKind = "punishment_reduction"
	EffectCorruptionReduction EffectKind = "corruption_reduction"
	EffectDailyStreakChance   EffectKind = "daily_streak_chance"
	EffectQuestSpeed          EffectKind = "quest_speed"
	EffectSkillXPBonus        EffectKind = "skill_xp_bonus"
	EffectStrengthXPGain      EffectKind = "strength_xp_gain"
	EffectEnduranceXPGain     EffectKind = "endurance_xp_gain"
	EffectDurabilityXPGain    EffectKind = "durability_xp_gain"
	EffectIntellectXPGain     EffectKind = "intellect_xp_gain"
	EffectFaithXPGain         EffectKind = "faith_xp_gain"
)

// ShopEffect is what a shop item does when bought.
type ShopEffect string

const (
	ShopXPBoost              ShopEffect = "xp_boost"
	ShopAddCoins             ShopEffect = "add_coins"
	ShopAddPetFood           ShopEffect = "add_pet_food"
	ShopPunishmentMitigation ShopEffect = "punishment_mitigation"
	ShopAddPetEgg            ShopEffect = "add_pet_egg"
	ShopGainSkill            ShopEffect = "gain_skill"
	ShopXPMultiplier         ShopEffect = "xp_multiplier"
	ShopCoinMultiplier       ShopEffect = "coin_multiplier"
	ShopUnlockTitle          ShopEffect = "unlock_title"
	ShopAddGear              ShopEffect = "add_gear"
)

// SpecialEffect is the rare extra consequence a punishment can roll.
type SpecialEffect string

const (
	SpecialNone           SpecialEffect = ""
	SpecialPetLoss        SpecialEffect = "pet_loss"
	SpecialTitleLoss      SpecialEffect = "title_loss"
	SpecialSkillDecay     SpecialEffect = "skill_decay"
	SpecialCorruptionGain SpecialEffect = "corruption_gain"
	SpecialResetStreak    SpecialEffect = "reset_streak"
	SpecialXPBoostLoss    SpecialEffect = "xp_boost_loss"
)

// PenaltyKind is one of the penalties drawn when a main quest goes overdue.
type PenaltyKind string

const (
	PenaltySkillLoss PenaltyKind = "skill_loss"
	PenaltyPetLoss   PenaltyKind = "pet_loss"
	PenaltyTask      PenaltyKind = "task"
	PenaltyCoinLoss  PenaltyKind = "coin_loss"
	PenaltyXPLoss    PenaltyKind = "xp_loss"
)

// PetBenefitKind is the stat a pet improves. Skill benefits use the
// "skill_<name>" form, e.g. "skill_durability".
type PetBenefitKind string

const (
	BenefitXP         PetBenefitKind = "xp"
	BenefitCoin       PetBenefitKind = "coin"
	BenefitPunishment PetBenefitKind = "punishment"
	BenefitCorruption PetBenefitKind = "corruption"
)

// QuestCategory selects a main-quest generator.
type QuestCategory string

const (
	CategoryTraining  QuestCategory = "Training"
	CategoryIntellect QuestCategory = "Intellect Conditioning"
	CategoryFaith     QuestCategory = "Faith Goal"
	CategoryLongTerm  QuestCategory = "Long-Term Project"
)

// QuestType distinguishes main quests from daily side quests.
type QuestType string

const (
	QuestMain QuestType = "main"
	QuestSide QuestType = "side"
)

// Intent is a parsed command line.
type Intent struct {
	Verb    string
	Args    []string          // positional arguments, quotes removed
	Options map[string]string // key=value arguments, keys lowercased
}

// Event is emitted by an operation for trace output.
type Event struct {
	Type string
	Data map[string]any
}

// Result is the outcome of a single engine operation.
type Result struct {
	OK     bool
	Output []string
	Events []Event
}

// Skill tracks accumulated XP for one skill.
type Skill struct {
	XP          int    `json:"xp"`
	LastUpdated string `json:"last_updated"` // YYYY-MM-DD
}

// SkillReward is the skill XP granted by a quest.
type SkillReward struct {
	Skill  string `json:"skill"`
	Amount int    `json:"amount"`
}

// Quest is an active quest record.
type Quest struct {
	Name           string       `json:"name"`
	Description    string       `json:"description"`
	XPReward       int          `json:"xp_reward"`
	CoinReward     int          `json:"coin_reward"`
	SkillReward    *SkillReward `json:"skill_reward,omitempty"`
	DueDate        *time.Time   `json:"due_date,omitempty"`
	Steps          string       `json:"steps"`
	QuestType      QuestType    `json:"quest_type"`
	DurationTarget int          `json:"duration_target,omitempty"`
	WorkoutType    string       `json:"workout_type,omitempty"`
}

// Buff is the primary modifier of a gear item.
type Buff struct {
	Type  EffectKind `json:"type"`
	Value float64    `json:"value"`
}

// ExtraEffect is the secondary modifier rolled onto a transcended item.
type ExtraEffect struct {
	Type  EffectKind `json:"type"`
	Value float64    `json:"value"`
	Skill string     `json:"skill,omitempty"`
}

// GearItem is an owned gear instance. It is always a copy of its template.
type GearItem struct {
	ID           string         `json:"id,omitempty"`
	Name         string         `json:"name"`
	BaseName     string         `json:"base_name,omitempty"`
	Slot         string         `json:"type"`
	Buff         Buff           `json:"buff"`
	Requirements map[string]int `json:"requirements,omitempty"`
	EnchantLevel int            `json:"enchant_level"`
	Transcended  bool           `json:"transcended"`
	ExtraEffect  *ExtraEffect   `json:"extra_effect,omitempty"`
}

// PetProgress is the per-player level state of an owned pet.
type PetProgress struct {
	Level      int `json:"level"`
	XP         int `json:"xp"`
	XPToEvolve int `json:"xp_to_evolve"`
}

// Player is the complete mutable save record.
type Player struct {
	XP                          int                    `json:"xp"`
	Coins                       int                    `json:"coins"`
	Title                       string                 `json:"title"`
	ActiveTitle                 string                 `json:"active_title"`
	CurrentLevel                int                    `json:"current_level"`
	PunishmentSum               int                    `json:"punishment_sum"`
	XPBoostPending              int                    `json:"xp_boost_pending"`
	CoinGainMultiplier          float64                `json:"coin_gain_multiplier"`
	PunishmentMitigationPending bool                   `json:"punishment_mitigation_pending"`
	Pets                        []string               `json:"pets"`
	PetStats                    map[string]PetProgress `json:"pet_stats"`
	Quests                      []Quest                `json:"quests"`
	DailyTasksCompleted         int                    `json:"daily_tasks_completed"`
	LastDailyResetDate          string                 `json:"last_daily_reset_date"`
	Skills                      map[string]Skill       `json:"skills"`
	PetCooldowns                map[string]time.Time   `json:"pet_cooldowns"`
	PlayCooldowns               map[string]time.Time   `json:"play_cooldowns"`
	TranscendenceBuffEndTime    *time.Time             `json:"transcendence_buff_end_time"`
	DailyTasks                  map[string]bool        `json:"daily_tasks"`
	PetFood                     int                    `json:"pet_food"`
	Corruption                  int                    `json:"corruption"`
	CorruptionPeak              int                    `json:"corruption_peak"`
	DailyStreak                 int                    `json:"daily_streak"`
	UnlockedTitles              []string               `json:"unlocked_titles"`
	Gear                        map[string]*GearItem   `json:"gear"`
	Inventory                   []GearItem             `json:"inventory"`
	Achievements                []string               `json:"achievements"`
	TranscendenceCount          int                    `json:"transcendence_count"`
	MainQuestsCompleted         int                    `json:"main_quests_completed"`
	CustomPunishments           []PunishmentDef        `json:"custom_punishments"`
	LastWorkoutType             string                 `json:"last_workout_type"`
}

// LevelDef is one row of the level table.
type LevelDef struct {
	Label       string // e.g. "Milestone 1: 25 XP - Beginner"
	Title       string
	XPRequired  int
	Description string
	Milestone   bool
}

// ShopItemDef is a purchasable item.
type ShopItemDef struct {
	Name            string
	Emoji           string
	Description     string
	Cost            int
	Effect          ShopEffect
	Amount          int
	Skill           string
	DurationMinutes int
}

// PunishmentDef is a habit punishment. Custom entries are persisted in the save record.
type PunishmentDef struct {
	Name          string        `json:"name"`
	Severity      string        `json:"severity"`
	Punishment    int           `json:"punishment"`
	XPPenalty     int           `json:"xp_penalty"`
	CoinPenalty   int           `json:"coin_penalty"`
	SpecialChance float64       `json:"special_chance"`
	SpecialEffect SpecialEffect `json:"special_effect,omitempty"`
	Custom        bool          `json:"custom,omitempty"`
}

// PetBenefit describes what a pet grants when petted.
type PetBenefit struct {
	Kind      PetBenefitKind
	BaseValue int
}

// PetDef is an immutable pet template.
type PetDef struct {
	Name        string
	Type        string
	BenefitDesc string // contains "{value}"
	Benefit     PetBenefit
	Price       int
	XPToEvolve  int
}

// GearDef is an immutable gear template.
type GearDef struct {
	Name         string
	Slot         string
	Buff         Buff
	Requirements map[string]int
}

// TitleDef is an unlockable title and its effect text.
type TitleDef struct {
	Name   string
	Effect string
}

// AchievementDef describes an achievement for display.
type AchievementDef struct {
	Key         string
	Name        string
	Description string
	RewardText  string
}

// ExerciseDef is a training template.
type ExerciseDef struct {
	Name           string
	Skill          string
	Difficulty     string
	BaseXP         int
	BaseCoin       int
	WorkoutType    string
	DurationTarget int
}

// SideQuestDef is a side quest template.
type SideQuestDef struct {
	Name        string
	Description string
	XPReward    int
	CoinReward  int
}

// ArcDef is a seasonal arc.
type ArcDef struct {
	Name   string
	Quote  string
	Months []time.Month
}

// ArcInfo is the arc currently shown to the player.
type ArcInfo struct {
	Name    string
	Quote   string
	EndDate string
	Surge   bool
}
