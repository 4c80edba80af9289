package catalog

import (
	"strings"
	"time"

	"github.com/nathoo/lifequest/types"
)

// Skill names registered on every fresh player.
const (
	SkillStrength   = "Strength"
	SkillEndurance  = "Endurance"
	SkillDurability = "Durability"
	SkillIntellect  = "Intellect"
	SkillFaith      = "Faith"
)

// Gear slots in display order.
const (
	SlotHelmet = "Helmet"
	SlotChest  = "Chest"
	SlotWeapon = "Weapon"
	SlotBoots  = "Boots"
)

// BaseTitle is always unlocked and can never be lost.
const BaseTitle = "Novice"

func level(label, title string, xp int, desc string) types.LevelDef {
	return types.LevelDef{
		Label:       label,
		Title:       title,
		XPRequired:  xp,
		Description: desc,
		Milestone:   strings.HasPrefix(label, "Milestone"),
	}
}

func defaultLevels() []types.LevelDef {
	return []types.LevelDef{
		level("Level 1: 0 XP - Novice", "Novice", 0, "Starting point."),
		level("Milestone 1: 25 XP - Beginner", "Beginner", 25, "First steps towards mastery."),
		level("Milestone 2: 50 XP - Apprentice", "Apprentice", 50, "Learning the ropes."),
		level("Milestone 3: 100 XP - Junior Apprentice", "Junior Apprentice", 100, "Growing stronger."),
		level("Milestone 4: 125 XP - Journeyman", "Journeyman", 125, "A skilled practitioner."),
		level("Level 2: 150 XP - Skilled Journeyman", "Skilled Journeyman", 150, "Ready for bigger challenges."),
		level("Milestone 5: 200 XP - Expert", "Expert", 200, "Deepening expertise."),
		level("Milestone 6: 250 XP - Accomplished Expert", "Accomplished Expert", 250, "Mastering the craft."),
		level("Level 3: 300 XP - Master", "Master", 300, "True mastery achieved."),
		level("Milestone 7: 400 XP - Advanced Master", "Advanced Master", 400, "Refining skills."),
		level("Milestone 8: 500 XP - Grandmaster", "Grandmaster", 500, "Beyond conventional limits."),
		level("Milestone 9: 600 XP - Renowned Grandmaster", "Renowned Grandmaster", 600, "A name whispered with respect."),
		level("Level 4: 750 XP - Legend", "Legend", 750, "Entering the annals of history."),
		level("Milestone 10: 1000 XP - Living Legend", "Living Legend", 1000, "An icon among peers."),
		level("Milestone 11: 1100 XP - Immortal", "Immortal", 1100, "Transcending mortal limitations."),
		level("Milestone 12: 1250 XP - Ascended Immortal", "Ascended Immortal", 1250, "Touched by the divine."),
		level("Level 5: 1500 XP - Divine Being", "Divine Being", 1500, "A true deity among mortals."),
		level("Milestone 13: 2000 XP - Transcendent Being", "Transcendent Being", 2000, "Beyond form and matter."),
		level("Level 6: 2500 XP - Supreme", "Supreme", 2500, "Peak existence achieved."),
		level("Milestone 14: 3000 XP - Superior Being", "Superior Being", 3000, "Surpassing all others."),
		level("Milestone 15: 3500 XP - Infinite", "Infinite", 3500, "Boundless power."),
		level("Level 7: 4000 XP - Eternal", "Eternal", 4000, "Existing beyond time."),
		level("Milestone 16: 5000 XP - Infinite Mastery", "Infinite Mastery", 5000, "Mastery without end."),
		level("Milestone 17: 6000 XP - Cosmic", "Cosmic", 6000, "Connected to the cosmos."),
		level("Level 8: 7000 XP - Universal", "Universal", 7000, "Influencing the universe."),
		level("Milestone 18: 8000 XP - Cosmic Overlord", "Cosmic Overlord", 8000, "Ruler of the stars."),
		level("Milestone 19: 9000 XP - Universal Being", "Universal Being", 9000, "Embodiment of the universe."),
		level("Level 9: 10000 XP - Limitless-Being", "Limitless-Being", 10000, "No boundaries, no limits."),
		level("Milestone 20: 12000 XP - Unbounded", "Unbounded", 12000, "Completely free from constraints."),
		level("Milestone 21: 15000 XP - Infinite Divinity", "Infinite Divinity", 15000, "Possessing endless divine power."),
		level("Level 10: 20000 XP - 'The Honored one'", "'The Honored one'", 20000, "The ultimate title."),
	}
}

// Transcendence count -> XP required for the next transcend.
func defaultTranscendRequirements() map[int]int {
	return map[int]int{
		0: 1500, 1: 2000, 2: 2500, 3: 3000, 4: 3500,
		5: 4000, 6: 5000, 7: 6000, 8: 7000, 9: 8000,
		10: 9000, 11: 10000, 12: 12000, 13: 15000, 14: 20000,
	}
}

func tome(skill, emoji string) types.ShopItemDef {
	return types.ShopItemDef{
		Name:        "Skill Tome (" + skill + ")",
		Emoji:       emoji,
		Description: "Permanently increases " + skill + " by 10 XP.",
		Cost:        180,
		Effect:      types.ShopGainSkill,
		Skill:       skill,
		Amount:      10,
	}
}

func defaultShop() []types.ShopItemDef {
	return []types.ShopItemDef{
		{Name: "Small XP Boost", Emoji: "⚡️", Description: "Instantly gain 15 XP.", Cost: 30, Effect: types.ShopXPBoost, Amount: 15},
		{Name: "Coin Pouch", Emoji: "💰", Description: "Find an extra 10 coins.", Cost: 15, Effect: types.ShopAddCoins, Amount: 10},
		{Name: "Pet Food", Emoji: "🍖", Description: "One meal for your pet.", Cost: 15, Effect: types.ShopAddPetFood, Amount: 1},
		{Name: "Punishment Mitigation Potion", Emoji: "🛡️", Description: "Negates your next punishment.", Cost: 60, Effect: types.ShopPunishmentMitigation},
		{Name: "Mystery Pet Egg", Emoji: "🥚", Description: "Hatches a random new pet.", Cost: 150, Effect: types.ShopAddPetEgg},
		tome(SkillStrength, "💪"),
		tome(SkillEndurance, "🏃"),
		tome(SkillDurability, "🏋️"),
		tome(SkillIntellect, "🧠"),
		tome(SkillFaith, "🙏"),
		{Name: "XP Multiplier Potion (1hr)", Emoji: "✨", Description: "Doubles XP gain for 1 hour.", Cost: 300, Effect: types.ShopXPMultiplier, Amount: 2, DurationMinutes: 60},
		{Name: "Coin Magnet (1hr)", Emoji: "🧲", Description: "Doubles Coin gain for 1 hour.", Cost: 300, Effect: types.ShopCoinMultiplier, Amount: 2, DurationMinutes: 60},
		{Name: "Master Key", Emoji: "🗝️", Description: "Unlocks a random unobtained title.", Cost: 500, Effect: types.ShopUnlockTitle},
		{Name: "Gear Fragment Pouch", Emoji: "💎", Description: "Grants a random piece of gear.", Cost: 250, Effect: types.ShopAddGear},
	}
}

func defaultPunishments() []types.PunishmentDef {
	return []types.PunishmentDef{
		{Name: "Missed Workout", Severity: "Moderate", Punishment: 5, XPPenalty: 10, CoinPenalty: 5},
		{Name: "Binge Eating", Severity: "High", Punishment: 10, XPPenalty: 20, CoinPenalty: 10, SpecialChance: 0.1, SpecialEffect: types.SpecialPetLoss},
		{Name: "Wasted Time", Severity: "OK", Punishment: 3, XPPenalty: 5, CoinPenalty: 2},
		{Name: "Late to Bed", Severity: "OK", Punishment: 2, XPPenalty: 3, CoinPenalty: 1},
		{Name: "Skipped Reading", Severity: "Moderate", Punishment: 4, XPPenalty: 8, CoinPenalty: 4, SpecialChance: 0.05, SpecialEffect: types.SpecialTitleLoss},
		{Name: "Unhandled Stress", Severity: "High", Punishment: 7, XPPenalty: 15, CoinPenalty: 8, SpecialChance: 0.1, SpecialEffect: types.SpecialCorruptionGain},
		{Name: "Lack of Focus", Severity: "OK", Punishment: 3, XPPenalty: 5, CoinPenalty: 3, SpecialChance: 0.05, SpecialEffect: types.SpecialSkillDecay},
		{Name: "Excessive Gaming", Severity: "Terrible", Punishment: 12, XPPenalty: 30, CoinPenalty: 15, SpecialChance: 0.2, SpecialEffect: types.SpecialResetStreak},
		{Name: "Poor Sleep", Severity: "Moderate", Punishment: 6, XPPenalty: 12, CoinPenalty: 6, SpecialChance: 0.05, SpecialEffect: types.SpecialXPBoostLoss},
	}
}

// SeverityChances maps a punishment severity to the special-effect chance
// assigned to custom punishments.
var SeverityChances = map[string]float64{
	"OK":       0.05,
	"Moderate": 0.15,
	"High":     0.30,
	"Terrible": 0.50,
}

// SpecialEffects is the pool a custom punishment draws from.
var SpecialEffects = []types.SpecialEffect{
	types.SpecialPetLoss,
	types.SpecialTitleLoss,
	types.SpecialSkillDecay,
	types.SpecialCorruptionGain,
	types.SpecialResetStreak,
	types.SpecialXPBoostLoss,
}

// OverduePenalties is the pool drawn from when a main quest goes overdue.
var OverduePenalties = []types.PenaltyKind{
	types.PenaltySkillLoss,
	types.PenaltyPetLoss,
	types.PenaltyTask,
	types.PenaltyCoinLoss,
	types.PenaltyXPLoss,
}

func defaultPets() []types.PetDef {
	return []types.PetDef{
		{Name: "Dragonling", Type: "Dragon", BenefitDesc: "+{value} XP per task", Benefit: types.PetBenefit{Kind: types.BenefitXP, BaseValue: 5}, Price: 75, XPToEvolve: 100},
		{Name: "Glimmerwing", Type: "Fairy", BenefitDesc: "+{value} Coin per task", Benefit: types.PetBenefit{Kind: types.BenefitCoin, BaseValue: 1}, Price: 60, XPToEvolve: 80},
		{Name: "Stone Golem", Type: "Construct", BenefitDesc: "Punishment -{value}", Benefit: types.PetBenefit{Kind: types.BenefitPunishment, BaseValue: 1}, Price: 90, XPToEvolve: 120},
		{Name: "Phoenix Hatchling", Type: "Mythical", BenefitDesc: "+{value} XP per task", Benefit: types.PetBenefit{Kind: types.BenefitXP, BaseValue: 10}, Price: 150, XPToEvolve: 150},
		{Name: "Book Wyrm", Type: "Magical", BenefitDesc: "+{value} Coin per task", Benefit: types.PetBenefit{Kind: types.BenefitCoin, BaseValue: 2}, Price: 120, XPToEvolve: 100},
		{Name: "Guardian Spirit", Type: "Ethereal", BenefitDesc: "Punishment -{value}", Benefit: types.PetBenefit{Kind: types.BenefitPunishment, BaseValue: 2}, Price: 180, XPToEvolve: 200},
		{Name: "Shadow Panther", Type: "Beast", BenefitDesc: "Corruption -{value}", Benefit: types.PetBenefit{Kind: types.BenefitCorruption, BaseValue: 1}, Price: 200, XPToEvolve: 180},
		{Name: "Ironclad Beetle", Type: "Insect", BenefitDesc: "Durability Skill +{value} XP", Benefit: types.PetBenefit{Kind: "skill_durability", BaseValue: 3}, Price: 160, XPToEvolve: 140},
	}
}

func gear(name string, kind types.EffectKind, value float64, skill string, req int) types.GearDef {
	return types.GearDef{
		Name:         name,
		Buff:         types.Buff{Type: kind, Value: value},
		Requirements: map[string]int{skill: req},
	}
}

func defaultGear() map[string][]types.GearDef {
	g := map[string][]types.GearDef{
		SlotHelmet: {
			gear("Helmet of Wisdom", types.EffectXPGain, 0.05, SkillIntellect, 300),
			gear("Crown of Intellect", types.EffectXPGain, 0.10, SkillIntellect, 500),
			gear("Hood of Shadows", types.EffectPunishmentReduction, 0.02, SkillFaith, 200),
			gear("Helm of the Berserker", types.EffectStrengthXPGain, 0.10, SkillStrength, 350),
			gear("Goggles of Precision", types.EffectIntellectXPGain, 0.08, SkillIntellect, 400),
		},
		SlotChest: {
			gear("Aegis of Resilience", types.EffectPunishmentReduction, 0.05, SkillDurability, 300),
			gear("Robe of the Archmage", types.EffectXPGain, 0.08, SkillIntellect, 450),
			gear("Cuirass of Valor", types.EffectPunishmentReduction, 0.07, SkillDurability, 400),
			gear("Vest of the Wind", types.EffectEnduranceXPGain, 0.10, SkillEndurance, 350),
			gear("Dragonhide Armor", types.EffectDurabilityXPGain, 0.12, SkillDurability, 500),
		},
		SlotWeapon: {
			gear("Blade of Prosperity", types.EffectCoinGain, 0.1, SkillStrength, 250),
			gear("Staff of Enlightenment", types.EffectXPGain, 0.07, SkillIntellect, 300),
			gear("Hammer of Fortune", types.EffectCoinGain, 0.15, SkillStrength, 400),
			gear("Orb of Insight", types.EffectIntellectXPGain, 0.15, SkillIntellect, 500),
			gear("Sacred Relic", types.EffectFaithXPGain, 0.12, SkillFaith, 450),
		},
		SlotBoots: {
			gear("Boots of Speed", types.EffectQuestSpeed, 0.05, SkillEndurance, 200),
			gear("Greaves of Stability", types.EffectPunishmentReduction, 0.03, SkillDurability, 250),
			gear("Sandals of Swiftness", types.EffectQuestSpeed, 0.08, SkillEndurance, 300),
			gear("Boots of Endurance", types.EffectEnduranceXPGain, 0.07, SkillEndurance, 350),
			gear("Treads of the Mighty", types.EffectStrengthXPGain, 0.05, SkillStrength, 300),
		},
	}
	for slot, defs := range g {
		for i := range defs {
			defs[i].Slot = slot
		}
	}
	return g
}

// LegendaryHelmet is granted by the gear collector achievement. It has no
// requirements and is not part of the random drop pool.
var LegendaryHelmet = types.GearDef{
	Name: "Helmet of Legends",
	Slot: SlotHelmet,
	Buff: types.Buff{Type: types.EffectXPGain, Value: 0.20},
}

func defaultExtraEffects() []types.ExtraEffect {
	return []types.ExtraEffect{
		{Type: types.EffectXPGain, Value: 0.03},
		{Type: types.EffectCoinGain, Value: 0.03},
		{Type: types.EffectPunishmentReduction, Value: 0.01},
		{Type: types.EffectSkillXPBonus, Value: 0.05, Skill: SkillStrength},
		{Type: types.EffectSkillXPBonus, Value: 0.05, Skill: SkillEndurance},
		{Type: types.EffectSkillXPBonus, Value: 0.05, Skill: SkillDurability},
		{Type: types.EffectSkillXPBonus, Value: 0.05, Skill: SkillIntellect},
		{Type: types.EffectSkillXPBonus, Value: 0.05, Skill: SkillFaith},
		{Type: types.EffectCorruptionReduction, Value: 0.01},
		{Type: types.EffectDailyStreakChance, Value: 0.02},
	}
}

// Title names with gameplay effects.
const (
	TitleWorkhorse        = "Workhorse"
	TitleProdigy          = "Prodigy"
	TitleResilient        = "Resilient"
	TitleDiligent         = "Diligent"
	TitleLegendaryQuester = "Legendary Quester"
	TitleAscended         = "Ascended"
	TitleSage             = "Sage"
	TitleZealot           = "Zealot"
	TitleIndomitable      = "Indomitable"
	TitleArtisan          = "Artisan"
	TitleEmpowered        = "Empowered"
)

func defaultTitles() []types.TitleDef {
	return []types.TitleDef{
		{Name: TitleWorkhorse, Effect: "Grants 10% more coins from all sources."},
		{Name: TitleProdigy, Effect: "Grants 10% more XP from all sources."},
		{Name: TitleResilient, Effect: "Reduces punishment gain by 10%."},
		{Name: TitleDiligent, Effect: "Your daily streak has a chance to not reset on failure."},
		{Name: TitleLegendaryQuester, Effect: "Grants a permanent 5% XP boost from all quests."},
		{Name: TitleAscended, Effect: "Grants a permanent +0.1 coin multiplier."},
		{Name: TitleSage, Effect: "Grants 10% more Intellect skill XP."},
		{Name: TitleZealot, Effect: "Grants 10% more Faith skill XP."},
		{Name: TitleIndomitable, Effect: "Reduces Corruption gain by 15%."},
	}
}

// Achievement keys in evaluation order.
const (
	AchQuestGrandmaster      = "quest_grandmaster"
	AchTranscendentOne       = "transcendent_one"
	AchFirstSteps            = "first_steps"
	AchPetLover              = "pet_lover"
	AchWealthyAdventurer     = "wealthy_adventurer"
	AchSkillMaster           = "skill_master"
	AchGearCollector         = "gear_collector"
	AchDailyMaster           = "daily_master"
	AchCorruptionCleanse     = "corruption_cleanse"
	AchForgeApprentice       = "forge_apprentice"
	AchMasterCrafter         = "master_crafter"
	AchTranscendedGearMaster = "transcended_gear_master"
)

func defaultAchievements() []types.AchievementDef {
	return []types.AchievementDef{
		{Key: AchQuestGrandmaster, Name: "Quest Grandmaster", Description: "Complete 20 main quests.", RewardText: "'Legendary Quester' title, permanent small XP boost for quests."},
		{Key: AchTranscendentOne, Name: "Transcendent One", Description: "Transcend 3 times.", RewardText: "'Ascended' title, permanent coin multiplier increase."},
		{Key: AchFirstSteps, Name: "First Steps", Description: "Complete your first quest.", RewardText: "50 Coins."},
		{Key: AchPetLover, Name: "Pet Lover", Description: "Own 3 pets at the same time.", RewardText: "5 Pet Food."},
		{Key: AchWealthyAdventurer, Name: "Wealthy Adventurer", Description: "Accumulate 500 coins.", RewardText: "100 bonus coins."},
		{Key: AchSkillMaster, Name: "Skill Master", Description: "Reach 100 XP in any skill.", RewardText: "A powerful skill tome for a random skill."},
		{Key: AchGearCollector, Name: "Gear Collector", Description: "Collect 5 unique pieces of gear.", RewardText: "A legendary gear piece."},
		{Key: AchDailyMaster, Name: "Daily Master", Description: "Complete 7 daily tasks in one day.", RewardText: "100 XP and a \"Diligent\" title."},
		{Key: AchCorruptionCleanse, Name: "Corruption Cleanser", Description: "Reduce corruption to 0 from a high level (20+).", RewardText: "200 XP."},
		{Key: AchForgeApprentice, Name: "Forge Apprentice", Description: "Enchant any item to +3.", RewardText: "50 coins."},
		{Key: AchMasterCrafter, Name: "Master Crafter", Description: "Enchant any item to +5.", RewardText: "200 coins and a unique \"Artisan\" title."},
		{Key: AchTranscendedGearMaster, Name: "Transcended Gear Master", Description: "Roll an extra effect on a transcended item.", RewardText: "300 coins and a powerful \"Empowered\" title."},
	}
}

func defaultArcs() []types.ArcDef {
	return []types.ArcDef{
		{Name: "Genesis Pact", Quote: "A silent oath to begin. Foundations laid in secret. Discipline signed in blood.", Months: []time.Month{time.March, time.April, time.May}},
		{Name: "Solar Forge", Quote: "The sun beats down. Sweat is currency. Skill is tempered or shattered.", Months: []time.Month{time.June, time.July, time.August}},
		{Name: "Limits Edge", Quote: "Final sprint. You're at the boundary of time, of effort, of yourself.", Months: []time.Month{time.September, time.October, time.November}},
		{Name: "Zero Flux", Quote: "Below freezing. Below distraction. The world sleeps. You sharpen in silence.", Months: []time.Month{time.December, time.January, time.February}},
	}
}

// ActivityCategories lists the intellect activity categories in display order.
var ActivityCategories = []string{"iq", "eq", "sq", "iaq", "lq", "nq"}

func defaultActivities() map[string][]string {
	return map[string][]string{
		"iq":  {"Study a new topic for 1 hour", "Complete a programming challenge", "Play a game of chess", "Do homework/assignments"},
		"eq":  {"Practice active listening with a friend", "Write down three things you are grateful for", "Meditate for 15 minutes"},
		"sq":  {"Draw or sketch for 30 minutes", "Complete a jigsaw puzzle", "Practice mental rotation exercises"},
		"iaq": {"Write in a journal for 20 minutes", "Perform a self-reflection on your week", "Identify one personal bias"},
		"lq":  {"Study a new language for 30 minutes", "Read a chapter of a book", "Learn 10 new vocabulary words"},
		"nq":  {"Spend 30 minutes in nature", "Identify 3 different types of birds or plants", "Watch a nature documentary"},
	}
}

func defaultSideQuests() []types.SideQuestDef {
	return []types.SideQuestDef{
		{Name: "Tidy Up", Description: "Clean your personal room or workspace.", XPReward: 5, CoinReward: 2},
		{Name: "Healthy Meal", Description: "Cook a healthy and nutritious breakfast.", XPReward: 5, CoinReward: 3},
		{Name: "Hydration", Description: "Drink 8 glasses of water throughout the day.", XPReward: 3, CoinReward: 1},
		{Name: "Quick Stretch", Description: "Take 10 minutes to stretch your body.", XPReward: 3, CoinReward: 1},
		{Name: "Mindful Moment", Description: "Meditate for 5 minutes without distractions.", XPReward: 4, CoinReward: 2},
		{Name: "Read a Little", Description: "Read 10 pages of any book.", XPReward: 5, CoinReward: 2},
		{Name: "Plan Tomorrow", Description: "Outline your top 3 priorities for the next day.", XPReward: 4, CoinReward: 2},
		{Name: "Quick Workout", Description: "Do 15 minutes of light exercise (e.g., walking).", XPReward: 6, CoinReward: 3},
		{Name: "Declutter Digital", Description: "Clean up your computer desktop or phone apps.", XPReward: 4, CoinReward: 2},
		{Name: "Learn a New Word", Description: "Learn and use a new vocabulary word today.", XPReward: 3, CoinReward: 1},
		{Name: "Express Gratitude", Description: "Tell someone you appreciate them.", XPReward: 5, CoinReward: 3},
	}
}

func defaultDailyTasks() []string {
	return []string{
		"Wash your face", "Brush your teeth", "Make your bed", "Tidy room for 5 mins",
		"Plan your day", "Workout", "Work on a project",
	}
}

// DifficultyMultipliers scale endurance rewards.
var DifficultyMultipliers = map[string]float64{
	"Easy":           1.0,
	"Mediocre":       1.2,
	"Difficult":      1.5,
	"Very Difficult": 2.0,
}

// Difficulties in ascending order.
var Difficulties = []string{"Easy", "Mediocre", "Difficult", "Very Difficult"}

// WorkoutTypes are the body-part groups used by strength and durability quests.
var WorkoutTypes = []string{"Upper", "Lower", "Core", "Full"}
