package save

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathoo/lifequest/engine/state"
	"github.com/nathoo/lifequest/types"
)

var (
	today  = time.Date(2025, time.June, 2, 8, 0, 0, 0, time.UTC)
	skills = []string{"Strength", "Endurance", "Durability", "Intellect", "Faith"}
)

func TestRoundTrip(t *testing.T) {
	p := state.NewPlayer(today, skills)
	p.XP = 420
	p.Coins = 77
	p.Title = "Advanced Master"
	p.ActiveTitle = "Sage"
	p.UnlockedTitles = append(p.UnlockedTitles, "Sage")
	p.Pets = []string{"Dragonling"}
	p.PetStats["Dragonling"] = types.PetProgress{Level: 2, XP: 10, XPToEvolve: 150}
	end := today.Add(30 * time.Minute)
	p.TranscendenceBuffEndTime = &end
	due := state.EndOfDay(today)
	p.Quests = append(p.Quests, types.Quest{
		Name:        "Spiritual Duty",
		XPReward:    10,
		CoinReward:  10,
		SkillReward: &types.SkillReward{Skill: "Faith", Amount: 2},
		DueDate:     &due,
		QuestType:   types.QuestMain,
	})
	p.Gear["Weapon"] = &types.GearItem{
		ID: "abc", Name: "Transcended Orb of Insight +2", BaseName: "Orb of Insight", Slot: "Weapon",
		Buff:         types.Buff{Type: types.EffectIntellectXPGain, Value: 0.18},
		EnchantLevel: 2, Transcended: true,
		ExtraEffect: &types.ExtraEffect{Type: types.EffectSkillXPBonus, Value: 0.05, Skill: "Faith"},
	}

	data, err := Encode(p)
	require.NoError(t, err)

	got, err := Decode(data, today.AddDate(0, 0, 3), skills)
	require.NoError(t, err)

	assert.Equal(t, p.XP, got.XP)
	assert.Equal(t, p.ActiveTitle, got.ActiveTitle)
	assert.Equal(t, p.PetStats, got.PetStats)
	assert.True(t, got.TranscendenceBuffEndTime.Equal(end))
	require.Len(t, got.Quests, 1)
	assert.Equal(t, "Faith", got.Quests[0].SkillReward.Skill)
	assert.True(t, got.Quests[0].DueDate.Equal(due))
	require.NotNil(t, got.Gear["Weapon"])
	assert.Equal(t, "Faith", got.Gear["Weapon"].ExtraEffect.Skill)
	assert.Nil(t, got.Gear["Helmet"])
	assert.Equal(t, "2025-06-02", got.LastDailyResetDate)
}

func TestDecodeFillsDefaults(t *testing.T) {
	got, err := Decode([]byte(`{"xp": 30, "coins": 4, "unlocked_titles": ["Sage"], "inventory": [{"name": "Boots of Speed +1", "type": "Boots"}]}`), today, skills)
	require.NoError(t, err)

	assert.Equal(t, 30, got.XP)
	assert.Equal(t, 1.0, got.CoinGainMultiplier)
	assert.Equal(t, "Novice", got.Title)
	assert.Contains(t, got.UnlockedTitles, "Novice")
	assert.Contains(t, got.UnlockedTitles, "Sage")
	assert.Len(t, got.Skills, 5)
	assert.NotNil(t, got.PetCooldowns)
	assert.Len(t, got.Gear, 4)
	assert.Equal(t, "Boots of Speed", got.Inventory[0].BaseName)
}

func TestDecodeKeepsRecordSkills(t *testing.T) {
	got, err := Decode([]byte(`{"skills": {"Chess": {"xp": 12, "last_updated": "2025-05-01"}}}`), today, skills)
	require.NoError(t, err)
	assert.Len(t, got.Skills, 1)
	assert.Equal(t, 12, got.Skills["Chess"].XP)
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode(nil, today, skills)
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = Decode([]byte("   \n"), today, skills)
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = Decode([]byte("{not json"), today, skills)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrEmpty))
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "save_game.json")
	fs := NewFileStore(path)

	_, err := fs.Load(ctx)
	assert.ErrorIs(t, err, ErrNoSave)

	require.NoError(t, fs.Save(ctx, []byte(`{"xp": 1}`), "award: 1 xp"))
	require.NoError(t, fs.Save(ctx, []byte(`{"xp": 2}`), "award: 1 xp"))

	data, err := fs.Load(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"xp": 2}`, string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files should not be left behind")
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	store, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "lifequest.db"))
	require.NoError(t, err)
	defer store.Close()

	clock := today
	store.now = func() time.Time { clock = clock.Add(time.Second); return clock }

	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, ErrNoSave)

	require.NoError(t, store.Save(ctx, []byte(`{"xp": 10}`), "quest: completed Spiritual Duty"))
	require.NoError(t, store.Save(ctx, []byte(`{"xp": 25}`), "shop"))

	data, err := store.Load(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"xp": 25}`, string(data))

	journal, err := store.Journal(ctx, 10)
	require.NoError(t, err)
	require.Len(t, journal, 2)
	assert.Equal(t, "shop", journal[0].Kind)
	assert.Equal(t, "", journal[0].Summary)
	assert.Equal(t, "quest", journal[1].Kind)
	assert.Equal(t, "completed Spiritual Duty", journal[1].Summary)
	assert.True(t, journal[0].At.After(journal[1].At))
}

func TestMigrateIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "lifequest.db")
	s1, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s1.Save(ctx, []byte(`{}`), "init"))
	require.NoError(t, s1.Close())

	s2, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer s2.Close()
	data, err := s2.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestActionsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom_actions.json")

	actions, err := LoadActions(path)
	require.NoError(t, err)
	assert.Empty(t, actions)

	require.NoError(t, WriteActions(path, []string{"Meal prep", "Cold shower"}))
	actions, err = LoadActions(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Meal prep", "Cold shower"}, actions)

	require.NoError(t, os.WriteFile(path, []byte("oops"), 0o644))
	actions, err = LoadActions(path)
	assert.Error(t, err)
	assert.Empty(t, actions)
}

func TestMemoryStoreError(t *testing.T) {
	m := &MemoryStore{Err: errors.New("disk full")}
	assert.Error(t, m.Save(context.Background(), []byte("{}"), "x"))
	_, err := m.Load(context.Background())
	assert.ErrorIs(t, err, ErrNoSave)
}
