package state

import (
	"testing"
	"time"

	"github.com/nathoo/lifequest/types"
)

var testDay = time.Date(2025, time.March, 10, 9, 30, 0, 0, time.UTC)

func TestNewPlayer(t *testing.T) {
	p := NewPlayer(testDay, []string{"Strength", "Faith"})
	if p.Title != "Novice" {
		t.Errorf("Title = %q, want Novice", p.Title)
	}
	if p.CoinGainMultiplier != 1.0 {
		t.Errorf("CoinGainMultiplier = %v, want 1.0", p.CoinGainMultiplier)
	}
	if !HasTitle(p, "Novice") {
		t.Error("Novice should be unlocked")
	}
	if p.LastDailyResetDate != "2025-03-10" {
		t.Errorf("LastDailyResetDate = %q", p.LastDailyResetDate)
	}
	if got := p.Skills["Faith"].LastUpdated; got != "2025-03-10" {
		t.Errorf("Faith.LastUpdated = %q", got)
	}
	if len(p.Gear) != 4 {
		t.Errorf("got %d slots, want 4", len(p.Gear))
	}
}

func TestDecorationsRoundTrip(t *testing.T) {
	bases := []string{"Helmet of Wisdom", "Orb of Insight", "Boots +Speed", "Transcendental Robe"}
	for _, base := range bases {
		for lvl := 0; lvl <= 12; lvl += 3 {
			for _, tr := range []bool{false, true} {
				name := DisplayName(base, lvl, tr)
				if got := StripDecorations(name); got != base {
					t.Errorf("StripDecorations(%q) = %q, want %q", name, got, base)
				}
				if got := StripDecorations(StripDecorations(name)); got != base {
					t.Errorf("strip not idempotent for %q", name)
				}
			}
		}
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		lvl  int
		tr   bool
		want string
	}{
		{0, false, "Orb of Insight"},
		{2, false, "Orb of Insight +2"},
		{0, true, "Transcended Orb of Insight"},
		{4, true, "Transcended Orb of Insight +4"},
	}
	for _, tt := range tests {
		if got := DisplayName("Orb of Insight", tt.lvl, tt.tr); got != tt.want {
			t.Errorf("DisplayName(%d, %v) = %q, want %q", tt.lvl, tt.tr, got, tt.want)
		}
	}
}

func TestNewGearItemCopies(t *testing.T) {
	def := types.GearDef{
		Name:         "Helmet of Wisdom",
		Slot:         "Helmet",
		Buff:         types.Buff{Type: types.EffectXPGain, Value: 0.05},
		Requirements: map[string]int{"Intellect": 300},
	}
	a := NewGearItem(def)
	b := NewGearItem(def)
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("IDs should be unique and non-empty: %q %q", a.ID, b.ID)
	}
	a.Requirements["Intellect"] = 1
	if def.Requirements["Intellect"] != 300 {
		t.Error("requirements map shared with template")
	}
	if a.BaseName != def.Name {
		t.Errorf("BaseName = %q", a.BaseName)
	}
}

func TestFindItem(t *testing.T) {
	p := NewPlayer(testDay, nil)
	p.Inventory = append(p.Inventory, types.GearItem{Name: "Boots of Speed", Slot: "Boots"})
	p.Gear["Weapon"] = &types.GearItem{Name: "Orb of Insight +1", Slot: "Weapon"}

	it, loc, ok := FindItem(p, "Boots of Speed")
	if !ok || loc.Equipped() || loc.Index != 0 || it.Slot != "Boots" {
		t.Errorf("inventory lookup = %v %+v %v", it, loc, ok)
	}
	it, loc, ok = FindItem(p, "Orb of Insight +1")
	if !ok || !loc.Equipped() || loc.Slot != "Weapon" {
		t.Errorf("equipped lookup = %v %+v %v", it, loc, ok)
	}
	if _, _, ok := FindItem(p, "Orb of Insight"); ok {
		t.Error("lookup should match the exact display name")
	}
	if n := len(AllGear(p)); n != 2 {
		t.Errorf("AllGear = %d items, want 2", n)
	}
}

func TestTitles(t *testing.T) {
	p := NewPlayer(testDay, nil)
	if !UnlockTitle(p, "Sage") {
		t.Fatal("first unlock should succeed")
	}
	if UnlockTitle(p, "Sage") {
		t.Error("second unlock should report false")
	}
	p.ActiveTitle = "Sage"
	RemoveTitle(p, "Sage")
	if HasTitle(p, "Sage") || p.ActiveTitle != "" {
		t.Errorf("RemoveTitle left %v active=%q", p.UnlockedTitles, p.ActiveTitle)
	}
}

func TestDaysBetween(t *testing.T) {
	late := time.Date(2025, time.March, 10, 23, 59, 0, 0, time.UTC)
	early := time.Date(2025, time.March, 13, 0, 1, 0, 0, time.UTC)
	if got := DaysBetween(late, early); got != 3 {
		t.Errorf("DaysBetween = %d, want 3", got)
	}
	if got := DaysBetween(early, early); got != 0 {
		t.Errorf("same day = %d, want 0", got)
	}
}

func TestEndOfDay(t *testing.T) {
	got := EndOfDay(testDay)
	want := time.Date(2025, time.March, 10, 23, 59, 59, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("EndOfDay = %v, want %v", got, want)
	}
}
