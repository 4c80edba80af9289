// Package save implements JSON serialization of the player record and the
// stores that persist it.
package save

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nathoo/lifequest/engine/state"
	"github.com/nathoo/lifequest/types"
)

// ErrNoSave is returned by a Store when no record has been written yet.
var ErrNoSave = errors.New("no save record")

// ErrEmpty is returned by Decode for a zero-length or blank record.
var ErrEmpty = errors.New("save record is empty")

// Encode serializes the player record to indented JSON.
func Encode(p *types.Player) ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}

// Decode parses a player record onto a fresh default player, so fields
// missing from older records keep their defaults.
func Decode(data []byte, today time.Time, skills []string) (*types.Player, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmpty
	}
	p := state.NewPlayer(today, skills)
	// Skills present in the record replace the defaults entirely.
	p.Skills = nil
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("decode save: %w", err)
	}
	normalize(p, today, skills)
	return p, nil
}

// normalize ensures collections are never nil after load and restores
// invariants older records may violate.
func normalize(p *types.Player, today time.Time, skills []string) {
	day := state.DateString(today)
	if p.Skills == nil {
		p.Skills = map[string]types.Skill{}
		for _, s := range skills {
			p.Skills[s] = types.Skill{LastUpdated: day}
		}
	}
	for name, sk := range p.Skills {
		if sk.LastUpdated == "" {
			sk.LastUpdated = day
			p.Skills[name] = sk
		}
	}
	if p.Pets == nil {
		p.Pets = []string{}
	}
	if p.PetStats == nil {
		p.PetStats = map[string]types.PetProgress{}
	}
	if p.Quests == nil {
		p.Quests = []types.Quest{}
	}
	if p.PetCooldowns == nil {
		p.PetCooldowns = map[string]time.Time{}
	}
	if p.PlayCooldowns == nil {
		p.PlayCooldowns = map[string]time.Time{}
	}
	if p.DailyTasks == nil {
		p.DailyTasks = map[string]bool{}
	}
	if p.Gear == nil {
		p.Gear = map[string]*types.GearItem{}
	}
	for _, slot := range state.DefaultSlots {
		if _, ok := p.Gear[slot]; !ok {
			p.Gear[slot] = nil
		}
	}
	if p.Inventory == nil {
		p.Inventory = []types.GearItem{}
	}
	if p.Achievements == nil {
		p.Achievements = []string{}
	}
	if p.CustomPunishments == nil {
		p.CustomPunishments = []types.PunishmentDef{}
	}
	if !state.HasTitle(p, "Novice") {
		p.UnlockedTitles = append([]string{"Novice"}, p.UnlockedTitles...)
	}
	if p.CoinGainMultiplier < 1.0 {
		p.CoinGainMultiplier = 1.0
	}
	if p.LastDailyResetDate == "" {
		p.LastDailyResetDate = day
	}
	if p.Corruption > p.CorruptionPeak {
		p.CorruptionPeak = p.Corruption
	}
	fillBaseNames(p)
}

// fillBaseNames backfills base names on items written before they were stored.
func fillBaseNames(p *types.Player) {
	for _, it := range state.AllGear(p) {
		if it.BaseName == "" {
			it.BaseName = state.StripDecorations(it.Name)
		}
		if !it.Transcended {
			it.ExtraEffect = nil
		}
	}
}
