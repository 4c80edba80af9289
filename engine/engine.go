// Package engine applies player intents to the single player record:
// progression, quests, the shop and forge, pets, punishments and the
// daily lifecycle. Every public operation persists through the Store.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/nathoo/lifequest/engine/catalog"
	"github.com/nathoo/lifequest/engine/save"
	"github.com/nathoo/lifequest/engine/state"
	"github.com/nathoo/lifequest/types"
)

// Engine holds the catalog and the mutable player record.
type Engine struct {
	Catalog *catalog.Catalog
	Player  *types.Player
	RNG     *RNG
	Now     func() time.Time
	Store   save.Store
	Log     *slog.Logger

	ActionsPath   string
	CustomActions []string

	pending []types.Event
}

// Options configures a new Engine. Zero values select defaults: no
// persistence, a time-based seed, the wall clock and a discarding logger.
type Options struct {
	Store       save.Store
	Seed        int64
	Now         func() time.Time
	Logger      *slog.Logger
	ActionsPath string
}

// New creates an engine with a fresh player.
func New(cat *catalog.Catalog, opts Options) *Engine {
	if cat == nil {
		cat = catalog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{
		Catalog:       cat,
		Player:        state.NewPlayer(now(), cat.Skills),
		RNG:           NewRNG(seed),
		Now:           now,
		Store:         opts.Store,
		Log:           log,
		ActionsPath:   opts.ActionsPath,
		CustomActions: []string{},
	}
}

// Load restores the player from the store. A missing, empty or unreadable
// record leaves a fresh player in place; only store I/O failures are
// returned. Custom punishments from the record are merged into the catalog.
func (e *Engine) Load(ctx context.Context) error {
	if e.ActionsPath != "" {
		actions, err := save.LoadActions(e.ActionsPath)
		if err != nil {
			e.Log.Warn("custom actions unreadable, starting empty", "path", e.ActionsPath, "err", err)
		}
		e.CustomActions = actions
	}
	if e.Store == nil {
		return nil
	}

	data, err := e.Store.Load(ctx)
	switch {
	case errors.Is(err, save.ErrNoSave):
		e.Log.Info("no save found, starting new game")
		return nil
	case err != nil:
		return fmt.Errorf("load: %w", err)
	}

	p, err := save.Decode(data, e.Now(), e.Catalog.Skills)
	if err != nil {
		e.Log.Warn("save unreadable, starting new game", "err", err)
		e.Player = state.NewPlayer(e.Now(), e.Catalog.Skills)
		return nil
	}
	e.Player = p
	for _, cp := range p.CustomPunishments {
		cp.Custom = true
		if err := e.Catalog.AddPunishment(cp); err != nil {
			e.Log.Warn("skipping custom punishment", "name", cp.Name, "err", err)
		}
	}
	e.Log.Debug("save loaded", "xp", p.XP, "coins", p.Coins, "quests", len(p.Quests))
	return nil
}

// Save persists the current player record.
func (e *Engine) Save(ctx context.Context) error {
	return e.persist(ctx, "save")
}

// persist rewrites the whole record. note is "kind: summary" for the journal.
func (e *Engine) persist(ctx context.Context, note string) error {
	e.Player.CustomPunishments = e.Catalog.CustomPunishments()
	if e.Store == nil {
		return nil
	}
	data, err := save.Encode(e.Player)
	if err != nil {
		return fmt.Errorf("save: %w", err)
	}
	if err := e.Store.Save(ctx, data, note); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	e.Log.Debug("state saved", "op", note, "bytes", len(data))
	return nil
}

// emit records an event to attach to the next result.
func (e *Engine) emit(typ string, data map[string]any) {
	e.pending = append(e.pending, types.Event{Type: typ, Data: data})
}

// result builds a Result and drains pending events into it.
func (e *Engine) result(ok bool, lines ...string) types.Result {
	res := types.Result{OK: ok, Events: e.pending}
	for _, l := range lines {
		if l != "" {
			res.Output = append(res.Output, l)
		}
	}
	e.pending = nil
	return res
}

// commit persists and returns the result built from lines.
func (e *Engine) commit(ctx context.Context, note string, ok bool, lines ...string) (types.Result, error) {
	res := e.result(ok, lines...)
	if err := e.persist(ctx, note); err != nil {
		return res, err
	}
	return res, nil
}

func (e *Engine) today() string {
	return state.DateString(e.Now())
}

// incrementDailyTasks counts one daily action.
func (e *Engine) incrementDailyTasks() {
	e.Player.DailyTasksCompleted++
}

// addCorruption raises corruption and tracks the peak.
func (e *Engine) addCorruption(n int) {
	p := e.Player
	p.Corruption += n
	if p.Corruption < 0 {
		p.Corruption = 0
	}
	if p.Corruption > p.CorruptionPeak {
		p.CorruptionPeak = p.Corruption
	}
}

// resetGame replaces the player with a fresh one. Catalog content,
// including custom punishments, is kept.
func (e *Engine) resetGame() {
	e.Player = state.NewPlayer(e.Now(), e.Catalog.Skills)
	e.emit("game_reset", nil)
	e.Log.Info("punishment limit reached, progress reset")
}
