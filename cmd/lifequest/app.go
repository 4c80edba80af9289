package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/nathoo/lifequest/config"
	"github.com/nathoo/lifequest/engine"
	"github.com/nathoo/lifequest/engine/catalog"
	"github.com/nathoo/lifequest/engine/save"
	"github.com/nathoo/lifequest/loader"
)

// app bundles a loaded engine with the resources it holds open.
type app struct {
	cfg    config.Config
	log    *slog.Logger
	engine *engine.Engine
	sqlite *save.SQLiteStore
}

// openApp resolves configuration, builds the catalog from the defaults and
// any content packs, selects the store and loads the player record.
func openApp(ctx context.Context, configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	level, _ := cfg.Level()
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cat, err := buildCatalog(cfg, log)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, log: log}
	var store save.Store
	if cfg.UseSQLite() {
		a.sqlite, err = save.OpenSQLite(ctx, cfg.DBPath())
		if err != nil {
			return nil, err
		}
		store = a.sqlite
	} else {
		store = save.NewFileStore(cfg.SavePath())
	}

	a.engine = engine.New(cat, engine.Options{
		Store:       store,
		Seed:        cfg.Seed,
		Logger:      log,
		ActionsPath: cfg.ActionsPath(),
	})
	if err := a.engine.Load(ctx); err != nil {
		a.Close()
		return nil, err
	}
	log.Debug("engine ready", "storage", cfg.Storage, "data_dir", cfg.DataDir)
	return a, nil
}

func buildCatalog(cfg config.Config, log *slog.Logger) (*catalog.Catalog, error) {
	cat := catalog.Default()
	content := &catalog.Content{}

	dir := cfg.ContentPath()
	if _, err := os.Stat(dir); err == nil {
		if content, err = loader.Load(dir, log); err != nil {
			return nil, fmt.Errorf("content packs: %w", err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("content packs: %w", err)
	}

	exercises, err := loader.LoadExercisesCSV(cfg.ExercisesPath(), log)
	if err != nil {
		return nil, err
	}
	content.Exercises = append(content.Exercises, exercises...)

	for _, msg := range cat.Merge(content) {
		log.Warn("content skipped", "reason", msg)
	}
	return cat, nil
}

// Close releases the SQLite handle, if any.
func (a *app) Close() {
	if a.sqlite != nil {
		if err := a.sqlite.Close(); err != nil {
			a.log.Warn("closing database", "err", err)
		}
	}
}
