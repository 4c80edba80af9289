package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/nathoo/lifequest/engine/catalog"
	"github.com/nathoo/lifequest/types"
)

var exerciseColumns = []string{
	"skill", "name", "difficulty", "base_xp", "base_coin", "workout_type", "duration_target",
}

// LoadExercisesCSV reads an exercise table. A missing file is not an
// error; rows that fail to parse are logged and skipped.
func LoadExercisesCSV(path string, log *slog.Logger) ([]types.ExerciseDef, error) {
	if log == nil {
		log = slog.Default()
	}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Info("exercise table not found", "path", path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening exercise table: %w", err)
	}
	defer f.Close()
	return readExercises(f, log)
}

func readExercises(r io.Reader, log *slog.Logger) ([]types.ExerciseDef, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading exercise header: %w", err)
	}
	cols := map[string]int{}
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, c := range exerciseColumns[:3] {
		if _, ok := cols[c]; !ok {
			return nil, fmt.Errorf("exercise table is missing column %q", c)
		}
	}

	var out []types.ExerciseDef
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			log.Warn("skipping exercise row", "line", line, "error", err)
			continue
		}
		ex, err := parseExercise(rec, cols)
		if err != nil {
			log.Warn("skipping exercise row", "line", line, "error", err)
			continue
		}
		out = append(out, ex)
	}
	log.Debug("exercise table loaded", "rows", len(out))
	return out, nil
}

func parseExercise(rec []string, cols map[string]int) (types.ExerciseDef, error) {
	field := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}
	number := func(name string) (int, error) {
		s := field(name)
		if s == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("%s %q is not a non-negative integer", name, s)
		}
		return n, nil
	}

	ex := types.ExerciseDef{
		Skill:       field("skill"),
		Name:        field("name"),
		Difficulty:  field("difficulty"),
		WorkoutType: field("workout_type"),
	}
	if ex.Name == "" {
		return ex, errors.New("empty name")
	}
	if !slices.Contains(knownSkills, ex.Skill) {
		return ex, fmt.Errorf("unknown skill %q", ex.Skill)
	}
	if !slices.Contains(catalog.Difficulties, ex.Difficulty) {
		return ex, fmt.Errorf("unknown difficulty %q", ex.Difficulty)
	}
	if ex.WorkoutType != "" && !slices.Contains(catalog.WorkoutTypes, ex.WorkoutType) {
		return ex, fmt.Errorf("unknown workout type %q", ex.WorkoutType)
	}
	var err error
	if ex.BaseXP, err = number("base_xp"); err != nil {
		return ex, err
	}
	if ex.BaseCoin, err = number("base_coin"); err != nil {
		return ex, err
	}
	if ex.DurationTarget, err = number("duration_target"); err != nil {
		return ex, err
	}
	return ex, nil
}
