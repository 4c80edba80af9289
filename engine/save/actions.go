package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// LoadActions reads the custom action list. A missing file yields an empty
// list; a malformed file yields an error and an empty list.
func LoadActions(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return []string{}, fmt.Errorf("read actions: %w", err)
	}
	var actions []string
	if err := json.Unmarshal(data, &actions); err != nil {
		return []string{}, fmt.Errorf("decode actions: %w", err)
	}
	if actions == nil {
		actions = []string{}
	}
	return actions, nil
}

// WriteActions rewrites the custom action list.
func WriteActions(path string, actions []string) error {
	if actions == nil {
		actions = []string{}
	}
	data, err := json.MarshalIndent(actions, "", "    ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create actions dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write actions: %w", err)
	}
	return nil
}
