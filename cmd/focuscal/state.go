package main

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"focuscal/internal/model"
)

// state is the CLI-side persistence of the engine's collections. The core
// never touches this file; it only sees the slices loaded from it.
type state struct {
	Events   []model.ScheduledEvent      `json:"events"`
	Sessions []model.FocusSession        `json:"sessions"`
	Stats    map[string]model.DailyStats `json:"dailyStats,omitempty"`
}

func loadState(path string) (*state, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &state{}, nil
		}
		return nil, err
	}

	var st state
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func saveState(path string, st *state) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
