// Package config loads and saves the calendar configuration as YAML.
// Validation lives in the calendar facade so that configs handed in by
// callers without ever touching disk go through the same checks.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"focuscal/internal/model"
)

// DefaultConfig returns the in-memory default configuration: 09:00-18:00
// Monday through Friday, classic pomodoro durations.
func DefaultConfig() *model.CalendarConfig {
	return &model.CalendarConfig{
		WorkingHours: model.WorkingHours{
			Start:    "09:00",
			End:      "18:00",
			Timezone: "Local",
			WorkDays: []int{1, 2, 3, 4, 5},
		},
		Pomodoro: model.PomodoroSettings{
			WorkDuration:           25,
			ShortBreakDuration:     5,
			LongBreakDuration:      15,
			SessionsUntilLongBreak: 4,
		},
		Notifications: model.NotificationSettings{
			Enabled:              true,
			UpcomingEventMinutes: 5,
			BreakReminders:       true,
			FocusSessionEnd:      true,
		},
		AutoTracking: model.AutoTrackingSettings{
			Enabled:           true,
			DetectIdleMinutes: 5,
			PauseOnIdle:       true,
		},
	}
}

// Normalize fills missing or zero values with defaults so partially-filled
// config files (older versions, hand edits) still behave.
func Normalize(c *model.CalendarConfig) {
	def := DefaultConfig()

	if c.WorkingHours.Start == "" {
		c.WorkingHours.Start = def.WorkingHours.Start
	}
	if c.WorkingHours.End == "" {
		c.WorkingHours.End = def.WorkingHours.End
	}
	if c.WorkingHours.Timezone == "" {
		c.WorkingHours.Timezone = def.WorkingHours.Timezone
	}
	if len(c.WorkingHours.WorkDays) == 0 {
		c.WorkingHours.WorkDays = append([]int(nil), def.WorkingHours.WorkDays...)
	}

	if c.Pomodoro.WorkDuration <= 0 {
		c.Pomodoro.WorkDuration = def.Pomodoro.WorkDuration
	}
	if c.Pomodoro.ShortBreakDuration <= 0 {
		c.Pomodoro.ShortBreakDuration = def.Pomodoro.ShortBreakDuration
	}
	if c.Pomodoro.LongBreakDuration <= 0 {
		c.Pomodoro.LongBreakDuration = def.Pomodoro.LongBreakDuration
	}
	if c.Pomodoro.SessionsUntilLongBreak <= 0 {
		c.Pomodoro.SessionsUntilLongBreak = def.Pomodoro.SessionsUntilLongBreak
	}

	if c.AutoTracking.DetectIdleMinutes <= 0 {
		c.AutoTracking.DetectIdleMinutes = def.AutoTracking.DetectIdleMinutes
	}
	if c.Notifications.UpcomingEventMinutes < 0 {
		c.Notifications.UpcomingEventMinutes = def.Notifications.UpcomingEventMinutes
	}
}

// Load reads configuration from the given YAML path. A missing file is a
// first run: a default config is written with 0600 perms and returned.
func Load(path string) (*model.CalendarConfig, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				// Still hand back usable defaults; the caller decides.
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg model.CalendarConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	Normalize(&cfg)

	return &cfg, nil
}

// Save writes the configuration atomically: temp file in the same directory,
// 0600 perms, then rename over the target.
func Save(path string, cfg *model.CalendarConfig) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	Normalize(cfg)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".focuscal-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
