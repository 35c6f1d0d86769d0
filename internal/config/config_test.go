package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "focuscal.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.WorkingHours.Start != "09:00" || cfg.WorkingHours.End != "18:00" {
		t.Errorf("default working hours = %q-%q", cfg.WorkingHours.Start, cfg.WorkingHours.End)
	}
	if cfg.Pomodoro.WorkDuration != 25 {
		t.Errorf("default work duration = %d", cfg.Pomodoro.WorkDuration)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("default config file not written: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("config file perms = %o, want 0600", perm)
	}
}

func TestLoad_PartialFileNormalized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "focuscal.yaml")
	partial := []byte("working_hours:\n  start: \"08:00\"\n")
	if err := os.WriteFile(path, partial, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.WorkingHours.Start != "08:00" {
		t.Errorf("start = %q, want the file's value", cfg.WorkingHours.Start)
	}
	if cfg.WorkingHours.End != "18:00" {
		t.Errorf("end = %q, want the default", cfg.WorkingHours.End)
	}
	if len(cfg.WorkingHours.WorkDays) == 0 {
		t.Error("expected default work days")
	}
	if cfg.Pomodoro.SessionsUntilLongBreak != 4 {
		t.Errorf("sessions until long break = %d, want default 4", cfg.Pomodoro.SessionsUntilLongBreak)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "focuscal.yaml")
	if err := os.WriteFile(path, []byte("{not valid yaml"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected an error for malformed YAML")
	}
}

func TestLoad_EmptyPath(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Error("expected an error for an empty path")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "focuscal.yaml")

	cfg := DefaultConfig()
	cfg.WorkingHours.Start = "07:30"
	cfg.AutoTracking.DetectIdleMinutes = 10

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load after save: %v", err)
	}
	if loaded.WorkingHours.Start != "07:30" {
		t.Errorf("start = %q", loaded.WorkingHours.Start)
	}
	if loaded.AutoTracking.DetectIdleMinutes != 10 {
		t.Errorf("idle minutes = %d", loaded.AutoTracking.DetectIdleMinutes)
	}
}
