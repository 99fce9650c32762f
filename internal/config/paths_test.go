package config

import (
	"path/filepath"
	"testing"
)

func TestSettingsPath_Explicit(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "/from/env.toml")
	if got := SettingsPath("/explicit.toml"); got != "/explicit.toml" {
		t.Errorf("Expected explicit path, got %q", got)
	}
}

func TestSettingsPath_Env(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "/from/env.toml")
	if got := SettingsPath(""); got != "/from/env.toml" {
		t.Errorf("Expected env path, got %q", got)
	}
}

func TestSettingsPath_Home(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(ConfigPathEnvVar, "")

	want := filepath.Join(home, ".config", "calcus", "config.toml")
	if got := SettingsPath(""); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
