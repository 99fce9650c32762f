package config

import (
	"os"
	"path/filepath"
)

const (
	ConfigFileName   = "config.toml"
	GlobalConfigDir  = ".config/calcus"
	ConfigPathEnvVar = "CALCUS_CONFIG"
)

// SettingsPath returns the settings file path. An explicit path wins, then
// $CALCUS_CONFIG, then ~/.config/calcus/config.toml. Returns "" if no home
// directory can be determined.
func SettingsPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(ConfigPathEnvVar); env != "" {
		return env
	}
	dir := GlobalConfigDirPath()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, ConfigFileName)
}

// GlobalConfigDirPath returns the directory for global config.
func GlobalConfigDirPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, GlobalConfigDir)
}
