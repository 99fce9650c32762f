package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/amterp/calcus/internal/model"
	"github.com/amterp/calcus/internal/version"
)

// FileSettingsStore implements SettingsStore using a TOML file.
type FileSettingsStore struct {
	path string
}

// NewSettingsStore creates a store for the settings file at path.
// An empty path makes Load return defaults and Save a no-op.
func NewSettingsStore(path string) *FileSettingsStore {
	return &FileSettingsStore{path: path}
}

// Path returns the settings file path.
func (s *FileSettingsStore) Path() string {
	return s.path
}

// Exists returns true if the settings file exists.
func (s *FileSettingsStore) Exists() bool {
	if s.path == "" {
		return false
	}
	_, err := os.Stat(s.path)
	return err == nil
}

// Load reads the settings from disk.
// Returns defaults if the file doesn't exist.
func (s *FileSettingsStore) Load() (*model.Settings, error) {
	if s.path == "" {
		return model.DefaultSettings(), nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.DefaultSettings(), nil
		}
		return nil, err
	}

	// Unset keys keep their defaults
	settings := model.DefaultSettings()
	if err := toml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.path, err)
	}

	// Strict version validation (only if file exists)
	if settings.CalcusSchema == "" {
		return nil, version.MissingSettingsSchema(s.path)
	}
	if settings.CalcusSchema != version.CurrentSettingsSchema() {
		return nil, version.InvalidSettingsSchema(s.path, settings.CalcusSchema)
	}

	settings.FillDefaults()
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings in %s: %w", s.path, err)
	}
	return settings, nil
}

// Save writes the settings to disk, stamping the current schema.
func (s *FileSettingsStore) Save(settings *model.Settings) error {
	if s.path == "" {
		return nil
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	settings.CalcusSchema = version.CurrentSettingsSchema()

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}

	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(settings)
}
