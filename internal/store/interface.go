package store

import "github.com/amterp/calcus/internal/model"

// SettingsStore handles settings persistence.
type SettingsStore interface {
	Load() (*model.Settings, error)
	Save(settings *model.Settings) error
	Exists() bool
	Path() string
}
