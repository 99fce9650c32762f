package version

import (
	"fmt"
)

// SchemaVersionError indicates a schema version problem in a settings file.
type SchemaVersionError struct {
	FilePath    string // Path to the problematic file
	Found       string // What was found (e.g., "missing", "settings/2")
	Expected    string // What was expected (e.g., "settings/1")
	MinRequired string // Minimum calcus version required (if upgrade needed)
}

func (e *SchemaVersionError) Error() string {
	if e.MinRequired != "" {
		return fmt.Sprintf(
			"settings schema %s requires calcus >= %s (file: %s, supports up to: %s)",
			e.Found, e.MinRequired, e.FilePath, e.Expected,
		)
	}
	if e.Found == "missing" {
		return fmt.Sprintf(
			"settings file has no calcus_schema (file: %s). Add calcus_schema = %q or run 'calcus config init --force'.",
			e.FilePath, e.Expected,
		)
	}
	return fmt.Sprintf(
		"settings file has invalid schema: found %s, expected %s (file: %s)",
		e.Found, e.Expected, e.FilePath,
	)
}

// MissingSettingsSchema creates an error for a settings file missing calcus_schema.
func MissingSettingsSchema(path string) error {
	return &SchemaVersionError{
		FilePath: path,
		Found:    "missing",
		Expected: CurrentSettingsSchema(),
	}
}

// InvalidSettingsSchema creates an error for a settings file with an
// unsupported schema.
func InvalidSettingsSchema(path, found string) error {
	e := &SchemaVersionError{
		FilePath: path,
		Found:    found,
		Expected: CurrentSettingsSchema(),
	}
	// Check if it's a future version
	if v, err := ParseSettingsVersion(found); err == nil && v > CurrentSettingsVersion {
		if minCalcus, ok := MinCalcusVersion[found]; ok {
			e.MinRequired = minCalcus
		} else {
			e.MinRequired = "a newer version"
		}
	}
	return e
}
