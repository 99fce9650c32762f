package model

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Settings represents the user's calcus preferences.
// Stored at ~/.config/calcus/config.toml
// Schema changes require a version bump in internal/version/version.go.
type Settings struct {
	CalcusSchema     string  `toml:"calcus_schema" json:"-"`
	DefaultDecrease  float64 `toml:"default_decrease" json:"default_decrease"`
	ColorNameFormat  string  `toml:"color_name_format" json:"color_name_format"`
	SummaryName      string  `toml:"summary_name" json:"summary_name"`
	Precision        int     `toml:"precision" json:"precision"`
	Locale           string  `toml:"locale" json:"locale"`
	HideIntermediate bool    `toml:"hide_intermediate" json:"hide_intermediate"`
}

// MaxPrecision bounds the number of decimals shown.
const MaxPrecision = 6

// DefaultSettings returns the settings used when no config file exists.
func DefaultSettings() *Settings {
	return &Settings{
		DefaultDecrease: 1.0,
		ColorNameFormat: "Color %d",
		SummaryName:     "Total:",
		Precision:       2,
		Locale:          "en",
	}
}

// FillDefaults sets zero-valued string fields to their defaults.
// Numeric fields are left alone since zero is a meaningful value.
func (s *Settings) FillDefaults() {
	def := DefaultSettings()
	if s.ColorNameFormat == "" {
		s.ColorNameFormat = def.ColorNameFormat
	}
	if s.SummaryName == "" {
		s.SummaryName = def.SummaryName
	}
	if s.Locale == "" {
		s.Locale = def.Locale
	}
}

// Validate checks the settings for values the display layer cannot use.
func (s *Settings) Validate() error {
	if s.Precision < 0 || s.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 0 and %d, got %d", MaxPrecision, s.Precision)
	}
	if _, err := language.Parse(s.Locale); err != nil {
		return fmt.Errorf("invalid locale %q: %w", s.Locale, err)
	}
	if strings.Count(s.ColorNameFormat, "%d") != 1 || strings.Count(s.ColorNameFormat, "%") != 1 {
		return fmt.Errorf("color_name_format must contain exactly one %%d verb, got %q", s.ColorNameFormat)
	}
	if strings.TrimSpace(s.SummaryName) == "" {
		return fmt.Errorf("summary_name must not be blank")
	}
	return nil
}

// ColorLabel returns the generated name for the n-th pigment (1-based).
func (s *Settings) ColorLabel(n int) string {
	return fmt.Sprintf(s.ColorNameFormat, n)
}
