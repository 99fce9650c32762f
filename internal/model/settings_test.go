package model

import "testing"

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(s *Settings)
		wantErr bool
	}{
		{"defaults", func(s *Settings) {}, false},
		{"russian locale", func(s *Settings) { s.Locale = "ru" }, false},
		{"zero precision", func(s *Settings) { s.Precision = 0 }, false},
		{"negative precision", func(s *Settings) { s.Precision = -1 }, true},
		{"precision too large", func(s *Settings) { s.Precision = MaxPrecision + 1 }, true},
		{"bad locale", func(s *Settings) { s.Locale = "not a locale!" }, true},
		{"format without verb", func(s *Settings) { s.ColorNameFormat = "Pigment" }, true},
		{"format with two verbs", func(s *Settings) { s.ColorNameFormat = "%d-%d" }, true},
		{"format with other verb", func(s *Settings) { s.ColorNameFormat = "%s %d" }, true},
		{"blank summary", func(s *Settings) { s.SummaryName = "  " }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.modify(s)
			err := s.Validate()
			if tt.wantErr && err == nil {
				t.Error("Expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Unexpected validation error: %v", err)
			}
		})
	}
}

func TestSettings_FillDefaults(t *testing.T) {
	s := &Settings{Precision: 3}
	s.FillDefaults()

	if s.ColorNameFormat != "Color %d" {
		t.Errorf("Expected default color format, got %q", s.ColorNameFormat)
	}
	if s.SummaryName != "Total:" {
		t.Errorf("Expected default summary name, got %q", s.SummaryName)
	}
	if s.Locale != "en" {
		t.Errorf("Expected default locale, got %q", s.Locale)
	}
	if s.Precision != 3 {
		t.Errorf("FillDefaults must not touch precision, got %d", s.Precision)
	}
}

func TestSettings_ColorLabel(t *testing.T) {
	s := DefaultSettings()
	if got := s.ColorLabel(3); got != "Color 3" {
		t.Errorf("ColorLabel(3) = %q, want %q", got, "Color 3")
	}
}

func TestNextSwatch_Cycles(t *testing.T) {
	if NextSwatch(0) != SwatchColors[0] {
		t.Error("Expected first swatch for 0")
	}
	if NextSwatch(len(SwatchColors)) != SwatchColors[0] {
		t.Error("Expected palette to wrap")
	}
	if NextSwatch(-4) != SwatchColors[0] {
		t.Error("Expected negative counts to clamp")
	}
}
