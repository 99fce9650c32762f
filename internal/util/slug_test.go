package util

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// Basic cases
		{"Burnt Sienna", "burnt-sienna"},
		{"Color 12", "color-12"},
		{"Total:", "total"},

		// Separators
		{"Cadmium (deep)", "cadmium-deep"},
		{"Ultramarine   blue", "ultramarine-blue"},
		{"titanium--white", "titanium-white"},
		{"  Ochre  ", "ochre"},
		{"PB29/PW6", "pb29-pw6"},

		// Accents
		{"Crème Brûlée", "creme-brulee"},
		{"Vert émeraude", "vert-emeraude"},

		// Non-Latin scripts keep their letters
		{"Красный кадмий", "красныи-кадмии"},
		{"Цвет 3", "цвет-3"},

		// Edge cases
		{"", ""},
		{"   ", ""},
		{"---", ""},
		{"a", "a"},
		{"A", "a"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := Slugify(tt.input)
			if result != tt.expected {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSlugify_MatchesAcrossSpellings(t *testing.T) {
	if Slugify("Crème Brûlée") != Slugify("creme-brulee") {
		t.Error("Expected accented and plain spellings to share a slug")
	}
	if Slugify("Краплак") != Slugify("КРАПЛАК") {
		t.Error("Expected case-insensitive match for Cyrillic names")
	}
}

func TestSlugWords(t *testing.T) {
	words := SlugWords("  Burnt Sienna (deep) ")
	if diff := cmp.Diff([]string{"burnt", "sienna", "deep"}, words); diff != "" {
		t.Errorf("SlugWords mismatch (-want +got):\n%s", diff)
	}

	if SlugWords("!!!") != nil {
		t.Error("Expected nil for input without letters or digits")
	}
}
