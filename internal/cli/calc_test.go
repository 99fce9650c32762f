package cli

import (
	"math"
	"testing"

	calcerr "github.com/amterp/calcus/internal/errors"
	"github.com/amterp/calcus/internal/model"
	"github.com/amterp/calcus/internal/service"
	"github.com/google/go-cmp/cmp"
)

func TestParseColorSpec(t *testing.T) {
	tests := []struct {
		spec string
		want colorSpec
	}{
		{"Red=1,2", colorSpec{Name: "Red", Inputs: []float64{1, 2}}},
		{" Ochre = 0.5 , 1.25 ", colorSpec{Name: "Ochre", Inputs: []float64{0.5, 1.25}}},
		{"Blue", colorSpec{Name: "Blue"}},
		{"Blue=", colorSpec{Name: "Blue"}},
		{"=3", colorSpec{Name: "", Inputs: []float64{3}}},
		{"Green=1,,2", colorSpec{Name: "Green", Inputs: []float64{1, 0, 2}}},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := parseColorSpec(tt.spec)
			if err != nil {
				t.Fatalf("parseColorSpec(%q) failed: %v", tt.spec, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("parseColorSpec mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseColorSpec_Invalid(t *testing.T) {
	for _, spec := range []string{"Red=abc", "Red=1,NaN", "Red=1,Inf"} {
		_, err := parseColorSpec(spec)
		if !calcerr.IsValidationError(err) {
			t.Errorf("parseColorSpec(%q): expected validation error, got %v", spec, err)
		}
	}
}

func TestParseTargets(t *testing.T) {
	got, err := parseTargets([]string{"1", "2,5", "0.25"})
	if err != nil {
		t.Fatalf("parseTargets failed: %v", err)
	}
	if diff := cmp.Diff([]float64{1, 2.5, 0.25}, got); diff != "" {
		t.Errorf("parseTargets mismatch (-want +got):\n%s", diff)
	}

	if _, err := parseTargets([]string{"x"}); !calcerr.IsValidationError(err) {
		t.Errorf("Expected validation error, got %v", err)
	}
}

func TestPopulate_StepsFollowLongestInputs(t *testing.T) {
	session := service.NewSessionService(nil)
	colors := []colorSpec{
		{Name: "Red", Inputs: []float64{2, 1, 1}},
		{Name: "Blue", Inputs: []float64{2}},
	}

	if err := populate(session, colors, []float64{1}, nil); err != nil {
		t.Fatalf("populate failed: %v", err)
	}

	snap := session.Snapshot()
	if len(snap.Steps) != 3 {
		t.Fatalf("Expected 3 steps, got %d", len(snap.Steps))
	}
	if snap.Steps[0].Target != 1 {
		t.Errorf("Expected first target 1, got %v", snap.Steps[0].Target)
	}
	for _, s := range snap.Steps[1:] {
		if s.Target != session.DefaultTarget() {
			t.Errorf("Expected default target %v for %s, got %v", session.DefaultTarget(), s.Label(), s.Target)
		}
	}

	pigments := snap.Pigments()
	if len(pigments) != 2 {
		t.Fatalf("Expected 2 pigments, got %d", len(pigments))
	}
	blue := pigments[1]
	if blue.Cells[1].Input != 0 || blue.Cells[2].Input != 0 {
		t.Errorf("Expected missing inputs to stay 0, got %+v", blue.Cells)
	}

	// Step 1: total current 4, target 1 => multiplier 0.75
	if got := snap.Steps[0].Multiplier; math.Abs(got-0.75) > 1e-9 {
		t.Errorf("Expected multiplier 0.75, got %v", got)
	}
}

func TestPopulate_Refill(t *testing.T) {
	session := service.NewSessionService(nil)
	refill := 2.0

	err := populate(session, []colorSpec{{Name: "Red", Inputs: []float64{3}}, {Name: "Blue", Inputs: []float64{1}}}, []float64{2}, &refill)
	if err != nil {
		t.Fatalf("populate failed: %v", err)
	}

	snap := session.Snapshot()
	last := snap.LastStep()
	if last == nil || last.Kind != model.StepRefill {
		t.Fatalf("Expected refill as last step, got %+v", last)
	}

	// Residuals after step 1: 1.5 and 0.5; refill adds 2 proportionally
	summary := snap.Summary()
	if got := summary.Result; math.Abs(got-4) > 1e-9 {
		t.Errorf("Expected total result 4, got %v", got)
	}
}

func TestPopulate_NoColors(t *testing.T) {
	session := service.NewSessionService(nil)
	if err := populate(session, nil, nil, nil); err != nil {
		t.Fatalf("populate failed: %v", err)
	}
	snap := session.Snapshot()
	if len(snap.Steps) != 0 || len(snap.Pigments()) != 0 {
		t.Errorf("Expected empty session, got %d steps and %d pigments", len(snap.Steps), len(snap.Pigments()))
	}
}

func TestApplyDisplayOverrides(t *testing.T) {
	app := newTestApp(t, &scriptedPrompter{})

	if err := applyDisplayOverrides(app, -1, ""); err != nil {
		t.Fatalf("No-op override failed: %v", err)
	}
	if got := app.Session.Settings().Precision; got != 2 {
		t.Errorf("Expected precision 2, got %d", got)
	}

	if err := applyDisplayOverrides(app, 4, "de"); err != nil {
		t.Fatalf("Override failed: %v", err)
	}
	settings := app.Session.Settings()
	if settings.Precision != 4 || settings.Locale != "de" {
		t.Errorf("Expected precision 4 and locale de, got %d and %q", settings.Precision, settings.Locale)
	}

	if err := applyDisplayOverrides(app, 42, ""); !calcerr.IsValidationError(err) {
		t.Errorf("Expected validation error for precision 42, got %v", err)
	}
}
