package cli

import (
	"encoding/json"
	"fmt"

	"github.com/amterp/calcus/internal/grid"
	"github.com/amterp/calcus/internal/model"
)

// stepJson represents a step with its display label for JSON output.
//
// SYNC WARNING: This struct must stay in sync with model.StepView fields.
// If you add fields to model.StepView, add them here too. See TestStepJsonFieldSync.
type stepJson struct {
	ID         string         `json:"id"`
	Label      string         `json:"label"`
	Kind       model.StepKind `json:"kind"`
	Order      int            `json:"order"`
	Target     float64        `json:"target"`
	Multiplier float64        `json:"multiplier"`
}

func stepToJson(s model.StepView) stepJson {
	return stepJson{
		ID:         s.ID,
		Label:      s.Label(),
		Kind:       s.Kind,
		Order:      s.Order,
		Target:     s.Target,
		Multiplier: s.Multiplier,
	}
}

// CalcOutput wraps a calculated session for JSON output: raw values plus
// the formatted grid.
type CalcOutput struct {
	Steps  []stepJson        `json:"steps"`
	Colors []model.ColorView `json:"colors"`
	Grid   gridJson          `json:"grid"`
}

// gridJson is the formatted grid as plain header and row arrays.
type gridJson struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// NewCalcOutput creates a CalcOutput from a snapshot and its grid.
// Always returns empty arrays (not null) for empty sessions.
func NewCalcOutput(snap *model.Snapshot, g *grid.Grid) CalcOutput {
	steps := make([]stepJson, 0, len(snap.Steps))
	for _, s := range snap.Steps {
		steps = append(steps, stepToJson(s))
	}

	colors := snap.Colors
	if colors == nil {
		colors = []model.ColorView{}
	}

	rows := make([][]string, 0, len(g.Rows))
	for _, r := range g.Rows {
		rows = append(rows, r.Cells)
	}

	return CalcOutput{
		Steps:  steps,
		Colors: colors,
		Grid:   gridJson{Headers: g.Headers(), Rows: rows},
	}
}

// SettingsOutput wraps the settings in effect for JSON output.
type SettingsOutput struct {
	Path     string          `json:"path"`
	Exists   bool            `json:"exists"`
	Schema   string          `json:"schema"`
	Settings *model.Settings `json:"settings"`
}

// printJson marshals the value as indented JSON and prints it to stdout.
func printJson(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(output))
	return nil
}
