package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewColorView_CellsInStepOrder(t *testing.T) {
	steps := []*Step{
		{ID: "s_a", Order: 0},
		{ID: "s_b", Order: 1, Kind: StepRefill},
	}
	color := &Color{
		ID:    "c_1",
		Name:  "Red",
		Order: 1,
		Cells: map[string]*Cell{
			"s_b": {ColorID: "c_1", StepID: "s_b", Input: 1, Current: 1, After: 4},
			"s_a": {ColorID: "c_1", StepID: "s_a", Input: 3, Current: 3, After: 3},
		},
	}

	got := NewColorView(color, steps)
	want := ColorView{
		ID:    "c_1",
		Name:  "Red",
		Order: 1,
		Cells: []CellView{
			{StepID: "s_a", Input: 3, Current: 3, After: 3},
			{StepID: "s_b", Input: 1, Current: 1, After: 4},
		},
		Result: 4,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("NewColorView mismatch (-want +got):\n%s", diff)
	}
}

func TestNewColorView_NoSteps(t *testing.T) {
	got := NewColorView(&Color{ID: "c_1"}, nil)
	if len(got.Cells) != 0 {
		t.Errorf("Expected no cells, got %d", len(got.Cells))
	}
	if got.Result != 0 {
		t.Errorf("Expected zero result, got %v", got.Result)
	}
}

func TestSnapshot_Lookups(t *testing.T) {
	snap := Snapshot{
		Steps: []StepView{
			{ID: "s_a", Order: 0},
			{ID: "s_r", Order: 1, Kind: StepRefill},
		},
		Colors: []ColorView{
			{ID: "c_1", Order: 1, Cells: []CellView{{StepID: "s_a", Input: 2}}},
			{ID: "c_sum", Order: 2, IsSummary: true},
		},
	}

	if s := snap.Summary(); s == nil || s.ID != "c_sum" {
		t.Errorf("Summary() = %v, want c_sum", s)
	}
	if p := snap.Pigments(); len(p) != 1 || p[0].ID != "c_1" {
		t.Errorf("Pigments() = %v", p)
	}
	if s := snap.LastStep(); s == nil || s.ID != "s_r" {
		t.Errorf("LastStep() = %v, want s_r", s)
	}
	if s := snap.RefillStep(); s == nil || s.ID != "s_r" {
		t.Errorf("RefillStep() = %v, want s_r", s)
	}
	if c := snap.Cell("c_1", "s_a"); c == nil || c.Input != 2 {
		t.Errorf("Cell() = %v", c)
	}
	if c := snap.Cell("c_missing", "s_a"); c != nil {
		t.Errorf("Expected nil cell for unknown color, got %v", c)
	}
	if s := snap.Step("nope"); s != nil {
		t.Errorf("Expected nil step, got %v", s)
	}

	empty := Snapshot{}
	if empty.LastStep() != nil || empty.Summary() != nil || empty.RefillStep() != nil {
		t.Error("Expected nil lookups on empty snapshot")
	}
}

func TestSnapshot_LookupsOnReturnedValue(t *testing.T) {
	build := func() Snapshot {
		return Snapshot{
			Steps:  []StepView{{ID: "s_a", Order: 0}},
			Colors: []ColorView{{ID: "c_sum", Order: 1, IsSummary: true, Cells: []CellView{{StepID: "s_a", After: 7}}}},
		}
	}

	if s := build().Summary(); s == nil || s.ID != "c_sum" {
		t.Errorf("Summary() = %v, want c_sum", s)
	}
	if c := build().Cell("c_sum", "s_a"); c == nil || c.After != 7 {
		t.Errorf("Cell() = %v", c)
	}
	if c := build().Color("c_sum"); c == nil || !c.IsSummary {
		t.Errorf("Color() = %v", c)
	}
}

func TestStepView_Label(t *testing.T) {
	if got := (StepView{Order: 0}).Label(); got != "Step #1" {
		t.Errorf("Expected 'Step #1', got %q", got)
	}
	if got := (StepView{Order: 4}).Label(); got != "Step #5" {
		t.Errorf("Expected 'Step #5', got %q", got)
	}
	if got := (StepView{Order: 2, Kind: StepRefill}).Label(); got != "Refill" {
		t.Errorf("Expected 'Refill', got %q", got)
	}
}

func TestSnapshot_StepLabelsFollowOrder(t *testing.T) {
	snap := Snapshot{
		Steps: []StepView{
			{ID: "s_a", Order: 0},
			{ID: "s_b", Order: 1},
			{ID: "s_r", Order: 2, Kind: StepRefill},
		},
	}

	want := []string{"Step #1", "Step #2", "Refill"}
	for i, step := range snap.Steps {
		if got := step.Label(); got != want[i] {
			t.Errorf("Steps[%d].Label() = %q, want %q", i, got, want[i])
		}
	}
}
