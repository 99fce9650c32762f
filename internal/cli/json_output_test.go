package cli

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/amterp/calcus/internal/grid"
	"github.com/amterp/calcus/internal/model"
	"github.com/amterp/calcus/internal/service"
)

// TestStepJsonFieldSync ensures stepJson stays in sync with model.StepView.
// If this test fails, you probably added a field to model.StepView but forgot
// to add it to stepJson in json_output.go.
func TestStepJsonFieldSync(t *testing.T) {
	viewType := reflect.TypeOf(model.StepView{})
	jsonType := reflect.TypeOf(stepJson{})

	// Fields that exist in stepJson but not in model.StepView
	jsonOnly := map[string]bool{
		"Label": true, // Derived from Kind and Order
	}

	for i := 0; i < viewType.NumField(); i++ {
		field := viewType.Field(i)

		jsonField, found := jsonType.FieldByName(field.Name)
		if !found {
			t.Errorf("model.StepView has field %q but stepJson does not. "+
				"Add it to stepJson and stepToJson().", field.Name)
			continue
		}
		if !typesCompatible(field.Type, jsonField.Type) {
			t.Errorf("Field %q has type %v in model.StepView but %v in stepJson",
				field.Name, field.Type, jsonField.Type)
		}
	}

	for i := 0; i < jsonType.NumField(); i++ {
		fieldName := jsonType.Field(i).Name
		if jsonOnly[fieldName] {
			continue
		}
		if _, found := viewType.FieldByName(fieldName); !found {
			t.Errorf("stepJson has field %q that doesn't exist in model.StepView. "+
				"If this is intentional, add it to jsonOnly map.", fieldName)
		}
	}
}

// typesCompatible checks if two types are compatible for our purposes.
// It verifies element types for slices and maps to catch real type drift.
func typesCompatible(a, b reflect.Type) bool {
	if a == b {
		return true
	}
	if a.Kind() != b.Kind() {
		return false
	}

	switch a.Kind() {
	case reflect.Slice, reflect.Array, reflect.Ptr:
		return typesCompatible(a.Elem(), b.Elem())
	case reflect.Map:
		return typesCompatible(a.Key(), b.Key()) && typesCompatible(a.Elem(), b.Elem())
	default:
		return true
	}
}

func TestStepToJsonCopiesAllFields(t *testing.T) {
	view := model.StepView{
		ID:         "st_1",
		Kind:       model.StepDefault,
		Order:      1,
		Target:     1.5,
		Multiplier: 0.25,
	}

	sj := stepToJson(view)

	if sj.ID != view.ID {
		t.Errorf("ID mismatch: got %q, want %q", sj.ID, view.ID)
	}
	if sj.Label != "Step #2" {
		t.Errorf("Label mismatch: got %q, want %q", sj.Label, "Step #2")
	}
	if sj.Kind != view.Kind {
		t.Errorf("Kind mismatch: got %v, want %v", sj.Kind, view.Kind)
	}
	if sj.Order != view.Order {
		t.Errorf("Order mismatch: got %d, want %d", sj.Order, view.Order)
	}
	if sj.Target != view.Target {
		t.Errorf("Target mismatch: got %v, want %v", sj.Target, view.Target)
	}
	if sj.Multiplier != view.Multiplier {
		t.Errorf("Multiplier mismatch: got %v, want %v", sj.Multiplier, view.Multiplier)
	}
}

// TestEmptySlicesNotNull ensures an empty session serializes as [] not null.
func TestEmptySlicesNotNull(t *testing.T) {
	snap := service.NewSessionService(nil).Snapshot()
	g := grid.Build(&snap, grid.Options{})

	data, err := json.Marshal(NewCalcOutput(&snap, g))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(data), `"steps":[]`) {
		t.Errorf("Expected JSON to contain %q, got: %s", `"steps":[]`, string(data))
	}
	if strings.Contains(string(data), "null") {
		t.Errorf("Expected no null in JSON, got: %s", string(data))
	}
}

func TestCalcOutput_GridMatchesSnapshot(t *testing.T) {
	session := service.NewSessionService(nil)
	if err := populate(session, []colorSpec{{Name: "Red", Inputs: []float64{2}}}, []float64{1}, nil); err != nil {
		t.Fatalf("populate failed: %v", err)
	}
	snap := session.Snapshot()
	g := grid.Build(&snap, grid.Options{})

	out := NewCalcOutput(&snap, g)

	if len(out.Steps) != 1 || out.Steps[0].Label != "Step #1" {
		t.Fatalf("Expected one labelled step, got %+v", out.Steps)
	}
	if len(out.Grid.Rows) != len(out.Colors) {
		t.Errorf("Expected %d grid rows, got %d", len(out.Colors), len(out.Grid.Rows))
	}
	if len(out.Grid.Headers) != len(out.Grid.Rows[0]) {
		t.Errorf("Expected %d cells per row, got %d", len(out.Grid.Headers), len(out.Grid.Rows[0]))
	}
}
