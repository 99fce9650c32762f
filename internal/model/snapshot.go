package model

import "fmt"

// StepView is a read-only copy of a Step for readers outside the session lock.
type StepView struct {
	ID         string   `json:"id"`
	Kind       StepKind `json:"kind"`
	Order      int      `json:"order"`
	Target     float64  `json:"target"`
	Multiplier float64  `json:"multiplier"`
}

// Label returns the display name of the step: "Step #n" (1-based) or
// "Refill".
func (v StepView) Label() string {
	if v.Kind == StepRefill {
		return "Refill"
	}
	return fmt.Sprintf("Step #%d", v.Order+1)
}

// CellView is a read-only copy of a Cell.
type CellView struct {
	StepID  string  `json:"step_id"`
	Input   float64 `json:"input"`
	Current float64 `json:"current"`
	After   float64 `json:"after"`
}

// ColorView is a read-only copy of a Color with its cells in step order.
type ColorView struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Order     int        `json:"order"`
	IsSummary bool       `json:"is_summary"`
	Swatch    string     `json:"swatch,omitempty"`
	Cells     []CellView `json:"cells"`

	// Result is the residual after the last step, 0 when there are no steps.
	Result float64 `json:"result"`
}

// Snapshot is a deep copy of a session: steps and colors in display order.
type Snapshot struct {
	Revision uint64      `json:"revision"`
	Steps    []StepView  `json:"steps"`
	Colors   []ColorView `json:"colors"`
}

// NewStepView copies a step.
func NewStepView(s *Step) StepView {
	return StepView{
		ID:         s.ID,
		Kind:       s.Kind,
		Order:      s.Order,
		Target:     s.Target,
		Multiplier: s.Multiplier,
	}
}

// NewColorView copies a color, laying its cells out in the order of steps.
// Steps without a cell on this color are reported as zero cells.
func NewColorView(c *Color, steps []*Step) ColorView {
	view := ColorView{
		ID:        c.ID,
		Name:      c.Name,
		Order:     c.Order,
		IsSummary: c.IsSummary,
		Swatch:    c.Swatch,
		Cells:     make([]CellView, 0, len(steps)),
	}
	for _, step := range steps {
		cv := CellView{StepID: step.ID}
		if cell := c.Cell(step.ID); cell != nil {
			cv.Input = cell.Input
			cv.Current = cell.Current
			cv.After = cell.After
		}
		view.Cells = append(view.Cells, cv)
	}
	if n := len(view.Cells); n > 0 {
		view.Result = view.Cells[n-1].After
	}
	return view
}

// Summary returns the summary row, or nil if the snapshot has none.
func (s Snapshot) Summary() *ColorView {
	for i := range s.Colors {
		if s.Colors[i].IsSummary {
			return &s.Colors[i]
		}
	}
	return nil
}

// Pigments returns the non-summary rows in order.
func (s Snapshot) Pigments() []ColorView {
	result := make([]ColorView, 0, len(s.Colors))
	for _, c := range s.Colors {
		if !c.IsSummary {
			result = append(result, c)
		}
	}
	return result
}

// Step returns the step with the given ID, or nil.
func (s Snapshot) Step(id string) *StepView {
	for i := range s.Steps {
		if s.Steps[i].ID == id {
			return &s.Steps[i]
		}
	}
	return nil
}

// Color returns the color with the given ID, or nil.
func (s Snapshot) Color(id string) *ColorView {
	for i := range s.Colors {
		if s.Colors[i].ID == id {
			return &s.Colors[i]
		}
	}
	return nil
}

// Cell returns the cell at (colorID, stepID), or nil.
func (s Snapshot) Cell(colorID, stepID string) *CellView {
	color := s.Color(colorID)
	if color == nil {
		return nil
	}
	for i := range color.Cells {
		if color.Cells[i].StepID == stepID {
			return &color.Cells[i]
		}
	}
	return nil
}

// LastStep returns the highest-order step, or nil with no steps.
func (s Snapshot) LastStep() *StepView {
	if len(s.Steps) == 0 {
		return nil
	}
	return &s.Steps[len(s.Steps)-1]
}

// RefillStep returns the refill step, or nil.
func (s Snapshot) RefillStep() *StepView {
	for i := range s.Steps {
		if s.Steps[i].Kind == StepRefill {
			return &s.Steps[i]
		}
	}
	return nil
}
