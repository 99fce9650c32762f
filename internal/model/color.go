package model

// Color is one pigment row. Exactly one color per table is the summary
// row, which aggregates the others and is never an input.
type Color struct {
	ID        string
	Name      string
	Order     int // 1-based among pigments; the summary row is always last
	IsSummary bool
	Swatch    string // Display color, presentation only

	// Cells holds one cell per step, keyed by step ID.
	Cells map[string]*Cell
}

// Cell returns the cell for the given step, or nil if there is none.
func (c *Color) Cell(stepID string) *Cell {
	if c.Cells == nil {
		return nil
	}
	return c.Cells[stepID]
}
