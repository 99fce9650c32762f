package model

// Cell is the state of one color at one step.
// Identity is the (ColorID, StepID) pair.
type Cell struct {
	ColorID string
	StepID  string

	Input   float64 // User-entered on default steps, computed on the refill step
	Current float64 // Input plus the residual carried from the previous step
	After   float64 // Residual carried into the next step
}

// Reset zeroes all values, keeping identity.
func (c *Cell) Reset() {
	c.Input = 0
	c.Current = 0
	c.After = 0
}
