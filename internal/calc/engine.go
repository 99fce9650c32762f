package calc

import (
	calcerr "github.com/amterp/calcus/internal/errors"
	"github.com/amterp/calcus/internal/model"
)

// Table is the read access the engine needs. Both methods must return
// entities sorted by Order.
type Table interface {
	Steps() []*model.Step
	Colors() []*model.Color
}

// stepCalculator computes the derived values of one step kind.
// previous is nil for the first step.
type stepCalculator interface {
	calculate(step, previous *model.Step, working []*model.Color, summary *model.Color)
}

// Engine recomputes every derived value of a table.
type Engine struct {
	calculators map[model.StepKind]stepCalculator
}

// NewEngine creates an engine with the default and refill calculators.
func NewEngine() *Engine {
	return &Engine{
		calculators: map[model.StepKind]stepCalculator{
			model.StepDefault: defaultStep{},
			model.StepRefill:  refillStep{},
		},
	}
}

// Recalculate recomputes currents, residuals, multipliers and summary
// totals for every step. With no steps or no colors it does nothing.
// A table without a summary row is rejected before anything is written.
func (e *Engine) Recalculate(t Table) error {
	steps := t.Steps()
	colors := t.Colors()
	if len(steps) == 0 || len(colors) == 0 {
		return nil
	}

	var summary *model.Color
	working := make([]*model.Color, 0, len(colors))
	for _, c := range colors {
		if c.IsSummary {
			if summary == nil {
				summary = c
			}
			continue
		}
		working = append(working, c)
	}
	if summary == nil {
		return calcerr.MissingSummary()
	}

	var previous *model.Step
	for _, step := range steps {
		calc, ok := e.calculators[step.Kind]
		if !ok {
			continue
		}
		calc.calculate(step, previous, working, summary)
		previous = step
	}
	return nil
}

// totals accumulates the per-step sums written to the summary row.
type totals struct {
	input   float64
	current float64
	after   float64
}

func (t totals) writeTo(summary *model.Color, stepID string) {
	cell := summary.Cell(stepID)
	if cell == nil {
		return
	}
	cell.Input = t.input
	cell.Current = t.current
	cell.After = t.after
}

// residual returns the previous step's After for a color, 0 if none.
func residual(color *model.Color, previous *model.Step) float64 {
	if previous == nil {
		return 0
	}
	if cell := color.Cell(previous.ID); cell != nil {
		return cell.After
	}
	return 0
}
