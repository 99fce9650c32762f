package calc

import "github.com/amterp/calcus/internal/model"

// defaultStep dilutes every pigment by the same multiplier so that the
// total volume decreases by the step's target.
type defaultStep struct{}

func (defaultStep) calculate(step, previous *model.Step, working []*model.Color, summary *model.Color) {
	var sum totals

	for _, color := range working {
		cell := color.Cell(step.ID)
		if cell == nil {
			continue
		}
		cell.Current = cell.Input + residual(color, previous)
		sum.input += cell.Input
		sum.current += cell.Current
	}

	mult := Multiplier(sum.current, step.Target)
	step.Multiplier = mult

	for _, color := range working {
		cell := color.Cell(step.ID)
		if cell == nil {
			continue
		}
		cell.After = cell.Current * mult
		sum.after += cell.After
	}

	sum.writeTo(summary, step.ID)
}

// Multiplier returns the dilution factor for a default step: the share of
// totalCurrent left after removing target, clamped to [0, 1]. A
// non-positive total yields 1.
func Multiplier(totalCurrent, target float64) float64 {
	if totalCurrent <= 0 {
		return 1.0
	}
	mult := (totalCurrent - target) / totalCurrent
	if mult < 0 {
		return 0
	}
	if mult > 1 {
		return 1
	}
	return mult
}

// refillStep adds the step's target volume on top of the previous
// residuals, distributed in proportion to each pigment's share.
type refillStep struct{}

func (refillStep) calculate(step, previous *model.Step, working []*model.Color, summary *model.Color) {
	if previous == nil {
		return
	}

	var totalPreviousAfter float64
	for _, color := range working {
		totalPreviousAfter += residual(color, previous)
	}
	if totalPreviousAfter <= 0 {
		return
	}

	factor := step.Target / totalPreviousAfter

	var sum totals
	for _, color := range working {
		cell := color.Cell(step.ID)
		prev := color.Cell(previous.ID)
		if cell == nil || prev == nil {
			continue
		}

		cell.Current = prev.After * factor
		cell.Input = cell.Current
		cell.After = cell.Current + prev.After

		sum.input += cell.Input
		sum.current += cell.Current
		sum.after += cell.After
	}

	sum.writeTo(summary, step.ID)
	step.Multiplier = factor
}
