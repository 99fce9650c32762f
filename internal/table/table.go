// Package table maintains the colors and steps of a calculation session.
//
// Entities live in an arena keyed by stable ID; display and calculation
// order come from the explicit Order fields, which the reindex routines
// recompute after every structural change. Map iteration order is never
// relied upon.
package table

import (
	"fmt"
	"sort"

	"github.com/amterp/calcus/internal/id"
	"github.com/amterp/calcus/internal/model"
)

// DefaultSummaryName labels the summary row when no option overrides it.
const DefaultSummaryName = "Total:"

// Table owns the steps and colors of one session.
// It is not safe for concurrent use; the service layer serializes access.
type Table struct {
	steps  map[string]*model.Step
	colors map[string]*model.Color

	// Insertion sequence numbers, used to break ordering ties.
	stepSeq  map[string]uint64
	colorSeq map[string]uint64
	nextSeq  uint64

	// Number of pigment rows ever created, drives swatch assignment.
	created int

	summaryID  string
	colorLabel func(n int) string
	newID      func(kind id.Kind) string
}

// Option configures a Table.
type Option func(*tableOptions)

type tableOptions struct {
	summaryName string
	colorLabel  func(n int) string
	newID       func(kind id.Kind) string
}

// WithSummaryName sets the name of the summary row.
func WithSummaryName(name string) Option {
	return func(o *tableOptions) {
		if name != "" {
			o.summaryName = name
		}
	}
}

// WithColorLabel sets the generator for default pigment names.
// It receives the 1-based position the new pigment will take.
func WithColorLabel(fn func(n int) string) Option {
	return func(o *tableOptions) {
		if fn != nil {
			o.colorLabel = fn
		}
	}
}

// WithIDGenerator overrides ID generation.
func WithIDGenerator(fn func(kind id.Kind) string) Option {
	return func(o *tableOptions) {
		if fn != nil {
			o.newID = fn
		}
	}
}

// New creates a table holding only the summary row.
func New(opts ...Option) *Table {
	o := tableOptions{
		summaryName: DefaultSummaryName,
		colorLabel:  func(n int) string { return fmt.Sprintf("Color %d", n) },
		newID:       id.Generate,
	}
	for _, opt := range opts {
		opt(&o)
	}

	t := &Table{
		steps:      make(map[string]*model.Step),
		colors:     make(map[string]*model.Color),
		stepSeq:    make(map[string]uint64),
		colorSeq:   make(map[string]uint64),
		colorLabel: o.colorLabel,
		newID:      o.newID,
	}

	summary := &model.Color{
		ID:        t.uniqueID(id.Color),
		Name:      o.summaryName,
		IsSummary: true,
		Swatch:    model.SummarySwatch,
		Cells:     make(map[string]*model.Cell),
	}
	t.summaryID = summary.ID
	t.colors[summary.ID] = summary
	t.colorSeq[summary.ID] = t.seq()
	t.ReindexColors()

	return t
}

// SetColorLabel replaces the generator for default pigment names.
// Existing names are kept.
func (t *Table) SetColorLabel(fn func(n int) string) {
	if fn != nil {
		t.colorLabel = fn
	}
}

// SetSummaryName renames the summary row. Empty names are ignored.
func (t *Table) SetSummaryName(name string) {
	if name != "" {
		t.Summary().Name = name
	}
}

// AddStep creates a step and a zeroed cell for it on every color.
// Returns nil without changing anything if kind is refill and a refill
// step already exists.
func (t *Table) AddStep(target float64, kind model.StepKind) *model.Step {
	if kind == model.StepRefill && t.HasRefill() {
		return nil
	}

	step := &model.Step{
		ID:     t.uniqueID(id.Step),
		Kind:   kind,
		Order:  len(t.steps),
		Target: target,
	}
	t.steps[step.ID] = step
	t.stepSeq[step.ID] = t.seq()

	for _, color := range t.colors {
		color.Cells[step.ID] = &model.Cell{ColorID: color.ID, StepID: step.ID}
	}

	t.ReindexSteps()
	return step
}

// RemoveStep removes a step and its cell from every color.
// Nil or unknown steps are ignored.
func (t *Table) RemoveStep(step *model.Step) {
	if step == nil {
		return
	}
	if _, ok := t.steps[step.ID]; !ok {
		return
	}

	delete(t.steps, step.ID)
	delete(t.stepSeq, step.ID)
	for _, color := range t.colors {
		delete(color.Cells, step.ID)
	}

	t.ReindexSteps()
}

// RemoveLastStep removes the highest-order step and returns it.
// Returns nil if there are no steps.
func (t *Table) RemoveLastStep() *model.Step {
	steps := t.Steps()
	if len(steps) == 0 {
		return nil
	}
	last := steps[len(steps)-1]
	t.RemoveStep(last)
	return last
}

// AddColor creates a pigment row just above the summary row, with a zeroed
// cell for every existing step. An empty name gets a generated label.
func (t *Table) AddColor(name string) *model.Color {
	pigments := len(t.colors) - 1
	if name == "" {
		name = t.colorLabel(pigments + 1)
	}

	color := &model.Color{
		ID:     t.uniqueID(id.Color),
		Name:   name,
		Order:  pigments + 1,
		Swatch: model.NextSwatch(t.created),
		Cells:  make(map[string]*model.Cell, len(t.steps)),
	}
	t.created++

	for stepID := range t.steps {
		color.Cells[stepID] = &model.Cell{ColorID: color.ID, StepID: stepID}
	}

	t.colors[color.ID] = color
	t.colorSeq[color.ID] = t.seq()

	t.ReindexColors()
	return color
}

// RemoveColor removes a pigment row and its cells.
// Nil, unknown, and summary colors are ignored.
func (t *Table) RemoveColor(color *model.Color) {
	if color == nil || color.IsSummary {
		return
	}
	if _, ok := t.colors[color.ID]; !ok {
		return
	}

	delete(t.colors, color.ID)
	delete(t.colorSeq, color.ID)

	t.ReindexColors()
}

// ReindexColors renumbers pigments 1..n in insertion order and gives the
// summary row n+1.
func (t *Table) ReindexColors() {
	pigments := make([]*model.Color, 0, len(t.colors))
	for _, c := range t.colors {
		if !c.IsSummary {
			pigments = append(pigments, c)
		}
	}
	sort.Slice(pigments, func(i, j int) bool {
		return t.colorSeq[pigments[i].ID] < t.colorSeq[pigments[j].ID]
	})

	idx := 1
	for _, c := range pigments {
		c.Order = idx
		idx++
	}
	if summary := t.Summary(); summary != nil {
		summary.Order = idx
	}
}

// ReindexSteps renumbers steps 0..n-1: default steps first, then the
// refill step, each group in insertion order.
func (t *Table) ReindexSteps() {
	steps := make([]*model.Step, 0, len(t.steps))
	for _, s := range t.steps {
		steps = append(steps, s)
	}
	sort.Slice(steps, func(i, j int) bool {
		if steps[i].Kind != steps[j].Kind {
			return steps[i].Kind == model.StepDefault
		}
		return t.stepSeq[steps[i].ID] < t.stepSeq[steps[j].ID]
	})

	for i, s := range steps {
		s.Order = i
	}
}

// Steps returns all steps sorted by Order.
func (t *Table) Steps() []*model.Step {
	steps := make([]*model.Step, 0, len(t.steps))
	for _, s := range t.steps {
		steps = append(steps, s)
	}
	sort.Slice(steps, func(i, j int) bool { return steps[i].Order < steps[j].Order })
	return steps
}

// Colors returns all colors, summary included, sorted by Order.
func (t *Table) Colors() []*model.Color {
	colors := make([]*model.Color, 0, len(t.colors))
	for _, c := range t.colors {
		colors = append(colors, c)
	}
	sort.Slice(colors, func(i, j int) bool { return colors[i].Order < colors[j].Order })
	return colors
}

// Summary returns the summary row.
func (t *Table) Summary() *model.Color {
	return t.colors[t.summaryID]
}

// Step returns the step with the given ID, or nil.
func (t *Table) Step(stepID string) *model.Step {
	return t.steps[stepID]
}

// Color returns the color with the given ID, or nil.
func (t *Table) Color(colorID string) *model.Color {
	return t.colors[colorID]
}

// Cell returns the cell at (colorID, stepID), or nil.
func (t *Table) Cell(colorID, stepID string) *model.Cell {
	color := t.colors[colorID]
	if color == nil {
		return nil
	}
	return color.Cell(stepID)
}

// RefillStep returns the refill step, or nil.
func (t *Table) RefillStep() *model.Step {
	for _, s := range t.steps {
		if s.Kind == model.StepRefill {
			return s
		}
	}
	return nil
}

// HasRefill reports whether a refill step exists.
func (t *Table) HasRefill() bool {
	return t.RefillStep() != nil
}

// StepCount returns the number of steps.
func (t *Table) StepCount() int {
	return len(t.steps)
}

// ColorCount returns the number of colors, summary included.
func (t *Table) ColorCount() int {
	return len(t.colors)
}

func (t *Table) seq() uint64 {
	t.nextSeq++
	return t.nextSeq
}

// maxIDAttempts bounds the draws in uniqueID.
const maxIDAttempts = 100

// uniqueID draws IDs until one is unused; generated IDs carry only a few
// random characters per tick. Panics after maxIDAttempts collisions.
func (t *Table) uniqueID(kind id.Kind) string {
	for range maxIDAttempts {
		candidate := t.newID(kind)
		_, stepTaken := t.steps[candidate]
		_, colorTaken := t.colors[candidate]
		if !stepTaken && !colorTaken {
			return candidate
		}
	}
	panic(fmt.Sprintf("table: no unused ID of kind %q after %d attempts", kind, maxIDAttempts))
}
