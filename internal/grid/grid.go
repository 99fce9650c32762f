// Package grid lays a session snapshot out as a table of display strings:
// one row per color and, per step, an input column optionally followed by
// current and residual columns, then a final result column.
package grid

import (
	"github.com/amterp/calcus/internal/model"
	"github.com/amterp/calcus/internal/util"
)

// ColumnKind identifies what a column shows.
type ColumnKind string

const (
	ColumnName     ColumnKind = "name"
	ColumnInput    ColumnKind = "input"
	ColumnCurrent  ColumnKind = "current"
	ColumnResidual ColumnKind = "residual"
	ColumnResult   ColumnKind = "result"
)

// Column describes one grid column.
type Column struct {
	Header string     `json:"header"`
	Kind   ColumnKind `json:"kind"`
	StepID string     `json:"step_id,omitempty"`

	// Editable is true for default-step input columns. Summary cells are
	// never editable regardless.
	Editable bool `json:"editable"`
}

// Row is one color's formatted values, aligned with Grid.Columns.
type Row struct {
	ColorID   string   `json:"color_id"`
	IsSummary bool     `json:"is_summary"`
	Swatch    string   `json:"swatch,omitempty"`
	Cells     []string `json:"cells"`
}

// Grid is a presentation-neutral table.
type Grid struct {
	Columns []Column `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// Options controls layout and number formatting.
type Options struct {
	HideIntermediate bool
	Formatter        *util.Formatter
}

// Headers returns the column headers in order.
func (g *Grid) Headers() []string {
	headers := make([]string, len(g.Columns))
	for i, c := range g.Columns {
		headers[i] = c.Header
	}
	return headers
}

// Build lays out the snapshot. A nil Formatter formats in English with two
// decimals.
func Build(snap *model.Snapshot, opts Options) *Grid {
	f := opts.Formatter
	if f == nil {
		f, _ = util.NewFormatter("en", 2)
	}

	g := &Grid{Columns: []Column{{Header: "Pigment", Kind: ColumnName}}}
	for _, step := range snap.Steps {
		g.Columns = append(g.Columns, Column{
			Header:   step.Label(),
			Kind:     ColumnInput,
			StepID:   step.ID,
			Editable: step.Kind == model.StepDefault,
		})
		if opts.HideIntermediate {
			continue
		}
		g.Columns = append(g.Columns,
			Column{
				Header: "current | mult: " + f.Number(step.Multiplier),
				Kind:   ColumnCurrent,
				StepID: step.ID,
			},
			Column{
				Header: residualHeader(step, f),
				Kind:   ColumnResidual,
				StepID: step.ID,
			},
		)
	}
	if len(snap.Steps) > 0 {
		g.Columns = append(g.Columns, Column{Header: "Result", Kind: ColumnResult})
	}

	for _, color := range snap.Colors {
		g.Rows = append(g.Rows, buildRow(color, g.Columns, f))
	}
	return g
}

func residualHeader(step model.StepView, f *util.Formatter) string {
	if step.Kind == model.StepRefill {
		return "residual | refill: " + f.Number(step.Target)
	}
	return "residual | decrease: " + f.Number(step.Target)
}

func buildRow(color model.ColorView, columns []Column, f *util.Formatter) Row {
	cells := make(map[string]model.CellView, len(color.Cells))
	for _, c := range color.Cells {
		cells[c.StepID] = c
	}

	row := Row{
		ColorID:   color.ID,
		IsSummary: color.IsSummary,
		Swatch:    color.Swatch,
		Cells:     make([]string, len(columns)),
	}
	for i, col := range columns {
		cell := cells[col.StepID]
		switch col.Kind {
		case ColumnName:
			row.Cells[i] = color.Name
		case ColumnInput:
			row.Cells[i] = f.Number(cell.Input)
		case ColumnCurrent:
			row.Cells[i] = f.Number(cell.Current)
		case ColumnResidual:
			row.Cells[i] = f.Number(cell.After)
		case ColumnResult:
			row.Cells[i] = f.Number(color.Result)
		}
	}
	return row
}
