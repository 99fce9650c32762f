package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/amterp/calcus/internal/grid"
	"github.com/amterp/calcus/internal/model"
	"github.com/amterp/calcus/internal/util"
	"github.com/amterp/ra"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/huh"
)

// Shell menu entries.
const (
	actionAddStep      = "Add step"
	actionAddRefill    = "Add refill"
	actionAddColor     = "Add color"
	actionSetValue     = "Set value"
	actionRenameColor  = "Rename color"
	actionRemoveLast   = "Remove last step"
	actionRemoveColors = "Remove colors"
	actionToggle       = "Toggle intermediate columns"
	actionCopy         = "Copy grid"
	actionClear        = "Clear"
	actionQuit         = "Quit"
)

var shellActions = []string{
	actionAddStep,
	actionAddRefill,
	actionAddColor,
	actionSetValue,
	actionRenameColor,
	actionRemoveLast,
	actionRemoveColors,
	actionToggle,
	actionCopy,
	actionClear,
	actionQuit,
}

func registerShell(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("shell")
	cmd.SetDescription("Edit a mixing table interactively")

	ctx.ShellUsed, _ = parent.RegisterCmd(cmd)
}

func runShell(configPath string, nonInteractive bool) {
	if nonInteractive {
		Fatal(fmt.Errorf("shell requires interactive mode"))
	}
	if !isTerminal(os.Stdin) {
		Fatal(fmt.Errorf("shell requires a terminal; use 'calcus calc' for scripted input"))
	}

	app, err := NewApp(configPath, true, slog.LevelWarn)
	if err != nil {
		Fatal(err)
	}

	sh := newShell(app, os.Stdout)
	if err := sh.Run(); err != nil && !errors.Is(err, huh.ErrUserAborted) {
		Fatal(err)
	}
}

// shell is an interactive editing loop over one session.
type shell struct {
	app              *App
	out              io.Writer
	hideIntermediate bool
	copyText         func(string) error
}

func newShell(app *App, out io.Writer) *shell {
	return &shell{
		app:              app,
		out:              out,
		hideIntermediate: app.Session.Settings().HideIntermediate,
		copyText:         clipboard.WriteAll,
	}
}

// Run renders the table and dispatches menu choices until the user quits.
// Action errors are reported and the loop continues; prompt errors end it.
func (s *shell) Run() error {
	for {
		if err := s.render(); err != nil {
			return err
		}

		action, err := s.app.Prompter.Select("What next?", shellActions)
		if err != nil {
			return err
		}

		quit, err := s.dispatch(action)
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				continue
			}
			PrintError("%v", err)
			continue
		}
		if quit {
			return nil
		}
	}
}

func (s *shell) grid() (*grid.Grid, error) {
	formatter, err := s.app.Formatter()
	if err != nil {
		return nil, err
	}
	snap := s.app.Session.Snapshot()
	return grid.Build(&snap, grid.Options{HideIntermediate: s.hideIntermediate, Formatter: formatter}), nil
}

func (s *shell) render() error {
	g, err := s.grid()
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, RenderGrid(g))
	return nil
}

// dispatch runs one menu action. Returns true when the shell should exit.
func (s *shell) dispatch(action string) (bool, error) {
	switch action {
	case actionAddStep:
		return false, s.addStep()
	case actionAddRefill:
		return false, s.addRefill()
	case actionAddColor:
		return false, s.addColor()
	case actionSetValue:
		return false, s.setValue()
	case actionRenameColor:
		return false, s.renameColor()
	case actionRemoveLast:
		return false, s.removeLastStep()
	case actionRemoveColors:
		return false, s.removeColors()
	case actionToggle:
		s.hideIntermediate = !s.hideIntermediate
		return false, nil
	case actionCopy:
		return false, s.copyGrid()
	case actionClear:
		return false, s.clear()
	case actionQuit:
		return true, nil
	}
	return false, fmt.Errorf("unknown action %q", action)
}

// promptNumber asks for a number, accepting "," as decimal separator.
func (s *shell) promptNumber(title string, defaultValue float64) (float64, error) {
	raw, err := s.app.Prompter.Input(title, strconv.FormatFloat(defaultValue, 'f', -1, 64))
	if err != nil {
		return 0, err
	}
	return util.ParseNumber(raw)
}

func (s *shell) addStep() error {
	target, err := s.promptNumber("Decrease target", s.app.Session.DefaultTarget())
	if err != nil {
		return err
	}
	step, err := s.app.Session.AddStep(target, model.StepDefault)
	if err != nil {
		return err
	}
	PrintSuccess("Added %s", step.Label())
	return nil
}

func (s *shell) addRefill() error {
	snap := s.app.Session.Snapshot()
	if snap.RefillStep() != nil {
		return fmt.Errorf("a refill step already exists")
	}

	target, err := s.promptNumber("Refill volume", s.app.Session.DefaultTarget())
	if err != nil {
		return err
	}
	step, err := s.app.Session.AddStep(target, model.StepRefill)
	if err != nil {
		return err
	}
	if step == nil {
		return fmt.Errorf("a refill step already exists")
	}
	PrintSuccess("Added %s", step.Label())
	return nil
}

func (s *shell) addColor() error {
	name, err := s.app.Prompter.Input("Color name (empty for default)", "")
	if err != nil {
		return err
	}
	color := s.app.Session.AddColor(name)
	PrintSuccess("Added %s", color.Name)
	return nil
}

func (s *shell) setValue() error {
	snap := s.app.Session.Snapshot()
	color, err := s.app.ColorResolver.Resolve(&snap, "", true)
	if err != nil {
		return err
	}
	step, err := s.app.StepResolver.Resolve(&snap, "", true)
	if err != nil {
		return err
	}
	if step.Kind == model.StepRefill {
		return fmt.Errorf("refill values are computed and cannot be edited")
	}

	var current float64
	if cell := snap.Cell(color.ID, step.ID); cell != nil {
		current = cell.Input
	}
	value, err := s.promptNumber(fmt.Sprintf("%s at %s", color.Name, step.Label()), current)
	if err != nil {
		return err
	}
	return s.app.Session.SetInput(color.ID, step.ID, value)
}

func (s *shell) renameColor() error {
	snap := s.app.Session.Snapshot()
	color, err := s.app.ColorResolver.Resolve(&snap, "", true)
	if err != nil {
		return err
	}
	name, err := s.app.Prompter.Input("New name", color.Name)
	if err != nil {
		return err
	}
	if err := s.app.Session.RenameColor(color.ID, name); err != nil {
		return err
	}
	PrintSuccess("Renamed %s", color.Name)
	return nil
}

func (s *shell) removeLastStep() error {
	if !s.app.Session.RemoveLastStep() {
		return fmt.Errorf("no steps to remove")
	}
	PrintSuccess("Removed last step")
	return nil
}

func (s *shell) removeColors() error {
	snap := s.app.Session.Snapshot()
	pigments := snap.Pigments()
	if len(pigments) == 0 {
		return fmt.Errorf("no colors to remove")
	}

	labels := make([]string, len(pigments))
	byLabel := make(map[string]string, len(pigments))
	for i, c := range pigments {
		labels[i] = fmt.Sprintf("%d. %s", c.Order, c.Name)
		byLabel[labels[i]] = c.ID
	}

	selected, err := s.app.Prompter.MultiSelect("Remove colors", labels)
	if err != nil {
		return err
	}

	removed := 0
	for _, label := range selected {
		if id, ok := byLabel[label]; ok && s.app.Session.RemoveColor(id) {
			removed++
		}
	}
	if removed > 0 {
		PrintSuccess("Removed %d color(s)", removed)
	}
	return nil
}

func (s *shell) copyGrid() error {
	g, err := s.grid()
	if err != nil {
		return err
	}
	if err := s.copyText(grid.TSV(g)); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	PrintSuccess("Copied grid to clipboard")
	return nil
}

func (s *shell) clear() error {
	ok, err := s.app.Prompter.Confirm("Clear all steps and colors?", false)
	if err != nil {
		return err
	}
	if ok {
		s.app.Session.Reset()
		PrintInfo("Cleared")
	}
	return nil
}
