package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	calcerr "github.com/amterp/calcus/internal/errors"
	"github.com/amterp/calcus/internal/grid"
	"github.com/amterp/calcus/internal/model"
	"github.com/amterp/calcus/internal/service"
	"github.com/amterp/calcus/internal/util"
	"github.com/amterp/ra"
	"github.com/atotto/clipboard"
)

func registerCalc(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("calc")
	cmd.SetDescription("Calculate a mixing table in one shot")

	ctx.CalcColors, _ = ra.NewStringSlice("color").
		SetShort("c").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Pigment with its inputs per step (NAME=v1,v2,..., repeatable)").
		Register(cmd)

	ctx.CalcSteps, _ = ra.NewStringSlice("step").
		SetShort("s").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Decrease target of a step (repeatable, default from settings)").
		Register(cmd)

	ctx.CalcRefill, _ = ra.NewString("refill").
		SetShort("r").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Volume to refill after the last step").
		Register(cmd)

	ctx.CalcCompact, _ = ra.NewBool("compact").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Hide current and residual columns").
		Register(cmd)

	ctx.CalcJson, _ = ra.NewBool("json").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Output as JSON").
		Register(cmd)

	ctx.CalcCopy, _ = ra.NewBool("copy").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Copy the grid to the clipboard as tab-separated values").
		Register(cmd)

	ctx.CalcPrecision, _ = ra.NewInt("precision").
		SetOptional(true).
		SetDefault(-1).
		SetFlagOnly(true).
		SetUsage("Decimals to show (default from settings)").
		Register(cmd)

	ctx.CalcLocale, _ = ra.NewString("locale").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Locale for number formatting (default from settings)").
		SetCompletionFunc(completeLocales).
		Register(cmd)

	ctx.CalcUsed, _ = parent.RegisterCmd(cmd)
}

// calcOptions carries the parsed calc flags.
type calcOptions struct {
	ConfigPath string
	Colors     []string
	Steps      []string
	Refill     string
	Compact    bool
	Json       bool
	Copy       bool
	Precision  int // Negative keeps the configured precision
	Locale     string
}

// colorSpec is one parsed --color flag.
type colorSpec struct {
	Name   string
	Inputs []float64
}

// parseColorSpec parses NAME=v1,v2,... A bare NAME has no inputs and an
// empty NAME gets a generated label. Inputs use "." as decimal separator
// since "," separates them.
func parseColorSpec(spec string) (colorSpec, error) {
	name, values, hasValues := strings.Cut(spec, "=")
	result := colorSpec{Name: strings.TrimSpace(name)}
	if !hasValues || strings.TrimSpace(values) == "" {
		return result, nil
	}

	for i, raw := range strings.Split(values, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			result.Inputs = append(result.Inputs, 0)
			continue
		}
		v, err := util.ParseNumber(raw)
		if err != nil {
			return colorSpec{}, calcerr.InvalidField("color", fmt.Sprintf("%q: value %d: %v", spec, i+1, err))
		}
		result.Inputs = append(result.Inputs, v)
	}
	return result, nil
}

// parseTargets parses the --step values.
func parseTargets(raw []string) ([]float64, error) {
	targets := make([]float64, 0, len(raw))
	for _, r := range raw {
		v, err := util.ParseNumber(r)
		if err != nil {
			return nil, calcerr.InvalidField("step", err.Error())
		}
		targets = append(targets, v)
	}
	return targets, nil
}

// populate fills a fresh session. One default step is added per target;
// colors with more inputs than targets get extra steps at the default
// decrease. Inputs map to default steps in order and missing ones stay 0.
func populate(session *service.SessionService, colors []colorSpec, targets []float64, refill *float64) error {
	stepCount := len(targets)
	for _, c := range colors {
		stepCount = max(stepCount, len(c.Inputs))
	}

	stepIDs := make([]string, 0, stepCount)
	for i := 0; i < stepCount; i++ {
		target := session.DefaultTarget()
		if i < len(targets) {
			target = targets[i]
		}
		step, err := session.AddStep(target, model.StepDefault)
		if err != nil {
			return err
		}
		stepIDs = append(stepIDs, step.ID)
	}

	for _, c := range colors {
		color := session.AddColor(c.Name)
		for i, input := range c.Inputs {
			if err := session.SetInput(color.ID, stepIDs[i], input); err != nil {
				return err
			}
		}
	}

	if refill != nil {
		if _, err := session.AddStep(*refill, model.StepRefill); err != nil {
			return err
		}
	}

	return session.Recalculate()
}

func runCalc(opts calcOptions) {
	app, err := NewApp(opts.ConfigPath, false, slog.LevelWarn)
	if err != nil {
		Fatal(err)
	}

	if err := applyDisplayOverrides(app, opts.Precision, opts.Locale); err != nil {
		Fatal(err)
	}

	colors := make([]colorSpec, 0, len(opts.Colors))
	for _, raw := range opts.Colors {
		spec, err := parseColorSpec(raw)
		if err != nil {
			Fatal(err)
		}
		colors = append(colors, spec)
	}

	targets, err := parseTargets(opts.Steps)
	if err != nil {
		Fatal(err)
	}

	var refill *float64
	if opts.Refill != "" {
		v, err := util.ParseNumber(opts.Refill)
		if err != nil {
			Fatal(calcerr.InvalidField("refill", err.Error()))
		}
		refill = &v
	}

	if err := populate(app.Session, colors, targets, refill); err != nil {
		Fatal(err)
	}

	formatter, err := app.Formatter()
	if err != nil {
		Fatal(err)
	}
	hide := opts.Compact || app.Session.Settings().HideIntermediate
	snap := app.Session.Snapshot()
	g := grid.Build(&snap, grid.Options{HideIntermediate: hide, Formatter: formatter})

	if opts.Json {
		if err := printJson(NewCalcOutput(&snap, g)); err != nil {
			Fatal(err)
		}
	} else if isTerminal(os.Stdout) {
		fmt.Println(RenderGrid(g))
	} else {
		// Piped output stays machine-readable
		fmt.Print(grid.TSV(g))
	}

	if opts.Copy {
		if err := clipboard.WriteAll(grid.TSV(g)); err != nil {
			Fatal(fmt.Errorf("failed to copy to clipboard: %w", err))
		}
		if !opts.Json && isTerminal(os.Stdout) {
			PrintSuccess("Copied grid to clipboard")
		}
	}
}

// applyDisplayOverrides applies per-run precision and locale flags on top
// of the loaded settings.
func applyDisplayOverrides(app *App, precision int, locale string) error {
	if precision < 0 && locale == "" {
		return nil
	}
	settings := app.Session.Settings()
	if precision >= 0 {
		settings.Precision = precision
	}
	if locale != "" {
		settings.Locale = locale
	}
	return app.Session.ApplySettings(&settings)
}
