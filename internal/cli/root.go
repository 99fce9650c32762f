package cli

import (
	"os"

	"github.com/amterp/ra"
)

// CommandContext holds parsed values and used flags for all commands.
type CommandContext struct {
	// Global flags
	NonInteractive *bool
	ConfigPath     *string

	// calc command
	CalcUsed      *bool
	CalcColors    *[]string
	CalcSteps     *[]string
	CalcRefill    *string
	CalcCompact   *bool
	CalcJson      *bool
	CalcCopy      *bool
	CalcPrecision *int
	CalcLocale    *string

	// shell command
	ShellUsed *bool

	// serve command
	ServeUsed   *bool
	ServePort   *int
	ServeNoOpen *bool

	// config command
	ConfigUsed *bool

	// config show
	ConfigShowUsed *bool
	ConfigShowJson *bool

	// config init
	ConfigInitUsed  *bool
	ConfigInitForce *bool

	// completion command
	CompletionUsed  *bool
	CompletionShell *string
}

// Run is the main entry point for the CLI.
func Run() {
	ctx := &CommandContext{}

	cmd := ra.NewCmd("calcus")
	cmd.SetDescription("Paint dilution and mixing calculator")

	// Global flag for non-interactive mode
	ctx.NonInteractive, _ = ra.NewBool("non-interactive").
		SetShort("I").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Fail instead of prompting for missing input").
		Register(cmd, ra.WithGlobal(true))

	ctx.ConfigPath, _ = ra.NewString("config").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Settings file (default $CALCUS_CONFIG or ~/.config/calcus/config.toml)").
		Register(cmd, ra.WithGlobal(true))

	// Register all subcommands
	registerCalc(cmd, ctx)
	registerShell(cmd, ctx)
	registerServe(cmd, ctx)
	registerConfig(cmd, ctx)
	registerCompletion(cmd, ctx)

	// Parse command line
	cmd.ParseOrExit(os.Args[1:])

	// Execute the appropriate command
	executeCommand(ctx, cmd)
}

func executeCommand(ctx *CommandContext, rootCmd *ra.Cmd) {
	switch {
	case *ctx.CalcUsed:
		runCalc(calcOptions{
			ConfigPath: *ctx.ConfigPath,
			Colors:     *ctx.CalcColors,
			Steps:      *ctx.CalcSteps,
			Refill:     *ctx.CalcRefill,
			Compact:    *ctx.CalcCompact,
			Json:       *ctx.CalcJson,
			Copy:       *ctx.CalcCopy,
			Precision:  *ctx.CalcPrecision,
			Locale:     *ctx.CalcLocale,
		})

	case *ctx.ShellUsed:
		runShell(*ctx.ConfigPath, *ctx.NonInteractive)

	case *ctx.ServeUsed:
		runServe(*ctx.ConfigPath, *ctx.ServePort, *ctx.ServeNoOpen)

	case *ctx.ConfigShowUsed:
		runConfigShow(*ctx.ConfigPath, *ctx.ConfigShowJson)

	case *ctx.ConfigInitUsed:
		runConfigInit(*ctx.ConfigPath, *ctx.ConfigInitForce)

	case *ctx.CompletionUsed:
		runCompletion(*ctx.CompletionShell, rootCmd)
	}
}
