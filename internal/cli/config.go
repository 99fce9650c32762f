package cli

import (
	"fmt"
	"strconv"

	"github.com/amterp/calcus/internal/config"
	"github.com/amterp/calcus/internal/model"
	"github.com/amterp/calcus/internal/store"
	"github.com/amterp/calcus/internal/version"
	"github.com/amterp/ra"
)

func registerConfig(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("config")
	cmd.SetDescription("Show or create the settings file")

	showCmd := ra.NewCmd("show")
	showCmd.SetDescription("Show the settings in effect")

	ctx.ConfigShowJson, _ = ra.NewBool("json").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Output as JSON").
		Register(showCmd)

	ctx.ConfigShowUsed, _ = cmd.RegisterCmd(showCmd)

	initCmd := ra.NewCmd("init")
	initCmd.SetDescription("Write a settings file with the defaults")

	ctx.ConfigInitForce, _ = ra.NewBool("force").
		SetShort("f").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Overwrite an existing settings file").
		Register(initCmd)

	ctx.ConfigInitUsed, _ = cmd.RegisterCmd(initCmd)

	ctx.ConfigUsed, _ = parent.RegisterCmd(cmd)
}

func runConfigShow(configPath string, jsonOutput bool) {
	settingsStore := store.NewSettingsStore(config.SettingsPath(configPath))
	settings, err := settingsStore.Load()
	if err != nil {
		Fatal(err)
	}

	if jsonOutput {
		if err := printJson(newSettingsOutput(settingsStore, settings)); err != nil {
			Fatal(err)
		}
		return
	}

	fmt.Println(describeSettings(settingsStore, settings))
}

// newSettingsOutput builds the JSON view of the settings in effect.
func newSettingsOutput(settingsStore store.SettingsStore, settings *model.Settings) SettingsOutput {
	return SettingsOutput{
		Path:     settingsStore.Path(),
		Exists:   settingsStore.Exists(),
		Schema:   version.CurrentSettingsSchema(),
		Settings: settings,
	}
}

// describeSettings renders the settings as aligned label/value lines.
func describeSettings(settingsStore store.SettingsStore, settings *model.Settings) string {
	const width = 18

	path := settingsStore.Path()
	switch {
	case path == "":
		path = RenderMuted("(no home directory)")
	case !settingsStore.Exists():
		path += " " + RenderMuted("(not created, using defaults)")
	}

	lines := []string{
		LabelValue("file", path, width),
		LabelValue("schema", version.CurrentSettingsSchema(), width),
		LabelValue("default_decrease", strconv.FormatFloat(settings.DefaultDecrease, 'f', -1, 64), width),
		LabelValue("color_name_format", strconv.Quote(settings.ColorNameFormat), width),
		LabelValue("summary_name", strconv.Quote(settings.SummaryName), width),
		LabelValue("precision", strconv.Itoa(settings.Precision), width),
		LabelValue("locale", settings.Locale, width),
		LabelValue("hide_intermediate", strconv.FormatBool(settings.HideIntermediate), width),
	}

	out := lines[0]
	for _, l := range lines[1:] {
		out += "\n" + l
	}
	return Box(out)
}

func runConfigInit(configPath string, force bool) {
	settingsStore := store.NewSettingsStore(config.SettingsPath(configPath))
	if err := initSettings(settingsStore, force); err != nil {
		Fatal(err)
	}
	PrintSuccess("Wrote %s", RenderURL(settingsStore.Path()))
}

// initSettings writes default settings. An existing file is only replaced
// with force, even if it no longer loads.
func initSettings(settingsStore store.SettingsStore, force bool) error {
	if settingsStore.Path() == "" {
		return fmt.Errorf("cannot determine settings path; pass --config")
	}
	if settingsStore.Exists() && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", settingsStore.Path())
	}
	return settingsStore.Save(model.DefaultSettings())
}
