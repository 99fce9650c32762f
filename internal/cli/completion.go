package cli

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/amterp/calcus/internal/config"
	"github.com/amterp/calcus/internal/model"
	"github.com/amterp/calcus/internal/store"
	"github.com/amterp/ra"
)

// commonLocales are offered by --locale completion after the configured one.
var commonLocales = []string{
	"en", "en-GB", "de", "fr", "es", "it", "nl", "pl", "pt", "pt-BR", "ru", "uk", "ja", "zh",
}

// completionCtx provides lightweight settings access for shell completion.
// Completion functions run during ParseOrExit, before NewApp() is called,
// so we can't use the full App.
type completionCtx struct {
	once     sync.Once
	settings *model.Settings
}

var compCtx completionCtx

func initCompletionCtx() {
	compCtx.once.Do(func() {
		settingsStore := store.NewSettingsStore(config.SettingsPath(configFromArgs(os.Args)))
		settings, err := settingsStore.Load()
		if err != nil {
			// Graceful degradation: complete without the configured locale
			settings = model.DefaultSettings()
		}
		compCtx.settings = settings
	})
}

// completeLocales returns locale tags matching the given prefix, the
// configured locale first.
func completeLocales(toComplete string) ([]string, ra.CompletionDirective) {
	initCompletionCtx()
	return matchLocales(compCtx.settings.Locale, toComplete), ra.CompletionDirectiveNoFileComp
}

func matchLocales(configured, toComplete string) []string {
	candidates := append([]string{configured}, commonLocales...)
	seen := make(map[string]bool, len(candidates))

	var result []string
	for _, l := range candidates {
		if l == "" || seen[l] {
			continue
		}
		seen[l] = true
		if strings.HasPrefix(strings.ToLower(l), strings.ToLower(toComplete)) {
			result = append(result, l)
		}
	}
	return result
}

// configFromArgs scans the argument list for an explicit --config flag value.
func configFromArgs(args []string) string {
	for i, arg := range args {
		// --config=value (skip empty values so fallback logic runs)
		if strings.HasPrefix(arg, "--config=") {
			if v := strings.TrimPrefix(arg, "--config="); v != "" {
				return v
			}
		}
		// --config value
		if arg == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

// registerCompletion adds the "calcus completion <shell>" command.
func registerCompletion(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("completion")
	cmd.SetDescription("Output shell completion script")

	ctx.CompletionShell, _ = ra.NewString("shell").
		SetUsage("Shell type").
		SetEnumConstraint([]string{"bash", "zsh"}).
		Register(cmd)

	ctx.CompletionUsed, _ = parent.RegisterCmd(cmd)
}

// runCompletion outputs the shell completion script to stdout.
func runCompletion(shell string, rootCmd *ra.Cmd) {
	var err error
	switch shell {
	case "bash":
		err = rootCmd.GenBashCompletion(os.Stdout)
	case "zsh":
		err = rootCmd.GenZshCompletion(os.Stdout)
	default:
		Fatal(fmt.Errorf("unsupported shell: %s (supported: bash, zsh)", shell))
	}
	if err != nil {
		Fatal(fmt.Errorf("failed to generate completion script: %w", err))
	}
}
