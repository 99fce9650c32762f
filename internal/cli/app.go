package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/amterp/calcus/internal/config"
	"github.com/amterp/calcus/internal/model"
	"github.com/amterp/calcus/internal/prompt"
	"github.com/amterp/calcus/internal/resolver"
	"github.com/amterp/calcus/internal/service"
	"github.com/amterp/calcus/internal/store"
	"github.com/amterp/calcus/internal/telemetry"
	"github.com/amterp/calcus/internal/util"
)

// App holds all the dependencies for the CLI.
// Uses interfaces for testability.
type App struct {
	SettingsStore store.SettingsStore
	Session       *service.SessionService
	Prompter      prompt.Prompter
	ColorResolver *resolver.ColorResolver
	StepResolver  *resolver.StepResolver
	Logger        *slog.Logger
	Interactive   bool
}

// NewApp creates a new App with all dependencies wired up.
// If interactive is false, uses NoopPrompter that fails on prompts.
// Logs below logLevel are dropped unless LOG_LEVEL says otherwise.
func NewApp(configPath string, interactive bool, logLevel slog.Level) (*App, error) {
	logger := telemetry.SetupLogger(os.Stderr, logLevel)

	settingsStore := store.NewSettingsStore(config.SettingsPath(configPath))
	settings, err := settingsStore.Load()
	if err != nil {
		return nil, err
	}

	var prompter prompt.Prompter
	if interactive {
		prompter = prompt.NewHuhPrompter()
	} else {
		prompter = &prompt.NoopPrompter{}
	}

	return newAppWith(settingsStore, settings, prompter, logger, interactive), nil
}

// newAppWith wires an App around already loaded settings.
func newAppWith(settingsStore store.SettingsStore, settings *model.Settings, prompter prompt.Prompter, logger *slog.Logger, interactive bool) *App {
	session := service.NewSessionService(settings, service.WithLogger(logger))
	return &App{
		SettingsStore: settingsStore,
		Session:       session,
		Prompter:      prompter,
		ColorResolver: resolver.NewColorResolver(prompter),
		StepResolver:  resolver.NewStepResolver(prompter),
		Logger:        logger,
		Interactive:   interactive,
	}
}

// Formatter returns a number formatter for the settings in effect.
func (a *App) Formatter() (*util.Formatter, error) {
	settings := a.Session.Settings()
	return util.NewFormatter(settings.Locale, settings.Precision)
}

// Fatal prints an error and exits.
func Fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
