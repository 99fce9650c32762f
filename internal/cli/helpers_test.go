package cli

import (
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/amterp/calcus/internal/model"
	"github.com/amterp/calcus/internal/prompt"
	"github.com/amterp/calcus/internal/store"
)

// scriptedPrompter answers prompts from queues, failing once a queue runs dry.
type scriptedPrompter struct {
	selects  []string
	inputs   []string
	confirms []bool
	multis   [][]string

	// Titles of every prompt shown, in order
	titles []string
}

func (p *scriptedPrompter) Select(title string, options []string) (string, error) {
	p.titles = append(p.titles, title)
	if len(p.selects) == 0 {
		return "", fmt.Errorf("unexpected select %q", title)
	}
	answer := p.selects[0]
	p.selects = p.selects[1:]
	return answer, nil
}

func (p *scriptedPrompter) Input(title string, defaultValue string) (string, error) {
	p.titles = append(p.titles, title)
	if len(p.inputs) == 0 {
		return "", fmt.Errorf("unexpected input %q", title)
	}
	answer := p.inputs[0]
	p.inputs = p.inputs[1:]
	return answer, nil
}

func (p *scriptedPrompter) Confirm(title string, defaultValue bool) (bool, error) {
	p.titles = append(p.titles, title)
	if len(p.confirms) == 0 {
		return false, fmt.Errorf("unexpected confirm %q", title)
	}
	answer := p.confirms[0]
	p.confirms = p.confirms[1:]
	return answer, nil
}

func (p *scriptedPrompter) MultiSelect(title string, options []string) ([]string, error) {
	p.titles = append(p.titles, title)
	if len(p.multis) == 0 {
		return nil, fmt.Errorf("unexpected multiselect %q", title)
	}
	answer := p.multis[0]
	p.multis = p.multis[1:]
	return answer, nil
}

var _ prompt.Prompter = (*scriptedPrompter)(nil)

// newTestApp wires an App with default settings and no settings file.
func newTestApp(t *testing.T, prompter prompt.Prompter) *App {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return newAppWith(store.NewSettingsStore(""), model.DefaultSettings(), prompter, logger, true)
}
