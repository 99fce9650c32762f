package prompt

import (
	"os"
	"strings"

	"github.com/charmbracelet/huh"
)

// AccessibleEnvVar switches prompts to plain line-based input, for screen
// readers and dumb terminals.
const AccessibleEnvVar = "ACCESSIBLE"

// HuhPrompter implements Prompter using the charmbracelet/huh library.
type HuhPrompter struct {
	theme      *huh.Theme
	accessible bool
}

// NewHuhPrompter creates a new huh-based prompter.
func NewHuhPrompter() *HuhPrompter {
	return &HuhPrompter{
		theme:      huh.ThemeCharm(),
		accessible: os.Getenv(AccessibleEnvVar) != "",
	}
}

// run shows a single field as its own form.
func (p *HuhPrompter) run(field huh.Field) error {
	return huh.NewForm(huh.NewGroup(field)).
		WithTheme(p.theme).
		WithAccessible(p.accessible).
		Run()
}

func (p *HuhPrompter) Select(title string, options []string) (string, error) {
	var result string
	err := p.run(huh.NewSelect[string]().
		Title(title).
		Options(huh.NewOptions(options...)...).
		Value(&result))
	return result, err
}

// Input prompts for a line of text, prefilled with defaultValue.
// Surrounding whitespace is trimmed from the answer.
func (p *HuhPrompter) Input(title string, defaultValue string) (string, error) {
	result := defaultValue
	err := p.run(huh.NewInput().
		Title(title).
		Value(&result))
	return strings.TrimSpace(result), err
}

func (p *HuhPrompter) Confirm(title string, defaultValue bool) (bool, error) {
	result := defaultValue
	err := p.run(huh.NewConfirm().
		Title(title).
		Value(&result))
	return result, err
}

func (p *HuhPrompter) MultiSelect(title string, options []string) ([]string, error) {
	var result []string
	err := p.run(huh.NewMultiSelect[string]().
		Title(title).
		Options(huh.NewOptions(options...)...).
		Value(&result))
	return result, err
}
