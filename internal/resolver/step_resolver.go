package resolver

import (
	"fmt"
	"strconv"
	"strings"

	calcerr "github.com/amterp/calcus/internal/errors"
	"github.com/amterp/calcus/internal/model"
	"github.com/amterp/calcus/internal/prompt"
)

// StepResolver turns user references into steps of a snapshot.
type StepResolver struct {
	prompter prompt.Prompter
}

// NewStepResolver creates a new step resolver.
func NewStepResolver(prompter prompt.Prompter) *StepResolver {
	return &StepResolver{prompter: prompter}
}

// Resolve finds a step by exact ID, "last", "refill", or 1-based position.
// An empty reference prompts when interactive.
func (r *StepResolver) Resolve(snap *model.Snapshot, ref string, interactive bool) (*model.StepView, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return r.prompt(snap, interactive)
	}

	if step := snap.Step(ref); step != nil {
		return step, nil
	}

	switch strings.ToLower(ref) {
	case "last":
		if step := snap.LastStep(); step != nil {
			return step, nil
		}
		return nil, calcerr.StepNotFound(ref)
	case "refill":
		if step := snap.RefillStep(); step != nil {
			return step, nil
		}
		return nil, calcerr.StepNotFound(ref)
	}

	n, err := strconv.Atoi(ref)
	if err != nil || n < 1 || n > len(snap.Steps) {
		return nil, calcerr.StepNotFound(ref)
	}
	return &snap.Steps[n-1], nil
}

func (r *StepResolver) prompt(snap *model.Snapshot, interactive bool) (*model.StepView, error) {
	if len(snap.Steps) == 0 {
		return nil, fmt.Errorf("no steps yet; add one first")
	}
	if !interactive {
		return nil, fmt.Errorf("no step specified")
	}

	labels := make([]string, len(snap.Steps))
	for i, s := range snap.Steps {
		labels[i] = s.Label()
	}

	selected, err := r.prompter.Select("Select step", labels)
	if err != nil {
		return nil, err
	}
	for i, label := range labels {
		if label == selected {
			return &snap.Steps[i], nil
		}
	}
	return nil, calcerr.StepNotFound(selected)
}
