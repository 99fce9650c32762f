package resolver

import (
	"fmt"
	"strconv"
	"strings"

	calcerr "github.com/amterp/calcus/internal/errors"
	"github.com/amterp/calcus/internal/model"
	"github.com/amterp/calcus/internal/prompt"
	"github.com/amterp/calcus/internal/util"
)

// ColorResolver turns user references into colors of a snapshot.
type ColorResolver struct {
	prompter prompt.Prompter
}

// NewColorResolver creates a new color resolver.
func NewColorResolver(prompter prompt.Prompter) *ColorResolver {
	return &ColorResolver{prompter: prompter}
}

// Resolve finds a color by reference:
// 1. Exact ID
// 2. 1-based row number among pigments
// 3. Name, compared by slug so case and accents don't matter
// 4. Empty reference: prompt for a pigment if interactive
//
// The summary row has no row number; it resolves by ID or name only.
func (r *ColorResolver) Resolve(snap *model.Snapshot, ref string, interactive bool) (*model.ColorView, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return r.prompt(snap, interactive)
	}

	// 1. Exact ID
	if color := snap.Color(ref); color != nil {
		return color, nil
	}

	// 2. Row number
	if n, err := strconv.Atoi(ref); err == nil {
		for i := range snap.Colors {
			if !snap.Colors[i].IsSummary && snap.Colors[i].Order == n {
				return &snap.Colors[i], nil
			}
		}
		return nil, calcerr.ColorNotFound(ref)
	}

	// 3. Name
	slug := util.Slugify(ref)
	if slug == "" {
		return nil, calcerr.ColorNotFound(ref)
	}
	var match *model.ColorView
	for i := range snap.Colors {
		if util.Slugify(snap.Colors[i].Name) != slug {
			continue
		}
		if match != nil {
			return nil, calcerr.InvalidField("color", fmt.Sprintf("%q matches more than one color; use its row number", ref))
		}
		match = &snap.Colors[i]
	}
	if match == nil {
		return nil, calcerr.ColorNotFound(ref)
	}
	return match, nil
}

func (r *ColorResolver) prompt(snap *model.Snapshot, interactive bool) (*model.ColorView, error) {
	pigments := snap.Pigments()
	if len(pigments) == 0 {
		return nil, fmt.Errorf("no colors yet; add one first")
	}
	if !interactive {
		return nil, fmt.Errorf("no color specified")
	}

	labels := make([]string, len(pigments))
	byLabel := make(map[string]string, len(pigments))
	for i, c := range pigments {
		labels[i] = fmt.Sprintf("%d. %s", c.Order, c.Name)
		byLabel[labels[i]] = c.ID
	}

	selected, err := r.prompter.Select("Select color", labels)
	if err != nil {
		return nil, err
	}
	return snap.Color(byLabel[selected]), nil
}
