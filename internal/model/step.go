package model

import (
	"fmt"
	"strings"
)

// StepKind distinguishes a coloring (dilution) step from the refill step.
type StepKind int

const (
	StepDefault StepKind = iota
	StepRefill
)

// String returns the lowercase name used in JSON and CLI output.
func (k StepKind) String() string {
	switch k {
	case StepDefault:
		return "default"
	case StepRefill:
		return "refill"
	default:
		return fmt.Sprintf("StepKind(%d)", int(k))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k StepKind) MarshalText() ([]byte, error) {
	switch k {
	case StepDefault, StepRefill:
		return []byte(k.String()), nil
	}
	return nil, fmt.Errorf("unknown step kind %d", int(k))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *StepKind) UnmarshalText(text []byte) error {
	parsed, err := ParseStepKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseStepKind parses "default" or "refill" (case-insensitive).
// An empty string is treated as "default".
func ParseStepKind(s string) (StepKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return StepDefault, nil
	case "refill":
		return StepRefill, nil
	}
	return StepDefault, fmt.Errorf("unknown step kind %q (expected \"default\" or \"refill\")", s)
}

// Step is one coloring or refill operation in the sequence.
type Step struct {
	ID   string
	Kind StepKind

	// Order is the zero-based position in the sequence. Default steps
	// always precede the refill step.
	Order int

	// Target is the decrease amount for a default step and the refill
	// volume for the refill step.
	Target float64

	// Multiplier is derived: the dilution factor of a default step or the
	// distribution factor of the refill step.
	Multiplier float64
}

// IsRefill reports whether the step is the refill step.
func (s *Step) IsRefill() bool {
	return s.Kind == StepRefill
}
