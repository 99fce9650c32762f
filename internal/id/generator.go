package id

import (
	"time"

	fid "github.com/amterp/flexid"
)

// Kind is the entity prefix stamped on generated IDs.
type Kind string

const (
	Step  Kind = "s"
	Color Kind = "c"
)

var generator *fid.Generator

func init() {
	epoch := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	config := fid.NewConfig().
		WithEpoch(epoch).
		WithTickSize(10 * time.Millisecond).
		WithNumRandomChars(3)

	generator = fid.MustNewGenerator(config)
}

// Generate returns a new unique ID for the given kind, e.g. "s_1a2b3c".
func Generate(kind Kind) string {
	return string(kind) + "_" + generator.MustGenerate()
}
