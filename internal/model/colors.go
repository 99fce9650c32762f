package model

// SwatchColors is a palette of colors for auto-assigning to new pigment rows.
// Colors cycle through this list based on how many rows have been created.
var SwatchColors = []string{
	"#ef4444", // red
	"#3b82f6", // blue
	"#f59e0b", // amber
	"#10b981", // green
	"#9333ea", // purple
	"#ec4899", // pink
	"#06b6d4", // cyan
	"#6b7280", // gray
}

// SummarySwatch is the display color of the summary row.
const SummarySwatch = "#a78bfa"

// NextSwatch returns the next swatch to use for a new pigment row,
// cycling through the palette based on the number of rows created so far.
func NextSwatch(created int) string {
	if created < 0 {
		created = 0
	}
	return SwatchColors[created%len(SwatchColors)]
}
