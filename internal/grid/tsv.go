package grid

import (
	"strings"
)

// TSV renders the grid as tab-separated lines, headers first, ready to be
// pasted into a spreadsheet. Tabs and newlines inside values become spaces.
func TSV(g *Grid) string {
	var b strings.Builder
	writeLine(&b, g.Headers())
	for _, row := range g.Rows {
		writeLine(&b, row.Cells)
	}
	return b.String()
}

var tsvEscaper = strings.NewReplacer("\t", " ", "\r\n", " ", "\n", " ", "\r", " ")

func writeLine(b *strings.Builder, values []string) {
	for i, v := range values {
		if i > 0 {
			b.WriteByte('\t')
		}
		b.WriteString(tsvEscaper.Replace(v))
	}
	b.WriteByte('\n')
}
