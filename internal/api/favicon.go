package api

import (
	"fmt"
	"html"
	"net/http"
	"strings"

	"github.com/amterp/calcus/internal/model"
)

// maxFaviconStripes bounds how many pigment swatches the favicon shows.
const maxFaviconStripes = 4

// GenerateFaviconSVG draws one vertical stripe per swatch on a rounded
// square. With no swatches it uses the summary swatch.
func GenerateFaviconSVG(swatches []string) string {
	if len(swatches) == 0 {
		swatches = []string{model.SummarySwatch}
	}
	if len(swatches) > maxFaviconStripes {
		swatches = swatches[:maxFaviconStripes]
	}

	var stripes strings.Builder
	width := 32.0 / float64(len(swatches))
	for i, swatch := range swatches {
		fmt.Fprintf(&stripes,
			`<rect x="%.2f" y="0" width="%.2f" height="32" fill="%s"/>`,
			float64(i)*width, width, html.EscapeString(swatch),
		)
	}

	return fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 32 32">`+
			`<clipPath id="r"><rect width="32" height="32" rx="6"/></clipPath>`+
			`<g clip-path="url(#r)">%s</g></svg>`,
		stripes.String(),
	)
}

// GetFavicon serves a favicon built from the session's pigment swatches.
func (h *Handler) GetFavicon(w http.ResponseWriter, r *http.Request) {
	snap := h.session.Snapshot()
	var swatches []string
	for _, c := range snap.Pigments() {
		if c.Swatch != "" {
			swatches = append(swatches, c.Swatch)
		}
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write([]byte(GenerateFaviconSVG(swatches)))
}
