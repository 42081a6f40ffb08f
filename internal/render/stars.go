// Package render turns categorized search results into display-ready
// sections, independent of any particular UI technology.
package render

import (
	"math"
	"strings"
)

// Stars converts a numeric rating into star glyphs: one full star per whole
// point, plus a single half glyph when the fractional remainder reaches 0.5.
// Never more than one half glyph, so 4.9 renders the same as 4.5.
func Stars(rating float64) string {
	if rating <= 0 || math.IsNaN(rating) || math.IsInf(rating, 0) {
		return ""
	}

	full := int(rating)
	var b strings.Builder
	b.WriteString(strings.Repeat("★", full))
	if rating-float64(full) >= 0.5 {
		b.WriteString("½")
	}
	return b.String()
}
