package layout

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Measurer reports the rendered width of a string in pixels.
type Measurer func(s string) float64

// FaceMeasurer adapts a font face into a Measurer.
func FaceMeasurer(face font.Face) Measurer {
	return func(s string) float64 {
		return float64(font.MeasureString(face, s)) / 64
	}
}

// DefaultMeasurer measures with the built-in basic face, which is close
// enough for tile labels at small sizes.
var DefaultMeasurer = FaceMeasurer(basicfont.Face7x13)

const ellipsis = "…"

// Fit truncates s with a trailing ellipsis so it measures at most maxWidth.
// Returns "" when not even the ellipsis fits.
func Fit(s string, maxWidth float64, measure Measurer) string {
	if measure == nil {
		measure = DefaultMeasurer
	}
	if measure(s) <= maxWidth {
		return s
	}
	runes := []rune(s)
	for n := len(runes) - 1; n > 0; n-- {
		candidate := string(runes[:n]) + ellipsis
		if measure(candidate) <= maxWidth {
			return candidate
		}
	}
	if measure(ellipsis) <= maxWidth {
		return ellipsis
	}
	return ""
}
