package render

import (
	"fmt"
	"strconv"
)

// Theme is the light/dark token read from the hosting page; it picks the
// base color that subject fills are blended against.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme maps any unknown token to dark, the site default.
func ParseTheme(s string) Theme {
	if s == string(ThemeLight) {
		return ThemeLight
	}
	return ThemeDark
}

func (t Theme) Background() string {
	if t == ThemeLight {
		return "#f8fafc"
	}
	return "#0d1117"
}

func (t Theme) Foreground() string {
	if t == ThemeLight {
		return "#0f172a"
	}
	return "#e6edf3"
}

func (t Theme) Muted() string {
	if t == ThemeLight {
		return "#64748b"
	}
	return "#8b949e"
}

// Accent marks the selected tile.
func (t Theme) Accent() string {
	if t == ThemeLight {
		return "#3b82f6"
	}
	return "#60a5fa"
}

var palette = []string{
	"#60a5fa", "#f472b6", "#34d399", "#fbbf24",
	"#a78bfa", "#f87171", "#22d3ee", "#fb923c",
}

// SubjectFill picks the subject's palette color blended toward the theme
// background so tiles sit into the page instead of on top of it.
func SubjectFill(i int, t Theme) string {
	return Mix(palette[i%len(palette)], t.Background(), 0.25)
}

// SubjectStroke is the undiluted palette color, used for legends and
// outlines.
func SubjectStroke(i int) string {
	return palette[i%len(palette)]
}

// Mix blends hex color a toward b by ratio (0 keeps a, 1 yields b).
func Mix(a, b string, ratio float64) string {
	ar, ag, ab := rgb(a)
	br, bg, bb := rgb(b)
	mix := func(x, y int) int {
		v := int(float64(x) + (float64(y)-float64(x))*ratio)
		if v < 0 {
			v = 0
		}
		if v > 255 {
			v = 255
		}
		return v
	}
	return fmt.Sprintf("#%02x%02x%02x", mix(ar, br), mix(ag, bg), mix(ab, bb))
}

// rgb parses "#rrggbb"; malformed input falls back to mid gray.
func rgb(hex string) (int, int, int) {
	if len(hex) != 7 || hex[0] != '#' {
		return 128, 128, 128
	}
	r, err1 := strconv.ParseInt(hex[1:3], 16, 0)
	g, err2 := strconv.ParseInt(hex[3:5], 16, 0)
	b, err3 := strconv.ParseInt(hex[5:7], 16, 0)
	if err1 != nil || err2 != nil || err3 != nil {
		return 128, 128, 128
	}
	return int(r), int(g), int(b)
}

// RGB exposes the parsed channels for renderers that take ints (gofpdf).
func RGB(hex string) (int, int, int) { return rgb(hex) }
