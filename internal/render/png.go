package render

import (
	"io"
	"math"

	"github.com/fogleman/gg"

	"coursemap/internal/layout"
	"coursemap/internal/view"
)

// PNG rasterizes the diagram with the same geometry the SVG surface uses.
func PNG(w io.Writer, d *layout.Diagram, st view.State, theme Theme) error {
	dc := gg.NewContext(int(d.Bounds.W), int(d.Bounds.H))
	dc.SetHexColor(theme.Background())
	dc.Clear()

	if z := d.Zoom; z != nil {
		dc.Translate(d.Bounds.W/2-z.Scale*z.CX, d.Bounds.H/2-z.Scale*z.CY)
		dc.Scale(z.Scale, z.Scale)
		if z.Rotate != 0 {
			dc.RotateAbout(z.Rotate, z.CX, z.CY)
		}
	}

	switch d.Variant {
	case layout.Treemap:
		pngTreemap(dc, d, st, theme)
	case layout.Sunburst:
		pngSunburst(dc, d, theme)
	case layout.RadialTree:
		pngRadialTree(dc, d, st, theme)
	case layout.CirclePack:
		pngCirclePack(dc, d, st, theme)
	}
	return dc.EncodePNG(w)
}

func pngTreemap(dc *gg.Context, d *layout.Diagram, st view.State, theme Theme) {
	index := subjectIndex(d)
	for _, s := range d.Subjects {
		i := index[s.Name]
		dc.SetHexColor(Mix(SubjectFill(i, theme), theme.Background(), 0.55))
		dc.DrawRectangle(s.Rect.X, s.Rect.Y, s.Rect.W, s.Rect.H)
		dc.Fill()
		dc.SetHexColor(SubjectStroke(i))
		dc.DrawStringAnchored(layout.Fit(s.Name, s.Header.W-12, nil),
			s.Header.X+6, s.Header.Y+s.Header.H/2, 0, 0.4)
	}
	for _, tile := range d.Tiles {
		i := index[tile.Subject]
		dc.SetHexColor(SubjectFill(i, theme))
		dc.DrawRectangle(tile.Rect.X, tile.Rect.Y, tile.Rect.W, tile.Rect.H)
		dc.Fill()
		if tile.ID == st.SelectedID {
			dc.SetHexColor(theme.Accent())
			dc.SetLineWidth(2.5)
			dc.DrawRectangle(tile.Rect.X, tile.Rect.Y, tile.Rect.W, tile.Rect.H)
			dc.Stroke()
		}
		if tile.Rect.H >= 18 {
			label := layout.Fit(tile.Label, tile.Rect.W-8, nil)
			if label != "" {
				dc.SetHexColor(theme.Foreground())
				dc.DrawStringAnchored(label, tile.Rect.X+4, tile.Rect.Y+11, 0, 0.4)
			}
		}
	}
}

func pngSunburst(dc *gg.Context, d *layout.Diagram, theme Theme) {
	cx, cy := d.Bounds.W/2, d.Bounds.H/2
	index := subjectArcIndex(d)
	for _, a := range d.Arcs {
		fill := SubjectFill(index[a.Subject], theme)
		if a.Depth > 1 {
			fill = Mix(fill, theme.Background(), 0.12*float64(a.Depth-1))
		}
		if a.Dimmed {
			fill = Mix(fill, theme.Background(), 0.75)
		}
		dc.SetHexColor(fill)
		fillAnnular(dc, cx, cy, a)
		dc.SetHexColor(theme.Background())
		dc.SetLineWidth(1)
		strokeAnnular(dc, cx, cy, a)
	}
}

func pngRadialTree(dc *gg.Context, d *layout.Diagram, st view.State, theme Theme) {
	index := subjectNodeIndex(d)
	for _, l := range d.Links {
		c := theme.Muted()
		if l.Dimmed {
			c = Mix(c, theme.Background(), 0.8)
		}
		dc.SetHexColor(c)
		dc.SetLineWidth(1)
		dc.DrawLine(l.X1, l.Y1, l.X2, l.Y2)
		dc.Stroke()
	}
	for _, n := range d.Nodes {
		c := theme.Muted()
		if n.Subject != "" {
			c = SubjectStroke(index[n.Subject])
		}
		if n.Dimmed {
			c = Mix(c, theme.Background(), 0.8)
		}
		dc.SetHexColor(c)
		dc.DrawCircle(n.X, n.Y, math.Max(n.R, 1))
		dc.Fill()
		if n.ID == st.SelectedID {
			dc.SetHexColor(theme.Accent())
			dc.SetLineWidth(2.5)
			dc.DrawCircle(n.X, n.Y, math.Max(n.R, 1)+2)
			dc.Stroke()
		}
	}
}

func pngCirclePack(dc *gg.Context, d *layout.Diagram, st view.State, theme Theme) {
	index := subjectNodeIndex(d)
	for _, n := range d.Nodes {
		switch {
		case n.Depth == 0:
			dc.SetHexColor(theme.Muted())
			dc.SetLineWidth(1)
			dc.DrawCircle(n.X, n.Y, n.R)
			dc.Stroke()
			continue
		case n.Leaf:
			dc.SetHexColor(dimmed(SubjectFill(index[n.Subject], theme), n.Dimmed, theme))
		default:
			dc.SetHexColor(dimmed(Mix(SubjectFill(index[n.Subject], theme), theme.Background(), 0.5), n.Dimmed, theme))
		}
		dc.DrawCircle(n.X, n.Y, math.Max(n.R, 1))
		dc.Fill()
		if n.ID == st.SelectedID {
			dc.SetHexColor(theme.Accent())
			dc.SetLineWidth(2.5)
			dc.DrawCircle(n.X, n.Y, math.Max(n.R, 1))
			dc.Stroke()
		}
	}
}

func dimmed(c string, dim bool, theme Theme) string {
	if dim {
		return Mix(c, theme.Background(), 0.75)
	}
	return c
}

// fillAnnular traces the annular sector with two opposing arcs. gg angles
// run clockwise from the positive x axis, ours from twelve o'clock, hence
// the quarter-turn shift.
func fillAnnular(dc *gg.Context, cx, cy float64, a layout.Arc) {
	dc.NewSubPath()
	dc.DrawArc(cx, cy, a.R1, a.A0-math.Pi/2, a.A1-math.Pi/2)
	dc.DrawArc(cx, cy, a.R0, a.A1-math.Pi/2, a.A0-math.Pi/2)
	dc.ClosePath()
	dc.Fill()
}

func strokeAnnular(dc *gg.Context, cx, cy float64, a layout.Arc) {
	dc.NewSubPath()
	dc.DrawArc(cx, cy, a.R1, a.A0-math.Pi/2, a.A1-math.Pi/2)
	dc.DrawArc(cx, cy, a.R0, a.A1-math.Pi/2, a.A0-math.Pi/2)
	dc.ClosePath()
	dc.Stroke()
}
