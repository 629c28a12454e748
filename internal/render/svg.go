package render

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"coursemap/internal/layout"
	"coursemap/internal/view"
)

// SVG writes the diagram as a standalone SVG document. Selection styling is
// applied to exactly the tile matching the pinned id.
func SVG(w io.Writer, d *layout.Diagram, st view.State, theme Theme) error {
	canvas := svg.New(w)
	canvas.Start(int(d.Bounds.W), int(d.Bounds.H))
	canvas.Rect(0, 0, int(d.Bounds.W), int(d.Bounds.H), "fill:"+theme.Background())

	if d.Zoom != nil {
		canvas.Gtransform(zoomTransform(d))
	}

	switch d.Variant {
	case layout.Treemap:
		svgTreemap(canvas, d, st, theme)
	case layout.Sunburst:
		svgSunburst(canvas, d, theme)
	case layout.RadialTree:
		svgRadialTree(canvas, d, st, theme)
	case layout.CirclePack:
		svgCirclePack(canvas, d, st, theme)
	}

	if d.Zoom != nil {
		canvas.Gend()
	}
	canvas.End()
	return nil
}

// zoomTransform maps the focused subtree's center to the viewport center,
// scaled and (for the radial tree) rotated.
func zoomTransform(d *layout.Diagram) string {
	z := d.Zoom
	tx := d.Bounds.W/2 - z.Scale*z.CX
	ty := d.Bounds.H/2 - z.Scale*z.CY
	t := fmt.Sprintf("translate(%.1f,%.1f) scale(%.3f)", tx, ty, z.Scale)
	if z.Rotate != 0 {
		t += fmt.Sprintf(" rotate(%.1f,%.1f,%.1f)", z.Rotate*180/math.Pi, z.CX, z.CY)
	}
	return t
}

func svgTreemap(canvas *svg.SVG, d *layout.Diagram, st view.State, theme Theme) {
	index := subjectIndex(d)
	for _, s := range d.Subjects {
		i := index[s.Name]
		canvas.Rect(px(s.Rect.X), px(s.Rect.Y), px(s.Rect.W), px(s.Rect.H),
			"fill:"+Mix(SubjectFill(i, theme), theme.Background(), 0.55))
		header := layout.Fit(s.Name, s.Header.W-12, nil)
		canvas.Text(px(s.Header.X+6), px(s.Header.Y+s.Header.H-7), header,
			"fill:"+SubjectStroke(i)+";font-size:13px;font-weight:600;font-family:sans-serif")
	}
	for _, tile := range d.Tiles {
		i := index[tile.Subject]
		style := "fill:" + SubjectFill(i, theme)
		if tile.ID == st.SelectedID {
			style += ";stroke:" + theme.Accent() + ";stroke-width:2.5"
		}
		canvas.Rect(px(tile.Rect.X), px(tile.Rect.Y), px(tile.Rect.W), px(tile.Rect.H), style)
		label := layout.Fit(tile.Label, tile.Rect.W-8, nil)
		if label != "" && tile.Rect.H >= 18 {
			canvas.Text(px(tile.Rect.X+4), px(tile.Rect.Y+15), label,
				"fill:"+theme.Foreground()+";font-size:11px;font-family:sans-serif")
		}
	}
}

func svgSunburst(canvas *svg.SVG, d *layout.Diagram, theme Theme) {
	cx, cy := d.Bounds.W/2, d.Bounds.H/2
	index := subjectArcIndex(d)
	for _, a := range d.Arcs {
		fill := SubjectFill(index[a.Subject], theme)
		if a.Depth > 1 {
			fill = Mix(fill, theme.Background(), 0.12*float64(a.Depth-1))
		}
		style := fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1", fill, theme.Background())
		if a.Dimmed {
			style += ";opacity:0.25"
		}
		canvas.Path(annularPath(cx, cy, a), style)
	}
}

func svgRadialTree(canvas *svg.SVG, d *layout.Diagram, st view.State, theme Theme) {
	index := subjectNodeIndex(d)
	for _, l := range d.Links {
		style := "stroke:" + theme.Muted() + ";stroke-width:1;fill:none"
		if l.Dimmed {
			style += ";opacity:0.2"
		}
		canvas.Line(px(l.X1), px(l.Y1), px(l.X2), px(l.Y2), style)
	}
	for _, n := range d.Nodes {
		style := "fill:" + SubjectStroke(index[n.Subject])
		if n.Subject == "" {
			style = "fill:" + theme.Muted()
		}
		if n.ID == st.SelectedID {
			style += ";stroke:" + theme.Accent() + ";stroke-width:2.5"
		}
		if n.Dimmed {
			style += ";opacity:0.2"
		}
		canvas.Circle(px(n.X), px(n.Y), px(math.Max(n.R, 1)), style)
	}
}

func svgCirclePack(canvas *svg.SVG, d *layout.Diagram, st view.State, theme Theme) {
	index := subjectNodeIndex(d)
	for _, n := range d.Nodes {
		var style string
		switch {
		case n.Depth == 0:
			style = "fill:none;stroke:" + theme.Muted() + ";stroke-width:1"
		case n.Leaf:
			style = "fill:" + SubjectFill(index[n.Subject], theme)
		default:
			style = "fill:" + Mix(SubjectFill(index[n.Subject], theme), theme.Background(), 0.5)
		}
		if n.ID == st.SelectedID {
			style += ";stroke:" + theme.Accent() + ";stroke-width:2.5"
		}
		if n.Dimmed {
			style += ";opacity:0.25"
		}
		canvas.Circle(px(n.X), px(n.Y), px(math.Max(n.R, 1)), style)
		if n.Leaf && n.R >= 18 {
			label := layout.Fit(n.Name, n.R*1.7, nil)
			canvas.Text(px(n.X), px(n.Y+4), label,
				"fill:"+theme.Foreground()+";font-size:10px;font-family:sans-serif;text-anchor:middle")
		}
	}
}

// annularPath builds the SVG path for one annular sector. Angles are
// clockwise from twelve o'clock.
func annularPath(cx, cy float64, a layout.Arc) string {
	x0, y0 := arcPoint(cx, cy, a.R1, a.A0)
	x1, y1 := arcPoint(cx, cy, a.R1, a.A1)
	x2, y2 := arcPoint(cx, cy, a.R0, a.A1)
	x3, y3 := arcPoint(cx, cy, a.R0, a.A0)
	large := 0
	if a.A1-a.A0 > math.Pi {
		large = 1
	}
	return fmt.Sprintf("M%.2f,%.2f A%.2f,%.2f 0 %d 1 %.2f,%.2f L%.2f,%.2f A%.2f,%.2f 0 %d 0 %.2f,%.2f Z",
		x0, y0, a.R1, a.R1, large, x1, y1, x2, y2, a.R0, a.R0, large, x3, y3)
}

func arcPoint(cx, cy, r, angle float64) (float64, float64) {
	return cx + r*math.Sin(angle), cy - r*math.Cos(angle)
}

func px(v float64) int {
	return int(math.Round(v))
}

func subjectIndex(d *layout.Diagram) map[string]int {
	idx := make(map[string]int, len(d.Subjects))
	for i, s := range d.Subjects {
		idx[s.Name] = i
	}
	return idx
}

func subjectArcIndex(d *layout.Diagram) map[string]int {
	idx := make(map[string]int)
	for _, a := range d.Arcs {
		if a.Depth == 1 {
			idx[a.Subject] = len(idx)
		}
	}
	return idx
}

func subjectNodeIndex(d *layout.Diagram) map[string]int {
	idx := make(map[string]int)
	for _, n := range d.Nodes {
		if n.Depth == 1 {
			idx[n.Subject] = len(idx)
		}
	}
	return idx
}
