package layout

import (
	"math"

	"coursemap/internal/course"
)

// radialTree places leaves evenly around a circle with radius growing by
// depth, joints at the mean angle of their children, and straight connectors
// between parent and child.
type radialTree struct{}

func (rt *radialTree) Compute(m *course.Model, b Bounds, focus string) (*Diagram, error) {
	d := &Diagram{Variant: RadialTree, Bounds: b}
	subjects := visibleSubjects(m, "")
	total := totalLeaves(subjects)
	if total == 0 || b.W <= 0 || b.H <= 0 {
		return d, nil
	}

	cx, cy := b.W/2, b.H/2
	rMax := math.Min(b.W, b.H)/2 - 12
	if rMax <= 0 {
		rMax = math.Min(b.W, b.H) / 2
	}
	per := 2 * math.Pi / float64(total)

	root := PointNode{ID: "root", Name: m.Raw.Hierarchy.Name, X: cx, Y: cy, R: 4}
	d.Nodes = append(d.Nodes, root)

	leafIdx := 0
	for _, s := range subjects {
		dim := focus != "" && s.Name != focus
		first := float64(leafIdx) * per
		span := per * float64(len(s.Courses))

		sa := first + span/2 - per/2
		sx, sy := polar(cx, cy, rMax/3, sa)
		d.Nodes = append(d.Nodes, PointNode{
			ID: course.Slug(s.Name), Name: s.Name, Subject: s.Name,
			Depth: 1, X: sx, Y: sy, R: 3.5, Dimmed: dim,
		})
		d.Links = append(d.Links, Link{X1: cx, Y1: cy, X2: sx, Y2: sy, Dimmed: dim})

		for _, grp := range groupsOf(m, s) {
			ga := (float64(leafIdx) + float64(len(grp.Courses)-1)/2) * per
			gx, gy := polar(cx, cy, rMax*2/3, ga)
			d.Nodes = append(d.Nodes, PointNode{
				ID: course.Slug(s.Name + "-" + grp.Name), Name: grp.Name, Subject: s.Name,
				Depth: 2, X: gx, Y: gy, R: 3, Dimmed: dim,
			})
			d.Links = append(d.Links, Link{X1: sx, Y1: sy, X2: gx, Y2: gy, Dimmed: dim})

			for _, c := range grp.Courses {
				la := float64(leafIdx) * per
				lx, ly := polar(cx, cy, rMax, la)
				d.Nodes = append(d.Nodes, PointNode{
					ID: c.ID, Name: c.Label(), Subject: s.Name,
					Depth: 3, X: lx, Y: ly, R: 4, Leaf: true, Dimmed: dim,
				})
				d.Links = append(d.Links, Link{X1: gx, Y1: gy, X2: lx, Y2: ly, Dimmed: dim})
				leafIdx++
			}
		}

		if focus == s.Name {
			// Rotate the focused wedge to twelve o'clock and magnify it.
			mid := first + span/2
			d.Zoom = &Zoom{
				CX:     cx,
				CY:     cy,
				Scale:  math.Min(2*math.Pi/span, 3),
				Rotate: -mid,
			}
		}
	}
	return d, nil
}
