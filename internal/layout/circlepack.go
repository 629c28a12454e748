package layout

import (
	"math"

	"coursemap/internal/course"
)

// circlePack nests subject circles on a ring inside the root circle and
// course circles on a ring inside their subject, radii scaled by sqrt of
// leaf count so area tracks size.
type circlePack struct{}

func (cp *circlePack) Compute(m *course.Model, b Bounds, focus string) (*Diagram, error) {
	d := &Diagram{Variant: CirclePack, Bounds: b}
	subjects := visibleSubjects(m, "")
	if totalLeaves(subjects) == 0 || b.W <= 0 || b.H <= 0 {
		return d, nil
	}

	cx, cy := b.W/2, b.H/2
	rootR := math.Min(b.W, b.H)/2 - 4
	if rootR <= 0 {
		rootR = math.Min(b.W, b.H) / 2
	}
	d.Nodes = append(d.Nodes, PointNode{
		ID: "root", Name: m.Raw.Hierarchy.Name, X: cx, Y: cy, R: rootR,
	})

	// Subject radii proportional to sqrt(leaves), normalized so the largest
	// fits on the placement ring without crossing the root boundary.
	maxSqrt := 0.0
	for _, s := range subjects {
		if v := math.Sqrt(float64(len(s.Courses))); v > maxSqrt {
			maxSqrt = v
		}
	}
	ring := rootR * 0.55
	maxSubjR := rootR - ring - 2

	per := 2 * math.Pi / float64(len(subjects))
	for i, s := range subjects {
		dim := focus != "" && s.Name != focus
		subjR := maxSubjR * math.Sqrt(float64(len(s.Courses))) / maxSqrt
		a := float64(i) * per
		sx, sy := polar(cx, cy, ring, a)
		d.Nodes = append(d.Nodes, PointNode{
			ID: course.Slug(s.Name), Name: s.Name, Subject: s.Name,
			Depth: 1, X: sx, Y: sy, R: subjR, Dimmed: dim,
		})

		leafRing := subjR * 0.6
		leafPer := 2 * math.Pi / float64(len(s.Courses))
		leafR := math.Min(subjR*0.28, leafRing*math.Sin(leafPer/2)*0.9)
		if len(s.Courses) == 1 {
			leafRing = 0
			leafR = subjR * 0.5
		}
		for j, c := range s.Courses {
			lx, ly := polar(sx, sy, leafRing, float64(j)*leafPer)
			d.Nodes = append(d.Nodes, PointNode{
				ID: c.ID, Name: c.Label(), Subject: s.Name,
				Depth: 3, X: lx, Y: ly, R: leafR, Leaf: true, Dimmed: dim,
			})
		}

		if focus == s.Name {
			d.Zoom = &Zoom{CX: sx, CY: sy, Scale: math.Min(rootR/subjR*0.9, 4)}
		}
	}
	return d, nil
}
