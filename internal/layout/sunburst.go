package layout

import (
	"math"

	"coursemap/internal/course"
)

// sunburst assigns each node an angular span proportional to its leaf count
// and a ring by depth: subjects innermost, then groups, then course leaves.
type sunburst struct{}

// Ring boundaries as fractions of the outer radius.
var sunburstRings = [4]float64{0.18, 0.45, 0.72, 1.0}

func (sb *sunburst) Compute(m *course.Model, b Bounds, focus string) (*Diagram, error) {
	d := &Diagram{Variant: Sunburst, Bounds: b}
	// The sunburst never filters nodes away: focus zooms and dims instead,
	// so the surrounding context stays visible.
	subjects := visibleSubjects(m, "")
	total := totalLeaves(subjects)
	if total == 0 || b.W <= 0 || b.H <= 0 {
		return d, nil
	}

	cx, cy := b.W/2, b.H/2
	r := math.Min(b.W, b.H) / 2
	angle := 0.0
	per := 2 * math.Pi / float64(total)

	for _, s := range subjects {
		span := per * float64(len(s.Courses))
		dim := focus != "" && s.Name != focus
		d.Arcs = append(d.Arcs, Arc{
			ID:      course.Slug(s.Name),
			Name:    s.Name,
			Subject: s.Name,
			Depth:   1,
			A0:      angle,
			A1:      angle + span,
			R0:      r * sunburstRings[0],
			R1:      r * sunburstRings[1],
			Dimmed:  dim,
		})

		ga := angle
		for _, grp := range groupsOf(m, s) {
			gspan := per * float64(len(grp.Courses))
			d.Arcs = append(d.Arcs, Arc{
				ID:      course.Slug(s.Name + "-" + grp.Name),
				Name:    grp.Name,
				Subject: s.Name,
				Depth:   2,
				A0:      ga,
				A1:      ga + gspan,
				R0:      r * sunburstRings[1],
				R1:      r * sunburstRings[2],
				Dimmed:  dim,
			})

			la := ga
			for _, c := range grp.Courses {
				d.Arcs = append(d.Arcs, Arc{
					ID:      c.ID,
					Name:    c.Label(),
					Subject: s.Name,
					Depth:   3,
					A0:      la,
					A1:      la + per,
					R0:      r * sunburstRings[2],
					R1:      r * sunburstRings[3],
					Leaf:    true,
					Dimmed:  dim,
				})
				la += per
			}
			ga += gspan
		}

		if focus == s.Name {
			d.Zoom = wedgeZoom(cx, cy, r, angle, angle+span)
		}
		angle += span
	}
	return d, nil
}

// wedgeZoom centers the view on a subject wedge and scales it so the span
// roughly fills the viewport. Scale is capped to keep thin wedges sane.
func wedgeZoom(cx, cy, r, a0, a1 float64) *Zoom {
	span := a1 - a0
	scale := math.Min(2*math.Pi/span, 4)
	mid := (a0 + a1) / 2
	mx, my := polar(cx, cy, r*0.6, mid)
	return &Zoom{CX: mx, CY: my, Scale: scale}
}

// polar converts (radius, clockwise angle from twelve o'clock) to x, y.
func polar(cx, cy, r, a float64) (float64, float64) {
	return cx + r*math.Sin(a), cy - r*math.Cos(a)
}

// groupsOf recovers the group partition of a subject's courses from the raw
// hierarchy; subjects and the flat course list stay the layout's primary
// view, groups only matter for the middle ring.
func groupsOf(m *course.Model, s course.Subject) []course.Subject {
	var out []course.Subject
	for _, subj := range m.Raw.Hierarchy.Children {
		name := subj.Name
		if name == "" {
			name = "Other"
		}
		if name != s.Name {
			continue
		}
		for _, grp := range subj.Children {
			g := course.Subject{Name: grp.Name}
			for _, c := range s.Courses {
				if c.Group == grp.Name {
					g.Courses = append(g.Courses, c)
				}
			}
			if len(g.Courses) > 0 {
				out = append(out, g)
			}
		}
	}
	return out
}
