package layout

import (
	"fmt"

	"coursemap/internal/course"
)

// Variant selects which visual encoding a diagram uses. All variants render
// the same model; they are interchangeable behind Engine.
type Variant string

const (
	Treemap    Variant = "treemap"
	Sunburst   Variant = "sunburst"
	RadialTree Variant = "radialtree"
	CirclePack Variant = "circlepack"
)

// Bounds is the pixel box the diagram must fit.
type Bounds struct {
	W, H float64
}

type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Contains(o Rect) bool {
	const eps = 1e-6
	return o.X >= r.X-eps && o.Y >= r.Y-eps &&
		o.X+o.W <= r.X+r.W+eps && o.Y+o.H <= r.Y+r.H+eps
}

// Tile is one course rectangle in a treemap diagram.
type Tile struct {
	ID      string
	Label   string
	Subject string
	Rect    Rect
}

// SubjectRegion is a subject's background rectangle plus its header band.
type SubjectRegion struct {
	Name   string
	Rect   Rect
	Header Rect
	Leaves int
}

// Arc is an annular sector in a sunburst diagram. Angles are radians,
// measured clockwise from twelve o'clock.
type Arc struct {
	ID      string
	Name    string
	Subject string
	Depth   int
	A0, A1  float64
	R0, R1  float64
	Leaf    bool
	Dimmed  bool
}

// PointNode is a positioned node in the radial tree and circle pack
// variants. R is the node radius (zero for radial tree joints).
type PointNode struct {
	ID      string
	Name    string
	Subject string
	Depth   int
	X, Y, R float64
	Leaf    bool
	Dimmed  bool
}

// Link is a parent-child connector in the radial tree.
type Link struct {
	X1, Y1, X2, Y2 float64
	Dimmed         bool
}

// Zoom moves the view so a focused subtree fills the viewport. Rotate is
// only meaningful for the radial tree.
type Zoom struct {
	CX, CY float64
	Scale  float64
	Rotate float64
}

// Diagram is the computed geometry for one variant. Only the slices for the
// producing variant are populated.
type Diagram struct {
	Variant  Variant
	Bounds   Bounds
	Subjects []SubjectRegion
	Tiles    []Tile
	Arcs     []Arc
	Nodes    []PointNode
	Links    []Link
	Zoom     *Zoom
}

// Options tunes tile sizing for the treemap search. Zero values fall back
// to DefaultOptions.
type Options struct {
	TileTarget float64
	TileMin    float64
	TileMax    float64
	Header     float64
	Gap        float64
	Pad        float64
}

func DefaultOptions() Options {
	return Options{
		TileTarget: 96,
		TileMin:    44,
		TileMax:    200,
		Header:     24,
		Gap:        4,
		Pad:        8,
	}
}

func (o Options) orDefaults() Options {
	d := DefaultOptions()
	if o.TileTarget <= 0 {
		o.TileTarget = d.TileTarget
	}
	if o.TileMin <= 0 {
		o.TileMin = d.TileMin
	}
	if o.TileMax <= 0 {
		o.TileMax = d.TileMax
	}
	if o.Header <= 0 {
		o.Header = d.Header
	}
	if o.Gap <= 0 {
		o.Gap = d.Gap
	}
	if o.Pad <= 0 {
		o.Pad = d.Pad
	}
	return o
}

// Engine computes a spatial partition for the model inside bounds. A
// non-empty focus restricts the diagram to that subject. Engines are pure:
// identical inputs yield identical diagrams.
type Engine interface {
	Compute(m *course.Model, b Bounds, focus string) (*Diagram, error)
}

// New returns the engine for a variant.
func New(v Variant, opt Options) (Engine, error) {
	opt = opt.orDefaults()
	switch v {
	case Treemap, "":
		return &treemap{opt: opt}, nil
	case Sunburst:
		return &sunburst{}, nil
	case RadialTree:
		return &radialTree{}, nil
	case CirclePack:
		return &circlePack{}, nil
	default:
		return nil, fmt.Errorf("unknown layout variant %q", v)
	}
}

// visibleSubjects applies the focus filter and drops subjects without
// leaves; a subject with zero courses is skipped, never an error.
func visibleSubjects(m *course.Model, focus string) []course.Subject {
	var out []course.Subject
	for _, s := range m.Subjects {
		if focus != "" && s.Name != focus {
			continue
		}
		if len(s.Courses) == 0 {
			continue
		}
		out = append(out, s)
	}
	return out
}

func totalLeaves(subjects []course.Subject) int {
	n := 0
	for _, s := range subjects {
		n += len(s.Courses)
	}
	return n
}
