package layout

import (
	"math"

	"coursemap/internal/course"
)

// treemap lays each subject out as a vertical strip sized by leaf count,
// with a header band and a grid of near-equal tiles for its courses.
type treemap struct {
	opt Options
}

func (t *treemap) Compute(m *course.Model, b Bounds, focus string) (*Diagram, error) {
	d := &Diagram{Variant: Treemap, Bounds: b}
	subjects := visibleSubjects(m, focus)
	total := totalLeaves(subjects)
	if total == 0 || b.W <= 0 || b.H <= 0 {
		return d, nil
	}

	x := 0.0
	for _, s := range subjects {
		w := b.W * float64(len(s.Courses)) / float64(total)
		region := Rect{X: x, Y: 0, W: w, H: b.H}
		header := Rect{X: x, Y: 0, W: w, H: math.Min(t.opt.Header, b.H)}
		d.Subjects = append(d.Subjects, SubjectRegion{
			Name:   s.Name,
			Rect:   region,
			Header: header,
			Leaves: len(s.Courses),
		})

		inner := Rect{
			X: region.X + t.opt.Pad,
			Y: header.Y + header.H + t.opt.Pad,
			W: region.W - 2*t.opt.Pad,
			H: region.H - header.H - 2*t.opt.Pad,
		}
		if inner.W <= 0 || inner.H <= 0 {
			// Too small for tiles; the subject band alone still renders.
			x += w
			continue
		}
		d.Tiles = append(d.Tiles, t.grid(s, inner)...)
		x += w
	}
	return d, nil
}

// grid places a subject's courses row-major into the best (rows x cols)
// configuration found by bestGrid.
func (t *treemap) grid(s course.Subject, inner Rect) []Tile {
	n := len(s.Courses)
	rows, cols := bestGrid(n, inner.W, inner.H, t.opt)
	gap := t.opt.Gap
	tw := (inner.W - float64(cols-1)*gap) / float64(cols)
	th := (inner.H - float64(rows-1)*gap) / float64(rows)
	if tw <= 0 || th <= 0 {
		// Container too small for gaps; drop them rather than overflow.
		gap = 0
		tw = inner.W / float64(cols)
		th = inner.H / float64(rows)
	}

	tiles := make([]Tile, 0, n)
	for i, c := range s.Courses {
		row := i / cols
		col := i % cols
		tiles = append(tiles, Tile{
			ID:      c.ID,
			Label:   c.Label(),
			Subject: s.Name,
			Rect: Rect{
				X: inner.X + float64(col)*(tw+gap),
				Y: inner.Y + float64(row)*(th+gap),
				W: tw,
				H: th,
			},
		})
	}
	return tiles
}

// bestGrid scans every row count from 1 to n and keeps the factorization
// with the lowest penalty. On equal penalty a configuration meeting both
// size bounds wins; otherwise the first (fewest rows) is kept, which makes
// the search deterministic. When nothing satisfies the minimum size the
// least-bad candidate is still returned.
func bestGrid(n int, w, h float64, opt Options) (rows, cols int) {
	bestRows, bestCols := 1, n
	bestPenalty := math.Inf(1)
	bestMeets := false

	for r := 1; r <= n; r++ {
		c := (n + r - 1) / r
		tw := (w - float64(c-1)*opt.Gap) / float64(c)
		th := (h - float64(r-1)*opt.Gap) / float64(r)
		p := gridPenalty(tw, th, opt)
		meets := tw >= opt.TileMin && th >= opt.TileMin && tw <= opt.TileMax && th <= opt.TileMax
		if p < bestPenalty || (p == bestPenalty && meets && !bestMeets) {
			bestPenalty = p
			bestRows, bestCols = r, c
			bestMeets = meets
		}
	}
	return bestRows, bestCols
}

// gridPenalty weighs distance from the target tile size against violations
// of the usable minimum and the maximum. Undersized tiles are penalized
// hardest: an unreadable tile is worse than an oversized one.
func gridPenalty(tw, th float64, opt Options) float64 {
	p := math.Abs(tw-opt.TileTarget)/opt.TileTarget +
		math.Abs(th-opt.TileTarget)/opt.TileTarget
	for _, side := range [2]float64{tw, th} {
		if side < opt.TileMin {
			p += 4 * (opt.TileMin - side) / opt.TileMin
		}
		if side > opt.TileMax {
			p += 1.5 * (side - opt.TileMax) / opt.TileMax
		}
	}
	return p
}
