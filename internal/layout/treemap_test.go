package layout

import (
	"reflect"
	"strings"
	"testing"

	"coursemap/internal/course"
)

const fixture = `{
  "hierarchy": {"name": "Coursework", "children": [
    {"name": "Computer Science", "children": [
      {"name": "Core", "children": [
        {"code": "CS101", "name": "Intro to Programming"},
        {"code": "CS201", "name": "Data Structures"},
        {"code": "CS301", "name": "Algorithms"}
      ]}
    ]},
    {"name": "Mathematics", "children": [
      {"name": "Pure", "children": [
        {"id": "real-analysis", "name": "Real Analysis"}
      ]}
    ]}
  ]}
}`

func fixtureModel(t *testing.T) *course.Model {
	t.Helper()
	m, err := course.Load(strings.NewReader(fixture))
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	return m
}

func computeTreemap(t *testing.T, m *course.Model, b Bounds, focus string) *Diagram {
	t.Helper()
	eng, err := New(Treemap, Options{})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	d, err := eng.Compute(m, b, focus)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	return d
}

func TestTreemap_Deterministic(t *testing.T) {
	m := fixtureModel(t)
	b := Bounds{W: 960, H: 600}

	first := computeTreemap(t, m, b, "")
	second := computeTreemap(t, m, b, "")
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical inputs produced different layouts")
	}
}

func TestTreemap_TilesStayInsideSubjectRegion(t *testing.T) {
	m := fixtureModel(t)
	d := computeTreemap(t, m, Bounds{W: 960, H: 600}, "")

	regions := make(map[string]Rect)
	for _, s := range d.Subjects {
		regions[s.Name] = s.Rect
	}
	for _, tile := range d.Tiles {
		region, ok := regions[tile.Subject]
		if !ok {
			t.Fatalf("tile %s references unknown subject %q", tile.ID, tile.Subject)
		}
		if !region.Contains(tile.Rect) {
			t.Errorf("tile %s %+v overflows region %+v", tile.ID, tile.Rect, region)
		}
	}
}

func TestTreemap_RegionAreaTracksLeafCount(t *testing.T) {
	m := fixtureModel(t)
	d := computeTreemap(t, m, Bounds{W: 800, H: 400}, "")

	if len(d.Subjects) != 2 {
		t.Fatalf("expected 2 subject regions, got %d", len(d.Subjects))
	}
	var cs, math Rect
	for _, s := range d.Subjects {
		if s.Rect.W <= 0 || s.Rect.H <= 0 {
			t.Fatalf("subject %q has non-positive area: %+v", s.Name, s.Rect)
		}
		switch s.Name {
		case "Computer Science":
			cs = s.Rect
		case "Mathematics":
			math = s.Rect
		}
	}
	ratio := (cs.W * cs.H) / (math.W * math.H)
	if ratio < 2.9 || ratio > 3.1 {
		t.Fatalf("expected ~3:1 area ratio, got %.2f", ratio)
	}
}

func TestTreemap_FocusFiltersAndFlattens(t *testing.T) {
	m := fixtureModel(t)
	d := computeTreemap(t, m, Bounds{W: 960, H: 600}, "Computer Science")

	if len(d.Subjects) != 1 || d.Subjects[0].Name != "Computer Science" {
		t.Fatalf("focus filter failed: %+v", d.Subjects)
	}
	if len(d.Tiles) != 3 {
		t.Fatalf("expected 3 tiles under focus, got %d", len(d.Tiles))
	}
}

func TestTreemap_TinyContainerDegradesGracefully(t *testing.T) {
	m := fixtureModel(t)
	d := computeTreemap(t, m, Bounds{W: 90, H: 70}, "")

	// A container below the minimum tile size still lays out: least-bad
	// penalty wins over failure.
	for _, tile := range d.Tiles {
		if tile.Rect.W <= 0 || tile.Rect.H <= 0 {
			t.Fatalf("degenerate tile in tiny container: %+v", tile.Rect)
		}
	}
}

func TestTreemap_EmptyModel(t *testing.T) {
	m, err := course.Load(strings.NewReader(`{"hierarchy":{"name":"r"}}`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	d := computeTreemap(t, m, Bounds{W: 960, H: 600}, "")
	if len(d.Tiles) != 0 || len(d.Subjects) != 0 {
		t.Fatalf("empty dataset must produce an empty diagram")
	}
}

func TestBestGrid_PrefersTargetSize(t *testing.T) {
	opt := DefaultOptions()
	rows, cols := bestGrid(6, 600, 200, opt)
	if rows*cols < 6 {
		t.Fatalf("grid %dx%d cannot hold 6 tiles", rows, cols)
	}
	// 600x200 with a 96px target wants one or two rows, never a column.
	if rows > 2 {
		t.Fatalf("unexpected rows=%d for a wide flat box", rows)
	}
}
