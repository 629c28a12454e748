package view

import (
	"strings"
	"testing"

	"coursemap/internal/course"
)

const fixture = `{
  "hierarchy": {"name": "Coursework", "children": [
    {"name": "Computer Science", "children": [
      {"name": "Core", "children": [
        {"code": "CS101", "name": "Intro to Programming"},
        {"code": "CS201", "name": "Data Structures"}
      ]}
    ]},
    {"name": "Mathematics", "children": [
      {"name": "Pure", "children": [
        {"id": "real-analysis", "name": "Real Analysis"}
      ]}
    ]}
  ]}
}`

func newMachine(t *testing.T) *Machine {
	t.Helper()
	m, err := course.Load(strings.NewReader(fixture))
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	return NewMachine(m, 8)
}

func TestLegendClick_TogglesFocus(t *testing.T) {
	ma := newMachine(t)

	st, fx := ma.Apply(State{}, LegendClick{Subject: "Mathematics"})
	if st.FocusedSubject != "Mathematics" {
		t.Fatalf("focus not set: %+v", st)
	}
	if !fx.Relayout || !fx.RenderDetail {
		t.Fatalf("focus change must relayout and re-render: %+v", fx)
	}

	st, _ = ma.Apply(st, LegendClick{Subject: "Mathematics"})
	if st.FocusedSubject != "" {
		t.Fatalf("second click should clear focus: %+v", st)
	}
}

func TestLegendClick_ClearsForeignSelection(t *testing.T) {
	ma := newMachine(t)

	st := State{SelectedID: "CS101"}
	st, fx := ma.Apply(st, LegendClick{Subject: "Mathematics"})
	if st.SelectedID != "" {
		t.Fatalf("selection in a hidden subject must be cleared: %+v", st)
	}
	if !fx.SelectionChanged {
		t.Fatalf("expected SelectionChanged: %+v", fx)
	}

	// Same-subject selection survives.
	st = State{SelectedID: "CS101"}
	st, _ = ma.Apply(st, LegendClick{Subject: "Computer Science"})
	if st.SelectedID != "CS101" {
		t.Fatalf("selection in the focused subject must survive: %+v", st)
	}
}

func TestTileActivate_SelectsRegardlessOfFocus(t *testing.T) {
	ma := newMachine(t)

	// Direct activation may pin a leaf outside the focused subject.
	st := State{FocusedSubject: "Mathematics"}
	st, fx := ma.Apply(st, TileActivate{ID: "CS201"})
	if st.SelectedID != "CS201" {
		t.Fatalf("tile activation failed: %+v", st)
	}
	if st.FocusedSubject != "Mathematics" {
		t.Fatalf("tile activation must not alter focus: %+v", st)
	}
	if fx.Relayout {
		t.Fatalf("selection alone must not relayout: %+v", fx)
	}
	if !fx.RenderDetail || !fx.SelectionChanged {
		t.Fatalf("unexpected effects: %+v", fx)
	}
}

func TestTileActivate_UnknownIDIgnored(t *testing.T) {
	ma := newMachine(t)

	st, fx := ma.Apply(State{SelectedID: "CS101"}, TileActivate{ID: "GHOST"})
	if st.SelectedID != "CS101" {
		t.Fatalf("unknown id must not change state: %+v", st)
	}
	if fx != (Effects{}) {
		t.Fatalf("unknown id must have no effects: %+v", fx)
	}
}

func TestClear_UnpinsSelectionOnly(t *testing.T) {
	ma := newMachine(t)

	st := State{SelectedID: "CS101", FocusedSubject: "Computer Science"}
	st, fx := ma.Apply(st, Clear{})
	if st.SelectedID != "" || st.FocusedSubject != "Computer Science" {
		t.Fatalf("clear must only drop the selection: %+v", st)
	}
	if !fx.RenderDetail || !fx.SelectionChanged {
		t.Fatalf("unexpected effects: %+v", fx)
	}
}

func TestResize_ThresholdGate(t *testing.T) {
	ma := newMachine(t)
	st := State{SelectedID: "CS101"}

	// First observation establishes the baseline.
	_, fx := ma.Apply(st, Resize{Width: 960, Height: 600})
	if !fx.Relayout {
		t.Fatalf("first resize must trigger layout: %+v", fx)
	}

	// 1px jitter is ignored.
	_, fx = ma.Apply(st, Resize{Width: 961, Height: 600})
	if fx.Relayout {
		t.Fatalf("sub-threshold jitter must not relayout: %+v", fx)
	}

	// A real 50px change triggers, and preserves state.
	st2, fx := ma.Apply(st, Resize{Width: 1010, Height: 600})
	if !fx.Relayout {
		t.Fatalf("50px delta must relayout: %+v", fx)
	}
	if st2 != st {
		t.Fatalf("resize must not reset state: %+v", st2)
	}
}

func TestNormalize_EnforcesFocusInvariant(t *testing.T) {
	ma := newMachine(t)

	st := ma.Normalize(State{SelectedID: "CS101", FocusedSubject: "Mathematics"})
	if st.SelectedID != "" {
		t.Fatalf("normalize must clear hidden selection: %+v", st)
	}
	st = ma.Normalize(State{SelectedID: "real-analysis", FocusedSubject: "Mathematics"})
	if st.SelectedID != "real-analysis" {
		t.Fatalf("normalize cleared a visible selection: %+v", st)
	}
}
