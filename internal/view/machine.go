package view

import (
	"coursemap/internal/course"
)

// State is the ephemeral, client-local view state: the pinned selection and
// the legend focus filter. It is an explicit value, never a hidden global.
type State struct {
	SelectedID     string
	FocusedSubject string
}

// Effects tells the caller what must be redone after a transition.
type Effects struct {
	Relayout         bool
	RenderDetail     bool
	SelectionChanged bool
}

// Event is one user interaction.
type Event interface{ isEvent() }

// LegendClick toggles the subject focus filter.
type LegendClick struct{ Subject string }

// TileActivate pins a leaf, whether by click or by Enter/Space on a
// focused tile; the two are semantically identical.
type TileActivate struct{ ID string }

// Clear unpins the selection (empty-canvas click or the clear control).
type Clear struct{}

// Resize reports the mount element's current box size.
type Resize struct{ Width, Height float64 }

func (LegendClick) isEvent()  {}
func (TileActivate) isEvent() {}
func (Clear) isEvent()        {}
func (Resize) isEvent()       {}

// Machine applies events to view state. It needs the model to resolve a
// selection's category when enforcing the focus invariant.
type Machine struct {
	model *course.Model
	ctrl  *Controller
}

func NewMachine(m *course.Model, resizeThreshold float64) *Machine {
	return &Machine{model: m, ctrl: NewController(resizeThreshold)}
}

// Apply runs one transition and reports its effects. Every selection or
// focus change re-renders the detail panel; layout is only recomputed when
// the visible set or geometry changed.
func (ma *Machine) Apply(st State, ev Event) (State, Effects) {
	switch e := ev.(type) {
	case LegendClick:
		if st.FocusedSubject == e.Subject {
			st.FocusedSubject = ""
		} else {
			st.FocusedSubject = e.Subject
		}
		st, changed := ma.normalize(st)
		return st, Effects{Relayout: true, RenderDetail: true, SelectionChanged: changed}

	case TileActivate:
		if _, ok := ma.model.Course(e.ID); !ok {
			return st, Effects{}
		}
		changed := st.SelectedID != e.ID
		st.SelectedID = e.ID
		return st, Effects{RenderDetail: true, SelectionChanged: changed}

	case Clear:
		changed := st.SelectedID != ""
		st.SelectedID = ""
		return st, Effects{RenderDetail: true, SelectionChanged: changed}

	case Resize:
		if ma.ctrl.Observe(e.Width, e.Height) {
			return st, Effects{Relayout: true, RenderDetail: true}
		}
		return st, Effects{}
	}
	return st, Effects{}
}

// Normalize enforces the focus invariant on externally constructed state: a
// pinned selection whose category differs from the active focus is cleared,
// so a filtered view never shows a hidden node's detail.
func (ma *Machine) Normalize(st State) State {
	st, _ = ma.normalize(st)
	return st
}

func (ma *Machine) normalize(st State) (State, bool) {
	if st.FocusedSubject == "" || st.SelectedID == "" {
		return st, false
	}
	c, ok := ma.model.Course(st.SelectedID)
	if !ok || c.Category != st.FocusedSubject {
		st.SelectedID = ""
		return st, true
	}
	return st, false
}
