package course

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"

	"github.com/dominikbraun/graph"
)

// ErrDuplicateID is the one loud failure in this package: two leaves sharing
// an id breaks the join key between the hierarchy and the edge list.
var ErrDuplicateID = errors.New("duplicate course id")

var threeDigits = regexp.MustCompile(`[0-9]{3}`)

// Model is the immutable in-memory form of a dataset: the leaf index, the
// prerequisite graph, and the stage memberships.
type Model struct {
	Raw      Dataset
	Subjects []Subject

	courses  map[string]*Course
	order    []string // leaf ids in document order
	groups   map[string]string
	prereq   graph.Graph[string, string]
	incoming map[string][]string
	outgoing map[string][]string
	stages   map[string][]Stage
	dangling []Edge
}

// Load decodes a dataset document and builds the model.
func Load(r io.Reader) (*Model, error) {
	var ds Dataset
	if err := json.NewDecoder(r).Decode(&ds); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	return Build(ds)
}

// LoadFile reads and builds the dataset at path.
func LoadFile(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Build resolves a decoded dataset into a Model. Absent children arrays are
// treated as empty; the only fatal condition is a duplicate leaf id.
func Build(ds Dataset) (*Model, error) {
	m := &Model{
		Raw:      ds,
		courses:  make(map[string]*Course),
		groups:   make(map[string]string),
		incoming: make(map[string][]string),
		outgoing: make(map[string][]string),
		stages:   make(map[string][]Stage),
	}

	for _, subj := range ds.Hierarchy.Children {
		category := subj.Name
		if category == "" {
			category = "Other"
		}
		sc := Subject{Name: category}
		for _, grp := range subj.Children {
			for _, leaf := range grp.Children {
				c := resolveLeaf(leaf, category, grp.Name)
				if _, ok := m.courses[c.ID]; ok {
					return nil, fmt.Errorf("%w: %q", ErrDuplicateID, c.ID)
				}
				m.courses[c.ID] = c
				m.order = append(m.order, c.ID)
				m.groups[c.ID] = grp.Name
				sc.Courses = append(sc.Courses, c)
			}
		}
		m.Subjects = append(m.Subjects, sc)
	}

	m.buildGraph(ds.Links)
	m.buildStages(ds.Stages)
	return m, nil
}

func resolveLeaf(n Node, category, group string) *Course {
	id := n.ID
	if id == "" {
		id = n.Code
	}
	if id == "" {
		id = n.Name
	}
	return &Course{
		ID:          id,
		Code:        n.Code,
		Name:        n.Name,
		Category:    category,
		Group:       group,
		Year:        yearLabel(string(n.Year), n.Code),
		Description: n.Description,
	}
}

// yearLabel normalizes an explicit year, or falls back to the display
// heuristic: the leading digit of the first 3-digit run in the code. This is
// best effort only.
func yearLabel(explicit, code string) string {
	if explicit != "" {
		if _, err := fmt.Sscanf(explicit, "%d", new(int)); err == nil {
			return "Year " + explicit
		}
		return explicit
	}
	if run := threeDigits.FindString(code); run != "" {
		return "Year " + run[:1]
	}
	return ""
}

func (m *Model) buildGraph(links []Edge) {
	g := graph.New(graph.StringHash, graph.Directed())
	for _, id := range m.order {
		_ = g.AddVertex(id)
	}
	for _, e := range links {
		_, srcOK := m.courses[e.Source]
		_, dstOK := m.courses[e.Target]
		if !srcOK || !dstOK {
			m.dangling = append(m.dangling, e)
			continue
		}
		// Duplicate edges are harmless; skip them silently.
		if err := g.AddEdge(e.Source, e.Target); err != nil {
			continue
		}
		m.outgoing[e.Source] = append(m.outgoing[e.Source], e.Target)
		m.incoming[e.Target] = append(m.incoming[e.Target], e.Source)
	}
	for _, adj := range []map[string][]string{m.incoming, m.outgoing} {
		for id := range adj {
			sort.Strings(adj[id])
		}
	}
	m.prereq = g
}

func (m *Model) buildStages(stages []Stage) {
	for _, st := range stages {
		for _, id := range st.Courses {
			if _, ok := m.courses[id]; !ok {
				continue
			}
			m.stages[id] = append(m.stages[id], st)
		}
	}
}

// Course looks up a leaf by id.
func (m *Model) Course(id string) (*Course, bool) {
	c, ok := m.courses[id]
	return c, ok
}

// Label resolves an id to its display label, falling back to the raw id.
func (m *Model) Label(id string) string {
	if c, ok := m.courses[id]; ok {
		return c.Label()
	}
	return id
}

// Prereqs returns the ids of courses required before id, sorted.
func (m *Model) Prereqs(id string) []string { return m.incoming[id] }

// Unlocks returns the ids of courses that require id, sorted.
func (m *Model) Unlocks(id string) []string { return m.outgoing[id] }

// StagesOf returns the plan stages the leaf belongs to, in dataset order.
func (m *Model) StagesOf(id string) []Stage { return m.stages[id] }

// Dangling reports the edges whose endpoints were not found in the
// hierarchy. They are excluded from the adjacency indices, never fatal.
func (m *Model) Dangling() []Edge { return m.dangling }

// Len is the total leaf count.
func (m *Model) Len() int { return len(m.order) }

// IDs returns the leaf ids in document order.
func (m *Model) IDs() []string {
	return append([]string(nil), m.order...)
}

// Order returns the leaf ids sorted so every prerequisite precedes the
// courses it unlocks, ties broken by document order. A cyclic edge list
// degrades to plain document order.
func (m *Model) Order() []string {
	idx := make(map[string]int, len(m.order))
	for i, id := range m.order {
		idx[id] = i
	}
	sorted, err := graph.StableTopologicalSort(m.prereq, func(a, b string) bool {
		return idx[a] < idx[b]
	})
	if err != nil {
		return m.IDs()
	}
	return sorted
}

// Flatten produces the flat listing sorted by subject, group, code, name.
func (m *Model) Flatten() []Row {
	rows := make([]Row, 0, len(m.order))
	for _, s := range m.Subjects {
		for _, c := range s.Courses {
			rows = append(rows, Row{
				Subject: s.Name,
				Group:   c.Group,
				ID:      c.ID,
				Code:    c.Code,
				Name:    c.Name,
				Year:    c.Year,
			})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Subject != b.Subject {
			return a.Subject < b.Subject
		}
		if a.Group != b.Group {
			return a.Group < b.Group
		}
		if a.Code != b.Code {
			return a.Code < b.Code
		}
		return a.Name < b.Name
	})
	return rows
}
