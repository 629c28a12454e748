package course

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

const fixture = `{
  "hierarchy": {"name": "Coursework", "children": [
    {"name": "Computer Science", "children": [
      {"name": "Core", "children": [
        {"code": "CS101", "name": "Intro to Programming"},
        {"code": "CS201", "name": "Data Structures", "description": "Lists, trees, maps."},
        {"code": "CS301", "name": "Algorithms"}
      ]}
    ]},
    {"name": "Mathematics", "children": [
      {"name": "Pure", "children": [
        {"id": "real-analysis", "name": "Real Analysis", "year": 2}
      ]}
    ]}
  ]},
  "links": [
    {"source": "CS101", "target": "CS201"},
    {"source": "CS201", "target": "CS301"},
    {"source": "GHOST", "target": "CS101"}
  ],
  "stages": [
    {"name": "Foundations", "description": "First steps", "courses": ["CS101", "real-analysis", "MISSING"]}
  ]
}`

func loadFixture(t *testing.T) *Model {
	t.Helper()
	m, err := Load(strings.NewReader(fixture))
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	return m
}

func TestLoad_IndexAndIDDerivation(t *testing.T) {
	m := loadFixture(t)

	if m.Len() != 4 {
		t.Fatalf("expected 4 leaves, got %d", m.Len())
	}
	c, ok := m.Course("CS101")
	if !ok {
		t.Fatalf("CS101 missing: id should derive from code")
	}
	if c.Category != "Computer Science" {
		t.Fatalf("unexpected category %q", c.Category)
	}
	if c.Group != "Core" {
		t.Fatalf("unexpected group %q", c.Group)
	}
	if _, ok := m.Course("real-analysis"); !ok {
		t.Fatalf("explicit id not honored")
	}
}

func TestLoad_NameFallbackID(t *testing.T) {
	doc := `{"hierarchy":{"name":"r","children":[{"name":"S","children":[{"name":"G","children":[{"name":"Just A Name"}]}]}]}}`
	m, err := Load(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := m.Course("Just A Name"); !ok {
		t.Fatalf("expected name used as id fallback")
	}
}

func TestLoad_DuplicateIDFails(t *testing.T) {
	doc := `{"hierarchy":{"name":"r","children":[{"name":"S","children":[{"name":"G","children":[
		{"code":"CS101","name":"A"},{"code":"CS101","name":"B"}]}]}]}}`
	_, err := Load(strings.NewReader(doc))
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	if err == nil || !strings.Contains(err.Error(), "CS101") {
		t.Fatalf("error should name the id: %v", err)
	}
}

func TestYearInference(t *testing.T) {
	cases := []struct {
		explicit, code, want string
	}{
		{"", "PHYS301", "Year 3"},
		{"", "CS101", "Year 1"},
		{"", "MATH", ""},
		{"", "AB12", ""},
		{"2", "", "Year 2"},
		{"Honours", "", "Honours"},
		{"", "X1234Y", "Year 1"},
	}
	for _, tc := range cases {
		got := yearLabel(tc.explicit, tc.code)
		if got != tc.want {
			t.Errorf("yearLabel(%q, %q) = %q, want %q", tc.explicit, tc.code, got, tc.want)
		}
	}
}

func TestCategoryDefaultsToOther(t *testing.T) {
	doc := `{"hierarchy":{"name":"r","children":[{"children":[{"name":"G","children":[{"code":"X100","name":"X"}]}]}]}}`
	m, err := Load(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	c, _ := m.Course("X100")
	if c == nil || c.Category != "Other" {
		t.Fatalf("expected category Other, got %+v", c)
	}
}

func TestPrereqAdjacency(t *testing.T) {
	m := loadFixture(t)

	if got := m.Prereqs("CS201"); !reflect.DeepEqual(got, []string{"CS101"}) {
		t.Fatalf("CS201 prereqs = %v", got)
	}
	if got := m.Unlocks("CS101"); !reflect.DeepEqual(got, []string{"CS201"}) {
		t.Fatalf("CS101 unlocks = %v", got)
	}
	if got := m.Prereqs("CS101"); len(got) != 0 {
		t.Fatalf("dangling source leaked into index: %v", got)
	}
	if len(m.Dangling()) != 1 {
		t.Fatalf("expected 1 dangling edge, got %d", len(m.Dangling()))
	}
}

func TestStagesIndex(t *testing.T) {
	m := loadFixture(t)

	stages := m.StagesOf("CS101")
	if len(stages) != 1 || stages[0].Name != "Foundations" {
		t.Fatalf("unexpected stages for CS101: %+v", stages)
	}
	if got := m.StagesOf("CS301"); len(got) != 0 {
		t.Fatalf("CS301 should belong to no stage, got %+v", got)
	}
}

func TestOrder_RespectsPrerequisites(t *testing.T) {
	m := loadFixture(t)

	order := m.Order()
	pos := make(map[string]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	if pos["CS101"] > pos["CS201"] || pos["CS201"] > pos["CS301"] {
		t.Fatalf("prerequisite ordering violated: %v", order)
	}
	if len(order) != m.Len() {
		t.Fatalf("order dropped leaves: %v", order)
	}
}

func TestOrder_CycleFallsBackToDocumentOrder(t *testing.T) {
	doc := `{"hierarchy":{"name":"r","children":[{"name":"S","children":[{"name":"G","children":[
		{"code":"A1","name":"a"},{"code":"B1","name":"b"}]}]}]},
		"links":[{"source":"A1","target":"B1"},{"source":"B1","target":"A1"}]}`
	m, err := Load(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("cycle must not be fatal: %v", err)
	}
	if got := m.Order(); !reflect.DeepEqual(got, []string{"A1", "B1"}) {
		t.Fatalf("expected document order fallback, got %v", got)
	}
}

func TestMissingChildrenTreatedAsEmpty(t *testing.T) {
	doc := `{"hierarchy":{"name":"r","children":[{"name":"Empty"},{"name":"S","children":[{"name":"G","children":[{"code":"C1","name":"c"}]}]}]}}`
	m, err := Load(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if m.Len() != 1 {
		t.Fatalf("expected 1 leaf, got %d", m.Len())
	}
	if len(m.Subjects) != 2 {
		t.Fatalf("empty subject should stay in the model, got %d subjects", len(m.Subjects))
	}
}

func TestFlatten_Sorted(t *testing.T) {
	m := loadFixture(t)

	rows := m.Flatten()
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	if rows[0].Subject != "Computer Science" || rows[0].Code != "CS101" {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if rows[3].Subject != "Mathematics" {
		t.Fatalf("unexpected last row: %+v", rows[3])
	}
}

func TestLabel_FallsBackToRawID(t *testing.T) {
	m := loadFixture(t)

	if got := m.Label("CS101"); got != "CS101 Intro to Programming" {
		t.Fatalf("label = %q", got)
	}
	if got := m.Label("UNKNOWN"); got != "UNKNOWN" {
		t.Fatalf("unresolved label should be the raw id, got %q", got)
	}
}

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"Real Analysis":   "real-analysis",
		"C++ / Systems!":  "c-systems",
		"  ":              "course",
		"Already-slugged": "already-slugged",
	}
	for in, want := range cases {
		if got := Slug(in); got != want {
			t.Errorf("Slug(%q) = %q, want %q", in, got, want)
		}
	}
}
