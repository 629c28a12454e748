// Package detail projects the current selection plus its graph edges into
// the side panel shown next to the diagram.
package detail

import (
	"fmt"
	"html/template"
	"strings"

	"coursemap/internal/course"
)

// Item is a cross-referenced course: the id plus its resolved label (the
// raw id doubles as the label when resolution fails).
type Item struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Panel is everything the detail view displays for the pinned selection.
// Empty means nothing is selected and a placeholder prompt renders instead.
type Panel struct {
	Empty       bool     `json:"empty"`
	ID          string   `json:"id,omitempty"`
	Title       string   `json:"title,omitempty"`
	Category    string   `json:"category,omitempty"`
	Year        string   `json:"year,omitempty"`
	Description string   `json:"description,omitempty"`
	Stages      []string `json:"stages,omitempty"`
	Prereqs     []Item   `json:"prereqs,omitempty"`
	Unlocks     []Item   `json:"unlocks,omitempty"`
}

// Project resolves the selected leaf against the model indices. An unknown
// or empty id yields the placeholder panel.
func Project(m *course.Model, selectedID string) Panel {
	c, ok := m.Course(selectedID)
	if selectedID == "" || !ok {
		return Panel{Empty: true}
	}
	p := Panel{
		ID:          c.ID,
		Title:       c.Label(),
		Category:    c.Category,
		Year:        c.Year,
		Description: c.Description,
	}
	for _, st := range m.StagesOf(c.ID) {
		p.Stages = append(p.Stages, st.Name)
	}
	for _, id := range m.Prereqs(c.ID) {
		p.Prereqs = append(p.Prereqs, Item{ID: id, Label: m.Label(id)})
	}
	for _, id := range m.Unlocks(c.ID) {
		p.Unlocks = append(p.Unlocks, Item{ID: id, Label: m.Label(id)})
	}
	return p
}

var panelTmpl = template.Must(template.New("panel").Parse(`{{if .Empty -}}
<div class="panel placeholder"><p>Select a course to see its details.</p></div>
{{- else -}}
<div class="panel" data-course="{{.ID}}">
  <h2>{{.Title}}</h2>
  <p class="meta">{{.Category}}{{if .Year}} · {{.Year}}{{end}}</p>
  {{- if .Description}}
  <p>{{.Description}}</p>
  {{- end}}
  {{- if .Stages}}
  <h3>Plan stages</h3>
  <ul>{{range .Stages}}<li>{{.}}</li>{{end}}</ul>
  {{- end}}
  {{- if .Prereqs}}
  <h3>Prerequisites</h3>
  <ul>{{range .Prereqs}}<li data-course="{{.ID}}">{{.Label}}</li>{{end}}</ul>
  {{- end}}
  {{- if .Unlocks}}
  <h3>Unlocks</h3>
  <ul>{{range .Unlocks}}<li data-course="{{.ID}}">{{.Label}}</li>{{end}}</ul>
  {{- end}}
</div>
{{- end}}`))

// HTML renders the panel fragment. All course-controlled text passes
// through html/template escaping.
func (p Panel) HTML() (string, error) {
	var b strings.Builder
	if err := panelTmpl.Execute(&b, p); err != nil {
		return "", fmt.Errorf("render panel: %w", err)
	}
	return b.String(), nil
}
