package course

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Node is one raw hierarchy node as it appears on the wire. Depth is fixed:
// root(0) -> subject(1) -> group(2) -> course(3). Only depth-3 nodes carry
// the course fields.
type Node struct {
	Name        string     `json:"name"`
	Children    []Node     `json:"children,omitempty"`
	ID          string     `json:"id,omitempty"`
	Code        string     `json:"code,omitempty"`
	Year        YearField  `json:"year,omitempty"`
	Description string     `json:"description,omitempty"`
}

// YearField accepts either a JSON string or number, the way the original
// dataset was authored.
type YearField string

func (y *YearField) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*y = YearField(s)
		return nil
	}
	var n float64
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*y = YearField(strconv.Itoa(int(n)))
	return nil
}

// Edge is a directed prerequisite relation: Source must be taken before
// Target. Both sides reference leaf ids.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Stage is a named course-of-study grouping; membership is many-to-many.
type Stage struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Courses     []string `json:"courses,omitempty"`
}

// Dataset is the wire document served as a static resource.
type Dataset struct {
	Hierarchy Node    `json:"hierarchy"`
	Links     []Edge  `json:"links,omitempty"`
	Stages    []Stage `json:"stages,omitempty"`
}

// Course is a resolved leaf: id derivation, category, and year inference
// already applied.
type Course struct {
	ID          string `json:"id"`
	Code        string `json:"code,omitempty"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Group       string `json:"group,omitempty"`
	Year        string `json:"year,omitempty"`
	Description string `json:"description,omitempty"`
}

// Label is the human name used for cross references: code and name when the
// code exists, otherwise the name alone.
func (c *Course) Label() string {
	if c.Code != "" {
		return c.Code + " " + c.Name
	}
	return c.Name
}

// Subject pairs a depth-1 name with its leaves in document order, groups
// flattened away. This is the shape the layout engines consume.
type Subject struct {
	Name    string
	Courses []*Course
}

// Row is one line of the flat course listing.
type Row struct {
	Subject string `json:"subject"`
	Group   string `json:"group"`
	ID      string `json:"id"`
	Code    string `json:"code,omitempty"`
	Name    string `json:"name"`
	Year    string `json:"year,omitempty"`
}

// Slug normalizes a display name into an id: lowercase, runs of
// non-alphanumerics collapsed to single dashes.
func Slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
		} else if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		return "course"
	}
	return out
}
