package server

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"coursemap/internal/detail"
	"coursemap/internal/render"
)

// The coursework page is a static projection of one interaction state:
// legend links re-request with a focus, tiles are re-requested by select
// id. It is deliberately plain; the site shell around it is not ours.
var pageTmpl = template.Must(template.New("coursework").Parse(`<!doctype html>
<html lang="en" data-theme="{{.Theme}}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Coursework</title>
</head>
<body>
<main id="coursework">
{{- if .Failed}}
<p role="alert">{{.FailedText}}</p>
{{- else}}
<nav aria-label="Subjects">
{{- range .Legend}}
  <a href="?focus={{.Query}}"{{if .Active}} aria-current="true"{{end}}>{{.Name}} ({{.Count}})</a>
{{- end}}
  <a href="?">Clear</a>
</nav>
<figure>{{.SVG}}</figure>
<aside>{{.Panel}}</aside>
{{- end}}
</main>
</body>
</html>`))

type legendEntry struct {
	Name   string
	Query  string
	Count  int
	Active bool
}

type pageData struct {
	Theme      string
	Failed     bool
	FailedText string
	Legend     []legendEntry
	SVG        template.HTML
	Panel      template.HTML
}

func (s *Server) handleIndex(c *gin.Context) {
	theme := s.theme(c)
	data := pageData{Theme: string(theme), FailedText: FailedLoadText}

	if s.model == nil {
		data.Failed = true
		s.renderPage(c, data)
		return
	}

	st := s.viewState(c)
	for _, subj := range s.model.Subjects {
		data.Legend = append(data.Legend, legendEntry{
			Name:   subj.Name,
			Query:  template.URLQueryEscaper(subj.Name),
			Count:  len(subj.Courses),
			Active: subj.Name == st.FocusedSubject,
		})
	}

	d, _, ok := s.diagram(c)
	if !ok {
		return
	}
	var svgBuf strings.Builder
	if err := render.SVG(&svgBuf, d, st, theme); err == nil {
		data.SVG = template.HTML(svgBuf.String())
	}
	if html, err := detail.Project(s.model, st.SelectedID).HTML(); err == nil {
		data.Panel = template.HTML(html)
	}
	s.renderPage(c, data)
}

func (s *Server) renderPage(c *gin.Context, data pageData) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := pageTmpl.Execute(c.Writer, data); err != nil {
		s.log.Error("render coursework page", "err", err)
	}
}
