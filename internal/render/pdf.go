package render

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"coursemap/internal/course"
	"coursemap/internal/layout"
	"coursemap/internal/view"
)

// PDF writes a one-page landscape report: the treemap diagram scaled to the
// page plus a legend of subjects with their course counts. Only the treemap
// variant is exported; the radial variants are screen surfaces.
func PDF(w io.Writer, d *layout.Diagram, m *course.Model, st view.State, theme Theme) error {
	pdf := gofpdf.New("L", "pt", "A4", "")
	pdf.AddPage()
	pageW, pageH := pdf.GetPageSize()

	const margin = 36.0
	titleH := 28.0
	legendH := 60.0

	title := m.Raw.Hierarchy.Name
	if title == "" {
		title = "Coursework"
	}
	pdf.SetFont("Helvetica", "B", 16)
	r, g, b := RGB(theme.Foreground())
	pdf.SetTextColor(r, g, b)
	pdf.Text(margin, margin, fmt.Sprintf("%s — %d courses", title, m.Len()))

	// Scale diagram coordinates into the content box.
	boxW := pageW - 2*margin
	boxH := pageH - 2*margin - titleH - legendH
	if d.Bounds.W <= 0 || d.Bounds.H <= 0 {
		return pdf.Output(w)
	}
	sx := boxW / d.Bounds.W
	sy := boxH / d.Bounds.H
	ox, oy := margin, margin+titleH

	index := subjectIndex(d)
	for _, s := range d.Subjects {
		r, g, b := RGB(Mix(SubjectFill(index[s.Name], theme), "#ffffff", 0.5))
		pdf.SetFillColor(r, g, b)
		pdf.Rect(ox+s.Rect.X*sx, oy+s.Rect.Y*sy, s.Rect.W*sx, s.Rect.H*sy, "F")
	}
	pdf.SetFont("Helvetica", "", 8)
	for _, tile := range d.Tiles {
		r, g, b := RGB(SubjectFill(index[tile.Subject], theme))
		pdf.SetFillColor(r, g, b)
		x, y := ox+tile.Rect.X*sx, oy+tile.Rect.Y*sy
		tw, th := tile.Rect.W*sx, tile.Rect.H*sy
		style := "F"
		if tile.ID == st.SelectedID {
			ar, ag, ab := RGB(theme.Accent())
			pdf.SetDrawColor(ar, ag, ab)
			pdf.SetLineWidth(1.5)
			style = "FD"
		}
		pdf.Rect(x, y, tw, th, style)
		if th >= 14 {
			label := layout.Fit(tile.Label, tw-6, pdfMeasurer(pdf))
			pdf.SetTextColor(20, 20, 20)
			pdf.Text(x+3, y+10, label)
		}
	}

	// Legend along the bottom.
	pdf.SetFont("Helvetica", "", 10)
	lx := margin
	ly := pageH - margin - legendH + 18
	for _, s := range d.Subjects {
		r, g, b := RGB(SubjectStroke(index[s.Name]))
		pdf.SetFillColor(r, g, b)
		pdf.Rect(lx, ly-8, 10, 10, "F")
		entry := fmt.Sprintf("%s (%d)", s.Name, s.Leaves)
		fr, fg, fb := RGB(theme.Foreground())
		pdf.SetTextColor(fr, fg, fb)
		pdf.Text(lx+16, ly, entry)
		lx += pdf.GetStringWidth(entry) + 40
		if lx > pageW-margin-120 {
			lx = margin
			ly += 16
		}
	}

	return pdf.Output(w)
}

// pdfMeasurer uses the current PDF font metrics for truncation.
func pdfMeasurer(pdf *gofpdf.Fpdf) layout.Measurer {
	return func(s string) float64 {
		return pdf.GetStringWidth(s)
	}
}
