package render

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"coursemap/internal/course"
)

// SummaryChart draws courses-per-subject as a bar chart. Format is "svg"
// or "png".
func SummaryChart(w io.Writer, m *course.Model, format string) error {
	p := plot.New()
	p.Title.Text = "Courses per subject"
	p.Y.Label.Text = "Courses"
	p.Y.Min = 0

	var vals plotter.Values
	var names []string
	for _, s := range m.Subjects {
		vals = append(vals, float64(len(s.Courses)))
		names = append(names, s.Name)
	}

	bars, err := plotter.NewBarChart(vals, vg.Points(28))
	if err != nil {
		return fmt.Errorf("build bar chart: %w", err)
	}
	bars.LineStyle.Width = 0
	bars.Color = color.RGBA{R: 0x60, G: 0xa5, B: 0xfa, A: 0xff}
	p.Add(bars)
	p.NominalX(names...)

	wt, err := p.WriterTo(6*vg.Inch, 4*vg.Inch, format)
	if err != nil {
		return fmt.Errorf("encode %s chart: %w", format, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}
	return nil
}
