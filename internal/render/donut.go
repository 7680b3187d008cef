package render

import (
	"errors"
	"io"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrEmptyChart is returned when a chart has no entries to draw.
var ErrEmptyChart = errors.New("chart has no values")

// Format selects the chart output encoding.
type Format string

const (
	SVG Format = "svg"
	PNG Format = "png"
)

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	if f == PNG {
		return "image/png"
	}
	return "image/svg+xml"
}

// Donut writes c as a doughnut chart in the given format.
func Donut(w io.Writer, c Chart, f Format) error {
	if len(c.Entries) == 0 {
		return ErrEmptyChart
	}
	values := make([]chart.Value, 0, len(c.Entries))
	for i, e := range c.Entries {
		values = append(values, chart.Value{
			Label: e.Value,
			Value: float64(e.Count),
			Style: chart.Style{
				FillColor:   hexColor(c.color(i)),
				StrokeColor: drawing.ColorWhite,
				StrokeWidth: 2,
				FontColor:   drawing.ColorWhite,
			},
		})
	}
	size := c.size()
	dc := chart.DonutChart{
		Title:  c.Title,
		Width:  size,
		Height: size,
		Values: values,
	}
	if f == PNG {
		return dc.Render(chart.PNG, w)
	}
	return dc.Render(chart.SVG, w)
}

func hexColor(s string) drawing.Color {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 3 && len(s) != 6 {
		return drawing.ColorBlack
	}
	return drawing.ColorFromHex(s)
}
