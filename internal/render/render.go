// Package render draws views. The controller only talks to the Renderer
// interface, so matching and aggregation stay testable without a browser.
package render

import (
	"github.com/KaramelBytes/sectorlens/internal/analysis"
)

// Renderer receives the pieces of a view in order: chips, chart, table.
// RenderMessage replaces all of them when there is nothing to show.
type Renderer interface {
	RenderMessage(msg string) error
	RenderChips(chips []Chip) error
	RenderChart(chart Chart) error
	RenderTable(table Table) error
}

// Chip is one group filter button.
type Chip struct {
	Label     string
	Selection analysis.Selection
	Active    bool
}

// Chart is a doughnut chart of value counts.
type Chart struct {
	Title   string
	Entries []analysis.FrequencyEntry
	Palette []string
	Size    int
}

// Table is the preview of the filtered records.
type Table struct {
	Headers []string
	Rows    [][]string
	Matched int
}

// EmptyTableText is shown instead of a table with no rows.
const EmptyTableText = "No hay filas."

// DefaultPalette is used when a chart has no palette of its own.
var DefaultPalette = []string{
	"#3b82f6", "#f43f5e", "#10b981", "#f59e0b",
	"#6366f1", "#a78bfa", "#ef4444", "#22c55e",
}

// DefaultChartSize is the chart's width and height in pixels.
const DefaultChartSize = 280

func (c Chart) palette() []string {
	if len(c.Palette) == 0 {
		return DefaultPalette
	}
	return c.Palette
}

func (c Chart) color(i int) string {
	p := c.palette()
	return p[i%len(p)]
}

func (c Chart) size() int {
	if c.Size <= 0 {
		return DefaultChartSize
	}
	return c.Size
}
