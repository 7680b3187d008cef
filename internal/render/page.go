package render

import (
	"bytes"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"net/url"

	"github.com/KaramelBytes/sectorlens/internal/analysis"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templateFS, "templates/page.html"))

// LinkFunc maps a selection to the href of its chip.
type LinkFunc func(analysis.Selection) string

// QueryLink links chips to "?group=<value>" on the current page.
func QueryLink(sel analysis.Selection) string {
	if sel.IsAll() {
		return "?"
	}
	return "?group=" + url.QueryEscape(sel.Group)
}

type pageChip struct {
	Chip
	Href string
}

type legendItem struct {
	Label string
	Count int
	Share float64
	Color string
}

// Page collects a view and writes it as a single self-contained HTML page.
// The chart is embedded as an SVG data URI.
type Page struct {
	Title string
	Link  LinkFunc

	Message  string
	Chips    []pageChip
	ChartURI template.URL
	Legend   []legendItem
	Table    *Table
}

// NewPage returns an empty page. A nil link uses QueryLink.
func NewPage(title string, link LinkFunc) *Page {
	if link == nil {
		link = QueryLink
	}
	return &Page{Title: title, Link: link}
}

func (p *Page) RenderMessage(msg string) error {
	p.Message = msg
	return nil
}

func (p *Page) RenderChips(chips []Chip) error {
	p.Chips = p.Chips[:0]
	for _, c := range chips {
		p.Chips = append(p.Chips, pageChip{Chip: c, Href: p.Link(c.Selection)})
	}
	return nil
}

func (p *Page) RenderChart(c Chart) error {
	var buf bytes.Buffer
	if err := Donut(&buf, c, SVG); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	p.ChartURI = template.URL("data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()))
	p.Legend = p.Legend[:0]
	for i, e := range c.Entries {
		p.Legend = append(p.Legend, legendItem{Label: e.Value, Count: e.Count, Share: e.Share * 100, Color: c.color(i)})
	}
	return nil
}

func (p *Page) RenderTable(t Table) error {
	p.Table = &t
	return nil
}

// Write executes the page template into w. Rendering goes to a buffer first
// so a template error never leaves a half-written page behind.
func (p *Page) Write(w io.Writer) error {
	var buf bytes.Buffer
	if err := pageTmpl.ExecuteTemplate(&buf, "page.html", p); err != nil {
		return fmt.Errorf("execute template: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// EmptyTableText is exposed to the template.
func (p *Page) EmptyTableText() string { return EmptyTableText }
