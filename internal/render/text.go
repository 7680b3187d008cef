package render

import (
	"fmt"
	"io"
	"strings"
)

// Text renders views as compact Markdown-style sections for terminals and
// files.
type Text struct {
	w io.Writer
	// BarWidth is the width of the longest bar in the counts section.
	BarWidth int
}

// NewText returns a Text renderer writing to w.
func NewText(w io.Writer) *Text {
	return &Text{w: w, BarWidth: 24}
}

func (t *Text) RenderMessage(msg string) error {
	if msg == "" {
		return nil
	}
	_, err := fmt.Fprintf(t.w, "%s\n", msg)
	return err
}

func (t *Text) RenderChips(chips []Chip) error {
	var b strings.Builder
	b.WriteString("[GRUPOS]\n")
	for _, c := range chips {
		mark := "-"
		if c.Active {
			mark = "*"
		}
		b.WriteString(fmt.Sprintf("%s %s\n", mark, safeVal(c.Label)))
	}
	b.WriteString("\n")
	_, err := io.WriteString(t.w, b.String())
	return err
}

func (t *Text) RenderChart(c Chart) error {
	if len(c.Entries) == 0 {
		return nil
	}
	total, widest := 0, 0
	for _, e := range c.Entries {
		total += e.Count
		widest = max(widest, len([]rune(e.Value)))
	}
	top := c.Entries[0].Count
	var b strings.Builder
	title := c.Title
	if title == "" {
		title = "SUBSECTORES"
	}
	b.WriteString(fmt.Sprintf("[%s] (n=%d)\n", strings.ToUpper(title), total))
	for _, e := range c.Entries {
		pad := strings.Repeat(" ", widest-len([]rune(e.Value)))
		bar := ""
		if t.BarWidth > 0 && top > 0 {
			bar = strings.Repeat("█", max(1, e.Count*t.BarWidth/top))
		}
		b.WriteString(fmt.Sprintf("- %s%s  %4d  %5.1f%%  %s\n", safeVal(e.Value), pad, e.Count, e.Share*100, bar))
	}
	b.WriteString("\n")
	_, err := io.WriteString(t.w, b.String())
	return err
}

func (t *Text) RenderTable(tb Table) error {
	var b strings.Builder
	if len(tb.Rows) < tb.Matched {
		b.WriteString(fmt.Sprintf("[VISTA PREVIA] (%d de %d filas)\n", len(tb.Rows), tb.Matched))
	} else {
		b.WriteString(fmt.Sprintf("[VISTA PREVIA] (%d filas)\n", len(tb.Rows)))
	}
	if len(tb.Rows) == 0 {
		b.WriteString(EmptyTableText + "\n")
		_, err := io.WriteString(t.w, b.String())
		return err
	}
	b.WriteString("| ")
	for i, h := range tb.Headers {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString(safeVal(h))
	}
	b.WriteString(" |\n|")
	for range tb.Headers {
		b.WriteString(" --- |")
	}
	b.WriteString("\n")
	for _, row := range tb.Rows {
		b.WriteString("| ")
		for i, cell := range row {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString(safeVal(cell))
		}
		b.WriteString(" |\n")
	}
	_, err := io.WriteString(t.w, b.String())
	return err
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
