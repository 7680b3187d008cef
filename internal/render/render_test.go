package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/KaramelBytes/sectorlens/internal/analysis"
)

var sampleEntries = []analysis.FrequencyEntry{
	{Value: "Legal", Count: 2, Share: 2.0 / 3},
	{Value: "Fiscal", Count: 1, Share: 1.0 / 3},
}

func TestDonutSVGAndPNG(t *testing.T) {
	var svg bytes.Buffer
	if err := Donut(&svg, Chart{Entries: sampleEntries}, SVG); err != nil {
		t.Fatalf("svg: %v", err)
	}
	if !strings.Contains(svg.String(), "<svg") {
		t.Fatalf("expected svg document, got %.80q", svg.String())
	}

	var png bytes.Buffer
	if err := Donut(&png, Chart{Entries: sampleEntries, Size: 120, Palette: []string{"#000", "ff0000"}}, PNG); err != nil {
		t.Fatalf("png: %v", err)
	}
	if !bytes.HasPrefix(png.Bytes(), []byte("\x89PNG")) {
		t.Fatalf("expected png signature")
	}

	if err := Donut(&svg, Chart{}, SVG); !errors.Is(err, ErrEmptyChart) {
		t.Fatalf("expected ErrEmptyChart, got %v", err)
	}
}

func TestFormatContentType(t *testing.T) {
	if SVG.ContentType() != "image/svg+xml" || PNG.ContentType() != "image/png" {
		t.Fatalf("unexpected content types")
	}
}

func TestTextRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := NewText(&buf)
	chips := []Chip{
		{Label: "Todos", Selection: analysis.All},
		{Label: "X", Selection: analysis.SelectGroup("X"), Active: true},
	}
	if err := r.RenderChips(chips); err != nil {
		t.Fatal(err)
	}
	if err := r.RenderChart(Chart{Entries: sampleEntries}); err != nil {
		t.Fatal(err)
	}
	if err := r.RenderTable(Table{Headers: []string{"Grupo", "Nota"}, Rows: [][]string{{"X", "a|b"}}, Matched: 3}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"[GRUPOS]\n- Todos\n* X\n",
		"[SUBSECTORES] (n=3)",
		"- Legal ",
		"66.7%",
		"[VISTA PREVIA] (1 de 3 filas)",
		"| Grupo | Nota |",
		"| X | a/b |",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in output:\n%s", want, out)
		}
	}
	if strings.Index(out, "Legal") > strings.Index(out, "Fiscal") {
		t.Errorf("counts should keep descending order")
	}
}

func TestTextRendererEmptyTableAndMessage(t *testing.T) {
	var buf bytes.Buffer
	r := NewText(&buf)
	_ = r.RenderMessage("El Excel está vacío.")
	_ = r.RenderTable(Table{Headers: []string{"a"}})
	_ = r.RenderChart(Chart{})
	out := buf.String()
	if !strings.HasPrefix(out, "El Excel está vacío.\n") || !strings.Contains(out, EmptyTableText) {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if strings.Contains(out, "SUBSECTORES") {
		t.Fatalf("empty chart should render nothing")
	}
}

func TestPageRenderer(t *testing.T) {
	p := NewPage("Grupo PRA", nil)
	_ = p.RenderChips([]Chip{
		{Label: "Todos", Selection: analysis.All},
		{Label: "Fiscal & Legal", Selection: analysis.SelectGroup("Fiscal & Legal"), Active: true},
	})
	if err := p.RenderChart(Chart{Entries: sampleEntries}); err != nil {
		t.Fatalf("chart: %v", err)
	}
	_ = p.RenderTable(Table{Headers: []string{"Grupo"}, Rows: [][]string{{"<b>X</b>"}}, Matched: 1})

	var buf bytes.Buffer
	if err := p.Write(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	html := buf.String()
	for _, want := range []string{
		"<title>Grupo PRA</title>",
		`class="chip is-active" href="?group=Fiscal`,
		"%26",
		`src="data:image/svg`,
		"Legal: 2 (66.7%)",
		"&lt;b&gt;X&lt;/b&gt;",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("missing %q in page:\n%s", want, html)
		}
	}
}

func TestPageMessageOnly(t *testing.T) {
	p := NewPage("x", func(analysis.Selection) string { return "#" })
	_ = p.RenderMessage("No fue posible leer el Excel.")
	var buf bytes.Buffer
	if err := p.Write(&buf); err != nil {
		t.Fatal(err)
	}
	html := buf.String()
	if !strings.Contains(html, `<p class="muted">No fue posible leer el Excel.</p>`) {
		t.Fatalf("expected status message:\n%s", html)
	}
	if strings.Contains(html, "<table") || strings.Contains(html, "subsectorChart") {
		t.Fatalf("message page must not include chart or table")
	}
}
