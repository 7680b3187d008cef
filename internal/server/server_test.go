package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/sectorlens/internal/analysis"
	"github.com/KaramelBytes/sectorlens/internal/app"
	"github.com/KaramelBytes/sectorlens/internal/columns"
	"github.com/KaramelBytes/sectorlens/internal/dataset"
)

func newController(t *testing.T, rows [][]string) *app.Controller {
	t.Helper()
	c := app.New(app.Options{
		GroupField:     columns.Field{Name: "grupo", Patterns: []string{"grupo", "grupos"}},
		SubsectorField: columns.Field{Name: "subsector", Patterns: []string{"subsector", "sub sector", "sector"}, Required: true},
		ChartTitle:     "Subsectores",
	})
	_ = c.Init(dataset.FromRows(rows))
	return c
}

var sampleRows = [][]string{
	{"Grupo", "SubSector", "Empresa"},
	{"X", "Legal", "Acme"},
	{"X", "Fiscal", "Beta"},
	{"Y", "Legal", "Gamma"},
	{"Señal & Co", "Laboral", "Delta"},
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestIndexPage(t *testing.T) {
	s := New(newController(t, sampleRows), "Grupo PRA")

	rec := get(t, s, "/?group=X")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	body := rec.Body.String()
	assert.Contains(t, body, "<title>Grupo PRA</title>")
	assert.Contains(t, body, `class="chip is-active" href="/?group=X"`)
	assert.Contains(t, body, ">Todos</a>")
	assert.Contains(t, body, "Acme")
	assert.NotContains(t, body, "Gamma")
	assert.Contains(t, body, "data:image/svg")
}

func TestChartEndpoints(t *testing.T) {
	s := New(newController(t, sampleRows), "")

	rec := get(t, s, "/chart.svg?group=X")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<svg")
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)

	req := httptest.NewRequest(http.MethodGet, "/chart.svg?group=X", nil)
	req.Header.Set("If-None-Match", etag)
	cached := httptest.NewRecorder()
	s.ServeHTTP(cached, req)
	assert.Equal(t, http.StatusNotModified, cached.Code)

	png := get(t, s, "/chart.png")
	require.Equal(t, http.StatusOK, png.Code)
	assert.True(t, strings.HasPrefix(png.Body.String(), "\x89PNG"))

	empty := get(t, s, "/chart.svg?group=Nadie")
	assert.Equal(t, http.StatusNoContent, empty.Code)
}

func TestViewAPI(t *testing.T) {
	s := New(newController(t, sampleRows), "")

	rec := get(t, s, "/api/view?group="+url.QueryEscape("X"))
	require.Equal(t, http.StatusOK, rec.Code)
	var v analysis.View
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	assert.Equal(t, "X", v.Selection.Group)
	assert.Equal(t, 4, v.Total)
	assert.Equal(t, 2, v.Matched)
	require.Len(t, v.Counts, 2)
	assert.Equal(t, "Legal", v.Counts[0].Value)
	assert.Equal(t, "Fiscal", v.Counts[1].Value)
	assert.Equal(t, []string{"Grupo", "SubSector", "Empresa"}, v.Headers)

	for _, target := range []string{"/api/view", "/api/view?group=Todos"} {
		var all analysis.View
		rec := get(t, s, target)
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all), target)
		assert.True(t, all.Selection.IsAll(), target)
		assert.Equal(t, 4, all.Matched, target)
		assert.Len(t, all.Counts, 3, target)
	}
}

func TestGroupsAndColumnsAPI(t *testing.T) {
	s := New(newController(t, sampleRows), "")

	rec := get(t, s, "/api/groups")
	require.Equal(t, http.StatusOK, rec.Code)
	var groups struct {
		Field    string   `json:"field"`
		Resolved bool     `json:"resolved"`
		AllLabel string   `json:"all_label"`
		Groups   []string `json:"groups"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &groups))
	assert.Equal(t, "Grupo", groups.Field)
	assert.True(t, groups.Resolved)
	assert.Equal(t, "Todos", groups.AllLabel)
	assert.Equal(t, []string{"Señal & Co", "X", "Y"}, groups.Groups)

	cols := get(t, s, "/api/columns")
	require.Equal(t, http.StatusOK, cols.Code)
	assert.Contains(t, cols.Body.String(), `"header": "SubSector"`)
	assert.Contains(t, cols.Body.String(), `"required": true`)

	assert.Equal(t, http.StatusOK, get(t, s, "/healthz").Code)
}

func TestUnavailableDataset(t *testing.T) {
	s := New(newController(t, [][]string{{"Grupo", "Empresa"}, {"X", "Acme"}}), "")

	page := get(t, s, "/")
	require.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), "No se encontró la columna ‘subsector’ en el Excel.")
	assert.NotContains(t, page.Body.String(), "<table")

	for _, path := range []string{"/api/view", "/api/groups", "/api/columns", "/chart.svg", "/healthz"} {
		rec := get(t, s, path)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, path)
		assert.Contains(t, rec.Body.String(), "subsector", path)
	}
}
