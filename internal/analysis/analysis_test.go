package analysis

import (
	"reflect"
	"testing"

	"github.com/KaramelBytes/sectorlens/internal/dataset"
)

func pairs(entries []FrequencyEntry) [][2]any {
	out := make([][2]any, 0, len(entries))
	for _, e := range entries {
		out = append(out, [2]any{e.Value, e.Count})
	}
	return out
}

func TestCountByField(t *testing.T) {
	records := []dataset.Record{{"s": "A"}, {"s": "B"}, {"s": "A"}, {"s": nil}}
	got := pairs(CountByField(records, "s"))
	want := [][2]any{{"A", 2}, {"B", 1}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("CountByField = %v, want %v", got, want)
	}
}

func TestCountByFieldSkipsBlankAndTrims(t *testing.T) {
	records := []dataset.Record{
		{"s": " Legal "},
		{"s": "   "},
		{"s": ""},
		{"other": "x"},
		{"s": "Fiscal"},
		{"s": "Legal"},
		{"s": float64(7)},
		{"s": "Fiscal"},
		{"s": "Laboral"},
	}
	entries := CountByField(records, "s")
	got := pairs(entries)
	want := [][2]any{{"Legal", 2}, {"Fiscal", 2}, {"7", 1}, {"Laboral", 1}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("CountByField = %v, want %v", got, want)
	}
	sum := 0.0
	for _, e := range entries {
		if e.Count < 1 {
			t.Fatalf("entry with count < 1: %+v", e)
		}
		sum += e.Share
	}
	if sum < 0.999 || sum > 1.001 {
		t.Fatalf("shares should sum to 1, got %v", sum)
	}
	if CountByField(nil, "s") != nil {
		t.Fatalf("expected nil for no records")
	}
}

func TestDistinctGroupValues(t *testing.T) {
	records := []dataset.Record{
		{"g": "Y"}, {"g": " X "}, {"g": "  "}, {"g": nil}, {"g": "X"}, {"g": "Y"},
	}
	got := DistinctGroupValues(records, "g")
	if !reflect.DeepEqual(got, []string{"Y", "X"}) {
		t.Fatalf("DistinctGroupValues = %v", got)
	}
	if got := DistinctGroupValues(records, ""); len(got) != 0 {
		t.Fatalf("unresolved field should give no groups, got %v", got)
	}
}

func TestSortGroupsSpanishCollation(t *testing.T) {
	in := []string{"Zeta", "Ñandú", "árbol", "Nube", "Oso", "Beta"}
	got := SortGroups(in, "es")
	want := []string{"árbol", "Beta", "Nube", "Ñandú", "Oso", "Zeta"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SortGroups = %v, want %v", got, want)
	}
	if in[0] != "Zeta" {
		t.Fatalf("input must not be reordered")
	}
	if got := SortGroups([]string{"b", "a"}, "not a tag!"); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("fallback locale sort = %v", got)
	}
}

func TestFilterByGroup(t *testing.T) {
	records := []dataset.Record{{"g": "X"}, {"g": "x"}, {"g": " X"}, {"g": nil}, {"g": "Y"}}

	all := FilterByGroup(records, "g", All)
	if &all[0] != &records[0] || len(all) != len(records) {
		t.Fatalf("All should return the same slice")
	}
	unresolved := FilterByGroup(records, "", SelectGroup("X"))
	if len(unresolved) != len(records) {
		t.Fatalf("unresolved field should not filter")
	}

	got := FilterByGroup(records, "g", SelectGroup("X"))
	if len(got) != 2 {
		t.Fatalf("expected case-sensitive trimmed match on 2 records, got %d", len(got))
	}
	if len(records) != 5 || records[1]["g"] != "x" {
		t.Fatalf("input records were modified")
	}
	if got := FilterByGroup(records, "g", SelectGroup("Z")); len(got) != 0 {
		t.Fatalf("expected no records for unknown group, got %d", len(got))
	}
}

func endToEndDataset() *dataset.Dataset {
	return dataset.FromRows([][]string{
		{"Grupo", "SubSector"},
		{"X", "Legal"},
		{"X", "Fiscal"},
		{"Y", "Legal"},
	})
}

func TestBuildViewEndToEnd(t *testing.T) {
	ds := endToEndDataset()
	f := Fields{Group: "Grupo", Subsector: "SubSector"}
	groups := SortGroups(DistinctGroupValues(ds.Records, f.Group), "es")

	v := BuildView(ds, f, groups, SelectGroup("X"), 0)
	want := [][2]any{{"Legal", 1}, {"Fiscal", 1}}
	if got := pairs(v.Counts); !reflect.DeepEqual(got, want) {
		t.Fatalf("counts = %v, want %v", got, want)
	}
	if v.Total != 3 || v.Matched != 2 || len(v.Rows) != 2 {
		t.Fatalf("unexpected totals: total=%d matched=%d rows=%d", v.Total, v.Matched, len(v.Rows))
	}
	if !reflect.DeepEqual(v.Rows[1], []string{"X", "Fiscal"}) {
		t.Fatalf("unexpected preview row: %v", v.Rows[1])
	}

	again := BuildView(ds, f, groups, SelectGroup("X"), 0)
	if !reflect.DeepEqual(v, again) {
		t.Fatalf("re-applying the same selection changed the view")
	}

	allView := BuildView(ds, f, groups, All, 0)
	if got := pairs(allView.Counts); !reflect.DeepEqual(got, [][2]any{{"Legal", 2}, {"Fiscal", 1}}) {
		t.Fatalf("unfiltered counts = %v", got)
	}
}

func TestBuildViewPreviewLimitAndMissingSubsector(t *testing.T) {
	rows := [][]string{{"Grupo", "Empresa"}}
	for i := 0; i < 250; i++ {
		rows = append(rows, []string{"X", "E"})
	}
	ds := dataset.FromRows(rows)
	v := BuildView(ds, Fields{Group: "Grupo"}, []string{"X"}, All, 0)
	if len(v.Rows) != DefaultPreviewLimit || !v.Truncated() {
		t.Fatalf("expected preview capped at %d, got %d", DefaultPreviewLimit, len(v.Rows))
	}
	if v.Counts != nil {
		t.Fatalf("no subsector field means no counts, got %v", v.Counts)
	}
	if v := BuildView(ds, Fields{}, nil, All, 10); len(v.Rows) != 10 || v.Matched != 250 {
		t.Fatalf("expected limit 10 and all records matched, got %d/%d", len(v.Rows), v.Matched)
	}
}
