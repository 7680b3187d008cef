package analysis

import (
	"sort"
	"strings"

	"github.com/KaramelBytes/sectorlens/internal/dataset"
)

// FrequencyEntry is one bucket of a field's value counts.
type FrequencyEntry struct {
	Value string  `json:"value"`
	Count int     `json:"count"`
	Share float64 `json:"share"`
}

// CountByField counts the trimmed, non-empty values of field across records.
// Entries are ordered by count descending; ties keep first-seen order.
// Missing, nil and blank values are skipped.
func CountByField(records []dataset.Record, field string) []FrequencyEntry {
	index := map[string]int{}
	var out []FrequencyEntry
	total := 0
	for _, r := range records {
		v, ok := trimmedValue(r, field)
		if !ok {
			continue
		}
		total++
		if i, seen := index[v]; seen {
			out[i].Count++
			continue
		}
		index[v] = len(out)
		out = append(out, FrequencyEntry{Value: v, Count: 1})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	for i := range out {
		out[i].Share = float64(out[i].Count) / float64(total)
	}
	return out
}

// trimmedValue returns the trimmed text of r[field]; ok is false when the
// cell is absent, nil or blank.
func trimmedValue(r dataset.Record, field string) (string, bool) {
	s, ok := dataset.CellText(r[field])
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}
