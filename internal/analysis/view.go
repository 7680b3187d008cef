package analysis

import (
	"github.com/KaramelBytes/sectorlens/internal/dataset"
)

// DefaultPreviewLimit caps preview rows when no limit is configured.
const DefaultPreviewLimit = 200

// Fields names the resolved headers a view is built from. An empty string
// means the logical field could not be resolved.
type Fields struct {
	Group     string `json:"group"`
	Subsector string `json:"subsector"`
}

// View is everything a renderer needs for one selection.
type View struct {
	DatasetID string           `json:"dataset_id"`
	Source    string           `json:"source"`
	Sheet     string           `json:"sheet,omitempty"`
	Fields    Fields           `json:"fields"`
	Selection Selection        `json:"selection"`
	Groups    []string         `json:"groups"`
	Counts    []FrequencyEntry `json:"counts"`
	Headers   []string         `json:"headers"`
	Rows      [][]string       `json:"rows"`
	Total     int              `json:"total"`
	Matched   int              `json:"matched"`
}

// Truncated reports whether the preview holds fewer rows than matched.
func (v *View) Truncated() bool { return len(v.Rows) < v.Matched }

// BuildView filters ds by sel, counts subsectors over the result and keeps at
// most previewLimit rows for display. groups is passed through unchanged.
func BuildView(ds *dataset.Dataset, f Fields, groups []string, sel Selection, previewLimit int) *View {
	if previewLimit <= 0 {
		previewLimit = DefaultPreviewLimit
	}
	v := &View{
		DatasetID: ds.ID.String(),
		Source:    ds.Source,
		Sheet:     ds.Sheet,
		Fields:    f,
		Selection: sel,
		Groups:    groups,
		Headers:   ds.Headers,
		Total:     ds.Len(),
	}
	filtered := FilterByGroup(ds.Records, f.Group, sel)
	v.Matched = len(filtered)
	if f.Subsector != "" {
		v.Counts = CountByField(filtered, f.Subsector)
	}
	n := min(len(filtered), previewLimit)
	v.Rows = make([][]string, 0, n)
	for _, r := range filtered[:n] {
		row := make([]string, len(ds.Headers))
		for i, h := range ds.Headers {
			row[i], _ = dataset.CellText(r[h])
		}
		v.Rows = append(v.Rows, row)
	}
	return v
}
