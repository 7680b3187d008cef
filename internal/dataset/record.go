package dataset

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/KaramelBytes/sectorlens/internal/textnorm"
)

// Record maps a column header to its cell value. Every record of a dataset
// carries every header; empty cells hold nil.
type Record map[string]any

// Dataset is one loaded sheet. It is replaced wholesale on load and never
// mutated afterwards.
type Dataset struct {
	ID       uuid.UUID
	Source   string
	Sheet    string
	Headers  []string
	Records  []Record
	LoadedAt time.Time
}

// Len reports the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// CellText renders a cell value as text. ok is false for nil.
func CellText(v any) (s string, ok bool) { return textnorm.CellText(v) }

// FromRows builds a dataset from raw sheet rows. The first row supplies the
// headers; empty headers become __EMPTY, __EMPTY_1, ... and duplicates get a
// numeric suffix. Fully blank rows are skipped.
func FromRows(rows [][]string) *Dataset {
	ds := &Dataset{ID: uuid.New(), LoadedAt: time.Now()}
	if len(rows) == 0 {
		return ds
	}
	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	ds.Headers = uniqueHeaders(rows[0], width)
	for _, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		rec := make(Record, width)
		for i, h := range ds.Headers {
			if i < len(row) && row[i] != "" {
				rec[h] = row[i]
			} else {
				rec[h] = nil
			}
		}
		ds.Records = append(ds.Records, rec)
	}
	return ds
}

func uniqueHeaders(row []string, width int) []string {
	used := make(map[string]bool, width)
	out := make([]string, width)
	for i := 0; i < width; i++ {
		base := ""
		if i < len(row) {
			base = row[i]
		}
		if base == "" {
			base = "__EMPTY"
		}
		name := base
		for n := 1; used[name]; n++ {
			name = fmt.Sprintf("%s_%d", base, n)
		}
		used[name] = true
		out[i] = name
	}
	return out
}

func blankRow(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}
