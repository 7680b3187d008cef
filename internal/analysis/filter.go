package analysis

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/KaramelBytes/sectorlens/internal/dataset"
)

// Selection is the active group filter. The zero value (All) selects every
// record; group values are never blank, so Group == "" cannot clash with one.
type Selection struct {
	Group string `json:"group,omitempty"`
}

// All is the "no filter" selection.
var All = Selection{}

// SelectGroup returns the selection for a single group value.
func SelectGroup(g string) Selection { return Selection{Group: g} }

// IsAll reports whether the selection lets every record through.
func (s Selection) IsAll() bool { return s.Group == "" }

// DistinctGroupValues returns the trimmed, non-blank values of groupField in
// first-seen order, without duplicates. An unresolved field ("") yields nil.
func DistinctGroupValues(records []dataset.Record, groupField string) []string {
	if groupField == "" {
		return nil
	}
	seen := map[string]bool{}
	var out []string
	for _, r := range records {
		v, ok := trimmedValue(r, groupField)
		if !ok || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// SortGroups orders group values for display using the collation rules of
// locale (a BCP 47 tag such as "es"). Unknown tags fall back to Spanish.
func SortGroups(values []string, locale string) []string {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Spanish
	}
	out := slices.Clone(values)
	collate.New(tag).SortStrings(out)
	return out
}

// FilterByGroup returns the records whose trimmed groupField value equals
// sel.Group exactly. With All, or an unresolved field, records is returned
// as is. The input slice is never modified.
func FilterByGroup(records []dataset.Record, groupField string, sel Selection) []dataset.Record {
	if sel.IsAll() || groupField == "" {
		return records
	}
	out := make([]dataset.Record, 0, len(records))
	for _, r := range records {
		if v, ok := trimmedValue(r, groupField); ok && v == sel.Group {
			out = append(out, r)
		}
	}
	return out
}
