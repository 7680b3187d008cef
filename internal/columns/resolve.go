// Package columns binds logical fields to the literal headers of a sheet.
package columns

import (
	"strings"

	"github.com/KaramelBytes/sectorlens/internal/textnorm"
)

// Resolve returns the header matching the first pattern that hits. For each
// pattern, in order, an exact match on normalized text is tried first and then
// a substring match; only then does the next pattern get a turn. The returned
// header keeps its original spelling.
func Resolve(headers []string, patterns []string) (string, bool) {
	norms := make([]string, len(headers))
	for i, h := range headers {
		norms[i] = textnorm.Normalize(h)
	}
	for _, pat := range patterns {
		np := textnorm.Normalize(pat)
		if np == "" {
			continue
		}
		for i, n := range norms {
			if n == np {
				return headers[i], true
			}
		}
		for i, n := range norms {
			if strings.Contains(n, np) {
				return headers[i], true
			}
		}
	}
	return "", false
}

// Field is a logical column such as "group" or "subsector".
type Field struct {
	Name     string
	Patterns []string
	Required bool
}

// Binding records the header a Field resolved to.
type Binding struct {
	Field  Field
	Header string
	Found  bool
}

// Bind resolves f against headers.
func Bind(headers []string, f Field) Binding {
	h, ok := Resolve(headers, f.Patterns)
	return Binding{Field: f, Header: h, Found: ok}
}
