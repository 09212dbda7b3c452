package instrument

import (
	"github.com/scopemap/scopemap/source"
)

// VariableOccurrence records one syntactic use (read or write) of a variable.
type VariableOccurrence struct {
	Name      string      `yaml:"name" json:"name"`
	Span      source.Span `yaml:"span" json:"span"`
	StartLine int         `yaml:"startLine" json:"startLine"` // absolute line of Span.Start
}

// VariableLocationMap maps variable names to their occurrences in source
// appearance order.
type VariableLocationMap map[string][]VariableOccurrence

// Clone returns a deep copy of the map.
func (m VariableLocationMap) Clone() VariableLocationMap {
	cloned := make(VariableLocationMap, len(m))
	for name, occurrences := range m {
		cloned[name] = append([]VariableOccurrence(nil), occurrences...)
	}
	return cloned
}
