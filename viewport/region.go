package viewport

import (
	"github.com/scopemap/scopemap/source"
)

// Region represents a named, offset-addressable sub-range of a source file,
// used to present a restricted view of the file to an end user or runtime.
type Region struct {
	ID        string      `yaml:"id" json:"id"`                 // Region name from the start marker
	BufferID  string      `yaml:"bufferId" json:"bufferId"`     // <path>@<regionID>
	Path      string      `yaml:"path" json:"path"`             // File the region belongs to
	Span      source.Span `yaml:"span" json:"span"`             // Content between the marker lines
	StartLine int         `yaml:"startLine" json:"startLine"`   // Absolute line of the first content line
	EndLine   int         `yaml:"endLine" json:"endLine"`       // Absolute line of the last content line
}

// ContainsLine reports whether the given absolute line falls within the
// region's line range (inclusive on both ends).
func (r *Region) ContainsLine(line int) bool {
	return line >= r.StartLine && line <= r.EndLine
}

// MakeBufferID composes a buffer identifier from a file path and a region id.
func MakeBufferID(path, regionID string) string {
	return path + "@" + regionID
}
