package source

// Position represents a location in normalized source text.
// Lines and columns are 0-based; Offset is a byte offset into the normalized text.
type Position struct {
	Line   int `yaml:"line" json:"line"`
	Column int `yaml:"column" json:"column"`
	Offset int `yaml:"offset" json:"offset"`
}

// Span represents a half-open byte range [Start, End) in normalized source text.
type Span struct {
	Start int `yaml:"start" json:"start"`
	End   int `yaml:"end" json:"end"`
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Contains reports whether the given offset falls within the span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}
