package source

import (
	"fmt"
	"sort"
	"strings"
)

// Normalize rewrites all line terminators (CR, CRLF) to a single LF.
// It performs no other transformation and is idempotent.
func Normalize(text string) string {
	if !strings.ContainsRune(text, '\r') {
		return text
	}
	var sb strings.Builder
	sb.Grow(len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '\r' {
			// swallow the LF of a CRLF pair
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			sb.WriteByte('\n')
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

// Text holds normalized source content together with a line-start index,
// built once, so that offsets convert to (line, column) pairs by binary search.
type Text struct {
	content    string
	lineStarts []int
}

// NewText normalizes the supplied content and builds the line index.
func NewText(content string) *Text {
	normalized := Normalize(content)
	starts := []int{0}
	for i := 0; i < len(normalized); i++ {
		if normalized[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Text{content: normalized, lineStarts: starts}
}

// Content returns the normalized content.
func (t *Text) Content() string {
	return t.content
}

// Len returns the length of the normalized content in bytes.
func (t *Text) Len() int {
	return len(t.content)
}

// LineCount returns the number of lines in the text.
func (t *Text) LineCount() int {
	return len(t.lineStarts)
}

// LineStart returns the byte offset at which the given 0-based line begins.
func (t *Text) LineStart(line int) (int, error) {
	if line < 0 || line >= len(t.lineStarts) {
		return 0, fmt.Errorf("line %d out of range [0, %d)", line, len(t.lineStarts))
	}
	return t.lineStarts[line], nil
}

// PositionAt converts a byte offset into a Position. Every offset in
// [0, Len()] maps to exactly one (line, column) pair.
func (t *Text) PositionAt(offset int) (Position, error) {
	if offset < 0 || offset > len(t.content) {
		return Position{}, fmt.Errorf("offset %d out of range [0, %d]", offset, len(t.content))
	}
	line := sort.SearchInts(t.lineStarts, offset+1) - 1
	return Position{
		Line:   line,
		Column: offset - t.lineStarts[line],
		Offset: offset,
	}, nil
}

// LineAt returns the 0-based line containing the given byte offset.
func (t *Text) LineAt(offset int) (int, error) {
	pos, err := t.PositionAt(offset)
	if err != nil {
		return 0, err
	}
	return pos.Line, nil
}

// Slice returns the content covered by the given span.
func (t *Text) Slice(span Span) (string, error) {
	if span.Start < 0 || span.End > len(t.content) || span.Start > span.End {
		return "", fmt.Errorf("span [%d, %d) out of range [0, %d]", span.Start, span.End, len(t.content))
	}
	return t.content[span.Start:span.End], nil
}
