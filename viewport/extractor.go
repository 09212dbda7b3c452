package viewport

import (
	"sort"
	"strings"

	"github.com/scopemap/scopemap/source"
)

// File associates a path with raw source content in any line-ending convention.
type File struct {
	Path    string `yaml:"path" json:"path"`
	Content string `yaml:"content" json:"content"`
}

// openRegion tracks a start marker awaiting its matching end marker.
type openRegion struct {
	id           string
	seq          int
	markerLine   int
	contentStart int
}

// Extract scans each file for region markers and returns one Region per
// well-formed start/end pair. Regions may nest or be disjoint; overlapping
// regions are preserved as independent entries. Malformed markers (a start
// without a matching end, or a stray end) are skipped. A file without markers
// contributes zero regions. Output order is file order, then start-marker
// appearance order.
func Extract(files []File) []Region {
	var regions []Region
	for _, file := range files {
		text := source.NewText(file.Content)
		regions = append(regions, extractText(file.Path, text)...)
	}
	return regions
}

// extractText runs the marker scanner over a single normalized text. The
// scanner is a two-state machine (outside any region, inside one or more)
// where the inside state carries a stack of open regions to handle nesting.
func extractText(path string, text *source.Text) []Region {
	type completed struct {
		seq    int
		region Region
	}
	var stack []openRegion
	var found []completed

	lineCount := text.LineCount()
	for line := 0; line < lineCount; line++ {
		content := lineContent(text, line)
		name, kind := classifyMarker(content)
		switch kind {
		case markerStart:
			contentStart := text.Len()
			if line+1 < lineCount {
				contentStart, _ = text.LineStart(line + 1)
			}
			stack = append(stack, openRegion{
				id:           name,
				seq:          len(found) + len(stack),
				markerLine:   line,
				contentStart: contentStart,
			})
		case markerEnd:
			if len(stack) == 0 {
				// stray end marker
				continue
			}
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			found = append(found, completed{seq: open.seq, region: closeRegion(path, text, open, line)})
		}
	}
	// unclosed starts at EOF are malformed and dropped with the stack

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].seq < found[j].seq
	})
	regions := make([]Region, 0, len(found))
	for _, item := range found {
		regions = append(regions, item.region)
	}
	return regions
}

// closeRegion builds a Region for an open start marker whose end marker sits
// on endLine. The span covers the content between the marker lines, excluding
// the trailing newline of the last content line.
func closeRegion(path string, text *source.Text, open openRegion, endLine int) Region {
	endOffset := open.contentStart
	if markerStart, err := text.LineStart(endLine); err == nil && markerStart > open.contentStart {
		endOffset = markerStart - 1
	}
	return Region{
		ID:        open.id,
		BufferID:  MakeBufferID(path, open.id),
		Path:      path,
		Span:      source.Span{Start: open.contentStart, End: endOffset},
		StartLine: open.markerLine + 1,
		EndLine:   endLine - 1,
	}
}

// lineContent returns the content of the given 0-based line without its terminator.
func lineContent(text *source.Text, line int) string {
	start, err := text.LineStart(line)
	if err != nil {
		return ""
	}
	end := text.Len()
	if next, err := text.LineStart(line + 1); err == nil {
		end = next - 1
	}
	value, _ := text.Slice(source.Span{Start: start, End: end})
	return value
}

type markerKind int

const (
	markerNone markerKind = iota
	markerStart
	markerEnd
)

// classifyMarker decides whether a line is a region marker. A marker is the
// token #region followed by a single-token name, or #endregion, optionally
// preceded by a line-comment leader.
func classifyMarker(line string) (string, markerKind) {
	s := stripCommentLeader(line)
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return "", markerNone
	}
	switch fields[0] {
	case "#region":
		// a start marker without a name is malformed
		if len(fields) != 2 {
			return "", markerNone
		}
		return fields[1], markerStart
	case "#endregion":
		return "", markerEnd
	}
	return "", markerNone
}

// stripCommentLeader removes leading whitespace and one or more line-comment
// leaders so markers are recognized inside //, --, ' and # style comments.
func stripCommentLeader(line string) string {
	s := strings.TrimSpace(line)
	for {
		switch {
		case strings.HasPrefix(s, "//"):
			s = strings.TrimSpace(s[2:])
		case strings.HasPrefix(s, "--"):
			s = strings.TrimSpace(s[2:])
		case strings.HasPrefix(s, "'"):
			s = strings.TrimSpace(s[1:])
		case strings.HasPrefix(s, "#") &&
			!strings.HasPrefix(s, "#region") && !strings.HasPrefix(s, "#endregion"):
			s = strings.TrimSpace(s[1:])
		default:
			return s
		}
	}
}
