package instrument

import (
	"fmt"

	"github.com/scopemap/scopemap/source"
	"github.com/scopemap/scopemap/viewport"
)

// MapToViewport rewrites every absolute position in the augmentation and
// variable-location maps into coordinates relative to the given viewport.
//
// With a nil viewport the input maps are returned unchanged, so whole,
// unviewported files are instrumented without a special code path. With a
// viewport, points and occurrences whose absolute line falls within
// [viewport.StartLine, viewport.EndLine] (inclusive) are rewritten with
// line' = line - viewport.StartLine; anything outside that range is dropped,
// since a renderer showing only the viewport has nowhere to place it. Columns,
// byte offsets, keys and variable sets are unchanged, and the per-variable
// occurrence order is preserved.
//
// The output maps are newly allocated; inputs are never mutated. Absolute
// offsets are validated against text — a point or span beyond the source
// length indicates a corrupted upstream document and is surfaced as an error
// rather than silently mis-mapped.
func MapToViewport(augmentation AugmentationMap, locations VariableLocationMap, text *source.Text, region *viewport.Region) (AugmentationMap, VariableLocationMap, error) {
	if region == nil {
		return augmentation, locations, nil
	}
	baseLine := region.StartLine

	mappedPoints := make(AugmentationMap)
	for k, point := range augmentation {
		if point.Position.Offset < 0 || point.Position.Offset > text.Len() {
			return nil, nil, fmt.Errorf("instrumentation point %d has offset %d beyond source length %d", k, point.Position.Offset, text.Len())
		}
		if !region.ContainsLine(point.Position.Line) {
			continue
		}
		mapped := *point
		mapped.Variables = append([]string(nil), point.Variables...)
		mapped.Position.Line = point.Position.Line - baseLine
		mappedPoints[k] = &mapped
	}

	mappedLocations := make(VariableLocationMap)
	for name, occurrences := range locations {
		var mapped []VariableOccurrence
		for _, occurrence := range occurrences {
			if occurrence.Span.Start < 0 || occurrence.Span.End > text.Len() || occurrence.Span.Start > occurrence.Span.End {
				return nil, nil, fmt.Errorf("variable %q has span [%d, %d) beyond source length %d", name, occurrence.Span.Start, occurrence.Span.End, text.Len())
			}
			if !region.ContainsLine(occurrence.StartLine) {
				continue
			}
			relocated := occurrence
			relocated.StartLine = occurrence.StartLine - baseLine
			mapped = append(mapped, relocated)
		}
		if len(mapped) > 0 {
			mappedLocations[name] = mapped
		}
	}

	return mappedPoints, mappedLocations, nil
}
