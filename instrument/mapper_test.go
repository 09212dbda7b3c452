package instrument

import (
	"strings"
	"testing"

	"github.com/scopemap/scopemap/source"
	"github.com/scopemap/scopemap/viewport"
	"github.com/stretchr/testify/assert"
)

// twelveLines builds a text with one short statement per line so absolute
// lines 0..11 all exist.
func twelveLines() *source.Text {
	return source.NewText(strings.Repeat("x = 1;\n", 12))
}

func TestMapToViewport_IdentityWithoutViewport(t *testing.T) {
	augmentation := AugmentationMap{
		1: {Key: 1, Position: source.Position{Line: 10, Column: 2, Offset: 70}, Variables: []string{"x"}},
	}
	locations := VariableLocationMap{
		"x": {{Name: "x", Span: source.Span{Start: 70, End: 71}, StartLine: 10}},
	}

	mappedAug, mappedLoc, err := MapToViewport(augmentation, locations, nil, nil)
	assert.Nil(t, err)
	assert.Equal(t, augmentation, mappedAug)
	assert.Equal(t, locations, mappedLoc)
}

func TestMapToViewport_TwoLineViewport(t *testing.T) {
	text := twelveLines()
	region := &viewport.Region{
		ID:        "cell",
		BufferID:  "testFile.cs@cell",
		StartLine: 10,
		EndLine:   11,
	}
	augmentation := AugmentationMap{
		1: {Key: 1, Position: source.Position{Line: 10, Column: 0, Offset: 70}, Variables: []string{"x"}},
		2: {Key: 2, Position: source.Position{Line: 11, Column: 0, Offset: 77}, Variables: []string{"x", "y"}},
	}
	locations := VariableLocationMap{
		"x": {{Name: "x", Span: source.Span{Start: 70, End: 71}, StartLine: 10}},
	}

	mappedAug, mappedLoc, err := MapToViewport(augmentation, locations, text, region)
	assert.Nil(t, err)

	if assert.Equal(t, 2, len(mappedAug)) {
		assert.Equal(t, 0, mappedAug[1].Position.Line)
		assert.Equal(t, 1, mappedAug[2].Position.Line)
		// column and variable set unchanged
		assert.Equal(t, 0, mappedAug[1].Position.Column)
		assert.Equal(t, []string{"x", "y"}, mappedAug[2].Variables)
	}
	if assert.Equal(t, 1, len(mappedLoc["x"])) {
		assert.Equal(t, 0, mappedLoc["x"][0].StartLine)
	}

	// inputs are never mutated
	assert.Equal(t, 10, augmentation[1].Position.Line)
	assert.Equal(t, 10, locations["x"][0].StartLine)
}

func TestMapToViewport_DropsOutsideViewport(t *testing.T) {
	text := twelveLines()
	region := &viewport.Region{StartLine: 5, EndLine: 7}
	augmentation := AugmentationMap{
		1: {Key: 1, Position: source.Position{Line: 4, Offset: 28}},
		2: {Key: 2, Position: source.Position{Line: 5, Offset: 35}},
		3: {Key: 3, Position: source.Position{Line: 7, Offset: 49}}, // inclusive upper bound
		4: {Key: 4, Position: source.Position{Line: 8, Offset: 56}},
	}
	locations := VariableLocationMap{
		"a": {
			{Name: "a", Span: source.Span{Start: 28, End: 29}, StartLine: 4},
			{Name: "a", Span: source.Span{Start: 35, End: 36}, StartLine: 5},
			{Name: "a", Span: source.Span{Start: 42, End: 43}, StartLine: 6},
		},
		"b": {
			{Name: "b", Span: source.Span{Start: 56, End: 57}, StartLine: 8},
		},
	}

	mappedAug, mappedLoc, err := MapToViewport(augmentation, locations, text, region)
	assert.Nil(t, err)

	assert.Equal(t, 2, len(mappedAug))
	assert.Nil(t, mappedAug[1])
	assert.NotNil(t, mappedAug[2])
	assert.NotNil(t, mappedAug[3])
	assert.Nil(t, mappedAug[4])

	// order of surviving occurrences is preserved, fully dropped names vanish
	if assert.Equal(t, 2, len(mappedLoc["a"])) {
		assert.Equal(t, 0, mappedLoc["a"][0].StartLine)
		assert.Equal(t, 1, mappedLoc["a"][1].StartLine)
		assert.Equal(t, 35, mappedLoc["a"][0].Span.Start)
		assert.Equal(t, 42, mappedLoc["a"][1].Span.Start)
	}
	_, ok := mappedLoc["b"]
	assert.False(t, ok)
}

func TestMapToViewport_CorruptOffsetsSurfaceAsErrors(t *testing.T) {
	text := source.NewText("short\n")
	region := &viewport.Region{StartLine: 0, EndLine: 1}

	_, _, err := MapToViewport(AugmentationMap{
		1: {Key: 1, Position: source.Position{Line: 0, Offset: 999}},
	}, nil, text, region)
	assert.NotNil(t, err)

	_, _, err = MapToViewport(nil, VariableLocationMap{
		"x": {{Name: "x", Span: source.Span{Start: 2, End: 999}, StartLine: 0}},
	}, text, region)
	assert.NotNil(t, err)
}

func TestMapToViewport_DuplicateRelativePositionsKeepDistinctKeys(t *testing.T) {
	text := twelveLines()
	region := &viewport.Region{StartLine: 3, EndLine: 4}
	augmentation := AugmentationMap{
		7: {Key: 7, Position: source.Position{Line: 3, Offset: 21}},
		9: {Key: 9, Position: source.Position{Line: 3, Offset: 21}},
	}

	mappedAug, _, err := MapToViewport(augmentation, nil, text, region)
	assert.Nil(t, err)
	assert.Equal(t, 2, len(mappedAug))
	assert.Equal(t, 0, mappedAug[7].Position.Line)
	assert.Equal(t, 0, mappedAug[9].Position.Line)
}
