package instrument

import (
	"testing"

	"github.com/scopemap/scopemap/source"
	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
)

func TestNewReport_OrdersPointsBySourcePosition(t *testing.T) {
	augmentation := AugmentationMap{
		5: {Key: 5, Position: source.Position{Line: 2, Offset: 40}},
		3: {Key: 3, Position: source.Position{Line: 0, Offset: 10}},
		8: {Key: 8, Position: source.Position{Line: 1, Offset: 25}},
	}
	report := NewReport("f.cs@r", augmentation, nil)

	assert.Equal(t, "f.cs@r", report.BufferID)
	if assert.Equal(t, 3, len(report.Points)) {
		assert.Equal(t, PointKey(3), report.Points[0].Key)
		assert.Equal(t, PointKey(8), report.Points[1].Key)
		assert.Equal(t, PointKey(5), report.Points[2].Key)
	}
}

func TestYAMLEmitter_Emit(t *testing.T) {
	augmentation := AugmentationMap{
		1: {Key: 1, Position: source.Position{Line: 0, Column: 4, Offset: 4}, Variables: []string{"x"}},
	}
	locations := VariableLocationMap{
		"x": {{Name: "x", Span: source.Span{Start: 4, End: 5}, StartLine: 0}},
	}

	emitter := &YAMLEmitter{BufferID: "main.go@cell"}
	data, err := emitter.Emit(augmentation, locations)
	assert.Nil(t, err)

	var decoded Report
	assert.Nil(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, "main.go@cell", decoded.BufferID)
	if assert.Equal(t, 1, len(decoded.Points)) {
		assert.Equal(t, []string{"x"}, decoded.Points[0].Variables)
		assert.Equal(t, 4, decoded.Points[0].Position.Column)
	}
	assert.Equal(t, 1, len(decoded.Variables["x"]))
}

func TestNewPointKey_Deterministic(t *testing.T) {
	a := NewPointKey("main.go", source.Span{Start: 10, End: 20})
	b := NewPointKey("main.go", source.Span{Start: 10, End: 20})
	c := NewPointKey("main.go", source.Span{Start: 10, End: 21})
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
