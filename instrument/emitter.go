package instrument

import (
	"encoding/json"
	"sort"

	"gopkg.in/yaml.v3"
)

// Report is the serialized form of a collected (and possibly remapped)
// instrumentation result, consumed by the execution runtime.
type Report struct {
	BufferID  string                          `yaml:"bufferId,omitempty" json:"bufferId,omitempty"`
	Points    []*InstrumentationPoint         `yaml:"points" json:"points"`
	Variables map[string][]VariableOccurrence `yaml:"variables,omitempty" json:"variables,omitempty"`
}

// Emitter serializes instrumentation maps for a downstream consumer.
type Emitter interface {
	Emit(augmentation AugmentationMap, locations VariableLocationMap) ([]byte, error)
}

// NewReport flattens the two maps into a Report with points ordered by
// source position, so equal inputs serialize identically.
func NewReport(bufferID string, augmentation AugmentationMap, locations VariableLocationMap) *Report {
	points := make([]*InstrumentationPoint, 0, len(augmentation))
	for _, point := range augmentation {
		points = append(points, point)
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Position.Offset != points[j].Position.Offset {
			return points[i].Position.Offset < points[j].Position.Offset
		}
		return points[i].Key < points[j].Key
	})
	return &Report{
		BufferID:  bufferID,
		Points:    points,
		Variables: locations,
	}
}

// YAMLEmitter emits instrumentation maps as YAML.
type YAMLEmitter struct {
	BufferID string
}

func (e *YAMLEmitter) Emit(augmentation AugmentationMap, locations VariableLocationMap) ([]byte, error) {
	return yaml.Marshal(NewReport(e.BufferID, augmentation, locations))
}

// JSONEmitter emits instrumentation maps as JSON.
type JSONEmitter struct {
	BufferID string
}

func (e *JSONEmitter) Emit(augmentation AugmentationMap, locations VariableLocationMap) ([]byte, error) {
	return json.Marshal(NewReport(e.BufferID, augmentation, locations))
}
