package instrument

import (
	"fmt"

	"github.com/minio/highwayhash"
	"github.com/scopemap/scopemap/source"
)

var key = []byte("0123456789ABCDEF0123456789ABCDEF")

// PointKey is an opaque program-location identifier. Keys are deterministic:
// the same path and span always produce the same key.
type PointKey uint64

// NewPointKey derives a key for the statement at the given span of a file.
func NewPointKey(path string, span source.Span) PointKey {
	hash, err := highwayhash.New64(key)
	if err != nil {
		// the key constant is a valid 32-byte highwayhash key
		panic(err)
	}
	_, _ = fmt.Fprintf(hash, "%s:%d:%d", path, span.Start, span.End)
	return PointKey(hash.Sum64())
}

// InstrumentationPoint is a program location annotated with its file position
// and the variables in lexical scope there. Immutable after collection.
type InstrumentationPoint struct {
	Key       PointKey        `yaml:"key" json:"key"`
	Position  source.Position `yaml:"position" json:"position"`
	Variables []string        `yaml:"variables,omitempty" json:"variables,omitempty"` // sorted
}

// AugmentationMap maps program-location keys to instrumentation points.
type AugmentationMap map[PointKey]*InstrumentationPoint

// Clone returns a deep copy of the map; points themselves are copied so the
// result shares no state with the receiver.
func (m AugmentationMap) Clone() AugmentationMap {
	cloned := make(AugmentationMap, len(m))
	for k, point := range m {
		copied := *point
		copied.Variables = append([]string(nil), point.Variables...)
		cloned[k] = &copied
	}
	return cloned
}
