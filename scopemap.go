package scopemap

import (
	"context"

	"github.com/scopemap/scopemap/collector"
	"github.com/scopemap/scopemap/instrument"
	"github.com/scopemap/scopemap/viewport"
)

// Service wires the full pipeline: line-ending normalization, region
// extraction, viewport filtering, instrumentation collection and viewport
// remapping. A Service holds no per-request state and is safe for concurrent
// use with different inputs.
type Service struct{}

// New creates a Service.
func New() *Service {
	return &Service{}
}

// Request names the sources to instrument and the buffer whose viewport
// coordinate frame applies. An ActiveBufferID that matches no region is not
// an error: instrumentation degrades to absolute (unviewported) coordinates.
type Request struct {
	Files          []viewport.File
	ActiveBufferID string
}

// FileInstrumentation carries the (possibly remapped) maps for one file.
type FileInstrumentation struct {
	Path         string
	BufferID     string // active buffer id when a viewport applied, else the path
	Viewport     *viewport.Region
	Augmentation instrument.AugmentationMap
	Locations    instrument.VariableLocationMap
}

// Result is the outcome of one Instrument call.
type Result struct {
	Regions []viewport.Region
	Files   []*FileInstrumentation
}

// Instrument runs the pipeline over the request files. Each file is
// normalized, scanned for regions, collected, and remapped against the active
// viewport when one of its regions matches the active buffer id.
func (s *Service) Instrument(ctx context.Context, request *Request) (*Result, error) {
	regions := viewport.Extract(request.Files)
	active := viewport.ActiveRegion(regions, request.ActiveBufferID)

	result := &Result{Regions: regions}
	for _, file := range request.Files {
		language, err := collector.LanguageFor(file.Path)
		if err != nil {
			return nil, err
		}
		c := collector.New(collector.WithLanguage(language))
		doc, err := c.Parse(ctx, file.Path, file.Content)
		if err != nil {
			return nil, err
		}
		augmentation, locations, err := c.Collect(doc)
		if err != nil {
			doc.Close()
			return nil, err
		}

		var applied *viewport.Region
		bufferID := file.Path
		if active != nil && active.Path == file.Path {
			applied = active
			bufferID = active.BufferID
		}
		mappedAug, mappedLoc, err := instrument.MapToViewport(augmentation, locations, doc.Source, applied)
		doc.Close()
		if err != nil {
			return nil, err
		}
		result.Files = append(result.Files, &FileInstrumentation{
			Path:         file.Path,
			BufferID:     bufferID,
			Viewport:     applied,
			Augmentation: mappedAug,
			Locations:    mappedLoc,
		})
	}
	return result, nil
}

// InstrumentLocations loads the given source locations (local paths or afs
// URLs) and instruments them.
func (s *Service) InstrumentLocations(ctx context.Context, activeBufferID string, locations ...string) (*Result, error) {
	files, err := viewport.LoadFiles(ctx, locations...)
	if err != nil {
		return nil, err
	}
	return s.Instrument(ctx, &Request{Files: files, ActiveBufferID: activeBufferID})
}
