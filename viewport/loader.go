package viewport

import (
	"context"
	"fmt"

	"github.com/viant/afs"
)

// LoadFiles reads the given source locations (local paths or afs URLs) and
// returns them as Files in input order, ready for extraction.
func LoadFiles(ctx context.Context, locations ...string) ([]File, error) {
	fs := afs.New()
	files := make([]File, 0, len(locations))
	for _, location := range locations {
		data, err := fs.DownloadWithURL(ctx, location)
		if err != nil {
			return nil, fmt.Errorf("failed to load source %s: %w", location, err)
		}
		files = append(files, File{Path: location, Content: string(data)})
	}
	return files, nil
}

// ExtractFromLocations loads the given source locations and extracts their regions.
func ExtractFromLocations(ctx context.Context, locations ...string) ([]Region, error) {
	files, err := LoadFiles(ctx, locations...)
	if err != nil {
		return nil, err
	}
	return Extract(files), nil
}
