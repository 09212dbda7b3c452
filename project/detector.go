package project

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/viant/afs"
	"golang.org/x/mod/modfile"
)

// Project describes the detected project a source file belongs to. Buffer ids
// are derived from RelativePath so they stay stable across machines.
type Project struct {
	RootPath     string // Absolute path to the project root directory
	Type         string // Type of project (go, csharp, javascript)
	Name         string // Project name (module path for Go projects)
	RelativePath string // Path from project root to the inspected file
}

// Detector identifies project root folders so file paths can be made
// project-relative before they are used as buffer identifiers.
type Detector struct {
	markers []marker
}

type marker struct {
	pattern string
	kind    string
}

// New creates a project detector with the default root markers, checked in
// order so a language marker wins over a bare VCS marker.
func New() *Detector {
	return &Detector{
		markers: []marker{
			{pattern: "go.mod", kind: "go"},
			{pattern: "*.csproj", kind: "csharp"},
			{pattern: "*.sln", kind: "csharp"},
			{pattern: "package.json", kind: "javascript"},
			{pattern: ".git", kind: "unknown"},
		},
	}
}

// DetectProject identifies the project root for the given file path.
func (d *Detector) DetectProject(ctx context.Context, filePath string) (*Project, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, err
	}
	startDir := absPath
	info, err := os.Stat(absPath)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		startDir = filepath.Dir(absPath)
	}

	rootPath, projectType := d.findProjectRoot(startDir)
	result := &Project{
		Type:     "unknown",
		RootPath: absPath,
	}
	if rootPath != "" {
		result.RootPath = rootPath
		result.Type = projectType
	}

	relPath, err := filepath.Rel(result.RootPath, absPath)
	if err != nil {
		relPath = filepath.Base(absPath)
	}
	result.RelativePath = filepath.ToSlash(relPath)

	if result.Type == "go" {
		if name, err := d.goModuleName(ctx, result.RootPath); err == nil {
			result.Name = name
		}
	}
	if result.Name == "" {
		result.Name = filepath.Base(result.RootPath)
	}
	return result, nil
}

// BufferPath returns the project-relative path of filePath, falling back to
// the input when no project root is found.
func (d *Detector) BufferPath(ctx context.Context, filePath string) string {
	detected, err := d.DetectProject(ctx, filePath)
	if err != nil || detected.RelativePath == "." {
		return filepath.ToSlash(filePath)
	}
	return detected.RelativePath
}

// findProjectRoot searches up the directory tree for project markers.
func (d *Detector) findProjectRoot(startDir string) (string, string) {
	dir := startDir
	for {
		for _, candidate := range d.markers {
			matches, err := filepath.Glob(filepath.Join(dir, candidate.pattern))
			if err != nil || len(matches) == 0 {
				continue
			}
			return dir, candidate.kind
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ""
		}
		dir = parent
	}
}

// goModuleName reads the module path from the root go.mod.
func (d *Detector) goModuleName(ctx context.Context, rootPath string) (string, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, filepath.Join(rootPath, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod in %s: %w", rootPath, err)
	}
	parsed, err := modfile.Parse("go.mod", data, nil)
	if err != nil {
		return "", fmt.Errorf("failed to parse go.mod in %s: %w", rootPath, err)
	}
	if parsed.Module == nil {
		return "", fmt.Errorf("go.mod in %s has no module directive", rootPath)
	}
	return parsed.Module.Mod.Path, nil
}
