package viewport

import (
	"strings"
	"testing"

	"github.com/scopemap/scopemap/source"
	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		files    []File
		expected []Region
	}{
		{
			name: "single region",
			files: []File{
				{
					Path:    "testFile.cs",
					Content: "using System;\n//#region test\nvar x = 1;\nConsole.WriteLine(x);\n//#endregion\n",
				},
			},
			expected: []Region{
				{
					ID:        "test",
					BufferID:  "testFile.cs@test",
					Path:      "testFile.cs",
					Span:      source.Span{Start: 29, End: 61},
					StartLine: 2,
					EndLine:   3,
				},
			},
		},
		{
			name: "nested regions preserved as independent entries",
			files: []File{
				{
					Path:    "main.go",
					Content: "#region outer\n#region inner\nx\n#endregion\ny\n#endregion\n",
				},
			},
			expected: []Region{
				{
					ID:        "outer",
					BufferID:  "main.go@outer",
					Path:      "main.go",
					Span:      source.Span{Start: 14, End: 42},
					StartLine: 1,
					EndLine:   4,
				},
				{
					ID:        "inner",
					BufferID:  "main.go@inner",
					Path:      "main.go",
					Span:      source.Span{Start: 28, End: 29},
					StartLine: 2,
					EndLine:   2,
				},
			},
		},
		{
			name: "empty region between adjacent markers",
			files: []File{
				{Path: "a.cs", Content: "#region a\n#endregion\n"},
			},
			expected: []Region{
				{
					ID:        "a",
					BufferID:  "a.cs@a",
					Path:      "a.cs",
					Span:      source.Span{Start: 10, End: 10},
					StartLine: 1,
					EndLine:   0,
				},
			},
		},
		{
			name: "no markers yields no regions",
			files: []File{
				{Path: "plain.go", Content: "package main\n\nfunc main() {}\n"},
			},
			expected: nil,
		},
		{
			name: "start without end is skipped",
			files: []File{
				{Path: "broken.cs", Content: "#region dangling\nvar x = 1;\n"},
			},
			expected: nil,
		},
		{
			name: "stray end marker is ignored",
			files: []File{
				{Path: "stray.cs", Content: "#endregion\nvar x = 1;\n"},
			},
			expected: nil,
		},
		{
			name: "nameless start marker is malformed",
			files: []File{
				{Path: "nameless.cs", Content: "#region\nvar x = 1;\n#endregion\n"},
			},
			expected: nil,
		},
	}

	for _, tc := range tests {
		actual := Extract(tc.files)
		if len(tc.expected) == 0 {
			assert.Empty(t, actual, tc.name)
			continue
		}
		assert.Equal(t, tc.expected, actual, tc.name)
	}
}

func TestExtract_CRLFOffsetsAgainstNormalizedText(t *testing.T) {
	files := []File{
		{Path: "win.cs", Content: "//#region test\r\nvar x = 1;\r\n//#endregion\r\n"},
	}
	actual := Extract(files)
	if !assert.Equal(t, 1, len(actual)) {
		return
	}
	region := actual[0]
	assert.Equal(t, source.Span{Start: 15, End: 25}, region.Span)
	assert.Equal(t, 1, region.StartLine)
	assert.Equal(t, 1, region.EndLine)

	normalized := source.NewText(files[0].Content)
	content, err := normalized.Slice(region.Span)
	assert.Nil(t, err)
	assert.Equal(t, "var x = 1;", content)
}

func TestExtract_FilterByBufferID(t *testing.T) {
	// the region content starts at absolute offset 128: a 113-byte banner
	// line followed by the 15-byte start-marker line
	banner := "// " + strings.Repeat("-", 109) + "\n"
	content := banner + "//#region test\nvar x = 1;\n//#endregion\n"
	regions := Extract([]File{{Path: "testFile.cs", Content: content}})

	matched := FilterActive(regions, "testFile.cs@test")
	if !assert.Equal(t, 1, len(matched)) {
		return
	}
	assert.Equal(t, 128, matched[0].Span.Start)
	assert.Equal(t, "test", matched[0].ID)
}

func TestExtract_MultipleFilesKeepFileOrder(t *testing.T) {
	files := []File{
		{Path: "b.cs", Content: "#region two\nx\n#endregion\n"},
		{Path: "a.cs", Content: "#region one\ny\n#endregion\n"},
	}
	actual := Extract(files)
	if !assert.Equal(t, 2, len(actual)) {
		return
	}
	assert.Equal(t, "b.cs@two", actual[0].BufferID)
	assert.Equal(t, "a.cs@one", actual[1].BufferID)
}
