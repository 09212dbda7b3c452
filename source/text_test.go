package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "lf only unchanged",
			input:    "one\ntwo\nthree",
			expected: "one\ntwo\nthree",
		},
		{
			name:     "crlf rewritten",
			input:    "one\r\ntwo\r\nthree",
			expected: "one\ntwo\nthree",
		},
		{
			name:     "bare cr rewritten",
			input:    "one\rtwo\rthree",
			expected: "one\ntwo\nthree",
		},
		{
			name:     "mixed terminators",
			input:    "one\r\ntwo\rthree\nfour",
			expected: "one\ntwo\nthree\nfour",
		},
		{
			name:     "trailing crlf",
			input:    "one\r\n",
			expected: "one\n",
		},
	}

	for _, tc := range tests {
		actual := Normalize(tc.input)
		assert.Equal(t, tc.expected, actual, tc.name)
		assert.Equal(t, actual, Normalize(actual), tc.name+" idempotent")
	}
}

func TestText_PositionAt(t *testing.T) {
	text := NewText("first\r\nsecond\nthird")

	tests := []struct {
		name     string
		offset   int
		expected Position
		wantErr  bool
	}{
		{
			name:     "start of file",
			offset:   0,
			expected: Position{Line: 0, Column: 0, Offset: 0},
		},
		{
			name:     "within first line",
			offset:   3,
			expected: Position{Line: 0, Column: 3, Offset: 3},
		},
		{
			name:     "newline belongs to its line",
			offset:   5,
			expected: Position{Line: 0, Column: 5, Offset: 5},
		},
		{
			name:     "start of second line",
			offset:   6,
			expected: Position{Line: 1, Column: 0, Offset: 6},
		},
		{
			name:     "end of content",
			offset:   18,
			expected: Position{Line: 2, Column: 5, Offset: 18},
		},
		{
			name:    "negative offset",
			offset:  -1,
			wantErr: true,
		},
		{
			name:    "past end of content",
			offset:  19,
			wantErr: true,
		},
	}

	for _, tc := range tests {
		actual, err := text.PositionAt(tc.offset)
		if tc.wantErr {
			assert.NotNil(t, err, tc.name)
			continue
		}
		if !assert.Nil(t, err, tc.name) {
			continue
		}
		assert.Equal(t, tc.expected, actual, tc.name)
	}
}

func TestText_LineStart(t *testing.T) {
	text := NewText("a\nbb\nccc\n")
	assert.Equal(t, 4, text.LineCount())

	start, err := text.LineStart(2)
	assert.Nil(t, err)
	assert.Equal(t, 5, start)

	_, err = text.LineStart(4)
	assert.NotNil(t, err)
}

func TestText_Slice(t *testing.T) {
	text := NewText("hello\r\nworld")

	value, err := text.Slice(Span{Start: 6, End: 11})
	assert.Nil(t, err)
	assert.Equal(t, "world", value)

	_, err = text.Slice(Span{Start: 6, End: 99})
	assert.NotNil(t, err)
}
