// Package models contains domain models for promptverse.
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// PromptSuite is a test suite for prompt model helpers.
type PromptSuite struct {
	suite.Suite
}

func TestPromptSuite(t *testing.T) {
	suite.Run(t, new(PromptSuite))
}

// TestCategoryConstants tests category string values.
func (s *PromptSuite) TestCategoryConstants() {
	s.Equal(Category("Coding"), CategoryCoding)
	s.Equal(Category("Web Development"), CategoryWebDev)
	s.Equal(Category("Video Generation"), CategoryVideo)
	s.Equal("All", CategoryAll)
	s.Len(Categories, 10)
}

// TestCategoryValid_TableDriven tests category membership.
func (s *PromptSuite) TestCategoryValid_TableDriven() {
	tests := []struct {
		name     string
		category Category
		expected bool
	}{
		{name: "coding", category: CategoryCoding, expected: true},
		{name: "3d", category: Category3D, expected: true},
		{name: "all sentinel is not a category", category: Category(CategoryAll), expected: false},
		{name: "wrong case", category: Category("coding"), expected: false},
		{name: "empty", category: Category(""), expected: false},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.Equal(tt.expected, tt.category.Valid())
		})
	}
}

// TestMediaModelFor tests category to model binding.
func (s *PromptSuite) TestMediaModelFor() {
	s.Equal(ModelVideo, MediaModelFor(CategoryVideo))
	s.Equal(ModelImage, MediaModelFor(CategoryImage))
	s.Equal(ModelImage, MediaModelFor(Category3D))
	s.Equal(ModelImage, MediaModelFor(CategoryCartoon))
	s.Empty(MediaModelFor(CategoryBusiness))
}

// TestJSONStringArray tests JSONStringArray scanning.
func TestJSONStringArray(t *testing.T) {
	tests := []struct {
		input    interface{}
		name     string
		expected JSONStringArray
		wantErr  bool
	}{
		{
			name:     "nil input",
			input:    nil,
			expected: nil,
		},
		{
			name:     "empty string",
			input:    "",
			expected: nil,
		},
		{
			name:     "json array string",
			input:    `["React", "Frontend"]`,
			expected: JSONStringArray{"React", "Frontend"},
		},
		{
			name:     "json array bytes",
			input:    []byte(`["a", "b", "c"]`),
			expected: JSONStringArray{"a", "b", "c"},
		},
		{
			name:    "malformed json",
			input:   `["a"`,
			wantErr: true,
		},
		{
			name:    "unsupported type",
			input:   42,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var arr JSONStringArray
			err := arr.Scan(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, arr)
		})
	}
}

func TestJSONStringArray_Value(t *testing.T) {
	v, err := JSONStringArray{"Community", "SQL"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["Community","SQL"]`, v)

	v, err = JSONStringArray(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}
