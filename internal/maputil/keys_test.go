package maputil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortedKeys(t *testing.T) {
	tests := []struct {
		name     string
		input    map[string]int
		expected []string
	}{
		{
			name:     "unsorted input",
			input:    map[string]int{"put": 1, "delete": 2, "get": 3},
			expected: []string{"delete", "get", "put"},
		},
		{
			name:     "single key",
			input:    map[string]int{"post": 1},
			expected: []string{"post"},
		},
		{
			name:     "empty map",
			input:    map[string]int{},
			expected: []string{},
		},
		{
			name:     "nil map",
			input:    nil,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SortedKeys(tt.input))
		})
	}
}

func TestSortedKeys_IntKeys(t *testing.T) {
	got := SortedKeys(map[int]string{3: "c", 1: "a", 2: "b"})
	assert.Equal(t, []int{1, 2, 3}, got)
}
