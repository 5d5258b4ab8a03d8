package taxonomy

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
		{name: "lowercases", input: "Python", expected: "python"},
		{name: "trims whitespace", input: "  Go  ", expected: "go"},
		{name: "collapses internal whitespace", input: "machine   learning", expected: "machine learning"},
		{name: "tabs and newlines collapse", input: "data\t\nengineering", expected: "data engineering"},
		{name: "empty string", input: "", expected: ""},
		{name: "whitespace only", input: "   ", expected: ""},
		{name: "already normalized", input: "react", expected: "react"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"  Node.JS ", "Machine   Learning", "C++", "", "gO LaNg"}
	for _, input := range inputs {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once), "Normalize should be idempotent for %q", input)
	}
}
