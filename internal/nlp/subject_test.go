package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanSubject(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "strips leading article", input: "The human body", expected: "Human body"},
		{name: "strips indefinite article", input: "a mitochondrion", expected: "Mitochondrion"},
		{name: "strips trailing punctuation", input: "Photosynthesis,", expected: "Photosynthesis"},
		{name: "capitalizes first letter", input: "photosynthesis", expected: "Photosynthesis"},
		{name: "already clean", input: "Cellular respiration", expected: "Cellular respiration"},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanSubject(tt.input))
		})
	}
}

func TestIsValidSubject(t *testing.T) {
	valid := []string{
		"Photosynthesis",
		"Cellular respiration",
		"DNA",
		"Human body",
	}
	for _, s := range valid {
		assert.True(t, IsValidSubject(s), "expected %q to be valid", s)
	}

	invalid := []string{
		"",
		"X",
		"It",
		"They",
		"This",
		"The",
		"And",
		"in the cell",
		"Plants and",
		"Water of",
		"12345",
		"A subject name that runs far past the forty character limit",
	}
	for _, s := range invalid {
		assert.False(t, IsValidSubject(s), "expected %q to be invalid", s)
	}
}

func TestStartsWithPronoun(t *testing.T) {
	assert.True(t, startsWithPronoun("it converts light into energy"))
	assert.True(t, startsWithPronoun("This is the main reason"))
	assert.False(t, startsWithPronoun("the process plants use"))
	assert.False(t, startsWithPronoun("oxygen during photosynthesis"))
	assert.False(t, startsWithPronoun(""))
}
