package quizgen

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quiz-forge/internal/domain"
)

// stubEmbedder serves fixed vectors per text, or fails every call.
type stubEmbedder struct {
	vectors map[string][]float32
	fail    bool
}

func (s *stubEmbedder) Generate(_ context.Context, text string) ([]float32, error) {
	if s.fail {
		return nil, errors.New("embedding backend down")
	}
	if vec, ok := s.vectors[text]; ok {
		return vec, nil
	}
	return []float32{1, 0}, nil
}

func photosynthesisFacts() []domain.Fact {
	return []domain.Fact{
		{
			Kind:     domain.FactKindDefinition,
			Subject:  "Photosynthesis",
			Answer:   "the process plants use to convert sunlight into chemical energy",
			Category: domain.CategoryDefinition,
		},
		{
			Kind:     domain.FactKindProcess,
			Subject:  "Plants",
			Answer:   "oxygen during the photosynthesis cycle",
			Category: domain.CategoryOutput,
		},
	}
}

func isGenericDistractor(text string) bool {
	for _, g := range genericDistractors {
		if g == text {
			return true
		}
	}
	return false
}

func TestSynthesizeAlwaysReturnsThree(t *testing.T) {
	s := NewSynthesizer(nil)
	distractors := s.Synthesize(context.Background(), "the correct answer text here",
		domain.CategoryDefinition, "Subject", nil, nil, nil)
	assert.Len(t, distractors, 3)
}

func TestSynthesizeDistinctFromCorrectAnswer(t *testing.T) {
	s := NewSynthesizer(nil)
	correct := "the process plants use to convert sunlight into chemical energy"
	distractors := s.Synthesize(context.Background(), correct,
		domain.CategoryDefinition, "Photosynthesis", photosynthesisFacts(), nil, nil)

	require.Len(t, distractors, 3)
	seen := make(map[string]struct{})
	for _, d := range distractors {
		key := strings.ToLower(d)
		assert.NotEqual(t, strings.ToLower(correct), key)
		_, dup := seen[key]
		assert.False(t, dup, "distractors must be pairwise distinct")
		seen[key] = struct{}{}
	}
}

func TestSynthesizePrefersCategoryMatchedFacts(t *testing.T) {
	facts := []domain.Fact{
		{Subject: "Plants", Answer: "oxygen during the photosynthesis cycle", Category: domain.CategoryOutput},
		{Subject: "Combustion", Answer: "carbon dioxide and trapped water vapor", Category: domain.CategoryOutput},
		{Subject: "Muscles", Answer: "glucose for immediate energy production", Category: domain.CategoryInput},
	}

	s := NewSynthesizer(nil)
	distractors := s.Synthesize(context.Background(), "heat released into the surrounding air",
		domain.CategoryOutput, "Fire", facts, nil, nil)

	require.Len(t, distractors, 3)
	assert.Equal(t, "oxygen during the photosynthesis cycle", distractors[0])
	assert.Equal(t, "carbon dioxide and trapped water vapor", distractors[1])
	assert.NotContains(t, distractors, "glucose for immediate energy production",
		"input facts must not serve as output distractors")
}

func TestSynthesizeSkipsSameSubjectFacts(t *testing.T) {
	facts := []domain.Fact{
		{Subject: "Photosynthesis", Answer: "an alternative true description of the same subject", Category: domain.CategoryDefinition},
	}

	s := NewSynthesizer(nil)
	distractors := s.Synthesize(context.Background(), "the correct definition of photosynthesis",
		domain.CategoryDefinition, "Photosynthesis", facts, nil, nil)

	require.Len(t, distractors, 3)
	assert.NotContains(t, distractors, "an alternative true description of the same subject")
}

func TestSynthesizeDefinitionBorrowsCrossCategory(t *testing.T) {
	s := NewSynthesizer(nil)
	correct := "the process plants use to convert sunlight into chemical energy"
	distractors := s.Synthesize(context.Background(), correct,
		domain.CategoryDefinition, "Photosynthesis", photosynthesisFacts(), nil, nil)

	require.Len(t, distractors, 3)
	assert.Equal(t, "oxygen during the photosynthesis cycle", distractors[0])
	for _, d := range distractors[1:] {
		assert.True(t, isGenericDistractor(d), "remaining slots fill from the generic pool, got %q", d)
	}
}

func TestSynthesizeMinesClauses(t *testing.T) {
	sentences := []string{
		"Leaves appear green because chlorophyll reflects green wavelengths of visible light.",
	}
	s := NewSynthesizer(nil)
	distractors := s.Synthesize(context.Background(), "the correct answer for this item",
		domain.CategoryProcess, "Subject", nil, sentences, nil)

	require.Len(t, distractors, 3)
	assert.Equal(t, "chlorophyll reflects green wavelengths of visible light", distractors[0])
}

func TestSynthesizeFallsBackWhenEmbedderFails(t *testing.T) {
	s := NewSynthesizer(&stubEmbedder{fail: true})
	correct := "the process plants use to convert sunlight into chemical energy"
	distractors := s.Synthesize(context.Background(), correct,
		domain.CategoryDefinition, "Photosynthesis", photosynthesisFacts(), nil, nil)

	require.Len(t, distractors, 3)
	assert.Equal(t, "oxygen during the photosynthesis cycle", distractors[0])
}

func TestSynthesizeReranksBySimilarity(t *testing.T) {
	correct := "heat released into the surrounding air"
	preferred := genericDistractors[4]

	vectors := map[string][]float32{
		correct:   {1, 0},
		preferred: {0.5, 0.8660254},
	}
	s := NewSynthesizer(&stubEmbedder{vectors: vectors})

	distractors := s.Synthesize(context.Background(), correct,
		domain.CategoryOutput, "Fire", nil, nil, nil)

	require.Len(t, distractors, 3)
	// The candidate sitting at the target similarity band wins the first
	// slot; every other candidate embeds identically to the correct
	// answer and ranks behind it.
	assert.Equal(t, preferred, distractors[0])
}
