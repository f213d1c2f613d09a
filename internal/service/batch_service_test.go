package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchGenerateAll(t *testing.T) {
	svc := NewBatchService(NewQuizService(testConfig(), nil, nil))

	items := []BatchItem{
		{ID: "lesson-1", Content: lessonContent, NumQuestions: 5},
		{ID: "lesson-2", Content: "word", NumQuestions: 5},
		{ID: "lesson-3", Content: lessonContent, NumQuestions: -1},
	}

	results := svc.GenerateAll(context.Background(), items, false)
	require.Len(t, results, 3)

	// Results keep the input order regardless of completion order.
	assert.Equal(t, "lesson-1", results[0].ID)
	assert.Equal(t, "lesson-2", results[1].ID)
	assert.Equal(t, "lesson-3", results[2].ID)

	require.NoError(t, results[0].Err)
	assert.NotEmpty(t, results[0].Response.Questions)

	require.NoError(t, results[1].Err)
	assert.Equal(t, "no_facts", results[1].Response.Reason)

	// A contract violation fails its own item only.
	assert.Error(t, results[2].Err)
}

func TestBatchGenerateAllEmpty(t *testing.T) {
	svc := NewBatchService(NewQuizService(testConfig(), nil, nil))
	results := svc.GenerateAll(context.Background(), nil, false)
	assert.Empty(t, results)
}
