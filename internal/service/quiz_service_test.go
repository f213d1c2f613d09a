package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"quiz-forge/internal/config"
	"quiz-forge/internal/domain"
	"quiz-forge/internal/dto"
)

// MockCache is a mock type for the domain.Cache interface
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func testConfig() *config.Config {
	return &config.Config{
		Generator: config.GeneratorConfig{
			MinQuestions:        7,
			MaxQuestions:        20,
			MultipleChoiceRatio: 0.6,
			FalseStatementRatio: 0.34,
			QuizCacheTTL:        time.Hour,
		},
	}
}

const lessonContent = "Photosynthesis is the process plants use to convert sunlight into chemical energy. " +
	"Plants release oxygen during photosynthesis."

func boolPtr(b bool) *bool { return &b }

func TestGenerateQuizNegativeCount(t *testing.T) {
	svc := NewQuizService(testConfig(), nil, nil)

	_, err := svc.GenerateQuiz(context.Background(), &dto.GenerateQuizRequest{
		Content:      lessonContent,
		NumQuestions: -1,
	})
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrInvalidInput, domainErr.Code)
}

func TestGenerateQuizEmptyContent(t *testing.T) {
	mockCache := new(MockCache)
	svc := NewQuizService(testConfig(), mockCache, nil)

	resp, err := svc.GenerateQuiz(context.Background(), &dto.GenerateQuizRequest{
		Content:      "   ",
		NumQuestions: 5,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Questions)
	assert.Equal(t, "empty_content", resp.Reason)
	assert.NotEmpty(t, resp.QuizID)
	mockCache.AssertNotCalled(t, "Get")
	mockCache.AssertNotCalled(t, "Set")
}

func TestGenerateQuizNoFacts(t *testing.T) {
	svc := NewQuizService(testConfig(), nil, nil)

	resp, err := svc.GenerateQuiz(context.Background(), &dto.GenerateQuizRequest{
		Content:        "word",
		NumQuestions:   5,
		UseEnhancement: boolPtr(false),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Questions)
	assert.Equal(t, 0, resp.Count)
	assert.Equal(t, "no_facts", resp.Reason)
}

func TestGenerateQuizSuccess(t *testing.T) {
	mockCache := new(MockCache)
	mockCache.On("Get", mock.Anything, mock.Anything).Return("", error(domain.ErrCacheMiss)).Once()
	mockCache.On("Set", mock.Anything, mock.Anything, mock.Anything, time.Hour).Return(nil).Once()

	svc := NewQuizService(testConfig(), mockCache, nil)

	resp, err := svc.GenerateQuiz(context.Background(), &dto.GenerateQuizRequest{
		Content:        lessonContent,
		NumQuestions:   5,
		UseEnhancement: boolPtr(false),
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Questions)
	assert.Equal(t, len(resp.Questions), resp.Count)
	assert.Empty(t, resp.Reason)
	assert.NotEmpty(t, resp.QuizID)

	for _, q := range resp.Questions {
		assert.NotEmpty(t, q.ID)
		assert.NotEmpty(t, q.Question)
		assert.GreaterOrEqual(t, q.CorrectIndex, 0)
		assert.Less(t, q.CorrectIndex, len(q.Options))
	}

	mockCache.AssertExpectations(t)
}

func TestGenerateQuizCacheHit(t *testing.T) {
	cached := &dto.GenerateQuizResponse{
		QuizID: "01HCACHED",
		Questions: []dto.QuestionResponse{
			{ID: "q1", Type: "truefalse", Question: "True or False: cached?", Options: []string{"True", "False"}},
		},
		Count: 1,
	}
	encoded, err := json.Marshal(cached)
	require.NoError(t, err)

	mockCache := new(MockCache)
	mockCache.On("Get", mock.Anything, mock.Anything).Return(string(encoded), nil).Once()

	svc := NewQuizService(testConfig(), mockCache, nil)

	resp, err := svc.GenerateQuiz(context.Background(), &dto.GenerateQuizRequest{
		Content:        lessonContent,
		NumQuestions:   5,
		UseEnhancement: boolPtr(false),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Questions, 1)
	assert.Equal(t, "q1", resp.Questions[0].ID)

	// Cached questions are shared, but every request gets a fresh quiz ID.
	assert.NotEmpty(t, resp.QuizID)
	assert.NotEqual(t, "01HCACHED", resp.QuizID)

	mockCache.AssertExpectations(t)
	mockCache.AssertNotCalled(t, "Set")
}

func TestGenerateQuizCorruptCacheEntry(t *testing.T) {
	mockCache := new(MockCache)
	mockCache.On("Get", mock.Anything, mock.Anything).Return("not json", nil).Once()
	mockCache.On("Delete", mock.Anything, mock.Anything).Return(nil).Once()
	mockCache.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	svc := NewQuizService(testConfig(), mockCache, nil)

	resp, err := svc.GenerateQuiz(context.Background(), &dto.GenerateQuizRequest{
		Content:        lessonContent,
		NumQuestions:   5,
		UseEnhancement: boolPtr(false),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Questions)
	mockCache.AssertExpectations(t)
}

func TestGenerateQuizCacheReadFailureIsNonFatal(t *testing.T) {
	mockCache := new(MockCache)
	mockCache.On("Get", mock.Anything, mock.Anything).Return("", errors.New("redis down")).Once()
	mockCache.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("redis down")).Once()

	svc := NewQuizService(testConfig(), mockCache, nil)

	resp, err := svc.GenerateQuiz(context.Background(), &dto.GenerateQuizRequest{
		Content:        lessonContent,
		NumQuestions:   5,
		UseEnhancement: boolPtr(false),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Questions)
	mockCache.AssertExpectations(t)
}

func TestScoreQuiz(t *testing.T) {
	svc := NewQuizService(testConfig(), nil, nil)

	questions := []dto.QuestionResponse{
		{ID: "q1", CorrectIndex: 2},
		{ID: "q2", CorrectIndex: 0},
		{ID: "q3", CorrectIndex: 1},
	}

	t.Run("counts correct answers", func(t *testing.T) {
		resp, err := svc.ScoreQuiz(&dto.ScoreQuizRequest{
			Questions: questions,
			Answers: []dto.AnswerSubmission{
				{QuestionID: "q1", AnswerIndex: 2},
				{QuestionID: "q2", AnswerIndex: 1},
				{QuestionID: "q3", AnswerIndex: 1},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, 2, resp.CorrectCount)
		assert.Equal(t, 3, resp.TotalQuestions)
		assert.InDelta(t, 66.67, resp.Score, 0.01)
	})

	t.Run("unanswered questions count as wrong", func(t *testing.T) {
		resp, err := svc.ScoreQuiz(&dto.ScoreQuizRequest{
			Questions: questions,
			Answers:   []dto.AnswerSubmission{{QuestionID: "q1", AnswerIndex: 2}},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, resp.CorrectCount)
	})

	t.Run("empty questions rejected", func(t *testing.T) {
		_, err := svc.ScoreQuiz(&dto.ScoreQuizRequest{})
		assert.Error(t, err)
	})
}
