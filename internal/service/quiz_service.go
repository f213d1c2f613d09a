package service

import (
	"context"
	"encoding/json"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"quiz-forge/internal/cache"
	"quiz-forge/internal/config"
	"quiz-forge/internal/domain"
	"quiz-forge/internal/dto"
	"quiz-forge/internal/logger"
	"quiz-forge/internal/quizgen"
	"quiz-forge/internal/util"
)

// QuizService defines the interface for quiz generation operations
type QuizService interface {
	GenerateQuiz(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error)
	ScoreQuiz(req *dto.ScoreQuizRequest) (*dto.ScoreQuizResponse, error)
}

// quizService implements QuizService
type quizService struct {
	cfg      *config.Config
	cache    domain.Cache            // optional, nil disables quiz caching
	embedder domain.EmbeddingService // optional, nil disables re-ranking
	newRand  func() *rand.Rand
}

// NewQuizService creates a new instance of quizService. Both cache and
// embedder may be nil; the rule-based pipeline carries the service on its
// own.
func NewQuizService(cfg *config.Config, quizCache domain.Cache, embedder domain.EmbeddingService) QuizService {
	return &quizService{
		cfg:      cfg,
		cache:    quizCache,
		embedder: embedder,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}

// GenerateQuiz implements QuizService. Empty content yields an empty
// quiz, and so does content with no extractable facts; neither is an
// error. Only call-contract violations (a negative question count) fail.
func (s *quizService) GenerateQuiz(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error) {
	if req.NumQuestions < 0 {
		return nil, domain.NewInvalidInputError("num_questions must not be negative")
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return &dto.GenerateQuizResponse{
			QuizID:    util.NewULID(),
			Questions: []dto.QuestionResponse{},
			Reason:    "empty_content",
		}, nil
	}

	enhance := req.Enhancement()
	cacheKey := cache.GenerateCacheKey("quiz", "generated", util.HashString(content),
		strconv.Itoa(req.NumQuestions), strconv.FormatBool(enhance))

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
			var resp dto.GenerateQuizResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &resp); unmarshalErr == nil {
				logger.Get().Info("QuizService: quiz cache hit",
					zap.String("cache_key", cacheKey))
				// Questions are shared across hits, quiz identity is not.
				// Each request gets its own quiz ID.
				resp.QuizID = util.NewULID()
				return &resp, nil
			}
			_ = s.cache.Delete(ctx, cacheKey)
		} else if err != domain.ErrCacheMiss {
			logger.Get().Warn("QuizService: quiz cache read failed",
				zap.Error(domain.NewError(domain.ErrCacheFailure, "quiz cache read failed", err)),
				zap.String("cache_key", cacheKey))
		}
	}

	var embedder domain.EmbeddingService
	if enhance {
		embedder = s.embedder
	}
	assembler := quizgen.NewAssembler(quizgen.AssemblerConfig{
		MinQuestions:        s.cfg.Generator.MinQuestions,
		MaxQuestions:        s.cfg.Generator.MaxQuestions,
		MultipleChoiceRatio: s.cfg.Generator.MultipleChoiceRatio,
		FalseStatementRatio: s.cfg.Generator.FalseStatementRatio,
		UseTagger:           enhance && s.cfg.NLP.EnableTagger,
	}, quizgen.NewSynthesizer(embedder), s.newRand())

	quiz := domain.Quiz{
		ID:        util.NewULID(),
		Questions: assembler.Assemble(ctx, content, req.NumQuestions),
	}

	resp := &dto.GenerateQuizResponse{
		QuizID:    quiz.ID,
		Questions: toQuestionResponses(quiz.Questions),
		Count:     len(quiz.Questions),
	}
	if len(quiz.Questions) == 0 {
		resp.Reason = "no_facts"
	}

	if s.cache != nil && len(quiz.Questions) > 0 {
		if encoded, err := json.Marshal(resp); err == nil {
			if err := s.cache.Set(ctx, cacheKey, string(encoded), s.cfg.Generator.QuizCacheTTL); err != nil {
				logger.Get().Warn("QuizService: quiz cache write failed",
					zap.Error(domain.NewError(domain.ErrCacheFailure, "quiz cache write failed", err)),
					zap.String("cache_key", cacheKey))
			}
		}
	}

	return resp, nil
}

// ScoreQuiz implements QuizService. Unanswered questions count as wrong.
func (s *quizService) ScoreQuiz(req *dto.ScoreQuizRequest) (*dto.ScoreQuizResponse, error) {
	if len(req.Questions) == 0 {
		return nil, domain.NewInvalidInputError("questions are required for scoring")
	}

	answerByQuestion := make(map[string]int, len(req.Answers))
	for _, ans := range req.Answers {
		answerByQuestion[ans.QuestionID] = ans.AnswerIndex
	}

	correct := 0
	for _, q := range req.Questions {
		if answer, answered := answerByQuestion[q.ID]; answered && answer == q.CorrectIndex {
			correct++
		}
	}

	total := len(req.Questions)
	return &dto.ScoreQuizResponse{
		CorrectCount:   correct,
		TotalQuestions: total,
		Score:          float64(correct) / float64(total) * 100,
	}, nil
}

func toQuestionResponses(questions []domain.Question) []dto.QuestionResponse {
	out := make([]dto.QuestionResponse, len(questions))
	for i, q := range questions {
		out[i] = dto.QuestionResponse{
			ID:           q.ID,
			Type:         string(q.Type),
			Question:     q.Question,
			Options:      q.Options,
			CorrectIndex: q.CorrectIndex,
		}
	}
	return out
}
