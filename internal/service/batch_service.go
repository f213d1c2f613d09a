package service

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"quiz-forge/internal/dto"
	"quiz-forge/internal/logger"
)

// maxConcurrentGenerations bounds the fan-out; generation is CPU-bound
// regex work, so unbounded parallelism only adds contention.
const maxConcurrentGenerations = 4

// BatchItem is one content blob in a batch generation request.
type BatchItem struct {
	ID           string
	Content      string
	NumQuestions int
}

// BatchResult pairs a batch item with its generated quiz. Failed items
// carry their error; the rest of the batch is unaffected.
type BatchResult struct {
	ID       string
	Response *dto.GenerateQuizResponse
	Err      error
}

// BatchService generates quizzes for several content blobs concurrently.
type BatchService interface {
	GenerateAll(ctx context.Context, items []BatchItem, useEnhancement bool) []BatchResult
}

type batchService struct {
	quizService QuizService
}

func NewBatchService(quizService QuizService) BatchService {
	return &batchService{quizService: quizService}
}

// GenerateAll runs the pipeline over every item with bounded parallelism.
// Each generation call is independent, so per-item failures are collected
// rather than aborting the batch.
func (s *batchService) GenerateAll(ctx context.Context, items []BatchItem, useEnhancement bool) []BatchResult {
	results := make([]BatchResult, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentGenerations)

	for i, item := range items {
		g.Go(func() error {
			resp, err := s.quizService.GenerateQuiz(gctx, &dto.GenerateQuizRequest{
				Content:        item.Content,
				NumQuestions:   item.NumQuestions,
				UseEnhancement: &useEnhancement,
			})
			results[i] = BatchResult{ID: item.ID, Response: resp, Err: err}
			if err != nil {
				logger.Get().Warn("BatchService: item generation failed",
					zap.String("item_id", item.ID), zap.Error(err))
			}
			// Always nil: one bad item must not cancel the siblings.
			return nil
		})
	}

	_ = g.Wait()
	return results
}
