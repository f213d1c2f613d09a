package handler

import (
	"quiz-forge/internal/dto"
	"quiz-forge/internal/logger"
	"quiz-forge/internal/service"
	"quiz-forge/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service   service.QuizService
	batch     service.BatchService
	validator *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService, batch service.BatchService, validator *validation.Validator) *QuizHandler {
	return &QuizHandler{
		service:   service,
		batch:     batch,
		validator: validator,
	}
}

// GenerateQuiz handles POST /api/quizzes/generate. An empty question list
// with a reason field is a successful response: it tells the caller the
// content was unsuitable, which is not a server fault.
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	var req dto.GenerateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "INVALID_REQUEST_BODY",
		})
	}

	if errs := h.validator.ValidateGenerateQuizRequest(&req); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.GenerateQuiz(c.UserContext(), &req)
	if err != nil {
		logger.Get().Error("Failed to generate quiz",
			zap.Error(err),
			zap.Int("num_questions", req.NumQuestions),
		)
		return err
	}

	return c.JSON(resp)
}

// GenerateBatch handles POST /api/quizzes/generate-batch. Items are
// processed concurrently; a failed item surfaces as an error string in
// its result slot while the rest of the batch succeeds normally.
func (h *QuizHandler) GenerateBatch(c *fiber.Ctx) error {
	var req dto.BatchGenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "INVALID_REQUEST_BODY",
		})
	}

	if errs := h.validator.ValidateBatchGenerateRequest(&req); len(errs) > 0 {
		return errs
	}

	items := make([]service.BatchItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.BatchItem{
			ID:           item.ID,
			Content:      item.Content,
			NumQuestions: item.NumQuestions,
		}
	}

	batchResults := h.batch.GenerateAll(c.UserContext(), items, req.Enhancement())

	resp := dto.BatchGenerateResponse{
		Results: make([]dto.BatchGenerateResult, len(batchResults)),
	}
	for i, r := range batchResults {
		result := dto.BatchGenerateResult{ID: r.ID}
		if r.Err != nil {
			result.Error = r.Err.Error()
		} else {
			result.Quiz = r.Response
		}
		resp.Results[i] = result
	}

	return c.JSON(resp)
}

// ScoreQuiz handles POST /api/quizzes/score.
func (h *QuizHandler) ScoreQuiz(c *fiber.Ctx) error {
	var req dto.ScoreQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "INVALID_REQUEST_BODY",
		})
	}

	if errs := h.validator.ValidateScoreQuizRequest(&req); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.ScoreQuiz(&req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}
