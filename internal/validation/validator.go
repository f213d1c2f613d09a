package validation

import (
	"quiz-forge/internal/domain"
	"quiz-forge/internal/dto"
)

// Content larger than this is almost certainly a mis-upload, not a
// lesson; reject it before the regex passes chew on it.
const maxContentLength = 100_000

const maxRequestedQuestions = 50

// Batch requests are bounded so one call cannot monopolize the worker
// pool behind the batch service.
const maxBatchItems = 20

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateGenerateQuizRequest validates the generate quiz request. Empty
// content is allowed by contract (it yields an empty quiz); a negative
// question count is not.
func (v *Validator) ValidateGenerateQuizRequest(req *dto.GenerateQuizRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if len(req.Content) > maxContentLength {
		errors = append(errors, domain.NewOutOfRangeError("content", len(req.Content), 0, maxContentLength))
	}

	if req.NumQuestions < 0 || req.NumQuestions > maxRequestedQuestions {
		errors = append(errors, domain.NewOutOfRangeError("num_questions", req.NumQuestions, 0, maxRequestedQuestions))
	}

	return errors
}

// ValidateBatchGenerateRequest validates the batch generation request.
// Per-item limits mirror the single-quiz rules; items additionally need
// an ID so results can be matched back to their lesson.
func (v *Validator) ValidateBatchGenerateRequest(req *dto.BatchGenerateRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if len(req.Items) == 0 {
		errors = append(errors, domain.NewMissingFieldError("items"))
		return errors
	}
	if len(req.Items) > maxBatchItems {
		errors = append(errors, domain.NewOutOfRangeError("items", len(req.Items), 1, maxBatchItems))
		return errors
	}

	for _, item := range req.Items {
		if item.ID == "" {
			errors = append(errors, domain.NewMissingFieldError("items[].id"))
		}
		if len(item.Content) > maxContentLength {
			errors = append(errors, domain.NewOutOfRangeError("items[].content", len(item.Content), 0, maxContentLength))
		}
		if item.NumQuestions < 0 || item.NumQuestions > maxRequestedQuestions {
			errors = append(errors, domain.NewOutOfRangeError("items[].num_questions", item.NumQuestions, 0, maxRequestedQuestions))
		}
	}

	return errors
}

// ValidateScoreQuizRequest validates the score quiz request.
func (v *Validator) ValidateScoreQuizRequest(req *dto.ScoreQuizRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if len(req.Questions) == 0 {
		errors = append(errors, domain.NewMissingFieldError("questions"))
	}

	for _, q := range req.Questions {
		if q.ID == "" {
			errors = append(errors, domain.NewMissingFieldError("questions[].id"))
			break
		}
	}

	return errors
}
