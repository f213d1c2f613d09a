package domain

import (
	"regexp"
	"strings"
	"unicode"
)

// QuestionType identifies the form of a quiz question.
type QuestionType string

const (
	QuestionTypeMultiple  QuestionType = "multiple"
	QuestionTypeTrueFalse QuestionType = "truefalse"
)

// Bounds shared by question validation. Options of multiple-choice
// questions must satisfy the same floor as valid fact answers.
const (
	MinQuestionLength = 15
	MaxQuestionLength = 250
	MinOptionLength   = 12
	MinOptionWords    = 3
)

// danglingEndPattern rejects questions that trail off into a conjunction
// or preposition right before the question mark.
var danglingEndPattern = regexp.MustCompile(`\b(?:and|or|but|of|in|on|at)\s*\?$`)

var doubledSpacePattern = regexp.MustCompile(`\s{2,}`)

// Question is a single validated quiz item.
type Question struct {
	ID           string       `json:"id"`
	Type         QuestionType `json:"type"`
	Question     string       `json:"question"`
	Options      []string     `json:"options"`
	CorrectIndex int          `json:"correct_index"`
}

// Validate checks the structural invariants of a question: text bounds,
// terminal question mark, option count and distinctness, and a correct
// index that addresses an existing option.
func (q *Question) Validate() error {
	text := q.Question
	if len(text) < MinQuestionLength || len(text) > MaxQuestionLength {
		return NewValidationFailure("question length out of bounds")
	}
	if !strings.HasSuffix(text, "?") {
		return NewValidationFailure("question must end with a question mark")
	}
	first := []rune(text)[0]
	if !unicode.IsUpper(first) {
		return NewValidationFailure("question must start with an uppercase letter")
	}
	if danglingEndPattern.MatchString(text) {
		return NewValidationFailure("question ends in a dangling word")
	}
	if doubledSpacePattern.MatchString(text) {
		return NewValidationFailure("question contains doubled whitespace")
	}

	switch q.Type {
	case QuestionTypeMultiple:
		if len(q.Options) != 4 {
			return NewValidationFailure("multiple choice requires exactly 4 options")
		}
		seen := make(map[string]struct{}, len(q.Options))
		for _, opt := range q.Options {
			if len(opt) < MinOptionLength || len(strings.Fields(opt)) < MinOptionWords {
				return NewValidationFailure("option below minimum length")
			}
			key := strings.ToLower(opt)
			if _, dup := seen[key]; dup {
				return NewValidationFailure("options must be distinct")
			}
			seen[key] = struct{}{}
		}
	case QuestionTypeTrueFalse:
		if len(q.Options) != 2 || q.Options[0] != "True" || q.Options[1] != "False" {
			return NewValidationFailure(`true/false requires options ["True", "False"]`)
		}
	default:
		return NewValidationFailure("unknown question type")
	}

	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return NewValidationFailure("correct index out of range")
	}
	return nil
}

// NewValidationFailure wraps a builder rejection reason. Rejections are
// expected and frequent; callers skip the candidate rather than surface
// the error.
func NewValidationFailure(message string) *DomainError {
	return NewError(ErrInvalidInput, message, nil)
}

// Quiz is an assembled, shuffled set of validated questions.
type Quiz struct {
	ID        string     `json:"id"`
	Questions []Question `json:"questions"`
}
