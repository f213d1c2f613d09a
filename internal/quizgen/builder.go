package quizgen

import (
	"math/rand"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/nlp"
)

// True/false statements carry the whole claim, so their floor is higher
// than the generic sentence floor.
const (
	minStatementLength = 35
	minStatementWords  = 7
)

// Builder converts candidate (stem, answer, distractors) tuples into
// validated questions. A nil return means the candidate was rejected;
// rejections are expected and frequent, not errors.
type Builder struct {
	rng *rand.Rand
}

func NewBuilder(rng *rand.Rand) *Builder {
	return &Builder{rng: rng}
}

// BuildMultipleChoice assembles a four-option question. It requires three
// valid distractors; there is no silent degradation to fewer options. The
// option order is a uniformly random permutation and CorrectIndex records
// where the correct answer landed.
func (b *Builder) BuildMultipleChoice(questionText, correct string, distractors []string) *domain.Question {
	questionText = nlp.Clean(questionText)
	correct = nlp.Clean(correct)
	if !strings.HasSuffix(questionText, "?") {
		questionText += "?"
	}

	var valid []string
	seen := map[string]struct{}{strings.ToLower(correct): {}}
	for _, d := range distractors {
		d = nlp.Clean(d)
		key := strings.ToLower(d)
		if _, dup := seen[key]; dup {
			continue
		}
		if len(d) < domain.MinOptionLength || len(strings.Fields(d)) < domain.MinOptionWords {
			continue
		}
		seen[key] = struct{}{}
		valid = append(valid, d)
	}
	if len(valid) < 3 {
		return nil
	}

	options := append([]string{correct}, valid[:3]...)
	b.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	correctIndex := -1
	for i, opt := range options {
		if opt == correct {
			correctIndex = i
			break
		}
	}

	q := &domain.Question{
		ID:           uuid.NewString(),
		Type:         domain.QuestionTypeMultiple,
		Question:     questionText,
		Options:      options,
		CorrectIndex: correctIndex,
	}
	if err := q.Validate(); err != nil {
		return nil
	}
	return q
}

// BuildTrueFalse wraps a statement as a true/false item. For false items
// the statement passes through safe negation first; when no negation
// strategy applies the candidate is dropped rather than risking a
// "false" statement that is accidentally still true.
func (b *Builder) BuildTrueFalse(statement string, isTrue bool) *domain.Question {
	statement = strings.TrimSuffix(nlp.Clean(statement), ".")

	if !isTrue {
		negated, ok := Negate(statement)
		if !ok {
			return nil
		}
		statement = negated
	}

	if len(statement) < minStatementLength ||
		len(statement) > domain.MaxQuestionLength ||
		len(strings.Fields(statement)) < minStatementWords {
		return nil
	}
	if !unicode.IsUpper([]rune(statement)[0]) {
		return nil
	}

	correctIndex := 0
	if !isTrue {
		correctIndex = 1
	}

	q := &domain.Question{
		ID:           uuid.NewString(),
		Type:         domain.QuestionTypeTrueFalse,
		Question:     "True or False: " + statement + "?",
		Options:      []string{"True", "False"},
		CorrectIndex: correctIndex,
	}
	if err := q.Validate(); err != nil {
		return nil
	}
	return q
}
