package quizgen

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"

	"go.uber.org/zap"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/logger"
	"quiz-forge/internal/nlp"
)

// AssemblerConfig carries the assembly knobs. Zero values fall back to
// the documented defaults.
type AssemblerConfig struct {
	MinQuestions        int
	MaxQuestions        int
	MultipleChoiceRatio float64
	FalseStatementRatio float64
	// UseTagger gates the tagger-assisted extraction passes.
	UseTagger bool
}

func (c *AssemblerConfig) applyDefaults() {
	if c.MinQuestions <= 0 {
		c.MinQuestions = 7
	}
	if c.MaxQuestions <= 0 {
		c.MaxQuestions = 20
	}
	if c.MultipleChoiceRatio <= 0 || c.MultipleChoiceRatio > 1 {
		c.MultipleChoiceRatio = 0.6
	}
	if c.FalseStatementRatio <= 0 || c.FalseStatementRatio > 1 {
		c.FalseStatementRatio = 0.34
	}
}

// questionTemplates are the stems tried per fact kind, in order. A stem
// that fails validation (too short a subject, duplicate text) simply
// yields to the next one.
var questionTemplates = map[domain.FactKind][]string{
	domain.FactKindDefinition: {
		"What is %s?",
		"Which of the following best describes %s?",
		"According to the lesson, what is %s?",
	},
	domain.FactKindProcess: {
		"Which statement about %s is correct?",
		"What is true about %s according to the lesson?",
		"Which best describes a characteristic of %s?",
	},
}

// Assembler orchestrates the full pipeline for one content blob:
// segmentation, extraction, question building, and the final shuffle.
type Assembler struct {
	cfg     AssemblerConfig
	builder *Builder
	synth   *Synthesizer
	rng     *rand.Rand
}

// NewAssembler wires an assembler. The rand source is injected so tests
// can seed it; production callers pass a time-seeded source.
func NewAssembler(cfg AssemblerConfig, synth *Synthesizer, rng *rand.Rand) *Assembler {
	cfg.applyDefaults()
	return &Assembler{
		cfg:     cfg,
		builder: NewBuilder(rng),
		synth:   synth,
		rng:     rng,
	}
}

// Assemble produces a target-sized, validated, shuffled question set from
// one content blob. When no facts can be extracted it returns nil: an
// explicit empty quiz, never fabricated content.
func (a *Assembler) Assemble(ctx context.Context, content string, target int) []domain.Question {
	if target < a.cfg.MinQuestions {
		target = a.cfg.MinQuestions
	}
	if target > a.cfg.MaxQuestions {
		target = a.cfg.MaxQuestions
	}

	sentences := nlp.Segment(content)
	facts := nlp.ExtractFacts(sentences, a.cfg.UseTagger)
	concepts := nlp.ExtractConcepts(content, a.cfg.UseTagger)

	logger.Get().Debug("pipeline extraction finished",
		zap.Int("sentences", len(sentences)),
		zap.Int("facts", len(facts)),
		zap.Int("concepts", len(concepts)))

	if len(facts) == 0 {
		logger.Get().Info("no facts extracted, returning empty quiz")
		return nil
	}

	mcTarget := int(math.Ceil(float64(target) * a.cfg.MultipleChoiceRatio))
	if mcTarget > target {
		mcTarget = target
	}
	tfTarget := target - mcTarget

	var questions []domain.Question
	usedText := make(map[string]struct{})
	usedFacts := make(map[int]struct{})

	// Multiple choice from the richest facts first.
	mcBuilt := 0
	for i, fact := range facts {
		if mcBuilt >= mcTarget {
			break
		}
		templates := questionTemplates[fact.Kind]
		for _, tmpl := range templates {
			stem := fmt.Sprintf(tmpl, fact.Subject)
			key := strings.ToLower(stem)
			if _, dup := usedText[key]; dup {
				continue
			}
			distractors := a.synth.Synthesize(ctx, fact.Answer, fact.Category, fact.Subject, facts, sentences, concepts)
			q := a.builder.BuildMultipleChoice(stem, fact.Answer, distractors)
			if q == nil {
				continue
			}
			questions = append(questions, *q)
			usedText[key] = struct{}{}
			usedFacts[i] = struct{}{}
			mcBuilt++
			break
		}
	}

	// True/false from the facts the multiple-choice phase left over. A
	// minority of them are negated to false; facts that resist safe
	// negation become true statements instead.
	tfBuilt := 0
	falseBuilt := 0
	for i, fact := range facts {
		if tfBuilt >= tfTarget {
			break
		}
		if _, used := usedFacts[i]; used {
			continue
		}
		key := strings.ToLower(fact.Statement)
		if _, dup := usedText[key]; dup {
			continue
		}

		wantFalse := float64(falseBuilt) < a.cfg.FalseStatementRatio*float64(tfBuilt)
		q := (*domain.Question)(nil)
		if wantFalse {
			q = a.builder.BuildTrueFalse(fact.Statement, false)
		}
		isFalse := q != nil
		if q == nil {
			q = a.builder.BuildTrueFalse(fact.Statement, true)
		}
		if q == nil {
			continue
		}
		questions = append(questions, *q)
		usedText[key] = struct{}{}
		usedFacts[i] = struct{}{}
		tfBuilt++
		if isFalse {
			falseBuilt++
		}
	}

	// Fallback: statements about the top ranked concepts, built through
	// the same validation path, until the target is met or sources run
	// dry.
	if len(questions) < target {
		questions = a.fillFromConcepts(questions, concepts, sentences, usedText, target)
	}

	a.rng.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})

	if len(questions) > target {
		questions = questions[:target]
	}

	logger.Get().Info("quiz assembled",
		zap.Int("questions", len(questions)),
		zap.Int("target", target),
		zap.Int("multiple_choice", mcBuilt))
	return questions
}

func (a *Assembler) fillFromConcepts(
	questions []domain.Question,
	concepts []domain.Concept,
	sentences []string,
	usedText map[string]struct{},
	target int,
) []domain.Question {
	for _, concept := range concepts {
		if len(questions) >= target {
			break
		}
		needle := strings.ToLower(concept.Text)
		for _, sentence := range sentences {
			if !strings.Contains(strings.ToLower(sentence), needle) {
				continue
			}
			key := strings.ToLower(sentence)
			if _, dup := usedText[key]; dup {
				continue
			}
			if q := a.builder.BuildTrueFalse(sentence, true); q != nil {
				questions = append(questions, *q)
				usedText[key] = struct{}{}
			}
			break
		}
	}
	return questions
}
