package quizgen

import (
	"context"
	"math"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/logger"
	"quiz-forge/internal/util"
)

// candidatePoolSize is how many candidates are collected before the final
// three are chosen. The surplus gives the embedding re-ranker something to
// choose between.
const candidatePoolSize = 7

const distractorCount = 3

// clausePatterns mine subordinate clauses out of sentences. A clause
// explains or qualifies something, which makes it read like a plausible
// answer without being one.
var clausePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bbecause\s+(.+?)[.!]?$`),
	regexp.MustCompile(`(?i)\bsince\s+(.+?)[.!]?$`),
	regexp.MustCompile(`(?i),\s+which\s+(.+?)[.!]?$`),
	regexp.MustCompile(`(?i)\bas\s+(.+?)[.!]?$`),
}

// genericDistractors is the topic-agnostic fallback pool. Each entry is
// plausible-sounding for roughly any lesson subject and long enough to
// pass option validation.
var genericDistractors = []string{
	"a temporary phenomenon that only occurs under specific conditions in rare circumstances",
	"an outdated concept that has been replaced by more modern understanding and research",
	"a collection of independent elements that do not interact with each other significantly",
	"primarily a theoretical construct with limited practical application in real situations",
	"something that varies dramatically depending on external factors and environmental conditions",
	"a recently discovered feature that scientists are still studying and trying to understand fully",
	"an ancient theory that has been disproven by modern scientific methods and observations",
	"a complex process that requires specialized equipment and training to observe directly",
	"a rare occurrence that happens only once every several decades under unique circumstances",
	"an abstract concept that exists only in theoretical models without physical manifestation",
}

// Synthesizer builds plausible-but-wrong answer options. The embedding
// service is optional; without it candidates keep their priority order.
type Synthesizer struct {
	embedder domain.EmbeddingService
}

func NewSynthesizer(embedder domain.EmbeddingService) *Synthesizer {
	return &Synthesizer{embedder: embedder}
}

// Synthesize returns exactly three distractors for the given correct
// answer, all distinct from it and from each other. Sources are drained
// in priority order: category-matched fact answers first, then mined
// clauses, then ranked concepts, then the generic pool. The generic pool
// alone can fill all three slots, so the result never comes up short.
func (s *Synthesizer) Synthesize(
	ctx context.Context,
	correct string,
	category domain.FactCategory,
	subject string,
	facts []domain.Fact,
	sentences []string,
	concepts []domain.Concept,
) []string {
	used := map[string]struct{}{strings.ToLower(correct): {}}
	var candidates []string

	add := func(text string) {
		if len(candidates) >= candidatePoolSize {
			return
		}
		text = strings.TrimSpace(text)
		key := strings.ToLower(text)
		if _, dup := used[key]; dup {
			return
		}
		if len(text) < domain.MinOptionLength ||
			len(text) > domain.MaxAnswerLength ||
			len(strings.Fields(text)) < domain.MinOptionWords {
			return
		}
		used[key] = struct{}{}
		candidates = append(candidates, text)
	}

	// Answers of other facts in the same category stay topically
	// consistent: an output question never offers an input fact as a
	// wrong option. Facts about the question's own subject are skipped
	// because they may be alternative true answers.
	for _, f := range facts {
		if f.Category != category {
			continue
		}
		if strings.EqualFold(f.Subject, subject) {
			continue
		}
		add(f.Answer)
	}

	// Definitions describe; so do answers of every other category. For
	// definition questions the cross-category facts are still plausible
	// wrong descriptions, so they join the pool after same-category ones.
	if category == domain.CategoryDefinition {
		for _, f := range facts {
			if f.Category == domain.CategoryDefinition || strings.EqualFold(f.Subject, subject) {
				continue
			}
			add(f.Answer)
		}
	}

	for _, sentence := range sentences {
		if len(candidates) >= candidatePoolSize {
			break
		}
		for _, pattern := range clausePatterns {
			if m := pattern.FindStringSubmatch(sentence); m != nil {
				add(m[1])
				break
			}
		}
	}

	for _, c := range concepts {
		add(c.Text)
	}

	for _, g := range genericDistractors {
		add(g)
	}

	return s.pick(ctx, correct, candidates)
}

// pick chooses the final three. With an embedder available, candidates
// whose similarity to the correct answer is closest to the target band
// win: similar enough to tempt, different enough not to paraphrase the
// correct answer.
func (s *Synthesizer) pick(ctx context.Context, correct string, candidates []string) []string {
	if len(candidates) > distractorCount && s.embedder != nil {
		if ranked, err := s.rankBySimilarity(ctx, correct, candidates); err == nil {
			candidates = ranked
		} else {
			logger.Get().Warn("distractor re-ranking failed, keeping priority order",
				zap.Error(err))
		}
	}
	if len(candidates) > distractorCount {
		candidates = candidates[:distractorCount]
	}
	return candidates
}

// targetSimilarity is the sweet spot for distractor plausibility.
const targetSimilarity = 0.5

func (s *Synthesizer) rankBySimilarity(ctx context.Context, correct string, candidates []string) ([]string, error) {
	correctVec, err := s.embedder.Generate(ctx, correct)
	if err != nil {
		return nil, err
	}

	type scored struct {
		text     string
		distance float64
	}
	results := make([]scored, 0, len(candidates))
	for _, candidate := range candidates {
		vec, err := s.embedder.Generate(ctx, candidate)
		if err != nil {
			return nil, err
		}
		sim, err := util.CosineSimilarity(correctVec, vec)
		if err != nil {
			return nil, err
		}
		results = append(results, scored{
			text:     candidate,
			distance: math.Abs(sim - targetSimilarity),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].distance < results[j].distance
	})

	ranked := make([]string, len(results))
	for i, r := range results {
		ranked[i] = r.text
	}
	return ranked, nil
}
