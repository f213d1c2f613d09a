package nlp

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"quiz-forge/internal/domain"
)

// definitionPattern matches "<Capitalized subject> is|are|means <predicate>".
var definitionPattern = regexp.MustCompile(
	`^([A-Z][A-Za-z0-9' -]{1,39}?)\s+(?:is|are|means)\s+(.+?)[.!]?$`)

// processPattern matches "<subject> <action verb> <description>". The verb
// decides the fact category: what something produces is an output, what it
// uses is an input, where it occurs is a process detail.
var processPattern = regexp.MustCompile(
	`(?i)\b([A-Za-z][A-Za-z' -]{1,39}?)\s+(produces|produce|creates|create|releases|release|uses|use|requires|require|occurs in|occur in|happens in|happen in)\s+(.+?)[.!]?$`)

// definitionScoreBoost ranks definitions above process facts of equal
// predicate richness; definitions make the strongest question stems.
const (
	definitionScoreBoost = 5
	processScoreBoost    = 3
)

// ExtractFacts mines subject/answer pairs from quality sentences. When the
// tagger enhancement is enabled and available, a tagger-assisted pass runs
// first per sentence and the regex patterns act as the fallback, never as
// an additive source; layering both over one sentence yields duplicate
// low-quality facts. The result is deduplicated and sorted by quality so
// richer facts are consumed first downstream.
func ExtractFacts(sentences []string, useTagger bool) []domain.Fact {
	var facts []domain.Fact
	for _, sentence := range sentences {
		var found []domain.Fact
		if useTagger && TaggerAvailable() {
			found = taggerFacts(sentence)
		}
		if len(found) == 0 {
			found = patternFacts(sentence)
		}
		facts = append(facts, found...)
	}

	deduped := facts[:0]
	seen := make(map[string]struct{}, len(facts))
	for _, f := range facts {
		key := f.DedupKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		deduped = append(deduped, f)
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		return deduped[i].Score > deduped[j].Score
	})
	return deduped
}

// patternFacts yields at most one fact per sentence. The definition
// pattern wins over the process pattern: a definitional sentence usually
// also contains an action verb inside its predicate, and matching both
// would mine a mangled subject out of the same words twice.
func patternFacts(sentence string) []domain.Fact {
	if m := definitionPattern.FindStringSubmatch(sentence); m != nil {
		subject := CleanSubject(m[1])
		answer := Clean(m[2])
		if IsValidSubject(subject) && validDefinitionAnswer(answer) {
			return []domain.Fact{{
				Kind:      domain.FactKindDefinition,
				Subject:   subject,
				Answer:    answer,
				Statement: sentence,
				Category:  domain.CategoryDefinition,
				Score:     len(strings.Fields(answer)) + definitionScoreBoost,
			}}
		}
	}

	if m := processPattern.FindStringSubmatch(sentence); m != nil {
		subject := CleanSubject(m[1])
		answer := Clean(m[3])
		if IsValidSubject(subject) && validAnswer(answer) {
			return []domain.Fact{{
				Kind:      domain.FactKindProcess,
				Subject:   subject,
				Answer:    answer,
				Statement: sentence,
				Category:  verbCategory(m[2]),
				Score:     len(strings.Fields(answer)) + processScoreBoost,
			}}
		}
	}

	return nil
}

func verbCategory(verb string) domain.FactCategory {
	switch base := strings.ToLower(strings.Fields(verb)[0]); {
	case strings.HasPrefix(base, "produce"),
		strings.HasPrefix(base, "create"),
		strings.HasPrefix(base, "release"):
		return domain.CategoryOutput
	case strings.HasPrefix(base, "use"),
		strings.HasPrefix(base, "require"):
		return domain.CategoryInput
	default:
		return domain.CategoryProcess
	}
}

// validAnswer checks the bounds shared by every answer: length limits and
// no referential pronoun opening.
func validAnswer(answer string) bool {
	if len(answer) < domain.MinAnswerLength || len(answer) > domain.MaxAnswerLength {
		return false
	}
	return !startsWithPronoun(answer)
}

// validDefinitionAnswer additionally requires a lowercase start, the usual
// shape of a predicate continuing its sentence.
func validDefinitionAnswer(answer string) bool {
	if !validAnswer(answer) {
		return false
	}
	first := []rune(answer)[0]
	return unicode.IsLower(first)
}
