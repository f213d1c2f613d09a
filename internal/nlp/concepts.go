package nlp

import (
	"regexp"
	"sort"
	"strings"

	"quiz-forge/internal/domain"
)

const maxConcepts = 20

// Importance weights per concept source. Named entities and quoted terms
// signal the strongest topical relevance; bare frequent nouns the weakest.
const (
	weightEntity       = 5
	weightQuotedTerm   = 5
	weightDefinedTerm  = 4
	weightCapitalized  = 3
	weightNounPhrase   = 2
	weightFrequentNoun = 2
	minNounOccurrences = 2
)

var (
	capitalizedTermPattern = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+){0,3}\b`)
	quotedTermPattern      = regexp.MustCompile(`["']([^"']{3,40})["']`)
	definedTermPattern     = regexp.MustCompile(`\b([A-Z][a-zA-Z ]{2,35}?)\s+(?:is|are)\s+(?:a|an|the)\s+`)
	commonNounPattern      = regexp.MustCompile(`\b[a-z]{4,}\b`)
)

// conceptStopwords filters function words out of the frequent-noun source.
var conceptStopwords = map[string]struct{}{
	"the": {}, "this": {}, "that": {}, "with": {}, "from": {}, "when": {},
	"what": {}, "where": {}, "which": {}, "there": {}, "their": {},
	"these": {}, "those": {}, "have": {}, "has": {}, "had": {}, "will": {},
	"would": {}, "could": {}, "should": {}, "more": {}, "most": {},
	"very": {}, "also": {}, "just": {}, "only": {}, "about": {},
	"some": {}, "such": {}, "into": {}, "through": {}, "during": {},
	"before": {}, "after": {}, "above": {}, "below": {}, "between": {},
	"under": {}, "again": {}, "each": {}, "other": {}, "being": {},
	"been": {}, "both": {}, "same": {},
}

// ExtractConcepts ranks candidate domain terms by frequency times
// importance, capped at a fixed size. The rule-based sources always run;
// the tagger adds named entities when available. Concepts only feed the
// fallback question path, so under-production here is harmless.
func ExtractConcepts(text string, useTagger bool) []domain.Concept {
	concepts := make(map[string]*domain.Concept)

	bump := func(term string, importance, freq int) {
		clean := CleanSubject(term)
		if !IsValidSubject(clean) {
			return
		}
		c, ok := concepts[clean]
		if !ok {
			c = &domain.Concept{Text: clean, Importance: importance}
			concepts[clean] = c
		}
		c.Frequency += freq
	}

	if useTagger && TaggerAvailable() {
		if doc, err := parseDocument(text); err == nil {
			for _, ent := range doc.Entities() {
				bump(ent.Text, weightEntity, 2)
			}
			// Multi-word noun phrases; single nouns are already covered
			// by the frequent-noun source below.
			for _, phrase := range nounPhraseChunks(doc.Tokens()) {
				bump(phrase, weightNounPhrase, 1)
			}
		}
	}

	for _, term := range capitalizedTermPattern.FindAllString(text, -1) {
		bump(term, weightCapitalized, 1)
	}

	for _, m := range quotedTermPattern.FindAllStringSubmatch(text, -1) {
		bump(m[1], weightQuotedTerm, 2)
	}

	for _, m := range definedTermPattern.FindAllStringSubmatch(text, -1) {
		bump(m[1], weightDefinedTerm, 3)
	}

	nounCounts := make(map[string]int)
	for _, noun := range commonNounPattern.FindAllString(text, -1) {
		if _, stop := conceptStopwords[noun]; stop {
			continue
		}
		nounCounts[noun]++
	}
	for noun, count := range nounCounts {
		if count >= minNounOccurrences {
			bump(strings.ToUpper(noun[:1])+noun[1:], weightFrequentNoun, count)
		}
	}

	ranked := make([]domain.Concept, 0, len(concepts))
	for _, c := range concepts {
		ranked = append(ranked, *c)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Weight() != ranked[j].Weight() {
			return ranked[i].Weight() > ranked[j].Weight()
		}
		// Deterministic order for equal weights keeps the rule-based
		// path reproducible run to run.
		return ranked[i].Text < ranked[j].Text
	})

	if len(ranked) > maxConcepts {
		ranked = ranked[:maxConcepts]
	}
	return ranked
}
