package nlp

import (
	"strings"
	"sync"

	"github.com/jdkato/prose/v2"
	"go.uber.org/zap"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/logger"
)

// The tagger model is loaded lazily and at most once per process. After
// the first load it is read-only, so concurrent generation calls can
// share it without further synchronization.
var (
	taggerOnce      sync.Once
	taggerAvailable bool
)

// TaggerAvailable reports whether the POS tagger loaded successfully.
// The first call pays the model load; later calls are a flag read.
func TaggerAvailable() bool {
	taggerOnce.Do(func() {
		_, err := prose.NewDocument(
			"Warmup text so the tagger model loads once.",
			prose.WithExtraction(false),
			prose.WithSegmentation(false),
		)
		if err != nil {
			logger.Get().Warn("POS tagger unavailable, rule-based extraction only",
				zap.Error(err))
			return
		}
		taggerAvailable = true
	})
	return taggerAvailable
}

func parseDocument(text string) (*prose.Document, error) {
	return prose.NewDocument(text,
		prose.WithSegmentation(false),
	)
}

var copularVerbs = map[string]struct{}{
	"is": {}, "are": {}, "means": {},
}

var actionVerbCategories = map[string]domain.FactCategory{
	"produces": domain.CategoryOutput,
	"produce":  domain.CategoryOutput,
	"creates":  domain.CategoryOutput,
	"create":   domain.CategoryOutput,
	"releases": domain.CategoryOutput,
	"release":  domain.CategoryOutput,
	"uses":     domain.CategoryInput,
	"use":      domain.CategoryInput,
	"requires": domain.CategoryInput,
	"require":  domain.CategoryInput,
	"occurs":   domain.CategoryProcess,
	"occur":    domain.CategoryProcess,
	"happens":  domain.CategoryProcess,
	"happen":   domain.CategoryProcess,
}

// taggerFacts walks a sentence's token tags looking for a copular or known
// action verb with a nominal subject to its left, and extracts the
// subject/complement pair under the same validation rules as the regex
// path. Unlike the regex path it accepts subjects that are not sentence
// initial or capitalized.
func taggerFacts(sentence string) []domain.Fact {
	doc, err := parseDocument(sentence)
	if err != nil {
		logger.Get().Warn("tagger parse failed, falling back to patterns",
			zap.Error(err))
		return nil
	}

	tokens := doc.Tokens()
	for i := 1; i < len(tokens)-1; i++ {
		tok := tokens[i]
		if !strings.HasPrefix(tok.Tag, "VB") {
			continue
		}
		verb := strings.ToLower(tok.Text)

		subject := nominalSubject(tokens[:i])
		if subject == "" {
			continue
		}
		subject = CleanSubject(subject)
		if !IsValidSubject(subject) {
			continue
		}

		complement := Clean(joinTokens(tokens[i+1:]))
		complement = strings.TrimRight(complement, ".!")

		if _, copular := copularVerbs[verb]; copular {
			if !validDefinitionAnswer(complement) {
				continue
			}
			return []domain.Fact{{
				Kind:      domain.FactKindDefinition,
				Subject:   subject,
				Answer:    complement,
				Statement: sentence,
				Category:  domain.CategoryDefinition,
				Score:     len(strings.Fields(complement)) + definitionScoreBoost,
			}}
		}
		if category, ok := actionVerbCategories[verb]; ok {
			if !validAnswer(complement) {
				continue
			}
			return []domain.Fact{{
				Kind:      domain.FactKindProcess,
				Subject:   subject,
				Answer:    complement,
				Statement: sentence,
				Category:  category,
				Score:     len(strings.Fields(complement)) + processScoreBoost,
			}}
		}
	}
	return nil
}

// nominalSubject collects the noun phrase immediately left of the verb:
// contiguous noun and adjective tokens, walking backwards. Determiners
// terminate the walk and stay out of the subject.
func nominalSubject(tokens []prose.Token) string {
	var parts []string
	for i := len(tokens) - 1; i >= 0; i-- {
		tag := tokens[i].Tag
		if strings.HasPrefix(tag, "NN") || tag == "JJ" {
			parts = append([]string{tokens[i].Text}, parts...)
			continue
		}
		break
	}
	return strings.Join(parts, " ")
}

// nounPhraseChunks collects contiguous adjective/noun token runs of two or
// more words, the bare noun phrases used as generic concept candidates.
func nounPhraseChunks(tokens []prose.Token) []string {
	var phrases []string
	var run []string
	flush := func() {
		if len(run) >= 2 {
			phrases = append(phrases, strings.Join(run, " "))
		}
		run = run[:0]
	}
	for _, tok := range tokens {
		if strings.HasPrefix(tok.Tag, "NN") || tok.Tag == "JJ" {
			run = append(run, tok.Text)
			continue
		}
		flush()
	}
	flush()
	return phrases
}

// joinTokens rebuilds surface text from tokens, keeping punctuation
// attached to the preceding word.
func joinTokens(tokens []prose.Token) string {
	var b strings.Builder
	for i, tok := range tokens {
		if i > 0 && !isPunctToken(tok.Text) {
			b.WriteByte(' ')
		}
		b.WriteString(tok.Text)
	}
	return b.String()
}

func isPunctToken(text string) bool {
	if len(text) != 1 {
		return false
	}
	switch text[0] {
	case '.', ',', '!', '?', ';', ':', ')':
		return true
	}
	return false
}
