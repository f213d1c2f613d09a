// Package nlp holds the rule-based text processing stages of the quiz
// pipeline: sentence segmentation, fact extraction and concept ranking.
// Pattern matching is the core mechanism here on purpose; every extracted
// fact is traceable to a sentence in the source text.
package nlp

import (
	"regexp"
	"strings"
	"unicode"
)

// Sentence quality floor. Shorter fragments carry too little content to
// produce a defensible quiz item.
const (
	minSentenceLength = 40
	minSentenceWords  = 5
)

var (
	whitespacePattern   = regexp.MustCompile(`\s+`)
	punctSpacingPattern = regexp.MustCompile(`\s+([.,!?;:])`)
	listMarkerPattern   = regexp.MustCompile(`^(?:[-*•]|\d+[.)])\s`)
)

// Clean collapses whitespace and fixes spacing before punctuation.
// Clean is idempotent: Clean(Clean(x)) == Clean(x).
func Clean(text string) string {
	text = whitespacePattern.ReplaceAllString(text, " ")
	text = punctSpacingPattern.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}

// Segment splits text into quality-filtered sentences, preserving order.
// A sentence survives only if it is long enough, starts with an uppercase
// letter and ends in terminal punctuation. Questions are dropped because
// they state nothing, and list items are dropped because they are rarely
// complete statements.
func Segment(text string) []string {
	text = Clean(text)
	if text == "" {
		return nil
	}

	var sentences []string
	start := 0
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != '.' && c != '!' && c != '?' {
			continue
		}
		// Split only at a terminator followed by a space (or end of
		// input) so abbreviations like "3.5" stay intact.
		if i+1 < len(text) && text[i+1] != ' ' {
			continue
		}
		candidate := strings.TrimSpace(text[start : i+1])
		if isQualitySentence(candidate) {
			sentences = append(sentences, candidate)
		}
		start = i + 1
	}
	// A trailing fragment without terminal punctuation fails the filter,
	// so it is dropped here implicitly.
	return sentences
}

func isQualitySentence(s string) bool {
	if len(s) < minSentenceLength {
		return false
	}
	if len(strings.Fields(s)) < minSentenceWords {
		return false
	}
	runes := []rune(s)
	if !unicode.IsUpper(runes[0]) {
		return false
	}
	last := s[len(s)-1]
	if last != '.' && last != '!' && last != '?' {
		return false
	}
	// Questions are not facts.
	if last == '?' {
		return false
	}
	if listMarkerPattern.MatchString(s) {
		return false
	}
	return true
}
