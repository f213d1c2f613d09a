package nlp

import (
	"regexp"
	"strings"
)

const (
	minSubjectLength = 2
	maxSubjectLength = 40
)

var leadingArticlePattern = regexp.MustCompile(`(?i)^(?:the|a|an)\s+`)

var letterPattern = regexp.MustCompile(`[a-zA-Z]`)

// invalidSubjectStarters reject subjects that begin mid-phrase.
var invalidSubjectStarters = []string{
	"the ", "a ", "an ", "this ", "that ",
	"in ", "on ", "at ", "by ", "for ", "of ", "to ", "from ",
}

// invalidSubjectEnders reject subjects cut off before their head noun.
var invalidSubjectEnders = []string{
	" and", " or", " but", " of", " in", " on", " at",
}

var pronouns = map[string]struct{}{
	"it": {}, "this": {}, "that": {}, "they": {},
	"he": {}, "she": {}, "we": {}, "you": {},
	"these": {}, "those": {}, "there": {},
}

// bareFunctionWords reject single-word subjects with no content of their
// own, typically a capitalized article at a sentence start.
var bareFunctionWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"with": {}, "from": {}, "when": {}, "while": {},
}

// CleanSubject standardizes a candidate subject: leading articles are
// stripped, trailing punctuation removed and the first letter uppercased.
func CleanSubject(subject string) string {
	subject = leadingArticlePattern.ReplaceAllString(subject, "")
	subject = strings.TrimRight(subject, ".,;:")
	subject = strings.TrimSpace(subject)
	if subject != "" {
		subject = strings.ToUpper(subject[:1]) + subject[1:]
	}
	return subject
}

// IsValidSubject reports whether a cleaned subject can anchor a question.
func IsValidSubject(subject string) bool {
	lower := strings.ToLower(strings.TrimSpace(subject))

	if len(lower) < minSubjectLength || len(lower) > maxSubjectLength {
		return false
	}
	if _, isPronoun := pronouns[lower]; isPronoun {
		return false
	}
	if _, functionWord := bareFunctionWords[lower]; functionWord {
		return false
	}
	for _, starter := range invalidSubjectStarters {
		if strings.HasPrefix(lower, starter) {
			return false
		}
	}
	for _, ender := range invalidSubjectEnders {
		if strings.HasSuffix(lower, ender) {
			return false
		}
	}
	return letterPattern.MatchString(subject)
}

// startsWithPronoun reports whether text opens with a referential pronoun,
// which would make it useless as a standalone answer.
func startsWithPronoun(text string) bool {
	fields := strings.Fields(strings.ToLower(text))
	if len(fields) == 0 {
		return false
	}
	_, ok := pronouns[fields[0]]
	return ok
}
