// Package quizgen turns extracted facts into validated quiz questions:
// distractor synthesis, question building and quiz assembly.
package quizgen

import (
	"regexp"
	"strings"
)

// Negate flips the truth value of a statement using only transformations
// that cannot fabricate new claims. Strategies are tried in order and the
// first applicable one wins:
//
//  1. invert a quantifier ("always" -> "never", "some" -> "all"),
//  2. swap a domain noun with a plausible wrong sibling,
//  3. insert explicit verb negation into short statements.
//
// Quantifier inversion runs first: a quantified claim negated through its
// quantifier is guaranteed false, whereas a noun swap inside it may leave
// the quantifier asserting something accidentally true. If no strategy
// applies, ok is false and the caller must drop the candidate instead of
// guessing at a false statement.
func Negate(statement string) (negated string, ok bool) {
	for _, strategy := range []func(string) (string, bool){
		invertQuantifier,
		swapSiblingNoun,
		negateVerb,
	} {
		if result, applied := strategy(statement); applied && result != statement {
			return result, true
		}
	}
	return "", false
}

// quantifierInversions maps each quantifier to its truth-flipping
// replacement.
var quantifierInversions = []struct {
	pattern     *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`(?i)\balways\b`), "never"},
	{regexp.MustCompile(`(?i)\ball\b`), "never"},
	{regexp.MustCompile(`(?i)\bevery\b`), "no"},
	{regexp.MustCompile(`(?i)\bsome\b`), "all"},
	{regexp.MustCompile(`(?i)\bmany\b`), "all"},
	{regexp.MustCompile(`(?i)\boften\b`), "never"},
	{regexp.MustCompile(`(?i)\busually\b`), "never"},
}

func invertQuantifier(statement string) (string, bool) {
	for _, inv := range quantifierInversions {
		if inv.pattern.MatchString(statement) {
			return replaceFirst(inv.pattern, statement, inv.replacement), true
		}
	}
	return "", false
}

// siblingNouns pairs domain nouns with a plausible wrong sibling. Swaps go
// both directions.
var siblingNouns = [][2]string{
	{"oxygen", "nitrogen"},
	{"water", "oil"},
	{"sunlight", "moonlight"},
	{"energy", "matter"},
	{"plants", "fungi"},
	{"heat", "cold"},
	{"liquid", "solid"},
	{"protons", "electrons"},
}

func swapSiblingNoun(statement string) (string, bool) {
	for _, pair := range siblingNouns {
		for _, dir := range [][2]string{{pair[0], pair[1]}, {pair[1], pair[0]}} {
			pattern := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(dir[0]) + `\b`)
			if pattern.MatchString(statement) {
				return replaceFirst(pattern, statement, dir[1]), true
			}
		}
	}
	return "", false
}

// negatableVerbs lists the action verbs whose negation is mechanical.
var negatableVerbs = []struct {
	verb    string
	negated string
}{
	{"is", "is not"},
	{"are", "are not"},
	{"produces", "does not produce"},
	{"creates", "does not create"},
	{"releases", "does not release"},
	{"uses", "does not use"},
	{"requires", "does not require"},
}

const maxNegatableWords = 8

// negateVerb inserts explicit negation, but only into short statements;
// longer ones too often hold subordinate clauses where the inserted "not"
// lands on the wrong verb.
func negateVerb(statement string) (string, bool) {
	if len(strings.Fields(statement)) > maxNegatableWords {
		return "", false
	}
	for _, nv := range negatableVerbs {
		pattern := regexp.MustCompile(`\b` + nv.verb + `\b`)
		if pattern.MatchString(statement) {
			return replaceFirst(pattern, statement, nv.negated), true
		}
	}
	return "", false
}

func replaceFirst(pattern *regexp.Regexp, s, replacement string) string {
	replaced := false
	return pattern.ReplaceAllStringFunc(s, func(match string) string {
		if replaced {
			return match
		}
		replaced = true
		if isCapitalized(match) {
			return strings.ToUpper(replacement[:1]) + replacement[1:]
		}
		return replacement
	})
}

func isCapitalized(s string) bool {
	return s != "" && s[0] >= 'A' && s[0] <= 'Z'
}
