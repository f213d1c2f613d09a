package domain

import (
	"strings"
)

// FactKind identifies which extraction pattern produced a fact.
type FactKind string

const (
	FactKindDefinition FactKind = "definition"
	FactKindProcess    FactKind = "process"
)

// FactCategory buckets facts so distractors stay topically consistent
// with the correct answer. An Output question should not offer an Input
// fact as a wrong answer.
type FactCategory string

const (
	CategoryDefinition FactCategory = "definition"
	CategoryInput      FactCategory = "input"
	CategoryOutput     FactCategory = "output"
	CategoryProcess    FactCategory = "process"
)

// Bounds for valid answers. Answers are the predicate text a question
// offers as its correct option.
const (
	MinAnswerLength = 10
	MaxAnswerLength = 150
)

// Fact is a subject/answer pair mined from one sentence, the atomic unit
// from which a question is built.
type Fact struct {
	Kind      FactKind
	Subject   string
	Answer    string
	Statement string
	Category  FactCategory
	// Score orders facts by quality; richer predicates rank higher and
	// are consumed first downstream.
	Score int
}

// DedupKey collapses facts that restate the same subject/answer pair.
// Only the leading part of the answer participates so that trivial tail
// variations do not defeat deduplication.
func (f *Fact) DedupKey() string {
	answer := strings.ToLower(f.Answer)
	if len(answer) > 50 {
		answer = answer[:50]
	}
	return strings.ToLower(f.Subject) + "|" + answer
}

// Concept is a candidate domain term used as a fallback question subject
// when fact extraction under-produces.
type Concept struct {
	Text       string
	Frequency  int
	Importance int
}

// Weight ranks concepts; higher is more central to the text.
func (c Concept) Weight() int {
	return c.Frequency * c.Importance
}
