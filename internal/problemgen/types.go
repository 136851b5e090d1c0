package problemgen

import (
	"fmt"
	"strconv"
)

// Answer is the correct result of a generated question. Most skills produce
// a plain integer; division-with-remainder skills produce a quotient and a
// remainder, rendered as "Q R r".
type Answer struct {
	// Value is the integer result, or the quotient for
	// division-with-remainder skills.
	Value int

	// Remainder is the division remainder. Only meaningful when
	// HasRemainder is true.
	Remainder int

	// HasRemainder marks a quotient+remainder answer.
	HasRemainder bool
}

// IntAnswer returns a plain integer answer.
func IntAnswer(v int) Answer {
	return Answer{Value: v}
}

// QuotientRemainder returns a division-with-remainder answer.
func QuotientRemainder(q, r int) Answer {
	return Answer{Value: q, Remainder: r, HasRemainder: true}
}

// String renders the answer the way it appears as a worksheet option.
func (a Answer) String() string {
	if a.HasRemainder {
		return fmt.Sprintf("%d R %d", a.Value, a.Remainder)
	}
	return strconv.Itoa(a.Value)
}

// ParseAnswer parses the worksheet-option rendering of an answer: either a
// plain integer or "Q R r" for division with remainder.
func ParseAnswer(s string) (Answer, error) {
	if v, err := strconv.Atoi(s); err == nil {
		return IntAnswer(v), nil
	}
	var q, r int
	if _, err := fmt.Sscanf(s, "%d R %d", &q, &r); err != nil {
		return Answer{}, fmt.Errorf("invalid answer %q", s)
	}
	return QuotientRemainder(q, r), nil
}

// Question is an immutable generated question: a rendered infix expression
// over two operands and its exact answer.
//
// Structural contract: the two operands are always the first and last
// whitespace-delimited tokens of Text. The distractor strategies parse
// operands back out of Text and rely on this.
type Question struct {
	// Text is the rendered expression, e.g. "47 + 6" or "52 ÷ 7".
	Text string

	// SkillCode is the code this question was generated for.
	SkillCode string

	// Answer is the exact correct answer.
	Answer Answer
}

// UnknownSkillError indicates a skill code with no registered generator.
// This is a configuration error, never retried.
type UnknownSkillError struct {
	Code string
}

func (e *UnknownSkillError) Error() string {
	return fmt.Sprintf("unknown skill code: %q", e.Code)
}

// ExhaustedError indicates that rejection sampling failed to satisfy a
// skill's structural predicate within the attempt budget. It signals a
// mis-specified (likely impossible) predicate, not a transient condition.
type ExhaustedError struct {
	Code     string
	Attempts int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("skill %q: no structurally valid question after %d attempts", e.Code, e.Attempts)
}
