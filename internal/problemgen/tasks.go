package problemgen

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// maxAttempts bounds every rejection-sampling loop. The registered
// predicates are all satisfied well within a few dozen draws on average;
// hitting the bound means the predicate is impossible.
const maxAttempts = 10000

var errExhausted = errors.New("attempt budget exhausted")

// task is one generator variant. Each skill code maps to exactly one task,
// configured with the structural parameters for that skill.
type task interface {
	// generate draws one structurally valid question, or errExhausted.
	generate(rng *rand.Rand) (Question, error)
}

// constraint is a structural predicate on the carry/borrow count (or, for
// multiplication, the count of single-digit products >= 10).
type constraint struct {
	exact      int  // required count when atLeastOne is false
	atLeastOne bool // "carry occurs somewhere" skills (2M1C, 2M2C, 3M2C)
}

func none() constraint { return constraint{exact: 0} }

func exactly(n int) constraint { return constraint{exact: n} }

func atLeastOne() constraint { return constraint{exact: -1, atLeastOne: true} }

func (c constraint) ok(n int) bool {
	if c.atLeastOne {
		return n >= 1
	}
	return n == c.exact
}

// draw returns a uniform integer in [lo, hi].
func draw(rng *rand.Rand, lo, hi int) int {
	return lo + rng.IntN(hi-lo+1)
}

// drawOperand draws a uniform operand of the given digit width. A one-digit
// second operand may be zero; every other operand has a nonzero leading
// digit.
func drawOperand(rng *rand.Rand, width int, allowZero bool) int {
	if width == 1 {
		if allowZero {
			return draw(rng, 0, 9)
		}
		return draw(rng, 1, 9)
	}
	return draw(rng, pow10(width-1), pow10(width)-1)
}

// additionTask generates "a + b" questions. widthA >= widthB.
type additionTask struct {
	widthA, widthB int
	carries        constraint
}

func (t *additionTask) generate(rng *rand.Rand) (Question, error) {
	if !t.carries.atLeastOne && t.carries.exact == 0 {
		a, b := t.constructNoCarry(rng)
		return addQuestion(a, b), nil
	}
	for range maxAttempts {
		a := drawOperand(rng, t.widthA, false)
		b := drawOperand(rng, t.widthB, true)
		if t.carries.ok(countCarries(a, b)) {
			return addQuestion(a, b), nil
		}
	}
	return Question{}, errExhausted
}

// constructNoCarry builds the operands column by column so that no column
// sum reaches 10. The predicate holds by construction; no rejection needed.
func (t *additionTask) constructNoCarry(rng *rand.Rand) (a, b int) {
	for i := t.widthA - 1; i >= 0; i-- {
		loA := 0
		if i == t.widthA-1 {
			loA = 1
		}
		if i < t.widthB {
			loB := 0
			if i == t.widthB-1 && t.widthB > 1 {
				loB = 1
			}
			da := draw(rng, loA, 8)
			db := draw(rng, loB, 9-da)
			a = a*10 + da
			b = b*10 + db
		} else {
			a = a*10 + draw(rng, loA, 9)
		}
	}
	return a, b
}

func addQuestion(a, b int) Question {
	return Question{
		Text:   fmt.Sprintf("%d + %d", a, b),
		Answer: IntAnswer(a + b),
	}
}

// subtractionTask generates "a - b" questions with a > b. widthA >= widthB.
type subtractionTask struct {
	widthA, widthB int
	borrows        constraint
}

func (t *subtractionTask) generate(rng *rand.Rand) (Question, error) {
	if !t.borrows.atLeastOne && t.borrows.exact == 0 {
		// Equal-width operands can come out tied digit for digit; redraw.
		for range maxAttempts {
			a, b := t.constructNoBorrow(rng)
			if a > b {
				return subQuestion(a, b), nil
			}
		}
		return Question{}, errExhausted
	}
	for range maxAttempts {
		a := drawOperand(rng, t.widthA, false)
		b := drawOperand(rng, t.widthB, true)
		if a <= b {
			continue
		}
		if t.borrows.ok(countBorrows(a, b)) {
			return subQuestion(a, b), nil
		}
	}
	return Question{}, errExhausted
}

// constructNoBorrow draws each subtrahend digit no larger than the minuend
// digit above it, so no column ever borrows.
func (t *subtractionTask) constructNoBorrow(rng *rand.Rand) (a, b int) {
	for i := t.widthA - 1; i >= 0; i-- {
		loA := 0
		if i == t.widthA-1 {
			loA = 1
		}
		if i < t.widthB {
			loB := 0
			if i == t.widthB-1 && t.widthB > 1 {
				loB = 1
			}
			if loA < loB {
				loA = loB
			}
			da := draw(rng, loA, 9)
			db := draw(rng, loB, da)
			a = a*10 + da
			b = b*10 + db
		} else {
			a = a*10 + draw(rng, loA, 9)
		}
	}
	return a, b
}

func subQuestion(a, b int) Question {
	return Question{
		Text:   fmt.Sprintf("%d - %d", a, b),
		Answer: IntAnswer(a - b),
	}
}

// tableTask generates "a × b" multiplication-table questions over fixed
// operand ranges. No structural predicate beyond the ranges.
type tableTask struct {
	minA, maxA int
	minB, maxB int
}

func (t *tableTask) generate(rng *rand.Rand) (Question, error) {
	a := draw(rng, t.minA, t.maxA)
	b := draw(rng, t.minB, t.maxB)
	return mulQuestion(a, b), nil
}

// multiplicationTask generates "a × b" long-multiplication questions.
// The constraint counts single-digit products >= 10 across all digit pairs.
type multiplicationTask struct {
	widthA, widthB int
	carries        constraint
}

func (t *multiplicationTask) generate(rng *rand.Rand) (Question, error) {
	for range maxAttempts {
		a := drawOperand(rng, t.widthA, false)
		var b int
		if t.widthB == 1 {
			b = draw(rng, 2, 9)
		} else {
			b = drawOperand(rng, t.widthB, false)
		}
		if t.carries.ok(countProductCarries(a, b)) {
			return mulQuestion(a, b), nil
		}
	}
	return Question{}, errExhausted
}

func mulQuestion(a, b int) Question {
	return Question{
		Text:   fmt.Sprintf("%d × %d", a, b),
		Answer: IntAnswer(a * b),
	}
}

// divisionTask generates "dividend ÷ divisor" questions with a one-digit
// divisor in [2,9]. remainder selects inexact vs. exact division;
// zeroMidQuotient constructs an exact division whose three-digit quotient
// has a zero tens digit (the "zero in quotient" long-division step).
type divisionTask struct {
	width           int
	remainder       bool
	zeroMidQuotient bool
}

func (t *divisionTask) generate(rng *rand.Rand) (Question, error) {
	if t.zeroMidQuotient {
		return t.generateZeroMid(rng)
	}
	for range maxAttempts {
		dividend := draw(rng, pow10(t.width-1), pow10(t.width)-1)
		divisor := draw(rng, 2, 9)
		if (dividend%divisor != 0) != t.remainder {
			continue
		}
		q := Question{Text: fmt.Sprintf("%d ÷ %d", dividend, divisor)}
		if t.remainder {
			q.Answer = QuotientRemainder(dividend/divisor, dividend%divisor)
		} else {
			q.Answer = IntAnswer(dividend / divisor)
		}
		return q, nil
	}
	return Question{}, errExhausted
}

func (t *divisionTask) generateZeroMid(rng *rand.Rand) (Question, error) {
	for range maxAttempts {
		divisor := draw(rng, 2, 9)
		quotient := 100*draw(rng, 1, 4) + draw(rng, 0, 9)
		dividend := divisor * quotient
		if dividend > pow10(t.width)-1 {
			continue
		}
		return Question{
			Text:   fmt.Sprintf("%d ÷ %d", dividend, divisor),
			Answer: IntAnswer(quotient),
		}, nil
	}
	return Question{}, errExhausted
}
