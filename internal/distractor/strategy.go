// Package distractor synthesizes plausible wrong answers for generated
// arithmetic questions. Each strategy simulates one specific procedural
// misconception (misaligned columns, add-instead-of-subtract, off-by-one
// table lookup, ...) rather than producing arbitrary offsets.
package distractor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abhisek/mathsheet/internal/problemgen"
)

// Strategy computes candidate wrong answers for one misconception.
// Implementations are stateless and safe for concurrent use.
type Strategy interface {
	// Name returns a short identifier for this strategy (for skip
	// reporting), e.g. "wrong-place-value".
	Name() string

	// Candidates returns the wrong answers this misconception produces for
	// the question. The engine deduplicates, drops the correct answer and
	// drops negative values; strategies need not. An error means the
	// strategy could not run (e.g. unparseable question text) — the engine
	// isolates it and the remaining strategies still contribute.
	Candidates(questionText string, correct problemgen.Answer) ([]problemgen.Answer, error)
}

// parseTerms extracts the two operands from the rendered question text.
// The first and last whitespace-delimited tokens are the operands; this is
// the structural contract every question generator upholds.
func parseTerms(text string) (a, b int, err error) {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return 0, 0, fmt.Errorf("question %q: expected at least two tokens", text)
	}
	a, err = strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("question %q: first operand: %w", text, err)
	}
	b, err = strconv.Atoi(fields[len(fields)-1])
	if err != nil {
		return 0, 0, fmt.Errorf("question %q: last operand: %w", text, err)
	}
	return a, b, nil
}

// withValue returns correct with its integer part replaced, keeping the
// remainder rendering intact for division-with-remainder answers.
func withValue(correct problemgen.Answer, v int) problemgen.Answer {
	correct.Value = v
	return correct
}

// OffByOne perturbs the correct answer by each configured offset.
// The most generic misconception: a final-step miscount.
type OffByOne struct {
	// Offsets to apply, e.g. {-1, +1} or {-2, -1, +1, +2}.
	Offsets []int
}

func (s *OffByOne) Name() string { return "off-by-one" }

func (s *OffByOne) Candidates(_ string, correct problemgen.Answer) ([]problemgen.Answer, error) {
	out := make([]problemgen.Answer, 0, len(s.Offsets))
	for _, off := range s.Offsets {
		out = append(out, withValue(correct, correct.Value+off))
	}
	return out, nil
}

// OffByOneDigit perturbs one decimal digit of the correct answer by ±1 and
// reconstructs the full number — a single wrong-digit error at a specific
// place value. Perturbations that push a digit outside [0,9], or zero the
// leading digit, are skipped.
type OffByOneDigit struct{}

func (s *OffByOneDigit) Name() string { return "off-by-one-digit" }

func (s *OffByOneDigit) Candidates(_ string, correct problemgen.Answer) ([]problemgen.Answer, error) {
	return perDigitPerturbations(correct), nil
}

func perDigitPerturbations(correct problemgen.Answer) []problemgen.Answer {
	v := correct.Value
	width := len(strconv.Itoa(v))
	var out []problemgen.Answer
	place := 1
	for i := 0; i < width; i, place = i+1, place*10 {
		digit := v / place % 10
		for _, delta := range []int{-1, 1} {
			d := digit + delta
			if d < 0 || d > 9 {
				continue
			}
			if d == 0 && i == width-1 && width > 1 {
				// A one-digit slip never drops a place value.
				continue
			}
			out = append(out, withValue(correct, v+delta*place))
		}
	}
	return out
}

// WrongPlaceValue re-adds the second (shorter) operand shifted one or more
// extra decimal places too far left, once per possible extra shift —
// misaligned column addition.
type WrongPlaceValue struct{}

func (s *WrongPlaceValue) Name() string { return "wrong-place-value" }

func (s *WrongPlaceValue) Candidates(text string, _ problemgen.Answer) ([]problemgen.Answer, error) {
	a, b, err := parseTerms(text)
	if err != nil {
		return nil, err
	}
	diff := len(strconv.Itoa(a)) - len(strconv.Itoa(b))
	var out []problemgen.Answer
	shift := 10
	for range diff {
		out = append(out, problemgen.IntAnswer(a+b*shift))
		shift *= 10
	}
	return out, nil
}

// AddInsteadOfSubtract computes a + b for a subtraction question — the
// single most common subtraction misconception.
type AddInsteadOfSubtract struct{}

func (s *AddInsteadOfSubtract) Name() string { return "add-instead-of-subtract" }

func (s *AddInsteadOfSubtract) Candidates(text string, _ problemgen.Answer) ([]problemgen.Answer, error) {
	a, b, err := parseTerms(text)
	if err != nil {
		return nil, err
	}
	return []problemgen.Answer{problemgen.IntAnswer(a + b)}, nil
}

// AddInsteadOfMultiply runs the long-multiplication algorithm but adds each
// multiplier digit to the multiplicand instead of multiplying, summing the
// partial results at their correct place-value shifts. A procedural
// substitution, not a numeric offset.
type AddInsteadOfMultiply struct{}

func (s *AddInsteadOfMultiply) Name() string { return "add-instead-of-multiply" }

func (s *AddInsteadOfMultiply) Candidates(text string, _ problemgen.Answer) ([]problemgen.Answer, error) {
	a, b, err := parseTerms(text)
	if err != nil {
		return nil, err
	}
	sum, place := 0, 1
	for rest := b; ; {
		sum += (a + rest%10) * place
		rest /= 10
		if rest == 0 {
			break
		}
		place *= 10
	}
	return []problemgen.Answer{problemgen.IntAnswer(sum)}, nil
}

// TableOff recomputes a × (b ± offset) — an off-by-one multiplication-table
// lookup error.
type TableOff struct {
	Offsets []int
}

func (s *TableOff) Name() string { return "table-off" }

func (s *TableOff) Candidates(text string, _ problemgen.Answer) ([]problemgen.Answer, error) {
	a, b, err := parseTerms(text)
	if err != nil {
		return nil, err
	}
	var out []problemgen.Answer
	for _, off := range s.Offsets {
		if b+off < 1 {
			continue
		}
		out = append(out, problemgen.IntAnswer(a*(b+off)))
	}
	return out, nil
}

// DivisionErrors combines the quotient missteps of long division:
// quotient ± offset (a mis-sized division step), a per-digit ±1 slip when
// the quotient has two or more digits, and quotient ± 1 for a missed or
// extra step. The remainder of the correct answer is carried through.
type DivisionErrors struct {
	Offsets []int
}

func (s *DivisionErrors) Name() string { return "division-errors" }

func (s *DivisionErrors) Candidates(_ string, correct problemgen.Answer) ([]problemgen.Answer, error) {
	var out []problemgen.Answer
	for _, off := range s.Offsets {
		out = append(out, withValue(correct, correct.Value+off))
	}
	if correct.Value >= 10 {
		out = append(out, perDigitPerturbations(correct)...)
	}
	out = append(out,
		withValue(correct, correct.Value-1),
		withValue(correct, correct.Value+1))
	return out, nil
}
