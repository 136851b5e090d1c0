package distractor

import (
	"slices"
	"testing"

	"github.com/abhisek/mathsheet/internal/problemgen"
)

func values(answers []problemgen.Answer) []int {
	out := make([]int, len(answers))
	for i, a := range answers {
		out[i] = a.Value
	}
	slices.Sort(out)
	return out
}

func TestOffByOne(t *testing.T) {
	s := &OffByOne{Offsets: []int{-1, 1}}
	got, err := s.Candidates("3 + 4", problemgen.IntAnswer(7))
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{6, 8}; !slices.Equal(values(got), want) {
		t.Fatalf("got %v, want %v", values(got), want)
	}
}

func TestOffByOneDigit(t *testing.T) {
	got, err := (&OffByOneDigit{}).Candidates("", problemgen.IntAnswer(85))
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{75, 84, 86, 95}; !slices.Equal(values(got), want) {
		t.Fatalf("got %v, want %v", values(got), want)
	}
}

func TestOffByOneDigit_SkipsDigitOverflow(t *testing.T) {
	// Units digit 9 cannot go up; tens digit 9 cannot go up.
	got, err := (&OffByOneDigit{}).Candidates("", problemgen.IntAnswer(99))
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{89, 98}; !slices.Equal(values(got), want) {
		t.Fatalf("got %v, want %v", values(got), want)
	}
}

func TestOffByOneDigit_KeepsLeadingDigit(t *testing.T) {
	// 105: leading 1 may not drop to 0, middle 0 may not drop below 0.
	got, err := (&OffByOneDigit{}).Candidates("", problemgen.IntAnswer(105))
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{104, 106, 115, 205}; !slices.Equal(values(got), want) {
		t.Fatalf("got %v, want %v", values(got), want)
	}
}

func TestWrongPlaceValue(t *testing.T) {
	// 34 + 5 misaligned: 34 + 50 = 84.
	got, err := (&WrongPlaceValue{}).Candidates("34 + 5", problemgen.IntAnswer(39))
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{84}; !slices.Equal(values(got), want) {
		t.Fatalf("got %v, want %v", values(got), want)
	}

	// Equal widths: no extra shift possible.
	got, err = (&WrongPlaceValue{}).Candidates("34 + 55", problemgen.IntAnswer(89))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("got %v, want none", values(got))
	}

	// Two-place difference yields two shifts.
	got, err = (&WrongPlaceValue{}).Candidates("400 + 3", problemgen.IntAnswer(403))
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{430, 700}; !slices.Equal(values(got), want) {
		t.Fatalf("got %v, want %v", values(got), want)
	}
}

func TestWrongPlaceValue_MalformedText(t *testing.T) {
	if _, err := (&WrongPlaceValue{}).Candidates("garbage", problemgen.IntAnswer(1)); err == nil {
		t.Fatal("want error for unparseable question text")
	}
}

func TestAddInsteadOfSubtract(t *testing.T) {
	got, err := (&AddInsteadOfSubtract{}).Candidates("52 - 7", problemgen.IntAnswer(45))
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{59}; !slices.Equal(values(got), want) {
		t.Fatalf("got %v, want %v", values(got), want)
	}
}

func TestAddInsteadOfMultiply(t *testing.T) {
	// 34 × 12: (34+2)*1 + (34+1)*10 = 36 + 350 = 386.
	got, err := (&AddInsteadOfMultiply{}).Candidates("34 × 12", problemgen.IntAnswer(408))
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{386}; !slices.Equal(values(got), want) {
		t.Fatalf("got %v, want %v", values(got), want)
	}

	// One-digit multiplier degenerates to a + b.
	got, err = (&AddInsteadOfMultiply{}).Candidates("34 × 5", problemgen.IntAnswer(170))
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{39}; !slices.Equal(values(got), want) {
		t.Fatalf("got %v, want %v", values(got), want)
	}
}

func TestTableOff(t *testing.T) {
	s := &TableOff{Offsets: []int{-1, 1}}
	got, err := s.Candidates("7 × 5", problemgen.IntAnswer(35))
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{28, 42}; !slices.Equal(values(got), want) {
		t.Fatalf("got %v, want %v", values(got), want)
	}

	// b-1 would leave the table; only b+1 applies.
	got, err = s.Candidates("6 × 1", problemgen.IntAnswer(6))
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{12}; !slices.Equal(values(got), want) {
		t.Fatalf("got %v, want %v", values(got), want)
	}
}

func TestDivisionErrors_SingleDigitQuotient(t *testing.T) {
	// 50 ÷ 7 = 7 R 1. Quotient < 10: no per-digit slips.
	correct := problemgen.QuotientRemainder(7, 1)
	got, err := (&DivisionErrors{Offsets: []int{-1, 1}}).Candidates("50 ÷ 7", correct)
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range got {
		if !c.HasRemainder || c.Remainder != 1 {
			t.Fatalf("candidate %v lost the remainder", c)
		}
		if c.Value != 6 && c.Value != 8 {
			t.Fatalf("unexpected candidate value %d", c.Value)
		}
	}
}

func TestDivisionErrors_MultiDigitQuotient(t *testing.T) {
	correct := problemgen.IntAnswer(52)
	got, err := (&DivisionErrors{Offsets: []int{-1, 1}}).Candidates("104 ÷ 2", correct)
	if err != nil {
		t.Fatal(err)
	}
	vals := values(got)
	// Per-digit slips must be present alongside the ±1 offsets.
	for _, want := range []int{42, 51, 53, 62} {
		if !slices.Contains(vals, want) {
			t.Fatalf("missing per-digit candidate %d in %v", want, vals)
		}
	}
}
