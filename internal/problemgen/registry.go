package problemgen

import (
	"errors"
	"math/rand/v2"
	"slices"
)

// Registry maps skill codes to their generator variants. It is built once
// and read-only afterwards; callers hold it explicitly rather than going
// through package-level state.
type Registry struct {
	tasks map[string]task
}

// NewRegistry returns the registry covering every supported skill code.
func NewRegistry() *Registry {
	return &Registry{tasks: map[string]task{
		// Addition
		"1A":   &additionTask{widthA: 1, widthB: 1, carries: none()},
		"1AC":  &additionTask{widthA: 1, widthB: 1, carries: exactly(1)},
		"2A1":  &additionTask{widthA: 2, widthB: 1, carries: none()},
		"2A1C": &additionTask{widthA: 2, widthB: 1, carries: exactly(1)},
		"2A2":  &additionTask{widthA: 2, widthB: 2, carries: none()},
		"2A2C": &additionTask{widthA: 2, widthB: 2, carries: exactly(2)},
		"3A":   &additionTask{widthA: 3, widthB: 3, carries: none()},
		"3AC":  &additionTask{widthA: 3, widthB: 3, carries: exactly(1)},
		"3AC2": &additionTask{widthA: 3, widthB: 3, carries: exactly(2)},

		// Subtraction
		"1S":   &subtractionTask{widthA: 1, widthB: 1, borrows: none()},
		"2S1":  &subtractionTask{widthA: 2, widthB: 1, borrows: none()},
		"2S1B": &subtractionTask{widthA: 2, widthB: 1, borrows: exactly(1)},
		"2S2":  &subtractionTask{widthA: 2, widthB: 2, borrows: none()},
		"2S2B": &subtractionTask{widthA: 2, widthB: 2, borrows: exactly(1)},
		"3S":   &subtractionTask{widthA: 3, widthB: 3, borrows: none()},
		"3SB":  &subtractionTask{widthA: 3, widthB: 3, borrows: exactly(1)},
		"3SB2": &subtractionTask{widthA: 3, widthB: 3, borrows: exactly(2)},

		// Multiplication tables
		"T5":  &tableTask{minA: 1, maxA: 10, minB: 1, maxB: 5},
		"T10": &tableTask{minA: 6, maxA: 10, minB: 2, maxB: 10},

		// Long multiplication
		"2M1":   &multiplicationTask{widthA: 2, widthB: 1, carries: none()},
		"2M1C":  &multiplicationTask{widthA: 2, widthB: 1, carries: atLeastOne()},
		"3M1":   &multiplicationTask{widthA: 3, widthB: 1, carries: none()},
		"3M1C":  &multiplicationTask{widthA: 3, widthB: 1, carries: exactly(1)},
		"3M1C2": &multiplicationTask{widthA: 3, widthB: 1, carries: exactly(2)},
		"2M2":   &multiplicationTask{widthA: 2, widthB: 2, carries: none()},
		"2M2C":  &multiplicationTask{widthA: 2, widthB: 2, carries: atLeastOne()},
		"3M2C":  &multiplicationTask{widthA: 3, widthB: 2, carries: atLeastOne()},

		// Division
		"2D1":  &divisionTask{width: 2},
		"2D1R": &divisionTask{width: 2, remainder: true},
		"3D1":  &divisionTask{width: 3},
		"3D1R": &divisionTask{width: 3, remainder: true},
		"3D1Z": &divisionTask{width: 3, zeroMidQuotient: true},
		"4D1R": &divisionTask{width: 4, remainder: true},
	}}
}

// Generate draws one structurally valid question for the given skill code
// using the provided random source. Returns *UnknownSkillError for an
// unregistered code and *ExhaustedError if the skill's structural predicate
// could not be satisfied within the attempt budget.
func (r *Registry) Generate(code string, rng *rand.Rand) (Question, error) {
	t, ok := r.tasks[code]
	if !ok {
		return Question{}, &UnknownSkillError{Code: code}
	}
	q, err := t.generate(rng)
	if err != nil {
		if errors.Is(err, errExhausted) {
			return Question{}, &ExhaustedError{Code: code, Attempts: maxAttempts}
		}
		return Question{}, err
	}
	q.SkillCode = code
	return q, nil
}

// Has reports whether the code has a registered generator.
func (r *Registry) Has(code string) bool {
	_, ok := r.tasks[code]
	return ok
}

// Codes returns all registered skill codes, sorted.
func (r *Registry) Codes() []string {
	codes := make([]string, 0, len(r.tasks))
	for c := range r.tasks {
		codes = append(codes, c)
	}
	slices.Sort(codes)
	return codes
}

// NewRand returns a seeded PCG random source. The same seed reproduces the
// same worksheet end-to-end.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
