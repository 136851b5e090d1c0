package distractor

import (
	"slices"

	"github.com/abhisek/mathsheet/internal/problemgen"
)

// StrategyResult is the outcome of running one strategy for one question.
// Failure isolation is explicit: a failed strategy carries its error here
// and contributes no candidates, while the other strategies still run.
type StrategyResult struct {
	Strategy   string
	Candidates []problemgen.Answer
	Err        error
}

// Engine maps each skill code to its ordered strategy list and aggregates
// their candidates into one deduplicated pool.
type Engine struct {
	strategies map[string][]Strategy
}

// NewEngine returns the engine with the standard skill → strategy table.
func NewEngine() *Engine {
	offOne := &OffByOne{Offsets: []int{-1, 1}}
	digitOff := &OffByOneDigit{}
	place := &WrongPlaceValue{}
	addSub := &AddInsteadOfSubtract{}
	addMul := &AddInsteadOfMultiply{}
	table := &TableOff{Offsets: []int{-1, 1}}
	div := &DivisionErrors{Offsets: []int{-1, 1}}

	return &Engine{strategies: map[string][]Strategy{
		// One-digit addition: only the miscount is plausible.
		"1A":  {offOne},
		"1AC": {offOne},

		// Mixed-width addition: column misalignment dominates.
		"2A1":  {place, offOne},
		"2A1C": {place, offOne},

		// Equal-width addition: single wrong-digit errors.
		"2A2":  {digitOff, offOne},
		"2A2C": {digitOff, offOne},
		"3A":   {digitOff, offOne},
		"3AC":  {digitOff, offOne},
		"3AC2": {digitOff, offOne},

		// Subtraction
		"1S":   {addSub, offOne},
		"2S1":  {addSub, digitOff},
		"2S1B": {addSub, digitOff},
		"2S2":  {addSub, digitOff},
		"2S2B": {addSub, digitOff},
		"3S":   {addSub, digitOff},
		"3SB":  {addSub, digitOff},
		"3SB2": {addSub, digitOff},

		// Multiplication tables
		"T5":  {table, offOne},
		"T10": {table, offOne},

		// Long multiplication
		"2M1":   {addMul, offOne},
		"2M1C":  {addMul, offOne},
		"3M1":   {addMul, offOne},
		"3M1C":  {addMul, offOne},
		"3M1C2": {addMul, offOne},
		"2M2":   {addMul, offOne},
		"2M2C":  {addMul, offOne},
		"3M2C":  {addMul, offOne},

		// Division
		"2D1":  {div},
		"2D1R": {div},
		"3D1":  {div},
		"3D1R": {div},
		"3D1Z": {div},
		"4D1R": {div},
	}}
}

// Has reports whether the code has a registered strategy list.
func (e *Engine) Has(code string) bool {
	_, ok := e.strategies[code]
	return ok
}

// Run invokes every strategy registered for the skill code and returns one
// result per strategy, failures included. Returns *UnknownSkillError when
// no strategy list is registered — a configuration error, unlike an
// individual strategy failure.
func (e *Engine) Run(code, questionText string, correct problemgen.Answer) ([]StrategyResult, error) {
	strategies, ok := e.strategies[code]
	if !ok {
		return nil, &problemgen.UnknownSkillError{Code: code}
	}
	results := make([]StrategyResult, 0, len(strategies))
	for _, s := range strategies {
		candidates, err := s.Candidates(questionText, correct)
		results = append(results, StrategyResult{
			Strategy:   s.Name(),
			Candidates: candidates,
			Err:        err,
		})
	}
	return results, nil
}

// Generate runs all strategies for the skill code and aggregates their
// candidates. The returned pool never contains the correct answer and may
// hold fewer than 3 candidates; the caller's fallback handles that.
func (e *Engine) Generate(code, questionText string, correct problemgen.Answer) ([]problemgen.Answer, error) {
	results, err := e.Run(code, questionText, correct)
	if err != nil {
		return nil, err
	}
	return Aggregate(results, correct), nil
}

// Aggregate deduplicates candidates by value across all successful
// strategies, excluding the correct answer and negative values. The pool is
// returned in sorted order so that downstream sampling is reproducible.
func Aggregate(results []StrategyResult, correct problemgen.Answer) []problemgen.Answer {
	seen := make(map[problemgen.Answer]struct{})
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		for _, c := range res.Candidates {
			if c == correct || c.Value < 0 {
				continue
			}
			seen[c] = struct{}{}
		}
	}
	pool := make([]problemgen.Answer, 0, len(seen))
	for c := range seen {
		pool = append(pool, c)
	}
	slices.SortFunc(pool, func(a, b problemgen.Answer) int {
		if a.Value != b.Value {
			return a.Value - b.Value
		}
		return a.Remainder - b.Remainder
	})
	return pool
}
