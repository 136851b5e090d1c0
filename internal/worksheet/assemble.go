package worksheet

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/abhisek/mathsheet/internal/problemgen"
)

// InsufficientCandidatesError indicates fewer than 3 usable distractors at
// assembly time. Since the builder's fallback synthesis always tops the
// pool up first, this signals a logic bug, not a transient condition.
type InsufficientCandidatesError struct {
	Have int
}

func (e *InsufficientCandidatesError) Error() string {
	return fmt.Sprintf("need at least 3 distinct distractors, have %d", e.Have)
}

// AssembleOptions picks 3 distractors uniformly at random without
// replacement from the pool, shuffles them together with the correct
// answer, and returns the 4 options plus the 1-based index of the correct
// one. The pool is deduplicated by value and the correct answer excluded
// before sampling.
func AssembleOptions(rng *rand.Rand, correct problemgen.Answer, pool []problemgen.Answer) ([]problemgen.Answer, int, error) {
	usable := dedup(pool, correct)
	if len(usable) < 3 {
		return nil, 0, &InsufficientCandidatesError{Have: len(usable)}
	}

	options := []problemgen.Answer{correct}
	for _, i := range rng.Perm(len(usable))[:3] {
		options = append(options, usable[i])
	}
	rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return options, slices.Index(options, correct) + 1, nil
}

// FillCandidates guarantees the assembly precondition: when the strategies
// produced fewer than 3 distinct distractors, synthesize extras at offsets
// from the correct answer — a shuffled ±1/±2 first, then increasing
// positive offsets — discarding negatives and duplicates.
func FillCandidates(rng *rand.Rand, correct problemgen.Answer, pool []problemgen.Answer) []problemgen.Answer {
	out := dedup(pool, correct)
	if len(out) >= 3 {
		return out
	}

	seen := make(map[problemgen.Answer]struct{}, len(out))
	for _, c := range out {
		seen[c] = struct{}{}
	}

	offsets := []int{-2, -1, 1, 2}
	rng.Shuffle(len(offsets), func(i, j int) {
		offsets[i], offsets[j] = offsets[j], offsets[i]
	})
	next := 3
	for len(out) < 3 {
		var off int
		if len(offsets) > 0 {
			off, offsets = offsets[0], offsets[1:]
		} else {
			off = next
			next++
		}
		cand := correct
		cand.Value += off
		if cand.Value < 0 || cand == correct {
			continue
		}
		if _, dup := seen[cand]; dup {
			continue
		}
		seen[cand] = struct{}{}
		out = append(out, cand)
	}
	return out
}

// dedup removes duplicate values and the correct answer from the pool,
// preserving order.
func dedup(pool []problemgen.Answer, correct problemgen.Answer) []problemgen.Answer {
	seen := make(map[problemgen.Answer]struct{}, len(pool))
	out := make([]problemgen.Answer, 0, len(pool))
	for _, c := range pool {
		if c == correct {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
