package worksheet

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/mathsheet/internal/distractor"
	"github.com/abhisek/mathsheet/internal/problemgen"
	"github.com/abhisek/mathsheet/internal/skills"
)

// SkillCount is one entry of a worksheet distribution: how many questions
// to generate for a skill code. Distributions are ordered slices, not maps,
// so a fixed seed reproduces an identical worksheet.
type SkillCount struct {
	Code  string
	Count int
}

// DefaultDistribution returns the standard 20-question mix.
func DefaultDistribution() []SkillCount {
	return []SkillCount{
		{"1A", 3}, {"1S", 2}, {"2A1", 3}, {"2A2", 2}, {"2S1", 2},
		{"2S2", 2}, {"T5", 2}, {"T10", 1}, {"3A", 1}, {"3S", 1}, {"2M1", 1},
	}
}

// ParseDistribution parses a "CODE:N,CODE:N" flag value.
func ParseDistribution(s string) ([]SkillCount, error) {
	var out []SkillCount
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		code, countStr, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("invalid distribution entry %q: want CODE:COUNT", part)
		}
		count, err := strconv.Atoi(strings.TrimSpace(countStr))
		if err != nil || count < 1 {
			return nil, fmt.Errorf("invalid question count in %q", part)
		}
		out = append(out, SkillCount{Code: strings.TrimSpace(code), Count: count})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty distribution")
	}
	return out, nil
}

// Builder drives the full pipeline per question: generate → distractors →
// fallback → assemble. It owns each Question for its construction lifetime;
// the finished worksheet is immutable.
type Builder struct {
	Registry *problemgen.Registry
	Engine   *distractor.Engine

	// Catalog optionally supplies skill names and misconception notes to
	// the AI distractor prompt. Nil is fine.
	Catalog *skills.Catalog

	// AI is an optional supplementary distractor source. Its failures are
	// reported and ignored; the procedural strategies plus fallback always
	// suffice on their own.
	AI *distractor.AIGenerator

	// Logf reports skipped strategies and AI failures. Nil silences.
	Logf func(format string, args ...any)
}

// NewBuilder returns a Builder over the standard registry and engine.
func NewBuilder() *Builder {
	return &Builder{
		Registry: problemgen.NewRegistry(),
		Engine:   distractor.NewEngine(),
	}
}

// Build generates the full worksheet for the distribution. Unknown skill
// codes fail before any question is generated; individual distractor
// strategy failures are isolated and reported via Logf.
func (b *Builder) Build(ctx context.Context, seed uint64, dist []SkillCount) (*Worksheet, error) {
	// Every code must resolve in both tables before we draw anything.
	for _, sc := range dist {
		if !b.Registry.Has(sc.Code) || !b.Engine.Has(sc.Code) {
			return nil, &problemgen.UnknownSkillError{Code: sc.Code}
		}
	}

	rng := problemgen.NewRand(seed)

	var items []pending

	for _, sc := range dist {
		for range sc.Count {
			q, err := b.Registry.Generate(sc.Code, rng)
			if err != nil {
				return nil, err
			}
			results, err := b.Engine.Run(sc.Code, q.Text, q.Answer)
			if err != nil {
				return nil, err
			}
			for _, res := range results {
				if res.Err != nil {
					b.logf("skill %s: strategy %s skipped: %v", sc.Code, res.Strategy, res.Err)
				}
			}
			items = append(items, pending{q: q, pool: distractor.Aggregate(results, q.Answer)})
		}
	}

	if b.AI != nil {
		b.mergeAISuggestions(ctx, items)
	}

	ws := &Worksheet{
		ID:        uuid.NewString(),
		Seed:      seed,
		CreatedAt: time.Now().UTC(),
	}
	for _, it := range items {
		pool := FillCandidates(rng, it.q.Answer, it.pool)
		options, correctIdx, err := AssembleOptions(rng, it.q.Answer, pool)
		if err != nil {
			return nil, fmt.Errorf("assemble %q: %w", it.q.Text, err)
		}
		letter, err := Letter(correctIdx)
		if err != nil {
			return nil, err
		}
		ws.Questions = append(ws.Questions, Question{
			Text:         it.q.Text,
			SkillCode:    it.q.SkillCode,
			Options:      options,
			CorrectIndex: correctIdx,
			Pool:         pool,
		})
		ws.AnswerKey = append(ws.AnswerKey, letter)
	}
	return ws, nil
}

// pending is a question awaiting option assembly.
type pending struct {
	q    problemgen.Question
	pool []problemgen.Answer
}

// mergeAISuggestions asks the AI source for extra distractors in one batch
// and appends them to the per-question pools. Division-with-remainder
// questions are skipped: the batch schema carries plain integers.
func (b *Builder) mergeAISuggestions(ctx context.Context, items []pending) {
	var reqs []distractor.AIItem
	var indices []int
	for i, it := range items {
		if it.q.Answer.HasRemainder {
			continue
		}
		item := distractor.AIItem{
			Question:      it.q.Text,
			CorrectAnswer: it.q.Answer.Value,
		}
		if b.Catalog != nil {
			if s, err := b.Catalog.Get(it.q.SkillCode); err == nil {
				item.Skill = s.Name
				item.Misconceptions = s.Misconceptions
			}
		}
		reqs = append(reqs, item)
		indices = append(indices, i)
	}
	if len(reqs) == 0 {
		return
	}

	suggestions, err := b.AI.SuggestBatch(ctx, reqs)
	if err != nil {
		b.logf("AI distractor batch skipped: %v", err)
		return
	}
	for k, vals := range suggestions {
		if k >= len(indices) {
			break
		}
		for _, v := range vals {
			if v < 0 {
				continue
			}
			i := indices[k]
			items[i].pool = append(items[i].pool, problemgen.IntAnswer(v))
		}
	}
}

func (b *Builder) logf(format string, args ...any) {
	if b.Logf != nil {
		b.Logf(format, args...)
	}
}
