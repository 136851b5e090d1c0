package distractor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/mathsheet/internal/llm"
)

// AIItem is one question in a batch request for AI-suggested distractors.
type AIItem struct {
	Question       string
	CorrectAnswer  int
	Skill          string
	Misconceptions string
}

// aiBatchSchema is the structured-output contract for a distractor batch:
// one result per input question, three integer distractors each.
var aiBatchSchema = &llm.Schema{
	Name:        "distractor-batch",
	Description: "Plausible wrong answers for a batch of arithmetic questions",
	Definition: map[string]any{
		"type":     "object",
		"required": []any{"results"},
		"properties": map[string]any{
			"results": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":     "object",
					"required": []any{"distractors"},
					"properties": map[string]any{
						"distractors": map[string]any{
							"type":     "array",
							"items":    map[string]any{"type": "integer"},
							"minItems": 3,
							"maxItems": 3,
						},
					},
				},
			},
		},
	},
}

const aiSystemPrompt = `You generate plausible wrong answers for children's arithmetic questions.
For each question, produce exactly 3 distinct integer distractors that a child
making a common mistake would arrive at. Never include the correct answer.
Prefer answers reflecting the listed misconceptions when given.`

// AIGenerator produces supplementary distractors from an LLM. It is an
// optional extra source: callers treat any error as "no suggestions".
type AIGenerator struct {
	provider llm.Provider
}

// NewAIGenerator wraps a provider.
func NewAIGenerator(p llm.Provider) *AIGenerator {
	return &AIGenerator{provider: p}
}

// SuggestBatch requests distractors for every item in one call. The result
// slice is parallel to items; entries may be shorter than 3 if the model
// under-delivers.
func (g *AIGenerator) SuggestBatch(ctx context.Context, items []AIItem) ([][]int, error) {
	if len(items) == 0 {
		return nil, nil
	}

	var sb strings.Builder
	sb.WriteString("Generate distractors for these questions, in order:\n\n")
	for i, it := range items {
		fmt.Fprintf(&sb, "%d. Question: %s\n   Correct answer: %d\n", i+1, it.Question, it.CorrectAnswer)
		if it.Skill != "" {
			fmt.Fprintf(&sb, "   Skill: %s\n", it.Skill)
		}
		if it.Misconceptions != "" {
			fmt.Fprintf(&sb, "   Common misconceptions: %s\n", it.Misconceptions)
		}
	}

	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      aiSystemPrompt,
		Prompt:      sb.String(),
		Schema:      aiBatchSchema,
		MaxTokens:   4096,
		Temperature: 0.8,
	})
	if err != nil {
		return nil, fmt.Errorf("distractor batch: %w", err)
	}

	var parsed struct {
		Results []struct {
			Distractors []int `json:"distractors"`
		} `json:"results"`
	}
	if err := json.Unmarshal(resp.Content, &parsed); err != nil {
		return nil, fmt.Errorf("distractor batch: decode response: %w", err)
	}
	if len(parsed.Results) != len(items) {
		return nil, fmt.Errorf("distractor batch: got %d results for %d questions", len(parsed.Results), len(items))
	}

	out := make([][]int, len(items))
	for i, r := range parsed.Results {
		for _, d := range r.Distractors {
			if d == items[i].CorrectAnswer {
				continue
			}
			out[i] = append(out[i], d)
		}
	}
	return out, nil
}
