package distractor

import (
	"context"
	"encoding/json"
	"slices"
	"strings"
	"testing"

	"github.com/abhisek/mathsheet/internal/llm"
)

func TestAIGenerator_SuggestBatch(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"results":[
			{"distractors":[14,12,15]},
			{"distractors":[39,84,40]}
		]}`),
	})
	gen := NewAIGenerator(mock)

	items := []AIItem{
		{Question: "7 + 6", CorrectAnswer: 13},
		{Question: "34 + 5", CorrectAnswer: 39, Skill: "Add 2-digit and 1-digit", Misconceptions: "place value misalignment"},
	}
	got, err := gen.SuggestBatch(context.Background(), items)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d result sets, want 2", len(got))
	}
	if want := []int{14, 12, 15}; !slices.Equal(got[0], want) {
		t.Fatalf("got %v, want %v", got[0], want)
	}
	// 39 is the correct answer and must be filtered out.
	if want := []int{84, 40}; !slices.Equal(got[1], want) {
		t.Fatalf("got %v, want %v", got[1], want)
	}

	if mock.CallCount() != 1 {
		t.Fatalf("want one provider call, got %d", mock.CallCount())
	}
	req := mock.Calls[0]
	if req.Schema == nil || req.Schema.Name != "distractor-batch" {
		t.Fatal("request missing the batch schema")
	}
	if req.Temperature != 0.8 {
		t.Fatalf("temperature %v, want 0.8", req.Temperature)
	}
	prompt := req.Prompt
	for _, want := range []string{"34 + 5", "place value misalignment", "Add 2-digit and 1-digit"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestAIGenerator_ResultCountMismatch(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"results":[{"distractors":[1,2,3]}]}`),
	})
	gen := NewAIGenerator(mock)

	_, err := gen.SuggestBatch(context.Background(), []AIItem{
		{Question: "1 + 1", CorrectAnswer: 2},
		{Question: "2 + 2", CorrectAnswer: 4},
	})
	if err == nil {
		t.Fatal("want error on result count mismatch")
	}
}

func TestAIGenerator_EmptyBatch(t *testing.T) {
	mock := llm.NewMockProvider()
	gen := NewAIGenerator(mock)

	got, err := gen.SuggestBatch(context.Background(), nil)
	if err != nil || got != nil {
		t.Fatalf("empty batch: got %v, %v", got, err)
	}
	if mock.CallCount() != 0 {
		t.Fatal("empty batch must not call the provider")
	}
}

func TestAIGenerator_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider() // empty queue returns ErrProviderUnavailable
	gen := NewAIGenerator(mock)

	_, err := gen.SuggestBatch(context.Background(), []AIItem{{Question: "1 + 1", CorrectAnswer: 2}})
	if err == nil {
		t.Fatal("want provider error to surface")
	}
}
