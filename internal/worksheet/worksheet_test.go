package worksheet

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/mathsheet/internal/problemgen"
)

func sampleWorksheet() *Worksheet {
	return &Worksheet{
		ID:        "w-1",
		Seed:      42,
		CreatedAt: time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
		Questions: []Question{
			{
				Text:         "34 + 5",
				SkillCode:    "2A1",
				Options:      ints(84, 39, 38, 40),
				CorrectIndex: 2,
				Pool:         ints(38, 40, 84),
			},
			{
				Text:         "50 ÷ 7",
				SkillCode:    "2D1R",
				Options:      []problemgen.Answer{problemgen.QuotientRemainder(6, 1), problemgen.QuotientRemainder(7, 1), problemgen.QuotientRemainder(8, 1), problemgen.QuotientRemainder(9, 1)},
				CorrectIndex: 2,
				Pool:         []problemgen.Answer{problemgen.QuotientRemainder(6, 1), problemgen.QuotientRemainder(8, 1), problemgen.QuotientRemainder(9, 1)},
			},
		},
		AnswerKey: []string{"B", "B"},
	}
}

func TestWorksheetJSON_Shape(t *testing.T) {
	data, err := json.Marshal(sampleWorksheet())
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"id", "seed", "created_at", "worksheet", "answer_key"} {
		if _, ok := raw[key]; !ok {
			t.Fatalf("serialized worksheet missing %q", key)
		}
	}

	qs := raw["worksheet"].([]any)
	q0 := qs[0].(map[string]any)
	if q0["question_text"] != "34 + 5" {
		t.Fatalf("question_text = %v", q0["question_text"])
	}
	// correct_option is 0-based on the wire.
	if q0["correct_option"].(float64) != 1 {
		t.Fatalf("correct_option = %v, want 1", q0["correct_option"])
	}
	opts := q0["options"].([]any)
	if len(opts) != 4 || opts[0] != "84" {
		t.Fatalf("options = %v", opts)
	}

	// Remainder answers render as "Q R r".
	q1 := qs[1].(map[string]any)
	if got := q1["options"].([]any)[1]; got != "7 R 1" {
		t.Fatalf("remainder option = %v, want 7 R 1", got)
	}

	if !strings.Contains(string(data), `"answer_key":["B","B"]`) {
		t.Fatalf("answer key not serialized as letters: %s", data)
	}
}

func TestWorksheetJSON_RoundTrip(t *testing.T) {
	want := sampleWorksheet()
	data, err := json.Marshal(want)
	if err != nil {
		t.Fatal(err)
	}

	var got Worksheet
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}

	if got.ID != want.ID || got.Seed != want.Seed || !got.CreatedAt.Equal(want.CreatedAt) {
		t.Fatalf("header fields differ: %+v", got)
	}
	if len(got.Questions) != len(want.Questions) {
		t.Fatalf("got %d questions", len(got.Questions))
	}
	for i := range want.Questions {
		w, g := want.Questions[i], got.Questions[i]
		if g.Text != w.Text || g.SkillCode != w.SkillCode || g.CorrectIndex != w.CorrectIndex {
			t.Fatalf("question %d differs: %+v vs %+v", i, g, w)
		}
		for j := range w.Options {
			if g.Options[j] != w.Options[j] {
				t.Fatalf("question %d option %d: %v vs %v", i, j, g.Options[j], w.Options[j])
			}
		}
	}
}

func TestWorksheetJSON_RejectsBadOption(t *testing.T) {
	data := []byte(`{"id":"x","seed":1,"created_at":"2026-03-14T09:26:53Z",
		"worksheet":[{"question_text":"1 + 1","skill_code":"1A",
		"options":["2","three","4","5"],"correct_option":0,"possible_distractors":[]}],
		"answer_key":["A"]}`)
	var ws Worksheet
	if err := json.Unmarshal(data, &ws); err == nil {
		t.Fatal("want error for unparseable option")
	}
}
