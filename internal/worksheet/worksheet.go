// Package worksheet assembles generated questions and their distractors
// into a finished multiple-choice worksheet with a parallel answer key.
package worksheet

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/abhisek/mathsheet/internal/problemgen"
)

// Question is one assembled worksheet entry: exactly 4 shuffled options,
// one of which is correct. Created by the builder and immutable afterwards.
type Question struct {
	// Text is the rendered expression, e.g. "47 + 6".
	Text string

	// SkillCode is the skill this question exercises.
	SkillCode string

	// Options holds exactly 4 answer options in display order.
	Options []problemgen.Answer

	// CorrectIndex is the 1-based position of the correct option.
	CorrectIndex int

	// Pool is the full distractor pool that was considered.
	Pool []problemgen.Answer
}

// Worksheet is an ordered sequence of assembled questions plus the answer
// key. Invariant: len(AnswerKey) == len(Questions) and AnswerKey[i] is the
// letter for Questions[i].CorrectIndex.
type Worksheet struct {
	ID        string
	Seed      uint64
	CreatedAt time.Time
	Questions []Question
	AnswerKey []string
}

type questionJSON struct {
	QuestionText        string   `json:"question_text"`
	SkillCode           string   `json:"skill_code"`
	Options             []string `json:"options"`
	CorrectOption       int      `json:"correct_option"` // 0-based
	PossibleDistractors []string `json:"possible_distractors"`
}

type worksheetJSON struct {
	ID        string         `json:"id"`
	Seed      uint64         `json:"seed"`
	CreatedAt time.Time      `json:"created_at"`
	Worksheet []questionJSON `json:"worksheet"`
	AnswerKey []string       `json:"answer_key"`
}

// MarshalJSON renders the flat worksheet shape: options and distractors as
// strings, correct option as a 0-based index, answer key as letters.
func (w *Worksheet) MarshalJSON() ([]byte, error) {
	out := worksheetJSON{
		ID:        w.ID,
		Seed:      w.Seed,
		CreatedAt: w.CreatedAt,
		Worksheet: make([]questionJSON, len(w.Questions)),
		AnswerKey: w.AnswerKey,
	}
	for i, q := range w.Questions {
		out.Worksheet[i] = questionJSON{
			QuestionText:        q.Text,
			SkillCode:           q.SkillCode,
			Options:             renderAnswers(q.Options),
			CorrectOption:       q.CorrectIndex - 1,
			PossibleDistractors: renderAnswers(q.Pool),
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON reconstructs a worksheet from its serialized shape.
func (w *Worksheet) UnmarshalJSON(data []byte) error {
	var in worksheetJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	ws := Worksheet{
		ID:        in.ID,
		Seed:      in.Seed,
		CreatedAt: in.CreatedAt,
		AnswerKey: in.AnswerKey,
		Questions: make([]Question, len(in.Worksheet)),
	}
	for i, qj := range in.Worksheet {
		options, err := parseAnswers(qj.Options)
		if err != nil {
			return fmt.Errorf("question %d: %w", i+1, err)
		}
		pool, err := parseAnswers(qj.PossibleDistractors)
		if err != nil {
			return fmt.Errorf("question %d: %w", i+1, err)
		}
		ws.Questions[i] = Question{
			Text:         qj.QuestionText,
			SkillCode:    qj.SkillCode,
			Options:      options,
			CorrectIndex: qj.CorrectOption + 1,
			Pool:         pool,
		}
	}
	*w = ws
	return nil
}

func renderAnswers(answers []problemgen.Answer) []string {
	out := make([]string, len(answers))
	for i, a := range answers {
		out[i] = a.String()
	}
	return out
}

func parseAnswers(values []string) ([]problemgen.Answer, error) {
	out := make([]problemgen.Answer, len(values))
	for i, s := range values {
		a, err := problemgen.ParseAnswer(s)
		if err != nil {
			return nil, err
		}
		out[i] = a
	}
	return out, nil
}
