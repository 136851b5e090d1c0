package skills

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// FromCSV reads skills from the spreadsheet's CSV export. Column layout:
// No., Code, Difficulty Level, Skill, Example, Misconceptions[, Dependencies].
// The header row is skipped.
func FromCSV(r io.Reader) ([]Skill, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	var out []Skill
	line := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++
		if line == 1 {
			// Header row.
			continue
		}
		if len(rec) < 6 {
			return nil, fmt.Errorf("line %d: need at least 6 columns, got %d", line, len(rec))
		}
		s := Skill{
			Code:            strings.TrimSpace(rec[1]),
			DifficultyLevel: strings.TrimSpace(rec[2]),
			Name:            strings.TrimSpace(rec[3]),
			Example:         strings.TrimSpace(rec[4]),
			Misconceptions:  strings.TrimSpace(rec[5]),
		}
		if len(rec) > 6 {
			s.Dependencies = strings.TrimSpace(rec[6])
		}
		if s.Code == "" {
			return nil, fmt.Errorf("line %d: empty skill code", line)
		}
		out = append(out, s)
	}
	return out, nil
}
