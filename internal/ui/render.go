// Package ui renders worksheets for the terminal.
package ui

import (
	"fmt"
	"strings"

	"github.com/abhisek/mathsheet/internal/ui/theme"
	"github.com/abhisek/mathsheet/internal/worksheet"
)

// RenderWorksheet formats a worksheet for terminal display. When
// showAnswers is set the answer key is appended.
func RenderWorksheet(ws *worksheet.Worksheet, showAnswers bool) string {
	var sb strings.Builder

	sb.WriteString(theme.Title.Render("Worksheet " + ws.ID))
	sb.WriteString("\n")
	sb.WriteString(theme.Subtitle.Render(fmt.Sprintf("%d questions · seed %d · %s",
		len(ws.Questions), ws.Seed, ws.CreatedAt.Format("2006-01-02 15:04"))))
	sb.WriteString("\n\n")

	for i, q := range ws.Questions {
		sb.WriteString(theme.QuestionNumber.Render(fmt.Sprintf("%2d.", i+1)))
		sb.WriteString(" ")
		sb.WriteString(theme.QuestionText.Render(q.Text + " = ?"))
		sb.WriteString("  ")
		sb.WriteString(theme.Hint.Render("[" + q.SkillCode + "]"))
		sb.WriteString("\n")
		for j, opt := range q.Options {
			letter, err := worksheet.Letter(j + 1)
			if err != nil {
				letter = "?"
			}
			sb.WriteString("      ")
			sb.WriteString(theme.OptionLetter.Render(letter + ")"))
			sb.WriteString(" ")
			sb.WriteString(theme.OptionValue.Render(opt.String()))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if showAnswers {
		sb.WriteString(theme.AnswerKey.Render("Answer key: " + strings.Join(ws.AnswerKey, " ")))
		sb.WriteString("\n")
	}

	return theme.Card.Render(sb.String()) + "\n"
}

// RenderQuestion formats one question with its options, used by the
// single-skill preview.
func RenderQuestion(num int, q worksheet.Question) string {
	var sb strings.Builder
	sb.WriteString(theme.QuestionNumber.Render(fmt.Sprintf("%2d.", num)))
	sb.WriteString(" ")
	sb.WriteString(theme.QuestionText.Render(q.Text + " = ?"))
	sb.WriteString("\n")
	for j, opt := range q.Options {
		letter, err := worksheet.Letter(j + 1)
		if err != nil {
			letter = "?"
		}
		marker := " "
		if j+1 == q.CorrectIndex {
			marker = "*"
		}
		sb.WriteString(fmt.Sprintf("    %s ", marker))
		sb.WriteString(theme.OptionLetter.Render(letter + ")"))
		sb.WriteString(" ")
		sb.WriteString(theme.OptionValue.Render(opt.String()))
		sb.WriteString("\n")
	}
	return sb.String()
}
