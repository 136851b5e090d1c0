package worksheet

import "fmt"

// Letter converts a 1-based correct-option index to its answer-key letter.
func Letter(index int) (string, error) {
	if index < 1 || index > 4 {
		return "", fmt.Errorf("option index %d out of range 1-4", index)
	}
	return string(rune('A' + index - 1)), nil
}

// LetterIndex converts an answer-key letter (case-insensitive) to a 0-based
// option index.
func LetterIndex(letter string) (int, error) {
	if len(letter) != 1 {
		return 0, fmt.Errorf("invalid answer letter %q", letter)
	}
	c := letter[0]
	if c >= 'a' && c <= 'd' {
		c -= 'a' - 'A'
	}
	if c < 'A' || c > 'D' {
		return 0, fmt.Errorf("invalid answer letter %q", letter)
	}
	return int(c - 'A'), nil
}
