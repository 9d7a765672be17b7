package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
)

// Prompter asks the user for a single line of text
type Prompter interface {
	Prompt(title, description string) (string, error)
}

// FormPrompter prompts through an interactive huh form
type FormPrompter struct{}

// Prompt shows a one-field form and returns the trimmed, non-empty answer
func (FormPrompter) Prompt(title, description string) (string, error) {
	var answer string

	input := huh.NewInput().
		Title(title).
		Description(description).
		Value(&answer).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("a value is required")
			}
			return nil
		})

	if err := huh.NewForm(huh.NewGroup(input)).Run(); err != nil {
		return "", err
	}

	return strings.TrimSpace(answer), nil
}
