package game

import (
	"fmt"
	"strings"
)

const (
	minPromptLength = 3
	maxPromptLength = 200
	maxNameLength   = 20
)

func validatePromptText(text string) (string, error) {
	trimmed := normalizeText(text)
	if len(trimmed) < minPromptLength {
		return "", validationErr(fmt.Sprintf("prompt must be at least %d characters", minPromptLength))
	}
	if len(trimmed) > maxPromptLength {
		return "", validationErr(fmt.Sprintf("prompt must be %d characters or fewer", maxPromptLength))
	}
	return trimmed, nil
}

func validateName(name string) (string, error) {
	trimmed := normalizeText(name)
	if trimmed == "" {
		return "", validationErr("name is required")
	}
	if len(trimmed) > maxNameLength {
		return "", validationErr(fmt.Sprintf("name must be %d characters or fewer", maxNameLength))
	}
	return trimmed, nil
}

func normalizeText(text string) string {
	fields := strings.Fields(strings.TrimSpace(text))
	return strings.Join(fields, " ")
}
