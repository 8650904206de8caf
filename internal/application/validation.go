package application

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxContentLength bounds the text pinned for a single task
const MaxContentLength = 4096

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// ValidateContent checks task text before anything is published
func ValidateContent(content string) error {
	if err := ValidateRequired("content", content); err != nil {
		return err
	}
	if len(content) > MaxContentLength {
		return &ValidationError{
			Field:   "content",
			Message: fmt.Sprintf("task content exceeds %d bytes", MaxContentLength),
		}
	}
	return nil
}

// ParseIndex parses a task index as typed by a user
func ParseIndex(fieldName, value string) (uint64, error) {
	if err := ValidateRequired(fieldName, value); err != nil {
		return 0, err
	}
	idx, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("expected a non-negative %s, got: %s", formatFieldName(fieldName), value),
		}
	}
	return idx, nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "taskIndex" -> "task index")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"content":   "task content",
		"index":     "task index",
		"taskIndex": "task index",
		"account":   "account",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}

	return fieldName
}
